package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/spring-attic/spring-native-aot/internal/cli/ui"
	"github.com/spring-attic/spring-native-aot/internal/compiler/pipeline"
	"github.com/spring-attic/spring-native-aot/internal/logging"
)

// NewInspectCommand creates the inspect command
func NewInspectCommand(opts *globalOptions) *cobra.Command {
	var (
		bean   string
		status string
	)

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show how every bean of the snapshot would be registered",
		Long: `Resolve the instance creator and access requirements of every bean
without writing anything.

Statuses:
  registered     registered by the bootstrap class
  delegated      registered through a delegate in the bean's package
  excluded       filtered out by the configuration
  skipped        no instance creator could be resolved
  scoped proxy   registered together with its target
  failed         the bean cannot be registered

Examples:
  aotgen inspect
  aotgen inspect --status delegated
  aotgen inspect --bean restTemplate`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProject(opts)
			if err != nil {
				return err
			}
			logger, err := p.logger()
			if err != nil {
				return err
			}
			defer logger.Sync()
			logger, runID := logging.WithRun(logger)

			options, err := p.pipelineOptions()
			if err != nil {
				return err
			}
			report, err := pipeline.New(options, logger).Inspect()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if bean != "" {
				return printBean(out, report, bean)
			}
			printReport(out, cmd.ErrOrStderr(), report, status)
			color.New(color.FgHiBlack).Fprintf(out, "run %s\n", runID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&bean, "bean", "b", "", "Show the details of a single bean")
	cmd.Flags().StringVarP(&status, "status", "s", "", "Only list beans with this status")

	return cmd
}

func printReport(out, errOut io.Writer, report *pipeline.Report, status string) {
	table := ui.NewBeanTable(out, color.NoColor)
	var failed []pipeline.BeanReport
	for _, b := range report.Beans {
		if status != "" && b.Status != status {
			continue
		}
		table.Add(b)
		if b.Error != nil {
			failed = append(failed, b)
		}
	}
	table.Render()

	fmt.Fprintln(out)
	fmt.Fprintln(out, summary(report))

	for _, b := range failed {
		fmt.Fprintln(errOut)
		fmt.Fprint(errOut, ui.GenerationError(b.Error, color.NoColor))
	}
}

// summary counts the beans per status, in a stable order
func summary(report *pipeline.Report) string {
	statuses := []string{
		pipeline.StatusRegistered,
		pipeline.StatusDelegated,
		pipeline.StatusProxy,
		pipeline.StatusExcluded,
		pipeline.StatusSkipped,
		pipeline.StatusFailed,
	}
	var parts []string
	for _, s := range statuses {
		if n := report.Count(s); n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, s))
		}
	}
	if len(parts) == 0 {
		return "0 beans"
	}
	return fmt.Sprintf("%d beans: %s", len(report.Beans), strings.Join(parts, ", "))
}

func printBean(out io.Writer, report *pipeline.Report, name string) error {
	names := make([]string, 0, len(report.Beans))
	for _, b := range report.Beans {
		if b.Name != name {
			names = append(names, b.Name)
			continue
		}

		ui.WriteBeanDetails(out, b, color.NoColor)
		return nil
	}

	if suggestions := ui.FindSimilar(name, names); len(suggestions) > 0 {
		return fmt.Errorf("unknown bean %q (did you mean: %s?)", name, strings.Join(suggestions, ", "))
	}
	return fmt.Errorf("unknown bean %q", name)
}
