package commands

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/spring-attic/spring-native-aot/internal/cli/config"
	"github.com/spring-attic/spring-native-aot/internal/cli/ui"
	"github.com/spring-attic/spring-native-aot/internal/compiler/pipeline"
)

// NewGenerateCommand creates the generate command
func NewGenerateCommand(opts *globalOptions) *cobra.Command {
	var (
		force     bool
		outputDir string
		pkg       string
	)

	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"g"},
		Short:   "Generate the bootstrap sources and native configuration",
		Long: `Generate the context bootstrap class of a snapshot.

The snapshot and hint files named in aotgen.yml are read, and the output
directory receives:
  sources/<package>/<ClassName>.java     bean registrations
  sources/<other package>/...            delegates for package-private access
  resources/META-INF/native-image/       reflection, resource, proxy and
                                         serialization configuration

Examples:
  aotgen generate
  aotgen generate --output target/aot --package org.acme.app
  aotgen g --config build/aotgen.yml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProject(opts)
			if err != nil {
				return err
			}
			if outputDir != "" {
				p.config.Output.Dir = outputDir
			}
			if pkg != "" {
				p.config.Output.Package = pkg
			}
			if err := config.Validate(p.config); err != nil {
				return &configError{err: err}
			}

			logger, err := p.logger()
			if err != nil {
				return err
			}
			defer logger.Sync()

			options, err := p.pipelineOptions()
			if err != nil {
				return err
			}
			result, err := pipeline.New(options, logger).Run(cmd.Context(), force)
			if err != nil {
				return err
			}
			printResult(cmd.OutOrStdout(), p, result)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Regenerate even when the inputs did not change")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory (overrides output.dir)")
	cmd.Flags().StringVarP(&pkg, "package", "p", "", "Package of the bootstrap class (overrides output.package)")

	return cmd
}

// printResult summarizes a run
func printResult(w io.Writer, p *project, result *pipeline.Result) {
	if result.Skipped {
		fmt.Fprint(w, ui.FormatError(ui.ErrorOptions{
			Level:   ui.ErrorLevelInfo,
			Problem: "Inputs unchanged, nothing to generate",
			NoColor: color.NoColor,
		}))
		return
	}

	ui.WriteSuccess(w, fmt.Sprintf("Generated %d bean(s) into %s",
		result.Beans, p.resolve(p.config.Output.Dir)), color.NoColor)

	ui.WriteRunSummary(w, result, p.config.Output.Package+"."+p.config.Output.ClassName, color.NoColor)

	for _, f := range result.Sources {
		if rel, err := filepath.Rel(p.resolve(p.config.Output.Dir), f); err == nil {
			f = rel
		}
		fmt.Fprintf(w, "  %s\n", f)
	}
}
