package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/spring-attic/spring-native-aot/internal/cli/config"
	"github.com/spring-attic/spring-native-aot/internal/cli/ui"
)

// NewInitCommand creates the init command
func NewInitCommand(opts *globalOptions) *cobra.Command {
	var (
		yes     bool
		force   bool
		answers initAnswers
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create an aotgen.yml configuration",
		Long: `Create an aotgen.yml configuration in the current directory.

Without --yes the settings are asked for interactively, flags provide the
defaults of the prompts.

Examples:
  aotgen init
  aotgen init --yes --package org.acme.app --snapshot build/snapshot.yml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.configPath
			if path == "" {
				path = config.FileName
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}

			if answers.ProjectName == "" {
				if wd, err := os.Getwd(); err == nil {
					answers.ProjectName = filepath.Base(wd)
				}
			}
			if !yes {
				if err := askInitQuestions(&answers); err != nil {
					return err
				}
			}

			cfg := answers.toConfig()
			if err := config.Write(cfg, path); err != nil {
				return &configError{err: err}
			}

			out := cmd.OutOrStdout()
			ui.WriteSuccess(out, "Created "+path, color.NoColor)
			color.New(color.FgCyan).Fprintln(out, "\nNext steps:")
			fmt.Fprintf(out, "  1. Export the context snapshot to %s\n", cfg.Snapshot)
			fmt.Fprintln(out, "  2. Run 'aotgen generate'")
			return nil
		},
	}

	d := config.Defaults
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Accept the defaults without prompting")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing configuration")
	cmd.Flags().StringVar(&answers.ProjectName, "name", "", "Project name (default: directory name)")
	cmd.Flags().StringVar(&answers.Snapshot, "snapshot", d["snapshot"].(string), "Snapshot file")
	cmd.Flags().StringVar(&answers.Package, "package", d["output.package"].(string), "Package of the bootstrap class")
	cmd.Flags().StringVar(&answers.ClassName, "class-name", d["output.class_name"].(string), "Name of the bootstrap class")
	cmd.Flags().StringVar(&answers.OutputDir, "output", d["output.dir"].(string), "Output directory")

	return cmd
}

// initAnswers holds the settings asked by init
type initAnswers struct {
	ProjectName string `survey:"projectName"`
	Snapshot    string `survey:"snapshot"`
	Package     string `survey:"package"`
	ClassName   string `survey:"className"`
	OutputDir   string `survey:"outputDir"`
}

func (a initAnswers) toConfig() *config.Config {
	d := config.Defaults
	return &config.Config{
		ProjectName: a.ProjectName,
		Snapshot:    a.Snapshot,
		Output: config.OutputConfig{
			Dir:       a.OutputDir,
			Package:   a.Package,
			ClassName: a.ClassName,
		},
		Log: config.LogConfig{
			Level:  d["log.level"].(string),
			Format: d["log.format"].(string),
		},
		Watch: config.WatchConfig{Debounce: d["watch.debounce"].(time.Duration)},
	}
}

func askInitQuestions(answers *initAnswers) error {
	javaPackage := func(ans interface{}) error {
		if s, ok := ans.(string); !ok || !config.IsJavaPackage(s) {
			return fmt.Errorf("%v is not a valid Java package name", ans)
		}
		return nil
	}

	questions := []*survey.Question{
		{
			Name:     "projectName",
			Prompt:   &survey.Input{Message: "Project name:", Default: answers.ProjectName},
			Validate: survey.Required,
		},
		{
			Name: "snapshot",
			Prompt: &survey.Input{
				Message: "Snapshot file:",
				Default: answers.Snapshot,
				Help:    "YAML export of the application context's bean definitions",
			},
			Validate: survey.Required,
		},
		{
			Name:     "package",
			Prompt:   &survey.Input{Message: "Package of the bootstrap class:", Default: answers.Package},
			Validate: survey.ComposeValidators(survey.Required, javaPackage),
		},
		{
			Name:     "className",
			Prompt:   &survey.Input{Message: "Bootstrap class name:", Default: answers.ClassName},
			Validate: survey.Required,
		},
		{
			Name:     "outputDir",
			Prompt:   &survey.Input{Message: "Output directory:", Default: answers.OutputDir},
			Validate: survey.Required,
		},
	}

	return survey.Ask(questions, answers)
}
