package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spring-attic/spring-native-aot/internal/cli/config"
	"github.com/spring-attic/spring-native-aot/internal/cli/ui"
	"github.com/spring-attic/spring-native-aot/internal/compiler/generator"
	"github.com/spring-attic/spring-native-aot/internal/compiler/pipeline"
	"github.com/spring-attic/spring-native-aot/internal/logging"
	"github.com/spring-attic/spring-native-aot/internal/utils"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
	GoVersion = "unknown"
)

// globalOptions holds the persistent flags shared by every command
type globalOptions struct {
	configPath string
	noColor    bool
	verbose    bool
}

// configError marks errors raised while loading the configuration
type configError struct {
	err error
}

func (e *configError) Error() string { return e.err.Error() }
func (e *configError) Unwrap() error { return e.err }

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "aotgen",
		Short: "Ahead-of-time bootstrap generator for application contexts",
		Long: color.CyanString(`aotgen - ahead-of-time context bootstrap generator

aotgen reads a snapshot of an application context's bean definitions and
generates the Java source that registers every bean without reflection,
together with the native image configuration the registrations need.

Features:
  • One registration per bean, in definition order
  • Package-private access through generated delegate classes
  • Reflection, resource and proxy hints for native images
  • Watch mode regenerating on snapshot changes`),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.noColor {
				color.NoColor = true
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "config file (default: aotgen.yml in the project directory)")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(NewVersionCommand())
	rootCmd.AddCommand(NewInitCommand(opts))
	rootCmd.AddCommand(NewGenerateCommand(opts))
	rootCmd.AddCommand(NewInspectCommand(opts))
	rootCmd.AddCommand(NewWatchCommand(opts))
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display the aotgen version, Git commit, build date, and Go version",
		Run: func(cmd *cobra.Command, args []string) {
			goVer := GoVersion
			if goVer == "unknown" {
				goVer = runtime.Version()
			}

			out := cmd.OutOrStdout()
			titleColor := color.New(color.FgCyan, color.Bold)

			titleColor.Fprint(out, "aotgen version: ")
			fmt.Fprintln(out, Version)

			titleColor.Fprint(out, "Git commit: ")
			fmt.Fprintln(out, GitCommit)

			titleColor.Fprint(out, "Build date: ")
			fmt.Fprintln(out, BuildDate)

			titleColor.Fprint(out, "Go version: ")
			fmt.Fprintln(out, goVer)
		},
	}
}

// Execute runs the root command, cancelling it on SIGINT or SIGTERM
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := NewRootCommand()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		reportError(rootCmd, err)
		return err
	}
	return nil
}

func reportError(cmd *cobra.Command, err error) {
	var cfgErr *configError
	switch {
	case errors.As(err, &cfgErr):
		fmt.Fprint(cmd.ErrOrStderr(), ui.ConfigError(cfgErr.Error(), color.NoColor))
	case errors.Is(err, context.Canceled):
		fmt.Fprint(cmd.ErrOrStderr(), ui.Warning("interrupted", color.NoColor))
	default:
		fmt.Fprint(cmd.ErrOrStderr(), ui.GenerationError(err, color.NoColor))
	}
}

// project is a loaded configuration and the directory its paths are
// relative to
type project struct {
	root   string
	config *config.Config
}

// loadProject loads the configuration named by --config, or the one of the
// enclosing project, falling back to the defaults in the working directory
func loadProject(opts *globalOptions) (*project, error) {
	path := opts.configPath
	if path == "" {
		if root, err := config.FindProjectRoot(); err == nil {
			path = configFileIn(root)
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, &configError{err: err}
	}
	if opts.verbose {
		cfg.Log.Level = "debug"
	}

	root := "."
	if path != "" {
		root = filepath.Dir(path)
	}
	return &project{root: root, config: cfg}, nil
}

func configFileIn(dir string) string {
	path := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(path); err != nil {
		return filepath.Join(dir, "aotgen.yaml")
	}
	return path
}

// resolve makes a configured path relative to the project directory
func (p *project) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(p.root, path)
}

// logger builds the configured logger
func (p *project) logger() (*zap.Logger, error) {
	logger, err := logging.New(p.config.Log)
	if err != nil {
		return nil, &configError{err: err}
	}
	return logger, nil
}

// pipelineOptions maps the configuration onto a pipeline. Hint directories
// contribute every YAML file they contain.
func (p *project) pipelineOptions() (pipeline.Options, error) {
	cfg := p.config
	inputs := cfg.InputFiles(p.root)
	hintFiles, err := utils.ExpandPaths(inputs[1:], ".yml", ".yaml")
	if err != nil {
		return pipeline.Options{}, fmt.Errorf("failed to list hint files: %w", err)
	}
	return pipeline.Options{
		Snapshot:  inputs[0],
		Hints:     hintFiles,
		OutputDir: p.resolve(cfg.Output.Dir),
		Package:   cfg.Output.Package,
		ClassName: cfg.Output.ClassName,
		Generator: generator.Options{
			ExcludeTypes:        cfg.Generator.ExcludeTypes,
			ExcludeNames:        cfg.Generator.ExcludeNames,
			InfrastructureBeans: cfg.Generator.InfrastructureBeans,
			Attributes:          cfg.Generator.Attributes,
		},
		FeatureFlags: cfg.Generator.FeatureFlags,
	}, nil
}
