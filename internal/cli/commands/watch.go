package commands

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spring-attic/spring-native-aot/internal/cli/ui"
	"github.com/spring-attic/spring-native-aot/internal/compiler/pipeline"
	"github.com/spring-attic/spring-native-aot/internal/watch"
)

// NewWatchCommand creates the watch command
func NewWatchCommand(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Regenerate whenever the snapshot or hints change",
		Long: `Generate once, then watch the snapshot and hint files and regenerate
after every change.

Changes arriving within watch.debounce of each other are handled by a
single run. Generation errors are reported and watching continues.

Examples:
  aotgen watch
  AOTGEN_WATCH_DEBOUNCE=1s aotgen watch
`,
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

			return runWatch(cmd.Context(), cmd.OutOrStdout(), p, logger)
		},
	}

	return cmd
}

// syncWriter serializes writes from the watcher and the command
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(b []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(b)
}

func runWatch(ctx context.Context, w io.Writer, p *project, logger *zap.Logger) error {
	out := &syncWriter{w: w}
	options, err := p.pipelineOptions()
	if err != nil {
		return err
	}
	pl := pipeline.New(options, logger)

	regenerate := func(force bool) {
		result, err := pl.Run(ctx, force)
		if err != nil {
			if ctx.Err() == nil {
				fmt.Fprint(out, ui.GenerationError(err, color.NoColor))
			}
			return
		}
		printResult(out, p, result)
	}

	regenerate(true)

	watcher, err := watch.NewFileWatcher(pl.Inputs(), p.config.Watch.Debounce, func(files []string) error {
		logger.Info("inputs changed", zap.Strings("files", files))
		regenerate(false)
		return nil
	}, logger)
	if err != nil {
		return err
	}
	if err := watcher.Start(); err != nil {
		return err
	}

	banner := color.New(color.FgCyan, color.Bold)
	fmt.Fprintln(out)
	banner.Fprintln(out, "Watching for changes")
	for _, f := range watcher.Files() {
		fmt.Fprintf(out, "   %s\n", f)
	}
	color.New(color.FgYellow).Fprintln(out, "Press Ctrl+C to stop")
	fmt.Fprintln(out)

	<-ctx.Done()

	if err := watcher.Stop(); err != nil {
		return fmt.Errorf("error stopping watcher: %w", err)
	}
	color.New(color.FgGreen).Fprintln(out, "Stopped watching")
	return nil
}
