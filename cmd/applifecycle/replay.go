package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bft-labs/applifecycle/internal/replay"
	"github.com/bft-labs/applifecycle/internal/script"
	"github.com/bft-labs/applifecycle/internal/watch"
	"github.com/bft-labs/applifecycle/pkg/lifecycle"
	"github.com/bft-labs/applifecycle/pkg/log"
	"github.com/bft-labs/applifecycle/pkg/provider"
	"github.com/bft-labs/applifecycle/pkg/state"
	"github.com/bft-labs/applifecycle/plugins/marker"
	"github.com/bft-labs/applifecycle/plugins/telemetry"
)

func newReplayCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay <script>",
		Short: "Run a lifecycle script and print what listeners observe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(sigCh)
			go func() {
				select {
				case <-sigCh:
					c.logger.Info("received signal, stopping...")
					cancel()
				case <-ctx.Done():
				}
			}()

			run := func(ctx context.Context) error {
				return runScript(ctx, c, path, cmd.OutOrStdout())
			}
			if !c.cfg.Watch {
				return run(ctx)
			}

			c.logger.Info("watching script", log.String("path", path))
			return watch.Run(ctx, path, watch.Config{Debounce: c.cfg.Debounce, Logger: c.logger}, run)
		},
	}

	cmd.Flags().BoolVar(&c.cfg.Watch, "watch", c.cfg.Watch, "re-run the script whenever it changes")
	cmd.Flags().DurationVar(&c.cfg.Debounce, "debounce", c.cfg.Debounce, "delay between a change and the re-run")
	cmd.Flags().BoolVar(&c.cfg.Quiet, "quiet", c.cfg.Quiet, "print only the final state")
	return cmd
}

// runScript replays one script through a fresh process-wide coordinator.
func runScript(ctx context.Context, c *cli, path string, w io.Writer) error {
	s, err := script.Load(path)
	if err != nil {
		return err
	}

	coord, err := provider.Initialize(lifecycle.WithLogger(c.logger))
	if err != nil {
		return err
	}
	defer func() { _ = provider.Dispose() }()

	tel := telemetry.New(c.logger)
	if err := coord.Add(tel); err != nil {
		return err
	}

	var mk *marker.Listener
	if c.cfg.MarkerDir != "" {
		mk = marker.New(state.NewFileRepository(c.cfg.MarkerDir), marker.Config{Logger: c.logger})
		if err := coord.Add(mk); err != nil {
			return err
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	opts := replay.Options{Coordinator: coord, Logger: c.logger}
	if !c.cfg.Quiet {
		opts.Out = w
		fmt.Fprintf(w, "# %s\n", s.Name)
	}

	res, err := replay.Run(s, opts)
	if err != nil {
		return err
	}

	stats := tel.Snapshot()
	fmt.Fprintf(w, "final: %s\n", describe(res.Final))
	fmt.Fprintf(w, "steps: %d  notifications: %d  sessions: %d/%d  foreground: %s\n",
		res.Steps, len(res.Notifications), stats.Completed, stats.Sessions, stats.TotalForeground)

	if mk != nil {
		if err := mk.Err(); err != nil {
			return fmt.Errorf("write marker: %w", err)
		}
	}
	return nil
}

func describe(s lifecycle.State) string {
	if s.Idle() {
		return "idle"
	}
	return fmt.Sprintf("%s(%s)", s.LastEvent, lifecycle.FormatContext(s.Active))
}
