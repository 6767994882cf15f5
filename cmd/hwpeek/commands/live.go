package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/hwpeek/hwpeek/internal/config"
	"github.com/hwpeek/hwpeek/internal/telemetry"
	"github.com/hwpeek/hwpeek/internal/unitutils"
	"github.com/spf13/cobra"
)

func (a *App) installLive() {
	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "Continuously print CPU and RAM utilization",
		Long: `Print a utilization line on a fixed cadence until interrupted.

Editing the interval in the configuration file takes effect without a restart.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.liveRun(cmd)
		},
	}

	a.cmd.AddCommand(liveCmd)
}

// liveLine renders one utilization sample the way the live view prints it.
func liveLine(s telemetry.Sample) string {
	return fmt.Sprintf("CPU: %5.1f%%   RAM: %5.1f%%   (Total: %s)", s.CPUPercent, s.RAMPercent, unitutils.HumanBytes(s.RAMTotal))
}

func (a *App) liveRun(cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	opts := append([]telemetry.Options{
		telemetry.WithInterval(a.config.Interval),
		telemetry.WithOnSample(func(s telemetry.Sample) {
			fmt.Fprintln(out, liveLine(s))
		}),
	}, a.telemetryOpts...)
	loop := telemetry.New(opts...)

	if file := a.viper.ConfigFileUsed(); file != "" {
		a.watchInterval(ctx, file, loop)
	}

	if err := loop.Run(ctx); !errors.Is(err, context.Canceled) {
		return err
	}

	return nil
}

// watchInterval follows the configuration file and applies interval changes
// to a running loop. A failed watch only costs the hot reload.
func (a *App) watchInterval(ctx context.Context, path string, loop *telemetry.Loop) {
	cm := config.New(path)
	changes, watchErrs, err := cm.Watch(ctx)
	if err != nil {
		slog.Warn("Failed to watch the configuration file", "error", err)
		return
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-changes:
				if !ok {
					return
				}
				loop.SetInterval(cm.Interval())
			case err, ok := <-watchErrs:
				if !ok {
					return
				}
				slog.Warn("Configuration watcher failed", "error", err)
			}
		}
	}()
}
