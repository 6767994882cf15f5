// Package commands contains the commands of the hwpeek application.
package commands

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/hwpeek/hwpeek/internal/cli"
	"github.com/hwpeek/hwpeek/internal/constants"
	"github.com/hwpeek/hwpeek/internal/hwinfo"
	"github.com/hwpeek/hwpeek/internal/inventory"
	"github.com/hwpeek/hwpeek/internal/telemetry"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// App represents the application.
type App struct {
	cmd    *cobra.Command
	viper  *viper.Viper
	config appConfig

	exportConfig exportConfig

	// newProbe builds the hardware source consumed by the report commands.
	newProbe func() inventory.Probe
	// telemetryOpts carries extra options for the live sampling loop.
	telemetryOpts []telemetry.Options
}

// appConfig holds the configuration for the application.
type appConfig struct {
	Verbosity int
	JSON      bool
	Interval  time.Duration
}

// New registers commands and returns a new App.
func New() (*App, error) {
	a := App{}
	a.newProbe = func() inventory.Probe { return hwinfo.New() }

	a.cmd = &cobra.Command{
		Use:   constants.CmdName + " [COMMAND]",
		Short: "Inspect the hardware of this machine",
		Long: `Collect the hardware inventory of this machine and follow its live utilization.

Without a command the full inventory report is printed.`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Command parsing has been successful. Returns to not print usage anymore.
			a.cmd.SilenceUsage = true
			cli.SetVerbosity(a.config.Verbosity) // Set verbosity before loading config
			if err := cli.InitViperConfig(a.cmd, a.viper); err != nil {
				return err
			}
			if err := a.viper.Unmarshal(&a.config); err != nil {
				return fmt.Errorf("unable to strictly decode configuration into struct: %w", err)
			}
			slog.Info("got app config", "config", a.config)

			cli.SetVerbosity(a.config.Verbosity)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.inventoryRun(cmd)
		},
	}
	a.viper = viper.New()

	installRootCmd(&a)
	cli.InstallConfigFlag(a.cmd)

	if err := a.viper.BindPFlags(a.cmd.PersistentFlags()); err != nil {
		return nil, err
	}

	a.installLive()
	if err := a.installExport(); err != nil {
		return nil, err
	}
	a.installVersion()

	return &a, nil
}

func installRootCmd(app *App) {
	cmd := app.cmd

	cmd.PersistentFlags().CountVarP(&app.config.Verbosity, "verbose", "v", "issue INFO (-v), DEBUG (-vv)")
	cmd.PersistentFlags().BoolVar(&app.config.JSON, "json", false, "output hardware reports as JSON")
	cmd.PersistentFlags().DurationVar(&app.config.Interval, "interval", constants.DefaultInterval, "cadence of the live utilization sampling")
}

func (a *App) inventoryRun(cmd *cobra.Command) error {
	b := inventory.New(a.newProbe())
	report, err := b.Build(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to collect the hardware inventory: %v", err)
	}

	data, err := a.renderReport(report)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))

	return nil
}

// renderReport serializes a report as indented JSON or as the plain text view.
func (a *App) renderReport(report inventory.Report) ([]byte, error) {
	if a.config.JSON {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal the hardware report: %v", err)
		}
		return data, nil
	}

	return []byte(report.ExportText()), nil
}

// Run executes the command and associated process, returning an error if any.
func (a *App) Run() error {
	return a.cmd.Execute()
}

// UsageError returns if the error is a command parsing or runtime one.
func (a App) UsageError() bool {
	return !a.cmd.SilenceUsage
}

// RootCmd returns a copy of the root command.
func (a App) RootCmd() cobra.Command {
	return *a.cmd
}
