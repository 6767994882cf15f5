package commands

import (
	"fmt"
	"log/slog"

	"github.com/hwpeek/hwpeek/internal/fileutils"
	"github.com/hwpeek/hwpeek/internal/inventory"
	"github.com/spf13/cobra"
	"github.com/ubuntu/decorate"
)

type exportConfig struct {
	output string
}

func (a *App) installExport() error {
	a.exportConfig = exportConfig{}

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write the hardware report to a file or standard output",
		Long: `Collect the full hardware inventory and write it out, as plain text or as JSON with --json.

With --output the report is written atomically to the given file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.exportRun(cmd)
		},
	}

	exportCmd.Flags().StringVarP(&a.exportConfig.output, "output", "o", "", "write the report to this file instead of standard output")
	if err := exportCmd.MarkFlagFilename("output"); err != nil {
		return fmt.Errorf("failed to mark output flag as filename: %w", err)
	}

	a.cmd.AddCommand(exportCmd)
	return nil
}

func (a *App) exportRun(cmd *cobra.Command) (err error) {
	defer decorate.OnError(&err, "failed to export the hardware report")

	b := inventory.New(a.newProbe())
	report, err := b.Build(cmd.Context())
	if err != nil {
		return err
	}

	data, err := a.renderReport(report)
	if err != nil {
		return err
	}

	if a.exportConfig.output == "" {
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	if err := fileutils.AtomicWrite(a.exportConfig.output, append(data, '\n')); err != nil {
		return err
	}
	slog.Info("Hardware report written", "path", a.exportConfig.output)

	return nil
}
