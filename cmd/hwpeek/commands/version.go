package commands

import (
	"fmt"

	"github.com/hwpeek/hwpeek/internal/constants"
	"github.com/spf13/cobra"
)

func (a *App) installVersion() {
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Returns the version of " + constants.CmdName + " and exits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", constants.CmdName, constants.Version)
			return nil
		},
	}
	a.cmd.AddCommand(versionCmd)
}
