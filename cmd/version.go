package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/WSDOT/PGSuper-sub013/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of pgdesign",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.String())
		fmt.Fprintln(cmd.OutOrStdout(), "Prestressed girder design to AASHTO LRFD")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
