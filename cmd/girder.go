package cmd

import (
	"github.com/spf13/cobra"
)

var girderCmd = &cobra.Command{
	Use:   "girder",
	Short: "Prestressed girder design and inspection",
	Long: `Design and inspect pretensioned girders described in a YAML or
JSON girder file.

Subcommands:
  design   - Design strands and stirrups for a girder
  show     - Print section properties, critical sections and demand

All calculations follow the AASHTO LRFD edition named in the girder
file criteria.`,
}

func init() {
	rootCmd.AddCommand(girderCmd)
}
