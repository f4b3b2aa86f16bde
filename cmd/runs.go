package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/WSDOT/PGSuper-sub013/internal/config"
	"github.com/WSDOT/PGSuper-sub013/internal/diagram"
	"github.com/WSDOT/PGSuper-sub013/internal/store"
)

var runsDir string

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List and inspect saved design runs",
	Long: `Saved runs are written by 'pgdesign girder design --save' to the
run store directory (PGDESIGN_OUT_DIR, default "runs").

Examples:
  pgdesign runs list
  pgdesign runs show 0a1b2c3d-...`,
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved runs, oldest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := store.NewJSONStore(runsDir).List()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(entries) == 0 {
			fmt.Fprintf(out, "No runs in %s\n", runsDir)
			return nil
		}
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSTARTED\tGIRDER\tOUTCOME")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.ID, e.StartedAt.Format(time.RFC3339), e.Girder, e.Outcome)
		}
		return w.Flush()
	},
}

var runsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a saved run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		run, err := store.NewJSONStore(runsDir).LoadRun(args[0])
		if err != nil {
			return err
		}
		snap := run.Artifact
		cfg := snap.Config
		out := cmd.OutOrStdout()

		lines := []string{
			fmt.Sprintf("Girder:      %s (%s)", run.Girder, snap.Key),
			fmt.Sprintf("Source:      %s", run.Source),
			fmt.Sprintf("Started:     %s", run.StartedAt.Format(time.RFC3339)),
			fmt.Sprintf("Duration:    %s", run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond)),
			fmt.Sprintf("Strands:     %d", cfg.Strands),
			fmt.Sprintf("f'c:         %.1f MPa", cfg.Fc),
			fmt.Sprintf("Iterations:  %d", snap.Iterations),
		}
		fmt.Fprint(out, diagram.DrawSummaryBox(snap.Outcome.String(), lines))
		fmt.Fprintf(out, "\n  Status: %s\n", snap.Message)
		for _, d := range snap.Diagnostics {
			fmt.Fprintf(out, "  • %s\n", d)
		}
		if len(cfg.Layout.Zones) > 0 && run.Length > 0 {
			fmt.Fprint(out, diagram.DrawZoneLayout(cfg.Layout, run.Length))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runsCmd)
	runsCmd.AddCommand(runsListCmd, runsShowCmd)
	runsCmd.PersistentFlags().StringVar(&runsDir, "dir", config.DesignFromEnv().OutDir, "Run store directory")
}
