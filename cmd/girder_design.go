package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/WSDOT/PGSuper-sub013/internal/artifact"
	"github.com/WSDOT/PGSuper-sub013/internal/config"
	"github.com/WSDOT/PGSuper-sub013/internal/design"
	"github.com/WSDOT/PGSuper-sub013/internal/diagram"
	"github.com/WSDOT/PGSuper-sub013/internal/girder"
	"github.com/WSDOT/PGSuper-sub013/internal/logger"
	"github.com/WSDOT/PGSuper-sub013/internal/store"
)

var (
	designFile        string
	designMaxRestarts int
	designSave        bool
	designOutDir      string
	designJSON        bool

	// Diagram options
	designShowDiagram bool
	designShowGraph   bool
	designExportFile  string
)

// graphSamples is the number of stations sampled for demand plots
const graphSamples = 120

var girderDesignCmd = &cobra.Command{
	Use:   "design",
	Short: "Design strands and stirrups for a girder",
	Long: `Run the automated design of a pretensioned girder: converge the
strand count, lay out the stirrup zones and detail interface, splitting
and confinement reinforcement. The design restarts when the stirrup
design needs more longitudinal reinforcement or stronger concrete.

A failed design still prints the reinforcement it reached and the
reason it stopped.

Examples:
  # Design the girder in wf1600.yaml
  pgdesign girder design --file wf1600.yaml

  # Show the zone layout, plot the demand and keep the run
  pgdesign girder design -f wf1600.yaml --diagram --graph -o plots/wf1600.png --save`,
	RunE: runGirderDesign,
}

func init() {
	girderCmd.AddCommand(girderDesignCmd)

	env := config.DesignFromEnv()
	girderDesignCmd.Flags().StringVarP(&designFile, "file", "f", "", "Path to girder YAML or JSON file [required]")
	girderDesignCmd.Flags().IntVar(&designMaxRestarts, "max-restarts", env.MaxRestarts, "Override the girder file restart limit (0 keeps it)")
	girderDesignCmd.Flags().BoolVar(&designSave, "save", false, "Save the run to the run store")
	girderDesignCmd.Flags().StringVar(&designOutDir, "out-dir", env.OutDir, "Run store directory")
	girderDesignCmd.Flags().BoolVar(&designJSON, "json", false, "Print the design artifact as JSON")
	girderDesignCmd.MarkFlagRequired("file")

	// Diagram options
	girderDesignCmd.Flags().BoolVar(&designShowDiagram, "diagram", false, "Show the ASCII stirrup zone layout")
	girderDesignCmd.Flags().BoolVar(&designShowGraph, "graph", false, "Show an ASCII graph of Av/s demand and supply")
	girderDesignCmd.Flags().StringVarP(&designExportFile, "output", "o", "", "Export demand diagram to file (png, svg, pdf)")
}

func runGirderDesign(cmd *cobra.Command, args []string) error {
	g, err := girder.LoadFromFile(designFile)
	if err != nil {
		return fmt.Errorf("loading girder: %w", err)
	}
	if designMaxRestarts > 0 {
		g.Criteria.MaxRestarts = designMaxRestarts
	}

	st := store.NewJSONStore(designOutDir)
	runID := st.NewID()
	key := design.KeyOf(g)
	ctx := logger.WithRun(cmd.Context(), runID, key.String())
	log := logger.C(ctx)

	d := design.NewFromGirder(g, log)
	started := time.Now().UTC()
	art, err := d.Run(ctx, key, design.InitialConfig(g))
	if err != nil {
		log.Error().Stack().Err(err).Msg("design run aborted")
		return err
	}
	snap := art.Snapshot()

	if designSave {
		file, err := st.SaveRun(store.Run{
			ID:         runID,
			Girder:     g.Name,
			Source:     designFile,
			Length:     g.Length,
			StartedAt:  started,
			FinishedAt: time.Now().UTC(),
			Artifact:   snap,
		})
		if err != nil {
			return err
		}
		log.Info().Str("file", file).Msg("run saved")
	}

	out := cmd.OutOrStdout()
	if designJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	}

	printDesignReport(out, g, snap)

	layout := snap.Config.Layout
	if designShowDiagram {
		fmt.Fprintln(out, diagram.DrawZoneLayout(layout, g.Length))
	}

	if designShowGraph || designExportFile != "" {
		vert, horiz := d.DemandEnvelopes()
		series := diagram.SampleDemand(vert, horiz, layout, g.Length, graphSamples)
		if designShowGraph {
			fmt.Fprintln(out)
			fmt.Fprintln(out, diagram.DrawDemandGraph(series, 12))
			fmt.Fprintln(out)
		}
		if designExportFile != "" {
			path, err := diagram.ExportDemandDiagram(series, diagram.ZoneExtents(layout, g.Length), key.String(), designExportFile)
			if err != nil {
				return fmt.Errorf("exporting diagram: %w", err)
			}
			fmt.Fprintf(out, "  Diagram exported to: %s\n\n", path)
		}
	}

	if snap.Outcome.Failed() {
		return fmt.Errorf("design of %s failed: %s", key, snap.Outcome)
	}
	return nil
}

func printDesignReport(out io.Writer, g *girder.Girder, snap artifact.Snapshot) {
	cfg := snap.Config

	fmt.Fprintln(out)
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out, "     PRESTRESSED GIRDER DESIGN - AASHTO LRFD")
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out)

	fmt.Fprintf(out, "  Girder: %s (%s)\n", g.Name, snap.Key)
	if g.Description != "" {
		fmt.Fprintf(out, "  Description: %s\n", g.Description)
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "GIRDER DATA:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	p := g.Properties()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Length:\t%.0f mm\n", g.Length)
	fmt.Fprintf(w, "  Span (bearing to bearing):\t%.0f mm\n", g.SpanLength())
	fmt.Fprintf(w, "  Height:\t%.0f mm\n", p.Height)
	fmt.Fprintf(w, "  Area:\t%.0f mm²\n", p.Area)
	fmt.Fprintf(w, "  Minimum web width:\t%.1f mm\n", p.MinWebWidth)
	if g.Deck != nil {
		fmt.Fprintf(w, "  Deck:\t%.0f x %.0f mm\n", g.Deck.Thickness, g.Deck.Width)
	}
	fmt.Fprintf(w, "  Specification:\tLRFD %s\n", g.Criteria.Edition)
	w.Flush()
	fmt.Fprintln(out)

	fmt.Fprintln(out, "DESIGN RESULT:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	lines := []string{
		fmt.Sprintf("Strands:           %d (minimum %d)", cfg.Strands, cfg.MinStrands),
		fmt.Sprintf("f'c / f'ci:        %.1f / %.1f MPa", cfg.Fc, cfg.Fci),
		fmt.Sprintf("Stirrup zones:     %d", len(cfg.Layout.Zones)),
		fmt.Sprintf("Iterations:        %d", snap.Iterations),
	}
	if cfg.LongRebarArea > 0 {
		lines = append(lines, fmt.Sprintf("Long. rebar:       %.0f mm²", cfg.LongRebarArea))
	}
	fmt.Fprint(out, diagram.DrawSummaryBox(snap.Outcome.String(), lines))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  Status: %s\n", snap.Message)
	fmt.Fprintln(out)

	if len(snap.Diagnostics) > 0 {
		fmt.Fprintln(out, "DIAGNOSTICS:")
		fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
		for _, d := range snap.Diagnostics {
			fmt.Fprintf(out, "  • %s\n", d)
		}
		fmt.Fprintln(out)
	}
}
