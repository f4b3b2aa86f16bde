package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/WSDOT/PGSuper-sub013/internal/analysis"
	"github.com/WSDOT/PGSuper-sub013/internal/design"
	"github.com/WSDOT/PGSuper-sub013/internal/girder"
	"github.com/WSDOT/PGSuper-sub013/internal/logger"
	"github.com/WSDOT/PGSuper-sub013/internal/lrfd"
)

var showFile string

var girderShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print section properties, critical sections and demand",
	Long: `Load a girder file and print what the design starts from: gross
section properties, the trial strand configuration, the shear critical
sections, the ideal strand count and the stirrup demand at the design
stations.

Examples:
  pgdesign girder show --file wf1600.yaml`,
	RunE: runGirderShow,
}

func init() {
	girderCmd.AddCommand(girderShowCmd)

	girderShowCmd.Flags().StringVarP(&showFile, "file", "f", "", "Path to girder YAML or JSON file [required]")
	girderShowCmd.MarkFlagRequired("file")
}

func runGirderShow(cmd *cobra.Command, args []string) error {
	g, err := girder.LoadFromFile(showFile)
	if err != nil {
		return fmt.Errorf("loading girder: %w", err)
	}
	m := analysis.New(g, logger.Named("analysis"))
	cfg := design.InitialConfig(g)
	out := cmd.OutOrStdout()

	fmt.Fprintln(out)
	fmt.Fprintf(out, "  Girder: %s (%s)\n", g.Name, design.KeyOf(g))
	fmt.Fprintln(out)

	fmt.Fprintln(out, "SECTION PROPERTIES:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	p := m.Properties()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Height (h):\t%.0f mm\n", p.Height)
	fmt.Fprintf(w, "  Area (A):\t%.0f mm²\n", p.Area)
	fmt.Fprintf(w, "  Centroid (yb):\t%.1f mm\n", p.Yb)
	fmt.Fprintf(w, "  Moment of inertia (I):\t%.4g mm⁴\n", p.Ix)
	fmt.Fprintf(w, "  Sb / St:\t%.4g / %.4g mm³\n", p.Sb, p.St)
	fmt.Fprintf(w, "  Top width:\t%.0f mm\n", p.TopWidth)
	fmt.Fprintf(w, "  Minimum web width (bv):\t%.1f mm\n", p.MinWebWidth)
	w.Flush()
	fmt.Fprintln(out)

	sec := m.Section(cfg)
	fmt.Fprintf(out, "TRIAL CONFIGURATION (%d strands, f'c %.1f MPa):\n", cfg.Strands, cfg.Fc)
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Effective prestress (fpe):\t%.1f MPa\n", sec.Fpe)
	fmt.Fprintf(w, "  Strand stress at Mn (fps):\t%.1f MPa\n", sec.Fps)
	fmt.Fprintf(w, "  Neutral axis depth (c):\t%.1f mm\n", sec.C)
	fmt.Fprintf(w, "  Shear depth (dv):\t%.1f mm\n", sec.Dv)
	fmt.Fprintf(w, "  φMn:\t%.1f kN-m\n", lrfd.PhiFlexure*sec.Mn/1e6)
	w.Flush()
	fmt.Fprintln(out)

	ideal, err := m.IdealStrandCount(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	css := m.CriticalSections(cfg)
	face := g.FaceOfSupport()
	fmt.Fprintln(out, "DESIGN LOCATIONS:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Ideal strand count:\t%d\n", ideal)
	fmt.Fprintf(w, "  Face of support:\t%.0f / %.0f mm\n", face[0], face[1])
	fmt.Fprintf(w, "  Critical sections:\t%.0f / %.0f mm\n", css[0], css[1])
	w.Flush()
	fmt.Fprintln(out)

	stations := m.DesignStations(css)
	checks, err := m.StirrupChecks(cmd.Context(), cfg, stations)
	if err != nil {
		return err
	}
	for _, ls := range checks.LimitStates {
		fmt.Fprintf(out, "STIRRUP DEMAND (%s):\n", ls.LimitState)
		fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
		w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "  x (mm)\tAv/s\tInterface Av/s\tvu/f'c\tSmax (mm)\t")
		for _, pt := range ls.Points {
			mark := ""
			if pt.StrutTieRequired {
				mark = " (!)"
			}
			fmt.Fprintf(w, "  %.0f\t%.3f\t%.3f\t%.3f%s\t%.0f\t\n",
				pt.X, pt.AvsReqd, pt.HorizAvsReqd, pt.VuOverFc, mark, pt.SMax)
		}
		w.Flush()
		fmt.Fprintln(out)
	}

	cat := g.Stirrups.Catalog()
	fmt.Fprintln(out, "STIRRUP CATALOG:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for i, c := range cat.Combos() {
		fmt.Fprintf(w, "  %d.\t%s x %.0f legs\tAv = %.0f mm²\tsmin = %.0f mm\n", i+1, c.Bar, c.Legs, c.Av(), cat.MinSpacing(c.Bar))
	}
	w.Flush()
	sps := cat.Spacings()
	parts := make([]string, len(sps))
	for i, sp := range sps {
		parts[i] = strconv.FormatFloat(sp, 'f', -1, 64)
	}
	fmt.Fprintf(out, "  Spacings (mm): %s\n", strings.Join(parts, ", "))
	fmt.Fprintln(out)

	if checks.Splitting.Applicable {
		fmt.Fprintf(out, "  Splitting: Pr = %.0f kN over %.0f mm (Av/s %.3f mm²/mm)\n",
			checks.Splitting.Force[0]/1000, checks.Splitting.ZoneLength[0], checks.Splitting.AvsRequired())
	}
	if checks.Confinement.Applicable {
		fmt.Fprintf(out, "  Confinement: %s @ %.0f mm over %.0f mm\n",
			checks.Confinement.MinBar, checks.Confinement.MaxSpacing, checks.Confinement.ZoneLength[0])
	}
	fmt.Fprintln(out)
	return nil
}
