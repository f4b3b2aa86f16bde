package diagram

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/guptarohit/asciigraph"

	"github.com/WSDOT/PGSuper-sub013/internal/lrfd"
	"github.com/WSDOT/PGSuper-sub013/internal/stirrup"
)

// stripChars is the width of the girder elevation strip
const stripChars = 60

// ZoneExtent is the stretch of girder covered by one primary zone
type ZoneExtent struct {
	Index int     // index into Layout.Zones
	Start float64 // mm from girder start
	End   float64
	Avs   float64 // primary Av/s provided (mm²/mm)
}

// ZoneExtents lays the primary zones out along the whole girder. Symmetric
// layouts are mirrored about midspan and the middle zone is reported once.
func ZoneExtents(l stirrup.Layout, girderLength float64) []ZoneExtent {
	if len(l.Zones) == 0 || girderLength <= 0 {
		return nil
	}
	end := girderLength
	if l.Symmetric {
		end = girderLength / 2
	}

	var out []ZoneExtent
	var x float64
	for i, z := range l.Zones {
		next := x + z.Length
		if i == len(l.Zones)-1 || z.Length <= 0 || next > end-lrfd.SpacingTol {
			next = end
		}
		out = append(out, ZoneExtent{Index: i, Start: x, End: next, Avs: z.Avs()})
		x = next
		if x >= end {
			break
		}
	}
	if !l.Symmetric {
		return out
	}

	half := len(out)
	for i := half - 1; i >= 0; i-- {
		e := out[i]
		out = append(out, ZoneExtent{Index: e.Index, Start: girderLength - e.End, End: girderLength - e.Start, Avs: e.Avs})
	}
	// the zone at midspan appears in both halves
	out[half-1].End = out[half].End
	return append(out[:half], out[half+1:]...)
}

// DrawZoneLayout renders the stirrup layout as an elevation strip followed
// by the zone tables
func DrawZoneLayout(l stirrup.Layout, girderLength float64) string {
	var sb strings.Builder

	title := "STIRRUP ZONES"
	if l.Symmetric {
		title += " (symmetric about midspan)"
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  %s\n", title))
	sb.WriteString(fmt.Sprintf("  %s\n\n", strings.Repeat("─", utf8.RuneCountInString(title))))

	extents := ZoneExtents(l, girderLength)
	if len(extents) == 0 {
		sb.WriteString("  (no zones)\n")
		return sb.String()
	}

	sb.WriteString("  ")
	for i, e := range extents {
		if i == 0 {
			sb.WriteString("├")
		}
		sb.WriteString(stripSegment(l.Zones[e.Index].Number, (e.End-e.Start)/girderLength))
		if i == len(extents)-1 {
			sb.WriteString("┤")
		} else {
			sb.WriteString("┼")
		}
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  0%*.0f mm\n\n", stripChars+len(extents)-1, girderLength))

	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  Zone\tEnd (mm)\tBar\tLegs\tSpacing (mm)\tAv/s (mm²/mm)\tConfinement")
	for i, z := range l.Zones {
		end := fmt.Sprintf("%.1f", zoneEnd(l, i))
		if i == len(l.Zones)-1 || z.Length <= 0 {
			end = "mid"
			if !l.Symmetric {
				end = "end"
			}
		}
		conf := "-"
		if z.ConfinementBarSize != lrfd.BarNone {
			conf = z.ConfinementBarSize.String()
		}
		fmt.Fprintf(w, "  %d\t%s\t%s\t%.0f\t%.0f\t%.3f\t%s\n",
			z.Number, end, z.BarSize, z.Legs, z.Spacing, z.Avs(), conf)
	}
	w.Flush()

	if len(l.InterfaceZones) > 0 {
		sb.WriteString("\n  Horizontal interface zones:\n")
		w = tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "  Zone\tLength (mm)\tBar\tBars\tSpacing (mm)")
		for _, z := range l.InterfaceZones {
			fmt.Fprintf(w, "  %d\t%.1f\t%s\t%.0f\t%.0f\n", z.Number, z.Length, z.BarSize, z.Bars, z.Spacing)
		}
		w.Flush()
	}

	if l.SplittingBarSize != lrfd.BarNone && l.SplittingZoneLength > 0 {
		sb.WriteString(fmt.Sprintf("\n  Splitting: %.0f-%s @ %.0f mm over %.1f mm\n",
			l.SplittingBars, l.SplittingBarSize, l.SplittingSpacing, l.SplittingZoneLength))
	}
	if l.ConfinementBarSize != lrfd.BarNone && l.ConfinementZoneLength > 0 {
		sb.WriteString(fmt.Sprintf("  Confinement: %s @ %.0f mm over %.1f mm\n",
			l.ConfinementBarSize, l.ConfinementSpacing, l.ConfinementZoneLength))
	}
	return sb.String()
}

func zoneEnd(l stirrup.Layout, i int) float64 {
	var end float64
	for _, z := range l.Zones[:i+1] {
		end += z.Length
	}
	return end
}

// stripSegment draws one zone of the elevation strip with its number centered
func stripSegment(number int, fraction float64) string {
	label := fmt.Sprintf("%d", number)
	n := int(fraction*stripChars + 0.5)
	if n < len(label) {
		return strings.Repeat("─", max(n, 1))
	}
	left := (n - len(label)) / 2
	return strings.Repeat("─", left) + label + strings.Repeat("─", n-len(label)-left)
}

// DrawDemandGraph plots the required and provided Av/s along the girder
func DrawDemandGraph(s DemandSeries, height int) string {
	if len(s.X) < 2 {
		return ""
	}
	data := [][]float64{s.Vertical, s.Provided}
	if hasValues(s.Horizontal) {
		data = append(data, s.Horizontal)
	}
	caption := fmt.Sprintf("Av/s (mm²/mm) over %.0f mm: required, provided", s.X[len(s.X)-1]-s.X[0])
	if len(data) == 3 {
		caption += ", interface"
	}
	return asciigraph.PlotMany(data,
		asciigraph.Height(height),
		asciigraph.Width(stripChars),
		asciigraph.Precision(3),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(asciigraph.Red, asciigraph.Green, asciigraph.Blue),
	)
}

func hasValues(v []float64) bool {
	for _, y := range v {
		if y > 0 {
			return true
		}
	}
	return false
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := utf8.RuneCountInString(title)
	for _, line := range lines {
		maxLen = max(maxLen, utf8.RuneCountInString(line))
	}
	maxLen += 4

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(title, maxLen-4)))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(line, maxLen-4)))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}

// pad right-pads s to n runes; fmt widths count bytes
func pad(s string, n int) string {
	return s + strings.Repeat(" ", max(n-utf8.RuneCountInString(s), 0))
}
