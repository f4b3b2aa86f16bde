package diagram

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WSDOT/PGSuper-sub013/internal/envelope"
	"github.com/WSDOT/PGSuper-sub013/internal/lrfd"
	"github.com/WSDOT/PGSuper-sub013/internal/stirrup"
)

func symmetricLayout() stirrup.Layout {
	l := stirrup.Layout{
		Symmetric: true,
		Zones: []stirrup.Zone{
			{Length: 1500, BarSize: lrfd.Bar5, Legs: 2, Spacing: 100, ConfinementBarSize: lrfd.Bar3},
			{Length: 3000, BarSize: lrfd.Bar5, Legs: 2, Spacing: 200},
			{Length: 0, BarSize: lrfd.Bar4, Legs: 2, Spacing: 400},
		},
		InterfaceZones: []stirrup.InterfaceZone{
			{Length: 0, BarSize: lrfd.Bar4, Bars: 2, Spacing: 600},
		},
		SplittingBarSize:    lrfd.Bar5,
		SplittingBars:       2,
		SplittingSpacing:    75,
		SplittingZoneLength: 400,
	}
	l.Renumber()
	return l
}

func TestZoneExtentsSymmetric(t *testing.T) {
	ext := ZoneExtents(symmetricLayout(), 20000)
	require.Len(t, ext, 5)

	want := []ZoneExtent{
		{Index: 0, Start: 0, End: 1500},
		{Index: 1, Start: 1500, End: 4500},
		{Index: 2, Start: 4500, End: 15500},
		{Index: 1, Start: 15500, End: 18500},
		{Index: 0, Start: 18500, End: 20000},
	}
	for i, w := range want {
		assert.Equal(t, w.Index, ext[i].Index, "extent %d", i)
		assert.InDelta(t, w.Start, ext[i].Start, 1e-9, "extent %d", i)
		assert.InDelta(t, w.End, ext[i].End, 1e-9, "extent %d", i)
	}
	assert.InDelta(t, 2*199/100.0, ext[0].Avs, 1e-9)
	assert.InDelta(t, ext[0].Avs, ext[4].Avs, 1e-12)
}

func TestZoneExtentsUnsymmetric(t *testing.T) {
	l := symmetricLayout()
	l.Symmetric = false
	ext := ZoneExtents(l, 20000)
	require.Len(t, ext, 3)
	assert.InDelta(t, 20000, ext[2].End, 1e-9)

	single := stirrup.Layout{Symmetric: true, Zones: []stirrup.Zone{{BarSize: lrfd.Bar4, Legs: 2, Spacing: 300}}}
	ext = ZoneExtents(single, 20000)
	require.Len(t, ext, 1)
	assert.InDelta(t, 0, ext[0].Start, 1e-9)
	assert.InDelta(t, 20000, ext[0].End, 1e-9)

	assert.Nil(t, ZoneExtents(stirrup.Layout{}, 20000))
}

func TestDrawZoneLayout(t *testing.T) {
	out := DrawZoneLayout(symmetricLayout(), 20000)

	assert.Contains(t, out, "symmetric about midspan")
	assert.Contains(t, out, "├")
	assert.Equal(t, 4, strings.Count(out, "┼"))
	assert.Contains(t, out, "#5")
	assert.Contains(t, out, "mid")
	assert.Contains(t, out, "Horizontal interface zones")
	assert.Contains(t, out, "Splitting: 2-#5 @ 75 mm over 400.0 mm")
	assert.NotContains(t, out, "Confinement: ")

	assert.Contains(t, DrawZoneLayout(stirrup.Layout{}, 20000), "(no zones)")
}

func TestSampleDemand(t *testing.T) {
	vert := envelope.NewFunction(envelope.Point{X: 0, Y: 2}, envelope.Point{X: 10000, Y: 0.5}, envelope.Point{X: 20000, Y: 2})
	s := SampleDemand(vert, nil, symmetricLayout(), 20000, 4)

	require.Len(t, s.X, 5)
	assert.InDelta(t, 2, s.Vertical[0], 1e-9)
	assert.InDelta(t, 0.5, s.Vertical[2], 1e-9)
	assert.InDelta(t, 1.25, s.Vertical[1], 1e-9)
	assert.Zero(t, s.Horizontal[2])
	assert.InDelta(t, 2*199/100.0, s.Provided[0], 1e-9)
	assert.InDelta(t, 2*129/400.0, s.Provided[2], 1e-9)
}

func TestDrawDemandGraph(t *testing.T) {
	vert := envelope.NewFunction(envelope.Point{X: 0, Y: 2}, envelope.Point{X: 20000, Y: 2})
	s := SampleDemand(vert, nil, symmetricLayout(), 20000, 40)

	out := DrawDemandGraph(s, 8)
	assert.Contains(t, out, "required, provided")
	assert.NotContains(t, out, "interface")
	assert.Empty(t, DrawDemandGraph(DemandSeries{}, 8))
}

func TestDrawSummaryBox(t *testing.T) {
	out := DrawSummaryBox("DESIGN", []string{"f'c = 51 MPa", "Av/s = 0.398 mm²/mm"})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 6)

	width := utf8.RuneCountInString(lines[0])
	for _, l := range lines {
		assert.Equal(t, width, utf8.RuneCountInString(l), l)
	}
}

func TestExportDemandDiagram(t *testing.T) {
	vert := envelope.NewFunction(envelope.Point{X: 0, Y: 2}, envelope.Point{X: 10000, Y: 0.5}, envelope.Point{X: 20000, Y: 2})
	horiz := envelope.NewFunction(envelope.Point{X: 0, Y: 0.3}, envelope.Point{X: 20000, Y: 0.3})
	l := symmetricLayout()
	s := SampleDemand(vert, horiz, l, 20000, 50)
	dir := t.TempDir()

	for _, name := range []string{"demand.png", "demand.svg", "plots/demand.pdf"} {
		t.Run(name, func(t *testing.T) {
			path, err := ExportDemandDiagram(s, ZoneExtents(l, 20000), "Span 1 Girder A", filepath.Join(dir, name))
			require.NoError(t, err)
			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Greater(t, info.Size(), int64(0))
		})
	}

	path, err := ExportDemandDiagram(s, nil, "no zones", filepath.Join(dir, "demand.txt"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "demand.txt.png"), path)

	_, err = ExportDemandDiagram(DemandSeries{}, nil, "", filepath.Join(dir, "x.png"))
	assert.Error(t, err)
}
