package girder

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WSDOT/PGSuper-sub013/internal/lrfd"
	"github.com/WSDOT/PGSuper-sub013/internal/stirrup"
)

func rectangle(b, h float64) []Point {
	return []Point{{-b / 2, 0}, {b / 2, 0}, {b / 2, h}, {-b / 2, h}}
}

func TestRectangleProperties(t *testing.T) {
	g := &Girder{Vertices: rectangle(300, 600)}
	p := g.Properties()

	assert.InDelta(t, 600, p.Height, 1e-9)
	assert.InDelta(t, 180000, p.Area, 1e-6)
	assert.InDelta(t, 300, p.Yb, 1e-9)
	assert.InDelta(t, 300*600*600*600/12.0, p.Ix, 1)
	assert.InDelta(t, p.Ix/300, p.Sb, 1)
	assert.InDelta(t, 300, p.TopWidth, 1e-9)
	assert.InDelta(t, 300, p.MinWebWidth, 1e-9)
	assert.InDelta(t, 300, g.WidthAtDepth(100), 1e-9)
}

func TestClockwiseVerticesGiveSameProperties(t *testing.T) {
	ccw := &Girder{Vertices: rectangle(300, 600)}
	v := rectangle(300, 600)
	for i, j := 0, len(v)-1; i < j; i, j = i+1, j-1 {
		v[i], v[j] = v[j], v[i]
	}
	cw := &Girder{Vertices: v}
	assert.InDelta(t, ccw.Properties().Ix, cw.Properties().Ix, 1)
	assert.InDelta(t, ccw.Properties().Yb, cw.Properties().Yb, 1e-9)
}

func TestLoadSampleGirder(t *testing.T) {
	g, err := LoadFromFile(filepath.Join("testdata", "wf1600.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "WF1600 interior girder", g.Name)
	assert.Equal(t, lrfd.Edition2017, g.Criteria.EditionValue())
	require.Len(t, g.Stirrups.Combos, 3)
	assert.Equal(t, lrfd.Bar5, g.Stirrups.Combos[2].Bar)
	assert.Equal(t, 4.0, g.Stirrups.Combos[2].Legs)

	p := g.Properties()
	assert.InDelta(t, 1600, p.Height, 1e-9)
	assert.InDelta(t, 155, p.MinWebWidth, 1e-6)
	assert.InDelta(t, 1200, p.TopWidth, 1e-6)
	require.NotNil(t, g.Deck)
	assert.InDelta(t, 1200, g.Deck.InterfaceWidth, 1e-6)

	assert.Equal(t, [2]float64{400, 39600}, g.FaceOfSupport())
	assert.InDelta(t, 39700, g.SpanLength(), 1e-9)
	assert.True(t, g.Stirrups.Layout.Symmetric)

	cat := g.Stirrups.Catalog()
	assert.Equal(t, 600.0, cat.MaxMaxSpacing())
}

func TestLoadJSONRoundTrip(t *testing.T) {
	g, err := LoadFromFile(filepath.Join("testdata", "wf1600.yaml"))
	require.NoError(t, err)

	data, err := json.Marshal(g)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "girder.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	back, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, g.Stirrups.Combos, back.Stirrups.Combos)
	assert.Equal(t, g.Criteria, back.Criteria)
}

func TestLoadRejectsUnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "girder.txt")
	require.NoError(t, os.WriteFile(path, []byte("name: x"), 0o644))
	_, err := LoadFromFile(path)
	assert.ErrorContains(t, err, "unsupported girder file type")
}

func validGirder() *Girder {
	g := &Girder{
		Name:      "test",
		Length:    20000,
		Vertices:  rectangle(400, 1000),
		Materials: Materials{Fc: 40, Fci: 30, RebarFy: 420, StirrupFy: 420},
		Strands:   Strands{Diameter: 12.7, Area: 99, MaxCount: 20, Centroid: 75},
		Supports:  Supports{Start: Support{ConnectionLength: 150, Width: 300}, End: Support{ConnectionLength: 150, Width: 300}},
		Stirrups: Stirrups{
			Combos:   []stirrup.BarLegs{{Bar: lrfd.Bar4, Legs: 2}},
			Spacings: []float64{100, 200, 300},
		},
	}
	g.ApplyDefaults()
	return g
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(g *Girder)
		field  string
	}{
		{"valid", func(g *Girder) {}, ""},
		{"missing name", func(g *Girder) { g.Name = "" }, "name"},
		{"too few vertices", func(g *Girder) { g.Vertices = g.Vertices[:2] }, "vertices"},
		{"release strength", func(g *Girder) { g.Materials.Fci = 50 }, "materials.fci"},
		{"max fc below fc", func(g *Girder) { g.Materials.MaxFc = 30 }, "materials.max_fc"},
		{"strands outside", func(g *Girder) { g.Strands.Centroid = 1200 }, "strands.centroid"},
		{"loss fraction", func(g *Girder) { g.Strands.LossFraction = 1.5 }, "strands.loss_fraction"},
		{"edition", func(g *Girder) { g.Criteria.Edition = "1994" }, "criteria.edition"},
		{"method", func(g *Girder) { g.Criteria.LongReinfMethod = "glue" }, "criteria.long_reinf_method"},
		{"no spacings", func(g *Girder) { g.Stirrups.Spacings = nil }, "stirrups.spacings"},
		{"empty combo", func(g *Girder) { g.Stirrups.Combos[0].Legs = 0 }, "stirrups.combos[0]"},
		{"overlapping supports", func(g *Girder) { g.Supports.Start.ConnectionLength = 19700 }, "supports"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := validGirder()
			tt.modify(g)
			err := g.Validate()
			if tt.field == "" {
				require.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}
