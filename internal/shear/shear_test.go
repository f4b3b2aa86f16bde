package shear

import (
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WSDOT/PGSuper-sub013/internal/artifact"
	"github.com/WSDOT/PGSuper-sub013/internal/envelope"
	"github.com/WSDOT/PGSuper-sub013/internal/lrfd"
	"github.com/WSDOT/PGSuper-sub013/internal/stirrup"
)

const girderLength = 20000.0

var testCritical = envelope.CriticalSectionZone{Left: 1000, Right: girderLength - 1000}

func testCatalog() *stirrup.Catalog {
	c := stirrup.NewCatalog(
		[]stirrup.BarLegs{{Bar: lrfd.Bar4, Legs: 2}, {Bar: lrfd.Bar5, Legs: 2}, {Bar: lrfd.Bar5, Legs: 4}},
		[]float64{75, 100, 125, 150, 175, 200, 250, 300, 350, 400, 450, 500, 600},
	)
	c.MaxSpacingChange = 150
	c.MaxCapacityChange = 0.5
	c.MinZoneSpacings = 3
	c.MinZoneLength = 500
	c.MaxSpacing = 600
	c.MaxAggregate = 19
	return c
}

func testParams() Params {
	return Params{
		GirderLength:         girderLength,
		Height:               1000,
		FaceOfSupport:        [2]float64{300, girderLength - 300},
		ConnectionLength:     [2]float64{150, 150},
		Catalog:              testCatalog(),
		FromScratch:          true,
		Edition:              lrfd.Edition2017,
		RebarFy:              420,
		IncludeRebarForShear: true,
	}
}

// testChecks builds a single limit state of checks every 500 mm
func testChecks(vert, horiz func(x float64) float64) CheckSet {
	var pts []PointCheck
	for x := 0.0; x <= girderLength+1; x += 500 {
		pts = append(pts, PointCheck{X: x, AvsReqd: vert(x), HorizAvsReqd: horiz(x), SMax: 600})
	}
	return CheckSet{
		LimitStates:         []LimitStateChecks{{LimitState: lrfd.StrengthI, Points: pts}},
		MaxConnectorSpacing: 600,
	}
}

func constant(v float64) func(float64) float64 { return func(float64) float64 { return v } }

// tapered demand is largest at the ends and smallest at midspan
func tapered(x float64) float64 {
	d := math.Min(x, girderLength-x)
	return 1.0 - 0.9*d/(girderLength/2)
}

func newDesigner(p Params, checks CheckSet, cfg artifact.Config, checker LongReinfShearChecker) *Designer {
	d := NewDesigner(p, checker, zerolog.Nop())
	if cfg.Fc == 0 {
		cfg.Fc = 40
	}
	d.Reset(cfg, checks)
	return d
}

func TestZeroDemandGivesSingleEmptyZone(t *testing.T) {
	d := newDesigner(testParams(), testChecks(constant(0), constant(0)), artifact.Config{}, nil)

	out, err := d.DesignStirrups(testCritical.Left, testCritical.Right)
	require.NoError(t, err)
	assert.Equal(t, Success, out)

	l := d.Layout()
	require.Len(t, l.Zones, 1)
	assert.Equal(t, lrfd.BarNone, l.Zones[0].BarSize)
	assert.Equal(t, 0.0, l.Zones[0].Length)
	assert.True(t, l.Symmetric)
}

func TestUnsatisfiableDemandFails(t *testing.T) {
	d := newDesigner(testParams(), testChecks(constant(100), constant(0)), artifact.Config{}, nil)

	out, err := d.DesignStirrups(testCritical.Left, testCritical.Right)
	require.NoError(t, err)
	assert.Equal(t, Fail, out)
	assert.Equal(t, artifact.TooManyStirrupsReqd, d.FailureReason())
}

func TestHorizontalDemandFailureIsDistinguished(t *testing.T) {
	p := testParams()
	p.ExtendBarsIntoDeck = true
	p.HasDeck = true
	d := newDesigner(p, testChecks(constant(0.5), constant(100)), artifact.Config{}, nil)

	out, err := d.DesignStirrups(testCritical.Left, testCritical.Right)
	require.NoError(t, err)
	assert.Equal(t, Fail, out)
	assert.Equal(t, artifact.TooManyStirrupsReqdForHorizontalInterfaceShear, d.FailureReason())
}

func TestLayoutFromScratchCoversDemand(t *testing.T) {
	p := testParams()
	d := newDesigner(p, testChecks(tapered, constant(0)), artifact.Config{}, nil)

	out, err := d.DesignStirrups(testCritical.Left, testCritical.Right)
	require.NoError(t, err)
	require.Equal(t, Success, out)

	l := d.Layout()
	require.Greater(t, len(l.Zones), 1)
	assert.True(t, l.Symmetric)
	assert.Equal(t, 0.0, l.Zones[len(l.Zones)-1].Length)

	cat := p.Catalog
	for i, z := range l.Zones {
		assert.Equal(t, i+1, z.Number)
		assert.Equal(t, lrfd.Bar4, z.BarSize, "one combination for the whole layout")
		if i > 0 {
			prev := l.Zones[i-1]
			assert.Greater(t, prev.Length, 0.0)
			assert.GreaterOrEqual(t, z.Spacing, prev.Spacing)
			assert.LessOrEqual(t, z.Spacing, cat.MaxNextSpacing(prev.Spacing)+1e-9)
		}
	}

	demand, _ := d.DemandEnvelopes()
	for x := 0.0; x <= girderLength; x += 500 {
		req := demand.MaxInRange(x, x)
		assert.GreaterOrEqual(t, l.AvsAt(x, girderLength), req-1e-9, "station %.0f", x)
	}
}

func TestLayoutUsesMidspanSymmetricDemand(t *testing.T) {
	// demand only near the right end must still be covered from the left
	right := func(x float64) float64 {
		if x > girderLength-3000 {
			return 1.0
		}
		return 0.1
	}
	d := newDesigner(testParams(), testChecks(right, constant(0)), artifact.Config{}, nil)

	out, err := d.DesignStirrups(testCritical.Left, testCritical.Right)
	require.NoError(t, err)
	require.Equal(t, Success, out)

	l := d.Layout()
	assert.GreaterOrEqual(t, l.AvsAt(girderLength-1500, girderLength), 1.0)
	assert.GreaterOrEqual(t, l.AvsAt(1500, girderLength), 1.0)
}

func TestModifyExistingLayoutRaisesSupportZones(t *testing.T) {
	p := testParams()
	p.FromScratch = false
	cfg := artifact.Config{Layout: stirrup.Layout{
		Symmetric: true,
		Zones: []stirrup.Zone{
			{Number: 1, Length: 300, BarSize: lrfd.Bar4, Legs: 2, Spacing: 200},
			{Number: 2, Length: 1500, BarSize: lrfd.Bar4, Legs: 2, Spacing: 100},
			{Number: 3, Length: 0, BarSize: lrfd.Bar4, Legs: 2, Spacing: 300},
		},
	}}
	d := newDesigner(p, testChecks(constant(1.2), constant(0)), cfg, nil)

	out, err := d.DesignStirrups(testCritical.Left, testCritical.Right)
	require.NoError(t, err)
	require.Equal(t, Success, out)

	zones := d.Layout().Zones
	require.Len(t, zones, 3)

	// zone between the support and the critical section matches it
	assert.Equal(t, 100.0, zones[0].Spacing)
	assert.True(t, zones[0].Designed)
	assert.GreaterOrEqual(t, zones[0].Avs(), zones[1].Avs())

	assert.Equal(t, 100.0, zones[1].Spacing)
	assert.False(t, zones[1].Designed)

	// limited by the spacing change from zone 2
	assert.Equal(t, 150.0, zones[2].Spacing)
	assert.True(t, zones[2].Designed)
	assert.GreaterOrEqual(t, zones[2].Avs(), 1.2)

	// boundaries are kept
	assert.Equal(t, 300.0, zones[0].Length)
	assert.Equal(t, 1500.0, zones[1].Length)
}

func TestModifyAsymmetricLayoutWalksBothEnds(t *testing.T) {
	p := testParams()
	p.FromScratch = false
	cfg := artifact.Config{Layout: stirrup.Layout{
		Symmetric: false,
		Zones: []stirrup.Zone{
			{Number: 1, Length: 2000, BarSize: lrfd.Bar4, Legs: 2, Spacing: 150},
			{Number: 2, Length: 16000, BarSize: lrfd.Bar4, Legs: 2, Spacing: 450},
			{Number: 3, Length: 0, BarSize: lrfd.Bar4, Legs: 2, Spacing: 600},
		},
	}}
	d := newDesigner(p, testChecks(tapered, constant(0)), cfg, nil)

	out, err := d.DesignStirrups(testCritical.Left, testCritical.Right)
	require.NoError(t, err)
	require.Equal(t, Success, out)

	l := d.Layout()
	demand, _ := d.DemandEnvelopes()
	for x := 0.0; x <= girderLength; x += 500 {
		assert.GreaterOrEqual(t, l.AvsAt(x, girderLength), demand.MaxInRange(x, x)-1e-9, "station %.0f", x)
	}
	assert.True(t, l.Zones[2].Designed)
}

func TestModifyAsymmetricLayoutFollowsLocalDemand(t *testing.T) {
	p := testParams()
	p.FromScratch = false
	cfg := artifact.Config{Layout: stirrup.Layout{
		Symmetric: false,
		Zones: []stirrup.Zone{
			{Number: 1, Length: 2000, BarSize: lrfd.Bar4, Legs: 2, Spacing: 600},
			{Number: 2, Length: 16000, BarSize: lrfd.Bar4, Legs: 2, Spacing: 250},
			{Number: 3, Length: 0, BarSize: lrfd.Bar4, Legs: 2, Spacing: 600},
		},
	}}
	bump := func(x float64) float64 {
		if x >= 8000 && x <= 9500 {
			return 1.0
		}
		return 0.2
	}
	d := newDesigner(p, testChecks(bump, constant(0)), cfg, nil)

	out, err := d.DesignStirrups(testCritical.Left, testCritical.Right)
	require.NoError(t, err)
	require.Equal(t, Success, out)

	demand, _ := d.DemandEnvelopes()
	assert.InDelta(t, 0.2, demand.MaxInRange(2000, 2000), 1e-12, "demand is not raised toward the ends")

	zones := d.Layout().Zones
	assert.Equal(t, 600.0, zones[0].Spacing)
	assert.False(t, zones[0].Designed)
	assert.Equal(t, 250.0, zones[1].Spacing)
	assert.Equal(t, 600.0, zones[2].Spacing)
}

func TestExpandZoneLengths(t *testing.T) {
	zones := []stirrup.Zone{
		{Length: 1000, Spacing: 300, Designed: true},
		{Length: 900, Spacing: 300, Designed: true},
		{Length: 1000, Spacing: 300},
		{Length: 0, Spacing: 300, Designed: true},
	}
	ExpandZoneLengths(zones)

	assert.Equal(t, 1200.0, zones[0].Length)
	assert.Equal(t, 900.0, zones[1].Length)
	assert.Equal(t, 1000.0, zones[2].Length)
	assert.Equal(t, 0.0, zones[3].Length)

	for _, z := range zones[:2] {
		n := z.Length / z.Spacing
		assert.InDelta(t, math.Round(n), n, 1e-6)
	}
}

func TestInterfaceMinimumBarsCollapse(t *testing.T) {
	p := testParams()
	p.HasDeck = true
	d := newDesigner(p, testChecks(tapered, constant(0)), artifact.Config{}, nil)

	out, err := d.DesignStirrups(testCritical.Left, testCritical.Right)
	require.NoError(t, err)
	require.Equal(t, Success, out)

	hz := d.Layout().InterfaceZones
	require.Len(t, hz, 1)
	assert.Equal(t, 1, hz[0].Number)
	assert.Equal(t, 0.0, hz[0].Length)
	assert.Equal(t, lrfd.Bar4, hz[0].BarSize)
	assert.Equal(t, 600.0, hz[0].Spacing)
}

func TestInterfaceDemandSizesBars(t *testing.T) {
	p := testParams()
	p.HasDeck = true
	d := newDesigner(p, testChecks(tapered, constant(0.5)), artifact.Config{}, nil)

	out, err := d.DesignStirrups(testCritical.Left, testCritical.Right)
	require.NoError(t, err)
	require.Equal(t, Success, out)

	for _, hz := range d.Layout().InterfaceZones {
		assert.Equal(t, 500.0, hz.Spacing)
		assert.GreaterOrEqual(t, hz.Avs(), 0.5)
	}
}

func TestNoDeckClearsInterfaceZones(t *testing.T) {
	p := testParams()
	p.FromScratch = false
	cfg := artifact.Config{Layout: stirrup.Layout{
		Symmetric:      true,
		Zones:          []stirrup.Zone{{Number: 1, BarSize: lrfd.Bar4, Legs: 2, Spacing: 200}},
		InterfaceZones: []stirrup.InterfaceZone{{Number: 1, BarSize: lrfd.Bar4, Bars: 2, Spacing: 300}},
	}}
	d := newDesigner(p, testChecks(constant(0.5), constant(0)), cfg, nil)

	_, err := d.DesignStirrups(testCritical.Left, testCritical.Right)
	require.NoError(t, err)
	assert.Empty(t, d.Layout().InterfaceZones)
}

func splittingChecks(force float64) CheckSet {
	c := testChecks(constant(0.5), constant(0))
	c.Splitting = SplittingCheck{
		Applicable: true,
		Force:      [2]float64{force, force},
		ZoneLength: [2]float64{250, 250},
		Fs:         140,
	}
	return c
}

func TestAdditionalSplitting(t *testing.T) {
	p := testParams()
	p.DesignSplitting = true
	d := newDesigner(p, splittingChecks(200000), artifact.Config{}, nil)

	out, err := d.DesignStirrups(testCritical.Left, testCritical.Right)
	require.NoError(t, err)
	require.Equal(t, Success, out)

	l := d.Layout()
	assert.Equal(t, lrfd.Bar5, l.SplittingBarSize)
	assert.Equal(t, 4.0, l.SplittingBars)
	assert.Equal(t, 125.0, l.SplittingSpacing)
	assert.Equal(t, 250.0, l.SplittingZoneLength)
}

func TestAdditionalSplittingFails(t *testing.T) {
	p := testParams()
	p.DesignSplitting = true
	d := newDesigner(p, splittingChecks(2e6), artifact.Config{}, nil)

	out, err := d.DesignStirrups(testCritical.Left, testCritical.Right)
	require.NoError(t, err)
	assert.Equal(t, Fail, out)
	assert.Equal(t, artifact.TooManyStirrupsReqdForSplitting, d.FailureReason())
	assert.NotEmpty(t, d.Layout().Zones, "partial layout is kept")
}

func TestPrimaryBarsResistSplitting(t *testing.T) {
	p := testParams()
	p.DesignSplitting = true
	p.PrimaryBarsForSplitting = true
	cfg := artifact.Config{Layout: stirrup.Layout{SplittingBarSize: lrfd.Bar4, SplittingBars: 2, SplittingSpacing: 100}}
	d := newDesigner(p, splittingChecks(20000), cfg, nil)

	out, err := d.DesignStirrups(testCritical.Left, testCritical.Right)
	require.NoError(t, err)
	require.Equal(t, Success, out)

	l := d.Layout()
	assert.Equal(t, lrfd.BarNone, l.SplittingBarSize)
	assert.Zero(t, l.SplittingBars)
	assert.Zero(t, l.SplittingZoneLength)
}

func TestPrimaryBarsForSplittingUseTightestSpacing(t *testing.T) {
	p := testParams()
	p.DesignSplitting = true
	p.PrimaryBarsForSplitting = true
	d := newDesigner(p, splittingChecks(300000), artifact.Config{}, nil)

	out, err := d.DesignStirrups(testCritical.Left, testCritical.Right)
	require.NoError(t, err)
	require.Equal(t, Success, out)

	l := d.Layout()
	first := l.Zones[0]
	assert.Equal(t, lrfd.Bar4, first.BarSize)
	assert.Equal(t, 75.0, first.Spacing)
	assert.GreaterOrEqual(t, first.Length, 250.0, "first zone spans the splitting zone")

	// 8.571 required less 3.44 from the primary bars
	assert.Equal(t, lrfd.Bar5, l.SplittingBarSize)
	assert.Equal(t, 2.0, l.SplittingBars)
	assert.Equal(t, 75.0, l.SplittingSpacing)
}

func confinementChecks() CheckSet {
	c := testChecks(constant(0.5), constant(0))
	c.Confinement = ConfinementCheck{
		Applicable: true,
		MinBar:     lrfd.Bar3,
		MaxSpacing: 150,
		ZoneLength: [2]float64{1500, 1500},
	}
	return c
}

func TestAdditionalConfinement(t *testing.T) {
	p := testParams()
	p.DesignConfinement = true
	d := newDesigner(p, confinementChecks(), artifact.Config{}, nil)

	out, err := d.DesignStirrups(testCritical.Left, testCritical.Right)
	require.NoError(t, err)
	require.Equal(t, Success, out)

	l := d.Layout()
	assert.Equal(t, lrfd.Bar4, l.ConfinementBarSize, "smallest catalog bar at least as large as the minimum")
	assert.Equal(t, 150.0, l.ConfinementSpacing)
	assert.Equal(t, 1500.0, l.ConfinementZoneLength)
}

func TestPrimaryBarsActAsConfinement(t *testing.T) {
	p := testParams()
	p.DesignConfinement = true
	p.BarsActAsConfinement = true
	d := newDesigner(p, confinementChecks(), artifact.Config{}, nil)

	out, err := d.DesignStirrups(testCritical.Left, testCritical.Right)
	require.NoError(t, err)
	require.Equal(t, Success, out)

	l := d.Layout()
	assert.Equal(t, lrfd.BarNone, l.ConfinementBarSize)
	first := l.Zones[0]
	assert.Equal(t, lrfd.Bar4, first.ConfinementBarSize)
	assert.LessOrEqual(t, first.Spacing, 150.0)
}

type fakeLongReinf struct {
	results map[float64]LongReinfResult
}

func (f fakeLongReinf) CheckLongReinfShear(_ lrfd.LimitState, x float64, _ artifact.Config) (LongReinfResult, error) {
	if r, ok := f.results[x]; ok {
		return r, nil
	}
	return LongReinfResult{Applicable: true, Passed: true}, nil
}

func failingAt(x float64, r LongReinfResult) fakeLongReinf {
	r.Applicable = true
	r.Demand, r.Capacity = 500000, 300000
	return fakeLongReinf{results: map[float64]LongReinfResult{x: r}}
}

func TestLongReinfRebarRemedy(t *testing.T) {
	d := newDesigner(testParams(), testChecks(constant(0.5), constant(0)), artifact.Config{}, failingAt(1000, LongReinfResult{}))

	out, err := d.DesignStirrups(testCritical.Left, testCritical.Right)
	require.NoError(t, err)
	assert.Equal(t, RestartWithAdditionalLongRebar, out)
	assert.InDelta(t, 200000/420.0, d.RequiredLongReinfArea(), 1e-6)
}

func TestLongReinfRebarPartiallyDeveloped(t *testing.T) {
	p := testParams()
	p.FaceOfSupport = [2]float64{0, girderLength}
	p.RebarFy = 550
	d := newDesigner(p, testChecks(constant(0.5), constant(0)), artifact.Config{}, failingAt(500, LongReinfResult{}))

	ld := lrfd.RebarDevelopmentLength(lrfd.Bar5, 40, 550)
	require.Greater(t, ld, 500.0)

	out, err := d.DesignStirrups(testCritical.Left, testCritical.Right)
	require.NoError(t, err)
	assert.Equal(t, RestartWithAdditionalLongRebar, out)
	assert.InDelta(t, 200000/550.0/(500/ld), d.RequiredLongReinfArea(), 1e-6)
}

func TestLongReinfNoDevelopmentLength(t *testing.T) {
	p := testParams()
	p.FaceOfSupport = [2]float64{0, girderLength}
	d := newDesigner(p, testChecks(constant(0.5), constant(0)), artifact.Config{}, failingAt(0, LongReinfResult{}))

	out, err := d.DesignStirrups(testCritical.Left, testCritical.Right)
	require.NoError(t, err)
	assert.Equal(t, Fail, out)
	assert.Equal(t, artifact.NoDevelopmentLengthForLongReinfShear, d.FailureReason())
}

func TestLongReinfRebarNotAllowed(t *testing.T) {
	p := testParams()
	p.IncludeRebarForShear = false
	d := newDesigner(p, testChecks(constant(0.5), constant(0)), artifact.Config{}, failingAt(1000, LongReinfResult{}))

	out, err := d.DesignStirrups(testCritical.Left, testCritical.Right)
	require.NoError(t, err)
	assert.Equal(t, Fail, out)
	assert.Equal(t, artifact.ConflictWithLongReinforcementShearSpec, d.FailureReason())
}

func TestLongReinfStrandRemedy(t *testing.T) {
	p := testParams()
	p.LongReinfMethod = AddStrands
	d := newDesigner(p, testChecks(constant(0.5), constant(0)), artifact.Config{}, failingAt(1000, LongReinfResult{Fpx: 1000}))

	out, err := d.DesignStirrups(testCritical.Left, testCritical.Right)
	require.NoError(t, err)
	assert.Equal(t, RestartWithAdditionalStrands, out)
	assert.InDelta(t, 200000/lrfd.DefaultFps, d.RequiredLongReinfArea(), 1e-6)
}

func TestLongReinfStrandStressBelowRebar(t *testing.T) {
	p := testParams()
	p.LongReinfMethod = AddStrands
	d := newDesigner(p, testChecks(constant(0.5), constant(0)), artifact.Config{}, failingAt(1000, LongReinfResult{Fps: 1700, Fpx: 300}))

	out, err := d.DesignStirrups(testCritical.Left, testCritical.Right)
	require.NoError(t, err)
	assert.Equal(t, Fail, out)
	assert.Equal(t, artifact.ConflictWithLongReinforcementShearSpec, d.FailureReason())

	p.Edition = lrfd.Edition2004
	d = newDesigner(p, testChecks(constant(0.5), constant(0)), artifact.Config{}, failingAt(1000, LongReinfResult{Fps: 1700, Fpx: 300}))
	out, err = d.DesignStirrups(testCritical.Left, testCritical.Right)
	require.NoError(t, err)
	assert.Equal(t, RestartWithAdditionalStrands, out)
	assert.InDelta(t, 200000/1700.0, d.RequiredLongReinfArea(), 1e-6)
}

func TestShearStressRequiresStrongerConcrete(t *testing.T) {
	checks := testChecks(constant(0.5), constant(0))
	pts := checks.LimitStates[0].Points
	pts[10].StrutTieRequired = true
	pts[10].VuOverFc = -0.2

	d := newDesigner(testParams(), checks, artifact.Config{Fc: 40}, nil)
	out, err := d.DesignStirrups(testCritical.Left, testCritical.Right)
	require.NoError(t, err)
	assert.Equal(t, FailedFromShearStress, out)
	assert.InDelta(t, 0.2*40/0.18*1.01, d.RequiredFcForShearStress(), 1e-9)
	assert.NotEmpty(t, d.Layout().Zones)
}

func TestDesignStations(t *testing.T) {
	xs := DesignStations([]float64{5000, 5000.4, 15000}, StationInputs{
		GirderLength:     girderLength,
		Height:           1000,
		FaceOfSupport:    [2]float64{300, girderLength - 300},
		CriticalSections: [2]float64{1100, girderLength - 1100},
		ConnectionLength: [2]float64{150, 150},
		ConfinementZone:  [2]float64{1500, 1500},
		SplittingZone:    [2]float64{250, 250},
	})

	for _, want := range []float64{0, 250, 300, 1100, 1500, 2300, 3300, 4300, 5000, 10000, 15000, girderLength - 300, girderLength} {
		assert.Contains(t, xs, want)
	}
	assert.NotContains(t, xs, 5000.4)
	for i := 1; i < len(xs); i++ {
		assert.Greater(t, xs[i], xs[i-1])
	}
}
