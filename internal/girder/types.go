// Package girder defines the precast girder and design criteria read from a
// girder file.
package girder

import (
	"fmt"

	"github.com/WSDOT/PGSuper-sub013/internal/lrfd"
	"github.com/WSDOT/PGSuper-sub013/internal/stirrup"
)

// Girder is a simply supported pretensioned girder with its design criteria.
// Lengths are in mm, stresses in MPa and distributed loads in N/mm.
type Girder struct {
	Name        string `json:"name" yaml:"name" validate:"required"`
	Description string `json:"description,omitempty" yaml:"description"`
	Span        int    `json:"span" yaml:"span" validate:"gte=0"`
	Index       int    `json:"girder" yaml:"girder" validate:"gte=0"`

	Length float64 `json:"length" yaml:"length" validate:"gt=0"`

	// Section geometry defined by vertices (in mm), counter-clockwise
	Vertices []Point `json:"vertices" yaml:"vertices" validate:"min=3"`

	Materials Materials `json:"materials" yaml:"materials"`
	Strands   Strands   `json:"strands" yaml:"strands"`
	Deck      *Deck     `json:"deck,omitempty" yaml:"deck"`
	Supports  Supports  `json:"supports" yaml:"supports"`
	Loads     Loads     `json:"loads" yaml:"loads"`
	Criteria  Criteria  `json:"criteria" yaml:"criteria"`
	Stirrups  Stirrups  `json:"stirrups" yaml:"stirrups"`
}

// Point represents a 2D coordinate
type Point struct {
	X float64 `json:"x" yaml:"x"` // mm
	Y float64 `json:"y" yaml:"y"` // mm
}

type Materials struct {
	Fc         float64 `json:"fc" yaml:"fc" validate:"gt=0"`   // final concrete strength
	Fci        float64 `json:"fci" yaml:"fci" validate:"gt=0"` // release strength
	MaxFc      float64 `json:"max_fc" yaml:"max_fc" validate:"gtefield=Fc"`
	RebarFy    float64 `json:"rebar_fy" yaml:"rebar_fy" validate:"gt=0"`
	StirrupFy  float64 `json:"stirrup_fy" yaml:"stirrup_fy" validate:"gt=0"`
	UnitWeight float64 `json:"unit_weight" yaml:"unit_weight" validate:"gte=0"` // kN/m³
}

type Strands struct {
	Diameter     float64 `json:"diameter" yaml:"diameter" validate:"gt=0"`
	Area         float64 `json:"area" yaml:"area" validate:"gt=0"` // one strand
	Count        int     `json:"count" yaml:"count" validate:"gte=0"`
	MinCount     int     `json:"min_count" yaml:"min_count" validate:"gte=0"`
	MaxCount     int     `json:"max_count" yaml:"max_count" validate:"gt=0"`
	Step         int     `json:"step" yaml:"step" validate:"gte=0"`
	Centroid     float64 `json:"centroid" yaml:"centroid" validate:"gt=0"` // from bottom of girder
	LossFraction float64 `json:"loss_fraction" yaml:"loss_fraction" validate:"gte=0,lt=1"`
}

// Deck is the composite cast-in-place slab. A girder without a deck
// element has no horizontal interface shear design.
type Deck struct {
	Thickness      float64 `json:"thickness" yaml:"thickness" validate:"gt=0"`
	Width          float64 `json:"width" yaml:"width" validate:"gt=0"`
	InterfaceWidth float64 `json:"interface_width" yaml:"interface_width" validate:"gte=0"`
	Roughened      bool    `json:"roughened" yaml:"roughened"`
}

// Support describes one girder end
type Support struct {
	ConnectionLength float64 `json:"connection_length" yaml:"connection_length" validate:"gte=0"` // girder end to bearing
	Width            float64 `json:"width" yaml:"width" validate:"gte=0"`
}

type Supports struct {
	Start Support `json:"start" yaml:"start"`
	End   Support `json:"end" yaml:"end"`
}

// Loads are the superimposed uniform loads
type Loads struct {
	DW         float64 `json:"dw" yaml:"dw" validate:"gte=0"`
	LLIM       float64 `json:"llim" yaml:"llim" validate:"gte=0"`
	Permit     float64 `json:"permit" yaml:"permit" validate:"gte=0"`
	ExtraDC    float64 `json:"extra_dc" yaml:"extra_dc" validate:"gte=0"`
	DistFactor float64 `json:"dist_factor" yaml:"dist_factor" validate:"gte=0"`
}

type Criteria struct {
	Edition              string `json:"edition" yaml:"edition" validate:"omitempty,oneof=1998 2004 2007 2017"`
	Permit               bool   `json:"permit" yaml:"permit"`
	FromScratch          bool   `json:"from_scratch" yaml:"from_scratch"`
	LongReinfMethod      string `json:"long_reinf_method" yaml:"long_reinf_method" validate:"omitempty,oneof=rebar strands"`
	IncludeRebarForShear bool   `json:"include_rebar_for_shear" yaml:"include_rebar_for_shear"`
	MaxRestarts          int    `json:"max_restarts" yaml:"max_restarts" validate:"gte=0"`
	MaxFlexureIterations int    `json:"max_flexure_iterations" yaml:"max_flexure_iterations" validate:"gte=0"`
}

// Stirrups holds the bar catalog, the zone rules and the initial layout
type Stirrups struct {
	Combos            []stirrup.BarLegs `json:"combos" yaml:"combos" validate:"min=1,dive"`
	Spacings          []float64         `json:"spacings" yaml:"spacings" validate:"min=1,dive,gt=0"`
	MaxSpacingChange  float64           `json:"max_spacing_change" yaml:"max_spacing_change" validate:"gte=0"`
	MaxCapacityChange float64           `json:"max_capacity_change" yaml:"max_capacity_change" validate:"gte=0"`
	MinZoneSpacings   int               `json:"min_zone_spacings" yaml:"min_zone_spacings" validate:"gte=0"`
	MinZoneLength     float64           `json:"min_zone_length" yaml:"min_zone_length" validate:"gte=0"`
	MaxSpacing        float64           `json:"max_spacing" yaml:"max_spacing" validate:"gte=0"`
	MaxAggregate      float64           `json:"max_aggregate" yaml:"max_aggregate" validate:"gte=0"`

	ExtendBarsIntoDeck      bool `json:"extend_bars_into_deck" yaml:"extend_bars_into_deck"`
	BarsActAsConfinement    bool `json:"bars_act_as_confinement" yaml:"bars_act_as_confinement"`
	PrimaryBarsForSplitting bool `json:"primary_bars_for_splitting" yaml:"primary_bars_for_splitting"`
	DesignSplitting         bool `json:"design_splitting" yaml:"design_splitting"`
	DesignConfinement       bool `json:"design_confinement" yaml:"design_confinement"`

	Layout stirrup.Layout `json:"layout" yaml:"layout"`
}

// Catalog builds the bar selection catalog
func (s Stirrups) Catalog() *stirrup.Catalog {
	c := stirrup.NewCatalog(s.Combos, s.Spacings)
	c.MaxSpacingChange = s.MaxSpacingChange
	c.MaxCapacityChange = s.MaxCapacityChange
	c.MinZoneSpacings = s.MinZoneSpacings
	c.MinZoneLength = s.MinZoneLength
	c.MaxSpacing = s.MaxSpacing
	c.MaxAggregate = s.MaxAggregate
	return c
}

// EditionValue returns the parsed LRFD edition
func (c Criteria) EditionValue() lrfd.Edition {
	e, err := lrfd.ParseEdition(c.Edition)
	if err != nil {
		return lrfd.Edition2017
	}
	return e
}

// FaceOfSupport returns the stations of the start and end support faces
func (g *Girder) FaceOfSupport() [2]float64 {
	s, e := g.Supports.Start, g.Supports.End
	return [2]float64{
		s.ConnectionLength + s.Width/2,
		g.Length - e.ConnectionLength - e.Width/2,
	}
}

// Bearings returns the stations of the bearing centerlines
func (g *Girder) Bearings() [2]float64 {
	return [2]float64{g.Supports.Start.ConnectionLength, g.Length - g.Supports.End.ConnectionLength}
}

// SpanLength is the bearing to bearing distance
func (g *Girder) SpanLength() float64 {
	b := g.Bearings()
	return b[1] - b[0]
}

// ApplyDefaults fills the optional values left out of a girder file
func (g *Girder) ApplyDefaults() {
	if g.Materials.MaxFc == 0 {
		g.Materials.MaxFc = g.Materials.Fc
	}
	if g.Materials.UnitWeight == 0 {
		g.Materials.UnitWeight = 24
	}
	if g.Strands.Step == 0 {
		g.Strands.Step = 2
	}
	if g.Strands.LossFraction == 0 {
		g.Strands.LossFraction = 0.2
	}
	if g.Loads.DistFactor == 0 {
		g.Loads.DistFactor = 1
	}
	if g.Criteria.Edition == "" {
		g.Criteria.Edition = lrfd.Edition2017.String()
	}
	if g.Criteria.LongReinfMethod == "" {
		g.Criteria.LongReinfMethod = "rebar"
	}
	if g.Criteria.MaxRestarts == 0 {
		g.Criteria.MaxRestarts = 10
	}
	if g.Criteria.MaxFlexureIterations == 0 {
		g.Criteria.MaxFlexureIterations = 40
	}
	if g.Stirrups.MaxAggregate == 0 {
		g.Stirrups.MaxAggregate = 19
	}
	if g.Deck != nil && g.Deck.InterfaceWidth == 0 {
		g.Deck.InterfaceWidth = g.Properties().TopWidth
	}
	if len(g.Stirrups.Layout.Zones) == 0 {
		g.Stirrups.Layout.Symmetric = true
	}
}

// Validate checks the struct rules and then the girder specific ones
func (g *Girder) Validate() error {
	if err := validateStruct(g); err != nil {
		return err
	}
	if g.Materials.Fci > g.Materials.Fc {
		return &ValidationError{Field: "materials.fci", msg: "release strength must not exceed f'c"}
	}
	props := g.Properties()
	if g.Strands.Centroid >= props.Height {
		return &ValidationError{Field: "strands.centroid", msg: "strands must lie within the section"}
	}
	if g.Strands.MinCount > g.Strands.MaxCount {
		return &ValidationError{Field: "strands.min_count", msg: "minimum strand count exceeds the maximum"}
	}
	f := g.FaceOfSupport()
	if f[0] >= f[1] {
		return &ValidationError{Field: "supports", msg: "supports overlap"}
	}
	for i, c := range g.Stirrups.Combos {
		if c.Bar == lrfd.BarNone || c.Legs <= 0 {
			return &ValidationError{Field: fmt.Sprintf("stirrups.combos[%d]", i), msg: "bar and legs are required"}
		}
	}
	return nil
}

// ValidationError represents a girder file validation error
type ValidationError struct {
	Field string
	msg   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.msg
	}
	return e.Field + ": " + e.msg
}
