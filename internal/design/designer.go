// Package design runs the outer girder design loop. It alternates between
// flexural design, which settles the strand count, and stirrup design, and
// restarts flexure whenever the stirrup design changes its assumptions.
package design

import (
	"context"
	"math"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/WSDOT/PGSuper-sub013/internal/analysis"
	"github.com/WSDOT/PGSuper-sub013/internal/artifact"
	"github.com/WSDOT/PGSuper-sub013/internal/envelope"
	"github.com/WSDOT/PGSuper-sub013/internal/girder"
	"github.com/WSDOT/PGSuper-sub013/internal/shear"
	"github.com/WSDOT/PGSuper-sub013/internal/strand"
)

// Analysis answers the demand and capacity queries of the design loop
type Analysis interface {
	shear.LongReinfShearChecker
	IdealStrandCount(ctx context.Context, cfg artifact.Config) (int, error)
	CriticalSections(cfg artifact.Config) [2]float64
	DesignStations(css [2]float64) []float64
	StirrupChecks(ctx context.Context, cfg artifact.Config, stations []float64) (shear.CheckSet, error)
}

// Limits bound the design run
type Limits struct {
	MaxRestarts          int     // stirrup driven restarts of flexural design
	MaxFlexureIterations int     // strand controller updates per flexural design
	MaxFc                float64 // largest concrete strength the design may ask for (MPa)
	StrandArea           float64 // one strand (mm²)
}

// Designer designs one girder segment
type Designer struct {
	analysis Analysis
	stirrups *shear.Designer
	fill     strand.Filler
	limits   Limits
	log      zerolog.Logger
}

// New wires a designer from its collaborators
func New(a Analysis, p shear.Params, fill strand.Filler, lim Limits, log zerolog.Logger) *Designer {
	return &Designer{
		analysis: a,
		stirrups: shear.NewDesigner(p, a, log.With().Str("component", "shear").Logger()),
		fill:     fill,
		limits:   lim,
		log:      log,
	}
}

// NewFromGirder builds the analysis model and designer for a girder file
func NewFromGirder(g *girder.Girder, log zerolog.Logger) *Designer {
	lim := Limits{
		MaxRestarts:          g.Criteria.MaxRestarts,
		MaxFlexureIterations: g.Criteria.MaxFlexureIterations,
		MaxFc:                g.Materials.MaxFc,
		StrandArea:           g.Strands.Area,
	}
	fill := strand.StepFill{Step: g.Strands.Step, MaxCount: g.Strands.MaxCount}
	model := analysis.New(g, log.With().Str("component", "analysis").Logger())
	return New(model, ShearParams(g), fill, lim, log)
}

// ShearParams maps the girder criteria onto the stirrup designer
func ShearParams(g *girder.Girder) shear.Params {
	method := shear.AddRebar
	if g.Criteria.LongReinfMethod == shear.AddStrands.String() {
		method = shear.AddStrands
	}
	s := g.Stirrups
	return shear.Params{
		GirderLength:            g.Length,
		Height:                  g.Properties().Height,
		FaceOfSupport:           g.FaceOfSupport(),
		ConnectionLength:        [2]float64{g.Supports.Start.ConnectionLength, g.Supports.End.ConnectionLength},
		Catalog:                 s.Catalog(),
		FromScratch:             g.Criteria.FromScratch,
		ExtendBarsIntoDeck:      s.ExtendBarsIntoDeck,
		BarsActAsConfinement:    s.BarsActAsConfinement,
		PrimaryBarsForSplitting: s.PrimaryBarsForSplitting,
		DesignSplitting:         s.DesignSplitting,
		DesignConfinement:       s.DesignConfinement,
		HasDeck:                 g.Deck != nil,
		Permit:                  g.Criteria.Permit,
		LongReinfMethod:         method,
		IncludeRebarForShear:    g.Criteria.IncludeRebarForShear,
		Edition:                 g.Criteria.EditionValue(),
		RebarFy:                 g.Materials.RebarFy,
	}
}

// InitialConfig is the trial configuration a girder file starts from
func InitialConfig(g *girder.Girder) artifact.Config {
	return artifact.Config{
		Strands:    g.Strands.Count,
		MinStrands: g.Strands.MinCount,
		Fc:         g.Materials.Fc,
		Fci:        g.Materials.Fci,
		Layout:     g.Stirrups.Layout.Clone(),
	}
}

// KeyOf identifies the girder segment
func KeyOf(g *girder.Girder) artifact.SegmentKey {
	return artifact.SegmentKey{Span: g.Span, Girder: g.Index}
}

// DemandEnvelopes returns the vertical and horizontal Av/s demand of the
// last stirrup design pass, nil before the first pass
func (d *Designer) DemandEnvelopes() (*envelope.Function, *envelope.Function) {
	return d.stirrups.DemandEnvelopes()
}

// step is what the outer loop does after a stirrup design pass
type step int

const (
	stepDone step = iota
	stepRestart
	stepStop
)

// Run designs the segment starting from cfg. The artifact is returned even
// when the design fails so its partial layout and outcome can be reported.
// An error means a collaborator failed, not that the design failed.
func (d *Designer) Run(ctx context.Context, key artifact.SegmentKey, cfg artifact.Config) (*artifact.Artifact, error) {
	art := artifact.New(key, cfg)
	log := d.log.With().Str("segment", key.String()).Logger()

	for restart := 0; ; restart++ {
		if restart > d.limits.MaxRestarts {
			log.Warn().Int("restarts", restart-1).Msg("design did not settle")
			art.SetOutcome(artifact.MaxIterExceeded)
			return art, nil
		}
		art.CountIteration()

		ok, err := d.designFlexure(ctx, art, log)
		if err != nil {
			return art, err
		}
		if !ok {
			return art, nil
		}

		next, err := d.designStirrups(ctx, art, log)
		if err != nil {
			return art, err
		}
		switch next {
		case stepDone:
			art.SetOutcome(artifact.Success)
			c := art.Config()
			log.Info().Int("strands", c.Strands).Float64("fc", c.Fc).
				Int("zones", len(c.Layout.Zones)).Int("iterations", art.Iterations()).
				Msg("design complete")
			return art, nil
		case stepStop:
			log.Info().Str("outcome", art.Outcome().String()).Msg("design failed")
			return art, nil
		}
	}
}

// designFlexure iterates the strand count to convergence. It returns false
// when the design has stopped with a failure outcome.
func (d *Designer) designFlexure(ctx context.Context, art *artifact.Artifact, log zerolog.Logger) (bool, error) {
	cfg := art.Config()
	ctrl := strand.NewController(d.fill)
	ctrl.Init(cfg.Strands)

	n := cfg.Strands
	for iter := 0; iter < d.limits.MaxFlexureIterations; iter++ {
		cfg.Strands = n
		ideal, err := d.analysis.IdealStrandCount(ctx, cfg)
		if err != nil {
			return false, &artifact.OpError{Op: "design.flexure", Kind: artifact.KindAnalysis, Key: art.Key().String(), Err: err}
		}

		proposed, ok := strand.RoundUp(d.fill, max(ideal, cfg.MinStrands))
		if !ok {
			log.Info().Int("ideal", ideal).Int("max", d.fill.Max()).Msg("strand count exceeds the pattern")
			art.SetOutcome(artifact.TooManyStrandsReqd)
			return false, nil
		}

		out, next := ctrl.DoUpdate(proposed, n)
		log.Debug().Int("trial", n).Int("proposed", proposed).
			Str("state", ctrl.State().String()).Str("result", out.String()).Msg("strand update")

		switch out {
		case strand.Converged:
			if ctrl.Forced() {
				log.Warn().Int("strands", next).Msg(ctrl.Diagnostic())
				art.AddDiagnostic("%s", ctrl.Diagnostic())
			}
			return true, art.SetStrands(next)
		case strand.ValueWasSet:
			n = next
			if err := art.SetStrands(n); err != nil {
				return false, err
			}
		default:
			art.SetOutcome(artifact.DesignFailed)
			return false, errors.Wrapf(artifact.ErrUnreachableState, "strand controller in state %s", ctrl.State())
		}
	}

	art.SetOutcome(artifact.MaxIterExceeded)
	return false, nil
}

// designStirrups runs one stirrup design pass and applies its outcome
func (d *Designer) designStirrups(ctx context.Context, art *artifact.Artifact, log zerolog.Logger) (step, error) {
	cfg := art.Config()
	css := d.analysis.CriticalSections(cfg)
	stations := d.analysis.DesignStations(css)

	checks, err := d.analysis.StirrupChecks(ctx, cfg, stations)
	if err != nil {
		return stepStop, &artifact.OpError{Op: "design.stirrups", Kind: artifact.KindAnalysis, Key: art.Key().String(), Err: err}
	}

	d.stirrups.Reset(cfg, checks)
	out, err := d.stirrups.DesignStirrups(css[0], css[1])
	if err != nil {
		return stepStop, &artifact.OpError{Op: "design.stirrups", Kind: artifact.KindAnalysis, Key: art.Key().String(), Err: err}
	}
	// the layout so far is kept even when the pass fails
	if err := art.SetShearLayout(d.stirrups.Layout()); err != nil {
		return stepStop, err
	}
	log.Debug().Str("result", out.String()).Float64("css_left", css[0]).Float64("css_right", css[1]).
		Int("stations", len(stations)).Msg("stirrup design pass")

	switch out {
	case shear.Success:
		return stepDone, nil

	case shear.Fail:
		reason := d.stirrups.FailureReason()
		if !reason.Failed() {
			reason = artifact.TooManyStirrupsReqd
		}
		art.SetOutcome(reason)
		return stepStop, nil

	case shear.RestartWithAdditionalLongRebar:
		as := cfg.LongRebarArea + d.stirrups.RequiredLongReinfArea()
		log.Info().Float64("as", as).Msg("restarting with additional longitudinal rebar")
		return stepRestart, art.SetLongRebarArea(as)

	case shear.RestartWithAdditionalStrands:
		add := 1
		if d.limits.StrandArea > 0 {
			add = max(int(math.Ceil(d.stirrups.RequiredLongReinfArea()/d.limits.StrandArea)), 1)
		}
		n, ok := strand.RoundUp(d.fill, cfg.Strands+add)
		if !ok {
			art.SetOutcome(artifact.TooManyStrandsReqd)
			return stepStop, nil
		}
		log.Info().Int("strands", n).Msg("restarting with additional strands")
		if err := art.SetMinStrands(n); err != nil {
			return stepStop, err
		}
		return stepRestart, art.SetStrands(n)

	case shear.FailedFromShearStress:
		fc := math.Ceil(d.stirrups.RequiredFcForShearStress())
		if fc > d.limits.MaxFc {
			log.Info().Float64("fc", fc).Float64("max_fc", d.limits.MaxFc).Msg("shear stress needs stronger concrete than allowed")
			art.SetOutcome(artifact.ShearExceedsMaxConcreteStrength)
			return stepStop, nil
		}
		log.Info().Float64("fc", fc).Msg("restarting with stronger concrete for shear stress")
		return stepRestart, art.SetConcreteStrength(fc, cfg.Fci)
	}

	art.SetOutcome(artifact.DesignFailed)
	return stepStop, errors.Wrapf(artifact.ErrUnreachableState, "stirrup outcome %s", out)
}
