package analysis

import (
	"context"
	"math"

	"github.com/pkg/errors"

	"github.com/WSDOT/PGSuper-sub013/internal/artifact"
	"github.com/WSDOT/PGSuper-sub013/internal/lrfd"
)

// IdealStrandCount returns the number of strands the trial configuration
// calls for: enough to keep the Service III bottom tension within the limit
// and to resist the strength moments. Losses are taken at the trial strand
// count, so the answer moves with the trial. A count above the maximum
// means no strand count works.
func (m *Model) IdealStrandCount(ctx context.Context, cfg artifact.Config) (int, error) {
	xs := m.BaseStations()
	eff, err := m.LoadEffects(ctx, xs)
	if err != nil {
		return 0, errors.Wrap(err, "ideal strand count")
	}

	g := m.g
	var ms, mu float64
	for _, e := range eff {
		_, s := e.Factored(lrfd.ServiceIII)
		ms = math.Max(ms, s)
		for _, ls := range lrfd.StrengthLimitStates(g.Criteria.Permit) {
			_, u := e.Factored(ls)
			mu = math.Max(mu, u)
		}
	}

	limit := g.Strands.MaxCount + 1
	fpe := m.effectivePrestress(cfg.Strands, cfg.Fci)

	p := m.props
	ecc := p.Yb - g.Strands.Centroid
	ft := lrfd.TensionStressLimit(cfg.Fc)
	need := (ms/p.Sb - ft) / (1/p.Area + ecc/p.Sb)

	nService := 0
	if need > 0 {
		if fpe <= 0 {
			return limit, nil
		}
		nService = int(math.Ceil(need / (fpe * g.Strands.Area)))
	}

	n := max(nService, cfg.MinStrands, 0)
	for ; n < limit; n++ {
		trial := cfg
		trial.Strands = n
		if lrfd.PhiFlexure*m.Section(trial).Mn >= mu {
			break
		}
	}

	m.log.Debug().
		Int("trial", cfg.Strands).
		Int("service", nService).
		Int("ideal", n).
		Float64("fpe", fpe).
		Msg("ideal strand count")
	return min(n, limit), nil
}
