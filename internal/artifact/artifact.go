// Package artifact holds the in-progress and final design result of a girder.
package artifact

import (
	"fmt"

	"github.com/WSDOT/PGSuper-sub013/internal/stirrup"
)

// SegmentKey identifies one precast girder segment
type SegmentKey struct {
	Span   int `json:"span" yaml:"span"`
	Girder int `json:"girder" yaml:"girder"`
}

func (k SegmentKey) String() string {
	return fmt.Sprintf("Span %d Girder %s", k.Span+1, girderLabel(k.Girder))
}

func girderLabel(i int) string {
	if i < 0 {
		return "?"
	}
	label := ""
	for {
		label = string(rune('A'+i%26)) + label
		i = i/26 - 1
		if i < 0 {
			return label
		}
	}
}

// Config is a trial girder configuration
type Config struct {
	Strands       int            `json:"strands"`
	MinStrands    int            `json:"min_strands"`
	Fc            float64        `json:"fc"`              // MPa
	Fci           float64        `json:"fci"`             // MPa
	LongRebarArea float64        `json:"long_rebar_area"` // mm², added for shear
	Layout        stirrup.Layout `json:"layout"`
}

// Artifact is the design result for one segment. Once a terminal failure
// outcome is set the reinforcement can no longer be changed.
type Artifact struct {
	key         SegmentKey
	config      Config
	outcome     Outcome
	iterations  int
	diagnostics []string
}

// New starts a design artifact from the initial configuration
func New(key SegmentKey, cfg Config) *Artifact {
	cfg.Layout = cfg.Layout.Clone()
	return &Artifact{key: key, config: cfg}
}

func (a *Artifact) Key() SegmentKey { return a.key }

// Config returns a copy of the current configuration
func (a *Artifact) Config() Config {
	c := a.config
	c.Layout = a.config.Layout.Clone()
	return c
}

func (a *Artifact) Outcome() Outcome { return a.outcome }

func (a *Artifact) Iterations() int { return a.iterations }

// Locked reports whether the design has terminally failed
func (a *Artifact) Locked() bool { return a.outcome.Failed() }

// Diagnostics returns the degraded-case notes collected during the run
func (a *Artifact) Diagnostics() []string {
	return append([]string(nil), a.diagnostics...)
}

// AddDiagnostic records a note about a degraded result
func (a *Artifact) AddDiagnostic(format string, args ...any) {
	a.diagnostics = append(a.diagnostics, fmt.Sprintf(format, args...))
}

// CountIteration records one pass of the outer design loop
func (a *Artifact) CountIteration() { a.iterations++ }

// SetOutcome records the outcome. A terminal failure is never replaced.
func (a *Artifact) SetOutcome(o Outcome) {
	if a.Locked() {
		return
	}
	a.outcome = o
}

func (a *Artifact) SetStrands(n int) error {
	if a.Locked() {
		return ErrArtifactLocked
	}
	a.config.Strands = n
	return nil
}

func (a *Artifact) SetMinStrands(n int) error {
	if a.Locked() {
		return ErrArtifactLocked
	}
	a.config.MinStrands = n
	return nil
}

// SetConcreteStrength updates the final and release strengths
func (a *Artifact) SetConcreteStrength(fc, fci float64) error {
	if a.Locked() {
		return ErrArtifactLocked
	}
	a.config.Fc = fc
	a.config.Fci = fci
	return nil
}

func (a *Artifact) SetLongRebarArea(as float64) error {
	if a.Locked() {
		return ErrArtifactLocked
	}
	a.config.LongRebarArea = as
	return nil
}

// SetShearLayout stores a copy of the layout
func (a *Artifact) SetShearLayout(l stirrup.Layout) error {
	if a.Locked() {
		return ErrArtifactLocked
	}
	a.config.Layout = l.Clone()
	return nil
}

// Snapshot is the persisted form of an artifact
type Snapshot struct {
	Key         SegmentKey `json:"key"`
	Config      Config     `json:"config"`
	Outcome     Outcome    `json:"outcome"`
	Message     string     `json:"message"`
	Iterations  int        `json:"iterations"`
	Diagnostics []string   `json:"diagnostics,omitempty"`
}

// Snapshot copies the artifact for reporting or persistence
func (a *Artifact) Snapshot() Snapshot {
	return Snapshot{
		Key:         a.key,
		Config:      a.Config(),
		Outcome:     a.outcome,
		Message:     a.outcome.Message(),
		Iterations:  a.iterations,
		Diagnostics: a.Diagnostics(),
	}
}
