// Package strand drives the flexural design loop toward a stable strand count.
package strand

import (
	"fmt"
)

// State of the convergence controller
type State int

const (
	StateInitial State = iota
	StateSetOnce
	StateSetIncrease
	StateSetDecrease
)

func (s State) String() string {
	switch s {
	case StateInitial:
		return "initial"
	case StateSetOnce:
		return "set-once"
	case StateSetIncrease:
		return "set-increase"
	case StateSetDecrease:
		return "set-decrease"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Outcome of one controller update
type Outcome int

const (
	ValueWasSet Outcome = iota
	Converged
	UpdateFailed
)

func (o Outcome) String() string {
	switch o {
	case ValueWasSet:
		return "value-was-set"
	case Converged:
		return "converged"
	case UpdateFailed:
		return "update-failed"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

const (
	// RepeatBound is how many times the same decrease may recur before the
	// controller treats the loop as oscillating.
	RepeatBound = 3

	// HistoryCap bounds the number of remembered decrease pairs
	HistoryCap = 32
)

// pair is an unordered pair of strand counts
type pair struct{ lo, hi int }

func newPair(a, b int) pair {
	if a > b {
		a, b = b, a
	}
	return pair{lo: a, hi: b}
}

type decrease struct {
	key   pair
	count int
}

// Controller is the strand count convergence state machine for one design run
type Controller struct {
	fill     Filler
	state    State
	value    int
	previous int
	history  []decrease
	forced   bool
	forcedAt pair
	updates  int
}

// NewController returns a controller that only accepts counts the fill
// pattern can place
func NewController(fill Filler) *Controller {
	return &Controller{fill: fill}
}

// Init resets the controller for a new flexural design attempt
func (c *Controller) Init(count int) {
	c.state = StateInitial
	c.value = count
	c.previous = count
	c.history = c.history[:0]
	c.forced = false
	c.forcedAt = pair{}
	c.updates = 0
}

// State returns the current state
func (c *Controller) State() State { return c.state }

// Value returns the stored strand count
func (c *Controller) Value() int { return c.value }

// Updates returns how many times DoUpdate has been called since Init
func (c *Controller) Updates() int { return c.updates }

// Forced reports whether the last convergence was forced to break an oscillation
func (c *Controller) Forced() bool { return c.forced }

// Diagnostic describes a forced convergence, or returns "" when there was none
func (c *Controller) Diagnostic() string {
	if !c.forced {
		return ""
	}
	return fmt.Sprintf("strand count oscillated between %d and %d with no intermediate count available; using %d",
		c.forcedAt.lo, c.forcedAt.hi, c.value)
}

// DoUpdate takes the newly computed strand count and the count used for
// the trial that produced it, and returns what the design loop should do
// next along with the count to use.
func (c *Controller) DoUpdate(current, previous int) (Outcome, int) {
	c.updates++
	c.previous = previous

	if current < 0 || current > c.fill.Max() {
		return UpdateFailed, c.value
	}

	switch c.state {
	case StateInitial:
		c.state = StateSetOnce
		c.value = current
		c.forced = false
		return ValueWasSet, current

	case StateSetOnce, StateSetDecrease:
		if current == c.value {
			return Converged, c.value
		}
		if current > c.value {
			c.state = StateSetIncrease
		} else {
			c.state = StateSetDecrease
		}
		c.value = current
		return ValueWasSet, current

	case StateSetIncrease:
		if current == c.value {
			return Converged, c.value
		}
		if current > c.value {
			c.value = current
			return ValueWasSet, current
		}
		return c.decrease(current)
	}

	return UpdateFailed, c.value
}

// decrease handles a proposal below the stored value while increasing.
// Probing for an intermediate count retries the same bookkeeping at most
// RepeatBound times.
func (c *Controller) decrease(proposed int) (Outcome, int) {
	p := proposed
	for depth := 0; depth < RepeatBound; depth++ {
		key := newPair(p, c.value)
		if c.repeats(key) < RepeatBound {
			c.record(key)
			c.state = StateSetDecrease
			c.value = p
			return ValueWasSet, p
		}
		next, ok := c.between(p, c.value)
		if !ok {
			break
		}
		p = next
	}

	// No compromise exists: keep the higher, conservative count
	c.forced = true
	c.forcedAt = newPair(proposed, c.value)
	return Converged, c.value
}

// between finds the reachable count closest to hi strictly between lo and hi
func (c *Controller) between(lo, hi int) (int, bool) {
	for n := hi - 1; n > lo; n-- {
		if c.fill.Reachable(n) {
			return n, true
		}
	}
	return 0, false
}

func (c *Controller) repeats(key pair) int {
	for _, d := range c.history {
		if d.key == key {
			return d.count
		}
	}
	return 0
}

func (c *Controller) record(key pair) {
	for i := range c.history {
		if c.history[i].key == key {
			c.history[i].count++
			return
		}
	}
	if len(c.history) >= HistoryCap {
		c.history = append(c.history[:0], c.history[1:]...)
	}
	c.history = append(c.history, decrease{key: key, count: 1})
}
