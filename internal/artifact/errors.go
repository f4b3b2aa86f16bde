package artifact

import (
	"errors"
	"fmt"
)

var (
	// ErrArtifactLocked is returned when the reinforcement of a failed
	// design is modified
	ErrArtifactLocked = errors.New("artifact: design has a terminal outcome")

	// ErrUnreachableState signals a programming error in a state machine
	ErrUnreachableState = errors.New("unreachable design state")
)

// ErrorKind is a coarse-grained categorization for errors
type ErrorKind string

const (
	KindInvalidInput ErrorKind = "invalid_input"
	KindAnalysis     ErrorKind = "analysis"
	KindStore        ErrorKind = "store"
	KindInternal     ErrorKind = "internal"
)

// OpError wraps an underlying error with operation context and a kind
type OpError struct {
	Op   string
	Kind ErrorKind
	Key  string // Optional: segment being designed
	Err  error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}
	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Key != "" {
		base += fmt.Sprintf(" (%s)", e.Key)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind helps callers classify errors
func IsKind(err error, kind ErrorKind) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind == kind
	}
	return false
}
