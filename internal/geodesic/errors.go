package geodesic

import (
	"errors"
	"fmt"
)

// Domain errors for integration runs.
var (
	// ErrNonFinite indicates a sample with NaN or Inf components, produced by
	// a near-singular denominator. Only reported when Config.ValidateState is
	// set; by default non-finite values propagate silently.
	ErrNonFinite = errors.New("geodesic: non-finite state (NaN or Inf detected)")

	// ErrDidNotCapture indicates the step ceiling was hit before the particle
	// crossed the capture radius (a bound or escaping orbit).
	ErrDidNotCapture = errors.New("geodesic: step limit reached before capture")
)

// StepError wraps a run error with the step index and proper time at which
// the run stopped.
type StepError struct {
	Step    int
	Tau     float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (tau=%.4f): %v", e.Step, e.Tau, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
