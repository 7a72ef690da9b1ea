package engine

import (
	"errors"
	"fmt"
)

// Domain errors for world construction and stepping.
var (
	// ErrStepSize indicates a non-positive timestep.
	ErrStepSize = errors.New("engine: step size must be positive")

	// ErrInvalidState indicates a body reached a NaN or Inf position/velocity.
	ErrInvalidState = errors.New("engine: invalid body state (NaN or Inf detected)")

	// ErrJointBodies indicates a joint was built with missing or identical bodies.
	ErrJointBodies = errors.New("engine: joint requires two distinct bodies")

	// ErrBadGeometry indicates non-positive box dimensions or density.
	ErrBadGeometry = errors.New("engine: box dimensions and density must be positive")
)

// StepError wraps an error with the simulated time at which it occurred.
type StepError struct {
	Time    float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("t=%.4f: %s", e.Time, e.Wrapped.Error())
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
