package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidStep indicates a step size that is zero, negative or NaN.
	ErrInvalidStep = errors.New("sim: step size must be positive")

	// ErrInvalidInterval indicates an end time before the start time or a
	// non-finite bound.
	ErrInvalidInterval = errors.New("sim: invalid integration interval")

	// ErrEmptyInterval indicates an interval shorter than a single step.
	ErrEmptyInterval = fmt.Errorf("%w: interval shorter than one step", ErrInvalidInterval)

	// ErrTooManySteps indicates an interval needing more than MaxSteps steps.
	ErrTooManySteps = fmt.Errorf("%w: more than %d steps", ErrInvalidInterval, MaxSteps)
)

// ArgError wraps an argument error with the offending value.
type ArgError struct {
	Field   string
	Value   float64
	Wrapped error
}

func (e *ArgError) Error() string {
	return fmt.Sprintf("%s = %g: %v", e.Field, e.Value, e.Wrapped)
}

func (e *ArgError) Unwrap() error {
	return e.Wrapped
}
