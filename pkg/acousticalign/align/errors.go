package align

import (
	"errors"
	"fmt"
)

// Sentinel kinds. Every error returned by this package matches exactly one of
// them via errors.Is; use errors.As with the struct types for details.
var (
	ErrInvalidInput       = errors.New("align: invalid input")
	ErrSampleRateMismatch = errors.New("align: sample rate mismatch")
	ErrNoOverlap          = errors.New("align: no overlap")
)

// InvalidInputError reports a malformed signal, parameter, or mode.
type InvalidInputError struct {
	Param  string
	Value  any
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("align: invalid %s (%v): %s", e.Param, e.Value, e.Reason)
}

func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// SampleRateMismatchError reports two inputs recorded at different rates.
// No resampling happens inside this package.
type SampleRateMismatchError struct {
	RateA int
	RateB int
}

func (e *SampleRateMismatchError) Error() string {
	return fmt.Sprintf("align: sample rates differ: a=%d Hz, b=%d Hz", e.RateA, e.RateB)
}

func (e *SampleRateMismatchError) Is(target error) bool {
	return target == ErrSampleRateMismatch
}

// NoOverlapError reports a shift that leaves no common span for a cropping mode.
type NoOverlapError struct {
	Mode  AlignMode
	Shift SampleShift
	LenA  int
	LenB  int
}

func (e *NoOverlapError) Error() string {
	return fmt.Sprintf("align: %s leaves no overlap: shift=%d samples, len(a)=%d, len(b)=%d",
		e.Mode, e.Shift, e.LenA, e.LenB)
}

func (e *NoOverlapError) Is(target error) bool {
	return target == ErrNoOverlap
}

func invalidInput(param string, value any, reason string) error {
	return &InvalidInputError{Param: param, Value: value, Reason: reason}
}
