package lca

import "fmt"

type constError string

func (e constError) Error() string { return string(e) }

// ErrInvalidInput is the sentinel for any input record the model refuses to score.
const ErrInvalidInput = constError("invalid input")

// InputError describes a single rejected field.
type InputError struct {
	Field  string
	Value  any
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %s %v: %s", ErrInvalidInput, e.Field, e.Value, e.Reason)
}

// Unwrap allows errors.Is(err, ErrInvalidInput).
func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}
