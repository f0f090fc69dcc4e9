package rescue

import (
	"errors"
	"fmt"
)

// Sentinel errors for rescue input validation.
var (
	ErrPositionLength     = errors.New("position count out of range")
	ErrPositionOutOfRange = errors.New("position out of range")
	ErrPositionNotUnique  = errors.New("position not unique")
	ErrCountMismatch      = errors.New("chicken count does not match positions")
)

// PositionErrorKind classifies a PositionError.
type PositionErrorKind int

// PositionErrorKind values.
const (
	LengthOutOfRange PositionErrorKind = iota + 1
	PositionOutOfRange
	PositionNotUnique
)

// PositionError reports an invalid set of positions.
type PositionError struct {
	Kind PositionErrorKind
	// Index of the offending element. Unused for LengthOutOfRange.
	Index int
	// Value of the offending element. Unused for LengthOutOfRange.
	Value uint32
	// Err is the underlying range error for LengthOutOfRange.
	Err error
}

// Error implements error.
func (e *PositionError) Error() string {
	switch e.Kind {
	case LengthOutOfRange:
		return fmt.Sprintf("position count out of range: %v", e.Err)
	case PositionOutOfRange:
		return fmt.Sprintf("position %d at index %d out of range [1, %d]", e.Value, e.Index, MaxPosition)
	case PositionNotUnique:
		return fmt.Sprintf("position %d at index %d is not unique", e.Value, e.Index)
	default:
		return "invalid positions"
	}
}

// Unwrap returns the underlying range error, if any.
func (e *PositionError) Unwrap() error { return e.Err }

// Is matches the sentinel for the error kind.
func (e *PositionError) Is(target error) bool {
	switch e.Kind {
	case LengthOutOfRange:
		return target == ErrPositionLength
	case PositionOutOfRange:
		return target == ErrPositionOutOfRange
	case PositionNotUnique:
		return target == ErrPositionNotUnique
	}
	return false
}

// InputError reports an inconsistent rescue input.
type InputError struct {
	Count     uint64
	Positions int
}

// Error implements error.
func (e *InputError) Error() string {
	return fmt.Sprintf("chicken count %d does not match %d positions", e.Count, e.Positions)
}

// Is matches ErrCountMismatch.
func (e *InputError) Is(target error) bool { return target == ErrCountMismatch }
