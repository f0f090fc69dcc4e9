// Package bounded provides integers confined to a closed range.
//
// A range is described by a zero-size tag type, so each domain quantity gets
// its own Int type and the bounds travel with the type rather than the value:
//
//	type roofRange struct{}
//
//	func (roofRange) Min() uint64 { return 1 }
//	func (roofRange) Max() uint64 { return 1_000_000 }
//
//	roof, err := bounded.New[roofRange](5)
package bounded

import (
	"cmp"
	"errors"
	"fmt"
	"strconv"
)

// Range reports the inclusive bounds of an Int.
// Implementations must be stateless; the zero value is always used.
type Range interface {
	Min() uint64
	Max() uint64
}

// Kind identifies which side of a range a value fell off.
type Kind int

// Kind values.
const (
	UnderRange Kind = iota + 1
	OverRange
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case UnderRange:
		return "under range"
	case OverRange:
		return "over range"
	default:
		return "unknown"
	}
}

// Sentinel errors matched by RangeError through errors.Is.
var (
	ErrUnderRange = errors.New("value under range")
	ErrOverRange  = errors.New("value over range")
)

// RangeError reports a value outside [Min, Max].
type RangeError struct {
	Kind  Kind
	Value uint64
	Min   uint64
	Max   uint64
}

// Error implements error.
func (e *RangeError) Error() string {
	return fmt.Sprintf("value %d %s [%d, %d]", e.Value, e.Kind, e.Min, e.Max)
}

// Is matches ErrUnderRange or ErrOverRange depending on the kind.
func (e *RangeError) Is(target error) bool {
	switch e.Kind {
	case UnderRange:
		return target == ErrUnderRange
	case OverRange:
		return target == ErrOverRange
	}
	return false
}

// Check validates v against the inclusive range [lo, hi].
func Check(v, lo, hi uint64) error {
	switch {
	case v < lo:
		return &RangeError{Kind: UnderRange, Value: v, Min: lo, Max: hi}
	case v > hi:
		return &RangeError{Kind: OverRange, Value: v, Min: lo, Max: hi}
	}
	return nil
}

// Int is an immutable integer guaranteed to lie within the bounds of R.
// Only values returned by New carry that guarantee; the zero Int does not.
type Int[R Range] struct {
	v uint64
}

// New validates v against R and wraps it.
func New[R Range](v uint64) (Int[R], error) {
	var r R
	if err := Check(v, r.Min(), r.Max()); err != nil {
		return Int[R]{}, err
	}
	return Int[R]{v: v}, nil
}

// FromInt is New for signed input. Negative values are under any range.
func FromInt[R Range](v int) (Int[R], error) {
	if v < 0 {
		var r R
		return Int[R]{}, &RangeError{Kind: UnderRange, Value: 0, Min: r.Min(), Max: r.Max()}
	}
	return New[R](uint64(v))
}

// Value returns the wrapped value.
func (i Int[R]) Value() uint64 { return i.v }

// Int returns the wrapped value as an int.
func (i Int[R]) Int() int { return int(i.v) }

// Compare returns -1, 0 or +1 depending on whether i is less than, equal to
// or greater than o.
func (i Int[R]) Compare(o Int[R]) int { return cmp.Compare(i.v, o.v) }

// Less reports whether i < o.
func (i Int[R]) Less(o Int[R]) bool { return i.v < o.v }

// String implements fmt.Stringer.
func (i Int[R]) String() string { return strconv.FormatUint(i.v, 10) }

// Bounds returns the inclusive range of R.
func Bounds[R Range]() (lo, hi uint64) {
	var r R
	return r.Min(), r.Max()
}
