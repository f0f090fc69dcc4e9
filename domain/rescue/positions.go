package rescue

import (
	"slices"

	"github.com/helixml/chickenrescue/domain/bounded"
)

// Positions is a validated set of chicken positions.
//
// Every position lies in [1, MaxPosition], no two are equal and there is at
// least one. Positions are expected in ascending order; NewPositions does not
// sort them, so callers holding unsorted data should use NewSortedPositions.
type Positions struct {
	values []uint32
}

// NewPositions validates values and copies them into a Positions.
// Checks run cheapest first: count, then range, then uniqueness.
func NewPositions(values []uint32) (Positions, error) {
	if _, err := bounded.New[ChickenCountRange](uint64(len(values))); err != nil {
		return Positions{}, &PositionError{Kind: LengthOutOfRange, Err: err}
	}

	for i, v := range values {
		if v < 1 || v > MaxPosition {
			return Positions{}, &PositionError{Kind: PositionOutOfRange, Index: i, Value: v}
		}
	}

	seen := make(map[uint32]struct{}, len(values))
	for i, v := range values {
		if _, ok := seen[v]; ok {
			return Positions{}, &PositionError{Kind: PositionNotUnique, Index: i, Value: v}
		}
		seen[v] = struct{}{}
	}

	return Positions{values: slices.Clone(values)}, nil
}

// NewSortedPositions sorts a copy of values ascending and validates it.
// Indexes in a returned PositionError refer to the sorted order.
func NewSortedPositions(values []uint32) (Positions, error) {
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	return NewPositions(sorted)
}

// Len returns the number of positions.
func (p Positions) Len() int { return len(p.values) }

// At returns the i-th position.
func (p Positions) At(i int) uint32 { return p.values[i] }

// Values returns a copy of the positions.
func (p Positions) Values() []uint32 { return slices.Clone(p.values) }

// Sorted reports whether the positions are in ascending order.
func (p Positions) Sorted() bool { return slices.IsSorted(p.values) }
