// Package rescue models the chicken rescue problem: chickens sit at distinct
// positions on a line and one roof of fixed length is placed to shelter as
// many of them as possible.
package rescue

import "github.com/helixml/chickenrescue/domain/bounded"

// Input limits.
const (
	MaxChickenCount = 1_000_000
	MaxRoofLength   = 1_000_000
	MaxPosition     = 1_000_000_000
)

// ChickenCountRange bounds the number of chickens.
type ChickenCountRange struct{}

// Min returns the smallest chicken count.
func (ChickenCountRange) Min() uint64 { return 1 }

// Max returns the largest chicken count.
func (ChickenCountRange) Max() uint64 { return MaxChickenCount }

// RoofLengthRange bounds the roof length.
type RoofLengthRange struct{}

// Min returns the shortest roof.
func (RoofLengthRange) Min() uint64 { return 1 }

// Max returns the longest roof.
func (RoofLengthRange) Max() uint64 { return MaxRoofLength }

// ChickenCount is the declared number of chickens.
type ChickenCount = bounded.Int[ChickenCountRange]

// RoofLength is the length of the roof.
type RoofLength = bounded.Int[RoofLengthRange]

// NewChickenCount validates a chicken count.
func NewChickenCount(v uint64) (ChickenCount, error) {
	return bounded.New[ChickenCountRange](v)
}

// NewRoofLength validates a roof length.
func NewRoofLength(v uint64) (RoofLength, error) {
	return bounded.New[RoofLengthRange](v)
}
