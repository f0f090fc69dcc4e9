package rescue

import "fmt"

// Input is a validated rescue problem: the declared chicken count, the roof
// length and the chicken positions, with the count matching the positions.
type Input struct {
	count     ChickenCount
	roof      RoofLength
	positions Positions
}

// NewInput checks that count agrees with positions and builds an Input.
func NewInput(count ChickenCount, roof RoofLength, positions Positions) (Input, error) {
	if count.Int() != positions.Len() {
		return Input{}, &InputError{Count: count.Value(), Positions: positions.Len()}
	}
	return Input{
		count:     count,
		roof:      roof,
		positions: positions,
	}, nil
}

// ParseInput validates raw values and builds an Input. The returned error
// names the field that failed.
func ParseInput(count, roof uint64, values []uint32) (Input, error) {
	c, err := NewChickenCount(count)
	if err != nil {
		return Input{}, fmt.Errorf("chicken count: %w", err)
	}
	r, err := NewRoofLength(roof)
	if err != nil {
		return Input{}, fmt.Errorf("roof length: %w", err)
	}
	p, err := NewPositions(values)
	if err != nil {
		return Input{}, fmt.Errorf("positions: %w", err)
	}
	return NewInput(c, r, p)
}

// Count returns the declared chicken count.
func (in Input) Count() ChickenCount { return in.count }

// Roof returns the roof length.
func (in Input) Roof() RoofLength { return in.roof }

// Positions returns the chicken positions.
func (in Input) Positions() Positions { return in.positions }
