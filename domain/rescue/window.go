package rescue

// CountFrom returns how many positions a roof of length roof covers when it
// starts at the i-th position, i.e. how many positions fall in
// [p[i], p[i]+roof). Positions must be ascending; the scan stops at the
// first position outside the window.
func CountFrom(p Positions, i int, roof uint64) int {
	start := uint64(p.values[i])
	count := 1
	for j := i + 1; j < len(p.values); j++ {
		if uint64(p.values[j])-start >= roof {
			break
		}
		count++
	}
	return count
}

// Sweep returns the largest number of chickens a single roof can cover,
// using one pass with two pointers.
func Sweep(in Input) int {
	values := in.positions.values
	roof := in.roof.Value()
	if len(values) == 0 {
		panic("rescue: sweep over empty positions")
	}

	best := 0
	end := 0
	for i := range values {
		if end < i {
			end = i
		}
		for end+1 < len(values) && uint64(values[end+1])-uint64(values[i]) < roof {
			end++
		}
		best = max(best, end-i+1)
	}
	return best
}
