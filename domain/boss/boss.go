// Package boss decides whether Boss Baby behaved during a shooting exchange.
//
// The exchange is a sequence of actions: the kids shoot (S) and Boss Baby
// retaliates (R). Boss Baby must never shoot first, and every round of shots
// must be answered by at least as many shots back before the kids shoot
// again or the exchange ends.
package boss

import (
	"errors"
	"fmt"
	"strings"

	"github.com/helixml/chickenrescue/domain/bounded"
)

// MaxActions is the longest accepted exchange.
const MaxActions = 1_000_000

// Action is a single move in the exchange.
type Action byte

// Action values.
const (
	Shoot     Action = 'S'
	Retaliate Action = 'R'
)

// String returns the action symbol.
func (a Action) String() string { return string(rune(a)) }

// Verdict is the outcome of Check.
type Verdict int

// Verdict values.
const (
	GoodBoy Verdict = iota + 1
	BadBoy
)

// String returns "Good boy" or "Bad boy".
func (v Verdict) String() string {
	switch v {
	case GoodBoy:
		return "Good boy"
	case BadBoy:
		return "Bad boy"
	default:
		return "unknown"
	}
}

// ActionCountRange bounds the length of an exchange.
type ActionCountRange struct{}

// Min returns the shortest exchange.
func (ActionCountRange) Min() uint64 { return 1 }

// Max returns the longest exchange.
func (ActionCountRange) Max() uint64 { return MaxActions }

// ErrInvalidAction is matched by ActionError.
var ErrInvalidAction = errors.New("invalid action")

// ActionError reports a symbol outside the S/R alphabet.
type ActionError struct {
	Index  int
	Symbol rune
}

// Error implements error.
func (e *ActionError) Error() string {
	return fmt.Sprintf("invalid action %q at index %d, want S or R", e.Symbol, e.Index)
}

// Is matches ErrInvalidAction.
func (e *ActionError) Is(target error) bool { return target == ErrInvalidAction }

// Actions is a validated, non-empty exchange.
type Actions struct {
	actions []Action
}

// NewActions validates a sequence of actions.
func NewActions(actions []Action) (Actions, error) {
	if _, err := bounded.New[ActionCountRange](uint64(len(actions))); err != nil {
		return Actions{}, fmt.Errorf("action count: %w", err)
	}
	for i, a := range actions {
		if a != Shoot && a != Retaliate {
			return Actions{}, &ActionError{Index: i, Symbol: rune(a)}
		}
	}
	out := make([]Action, len(actions))
	copy(out, actions)
	return Actions{actions: out}, nil
}

// ParseActions parses a string such as "SRSSRRR". Lowercase is accepted.
func ParseActions(s string) (Actions, error) {
	s = strings.TrimSpace(s)
	actions := make([]Action, 0, len(s))
	// Every rune before the first invalid one is ASCII, so the byte offset
	// i is also the symbol index.
	for i, r := range s {
		switch r {
		case 'S', 's':
			actions = append(actions, Shoot)
		case 'R', 'r':
			actions = append(actions, Retaliate)
		default:
			return Actions{}, &ActionError{Index: i, Symbol: r}
		}
	}
	return NewActions(actions)
}

// Len returns the number of actions.
func (a Actions) Len() int { return len(a.actions) }

// String returns the exchange as a string of symbols.
func (a Actions) String() string {
	var b strings.Builder
	b.Grow(len(a.actions))
	for _, act := range a.actions {
		b.WriteByte(byte(act))
	}
	return b.String()
}

// Check judges the exchange.
func Check(a Actions) Verdict {
	if len(a.actions) == 0 || a.actions[0] == Retaliate {
		return BadBoy
	}

	shots, answers := 0, 0
	for _, act := range a.actions {
		if act == Shoot {
			if answers > 0 {
				// a new round begins; the previous one must be settled
				if answers < shots {
					return BadBoy
				}
				shots, answers = 0, 0
			}
			shots++
			continue
		}
		answers++
	}
	if answers < shots {
		return BadBoy
	}
	return GoodBoy
}
