// Package transaction broadcasts price transactions to a node and monitors
// their status.
package transaction

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"
)

// SymbolLength is the exact number of letters in a Symbol.
const SymbolLength = 3

// Validation errors for transaction fields.
var (
	ErrSymbolLength    = errors.New("symbol must be exactly 3 characters")
	ErrSymbolCharacter = errors.New("symbol must contain only letters")
	ErrZeroPrice       = errors.New("price must be non-zero")
	ErrEmptyHash       = errors.New("transaction hash is empty")
)

// Symbol is an upper-case three letter ticker such as ETH.
type Symbol struct {
	value string
}

// NewSymbol validates s and normalises it to upper case.
func NewSymbol(s string) (Symbol, error) {
	s = strings.TrimSpace(s)
	if len([]rune(s)) != SymbolLength {
		return Symbol{}, fmt.Errorf("%w: %q", ErrSymbolLength, s)
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsLetter(r) {
			return Symbol{}, fmt.Errorf("%w: %q", ErrSymbolCharacter, s)
		}
	}
	return Symbol{value: strings.ToUpper(s)}, nil
}

// String returns the ticker.
func (s Symbol) String() string { return s.value }

// Price is a non-zero integer price.
type Price struct {
	value uint64
}

// NewPrice rejects zero.
func NewPrice(v uint64) (Price, error) {
	if v == 0 {
		return Price{}, ErrZeroPrice
	}
	return Price{value: v}, nil
}

// Value returns the price.
func (p Price) Value() uint64 { return p.value }

// Timestamp is a UNIX time in seconds.
type Timestamp uint64

// Now returns the current time as a Timestamp.
func Now() Timestamp {
	return Timestamp(time.Now().Unix())
}

// Time converts the timestamp to a time.Time in UTC.
func (t Timestamp) Time() time.Time {
	return time.Unix(int64(t), 0).UTC()
}

// Transaction is a signed-off price observation ready to broadcast.
type Transaction struct {
	Symbol    Symbol
	Price     Price
	Timestamp Timestamp
}

// NewTransaction validates the raw fields and stamps the transaction with
// the current time.
func NewTransaction(symbol string, price uint64) (Transaction, error) {
	s, err := NewSymbol(symbol)
	if err != nil {
		return Transaction{}, err
	}
	p, err := NewPrice(price)
	if err != nil {
		return Transaction{}, err
	}
	return Transaction{Symbol: s, Price: p, Timestamp: Now()}, nil
}

// Receipt is the node's acknowledgement of a broadcast.
type Receipt struct {
	Hash string
}

// Status is the state of a broadcast transaction.
type Status string

// Status values reported by the node.
const (
	StatusConfirmed    Status = "CONFIRMED"
	StatusFailed       Status = "FAILED"
	StatusPending      Status = "PENDING"
	StatusDoesNotExist Status = "DNE"
)

// Errors returned by Status.Err for the non-confirmed outcomes.
var (
	ErrFailed       = errors.New("transaction failed")
	ErrPending      = errors.New("transaction pending")
	ErrDoesNotExist = errors.New("transaction does not exist")
	ErrUnknownState = errors.New("unknown transaction status")
)

// ParseStatus maps the node's status string onto a Status.
func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToUpper(strings.TrimSpace(s))); st {
	case StatusConfirmed, StatusFailed, StatusPending, StatusDoesNotExist:
		return st, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownState, s)
}

// Err returns nil for a confirmed transaction and a sentinel otherwise.
func (s Status) Err() error {
	switch s {
	case StatusConfirmed:
		return nil
	case StatusFailed:
		return ErrFailed
	case StatusPending:
		return ErrPending
	case StatusDoesNotExist:
		return ErrDoesNotExist
	}
	return ErrUnknownState
}

// Final reports whether the status will not change any more.
func (s Status) Final() bool {
	return s == StatusConfirmed || s == StatusFailed
}
