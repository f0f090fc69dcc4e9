package transaction

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSymbol(t *testing.T) {
	s, err := NewSymbol("eth")
	require.NoError(t, err)
	assert.Equal(t, "ETH", s.String())

	s, err = NewSymbol(" BtC ")
	require.NoError(t, err)
	assert.Equal(t, "BTC", s.String())
}

func TestNewSymbol_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"too short", "ET", ErrSymbolLength},
		{"too long", "ETHX", ErrSymbolLength},
		{"empty", "", ErrSymbolLength},
		{"digit", "ET1", ErrSymbolCharacter},
		{"punctuation", "E-H", ErrSymbolCharacter},
		{"non ascii", "ÉTH", ErrSymbolCharacter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSymbol(tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNewPrice(t *testing.T) {
	_, err := NewPrice(0)
	assert.ErrorIs(t, err, ErrZeroPrice)

	p, err := NewPrice(4500)
	require.NoError(t, err)
	assert.Equal(t, uint64(4500), p.Value())
}

func TestNewTransaction(t *testing.T) {
	before := time.Now().Unix()
	tx, err := NewTransaction("eth", 4500)
	require.NoError(t, err)

	assert.Equal(t, "ETH", tx.Symbol.String())
	assert.Equal(t, uint64(4500), tx.Price.Value())
	assert.GreaterOrEqual(t, int64(tx.Timestamp), before)

	_, err = NewTransaction("eth", 0)
	assert.ErrorIs(t, err, ErrZeroPrice)
	_, err = NewTransaction("e", 1)
	assert.ErrorIs(t, err, ErrSymbolLength)
}

func TestTimestamp_Time(t *testing.T) {
	ts := Timestamp(1_700_000_000)
	assert.Equal(t, time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC), ts.Time())
}

func TestParseStatus(t *testing.T) {
	for raw, want := range map[string]Status{
		"CONFIRMED": StatusConfirmed,
		"failed":    StatusFailed,
		"PENDING":   StatusPending,
		"DNE":       StatusDoesNotExist,
	} {
		got, err := ParseStatus(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got)
	}

	_, err := ParseStatus("LOST")
	assert.ErrorIs(t, err, ErrUnknownState)
}

func TestStatus_Err(t *testing.T) {
	assert.NoError(t, StatusConfirmed.Err())
	assert.ErrorIs(t, StatusFailed.Err(), ErrFailed)
	assert.ErrorIs(t, StatusPending.Err(), ErrPending)
	assert.ErrorIs(t, StatusDoesNotExist.Err(), ErrDoesNotExist)
	assert.ErrorIs(t, Status("x").Err(), ErrUnknownState)

	assert.True(t, StatusConfirmed.Final())
	assert.True(t, StatusFailed.Final())
	assert.False(t, StatusPending.Final())
	assert.False(t, StatusDoesNotExist.Final())
}
