package boss

import (
	"strings"
	"testing"

	"github.com/helixml/chickenrescue/domain/bounded"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck(t *testing.T) {
	tests := []struct {
		actions string
		want    Verdict
	}{
		{"SRSSRRR", GoodBoy},
		{"SSRR", GoodBoy},
		{"SRRR", GoodBoy},
		{"RSSRR", BadBoy},
		{"SSSRRRRS", BadBoy},
		{"SRRSSR", BadBoy},
		{"S", BadBoy},
		{"R", BadBoy},
		{"SSR", BadBoy},
	}

	for _, tt := range tests {
		t.Run(tt.actions, func(t *testing.T) {
			a, err := ParseActions(tt.actions)
			require.NoError(t, err)
			assert.Equal(t, tt.want, Check(a))
		})
	}
}

func TestParseActions_Lowercase(t *testing.T) {
	a, err := ParseActions(" srssrrr\n")
	require.NoError(t, err)
	assert.Equal(t, "SRSSRRR", a.String())
	assert.Equal(t, 7, a.Len())
}

func TestParseActions_InvalidSymbol(t *testing.T) {
	_, err := ParseActions("SRX")
	require.ErrorIs(t, err, ErrInvalidAction)

	var actionErr *ActionError
	require.ErrorAs(t, err, &actionErr)
	assert.Equal(t, 2, actionErr.Index)
	assert.Equal(t, 'X', actionErr.Symbol)
}

func TestParseActions_MultibyteSymbolIndex(t *testing.T) {
	tests := []struct {
		actions string
		index   int
		symbol  rune
	}{
		{"SRé", 2, 'é'},
		{"éSR", 0, 'é'},
		{"SS→R", 2, '→'},
	}
	for _, tt := range tests {
		_, err := ParseActions(tt.actions)

		var actionErr *ActionError
		require.ErrorAs(t, err, &actionErr, tt.actions)
		assert.Equal(t, tt.index, actionErr.Index, tt.actions)
		assert.Equal(t, tt.symbol, actionErr.Symbol, tt.actions)
	}
}

func TestParseActions_Length(t *testing.T) {
	_, err := ParseActions("")
	assert.ErrorIs(t, err, bounded.ErrUnderRange)

	_, err = ParseActions(strings.Repeat("S", MaxActions+1))
	assert.ErrorIs(t, err, bounded.ErrOverRange)
}

func TestNewActions_RejectsUnknownAction(t *testing.T) {
	_, err := NewActions([]Action{Shoot, Action('Q')})
	assert.ErrorIs(t, err, ErrInvalidAction)
}

func TestVerdict_String(t *testing.T) {
	assert.Equal(t, "Good boy", GoodBoy.String())
	assert.Equal(t, "Bad boy", BadBoy.String())
}
