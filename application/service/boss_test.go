package service

import (
	"testing"

	"github.com/helixml/chickenrescue/domain/boss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoss_Judge(t *testing.T) {
	b := NewBoss(nil)

	v, err := b.Judge("SRSSRRR")
	require.NoError(t, err)
	assert.Equal(t, boss.GoodBoy, v)

	v, err = b.Judge("SRRSSR")
	require.NoError(t, err)
	assert.Equal(t, boss.BadBoy, v)
}

func TestBoss_JudgeInvalid(t *testing.T) {
	b := NewBoss(nil)

	_, err := b.Judge("SRZ")
	assert.ErrorIs(t, err, boss.ErrInvalidAction)
}
