package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlayer(t *testing.T) {
	t.Parallel()

	p := NewPlayer("conn-1", "Alice", true)
	assert.Equal(t, "conn-1", p.ConnID)
	assert.Equal(t, "Alice", p.Name)
	assert.True(t, p.IsLeader)
	assert.Zero(t, p.Score)
	assert.Zero(t, p.ID)
}

func TestPlayer_AddPoints(t *testing.T) {
	t.Parallel()

	p := NewPlayer("conn-1", "Alice", false)

	total, err := p.AddPoints(1)
	require.NoError(t, err)
	assert.Equal(t, 1, total)

	total, err = p.AddPoints(2)
	require.NoError(t, err)
	assert.Equal(t, 3, total)

	// Negative deltas are rejected and leave the score unchanged
	total, err = p.AddPoints(-1)
	assert.ErrorIs(t, err, ErrNegativePoints)
	assert.Equal(t, 3, total)
	assert.Equal(t, 3, p.Score)
}

func TestPlayer_Info(t *testing.T) {
	t.Parallel()

	p := NewPlayer("conn-1", "Alice", true)
	p.Score = 2

	info := p.Info()
	assert.Empty(t, info.ID) // not persisted yet
	assert.Equal(t, "conn-1", info.ConnID)
	assert.Equal(t, "Alice", info.Name)
	assert.Equal(t, 2, info.Score)
	assert.True(t, info.IsLeader)

	p.ID = 42
	assert.Equal(t, "42", p.Info().ID)
}
