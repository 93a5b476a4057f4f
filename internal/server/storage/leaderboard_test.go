package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLeaderboard(t *testing.T) (*Leaderboard, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	return NewLeaderboard(client), mr
}

func TestLeaderboard_RecordAndTop(t *testing.T) {
	board, _ := newTestLeaderboard(t)
	ctx := context.Background()

	// Alice wins three rounds, Bob wins one
	for i := 0; i < 3; i++ {
		require.NoError(t, board.RecordRoundWin(ctx, "Alice"))
	}
	require.NoError(t, board.RecordRoundWin(ctx, "Bob"))

	entries, err := board.Top(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, "Alice", entries[0].PlayerName)
	assert.Equal(t, 3, entries[0].RoundWins)
	assert.Equal(t, 2, entries[1].Rank)
	assert.Equal(t, "Bob", entries[1].PlayerName)
	assert.Equal(t, 1, entries[1].RoundWins)
}

func TestLeaderboard_TopRespectsLimit(t *testing.T) {
	board, _ := newTestLeaderboard(t)
	ctx := context.Background()

	for _, name := range []string{"Alice", "Bob", "Carol"} {
		require.NoError(t, board.RecordRoundWin(ctx, name))
	}

	entries, err := board.Top(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestLeaderboard_TopEmpty(t *testing.T) {
	board, _ := newTestLeaderboard(t)

	entries, err := board.Top(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLeaderboard_RecordGamePlayed(t *testing.T) {
	board, mr := newTestLeaderboard(t)
	ctx := context.Background()

	require.NoError(t, board.RecordGamePlayed(ctx, "Alice"))
	require.NoError(t, board.RecordGamePlayed(ctx, "Alice"))

	// Games played are tracked separately from round wins
	score, err := mr.ZScore(gamesPlayedKey, "Alice")
	require.NoError(t, err)
	assert.Equal(t, float64(2), score)

	entries, err := board.Top(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLeaderboard_RedisDown(t *testing.T) {
	board, mr := newTestLeaderboard(t)
	mr.Close()

	assert.Error(t, board.RecordRoundWin(context.Background(), "Alice"))
	_, err := board.Top(context.Background(), 10)
	assert.Error(t, err)
}
