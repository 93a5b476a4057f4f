package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/hangman-online/internal/server/types"
)

func TestMemoryWordSource_FetchRandomWords(t *testing.T) {
	t.Parallel()
	src := NewMemoryWordSourceWith([]types.Word{
		{Text: "PIZZA", Category: "食物"},
		{Text: "SUSHI", Category: "食物"},
		{Text: "PENGUIN", Category: "动物"},
	})
	ctx := context.Background()

	words, err := src.FetchRandomWords(ctx, 2, "")
	require.NoError(t, err)
	assert.Len(t, words, 2)

	// Asking for more than the pool holds returns the whole pool
	words, err = src.FetchRandomWords(ctx, 10, "")
	require.NoError(t, err)
	assert.Len(t, words, 3)
}

func TestMemoryWordSource_CategoryFilter(t *testing.T) {
	t.Parallel()
	src := NewMemoryWordSourceWith([]types.Word{
		{Text: "PIZZA", Category: "食物"},
		{Text: "SUSHI", Category: "食物"},
		{Text: "PENGUIN", Category: "动物"},
	})
	ctx := context.Background()

	words, err := src.FetchRandomWords(ctx, 10, "食物")
	require.NoError(t, err)
	require.Len(t, words, 2)
	for _, w := range words {
		assert.Equal(t, "食物", w.Category)
	}

	// Unknown category yields nothing rather than an error
	words, err = src.FetchRandomWords(ctx, 10, "体育")
	require.NoError(t, err)
	assert.Empty(t, words)
}

func TestMemoryWordSource_SeedWords(t *testing.T) {
	t.Parallel()
	src := NewMemoryWordSource()

	words, err := src.FetchRandomWords(context.Background(), 5, "")
	require.NoError(t, err)
	assert.Len(t, words, 5)
	for _, w := range words {
		assert.NotEmpty(t, w.Text)
		assert.NotEmpty(t, w.Hint)
		assert.NotEmpty(t, w.Category)
	}
}
