package storage

import (
	"context"
	"math/rand"

	"github.com/palemoky/hangman-online/internal/server/types"
)

// MemoryWordSource 内存词库
// Postgres 不可用时的降级方案，直接从内置种子里随机抽词
type MemoryWordSource struct {
	words []types.Word
}

// NewMemoryWordSource 创建内存词库
func NewMemoryWordSource() *MemoryWordSource {
	return &MemoryWordSource{words: seedWords}
}

// NewMemoryWordSourceWith 用自定义词表创建内存词库
func NewMemoryWordSourceWith(words []types.Word) *MemoryWordSource {
	return &MemoryWordSource{words: words}
}

// FetchRandomWords 随机抽取单词，词库不足时返回全部
func (m *MemoryWordSource) FetchRandomWords(ctx context.Context, count int, category string) ([]types.Word, error) {
	pool := m.words
	if category != "" {
		pool = nil
		for _, w := range m.words {
			if w.Category == category {
				pool = append(pool, w)
			}
		}
	}

	shuffled := make([]types.Word, len(pool))
	copy(shuffled, pool)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	if count > len(shuffled) {
		count = len(shuffled)
	}
	return shuffled[:count], nil
}
