package storage

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/palemoky/hangman-online/internal/server/types"
)

const (
	// Redis key
	roundWinsKey   = "leaderboard:round_wins"
	gamesPlayedKey = "leaderboard:games_played"
)

// Leaderboard 跨对局排行榜（按回合胜场计）
type Leaderboard struct {
	redis *redis.Client
}

// NewLeaderboard 创建排行榜
func NewLeaderboard(client *redis.Client) *Leaderboard {
	return &Leaderboard{redis: client}
}

// RecordRoundWin 给玩家的回合胜场 +1
func (l *Leaderboard) RecordRoundWin(ctx context.Context, playerName string) error {
	return l.redis.ZIncrBy(ctx, roundWinsKey, 1, playerName).Err()
}

// RecordGamePlayed 给玩家的参与场次 +1
func (l *Leaderboard) RecordGamePlayed(ctx context.Context, playerName string) error {
	return l.redis.ZIncrBy(ctx, gamesPlayedKey, 1, playerName).Err()
}

// Top 返回回合胜场最多的前 limit 名玩家
func (l *Leaderboard) Top(ctx context.Context, limit int) ([]types.LeaderboardEntry, error) {
	results, err := l.redis.ZRevRangeWithScores(ctx, roundWinsKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]types.LeaderboardEntry, 0, len(results))
	for i, z := range results {
		name, ok := z.Member.(string)
		if !ok {
			continue
		}
		entries = append(entries, types.LeaderboardEntry{
			Rank:       i + 1,
			PlayerName: name,
			RoundWins:  int(z.Score),
		})
	}
	return entries, nil
}
