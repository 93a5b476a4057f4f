package types

import (
	"context"
	"time"

	"github.com/palemoky/hangman-online/internal/protocol"
)

// Word 一个待猜的单词（每回合一个，创建后不可变）
type Word struct {
	Text     string // 单词本身，可能包含空格（短语）
	Hint     string // 提示
	Category string // 分类
}

// ServerContext 服务器上下文接口 - 避免循环依赖
type ServerContext interface {
	GetRegistry() RegistryInterface
	GetStore() StoreInterface
	GetWordSource() WordSourceInterface
	GetLeaderboard() LeaderboardInterface
	GetGameConfig() GameConfigInterface
	GetClientByID(id string) ClientInterface
	RegisterClient(id string, client ClientInterface)
	UnregisterClient(id string)
}

// ClientInterface 客户端接口
type ClientInterface interface {
	GetID() string
	GetName() string
	SetName(name string)
	SendMessage(msg *protocol.Message)
	Close()
}

// RegistryInterface 对局注册表接口 - 所有入站事件的入口
type RegistryInterface interface {
	OnJoin(client ClientInterface, name string) error
	OnStart(client ClientInterface) error
	OnGuess(client ClientInterface, letter string) error
	OnDisconnect(client ClientInterface)
	ActiveSessionCount() int
}

// StoreInterface 持久化接口（尽力而为，失败不影响游戏进行）
type StoreInterface interface {
	CreateGameRecord(ctx context.Context) (uint, error)
	RecordPlayer(ctx context.Context, gameID uint, connID, name string, isLeader bool) (uint, error)
	PromoteLeader(ctx context.Context, playerID uint) error
	FinalizeGame(ctx context.Context, gameID uint, finishedAt time.Time, finalScores []protocol.FinalScore) error
	UpdatePlayerScore(ctx context.Context, playerID uint, score int) error
}

// WordSourceInterface 单词来源接口
// 当底层词库不足时返回的数量可以少于请求数量
type WordSourceInterface interface {
	FetchRandomWords(ctx context.Context, count int, category string) ([]Word, error)
}

// LeaderboardInterface 跨对局排行榜接口（尽力而为）
type LeaderboardInterface interface {
	RecordRoundWin(ctx context.Context, playerName string) error
	RecordGamePlayed(ctx context.Context, playerName string) error
	Top(ctx context.Context, limit int) ([]LeaderboardEntry, error)
}

// LeaderboardEntry 排行榜条目
type LeaderboardEntry struct {
	Rank       int    `json:"rank"`
	PlayerName string `json:"player_name"`
	RoundWins  int    `json:"round_wins"`
}

// GameConfigInterface 游戏配置访问接口
type GameConfigInterface interface {
	RoundsPerGame() int
	CountdownDuration() time.Duration
	RoundIntervalDuration() time.Duration
	CleanupDelayDuration() time.Duration
}
