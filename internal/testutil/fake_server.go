//go:build !production

package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/palemoky/hangman-online/internal/protocol"
	"github.com/palemoky/hangman-online/internal/server/types"
)

// FakeServer 实现 types.ServerContext 的内存版本
// Registry 在创建注册表之后再赋值
type FakeServer struct {
	Registry types.RegistryInterface
	Store    types.StoreInterface
	Words    types.WordSourceInterface
	Board    types.LeaderboardInterface
	Config   types.GameConfigInterface

	mu      sync.RWMutex
	clients map[string]types.ClientInterface
}

// NewFakeServer 创建测试服务器上下文，定时流转都用很短的间隔
func NewFakeServer() *FakeServer {
	return &FakeServer{
		Config:  &FakeGameConfig{Rounds: 3, Countdown: 5 * time.Millisecond, RoundInterval: 5 * time.Millisecond, CleanupDelay: 20 * time.Millisecond},
		clients: make(map[string]types.ClientInterface),
	}
}

func (s *FakeServer) GetRegistry() types.RegistryInterface       { return s.Registry }
func (s *FakeServer) GetStore() types.StoreInterface             { return s.Store }
func (s *FakeServer) GetWordSource() types.WordSourceInterface   { return s.Words }
func (s *FakeServer) GetLeaderboard() types.LeaderboardInterface { return s.Board }
func (s *FakeServer) GetGameConfig() types.GameConfigInterface   { return s.Config }

func (s *FakeServer) GetClientByID(id string) types.ClientInterface {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clients[id]
}

func (s *FakeServer) RegisterClient(id string, client types.ClientInterface) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients[id] = client
}

func (s *FakeServer) UnregisterClient(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.clients, id)
}

// FakeGameConfig 实现 types.GameConfigInterface
type FakeGameConfig struct {
	Rounds        int
	Countdown     time.Duration
	RoundInterval time.Duration
	CleanupDelay  time.Duration
}

func (c *FakeGameConfig) RoundsPerGame() int                   { return c.Rounds }
func (c *FakeGameConfig) CountdownDuration() time.Duration     { return c.Countdown }
func (c *FakeGameConfig) RoundIntervalDuration() time.Duration { return c.RoundInterval }
func (c *FakeGameConfig) CleanupDelayDuration() time.Duration  { return c.CleanupDelay }

// FakeWordSource 返回固定词表的词库
type FakeWordSource struct {
	WordList []types.Word
	Err      error
}

func (f *FakeWordSource) FetchRandomWords(ctx context.Context, count int, category string) ([]types.Word, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	if count > len(f.WordList) {
		count = len(f.WordList)
	}
	return f.WordList[:count], nil
}

// FakeStore 记录调用的内存存储
// 持久化在协程中执行，所以全部字段用锁保护
type FakeStore struct {
	mu          sync.Mutex
	nextGameID  uint
	nextPlayer  uint
	Games       []uint
	PlayerRows  map[uint]string // 玩家行 ID → 昵称
	Promoted    []uint
	Finalized   []uint
	ScoreWrites map[uint]int
}

func NewFakeStore() *FakeStore {
	return &FakeStore{
		PlayerRows:  make(map[uint]string),
		ScoreWrites: make(map[uint]int),
	}
}

func (f *FakeStore) CreateGameRecord(ctx context.Context) (uint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextGameID++
	f.Games = append(f.Games, f.nextGameID)
	return f.nextGameID, nil
}

func (f *FakeStore) RecordPlayer(ctx context.Context, gameID uint, connID, name string, isLeader bool) (uint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextPlayer++
	f.PlayerRows[f.nextPlayer] = name
	return f.nextPlayer, nil
}

func (f *FakeStore) PromoteLeader(ctx context.Context, playerID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Promoted = append(f.Promoted, playerID)
	return nil
}

func (f *FakeStore) FinalizeGame(ctx context.Context, gameID uint, finishedAt time.Time, finalScores []protocol.FinalScore) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Finalized = append(f.Finalized, gameID)
	return nil
}

func (f *FakeStore) UpdatePlayerScore(ctx context.Context, playerID uint, score int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ScoreWrites[playerID] = score
	return nil
}

// GameCount 已创建的对局记录数
func (f *FakeStore) GameCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Games)
}

// PlayerCount 已记录的玩家行数
func (f *FakeStore) PlayerCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.PlayerRows)
}

// PromotedCount 房主变更记录数
func (f *FakeStore) PromotedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Promoted)
}

// FinalizedCount 已终结的对局记录数
func (f *FakeStore) FinalizedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Finalized)
}

// FakeLeaderboard 记录调用的内存排行榜
type FakeLeaderboard struct {
	mu          sync.Mutex
	RoundWins   map[string]int
	GamesPlayed map[string]int
}

func NewFakeLeaderboard() *FakeLeaderboard {
	return &FakeLeaderboard{
		RoundWins:   make(map[string]int),
		GamesPlayed: make(map[string]int),
	}
}

func (f *FakeLeaderboard) RecordRoundWin(ctx context.Context, playerName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.RoundWins[playerName]++
	return nil
}

func (f *FakeLeaderboard) RecordGamePlayed(ctx context.Context, playerName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.GamesPlayed[playerName]++
	return nil
}

func (f *FakeLeaderboard) Top(ctx context.Context, limit int) ([]types.LeaderboardEntry, error) {
	return nil, nil
}

// WinsOf 玩家的回合胜场数
func (f *FakeLeaderboard) WinsOf(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.RoundWins[name]
}

// MockRegistry 实现 types.RegistryInterface 的 mock
type MockRegistry struct {
	mock.Mock
}

func (m *MockRegistry) OnJoin(client types.ClientInterface, name string) error {
	args := m.Called(client, name)
	return args.Error(0)
}

func (m *MockRegistry) OnStart(client types.ClientInterface) error {
	args := m.Called(client)
	return args.Error(0)
}

func (m *MockRegistry) OnGuess(client types.ClientInterface, letter string) error {
	args := m.Called(client, letter)
	return args.Error(0)
}

func (m *MockRegistry) OnDisconnect(client types.ClientInterface) {
	m.Called(client)
}

func (m *MockRegistry) ActiveSessionCount() int {
	args := m.Called()
	return args.Int(0)
}
