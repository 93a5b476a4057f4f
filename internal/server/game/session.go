package game

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/palemoky/hangman-online/internal/protocol"
	"github.com/palemoky/hangman-online/internal/server/types"
)

// RoundResult 回合结束摘要
type RoundResult struct {
	Won        bool   // 有玩家猜出了单词
	Lost       bool   // 全员出局，无人获胜
	WinnerConn string // 获胜者连接 ID
	WinnerName string // 获胜者昵称
	FullWord   string // 完整单词
}

// GameSession 一场对局的权威状态
// 持有玩家名单、回合序列和每个玩家的猜测进度
//
// 并发约定: 除构造函数外，所有方法都要求调用方持有 mu，
// 注册表在完整的"读取-修改-广播"序列外围加锁（见 SessionRegistry）
type GameSession struct {
	ID        string
	DBGameID  uint // 持久化后的对局行 ID（0 表示未持久化）
	CreatedAt time.Time

	mu sync.Mutex

	players  []*Player // 按加入顺序排列
	started  bool
	finished bool

	roundIdx  int
	words     []types.Word
	rounds    map[string]*RoundState // 连接 ID → 本回合进度，每回合重建
	winners   []string               // 每回合的获胜者连接 ID，空串表示未有人获胜
	roundOver bool                   // 当前回合是否已对全组结束
}

// NewSession 创建一个新对局
func NewSession() *GameSession {
	return &GameSession{
		ID:        uuid.New().String(),
		CreatedAt: time.Now(),
		rounds:    make(map[string]*RoundState),
	}
}

// AddPlayer 添加玩家，第一个加入的玩家成为房主
// 同一连接重复加入返回 ErrDuplicateJoin
func (gs *GameSession) AddPlayer(connID, name string) (*Player, error) {
	for _, p := range gs.players {
		if p.ConnID == connID {
			return nil, ErrDuplicateJoin
		}
	}

	player := NewPlayer(connID, name, len(gs.players) == 0)
	gs.players = append(gs.players, player)
	gs.rounds[connID] = NewRoundState()
	return player, nil
}

// RemovePlayer 移除玩家并返回剩余名单
// 如果房主离开且还有玩家在场，最早加入的玩家接任房主
func (gs *GameSession) RemovePlayer(connID string) (remaining []*Player, promoted *Player) {
	for i, p := range gs.players {
		if p.ConnID == connID {
			gs.players = append(gs.players[:i], gs.players[i+1:]...)
			break
		}
	}
	delete(gs.rounds, connID)

	if len(gs.players) > 0 && !gs.hasLeader() {
		gs.players[0].IsLeader = true
		promoted = gs.players[0]
	}
	return gs.players, promoted
}

// StartGame 用给定的单词序列开始对局
// 单词数量少于预期时回合数随之减少
func (gs *GameSession) StartGame(words []types.Word) error {
	if gs.started {
		return ErrAlreadyStarted
	}
	if len(words) == 0 {
		return &GameError{Code: protocol.ErrCodeUnknown, Message: "词库为空，无法开始"}
	}

	gs.started = true
	gs.roundIdx = 0
	gs.words = words
	gs.winners = make([]string, len(words))
	gs.resetRounds()
	return nil
}

// GuessLetter 应用一名玩家的一次猜测
// 仅当本次猜测使回合对整个对局结束时返回非 nil 的 RoundResult
func (gs *GameSession) GuessLetter(connID string, letter rune) (*RoundResult, error) {
	if !gs.started || gs.finished {
		return nil, ErrGameNotStart
	}

	rs, ok := gs.rounds[connID]
	if !ok {
		return nil, ErrNotInSession
	}

	word := gs.words[gs.roundIdx]
	if rs.Finished(word) {
		return nil, ErrAlreadyOut
	}

	if err := rs.ApplyGuess(word, letter); err != nil {
		return nil, err
	}

	// 第一个猜出单词的玩家得 1 分，之后的完成者不再记分
	if rs.IsWon(word) && gs.winners[gs.roundIdx] == "" {
		gs.winners[gs.roundIdx] = connID
		gs.roundOver = true
		player := gs.playerByConn(connID)
		_, _ = player.AddPoints(1)
		return &RoundResult{
			Won:        true,
			WinnerConn: connID,
			WinnerName: player.Name,
			FullWord:   word.Text,
		}, nil
	}

	// 全员出局时回合以失败告终
	if rs.IsLost() && !gs.roundOver && gs.allLost() {
		gs.roundOver = true
		return &RoundResult{
			Lost:     true,
			FullWord: word.Text,
		}, nil
	}

	return nil, nil
}

// ConcludeRoundIfAllLost 剩余玩家全部出局时以失败结束当前回合
// 用于覆盖"未出局的玩家中途离开"这一路径，已结束的回合返回 nil
func (gs *GameSession) ConcludeRoundIfAllLost() *RoundResult {
	if !gs.started || gs.finished || gs.roundOver || !gs.allLost() {
		return nil
	}
	gs.roundOver = true
	return &RoundResult{
		Lost:     true,
		FullWord: gs.words[gs.roundIdx].Text,
	}
}

// NextRound 推进到下一回合并清空所有玩家的进度
// 对局未开始或没有更多单词时返回 false
func (gs *GameSession) NextRound() bool {
	if !gs.started || gs.roundIdx+1 >= len(gs.words) {
		return false
	}
	gs.roundIdx++
	gs.resetRounds()
	return true
}

// FinishGame 结束对局并返回按分数降序的最终得分
// 分数相同时按加入顺序排列
func (gs *GameSession) FinishGame() []protocol.FinalScore {
	gs.finished = true

	scores := make([]protocol.FinalScore, len(gs.players))
	ordered := make([]*Player, len(gs.players))
	copy(ordered, gs.players)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Score > ordered[j].Score
	})
	for i, p := range ordered {
		scores[i] = protocol.FinalScore{Name: p.Name, Score: p.Score}
	}
	return scores
}

// RoundStateFor 构建发送给指定玩家的回合状态（进度是按玩家独立的）
func (gs *GameSession) RoundStateFor(connID string) *protocol.RoundStatePayload {
	rs, ok := gs.rounds[connID]
	if !ok || !gs.started || gs.finished {
		return nil
	}

	word := gs.words[gs.roundIdx]
	return &protocol.RoundStatePayload{
		Round:          gs.roundIdx + 1,
		TotalRounds:    len(gs.words),
		Hint:           word.Hint,
		Category:       word.Category,
		DisplayWord:    rs.Display(word),
		WrongLetters:   rs.WrongLetters(),
		CorrectLetters: rs.CorrectLetters(),
		GuessedLetters: rs.GuessedLetters(),
		Finished:       rs.Finished(word),
	}
}

// PlayersInfo 全部玩家的公开视图（按加入顺序）
func (gs *GameSession) PlayersInfo() []protocol.PlayerInfo {
	infos := make([]protocol.PlayerInfo, len(gs.players))
	for i, p := range gs.players {
		infos[i] = p.Info()
	}
	return infos
}

// Players 按加入顺序返回玩家
func (gs *GameSession) Players() []*Player {
	return gs.players
}

// IsLeader 判断连接是否是房主
func (gs *GameSession) IsLeader(connID string) bool {
	p := gs.playerByConn(connID)
	return p != nil && p.IsLeader
}

// CheckLeaderInvariant 名单非空时必须恰好有一名房主
func (gs *GameSession) CheckLeaderInvariant() error {
	if len(gs.players) == 0 {
		return nil
	}
	leaders := 0
	for _, p := range gs.players {
		if p.IsLeader {
			leaders++
		}
	}
	if leaders != 1 {
		return ErrNoLeader
	}
	return nil
}

// CurrentWord 当前回合的单词
func (gs *GameSession) CurrentWord() types.Word {
	return gs.words[gs.roundIdx]
}

// CurrentRound 当前回合序号（从 0 开始）
func (gs *GameSession) CurrentRound() int { return gs.roundIdx }

// Started 对局是否已开始
func (gs *GameSession) Started() bool { return gs.started }

// Finished 对局是否已结束
func (gs *GameSession) Finished() bool { return gs.finished }

// Empty 对局是否已无玩家
func (gs *GameSession) Empty() bool { return len(gs.players) == 0 }

// resetRounds 为每个在场玩家重建空的回合进度
func (gs *GameSession) resetRounds() {
	gs.rounds = make(map[string]*RoundState, len(gs.players))
	for _, p := range gs.players {
		gs.rounds[p.ConnID] = NewRoundState()
	}
	gs.roundOver = false
}

// allLost 所有在场玩家都已达到错误上限
func (gs *GameSession) allLost() bool {
	for _, p := range gs.players {
		rs, ok := gs.rounds[p.ConnID]
		if !ok || !rs.IsLost() {
			return false
		}
	}
	return len(gs.players) > 0
}

func (gs *GameSession) hasLeader() bool {
	for _, p := range gs.players {
		if p.IsLeader {
			return true
		}
	}
	return false
}

func (gs *GameSession) playerByConn(connID string) *Player {
	for _, p := range gs.players {
		if p.ConnID == connID {
			return p
		}
	}
	return nil
}
