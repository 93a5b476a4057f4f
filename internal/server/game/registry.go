package game

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/palemoky/hangman-online/internal/protocol"
	"github.com/palemoky/hangman-online/internal/server/types"
)

// persistTimeout 单次持久化调用的超时时间
const persistTimeout = 5 * time.Second

// SessionRegistry 对局注册表
// 把每个连接的入站事件路由到正确的 GameSession，
// 并把产生的状态扇出给该对局的所有连接
type SessionRegistry struct {
	server types.ServerContext

	mu            sync.Mutex
	sessions      map[string]*GameSession
	order         []string          // 对局创建顺序
	connToSession map[string]string // 连接 ID → 对局 ID
}

// NewSessionRegistry 创建对局注册表
func NewSessionRegistry(s types.ServerContext) *SessionRegistry {
	return &SessionRegistry{
		server:        s,
		sessions:      make(map[string]*GameSession),
		connToSession: make(map[string]string),
	}
}

// OnJoin 玩家加入大厅
// 选择创建顺序中第一个未开始的对局，不存在则新建（首位加入者为房主）
func (r *SessionRegistry) OnJoin(client types.ClientInterface, name string) error {
	connID := client.GetID()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.connToSession[connID]; ok {
		return ErrDuplicateJoin
	}

	sess := r.firstOpenSessionLocked()
	created := false
	if sess == nil {
		sess = NewSession()
		r.sessions[sess.ID] = sess
		r.order = append(r.order, sess.ID)
		created = true
		log.Printf("🏠 对局 %s 已创建", sess.ID)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	player, err := sess.AddPlayer(connID, name)
	if err != nil {
		if created {
			r.removeSessionLocked(sess.ID)
		}
		return err
	}

	r.connToSession[connID] = sess.ID
	client.SetName(name)
	log.Printf("👤 玩家 %s (%s) 加入对局 %s", name, connID, sess.ID)

	// 尽力而为地落库，失败只记日志
	go r.persistJoin(sess, player)

	r.broadcastLobbyLocked(sess)
	return nil
}

// OnStart 房主开始对局
func (r *SessionRegistry) OnStart(client types.ClientInterface) error {
	sess := r.lookupByConn(client.GetID())
	if sess == nil {
		return ErrNotInSession
	}

	sess.mu.Lock()
	if sess.Started() {
		sess.mu.Unlock()
		return ErrAlreadyStarted
	}
	if !sess.IsLeader(client.GetID()) {
		sess.mu.Unlock()
		return ErrNotLeader
	}
	sess.mu.Unlock()

	// 取词会阻塞，不能在持有对局锁时进行
	cfg := r.server.GetGameConfig()
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	words, err := r.server.GetWordSource().FetchRandomWords(ctx, cfg.RoundsPerGame(), "")
	if err != nil || len(words) == 0 {
		log.Printf("❌ 获取单词失败: %v", err)
		return &GameError{Code: protocol.ErrCodeUnknown, Message: "获取单词失败，请稍后再试"}
	}
	if len(words) < cfg.RoundsPerGame() {
		log.Printf("⚠️ 词库不足，本局只有 %d 个回合", len(words))
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := sess.StartGame(words); err != nil {
		return err
	}

	log.Printf("🎮 对局 %s 开始，共 %d 回合", sess.ID, len(words))
	r.broadcastLocked(sess, protocol.MustNewMessage(protocol.MsgGameStarting, protocol.GameStartingPayload{
		Countdown: int(cfg.CountdownDuration().Seconds()),
	}))

	// 倒计时结束后下发第一回合
	r.scheduleTransition(sess.ID, cfg.CountdownDuration(), func(sess *GameSession) {
		if !sess.Started() || sess.Finished() {
			return
		}
		r.sendRoundStatesLocked(sess)
	})
	return nil
}

// OnGuess 玩家猜字母
func (r *SessionRegistry) OnGuess(client types.ClientInterface, letter string) error {
	normalized, err := NormalizeLetter(letter)
	if err != nil {
		return err
	}

	sess := r.lookupByConn(client.GetID())
	if sess == nil {
		return ErrNotInSession
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	result, err := sess.GuessLetter(client.GetID(), normalized)
	if err != nil {
		return err
	}

	// 每次成功的猜测都向全组重发各自的回合状态
	r.sendRoundStatesLocked(sess)

	if result == nil {
		return nil
	}

	r.broadcastLocked(sess, protocol.MustNewMessage(protocol.MsgRoundEnd, protocol.RoundEndPayload{
		Won:        result.Won,
		Lost:       result.Lost,
		WinnerName: result.WinnerName,
		FullWord:   result.FullWord,
	}))

	if result.Won {
		log.Printf("🏆 玩家 %s 猜出 %q（对局 %s 第 %d 回合）",
			result.WinnerName, result.FullWord, sess.ID, sess.CurrentRound()+1)
		// 在锁内拷贝，避免持久化协程读到变化中的字段
		if winner := sess.playerByConn(result.WinnerConn); winner != nil {
			snapshot := *winner
			go r.persistRoundWin(snapshot)
		}
	} else {
		log.Printf("💀 对局 %s 第 %d 回合全员出局，单词是 %q",
			sess.ID, sess.CurrentRound()+1, result.FullWord)
	}

	r.advanceAfterInterval(sess.ID)
	return nil
}

// advanceAfterInterval 回合间隔之后进入下一回合或结束对局
func (r *SessionRegistry) advanceAfterInterval(sessID string) {
	interval := r.server.GetGameConfig().RoundIntervalDuration()
	r.scheduleTransition(sessID, interval, func(sess *GameSession) {
		if !sess.Started() || sess.Finished() {
			return
		}
		if sess.NextRound() {
			r.sendRoundStatesLocked(sess)
		} else {
			r.finishGameLocked(sess)
		}
	})
}

// OnDisconnect 连接断开
// 移除玩家；对局为空时销毁，未开始时重新广播大厅名单
func (r *SessionRegistry) OnDisconnect(client types.ClientInterface) {
	connID := client.GetID()

	r.mu.Lock()
	defer r.mu.Unlock()

	sessID, ok := r.connToSession[connID]
	if !ok {
		return
	}
	delete(r.connToSession, connID)

	sess, ok := r.sessions[sessID]
	if !ok {
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	remaining, promoted := sess.RemovePlayer(connID)
	log.Printf("👋 玩家 %s 离开对局 %s，剩余 %d 人", connID, sessID, len(remaining))

	if promoted != nil {
		log.Printf("👑 玩家 %s 接任对局 %s 的房主", promoted.Name, sessID)
		snapshot := *promoted
		go r.persistPromotion(snapshot)
	}

	if len(remaining) == 0 {
		r.removeSessionLocked(sessID)
		log.Printf("🏠 对局 %s 已解散", sessID)
		return
	}

	// 房主不变量被破坏时只拆除这一个对局，不影响其他对局
	if err := sess.CheckLeaderInvariant(); err != nil {
		log.Printf("🚨 对局 %s 状态异常: %v，强制关闭", sessID, err)
		r.broadcastLocked(sess, protocol.NewErrorMessage(protocol.ErrCodeSessionBroken))
		r.teardownSessionLocked(sess)
		return
	}

	if !sess.Started() {
		r.broadcastLobbyLocked(sess)
		return
	}

	// 未出局的玩家离开后，剩余玩家可能已全部出局
	if result := sess.ConcludeRoundIfAllLost(); result != nil {
		r.broadcastLocked(sess, protocol.MustNewMessage(protocol.MsgRoundEnd, protocol.RoundEndPayload{
			Lost:     true,
			FullWord: result.FullWord,
		}))
		r.advanceAfterInterval(sessID)
	}
}

// ActiveSessionCount 当前对局数量（用于优雅关闭）
func (r *SessionRegistry) ActiveSessionCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// --- 对局结束 ---

// finishGameLocked 结束对局、广播最终得分并安排延迟销毁
// 调用方必须持有 sess.mu
func (r *SessionRegistry) finishGameLocked(sess *GameSession) {
	finalScores := sess.FinishGame()

	r.broadcastLocked(sess, protocol.MustNewMessage(protocol.MsgGameOver, protocol.GameOverPayload{
		FinalScores: finalScores,
	}))
	log.Printf("🎉 对局 %s 结束", sess.ID)

	players := make([]Player, len(sess.players))
	for i, p := range sess.players {
		players[i] = *p
	}
	gameID := sess.DBGameID
	go r.persistGameOver(gameID, players, finalScores)

	// 保留一段时间供客户端读取终局画面，然后销毁
	cleanupDelay := r.server.GetGameConfig().CleanupDelayDuration()
	time.AfterFunc(cleanupDelay, func() {
		r.mu.Lock()
		defer r.mu.Unlock()

		sess, ok := r.sessions[sess.ID]
		if !ok {
			return // 已被提前销毁
		}
		sess.mu.Lock()
		defer sess.mu.Unlock()
		r.teardownSessionLocked(sess)
		log.Printf("🧹 对局 %s 已清理", sess.ID)
	})
}

// --- 广播 ---

// broadcastLocked 向对局中所有连接发送同一条消息
// 调用方必须持有 sess.mu
func (r *SessionRegistry) broadcastLocked(sess *GameSession, msg *protocol.Message) {
	for _, p := range sess.players {
		if client := r.server.GetClientByID(p.ConnID); client != nil {
			client.SendMessage(msg)
		}
	}
}

// broadcastLobbyLocked 广播大厅名单
// 调用方必须持有 sess.mu
func (r *SessionRegistry) broadcastLobbyLocked(sess *GameSession) {
	r.broadcastLocked(sess, protocol.MustNewMessage(protocol.MsgLobbyUpdate, protocol.LobbyUpdatePayload{
		Players:   sess.PlayersInfo(),
		SessionID: sess.ID,
	}))
}

// sendRoundStatesLocked 向每个玩家发送其专属的回合状态
// 调用方必须持有 sess.mu
func (r *SessionRegistry) sendRoundStatesLocked(sess *GameSession) {
	for _, p := range sess.players {
		state := sess.RoundStateFor(p.ConnID)
		if state == nil {
			continue
		}
		if client := r.server.GetClientByID(p.ConnID); client != nil {
			client.SendMessage(protocol.MustNewMessage(protocol.MsgRoundState, state))
		}
	}
}

// --- 定时流转 ---

// scheduleTransition 安排一次对局状态流转
// 触发时对局若已销毁则静默放弃，不会操作过期状态
func (r *SessionRegistry) scheduleTransition(sessID string, delay time.Duration, fn func(sess *GameSession)) {
	time.AfterFunc(delay, func() {
		sess := r.lookupSession(sessID)
		if sess == nil {
			return
		}
		sess.mu.Lock()
		defer sess.mu.Unlock()
		fn(sess)
	})
}

// --- 查询 ---

func (r *SessionRegistry) lookupSession(sessID string) *GameSession {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sessions[sessID]
}

func (r *SessionRegistry) lookupByConn(connID string) *GameSession {
	r.mu.Lock()
	defer r.mu.Unlock()

	sessID, ok := r.connToSession[connID]
	if !ok {
		return nil
	}
	return r.sessions[sessID]
}

// firstOpenSessionLocked 返回创建顺序中第一个未开始的对局
// 调用方必须持有 r.mu
func (r *SessionRegistry) firstOpenSessionLocked() *GameSession {
	for _, id := range r.order {
		sess, ok := r.sessions[id]
		if !ok {
			continue
		}
		sess.mu.Lock()
		open := !sess.Started() && !sess.Finished()
		sess.mu.Unlock()
		if open {
			return sess
		}
	}
	return nil
}

// removeSessionLocked 从注册表移除对局
// 调用方必须持有 r.mu
func (r *SessionRegistry) removeSessionLocked(sessID string) {
	delete(r.sessions, sessID)
	for i, id := range r.order {
		if id == sessID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// teardownSessionLocked 移除对局并清理其全部连接映射
// 调用方必须持有 r.mu 和 sess.mu
func (r *SessionRegistry) teardownSessionLocked(sess *GameSession) {
	for _, p := range sess.players {
		delete(r.connToSession, p.ConnID)
	}
	r.removeSessionLocked(sess.ID)
}

// --- 持久化（全部尽力而为，失败只影响日志不影响游戏） ---

func (r *SessionRegistry) persistJoin(sess *GameSession, player *Player) {
	store := r.server.GetStore()
	if store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	sess.mu.Lock()
	gameID := sess.DBGameID
	sess.mu.Unlock()

	if gameID == 0 {
		id, err := store.CreateGameRecord(ctx)
		if err != nil {
			log.Printf("⚠️ 创建对局记录失败: %v", err)
			return
		}
		sess.mu.Lock()
		// 并发加入时可能已有人先建好了记录
		if sess.DBGameID == 0 {
			sess.DBGameID = id
		}
		gameID = sess.DBGameID
		sess.mu.Unlock()
	}

	playerID, err := store.RecordPlayer(ctx, gameID, player.ConnID, player.Name, player.IsLeader)
	if err != nil {
		log.Printf("⚠️ 记录玩家 %s 失败: %v", player.Name, err)
		return
	}

	sess.mu.Lock()
	player.ID = playerID
	sess.mu.Unlock()
}

func (r *SessionRegistry) persistPromotion(player Player) {
	store := r.server.GetStore()
	if store == nil || player.ID == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	if err := store.PromoteLeader(ctx, player.ID); err != nil {
		log.Printf("⚠️ 更新房主记录失败: %v", err)
	}
}

func (r *SessionRegistry) persistRoundWin(winner Player) {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	if store := r.server.GetStore(); store != nil && winner.ID != 0 {
		if err := store.UpdatePlayerScore(ctx, winner.ID, winner.Score); err != nil {
			log.Printf("⚠️ 更新玩家 %s 得分失败: %v", winner.Name, err)
		}
	}
	if board := r.server.GetLeaderboard(); board != nil {
		if err := board.RecordRoundWin(ctx, winner.Name); err != nil {
			log.Printf("⚠️ 更新排行榜失败: %v", err)
		}
	}
}

func (r *SessionRegistry) persistGameOver(gameID uint, players []Player, finalScores []protocol.FinalScore) {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	if store := r.server.GetStore(); store != nil {
		if gameID != 0 {
			if err := store.FinalizeGame(ctx, gameID, time.Now(), finalScores); err != nil {
				log.Printf("⚠️ 落库对局结果失败: %v", err)
			}
		}
		for _, p := range players {
			if p.ID == 0 {
				continue
			}
			if err := store.UpdatePlayerScore(ctx, p.ID, p.Score); err != nil {
				log.Printf("⚠️ 更新玩家 %s 得分失败: %v", p.Name, err)
			}
		}
	}

	if board := r.server.GetLeaderboard(); board != nil {
		for _, p := range players {
			if err := board.RecordGamePlayed(ctx, p.Name); err != nil {
				log.Printf("⚠️ 更新排行榜失败: %v", err)
			}
		}
	}
}
