package protocol

// --- 客户端请求 Payloads ---

// PingPayload 心跳请求
type PingPayload struct {
	Timestamp int64 `json:"timestamp"` // 客户端时间戳（毫秒）
}

// JoinLobbyPayload 加入大厅请求
type JoinLobbyPayload struct {
	Name string `json:"name"` // 玩家昵称
}

// GuessLetterPayload 猜字母请求
type GuessLetterPayload struct {
	Letter string `json:"letter"` // 单个字母
}

// --- 服务端响应 Payloads ---

// ConnectedPayload 连接成功响应
type ConnectedPayload struct {
	ConnID string `json:"conn_id"` // 本次连接的临时 ID
}

// PongPayload 心跳响应
type PongPayload struct {
	ClientTimestamp int64 `json:"client_timestamp"` // 客户端发送的时间戳
	ServerTimestamp int64 `json:"server_timestamp"` // 服务器时间戳（毫秒）
}

// LobbyUpdatePayload 大厅玩家列表更新
type LobbyUpdatePayload struct {
	Players   []PlayerInfo `json:"players"`    // 当前全部玩家
	SessionID string       `json:"session_id"` // 对局 ID
}

// GameStartingPayload 游戏即将开始通知
type GameStartingPayload struct {
	Countdown int `json:"countdown"` // 倒计时（秒）
}

// RoundStatePayload 回合状态（每个接收者看到自己的猜测进度）
type RoundStatePayload struct {
	Round          int      `json:"round"`           // 当前回合（从 1 开始）
	TotalRounds    int      `json:"total_rounds"`    // 总回合数
	Hint           string   `json:"hint"`            // 提示
	Category       string   `json:"category"`        // 分类
	DisplayWord    string   `json:"display_word"`    // 遮罩后的单词
	WrongLetters   []string `json:"wrong_letters"`   // 猜错的字母
	CorrectLetters []string `json:"correct_letters"` // 猜对的字母
	GuessedLetters []string `json:"guessed_letters"` // 已猜过的全部字母
	Finished       bool     `json:"finished"`        // 本回合对该玩家是否已结束
}

// RoundEndPayload 回合结束通知
type RoundEndPayload struct {
	Won        bool   `json:"won"`         // 是否有玩家猜出了单词
	Lost       bool   `json:"lost"`        // 是否全员出局
	WinnerName string `json:"winner_name"` // 获胜者昵称（无人获胜时为空）
	FullWord   string `json:"full_word"`   // 完整单词
}

// GameOverPayload 游戏结束通知
type GameOverPayload struct {
	FinalScores []FinalScore `json:"final_scores"` // 按分数降序排列
}

// ErrorPayload 错误响应
type ErrorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// --- 通用数据结构 ---

// PlayerInfo 玩家信息
type PlayerInfo struct {
	ID       string `json:"id"`        // 玩家 ID（持久化后的行 ID，未持久化时为空）
	ConnID   string `json:"conn_id"`   // 连接 ID
	Name     string `json:"name"`      // 昵称
	Score    int    `json:"score"`     // 累计得分
	IsLeader bool   `json:"is_leader"` // 是否是房主
}

// FinalScore 最终得分条目
type FinalScore struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}
