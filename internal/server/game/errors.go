package game

import (
	"github.com/palemoky/hangman-online/internal/protocol"
)

// GameError 游戏错误（对局和注册表共享）
type GameError struct {
	Code    int
	Message string
}

func (e *GameError) Error() string {
	return e.Message
}

// 预定义错误
var (
	ErrNotInSession    = &GameError{Code: protocol.ErrCodeNotInSession, Message: "您不在任何对局中"}
	ErrSessionNotFound = &GameError{Code: protocol.ErrCodeSessionNotFound, Message: "对局不存在"}
	ErrDuplicateJoin   = &GameError{Code: protocol.ErrCodeDuplicateJoin, Message: "您已在对局中"}
	ErrNotLeader       = &GameError{Code: protocol.ErrCodeNotLeader, Message: "只有房主才能开始游戏"}
	ErrAlreadyStarted  = &GameError{Code: protocol.ErrCodeAlreadyStarted, Message: "游戏已开始"}
	ErrGameNotStart    = &GameError{Code: protocol.ErrCodeGameNotStart, Message: "游戏尚未开始"}
	ErrAlreadyGuessed  = &GameError{Code: protocol.ErrCodeAlreadyGuessed, Message: "该字母已经猜过了"}
	ErrAlreadyOut      = &GameError{Code: protocol.ErrCodeAlreadyOut, Message: "本回合您已出局"}
	ErrInvalidLetter   = &GameError{Code: protocol.ErrCodeInvalidLetter, Message: "请输入单个字母"}
	ErrNegativePoints  = &GameError{Code: protocol.ErrCodeUnknown, Message: "加分不能为负数"}
	ErrNoLeader        = &GameError{Code: protocol.ErrCodeSessionBroken, Message: "对局缺少房主"}
)
