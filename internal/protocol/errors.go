package protocol

// --- 错误码 ---
const (
	ErrCodeUnknown    = 1000
	ErrCodeInvalidMsg = 1001

	ErrCodeNotInSession    = 2001
	ErrCodeSessionNotFound = 2002
	ErrCodeDuplicateJoin   = 2003
	ErrCodeEmptyName       = 2004

	ErrCodeNotLeader      = 3001
	ErrCodeAlreadyStarted = 3002
	ErrCodeGameNotStart   = 3003
	ErrCodeAlreadyGuessed = 3004
	ErrCodeAlreadyOut     = 3005
	ErrCodeInvalidLetter  = 3006

	ErrCodeSessionBroken = 4001
)

// ErrorMessages 错误码对应的消息
var ErrorMessages = map[int]string{
	ErrCodeUnknown:         "未知错误",
	ErrCodeInvalidMsg:      "无效的消息格式",
	ErrCodeNotInSession:    "您不在任何对局中",
	ErrCodeSessionNotFound: "对局不存在",
	ErrCodeDuplicateJoin:   "您已在对局中",
	ErrCodeEmptyName:       "昵称不能为空",
	ErrCodeNotLeader:       "只有房主才能开始游戏",
	ErrCodeAlreadyStarted:  "游戏已开始",
	ErrCodeGameNotStart:    "游戏尚未开始",
	ErrCodeAlreadyGuessed:  "该字母已经猜过了",
	ErrCodeAlreadyOut:      "本回合您已出局",
	ErrCodeInvalidLetter:   "请输入单个字母",
	ErrCodeSessionBroken:   "对局状态异常，已被关闭",
}
