package protocol

import "encoding/json"

// Message 基础消息结构
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MessageType 消息类型
type MessageType string

// 客户端 → 服务端 消息类型
const (
	// 连接操作
	MsgPing MessageType = "ping" // 心跳 ping

	// 大厅操作
	MsgJoinLobby MessageType = "join_lobby" // 加入大厅
	MsgStartGame MessageType = "start_game" // 房主开始游戏

	// 游戏操作
	MsgGuessLetter MessageType = "guess_letter" // 猜字母
)

// 服务端 → 客户端 消息类型
const (
	// 连接相关
	MsgConnected MessageType = "connected" // 连接成功
	MsgPong      MessageType = "pong"      // 心跳 pong

	// 大厅相关
	MsgLobbyUpdate MessageType = "lobby_update" // 大厅玩家列表更新

	// 游戏流程
	MsgGameStarting MessageType = "game_starting" // 游戏即将开始（倒计时）
	MsgRoundState   MessageType = "round_state"   // 回合状态（按接收者定制）
	MsgRoundEnd     MessageType = "round_end"     // 回合结束
	MsgGameOver     MessageType = "game_over"     // 游戏结束

	// 错误
	MsgError MessageType = "error" // 错误消息
)

// Encode 将消息编码为 JSON 字节
func (m *Message) Encode() ([]byte, error) {
	return json.Marshal(m)
}

// Decode 从 JSON 字节解码消息
func Decode(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
