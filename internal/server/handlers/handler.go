package handlers

import (
	"errors"
	"log"

	"github.com/palemoky/hangman-online/internal/protocol"
	"github.com/palemoky/hangman-online/internal/server/game"
	"github.com/palemoky/hangman-online/internal/server/types"
)

// Handler 消息处理器
type Handler struct {
	server types.ServerContext
}

// NewHandler 创建处理器
func NewHandler(s types.ServerContext) *Handler {
	return &Handler{server: s}
}

// Handle 处理消息
// 错误只回发给发起请求的连接，从不广播
func (h *Handler) Handle(client types.ClientInterface, msg *protocol.Message) {
	switch msg.Type {
	// 连接操作
	case protocol.MsgPing:
		h.handlePing(client, msg)

	// 大厅操作
	case protocol.MsgJoinLobby:
		h.handleJoinLobby(client, msg)
	case protocol.MsgStartGame:
		h.handleStartGame(client)

	// 游戏操作
	case protocol.MsgGuessLetter:
		h.handleGuessLetter(client, msg)

	default:
		log.Printf("⚠️ 未知消息类型: '%s' (来自连接: %s)", msg.Type, client.GetID())
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
	}
}

// sendError 把注册表返回的错误回发给发起者
func (h *Handler) sendError(client types.ClientInterface, err error) {
	if err == nil {
		return
	}

	var gameErr *game.GameError
	if errors.As(err, &gameErr) {
		client.SendMessage(protocol.NewErrorMessageWithText(gameErr.Code, gameErr.Message))
		return
	}
	client.SendMessage(protocol.NewErrorMessageWithText(protocol.ErrCodeUnknown, err.Error()))
}
