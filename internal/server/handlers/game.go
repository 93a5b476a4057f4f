package handlers

import (
	"strings"
	"time"

	"github.com/palemoky/hangman-online/internal/protocol"
	"github.com/palemoky/hangman-online/internal/server/types"
)

// handlePing 处理心跳
func (h *Handler) handlePing(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.PingPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	client.SendMessage(protocol.MustNewMessage(protocol.MsgPong, protocol.PongPayload{
		ClientTimestamp: payload.Timestamp,
		ServerTimestamp: time.Now().UnixMilli(),
	}))
}

// handleJoinLobby 处理加入大厅
func (h *Handler) handleJoinLobby(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.JoinLobbyPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	name := strings.TrimSpace(payload.Name)
	if name == "" {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeEmptyName))
		return
	}

	h.sendError(client, h.server.GetRegistry().OnJoin(client, name))
}

// handleStartGame 处理开始游戏（仅房主）
func (h *Handler) handleStartGame(client types.ClientInterface) {
	h.sendError(client, h.server.GetRegistry().OnStart(client))
}

// handleGuessLetter 处理猜字母
func (h *Handler) handleGuessLetter(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.GuessLetterPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	h.sendError(client, h.server.GetRegistry().OnGuess(client, payload.Letter))
}
