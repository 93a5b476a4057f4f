package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/hangman-online/internal/config"
	"github.com/palemoky/hangman-online/internal/protocol"
	"github.com/palemoky/hangman-online/internal/server/game"
	"github.com/palemoky/hangman-online/internal/server/handlers"
	"github.com/palemoky/hangman-online/internal/server/storage"
)

// newTestServer assembles a server in pure in-memory mode, skipping
// the Postgres and Redis dials that NewServer performs.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	s := &Server{
		config:  config.Default(),
		clients: make(map[string]*Client),
		words:   storage.NewMemoryWordSource(),
	}
	s.registry = game.NewSessionRegistry(s)
	s.handler = handlers.NewHandler(s)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)

	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func dialWS(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) *protocol.Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	msg, err := protocol.Decode(data)
	require.NoError(t, err)
	return msg
}

func writeMessage(t *testing.T, conn *websocket.Conn, msg *protocol.Message) {
	t.Helper()
	data, err := msg.Encode()
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, data))
}

func TestServer_Health(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "OK", string(body))
}

func TestServer_ConnectHandshake(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	conn := dialWS(t, ts)

	// The first message on every connection carries its assigned ID
	msg := readMessage(t, conn)
	require.Equal(t, protocol.MsgConnected, msg.Type)
	payload, err := protocol.ParsePayload[protocol.ConnectedPayload](msg)
	require.NoError(t, err)
	assert.NotEmpty(t, payload.ConnID)
}

func TestServer_PingPong(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	conn := dialWS(t, ts)
	readMessage(t, conn) // connected

	writeMessage(t, conn, protocol.MustNewMessage(protocol.MsgPing, protocol.PingPayload{Timestamp: 999}))

	msg := readMessage(t, conn)
	require.Equal(t, protocol.MsgPong, msg.Type)
	payload, err := protocol.ParsePayload[protocol.PongPayload](msg)
	require.NoError(t, err)
	assert.Equal(t, int64(999), payload.ClientTimestamp)
}

func TestServer_JoinLobbyOverWebSocket(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	conn1 := dialWS(t, ts)
	readMessage(t, conn1) // connected

	writeMessage(t, conn1, protocol.MustNewMessage(protocol.MsgJoinLobby, protocol.JoinLobbyPayload{Name: "Alice"}))
	msg := readMessage(t, conn1)
	require.Equal(t, protocol.MsgLobbyUpdate, msg.Type)
	payload, err := protocol.ParsePayload[protocol.LobbyUpdatePayload](msg)
	require.NoError(t, err)
	require.Len(t, payload.Players, 1)
	assert.True(t, payload.Players[0].IsLeader)

	// A second joiner lands in the same session and the roster update
	// is fanned out to the first connection too
	conn2 := dialWS(t, ts)
	readMessage(t, conn2) // connected
	writeMessage(t, conn2, protocol.MustNewMessage(protocol.MsgJoinLobby, protocol.JoinLobbyPayload{Name: "Bob"}))

	msg = readMessage(t, conn1)
	require.Equal(t, protocol.MsgLobbyUpdate, msg.Type)
	payload, err = protocol.ParsePayload[protocol.LobbyUpdatePayload](msg)
	require.NoError(t, err)
	require.Len(t, payload.Players, 2)
	assert.Equal(t, "Alice", payload.Players[0].Name)
	assert.Equal(t, "Bob", payload.Players[1].Name)
}

func TestServer_UnknownMessageType(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	conn := dialWS(t, ts)
	readMessage(t, conn) // connected

	writeMessage(t, conn, &protocol.Message{Type: "fly"})

	msg := readMessage(t, conn)
	require.Equal(t, protocol.MsgError, msg.Type)
	payload, err := protocol.ParsePayload[protocol.ErrorPayload](msg)
	require.NoError(t, err)
	assert.Equal(t, protocol.ErrCodeInvalidMsg, payload.Code)
}
