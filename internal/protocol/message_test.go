package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessage_EncodeDecode(t *testing.T) {
	t.Parallel()

	msg := MustNewMessage(MsgGuessLetter, GuessLetterPayload{Letter: "A"})

	data, err := msg.Encode()
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, MsgGuessLetter, decoded.Type)

	payload, err := ParsePayload[GuessLetterPayload](decoded)
	require.NoError(t, err)
	assert.Equal(t, "A", payload.Letter)
}

func TestDecode_InvalidJSON(t *testing.T) {
	t.Parallel()

	_, err := Decode([]byte("{not json"))
	assert.Error(t, err)
}

func TestParsePayload_WrongShape(t *testing.T) {
	t.Parallel()

	msg := MustNewMessage(MsgJoinLobby, JoinLobbyPayload{Name: "Alice"})
	// Parsing into a struct with mismatched field types should fail
	msg.Payload = []byte(`{"name": 42}`)
	_, err := ParsePayload[JoinLobbyPayload](msg)
	assert.Error(t, err)
}

func TestNewErrorMessage_UsesKnownText(t *testing.T) {
	t.Parallel()

	msg := NewErrorMessage(ErrCodeAlreadyGuessed)
	payload, err := ParsePayload[ErrorPayload](msg)
	require.NoError(t, err)
	assert.Equal(t, ErrCodeAlreadyGuessed, payload.Code)
	assert.Equal(t, ErrorMessages[ErrCodeAlreadyGuessed], payload.Message)
}
