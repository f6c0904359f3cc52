package websocket

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	ws "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
	"github.com/rocketscienceinc/tictactoe-history/internal/repository"
	"github.com/rocketscienceinc/tictactoe-history/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-history/testing/suite"
)

func dial(t *testing.T) *ws.Conn {
	t.Helper()

	logger := suite.Logger()
	game := usecase.NewGameUseCase(logger, repository.NewMemorySessionRepository(time.Hour))
	server := httptest.NewServer(New(logger, game, nil))
	t.Cleanup(server.Close)

	conn, _, err := ws.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return conn
}

func roundTrip(t *testing.T, conn *ws.Conn, raw string) (string, Payload) {
	t.Helper()

	require.NoError(t, conn.WriteMessage(ws.TextMessage, []byte(raw)))

	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))

	var payload Payload
	require.NoError(t, json.Unmarshal(msg.Payload, &payload))

	return msg.Action, payload
}

func TestServer_Connect(t *testing.T) {
	// Given: a connected client
	conn := dial(t)

	// When: sending connect without a session
	action, payload := roundTrip(t, conn, `{"action":"connect"}`)

	// Then: a new session with an empty board should be returned
	assert.Equal(t, actionConnect, action)
	assert.NotEmpty(t, payload.Session)
	require.NotNil(t, payload.State)
	assert.Equal(t, "Next player: X", payload.State.Status)
}

func TestServer_Game(t *testing.T) {
	t.Run("Turns, jump and reset share the session", func(t *testing.T) {
		// Given: a connected client
		conn := dial(t)
		_, connected := roundTrip(t, conn, `{"action":"connect"}`)

		// When: playing two moves
		roundTrip(t, conn, `{"action":"game:turn","payload":{"cell":0}}`)
		action, payload := roundTrip(t, conn, `{"action":"game:turn","payload":{"cell":4}}`)

		// Then: both should land in the same session
		assert.Equal(t, actionGameTurn, action)
		assert.Equal(t, connected.Session, payload.Session)
		assert.Equal(t, 2, payload.State.MoveCount)
		assert.Equal(t, entity.MarkO, payload.State.Cells[4].Mark)

		// When: jumping back to move 1
		_, payload = roundTrip(t, conn, `{"action":"game:jump","payload":{"move":1}}`)

		// Then: the board should show only X's first move
		assert.Equal(t, 1, payload.State.CurrentMove)
		assert.Equal(t, entity.MarkEmpty, payload.State.Cells[4].Mark)
		assert.Equal(t, "Next player: O", payload.State.Status)

		// When: resetting
		_, payload = roundTrip(t, conn, `{"action":"game:reset"}`)

		// Then: the game should start over
		assert.Equal(t, 0, payload.State.MoveCount)
	})

	t.Run("Turn without connect creates a session", func(t *testing.T) {
		conn := dial(t)

		_, payload := roundTrip(t, conn, `{"action":"game:turn","payload":{"cell":8}}`)

		assert.NotEmpty(t, payload.Session)
		assert.Equal(t, entity.MarkX, payload.State.Cells[8].Mark)
	})

	t.Run("Missing cell is reported", func(t *testing.T) {
		conn := dial(t)

		_, payload := roundTrip(t, conn, `{"action":"game:turn","payload":{}}`)

		assert.Equal(t, "Cell is required", payload.Error)
		assert.Nil(t, payload.State)
	})

	t.Run("Unknown action is reported", func(t *testing.T) {
		conn := dial(t)

		action, payload := roundTrip(t, conn, `{"action":"game:undo"}`)

		assert.Equal(t, "game:undo", action)
		assert.Equal(t, "unknown action", payload.Error)
	})

	t.Run("Malformed message is reported", func(t *testing.T) {
		conn := dial(t)

		action, payload := roundTrip(t, conn, `not json`)

		assert.Equal(t, actionError, action)
		assert.Equal(t, "malformed message", payload.Error)
	})
}
