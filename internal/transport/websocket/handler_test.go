package websocket

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/iamasit07/connect4-engine/internal/config"
	"github.com/iamasit07/connect4-engine/internal/domain"
	"github.com/iamasit07/connect4-engine/internal/service/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	server *httptest.Server
	cm     *ConnectionManager
	sm     *game.SessionManager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	cfg := &config.Config{
		BoardHeight:    6,
		BoardWidth:     7,
		Player1Color:   "red",
		Player2Color:   "yellow",
		AllowedOrigins: []string{"http://localhost:5173"},
	}
	cm := NewConnectionManager()
	sm := game.NewSessionManager(20 * time.Millisecond)
	h := NewHandler(cm, sm, cfg)

	server := httptest.NewServer(http.HandlerFunc(h.HandleWebSocket))
	t.Cleanup(server.Close)
	return &testEnv{server: server, cm: cm, sm: sm}
}

func dial(t *testing.T, env *testEnv) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(env.server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, msg domain.ClientMessage) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(msg))
}

func read(t *testing.T, conn *websocket.Conn) domain.ServerMessage {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg domain.ServerMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func moveMsg(column int) domain.ClientMessage {
	return domain.ClientMessage{Type: "make_move", Column: &column}
}

func startGame(t *testing.T, conn *websocket.Conn) domain.ServerMessage {
	t.Helper()
	send(t, conn, domain.ClientMessage{Type: "create_game"})
	msg := read(t, conn)
	require.Equal(t, "game_start", msg.Type, msg.Message)
	return msg
}

func TestCreateGameOverSocket(t *testing.T) {
	env := newTestEnv(t)
	conn := dial(t, env)

	start := startGame(t, conn)
	assert.NotEmpty(t, start.GameID)
	assert.Equal(t, 1, start.CurrentTurn)
	assert.Len(t, start.Board, 6)
	assert.Equal(t, domain.StatusInProgress, start.Status)
	require.Len(t, start.Players, 2)
	assert.Equal(t, "yellow", start.Players[1].Color)

	_, ok := env.sm.GetSession(start.GameID)
	assert.True(t, ok)
	assert.Equal(t, 1, env.cm.Count())
}

func TestCreateGameRejectsSmallBoard(t *testing.T) {
	env := newTestEnv(t)
	conn := dial(t, env)

	send(t, conn, domain.ClientMessage{Type: "create_game", Height: 2, Width: 2})
	msg := read(t, conn)
	assert.Equal(t, "error", msg.Type)
	assert.Contains(t, msg.Message, "invalid config")
}

func TestPlayToWinAndDeferredGameOver(t *testing.T) {
	env := newTestEnv(t)
	conn := dial(t, env)
	start := startGame(t, conn)

	for i, col := range []int{0, 6, 0, 6, 0, 6, 0} {
		send(t, conn, moveMsg(col))
		msg := read(t, conn)
		require.Equal(t, "move_made", msg.Type, "move %d: %s", i, msg.Message)
		assert.Equal(t, start.GameID, msg.GameID)
		assert.Equal(t, col, msg.Column)
		assert.Equal(t, i%2+1, msg.Player)
	}

	over := read(t, conn)
	assert.Equal(t, "game_over", over.Type)
	assert.Equal(t, domain.StatusWon, over.Status)
	assert.Equal(t, 1, over.Winner)
	assert.Equal(t, "Player 1 won!", over.Message)

	send(t, conn, moveMsg(3))
	late := read(t, conn)
	assert.Equal(t, "move_rejected", late.Type)
	assert.Equal(t, domain.StatusWon, late.Status)
	assert.Equal(t, 1, late.Winner)
}

func TestInvalidMoveOverSocket(t *testing.T) {
	env := newTestEnv(t)
	conn := dial(t, env)

	send(t, conn, moveMsg(0))
	assert.Equal(t, "error", read(t, conn).Type, "no game yet")

	startGame(t, conn)
	send(t, conn, moveMsg(7))
	msg := read(t, conn)
	assert.Equal(t, "move_rejected", msg.Type)
	assert.Equal(t, "Invalid move", msg.Message)
	assert.Equal(t, 1, msg.NextTurn)

	send(t, conn, domain.ClientMessage{Type: "get_board"})
	board := read(t, conn)
	assert.Equal(t, "board", board.Type)
	for _, row := range board.Board {
		for _, cell := range row {
			assert.Equal(t, domain.Empty, cell)
		}
	}
}

func TestMoveWithoutColumnIsRejected(t *testing.T) {
	env := newTestEnv(t)
	conn := dial(t, env)
	start := startGame(t, conn)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"make_move"}`)))
	msg := read(t, conn)
	assert.Equal(t, "move_rejected", msg.Type)
	assert.Equal(t, "column is required", msg.Message)

	session, ok := env.sm.GetSession(start.GameID)
	require.True(t, ok)
	snap := session.Snapshot()
	assert.Equal(t, 0, snap.MoveCount)
	assert.Equal(t, domain.Empty, snap.Board[5][0])
	assert.Equal(t, 1, snap.CurrentTurn)
}

func TestNewGameReplacesOldOne(t *testing.T) {
	env := newTestEnv(t)
	conn := dial(t, env)

	first := startGame(t, conn)
	second := startGame(t, conn)
	assert.NotEqual(t, first.GameID, second.GameID)

	_, ok := env.sm.GetSession(first.GameID)
	assert.False(t, ok)
	assert.Equal(t, 1, env.cm.Count())
}

func TestDisconnectDiscardsGame(t *testing.T) {
	env := newTestEnv(t)
	conn := dial(t, env)
	start := startGame(t, conn)

	conn.Close()

	assert.Eventually(t, func() bool {
		_, ok := env.sm.GetSession(start.GameID)
		return !ok && env.cm.Count() == 0
	}, 2*time.Second, 10*time.Millisecond)
}
