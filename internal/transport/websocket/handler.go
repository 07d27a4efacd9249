package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/iamasit07/connect4-engine/internal/config"
	"github.com/iamasit07/connect4-engine/internal/domain"
	"github.com/iamasit07/connect4-engine/internal/service/game"
	"github.com/pkg/errors"
)

const (
	pongWait     = 60 * time.Second
	pingInterval = 30 * time.Second
)

// Handler serves hot-seat games: one socket creates a game and sends the
// moves of both players.
type Handler struct {
	ConnManager    *ConnectionManager
	SessionManager *game.SessionManager
	Config         *config.Config
	Upgrader       websocket.Upgrader
}

func NewHandler(cm *ConnectionManager, sm *game.SessionManager, cfg *config.Config) *Handler {
	return &Handler{
		ConnManager:    cm,
		SessionManager: sm,
		Config:         cfg,
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || cfg.IsOriginAllowed(origin)
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// HandleWebSocket is the HTTP handler that upgrades the connection
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[WS] Upgrade error: %v", err)
		return
	}

	h.handleConnection(conn)
}

// handleConnection manages the lifecycle of a single WebSocket connection
func (h *Handler) handleConnection(conn *websocket.Conn) {
	c := newClient(conn)
	done := make(chan struct{})

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// Keep-alive pinger; WriteControl may run alongside writeJSON
	go func() {
		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
					return
				}
			}
		}
	}()

	var gameID string

	defer func() {
		close(done)
		if gameID != "" {
			h.leaveGame(gameID, c)
		}
		conn.Close()
		log.Printf("[WS] Connection closed")
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[WS] Client disconnected unexpectedly: %v", err)
			}
			return
		}

		var msg domain.ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("[WS] Invalid message format: %v", err)
			c.writeJSON(domain.ErrorMessage{Type: "error", Message: "Invalid message format"})
			continue
		}

		gameID = h.processMessage(c, gameID, msg)
	}
}

// processMessage routes one client message and returns the game the socket is
// playing afterwards.
func (h *Handler) processMessage(c *client, gameID string, msg domain.ClientMessage) string {
	switch msg.Type {
	case "create_game":
		if gameID != "" {
			h.leaveGame(gameID, c)
		}
		session, err := h.createGame(msg)
		if err != nil {
			c.writeJSON(domain.ErrorMessage{Type: "error", Message: err.Error()})
			return ""
		}
		h.ConnManager.AddConnection(session.GameID, c)

		snap := session.Snapshot()
		c.writeJSON(domain.ServerMessage{
			Type:        "game_start",
			GameID:      snap.GameID,
			Players:     snap.Players,
			CurrentTurn: snap.CurrentTurn,
			Board:       snap.Board,
			Status:      snap.Status,
		})
		return session.GameID

	case "make_move":
		session, ok := h.session(c, gameID)
		if !ok {
			return gameID
		}

		if msg.Column == nil {
			c.writeJSON(domain.ServerMessage{
				Type:    "move_rejected",
				GameID:  gameID,
				Message: "column is required",
				Column:  -1,
				Row:     -1,
			})
			return gameID
		}
		column := *msg.Column

		result, err := session.HandleMove(column, h.ConnManager)
		if err != nil {
			reason := err.Error()
			if errors.Is(err, domain.ErrInvalidMove) {
				reason = "Invalid move"
			}
			c.writeJSON(domain.ServerMessage{
				Type:     "move_rejected",
				GameID:   gameID,
				Message:  reason,
				Column:   column,
				Row:      -1,
				NextTurn: int(result.NextTurn),
				Status:   result.Outcome.Status,
			})
			return gameID
		}
		if !result.Accepted {
			c.writeJSON(domain.ServerMessage{
				Type:    "move_rejected",
				GameID:  gameID,
				Message: "Game is over",
				Column:  column,
				Row:     -1,
				Status:  result.Outcome.Status,
				Winner:  int(result.Outcome.Winner),
			})
		}
		return gameID

	case "get_board":
		session, ok := h.session(c, gameID)
		if !ok {
			return gameID
		}
		snap := session.Snapshot()
		c.writeJSON(domain.ServerMessage{
			Type:        "board",
			GameID:      snap.GameID,
			Players:     snap.Players,
			CurrentTurn: snap.CurrentTurn,
			Board:       snap.Board,
			Status:      snap.Status,
			Winner:      snap.Winner,
			WinningLine: snap.WinningLine,
		})
		return gameID

	default:
		c.writeJSON(domain.ErrorMessage{Type: "error", Message: "Unknown message type"})
		return gameID
	}
}

func (h *Handler) createGame(msg domain.ClientMessage) (*game.GameSession, error) {
	height, width := msg.Height, msg.Width
	if height == 0 {
		height = h.Config.BoardHeight
	}
	if width == 0 {
		width = h.Config.BoardWidth
	}
	color1, color2 := msg.Player1Color, msg.Player2Color
	if color1 == "" {
		color1 = h.Config.Player1Color
	}
	if color2 == "" {
		color2 = h.Config.Player2Color
	}

	return h.SessionManager.CreateSession(
		domain.NewPlayer(domain.Player1, color1),
		domain.NewPlayer(domain.Player2, color2),
		height, width,
	)
}

func (h *Handler) session(c *client, gameID string) (*game.GameSession, bool) {
	session, exists := h.SessionManager.GetSession(gameID)
	if gameID == "" || !exists {
		c.writeJSON(domain.ErrorMessage{Type: "error", Message: "Game not found"})
		return nil, false
	}
	return session, true
}

// leaveGame detaches the socket from its game and discards the game, since
// nobody else can play it.
func (h *Handler) leaveGame(gameID string, c *client) {
	if h.ConnManager.RemoveConnectionIfMatching(gameID, c) {
		if err := h.SessionManager.RemoveSession(gameID); err != nil {
			log.Printf("[WS] %v", err)
		}
	}
}
