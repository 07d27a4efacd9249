package http

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4-engine/internal/config"
	"github.com/iamasit07/connect4-engine/internal/domain"
	"github.com/iamasit07/connect4-engine/internal/service/game"
	"github.com/pkg/errors"
)

type GameHandler struct {
	SessionManager *game.SessionManager
	Config         *config.Config
}

func NewGameHandler(sm *game.SessionManager, cfg *config.Config) *GameHandler {
	return &GameHandler{SessionManager: sm, Config: cfg}
}

type createGameRequest struct {
	Player1Color string `json:"player1Color"`
	Player2Color string `json:"player2Color"`
	Height       int    `json:"height"`
	Width        int    `json:"width"`
}

type moveRequest struct {
	Column *int `json:"column" binding:"required"`
}

type moveResponse struct {
	Accepted bool                `json:"accepted"`
	Row      int                 `json:"row"`
	Column   int                 `json:"column"`
	Status   domain.GameStatus   `json:"status"`
	Winner   int                 `json:"winner,omitempty"`
	NextTurn int                 `json:"nextTurn,omitempty"`
	Board    [][]domain.PlayerID `json:"board"`
}

// CreateGame starts a new game; omitted fields fall back to the server defaults
func (h *GameHandler) CreateGame(c *gin.Context) {
	var req createGameRequest
	if c.Request.Body != nil && c.Request.Body != http.NoBody {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}
	}

	if req.Height == 0 {
		req.Height = h.Config.BoardHeight
	}
	if req.Width == 0 {
		req.Width = h.Config.BoardWidth
	}
	if req.Player1Color == "" {
		req.Player1Color = h.Config.Player1Color
	}
	if req.Player2Color == "" {
		req.Player2Color = h.Config.Player2Color
	}

	session, err := h.SessionManager.CreateSession(
		domain.NewPlayer(domain.Player1, req.Player1Color),
		domain.NewPlayer(domain.Player2, req.Player2Color),
		req.Height, req.Width,
	)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, session.Snapshot())
}

// GetGame returns the board and state of one game
func (h *GameHandler) GetGame(c *gin.Context) {
	session, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, session.Snapshot())
}

// MakeMove drops a piece for the player whose turn it is
func (h *GameHandler) MakeMove(c *gin.Context) {
	session, ok := h.lookup(c)
	if !ok {
		return
	}

	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "column is required"})
		return
	}

	report, err := session.HandleMove(*req.Column, nil)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, moveResponse{
		Accepted: report.Accepted,
		Row:      report.Row,
		Column:   report.Column,
		Status:   report.Outcome.Status,
		Winner:   int(report.Outcome.Winner),
		NextTurn: int(report.NextTurn),
		Board:    report.Board,
	})
}

func (h *GameHandler) DeleteGame(c *gin.Context) {
	if err := h.SessionManager.RemoveSession(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *GameHandler) lookup(c *gin.Context) (*game.GameSession, bool) {
	session, ok := h.SessionManager.GetSession(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return nil, false
	}
	return session, true
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidMove):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidConfig):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, game.ErrGameNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
