package game

import (
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/iamasit07/connect4-engine/internal/domain"
	"github.com/iamasit07/connect4-engine/pkg/uid"
	"github.com/pkg/errors"
)

const ErrGameNotFound domain.Error = "game not found"

// Notifier delivers server messages to whatever UI is rendering a game.
type Notifier interface {
	SendMessage(gameID string, message domain.ServerMessage) error
}

type GameSession struct {
	GameID        string
	Game          *domain.Game
	CreatedAt     time.Time
	FinishedAt    time.Time
	GameOverTimer *time.Timer // pending game_over announcement
	endGameDelay  time.Duration
	mu            sync.Mutex
}

// SessionManager manages active game sessions
type SessionManager struct {
	Session      map[string]*GameSession // gameID → GameSession
	endGameDelay time.Duration
	mu           sync.RWMutex
}

func NewSessionManager(endGameDelay time.Duration) *SessionManager {
	return &SessionManager{
		Session:      make(map[string]*GameSession),
		endGameDelay: endGameDelay,
	}
}

func (sm *SessionManager) CreateSession(player1, player2 domain.Player, height, width int) (*GameSession, error) {
	newGame, err := domain.NewGame(player1, player2, height, width)
	if err != nil {
		return nil, err
	}

	session := &GameSession{
		GameID:       uid.GenerateGameID(),
		Game:         newGame,
		CreatedAt:    time.Now(),
		endGameDelay: sm.endGameDelay,
	}

	sm.mu.Lock()
	sm.Session[session.GameID] = session
	sm.mu.Unlock()

	log.Printf("[SESSION] Created session %s: %dx%d board, %s vs %s",
		session.GameID, height, width, player1.Color, player2.Color)
	return session, nil
}

func (sm *SessionManager) GetSession(gameID string) (*GameSession, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	session, exists := sm.Session[gameID]
	return session, exists
}

func (sm *SessionManager) RemoveSession(gameID string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	return sm.removeSessionLocked(gameID)
}

// removeSessionLocked removes session from maps without acquiring lock (caller must hold it)
func (sm *SessionManager) removeSessionLocked(gameID string) error {
	session, exists := sm.Session[gameID]
	if !exists {
		return errors.Wrapf(ErrGameNotFound, "remove %s", gameID)
	}

	log.Printf("[SESSION] Removing session %s", gameID)

	session.stopTimer()
	delete(sm.Session, gameID)
	return nil
}

type LiveGame struct {
	GameID      string          `json:"gameId"`
	Players     []domain.Player `json:"players"`
	CurrentTurn int             `json:"currentTurn"`
	MoveCount   int             `json:"moveCount"`
	StartedAt   string          `json:"startedAt"`
}

// ActiveGames lists games that are still in progress, oldest first.
func (sm *SessionManager) ActiveGames() []LiveGame {
	sm.mu.RLock()
	sessions := make([]*GameSession, 0, len(sm.Session))
	for _, session := range sm.Session {
		sessions = append(sessions, session)
	}
	sm.mu.RUnlock()

	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.Before(sessions[j].CreatedAt)
	})

	games := make([]LiveGame, 0, len(sessions))
	for _, session := range sessions {
		session.mu.Lock()
		if !session.Game.IsFinished() {
			games = append(games, LiveGame{
				GameID:      session.GameID,
				Players:     session.Game.Players[:],
				CurrentTurn: int(session.Game.CurrentPlayer.ID),
				MoveCount:   session.Game.MoveCount,
				StartedAt:   session.CreatedAt.Format(time.RFC3339),
			})
		}
		session.mu.Unlock()
	}

	return games
}

// CleanupOldSessions drops finished games older than finishedTTL and
// abandoned in-progress games older than activeTTL.
func (sm *SessionManager) CleanupOldSessions(finishedTTL, activeTTL time.Duration) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	count := 0
	now := time.Now()

	for gameID, session := range sm.Session {
		session.mu.Lock()
		finished := session.Game.IsFinished()
		stale := (finished && now.Sub(session.FinishedAt) > finishedTTL) ||
			(!finished && now.Sub(session.CreatedAt) > activeTTL)
		session.mu.Unlock()

		if stale {
			session.stopTimer()
			delete(sm.Session, gameID)
			count++
		}
	}

	if count > 0 {
		log.Printf("[SESSION] Memory cleanup: Removed %d stale game sessions", count)
	}
	return count
}

// MoveReport is a move result together with the board as it stood right
// after that move.
type MoveReport struct {
	domain.MoveResult
	Board [][]domain.PlayerID
}

// HandleMove plays column for whoever's turn it is. When notifier is not nil
// the move is broadcast to it and, if the game ends, a game_over message
// follows after the configured delay.
func (gs *GameSession) HandleMove(column int, notifier Notifier) (MoveReport, error) {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	result, err := gs.Game.RequestMove(column)
	report := MoveReport{MoveResult: result, Board: gs.Game.Snapshot()}
	if err != nil {
		return report, errors.Wrapf(err, "game %s", gs.GameID)
	}
	if !result.Accepted {
		return report, nil
	}

	if notifier != nil {
		err := notifier.SendMessage(gs.GameID, domain.ServerMessage{
			Type:     "move_made",
			GameID:   gs.GameID,
			Column:   result.Column,
			Row:      result.Row,
			Player:   int(result.Player),
			Board:    report.Board,
			NextTurn: int(result.NextTurn),
			Status:   result.Outcome.Status,
		})
		if err != nil {
			log.Printf("[GAME] Error broadcasting move in game %s: %v", gs.GameID, err)
		}
	}

	if result.Outcome.IsTerminal() {
		gs.FinishedAt = time.Now()
		if result.Outcome.Status == domain.StatusWon {
			log.Printf("[GAME] Game %s won by player %d after %d moves", gs.GameID, result.Outcome.Winner, gs.Game.MoveCount)
		} else {
			log.Printf("[GAME] Game %s ended in a tie", gs.GameID)
		}
		if notifier != nil {
			gs.startGameOverTimer(notifier)
		}
	}

	return report, nil
}

// startGameOverTimer announces the result after endGameDelay. It only reads a
// message built up front, so the game itself is never touched by the timer.
func (gs *GameSession) startGameOverTimer(notifier Notifier) {
	msg := gs.gameOverMessage()
	gameID := gs.GameID

	gs.GameOverTimer = time.AfterFunc(gs.endGameDelay, func() {
		if err := notifier.SendMessage(gameID, msg); err != nil {
			log.Printf("[GAME] Error announcing end of game %s: %v", gameID, err)
		}
	})
}

func (gs *GameSession) gameOverMessage() domain.ServerMessage {
	msg := domain.ServerMessage{
		Type:        "game_over",
		GameID:      gs.GameID,
		Board:       gs.Game.Snapshot(),
		Status:      gs.Game.Status,
		Winner:      int(gs.Game.Winner),
		WinningLine: gs.Game.WinningLine(),
	}
	if gs.Game.Status == domain.StatusWon {
		msg.Message = fmt.Sprintf("Player %d won!", gs.Game.Winner)
	} else {
		msg.Message = "Tie!"
	}
	return msg
}

func (gs *GameSession) stopTimer() {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if gs.GameOverTimer != nil {
		gs.GameOverTimer.Stop()
		gs.GameOverTimer = nil
	}
}

type Snapshot struct {
	GameID      string              `json:"gameId"`
	Players     []domain.Player     `json:"players"`
	Board       [][]domain.PlayerID `json:"board"`
	CurrentTurn int                 `json:"currentTurn"`
	Status      domain.GameStatus   `json:"status"`
	Winner      int                 `json:"winner,omitempty"`
	WinningLine []domain.Position   `json:"winningLine,omitempty"`
	MoveCount   int                 `json:"moveCount"`
	LastMove    *domain.Position    `json:"lastMove,omitempty"`
}

// Snapshot is a consistent copy of the session for rendering.
func (gs *GameSession) Snapshot() Snapshot {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	snap := Snapshot{
		GameID:      gs.GameID,
		Players:     gs.Game.Players[:],
		Board:       gs.Game.Snapshot(),
		CurrentTurn: int(gs.Game.CurrentPlayer.ID),
		Status:      gs.Game.Status,
		Winner:      int(gs.Game.Winner),
		WinningLine: gs.Game.WinningLine(),
		MoveCount:   gs.Game.MoveCount,
	}
	if gs.Game.LastMove != nil {
		last := *gs.Game.LastMove
		snap.LastMove = &last
	}
	return snap
}
