package domain

import "github.com/pkg/errors"

type Game struct {
	Board         *Board
	Players       [2]Player
	CurrentPlayer Player
	Status        GameStatus
	Winner        PlayerID
	MoveCount     int
	LastMove      *Position
}

// NewGame starts a match on an empty height x width board with player1 to move.
func NewGame(player1, player2 Player, height, width int) (*Game, error) {
	if player1.ID != Player1 || player2.ID != Player2 {
		return nil, errors.Wrapf(ErrInvalidConfig, "players must be %d and %d, got %d and %d", Player1, Player2, player1.ID, player2.ID)
	}

	board, err := NewBoard(height, width)
	if err != nil {
		return nil, err
	}

	return &Game{
		Board:         board,
		Players:       [2]Player{player1, player2},
		CurrentPlayer: player1,
		Status:        StatusInProgress,
		Winner:        Empty,
	}, nil
}

// NewStandardGame is NewGame on the classic 6x7 board.
func NewStandardGame(player1, player2 Player) (*Game, error) {
	return NewGame(player1, player2, DefaultRows, DefaultColumns)
}

func (g *Game) Outcome() Outcome {
	return Outcome{Status: g.Status, Winner: g.Winner}
}

func (g *Game) IsFinished() bool {
	return g.Outcome().IsTerminal()
}

// RequestMove runs one step of the turn loop for the active player.
//
// A finished game ignores the request and reports its final outcome with a nil
// error, so late or duplicated input from a UI is harmless. A move into a full
// or out-of-range column returns an error matching ErrInvalidMove and leaves
// the game untouched.
func (g *Game) RequestMove(column int) (MoveResult, error) {
	rejected := MoveResult{Row: -1, Column: -1, Outcome: g.Outcome()}
	if g.IsFinished() {
		return rejected, nil
	}
	rejected.NextTurn = g.CurrentPlayer.ID

	player := g.CurrentPlayer
	row, col, err := g.Board.ApplyMove(column, player.ID)
	if err != nil {
		return rejected, err
	}

	g.MoveCount++
	g.LastMove = &Position{Row: row, Column: col}

	result := MoveResult{Accepted: true, Row: row, Column: col, Player: player.ID}

	if CheckWin(g.Board, player.ID) {
		g.Status = StatusWon
		g.Winner = player.ID
		result.Outcome = g.Outcome()
		return result, nil
	}

	if g.Board.IsFull() {
		g.Status = StatusTie
		result.Outcome = g.Outcome()
		return result, nil
	}

	g.switchPlayer()
	result.Outcome = g.Outcome()
	result.NextTurn = g.CurrentPlayer.ID
	return result, nil
}

func (g *Game) switchPlayer() {
	if g.CurrentPlayer.ID == Player1 {
		g.CurrentPlayer = g.Players[1]
	} else {
		g.CurrentPlayer = g.Players[0]
	}
}

// Player returns the player record for id.
func (g *Game) Player(id PlayerID) (Player, bool) {
	for _, p := range g.Players {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}

// Snapshot returns a copy of the grid that callers may keep or modify.
func (g *Game) Snapshot() [][]PlayerID {
	return g.Board.Snapshot()
}

// WinningLine returns the four cells of the winner's line once the game is won.
func (g *Game) WinningLine() []Position {
	if g.Status != StatusWon {
		return nil
	}
	line, _ := WinningLine(g.Board, g.Winner)
	return line
}
