package domain

type PlayerID int

const (
	Empty   PlayerID = 0
	Player1 PlayerID = 1
	Player2 PlayerID = 2
)

// Player is the identity of one side plus the color a UI paints its discs with.
type Player struct {
	ID    PlayerID `json:"id"`
	Color string   `json:"color"`
}

func NewPlayer(id PlayerID, color string) Player {
	return Player{ID: id, Color: color}
}

const (
	DefaultRows    = 6
	DefaultColumns = 7
	ToWin          = 4
	// smallest dimension on which a line of four can ever be formed
	MinDimension = ToWin
)

// to represent the game status
type GameStatus string

const (
	StatusInProgress GameStatus = "in_progress"
	StatusWon        GameStatus = "won"
	StatusTie        GameStatus = "tie"
)

// Outcome is what the turn loop reports after every move request.
// Winner is Empty unless Status is StatusWon.
type Outcome struct {
	Status GameStatus `json:"status"`
	Winner PlayerID   `json:"winner,omitempty"`
}

func (o Outcome) IsTerminal() bool {
	return o.Status == StatusWon || o.Status == StatusTie
}

// MoveResult is returned by Game.RequestMove. Row and Column are -1 when the
// move was not accepted.
type MoveResult struct {
	Accepted bool     `json:"accepted"`
	Row      int      `json:"row"`
	Column   int      `json:"column"`
	Player   PlayerID `json:"player,omitempty"`
	Outcome  Outcome  `json:"outcome"`
	NextTurn PlayerID `json:"nextTurn,omitempty"`
}

type Position struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidMove   Error = "invalid move"
	ErrInvalidConfig Error = "invalid config"
	ErrInvalidBoard  Error = "invalid board"
)
