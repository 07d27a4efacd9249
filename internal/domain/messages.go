package domain

type ClientMessage struct {
	Type         string `json:"type"`
	Player1Color string `json:"player1Color,omitempty"`
	Player2Color string `json:"player2Color,omitempty"`
	Height       int    `json:"height,omitempty"`
	Width        int    `json:"width,omitempty"`
	Column       *int   `json:"column,omitempty"`
}

type ServerMessage struct {
	Type        string       `json:"type"`
	Message     string       `json:"message,omitempty"`
	GameID      string       `json:"gameId,omitempty"`
	Players     []Player     `json:"players,omitempty"`
	CurrentTurn int          `json:"currentTurn,omitempty"`
	Column      int          `json:"column"`
	Row         int          `json:"row"`
	Player      int          `json:"player,omitempty"`
	Board       [][]PlayerID `json:"board,omitempty"`
	NextTurn    int          `json:"nextTurn,omitempty"`
	Status      GameStatus   `json:"status,omitempty"`
	Winner      int          `json:"winner,omitempty"`
	WinningLine []Position   `json:"winningLine,omitempty"`
}

type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
