package domain

import "github.com/pkg/errors"

// Replay plays columns in order on a fresh height x width game and returns
// the resulting game. It fails on the first move that is rejected, including
// moves sent after the game has ended.
func Replay(height, width int, columns []int) (*Game, error) {
	g, err := NewGame(NewPlayer(Player1, ""), NewPlayer(Player2, ""), height, width)
	if err != nil {
		return nil, err
	}

	for i, col := range columns {
		res, err := g.RequestMove(col)
		if err != nil {
			return g, errors.Wrapf(err, "move %d", i)
		}
		if !res.Accepted {
			return g, errors.Wrapf(ErrInvalidMove, "move %d: game already ended with %s", i, g.Status)
		}
		// the local check must agree with the full scan on every legal game
		if CheckWinAt(g.Board, res.Row, res.Column, res.Player) != (res.Outcome.Status == StatusWon) {
			return g, errors.Wrapf(ErrInvalidBoard, "move %d: win detectors disagree at (%d,%d)", i, res.Row, res.Column)
		}
	}
	return g, nil
}

type BoardReport struct {
	Player1Pieces int  `json:"player1Pieces"`
	Player2Pieces int  `json:"player2Pieces"`
	Player1Wins   bool `json:"player1Wins"`
	Player2Wins   bool `json:"player2Wins"`
	Full          bool `json:"full"`
}

// VerifyBoard checks that a grid could have come from legal play: pieces
// obey gravity, player 1 is never behind and never more than one piece ahead,
// and at most one player has a four.
func VerifyBoard(b *Board) (BoardReport, error) {
	var report BoardReport

	for c := 0; c < b.width; c++ {
		seenPiece := false
		for r := 0; r < b.height; r++ {
			switch b.cells[r][c] {
			case Empty:
				if seenPiece {
					return report, errors.Wrapf(ErrInvalidBoard, "floating piece above (%d,%d)", r, c)
				}
			case Player1:
				seenPiece = true
				report.Player1Pieces++
			case Player2:
				seenPiece = true
				report.Player2Pieces++
			}
		}
	}

	if diff := report.Player1Pieces - report.Player2Pieces; diff < 0 || diff > 1 {
		return report, errors.Wrapf(ErrInvalidBoard, "piece counts %d/%d cannot come from alternating turns", report.Player1Pieces, report.Player2Pieces)
	}

	report.Player1Wins = CheckWin(b, Player1)
	report.Player2Wins = CheckWin(b, Player2)
	report.Full = b.IsFull()

	if report.Player1Wins && report.Player2Wins {
		return report, errors.Wrap(ErrInvalidBoard, "both players have four in a row")
	}
	return report, nil
}
