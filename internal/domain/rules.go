package domain

// direction is a (row, column) step. Only four are needed: the opposite
// directions are covered by starting the scan at the other end of the line.
type direction struct {
	dRow, dCol int
}

var winDirections = [...]direction{
	{0, 1},  // horizontal →
	{1, 0},  // vertical ↓
	{1, 1},  // diagonal ↘
	{1, -1}, // diagonal ↙
}

// CheckWin reports whether player owns four consecutive cells anywhere on the
// board. Every cell is tried as the origin of a line in each direction, row by
// row; the scan stops at the first line found.
func CheckWin(b *Board, player PlayerID) bool {
	_, ok := WinningLine(b, player)
	return ok
}

// WinningLine is CheckWin that also returns the first winning line found.
func WinningLine(b *Board, player PlayerID) ([]Position, bool) {
	if player == Empty {
		return nil, false
	}
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			for _, d := range winDirections {
				if lineOwnedBy(b, y, x, d, player) {
					line := make([]Position, ToWin)
					for i := range line {
						line[i] = Position{Row: y + i*d.dRow, Column: x + i*d.dCol}
					}
					return line, true
				}
			}
		}
	}
	return nil, false
}

// a candidate that leaves the grid is simply not a win
func lineOwnedBy(b *Board, row, column int, d direction, player PlayerID) bool {
	for i := 0; i < ToWin; i++ {
		r, c := row+i*d.dRow, column+i*d.dCol
		if !b.InBounds(r, c) || b.cells[r][c] != player {
			return false
		}
	}
	return true
}

// CheckWinAt only looks at the lines passing through (row, column). It gives
// the same answer as CheckWin when (row, column) is the last piece played and
// the board had no four before it.
func CheckWinAt(b *Board, row, column int, player PlayerID) bool {
	if player == Empty || !b.InBounds(row, column) {
		return false
	}

	// horizontal (through this row)
	count := 0
	for c := 0; c < b.width; c++ {
		if b.cells[row][c] == player {
			count++
			if count == ToWin {
				return true
			}
		} else {
			count = 0
		}
	}

	// vertical (through this column)
	count = 0
	for r := 0; r < b.height; r++ {
		if b.cells[r][column] == player {
			count++
			if count == ToWin {
				return true
			}
		} else {
			count = 0
		}
	}

	// diagonal \ : walk back to the top-left end, then scan down-right
	count = 0
	r, c := row, column
	for r > 0 && c > 0 {
		r--
		c--
	}
	for r < b.height && c < b.width {
		if b.cells[r][c] == player {
			count++
			if count == ToWin {
				return true
			}
		} else {
			count = 0
		}
		r++
		c++
	}

	// diagonal / : walk to the bottom-left end, then scan up-right
	count = 0
	r, c = row, column
	for r < b.height-1 && c > 0 {
		r++
		c--
	}
	for r >= 0 && c < b.width {
		if b.cells[r][c] == player {
			count++
			if count == ToWin {
				return true
			}
		} else {
			count = 0
		}
		r--
		c++
	}

	return false
}
