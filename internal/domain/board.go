package domain

import "github.com/pkg/errors"

// Board is a Height x Width grid. Row 0 is the top row, so pieces fall towards
// higher row indexes.
type Board struct {
	height int
	width  int
	cells  [][]PlayerID
}

func NewBoard(height, width int) (*Board, error) {
	if height < MinDimension || width < MinDimension {
		return nil, errors.Wrapf(ErrInvalidConfig, "board %dx%d is smaller than %dx%d", height, width, MinDimension, MinDimension)
	}

	cells := make([][]PlayerID, height)
	for i := range cells {
		cells[i] = make([]PlayerID, width)
	}
	return &Board{height: height, width: width, cells: cells}, nil
}

func (b *Board) Height() int { return b.height }
func (b *Board) Width() int  { return b.width }

func (b *Board) InBounds(row, column int) bool {
	return row >= 0 && row < b.height && column >= 0 && column < b.width
}

// Cell returns the occupant of (row, column); out of bounds reads as Empty.
func (b *Board) Cell(row, column int) PlayerID {
	if !b.InBounds(row, column) {
		return Empty
	}
	return b.cells[row][column]
}

// FindLandingRow scans the column from the bottom row upwards and returns the
// first empty row. ok is false when the column is full or out of range.
func (b *Board) FindLandingRow(column int) (row int, ok bool) {
	if column < 0 || column >= b.width {
		return -1, false
	}
	for row := b.height - 1; row >= 0; row-- {
		if b.cells[row][column] == Empty {
			return row, true
		}
	}
	return -1, false
}

// ApplyMove drops a piece for player into column. Nothing changes on error.
func (b *Board) ApplyMove(column int, player PlayerID) (int, int, error) {
	if column < 0 || column >= b.width {
		return -1, -1, errors.Wrapf(ErrInvalidMove, "column %d out of range [0, %d)", column, b.width)
	}
	if player != Player1 && player != Player2 {
		return -1, -1, errors.Wrapf(ErrInvalidMove, "unknown player %d", player)
	}

	row, ok := b.FindLandingRow(column)
	if !ok {
		return -1, -1, errors.Wrapf(ErrInvalidMove, "column %d is full", column)
	}

	b.cells[row][column] = player
	return row, column, nil
}

// IsFull reports whether every cell is occupied.
func (b *Board) IsFull() bool {
	for _, row := range b.cells {
		for _, cell := range row {
			if cell == Empty {
				return false
			}
		}
	}
	return true
}

// ValidMoves lists the columns that still accept a piece, left to right.
func (b *Board) ValidMoves() []int {
	validMoves := []int{}
	for col := 0; col < b.width; col++ {
		if b.cells[0][col] == Empty {
			validMoves = append(validMoves, col)
		}
	}
	return validMoves
}

// Snapshot returns a deep copy of the grid for rendering.
func (b *Board) Snapshot() [][]PlayerID {
	grid := make([][]PlayerID, len(b.cells))
	for i := range b.cells {
		grid[i] = make([]PlayerID, len(b.cells[i]))
		copy(grid[i], b.cells[i])
	}
	return grid
}

func (b *Board) Clone() *Board {
	return &Board{height: b.height, width: b.width, cells: b.Snapshot()}
}

// BoardFromGrid builds a board from an existing grid without checking gravity;
// use VerifyBoard for that.
func BoardFromGrid(grid [][]PlayerID) (*Board, error) {
	height := len(grid)
	if height == 0 {
		return nil, errors.Wrap(ErrInvalidConfig, "empty grid")
	}
	width := len(grid[0])

	b, err := NewBoard(height, width)
	if err != nil {
		return nil, err
	}
	for r, row := range grid {
		if len(row) != width {
			return nil, errors.Wrapf(ErrInvalidConfig, "row %d has %d cells, want %d", r, len(row), width)
		}
		for c, cell := range row {
			if cell != Empty && cell != Player1 && cell != Player2 {
				return nil, errors.Wrapf(ErrInvalidConfig, "cell (%d,%d) holds unknown player %d", r, c, cell)
			}
			b.cells[r][c] = cell
		}
	}
	return b, nil
}
