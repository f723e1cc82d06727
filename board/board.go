package board

import "strings"

// Mark is the content of one grid cell.
type Mark string

const (
	Empty Mark = ""
	X     Mark = "X"
	O     Mark = "O"
)

// Other returns the opposing mark.
func (m Mark) Other() Mark {
	if m == X {
		return O
	}
	return X
}

// Board is the 3x3 tic-tac-toe grid. Cells are write-once: Place never
// overwrites a non-empty cell.
type Board struct {
	cells [3][3]Mark
}

func New() *Board {
	return &Board{}
}

// InBounds reports whether row,col name a cell on the grid.
func InBounds(row, col int) bool {
	return row >= 0 && row <= 2 && col >= 0 && col <= 2
}

// Place writes mark at row,col. It returns false without mutating the
// board when the position is out of bounds or the cell is taken.
func (b *Board) Place(row, col int, mark Mark) bool {
	if !InBounds(row, col) || b.cells[row][col] != Empty {
		return false
	}
	b.cells[row][col] = mark
	return true
}

func (b *Board) At(row, col int) Mark {
	return b.cells[row][col]
}

// Winner scans the 3 rows, 3 columns and 2 diagonals and returns the
// mark occupying a full line, or Empty if there is none.
func (b *Board) Winner() Mark {
	for i := 0; i < 3; i++ {
		if m := b.cells[i][0]; m != Empty && m == b.cells[i][1] && m == b.cells[i][2] {
			return m
		}
		if m := b.cells[0][i]; m != Empty && m == b.cells[1][i] && m == b.cells[2][i] {
			return m
		}
	}
	if m := b.cells[0][0]; m != Empty && m == b.cells[1][1] && m == b.cells[2][2] {
		return m
	}
	if m := b.cells[0][2]; m != Empty && m == b.cells[1][1] && m == b.cells[2][0] {
		return m
	}
	return Empty
}

// Full reports whether every cell holds a mark. Winner()==Empty && Full()
// is the draw condition.
func (b *Board) Full() bool {
	for _, row := range b.cells {
		for _, cell := range row {
			if cell == Empty {
				return false
			}
		}
	}
	return true
}

// Cells returns the grid as a plain array for snapshots.
func (b *Board) Cells() [3][3]string {
	var out [3][3]string
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			out[r][c] = string(b.cells[r][c])
		}
	}
	return out
}

// String renders the grid for logs.
func (b *Board) String() string {
	var sb strings.Builder
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			cell := string(b.cells[r][c])
			if cell == "" {
				cell = " "
			}
			sb.WriteString(" " + cell + " ")
			if c < 2 {
				sb.WriteString("|")
			}
		}
		sb.WriteString("\n")
		if r < 2 {
			sb.WriteString("---+---+---\n")
		}
	}
	return sb.String()
}
