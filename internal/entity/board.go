package entity

// Mark is the content of a single board cell.
type Mark string

const (
	MarkEmpty Mark = ""
	MarkX     Mark = "X"
	MarkO     Mark = "O"
)

const (
	BoardSize = 9
	rowSize   = 3
)

// Line is an index triple that wins the game when uniformly marked.
type Line [3]int

// Lines lists every winning combination: rows, columns, diagonals.
var Lines = [...]Line{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Board is a row-major 3x3 grid. It is a value type, so a move always produces a new Board.
type Board [BoardSize]Mark

func (that Mark) IsValid() bool {
	return that == MarkEmpty || that == MarkX || that == MarkO
}

// Opponent - returns the other player's mark, MarkEmpty stays empty.
func (that Mark) Opponent() Mark {
	switch that {
	case MarkX:
		return MarkO
	case MarkO:
		return MarkX
	default:
		return MarkEmpty
	}
}

// MarkForMove - returns who moves from snapshot index move: X on even, O on odd.
func MarkForMove(move int) Mark {
	if move%2 == 0 {
		return MarkX
	}
	return MarkO
}

// IsValidCell - checks that cell addresses the board.
func IsValidCell(cell int) bool {
	return cell >= 0 && cell < BoardSize
}

// CellPosition - converts a cell index into row and column.
func CellPosition(cell int) (int, int) {
	return cell / rowSize, cell % rowSize
}

// IsEmpty - reports whether cell holds no mark.
func (that Board) IsEmpty(cell int) bool {
	return that[cell] == MarkEmpty
}

// With - returns a copy of the board with cell set to mark.
func (that Board) With(cell int, mark Mark) Board {
	that[cell] = mark
	return that
}

// Occupied - counts the cells holding X or O.
func (that Board) Occupied() int {
	count := 0
	for _, cell := range that {
		if cell != MarkEmpty {
			count++
		}
	}
	return count
}

// Winner - returns the mark of the first uniformly marked line, or MarkEmpty when there is none.
func Winner(board Board) Mark {
	for _, line := range Lines {
		a, b, c := board[line[0]], board[line[1]], board[line[2]]
		if a != MarkEmpty && a == b && b == c {
			return a
		}
	}

	return MarkEmpty
}
