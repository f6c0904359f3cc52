package entity

// Status classifies a displayed board.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusWinner     Status = "winner"
	StatusDraw       Status = "draw"
)

// drawMoveCount is the move counter value at which a board without a winner is a draw.
const drawMoveCount = BoardSize

// Outcome is derived from a board and a move counter every time it is needed, never stored.
type Outcome struct {
	Status Status `json:"status"`
	Winner Mark   `json:"winner,omitempty"`
	Next   Mark   `json:"next,omitempty"`
}

// Classify - derives the outcome of board reached after moves moves.
// The draw check trusts the counter instead of rescanning the board.
func Classify(board Board, moves int) Outcome {
	if winner := Winner(board); winner != MarkEmpty {
		return Outcome{Status: StatusWinner, Winner: winner}
	}

	if moves == drawMoveCount {
		return Outcome{Status: StatusDraw}
	}

	return Outcome{Status: StatusInProgress, Next: MarkForMove(moves)}
}

func (that Outcome) IsFinished() bool {
	return that.Status == StatusWinner || that.Status == StatusDraw
}

// String - renders the status line shown above the board.
func (that Outcome) String() string {
	switch that.Status {
	case StatusWinner:
		return "Winner: " + string(that.Winner)
	case StatusDraw:
		return "It's a Draw!"
	default:
		return "Next player: " + string(that.Next)
	}
}
