package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		board    Board
		moves    int
		expected Outcome
		status   string
	}{
		{
			name:     "Empty board waits for X",
			board:    Board{},
			moves:    0,
			expected: Outcome{Status: StatusInProgress, Next: MarkX},
			status:   "Next player: X",
		},
		{
			name:     "After one move O is next",
			board:    Board{MarkX},
			moves:    1,
			expected: Outcome{Status: StatusInProgress, Next: MarkO},
			status:   "Next player: O",
		},
		{
			name: "Top row wins for X",
			board: Board{
				MarkX, MarkX, MarkX,
				MarkEmpty, MarkO, MarkO,
				MarkEmpty, MarkEmpty, MarkEmpty,
			},
			moves:    5,
			expected: Outcome{Status: StatusWinner, Winner: MarkX},
			status:   "Winner: X",
		},
		{
			name: "Full board without a line is a draw",
			board: Board{
				MarkX, MarkO, MarkX,
				MarkX, MarkO, MarkO,
				MarkO, MarkX, MarkX,
			},
			moves:    9,
			expected: Outcome{Status: StatusDraw},
			status:   "It's a Draw!",
		},
		{
			name: "Win on the last move beats the draw",
			board: Board{
				MarkX, MarkO, MarkX,
				MarkO, MarkX, MarkO,
				MarkO, MarkX, MarkX,
			},
			moves:    9,
			expected: Outcome{Status: StatusWinner, Winner: MarkX},
			status:   "Winner: X",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// When: classifying the board
			outcome := Classify(tt.board, tt.moves)

			// Then: the outcome and its status line should match
			assert.Equal(t, tt.expected, outcome)
			assert.Equal(t, tt.status, outcome.String())
			assert.Equal(t, tt.expected.Status != StatusInProgress, outcome.IsFinished())
		})
	}
}
