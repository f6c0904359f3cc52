package entity

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
)

// GameHistory owns the board snapshots of one game and the pointer to the displayed one.
// Every request that would break the history invariants is ignored without an error.
type GameHistory struct {
	history     []Board
	currentMove int
}

// NewGameHistory - creates a history holding only the empty starting board.
func NewGameHistory() *GameHistory {
	return &GameHistory{
		history: []Board{{}},
	}
}

// PlayMove - places the mover's mark on cell of the current board and drops the abandoned future.
func (that *GameHistory) PlayMove(cell int) {
	if !IsValidCell(cell) {
		return
	}

	current := that.CurrentBoard()
	if !current.IsEmpty(cell) || Winner(current) != MarkEmpty {
		return
	}

	next := current.With(cell, that.NextMark())

	that.history = append(that.history[:that.currentMove+1:that.currentMove+1], next)
	that.currentMove = len(that.history) - 1
}

// JumpTo - makes the snapshot at move current without touching the history.
func (that *GameHistory) JumpTo(move int) {
	if move < 0 || move >= len(that.history) {
		return
	}

	that.currentMove = move
}

// Reset - starts over from the empty board.
func (that *GameHistory) Reset() {
	that.history = []Board{{}}
	that.currentMove = 0
}

func (that *GameHistory) CurrentBoard() Board {
	return that.history[that.currentMove]
}

func (that *GameHistory) CurrentMove() int {
	return that.currentMove
}

// MoveCount - returns how many moves the history holds, regardless of the current move.
func (that *GameHistory) MoveCount() int {
	return len(that.history) - 1
}

// NextMark - returns who moves from the current snapshot.
func (that *GameHistory) NextMark() Mark {
	return MarkForMove(that.currentMove)
}

// Outcome - classifies the current board. The current move doubles as the count of marks on it.
func (that *GameHistory) Outcome() Outcome {
	return Classify(that.CurrentBoard(), that.currentMove)
}

// Snapshots - returns a copy of every board in the history.
func (that *GameHistory) Snapshots() []Board {
	return append([]Board(nil), that.history...)
}

type historyJSON struct {
	History     []Board `json:"history"`
	CurrentMove int     `json:"current_move"`
}

func (that *GameHistory) MarshalJSON() ([]byte, error) {
	return json.Marshal(historyJSON{
		History:     that.history,
		CurrentMove: that.currentMove,
	})
}

// UnmarshalJSON - decodes a stored history and refuses anything legal play could not produce.
func (that *GameHistory) UnmarshalJSON(data []byte) error {
	var raw historyJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %w", apperror.ErrCorruptedHistory, err)
	}

	restored, err := RestoreGameHistory(raw.History, raw.CurrentMove)
	if err != nil {
		return err
	}

	*that = *restored

	return nil
}

// RestoreGameHistory - rebuilds a history from snapshots after checking every invariant.
func RestoreGameHistory(snapshots []Board, currentMove int) (*GameHistory, error) {
	if len(snapshots) == 0 {
		return nil, fmt.Errorf("%w: no snapshots", apperror.ErrCorruptedHistory)
	}

	if snapshots[0] != (Board{}) {
		return nil, fmt.Errorf("%w: first snapshot is not empty", apperror.ErrCorruptedHistory)
	}

	for i := 1; i < len(snapshots); i++ {
		if err := validateStep(snapshots[i-1], snapshots[i], MarkForMove(i-1)); err != nil {
			return nil, fmt.Errorf("%w: snapshot %d: %w", apperror.ErrCorruptedHistory, i, err)
		}
	}

	if currentMove < 0 || currentMove >= len(snapshots) {
		return nil, fmt.Errorf("%w: current move %d out of range", apperror.ErrCorruptedHistory, currentMove)
	}

	return &GameHistory{
		history:     append([]Board(nil), snapshots...),
		currentMove: currentMove,
	}, nil
}

func validateStep(prev, next Board, mover Mark) error {
	if Winner(prev) != MarkEmpty {
		return apperror.ErrGameFinished
	}

	changed := -1
	for cell := range next {
		if !next[cell].IsValid() {
			return fmt.Errorf("%w: %q", apperror.ErrInvalidMark, next[cell])
		}

		if prev[cell] == next[cell] {
			continue
		}

		if changed != -1 {
			return apperror.ErrInvalidStep
		}
		changed = cell
	}

	if changed == -1 || prev[changed] != MarkEmpty || next[changed] != mover {
		return apperror.ErrInvalidStep
	}

	return nil
}
