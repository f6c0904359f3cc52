// Package view turns a game history into what every front end draws: cells, status line, move list.
package view

import (
	"strconv"

	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
)

type Cell struct {
	Index    int         `json:"index"`
	Row      int         `json:"row"`
	Col      int         `json:"col"`
	Mark     entity.Mark `json:"mark"`
	Playable bool        `json:"playable"`
}

// MoveEntry is one line of the history list. Entries that are not jumpable are shown as plain text.
type MoveEntry struct {
	Move     int    `json:"move"`
	Label    string `json:"label"`
	Current  bool   `json:"current"`
	Jumpable bool   `json:"jumpable"`
}

type State struct {
	Cells       []Cell         `json:"cells"`
	Rows        [][]Cell       `json:"-"`
	Status      string         `json:"status"`
	Outcome     entity.Outcome `json:"outcome"`
	NextMark    entity.Mark    `json:"next_mark,omitempty"`
	CurrentMove int            `json:"current_move"`
	MoveCount   int            `json:"move_count"`
	Moves       []MoveEntry    `json:"moves"`
}

// Build - derives the displayed state from history.
func Build(history *entity.GameHistory) State {
	board := history.CurrentBoard()
	outcome := history.Outcome()
	finished := entity.Winner(board) != entity.MarkEmpty

	cells := make([]Cell, 0, entity.BoardSize)
	for index, mark := range board {
		row, col := entity.CellPosition(index)
		cells = append(cells, Cell{
			Index:    index,
			Row:      row,
			Col:      col,
			Mark:     mark,
			Playable: mark == entity.MarkEmpty && !finished,
		})
	}

	state := State{
		Cells:       cells,
		Rows:        [][]Cell{cells[0:3], cells[3:6], cells[6:9]},
		Status:      outcome.String(),
		Outcome:     outcome,
		CurrentMove: history.CurrentMove(),
		MoveCount:   history.MoveCount(),
		Moves:       moveEntries(history.CurrentMove(), history.MoveCount()),
	}

	if !outcome.IsFinished() {
		state.NextMark = history.NextMark()
	}

	return state
}

func moveEntries(currentMove, moveCount int) []MoveEntry {
	entries := make([]MoveEntry, 0, moveCount+1)

	for move := 0; move <= moveCount; move++ {
		entry := MoveEntry{
			Move:     move,
			Current:  move == currentMove,
			Jumpable: true,
		}

		switch {
		case move == 0:
			entry.Label = "Go to beginning"
		case move == currentMove:
			entry.Label = "You are at move #" + strconv.Itoa(move)
			entry.Jumpable = false
		default:
			entry.Label = "Go to move #" + strconv.Itoa(move)
		}

		entries = append(entries, entry)
	}

	return entries
}
