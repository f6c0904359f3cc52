package terminal

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/chzyer/readline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
	"github.com/rocketscienceinc/tictactoe-history/testing/suite"
)

var errBrokenInput = errors.New("broken input")

type scriptedInput struct {
	lines []string
	end   error
}

func (that *scriptedInput) Readline() (string, error) {
	if len(that.lines) == 0 {
		return "", that.end
	}

	line := that.lines[0]
	that.lines = that.lines[1:]

	return line, nil
}

func runScript(t *testing.T, end error, lines ...string) (*Terminal, string, error) {
	t.Helper()

	var out bytes.Buffer
	term := New(suite.Logger(), &scriptedInput{lines: lines, end: end}, &out, false)
	err := term.Run()

	return term, out.String(), err
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line     string
		expected Command
	}{
		{line: "", expected: Command{Type: CmdNone}},
		{line: " 4 ", expected: Command{Type: CmdPlay, Arg: 4, Raw: "4"}},
		{line: "play 8", expected: Command{Type: CmdPlay, Arg: 8, Raw: "play 8"}},
		{line: "JUMP 2", expected: Command{Type: CmdJump, Arg: 2, Raw: "JUMP 2"}},
		{line: "jump", expected: Command{Type: CmdUnknown, Raw: "jump"}},
		{line: "jump two", expected: Command{Type: CmdUnknown, Raw: "jump two"}},
		{line: "reset", expected: Command{Type: CmdReset, Raw: "reset"}},
		{line: "history", expected: Command{Type: CmdHistory, Raw: "history"}},
		{line: "help", expected: Command{Type: CmdHelp, Raw: "help"}},
		{line: "exit", expected: Command{Type: CmdQuit, Raw: "exit"}},
		{line: "undo", expected: Command{Type: CmdUnknown, Raw: "undo"}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseCommand(tt.line))
		})
	}
}

func TestTerminal_Run(t *testing.T) {
	t.Run("Plays to a win", func(t *testing.T) {
		// When: X takes the top row and O tries to play on
		term, out, err := runScript(t, io.EOF, "0", "4", "1", "5", "2", "8", "quit", "7")

		// Then: the game should stop at the win and quit before the last line
		require.NoError(t, err)
		assert.Contains(t, out, "Winner: X")
		assert.Equal(t, 5, term.history.MoveCount())
		assert.Equal(t, entity.MarkEmpty, term.history.CurrentBoard()[7])
	})

	t.Run("Jump and history", func(t *testing.T) {
		// When: two moves are played and the game jumps back
		term, out, err := runScript(t, io.EOF, "play 0", "play 4", "jump 1", "history")

		// Then: the history should mark the current move
		require.NoError(t, err)
		assert.Equal(t, 1, term.history.CurrentMove())
		assert.Contains(t, out, "  0. Go to beginning\n")
		assert.Contains(t, out, "> 1. You are at move #1\n")
		assert.Contains(t, out, "  2. Go to move #2\n")
		assert.Contains(t, out, "Next player: O")
	})

	t.Run("Draw", func(t *testing.T) {
		_, out, err := runScript(t, io.EOF, "0", "1", "2", "4", "3", "5", "7", "6", "8")

		require.NoError(t, err)
		assert.Contains(t, out, "It's a Draw!")
	})

	t.Run("Reset", func(t *testing.T) {
		term, out, err := runScript(t, readline.ErrInterrupt, "0", "reset")

		require.NoError(t, err)
		assert.Equal(t, 0, term.history.MoveCount())
		assert.Contains(t, out, "(move 0 of 0)")
	})

	t.Run("Unknown command", func(t *testing.T) {
		_, out, err := runScript(t, io.EOF, "undo")

		require.NoError(t, err)
		assert.Contains(t, out, "unknown command: undo")
	})

	t.Run("Input error is returned", func(t *testing.T) {
		_, _, err := runScript(t, errBrokenInput)

		require.ErrorIs(t, err, errBrokenInput)
	})
}

func TestTerminal_Render(t *testing.T) {
	// Given: a terminal without colors
	var out bytes.Buffer
	term := New(suite.Logger(), &scriptedInput{end: io.EOF}, &out, false)
	term.history.PlayMove(4)

	// When: rendering
	term.render()

	// Then: the board should show X in the middle and cell numbers elsewhere
	assert.Equal(t, "\n 0 | 1 | 2\n---+---+---\n 3 | X | 5\n---+---+---\n 6 | 7 | 8\n\nNext player: O  (move 1 of 1)\n", out.String())
}
