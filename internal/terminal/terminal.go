// Package terminal is a line based front end that drives one local game from a prompt.
package terminal

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
	"github.com/rocketscienceinc/tictactoe-history/internal/view"
)

type CommandType int

const (
	CmdNone CommandType = iota
	CmdPlay
	CmdJump
	CmdReset
	CmdHistory
	CmdHelp
	CmdQuit
	CmdUnknown
)

type Command struct {
	Type CommandType
	Arg  int
	Raw  string
}

const helpText = `Commands:
  <0-8> | play <cell>   place the next mark, cells are numbered row by row
  jump <move>           go back (or forward) to a move from the history
  reset                 start a new game
  history               list the moves
  help                  show this help
  quit                  leave
`

// Terminal color codes
const (
	reset  = "\033[0m"
	red    = "\033[31m"
	yellow = "\033[33m"
	cyan   = "\033[36m"
	gray   = "\033[90m"
)

type lineReader interface {
	Readline() (string, error)
}

type Terminal struct {
	logger  *slog.Logger
	input   lineReader
	output  io.Writer
	color   bool
	history *entity.GameHistory
}

func New(logger *slog.Logger, input lineReader, output io.Writer, color bool) *Terminal {
	return &Terminal{
		logger:  logger.With("component", "terminal"),
		input:   input,
		output:  output,
		color:   color,
		history: entity.NewGameHistory(),
	}
}

// Completer - returns tab completion for the command words.
func Completer() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem("play"),
		readline.PcItem("jump"),
		readline.PcItem("reset"),
		readline.PcItem("history"),
		readline.PcItem("help"),
		readline.PcItem("quit"),
	)
}

// Run - reads commands until quit, end of input or interrupt, redrawing after each one.
func (that *Terminal) Run() error {
	that.render()

	for {
		line, err := that.input.Readline()
		if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read command: %w", err)
		}

		cmd := ParseCommand(line)
		if cmd.Type == CmdQuit {
			return nil
		}

		that.execute(cmd)
	}
}

// ParseCommand - turns one input line into a command. A bare number plays that cell.
func ParseCommand(line string) Command {
	raw := strings.TrimSpace(line)
	parts := strings.Fields(strings.ToLower(raw))
	if len(parts) == 0 {
		return Command{Type: CmdNone, Raw: raw}
	}

	if cell, err := strconv.Atoi(parts[0]); err == nil && len(parts) == 1 {
		return Command{Type: CmdPlay, Arg: cell, Raw: raw}
	}

	withArg := func(cmdType CommandType) Command {
		if len(parts) != 2 {
			return Command{Type: CmdUnknown, Raw: raw}
		}
		arg, err := strconv.Atoi(parts[1])
		if err != nil {
			return Command{Type: CmdUnknown, Raw: raw}
		}
		return Command{Type: cmdType, Arg: arg, Raw: raw}
	}

	switch parts[0] {
	case "play", "p":
		return withArg(CmdPlay)
	case "jump", "j":
		return withArg(CmdJump)
	case "reset", "new":
		return Command{Type: CmdReset, Raw: raw}
	case "history", "h":
		return Command{Type: CmdHistory, Raw: raw}
	case "help", "?":
		return Command{Type: CmdHelp, Raw: raw}
	case "quit", "exit", "q":
		return Command{Type: CmdQuit, Raw: raw}
	default:
		return Command{Type: CmdUnknown, Raw: raw}
	}
}

func (that *Terminal) execute(cmd Command) {
	log := that.logger.With("method", "execute", "command", cmd.Raw)

	switch cmd.Type {
	case CmdNone:
		return
	case CmdPlay:
		that.history.PlayMove(cmd.Arg)
		log.Debug("move requested", "cell", cmd.Arg, "current_move", that.history.CurrentMove())
		that.render()
	case CmdJump:
		that.history.JumpTo(cmd.Arg)
		that.render()
	case CmdReset:
		that.history.Reset()
		that.render()
	case CmdHistory:
		that.renderMoves(view.Build(that.history))
	case CmdHelp:
		fmt.Fprint(that.output, helpText)
	default:
		fmt.Fprintf(that.output, "%s\n", that.paint(red, "unknown command: "+cmd.Raw+" (try help)"))
	}
}

func (that *Terminal) render() {
	state := view.Build(that.history)

	var b strings.Builder
	b.WriteString("\n")
	for i, row := range state.Rows {
		b.WriteString(" ")
		for j, cell := range row {
			b.WriteString(that.cellText(cell))
			if j < len(row)-1 {
				b.WriteString(" | ")
			}
		}
		b.WriteString("\n")
		if i < len(state.Rows)-1 {
			b.WriteString("---+---+---\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(that.paint(yellow, state.Status))
	fmt.Fprintf(&b, "  (move %d of %d)\n", state.CurrentMove, state.MoveCount)

	fmt.Fprint(that.output, b.String())
}

func (that *Terminal) renderMoves(state view.State) {
	for _, entry := range state.Moves {
		marker := " "
		if entry.Current {
			marker = ">"
		}

		label := entry.Label
		if !entry.Jumpable {
			label = that.paint(gray, label)
		}

		fmt.Fprintf(that.output, "%s %d. %s\n", marker, entry.Move, label)
	}
}

func (that *Terminal) cellText(cell view.Cell) string {
	switch cell.Mark {
	case entity.MarkX:
		return that.paint(cyan, "X")
	case entity.MarkO:
		return that.paint(red, "O")
	default:
		return that.paint(gray, strconv.Itoa(cell.Index))
	}
}

func (that *Terminal) paint(color, text string) string {
	if !that.color {
		return text
	}
	return color + text + reset
}
