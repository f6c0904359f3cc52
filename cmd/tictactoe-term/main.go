// Command tictactoe-term plays a local two player game in the terminal.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/chzyer/readline"

	"github.com/rocketscienceinc/tictactoe-history/internal/config"
	"github.com/rocketscienceinc/tictactoe-history/internal/terminal"
)

func main() {
	conf, err := config.LoadEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: config.ParseLevel(conf.LogLevel)}))

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[33mtictactoe > \033[0m",
		AutoComplete:    terminal.Completer(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open terminal: %v\n", err)
		os.Exit(1)
	}
	defer rl.Close()

	fmt.Fprintln(rl.Stdout(), "Tic Tac Toe. Type 'help' for commands.")

	term := terminal.New(logger, rl, rl.Stdout(), readline.DefaultIsTerminal())
	if err = term.Run(); err != nil {
		logger.Error("terminal stopped", "error", err)
		rl.Close()
		os.Exit(1)
	}
}
