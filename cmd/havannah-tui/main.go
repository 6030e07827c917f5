package main

import (
	"os"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"havannah_go/internal/ai"
	"havannah_go/internal/ascii"
	"havannah_go/internal/game"
	"havannah_go/internal/tui"
)

var CLI struct {
	Radius   int           `short:"r" default:"4" env:"HAVANNAH_RADIUS" help:"Board radius"`
	Computer string        `short:"c" default:"white" enum:"none,black,white" help:"Side played by the computer"`
	Strategy string        `short:"s" default:"mcts" enum:"mcts,random" help:"Computer strategy"`
	Sims     int           `default:"2000" help:"MCTS simulations per move"`
	Duration time.Duration `default:"0s" help:"MCTS time budget per move"`
	Plain    bool          `help:"Disable colours"`
	LogFile  string        `default:"havannah-tui.log" help:"Log file (the terminal belongs to the UI)"`
	LogLevel string        `short:"l" default:"info" env:"HAVANNAH_LOG_LEVEL" help:"Log level"`
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name("havannah-tui"),
		kong.Description("Play Havannah in the terminal. Type cells like c3."),
	)

	f, err := os.OpenFile(CLI.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	kctx.FatalIfErrorf(err)
	defer f.Close()
	logger := log.NewWithOptions(f, log.Options{ReportTimestamp: true})
	if lvl, err := log.ParseLevel(CLI.LogLevel); err == nil {
		logger.SetLevel(lvl)
	}

	side := game.NoPlayer
	switch CLI.Computer {
	case "black":
		side = game.Black
	case "white":
		side = game.White
	}

	styles := ascii.NewStyles()
	if CLI.Plain {
		styles = ascii.NewPlainStyles()
	}

	m, err := tui.New(tui.Options{
		Radius: CLI.Radius,
		AISide: side,
		NewAI: func() ai.Strategy {
			opts := []ai.Option{ai.WithLogger(logger.WithPrefix("ai"))}
			if CLI.Duration > 0 {
				opts = append(opts, ai.WithDuration(CLI.Duration))
			} else {
				opts = append(opts, ai.WithSimulations(CLI.Sims))
			}
			s, err := ai.New(CLI.Strategy, opts...)
			kctx.FatalIfErrorf(err)
			return s
		},
		Styles: styles,
		Logger: logger,
	})
	kctx.FatalIfErrorf(err)

	if _, err := tea.NewProgram(m).Run(); err != nil {
		logger.Error("tui", "err", err)
		kctx.Exit(1)
	}
}
