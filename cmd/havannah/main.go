package main

import (
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"

	"havannah_go/internal/ai"
	"havannah_go/internal/game"
	"havannah_go/internal/ui"
)

const sampleRate = 44100

var CLI struct {
	Radius   int           `short:"r" default:"5" env:"HAVANNAH_RADIUS" help:"Board radius (cells from centre to edge)"`
	Mode     string        `short:"m" default:"pve" enum:"pvp,pve,eve" env:"HAVANNAH_MODE" help:"Game mode: pvp, pve or eve"`
	Human    string        `default:"black" enum:"black,white" help:"Colour played by the human in pve"`
	Strategy string        `short:"s" default:"mcts" enum:"mcts,random" help:"Computer strategy"`
	Sims     int           `default:"3000" help:"MCTS simulations per move"`
	Duration time.Duration `default:"0s" help:"MCTS time budget per move (overrides sims when set)"`
	Seed     uint64        `default:"0" help:"RNG seed (0 for time based)"`
	Delay    time.Duration `default:"300ms" help:"Minimum pause before a computer move is shown"`
	LogLevel string        `short:"l" default:"info" env:"HAVANNAH_LOG_LEVEL" help:"Log level"`
	Mute     bool          `help:"Disable sound"`
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name("havannah"),
		kong.Description("Play Havannah on a hexagonal board."),
	)

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "havannah"})
	if lvl, err := log.ParseLevel(CLI.LogLevel); err == nil {
		logger.SetLevel(lvl)
	}

	human := game.Black
	if CLI.Human == "white" {
		human = game.White
	}

	var seq uint64
	newAI := func() ai.Strategy {
		seq++
		opts := []ai.Option{ai.WithLogger(logger.WithPrefix("ai"))}
		if CLI.Duration > 0 {
			opts = append(opts, ai.WithDuration(CLI.Duration))
		} else {
			opts = append(opts, ai.WithSimulations(CLI.Sims))
		}
		if CLI.Seed != 0 {
			opts = append(opts, ai.WithSeed(CLI.Seed+seq))
		}
		s, err := ai.New(CLI.Strategy, opts...)
		if err != nil {
			logger.Fatal("build strategy", "err", err)
		}
		return s
	}

	var actx *audio.Context
	if !CLI.Mute {
		actx = audio.NewContext(sampleRate)
	}

	screen, err := ui.NewGameScreen(actx, ui.Config{
		Radius:  CLI.Radius,
		Mode:    ui.Mode(CLI.Mode),
		Human:   human,
		AIDelay: CLI.Delay,
		NewAI:   newAI,
		Logger:  logger,
	})
	if err != nil {
		logger.Error("init", "err", err)
		kctx.Exit(1)
	}
	defer screen.Close()

	ebiten.SetVsyncEnabled(true)
	ebiten.SetTPS(60)
	ebiten.SetWindowSize(ui.WindowWidth, ui.WindowHeight)
	ebiten.SetWindowTitle("Havannah")

	if err := ebiten.RunGame(screen); err != nil {
		logger.Fatal("run", "err", err)
	}
}
