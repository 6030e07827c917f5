// cmd/selfplay/main.go
// 批量对局：按 HCL 配置让两个策略对打，逐局回放校验并汇总胜负
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"havannah_go/internal/ascii"
	"havannah_go/internal/game"
	"havannah_go/internal/match"
)

var CLI struct {
	Config   string `short:"c" default:"match.hcl" help:"Path to HCL match file (defaults are used if it does not exist)"`
	Games    int    `short:"n" help:"Number of games (overrides config)"`
	Workers  int    `short:"w" help:"Concurrent games (overrides config)"`
	Radius   int    `short:"r" help:"Board radius (overrides config)"`
	Seed     int64  `help:"Base seed (overrides config)"`
	Show     bool   `help:"Print the final board of every game"`
	LogLevel string `short:"l" default:"info" env:"HAVANNAH_LOG_LEVEL" help:"Log level"`
}

func main() {
	kctx := kong.Parse(&CLI, kong.Name("selfplay"), kong.Description("Engine against engine Havannah matches."))

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "selfplay"})
	if lvl, err := log.ParseLevel(CLI.LogLevel); err == nil {
		logger.SetLevel(lvl)
	}

	cfg, err := match.LoadConfig(CLI.Config)
	if err != nil {
		logger.Error("load config", "err", err)
		kctx.Exit(1)
	}
	if CLI.Games > 0 {
		cfg.Games = CLI.Games
	}
	if CLI.Workers > 0 {
		cfg.Workers = CLI.Workers
	}
	if CLI.Radius > 0 {
		cfg.Radius = CLI.Radius
	}
	if CLI.Seed != 0 {
		cfg.Seed = CLI.Seed
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid config", "err", err)
		kctx.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	black, _ := cfg.Player(game.Black)
	white, _ := cfg.Player(game.White)
	logger.Info("starting", "games", cfg.Games, "workers", cfg.Workers, "radius", cfg.Radius,
		"black", black.Strategy, "white", white.Strategy)

	styles := ascii.NewStyles()
	sum, runErr := match.Run(ctx, cfg, logger, func(rec match.Record) error {
		logger.Info("game", "n", rec.Index+1, "result", rec.Result, "moves", len(rec.Moves),
			"elapsed", rec.Elapsed.Round(time.Millisecond))
		if !CLI.Show {
			return nil
		}
		b := game.MustNewBoard(rec.Radius)
		defer b.Release()
		for _, mv := range rec.Moves {
			if _, err := b.MoveAt(mv); err != nil {
				return err
			}
		}
		fmt.Println(ascii.Render(b, styles))
		fmt.Println(ascii.Status(b, styles))
		return nil
	})
	if runErr != nil {
		logger.Error("match aborted", "err", runErr)
		if sum != nil {
			report(logger, sum)
		}
		kctx.Exit(1)
	}

	report(logger, sum)
}

func report(logger *log.Logger, sum *match.Summary) {
	logger.Info("done",
		"games", sum.Games,
		"black", sum.Wins[game.Black],
		"white", sum.Wins[game.White],
		"draws", sum.Draws,
		"avg_moves", fmt.Sprintf("%.1f", sum.AvgMoves()),
		"elapsed", sum.Elapsed.Round(time.Millisecond),
	)
	reasons := make([]game.WinCondition, 0, len(sum.Reasons))
	for r := range sum.Reasons {
		reasons = append(reasons, r)
	}
	sort.Slice(reasons, func(i, j int) bool { return reasons[i] < reasons[j] })
	for _, r := range reasons {
		logger.Info("wins by", "reason", r, "count", sum.Reasons[r])
	}
}
