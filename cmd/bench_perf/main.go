// cmd/bench_perf/main.go
// 规则引擎压测：随机对局跑满，统计每秒落子数，可选 CPU profile
package main

import (
	"os"
	"runtime/pprof"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"golang.org/x/exp/rand"

	"havannah_go/internal/game"
)

var CLI struct {
	Radius  int    `short:"r" default:"8" help:"Board radius"`
	Games   int    `short:"n" default:"2000" help:"Random games to play"`
	Seed    uint64 `default:"1" help:"RNG seed"`
	Profile string `help:"Write a CPU profile to this file"`
}

func main() {
	kctx := kong.Parse(&CLI, kong.Name("bench_perf"))
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "bench"})

	if CLI.Profile != "" {
		f, err := os.Create(CLI.Profile)
		kctx.FatalIfErrorf(err)
		defer f.Close()
		kctx.FatalIfErrorf(pprof.StartCPUProfile(f))
		defer pprof.StopCPUProfile()
	}

	rng := rand.New(rand.NewSource(CLI.Seed))
	results := map[string]int{}
	moves := 0

	start := time.Now()
	for range CLI.Games {
		b := game.MustNewBoard(CLI.Radius)
		cells := b.EmptyCells()
		rng.Shuffle(len(cells), func(i, j int) { cells[i], cells[j] = cells[j], cells[i] })
		for _, c := range cells {
			st, err := b.MoveAt(c)
			kctx.FatalIfErrorf(err)
			moves++
			if st.IsTerminal() {
				break
			}
		}
		results[b.State().String()]++
		b.Release()
	}
	elapsed := time.Since(start)

	logger.Info("done",
		"radius", CLI.Radius,
		"games", CLI.Games,
		"moves", moves,
		"elapsed", elapsed.Round(time.Millisecond),
		"moves_per_sec", int(float64(moves)/elapsed.Seconds()),
	)
	for k, v := range results {
		logger.Info("result", "state", k, "games", v)
	}
}
