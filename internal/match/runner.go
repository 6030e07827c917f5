package match

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"havannah_go/internal/ai"
	"havannah_go/internal/game"
)

// ErrReplayMismatch means replaying a record did not reproduce its result.
var ErrReplayMismatch = errors.New("replay mismatch")

// Record is one finished game.
type Record struct {
	Index   int
	Seed    uint64
	Radius  int
	Black   string
	White   string
	Moves   []game.HexCoord
	Result  game.GameState
	Hash    uint64
	Elapsed time.Duration
}

// PlayGame plays one game to the end between the two strategies.
func PlayGame(ctx context.Context, radius int, black, white ai.Strategy) (Record, error) {
	b, err := game.NewBoard(radius)
	if err != nil {
		return Record{}, err
	}
	defer b.Release()

	rec := Record{Radius: radius, Black: black.Name(), White: white.Name()}
	start := time.Now()
	players := map[game.Player]ai.Strategy{game.Black: black, game.White: white}
	for !b.State().IsTerminal() {
		mover := b.ToMove()
		mv, err := players[mover].ChooseMove(ctx, b)
		if err != nil {
			return rec, fmt.Errorf("move %d (%v): %w", len(rec.Moves)+1, mover, err)
		}
		if _, err := b.MoveAt(mv); err != nil {
			return rec, fmt.Errorf("move %d (%v) at %v: %w", len(rec.Moves)+1, mover, mv, err)
		}
		rec.Moves = append(rec.Moves, mv)
	}
	rec.Result = b.State()
	rec.Hash = b.Hash()
	rec.Elapsed = time.Since(start)
	return rec, nil
}

// Verify replays rec on a fresh board and checks that every move is
// accepted and that the final state and hash agree.
func Verify(rec Record) error {
	b, err := game.NewBoard(rec.Radius)
	if err != nil {
		return err
	}
	defer b.Release()
	for i, mv := range rec.Moves {
		if _, err := b.MoveAt(mv); err != nil {
			return fmt.Errorf("game %d move %d: %w", rec.Index, i+1, err)
		}
	}
	if b.State() != rec.Result {
		return fmt.Errorf("game %d: replay ended %v, recorded %v: %w", rec.Index, b.State(), rec.Result, ErrReplayMismatch)
	}
	if b.Hash() != rec.Hash {
		return fmt.Errorf("game %d: replay hash %016x, recorded %016x: %w", rec.Index, b.Hash(), rec.Hash, ErrReplayMismatch)
	}
	return nil
}

// Summary aggregates a batch of games.
type Summary struct {
	Games      int
	Draws      int
	Wins       map[game.Player]int
	Reasons    map[game.WinCondition]int
	TotalMoves int
	Elapsed    time.Duration
}

func newSummary() *Summary {
	return &Summary{
		Wins:    map[game.Player]int{},
		Reasons: map[game.WinCondition]int{},
	}
}

func (s *Summary) add(rec Record) {
	s.Games++
	s.TotalMoves += len(rec.Moves)
	switch rec.Result.Kind {
	case game.Won:
		s.Wins[rec.Result.Winner]++
		s.Reasons[rec.Result.Reason]++
	case game.Drawn:
		s.Draws++
	}
}

// AvgMoves is the mean game length.
func (s *Summary) AvgMoves() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.TotalMoves) / float64(s.Games)
}

// Run plays cfg.Games games on cfg.Workers goroutines. Every game is
// verified by replay before sink sees it. sink is never called
// concurrently and may be nil.
func Run(ctx context.Context, cfg *Config, logger *log.Logger, sink func(Record) error) (*Summary, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}
	blackCfg, _ := cfg.Player(game.Black)
	whiteCfg, _ := cfg.Player(game.White)

	summary := newSummary()
	start := time.Now()
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i := range cfg.Games {
		seed := uint64(cfg.Seed) + uint64(i)*2
		g.Go(func() error {
			black, err := blackCfg.NewStrategy(seed, nil)
			if err != nil {
				return err
			}
			white, err := whiteCfg.NewStrategy(seed+1, nil)
			if err != nil {
				return err
			}
			rec, err := PlayGame(ctx, cfg.Radius, black, white)
			if err != nil {
				return fmt.Errorf("game %d: %w", i, err)
			}
			rec.Index = i
			rec.Seed = seed
			if err := Verify(rec); err != nil {
				return err
			}

			mu.Lock()
			defer mu.Unlock()
			summary.add(rec)
			logger.Debug("game finished", "game", i, "result", rec.Result, "moves", len(rec.Moves), "elapsed", rec.Elapsed)
			if sink != nil {
				return sink(rec)
			}
			return nil
		})
	}
	err := g.Wait()
	summary.Elapsed = time.Since(start)
	return summary, err
}
