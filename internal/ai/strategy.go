// Package ai 提供走子策略：随机与 MCTS。策略只通过 Board 的公开接口
// (Clone / EmptyCells / MoveAt) 工作，从不修改传入的棋盘。
package ai

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/exp/rand"

	"havannah_go/internal/game"
)

// Strategy chooses a move for the player to move on b. b is not modified.
type Strategy interface {
	Name() string
	ChooseMove(ctx context.Context, b *game.Board) (game.HexCoord, error)
}

// ErrUnknownStrategy is returned by New for an unrecognised name.
var ErrUnknownStrategy = errors.New("unknown strategy")

// Names lists the strategies New understands.
var Names = []string{"random", "mcts"}

// New builds a strategy by name. Options only apply to "mcts", except
// WithSeed which seeds both.
func New(name string, opts ...Option) (Strategy, error) {
	switch name {
	case "random":
		m := NewMCTS(opts...)
		return NewRandom(m.seed), nil
	case "mcts":
		return NewMCTS(opts...), nil
	}
	return nil, fmt.Errorf("strategy %q: %w", name, ErrUnknownStrategy)
}

// Random plays a uniformly random empty cell.
type Random struct {
	rng *rand.Rand
}

func NewRandom(seed uint64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

func (r *Random) Name() string { return "random" }

func (r *Random) ChooseMove(ctx context.Context, b *game.Board) (game.HexCoord, error) {
	if err := ctx.Err(); err != nil {
		return game.HexCoord{}, err
	}
	if st := b.State(); st.IsTerminal() {
		return game.HexCoord{}, fmt.Errorf("choose move: %w", game.ErrGameOver)
	}
	empty := b.EmptyCells()
	return empty[r.rng.Intn(len(empty))], nil
}
