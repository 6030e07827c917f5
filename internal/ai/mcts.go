// File ai/mcts.go
package ai

import (
	"context"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/exp/rand"

	"havannah_go/internal/game"
)

const (
	defaultSimulations = 2000
	defaultExploration = 1.4
)

type Option func(m *MCTS)

// WithSimulations caps the number of iterations per move.
func WithSimulations(n int) Option {
	return func(m *MCTS) {
		if n > 0 {
			m.sims = n
		}
	}
}

// WithDuration caps the thinking time per move.
func WithDuration(d time.Duration) Option {
	return func(m *MCTS) {
		if d > 0 {
			m.budget = d
		}
	}
}

// WithExploration sets the exploration constant of the selection rule.
func WithExploration(c float64) Option {
	return func(m *MCTS) {
		if c > 0 {
			m.cPUCT = c
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.seed = seed
		m.seeded = true
	}
}

func WithClock(clock quartz.Clock) Option {
	return func(m *MCTS) {
		if clock != nil {
			m.clock = clock
		}
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(m *MCTS) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// SearchStats describes the last search.
type SearchStats struct {
	Iterations int
	Elapsed    time.Duration
	BestVisits int
	WinRate    float64 // of the chosen move, for the player to move, in [0,1]
	Immediate  bool    // the move wins on the spot and no tree was built
}

// MCTS is a Monte Carlo tree search player with uniform random playouts.
// Each iteration works on its own clone of the root board. An MCTS value
// must not be used from several goroutines at once.
type MCTS struct {
	sims   int
	budget time.Duration
	cPUCT  float64
	seed   uint64
	seeded bool
	clock  quartz.Clock
	logger *log.Logger
	rng    *rand.Rand
	stats  SearchStats
}

// NewMCTS builds a searcher. Without a simulation cap or a time budget it
// runs a fixed number of simulations per move.
func NewMCTS(opts ...Option) *MCTS {
	m := &MCTS{
		cPUCT:  defaultExploration,
		clock:  quartz.NewReal(),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.sims <= 0 && m.budget <= 0 {
		m.sims = defaultSimulations
	}
	if !m.seeded {
		m.seed = uint64(m.clock.Now().UnixNano())
	}
	m.rng = rand.New(rand.NewSource(m.seed))
	return m
}

func (m *MCTS) Name() string { return "mcts" }

// LastStats returns statistics of the most recent ChooseMove.
func (m *MCTS) LastStats() SearchStats { return m.stats }

type mctsNode struct {
	parent     *mctsNode
	move       game.HexCoord // 走到本节点所下的那步（root 的 move 为零值）
	mover      game.Player   // 下出 move 的一方
	children   []*mctsNode
	visits     int
	valueSum   float64 // 累积价值（从 mover 视角）
	unexpanded []game.HexCoord
	terminal   bool
}

func newNode(b *game.Board, parent *mctsNode, mv game.HexCoord, mover game.Player) *mctsNode {
	n := &mctsNode{
		parent:   parent,
		move:     mv,
		mover:    mover,
		terminal: b.State().IsTerminal(),
	}
	if !n.terminal {
		n.unexpanded = b.EmptyCells()
	}
	return n
}

func (n *mctsNode) q() float64 {
	if n.visits == 0 {
		return 0
	}
	return n.valueSum / float64(n.visits)
}

// selectChild 用 PUCT 选择（先验取均匀 1/len）
func selectChild(n *mctsNode, cPUCT float64) *mctsNode {
	var best *mctsNode
	bestScore := -math.MaxFloat64
	prior := 1.0 / float64(len(n.children))
	parentVisits := math.Max(1, float64(n.visits))
	for _, ch := range n.children {
		u := cPUCT * prior * math.Sqrt(parentVisits) / (1.0 + float64(ch.visits))
		if score := ch.q() + u; score > bestScore {
			bestScore = score
			best = ch
		}
	}
	return best
}

// rollout 随机下完整盘棋，返回胜者（平局为 NoPlayer）
func (m *MCTS) rollout(b *game.Board) game.Player {
	if st := b.State(); st.IsTerminal() {
		return st.Winner
	}
	empty := b.EmptyCells()
	m.rng.Shuffle(len(empty), func(i, j int) { empty[i], empty[j] = empty[j], empty[i] })
	for _, c := range empty {
		st, err := b.MoveAt(c)
		if err != nil {
			panic(fmt.Sprintf("mcts rollout: %v", err))
		}
		if st.IsTerminal() {
			return st.Winner
		}
	}
	return game.NoPlayer
}

// immediateWin returns a cell that wins for the player to move right away.
func immediateWin(b *game.Board) (game.HexCoord, bool) {
	for _, c := range b.EmptyCells() {
		nb := b.Clone()
		st, err := nb.MoveAt(c)
		nb.Release()
		if err == nil && st.Kind == game.Won {
			return c, true
		}
	}
	return game.HexCoord{}, false
}

// ChooseMove runs the search from b and returns the most visited move.
// It stops at the simulation cap, the time budget or when ctx is done,
// whichever comes first.
func (m *MCTS) ChooseMove(ctx context.Context, b *game.Board) (game.HexCoord, error) {
	if st := b.State(); st.IsTerminal() {
		return game.HexCoord{}, fmt.Errorf("choose move: %w", game.ErrGameOver)
	}
	start := m.clock.Now("mcts", "start")
	me := b.ToMove()

	if mv, ok := immediateWin(b); ok {
		m.stats = SearchStats{Elapsed: m.clock.Now("mcts", "end").Sub(start), WinRate: 1, Immediate: true}
		m.logger.Debug("mcts immediate win", "player", me, "move", mv)
		return mv, nil
	}

	root := newNode(b, nil, game.HexCoord{}, me.Flip())
	deadline := start.Add(m.budget)

	iter := 0
	for ; ; iter++ {
		if m.sims > 0 && iter >= m.sims {
			break
		}
		if m.budget > 0 && !m.clock.Now("mcts", "iteration").Before(deadline) {
			break
		}
		if ctx.Err() != nil {
			break
		}

		nb := b.Clone()
		cur := root

		// Selection
		for !cur.terminal && len(cur.unexpanded) == 0 && len(cur.children) > 0 {
			cur = selectChild(cur, m.cPUCT)
			if _, err := nb.MoveAt(cur.move); err != nil {
				panic(fmt.Sprintf("mcts selection: %v", err))
			}
		}

		// Expansion
		if !cur.terminal && len(cur.unexpanded) > 0 {
			k := m.rng.Intn(len(cur.unexpanded))
			mv := cur.unexpanded[k]
			last := len(cur.unexpanded) - 1
			cur.unexpanded[k] = cur.unexpanded[last]
			cur.unexpanded = cur.unexpanded[:last]

			mover := nb.ToMove()
			if _, err := nb.MoveAt(mv); err != nil {
				panic(fmt.Sprintf("mcts expansion: %v", err))
			}
			child := newNode(nb, cur, mv, mover)
			cur.children = append(cur.children, child)
			cur = child
		}

		// Rollout
		winner := m.rollout(nb)
		nb.Release()

		// Backup
		for n := cur; n != nil; n = n.parent {
			n.visits++
			switch winner {
			case n.mover:
				n.valueSum++
			case game.NoPlayer:
			default:
				n.valueSum--
			}
		}
	}

	elapsed := m.clock.Now("mcts", "end").Sub(start)
	if len(root.children) == 0 {
		m.stats = SearchStats{Iterations: iter, Elapsed: elapsed}
		if err := ctx.Err(); err != nil {
			return game.HexCoord{}, err
		}
		return game.HexCoord{}, fmt.Errorf("choose move: no simulations ran within %v", m.budget)
	}

	best := root.children[0]
	for _, ch := range root.children[1:] {
		if ch.visits > best.visits {
			best = ch
		}
	}
	m.stats = SearchStats{
		Iterations: iter,
		Elapsed:    elapsed,
		BestVisits: best.visits,
		WinRate:    (best.q() + 1) / 2,
	}
	m.logger.Debug("mcts search",
		"player", me,
		"iterations", iter,
		"elapsed", elapsed,
		"move", best.move,
		"visits", best.visits,
		"winrate", fmt.Sprintf("%.3f", m.stats.WinRate))
	return best.move, nil
}
