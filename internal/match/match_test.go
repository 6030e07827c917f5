package match

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"havannah_go/internal/ai"
	"havannah_go/internal/game"
)

const matchHCL = `
radius  = 2
games   = 6
workers = 3
seed    = 11

player "black" {
  strategy = "mcts"
  sims     = 30
}

player "white" {
  strategy = "random"
}
`

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(matchHCL), "match.hcl")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 2, cfg.Radius)
	assert.Equal(t, 6, cfg.Games)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, int64(11), cfg.Seed)

	black, ok := cfg.Player(game.Black)
	require.True(t, ok)
	assert.Equal(t, "mcts", black.Strategy)
	assert.Equal(t, 30, black.Sims)
	white, ok := cfg.Player(game.White)
	require.True(t, ok)
	assert.Equal(t, "random", white.Strategy)
}

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte(`games = 3`), "min.hcl")
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Games)
	assert.Equal(t, DefaultConfig().Radius, cfg.Radius)
	assert.Len(t, cfg.Players, 2)
	assert.NoError(t, cfg.Validate())
}

func TestParseConfigSyntaxError(t *testing.T) {
	_, err := ParseConfig([]byte(`player "black" {`), "bad.hcl")
	assert.Error(t, err)
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "none.hcl"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"radius", func(c *Config) { c.Radius = 0 }},
		{"games", func(c *Config) { c.Games = 0 }},
		{"workers", func(c *Config) { c.Workers = -1 }},
		{"colour", func(c *Config) { c.Players[0].Color = "red" }},
		{"duplicate", func(c *Config) { c.Players[1].Color = "black" }},
		{"missing", func(c *Config) { c.Players = c.Players[:1] }},
		{"strategy", func(c *Config) { c.Players[1].Strategy = "alphabeta" }},
		{"duration", func(c *Config) { c.Players[0].Duration = "soon" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	cfg := DefaultConfig()
	cfg.Players[1].Strategy = "nope"
	assert.ErrorIs(t, cfg.Validate(), ai.ErrUnknownStrategy)
	cfg = DefaultConfig()
	cfg.Radius = 0
	assert.ErrorIs(t, cfg.Validate(), game.ErrBadRadius)
}

func TestPlayGameAndVerify(t *testing.T) {
	rec, err := PlayGame(context.Background(), 2, ai.NewRandom(1), ai.NewRandom(2))
	require.NoError(t, err)

	assert.True(t, rec.Result.IsTerminal())
	assert.NotEmpty(t, rec.Moves)
	assert.LessOrEqual(t, len(rec.Moves), game.CellCount(2))
	assert.Equal(t, "random", rec.Black)
	require.NoError(t, Verify(rec))

	bad := rec
	bad.Hash ^= 1
	assert.ErrorIs(t, Verify(bad), ErrReplayMismatch)

	bad = rec
	bad.Moves = append([]game.HexCoord{}, rec.Moves...)
	bad.Moves[1] = bad.Moves[0]
	assert.ErrorIs(t, Verify(bad), game.ErrCellOccupied)
}

func TestPlayGameCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := PlayGame(ctx, 2, ai.NewRandom(1), ai.NewRandom(2))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun(t *testing.T) {
	cfg, err := ParseConfig([]byte(matchHCL), "match.hcl")
	require.NoError(t, err)

	var got []Record
	sum, err := Run(context.Background(), cfg, log.New(io.Discard), func(r Record) error {
		got = append(got, r)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, 6, sum.Games)
	assert.Len(t, got, 6)
	wins := 0
	for _, n := range sum.Wins {
		wins += n
	}
	reasons := 0
	for _, n := range sum.Reasons {
		reasons += n
	}
	assert.Equal(t, 6, wins+sum.Draws)
	assert.Equal(t, wins, reasons)
	assert.Greater(t, sum.AvgMoves(), 0.0)

	seen := map[int]bool{}
	for _, r := range got {
		seen[r.Index] = true
	}
	assert.Len(t, seen, 6)
}

func TestRunSinkError(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Radius = 2
	cfg.Games = 2
	cfg.Players[0].Strategy = "random"
	boom := assert.AnError
	_, err := Run(context.Background(), cfg, log.New(io.Discard), func(Record) error { return boom })
	assert.ErrorIs(t, err, boom)
}
