// Package match runs batches of engine-vs-engine games and records them.
package match

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"havannah_go/internal/ai"
	"havannah_go/internal/game"
)

// Config is a match description, usually read from an HCL file:
//
//	radius  = 4
//	games   = 100
//	workers = 4
//
//	player "black" {
//	  strategy = "mcts"
//	  sims     = 500
//	}
//
//	player "white" {
//	  strategy = "random"
//	}
type Config struct {
	Radius  int            `hcl:"radius,optional"`
	Games   int            `hcl:"games,optional"`
	Workers int            `hcl:"workers,optional"`
	Seed    int64          `hcl:"seed,optional"`
	Players []PlayerConfig `hcl:"player,block"`
}

// PlayerConfig describes the strategy for one colour.
type PlayerConfig struct {
	Color       string  `hcl:"color,label"`
	Strategy    string  `hcl:"strategy"`
	Sims        int     `hcl:"sims,optional"`
	Duration    string  `hcl:"duration,optional"`
	Exploration float64 `hcl:"exploration,optional"`
}

// DefaultConfig is MCTS (black) against random (white) on a radius 4 board.
func DefaultConfig() *Config {
	return &Config{
		Radius:  4,
		Games:   20,
		Workers: 2,
		Seed:    1,
		Players: []PlayerConfig{
			{Color: "black", Strategy: "mcts", Sims: 500},
			{Color: "white", Strategy: "random"},
		},
	}
}

// LoadConfig reads filename. A missing file yields DefaultConfig.
func LoadConfig(filename string) (*Config, error) {
	src, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read match file: %w", err)
	}
	return ParseConfig(src, filename)
}

// ParseConfig decodes HCL source and fills defaults for missing values.
func ParseConfig(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	def := DefaultConfig()
	if cfg.Radius == 0 {
		cfg.Radius = def.Radius
	}
	if cfg.Games == 0 {
		cfg.Games = def.Games
	}
	if cfg.Workers == 0 {
		cfg.Workers = def.Workers
	}
	if len(cfg.Players) == 0 {
		cfg.Players = def.Players
	}
	return &cfg, nil
}

// Validate checks ranges and that each colour has exactly one player.
func (c *Config) Validate() error {
	if c.Radius < 1 {
		return fmt.Errorf("radius %d: %w", c.Radius, game.ErrBadRadius)
	}
	if c.Games < 1 {
		return fmt.Errorf("games must be positive, got %d", c.Games)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	seen := map[string]bool{}
	for _, p := range c.Players {
		if p.Color != "black" && p.Color != "white" {
			return fmt.Errorf("player %q: colour must be black or white", p.Color)
		}
		if seen[p.Color] {
			return fmt.Errorf("player %q declared twice", p.Color)
		}
		seen[p.Color] = true
		if !slices.Contains(ai.Names, p.Strategy) {
			return fmt.Errorf("player %q: strategy %q: %w", p.Color, p.Strategy, ai.ErrUnknownStrategy)
		}
		if p.Duration != "" {
			if _, err := time.ParseDuration(p.Duration); err != nil {
				return fmt.Errorf("player %q: duration: %w", p.Color, err)
			}
		}
	}
	if len(seen) != 2 {
		return errors.New("both black and white players must be configured")
	}
	return nil
}

// Player returns the configuration for p's colour.
func (c *Config) Player(p game.Player) (PlayerConfig, bool) {
	for _, pc := range c.Players {
		if pc.Color == colorName(p) {
			return pc, true
		}
	}
	return PlayerConfig{}, false
}

func colorName(p game.Player) string {
	switch p {
	case game.Black:
		return "black"
	case game.White:
		return "white"
	}
	return ""
}

// NewStrategy builds a fresh strategy. Strategies are not shared across
// goroutines, so every game gets its own.
func (pc PlayerConfig) NewStrategy(seed uint64, logger *log.Logger) (ai.Strategy, error) {
	opts := []ai.Option{ai.WithSeed(seed)}
	if pc.Sims > 0 {
		opts = append(opts, ai.WithSimulations(pc.Sims))
	}
	if pc.Duration != "" {
		d, err := time.ParseDuration(pc.Duration)
		if err != nil {
			return nil, err
		}
		opts = append(opts, ai.WithDuration(d))
	}
	if pc.Exploration > 0 {
		opts = append(opts, ai.WithExploration(pc.Exploration))
	}
	if logger != nil {
		opts = append(opts, ai.WithLogger(logger))
	}
	return ai.New(pc.Strategy, opts...)
}
