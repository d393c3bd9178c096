// Package config holds runtime settings shared by both frontends.
package config

import (
	"flag"
	"time"

	"math-snake/game/types"

	"github.com/pkg/errors"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

const minTickInterval = 10 * time.Millisecond

type Config struct {
	GridWidth    int
	GridHeight   int
	CellSize     int           // pixels per cell in the window frontend
	TickInterval time.Duration // time between simulation ticks
	Seed         uint64        // 0 picks a time-based seed
	Terminal     bool          // tcell frontend instead of a window
	Autopilot    bool          // let the Q-learning agent steer
	Train        int           // headless autopilot episodes to play, then exit
	Mute         bool
	DataDir      string // leaderboard and stats; empty uses the user config dir
	Verbose      bool
}

// Default is a 600x600 board of 30px cells.
func Default() Config {
	return Config{
		GridWidth:    20,
		GridHeight:   20,
		CellSize:     30,
		TickInterval: 250 * time.Millisecond,
	}
}

// BindFlags registers every field on fs, using c's current values as defaults.
func (c *Config) BindFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.GridWidth, "width", c.GridWidth, "Grid width in cells")
	fs.IntVar(&c.GridHeight, "height", c.GridHeight, "Grid height in cells")
	fs.IntVar(&c.CellSize, "cell", c.CellSize, "Cell size in pixels (window mode)")
	fs.DurationVar(&c.TickInterval, "tick", c.TickInterval, "Time between snake moves")
	fs.Uint64Var(&c.Seed, "seed", c.Seed, "Random seed (0 = time based)")
	fs.BoolVar(&c.Terminal, "term", c.Terminal, "Play in the terminal")
	fs.BoolVar(&c.Autopilot, "autopilot", c.Autopilot, "Demo mode: the snake steers itself")
	fs.IntVar(&c.Train, "train", c.Train, "Train the autopilot for this many games without a display")
	fs.BoolVar(&c.Mute, "mute", c.Mute, "Disable sound")
	fs.StringVar(&c.DataDir, "data", c.DataDir, "Directory for leaderboard and stats")
	fs.BoolVar(&c.Verbose, "v", c.Verbose, "Log a summary after every game")
}

func (c Config) Grid() types.Grid {
	return types.Grid{Width: c.GridWidth, Height: c.GridHeight}
}

// Validate rejects settings the simulation cannot run with.
func (c Config) Validate() error {
	if c.GridWidth <= 0 || c.GridHeight <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "grid %dx%d", c.GridWidth, c.GridHeight)
	}
	if c.Grid().Cells() < 1+types.AnswerBlockCount {
		return errors.Wrapf(ErrInvalidConfig, "grid %dx%d is too small for a snake and %d answers",
			c.GridWidth, c.GridHeight, types.AnswerBlockCount)
	}
	if c.CellSize <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "cell size %d", c.CellSize)
	}
	if c.Train < 0 {
		return errors.Wrapf(ErrInvalidConfig, "training episodes %d", c.Train)
	}
	if c.TickInterval < minTickInterval {
		return errors.Wrapf(ErrInvalidConfig, "tick interval %v is below %v", c.TickInterval, minTickInterval)
	}
	return nil
}
