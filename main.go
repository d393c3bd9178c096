package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"math-snake/ai"
	"math-snake/app"
	"math-snake/audio"
	"math-snake/config"
	"math-snake/game"
	"math-snake/leaderboard"
	"math-snake/stats"
	"math-snake/tui"
	"math-snake/ui"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/exp/rand"
)

func main() {
	cfg := config.Default()
	cfg.BindFlags(flag.CommandLine)
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewSource(seed))

	dataDir := cfg.DataDir
	if dataDir == "" {
		dir, err := leaderboard.ConfigDir()
		if err != nil {
			log.Fatal(err)
		}
		dataDir = dir
	}

	pilotDir := filepath.Join(dataDir, "autopilot")
	if cfg.Train > 0 {
		train(cfg, rng, seed, pilotDir)
		return
	}

	store, err := leaderboard.NewStore(dataDir)
	if err != nil {
		log.Fatal(err)
	}
	history, err := stats.NewHistory(dataDir)
	if err != nil {
		log.Printf("stats: %v", err)
	}

	g, err := game.NewGame(cfg.Grid(), rng, game.WithJudge(store))
	if err != nil {
		log.Fatal(err)
	}

	opts := []app.Option{app.WithHistory(history), app.WithVerbose(cfg.Verbose)}
	if !cfg.Mute {
		player := audio.NewPlayer()
		if err := player.Init(); err != nil {
			// Non-fatal, the game runs without sound
			log.Printf("audio: %v", err)
		}
		defer player.Close()
		opts = append(opts, app.WithSounds(player))
	}

	var pilot *ai.Autopilot
	if cfg.Autopilot {
		pilot = ai.NewAutopilot(rand.New(rand.NewSource(seed + 1)))
		if err := pilot.Load(pilotDir); err != nil {
			log.Printf("autopilot: %v", err)
		}
		opts = append(opts, app.WithAutopilot(pilot, pilotDir))
	}

	shell := app.New(g, store, cfg.TickInterval, opts...)
	if cfg.Verbose {
		log.Printf("seed %d, data in %s", seed, dataDir)
	}

	if cfg.Terminal {
		screen, err := tcell.NewScreen()
		if err != nil {
			log.Fatal(err)
		}
		if err := tui.Run(screen, shell, rng); err != nil {
			log.Fatal(err)
		}
	} else {
		ui.Run(shell, cfg.CellSize, rng)
	}

	if pilot != nil {
		if err := pilot.Save(pilotDir); err != nil {
			log.Printf("autopilot: %v", err)
		}
	}
	if err := history.Save(); err != nil {
		log.Printf("stats: %v", err)
	}
}

// train runs the autopilot headless and saves what it learned.
func train(cfg config.Config, rng *rand.Rand, seed uint64, dir string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	g, err := game.NewGame(cfg.Grid(), rng)
	if err != nil {
		log.Fatal(err)
	}
	pilot := ai.NewAutopilot(rand.New(rand.NewSource(seed + 1)))
	if err := pilot.Load(dir); err != nil {
		log.Printf("autopilot: %v", err)
	}

	start := time.Now()
	summary, err := ai.Train(ctx, g, pilot, cfg.Train, dir)
	if err != nil {
		log.Printf("training stopped: %v", err)
	}
	log.Printf("trained %d games in %v: best %d, average %.2f, reward %.1f",
		summary.Episodes, time.Since(start).Round(time.Millisecond),
		summary.BestScore, summary.AverageScore, summary.TotalReward)

	if err := pilot.Save(dir); err != nil {
		log.Fatal(err)
	}
}
