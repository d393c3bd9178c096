package ai

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"math-snake/game"
	"math-snake/game/types"

	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
)

func TestTrainPlaysEveryEpisode(t *testing.T) {
	g, err := game.NewGame(types.Grid{Width: 8, Height: 8}, rand.New(rand.NewSource(5)))
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	pilot := NewAutopilot(rand.New(rand.NewSource(6)))
	dir := t.TempDir()

	summary, err := Train(context.Background(), g, pilot, saveEvery, dir)
	if err != nil {
		t.Fatalf("Train: %v", err)
	}
	if summary.Episodes != saveEvery {
		t.Fatalf("played %d episodes, want %d", summary.Episodes, saveEvery)
	}
	if summary.AverageScore > float64(summary.BestScore) {
		t.Fatalf("average %.1f above best %d", summary.AverageScore, summary.BestScore)
	}
	if len(pilot.QTable) == 0 {
		t.Fatalf("nothing learned")
	}
	if _, err := os.Stat(filepath.Join(dir, qTableFile)); err != nil {
		t.Fatalf("no checkpoint written: %v", err)
	}
}

func TestTrainStopsOnCancel(t *testing.T) {
	g, err := game.NewGame(types.Grid{Width: 8, Height: 8}, rand.New(rand.NewSource(5)))
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := Train(ctx, g, NewAutopilot(nil), 10, "")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if summary.Episodes != 0 {
		t.Fatalf("played %d episodes after cancel", summary.Episodes)
	}
}
