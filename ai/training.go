package ai

import (
	"context"
	"log"

	"math-snake/game"
)

const saveEvery = 500 // episodes between Q-table checkpoints

// TrainingSummary describes a headless training session.
type TrainingSummary struct {
	Episodes     int
	BestScore    int
	AverageScore float64
	TotalReward  float64
}

// Train plays episodes games on g without rendering, learning after every
// tick. An episode that goes stallLimit ticks without a correct answer is
// abandoned so a circling agent cannot stall training. When dir is not empty
// the Q-table is checkpointed there. Cancelling ctx stops after the current
// tick.
func Train(ctx context.Context, g *game.Game, pilot *Autopilot, episodes int, dir string) (TrainingSummary, error) {
	var summary TrainingSummary
	stallLimit := 2 * g.Grid.Cells()
	totalScore := 0

	for episode := 0; episode < episodes; episode++ {
		if err := g.Start(g.Grid.Width, g.Grid.Height); err != nil {
			return summary, err
		}
		stalled := 0
		for g.Running() && stalled < stallLimit {
			if err := ctx.Err(); err != nil {
				return summary, err
			}
			prev := Observe(g.Snapshot())
			action := pilot.Choose(prev)
			g.ChangeDirection(action)
			res, err := g.Tick()
			if err != nil {
				log.Printf("training: %v", err)
			}
			summary.TotalReward += pilot.Learn(prev, action, res, Observe(g.Snapshot()))
			if res.Outcome == game.CorrectAnswer {
				stalled = 0
			} else {
				stalled++
			}
		}

		summary.Episodes++
		totalScore += g.Score()
		summary.BestScore = max(summary.BestScore, g.Score())
		summary.AverageScore = float64(totalScore) / float64(summary.Episodes)

		if dir != "" && summary.Episodes%saveEvery == 0 {
			if err := pilot.Save(dir); err != nil {
				log.Printf("training: checkpoint at episode %d: %v", summary.Episodes, err)
			}
		}
	}
	return summary, nil
}
