package game

import (
	"math-snake/game/entity"
	"math-snake/game/types"
)

// Snapshot is a read-only copy of the state a renderer or agent needs.
type Snapshot struct {
	ID            string
	Grid          types.Grid
	Body          []types.Point
	Direction     types.Direction
	Pending       types.Direction // heading applied on the next move
	GrowthPending int
	Question      entity.Question
	Blocks        []entity.AnswerBlock
	Score         int
	Solved        int
	Round         int
	Running       bool
	Paused        bool
	Started       bool
}

func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		ID:       g.UUID,
		Grid:     g.Grid,
		Question: g.question,
		Blocks:   g.Blocks(),
		Score:    g.score,
		Solved:   g.solved,
		Round:    g.round,
		Running:  g.running,
		Paused:   g.paused,
		Started:  g.started,
	}
	if g.snake != nil {
		snap.Body = g.snake.Segments()
		snap.Direction = g.snake.Direction
		snap.Pending = g.snake.PendingDirection
		snap.GrowthPending = g.snake.GrowthPending
	}
	return snap
}

// Head returns the head cell, false before the first Start.
func (s Snapshot) Head() (types.Point, bool) {
	if len(s.Body) == 0 {
		return types.Point{}, false
	}
	return s.Body[0], true
}

// Correct returns the block holding the right answer.
func (s Snapshot) Correct() (entity.AnswerBlock, bool) {
	for _, b := range s.Blocks {
		if b.IsCorrect {
			return b, true
		}
	}
	return entity.AnswerBlock{}, false
}

// Snake rebuilds a detached snake for collision queries.
func (s Snapshot) Snake() *entity.Snake {
	return &entity.Snake{
		Body:             s.Body,
		Direction:        s.Direction,
		PendingDirection: s.Pending,
		GrowthPending:    s.GrowthPending,
	}
}
