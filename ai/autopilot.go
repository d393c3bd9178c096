// Package ai steers the snake in demo mode with a tabular Q-learning agent.
package ai

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"math-snake/game"
	"math-snake/game/manager"
	"math-snake/game/types"

	"github.com/pkg/errors"
)

const qTableFile = "qtable.json"

// Rand is the randomness the agent explores with.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// State is what the agent sees: the sign of the offset to the correct block
// and which neighbouring cells are deadly.
type State struct {
	TargetDir  [2]int
	Distance   int
	DangerDirs [4]bool // indexed like types.Directions
	Heading    types.Direction
}

// QTable maps a state key to the value of each heading.
type QTable map[string]map[types.Direction]float64

type Autopilot struct {
	QTable       QTable
	LearningRate float64
	Discount     float64
	Epsilon      float64
	TotalReward  float64
	GamesPlayed  int

	rng Rand
}

func NewAutopilot(rng Rand) *Autopilot {
	return &Autopilot{
		QTable:       make(QTable),
		LearningRate: 0.1,
		Discount:     0.9,
		Epsilon:      0.1,
		rng:          rng,
	}
}

// Observe derives the agent state from a snapshot.
func Observe(snap game.Snapshot) State {
	head, ok := snap.Head()
	if !ok {
		return State{}
	}
	s := State{Heading: snap.Direction}
	if target, ok := snap.Correct(); ok {
		s.TargetDir = [2]int{sign(target.Position.X - head.X), sign(target.Position.Y - head.Y)}
		s.Distance = abs(target.Position.X-head.X) + abs(target.Position.Y-head.Y)
	}
	cm := manager.NewCollisionManager(snap.Grid)
	snake := snap.Snake()
	for i, d := range types.Directions {
		s.DangerDirs[i] = cm.IsDanger(head.Add(d.ToPoint()), snake, snap.Blocks)
	}
	return s
}

func (s State) key() string {
	k := fmt.Sprintf("%d,%d|", s.TargetDir[0], s.TargetDir[1])
	for _, d := range s.DangerDirs {
		if d {
			k += "1"
		} else {
			k += "0"
		}
	}
	return k
}

// Choose picks a heading epsilon-greedily. The reversal of the current heading
// is never offered since the snake would ignore it.
func (a *Autopilot) Choose(s State) types.Direction {
	options := make([]types.Direction, 0, len(types.Directions))
	for _, d := range types.Directions {
		if d != s.Heading.Opposite() {
			options = append(options, d)
		}
	}
	if a.rng != nil && a.rng.Float64() < a.Epsilon {
		return options[a.rng.Intn(len(options))]
	}

	values := a.values(s.key())
	best := options[0]
	bestValue := math.Inf(-1)
	for _, d := range options {
		v := values[d]
		if dangerIn(s, d) {
			v -= 1
		}
		if v > bestValue {
			best, bestValue = d, v
		}
	}
	return best
}

func dangerIn(s State, d types.Direction) bool {
	for i, dir := range types.Directions {
		if dir == d {
			return s.DangerDirs[i]
		}
	}
	return false
}

func (a *Autopilot) values(key string) map[types.Direction]float64 {
	if _, exists := a.QTable[key]; !exists {
		a.QTable[key] = make(map[types.Direction]float64, len(types.Directions))
		for _, d := range types.Directions {
			a.QTable[key][d] = 0
		}
	}
	return a.QTable[key]
}

// Reward scores a transition: +1 for a correct answer, -1 for a game over,
// otherwise +0.5 for closing in and -0.3 for drifting away.
func Reward(prev State, res game.TickResult, next State) float64 {
	switch res.Outcome {
	case game.CorrectAnswer:
		return 1.0
	case game.GameOver:
		return -1.0
	}
	switch change := next.Distance - prev.Distance; {
	case change < 0:
		return 0.5
	case change > 0:
		return -0.3
	}
	return 0
}

// Learn applies one Q-learning update and returns the reward used.
func (a *Autopilot) Learn(prev State, action types.Direction, res game.TickResult, next State) float64 {
	reward := Reward(prev, res, next)

	maxNext := 0.0
	if res.Outcome != game.GameOver {
		maxNext = math.Inf(-1)
		for _, v := range a.values(next.key()) {
			maxNext = max(maxNext, v)
		}
	}

	current := a.values(prev.key())
	current[action] += a.LearningRate * (reward + a.Discount*maxNext - current[action])

	a.TotalReward += reward
	if res.Outcome == game.GameOver {
		a.GamesPlayed++
	}
	return reward
}

// Save writes the Q-table into dir.
func (a *Autopilot) Save(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "creating autopilot dir")
	}
	data, err := json.MarshalIndent(a.QTable, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding q-table")
	}
	return errors.Wrap(os.WriteFile(filepath.Join(dir, qTableFile), data, 0o644), "writing q-table")
}

// Load reads a Q-table saved by Save. A missing file leaves the table empty.
func (a *Autopilot) Load(dir string) error {
	data, err := os.ReadFile(filepath.Join(dir, qTableFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrap(err, "reading q-table")
	}
	table := make(QTable)
	if err := json.Unmarshal(data, &table); err != nil {
		return errors.Wrap(err, "decoding q-table")
	}
	a.QTable = table
	return nil
}

func sign(x int) int {
	if x > 0 {
		return 1
	} else if x < 0 {
		return -1
	}
	return 0
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
