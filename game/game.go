package game

import (
	"time"

	"math-snake/game/entity"
	"math-snake/game/manager"
	"math-snake/game/types"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrNotStarted is returned by Restart before any Start has fixed a grid.
var ErrNotStarted = errors.New("game has not been started")

// HighScoreJudge decides whether a final score enters the leaderboard.
type HighScoreJudge interface {
	IsHighScore(score int) bool
}

type Option func(*Game)

// WithJudge consults j once per game over.
func WithJudge(j HighScoreJudge) Option {
	return func(g *Game) { g.judge = j }
}

// WithClock replaces time.Now for start and end timestamps.
func WithClock(now func() time.Time) Option {
	return func(g *Game) { g.now = now }
}

// Game is one math-snake simulation. It performs no locking: callers must
// not overlap Tick with any other method.
type Game struct {
	UUID      string
	Grid      types.Grid
	StartTime time.Time
	EndTime   time.Time

	rng   types.Rand
	judge HighScoreJudge
	now   func() time.Time

	questions  *manager.QuestionManager
	placer     *manager.PlacementManager
	collisions *manager.CollisionManager

	snake    *entity.Snake
	question entity.Question
	blocks   []entity.AnswerBlock

	score   int
	solved  int
	round   int
	running bool
	paused  bool
	started bool
}

func NewGame(grid types.Grid, rng types.Rand, opts ...Option) (*Game, error) {
	if err := checkGrid(grid); err != nil {
		return nil, err
	}
	g := &Game{
		Grid:      grid,
		rng:       rng,
		now:       time.Now,
		questions: manager.NewQuestionManager(rng),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

func checkGrid(grid types.Grid) error {
	if grid.Width <= 0 || grid.Height <= 0 {
		return errors.Wrapf(manager.ErrBoardFull, "grid %dx%d has no cells", grid.Width, grid.Height)
	}
	if grid.Cells() < 1+types.AnswerBlockCount {
		return errors.Wrapf(manager.ErrBoardFull, "grid %dx%d cannot hold a snake and %d answers",
			grid.Width, grid.Height, types.AnswerBlockCount)
	}
	return nil
}

// Start begins a fresh run on a width x height grid.
func (g *Game) Start(width, height int) error {
	grid := types.Grid{Width: width, Height: height}
	if err := checkGrid(grid); err != nil {
		return err
	}
	g.Grid = grid
	g.placer = manager.NewPlacementManager(grid, g.rng)
	g.collisions = manager.NewCollisionManager(grid)

	g.UUID = uuid.New().String()
	g.StartTime = g.now()
	g.EndTime = time.Time{}
	g.snake = entity.NewSnake(grid.Center())
	g.score = 0
	g.solved = 0
	g.round = 0
	g.started = true
	g.running = false
	g.paused = false

	if err := g.newQuestion(); err != nil {
		return err
	}
	g.running = true
	return nil
}

// Restart abandons the current run without a game over and starts again on the same grid.
func (g *Game) Restart() error {
	if !g.started {
		return ErrNotStarted
	}
	g.running = false
	return g.Start(g.Grid.Width, g.Grid.Height)
}

// Tick advances the snake one cell and applies the collision rules in order:
// wall, own body, answer block.
func (g *Game) Tick() (TickResult, error) {
	if !g.running || g.paused {
		return TickResult{Outcome: Idle, Score: g.score}, nil
	}

	g.snake.Move()

	collision, _ := g.collisions.CheckCollision(g.snake, g.blocks)
	switch collision {
	case manager.WallCollision:
		return g.end(CauseWall), nil
	case manager.SelfCollision:
		return g.end(CauseSelf), nil
	case manager.WrongAnswerCollision:
		return g.end(CauseWrongAnswer), nil
	case manager.CorrectAnswerCollision:
		g.score += types.PointsPerAnswer
		g.solved++
		g.snake.Grow()
		if err := g.newQuestion(); err != nil {
			return g.end(CauseBoardFull), err
		}
		return TickResult{Outcome: CorrectAnswer, Score: g.score}, nil
	}
	return TickResult{Outcome: Continue, Score: g.score}, nil
}

func (g *Game) end(cause Cause) TickResult {
	g.running = false
	g.paused = false
	g.EndTime = g.now()
	res := TickResult{Outcome: GameOver, Cause: cause, Score: g.score}
	if g.judge != nil {
		res.HighScore = g.judge.IsHighScore(g.score)
	}
	return res
}

// newQuestion replaces the question and all four blocks. Blocks avoid the
// current body.
func (g *Game) newQuestion() error {
	q := g.questions.GenerateRandomQuestion()
	wrong, err := g.questions.GenerateWrongOptions(q.Answer, types.WrongOptionCount)
	if err != nil {
		return err
	}
	values := append([]int{q.Answer}, wrong...)
	g.questions.Shuffle(values)

	cells, err := g.placer.Place(len(values), g.snake.Body)
	if err != nil {
		return errors.Wrap(err, "placing answer blocks")
	}

	blocks := make([]entity.AnswerBlock, len(values))
	for i, v := range values {
		blocks[i] = entity.AnswerBlock{
			Position:  cells[i],
			Value:     v,
			IsCorrect: v == q.Answer,
		}
	}
	g.question = q
	g.blocks = blocks
	g.round++
	return nil
}

// ChangeDirection queues a heading for the next tick. It reports false when
// the game is not running or the change reverses the applied heading.
func (g *Game) ChangeDirection(dir types.Direction) bool {
	if !g.running {
		return false
	}
	return g.snake.SetDirection(dir)
}

func (g *Game) Pause() {
	if g.running {
		g.paused = true
	}
}

func (g *Game) Resume() {
	if g.running {
		g.paused = false
	}
}

func (g *Game) TogglePause() {
	if g.paused {
		g.Resume()
	} else {
		g.Pause()
	}
}

// ID is the current run's UUID.
func (g *Game) ID() string { return g.UUID }

func (g *Game) Score() int { return g.score }
func (g *Game) Solved() int { return g.solved }
func (g *Game) Running() bool { return g.running }
func (g *Game) Paused() bool { return g.paused }
func (g *Game) Started() bool { return g.started }
func (g *Game) Question() entity.Question { return g.question }
func (g *Game) Round() int { return g.round }

// Blocks returns a copy of the current answer blocks.
func (g *Game) Blocks() []entity.AnswerBlock {
	blocks := make([]entity.AnswerBlock, len(g.blocks))
	copy(blocks, g.blocks)
	return blocks
}

// Elapsed is the run duration so far, or the final duration once over.
func (g *Game) Elapsed() time.Duration {
	if !g.started {
		return 0
	}
	if g.running {
		return g.now().Sub(g.StartTime)
	}
	return g.EndTime.Sub(g.StartTime)
}
