package game

import (
	"testing"
	"time"

	"math-snake/game/entity"
	"math-snake/game/manager"
	"math-snake/game/types"

	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
)

type fakeJudge struct {
	calls  int
	answer bool
}

func (j *fakeJudge) IsHighScore(score int) bool {
	j.calls++
	return j.answer
}

func newTestGame(t *testing.T, w, h int, opts ...Option) *Game {
	t.Helper()
	g, err := NewGame(types.Grid{Width: w, Height: h}, rand.New(rand.NewSource(42)), opts...)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	if err := g.Start(w, h); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return g
}

// farBlocks puts every block on the top row, out of the way of a snake in the middle.
func farBlocks(correctAt int) []entity.AnswerBlock {
	blocks := make([]entity.AnswerBlock, types.AnswerBlockCount)
	for i := range blocks {
		blocks[i] = entity.AnswerBlock{Position: types.Point{X: i, Y: 0}, Value: i, IsCorrect: i == correctAt}
	}
	return blocks
}

func checkBlocks(t *testing.T, g *Game) {
	t.Helper()
	blocks := g.Blocks()
	if len(blocks) != types.AnswerBlockCount {
		t.Fatalf("got %d blocks", len(blocks))
	}
	correct := 0
	seen := map[types.Point]bool{}
	for _, b := range blocks {
		if b.IsCorrect {
			correct++
			if b.Value != g.Question().Answer {
				t.Fatalf("correct block value %d != answer %d", b.Value, g.Question().Answer)
			}
		} else if b.Value == g.Question().Answer {
			t.Fatalf("wrong block carries the answer")
		}
		if seen[b.Position] {
			t.Fatalf("blocks overlap at %v", b.Position)
		}
		seen[b.Position] = true
		if g.snake.Occupies(b.Position) {
			t.Fatalf("block %v on snake", b.Position)
		}
		if !g.Grid.Contains(b.Position) {
			t.Fatalf("block %v off grid", b.Position)
		}
	}
	if correct != 1 {
		t.Fatalf("%d correct blocks, want 1", correct)
	}
}

func TestStartInitialState(t *testing.T) {
	g := newTestGame(t, 20, 20)
	if !g.Running() || g.Paused() {
		t.Fatalf("running=%v paused=%v", g.Running(), g.Paused())
	}
	if g.Score() != 0 || g.Round() != 1 {
		t.Fatalf("score=%d round=%d", g.Score(), g.Round())
	}
	if g.snake.Len() != 1 || g.snake.GetHead() != (types.Point{X: 10, Y: 10}) {
		t.Fatalf("snake body %v", g.snake.Body)
	}
	if g.UUID == "" {
		t.Fatalf("expected a run id")
	}
	checkBlocks(t, g)
}

func TestEatingCorrectAnswer(t *testing.T) {
	judge := &fakeJudge{}
	g := newTestGame(t, 20, 20, WithJudge(judge))
	blocks := farBlocks(-1)
	blocks[0] = entity.AnswerBlock{Position: types.Point{X: 11, Y: 10}, Value: g.question.Answer, IsCorrect: true}
	g.blocks = blocks

	res, err := g.Tick()
	if err != nil {
		t.Fatalf("tick: %v", err)
	}
	if res.Outcome != CorrectAnswer || res.Score != 10 || g.Score() != 10 {
		t.Fatalf("unexpected result %+v score %d", res, g.Score())
	}
	if g.Round() != 2 {
		t.Fatalf("question not regenerated, round %d", g.Round())
	}
	if g.snake.GrowthPending != 1 {
		t.Fatalf("growth pending %d", g.snake.GrowthPending)
	}
	checkBlocks(t, g)

	// The tail is kept on the following move.
	g.blocks = farBlocks(0)
	if res, _ := g.Tick(); res.Outcome != Continue {
		t.Fatalf("second tick %+v", res)
	}
	if g.snake.Len() != 2 {
		t.Fatalf("length %d, want 2", g.snake.Len())
	}
	if judge.calls != 0 {
		t.Fatalf("judge consulted without a game over")
	}
}

func TestWallEndsRun(t *testing.T) {
	g := newTestGame(t, 10, 10)
	g.blocks = farBlocks(0)
	g.score = 30
	for i := 0; i < 4; i++ {
		res, err := g.Tick()
		if err != nil || res.Outcome != Continue {
			t.Fatalf("tick %d: %+v %v", i, res, err)
		}
	}
	res, err := g.Tick()
	if err != nil {
		t.Fatalf("tick: %v", err)
	}
	if res.Outcome != GameOver || res.Cause != CauseWall {
		t.Fatalf("expected wall game over, got %+v", res)
	}
	if g.Running() || res.Score != 30 {
		t.Fatalf("running=%v score=%d", g.Running(), res.Score)
	}
	if res, _ := g.Tick(); res.Outcome != Idle {
		t.Fatalf("tick after game over should be idle, got %+v", res)
	}
}

func TestSelfCollisionEndsRun(t *testing.T) {
	g := newTestGame(t, 10, 10)
	g.blocks = farBlocks(0)
	g.snake.Body = []types.Point{{X: 5, Y: 5}, {X: 5, Y: 6}, {X: 6, Y: 6}, {X: 6, Y: 5}, {X: 6, Y: 4}}
	g.snake.Direction = types.Right
	g.snake.PendingDirection = types.Right
	res, _ := g.Tick()
	if res.Outcome != GameOver || res.Cause != CauseSelf {
		t.Fatalf("expected self collision, got %+v", res)
	}
}

func TestWrongAnswerEndsRunAndConsultsJudge(t *testing.T) {
	judge := &fakeJudge{answer: true}
	g := newTestGame(t, 20, 20, WithJudge(judge))
	blocks := farBlocks(0)
	blocks[1].Position = types.Point{X: 11, Y: 10}
	g.blocks = blocks
	res, _ := g.Tick()
	if res.Outcome != GameOver || res.Cause != CauseWrongAnswer {
		t.Fatalf("expected wrong answer game over, got %+v", res)
	}
	if !res.HighScore || judge.calls != 1 {
		t.Fatalf("judge calls=%d highscore=%v", judge.calls, res.HighScore)
	}
}

func TestBoardFullDuringTick(t *testing.T) {
	g := newTestGame(t, 3, 2)
	g.snake.Body = []types.Point{{X: 1, Y: 0}, {X: 0, Y: 0}, {X: 0, Y: 1}}
	g.snake.Direction = types.Right
	g.snake.PendingDirection = types.Right
	g.blocks = []entity.AnswerBlock{
		{Position: types.Point{X: 2, Y: 0}, IsCorrect: true},
		{Position: types.Point{X: 1, Y: 1}},
		{Position: types.Point{X: 2, Y: 1}},
	}
	res, err := g.Tick()
	if !errors.Is(err, manager.ErrBoardFull) {
		t.Fatalf("expected ErrBoardFull, got %v", err)
	}
	if res.Outcome != GameOver || res.Cause != CauseBoardFull || g.Running() {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestPauseIsIdempotent(t *testing.T) {
	g := newTestGame(t, 20, 20)
	g.Pause()
	snap := g.Snapshot()
	g.Pause()
	if !g.Paused() {
		t.Fatalf("expected paused")
	}
	after := g.Snapshot()
	if after.Round != snap.Round || after.Body[0] != snap.Body[0] || after.Score != snap.Score {
		t.Fatalf("second pause changed state")
	}
	if res, _ := g.Tick(); res.Outcome != Idle {
		t.Fatalf("paused tick should be idle")
	}
	if g.snake.GetHead() != snap.Body[0] {
		t.Fatalf("snake moved while paused")
	}
	g.Resume()
	if g.Paused() {
		t.Fatalf("expected resumed")
	}
	g.TogglePause()
	if !g.Paused() {
		t.Fatalf("toggle should pause")
	}
}

func TestChangeDirection(t *testing.T) {
	g, err := NewGame(types.Grid{Width: 20, Height: 20}, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	if g.ChangeDirection(types.Up) {
		t.Fatalf("direction change before start should be ignored")
	}
	if err := g.Start(20, 20); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if g.ChangeDirection(types.Left) {
		t.Fatalf("reversal accepted")
	}
	if g.snake.PendingDirection != types.Right {
		t.Fatalf("pending changed to %v", g.snake.PendingDirection)
	}
	if !g.ChangeDirection(types.Down) || g.snake.PendingDirection != types.Down {
		t.Fatalf("down rejected")
	}
}

func TestRestart(t *testing.T) {
	g, err := NewGame(types.Grid{Width: 20, Height: 20}, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	if err := g.Restart(); !errors.Is(err, ErrNotStarted) {
		t.Fatalf("expected ErrNotStarted, got %v", err)
	}
	if err := g.Start(20, 20); err != nil {
		t.Fatalf("Start: %v", err)
	}
	id := g.UUID
	g.score = 50
	g.Pause()
	if err := g.Restart(); err != nil {
		t.Fatalf("Restart: %v", err)
	}
	if g.Score() != 0 || !g.Running() || g.Paused() || g.UUID == id || g.snake.Len() != 1 {
		t.Fatalf("restart did not reset: score=%d running=%v paused=%v", g.Score(), g.Running(), g.Paused())
	}
}

func TestGridTooSmall(t *testing.T) {
	if _, err := NewGame(types.Grid{Width: 2, Height: 2}, rand.New(rand.NewSource(1))); !errors.Is(err, manager.ErrBoardFull) {
		t.Fatalf("expected ErrBoardFull, got %v", err)
	}
	g := newTestGame(t, 10, 10)
	if err := g.Start(0, 10); !errors.Is(err, manager.ErrBoardFull) {
		t.Fatalf("expected ErrBoardFull, got %v", err)
	}
}

func TestElapsedUsesClock(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	g := newTestGame(t, 10, 10, WithClock(func() time.Time { return now }))
	g.blocks = farBlocks(0)
	now = now.Add(3 * time.Second)
	if g.Elapsed() != 3*time.Second {
		t.Fatalf("elapsed %v", g.Elapsed())
	}
	g.snake.Body[0] = types.Point{X: 9, Y: 5}
	g.Tick()
	now = now.Add(time.Hour)
	if g.Elapsed() != 3*time.Second {
		t.Fatalf("elapsed after end %v", g.Elapsed())
	}
}

func TestRandomPlayKeepsInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for run := 0; run < 50; run++ {
		g, err := NewGame(types.Grid{Width: 12, Height: 12}, rand.New(rand.NewSource(uint64(run))))
		if err != nil {
			t.Fatalf("NewGame: %v", err)
		}
		if err := g.Start(12, 12); err != nil {
			t.Fatalf("Start: %v", err)
		}
		for step := 0; step < 500 && g.Running(); step++ {
			g.ChangeDirection(types.Directions[rng.Intn(4)])
			length, pending := g.snake.Len(), g.snake.GrowthPending
			res, err := g.Tick()
			if err != nil {
				t.Fatalf("tick: %v", err)
			}
			if res.Outcome == GameOver {
				break
			}
			want := length
			if pending > 0 {
				want++
			}
			if g.snake.Len() != want {
				t.Fatalf("length %d, want %d", g.snake.Len(), want)
			}
			checkBlocks(t, g)
		}
	}
}
