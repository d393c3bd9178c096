// Package app drives a game session independently of how it is drawn:
// screens, name entry, leaderboard and stats bookkeeping, sounds and the
// autopilot. Frontends translate device input into calls on Shell and render
// what it exposes.
package app

import (
	"log"
	"time"
	"unicode"

	"math-snake/ai"
	"math-snake/game"
	"math-snake/input"
	"math-snake/leaderboard"
	"math-snake/stats"
)

// Screen is what the frontend should be showing.
type Screen int

const (
	TitleScreen Screen = iota
	PlayingScreen
	NameEntryScreen
	GameOverScreen
	LeaderboardScreen
)

// Board is the leaderboard the shell reads and writes.
type Board interface {
	IsHighScore(score int) bool
	SaveScore(name string, score int) (leaderboard.Entry, error)
	Leaderboard() []leaderboard.Entry
	HighScore() int
	Clear() error
}

// Sounds receives cue requests. audio.Player implements it.
type Sounds interface {
	Correct()
	GameOver()
	HighScore()
}

type nopSounds struct{}

func (nopSounds) Correct()   {}
func (nopSounds) GameOver()  {}
func (nopSounds) HighScore() {}

type Option func(*Shell)

func WithHistory(h *stats.History) Option {
	return func(s *Shell) { s.history = h }
}

func WithSounds(snd Sounds) Option {
	return func(s *Shell) { s.sounds = snd }
}

// WithAutopilot lets pilot steer and persists its table in dir.
func WithAutopilot(pilot *ai.Autopilot, dir string) Option {
	return func(s *Shell) {
		s.pilot = pilot
		s.pilotDir = dir
	}
}

func WithVerbose(v bool) Option {
	return func(s *Shell) { s.verbose = v }
}

// WithClock sets the time source used to start the tick schedule.
func WithClock(now func() time.Time) Option {
	return func(s *Shell) { s.now = now }
}

// Shell owns one Game. All methods must be called from a single goroutine.
type Shell struct {
	Game       *game.Game
	Screen     Screen
	Name       string // name typed on the name-entry screen
	LastResult game.TickResult
	HighScore  int

	// ConfirmClear is set while the leaderboard screen asks before wiping scores.
	ConfirmClear bool

	board     Board
	history   *stats.History
	sounds    Sounds
	pilot     *ai.Autopilot
	pilotDir  string
	scheduler *game.Scheduler
	now       func() time.Time
	verbose   bool
	quit      bool
}

func New(g *game.Game, board Board, interval time.Duration, opts ...Option) *Shell {
	s := &Shell{
		Game:      g,
		Screen:    TitleScreen,
		board:     board,
		sounds:    nopSounds{},
		scheduler: game.NewScheduler(interval),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.HighScore = board.HighScore()
	return s
}

// Quit reports whether the player asked to leave.
func (s *Shell) Quit() bool {
	return s.quit
}

// Autopilot reports whether the agent is steering.
func (s *Shell) Autopilot() bool {
	return s.pilot != nil
}

func (s *Shell) Leaderboard() []leaderboard.Entry {
	return s.board.Leaderboard()
}

func (s *Shell) History() *stats.History {
	return s.history
}

// Handle applies a device-independent command to the current screen.
func (s *Shell) Handle(cmd input.Command, src input.Source) {
	if cmd == input.Quit {
		s.quit = true
		return
	}
	switch s.Screen {
	case TitleScreen:
		switch cmd {
		case input.Start, input.Confirm, input.Restart:
			s.start()
		case input.ShowLeaderboard:
			s.Screen = LeaderboardScreen
		}
	case PlayingScreen:
		if cmd == input.Restart {
			s.start()
			return
		}
		if s.pilot != nil {
			if _, steering := cmd.Direction(); steering {
				return
			}
		}
		input.Dispatch(s.Game, cmd, src)
	case NameEntryScreen:
		switch cmd {
		case input.Confirm:
			s.Submit()
		case input.Cancel:
			s.Skip()
		}
	case GameOverScreen:
		switch cmd {
		case input.Restart, input.Start, input.Confirm:
			s.start()
		case input.ShowLeaderboard:
			s.Screen = LeaderboardScreen
		}
	case LeaderboardScreen:
		if s.ConfirmClear {
			s.ConfirmClear = false
			if cmd == input.Confirm || cmd == input.ClearLeaderboard {
				s.ClearLeaderboard()
			}
			return
		}
		switch cmd {
		case input.Restart, input.Start:
			s.start()
		case input.ClearLeaderboard:
			s.ConfirmClear = true
		case input.Cancel, input.Confirm, input.ShowLeaderboard:
			s.Screen = TitleScreen
		}
	}
}

func (s *Shell) start() {
	var err error
	if s.Game.Started() {
		err = s.Game.Restart()
	} else {
		err = s.Game.Start(s.Game.Grid.Width, s.Game.Grid.Height)
	}
	if err != nil {
		log.Printf("game: cannot start: %v", err)
		s.quit = true
		return
	}
	s.Name = ""
	s.ConfirmClear = false
	s.LastResult = game.TickResult{}
	s.Screen = PlayingScreen
	s.scheduler.Reset(s.now())
}

// Update runs a tick when one is due at now.
func (s *Shell) Update(now time.Time) (game.TickResult, bool) {
	if s.Screen != PlayingScreen {
		return game.TickResult{}, false
	}
	if !s.scheduler.Due(now, s.Game.Paused()) {
		return game.TickResult{}, false
	}
	return s.Step(), true
}

// Step advances the game one tick and reacts to the outcome.
func (s *Shell) Step() game.TickResult {
	var prev ai.State
	action := s.Game.Snapshot().Direction
	if s.pilot != nil && s.Game.Running() && !s.Game.Paused() {
		prev = ai.Observe(s.Game.Snapshot())
		action = s.pilot.Choose(prev)
		s.Game.ChangeDirection(action)
	}

	res, err := s.Game.Tick()
	if err != nil {
		log.Printf("game: %v", err)
	}
	if s.pilot != nil && res.Outcome != game.Idle {
		s.pilot.Learn(prev, action, res, ai.Observe(s.Game.Snapshot()))
	}
	s.LastResult = res

	switch res.Outcome {
	case game.CorrectAnswer:
		s.sounds.Correct()
	case game.GameOver:
		s.gameOver(res)
	}
	return res
}

func (s *Shell) gameOver(res game.TickResult) {
	s.sounds.GameOver()
	s.record(res)

	if s.pilot != nil {
		if s.pilot.GamesPlayed%10 == 0 {
			if err := s.pilot.Save(s.pilotDir); err != nil {
				log.Printf("autopilot: %v", err)
			}
		}
		s.start()
		return
	}
	if res.HighScore {
		s.sounds.HighScore()
		s.Screen = NameEntryScreen
		return
	}
	s.Screen = GameOverScreen
}

func (s *Shell) record(res game.TickResult) {
	if s.history == nil {
		return
	}
	rec := s.history.AddGame(stats.Run{
		ID:        s.Game.UUID,
		Score:     res.Score,
		Solved:    s.Game.Solved(),
		Cause:     res.Cause.String(),
		StartTime: s.Game.StartTime,
		EndTime:   s.Game.EndTime,
	})
	if err := s.history.Save(); err != nil {
		log.Printf("stats: %v", err)
	}
	if s.verbose {
		log.Printf("game %s over (%s): score %d, %d solved, %.1fs; %d games, avg %.1f",
			rec.ID, rec.Cause, rec.Score, rec.Solved, rec.AverageDuration,
			s.history.GamesPlayed(), s.history.AverageScore())
	}
}

// TypeRune appends r to the name being entered.
func (s *Shell) TypeRune(r rune) {
	if s.Screen != NameEntryScreen || len([]rune(s.Name)) >= leaderboard.MaxNameLength {
		return
	}
	if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '_' || r == '-' {
		s.Name += string(r)
	}
}

func (s *Shell) Backspace() {
	if rs := []rune(s.Name); s.Screen == NameEntryScreen && len(rs) > 0 {
		s.Name = string(rs[:len(rs)-1])
	}
}

// Submit saves the final score under the typed name and shows the leaderboard.
func (s *Shell) Submit() {
	if s.Screen != NameEntryScreen {
		return
	}
	if _, err := s.board.SaveScore(s.Name, s.Game.Score()); err != nil {
		log.Printf("leaderboard: %v", err)
	}
	s.HighScore = s.board.HighScore()
	s.Screen = LeaderboardScreen
}

// Skip leaves the name-entry screen without saving.
func (s *Shell) Skip() {
	if s.Screen == NameEntryScreen {
		s.Screen = LeaderboardScreen
	}
}

// ClearLeaderboard wipes every saved score without asking.
func (s *Shell) ClearLeaderboard() {
	if err := s.board.Clear(); err != nil {
		log.Printf("leaderboard: %v", err)
	}
	s.HighScore = 0
}
