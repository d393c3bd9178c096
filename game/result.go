package game

// Outcome is what a Tick did.
type Outcome int

const (
	Idle          Outcome = iota // not running or paused
	Continue                     // moved, nothing hit
	CorrectAnswer                // ate the correct block
	GameOver                     // run ended
)

func (o Outcome) String() string {
	switch o {
	case Continue:
		return "continue"
	case CorrectAnswer:
		return "correct answer"
	case GameOver:
		return "game over"
	default:
		return "idle"
	}
}

// Cause explains a GameOver.
type Cause int

const (
	CauseNone Cause = iota
	CauseWall
	CauseSelf
	CauseWrongAnswer
	CauseBoardFull
)

func (c Cause) String() string {
	switch c {
	case CauseWall:
		return "wall"
	case CauseSelf:
		return "self"
	case CauseWrongAnswer:
		return "wrong answer"
	case CauseBoardFull:
		return "board full"
	default:
		return "none"
	}
}

// TickResult is returned from every Tick for the presentation layer to interpret.
type TickResult struct {
	Outcome   Outcome
	Cause     Cause
	Score     int
	HighScore bool // only meaningful on GameOver
}
