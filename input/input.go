// Package input turns keyboard, swipe and on-screen button events into game commands.
package input

import (
	"math-snake/game"
	"math-snake/game/types"
)

// SwipeThreshold is the minimum travel, in pixels, along the dominant axis.
const SwipeThreshold = 20

// Command is a player intent independent of the device that produced it.
type Command int

const (
	None Command = iota
	MoveUp
	MoveDown
	MoveLeft
	MoveRight
	TogglePause
	Start
	Restart
	ShowLeaderboard
	ClearLeaderboard
	Confirm
	Cancel
	Quit
)

// Source tells Dispatch where a command came from.
type Source int

const (
	Keyboard Source = iota
	Touch           // swipe gesture
	Button          // on-screen d-pad
)

// Direction maps a movement command to its heading.
func (c Command) Direction() (types.Direction, bool) {
	switch c {
	case MoveUp:
		return types.Up, true
	case MoveDown:
		return types.Down, true
	case MoveLeft:
		return types.Left, true
	case MoveRight:
		return types.Right, true
	default:
		return types.None, false
	}
}

// FromDirection is the inverse of Command.Direction.
func FromDirection(d types.Direction) Command {
	switch d {
	case types.Up:
		return MoveUp
	case types.Down:
		return MoveDown
	case types.Left:
		return MoveLeft
	case types.Right:
		return MoveRight
	default:
		return None
	}
}

// Swipe classifies a touch drag of (dx, dy) pixels. The larger axis wins and
// travel must exceed SwipeThreshold.
func Swipe(dx, dy float32) (types.Direction, bool) {
	if abs(dx) > abs(dy) {
		switch {
		case dx > SwipeThreshold:
			return types.Right, true
		case dx < -SwipeThreshold:
			return types.Left, true
		}
		return types.None, false
	}
	switch {
	case dy > SwipeThreshold:
		return types.Down, true
	case dy < -SwipeThreshold:
		return types.Up, true
	}
	return types.None, false
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// Dispatch applies in-game commands to g and reports whether g accepted one.
// Swipes and buttons are ignored while paused; keys are not.
func Dispatch(g *game.Game, cmd Command, src Source) bool {
	if dir, ok := cmd.Direction(); ok {
		if src != Keyboard && g.Paused() {
			return false
		}
		return g.ChangeDirection(dir)
	}
	switch cmd {
	case TogglePause:
		if !g.Running() {
			return false
		}
		g.TogglePause()
		return true
	case Restart:
		return g.Restart() == nil
	}
	return false
}
