package ui

import (
	"math-snake/app"
	"math-snake/input"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var keyCommands = []struct {
	key int32
	cmd input.Command
}{
	{rl.KeyUp, input.MoveUp},
	{rl.KeyW, input.MoveUp},
	{rl.KeyDown, input.MoveDown},
	{rl.KeyS, input.MoveDown},
	{rl.KeyLeft, input.MoveLeft},
	{rl.KeyA, input.MoveLeft},
	{rl.KeyRight, input.MoveRight},
	{rl.KeyD, input.MoveRight},
	{rl.KeySpace, input.TogglePause},
	{rl.KeyP, input.TogglePause},
	{rl.KeyEnter, input.Confirm},
	{rl.KeyR, input.Restart},
	{rl.KeyL, input.ShowLeaderboard},
	{rl.KeyC, input.ClearLeaderboard},
	{rl.KeyEscape, input.Cancel},
	{rl.KeyQ, input.Quit},
}

// Input turns raylib key and pointer state into shell commands. A press and
// release travelling past the swipe threshold steers; a short one clicks.
type Input struct {
	renderer *Renderer
	pressed  bool
	start    rl.Vector2
}

func NewInput(r *Renderer) *Input {
	return &Input{renderer: r}
}

func (in *Input) Poll(s *app.Shell) {
	if s.Screen == app.NameEntryScreen {
		in.pollName(s)
	} else {
		for _, kc := range keyCommands {
			if rl.IsKeyPressed(kc.key) {
				s.Handle(kc.cmd, input.Keyboard)
			}
		}
	}
	in.pollPointer(s)
}

func (in *Input) pollName(s *app.Shell) {
	for r := rl.GetCharPressed(); r > 0; r = rl.GetCharPressed() {
		s.TypeRune(rune(r))
	}
	if rl.IsKeyPressed(rl.KeyBackspace) {
		s.Backspace()
	}
	if rl.IsKeyPressed(rl.KeyEnter) {
		s.Handle(input.Confirm, input.Keyboard)
	}
	if rl.IsKeyPressed(rl.KeyEscape) {
		s.Handle(input.Cancel, input.Keyboard)
	}
}

func (in *Input) pollPointer(s *app.Shell) {
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		in.pressed = true
		in.start = rl.GetMousePosition()
		return
	}
	if !in.pressed || !rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		return
	}
	in.pressed = false
	end := rl.GetMousePosition()
	if dir, ok := input.Swipe(end.X-in.start.X, end.Y-in.start.Y); ok {
		s.Handle(input.FromDirection(dir), input.Touch)
		return
	}
	for _, b := range in.renderer.buttons {
		if rl.CheckCollisionPointRec(end, b.rect) {
			s.Handle(b.cmd, input.Button)
			return
		}
	}
}
