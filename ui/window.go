package ui

import (
	"time"

	"math-snake/app"

	rl "github.com/gen2brain/raylib-go/raylib"
	"golang.org/x/exp/rand"
)

// Run opens a window sized for the grid and drives s until the window closes
// or the player quits.
func Run(s *app.Shell, cellSize int, rng *rand.Rand) {
	width := int32(s.Game.Grid.Width*cellSize + 2*borderPadding + panelWidth)
	height := int32(s.Game.Grid.Height*cellSize + 2*borderPadding)

	rl.InitWindow(width, height, "Math Snake")
	rl.SetWindowState(rl.FlagWindowResizable)
	rl.SetWindowMinSize(panelWidth+200, 300)
	defer rl.CloseWindow()

	rl.SetExitKey(rl.KeyNull)
	rl.SetTargetFPS(60)

	renderer := NewRenderer(rng)
	in := NewInput(renderer)
	for !rl.WindowShouldClose() && !s.Quit() {
		if rl.IsWindowResized() {
			renderer.UpdateDimensions()
		}
		in.Poll(s)
		s.Update(time.Now())
		renderer.Draw(s)
	}
}
