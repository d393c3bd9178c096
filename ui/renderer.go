// Package ui is the raylib window frontend.
package ui

import (
	"fmt"

	"math-snake/app"
	"math-snake/game"
	"math-snake/game/types"
	"math-snake/input"

	rl "github.com/gen2brain/raylib-go/raylib"
	"golang.org/x/exp/rand"
)

const (
	borderPadding = 10
	panelWidth    = 240
	maxGraphRuns  = 100 // most recent runs plotted in the performance graph
)

// blockPalette is shuffled every question so colours carry no hint.
var blockPalette = []uint32{0x95E1D3, 0xFF8B94, 0xA8D8EA, 0xFFD93D, 0x6BCB77, 0xFF6B6B}

var (
	background = hex(0x1A1A2E)
	gridLine   = hex(0x2A2A40)
	snakeBody  = hex(0x4ECCA3)
	snakeHead  = hex(0x2E8B6E)
	panelColor = hex(0x16213E)
)

func hex(v uint32) rl.Color {
	return rl.NewColor(uint8(v>>16), uint8(v>>8), uint8(v), 255)
}

type button struct {
	label string
	rect  rl.Rectangle
	cmd   input.Command
}

type Renderer struct {
	cellSize        int32
	screenWidth     int32
	screenHeight    int32
	gameWidth       int32
	totalGridWidth  int32
	totalGridHeight int32
	offsetX         int32
	offsetY         int32

	rng     *rand.Rand
	round   int
	palette []rl.Color
	buttons []button
}

func NewRenderer(rng *rand.Rand) *Renderer {
	r := &Renderer{rng: rng, round: -1}
	r.UpdateDimensions()
	return r
}

func (r *Renderer) UpdateDimensions() {
	r.screenWidth = int32(rl.GetScreenWidth())
	r.screenHeight = int32(rl.GetScreenHeight())
	r.gameWidth = r.screenWidth - panelWidth
}

// layout fits the grid into the area left of the panel.
func (r *Renderer) layout(grid types.Grid) {
	availableWidth := r.gameWidth - borderPadding*2
	availableHeight := r.screenHeight - borderPadding*2
	r.cellSize = max(1, min(availableWidth/int32(grid.Width), availableHeight/int32(grid.Height)))
	r.totalGridWidth = r.cellSize * int32(grid.Width)
	r.totalGridHeight = r.cellSize * int32(grid.Height)
	r.offsetX = borderPadding + (availableWidth-r.totalGridWidth)/2
	r.offsetY = (r.screenHeight - r.totalGridHeight) / 2
}

func (r *Renderer) shufflePalette(round int) {
	if round == r.round && r.palette != nil {
		return
	}
	r.round = round
	r.palette = r.palette[:0]
	for _, v := range blockPalette {
		r.palette = append(r.palette, hex(v))
	}
	if r.rng != nil {
		r.rng.Shuffle(len(r.palette), func(i, j int) {
			r.palette[i], r.palette[j] = r.palette[j], r.palette[i]
		})
	}
}

func (r *Renderer) cellRect(p types.Point) (int32, int32) {
	return r.offsetX + int32(p.X)*r.cellSize, r.offsetY + int32(p.Y)*r.cellSize
}

func (r *Renderer) Draw(s *app.Shell) {
	snap := s.Game.Snapshot()
	r.UpdateDimensions()
	r.layout(snap.Grid)
	r.shufflePalette(snap.Round)

	rl.BeginDrawing()
	rl.ClearBackground(background)

	rl.DrawRectangle(r.offsetX-1, r.offsetY-1, r.totalGridWidth+2, r.totalGridHeight+2, rl.DarkGray)
	rl.DrawRectangle(r.offsetX, r.offsetY, r.totalGridWidth, r.totalGridHeight, background)
	for x := 0; x < snap.Grid.Width; x++ {
		for y := 0; y < snap.Grid.Height; y++ {
			px, py := r.cellRect(types.Point{X: x, Y: y})
			rl.DrawRectangleLines(px, py, r.cellSize, r.cellSize, gridLine)
		}
	}

	if snap.Started {
		r.drawBlocks(snap)
		r.drawSnake(snap)
	}
	r.drawPanel(s, snap)
	r.drawOverlay(s, snap)
	rl.EndDrawing()
}

func (r *Renderer) drawBlocks(snap game.Snapshot) {
	fontSize := max(10, r.cellSize/2)
	for i, b := range snap.Blocks {
		px, py := r.cellRect(b.Position)
		rl.DrawRectangle(px+1, py+1, r.cellSize-2, r.cellSize-2, r.palette[i%len(r.palette)])
		text := fmt.Sprint(b.Value)
		w := rl.MeasureText(text, fontSize)
		rl.DrawText(text, px+(r.cellSize-w)/2, py+(r.cellSize-fontSize)/2, fontSize, rl.Black)
	}
}

func (r *Renderer) drawSnake(snap game.Snapshot) {
	for i := len(snap.Body) - 1; i >= 0; i-- {
		p := snap.Body[i]
		if !snap.Grid.Contains(p) {
			continue
		}
		px, py := r.cellRect(p)
		color := snakeBody
		if i == 0 {
			color = snakeHead
		}
		rl.DrawRectangle(px+1, py+1, r.cellSize-2, r.cellSize-2, color)
		if i == 0 {
			r.drawHeading(px, py, snap.Direction)
		}
	}
}

// drawHeading marks the head with a triangle pointing where the snake moves.
func (r *Renderer) drawHeading(headX, headY int32, d types.Direction) {
	c := float32(r.cellSize)
	x, y := float32(headX), float32(headY)
	half := c / 2
	switch d {
	case types.Right:
		rl.DrawTriangle(
			rl.Vector2{X: x + c, Y: y + half},
			rl.Vector2{X: x + half, Y: y},
			rl.Vector2{X: x + half, Y: y + c},
			rl.Yellow)
	case types.Left:
		rl.DrawTriangle(
			rl.Vector2{X: x, Y: y + half},
			rl.Vector2{X: x + half, Y: y + c},
			rl.Vector2{X: x + half, Y: y},
			rl.Yellow)
	case types.Down:
		rl.DrawTriangle(
			rl.Vector2{X: x + half, Y: y + c},
			rl.Vector2{X: x + c, Y: y + half},
			rl.Vector2{X: x, Y: y + half},
			rl.Yellow)
	case types.Up:
		rl.DrawTriangle(
			rl.Vector2{X: x + half, Y: y},
			rl.Vector2{X: x, Y: y + half},
			rl.Vector2{X: x + c, Y: y + half},
			rl.Yellow)
	}
}

func (r *Renderer) drawPanel(s *app.Shell, snap game.Snapshot) {
	panelX := r.gameWidth + 10
	y := int32(borderPadding)
	fontSize := int32(20)
	lineHeight := int32(26)

	rl.DrawRectangle(r.gameWidth, 0, panelWidth, r.screenHeight, panelColor)
	rl.DrawText("MATH SNAKE", panelX, y, 28, rl.White)
	y += lineHeight * 2

	if snap.Started {
		rl.DrawText(snap.Question.Text, panelX, y, 30, rl.Yellow)
		y += lineHeight * 2
	}
	rl.DrawText(fmt.Sprintf("Score: %d", snap.Score), panelX, y, fontSize, rl.White)
	y += lineHeight
	rl.DrawText(fmt.Sprintf("High Score: %d", s.HighScore), panelX, y, fontSize, rl.White)
	y += lineHeight
	rl.DrawText(fmt.Sprintf("Solved: %d", snap.Solved), panelX, y, fontSize, rl.LightGray)
	y += lineHeight
	elapsed := s.Game.Elapsed()
	rl.DrawText(fmt.Sprintf("Time: %02d:%02d", int(elapsed.Minutes()), int(elapsed.Seconds())%60), panelX, y, fontSize, rl.LightGray)
	y += lineHeight

	if h := s.History(); h != nil && h.GamesPlayed() > 0 {
		y += lineHeight / 2
		rl.DrawText(fmt.Sprintf("Games: %d", h.GamesPlayed()), panelX, y, fontSize, rl.LightGray)
		y += lineHeight
		rl.DrawText(fmt.Sprintf("Avg: %.1f  Max: %d", h.AverageScore(), h.MaxScore()), panelX, y, fontSize, rl.LightGray)
		y += lineHeight
		if s.Autopilot() {
			rl.DrawText("AUTOPILOT", panelX, y, fontSize, rl.Purple)
			y += lineHeight
		}
		r.drawPerformanceGraph(s, panelX, y+lineHeight)
	}

	r.buttons = r.layoutButtons(s)
	for _, b := range r.buttons {
		rl.DrawRectangleRec(b.rect, rl.DarkGray)
		rl.DrawRectangleLinesEx(b.rect, 1, rl.Gray)
		w := rl.MeasureText(b.label, fontSize)
		rl.DrawText(b.label,
			int32(b.rect.X)+(int32(b.rect.Width)-w)/2,
			int32(b.rect.Y)+(int32(b.rect.Height)-fontSize)/2,
			fontSize, rl.White)
	}
}

// drawPerformanceGraph plots recent run scores with a dashed average line.
func (r *Renderer) drawPerformanceGraph(s *app.Shell, graphX, graphY int32) {
	h := s.History()
	records := h.Records()
	if len(records) > maxGraphRuns {
		records = records[len(records)-maxGraphRuns:]
	}
	graphWidth := int32(panelWidth - 20)
	graphHeight := r.screenHeight / 6

	rl.DrawRectangleLines(graphX, graphY, graphWidth, graphHeight, rl.White)
	if len(records) < 2 {
		return
	}

	maxScore := 1
	for _, rec := range records {
		maxScore = max(maxScore, rec.MaxScore)
	}
	scale := func(score float64) int32 {
		return graphY + graphHeight - int32(float64(graphHeight)*score/float64(maxScore))
	}
	step := float32(graphWidth) / float32(len(records)-1)
	for j := 1; j < len(records); j++ {
		x1 := graphX + int32(step*float32(j-1))
		x2 := graphX + int32(step*float32(j))
		rl.DrawLine(x1, scale(records[j-1].AverageScore), x2, scale(records[j].AverageScore), rl.Green)
	}
	avgY := scale(h.AverageScore())
	for x := graphX; x < graphX+graphWidth; x += 5 {
		rl.DrawLine(x, avgY, x+2, avgY, rl.Yellow)
	}
}

func (r *Renderer) layoutButtons(s *app.Shell) []button {
	var specs []button
	switch s.Screen {
	case app.TitleScreen:
		specs = []button{{label: "Start", cmd: input.Start}, {label: "Leaderboard", cmd: input.ShowLeaderboard}}
	case app.PlayingScreen:
		label := "Pause"
		if s.Game.Paused() {
			label = "Resume"
		}
		specs = []button{{label: label, cmd: input.TogglePause}, {label: "Restart", cmd: input.Restart}}
	case app.NameEntryScreen:
		specs = []button{{label: "Save", cmd: input.Confirm}, {label: "Skip", cmd: input.Cancel}}
	case app.GameOverScreen:
		specs = []button{{label: "Restart", cmd: input.Restart}, {label: "Leaderboard", cmd: input.ShowLeaderboard}}
	case app.LeaderboardScreen:
		if s.ConfirmClear {
			specs = []button{{label: "Yes, clear", cmd: input.Confirm}, {label: "Keep", cmd: input.Cancel}}
		} else {
			specs = []button{{label: "Restart", cmd: input.Restart}, {label: "Clear", cmd: input.ClearLeaderboard}, {label: "Close", cmd: input.Cancel}}
		}
	}

	const height = 36
	y := float32(r.screenHeight) - float32(len(specs))*(height+8) - borderPadding
	top := y
	for i := range specs {
		specs[i].rect = rl.NewRectangle(float32(r.gameWidth+10), y, panelWidth-20, height)
		y += height + 8
	}
	if s.Screen == app.PlayingScreen && !s.Autopilot() {
		specs = append(specs, r.directionPad(top)...)
	}
	return specs
}

// directionPad lays out a cross of arrow buttons ending just above bottom.
func (r *Renderer) directionPad(bottom float32) []button {
	const size, gap = 44, 4
	centerX := float32(r.gameWidth) + panelWidth/2 - size/2
	midY := bottom - 2*(size+gap)
	return []button{
		{label: "^", cmd: input.MoveUp, rect: rl.NewRectangle(centerX, midY-size-gap, size, size)},
		{label: "<", cmd: input.MoveLeft, rect: rl.NewRectangle(centerX-size-gap, midY, size, size)},
		{label: ">", cmd: input.MoveRight, rect: rl.NewRectangle(centerX+size+gap, midY, size, size)},
		{label: "v", cmd: input.MoveDown, rect: rl.NewRectangle(centerX, midY+size+gap, size, size)},
	}
}

func (r *Renderer) drawOverlay(s *app.Shell, snap game.Snapshot) {
	var lines []string
	switch s.Screen {
	case app.TitleScreen:
		lines = []string{
			"MATH SNAKE",
			"Steer onto the correct answer.",
			"Wrong answers, walls and your tail end the game.",
			"",
			"ENTER start   L leaderboard   Q quit",
		}
	case app.PlayingScreen:
		if snap.Paused {
			lines = []string{"PAUSED", "SPACE to resume"}
		}
	case app.NameEntryScreen:
		lines = []string{
			fmt.Sprintf("NEW HIGH SCORE: %d", snap.Score),
			"Enter your name:",
			s.Name + "_",
			"",
			"ENTER save   ESC skip",
		}
	case app.GameOverScreen:
		lines = []string{
			"GAME OVER",
			gameOverReason(s.LastResult.Cause),
			fmt.Sprintf("Score: %d", snap.Score),
			"",
			"R restart   L leaderboard",
		}
	case app.LeaderboardScreen:
		lines = leaderboardLines(s)
	}
	if len(lines) == 0 {
		return
	}

	rl.DrawRectangle(r.offsetX, r.offsetY, r.totalGridWidth, r.totalGridHeight, rl.Fade(rl.Black, 0.75))
	fontSize := max(14, min(28, r.totalGridWidth/24))
	lineHeight := fontSize + fontSize/2
	y := r.offsetY + (r.totalGridHeight-int32(len(lines))*lineHeight)/2
	for i, line := range lines {
		color := rl.White
		if i == 0 {
			color = rl.Yellow
		}
		w := rl.MeasureText(line, fontSize)
		rl.DrawText(line, r.offsetX+(r.totalGridWidth-w)/2, y, fontSize, color)
		y += lineHeight
	}
}

func gameOverReason(c game.Cause) string {
	switch c {
	case game.CauseWall:
		return "You hit the wall."
	case game.CauseSelf:
		return "You ran into yourself."
	case game.CauseWrongAnswer:
		return "Wrong answer!"
	case game.CauseBoardFull:
		return "No room left on the board."
	}
	return ""
}

func leaderboardLines(s *app.Shell) []string {
	lines := []string{"LEADERBOARD", ""}
	entries := s.Leaderboard()
	if len(entries) == 0 {
		lines = append(lines, "No scores yet")
	}
	for i, e := range entries {
		lines = append(lines, fmt.Sprintf("%2d. %-12s %5d   %s %s", i+1, e.Name, e.Score, e.Date, e.Time))
	}
	if s.ConfirmClear {
		return append(lines, "", "Clear all scores?", "ENTER yes   ESC no")
	}
	return append(lines, "", "R restart   C clear   ESC close")
}
