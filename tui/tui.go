// Package tui is the terminal frontend. Every grid cell is two columns wide
// so the board stays roughly square.
package tui

import (
	"fmt"
	"time"

	"math-snake/app"
	"math-snake/game"
	"math-snake/game/types"
	"math-snake/input"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/exp/rand"
)

const (
	frameInterval = 16 * time.Millisecond // ~60 FPS
	gridTop       = 2                      // rows above the board: HUD and border
	cellWidth     = 2
)

var blockPalette = []int32{0x95E1D3, 0xFF8B94, 0xA8D8EA, 0xFFD93D, 0x6BCB77, 0xFF6B6B}

var (
	borderStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
	bodyStyle   = tcell.StyleDefault.Foreground(tcell.NewHexColor(0x4ECCA3))
	headStyle   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	textStyle   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	titleStyle  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	dimStyle    = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

type TUI struct {
	screen tcell.Screen
	shell  *app.Shell

	rng     *rand.Rand
	round   int
	palette []tcell.Color
}

func New(screen tcell.Screen, s *app.Shell, rng *rand.Rand) *TUI {
	return &TUI{screen: screen, shell: s, rng: rng, round: -1}
}

// Run initializes screen and drives the shell until the player quits. Events
// are read on their own goroutine and handed over a channel so that only this
// loop ever touches the game.
func Run(screen tcell.Screen, s *app.Shell, rng *rand.Rand) error {
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.HideCursor()

	t := New(screen, s, rng)
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go pumpEvents(screen.PollEvent, eventChan, done)

	t.Draw()
	for !s.Quit() {
		select {
		case ev := <-eventChan:
			t.HandleEvent(ev)
		case now := <-ticker.C:
			s.Update(now)
		}
		t.Draw()
	}
	return nil
}

// pumpEvents forwards polled events until poll returns nil or done closes.
func pumpEvents(poll func() tcell.Event, out chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := poll()
		if ev == nil {
			return
		}
		select {
		case out <- ev:
		case <-done:
			return
		}
	}
}

func (t *TUI) HandleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		t.HandleKey(ev.Key(), ev.Rune())
	case *tcell.EventResize:
		t.screen.Sync()
	}
}

// HandleKey maps a key press to shell input. On the name-entry screen runes
// are typed rather than interpreted.
func (t *TUI) HandleKey(key tcell.Key, r rune) {
	s := t.shell
	if key == tcell.KeyCtrlC {
		s.Handle(input.Quit, input.Keyboard)
		return
	}
	if s.Screen == app.NameEntryScreen {
		switch key {
		case tcell.KeyRune:
			s.TypeRune(r)
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			s.Backspace()
		case tcell.KeyEnter:
			s.Handle(input.Confirm, input.Keyboard)
		case tcell.KeyEscape:
			s.Handle(input.Cancel, input.Keyboard)
		}
		return
	}
	if cmd := commandFor(key, r); cmd != input.None {
		s.Handle(cmd, input.Keyboard)
	}
}

func commandFor(key tcell.Key, r rune) input.Command {
	switch key {
	case tcell.KeyUp:
		return input.MoveUp
	case tcell.KeyDown:
		return input.MoveDown
	case tcell.KeyLeft:
		return input.MoveLeft
	case tcell.KeyRight:
		return input.MoveRight
	case tcell.KeyEnter:
		return input.Confirm
	case tcell.KeyEscape:
		return input.Cancel
	case tcell.KeyRune:
	default:
		return input.None
	}
	switch r {
	case 'w', 'k':
		return input.MoveUp
	case 's', 'j':
		return input.MoveDown
	case 'a', 'h':
		return input.MoveLeft
	case 'd', 'l':
		return input.MoveRight
	case ' ', 'p':
		return input.TogglePause
	case 'r':
		return input.Restart
	case 'b':
		return input.ShowLeaderboard
	case 'c':
		return input.ClearLeaderboard
	case 'q':
		return input.Quit
	}
	return input.None
}

func (t *TUI) Draw() {
	snap := t.shell.Game.Snapshot()
	t.shufflePalette(snap.Round)
	t.screen.Clear()

	t.drawHUD(snap)
	t.drawBorder(snap.Grid)
	if snap.Started {
		t.drawBlocks(snap)
		t.drawSnake(snap)
	}
	t.drawOverlay(snap)
	t.screen.Show()
}

func (t *TUI) shufflePalette(round int) {
	if round == t.round && t.palette != nil {
		return
	}
	t.round = round
	t.palette = t.palette[:0]
	for _, v := range blockPalette {
		t.palette = append(t.palette, tcell.NewHexColor(v))
	}
	if t.rng != nil {
		t.rng.Shuffle(len(t.palette), func(i, j int) {
			t.palette[i], t.palette[j] = t.palette[j], t.palette[i]
		})
	}
}

// cell returns the screen column and row of a grid point.
func cell(p types.Point) (int, int) {
	return 1 + p.X*cellWidth, gridTop + p.Y
}

func (t *TUI) drawText(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		t.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func (t *TUI) drawHUD(snap game.Snapshot) {
	question := ""
	if snap.Started {
		question = snap.Question.Text
	}
	t.drawText(0, 0, question, titleStyle)
	hud := fmt.Sprintf("Score: %d  High: %d", snap.Score, t.shell.HighScore)
	if t.shell.Autopilot() {
		hud += "  [autopilot]"
	}
	t.drawText(max(len(question)+2, snap.Grid.Width*cellWidth+2-len(hud)), 0, hud, textStyle)
}

func (t *TUI) drawBorder(grid types.Grid) {
	right := 1 + grid.Width*cellWidth
	bottom := gridTop + grid.Height
	for x := 1; x < right; x++ {
		t.screen.SetContent(x, gridTop-1, '─', nil, borderStyle)
		t.screen.SetContent(x, bottom, '─', nil, borderStyle)
	}
	for y := gridTop; y < bottom; y++ {
		t.screen.SetContent(0, y, '│', nil, borderStyle)
		t.screen.SetContent(right, y, '│', nil, borderStyle)
	}
	t.screen.SetContent(0, gridTop-1, '┌', nil, borderStyle)
	t.screen.SetContent(right, gridTop-1, '┐', nil, borderStyle)
	t.screen.SetContent(0, bottom, '└', nil, borderStyle)
	t.screen.SetContent(right, bottom, '┘', nil, borderStyle)
}

func (t *TUI) drawBlocks(snap game.Snapshot) {
	for i, b := range snap.Blocks {
		x, y := cell(b.Position)
		style := tcell.StyleDefault.Background(t.palette[i%len(t.palette)]).Foreground(tcell.ColorBlack)
		t.drawText(x, y, fmt.Sprintf("%2d", b.Value), style)
	}
}

func (t *TUI) drawSnake(snap game.Snapshot) {
	for i := len(snap.Body) - 1; i >= 0; i-- {
		p := snap.Body[i]
		if !snap.Grid.Contains(p) {
			continue
		}
		x, y := cell(p)
		if i == 0 {
			t.drawText(x, y, headGlyph(snap.Direction), headStyle)
			continue
		}
		t.drawText(x, y, "██", bodyStyle)
	}
}

func headGlyph(d types.Direction) string {
	switch d {
	case types.Up:
		return "/\\"
	case types.Down:
		return "\\/"
	case types.Left:
		return "<:"
	}
	return ":>"
}

func (t *TUI) drawOverlay(snap game.Snapshot) {
	s := t.shell
	var lines []string
	switch s.Screen {
	case app.TitleScreen:
		lines = []string{"MATH SNAKE", "", "Eat the right answer.", "", "enter start", "b leaderboard", "q quit"}
	case app.PlayingScreen:
		if snap.Paused {
			lines = []string{"PAUSED", "space resumes"}
		}
	case app.NameEntryScreen:
		lines = []string{fmt.Sprintf("HIGH SCORE %d", snap.Score), "", "Name: " + s.Name + "_", "", "enter save", "esc skip"}
	case app.GameOverScreen:
		lines = []string{"GAME OVER", s.LastResult.Cause.String(), fmt.Sprintf("Score: %d", snap.Score), "", "r restart", "b leaderboard"}
	case app.LeaderboardScreen:
		lines = []string{"LEADERBOARD", ""}
		entries := s.Leaderboard()
		if len(entries) == 0 {
			lines = append(lines, "no scores yet")
		}
		for i, e := range entries {
			lines = append(lines, fmt.Sprintf("%2d %-12s %4d", i+1, e.Name, e.Score))
		}
		if s.ConfirmClear {
			lines = append(lines, "", "clear all scores?", "enter yes  esc no")
		} else {
			lines = append(lines, "", "r restart  c clear", "esc close")
		}
	}
	if len(lines) == 0 {
		return
	}

	width := snap.Grid.Width * cellWidth
	top := gridTop + max(0, (snap.Grid.Height-len(lines))/2)
	for i, line := range lines {
		style := textStyle
		switch {
		case i == 0:
			style = titleStyle
		case line == "":
			continue
		case i == len(lines)-1:
			style = dimStyle
		}
		x := 1 + max(0, (width-len([]rune(line)))/2)
		t.drawText(x, top+i, line, style)
	}
}
