// Package render replays a controller's game in the terminal with tcell.
package render

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/baldhumanity/snakeai-go/snake"
)

// ErrQuit is returned by Replay when the viewer closes it before the game ends.
var ErrQuit = errors.New("replay closed")

// DefaultFPS is the replay speed of the original game window.
const DefaultFPS = 10

var (
	bodyStyle   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	fruitStyle  = tcell.StyleDefault.Foreground(tcell.ColorRed)
	borderStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
	statusStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow)
)

// Terminal draws a board on a tcell screen. Every board cell is two
// characters wide so the board looks square.
type Terminal struct {
	screen     tcell.Screen
	showStatus bool
	title      string
}

// NewTerminal initialises screen and takes ownership of it.
func NewTerminal(screen tcell.Screen, title string) (*Terminal, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialise screen: %w", err)
	}
	screen.HideCursor()
	return &Terminal{screen: screen, showStatus: true, title: title}, nil
}

// Close restores the terminal.
func (t *Terminal) Close() { t.screen.Fini() }

// ShowStatus reports whether the status line is drawn.
func (t *Terminal) ShowStatus() bool { return t.showStatus }

// Draw renders the current frame of game.
func (t *Terminal) Draw(game *snake.Game) {
	t.screen.Clear()
	cfg := game.Config()
	t.drawBorder(cfg.Cols, cfg.Rows)

	for _, p := range game.Body() {
		t.fillCell(p, bodyStyle)
	}
	if !game.Over() || game.Cause() != snake.BoardFull {
		t.fillCell(game.Fruit(), fruitStyle)
	}

	if t.showStatus {
		status := fmt.Sprintf("%s  score %d  frame %d  budget %d", t.title, game.Score(), game.Lifetime(), game.FramesLeft())
		if game.Over() {
			status += "  " + game.Cause().String()
		}
		t.drawText(0, cfg.Rows+2, status, statusStyle)
	}
	t.screen.Show()
}

// fillCell paints one board cell, offset by the border.
func (t *Terminal) fillCell(p snake.Point, style tcell.Style) {
	x, y := p.X*2+1, p.Y+1
	t.screen.SetContent(x, y, '█', nil, style)
	t.screen.SetContent(x+1, y, '█', nil, style)
}

func (t *Terminal) drawBorder(cols, rows int) {
	right, bottom := cols*2+1, rows+1
	for x := 1; x < right; x++ {
		t.screen.SetContent(x, 0, '─', nil, borderStyle)
		t.screen.SetContent(x, bottom, '─', nil, borderStyle)
	}
	for y := 1; y < bottom; y++ {
		t.screen.SetContent(0, y, '│', nil, borderStyle)
		t.screen.SetContent(right, y, '│', nil, borderStyle)
	}
	t.screen.SetContent(0, 0, '┌', nil, borderStyle)
	t.screen.SetContent(right, 0, '┐', nil, borderStyle)
	t.screen.SetContent(0, bottom, '└', nil, borderStyle)
	t.screen.SetContent(right, bottom, '┘', nil, borderStyle)
}

func (t *Terminal) drawText(x, y int, text string, style tcell.Style) {
	for _, r := range text {
		t.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// handleInput applies a key press and reports whether the replay continues.
func (t *Terminal) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune {
			switch ev.Rune() {
			case 'q':
				return false
			case 'g':
				t.showStatus = !t.showStatus
			}
		}
	case *tcell.EventResize:
		t.screen.Sync()
	}
	return true
}

// Replay plays game with brain at fps frames per second, redrawing after
// every frame, until the game ends, ctx is cancelled or the viewer quits.
func (t *Terminal) Replay(ctx context.Context, game *snake.Game, brain snake.Controller, fps int) (snake.Result, error) {
	if fps <= 0 {
		fps = DefaultFPS
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	done := make(chan struct{})
	defer close(done)
	events := make(chan tcell.Event, 16)
	go func() {
		for {
			// PollEvent returns nil once the screen is finalised.
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	t.Draw(game)
	for !game.Over() {
		select {
		case <-ctx.Done():
			return game.Result(), ctx.Err()
		case ev := <-events:
			if !t.handleInput(ev) {
				return game.Result(), ErrQuit
			}
			t.Draw(game)
		case <-ticker.C:
			if err := snake.Advance(game, brain); err != nil {
				return game.Result(), err
			}
			t.Draw(game)
		}
	}
	return game.Result(), nil
}
