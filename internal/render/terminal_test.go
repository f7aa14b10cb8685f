package render

import (
	"context"
	"math/rand"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baldhumanity/snakeai-go/snake"
)

type constantBrain int

func (b constantBrain) Decide([]float64) (int, error) { return int(b), nil }

func newTestTerminal(t *testing.T) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	term, err := NewTerminal(screen, "gen 3")
	require.NoError(t, err)
	screen.SetSize(80, 30)
	t.Cleanup(term.Close)
	return term, screen
}

func newTestGame(t *testing.T) *snake.Game {
	t.Helper()
	g, err := snake.NewGame(snake.DefaultConfig(), rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	return g
}

func cellAt(screen tcell.Screen, x, y int) (rune, tcell.Color) {
	r, _, style, _ := screen.GetContent(x, y)
	fg, _, _ := style.Decompose()
	return r, fg
}

func TestDrawBoard(t *testing.T) {
	term, screen := newTestTerminal(t)
	game := newTestGame(t)
	term.Draw(game)

	r, _ := cellAt(screen, 0, 0)
	assert.Equal(t, '┌', r)
	r, _ = cellAt(screen, 41, 21)
	assert.Equal(t, '┘', r)

	// Head (10,10) occupies two columns.
	for _, x := range []int{21, 22} {
		r, fg := cellAt(screen, x, 11)
		assert.Equal(t, '█', r)
		assert.Equal(t, tcell.ColorWhite, fg)
	}

	fruit := game.Fruit()
	r, fg := cellAt(screen, fruit.X*2+1, fruit.Y+1)
	assert.Equal(t, '█', r)
	assert.Equal(t, tcell.ColorRed, fg)

	r, _ = cellAt(screen, 0, 22)
	assert.Equal(t, 'g', r)
}

func TestToggleStatus(t *testing.T) {
	term, screen := newTestTerminal(t)
	game := newTestGame(t)

	assert.True(t, term.handleInput(tcell.NewEventKey(tcell.KeyRune, 'g', tcell.ModNone)))
	assert.False(t, term.ShowStatus())
	term.Draw(game)
	r, _ := cellAt(screen, 0, 22)
	assert.NotEqual(t, 'g', r)

	term.handleInput(tcell.NewEventKey(tcell.KeyRune, 'g', tcell.ModNone))
	assert.True(t, term.ShowStatus())
}

func TestQuitKeys(t *testing.T) {
	term, _ := newTestTerminal(t)
	assert.False(t, term.handleInput(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
	assert.False(t, term.handleInput(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)))
	assert.False(t, term.handleInput(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
	assert.True(t, term.handleInput(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)))
}

func TestReplayToTheEnd(t *testing.T) {
	term, _ := newTestTerminal(t)
	game := newTestGame(t)

	res, err := term.Replay(context.Background(), game, constantBrain(snake.Down), 1000)
	require.NoError(t, err)
	assert.Equal(t, snake.HitWall, res.Cause)
	assert.Equal(t, 10, res.Lifetime)
}

func TestReplayQuit(t *testing.T) {
	term, screen := newTestTerminal(t)
	game := newTestGame(t)

	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	res, err := term.Replay(context.Background(), game, constantBrain(snake.Down), 1)
	assert.ErrorIs(t, err, ErrQuit)
	assert.Equal(t, 0, res.Lifetime)
}

func TestReplayCancelled(t *testing.T) {
	term, _ := newTestTerminal(t)
	game := newTestGame(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := term.Replay(ctx, game, constantBrain(snake.Down), 1)
	assert.ErrorIs(t, err, context.Canceled)
}
