package snake

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fruitRand replays fruit coordinates: each placement draws x, then y.
type fruitRand struct {
	t    *testing.T
	ints []int
}

func (r *fruitRand) Float64() float64 { return 0 }

func (r *fruitRand) Intn(n int) int {
	r.t.Helper()
	require.NotEmpty(r.t, r.ints, "unexpected fruit draw")
	v := r.ints[0]
	r.ints = r.ints[1:]
	require.Less(r.t, v, n)
	return v
}

func fruitsAt(t *testing.T, coords ...int) *fruitRand {
	return &fruitRand{t: t, ints: coords}
}

func newTestGame(t *testing.T, cfg Config, coords ...int) *Game {
	t.Helper()
	g, err := NewGame(cfg, fruitsAt(t, coords...))
	require.NoError(t, err)
	return g
}

func TestNewGame(t *testing.T) {
	g := newTestGame(t, DefaultConfig(), 3, 4)

	assert.Equal(t, []Point{{10, 10}, {9, 10}, {8, 10}}, g.Body())
	assert.Equal(t, Point{10, 10}, g.Head())
	assert.Equal(t, Point{3, 4}, g.Fruit())
	assert.Equal(t, 50, g.FramesLeft())
	assert.Equal(t, 0, g.Score())
	assert.Equal(t, 0, g.Lifetime())
	assert.False(t, g.Over())
	assert.Equal(t, Alive, g.Cause())
}

func TestFruitAvoidsBody(t *testing.T) {
	// The first two draws land on the body and are rejected.
	g := newTestGame(t, DefaultConfig(), 10, 10, 8, 10, 0, 19)
	assert.Equal(t, Point{0, 19}, g.Fruit())
}

func TestInputs(t *testing.T) {
	g := newTestGame(t, DefaultConfig(), 3, 4)
	// Only the segment left of the head is adjacent.
	assert.Equal(t, []float64{10, 10, 3, 4, 0, 0, 1, 0}, g.Inputs())

	g.Step(Up)
	// Head (10,9); the old head is now directly below.
	assert.Equal(t, []float64{10, 9, 3, 4, 0, 1, 0, 0}, g.Inputs())
	assert.Len(t, g.Inputs(), NumInputs)
}

func TestReversalIsIgnored(t *testing.T) {
	g := newTestGame(t, DefaultConfig(), 0, 0)
	g.Step(Left)
	assert.Equal(t, Point{11, 10}, g.Head())
	assert.False(t, g.Over())

	g.Step(Up)
	g.Step(Down)
	assert.Equal(t, Point{11, 8}, g.Head())
}

func TestUnknownDirectionKeepsHeading(t *testing.T) {
	g := newTestGame(t, DefaultConfig(), 0, 0)
	g.Step(Direction(7))
	g.Step(Direction(-1))
	assert.Equal(t, Point{12, 10}, g.Head())
	assert.Equal(t, 2, g.Lifetime())
	assert.False(t, g.Over())
}

func TestEatingGrowsSnake(t *testing.T) {
	g := newTestGame(t, DefaultConfig(), 11, 10, 0, 0)
	g.Step(Right)

	assert.Equal(t, 1, g.Score())
	assert.Equal(t, 1, g.Lifetime())
	assert.Equal(t, 99, g.FramesLeft())
	assert.Equal(t, []Point{{11, 10}, {10, 10}, {9, 10}, {9, 10}}, g.Body())
	assert.Equal(t, Point{0, 0}, g.Fruit())

	g.Step(Right)
	assert.Equal(t, []Point{{12, 10}, {11, 10}, {10, 10}, {9, 10}}, g.Body())
}

func TestHitWall(t *testing.T) {
	g := newTestGame(t, DefaultConfig(), 0, 0)
	for i := 0; i < 10; i++ {
		g.Step(Up)
		require.False(t, g.Over(), "step %d", i)
	}
	g.Step(Up)
	assert.True(t, g.Over())
	assert.Equal(t, HitWall, g.Cause())
	assert.Equal(t, Result{Score: 0, Lifetime: 11, Cause: HitWall}, g.Result())

	// Steps after the end are ignored.
	g.Step(Up)
	assert.Equal(t, 11, g.Lifetime())
}

func TestHitSelf(t *testing.T) {
	cfg := DefaultConfig()
	cfg.InitialLength = 5
	g := newTestGame(t, cfg, 0, 0)

	g.Step(Up)
	g.Step(Left)
	require.False(t, g.Over())
	g.Step(Down)
	assert.True(t, g.Over())
	assert.Equal(t, HitSelf, g.Cause())
	assert.Equal(t, 3, g.Lifetime())
}

func TestStarvation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StarvationFrames = 5
	g := newTestGame(t, cfg, 0, 0)
	for i := 0; i < 4; i++ {
		g.Step(Right)
	}
	require.False(t, g.Over())
	g.Step(Right)
	assert.Equal(t, Starved, g.Cause())
	assert.Equal(t, 5, g.Lifetime())
	assert.Equal(t, Point{15, 10}, g.Head())
}

func TestBoardFull(t *testing.T) {
	cfg := Config{Cols: 2, Rows: 2, InitialLength: 2, StarvationFrames: 10, FruitFrames: 10}
	g := newTestGame(t, cfg,
		1, 0, // first fruit above the head
		0, 0, // second fruit top left
		0, 1, // third fruit in the only free cell
	)

	g.Step(Up)
	g.Step(Left)
	require.False(t, g.Over())
	g.Step(Down)
	assert.True(t, g.Over())
	assert.Equal(t, BoardFull, g.Cause())
	assert.Equal(t, 3, g.Score())
}

func TestDirectionAndCauseStrings(t *testing.T) {
	assert.Equal(t, "left", Left.String())
	assert.Equal(t, "Direction(9)", Direction(9).String())
	assert.Equal(t, "starved", Starved.String())
	assert.Equal(t, "Cause(-1)", Cause(-1).String())
}
