package snake

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baldhumanity/snakeai-go/neuroevo"
)

// fixedController always returns the same action.
type fixedController struct {
	action int
	err    error
	calls  int
}

func (c *fixedController) Decide(inputs []float64) (int, error) {
	c.calls++
	if len(inputs) != NumInputs {
		return 0, errors.New("wrong input width")
	}
	return c.action, c.err
}

func TestPlayUntilWall(t *testing.T) {
	g := newTestGame(t, DefaultConfig(), 0, 0)
	brain := &fixedController{action: int(Down)}

	res, err := Play(g, brain)
	require.NoError(t, err)
	assert.Equal(t, Result{Score: 0, Lifetime: 10, Cause: HitWall}, res)
	assert.Equal(t, 10, brain.calls)
}

func TestPlayPropagatesControllerError(t *testing.T) {
	g := newTestGame(t, DefaultConfig(), 0, 0)
	boom := errors.New("boom")

	_, err := Play(g, &fixedController{err: boom})
	assert.ErrorIs(t, err, boom)
	assert.False(t, g.Over())
}

func TestAdvanceRejectsUnknownAction(t *testing.T) {
	g := newTestGame(t, DefaultConfig(), 0, 0)
	assert.Error(t, Advance(g, &fixedController{action: NumActions}))
	assert.Error(t, Advance(g, &fixedController{action: -1}))
	assert.Equal(t, 0, g.Lifetime())
}

func TestRunWithGenome(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	brain, err := neuroevo.NewRandomGenome([]int{NumInputs, 6, NumActions}, rng)
	require.NoError(t, err)

	first, err := Run(DefaultConfig(), brain, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.NotEqual(t, Alive, first.Cause)
	assert.Positive(t, first.Lifetime)

	// Same brain, same fruit seed, same game.
	second, err := Run(DefaultConfig(), brain, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRunRejectsWrongShape(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	brain, err := neuroevo.NewRandomGenome([]int{3, NumActions}, rng)
	require.NoError(t, err)

	_, err = Run(DefaultConfig(), brain, rng)
	assert.ErrorIs(t, err, neuroevo.ErrShapeMismatch)
}
