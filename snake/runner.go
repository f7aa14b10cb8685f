package snake

import (
	"fmt"

	"github.com/baldhumanity/snakeai-go/neuroevo"
)

// Controller picks an action index from a sensor vector. *neuroevo.Genome
// implements it with a forward pass followed by argmax.
type Controller interface {
	Decide(inputs []float64) (int, error)
}

// Play drives a game to termination with brain and returns the result.
func Play(game *Game, brain Controller) (Result, error) {
	for !game.Over() {
		if err := Advance(game, brain); err != nil {
			return game.Result(), err
		}
	}
	return game.Result(), nil
}

// Advance plays a single frame: sense, decide, step.
func Advance(game *Game, brain Controller) error {
	action, err := brain.Decide(game.Inputs())
	if err != nil {
		return fmt.Errorf("frame %d: %w", game.Lifetime()+1, err)
	}
	if action < 0 || action >= NumActions {
		return fmt.Errorf("frame %d: action %d out of range [0, %d)", game.Lifetime()+1, action, NumActions)
	}
	game.Step(Direction(action))
	return nil
}

// Run plays a fresh game with brain, placing fruit with rng.
func Run(config Config, brain Controller, rng neuroevo.Rand) (Result, error) {
	game, err := NewGame(config, rng)
	if err != nil {
		return Result{}, err
	}
	return Play(game, brain)
}
