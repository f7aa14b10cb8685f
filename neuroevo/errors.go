package neuroevo

import (
	"errors"

	"github.com/baldhumanity/snakeai-go/neuroevo/nn"
)

var (
	// ErrShapeMismatch is returned when an input or weight vector disagrees with a genome's shape.
	ErrShapeMismatch = nn.ErrShapeMismatch
	// ErrEncoding is returned when a flat genome encoding is too short for its shape.
	ErrEncoding = errors.New("genome encoding error")
	// ErrInvalidShape is returned for shapes with fewer than two layers or non-positive widths.
	ErrInvalidShape = errors.New("invalid network shape")
	// ErrDegeneratePopulation is returned when no agent has a positive fitness,
	// which leaves fitness-proportionate selection undefined.
	ErrDegeneratePopulation = errors.New("degenerate population: no agent has positive fitness")
	// ErrAgentNotTerminated is returned when an active agent's fitness is read.
	ErrAgentNotTerminated = errors.New("agent not terminated")
	// ErrAgentTerminated is returned when an agent is terminated twice.
	ErrAgentTerminated = errors.New("agent already terminated")
	// ErrInvalidFitness is returned for NaN or infinite fitness values.
	ErrInvalidFitness = errors.New("invalid fitness value")
	ErrInvalidConfig  = errors.New("invalid config")
	ErrCheckpoint     = errors.New("invalid checkpoint")
)
