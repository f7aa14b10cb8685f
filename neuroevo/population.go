package neuroevo

import (
	"fmt"
	"math"
	"slices"

	"github.com/baldhumanity/snakeai-go/neuroevo/nn"
)

// AgentState is the lifecycle state of an agent. Active -> Terminated is one-way.
type AgentState int

const (
	Active AgentState = iota
	Terminated
)

func (s AgentState) String() string {
	switch s {
	case Active:
		return "active"
	case Terminated:
		return "terminated"
	default:
		return fmt.Sprintf("AgentState(%d)", int(s))
	}
}

// Agent pairs a genome with the outcome of its run.
type Agent struct {
	genome  *Genome
	fitness float64
	state   AgentState
}

// NewAgent wraps a genome in a fresh, active agent.
func NewAgent(g *Genome) *Agent {
	return &Agent{genome: g, state: Active}
}

// Genome returns the agent's genome.
func (a *Agent) Genome() *Genome { return a.genome }

// State returns the agent's lifecycle state.
func (a *Agent) State() AgentState { return a.state }

// Terminated reports whether the agent's run has finished.
func (a *Agent) Terminated() bool { return a.state == Terminated }

// Terminate records the final fitness and ends the agent's run. It may be
// called once; later calls fail with ErrAgentTerminated.
func (a *Agent) Terminate(fitness float64) error {
	if a.state == Terminated {
		return ErrAgentTerminated
	}
	if math.IsNaN(fitness) || math.IsInf(fitness, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidFitness, fitness)
	}
	a.fitness = fitness
	a.state = Terminated
	return nil
}

// Fitness returns the final fitness. An active agent has no fitness yet.
func (a *Agent) Fitness() (float64, error) {
	if a.state != Terminated {
		return 0, ErrAgentNotTerminated
	}
	return a.fitness, nil
}

// Population is one generation of agents sharing a network shape.
type Population struct {
	config     Config
	agents     []*Agent
	generation int
}

// GenerationStats summarizes the finalized fitness of a population.
type GenerationStats struct {
	Generation int
	Size       int
	Best       float64
	Mean       float64
	Median     float64
	Stdev      float64
	Min        float64
}

// NewRandomPopulation creates the first generation: PopSize agents with
// uniformly random genomes of the configured shape.
func NewRandomPopulation(config Config, rng Rand) (*Population, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	config = config.clone()

	agents := make([]*Agent, config.Evolution.PopSize)
	for i := range agents {
		g, err := NewRandomGenome(config.Network.Shape, rng)
		if err != nil {
			return nil, fmt.Errorf("failed to create genome %d: %w", i, err)
		}
		agents[i] = NewAgent(g)
	}
	return &Population{config: config, agents: agents}, nil
}

// Reseed replaces the population with fresh random genomes as its next
// generation. Drivers use it to recover from ErrDegeneratePopulation.
func (p *Population) Reseed(rng Rand) (*Population, error) {
	next, err := NewRandomPopulation(p.config, rng)
	if err != nil {
		return nil, err
	}
	next.generation = p.generation + 1
	return next, nil
}

// NewPopulation creates a population from existing genomes, e.g. a checkpoint.
// Every genome must have the configured shape and there must be exactly
// PopSize of them.
func NewPopulation(config Config, genomes []*Genome, generation int) (*Population, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	config = config.clone()
	if len(genomes) != config.Evolution.PopSize {
		return nil, fmt.Errorf("%w: %d genomes for pop_size %d", ErrInvalidConfig, len(genomes), config.Evolution.PopSize)
	}

	agents := make([]*Agent, len(genomes))
	for i, g := range genomes {
		if !slices.Equal(g.shape, config.Network.Shape) {
			return nil, fmt.Errorf("%w: genome %d has shape %v, config declares %v", ErrShapeMismatch, i, g.shape, config.Network.Shape)
		}
		agents[i] = NewAgent(g)
	}
	return &Population{config: config, agents: agents, generation: generation}, nil
}

// Config returns the population's configuration.
func (p *Population) Config() Config { return p.config.clone() }

// Size returns the number of agents.
func (p *Population) Size() int { return len(p.agents) }

// Generation returns the generation number, starting at 0.
func (p *Population) Generation() int { return p.generation }

// Agent returns the i-th agent.
func (p *Population) Agent(i int) *Agent { return p.agents[i] }

// Agents returns the agents in order. The slice is a copy; the agents are shared.
func (p *Population) Agents() []*Agent {
	out := make([]*Agent, len(p.agents))
	copy(out, p.agents)
	return out
}

// Done reports whether every agent has terminated.
func (p *Population) Done() bool {
	for _, a := range p.agents {
		if !a.Terminated() {
			return false
		}
	}
	return true
}

// Fitnesses returns every agent's final fitness in order.
func (p *Population) Fitnesses() ([]float64, error) {
	fitnesses := make([]float64, len(p.agents))
	for i, a := range p.agents {
		f, err := a.Fitness()
		if err != nil {
			return nil, fmt.Errorf("agent %d: %w", i, err)
		}
		fitnesses[i] = f
	}
	return fitnesses, nil
}

// Stats summarizes the population's fitness. Every agent must be terminated.
func (p *Population) Stats() (GenerationStats, error) {
	fitnesses, err := p.Fitnesses()
	if err != nil {
		return GenerationStats{}, err
	}
	return GenerationStats{
		Generation: p.generation,
		Size:       len(fitnesses),
		Best:       MaxFloat(fitnesses),
		Mean:       Mean(fitnesses),
		Median:     Median(fitnesses),
		Stdev:      Stdev(fitnesses),
		Min:        MinFloat(fitnesses),
	}, nil
}

// Best returns the first agent with the highest fitness.
func (p *Population) Best() (*Agent, error) {
	fitnesses, err := p.Fitnesses()
	if err != nil {
		return nil, err
	}
	return p.agents[nn.Argmax(fitnesses)], nil
}

// Advance produces the next generation by elitism, fitness-proportionate
// selection, single-point crossover and per-gene replacement mutation.
// It returns the new population and the elite genome, which is also the new
// population's first agent. The receiver is not modified.
func (p *Population) Advance(rng Rand) (*Population, *Genome, error) {
	fitnesses, err := p.Fitnesses()
	if err != nil {
		return nil, nil, err
	}

	r := newReproduction(p.config)
	genomes, err := r.reproduce(p.agents, fitnesses, rng)
	if err != nil {
		return nil, nil, fmt.Errorf("generation %d: %w", p.generation, err)
	}

	agents := make([]*Agent, len(genomes))
	for i, g := range genomes {
		agents[i] = NewAgent(g)
	}
	next := &Population{config: p.config, agents: agents, generation: p.generation + 1}
	return next, genomes[0], nil
}
