package neuroevo

import (
	"fmt"
	"math"
	"slices"
	"sort"
)

// reproduction creates the genomes of the next generation from a finished one.
type reproduction struct {
	config EvolutionConfig
	shape  []int
}

func newReproduction(config Config) *reproduction {
	return &reproduction{config: config.Evolution, shape: config.Network.Shape}
}

// reproduce returns PopSize genomes: the elites first, best at index 0, then
// the offspring. Random draws for each child happen in a fixed order: parent A,
// parent B, crossover point, then one gate draw per gene (followed by a
// replacement draw when the gate fires).
func (r *reproduction) reproduce(agents []*Agent, fitnesses []float64, rng Rand) ([]*Genome, error) {
	pool, err := buildMatingPool(fitnesses, r.config.SelectionConstant)
	if err != nil {
		return nil, err
	}

	popSize := len(agents)
	elites := selectElites(fitnesses, min(r.config.Elitism, popSize))

	next := make([]*Genome, 0, popSize)
	for _, idx := range elites {
		// Genomes are immutable, so the elite is carried over without copying.
		next = append(next, agents[idx].genome)
	}

	for len(next) < popSize {
		parentA := agents[pool[rng.Intn(len(pool))]].genome.Flatten()
		parentB := agents[pool[rng.Intn(len(pool))]].genome.Flatten()

		child := crossover(parentA, parentB, rng)
		mutate(child, r.config.MutationRate, rng)

		g, err := Unflatten(r.shape, child)
		if err != nil {
			return nil, fmt.Errorf("failed to decode child %d: %w", len(next), err)
		}
		next = append(next, g)
	}
	return next, nil
}

// buildMatingPool gives every agent floor(fitness/maxFitness*k) entries,
// holding agent indices in agent order. Non-positive fitness contributes nothing.
func buildMatingPool(fitnesses []float64, k int) ([]int, error) {
	maxFitness := MaxFloat(fitnesses)
	if !(maxFitness > 0) {
		return nil, ErrDegeneratePopulation
	}

	pool := []int{}
	for i, f := range fitnesses {
		entries := int(math.Floor(f / maxFitness * float64(k)))
		for j := 0; j < entries; j++ {
			pool = append(pool, i)
		}
	}
	return pool, nil
}

// selectElites returns the indices of the n fittest agents, fittest first.
// Ties keep agent order, so index 0 is the first agent with the maximal fitness.
func selectElites(fitnesses []float64, n int) []int {
	order := make([]int, len(fitnesses))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return fitnesses[order[i]] > fitnesses[order[j]]
	})
	return order[:n]
}

// crossover splits both parents at a point drawn from [1, len(a)] and joins
// a's prefix with b's suffix. A point of len(a) yields a copy of a.
func crossover(a, b []float64, rng Rand) []float64 {
	point := 1 + rng.Intn(len(a))
	child := slices.Clone(a[:point])
	return append(child, b[point:]...)
}

// mutate replaces each gene, with probability rate, by a fresh weight from [-1, 1].
func mutate(genes []float64, rate float64, rng Rand) {
	for i := range genes {
		if rng.Float64() < rate {
			genes[i] = randomWeight(rng)
		}
	}
}
