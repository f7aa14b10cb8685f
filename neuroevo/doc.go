// Package neuroevo evolves the weights of fixed-topology feed-forward neural
// networks with a generational genetic algorithm.
//
// A Genome is a network of a given shape, for example [8 10 4]: every node
// of a layer is connected to every node of the previous one, without bias,
// and every node applies the sigmoid. Genomes flatten to a single weight
// vector (layer, then node, then incoming edge) which is what crossover and
// mutation operate on and what checkpoints store.
//
// A Population holds one Agent per genome. Each agent is evaluated by the
// caller and terminated with a fitness; once every agent is terminated the
// population can Advance. The fittest genome is carried over unchanged as
// the first agent and the rest are bred by fitness-proportionate selection,
// single-point crossover and per-gene replacement mutation.
//
// Basic usage:
//
//	config, err := neuroevo.LoadConfig("configs/snake.ini")
//	if err != nil {
//		log.Fatalf("Error loading config: %v", err)
//	}
//
//	rng := rand.New(rand.NewSource(1))
//	pop, err := neuroevo.NewRandomPopulation(config, rng)
//	if err != nil {
//		log.Fatalf("Error creating population: %v", err)
//	}
//
//	for i := 0; i < 100; i++ {
//		for _, agent := range pop.Agents() {
//			score, lifetime := play(agent.Genome())
//			if err := agent.Terminate(config.Score(score, lifetime)); err != nil {
//				log.Fatal(err)
//			}
//		}
//		pop, _, err = pop.Advance(rng)
//		if err != nil {
//			log.Fatalf("Error advancing population: %v", err)
//		}
//	}
//
// Every random draw goes through the Rand interface, so a seeded
// *math/rand.Rand makes a run reproducible.
package neuroevo
