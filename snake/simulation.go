package snake

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/baldhumanity/snakeai-go/internal/logging"
	"github.com/baldhumanity/snakeai-go/neuroevo"
)

// Report describes one finished generation.
type Report struct {
	Generation int // Generation that was evaluated
	Stats      neuroevo.GenerationStats
	MaxScore   int  // Most fruit eaten by one agent this generation
	BestScore  int  // Most fruit eaten by one agent so far
	NewBest    bool // MaxScore beat every earlier generation
	Elite      *neuroevo.Genome
	Reset      bool // The population was degenerate and has been reseeded
	Duration   time.Duration
}

// Simulation owns the generation loop: it plays every agent of the current
// population to termination, scores it, and advances the population.
type Simulation struct {
	evolution  neuroevo.Config
	game       Config
	rng        *rand.Rand
	logger     *slog.Logger
	workers    int
	population *neuroevo.Population
	elite      *neuroevo.Genome
	bestScore  int
}

// Option configures a Simulation.
type Option func(*Simulation)

// WithLogger sets the logger for progress reports.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Simulation) { s.logger = logger }
}

// WithWorkers bounds the number of games played concurrently.
func WithWorkers(n int) Option {
	return func(s *Simulation) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithPopulation resumes from an existing population, e.g. a checkpoint,
// instead of a random one.
func WithPopulation(p *neuroevo.Population, elite *neuroevo.Genome) Option {
	return func(s *Simulation) {
		s.population = p
		s.elite = elite
	}
}

// NewSimulation creates a simulation whose random draws all derive from seed.
// The network shape must map NumInputs sensors to NumActions moves.
func NewSimulation(evolution neuroevo.Config, game Config, seed int64, opts ...Option) (*Simulation, error) {
	if err := evolution.Validate(); err != nil {
		return nil, err
	}
	if err := game.Validate(); err != nil {
		return nil, err
	}
	shape := evolution.Network.Shape
	if shape[0] != NumInputs || shape[len(shape)-1] != NumActions {
		return nil, fmt.Errorf("%w: snake controllers need shape %d ... %d, got %v", neuroevo.ErrInvalidConfig, NumInputs, NumActions, shape)
	}

	s := &Simulation{
		evolution: evolution,
		game:      game,
		rng:       rand.New(rand.NewSource(seed)),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		workers:   runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.population == nil {
		p, err := neuroevo.NewRandomPopulation(evolution, s.rng)
		if err != nil {
			return nil, fmt.Errorf("failed to create initial population: %w", err)
		}
		s.population = p
	}
	return s, nil
}

// Population returns the population awaiting evaluation.
func (s *Simulation) Population() *neuroevo.Population { return s.population }

// Elite returns the last elite genome, or nil before the first generation.
func (s *Simulation) Elite() *neuroevo.Genome { return s.elite }

// BestScore returns the most fruit any agent has eaten so far.
func (s *Simulation) BestScore() int { return s.bestScore }

// Game returns the game rules.
func (s *Simulation) Game() Config { return s.game }

// RunGeneration plays every agent once, then advances the population.
func (s *Simulation) RunGeneration(ctx context.Context) (Report, error) {
	start := time.Now()
	// Agents are terminated on a copy, so a failed generation leaves
	// s.population active and the call can be retried.
	pop, err := activeCopy(s.population)
	if err != nil {
		return Report{}, err
	}
	agents := pop.Agents()

	// Seeds are drawn up front in agent order so results do not depend on scheduling.
	seeds := make([]int64, len(agents))
	for i := range seeds {
		seeds[i] = s.rng.Int63()
	}

	results := make([]Result, len(agents))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, agent := range agents {
		i, agent := i, agent
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := Run(s.game, agent.Genome(), rand.New(rand.NewSource(seeds[i])))
			if err != nil {
				return fmt.Errorf("agent %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, fmt.Errorf("generation %d: %w", pop.Generation(), err)
	}

	report := Report{Generation: pop.Generation()}
	for i, agent := range agents {
		res := results[i]
		if err := agent.Terminate(s.evolution.Score(res.Score, res.Lifetime)); err != nil {
			return Report{}, fmt.Errorf("agent %d: %w", i, err)
		}
		report.MaxScore = max(report.MaxScore, res.Score)
		s.logger.Log(ctx, logging.LevelTrace, "agent finished",
			"generation", pop.Generation(), "agent", i,
			"score", res.Score, "lifetime", res.Lifetime, "cause", res.Cause.String())
	}

	stats, err := pop.Stats()
	if err != nil {
		return Report{}, err
	}
	report.Stats = stats

	if report.MaxScore > s.bestScore {
		s.bestScore = report.MaxScore
		report.NewBest = true
		s.logger.Info("new max score", "generation", pop.Generation(), "score", s.bestScore)
	}
	report.BestScore = s.bestScore

	next, elite, err := pop.Advance(s.rng)
	switch {
	case errors.Is(err, neuroevo.ErrDegeneratePopulation) && s.evolution.Evolution.ResetOnDegenerate:
		s.logger.Warn("degenerate population, reseeding", "generation", pop.Generation())
		next, err = pop.Reseed(s.rng)
		if err != nil {
			return Report{}, err
		}
		report.Reset = true
	case err != nil:
		return Report{}, err
	default:
		s.elite = elite
	}
	s.population = next
	report.Elite = s.elite
	report.Duration = time.Since(start)

	s.logger.Info("generation complete",
		"generation", report.Generation,
		"best", stats.Best,
		"mean", stats.Mean,
		"median", stats.Median,
		"max_score", report.MaxScore,
		"best_score", report.BestScore,
		"duration", report.Duration)
	s.logger.Debug("fitness spread", "generation", report.Generation, "min", stats.Min, "stdev", stats.Stdev)
	return report, nil
}

// Run evaluates generations until n have finished (n <= 0 runs until ctx is
// cancelled) or onReport returns an error. onReport may be nil.
func (s *Simulation) Run(ctx context.Context, n int, onReport func(Report) error) error {
	for i := 0; n <= 0 || i < n; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		report, err := s.RunGeneration(ctx)
		if err != nil {
			return err
		}
		if onReport != nil {
			if err := onReport(report); err != nil {
				return err
			}
		}
	}
	return nil
}

// activeCopy returns a population with the same genomes and generation whose
// agents are all active.
func activeCopy(p *neuroevo.Population) (*neuroevo.Population, error) {
	genomes := make([]*neuroevo.Genome, p.Size())
	for i := range genomes {
		genomes[i] = p.Agent(i).Genome()
	}
	return neuroevo.NewPopulation(p.Config(), genomes, p.Generation())
}
