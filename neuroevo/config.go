package neuroevo

import (
	"fmt"
	"slices"

	"gopkg.in/ini.v1"
)

// Defaults used when a config file leaves a value unset.
const (
	DefaultPopSize           = 100
	DefaultMutationRate      = 0.03
	DefaultSelectionConstant = 50
	DefaultElitism           = 1
)

// DefaultShape is the snake controller layout: 8 sensors, 10 hidden nodes, 4 moves.
var DefaultShape = []int{8, 10, 4}

// Config stores the parameters of the evolutionary algorithm.
// It is passed by value; constructors copy the Shape slice.
type Config struct {
	Network   NetworkConfig
	Evolution EvolutionConfig
	// Fitness scores finished runs. Not read from INI; nil means DefaultFitness.
	Fitness FitnessFunc `ini:"-"`
}

// NetworkConfig holds the fixed network topology.
type NetworkConfig struct {
	Shape []int `ini:"shape" delim:" "` // Layer widths, input first
}

// EvolutionConfig holds the selection and variation parameters.
type EvolutionConfig struct {
	PopSize           int     `ini:"pop_size"`
	MutationRate      float64 `ini:"mutation_rate"`      // Per-gene replacement probability
	SelectionConstant int     `ini:"selection_constant"` // Mating pool entries of the fittest agent
	Elitism           int     `ini:"elitism"`            // Agents copied unchanged into the next generation
	Seed              int64   `ini:"seed"`               // 0 lets the driver pick a seed
	ResetOnDegenerate bool    `ini:"reset_on_degenerate"`
}

// DefaultConfig returns the configuration of the original snake trainer.
func DefaultConfig() Config {
	return Config{
		Network: NetworkConfig{Shape: slices.Clone(DefaultShape)},
		Evolution: EvolutionConfig{
			PopSize:           DefaultPopSize,
			MutationRate:      DefaultMutationRate,
			SelectionConstant: DefaultSelectionConstant,
			Elitism:           DefaultElitism,
			ResetOnDegenerate: true,
		},
		Fitness: DefaultFitness,
	}
}

// LoadConfig loads configuration parameters from an INI file.
func LoadConfig(filePath string) (Config, error) {
	cfg, err := LoadIni(filePath)
	if err != nil {
		return Config{}, err
	}
	return ParseConfig(cfg)
}

// ParseConfig maps the [Network] and [Evolution] sections of an INI file,
// filling defaults for missing keys, and validates the result.
func ParseConfig(cfg *ini.File) (Config, error) {
	config := DefaultConfig()

	// Absent keys leave the defaults in place; malformed values are errors.
	if err := cfg.Section("Network").StrictMapTo(&config.Network); err != nil {
		return Config{}, fmt.Errorf("%w: [Network] section: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Section("Evolution").StrictMapTo(&config.Evolution); err != nil {
		return Config{}, fmt.Errorf("%w: [Evolution] section: %w", ErrInvalidConfig, err)
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if err := ValidateShape(c.Network.Shape); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Evolution.PopSize <= 0 {
		return fmt.Errorf("%w: pop_size must be positive", ErrInvalidConfig)
	}
	if c.Evolution.MutationRate < 0 || c.Evolution.MutationRate > 1 {
		return fmt.Errorf("%w: mutation_rate must be between 0 and 1", ErrInvalidConfig)
	}
	if c.Evolution.SelectionConstant <= 0 {
		return fmt.Errorf("%w: selection_constant must be positive", ErrInvalidConfig)
	}
	if c.Evolution.Elitism < 1 || c.Evolution.Elitism > c.Evolution.PopSize {
		return fmt.Errorf("%w: elitism must be between 1 and pop_size (%d)", ErrInvalidConfig, c.Evolution.PopSize)
	}
	return nil
}

// fitness returns the configured fitness function or the default.
func (c Config) fitness() FitnessFunc {
	if c.Fitness == nil {
		return DefaultFitness
	}
	return c.Fitness
}

// Score applies the configured fitness function.
func (c Config) Score(score, lifetime int) float64 {
	return c.fitness()(score, lifetime)
}

// clone copies the slices so the value no longer aliases the caller's.
func (c Config) clone() Config {
	c.Network.Shape = slices.Clone(c.Network.Shape)
	return c
}

// LoadIni opens an INI file with the loader options shared by every section parser.
func LoadIni(filePath string) (*ini.File, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{
		SpaceBeforeInlineComment: true, // "key = value ; comment"
	}, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file '%s': %w", filePath, err)
	}
	return cfg, nil
}
