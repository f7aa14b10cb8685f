package snake

import (
	"errors"
	"fmt"

	"gopkg.in/ini.v1"

	"github.com/baldhumanity/snakeai-go/neuroevo"
)

// ErrInvalidConfig is returned for game settings outside their valid range.
var ErrInvalidConfig = errors.New("invalid game config")

// Config holds the grid world rules.
type Config struct {
	Cols             int `ini:"cols"`
	Rows             int `ini:"rows"`
	InitialLength    int `ini:"initial_length"`
	StarvationFrames int `ini:"starvation_frames"` // Frames a snake may live without eating
	FruitFrames      int `ini:"fruit_frames"`      // Frames added to the budget per fruit
}

// DefaultConfig returns the rules of the original game: a 20x20 board, a
// snake of length 3, 50 frames to find the first fruit and 50 more per fruit.
func DefaultConfig() Config {
	return Config{
		Cols:             20,
		Rows:             20,
		InitialLength:    3,
		StarvationFrames: 50,
		FruitFrames:      50,
	}
}

// LoadConfig reads the [Game] section of an INI file.
func LoadConfig(filePath string) (Config, error) {
	cfg, err := neuroevo.LoadIni(filePath)
	if err != nil {
		return Config{}, err
	}
	return ParseConfig(cfg)
}

// ParseConfig maps the [Game] section over the defaults and validates it.
func ParseConfig(cfg *ini.File) (Config, error) {
	config := DefaultConfig()
	if err := cfg.Section("Game").StrictMapTo(&config); err != nil {
		return Config{}, fmt.Errorf("%w: [Game] section: %w", ErrInvalidConfig, err)
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// Validate checks that the snake fits on the board and can move at all.
func (c Config) Validate() error {
	if c.Cols <= 0 || c.Rows <= 0 {
		return fmt.Errorf("%w: board must be at least 1x1, got %dx%d", ErrInvalidConfig, c.Cols, c.Rows)
	}
	// A single segment would collide with its own duplicated tail when it first eats.
	if c.InitialLength < 2 {
		return fmt.Errorf("%w: initial_length must be at least 2", ErrInvalidConfig)
	}
	// The body is laid out leftwards from the centre column.
	if c.InitialLength > c.Cols/2+1 {
		return fmt.Errorf("%w: initial_length %d does not fit left of the centre of a %d column board", ErrInvalidConfig, c.InitialLength, c.Cols)
	}
	if c.Cols*c.Rows <= c.InitialLength {
		return fmt.Errorf("%w: no room for fruit on a %dx%d board", ErrInvalidConfig, c.Cols, c.Rows)
	}
	if c.StarvationFrames <= 0 {
		return fmt.Errorf("%w: starvation_frames must be positive", ErrInvalidConfig)
	}
	if c.FruitFrames < 0 {
		return fmt.Errorf("%w: fruit_frames cannot be negative", ErrInvalidConfig)
	}
	return nil
}
