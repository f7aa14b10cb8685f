package snake

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"no columns", func(c *Config) { c.Cols = 0 }},
		{"no rows", func(c *Config) { c.Rows = -1 }},
		{"single segment", func(c *Config) { c.InitialLength = 1 }},
		{"snake longer than half the board", func(c *Config) { c.InitialLength = 12 }},
		{"no starvation budget", func(c *Config) { c.StarvationFrames = 0 }},
		{"negative fruit frames", func(c *Config) { c.FruitFrames = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
			_, err := NewGame(cfg, fruitsAt(t))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snake.ini")
	require.NoError(t, os.WriteFile(path, []byte(`
[Network]
shape = 8 10 4

[Game]
cols = 30
rows = 15
starvation_frames = 80
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, Config{Cols: 30, Rows: 15, InitialLength: 3, StarvationFrames: 80, FruitFrames: 50}, cfg)

	for _, content := range []string{
		"[Game]\ncols = 0\n",
		"[Game]\nrows = twenty\n",
		"[Game]\nstarvation_frames = 5O\n",
	} {
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		_, err = LoadConfig(path)
		assert.ErrorIs(t, err, ErrInvalidConfig, "config %q", content)
	}
}
