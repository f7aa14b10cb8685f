package neuroevo

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// scriptedRand replays fixed draws and records the order of calls.
type scriptedRand struct {
	t      *testing.T
	floats []float64
	ints   []int
	calls  []string
}

func (s *scriptedRand) Float64() float64 {
	s.t.Helper()
	require.NotEmpty(s.t, s.floats, "unexpected Float64 draw")
	v := s.floats[0]
	s.floats = s.floats[1:]
	s.calls = append(s.calls, "float")
	return v
}

func (s *scriptedRand) Intn(n int) int {
	s.t.Helper()
	require.NotEmpty(s.t, s.ints, "unexpected Intn draw")
	v := s.ints[0]
	require.Less(s.t, v, n, "scripted Intn value out of range")
	s.ints = s.ints[1:]
	s.calls = append(s.calls, "int")
	return v
}

func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func testConfig(popSize int, shape ...int) Config {
	cfg := DefaultConfig()
	cfg.Network.Shape = shape
	cfg.Evolution.PopSize = popSize
	return cfg
}

// mustGenome decodes a flat encoding or fails the test.
func mustGenome(t *testing.T, shape []int, flat ...float64) *Genome {
	t.Helper()
	g, err := Unflatten(shape, flat)
	require.NoError(t, err)
	return g
}

// terminateAll finishes every agent with the given fitness values.
func terminateAll(t *testing.T, p *Population, fitnesses ...float64) {
	t.Helper()
	require.Len(t, fitnesses, p.Size())
	for i, f := range fitnesses {
		require.NoError(t, p.Agent(i).Terminate(f))
	}
}
