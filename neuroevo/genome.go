package neuroevo

import (
	"fmt"
	"slices"

	"github.com/baldhumanity/snakeai-go/neuroevo/nn"
)

// Rand is the random source threaded through every stochastic operation.
// *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// Genome is the weight data of a fixed-topology feed-forward network together
// with its layer widths. A Genome is never modified after construction, so it
// can be shared freely between agents and populations.
type Genome struct {
	shape   []int
	weights [][][]float64 // layer -> node -> incoming edge
}

// NewGenome creates a genome from explicit weights. The weights are copied and
// must match shape exactly: len(shape)-1 layers, shape[i+1] nodes in layer i,
// shape[i] weights per node.
func NewGenome(shape []int, weights [][][]float64) (*Genome, error) {
	if err := ValidateShape(shape); err != nil {
		return nil, err
	}
	if len(weights) != len(shape)-1 {
		return nil, fmt.Errorf("%w: %d weight layers for shape %v", ErrShapeMismatch, len(weights), shape)
	}
	g := &Genome{shape: slices.Clone(shape), weights: make([][][]float64, len(weights))}
	for i, layer := range weights {
		if len(layer) != shape[i+1] {
			return nil, fmt.Errorf("%w: layer %d has %d nodes, shape declares %d", ErrShapeMismatch, i, len(layer), shape[i+1])
		}
		g.weights[i] = make([][]float64, len(layer))
		for j, node := range layer {
			if len(node) != shape[i] {
				return nil, fmt.Errorf("%w: layer %d node %d has %d weights, shape declares %d", ErrShapeMismatch, i, j, len(node), shape[i])
			}
			g.weights[i][j] = slices.Clone(node)
		}
	}
	return g, nil
}

// NewRandomGenome creates a genome whose weights are drawn uniformly from
// [-1, 1], in flatten order.
func NewRandomGenome(shape []int, rng Rand) (*Genome, error) {
	if err := ValidateShape(shape); err != nil {
		return nil, err
	}
	flat := make([]float64, EncodedLen(shape))
	for i := range flat {
		flat[i] = randomWeight(rng)
	}
	return Unflatten(shape, flat)
}

// Unflatten decodes a flat gene sequence produced by Flatten. Values are
// consumed layer by layer, node by node, edge by edge. Extra trailing values
// are ignored; a short sequence fails with ErrEncoding.
func Unflatten(shape []int, flat []float64) (*Genome, error) {
	if err := ValidateShape(shape); err != nil {
		return nil, err
	}
	need := EncodedLen(shape)
	if len(flat) < need {
		return nil, fmt.Errorf("%w: shape %v needs %d genes, got %d", ErrEncoding, shape, need, len(flat))
	}

	// Nodes are capacity-capped views into a private copy of flat.
	genes := slices.Clone(flat[:need])
	g := &Genome{shape: slices.Clone(shape), weights: make([][][]float64, len(shape)-1)}
	pos := 0
	for i := 0; i < len(shape)-1; i++ {
		layer := make([][]float64, shape[i+1])
		for j := range layer {
			layer[j] = genes[pos : pos+shape[i] : pos+shape[i]]
			pos += shape[i]
		}
		g.weights[i] = layer
	}
	return g, nil
}

// ValidateShape checks that shape has at least an input and an output layer
// and only positive widths.
func ValidateShape(shape []int) error {
	if len(shape) < 2 {
		return fmt.Errorf("%w: %v needs at least an input and an output layer", ErrInvalidShape, shape)
	}
	for i, width := range shape {
		if width <= 0 {
			return fmt.Errorf("%w: layer %d of %v has width %d", ErrInvalidShape, i, shape, width)
		}
	}
	return nil
}

// EncodedLen returns the number of genes in a flat encoding of shape.
func EncodedLen(shape []int) int {
	n := 0
	for i := 0; i+1 < len(shape); i++ {
		n += shape[i] * shape[i+1]
	}
	return n
}

// Shape returns a copy of the layer widths.
func (g *Genome) Shape() []int {
	return slices.Clone(g.shape)
}

// Weights returns a deep copy of the layered weights.
func (g *Genome) Weights() [][][]float64 {
	out := make([][][]float64, len(g.weights))
	for i, layer := range g.weights {
		out[i] = make([][]float64, len(layer))
		for j, node := range layer {
			out[i][j] = slices.Clone(node)
		}
	}
	return out
}

// Len returns the number of genes (weights) in the genome.
func (g *Genome) Len() int {
	return EncodedLen(g.shape)
}

// Flatten linearizes the weights: layer index ascending, then node, then edge.
func (g *Genome) Flatten() []float64 {
	flat := make([]float64, 0, g.Len())
	for _, layer := range g.weights {
		for _, node := range layer {
			flat = append(flat, node...)
		}
	}
	return flat
}

// Evaluate runs a forward pass. The input must have shape[0] values.
func (g *Genome) Evaluate(input []float64) ([]float64, error) {
	return nn.Forward(g.shape, g.weights, input)
}

// Decide evaluates the network and returns the index of the strongest output,
// breaking ties in favour of the lowest index.
func (g *Genome) Decide(input []float64) (int, error) {
	out, err := g.Evaluate(input)
	if err != nil {
		return -1, err
	}
	return nn.Argmax(out), nil
}

// String returns a short description of the genome.
func (g *Genome) String() string {
	return fmt.Sprintf("Genome(Shape: %v, Genes: %d)", g.shape, g.Len())
}

// randomWeight draws a weight uniformly from [-1, 1].
func randomWeight(rng Rand) float64 {
	return rng.Float64()*2 - 1
}
