// Package nn holds the numeric kernel of the fixed-topology networks evolved by
// package neuroevo: a layered feed-forward pass with sigmoid activation and the
// argmax decision rule used to turn an output vector into an action.
package nn

import (
	"errors"
	"fmt"
)

// ErrShapeMismatch reports an input vector or node weight vector whose length
// disagrees with the declared layer widths.
var ErrShapeMismatch = errors.New("shape mismatch")

// Forward computes the network's output for the given input.
//
// weights[i][j] holds the incoming weights of node j in layer i, one per
// activation of the previous layer. Every node computes the dot product of the
// previous layer's activations with its weights and applies Sigmoid; the
// activations of the last layer are returned. There is no bias term.
func Forward(shape []int, weights [][][]float64, input []float64) ([]float64, error) {
	if len(shape) < 2 {
		return nil, fmt.Errorf("%w: shape %v has fewer than two layers", ErrShapeMismatch, shape)
	}
	if len(input) != shape[0] {
		return nil, fmt.Errorf("%w: input count (%d) does not match network inputs (%d)", ErrShapeMismatch, len(input), shape[0])
	}
	if len(weights) != len(shape)-1 {
		return nil, fmt.Errorf("%w: %d weight layers for shape %v", ErrShapeMismatch, len(weights), shape)
	}

	prev := input
	for i, layer := range weights {
		if len(layer) != shape[i+1] {
			return nil, fmt.Errorf("%w: layer %d has %d nodes, shape declares %d", ErrShapeMismatch, i, len(layer), shape[i+1])
		}
		next := make([]float64, len(layer))
		for j, node := range layer {
			raw, err := dot(prev, node)
			if err != nil {
				return nil, fmt.Errorf("layer %d node %d: %w", i, j, err)
			}
			next[j] = Sigmoid(raw)
		}
		prev = next
	}
	return prev, nil
}

// dot returns the dot product of two equally sized vectors.
func dot(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: dot product of vectors with lengths %d and %d", ErrShapeMismatch, len(a), len(b))
	}
	sum := 0.0
	for k := range a {
		sum += a[k] * b[k]
	}
	return sum, nil
}

// Argmax returns the index of the first element holding the maximum value,
// or -1 for an empty slice.
func Argmax(values []float64) int {
	if len(values) == 0 {
		return -1
	}
	best := 0
	for i := 1; i < len(values); i++ {
		if values[i] > values[best] {
			best = i
		}
	}
	return best
}
