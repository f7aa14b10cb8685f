package nn

import "math"

// Sigmoid is the logistic activation 1 / (1 + e^-x).
//
// There is no slope factor and no input clamping.
func Sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}
