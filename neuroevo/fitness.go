package neuroevo

import "math"

// FitnessFunc scores a finished run from the number of fruit eaten and the
// number of frames survived.
type FitnessFunc func(score, lifetime int) float64

// DefaultFitness rewards eating far more than surviving:
// round(lifetime/10) + (score*5)^2. Rounding is half-to-even.
func DefaultFitness(score, lifetime int) float64 {
	s := float64(score) * 5
	return math.RoundToEven(float64(lifetime)/10) + s*s
}
