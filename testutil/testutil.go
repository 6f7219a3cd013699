package testutil

import "math/rand"

// RNG encapsulates a seeded random number generator for reproducible
// synthetic data.
type RNG struct {
	rand *rand.Rand
	seed int64
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 { return r.seed }

// UniformVectors generates vectors with coordinates in [0, 1).
func (r *RNG) UniformVectors(num, dim int) [][]float64 {
	vectors := make([][]float64, num)
	for i := range vectors {
		v := make([]float64, dim)
		for j := range v {
			v[j] = r.rand.Float64()
		}
		vectors[i] = v
	}
	return vectors
}

// GaussianVectors generates vectors with standard normal coordinates.
func (r *RNG) GaussianVectors(num, dim int) [][]float64 {
	vectors := make([][]float64, num)
	for i := range vectors {
		v := make([]float64, dim)
		for j := range v {
			v[j] = r.rand.NormFloat64()
		}
		vectors[i] = v
	}
	return vectors
}

// Blob generates points normally scattered around a center.
func (r *RNG) Blob(center []float64, num int, spread float64) [][]float64 {
	vectors := make([][]float64, num)
	for i := range vectors {
		v := make([]float64, len(center))
		for j := range v {
			v[j] = center[j] + r.rand.NormFloat64()*spread
		}
		vectors[i] = v
	}
	return vectors
}

// TwoBlobs generates num points split evenly between two well-separated
// Gaussian blobs, in blob order. Useful for clustering tests where the
// ground-truth partition must be recoverable.
func (r *RNG) TwoBlobs(num, dim int, separation, spread float64) [][]float64 {
	c1 := make([]float64, dim)
	c2 := make([]float64, dim)
	for j := range c2 {
		c2[j] = separation
	}
	out := r.Blob(c1, num/2, spread)
	return append(out, r.Blob(c2, num-num/2, spread)...)
}
