package apd

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// sumTolerance is the slack allowed on a probability vector's total.
const sumTolerance = 1e-6

// EntropyDifference returns |H(q) − H(p)| in nats, with 0·log0 = 0.
func EntropyDifference(p, q []float64) (float64, error) {
	if err := validatePair(p, q); err != nil {
		return 0, err
	}
	return math.Abs(stat.Entropy(q) - stat.Entropy(p)), nil
}

// JensenShannon returns the Jensen-Shannon divergence between p and q
// in nats (the squared Jensen-Shannon distance convention).
// It is symmetric and zero iff p == q.
func JensenShannon(p, q []float64) (float64, error) {
	if err := validatePair(p, q); err != nil {
		return 0, err
	}
	return stat.JensenShannon(p, q), nil
}

func validatePair(p, q []float64) error {
	if len(p) != len(q) {
		return &ErrMalformedDistribution{Detail: fmt.Sprintf("support length %d vs %d", len(p), len(q))}
	}
	if len(p) == 0 {
		return &ErrMalformedDistribution{Detail: "empty support"}
	}
	if s := floats.Sum(p); math.Abs(s-1) > sumTolerance {
		return &ErrMalformedDistribution{Detail: fmt.Sprintf("p sums to %v", s)}
	}
	if s := floats.Sum(q); math.Abs(s-1) > sumTolerance {
		return &ErrMalformedDistribution{Detail: fmt.Sprintf("q sums to %v", s)}
	}
	return nil
}
