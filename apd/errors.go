package apd

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptySet is returned when a point set has no points.
	ErrEmptySet = errors.New("empty point set")

	// ErrZeroVector is returned when a zero-norm vector feeds a
	// normalization or a scaled sub-score.
	ErrZeroVector = errors.New("zero-norm vector")
)

// ErrUnknownMetric indicates a metric identifier outside the supported set.
type ErrUnknownMetric struct {
	Name string
}

func (e *ErrUnknownMetric) Error() string {
	return fmt.Sprintf("unknown metric: %q", e.Name)
}

// ErrMalformedDistribution indicates probability vectors that violate
// the equal-support, sums-to-one contract of the divergence measures.
type ErrMalformedDistribution struct {
	Detail string
}

func (e *ErrMalformedDistribution) Error() string {
	return "malformed distribution: " + e.Detail
}
