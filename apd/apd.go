package apd

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// canberraScale divides Canberra sub-scores in the combined metrics.
// It is the dimensionality of the transformer embeddings the combined
// weightings were calibrated on, kept fixed regardless of the actual
// input dimension.
const canberraScale = 768

// Metric selects the pairwise statistic computed by Pairwise.
type Metric int

const (
	// Euclidean is the mean L2 norm of (b − a) over all cross pairs.
	Euclidean Metric = iota
	// Cosine is 1 minus the mean pairwise cosine similarity.
	Cosine
	// Manhattan is the mean L1 norm of (b − a) over all cross pairs.
	Manhattan
	// Canberra is the mean Canberra distance over all cross pairs.
	Canberra
	// Combined2 averages the scaled-L2 and scaled-cosine sub-scores.
	Combined2
	// Combined3a averages scaled-L2, scaled-cosine and scaled-L1.
	Combined3a
	// Combined3b averages scaled-L2, scaled-cosine and Canberra/768.
	Combined3b
	// Combined4 averages all four sub-scores with equal weight.
	Combined4
)

func (m Metric) String() string {
	switch m {
	case Euclidean:
		return "euclidean"
	case Cosine:
		return "cosine"
	case Manhattan:
		return "manhattan"
	case Canberra:
		return "canberra"
	case Combined2:
		return "combined2"
	case Combined3a:
		return "combined3a"
	case Combined3b:
		return "combined3b"
	case Combined4:
		return "combined4"
	default:
		return "unknown"
	}
}

// ParseMetric maps a metric name to its Metric value.
func ParseMetric(s string) (Metric, error) {
	for _, m := range []Metric{Euclidean, Cosine, Manhattan, Canberra, Combined2, Combined3a, Combined3b, Combined4} {
		if m.String() == s {
			return m, nil
		}
	}
	return 0, &ErrUnknownMetric{Name: s}
}

// Pairwise computes the average pairwise difference between every point
// in a and every point in b, aggregated over all |a|×|b| pairs.
//
// The combined metrics keep the literal weighting of the calibrated
// formulas: the cosine sub-score carries an internal 0.5 factor, so
// e.g. Combined2 weights the cosine term by a net 0.25.
func Pairwise(a, b [][]float64, m Metric) (float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return 0, ErrEmptySet
	}
	switch m {
	case Euclidean:
		return meanDistance(a, b, 2), nil
	case Manhattan:
		return meanDistance(a, b, 1), nil
	case Canberra:
		return meanCanberra(a, b), nil
	case Cosine:
		cos, err := meanCosine(a, b)
		if err != nil {
			return 0, err
		}
		return 1 - cos, nil
	case Combined2, Combined3a, Combined3b, Combined4:
		return combined(a, b, m)
	default:
		return 0, &ErrUnknownMetric{Name: m.String()}
	}
}

func combined(a, b [][]float64, m Metric) (float64, error) {
	scaledL2, err := meanScaledL2(a, b)
	if err != nil {
		return 0, err
	}
	cos, err := meanCosine(a, b)
	if err != nil {
		return 0, err
	}
	scaledCos := 0.5 * (1 - cos)

	switch m {
	case Combined2:
		return 0.5 * (scaledL2 + scaledCos), nil
	case Combined3a:
		scaledL1, err := meanScaledL1(a, b)
		if err != nil {
			return 0, err
		}
		return (scaledL2 + scaledCos + scaledL1) / 3, nil
	case Combined3b:
		canb := meanCanberra(a, b) / canberraScale
		return (scaledL2 + scaledCos + canb) / 3, nil
	default: // Combined4
		scaledL1, err := meanScaledL1(a, b)
		if err != nil {
			return 0, err
		}
		canb := meanCanberra(a, b) / canberraScale
		return (scaledL2 + scaledCos + scaledL1 + canb) / 4, nil
	}
}

// meanDistance averages the Lp distance over all cross pairs.
func meanDistance(a, b [][]float64, p float64) float64 {
	var sum float64
	for _, x := range a {
		for _, y := range b {
			sum += floats.Distance(x, y, p)
		}
	}
	return sum / float64(len(a)*len(b))
}

// meanCanberra averages the Canberra distance over all cross pairs.
// Coordinates where both values are zero contribute nothing.
func meanCanberra(a, b [][]float64) float64 {
	var sum float64
	for _, x := range a {
		for _, y := range b {
			var d float64
			for i := range x {
				den := math.Abs(x[i]) + math.Abs(y[i])
				if den == 0 {
					continue
				}
				d += math.Abs(y[i]-x[i]) / den
			}
			sum += d
		}
	}
	return sum / float64(len(a)*len(b))
}

// meanCosine averages the cosine similarity over all cross pairs.
func meanCosine(a, b [][]float64) (float64, error) {
	na, err := norms(a, 2)
	if err != nil {
		return 0, err
	}
	nb, err := norms(b, 2)
	if err != nil {
		return 0, err
	}
	var sum float64
	for i, x := range a {
		for j, y := range b {
			sum += floats.Dot(x, y) / (na[i] * nb[j])
		}
	}
	return sum / float64(len(a)*len(b)), nil
}

// meanScaledL2 averages ‖y−x‖₂ / sqrt(‖x‖₂² + ‖y‖₂²) over all pairs.
func meanScaledL2(a, b [][]float64) (float64, error) {
	na, err := norms(a, 2)
	if err != nil {
		return 0, err
	}
	nb, err := norms(b, 2)
	if err != nil {
		return 0, err
	}
	var sum float64
	for i, x := range a {
		for j, y := range b {
			sum += floats.Distance(x, y, 2) / math.Sqrt(na[i]*na[i]+nb[j]*nb[j])
		}
	}
	return sum / float64(len(a)*len(b)), nil
}

// meanScaledL1 averages ‖y−x‖₁ / (‖x‖₁ + ‖y‖₁) over all pairs.
func meanScaledL1(a, b [][]float64) (float64, error) {
	na, err := norms(a, 1)
	if err != nil {
		return 0, err
	}
	nb, err := norms(b, 1)
	if err != nil {
		return 0, err
	}
	var sum float64
	for i, x := range a {
		for j, y := range b {
			sum += floats.Distance(x, y, 1) / (na[i] + nb[j])
		}
	}
	return sum / float64(len(a)*len(b)), nil
}

// norms returns the Lp norm of every vector, failing on a zero norm so
// that the scaled sub-scores never divide by zero.
func norms(x [][]float64, p float64) ([]float64, error) {
	out := make([]float64, len(x))
	for i, v := range x {
		n := floats.Norm(v, p)
		if n == 0 {
			return nil, ErrZeroVector
		}
		out[i] = n
	}
	return out, nil
}
