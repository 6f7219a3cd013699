package reduce

import "fmt"

// Reducer projects a point set to a lower dimensionality.
type Reducer interface {
	// Reduce returns a projection of X with exactly dim columns,
	// preserving point count and order.
	Reduce(X [][]float64, dim int) ([][]float64, error)
	// Name tags result columns produced at this reduction.
	Name() string
}

func validate(X [][]float64, dim int) (n, d int, err error) {
	n = len(X)
	if n == 0 {
		return 0, 0, fmt.Errorf("reduce: empty point set")
	}
	d = len(X[0])
	for i, x := range X {
		if len(x) != d {
			return 0, 0, fmt.Errorf("reduce: ragged input, point %d has dimension %d, want %d", i, len(x), d)
		}
	}
	if dim < 1 {
		return 0, 0, fmt.Errorf("reduce: target dimension must be positive, got %d", dim)
	}
	return n, d, nil
}
