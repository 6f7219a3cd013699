package apd

import "gonum.org/v1/gonum/floats"

// Normalize returns an L2-normalized copy of every vector in X.
// A zero-norm vector fails with ErrZeroVector rather than producing NaN.
func Normalize(X [][]float64) ([][]float64, error) {
	out := make([][]float64, len(X))
	for i, x := range X {
		n := floats.Norm(x, 2)
		if n == 0 {
			return nil, ErrZeroVector
		}
		v := make([]float64, len(x))
		copy(v, x)
		floats.Scale(1/n, v)
		out[i] = v
	}
	return out, nil
}
