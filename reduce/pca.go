package reduce

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// PCA projects onto the top principal components of the
// column-centered data via a thin singular value decomposition.
type PCA struct{}

func (PCA) Name() string { return "pca" }

// Reduce projects X to dim principal components.
// dim may not exceed min(points, input dimension).
func (p PCA) Reduce(X [][]float64, dim int) ([][]float64, error) {
	n, d, err := validate(X, dim)
	if err != nil {
		return nil, err
	}
	if limit := min(n, d); dim > limit {
		return nil, fmt.Errorf("reduce: pca target dimension %d exceeds rank bound %d", dim, limit)
	}

	centered := mat.NewDense(n, d, nil)
	means := make([]float64, d)
	for _, x := range X {
		for j, v := range x {
			means[j] += v
		}
	}
	for j := range means {
		means[j] /= float64(n)
	}
	for i, x := range X {
		for j, v := range x {
			centered.Set(i, j, v-means[j])
		}
	}

	var svd mat.SVD
	if !svd.Factorize(centered, mat.SVDThin) {
		return nil, fmt.Errorf("reduce: svd failed to converge")
	}
	var v mat.Dense
	svd.VTo(&v)

	components := v.Slice(0, d, 0, dim)
	var projected mat.Dense
	projected.Mul(centered, components)

	out := make([][]float64, n)
	for i := range out {
		row := make([]float64, dim)
		mat.Row(row, i, &projected)
		out[i] = row
	}
	return out, nil
}
