package reduce

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// DefaultNeighbors is the kNN graph degree of the spectral embedding.
const DefaultNeighbors = 15

// Spectral embeds the points with Laplacian eigenmaps: a symmetrized
// k-nearest-neighbor graph, its symmetric normalized Laplacian, and
// the eigenvectors of the smallest nontrivial eigenvalues. It is the
// nonlinear manifold counterpart to PCA.
type Spectral struct {
	Neighbors int // 0 means DefaultNeighbors
}

func (Spectral) Name() string { return "spectral" }

// Reduce embeds X into dim spectral coordinates.
// dim may not exceed points−2 (the trivial eigenvector is skipped).
func (s Spectral) Reduce(X [][]float64, dim int) ([][]float64, error) {
	n, _, err := validate(X, dim)
	if err != nil {
		return nil, err
	}
	if dim > n-2 {
		return nil, fmt.Errorf("reduce: spectral target dimension %d needs more than %d points", dim, n)
	}

	k := s.Neighbors
	if k <= 0 {
		k = DefaultNeighbors
	}
	if k > n-1 {
		k = n - 1
	}

	// Symmetrized kNN adjacency: an edge exists when either endpoint
	// ranks the other among its k nearest.
	adj := make([][]bool, n)
	for i := range adj {
		adj[i] = make([]bool, n)
	}
	type neighbor struct {
		idx  int
		dist float64
	}
	for i := range X {
		nbrs := make([]neighbor, 0, n-1)
		for j := range X {
			if i == j {
				continue
			}
			var d float64
			for c := range X[i] {
				diff := X[i][c] - X[j][c]
				d += diff * diff
			}
			nbrs = append(nbrs, neighbor{idx: j, dist: d})
		}
		sort.Slice(nbrs, func(a, b int) bool {
			if nbrs[a].dist == nbrs[b].dist {
				return nbrs[a].idx < nbrs[b].idx
			}
			return nbrs[a].dist < nbrs[b].dist
		})
		for _, nb := range nbrs[:k] {
			adj[i][nb.idx] = true
			adj[nb.idx][i] = true
		}
	}

	degree := make([]float64, n)
	for i := range adj {
		for j := range adj[i] {
			if adj[i][j] {
				degree[i]++
			}
		}
	}

	// Symmetric normalized Laplacian L = I − D^{−1/2} W D^{−1/2}.
	lap := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		lap.SetSym(i, i, 1)
		for j := i + 1; j < n; j++ {
			if adj[i][j] {
				lap.SetSym(i, j, -1/math.Sqrt(degree[i]*degree[j]))
			}
		}
	}

	var eig mat.EigenSym
	if !eig.Factorize(lap, true) {
		return nil, fmt.Errorf("reduce: eigendecomposition failed")
	}
	var vectors mat.Dense
	eig.VectorsTo(&vectors)

	// Eigenvalues come back ascending; column 0 is the trivial
	// constant-per-component eigenvector.
	out := make([][]float64, n)
	for i := range out {
		row := make([]float64, dim)
		for c := 0; c < dim; c++ {
			row[c] = vectors.At(i, c+1)
		}
		out[i] = row
	}
	return out, nil
}
