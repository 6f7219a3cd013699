package reduce

import (
	"math"
	"testing"

	"github.com/hupe1980/driftgo/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPCA_Contract(t *testing.T) {
	rng := testutil.NewRNG(1)
	X := rng.GaussianVectors(30, 10)

	for _, dim := range []int{2, 5, 10} {
		out, err := PCA{}.Reduce(X, dim)
		require.NoError(t, err)
		require.Len(t, out, 30)
		for _, row := range out {
			assert.Len(t, row, dim)
		}
	}
}

func TestPCA_RecoversPlanarStructure(t *testing.T) {
	// Points on a 2-D plane embedded in 5-D: projecting to 2 keeps
	// pairwise distances intact.
	rng := testutil.NewRNG(2)
	plane := rng.GaussianVectors(25, 2)
	X := make([][]float64, len(plane))
	for i, p := range plane {
		X[i] = []float64{p[0] + p[1], p[0] - p[1], 2 * p[0], -p[1], 0.5 * p[0]}
	}

	out, err := PCA{}.Reduce(X, 2)
	require.NoError(t, err)

	distIn := func(X [][]float64, i, j int) float64 {
		var s float64
		for c := range X[i] {
			d := X[i][c] - X[j][c]
			s += d * d
		}
		return math.Sqrt(s)
	}
	for i := 0; i < len(X); i++ {
		for j := i + 1; j < len(X); j++ {
			assert.InDelta(t, distIn(X, i, j), distIn(out, i, j), 1e-8)
		}
	}
}

func TestPCA_Deterministic(t *testing.T) {
	rng := testutil.NewRNG(3)
	X := rng.GaussianVectors(20, 6)

	a, err := PCA{}.Reduce(X, 3)
	require.NoError(t, err)
	b, err := PCA{}.Reduce(X, 3)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestPCA_Errors(t *testing.T) {
	_, err := PCA{}.Reduce(nil, 2)
	assert.Error(t, err)

	_, err = PCA{}.Reduce([][]float64{{1, 2}, {3, 4}}, 0)
	assert.Error(t, err)

	// Target above the rank bound.
	_, err = PCA{}.Reduce([][]float64{{1, 2}, {3, 4}}, 3)
	assert.Error(t, err)

	// Ragged input.
	_, err = PCA{}.Reduce([][]float64{{1, 2}, {3}}, 1)
	assert.Error(t, err)
}

func TestSpectral_Contract(t *testing.T) {
	rng := testutil.NewRNG(4)
	X := rng.TwoBlobs(30, 4, 10, 0.3)

	out, err := Spectral{Neighbors: 5}.Reduce(X, 2)
	require.NoError(t, err)
	require.Len(t, out, 30)
	for _, row := range out {
		assert.Len(t, row, 2)
	}
}

func TestSpectral_Deterministic(t *testing.T) {
	rng := testutil.NewRNG(5)
	X := rng.GaussianVectors(20, 3)

	a, err := Spectral{Neighbors: 4}.Reduce(X, 2)
	require.NoError(t, err)
	b, err := Spectral{Neighbors: 4}.Reduce(X, 2)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSpectral_Errors(t *testing.T) {
	rng := testutil.NewRNG(6)
	X := rng.GaussianVectors(5, 3)

	// dim > n-2.
	_, err := Spectral{}.Reduce(X, 4)
	assert.Error(t, err)

	_, err = Spectral{}.Reduce(nil, 1)
	assert.Error(t, err)
}

func TestReducerNames(t *testing.T) {
	assert.Equal(t, "pca", PCA{}.Name())
	assert.Equal(t, "spectral", Spectral{}.Name())
}
