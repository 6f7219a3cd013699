package cluster

import (
	"testing"

	"github.com/hupe1980/driftgo/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// twoPeriodBlobs builds the canonical 2-D scenario: 10 points per
// period, one sense tight around (0,0) and one around (10,10).
func twoPeriodBlobs(t *testing.T) [][]float64 {
	t.Helper()
	rng := testutil.NewRNG(99)
	X := rng.Blob([]float64{0, 0}, 10, 0.2)
	return append(X, rng.Blob([]float64{10, 10}, 10, 0.2)...)
}

func TestSilhouetteGrid_RecoversTwoSenses(t *testing.T) {
	X := twoPeriodBlobs(t)

	sel, err := SilhouetteGrid{Model: ModelKMeans, KMin: 2, KMax: 3, Seeds: []int64{0, 1}}.Select(X)
	require.NoError(t, err)

	assert.Equal(t, 2, sel.K)
	assert.Greater(t, sel.Silhouette, 0.8)

	// Labels partition exactly along the spatial groups.
	first := sel.Labels[0]
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, sel.Labels[i])
	}
	second := sel.Labels[10]
	assert.NotEqual(t, first, second)
	for i := 10; i < 20; i++ {
		assert.Equal(t, second, sel.Labels[i])
	}
}

func TestSilhouetteGrid_GMM(t *testing.T) {
	X := twoPeriodBlobs(t)

	sel, err := SilhouetteGrid{Model: ModelGMM, KMin: 2, KMax: 3, Seeds: []int64{0, 1}}.Select(X)
	require.NoError(t, err)
	assert.Equal(t, 2, sel.K)
}

func TestSilhouetteGrid_FallbackBelowThreshold(t *testing.T) {
	X := twoPeriodBlobs(t)

	// An unreachable threshold forces the no-structure conclusion.
	sel, err := SilhouetteGrid{Model: ModelKMeans, KMin: 2, KMax: 3, Seeds: []int64{0}, Threshold: 0.999}.Select(X)
	require.NoError(t, err)

	assert.Equal(t, 1, sel.K)
	assert.Zero(t, sel.Silhouette)
	assert.Equal(t, make([]Label, len(X)), sel.Labels)
}

func TestSilhouetteGrid_Deterministic(t *testing.T) {
	rng := testutil.NewRNG(5)
	X := rng.GaussianVectors(30, 2)

	g := SilhouetteGrid{Model: ModelKMeans, KMin: 2, KMax: 4, Seeds: []int64{0, 1, 2}}
	a, err := g.Select(X)
	require.NoError(t, err)
	b, err := g.Select(X)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestScoreDriven_KMeansElbow(t *testing.T) {
	rng := testutil.NewRNG(7)
	X := rng.Blob([]float64{0, 0}, 20, 0.05)
	X = append(X, rng.Blob([]float64{30, 0}, 20, 0.05)...)
	X = append(X, rng.Blob([]float64{0, 30}, 20, 0.05)...)

	sel, err := ScoreDriven{Model: ModelKMeans, KMin: 2, KMax: 6, Seeds: []int64{101, 102}}.Select(X)
	require.NoError(t, err)

	assert.Equal(t, 3, sel.K)
	assert.Greater(t, sel.Silhouette, 0.9)
}

func TestScoreDriven_GMMBIC(t *testing.T) {
	X := twoPeriodBlobs(t)

	sel, err := ScoreDriven{Model: ModelGMM, KMin: 2, KMax: 3, Seeds: []int64{101}}.Select(X)
	require.NoError(t, err)

	assert.Equal(t, 2, sel.K)
	first := sel.Labels[0]
	second := sel.Labels[10]
	assert.NotEqual(t, first, second)
}

func TestFixedGrid(t *testing.T) {
	X := twoPeriodBlobs(t)

	sel, err := FixedGrid{}.Select(X)
	require.NoError(t, err)
	assert.Equal(t, 2, sel.K)

	// Same grid with an unreachable threshold degrades to one sense.
	sel, err = FixedGrid{Threshold: 0.999}.Select(X)
	require.NoError(t, err)
	assert.Equal(t, 1, sel.K)
	assert.Equal(t, make([]Label, len(X)), sel.Labels)
}
