package cluster

import (
	"math"
	"testing"

	"github.com/hupe1980/driftgo/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGMM_TwoBlobsAllCovariances(t *testing.T) {
	rng := testutil.NewRNG(1)
	X := rng.TwoBlobs(40, 2, 15, 0.4)

	for _, cov := range CovarianceGrid {
		res, err := GMM{K: 2, Covariance: cov, Seed: 3}.Fit(X)
		require.NoError(t, err, cov.String())
		require.Len(t, res.Labels, 40, cov.String())

		first := res.Labels[0]
		for i := 0; i < 20; i++ {
			assert.Equal(t, first, res.Labels[i], cov.String())
		}
		second := res.Labels[20]
		assert.NotEqual(t, first, second, cov.String())
		for i := 20; i < 40; i++ {
			assert.Equal(t, second, res.Labels[i], cov.String())
		}

		assert.False(t, math.IsNaN(res.BIC), cov.String())
		assert.False(t, math.IsInf(res.BIC, 0), cov.String())
		assert.InDelta(t, 1.0, res.Weights[0]+res.Weights[1], 1e-9, cov.String())
	}
}

func TestGMM_Deterministic(t *testing.T) {
	rng := testutil.NewRNG(2)
	X := rng.GaussianVectors(50, 3)

	a, err := GMM{K: 3, Covariance: Diag, Seed: 11}.Fit(X)
	require.NoError(t, err)
	b, err := GMM{K: 3, Covariance: Diag, Seed: 11}.Fit(X)
	require.NoError(t, err)

	assert.Equal(t, a.Labels, b.Labels)
	assert.Equal(t, a.BIC, b.BIC)
}

func TestGMM_BICPenalizesComplexity(t *testing.T) {
	// Full covariance carries more parameters than spherical, so on
	// the same data and likelihood scale its penalty term is larger.
	assert.Greater(t,
		GMM{K: 3, Covariance: Full}.paramCount(10),
		GMM{K: 3, Covariance: Spherical}.paramCount(10),
	)
	// Parameter counts per structure for k=2, d=3.
	assert.Equal(t, 2*6+2*3+1, GMM{K: 2, Covariance: Full}.paramCount(3))
	assert.Equal(t, 6+2*3+1, GMM{K: 2, Covariance: Tied}.paramCount(3))
	assert.Equal(t, 2*3+2*3+1, GMM{K: 2, Covariance: Diag}.paramCount(3))
	assert.Equal(t, 2+2*3+1, GMM{K: 2, Covariance: Spherical}.paramCount(3))
}

func TestGMM_Errors(t *testing.T) {
	X := [][]float64{{0, 0}, {1, 1}}

	_, err := GMM{K: 0}.Fit(X)
	assert.Error(t, err)

	_, err = GMM{K: 3}.Fit(X)
	assert.Error(t, err)
}
