package cluster

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridSearchDBSCAN(t *testing.T) {
	X := [][]float64{
		{0, 0}, {0.1, 0}, {0, 0.1},
		{10, 10}, {10.1, 10}, {10, 10.1},
	}

	results, err := GridSearchDBSCAN(X, []float64{0.5, 0.01}, []int{2, 3})
	require.NoError(t, err)
	require.Len(t, results, 4)

	// eps=0.5, minPoints=2: both blobs found, no noise.
	r := results[0]
	assert.Equal(t, 0.5, r.Eps)
	assert.Equal(t, 2, r.MinPoints)
	assert.Equal(t, 2, r.Clusters)
	assert.Zero(t, r.NoiseFrac)
	assert.Greater(t, r.Silhouette, 0.9)
	assert.Equal(t, 2, r.Dim)

	// eps=0.01: everything is noise and the silhouette is undefined.
	r = results[2]
	assert.Equal(t, 0, r.Clusters)
	assert.Equal(t, 1.0, r.NoiseFrac)
	assert.True(t, math.IsNaN(r.Silhouette))
}
