package cluster

import (
	"fmt"
	"math"
)

// Silhouette returns the mean silhouette coefficient of a labeling
// under Euclidean distance. Points in singleton clusters contribute 0.
// It requires between 2 and n−1 distinct labels.
func Silhouette(X [][]float64, labels []Label) (float64, error) {
	n := len(X)
	if len(labels) != n {
		return 0, fmt.Errorf("silhouette: %d labels for %d points", len(labels), n)
	}

	groups := make(map[Label][]int)
	for i, l := range labels {
		groups[l] = append(groups[l], i)
	}
	if k := len(groups); k < 2 || k > n-1 {
		return 0, fmt.Errorf("silhouette: needs 2..n-1 clusters, got %d for n=%d", k, n)
	}

	var total float64
	for i, x := range X {
		own := labels[i]
		if len(groups[own]) == 1 {
			continue // singleton contributes 0
		}

		// a: mean distance to the point's own cluster, self excluded.
		var a float64
		for _, j := range groups[own] {
			if j != i {
				a += math.Sqrt(sqDist(x, X[j]))
			}
		}
		a /= float64(len(groups[own]) - 1)

		// b: smallest mean distance to any other cluster.
		b := math.Inf(1)
		for l, members := range groups {
			if l == own {
				continue
			}
			var d float64
			for _, j := range members {
				d += math.Sqrt(sqDist(x, X[j]))
			}
			if d /= float64(len(members)); d < b {
				b = d
			}
		}

		if m := math.Max(a, b); m > 0 {
			total += (b - a) / m
		}
	}

	return total / float64(n), nil
}
