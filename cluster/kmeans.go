package cluster

import (
	"fmt"
	"math"
	"math/rand"
)

// DefaultMaxIter bounds the Lloyd and EM iteration counts.
const DefaultMaxIter = 200

// KMeans fits K centroids with k-means++ initialization followed by
// Lloyd's algorithm. A fixed Seed makes the fit deterministic for a
// given input order.
type KMeans struct {
	K       int
	MaxIter int // 0 means DefaultMaxIter
	Seed    int64
}

// KMeansResult holds the labeling of a converged k-means fit.
type KMeansResult struct {
	Labels    []Label
	Centroids [][]float64
	// Inertia is the sum of squared distances of every point to its
	// assigned centroid.
	Inertia float64
}

// Fit clusters X. It requires at least K points.
func (km KMeans) Fit(X [][]float64) (*KMeansResult, error) {
	n := len(X)
	if km.K < 1 {
		return nil, fmt.Errorf("kmeans: k must be positive, got %d", km.K)
	}
	if n < km.K {
		return nil, fmt.Errorf("kmeans: %d points cannot form %d clusters", n, km.K)
	}

	maxIter := km.MaxIter
	if maxIter <= 0 {
		maxIter = DefaultMaxIter
	}

	rng := rand.New(rand.NewSource(km.Seed))
	dim := len(X[0])
	centroids := plusPlusInit(rng, X, km.K)

	labels := make([]Label, n)
	for i := range labels {
		labels[i] = -1
	}
	counts := make([]int, km.K)
	sums := make([][]float64, km.K)
	for j := range sums {
		sums[j] = make([]float64, dim)
	}

	for iter := 0; iter < maxIter; iter++ {
		changed := false

		for i, x := range X {
			best := Label(0)
			minDist := math.Inf(1)
			for j, c := range centroids {
				if d := sqDist(x, c); d < minDist {
					minDist = d
					best = Label(j)
				}
			}
			if labels[i] != best {
				labels[i] = best
				changed = true
			}
		}

		if !changed {
			break
		}

		for j := range sums {
			counts[j] = 0
			for d := range sums[j] {
				sums[j][d] = 0
			}
		}
		for i, x := range X {
			j := int(labels[i])
			counts[j]++
			for d, v := range x {
				sums[j][d] += v
			}
		}
		for j := range centroids {
			if counts[j] == 0 {
				// Re-seed an empty cluster with a random point.
				copy(centroids[j], X[rng.Intn(n)])
				continue
			}
			scale := 1 / float64(counts[j])
			for d := range centroids[j] {
				centroids[j][d] = sums[j][d] * scale
			}
		}
	}

	var inertia float64
	for i, x := range X {
		inertia += sqDist(x, centroids[labels[i]])
	}

	return &KMeansResult{Labels: labels, Centroids: centroids, Inertia: inertia}, nil
}

// plusPlusInit seeds centroids with the k-means++ scheme: each further
// centroid is drawn with probability proportional to its squared
// distance from the nearest centroid chosen so far.
func plusPlusInit(rng *rand.Rand, X [][]float64, k int) [][]float64 {
	n := len(X)
	centroids := make([][]float64, 0, k)
	centroids = append(centroids, clone(X[rng.Intn(n)]))

	d2 := make([]float64, n)
	for i, x := range X {
		d2[i] = sqDist(x, centroids[0])
	}

	for len(centroids) < k {
		var total float64
		for _, d := range d2 {
			total += d
		}
		var next int
		if total == 0 {
			// All remaining points coincide with a centroid.
			next = rng.Intn(n)
		} else {
			r := rng.Float64() * total
			var cum float64
			for i, d := range d2 {
				cum += d
				if r <= cum {
					next = i
					break
				}
			}
		}
		c := clone(X[next])
		centroids = append(centroids, c)
		for i, x := range X {
			if d := sqDist(x, c); d < d2[i] {
				d2[i] = d
			}
		}
	}

	return centroids
}

func sqDist(a, b []float64) float64 {
	var s float64
	for i := range a {
		d := a[i] - b[i]
		s += d * d
	}
	return s
}

func clone(x []float64) []float64 {
	c := make([]float64, len(x))
	copy(c, x)
	return c
}
