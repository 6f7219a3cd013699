package cluster

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
)

// DBSCAN clusters by density: points with at least MinPoints neighbors
// (the point itself included) within Eps are core points; clusters grow
// from core points through their neighborhoods, and everything left
// over is labeled Noise.
type DBSCAN struct {
	Eps       float64
	MinPoints int
}

// Fit labels X. Neighborhoods use Euclidean distance.
func (d DBSCAN) Fit(X [][]float64) ([]Label, error) {
	n := len(X)
	if n == 0 {
		return nil, fmt.Errorf("dbscan: empty point set")
	}
	if d.Eps <= 0 {
		return nil, fmt.Errorf("dbscan: eps must be positive, got %v", d.Eps)
	}
	if d.MinPoints < 1 {
		return nil, fmt.Errorf("dbscan: min points must be at least 1, got %d", d.MinPoints)
	}

	eps2 := d.Eps * d.Eps
	neighbors := func(i int) []uint32 {
		var out []uint32
		for j := 0; j < n; j++ {
			if sqDist(X[i], X[j]) <= eps2 {
				out = append(out, uint32(j))
			}
		}
		return out
	}

	labels := make([]Label, n)
	for i := range labels {
		labels[i] = Noise
	}

	visited := roaring.New()
	core := roaring.New()
	next := Label(0)

	for i := 0; i < n; i++ {
		if visited.Contains(uint32(i)) {
			continue
		}
		visited.Add(uint32(i))

		seed := neighbors(i)
		if len(seed) < d.MinPoints {
			continue // stays noise unless a later cluster claims it
		}

		labels[i] = next
		core.Add(uint32(i))

		queue := append([]uint32(nil), seed...)
		for len(queue) > 0 {
			q := queue[0]
			queue = queue[1:]

			if labels[q].IsNoise() {
				labels[q] = next // border point claimed by this cluster
			}
			if visited.Contains(q) {
				continue
			}
			visited.Add(q)
			labels[q] = next

			reach := neighbors(int(q))
			if len(reach) >= d.MinPoints {
				core.Add(q)
				queue = append(queue, reach...)
			}
		}

		next++
	}

	return labels, nil
}
