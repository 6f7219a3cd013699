package cluster

import (
	"fmt"
	"sort"
)

// Label identifies the cluster a point was assigned to.
// The sentinel Noise marks points a density-based pass rejected as
// outliers; the centroid- and mixture-based fits never produce it.
type Label int

// Noise is the outlier label emitted by DBSCAN.
const Noise Label = -1

// IsNoise reports whether l is the outlier sentinel.
func (l Label) IsNoise() bool { return l == Noise }

// Distinct returns the sorted set of labels present in the assignment.
// Noise, when present, sorts first.
func Distinct(labels []Label) []Label {
	seen := make(map[Label]struct{}, len(labels))
	for _, l := range labels {
		seen[l] = struct{}{}
	}
	out := make([]Label, 0, len(seen))
	for l := range seen {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Model is the clustering family a Selector fits.
type Model int

const (
	// ModelKMeans fits centroids with Lloyd's algorithm.
	ModelKMeans Model = iota
	// ModelGMM fits a Gaussian mixture with expectation-maximization.
	ModelGMM
)

func (m Model) String() string {
	switch m {
	case ModelKMeans:
		return "kmeans"
	case ModelGMM:
		return "gmm"
	default:
		return fmt.Sprintf("unknown(%d)", m)
	}
}
