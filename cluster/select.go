package cluster

import (
	"fmt"
	"math"
)

// DefaultSilhouetteThreshold is the quality floor below which a grid
// search concludes the cloud has no detectable sense structure.
const DefaultSilhouetteThreshold = 0.1

// Selector chooses a clustering configuration for a point set.
type Selector interface {
	Select(X [][]float64) (*Selection, error)
}

// Selection is the outcome of model selection: a labeling, the chosen
// K and the quality score that won.
type Selection struct {
	Labels     []Label
	K          int
	Silhouette float64
	// Covariance is only meaningful when the GMM BIC branch chose it.
	Covariance Covariance
}

// singleCluster is the degenerate fallback: every point in one sense.
func singleCluster(n int) *Selection {
	return &Selection{Labels: make([]Label, n), K: 1}
}

func fitLabels(m Model, k int, seed int64, X [][]float64) ([]Label, error) {
	switch m {
	case ModelKMeans:
		res, err := KMeans{K: k, Seed: seed}.Fit(X)
		if err != nil {
			return nil, err
		}
		return res.Labels, nil
	case ModelGMM:
		res, err := GMM{K: k, Seed: seed}.Fit(X)
		if err != nil {
			return nil, err
		}
		return res.Labels, nil
	default:
		return nil, fmt.Errorf("cluster: unknown model %v", m)
	}
}

// SilhouetteGrid selects the (K, seed) pair with the best silhouette
// over the full K×seed grid, falling back to a single cluster when
// even the best score stays under Threshold.
type SilhouetteGrid struct {
	Model      Model
	KMin, KMax int     // 0,0 means 2..10
	Seeds      []int64 // nil means 0..9
	Threshold  float64 // 0 means DefaultSilhouetteThreshold
}

// Select runs the grid. Ties break toward the first-encountered
// maximum, iterating by ascending K and then seed order.
func (g SilhouetteGrid) Select(X [][]float64) (*Selection, error) {
	kMin, kMax := g.KMin, g.KMax
	if kMin == 0 && kMax == 0 {
		kMin, kMax = 2, 10
	}
	seeds := g.Seeds
	if len(seeds) == 0 {
		seeds = defaultSeeds(0, 10)
	}
	threshold := g.Threshold
	if threshold == 0 {
		threshold = DefaultSilhouetteThreshold
	}
	if kMin < 2 || kMax < kMin {
		return nil, fmt.Errorf("cluster: invalid K range [%d, %d]", kMin, kMax)
	}

	bestSil := math.Inf(-1)
	bestK, bestSeed := 0, int64(0)
	for k := kMin; k <= kMax; k++ {
		for _, seed := range seeds {
			labels, err := fitLabels(g.Model, k, seed, X)
			if err != nil {
				return nil, err
			}
			sil, err := Silhouette(X, labels)
			if err != nil {
				return nil, err
			}
			if sil > bestSil {
				bestSil, bestK, bestSeed = sil, k, seed
			}
		}
	}

	if bestSil < threshold {
		return singleCluster(len(X)), nil
	}

	labels, err := fitLabels(g.Model, bestK, bestSeed, X)
	if err != nil {
		return nil, err
	}
	return &Selection{Labels: labels, K: bestK, Silhouette: bestSil}, nil
}

// ScoreDriven selects without a silhouette grid: k-means picks K per
// seed from the elbow of the inertia curve and keeps the
// best-silhouette seed; GMM grid-searches covariance structure × K by
// minimum BIC at the first seed.
type ScoreDriven struct {
	Model      Model
	KMin, KMax int     // 0,0 means 2..10
	Seeds      []int64 // nil means 101..110
}

func (s ScoreDriven) Select(X [][]float64) (*Selection, error) {
	kMin, kMax := s.KMin, s.KMax
	if kMin == 0 && kMax == 0 {
		kMin, kMax = 2, 10
	}
	seeds := s.Seeds
	if len(seeds) == 0 {
		seeds = defaultSeeds(101, 10)
	}
	if kMin < 2 || kMax < kMin {
		return nil, fmt.Errorf("cluster: invalid K range [%d, %d]", kMin, kMax)
	}

	switch s.Model {
	case ModelKMeans:
		return s.selectKMeansElbow(X, kMin, kMax, seeds)
	case ModelGMM:
		return s.selectGMMBIC(X, kMin, kMax, seeds[0])
	default:
		return nil, fmt.Errorf("cluster: unknown model %v", s.Model)
	}
}

func (s ScoreDriven) selectKMeansElbow(X [][]float64, kMin, kMax int, seeds []int64) (*Selection, error) {
	var best *Selection
	for _, seed := range seeds {
		inertias := make([]float64, 0, kMax-kMin+1)
		for k := kMin; k <= kMax; k++ {
			res, err := KMeans{K: k, Seed: seed}.Fit(X)
			if err != nil {
				return nil, err
			}
			inertias = append(inertias, res.Inertia)
		}
		k := ElbowK(inertias, kMin, kMax)

		res, err := KMeans{K: k, Seed: seed}.Fit(X)
		if err != nil {
			return nil, err
		}
		sil, err := Silhouette(X, res.Labels)
		if err != nil {
			return nil, err
		}
		if best == nil || sil > best.Silhouette {
			best = &Selection{Labels: res.Labels, K: k, Silhouette: sil}
		}
	}
	return best, nil
}

func (s ScoreDriven) selectGMMBIC(X [][]float64, kMin, kMax int, seed int64) (*Selection, error) {
	bestBIC := math.Inf(1)
	var best *Selection
	for k := kMin; k <= kMax; k++ {
		for _, cov := range CovarianceGrid {
			res, err := GMM{K: k, Covariance: cov, RegCovar: 1e-4, Seed: seed}.Fit(X)
			if err != nil {
				return nil, err
			}
			if res.BIC < bestBIC {
				bestBIC = res.BIC
				best = &Selection{Labels: res.Labels, K: k, Covariance: cov}
			}
		}
	}
	return best, nil
}

// FixedGrid is the legacy heuristic: sweep a short K list with k-means
// and keep the best silhouette, degrading to a single cluster when no
// K beats Threshold.
type FixedGrid struct {
	Ks        []int   // nil means 2,3,4,5
	Threshold float64 // 0 means DefaultSilhouetteThreshold
	Seed      int64
}

func (f FixedGrid) Select(X [][]float64) (*Selection, error) {
	ks := f.Ks
	if len(ks) == 0 {
		ks = []int{2, 3, 4, 5}
	}
	threshold := f.Threshold
	if threshold == 0 {
		threshold = DefaultSilhouetteThreshold
	}

	best := singleCluster(len(X))
	bestSil := threshold
	for _, k := range ks {
		res, err := KMeans{K: k, Seed: f.Seed}.Fit(X)
		if err != nil {
			return nil, err
		}
		sil, err := Silhouette(X, res.Labels)
		if err != nil {
			return nil, err
		}
		if sil > bestSil {
			bestSil = sil
			best = &Selection{Labels: res.Labels, K: k, Silhouette: sil}
		}
	}
	return best, nil
}

func defaultSeeds(start int64, count int) []int64 {
	seeds := make([]int64, count)
	for i := range seeds {
		seeds[i] = start + int64(i)
	}
	return seeds
}
