package cluster

import "math"

// ScanResult is one cell of a DBSCAN parameter grid.
type ScanResult struct {
	Eps       float64
	MinPoints int
	// Silhouette of the resulting labeling, with the noise label
	// treated as its own group. NaN when the labeling leaves fewer
	// than two groups (including the all-noise case).
	Silhouette float64
	// Clusters found, the noise label excluded.
	Clusters  int
	NoiseFrac float64
	// Dim is the input dimensionality, recorded so rows from runs at
	// different reductions can be concatenated.
	Dim int
}

// GridSearchDBSCAN evaluates every (eps, minPoints) cell and reports
// the clustering quality per cell. It applies no selection policy:
// choosing a configuration from the table is left to the analyst.
func GridSearchDBSCAN(X [][]float64, epsilons []float64, minPoints []int) ([]ScanResult, error) {
	results := make([]ScanResult, 0, len(epsilons)*len(minPoints))

	for _, eps := range epsilons {
		for _, mp := range minPoints {
			labels, err := DBSCAN{Eps: eps, MinPoints: mp}.Fit(X)
			if err != nil {
				return nil, err
			}

			var noise int
			for _, l := range labels {
				if l.IsNoise() {
					noise++
				}
			}
			distinct := Distinct(labels)
			clusters := len(distinct)
			if noise > 0 {
				clusters--
			}

			sil := math.NaN()
			if noise < len(labels) && len(distinct) >= 2 {
				if s, err := Silhouette(X, labels); err == nil {
					sil = s
				}
			}

			results = append(results, ScanResult{
				Eps:        eps,
				MinPoints:  mp,
				Silhouette: sil,
				Clusters:   clusters,
				NoiseFrac:  float64(noise) / float64(len(labels)),
				Dim:        len(X[0]),
			})
		}
	}

	return results, nil
}
