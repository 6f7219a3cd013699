package cluster

import "fmt"

type categoricalOptions struct {
	dropNoise bool
}

// CategoricalOption adjusts how FitCategoricals treats the labeling.
type CategoricalOption func(*categoricalOptions)

// DropNoise excludes noise points from the categorical support and
// renormalizes each period by its non-noise count. The default counts
// noise as a bucket of its own.
func DropNoise() CategoricalOption {
	return func(o *categoricalOptions) {
		o.dropNoise = true
	}
}

// FitCategoricals splits a cluster assignment at the period boundary
// and fits one categorical distribution per period over the unioned
// label support, sorted by ascending label. Labels absent from one
// period appear with probability zero, so both vectors share the same
// support length and index alignment.
func FitCategoricals(labels []Label, n1, n2 int, optFns ...CategoricalOption) (probs1, probs2 []float64, err error) {
	if len(labels) != n1+n2 {
		return nil, nil, fmt.Errorf("cluster: %d labels cannot split into periods of %d and %d", len(labels), n1, n2)
	}

	var opts categoricalOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	support := Distinct(labels)
	if opts.dropNoise && len(support) > 0 && support[0].IsNoise() {
		support = support[1:]
	}

	index := make(map[Label]int, len(support))
	for i, l := range support {
		index[l] = i
	}

	count := func(period []Label) ([]float64, float64) {
		counts := make([]float64, len(support))
		var total float64
		for _, l := range period {
			if i, ok := index[l]; ok {
				counts[i]++
				total++
			}
		}
		return counts, total
	}

	fit := func(period []Label, n float64) []float64 {
		counts, kept := count(period)
		den := n
		if opts.dropNoise {
			den = kept
		}
		if den == 0 {
			return counts // empty period: all-zero vector
		}
		for i := range counts {
			counts[i] /= den
		}
		return counts
	}

	probs1 = fit(labels[:n1], float64(n1))
	probs2 = fit(labels[n1:], float64(n2))
	return probs1, probs2, nil
}
