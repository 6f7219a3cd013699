package driftgo

import (
	"log/slog"

	"github.com/hupe1980/driftgo/apd"
	"github.com/hupe1980/driftgo/reduce"
)

// SelectionPolicy names the model-selection strategy the cluster
// scoring operations use.
type SelectionPolicy int

const (
	// SelectionSilhouette grid-searches K and seed by silhouette with a
	// single-cluster fallback under the quality threshold.
	SelectionSilhouette SelectionPolicy = iota
	// SelectionScore picks K per seed from the inertia elbow (k-means)
	// or by minimum BIC over covariance structures (GMM).
	SelectionScore
)

const (
	// DefaultMinSamples guards the cross-corpus scoring operations.
	DefaultMinSamples = 150
	// DefaultWithinMinSamples guards the within-corpus baseline, which
	// halves the sample before comparing.
	DefaultWithinMinSamples = 50
	// DefaultCombinedDim is the reduction target of the combined-APD
	// operation.
	DefaultCombinedDim = 100
)

type options struct {
	minSamples  int // 0 means per-operation default
	dims        []int
	reducer     reduce.Reducer
	selection   SelectionPolicy
	kMin, kMax  int
	seeds       []int64
	metrics     []apd.Metric
	normalize   bool
	parallelism int
	combinedDim int
	logger      *Logger
}

// Option configures a Scorer.
type Option func(*options)

// WithMinSamples overrides the minimum period-sample count. Words
// where either period has at most this many occurrences are skipped.
// The default is 150 for cross-corpus scoring and 50 for the
// within-corpus baseline.
func WithMinSamples(n int) Option {
	return func(o *options) {
		o.minSamples = n
	}
}

// WithDims sets the reduced dimensionalities the scoring operations
// sweep. Default: 2, 5, 10, 20, 50, 100.
func WithDims(dims ...int) Option {
	return func(o *options) {
		o.dims = dims
	}
}

// WithReducer sets the dimensionality reducer. Default: reduce.PCA.
func WithReducer(r reduce.Reducer) Option {
	return func(o *options) {
		if r == nil {
			r = reduce.PCA{}
		}
		o.reducer = r
	}
}

// WithReducerName selects the reducer by name: "pca" or "spectral".
// Unknown names keep the default.
func WithReducerName(name string) Option {
	return func(o *options) {
		switch name {
		case "spectral":
			o.reducer = reduce.Spectral{}
		case "pca":
			o.reducer = reduce.PCA{}
		}
	}
}

// WithSelection sets the model-selection policy for cluster scoring.
// Default: SelectionSilhouette.
func WithSelection(p SelectionPolicy) Option {
	return func(o *options) {
		o.selection = p
	}
}

// WithKRange bounds the candidate cluster counts. Default: 2..10.
func WithKRange(kMin, kMax int) Option {
	return func(o *options) {
		o.kMin, o.kMax = kMin, kMax
	}
}

// WithSeeds fixes the seed list the selection policies iterate.
// nil keeps the per-policy defaults.
func WithSeeds(seeds ...int64) Option {
	return func(o *options) {
		o.seeds = seeds
	}
}

// WithAPDMetrics sets the metric family computed by ScoreAPD.
// Default: Euclidean, Cosine, Combined2.
func WithAPDMetrics(metrics ...apd.Metric) Option {
	return func(o *options) {
		o.metrics = metrics
	}
}

// WithNormalize enables per-vector L2 normalization of the combined
// point set before cluster scoring.
func WithNormalize(normalize bool) Option {
	return func(o *options) {
		o.normalize = normalize
	}
}

// WithParallelism bounds the number of words scored concurrently.
// Values below 2 keep scoring synchronous. Output order is unaffected.
func WithParallelism(n int) Option {
	return func(o *options) {
		o.parallelism = n
	}
}

// WithCombinedDim sets the reduction target of ScoreCombinedAPD and
// ScoreWithinCorpus. Default: 100.
func WithCombinedDim(dim int) Option {
	return func(o *options) {
		o.combinedDim = dim
	}
}

// WithLogger configures structured logging for scoring operations.
// Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		dims:        []int{2, 5, 10, 20, 50, 100},
		reducer:     reduce.PCA{},
		kMin:        2,
		kMax:        10,
		metrics:     []apd.Metric{apd.Euclidean, apd.Cosine, apd.Combined2},
		parallelism: 1,
		combinedDim: DefaultCombinedDim,
		logger:      NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
