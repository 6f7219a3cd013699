package driftgo

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/driftgo/store"
	"github.com/hupe1980/driftgo/testutil"
)

// twoCorpora builds stores where "shifted" moves between two distant
// blobs and "stable" stays in place.
func twoCorpora(t *testing.T, num, dim int) (store.Reps, store.Reps) {
	t.Helper()
	rng := testutil.NewRNG(42)

	origin := make([]float64, dim)
	far := make([]float64, dim)
	for j := range far {
		far[j] = 10
	}

	corpus1 := store.Reps{
		"shifted": rng.Blob(origin, num, 0.1),
		"stable":  rng.Blob(origin, num, 0.1),
	}
	corpus2 := store.Reps{
		"shifted": rng.Blob(far, num, 0.1),
		"stable":  rng.Blob(origin, num, 0.1),
	}
	return corpus1, corpus2
}

func TestScorer_ScoreAPD(t *testing.T) {
	ctx := context.Background()
	corpus1, corpus2 := twoCorpora(t, 12, 4)

	s := NewScorer(corpus1, corpus2,
		WithMinSamples(2),
		WithDims(2),
	)

	table, err := s.ScoreAPD(ctx, []string{"shifted", "stable"})
	require.NoError(t, err)
	require.Equal(t, []string{"shifted", "stable"}, table.Words())
	assert.Empty(t, table.Failures)

	// Full-dimensionality and reduced columns for each default metric.
	assert.Contains(t, table.Columns(), "apd_euclidean")
	assert.Contains(t, table.Columns(), "apd_cosine")
	assert.Contains(t, table.Columns(), "apd_combined2")
	assert.Contains(t, table.Columns(), "apd_euclidean_pca2")

	shifted, ok := table.Lookup("shifted", "apd_euclidean")
	require.True(t, ok)
	stable, ok := table.Lookup("stable", "apd_euclidean")
	require.True(t, ok)
	assert.Greater(t, shifted, stable)
}

func TestScorer_SkipsMissingAndSparse(t *testing.T) {
	ctx := context.Background()
	rng := testutil.NewRNG(7)

	corpus1 := store.Reps{
		"present": rng.GaussianVectors(20, 3),
		"sparse":  rng.GaussianVectors(2, 3),
		"only1":   rng.GaussianVectors(20, 3),
	}
	corpus2 := store.Reps{
		"present": rng.GaussianVectors(20, 3),
		"sparse":  rng.GaussianVectors(20, 3),
	}

	s := NewScorer(corpus1, corpus2, WithMinSamples(5), WithDims(2))

	table, err := s.ScoreAPD(ctx, []string{"present", "sparse", "only1", "only2"})
	require.NoError(t, err)

	// Skipped words are omitted, not failed.
	assert.Equal(t, []string{"present"}, table.Words())
	assert.Empty(t, table.Failures)
}

func TestScorer_FailureIsolated(t *testing.T) {
	ctx := context.Background()
	rng := testutil.NewRNG(3)

	// The zero vector breaks the cosine sub-score for "broken" only.
	corpus1 := store.Reps{
		"broken": {{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		"fine":   rng.GaussianVectors(6, 3),
	}
	corpus2 := store.Reps{
		"broken": rng.GaussianVectors(6, 3),
		"fine":   rng.GaussianVectors(6, 3),
	}

	s := NewScorer(corpus1, corpus2, WithMinSamples(1), WithDims(2))

	table, err := s.ScoreAPD(ctx, []string{"broken", "fine"})
	require.NoError(t, err)

	assert.Equal(t, []string{"fine"}, table.Words())
	require.Contains(t, table.Failures, "broken")
}

func TestScorer_ScoreClusters(t *testing.T) {
	ctx := context.Background()
	corpus1, corpus2 := twoCorpora(t, 10, 3)

	s := NewScorer(corpus1, corpus2,
		WithMinSamples(2),
		WithDims(2),
		WithKRange(2, 3),
		WithSeeds(1, 2),
	)

	table, err := s.ScoreClusters(ctx, []string{"shifted"})
	require.NoError(t, err)
	require.Empty(t, table.Failures)

	assert.Contains(t, table.Columns(), "apd_euclidean")
	assert.Contains(t, table.Columns(), "kmeans_ed")
	assert.Contains(t, table.Columns(), "kmeans_jsd")
	assert.Contains(t, table.Columns(), "gmm_ed")
	assert.Contains(t, table.Columns(), "kmeans_pca2_jsd")

	// The periods occupy disjoint senses: both entropies are zero and
	// the divergence saturates at ln 2.
	ed, ok := table.Lookup("shifted", "kmeans_ed")
	require.True(t, ok)
	assert.InDelta(t, 0.0, ed, 1e-9)

	jsd, ok := table.Lookup("shifted", "kmeans_jsd")
	require.True(t, ok)
	assert.InDelta(t, math.Ln2, jsd, 1e-9)
}

func TestScorer_ScoreCombinedAPD(t *testing.T) {
	ctx := context.Background()
	corpus1, corpus2 := twoCorpora(t, 12, 4)

	s := NewScorer(corpus1, corpus2,
		WithMinSamples(2),
		WithCombinedDim(2),
	)

	table, err := s.ScoreCombinedAPD(ctx, []string{"shifted", "stable"})
	require.NoError(t, err)
	require.Empty(t, table.Failures)

	assert.Equal(t, []string{"apd_euclidean", "apd_cosine", "apd_combined2"}, table.Columns())

	shifted, ok := table.Lookup("shifted", "apd_combined2")
	require.True(t, ok)
	stable, ok := table.Lookup("stable", "apd_combined2")
	require.True(t, ok)
	assert.Greater(t, shifted, stable)
}

func TestScorer_ScoreWithinCorpus(t *testing.T) {
	ctx := context.Background()
	rng := testutil.NewRNG(11)

	reps := store.Reps{"word": rng.GaussianVectors(16, 4)}

	s := NewScorer(nil, nil,
		WithMinSamples(3),
		WithCombinedDim(2),
	)

	first, err := s.ScoreWithinCorpus(ctx, reps, []string{"word"})
	require.NoError(t, err)
	require.Equal(t, []string{"word"}, first.Words())

	// The half-split is seeded per word: rerunning reproduces scores.
	second, err := s.ScoreWithinCorpus(ctx, reps, []string{"word"})
	require.NoError(t, err)

	for _, col := range first.Columns() {
		a, _ := first.Lookup("word", col)
		b, _ := second.Lookup("word", col)
		assert.Equal(t, a, b, col)
	}
}

func TestScorer_ParallelMatchesSequential(t *testing.T) {
	ctx := context.Background()
	corpus1, corpus2 := twoCorpora(t, 12, 4)
	targets := []string{"shifted", "stable"}

	seq := NewScorer(corpus1, corpus2, WithMinSamples(2), WithDims(2))
	par := NewScorer(corpus1, corpus2, WithMinSamples(2), WithDims(2), WithParallelism(4))

	want, err := seq.ScoreAPD(ctx, targets)
	require.NoError(t, err)
	got, err := par.ScoreAPD(ctx, targets)
	require.NoError(t, err)

	assert.Equal(t, want.Words(), got.Words())
	assert.Equal(t, want.Columns(), got.Columns())
	for _, word := range want.Words() {
		for _, col := range want.Columns() {
			a, _ := want.Lookup(word, col)
			b, _ := got.Lookup(word, col)
			assert.Equal(t, a, b)
		}
	}
}

func TestScorer_NoTargets(t *testing.T) {
	s := NewScorer(store.Reps{}, store.Reps{})

	_, err := s.ScoreAPD(context.Background(), nil)
	assert.True(t, errors.Is(err, ErrNoTargets))
}

func TestScorer_ContextCancelled(t *testing.T) {
	corpus1, corpus2 := twoCorpora(t, 12, 4)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewScorer(corpus1, corpus2, WithMinSamples(2), WithDims(2))
	_, err := s.ScoreAPD(ctx, []string{"shifted"})
	assert.Error(t, err)
}
