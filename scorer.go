package driftgo

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/driftgo/apd"
	"github.com/hupe1980/driftgo/cluster"
	"github.com/hupe1980/driftgo/store"
)

// Scorer computes semantic-change scores for target words from two
// corpus representation stores.
type Scorer struct {
	corpus1 store.Reps
	corpus2 store.Reps
	opts    options
}

// NewScorer creates a Scorer over two representation stores. corpus1
// is the earlier period; the order is significant.
func NewScorer(corpus1, corpus2 store.Reps, optFns ...Option) *Scorer {
	return &Scorer{
		corpus1: corpus1,
		corpus2: corpus2,
		opts:    applyOptions(optFns),
	}
}

// ScoreAPD computes average pairwise difference scores over the
// configured metric set, at full dimensionality and at every reduced
// dimensionality. Columns: apd_<metric> and apd_<metric>_<reducer><dim>.
func (s *Scorer) ScoreAPD(ctx context.Context, targets []string) (*Table, error) {
	return s.run(ctx, "apd", targets, func(ctx context.Context, word string) (*Record, error) {
		u1, u2, err := s.gather(word, s.minSamples(DefaultMinSamples))
		if err != nil {
			return nil, err
		}

		rec := NewRecord()
		for _, m := range s.opts.metrics {
			v, err := apd.Pairwise(u1, u2, m)
			if err != nil {
				return nil, fmt.Errorf("apd %s: %w", m, err)
			}
			col := "apd_" + m.String()
			rec.Set(col, v)
			s.opts.logger.LogScore(ctx, word, col, v)
		}

		X := stack(u1, u2)
		red := s.opts.reducer.Name()
		for _, dim := range s.opts.dims {
			a, b, err := s.reduceSplit(X, len(u1), dim)
			if err != nil {
				return nil, fmt.Errorf("reduce %s%d: %w", red, dim, err)
			}
			for _, m := range s.opts.metrics {
				v, err := apd.Pairwise(a, b, m)
				if err != nil {
					return nil, fmt.Errorf("apd %s at %s%d: %w", m, red, dim, err)
				}
				col := fmt.Sprintf("apd_%s_%s%d", m, red, dim)
				rec.Set(col, v)
				s.opts.logger.LogScore(ctx, word, col, v)
			}
		}
		return rec, nil
	})
}

// ScoreClusters computes cluster-based entropy-difference and JSD
// scores for k-means and GMM labelings, at full dimensionality and at
// every reduced dimensionality, plus full-dimensionality Euclidean and
// cosine APD baselines. Columns: apd_euclidean, apd_cosine,
// <model>_ed, <model>_jsd and <model>_<reducer><dim>_{ed,jsd}.
func (s *Scorer) ScoreClusters(ctx context.Context, targets []string) (*Table, error) {
	return s.run(ctx, "clusters", targets, func(ctx context.Context, word string) (*Record, error) {
		u1, u2, err := s.gather(word, s.minSamples(DefaultMinSamples))
		if err != nil {
			return nil, err
		}
		n1, n2 := len(u1), len(u2)

		X := stack(u1, u2)
		full := X
		if s.opts.normalize {
			if full, err = apd.Normalize(X); err != nil {
				return nil, fmt.Errorf("normalize: %w", err)
			}
		}

		rec := NewRecord()
		for _, m := range []apd.Metric{apd.Euclidean, apd.Cosine} {
			v, err := apd.Pairwise(full[:n1], full[n1:], m)
			if err != nil {
				return nil, fmt.Errorf("apd %s: %w", m, err)
			}
			rec.Set("apd_"+m.String(), v)
		}

		if err := s.clusterScores(ctx, word, full, n1, n2, "", rec); err != nil {
			return nil, err
		}

		red := s.opts.reducer.Name()
		for _, dim := range s.opts.dims {
			// Reduction always runs on the raw stacked set; normalization,
			// when enabled, reapplies to the reduced coordinates.
			Xr, err := s.opts.reducer.Reduce(X, dim)
			if err != nil {
				return nil, fmt.Errorf("reduce %s%d: %w", red, dim, err)
			}
			if s.opts.normalize {
				if Xr, err = apd.Normalize(Xr); err != nil {
					return nil, fmt.Errorf("normalize %s%d: %w", red, dim, err)
				}
			}
			tag := fmt.Sprintf("%s%d", red, dim)
			if err := s.clusterScores(ctx, word, Xr, n1, n2, tag, rec); err != nil {
				return nil, err
			}
		}
		return rec, nil
	})
}

// ScoreCombinedAPD reduces the stacked point set once (default PCA to
// 100 dimensions) and computes Euclidean, cosine and combined2 APD on
// the reduced coordinates. Columns: apd_euclidean, apd_cosine,
// apd_combined2.
func (s *Scorer) ScoreCombinedAPD(ctx context.Context, targets []string) (*Table, error) {
	return s.run(ctx, "combined_apd", targets, func(ctx context.Context, word string) (*Record, error) {
		u1, u2, err := s.gather(word, s.minSamples(DefaultMinSamples))
		if err != nil {
			return nil, err
		}

		a, b, err := s.reduceSplit(stack(u1, u2), len(u1), s.opts.combinedDim)
		if err != nil {
			return nil, fmt.Errorf("reduce %s%d: %w", s.opts.reducer.Name(), s.opts.combinedDim, err)
		}

		rec := NewRecord()
		for _, m := range []apd.Metric{apd.Euclidean, apd.Cosine, apd.Combined2} {
			v, err := apd.Pairwise(a, b, m)
			if err != nil {
				return nil, fmt.Errorf("apd %s: %w", m, err)
			}
			col := "apd_" + m.String()
			rec.Set(col, v)
			s.opts.logger.LogScore(ctx, word, col, v)
		}
		return rec, nil
	})
}

// ScoreWithinCorpus computes the APD between two random halves of one
// corpus's occurrences, a stability baseline for the cross-corpus
// scores. The split is deterministic per word. Columns follow the
// configured metric set: apd_<metric>.
func (s *Scorer) ScoreWithinCorpus(ctx context.Context, reps store.Reps, targets []string) (*Table, error) {
	return s.run(ctx, "within_corpus", targets, func(ctx context.Context, word string) (*Record, error) {
		u, ok := reps.Lookup(word)
		if !ok {
			return nil, &ErrMissingWord{Word: word, Corpus: 1}
		}
		min := s.minSamples(DefaultWithinMinSamples)
		n := len(u)
		if n/2 <= min {
			return nil, &ErrInsufficientData{Word: word, Count: n / 2, Min: min}
		}

		Xr, err := s.opts.reducer.Reduce(u, s.opts.combinedDim)
		if err != nil {
			return nil, fmt.Errorf("reduce %s%d: %w", s.opts.reducer.Name(), s.opts.combinedDim, err)
		}

		rng := rand.New(rand.NewSource(wordSeed(word)))
		perm := rng.Perm(n)
		half := n / 2
		a := make([][]float64, 0, half)
		b := make([][]float64, 0, n-half)
		for i, p := range perm {
			if i < half {
				a = append(a, Xr[p])
			} else {
				b = append(b, Xr[p])
			}
		}

		rec := NewRecord()
		for _, m := range s.opts.metrics {
			v, err := apd.Pairwise(a, b, m)
			if err != nil {
				return nil, fmt.Errorf("apd %s: %w", m, err)
			}
			rec.Set("apd_"+m.String(), v)
		}
		return rec, nil
	})
}

// clusterScores fits both model families on X, converts the labelings
// to period categoricals and writes ED/JSD columns onto rec. tag names
// the reduction setting ("" for full dimensionality).
func (s *Scorer) clusterScores(ctx context.Context, word string, X [][]float64, n1, n2 int, tag string, rec *Record) error {
	for _, m := range []cluster.Model{cluster.ModelKMeans, cluster.ModelGMM} {
		sel, err := s.selector(m).Select(X)
		if err != nil {
			return fmt.Errorf("%s selection: %w", m, err)
		}
		s.opts.logger.LogSelection(ctx, word, m.String(), sel.K, sel.Silhouette)

		p1, p2, err := cluster.FitCategoricals(sel.Labels, n1, n2)
		if err != nil {
			return fmt.Errorf("%s categoricals: %w", m, err)
		}
		ed, err := apd.EntropyDifference(p1, p2)
		if err != nil {
			return fmt.Errorf("%s entropy difference: %w", m, err)
		}
		jsd, err := apd.JensenShannon(p1, p2)
		if err != nil {
			return fmt.Errorf("%s jsd: %w", m, err)
		}

		base := m.String()
		if tag != "" {
			base += "_" + tag
		}
		rec.Set(base+"_ed", ed)
		rec.Set(base+"_jsd", jsd)
		s.opts.logger.LogScore(ctx, word, base+"_ed", ed)
		s.opts.logger.LogScore(ctx, word, base+"_jsd", jsd)
	}
	return nil
}

type scoreFunc func(ctx context.Context, word string) (*Record, error)

// run scores every target, splitting outcomes into table rows, skips
// and failures. With parallelism enabled, words run concurrently but
// land at their target index, so output order never changes.
func (s *Scorer) run(ctx context.Context, op string, targets []string, score scoreFunc) (*Table, error) {
	if len(targets) == 0 {
		return nil, ErrNoTargets
	}

	type outcome struct {
		rec *Record
		err error
	}
	outcomes := make([]outcome, len(targets))

	if s.opts.parallelism > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(s.opts.parallelism)
		for i, word := range targets {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				rec, err := score(gctx, word)
				outcomes[i] = outcome{rec: rec, err: err}
				return nil // per-word failures stay in the table
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i, word := range targets {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			rec, err := score(ctx, word)
			outcomes[i] = outcome{rec: rec, err: err}
		}
	}

	table := NewTable()
	var skipped, failed int
	for i, word := range targets {
		out := outcomes[i]
		switch {
		case out.err == nil:
			table.Add(word, out.rec)
		case isSkip(out.err):
			skipped++
			s.opts.logger.LogSkip(ctx, word, out.err)
		default:
			failed++
			s.opts.logger.LogFailure(ctx, word, out.err)
			table.AddFailure(word, out.err)
		}
	}
	s.opts.logger.LogTable(ctx, op, table.Len(), skipped, failed)

	return table, nil
}

// gather pulls a word's period samples from both stores, enforcing the
// minimum-sample guard on each period.
func (s *Scorer) gather(word string, min int) (u1, u2 [][]float64, err error) {
	u1, ok := s.corpus1.Lookup(word)
	if !ok {
		return nil, nil, &ErrMissingWord{Word: word, Corpus: 1}
	}
	u2, ok = s.corpus2.Lookup(word)
	if !ok {
		return nil, nil, &ErrMissingWord{Word: word, Corpus: 2}
	}
	if len(u1) <= min {
		return nil, nil, &ErrInsufficientData{Word: word, Count: len(u1), Min: min}
	}
	if len(u2) <= min {
		return nil, nil, &ErrInsufficientData{Word: word, Count: len(u2), Min: min}
	}
	return u1, u2, nil
}

// minSamples resolves the guard threshold: an explicit option wins,
// otherwise the per-operation default applies.
func (s *Scorer) minSamples(def int) int {
	if s.opts.minSamples > 0 {
		return s.opts.minSamples
	}
	return def
}

func (s *Scorer) selector(m cluster.Model) cluster.Selector {
	switch s.opts.selection {
	case SelectionScore:
		return cluster.ScoreDriven{Model: m, KMin: s.opts.kMin, KMax: s.opts.kMax, Seeds: s.opts.seeds}
	default:
		return cluster.SilhouetteGrid{Model: m, KMin: s.opts.kMin, KMax: s.opts.kMax, Seeds: s.opts.seeds}
	}
}

// reduceSplit reduces the stacked period set and splits it back at the
// period boundary, keeping both periods in one shared projection.
func (s *Scorer) reduceSplit(X [][]float64, n1, dim int) (a, b [][]float64, err error) {
	Xr, err := s.opts.reducer.Reduce(X, dim)
	if err != nil {
		return nil, nil, err
	}
	return Xr[:n1], Xr[n1:], nil
}

func stack(u1, u2 [][]float64) [][]float64 {
	X := make([][]float64, 0, len(u1)+len(u2))
	X = append(X, u1...)
	return append(X, u2...)
}

func wordSeed(word string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(word))
	return int64(h.Sum64())
}
