// Package apd implements the average-pairwise-difference metric family
// used to compare two clouds of contextual embeddings, plus the
// entropy and divergence measures applied to sense distributions.
//
// All functions are pure: they take point sets or probability vectors
// and return a scalar. Degenerate inputs (zero-norm vectors feeding a
// scaled sub-score, probability vectors with mismatched support) fail
// with an explicit error instead of letting NaN leak into aggregates.
package apd
