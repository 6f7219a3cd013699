// Package driftgo scores lexical semantic change between two corpora.
//
// Given per-word contextual embedding sets from two time periods, the
// Scorer computes average pairwise difference (APD) scores and
// cluster-based sense-distribution scores (entropy difference and
// Jensen-Shannon divergence), at full dimensionality and across a set
// of reduced dimensionalities.
//
// The algorithmic pieces live in subpackages: apd (pairwise metrics
// and divergences), cluster (k-means, GMM, DBSCAN and model
// selection), reduce (PCA and spectral embedding), store and
// blobstore (representation loading), evaluate (gold-standard
// correlation).
package driftgo
