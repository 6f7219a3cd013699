// Package cluster turns an embedding cloud into a categorical sense
// distribution.
//
// It provides the clustering primitives (seeded k-means, Gaussian
// mixtures with four covariance structures, DBSCAN), the quality
// measures driving model selection (silhouette, inertia elbows, BIC),
// three selection policies behind the Selector interface, and the
// categorical fitter that converts a labeling plus the period boundary
// into two aligned probability vectors.
//
// Everything is deterministic given the configured seeds and the input
// order; no primitive touches the global random source.
package cluster
