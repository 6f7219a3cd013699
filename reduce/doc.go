// Package reduce projects embedding clouds to lower dimensionalities.
//
// Reducers are consumed as black boxes by the scoring pipeline; both
// backends are deterministic, preserve point count and order, and
// produce exactly the requested output dimension.
package reduce
