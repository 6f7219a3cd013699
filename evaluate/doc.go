// Package evaluate correlates score tables with gold-standard
// semantic-change annotations.
package evaluate
