package cluster

import "gonum.org/v1/gonum/floats"

// kneedleSensitivity is the S parameter of the Kneedle detector:
// how far the difference curve must drop below a local maximum before
// that maximum counts as an elbow.
const kneedleSensitivity = 1.0

// Elbows locates the elbows of a convex, decreasing curve (typically
// k-means inertia evaluated at consecutive K starting from kMin) with
// the Kneedle method. The returned K values are ascending; an empty
// result means the curve has no detectable elbow.
func Elbows(values []float64, kMin int) []int {
	n := len(values)
	if n < 3 {
		return nil
	}
	maxY := floats.Max(values)
	minY := floats.Min(values)
	if maxY == minY {
		return nil
	}

	// Flip the convex decreasing curve into the canonical concave
	// increasing form and take the difference against the diagonal.
	diff := make([]float64, n)
	for i, y := range values {
		xn := float64(i) / float64(n-1)
		yn := (maxY - y) / (maxY - minY)
		diff[i] = yn - xn
	}

	step := kneedleSensitivity / float64(n-1)
	var elbows []int
	for i := 1; i < n-1; i++ {
		if diff[i] < diff[i-1] || diff[i] < diff[i+1] {
			continue // not a local maximum
		}
		threshold := diff[i] - step
		for j := i + 1; j < n; j++ {
			if diff[j] > diff[i] {
				break // a higher maximum takes over
			}
			if diff[j] < threshold {
				elbows = append(elbows, kMin+i)
				break
			}
		}
	}
	return elbows
}

// ElbowK picks K for a k-means sweep over [kMin, kMax]: the smallest
// detected elbow, or kMax when the inertia curve shows none.
func ElbowK(values []float64, kMin, kMax int) int {
	if e := Elbows(values, kMin); len(e) > 0 {
		return e[0]
	}
	return kMax
}
