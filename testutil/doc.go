// Package testutil provides seeded synthetic embedding generators for
// tests: Gaussian clouds, clustered period samples and uniform noise.
package testutil
