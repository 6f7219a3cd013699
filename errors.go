package driftgo

import (
	"errors"
	"fmt"
)

var (
	// ErrNoTargets is returned when a scoring operation receives an
	// empty target list.
	ErrNoTargets = errors.New("no target words")
)

// ErrMissingWord indicates a target word absent from one of the
// representation stores. The orchestrator treats it as a skip signal,
// not a failure.
type ErrMissingWord struct {
	Word   string
	Corpus int // 1 or 2
}

func (e *ErrMissingWord) Error() string {
	return fmt.Sprintf("word %q missing from corpus %d", e.Word, e.Corpus)
}

// ErrInsufficientData indicates a period sample too small for stable
// statistics. The orchestrator treats it as a skip signal, not a
// failure.
type ErrInsufficientData struct {
	Word  string
	Count int
	Min   int
}

func (e *ErrInsufficientData) Error() string {
	return fmt.Sprintf("word %q: %d samples, need more than %d", e.Word, e.Count, e.Min)
}

// isSkip reports whether err is a data-quality filter rather than a
// contract violation.
func isSkip(err error) bool {
	var miss *ErrMissingWord
	var insuf *ErrInsufficientData
	return errors.As(err, &miss) || errors.As(err, &insuf)
}
