package store

import (
	"bufio"
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/hupe1980/driftgo/blobstore"
)

// Reps maps a target word to its usage matrix: one row per occurrence,
// one column per embedding dimension.
type Reps map[string][][]float64

// Words returns the target words in sorted order.
func (r Reps) Words() []string {
	words := make([]string, 0, len(r))
	for w := range r {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// Lookup returns the usage matrix for a word, or ok=false if the word
// has no representations in this set.
func (r Reps) Lookup(word string) (usages [][]float64, ok bool) {
	usages, ok = r[word]
	return usages, ok && len(usages) > 0
}

// ReadTargets reads a target word list, one word per line. Blank lines
// are skipped and surrounding whitespace is trimmed.
func ReadTargets(ctx context.Context, bs blobstore.BlobStore, name string) ([]string, error) {
	rc, err := bs.Open(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("store: open targets %s: %w", name, err)
	}
	defer rc.Close()

	var words []string

	sc := bufio.NewScanner(rc)
	for sc.Scan() {
		word := strings.TrimSpace(sc.Text())
		if word == "" {
			continue
		}
		words = append(words, word)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("store: read targets %s: %w", name, err)
	}

	return words, nil
}
