package evaluate

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/hupe1980/driftgo"
)

// LoadGold reads gold annotations: one "word<TAB>score" pair per line.
// Blank lines are skipped.
func LoadGold(r io.Reader) (map[string]float64, error) {
	gold := make(map[string]float64)

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		word, score, ok := strings.Cut(text, "\t")
		if !ok {
			return nil, fmt.Errorf("evaluate: line %d: expected word<TAB>score, got %q", line, text)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(score), 64)
		if err != nil {
			return nil, fmt.Errorf("evaluate: line %d: %w", line, err)
		}
		gold[strings.TrimSpace(word)] = v
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("evaluate: read gold: %w", err)
	}

	return gold, nil
}

// Spearman computes the Spearman rank correlation between one score
// column and the gold annotations, over the words present in both.
// At least two shared words are required.
func Spearman(table *driftgo.Table, column string, gold map[string]float64) (float64, error) {
	words, scores := table.Column(column)

	var x, y []float64
	for i, w := range words {
		g, ok := gold[w]
		if !ok {
			continue
		}
		x = append(x, scores[i])
		y = append(y, g)
	}
	if len(x) < 2 {
		return 0, fmt.Errorf("evaluate: column %q shares %d words with gold, need at least 2", column, len(x))
	}

	return stat.Correlation(ranks(x), ranks(y), nil), nil
}

// ranks assigns average ranks, so ties share the mean of the positions
// they occupy.
func ranks(x []float64) []float64 {
	idx := make([]int, len(x))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return x[idx[a]] < x[idx[b]] })

	out := make([]float64, len(x))
	for i := 0; i < len(idx); {
		j := i
		for j+1 < len(idx) && x[idx[j+1]] == x[idx[i]] {
			j++
		}
		// Positions i..j hold the same value.
		mean := float64(i+j)/2 + 1
		for k := i; k <= j; k++ {
			out[idx[k]] = mean
		}
		i = j + 1
	}
	return out
}
