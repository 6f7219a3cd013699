package driftgo

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// Record holds one word's scores, remembering the order columns were
// first written.
type Record struct {
	names  []string
	values map[string]float64
}

// NewRecord creates an empty Record.
func NewRecord() *Record {
	return &Record{values: make(map[string]float64)}
}

// Set stores a score under a column name. Setting an existing column
// overwrites the value without changing its position.
func (r *Record) Set(name string, value float64) {
	if _, ok := r.values[name]; !ok {
		r.names = append(r.names, name)
	}
	r.values[name] = value
}

// Get returns the score stored under a column name.
func (r *Record) Get(name string) (float64, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Names returns the column names in first-set order.
func (r *Record) Names() []string {
	return r.names
}

// Table is a per-word score matrix: one row per scored word, one
// column per metric. Column order follows first appearance across
// rows; row order follows insertion.
type Table struct {
	words   []string
	rows    map[string]*Record
	columns []string
	colSeen map[string]struct{}

	// Failures collects per-word contract violations. Words skipped by
	// data-quality guards are omitted entirely and never appear here.
	Failures map[string]error
}

// NewTable creates an empty Table.
func NewTable() *Table {
	return &Table{
		rows:     make(map[string]*Record),
		colSeen:  make(map[string]struct{}),
		Failures: make(map[string]error),
	}
}

// Add appends a word's record, registering any new columns.
func (t *Table) Add(word string, rec *Record) {
	if _, ok := t.rows[word]; !ok {
		t.words = append(t.words, word)
	}
	t.rows[word] = rec
	for _, name := range rec.Names() {
		if _, ok := t.colSeen[name]; !ok {
			t.colSeen[name] = struct{}{}
			t.columns = append(t.columns, name)
		}
	}
}

// AddFailure records a word that could not be scored.
func (t *Table) AddFailure(word string, err error) {
	t.Failures[word] = err
}

// Words returns the scored words in insertion order.
func (t *Table) Words() []string {
	return t.words
}

// Columns returns the column names in first-seen order.
func (t *Table) Columns() []string {
	return t.columns
}

// Len returns the number of scored words.
func (t *Table) Len() int {
	return len(t.words)
}

// Lookup returns the score of one word in one column.
func (t *Table) Lookup(word, column string) (float64, bool) {
	rec, ok := t.rows[word]
	if !ok {
		return 0, false
	}
	return rec.Get(column)
}

// Column returns all values of one column, paired with their words,
// in row order. Rows missing the column are skipped.
func (t *Table) Column(name string) (words []string, values []float64) {
	for _, w := range t.words {
		if v, ok := t.rows[w].Get(name); ok {
			words = append(words, w)
			values = append(values, v)
		}
	}
	return words, values
}

// WriteCSV serializes the table: a header of "word" plus the columns,
// then one row per word. Missing cells are left empty.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	header := append([]string{"word"}, t.columns...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	row := make([]string, len(header))
	for _, word := range t.words {
		row[0] = word
		for i, col := range t.columns {
			if v, ok := t.rows[word].Get(col); ok {
				row[i+1] = strconv.FormatFloat(v, 'g', -1, 64)
			} else {
				row[i+1] = ""
			}
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %q: %w", word, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
