package driftgo

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_Order(t *testing.T) {
	rec := NewRecord()
	rec.Set("b", 2)
	rec.Set("a", 1)
	rec.Set("b", 3) // overwrite keeps position

	assert.Equal(t, []string{"b", "a"}, rec.Names())

	v, ok := rec.Get("b")
	assert.True(t, ok)
	assert.Equal(t, 3.0, v)

	_, ok = rec.Get("missing")
	assert.False(t, ok)
}

func TestTable_ColumnOrder(t *testing.T) {
	table := NewTable()

	r1 := NewRecord()
	r1.Set("x", 1)
	r1.Set("y", 2)
	table.Add("first", r1)

	r2 := NewRecord()
	r2.Set("y", 3)
	r2.Set("z", 4)
	table.Add("second", r2)

	assert.Equal(t, []string{"x", "y", "z"}, table.Columns())
	assert.Equal(t, []string{"first", "second"}, table.Words())
	assert.Equal(t, 2, table.Len())

	v, ok := table.Lookup("second", "z")
	assert.True(t, ok)
	assert.Equal(t, 4.0, v)

	_, ok = table.Lookup("second", "x")
	assert.False(t, ok)
}

func TestTable_Column(t *testing.T) {
	table := NewTable()

	r1 := NewRecord()
	r1.Set("score", 0.5)
	table.Add("a", r1)

	r2 := NewRecord()
	r2.Set("other", 1.0)
	table.Add("b", r2)

	r3 := NewRecord()
	r3.Set("score", 0.25)
	table.Add("c", r3)

	words, values := table.Column("score")
	assert.Equal(t, []string{"a", "c"}, words)
	assert.Equal(t, []float64{0.5, 0.25}, values)
}

func TestTable_WriteCSV(t *testing.T) {
	table := NewTable()

	r1 := NewRecord()
	r1.Set("apd_euclidean", 1.5)
	r1.Set("apd_cosine", 0.25)
	table.Add("bank", r1)

	r2 := NewRecord()
	r2.Set("apd_euclidean", 2)
	table.Add("mouse", r2)

	var buf bytes.Buffer
	require.NoError(t, table.WriteCSV(&buf))

	want := "word,apd_euclidean,apd_cosine\nbank,1.5,0.25\nmouse,2,\n"
	assert.Equal(t, want, buf.String())
}
