package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/driftgo/blobstore"
)

func writeReps(t *testing.T, dir, name string, reps Reps) {
	t.Helper()

	f, err := os.Create(filepath.Join(dir, name))
	require.NoError(t, err)
	defer f.Close()

	require.NoError(t, reps.WriteTo(f, name))
}

func TestLoad_Codecs(t *testing.T) {
	reps := Reps{
		"bank":  {{1, 2, 3}, {4, 5, 6}},
		"mouse": {{0.5, -0.5, 0.25}},
	}

	for _, name := range []string{"reps.json", "reps.json.zst", "reps.json.lz4", "reps.json.gz"} {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			writeReps(t, dir, name, reps)

			got, err := Load(context.Background(), blobstore.NewLocal(dir), name)
			require.NoError(t, err)
			assert.Equal(t, reps, got)
		})
	}
}

func TestLoad_RaggedMatrix(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"w":[[1,2],[1,2,3]]}`), 0o600))

	_, err := Load(context.Background(), blobstore.NewLocal(dir), "bad.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dims")
}

func TestLoad_ZeroDim(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"w":[[]]}`), 0o600))

	_, err := Load(context.Background(), blobstore.NewLocal(dir), "bad.json")
	require.Error(t, err)
}

func TestReps_Lookup(t *testing.T) {
	reps := Reps{
		"present": {{1, 2}},
		"empty":   {},
	}

	usages, ok := reps.Lookup("present")
	assert.True(t, ok)
	assert.Len(t, usages, 1)

	_, ok = reps.Lookup("empty")
	assert.False(t, ok)

	_, ok = reps.Lookup("absent")
	assert.False(t, ok)
}

func TestReps_Words(t *testing.T) {
	reps := Reps{"b": nil, "a": nil, "c": nil}
	assert.Equal(t, []string{"a", "b", "c"}, reps.Words())
}

func TestReadTargets(t *testing.T) {
	dir := t.TempDir()
	content := "bank\n\n  mouse  \nplane\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "targets.txt"), []byte(content), 0o600))

	words, err := ReadTargets(context.Background(), blobstore.NewLocal(dir), "targets.txt")
	require.NoError(t, err)
	assert.Equal(t, []string{"bank", "mouse", "plane"}, words)
}
