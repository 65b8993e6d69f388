package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSeed(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadSeed(t *testing.T) {
	t.Run("json file", func(t *testing.T) {
		path := writeSeed(t, "patients.json", `[{"name": "John Doe", "age": 41, "diagnosis": "asthma"}]`)
		records, err := LoadSeed(path)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "john_doe", records[0].ID)
		assert.Equal(t, 41, records[0].Age)
	})

	t.Run("yaml file keeps explicit ids", func(t *testing.T) {
		path := writeSeed(t, "patients.yaml", "- id: p-7\n  name: Jane Roe\n  treatment: rest\n")
		records, err := LoadSeed(path)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "p-7", records[0].ID)
		assert.Equal(t, "rest", records[0].Treatment)
	})

	t.Run("nameless record", func(t *testing.T) {
		path := writeSeed(t, "bad.yaml", "- age: 3\n")
		_, err := LoadSeed(path)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadSeed(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})
}

func TestSeedIntoMemory(t *testing.T) {
	s := NewInMemoryStore()
	path := writeSeed(t, "patients.json", `[{"name": "John Doe"}, {"name": "Ann Lee"}]`)
	records, err := LoadSeed(path)
	require.NoError(t, err)

	require.NoError(t, Seed(context.Background(), s, records))
	_, err = s.Get(context.Background(), "ann_lee")
	assert.NoError(t, err)
}
