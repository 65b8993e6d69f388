package model

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadManifest(t *testing.T) {
	m, err := ReadManifest("testdata/versioned")
	require.NoError(t, err)
	assert.Equal(t, "v2", m.ActiveVersion)

	m, err = ReadManifest(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DefaultVersion, m.ActiveVersion)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ManifestFile), []byte(`{"active_version": ""}`), 0o600))
	m, err = ReadManifest(dir)
	require.NoError(t, err)
	assert.Equal(t, DefaultVersion, m.ActiveVersion)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ManifestFile), []byte(`{"active_version": [`), 0o600))
	_, err = ReadManifest(dir)
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("default version without manifest", func(t *testing.T) {
		b, err := Load("testdata/v1", "")
		require.NoError(t, err)
		assert.Equal(t, "v1", b.Version)
		assert.False(t, b.Legacy)
		assert.True(t, b.Intent.HasConfidence())
		assert.Equal(t, KindLinearSVM, b.Justification.Kind())

		label, err := b.Justification.Predict(ctx, "critical respiratory collapse, needs urgent history")
		require.NoError(t, err)
		assert.Equal(t, "emergency", label)
	})

	t.Run("manifest selects version", func(t *testing.T) {
		b, err := Load("testdata/versioned", "")
		require.NoError(t, err)
		assert.Equal(t, "v2", b.Version)
		assert.False(t, b.Intent.HasConfidence())
	})

	t.Run("override beats manifest", func(t *testing.T) {
		_, err := Load("testdata/versioned", "v9")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("legacy fallback", func(t *testing.T) {
		b, err := Load("testdata/legacy", "")
		require.NoError(t, err)
		assert.True(t, b.Legacy)
		assert.Equal(t, "legacy", b.Version)
	})

	t.Run("missing models", func(t *testing.T) {
		_, err := Load(t.TempDir(), "")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("override cannot leave the model directory", func(t *testing.T) {
		for _, v := range []string{"../x", "..", "v1/../../etc", "v1 2", "a\\b"} {
			_, err := Load("testdata/v1", v)
			assert.ErrorIs(t, err, ErrInvalidVersion, v)
		}
	})

	t.Run("manifest version cannot leave the model directory", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ManifestFile), []byte(`{"active_version": "../../etc"}`), 0o600))
		_, err := Load(dir, "")
		assert.ErrorIs(t, err, ErrInvalidVersion)
		assert.NotErrorIs(t, err, ErrNotFound)
	})

	t.Run("invalid export is an error, not a fallback", func(t *testing.T) {
		_, err := Load("testdata/broken", "")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidExport)
	})
}

func TestValidateVersion(t *testing.T) {
	for _, v := range []string{"v1", "v2.1", "2026-01_b", "release.7"} {
		assert.NoError(t, ValidateVersion(v), v)
	}
	for _, v := range []string{"", "..", "v1..2", "../v1", "v1/", "v 1", "v1\n"} {
		assert.ErrorIs(t, ValidateVersion(v), ErrInvalidVersion, v)
	}
}
