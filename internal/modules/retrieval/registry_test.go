package retrieval

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDocument() string {
	return strings.Repeat("Grid-scale storage smooths renewable output. ", 60)
}

func TestRegistryCreateAndLoad(t *testing.T) {
	reg := NewRegistry(t.TempDir(), HashedEmbedder{})

	ix, err := reg.Create(context.Background(), "energy", testDocument())
	require.NoError(t, err)
	assert.Greater(t, ix.Len(), 0)

	loaded, err := reg.Load("energy")
	require.NoError(t, err)
	assert.Equal(t, ix.Len(), loaded.Len())
}

func TestRegistryLoadUnknownStore(t *testing.T) {
	reg := NewRegistry(t.TempDir(), HashedEmbedder{})

	_, err := reg.Load("missing")
	assert.ErrorIs(t, err, ErrStoreNotFound)
}

func TestRegistryRejectsInvalidNames(t *testing.T) {
	reg := NewRegistry(t.TempDir(), HashedEmbedder{})

	for _, name := range []string{"", "../escape", "has space", "-leading", strings.Repeat("x", 80)} {
		_, err := reg.Create(context.Background(), name, testDocument())
		assert.Error(t, err, "name %q should be rejected", name)
	}

	_, err := reg.Load("../escape")
	assert.ErrorIs(t, err, ErrStoreNotFound)
}

func TestRegistryRejectsEmptyDocument(t *testing.T) {
	reg := NewRegistry(t.TempDir(), HashedEmbedder{})

	_, err := reg.Create(context.Background(), "empty", "   ")
	assert.Error(t, err)
}

func TestRegistrySurvivesRestart(t *testing.T) {
	dir := t.TempDir()

	first := NewRegistry(dir, HashedEmbedder{})
	ix, err := first.Create(context.Background(), "persisted", testDocument())
	require.NoError(t, err)

	// Fresh registry over the same directory mimics a process restart.
	second := NewRegistry(dir, HashedEmbedder{})
	loaded, err := second.Load("persisted")
	require.NoError(t, err)
	assert.Equal(t, ix.Len(), loaded.Len())

	results, err := loaded.Search(context.Background(), "renewable storage", 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Greater(t, results[0].Score, 0.0)
}

func TestRegistryListSorted(t *testing.T) {
	dir := t.TempDir()
	reg := NewRegistry(dir, HashedEmbedder{})

	for _, name := range []string{"zeta", "alpha", "mid"} {
		_, err := reg.Create(context.Background(), name, testDocument())
		require.NoError(t, err)
	}
	// Stray files are not stores.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	names, err := reg.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, names)
}

func TestRegistryListEmptyDir(t *testing.T) {
	reg := NewRegistry(filepath.Join(t.TempDir(), "never-created"), HashedEmbedder{})

	names, err := reg.List()
	require.NoError(t, err)
	assert.Empty(t, names)
}
