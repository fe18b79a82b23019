package walk

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalkSkipsLooseFilesAndRepairStore(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "Fiction"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "NonFiction"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "repair"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "readme.txt"), []byte("loose"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "Fiction", "a.epub"), []byte("A"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "Fiction", "b.epub"), []byte("B"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "NonFiction", "c.pdf"), []byte("C"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "repair", "a.epub.par2"), []byte("parity"), 0644))

	var keys []string
	err := NewWalker(root, "repair").Walk(func(b Book) error {
		keys = append(keys, b.Key())
		assert.FileExists(t, b.AbsPath)
		assert.True(t, filepath.IsAbs(b.AbsPath))
		return nil
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Fiction/a.epub", "Fiction/b.epub", "NonFiction/c.pdf"}, keys)
}

func TestWalkSkipsIrregularEntries(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "Fiction", "nested"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "Fiction", "a.epub"), []byte("A"), 0644))

	var keys []string
	err := NewWalker(root, "repair").Walk(func(b Book) error {
		keys = append(keys, b.Key())
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Fiction/a.epub"}, keys, "nested directories are not books")
}

func TestWalkStopsOnVisitError(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "Fiction"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "Fiction", "a.epub"), []byte("A"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "Fiction", "b.epub"), []byte("B"), 0644))

	visited := 0
	err := NewWalker(root, "repair").Walk(func(b Book) error {
		visited++
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, 1, visited)
}

func TestWalkMissingRoot(t *testing.T) {
	err := NewWalker(filepath.Join(t.TempDir(), "does-not-exist"), "repair").Walk(func(Book) error {
		t.Fatal("no books expected")
		return nil
	})
	assert.Error(t, err)
}

func TestBookKey(t *testing.T) {
	b := Book{Collection: "Fiction", Name: "a.epub"}
	assert.Equal(t, "Fiction/a.epub", b.Key())
	collection, name := SplitKey(b.Key())
	assert.Equal(t, "Fiction", collection)
	assert.Equal(t, "a.epub", name)
}
