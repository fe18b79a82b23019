package ledger

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogAppendFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.csv")
	c, err := OpenCatalog(path)
	require.NoError(t, err)

	day := time.Date(2026, 8, 30, 15, 4, 5, 0, time.UTC)
	require.NoError(t, c.Append(day, "0cc175b9c0f1b6a831c399e269772661", "Fiction/a.epub"))
	require.NoError(t, c.Append(day, "92eb5ffee6ae2fec3ad71c777531578f", "Fiction/b.epub"))
	require.NoError(t, c.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"2026-08-30\t0cc175b9c0f1b6a831c399e269772661\tFiction/a.epub\n"+
			"2026-08-30\t92eb5ffee6ae2fec3ad71c777531578f\tFiction/b.epub\n",
		string(content))
}

func TestCatalogAppendsAcrossRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.csv")
	day := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

	c, err := OpenCatalog(path)
	require.NoError(t, err)
	require.NoError(t, c.Append(day, "aaaa", "Fiction/a.epub"))
	require.NoError(t, c.Close())

	c, err = OpenCatalog(path)
	require.NoError(t, err)
	require.NoError(t, c.Append(day, "bbbb", "Fiction/b.epub"))
	require.NoError(t, c.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "2026-08-30\taaaa\tFiction/a.epub\n2026-08-30\tbbbb\tFiction/b.epub\n", string(content))
}

func TestCatalogOpenFailure(t *testing.T) {
	_, err := OpenCatalog(t.TempDir()) //a directory cannot be a catalog log
	assert.Error(t, err)
}
