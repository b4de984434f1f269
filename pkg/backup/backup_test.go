package backup

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopy(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "pos_database.db")
	require.NoError(t, os.WriteFile(src, []byte("SQLite format 3\x00 some pages"), 0o644))

	dst := filepath.Join(dir, "backups", "pos_backup.db")
	res, err := Copy(src, dst)
	require.NoError(t, err)

	assert.Equal(t, dst, res.Path)
	assert.EqualValues(t, 27, res.Bytes)
	assert.Len(t, res.Checksum, 64)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "SQLite format 3\x00 some pages", string(data))

	// no temp files left behind
	entries, err := os.ReadDir(filepath.Dir(dst))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestCopyOverwrites(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "backup.db")
	dst := filepath.Join(dir, "pos_database.db")
	require.NoError(t, os.WriteFile(src, []byte("restored"), 0o644))
	require.NoError(t, os.WriteFile(dst, []byte("current contents"), 0o644))

	_, err := Copy(src, dst)
	require.NoError(t, err)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "restored", string(data))
}

func TestCopyMissingSource(t *testing.T) {
	dir := t.TempDir()
	_, err := Copy(filepath.Join(dir, "nope.db"), filepath.Join(dir, "out.db"))
	assert.ErrorIs(t, err, ErrSourceMissing)
}
