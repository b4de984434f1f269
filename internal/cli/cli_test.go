package cli

import (
	"bytes"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setup points every command at a fresh database in a temp working directory
func setup(t *testing.T) string {
	t.Helper()
	chdir(t, t.TempDir())
	t.Setenv("POS_LOGGER_OUTPUT", "stderr")
	t.Setenv("POS_LOGGER_LEVEL", "error")
	t.Cleanup(func() {
		withSample, restoreYes = false, false
		reportFrom, reportTo = "", ""
	})
	return filepath.Join(t.TempDir(), "pos.db")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestInitSample(t *testing.T) {
	db := setup(t)

	out, err := execute(t, "init", "--sample", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Loaded 5 sample products and 3 sample customers.")

	out, err = execute(t, "init", "--sample", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Loaded 0 sample products and 0 sample customers.")
}

func TestReport(t *testing.T) {
	db := setup(t)
	_, err := execute(t, "init", "--sample", "--db", db)
	require.NoError(t, err)

	out, err := execute(t, "report", "inventory", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, fmt.Sprintf("Total Products:   %10d", 5))
	assert.Contains(t, out, fmt.Sprintf("Units in Stock:   %10d", 575))

	out, err = execute(t, "report", "summary", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "All sales")
	assert.Contains(t, out, fmt.Sprintf("Total Sales:      %10d", 0))

	_, err = execute(t, "report", "daily", "--from", "03/01/2024", "--db", db)
	assert.Error(t, err)

	_, err = execute(t, "report", "weekly", "--db", db)
	assert.Error(t, err)
}

func TestBackupRestore(t *testing.T) {
	db := setup(t)
	_, err := execute(t, "init", "--db", db)
	require.NoError(t, err)

	out, err := execute(t, "backup", "snapshot.db", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Database backed up successfully to snapshot.db")
	assert.FileExists(t, "snapshot.db")

	out, err = execute(t, "restore", "snapshot.db", "--yes", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Database restored successfully from snapshot.db")

	_, err = execute(t, "restore", "missing.db", "--yes", "--db", db)
	assert.Error(t, err)
}
