package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/oko/pkg/fsutil"
)

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	t.Run("writes new file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "output.txt")
		require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte("I'm here for a concert.\n"), 0644))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "I'm here for a concert.\n", string(got))
	})

	t.Run("overwrites existing file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "output.txt")
		require.NoError(t, os.WriteFile(path, []byte("original"), 0644))

		require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte("4\n"), 0644))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "4\n", string(got))
	})

	t.Run("uses default mode when zero", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "output.txt")
		require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte("x"), 0))

		stat, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, fsutil.DefaultFileMode, stat.Mode().Perm())
	})

	t.Run("zero mode keeps mode of replaced file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "results.json")
		require.NoError(t, os.WriteFile(path, []byte("{}"), 0o600))
		require.NoError(t, os.Chmod(path, 0o600))

		require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte(`{"results":2}`), 0))

		stat, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), stat.Mode().Perm())
	})

	t.Run("rejects directory", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		err := fsutil.WriteAtomic(context.Background(), dir, []byte("2\n"), 0)
		require.ErrorIs(t, err, fsutil.ErrIsDirectory)

		entries, readErr := os.ReadDir(dir)
		require.NoError(t, readErr)
		assert.Empty(t, entries, "no temp file left behind")
	})

	t.Run("names target in errors", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "missing", "report.txt")
		err := fsutil.WriteAtomic(context.Background(), path, []byte("x"), 0)
		require.Error(t, err)
		assert.Contains(t, err.Error(), path)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "output.txt")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		require.Error(t, fsutil.WriteAtomic(ctx, path, []byte("content"), 0644))
		_, err := os.Stat(path)
		assert.True(t, os.IsNotExist(err), "file should not have been created")
	})

	t.Run("leaves no temp file on error", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "nonexistent", "output.txt")

		require.Error(t, fsutil.WriteAtomic(context.Background(), path, []byte("content"), 0644))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}
