package fsutil_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/oko/pkg/fsutil"
)

func TestOpenFile(t *testing.T) {
	t.Parallel()

	t.Run("opens regular file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "content.txt")
		require.NoError(t, os.WriteFile(path, []byte("hello\n"), 0644))

		file, err := fsutil.OpenFile(context.Background(), path)
		require.NoError(t, err)
		defer file.Close()

		got, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "hello\n", string(got))
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := fsutil.OpenFile(context.Background(), filepath.Join(t.TempDir(), "missing.txt"))
		require.Error(t, err)
		assert.ErrorIs(t, err, fsutil.ErrNotFound)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("directory", func(t *testing.T) {
		t.Parallel()

		_, err := fsutil.OpenFile(context.Background(), t.TempDir())
		assert.ErrorIs(t, err, fsutil.ErrIsDirectory)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := fsutil.OpenFile(ctx, t.TempDir())
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "file.txt")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	assert.True(t, fsutil.FileExists(path))
	assert.False(t, fsutil.FileExists(dir))
	assert.False(t, fsutil.FileExists(filepath.Join(dir, "missing")))
}
