package fsutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFileMode is the mode of a report or config file oko creates.
const DefaultFileMode os.FileMode = 0o644

// WriteAtomic replaces path with content. The bytes go to a hidden sibling
// file that is renamed over path once complete, so a search that fails
// halfway never leaves a truncated report behind.
//
// A zero mode keeps the permissions of the file being replaced, or uses
// DefaultFileMode for a new file. A directory at path is rejected with
// ErrIsDirectory.
func WriteAtomic(ctx context.Context, path string, content []byte, mode os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	mode, err := targetMode(path, mode)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".oko-"+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	tmpPath := tmp.Name()

	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		return fmt.Errorf("set mode of %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}

	committed = true
	return nil
}

// targetMode resolves the mode WriteAtomic gives path.
func targetMode(path string, mode os.FileMode) (os.FileMode, error) {
	stat, err := os.Stat(path)
	switch {
	case err == nil && stat.IsDir():
		return 0, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	case err == nil && mode == 0:
		return stat.Mode().Perm(), nil
	case mode == 0:
		return DefaultFileMode, nil
	default:
		return mode, nil
	}
}
