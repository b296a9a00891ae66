// Package source acquires the input of a search and splits it into lines.
package source

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"iter"
	"os"

	"golang.org/x/term"

	"github.com/yaklabco/oko/pkg/fsutil"
)

// maxLineSize is the longest line the scanner accepts (1 MiB).
const maxLineSize = 1024 * 1024

// StdinPath selects standard input when passed to Open.
const StdinPath = "-"

// Open returns a reader for path. An empty path or StdinPath selects
// os.Stdin, whose Close is a no-op.
func Open(ctx context.Context, path string) (io.ReadCloser, error) {
	if path == "" || path == StdinPath {
		return io.NopCloser(os.Stdin), nil
	}

	file, err := fsutil.OpenFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("error reading file %s: %w", path, err)
	}
	return file, nil
}

// Lines yields the lines of r without their terminators. A trailing "\r" is
// dropped as well, and a final line without a newline is still yielded.
// A scanner failure is yielded once as the error value and ends the sequence.
func Lines(r io.Reader) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineSize)

		for scanner.Scan() {
			if !yield(scanner.Text(), nil) {
				return
			}
		}

		if err := scanner.Err(); err != nil {
			yield("", err)
		}
	}
}

// IsInteractive reports whether f is attached to a terminal.
func IsInteractive(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
