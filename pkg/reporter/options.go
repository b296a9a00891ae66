package reporter

import (
	"io"
	"os"

	"github.com/yaklabco/oko/internal/ui/pretty"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// Format specifies the output format.
	Format Format

	// LineNumbers prefixes each plain result line with "<n>: ".
	LineNumbers bool

	// Styles colors plain output. Nil writes unstyled text.
	Styles *pretty.Styles
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer: os.Stdout,
		Format: FormatPlain,
	}
}
