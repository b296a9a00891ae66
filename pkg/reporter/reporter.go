// Package reporter writes search and count results in plain or JSON form.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/oko/internal/ui/pretty"
	"github.com/yaklabco/oko/pkg/search"
)

// Reporter formats and writes results.
type Reporter interface {
	// ReportSearch writes every matching line of results.
	ReportSearch(ctx context.Context, results *search.Results) error

	// ReportCount writes a match count.
	ReportCount(ctx context.Context, count int) error
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}
	if opts.Styles == nil {
		opts.Styles = pretty.NewPlainStyles()
	}

	format := opts.Format
	if format == "" {
		format = FormatPlain
	}

	switch format {
	case FormatPlain:
		return NewPlainReporter(opts), nil
	case FormatJSON:
		return NewJSONReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
