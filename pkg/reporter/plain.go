package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strconv"

	"github.com/yaklabco/oko/internal/ui/pretty"
	"github.com/yaklabco/oko/pkg/search"
)

// PlainReporter writes each matching line with its matches highlighted.
type PlainReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewPlainReporter creates a new plain reporter.
func NewPlainReporter(opts Options) *PlainReporter {
	styles := opts.Styles
	if styles == nil {
		styles = pretty.NewPlainStyles()
	}
	return &PlainReporter{
		opts:   opts,
		styles: styles,
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// ReportSearch implements Reporter.
func (r *PlainReporter) ReportSearch(ctx context.Context, results *search.Results) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil && flushErr != nil {
			err = fmt.Errorf("write output: %w", flushErr)
		}
	}()

	if results == nil {
		return nil
	}

	for _, res := range results.Results {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("report search: %w", err)
		}
		r.writeLine(res)
	}

	return nil
}

// writeLine writes content with the spans of res styled as matches.
// Spans are ordered and non-overlapping.
func (r *PlainReporter) writeLine(res search.LineResult) {
	if r.opts.LineNumbers {
		r.writeStyled(r.styles.LineNumber.Render, strconv.Itoa(res.Line)+": ")
	}

	prevEnd := 0
	for _, span := range res.Matches {
		r.writeStyled(r.styles.Content.Render, res.Content[prevEnd:span.Start])
		r.writeStyled(r.styles.Match.Render, span.Content)
		prevEnd = span.End
	}
	r.writeStyled(r.styles.Content.Render, res.Content[prevEnd:])

	_ = r.bw.WriteByte('\n')
}

// writeStyled skips empty segments so no bare escape sequences are written.
func (r *PlainReporter) writeStyled(render func(...string) string, text string) {
	if text == "" {
		return
	}
	_, _ = r.bw.WriteString(render(text))
}

// ReportCount implements Reporter.
func (r *PlainReporter) ReportCount(_ context.Context, count int) error {
	if _, err := fmt.Fprintf(r.bw, "%d\n", count); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if err := r.bw.Flush(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
