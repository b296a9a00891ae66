package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/oko/pkg/search"
)

// JSONCount is the JSON structure of a count result.
type JSONCount struct {
	Results int `json:"results"`
}

// JSONReporter formats results as compact, newline-terminated JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// ReportSearch implements Reporter. A nil result encodes as an empty result
// set.
func (r *JSONReporter) ReportSearch(_ context.Context, results *search.Results) error {
	if results == nil {
		results = &search.Results{Results: make([]search.LineResult, 0)}
	}
	return r.encode(results)
}

// ReportCount implements Reporter.
func (r *JSONReporter) ReportCount(_ context.Context, count int) error {
	return r.encode(JSONCount{Results: count})
}

func (r *JSONReporter) encode(v any) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil && flushErr != nil {
			err = fmt.Errorf("write output: %w", flushErr)
		}
	}()

	encoder := json.NewEncoder(r.bw)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}
