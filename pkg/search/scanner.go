// Package search is the line-oriented match engine behind oko.
//
// A Pattern is compiled into a Matcher, which finds every non-overlapping
// occurrence of the pattern in a single line. Search and Count drive a
// Matcher over a sequence of lines: Search collects a sparse, ordered set of
// LineResults, Count only sums occurrences.
//
// The package performs no I/O. Lines are supplied as an iter.Seq2 whose error
// value, when non-nil, aborts the scan.
package search

import "iter"

// LineResult is one input line that matched at least once.
type LineResult struct {
	// Line is the 1-based position of the line in the input.
	Line int `json:"line"`

	// Content is the line exactly as read.
	Content string `json:"content"`

	// Matches holds the spans in increasing start order. Never empty.
	Matches []Span `json:"matches"`
}

// Results is the outcome of a Search.
type Results struct {
	// Pattern is the pattern text as supplied.
	Pattern string `json:"pattern"`

	// Results lists matching lines in input order.
	Results []LineResult `json:"results"`
}

// Total returns the number of match occurrences across all lines.
func (r *Results) Total() int {
	if r == nil {
		return 0
	}
	var n int
	for _, res := range r.Results {
		n += len(res.Matches)
	}
	return n
}

// Search compiles p and collects every matching line from lines.
// An invalid pattern is reported before any line is consumed.
func Search(lines iter.Seq2[string, error], p Pattern) (*Results, error) {
	m, err := Compile(p)
	if err != nil {
		return nil, err
	}
	return SearchWith(m, lines)
}

// SearchWith is Search with a pre-compiled Matcher.
// On a read failure no partial results are returned.
func SearchWith(m *Matcher, lines iter.Seq2[string, error]) (*Results, error) {
	results := &Results{
		Pattern: m.Pattern().Text,
		Results: make([]LineResult, 0),
	}

	lineNum := 0
	for line, err := range lines {
		lineNum++
		if err != nil {
			return nil, readError(lineNum, err)
		}

		spans := m.FindAll(line)
		if len(spans) == 0 {
			continue
		}
		results.Results = append(results.Results, LineResult{
			Line:    lineNum,
			Content: line,
			Matches: spans,
		})
	}

	return results, nil
}

// Count compiles p and returns the total number of occurrences in lines.
// It is the streaming counterpart of Search: Count(l, p) always equals
// Search(l, p).Total().
func Count(lines iter.Seq2[string, error], p Pattern) (int, error) {
	m, err := Compile(p)
	if err != nil {
		return 0, err
	}
	return CountWith(m, lines)
}

// CountWith is Count with a pre-compiled Matcher.
func CountWith(m *Matcher, lines iter.Seq2[string, error]) (int, error) {
	var total, lineNum int
	for line, err := range lines {
		lineNum++
		if err != nil {
			return 0, readError(lineNum, err)
		}
		total += m.Count(line)
	}
	return total, nil
}

// Lines adapts an in-memory slice to a line source.
func Lines(lines []string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for _, line := range lines {
			if !yield(line, nil) {
				return
			}
		}
	}
}
