package search

import (
	"cmp"
	"fmt"
	"regexp"
	"regexp/syntax"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Mode selects how a pattern's text is interpreted.
type Mode string

const (
	// ModeLiteral treats the pattern as an exact substring.
	ModeLiteral Mode = "literal"
	// ModeRegex treats the pattern as a regular expression.
	ModeRegex Mode = "regex"
)

// ParseMode parses a mode string. An empty string selects ModeLiteral.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "literal":
		return ModeLiteral, nil
	case "regex":
		return ModeRegex, nil
	default:
		return "", fmt.Errorf("unknown mode %q; valid modes: literal, regex", s)
	}
}

// Pattern is the immutable description of what to search for.
type Pattern struct {
	Text       string
	IgnoreCase bool
	Mode       Mode
}

// Span is one match occurrence. Start and End are byte offsets into the
// original line; Content is the original-case text between them.
type Span struct {
	Content string `json:"content"`
	Start   int    `json:"start_pos"`
	End     int    `json:"end_pos"`
}

// Matcher is a compiled Pattern. It holds no per-line state and is safe for
// concurrent use.
type Matcher struct {
	pattern Pattern
	needle  string         // literal mode; folded when IgnoreCase
	re      *regexp.Regexp // regex mode; rewritten to match folded text when IgnoreCase
}

// Compile builds a Matcher for p. Only regex mode can fail.
func Compile(p Pattern) (*Matcher, error) {
	m := &Matcher{pattern: p}

	switch p.Mode {
	case ModeLiteral, "":
		m.needle = p.Text
		if p.IgnoreCase {
			m.needle = foldString(p.Text)
		}
	case ModeRegex:
		re, err := compileRegex(p.Text, p.IgnoreCase)
		if err != nil {
			return nil, &PatternError{Pattern: p.Text, Err: err}
		}
		m.re = re
	default:
		return nil, &PatternError{Pattern: p.Text, Err: fmt.Errorf("unknown mode %q", p.Mode)}
	}

	return m, nil
}

// Pattern returns the pattern the matcher was compiled from.
func (m *Matcher) Pattern() Pattern {
	return m.pattern
}

// FindAll returns every non-overlapping match in line, left to right.
// An empty line never matches.
func (m *Matcher) FindAll(line string) []Span {
	idx := m.locate(line)
	if len(idx) == 0 {
		return nil
	}

	spans := make([]Span, len(idx))
	for i, loc := range idx {
		spans[i] = Span{Content: line[loc[0]:loc[1]], Start: loc[0], End: loc[1]}
	}
	return spans
}

// Count returns len(m.FindAll(line)) without building span contents.
func (m *Matcher) Count(line string) int {
	return len(m.locate(line))
}

// locate returns [start, end) pairs in original-line offsets.
func (m *Matcher) locate(line string) [][2]int {
	if line == "" {
		return nil
	}

	haystack := line
	var offsets []int
	if m.pattern.IgnoreCase {
		haystack, offsets = foldLine(line)
	}

	var idx [][2]int
	if m.re != nil {
		for _, loc := range m.re.FindAllStringIndex(haystack, -1) {
			idx = append(idx, [2]int{loc[0], loc[1]})
		}
	} else {
		idx = findLiteral(haystack, m.needle)
	}

	if offsets != nil {
		for i := range idx {
			idx[i][0] = offsets[idx[i][0]]
			idx[i][1] = offsets[idx[i][1]]
		}
	}
	return idx
}

// findLiteral scans left to right, resuming at the end of each match.
// An empty needle yields a zero-length match at every rune boundary and one
// at the end of s.
func findLiteral(s, needle string) [][2]int {
	var idx [][2]int

	if needle == "" {
		for pos := 0; pos < len(s); {
			idx = append(idx, [2]int{pos, pos})
			_, size := utf8.DecodeRuneInString(s[pos:])
			pos += size
		}
		return append(idx, [2]int{len(s), len(s)})
	}

	for pos := 0; pos <= len(s)-len(needle); {
		i := strings.Index(s[pos:], needle)
		if i < 0 {
			break
		}
		start := pos + i
		idx = append(idx, [2]int{start, start + len(needle)})
		pos = start + len(needle)
	}
	return idx
}

// foldString lowers s one rune at a time.
func foldString(s string) string {
	return strings.Map(unicode.ToLower, s)
}

// foldLine lowers line and, when lowering changed the byte width of any rune,
// returns a table mapping every byte offset of the folded string back to the
// original. A nil table means offsets are identical.
func foldLine(line string) (string, []int) {
	ascii := true
	for i := 0; i < len(line); i++ {
		if line[i] >= utf8.RuneSelf {
			ascii = false
			break
		}
	}
	if ascii {
		return strings.ToLower(line), nil
	}

	if sameWidths(line) {
		return foldString(line), nil
	}

	var b strings.Builder
	b.Grow(len(line))
	offsets := make([]int, 0, len(line)+1)
	for pos, r := range line {
		lower := unicode.ToLower(r)
		n, _ := b.WriteRune(lower)
		for range n {
			offsets = append(offsets, pos)
		}
	}
	offsets = append(offsets, len(line))
	return b.String(), offsets
}

// sameWidths reports whether lowering keeps every rune's encoded width.
// Invalid bytes widen to U+FFFD and so never qualify.
func sameWidths(s string) bool {
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if utf8.RuneLen(unicode.ToLower(r)) != size {
			return false
		}
		i += size
	}
	return true
}

// compileRegex compiles expr. With fold set, expr is parsed with case folding
// and rewritten so that a case-sensitive program matches the lowered line the
// same way; no case-insensitive flag reaches the compiled program.
func compileRegex(expr string, fold bool) (*regexp.Regexp, error) {
	if !fold {
		return regexp.Compile(expr)
	}

	tree, err := syntax.Parse(expr, syntax.Perl|syntax.FoldCase)
	if err != nil {
		return nil, err
	}
	lowerSyntax(tree)

	re, err := regexp.Compile(tree.String())
	if err != nil {
		return nil, fmt.Errorf("rewrite for ignore-case: %w", err)
	}
	return re, nil
}

// lowerSyntax rewrites a tree parsed with syntax.FoldCase so that it matches
// text lowered with unicode.ToLower. Named groups, flag groups, escapes and
// classes are already resolved by the parser, so only literals and classes
// change.
func lowerSyntax(re *syntax.Regexp) {
	switch re.Op {
	case syntax.OpLiteral:
		lowerLiteral(re)
		return
	case syntax.OpCharClass:
		re.Rune = lowerClass(re.Rune)
	}
	for _, sub := range re.Sub {
		lowerSyntax(sub)
	}
	re.Flags &^= syntax.FoldCase
}

// lowerLiteral replaces each rune by its lowercase form. A rune whose case
// variants lower to more than one form, such as Σ to σ and ς, becomes a class.
func lowerLiteral(re *syntax.Regexp) {
	fold := re.Flags&syntax.FoldCase != 0

	var subs []*syntax.Regexp
	var run []rune
	flush := func() {
		if len(run) > 0 {
			subs = append(subs, &syntax.Regexp{Op: syntax.OpLiteral, Rune: run})
			run = nil
		}
	}

	for _, r := range re.Rune {
		forms := lowerForms(r, fold)
		if len(forms) == 1 {
			run = append(run, forms[0])
			continue
		}
		flush()
		class := make([]rune, 0, 2*len(forms))
		for _, l := range forms {
			class = append(class, l, l)
		}
		subs = append(subs, &syntax.Regexp{Op: syntax.OpCharClass, Rune: class})
	}

	if len(subs) == 0 {
		re.Rune = run
		re.Flags &^= syntax.FoldCase
		return
	}
	flush()
	if len(subs) == 1 {
		*re = *subs[0]
		return
	}
	*re = syntax.Regexp{Op: syntax.OpConcat, Sub: subs}
}

// lowerForms returns the sorted, distinct lowercase forms of r and, when fold
// is set, of every rune in its case-folding orbit.
func lowerForms(r rune, fold bool) []rune {
	forms := []rune{unicode.ToLower(r)}
	if !fold {
		return forms
	}
	for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
		if l := unicode.ToLower(f); !slices.Contains(forms, l) {
			forms = append(forms, l)
		}
	}
	slices.Sort(forms)
	return forms
}

// lowerClass adds the lowercase form of every member to a class given as
// lo-hi pairs. Only runes inside unicode.CaseRanges can change.
func lowerClass(ranges []rune) []rune {
	out := slices.Clone(ranges)
	for i := 0; i+1 < len(ranges); i += 2 {
		lo, hi := ranges[i], ranges[i+1]
		for _, cr := range unicode.CaseRanges {
			if rune(cr.Lo) > hi {
				break
			}
			from, to := max(lo, rune(cr.Lo)), min(hi, rune(cr.Hi))
			for r := from; r <= to; r++ {
				if l := unicode.ToLower(r); l != r {
					out = append(out, l, l)
				}
			}
		}
	}
	return mergeRanges(out)
}

// mergeRanges sorts lo-hi pairs and joins overlapping and adjacent ones.
func mergeRanges(ranges []rune) []rune {
	pairs := make([][2]rune, 0, len(ranges)/2)
	for i := 0; i+1 < len(ranges); i += 2 {
		pairs = append(pairs, [2]rune{ranges[i], ranges[i+1]})
	}
	slices.SortFunc(pairs, func(a, b [2]rune) int {
		return cmp.Compare(a[0], b[0])
	})

	merged := make([]rune, 0, len(ranges))
	for _, p := range pairs {
		if n := len(merged); n > 0 && p[0] <= merged[n-1]+1 {
			merged[n-1] = max(merged[n-1], p[1])
			continue
		}
		merged = append(merged, p[0], p[1])
	}
	return merged
}
