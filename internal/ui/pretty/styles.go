// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/yaklabco/oko/pkg/config"
)

// Styles contains the styles used to print search results.
type Styles struct {
	// Content styles the non-matching text of a line.
	Content lipgloss.Style

	// Match styles matched spans.
	Match lipgloss.Style

	// LineNumber styles the "<n>: " prefix.
	LineNumber lipgloss.Style

	enabled bool
}

// NewStyles creates styles rendering to w. When colorEnabled is set, output
// uses the 16-color ANSI palette regardless of what the terminal reports,
// so the configured palette indexes map onto the user's terminal theme.
func NewStyles(w io.Writer, colorEnabled bool, content, match config.ANSIColor) *Styles {
	renderer := lipgloss.NewRenderer(w)
	if colorEnabled {
		renderer.SetColorProfile(termenv.ANSI)
	} else {
		renderer.SetColorProfile(termenv.Ascii)
	}

	contentStyle := newStyle(renderer, content)
	return &Styles{
		Content:    contentStyle,
		Match:      newStyle(renderer, match),
		LineNumber: contentStyle,
		enabled:    colorEnabled,
	}
}

// NewPlainStyles returns styles that never emit escape sequences.
func NewPlainStyles() *Styles {
	return NewStyles(io.Discard, false, config.NoColor, config.NoColor)
}

// Enabled reports whether the styles emit color.
func (s *Styles) Enabled() bool {
	return s.enabled
}

// newStyle builds a foreground style. Tabs are kept as is; search output
// must reproduce the line byte for byte.
func newStyle(r *lipgloss.Renderer, c config.ANSIColor) lipgloss.Style {
	style := r.NewStyle().TabWidth(lipgloss.NoTabConversion)
	if c == config.NoColor {
		return style
	}
	return style.Foreground(lipgloss.Color(strconv.Itoa(int(c))))
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode config.ColorMode, writer io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		// https://no-color.org/
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
