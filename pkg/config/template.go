package config

import (
	"bytes"
	"fmt"
	"strings"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full documents every option, including the accepted values.
	// If false, only the stored defaults are written.
	Full bool
}

// GenerateTemplate creates a configuration file template holding the
// defaults returned by NewConfig.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if !opts.Full {
		return NewConfig().ToYAMLWithHeader(DefaultTemplateHeader())
	}

	defaults := NewConfig()

	var buf bytes.Buffer
	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString("\n#\n# Every option can also be set with an OKO_* environment variable\n# or the matching command-line flag.\n\n")

	buf.WriteString("# Color of the non-matching text of a result line.\n")
	buf.WriteString("# " + wrapComment("Valid colors: "+strings.Join(ColorNames(), ", "), commentWrapWidth) + "\n")
	fmt.Fprintf(&buf, "content_color: %q\n\n", defaults.ContentColor)

	buf.WriteString("# Color of matched text.\n")
	fmt.Fprintf(&buf, "match_color: %s\n\n", defaults.MatchColor)

	buf.WriteString("# Log level: debug, info, warn, or error\n")
	fmt.Fprintf(&buf, "log_level: %s\n\n", defaults.LogLevel)

	buf.WriteString("# Colorize console output: auto, always, or never\n")
	fmt.Fprintf(&buf, "color: %s\n", defaults.Color)

	return buf.Bytes(), nil
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	words := strings.Fields(text)
	currentLine := ""

	for _, word := range words {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n# ")
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# oko configuration
# See: https://github.com/yaklabco/oko`
}
