// Package config defines the persisted preferences of oko.
// These types are pure data structures; loading and merging live in
// internal/configloader.
package config

import (
	"fmt"
	"sort"
	"strings"
)

// ColorMode controls when terminal output is colorized.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// IsValid returns true if the color mode is known.
func (m ColorMode) IsValid() bool {
	switch m {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	default:
		return false
	}
}

// Log levels accepted in configuration.
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

// Color names. ColorNone disables styling for a segment.
const (
	ColorNone  = "none"
	ColorGreen = "green"
)

// ANSIColor is an index into the 16-color ANSI palette. NoColor means the
// segment is written unstyled.
type ANSIColor int

// NoColor is the ANSIColor of ColorNone and the empty name.
const NoColor ANSIColor = -1

// ansiColors maps color names to their ANSI palette index.
//
//nolint:gochecknoglobals // Read-only lookup table.
var ansiColors = map[string]ANSIColor{
	"black":          0,
	"red":            1,
	"green":          2,
	"yellow":         3,
	"blue":           4,
	"magenta":        5,
	"cyan":           6,
	"white":          7,
	"bright_black":   8,
	"bright_red":     9,
	"bright_green":   10,
	"bright_yellow":  11,
	"bright_blue":    12,
	"bright_magenta": 13,
	"bright_cyan":    14,
	"bright_white":   15,
}

// ParseColor maps a color name to its palette index. Names are case
// insensitive and may use '-' or '_' as separator.
func ParseColor(name string) (ANSIColor, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	if key == "" || key == ColorNone {
		return NoColor, nil
	}
	if c, ok := ansiColors[key]; ok {
		return c, nil
	}
	return NoColor, fmt.Errorf("unknown color %q; valid colors: %s", name, strings.Join(ColorNames(), ", "))
}

// ColorNames lists the accepted color names, sorted.
func ColorNames() []string {
	names := make([]string, 0, len(ansiColors)+1)
	for name := range ansiColors {
		names = append(names, name)
	}
	sort.Strings(names)
	return append(names, ColorNone)
}

// Config is the root configuration structure for oko.
type Config struct {
	// ContentColor styles non-matching text of a result line. Empty or
	// "none" leaves it unstyled.
	ContentColor string `yaml:"content_color"`

	// MatchColor styles the matched spans.
	MatchColor string `yaml:"match_color"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level,omitempty"`

	// Color controls when console output is colorized.
	Color ColorMode `yaml:"color,omitempty"`
}

// NewConfig returns a Config with the defaults used on first run.
func NewConfig() *Config {
	return &Config{
		ContentColor: "",
		MatchColor:   ColorGreen,
		LogLevel:     LogLevelWarn,
		Color:        ColorAuto,
	}
}

// Colors resolves the configured color names.
func (c *Config) Colors() (content, match ANSIColor, err error) {
	content, err = ParseColor(c.ContentColor)
	if err != nil {
		return NoColor, NoColor, fmt.Errorf("content_color: %w", err)
	}
	match, err = ParseColor(c.MatchColor)
	if err != nil {
		return NoColor, NoColor, fmt.Errorf("match_color: %w", err)
	}
	return content, match, nil
}
