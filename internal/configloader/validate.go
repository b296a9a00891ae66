package configloader

import (
	"fmt"
	"strings"

	"github.com/yaklabco/oko/internal/logging"
	"github.com/yaklabco/oko/pkg/config"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the invalid key (e.g., "match_color").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// Is lets errors.Is(err, ErrInvalidConfig) match validation failures.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	Errors []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// Messages returns every error message.
func (r *ValidationResult) Messages() []string {
	messages := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		messages = append(messages, e.Error())
	}
	return messages
}

// Validate checks a configuration for errors. Empty fields are valid; they
// fall through to a lower precedence source.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	validateColor(result, "content_color", cfg.ContentColor)
	validateColor(result, "match_color", cfg.MatchColor)

	if cfg.LogLevel != "" {
		if _, ok := logging.ParseLevel(cfg.LogLevel); !ok {
			result.Errors = append(result.Errors, ValidationError{
				Field:   "log_level",
				Value:   cfg.LogLevel,
				Message: fmt.Sprintf("invalid log level %q; must be one of: debug, info, warn, error", cfg.LogLevel),
			})
		}
	}

	if cfg.Color != "" && !cfg.Color.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "color",
			Value:   cfg.Color,
			Message: fmt.Sprintf("invalid color mode %q; must be one of: auto, always, never", cfg.Color),
		})
	}

	return result
}

func validateColor(result *ValidationResult, field, value string) {
	if _, err := config.ParseColor(value); err != nil {
		result.Errors = append(result.Errors, ValidationError{
			Field:   field,
			Value:   value,
			Message: err.Error(),
		})
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)
	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	return result
}
