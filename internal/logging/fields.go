package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError  = "error"
	FieldPath   = "path"
	FieldInput  = "input"
	FieldOutput = "output"
	FieldFormat = "format"

	// Search fields.
	FieldPattern    = "pattern"
	FieldMode       = "mode"
	FieldIgnoreCase = "ignore_case"
	FieldLines      = "lines"
	FieldMatches    = "matches"
	FieldCount      = "count"

	// Configuration fields.
	FieldConfig  = "config"
	FieldSources = "sources"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
