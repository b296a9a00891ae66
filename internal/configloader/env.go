package configloader

import (
	"os"
	"strings"

	"github.com/yaklabco/oko/pkg/config"
)

// envVarPrefix is the prefix for all oko environment variables.
const envVarPrefix = "OKO_"

// envMapping binds an environment variable suffix to a config field.
type envMapping struct {
	suffix      string
	description string
	apply       func(cfg *config.Config, value string)
}

//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = []envMapping{
	{
		suffix:      "CONTENT_COLOR",
		description: "Color of non-matching text in result lines",
		apply:       func(cfg *config.Config, v string) { cfg.ContentColor = v },
	},
	{
		suffix:      "MATCH_COLOR",
		description: "Color of matched text",
		apply:       func(cfg *config.Config, v string) { cfg.MatchColor = v },
	},
	{
		suffix:      "LOG_LEVEL",
		description: "Log level: debug, info, warn, or error",
		apply:       func(cfg *config.Config, v string) { cfg.LogLevel = v },
	},
	{
		suffix:      "COLOR",
		description: "Colorize output: auto, always, or never",
		apply:       func(cfg *config.Config, v string) { cfg.Color = config.ColorMode(v) },
	},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Empty variables are ignored.
func LoadFromEnv(cfg *config.Config) {
	if cfg == nil {
		return
	}

	for _, mapping := range envMappings {
		value := strings.TrimSpace(os.Getenv(envVarPrefix + mapping.suffix))
		if value == "" {
			continue
		}
		mapping.apply(cfg, value)
	}
}

// ListEnvVars returns all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envMappings))
	for _, mapping := range envMappings {
		vars[envVarPrefix+mapping.suffix] = mapping.description
	}
	return vars
}
