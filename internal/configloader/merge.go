package configloader

import "github.com/yaklabco/oko/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// Empty fields in override leave base untouched. An explicit "none" color is
// a value, so it can switch off a color set at a lower level.
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.ContentColor != "" {
		result.ContentColor = override.ContentColor
	}
	if override.MatchColor != "" {
		result.MatchColor = override.MatchColor
	}
	if override.LogLevel != "" {
		result.LogLevel = override.LogLevel
	}
	if override.Color != "" {
		result.Color = override.Color
	}

	return &result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for _, cfg := range configs[1:] {
		result = merge(result, cfg)
	}
	return result
}
