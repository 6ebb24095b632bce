package config

import (
	"fmt"
	"strings"
	"time"
)

// Validate reports the first invalid setting wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return invalid("unknown log_level %q", c.LogLevel)
	}
	switch c.Policy {
	case "additive", "multiplicative":
	default:
		return invalid("unknown policy %q", c.Policy)
	}
	if _, err := time.Parse(time.RFC3339, c.ReferenceTime); err != nil {
		return invalid("reference_time: %v", err)
	}
	if c.WindowDays < 1 {
		return invalid("window_days must be positive, got %d", c.WindowDays)
	}
	switch c.Profile {
	case ProfileRanged:
		if len(c.Tiers) == 0 {
			return invalid("ranged profile needs tiers")
		}
	case ProfileCounted:
		if len(c.Counts) == 0 {
			return invalid("counted profile needs counts")
		}
	default:
		return invalid("unknown profile %q", c.Profile)
	}
	if c.Workflow.MidThreshold > c.Workflow.HighThreshold {
		return invalid("workflow mid_threshold %d above high_threshold %d",
			c.Workflow.MidThreshold, c.Workflow.HighThreshold)
	}
	if c.Workflow.MinDelayDays < 0 || c.Workflow.MaxDelayDays < c.Workflow.MinDelayDays {
		return invalid("workflow delay range [%d, %d]", c.Workflow.MinDelayDays, c.Workflow.MaxDelayDays)
	}
	if c.AchievementThreshold < 0 {
		return invalid("achievement_threshold must not be negative")
	}
	if c.OptionalFieldRate < 0 || c.OptionalFieldRate > 1 {
		return invalid("optional_field_rate must be within [0, 1], got %v", c.OptionalFieldRate)
	}
	if c.Workers < 1 {
		return invalid("workers must be positive, got %d", c.Workers)
	}
	if err := c.Roster.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	switch c.Sink {
	case SinkNone:
	case SinkJSONL, SinkSQLite:
		if c.OutputDir == "" {
			return invalid("output_dir must not be empty for sink %q", c.Sink)
		}
	default:
		return invalid("unknown sink %q", c.Sink)
	}
	if c.TopN < 0 {
		return invalid("top_n must not be negative")
	}
	switch c.ReportFormat {
	case "text", "json", "yaml":
	default:
		return invalid("unknown report_format %q", c.ReportFormat)
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}
