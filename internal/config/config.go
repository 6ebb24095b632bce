// Package config defines the simulator configuration and its loading hooks.
//
// Conventions:
//   - New() returns a Config filled with defaults.
//   - Load layers a YAML file and MERITSIM_ env vars on top of those defaults.
//   - Nested keys (tiers, workflow, roster) are set from the file only; env vars
//     map to top-level keys.
package config

import (
	"runtime"
	"time"

	"github.com/okian/meritsim/internal/adapters/roster"
	"github.com/okian/meritsim/internal/domain/activity"
	"github.com/okian/meritsim/internal/domain/workflow"
)

// Profile and sink names accepted by Validate.
const (
	ProfileRanged  = "ranged"
	ProfileCounted = "counted"

	SinkJSONL  = "jsonl"
	SinkSQLite = "sqlite"
	SinkNone   = "none"
)

// Workflow tunes the approval simulation.
type Workflow struct {
	// Flat ignores claim value and draws every status from FlatWeights.
	Flat bool `koanf:"flat"`

	HighThreshold int `koanf:"high_threshold"`
	MidThreshold  int `koanf:"mid_threshold"`

	High        workflow.Weights `koanf:"high"`
	Mid         workflow.Weights `koanf:"mid"`
	Baseline    workflow.Weights `koanf:"baseline"`
	FlatWeights workflow.Weights `koanf:"flat_weights"`

	// MinDelayDays and MaxDelayDays bound the review delay of terminal states.
	MinDelayDays int `koanf:"min_delay_days"`
	MaxDelayDays int `koanf:"max_delay_days"`
}

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Seed drives every random stream of a run.
	Seed int64 `koanf:"seed"`

	// Policy selects "additive" or "multiplicative" scoring.
	Policy string `koanf:"policy"`

	// RulesFile and MultipliersFile replace the built-in tables when set.
	RulesFile       string `koanf:"rules_file"`
	MultipliersFile string `koanf:"multipliers_file"`

	// SchemaFile enables form-driven sampling.
	SchemaFile string `koanf:"schema_file"`

	// ReferenceTime (RFC 3339) is the end of the submission window.
	ReferenceTime string `koanf:"reference_time"`
	WindowDays    int    `koanf:"window_days"`

	// Categories restricts generation; empty means every table category.
	Categories []string `koanf:"categories"`

	// Profile is "ranged" (Tiers) or "counted" (Counts).
	Profile string          `koanf:"profile"`
	Tiers   []activity.Tier `koanf:"tiers"`
	Counts  []float64       `koanf:"counts"`

	Workflow Workflow `koanf:"workflow"`

	AchievementThreshold int     `koanf:"achievement_threshold"`
	OptionalFieldRate    float64 `koanf:"optional_field_rate"`

	// Workers > 1 generates actors in parallel.
	Workers int `koanf:"workers"`

	Roster roster.Layout `koanf:"roster"`

	// Sink is "jsonl", "sqlite" or "none".
	Sink      string `koanf:"sink"`
	OutputDir string `koanf:"output_dir"`

	// MetricsFile receives a Prometheus text dump after the run.
	MetricsFile string `koanf:"metrics_file"`

	TopN         int    `koanf:"top_n"`
	ReportFormat string `koanf:"report_format"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:      "info",
		Seed:          42,
		Policy:        "additive",
		ReferenceTime: "2025-01-01T00:00:00Z",
		WindowDays:    180,
		Profile:       ProfileRanged,
		Tiers:         activity.DefaultTiers(),
		Counts:        activity.DefaultCountWeights(),
		Workflow: Workflow{
			HighThreshold: 50,
			MidThreshold:  20,
			High:          workflow.HighWeights,
			Mid:           workflow.MidWeights,
			Baseline:      workflow.BaselineWeights,
			FlatWeights:   workflow.FlatWeights,
			MinDelayDays:  1,
			MaxDelayDays:  10,
		},
		AchievementThreshold: 20,
		OptionalFieldRate:    0.7,
		Workers:              runtime.NumCPU(),
		Roster:               roster.DefaultLayout(),
		Sink:                 SinkJSONL,
		OutputDir:            "out",
		TopN:                 10,
		ReportFormat:         "text",
	}
}

// Reference parses ReferenceTime. Call Validate first.
func (c *Config) Reference() time.Time {
	t, err := time.Parse(time.RFC3339, c.ReferenceTime)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}

// Window returns WindowDays as a duration.
func (c *Config) Window() time.Duration {
	return time.Duration(c.WindowDays) * 24 * time.Hour
}
