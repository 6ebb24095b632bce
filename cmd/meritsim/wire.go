package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/okian/meritsim/internal/adapters/roster"
	"github.com/okian/meritsim/internal/adapters/sink"
	generator "github.com/okian/meritsim/internal/app"
	"github.com/okian/meritsim/internal/config"
	"github.com/okian/meritsim/internal/domain/model"
	"github.com/okian/meritsim/internal/domain/rules"
	"github.com/okian/meritsim/internal/domain/sampler"
	"github.com/okian/meritsim/internal/domain/schema"
	"github.com/okian/meritsim/internal/domain/scoring"
	"github.com/okian/meritsim/internal/domain/workflow"
	"github.com/okian/meritsim/pkg/logger"
)

// sqliteFile is created under output_dir by the sqlite sink.
const sqliteFile = "meritsim.db"

// tables holds the rule tables a run may score with.
type tables struct {
	additive   *rules.Table
	multiplier *rules.MultiplierTable
}

func loadTables(cfg *config.Config) (tables, error) {
	t := tables{additive: rules.DefaultAdditive(), multiplier: rules.DefaultMultiplier()}
	if cfg.RulesFile != "" {
		additive, err := rules.LoadAdditiveFile(cfg.RulesFile)
		if err != nil {
			return tables{}, errors.Wrapf(err, "failed to load rules from %s", cfg.RulesFile)
		}
		t.additive = additive
	}
	if cfg.MultipliersFile != "" {
		multiplier, err := rules.LoadMultiplierFile(cfg.MultipliersFile)
		if err != nil {
			return tables{}, errors.Wrapf(err, "failed to load multipliers from %s", cfg.MultipliersFile)
		}
		t.multiplier = multiplier
	}
	return t, nil
}

func buildPolicy(name string, t tables) (scoring.Policy, error) {
	kind, err := scoring.ParseKind(name)
	if err != nil {
		return nil, errors.Wrap(err, "failed to select policy")
	}
	policy, err := scoring.New(kind, t.additive, t.multiplier)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build policy")
	}
	return policy, nil
}

func loadForms(cfg *config.Config) (*schema.Source, error) {
	if cfg.SchemaFile == "" {
		return nil, nil //nolint:nilnil // no forms means static sampling
	}
	src, err := schema.LoadFile(cfg.SchemaFile)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load forms from %s", cfg.SchemaFile)
	}
	return src, nil
}

func generatorOptions(cfg *config.Config, t tables, policy scoring.Policy, forms *schema.Source, ro *roster.Roster) []generator.Option {
	wf := cfg.Workflow
	workflowOpts := []workflow.Option{
		workflow.WithThresholds(wf.HighThreshold, wf.MidThreshold),
		workflow.WithHighWeights(wf.High),
		workflow.WithMidWeights(wf.Mid),
		workflow.WithBaselineWeights(wf.Baseline),
		workflow.WithResolutionDelay(wf.MinDelayDays, wf.MaxDelayDays),
	}
	if wf.Flat {
		workflowOpts = append(workflowOpts, workflow.WithFlatWeights(wf.FlatWeights))
	}

	opts := []generator.Option{
		generator.WithSeed(cfg.Seed),
		generator.WithRuleTable(t.additive),
		generator.WithPolicy(policy),
		generator.WithSamplerOptions(sampler.WithOptionalFieldRate(cfg.OptionalFieldRate)),
		generator.WithWorkflow(workflowOpts...),
		generator.WithReviewers(ro),
		generator.WithReferenceTime(cfg.Reference()),
		generator.WithWindow(cfg.Window()),
		generator.WithAchievementThreshold(cfg.AchievementThreshold),
		generator.WithLogger(logger.Named("generator")),
	}
	if forms != nil {
		opts = append(opts, generator.WithForms(forms))
	}
	if cfg.Profile == config.ProfileCounted {
		opts = append(opts, generator.WithCountWeights(cfg.Counts))
	} else {
		opts = append(opts, generator.WithTiers(cfg.Tiers))
	}
	if len(cfg.Categories) > 0 {
		categories := make([]model.Category, 0, len(cfg.Categories))
		for _, c := range cfg.Categories {
			categories = append(categories, model.Category(c))
		}
		opts = append(opts, generator.WithCategories(categories))
	}
	return opts
}

// openSink returns nil for the "none" sink.
func openSink(ctx context.Context, cfg *config.Config) (sink.Sink, error) {
	switch cfg.Sink {
	case config.SinkJSONL:
		s, err := sink.NewJSONL(cfg.OutputDir)
		if err != nil {
			return nil, errors.Wrap(err, "failed to open jsonl sink")
		}
		return s, nil
	case config.SinkSQLite:
		if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil { //nolint:mnd // rwxr-xr-x
			return nil, errors.Wrap(err, "failed to create output directory")
		}
		s, err := sink.OpenSQLite(ctx, filepath.Join(cfg.OutputDir, sqliteFile))
		if err != nil {
			return nil, errors.Wrap(err, "failed to open sqlite sink")
		}
		return s, nil
	default:
		return nil, nil //nolint:nilnil // sink disabled
	}
}
