package main

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/okian/meritsim/internal/adapters/roster"
	generator "github.com/okian/meritsim/internal/app"
	"github.com/okian/meritsim/internal/config"
	"github.com/okian/meritsim/internal/report"
	"github.com/okian/meritsim/pkg/logger"
	"github.com/okian/meritsim/pkg/metrics"
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Run a full simulation and write its records",
		Long: `Build the roster, generate submissions for every student, persist them
through the configured sink and print a run report.

Flags override the matching config keys.

Examples:
  meritsim generate
  meritsim generate --seed 7 --policy multiplicative --sink sqlite --output-dir ./run
  meritsim generate --sink none --format json --top 5`,
		Args: cobra.NoArgs,
		RunE: runGenerate,
	}

	cmd.Flags().Int64("seed", 0, "Root seed (config: seed)")
	cmd.Flags().String("policy", "", "Scoring policy: additive or multiplicative (config: policy)")
	cmd.Flags().Int("workers", 0, "Parallel actor workers (config: workers)")
	cmd.Flags().String("sink", "", "Output sink: jsonl, sqlite or none (config: sink)")
	cmd.Flags().String("output-dir", "", "Directory for sink output (config: output_dir)")
	cmd.Flags().String("metrics-file", "", "Write Prometheus metrics here after the run (config: metrics_file)")
	cmd.Flags().String("format", "", "Report format: text, json or yaml (config: report_format)")
	cmd.Flags().Int("top", 0, "Leaderboard size in the report (config: top_n)")
	return cmd
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg, err := loadConfig(ctx, cmd)
	if err != nil {
		return err
	}
	if err := applyGenerateFlags(cmd, cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "invalid flags")
	}

	res, err := simulate(ctx, cfg)
	if err != nil {
		return err
	}

	if err := persist(ctx, cfg, res); err != nil {
		return err
	}

	rep, err := report.Build(ctx, report.Input{
		Policy:             cfg.Policy,
		Seed:               cfg.Seed,
		Actors:             res.Actors,
		Submissions:        res.Submissions,
		SkippedActors:      res.Skipped(generator.ReasonUnresolvedReviewer),
		SkippedSubmissions: res.Skipped(generator.ReasonUnknownOption),
		TopN:               cfg.TopN,
	})
	if err != nil {
		return errors.Wrap(err, "failed to build report")
	}
	if err := rep.Write(cmd.OutOrStdout(), cfg.ReportFormat); err != nil {
		return errors.Wrap(err, "failed to write report")
	}

	if cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsFile, metrics.GetRegistry()); err != nil {
			return errors.Wrap(err, "failed to write metrics")
		}
	}
	return nil
}

func applyGenerateFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	var err error
	if flags.Changed("seed") {
		if cfg.Seed, err = flags.GetInt64("seed"); err != nil {
			return err
		}
	}
	if flags.Changed("workers") {
		if cfg.Workers, err = flags.GetInt("workers"); err != nil {
			return err
		}
	}
	if flags.Changed("top") {
		if cfg.TopN, err = flags.GetInt("top"); err != nil {
			return err
		}
	}
	for flag, dst := range map[string]*string{
		"policy":       &cfg.Policy,
		"sink":         &cfg.Sink,
		"output-dir":   &cfg.OutputDir,
		"metrics-file": &cfg.MetricsFile,
		"format":       &cfg.ReportFormat,
	} {
		if !flags.Changed(flag) {
			continue
		}
		if *dst, err = flags.GetString(flag); err != nil {
			return err
		}
	}
	return nil
}

func simulate(ctx context.Context, cfg *config.Config) (*generator.Result, error) {
	log := logger.Get()

	t, err := loadTables(cfg)
	if err != nil {
		return nil, err
	}
	policy, err := buildPolicy(cfg.Policy, t)
	if err != nil {
		return nil, err
	}
	forms, err := loadForms(cfg)
	if err != nil {
		return nil, err
	}

	ro, err := roster.Build(cfg.Seed, cfg.Roster)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build roster")
	}
	log.Info(ctx, "roster built",
		logger.Int("students", len(ro.Students())),
		logger.Int("classes", len(ro.Classes())),
		logger.Int("faculty", len(ro.Faculty())),
	)

	gen, err := generator.New(generatorOptions(cfg, t, policy, forms, ro)...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create generator")
	}

	actors := ro.Students()
	var res *generator.Result
	if cfg.Workers > 1 {
		res, err = gen.GenerateParallel(ctx, actors, cfg.Workers)
	} else {
		res, err = gen.Generate(ctx, actors)
	}
	if err != nil {
		return nil, errors.Wrap(err, "generation failed")
	}
	return res, nil
}

func persist(ctx context.Context, cfg *config.Config, res *generator.Result) error {
	s, err := openSink(ctx, cfg)
	if err != nil {
		return err
	}
	if s == nil {
		return nil
	}
	defer func() {
		if cerr := s.Close(); cerr != nil {
			logger.Get().Error(ctx, "failed to close sink", logger.String("sink", s.Name()), logger.Error(cerr))
		}
	}()

	start := time.Now()
	if err := s.Write(ctx, res.Actors, res.Submissions); err != nil {
		return errors.Wrapf(err, "failed to write %s sink", s.Name())
	}
	logger.Get().Info(ctx, "records written",
		logger.String("sink", s.Name()),
		logger.Int("actors", len(res.Actors)),
		logger.Int("submissions", len(res.Submissions)),
		logger.Duration("took", time.Since(start)),
	)
	return nil
}
