package generator

import (
	"time"

	"github.com/okian/meritsim/internal/domain/activity"
	"github.com/okian/meritsim/internal/domain/model"
	"github.com/okian/meritsim/internal/domain/rules"
	"github.com/okian/meritsim/internal/domain/sampler"
	"github.com/okian/meritsim/internal/domain/schema"
	"github.com/okian/meritsim/internal/domain/scoring"
	"github.com/okian/meritsim/internal/domain/workflow"
	"github.com/okian/meritsim/pkg/logger"
	"github.com/okian/meritsim/pkg/metrics"
)

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithSeed sets the root seed every actor stream is derived from.
func WithSeed(seed int64) Option {
	return func(g *Generator) { g.seed = seed }
}

// WithRuleTable sets the static table used for sampling and, unless
// WithPolicy is given, for additive scoring.
func WithRuleTable(t *rules.Table) Option {
	return func(g *Generator) {
		if t != nil {
			g.table = t
		}
	}
}

// WithPolicy sets the scoring policy for the whole run.
func WithPolicy(p scoring.Policy) Option {
	return func(g *Generator) {
		if p != nil {
			g.policy = p
		}
	}
}

// WithForms sets the dynamic form source.
func WithForms(src *schema.Source) Option {
	return func(g *Generator) { g.forms = src }
}

// WithSamplerOptions configures the attribute sampler.
func WithSamplerOptions(opts ...sampler.Option) Option {
	return func(g *Generator) { g.samplerOpts = append(g.samplerOpts, opts...) }
}

// WithTiers profiles actors with named ranged tiers.
func WithTiers(tiers []activity.Tier) Option {
	return func(g *Generator) {
		g.tiers = tiers
		g.countWeights = nil
	}
}

// WithCountWeights profiles actors by drawing the count directly.
func WithCountWeights(weights []float64) Option {
	return func(g *Generator) {
		g.countWeights = weights
		g.tiers = nil
	}
}

// WithWorkflow configures the workflow simulator.
func WithWorkflow(opts ...workflow.Option) Option {
	return func(g *Generator) { g.workflowOpts = append(g.workflowOpts, opts...) }
}

// WithReviewers sets the reviewer linkage.
func WithReviewers(r ReviewerResolver) Option {
	return func(g *Generator) { g.reviewers = r }
}

// WithCategories restricts the categories submissions are drawn from.
func WithCategories(categories []model.Category) Option {
	return func(g *Generator) {
		if len(categories) > 0 {
			g.categories = append([]model.Category(nil), categories...)
		}
	}
}

// WithReferenceTime sets the end of the creation window.
func WithReferenceTime(t time.Time) Option {
	return func(g *Generator) {
		if !t.IsZero() {
			g.reference = t.UTC()
		}
	}
}

// WithWindow sets how far back creation dates may reach.
func WithWindow(d time.Duration) Option {
	return func(g *Generator) { g.window = d }
}

// WithAchievementThreshold sets the minimum approved payout that earns an
// achievement. Zero marks every approved submission; New rejects negatives.
func WithAchievementThreshold(points int) Option {
	return func(g *Generator) { g.achievementThreshold = points }
}

// WithStepObserver registers a callback run after each appended submission.
// With GenerateParallel it is called from several goroutines.
func WithStepObserver(fn func(actor *model.Actor, sub *model.Submission)) Option {
	return func(g *Generator) { g.observer = fn }
}

// WithLogger sets a custom logger for the generator.
func WithLogger(l logger.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithMetrics sets the metrics manager. The global one is used otherwise.
func WithMetrics(m *metrics.Manager) Option {
	return func(g *Generator) {
		if m != nil {
			g.metrics = m
		}
	}
}
