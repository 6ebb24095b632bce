// Package generator builds synthetic submissions for a roster of actors.
//
// For each actor the generator draws an activity count, then for every
// submission samples a category and its selections, scores them with the
// run's policy and resolves the review outcome. All randomness comes from a
// private stream per actor, so a run is reproducible from its seed whether
// actors are processed sequentially or in parallel.
package generator

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/meritsim/internal/domain/activity"
	"github.com/okian/meritsim/internal/domain/draw"
	"github.com/okian/meritsim/internal/domain/model"
	"github.com/okian/meritsim/internal/domain/rules"
	"github.com/okian/meritsim/internal/domain/sampler"
	"github.com/okian/meritsim/internal/domain/schema"
	"github.com/okian/meritsim/internal/domain/scoring"
	"github.com/okian/meritsim/internal/domain/workflow"
	"github.com/okian/meritsim/pkg/logger"
	"github.com/okian/meritsim/pkg/metrics"
)

const (
	defaultWindow               = 180 * 24 * time.Hour
	defaultAchievementThreshold = 20
	eventDateSlack              = 7 * 24 * time.Hour
)

// DefaultReferenceTime ends the creation window when none is configured.
var DefaultReferenceTime = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC) //nolint:gochecknoglobals // value type

// Skip reasons reported in warnings and metrics.
const (
	ReasonUnresolvedReviewer = "unresolved_reviewer"
	ReasonUnknownOption      = "unknown_option"
	ReasonNoActivity         = "no_activity"
)

// ReviewerResolver supplies the reviewer for an actor's group.
type ReviewerResolver interface {
	Reviewer(ctx context.Context, actor *model.Actor) (string, error)
}

// ReviewerFunc adapts a function to ReviewerResolver.
type ReviewerFunc func(ctx context.Context, actor *model.Actor) (string, error)

// Reviewer calls f.
func (f ReviewerFunc) Reviewer(ctx context.Context, actor *model.Actor) (string, error) {
	return f(ctx, actor)
}

// Warning describes an actor or submission that was skipped.
type Warning struct {
	ActorID string
	Reason  string
	Err     error
}

// Result is the output of one run. Actors keep their input order and
// Submissions are grouped by actor in the same order.
type Result struct {
	Actors      []model.Actor
	Submissions []model.Submission
	Warnings    []Warning
}

// Skipped counts the warnings recorded with reason.
func (r *Result) Skipped(reason string) int {
	n := 0
	for _, w := range r.Warnings {
		if w.Reason == reason {
			n++
		}
	}
	return n
}

// Generator runs submission generation. It is immutable after New.
type Generator struct {
	seed                 int64
	table                *rules.Table
	policy               scoring.Policy
	forms                *schema.Source
	categories           []model.Category
	reference            time.Time
	window               time.Duration
	achievementThreshold int
	reviewers            ReviewerResolver
	observer             func(*model.Actor, *model.Submission)

	tiers        []activity.Tier
	countWeights []float64
	samplerOpts  []sampler.Option
	workflowOpts []workflow.Option

	sampler  *sampler.Sampler
	profiler *activity.Profiler
	workflow *workflow.Simulator

	logger  logger.Logger
	metrics *metrics.Manager
}

// New builds a generator. Every configuration problem is reported here,
// wrapped in ErrInvalidConfig, before any actor is touched.
func New(opts ...Option) (*Generator, error) {
	g := &Generator{
		table:                rules.DefaultAdditive(),
		reference:            DefaultReferenceTime,
		window:               defaultWindow,
		achievementThreshold: defaultAchievementThreshold,
		tiers:                activity.DefaultTiers(),
	}
	for _, opt := range opts {
		opt(g)
	}

	if g.logger == nil {
		g.logger = logger.Get()
	}
	if g.metrics == nil {
		g.metrics = metrics.Global()
	}
	if g.policy == nil {
		g.policy = scoring.NewAdditive(g.table)
	}
	if g.categories == nil {
		g.categories = g.table.Categories()
	}
	if err := g.build(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return g, nil
}

func (g *Generator) build() error {
	if g.reviewers == nil {
		return errors.New("no reviewer resolver")
	}
	if len(g.categories) == 0 {
		return errors.New("no enabled categories")
	}
	if g.window <= 0 {
		return fmt.Errorf("window %s is not positive", g.window)
	}
	if g.achievementThreshold < 0 {
		return fmt.Errorf("achievement threshold %d is negative", g.achievementThreshold)
	}

	var err error
	if g.countWeights != nil {
		g.profiler, err = activity.NewCounted(g.countWeights)
	} else {
		g.profiler, err = activity.NewRanged(g.tiers)
	}
	if err != nil {
		return err
	}
	if g.workflow, err = workflow.New(g.workflowOpts...); err != nil {
		return err
	}
	g.sampler = sampler.New(g.table, g.samplerOpts...)
	return nil
}

// Policy returns the scoring policy in use.
func (g *Generator) Policy() scoring.Policy { return g.policy }

// Generate processes actors one after another.
func (g *Generator) Generate(ctx context.Context, actors []model.Actor) (*Result, error) {
	start := time.Now()
	parts := make([]actorResult, len(actors))
	for i := range actors {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		part, err := g.generateActor(ctx, i, actors[i])
		if err != nil {
			return nil, err
		}
		parts[i] = part
	}
	return g.merge(ctx, parts, start), nil
}

// GenerateParallel spreads actors over at most workers goroutines. The
// result is identical to Generate for the same input.
func (g *Generator) GenerateParallel(ctx context.Context, actors []model.Actor, workers int) (*Result, error) {
	if workers < 1 {
		workers = 1
	}
	start := time.Now()
	parts := make([]actorResult, len(actors))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i := range actors {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			part, err := g.generateActor(ctx, i, actors[i])
			if err != nil {
				return err
			}
			parts[i] = part
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return g.merge(ctx, parts, start), nil
}

type actorResult struct {
	actor       model.Actor
	submissions []model.Submission
	warnings    []Warning
	profiled    bool
}

func (g *Generator) merge(ctx context.Context, parts []actorResult, start time.Time) *Result {
	res := &Result{Actors: make([]model.Actor, 0, len(parts))}
	profiled := 0
	for _, p := range parts {
		res.Actors = append(res.Actors, p.actor)
		res.Submissions = append(res.Submissions, p.submissions...)
		res.Warnings = append(res.Warnings, p.warnings...)
		if p.profiled {
			profiled++
		}
	}

	elapsed := time.Since(start)
	g.metrics.UpdateActorsProfiled(profiled)
	g.metrics.RecordGenerationDuration(float64(elapsed.Milliseconds()))
	g.logger.Info(ctx, "generation finished",
		logger.Int("actors", len(res.Actors)),
		logger.Int("submissions", len(res.Submissions)),
		logger.Int("warnings", len(res.Warnings)),
		logger.String("policy", g.policy.Name()),
		logger.Duration("elapsed", elapsed),
	)
	return res
}

func (g *Generator) generateActor(ctx context.Context, index int, actor model.Actor) (actorResult, error) {
	r := draw.Stream(g.seed, index)
	actor.Submissions = append([]string(nil), actor.Submissions...)
	actor.Achievements = append([]model.Achievement(nil), actor.Achievements...)

	assigned := g.profiler.Profile(r)
	actor.Tier = assigned.Tier
	out := actorResult{actor: actor}
	if assigned.Count == 0 {
		g.logger.Debug(ctx, "actor has no activity", logger.String("actor", actor.ID))
		return out, nil
	}

	reviewer, err := g.reviewers.Reviewer(ctx, &out.actor)
	if err == nil && reviewer == "" {
		err = errors.New("empty reviewer reference")
	}
	if err != nil {
		uerr := &UnresolvedReviewerError{ActorID: actor.ID, Err: err}
		g.logger.Warn(ctx, "skipping actor", logger.String("actor", actor.ID), logger.Error(uerr))
		g.metrics.RecordActorSkipped(ReasonUnresolvedReviewer)
		out.warnings = append(out.warnings, Warning{ActorID: actor.ID, Reason: ReasonUnresolvedReviewer, Err: uerr})
		return out, nil
	}
	out.profiled = true

	for i := 0; i < assigned.Count; i++ {
		sub, err := g.buildSubmission(ctx, r, &out.actor, reviewer)
		if errors.Is(err, rules.ErrUnknownOption) {
			g.logger.Warn(ctx, "skipping submission", logger.String("actor", actor.ID), logger.Int("index", i), logger.Error(err))
			g.metrics.RecordSubmissionSkipped(ReasonUnknownOption)
			out.warnings = append(out.warnings, Warning{ActorID: actor.ID, Reason: ReasonUnknownOption, Err: err})
			continue
		}
		if err != nil {
			return actorResult{}, err
		}

		out.actor.Credit(&sub)
		if sub.Status == model.StatusApproved && sub.Payout >= g.achievementThreshold {
			out.actor.Achievements = append(out.actor.Achievements, model.Achievement{
				SubmissionID: sub.ID,
				Title:        sub.EventName,
				Points:       sub.Payout,
				Date:         sub.EventDate,
			})
			g.metrics.RecordAchievement()
		}
		out.submissions = append(out.submissions, sub)

		g.metrics.RecordSubmission(string(sub.Category), string(sub.Status))
		g.metrics.RecordRawPoints(g.policy.Name(), sub.RawPoints)
		g.metrics.RecordPayout(sub.Payout)
		if g.observer != nil {
			g.observer(&out.actor, &out.submissions[len(out.submissions)-1])
		}
	}
	return out, nil
}

func (g *Generator) buildSubmission(ctx context.Context, r *rand.Rand, actor *model.Actor, reviewer string) (model.Submission, error) {
	category := draw.Uniform(r, g.categories)

	form, err := g.forms.Form(category)
	if err != nil {
		if !errors.Is(err, schema.ErrMissingCategoryConfig) {
			return model.Submission{}, err
		}
		if g.forms != nil {
			g.logger.Debug(ctx, "no form for category, using rule table", logger.String("category", string(category)))
		}
		form = nil
	}

	selections, err := g.sampler.Sample(r, category, form)
	if err != nil {
		return model.Submission{}, err
	}
	raw, err := g.policy.Compute(category, selections)
	if err != nil {
		return model.Submission{}, err
	}

	windowStart := g.reference.Add(-g.window)
	createdAt := g.reference.Add(-randomSpan(r, g.window))
	eventDate := windowStart.Add(randomSpan(r, createdAt.Add(eventDateSlack).Sub(windowStart)))
	details := g.sampler.Describe(r, category, form, createdAt)
	id := draw.UUID(r)
	outcome := g.workflow.Resolve(r, raw, reviewer, createdAt)

	sub := model.Submission{
		ID:             id,
		SubmitterID:    actor.ID,
		ReviewerID:     outcome.ReviewerID,
		Category:       category,
		Selections:     selections,
		EventName:      details.EventName,
		Description:    details.Description,
		EventDate:      eventDate,
		RawPoints:      raw,
		Status:         outcome.Status,
		Payout:         outcome.Payout,
		CreatedAt:      createdAt,
		ResolvedAt:     outcome.ResolvedAt,
		OptionalFields: details.OptionalFields,
		ProofURLs:      details.ProofURLs,
		PDFDocument:    details.PDFDocument,
		FormDriven:     form != nil,
	}
	if err := sub.Check(); err != nil {
		return model.Submission{}, fmt.Errorf("%w: %w", ErrInconsistent, err)
	}
	return sub, nil
}

// randomSpan returns a whole number of seconds in [0, d].
func randomSpan(r *rand.Rand, d time.Duration) time.Duration {
	secs := int64(d / time.Second)
	if secs <= 0 {
		return 0
	}
	return time.Duration(r.Int63n(secs+1)) * time.Second
}
