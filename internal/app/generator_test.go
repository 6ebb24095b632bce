package generator_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"

	generator "github.com/okian/meritsim/internal/app"
	"github.com/okian/meritsim/internal/domain/activity"
	"github.com/okian/meritsim/internal/domain/draw"
	"github.com/okian/meritsim/internal/domain/model"
	"github.com/okian/meritsim/internal/domain/rules"
	"github.com/okian/meritsim/internal/domain/schema"
	"github.com/okian/meritsim/internal/domain/scoring"
	"github.com/okian/meritsim/internal/domain/workflow"
	"github.com/okian/meritsim/pkg/logger"
	"github.com/okian/meritsim/pkg/metrics"
)

var reference = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) //nolint:gochecknoglobals // test fixture

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func actors(n int) []model.Actor {
	out := make([]model.Actor, n)
	for i := range out {
		out[i] = model.Actor{
			ID:      fmt.Sprintf("student-%03d", i),
			Name:    fmt.Sprintf("Student %d", i),
			GroupID: fmt.Sprintf("class-%d", i%4),
		}
	}
	return out
}

func byGroup() generator.ReviewerResolver {
	return generator.ReviewerFunc(func(_ context.Context, a *model.Actor) (string, error) {
		return "faculty-" + a.GroupID, nil
	})
}

func newGenerator(opts ...generator.Option) (*generator.Generator, error) {
	base := []generator.Option{
		generator.WithSeed(42),
		generator.WithReviewers(byGroup()),
		generator.WithReferenceTime(reference),
		generator.WithLogger(logger.Nop()),
		generator.WithMetrics(metrics.NewManager(metrics.WithPrometheusRegistry(prometheus.NewRegistry()))),
	}
	return generator.New(append(base, opts...)...)
}

func TestNew(t *testing.T) {
	Convey("Given generator options", t, func() {
		Convey("When the defaults are used", func() {
			g, err := newGenerator()

			Convey("Then the additive policy is selected", func() {
				So(err, ShouldBeNil)
				So(g.Policy().Name(), ShouldEqual, "additive")
			})
		})

		Convey("When no reviewer linkage is given", func() {
			_, err := generator.New(generator.WithLogger(logger.Nop()))
			So(errors.Is(err, generator.ErrInvalidConfig), ShouldBeTrue)
		})

		Convey("When a tier range is negative", func() {
			_, err := newGenerator(generator.WithTiers([]activity.Tier{{Name: "low", Weight: 1, Min: -1, Max: 2}}))
			So(errors.Is(err, generator.ErrInvalidConfig), ShouldBeTrue)
			So(errors.Is(err, activity.ErrInvalidRange), ShouldBeTrue)
		})

		Convey("When a weight triple sums to zero", func() {
			_, err := newGenerator(generator.WithWorkflow(workflow.WithHighWeights(workflow.Weights{})))
			So(errors.Is(err, generator.ErrInvalidConfig), ShouldBeTrue)
			So(errors.Is(err, draw.ErrInvalidWeights), ShouldBeTrue)
		})

		Convey("When thresholds are inverted", func() {
			_, err := newGenerator(generator.WithWorkflow(workflow.WithThresholds(10, 40)))
			So(errors.Is(err, workflow.ErrInvalidThresholds), ShouldBeTrue)
		})

		Convey("When the window is not positive", func() {
			_, err := newGenerator(generator.WithWindow(0))
			So(errors.Is(err, generator.ErrInvalidConfig), ShouldBeTrue)
		})

		Convey("When the achievement threshold is negative", func() {
			_, err := newGenerator(generator.WithAchievementThreshold(-1))
			So(errors.Is(err, generator.ErrInvalidConfig), ShouldBeTrue)
		})
	})
}

func TestGenerateDeterminism(t *testing.T) {
	Convey("Given two generators with the same seed", t, func() {
		ctx := context.Background()
		a, err := newGenerator()
		So(err, ShouldBeNil)
		b, err := newGenerator()
		So(err, ShouldBeNil)
		in := actors(60)

		Convey("When both run", func() {
			ra, err := a.Generate(ctx, in)
			So(err, ShouldBeNil)
			rb, err := b.Generate(ctx, in)
			So(err, ShouldBeNil)

			Convey("Then the JSON output is byte-identical", func() {
				So(mustJSON(ra.Submissions), ShouldEqual, mustJSON(rb.Submissions))
				So(mustJSON(ra.Actors), ShouldEqual, mustJSON(rb.Actors))
				So(len(ra.Submissions), ShouldBeGreaterThan, 0)
			})

			Convey("Then the input actors are left untouched", func() {
				for _, actor := range in {
					So(actor.TotalPoints, ShouldEqual, 0)
					So(actor.Submissions, ShouldBeNil)
				}
			})
		})

		Convey("When one of them runs in parallel", func() {
			seq, err := a.Generate(ctx, in)
			So(err, ShouldBeNil)
			par, err := b.GenerateParallel(ctx, in, 8)
			So(err, ShouldBeNil)

			Convey("Then the output matches the sequential run", func() {
				So(mustJSON(par.Submissions), ShouldEqual, mustJSON(seq.Submissions))
				So(mustJSON(par.Actors), ShouldEqual, mustJSON(seq.Actors))
			})
		})

		Convey("When a different seed is used", func() {
			c, err := newGenerator(generator.WithSeed(7))
			So(err, ShouldBeNil)
			ra, _ := a.Generate(ctx, in)
			rc, _ := c.Generate(ctx, in)

			Convey("Then the output differs", func() {
				So(mustJSON(rc.Submissions), ShouldNotEqual, mustJSON(ra.Submissions))
			})
		})
	})
}

func TestGenerateInvariants(t *testing.T) {
	Convey("Given a generator with a step observer", t, func() {
		sums := map[string]int{}
		steps := 0
		var violations []string
		observe := func(a *model.Actor, s *model.Submission) {
			steps++
			sums[a.ID] += s.Payout
			if a.TotalPoints != sums[a.ID] {
				violations = append(violations, fmt.Sprintf("%s total %d sum %d", a.ID, a.TotalPoints, sums[a.ID]))
			}
			if a.Submissions[len(a.Submissions)-1] != s.ID {
				violations = append(violations, "submission not appended "+s.ID)
			}
		}
		g, err := newGenerator(generator.WithStepObserver(observe))
		So(err, ShouldBeNil)

		Convey("When generating", func() {
			res, err := g.Generate(context.Background(), actors(100))
			So(err, ShouldBeNil)

			Convey("Then the actor total matches after every step", func() {
				So(steps, ShouldEqual, len(res.Submissions))
				So(violations, ShouldBeEmpty)
			})

			Convey("Then every submission honours the payout rule", func() {
				for i := range res.Submissions {
					So(res.Submissions[i].Check(), ShouldBeNil)
				}
			})

			Convey("Then every selection comes from the rule table", func() {
				tbl := rules.DefaultAdditive()
				for _, s := range res.Submissions {
					for _, sel := range s.Selections {
						_, lerr := tbl.Lookup(s.Category, sel.Dimension, sel.Option)
						So(lerr, ShouldBeNil)
					}
				}
			})

			Convey("Then tiers and counts stay in their declared ranges", func() {
				limits := map[string][2]int{}
				for _, tier := range activity.DefaultTiers() {
					limits[tier.Name] = [2]int{tier.Min, tier.Max}
				}
				for _, a := range res.Actors {
					lim, ok := limits[a.Tier]
					So(ok, ShouldBeTrue)
					So(len(a.Submissions), ShouldBeBetweenOrEqual, lim[0], lim[1])
				}
			})

			Convey("Then dates stay inside the window", func() {
				start := reference.Add(-180 * 24 * time.Hour)
				for _, s := range res.Submissions {
					So(s.CreatedAt.Before(start), ShouldBeFalse)
					So(s.CreatedAt.After(reference), ShouldBeFalse)
					So(s.EventDate.Before(start), ShouldBeFalse)
					So(s.EventDate.After(s.CreatedAt.Add(7*24*time.Hour)), ShouldBeFalse)
				}
			})

			Convey("Then achievements mark approved payouts of at least twenty", func() {
				subs := map[string]model.Submission{}
				for _, s := range res.Submissions {
					subs[s.ID] = s
				}
				for _, a := range res.Actors {
					for _, ach := range a.Achievements {
						s := subs[ach.SubmissionID]
						So(s.Status, ShouldEqual, model.StatusApproved)
						So(ach.Points, ShouldBeGreaterThanOrEqualTo, 20)
						So(ach.Points, ShouldEqual, s.Payout)
					}
				}
			})
		})
	})
}

func TestAchievementThreshold(t *testing.T) {
	Convey("Given a generator whose achievement threshold is zero", t, func() {
		g, err := newGenerator(generator.WithAchievementThreshold(0))
		So(err, ShouldBeNil)

		Convey("When generating", func() {
			res, err := g.Generate(context.Background(), actors(200))
			So(err, ShouldBeNil)

			Convey("Then every approved submission earns an achievement", func() {
				approved, low := 0, 0
				for _, s := range res.Submissions {
					if s.Status == model.StatusApproved {
						approved++
						if s.Payout < 20 {
							low++
						}
					}
				}
				achievements := 0
				for _, a := range res.Actors {
					achievements += len(a.Achievements)
				}
				So(low, ShouldBeGreaterThan, 0)
				So(achievements, ShouldEqual, approved)
			})
		})
	})
}

func TestGenerateSkips(t *testing.T) {
	ctx := context.Background()

	Convey("Given a reviewer linkage that fails for one actor", t, func() {
		resolver := generator.ReviewerFunc(func(_ context.Context, a *model.Actor) (string, error) {
			if a.ID == "student-001" {
				return "", errors.New("no class assignment")
			}
			return "faculty-1", nil
		})
		g, err := newGenerator(generator.WithReviewers(resolver), generator.WithCountWeights([]float64{0, 1}))
		So(err, ShouldBeNil)

		Convey("When generating", func() {
			res, err := g.Generate(ctx, actors(3))

			Convey("Then only that actor is skipped with a warning", func() {
				So(err, ShouldBeNil)
				So(res.Submissions, ShouldHaveLength, 2)
				So(res.Actors[1].Submissions, ShouldBeEmpty)
				So(res.Warnings, ShouldHaveLength, 1)
				So(res.Warnings[0].Reason, ShouldEqual, generator.ReasonUnresolvedReviewer)
				So(errors.Is(res.Warnings[0].Err, generator.ErrUnresolvedReviewer), ShouldBeTrue)
				So(res.Skipped(generator.ReasonUnresolvedReviewer), ShouldEqual, 1)
				So(res.Skipped(generator.ReasonUnknownOption), ShouldEqual, 0)
			})
		})
	})

	Convey("Given a reviewer linkage that returns an empty reference", t, func() {
		resolver := generator.ReviewerFunc(func(context.Context, *model.Actor) (string, error) { return "", nil })
		g, err := newGenerator(generator.WithReviewers(resolver), generator.WithCountWeights([]float64{0, 1}))
		So(err, ShouldBeNil)

		res, err := g.Generate(ctx, actors(1))
		So(err, ShouldBeNil)
		So(res.Submissions, ShouldBeEmpty)
		So(errors.Is(res.Warnings[0].Err, generator.ErrUnresolvedReviewer), ShouldBeTrue)
	})

	Convey("Given a category the rule table does not declare", t, func() {
		g, err := newGenerator(
			generator.WithCategories([]model.Category{"Chess"}),
			generator.WithCountWeights([]float64{0, 0, 1}),
		)
		So(err, ShouldBeNil)

		Convey("When generating", func() {
			res, err := g.Generate(ctx, actors(2))

			Convey("Then each submission is skipped but the batch completes", func() {
				So(err, ShouldBeNil)
				So(res.Submissions, ShouldBeEmpty)
				So(res.Warnings, ShouldHaveLength, 4)
				So(res.Skipped(generator.ReasonUnknownOption), ShouldEqual, 4)
				So(res.Skipped(generator.ReasonUnresolvedReviewer), ShouldEqual, 0)
				for _, w := range res.Warnings {
					So(w.Reason, ShouldEqual, generator.ReasonUnknownOption)
					So(errors.Is(w.Err, rules.ErrUnknownOption), ShouldBeTrue)
				}
			})
		})
	})

	Convey("Given actors with no activity", t, func() {
		g, err := newGenerator(generator.WithCountWeights([]float64{1}))
		So(err, ShouldBeNil)

		res, err := g.Generate(ctx, actors(5))
		So(err, ShouldBeNil)
		So(res.Submissions, ShouldBeEmpty)
		So(res.Warnings, ShouldBeEmpty)
		So(res.Actors, ShouldHaveLength, 5)
	})

	Convey("Given a cancelled context", t, func() {
		g, err := newGenerator()
		So(err, ShouldBeNil)
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err = g.Generate(cctx, actors(3))
		So(errors.Is(err, context.Canceled), ShouldBeTrue)
	})
}

func TestGenerateWithForms(t *testing.T) {
	Convey("Given forms for one category and a multiplicative policy", t, func() {
		src, err := schema.Parse([]byte(`[{
			"category": "Hackathon",
			"customQuestions": [
				{"id": "Level", "options": ["International"]},
				{"id": "Outcome", "options": ["Winner (1st)"]}
			],
			"optionalFields": ["teamName"],
			"proofConfig": {"requirePdfProof": true}
		}]`))
		So(err, ShouldBeNil)

		g, err := newGenerator(
			generator.WithForms(src),
			generator.WithPolicy(scoring.NewMultiplicative(rules.DefaultMultiplier())),
			generator.WithCategories([]model.Category{model.Hackathon, model.Sports}),
			generator.WithCountWeights([]float64{0, 0, 0, 1}),
		)
		So(err, ShouldBeNil)

		Convey("When generating", func() {
			res, err := g.Generate(context.Background(), actors(20))
			So(err, ShouldBeNil)

			Convey("Then the form governs its category and the table the rest", func() {
				for _, s := range res.Submissions {
					if s.Category == model.Hackathon {
						So(s.FormDriven, ShouldBeTrue)
						So(s.RawPoints, ShouldEqual, 135)
						So(s.PDFDocument, ShouldStartWith, "/uploads/documents/pdfDocument-")
					} else {
						So(s.FormDriven, ShouldBeFalse)
						So(s.RawPoints, ShouldEqual, 10)
					}
				}
			})
		})
	})
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(b)
}
