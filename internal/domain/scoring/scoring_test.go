package scoring_test

import (
	"errors"
	"testing"

	"github.com/okian/meritsim/internal/domain/model"
	"github.com/okian/meritsim/internal/domain/rules"
	"github.com/okian/meritsim/internal/domain/scoring"
	"github.com/smartystreets/goconvey/convey"
)

func hackathon(level, organizer, mode, outcome string) model.Selections {
	return model.Selections{
		{Dimension: "Level", Option: level},
		{Dimension: "Organizer", Option: organizer},
		{Dimension: "Mode", Option: mode},
		{Dimension: "Outcome", Option: outcome},
	}
}

func TestAdditive(t *testing.T) {
	convey.Convey("Given the additive policy over the built-in table", t, func() {
		p := scoring.NewAdditive(rules.DefaultAdditive())
		convey.So(p.Name(), convey.ShouldEqual, "additive")

		convey.Convey("When scoring an international hackathon win", func() {
			pts, err := p.Compute(model.Hackathon, hackathon("International", "Industry", "Solo Participation", "Winner (1st)"))

			convey.Convey("Then points are the sum of the four options", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(pts, convey.ShouldEqual, 85)
			})
		})

		convey.Convey("When every option is a zero baseline", func() {
			pts, err := p.Compute(model.StudentLeadership, model.Selections{
				{Dimension: "Role", Option: "Member"},
				{Dimension: "Events Managed", Option: "<100 participants"},
				{Dimension: "Organized Series", Option: "None"},
			})

			convey.Convey("Then only the non-zero options count", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(pts, convey.ShouldEqual, 15)
			})
		})

		convey.Convey("When an option is not in the table", func() {
			_, err := p.Compute(model.Hackathon, hackathon("Galactic", "Industry", "Solo Participation", "Winner (1st)"))

			convey.Convey("Then UnknownOptionError is raised", func() {
				convey.So(errors.Is(err, rules.ErrUnknownOption), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When a declared dimension is not selected", func() {
			sel := hackathon("National", "Industry", "Solo Participation", "Finalist")[:3]
			_, err := p.Compute(model.Hackathon, sel)

			convey.Convey("Then the missing dimension is reported", func() {
				var uoe *rules.UnknownOptionError
				convey.So(errors.As(err, &uoe), convey.ShouldBeTrue)
				convey.So(uoe.Missing, convey.ShouldBeTrue)
				convey.So(uoe.Dimension, convey.ShouldEqual, "Outcome")
			})
		})

		convey.Convey("When an extra undeclared dimension is selected", func() {
			sel := append(hackathon("National", "Industry", "Solo Participation", "Finalist"), model.Selection{Dimension: "Venue", Option: "Online"})
			_, err := p.Compute(model.Hackathon, sel)

			convey.Convey("Then it is rejected", func() {
				convey.So(errors.Is(err, rules.ErrUnknownOption), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the category is unknown", func() {
			_, err := p.Compute("Chess", nil)

			convey.Convey("Then it is rejected", func() {
				convey.So(errors.Is(err, rules.ErrUnknownOption), convey.ShouldBeTrue)
			})
		})
	})
}

func TestMultiplicative(t *testing.T) {
	convey.Convey("Given the multiplicative policy over the built-in table", t, func() {
		p := scoring.NewMultiplicative(rules.DefaultMultiplier())
		convey.So(p.Name(), convey.ShouldEqual, "multiplicative")

		convey.Convey("When scoring an international hackathon win", func() {
			pts, err := p.Compute(model.Hackathon, hackathon("International", "Industry", "Solo Participation", "Winner (1st)"))

			convey.Convey("Then base and factors multiply and undeclared dimensions are neutral", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(pts, convey.ShouldEqual, 135)
			})
		})

		convey.Convey("When no factors are declared for the category", func() {
			pts, err := p.Compute(model.Sports, model.Selections{{Dimension: "Level", Option: "International"}})

			convey.Convey("Then the base is returned", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(pts, convey.ShouldEqual, 10)
			})
		})

		convey.Convey("When the category is unknown", func() {
			pts, err := p.Compute("Chess", nil)

			convey.Convey("Then the fallback base is used", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(pts, convey.ShouldEqual, rules.DefaultFallbackBase)
			})
		})

		convey.Convey("When an option is not declared", func() {
			pts, err := p.Compute(model.Hackathon, model.Selections{
				{Dimension: "Level", Option: "Galactic"},
				{Dimension: "Outcome", Option: "Finalist"},
			})

			convey.Convey("Then it counts as 1.0", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(pts, convey.ShouldEqual, 18)
			})
		})

		convey.Convey("When the product lands on a half", func() {
			pts, err := p.Compute(model.Certifications, model.Selections{
				{Dimension: "Provider", Option: "Other"},
				{Dimension: "Final Project Required", Option: "Yes"},
				{Dimension: "Certification Level", Option: "Beginner"},
			})

			convey.Convey("Then it rounds half to even", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(pts, convey.ShouldEqual, 22)
			})
		})
	})
}

func TestRoundHalfEven(t *testing.T) {
	convey.Convey("Given values on and off the half", t, func() {
		convey.So(scoring.RoundHalfEven(7.5), convey.ShouldEqual, 8)
		convey.So(scoring.RoundHalfEven(22.5), convey.ShouldEqual, 22)
		convey.So(scoring.RoundHalfEven(2.5), convey.ShouldEqual, 2)
		convey.So(scoring.RoundHalfEven(3.5), convey.ShouldEqual, 4)
		convey.So(scoring.RoundHalfEven(17.999), convey.ShouldEqual, 18)
		convey.So(scoring.RoundHalfEven(0), convey.ShouldEqual, 0)
	})
}

func TestNewAndParseKind(t *testing.T) {
	convey.Convey("Given policy selection", t, func() {
		convey.Convey("When parsing names", func() {
			k, err := scoring.ParseKind(" Multiplicative ")
			convey.So(err, convey.ShouldBeNil)
			convey.So(k, convey.ShouldEqual, scoring.KindMultiplicative)

			_, err = scoring.ParseKind("weighted")
			convey.So(errors.Is(err, scoring.ErrUnknownPolicy), convey.ShouldBeTrue)
		})

		convey.Convey("When building with the matching table", func() {
			p, err := scoring.New(scoring.KindAdditive, rules.DefaultAdditive(), nil)
			convey.So(err, convey.ShouldBeNil)
			convey.So(p.Name(), convey.ShouldEqual, "additive")
		})

		convey.Convey("When the table for the kind is missing", func() {
			_, err := scoring.New(scoring.KindMultiplicative, rules.DefaultAdditive(), nil)
			convey.So(errors.Is(err, scoring.ErrMissingTable), convey.ShouldBeTrue)

			_, err = scoring.New(scoring.KindAdditive, nil, rules.DefaultMultiplier())
			convey.So(errors.Is(err, scoring.ErrMissingTable), convey.ShouldBeTrue)
		})

		convey.Convey("When the kind is unknown", func() {
			_, err := scoring.New("weighted", rules.DefaultAdditive(), rules.DefaultMultiplier())
			convey.So(errors.Is(err, scoring.ErrUnknownPolicy), convey.ShouldBeTrue)
		})
	})
}
