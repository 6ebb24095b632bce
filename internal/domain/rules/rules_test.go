package rules_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/meritsim/internal/domain/model"
	"github.com/okian/meritsim/internal/domain/rules"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDefaultAdditive(t *testing.T) {
	Convey("Given the built-in additive table", t, func() {
		tbl := rules.DefaultAdditive()

		Convey("Then every built-in category is declared in order", func() {
			So(tbl.Categories(), ShouldResemble, model.DefaultCategories())
		})

		Convey("When looking up known options", func() {
			v, err := tbl.Lookup(model.Hackathon, "Level", "National")
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 30.0)

			v, err = tbl.Lookup(model.OpenSource, "Contributor Badge", "GSoC Contributor")
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 40.0)
		})

		Convey("Then optional dimensions carry a zero baseline", func() {
			for _, c := range []struct {
				cat model.Category
				dim string
			}{
				{model.Certifications, "Final Project Required"},
				{model.NCCNSSYRC, "Award"},
				{model.StudentLeadership, "Organized Series"},
			} {
				var zero bool
				for _, d := range tbl.Dimensions(c.cat) {
					if d.Name != c.dim {
						continue
					}
					for _, o := range d.Options {
						if o.Value == 0 {
							zero = true
						}
					}
				}
				So(zero, ShouldBeTrue)
			}
		})

		Convey("When the option is unknown", func() {
			_, err := tbl.Lookup(model.Hackathon, "Level", "Galactic")

			Convey("Then an UnknownOptionError is returned", func() {
				So(errors.Is(err, rules.ErrUnknownOption), ShouldBeTrue)
				var uoe *rules.UnknownOptionError
				So(errors.As(err, &uoe), ShouldBeTrue)
				So(uoe.Option, ShouldEqual, "Galactic")
				So(uoe.Error(), ShouldContainSubstring, "Galactic")
			})
		})

		Convey("When the dimension or category is unknown", func() {
			_, errDim := tbl.Lookup(model.Hackathon, "Venue", "Online")
			_, errCat := tbl.Lookup("Chess", "Level", "National")

			Convey("Then both are unknown option errors", func() {
				So(errors.Is(errDim, rules.ErrUnknownOption), ShouldBeTrue)
				So(errDim.Error(), ShouldContainSubstring, "dimension")
				So(errors.Is(errCat, rules.ErrUnknownOption), ShouldBeTrue)
				So(errCat.Error(), ShouldContainSubstring, "category")
			})
		})
	})
}

func TestNewTableValidation(t *testing.T) {
	Convey("Given malformed declarations", t, func() {
		cases := []struct {
			name    string
			entries []rules.CategoryRules
		}{
			{"empty", nil},
			{"duplicate category", []rules.CategoryRules{{Category: "A", Dimensions: []rules.Dimension{{Name: "d", Options: []rules.Option{{Name: "o"}}}}}, {Category: "A"}}},
			{"dimension without options", []rules.CategoryRules{{Category: "A", Dimensions: []rules.Dimension{{Name: "d"}}}}},
			{"duplicate option", []rules.CategoryRules{{Category: "A", Dimensions: []rules.Dimension{{Name: "d", Options: []rules.Option{{Name: "o"}, {Name: "o"}}}}}}},
			{"duplicate dimension", []rules.CategoryRules{{Category: "A", Dimensions: []rules.Dimension{{Name: "d", Options: []rules.Option{{Name: "o"}}}, {Name: "d", Options: []rules.Option{{Name: "o"}}}}}}},
		}
		for _, tc := range cases {
			_, err := rules.NewTable(tc.entries)
			So(errors.Is(err, rules.ErrInvalidTable), ShouldBeTrue)
		}
	})
}

func TestDefaultMultiplier(t *testing.T) {
	Convey("Given the built-in multiplier table", t, func() {
		m := rules.DefaultMultiplier()

		Convey("Then bases match the category defaults", func() {
			So(m.Base(model.Hackathon), ShouldEqual, 15.0)
			So(m.Base(model.Research), ShouldEqual, 25.0)
			So(m.Base("Chess"), ShouldEqual, float64(rules.DefaultFallbackBase))
			So(m.Categories(), ShouldHaveLength, 10)
		})

		Convey("Then declared factors are found and others are not", func() {
			f, ok := m.Factor(model.Hackathon, "Outcome", "Finalist")
			So(ok, ShouldBeTrue)
			So(f, ShouldEqual, 1.2)

			_, ok = m.Factor(model.Sports, "Level", "National")
			So(ok, ShouldBeFalse)
		})

		Convey("Then every factor dimension exists in the additive table", func() {
			tbl := rules.DefaultAdditive()
			for _, mc := range rules.DefaultMultiplierRules() {
				for _, d := range mc.Dimensions {
					found := false
					for _, ad := range tbl.Dimensions(mc.Category) {
						if ad.Name == d.Name {
							found = true
						}
					}
					So(found, ShouldBeTrue)
				}
			}
		})
	})

	Convey("Given invalid multiplier declarations", t, func() {
		_, err := rules.NewMultiplierTable(0, nil)
		So(errors.Is(err, rules.ErrInvalidTable), ShouldBeTrue)

		_, err = rules.NewMultiplierTable(5, []rules.MultiplierCategory{{Category: "A", Base: -1}})
		So(errors.Is(err, rules.ErrInvalidTable), ShouldBeTrue)

		_, err = rules.NewMultiplierTable(5, []rules.MultiplierCategory{{Category: "A", Base: 2, Dimensions: []rules.Dimension{
			{Name: "d", Options: []rules.Option{{Name: "o", Value: 0}}},
		}}})
		So(errors.Is(err, rules.ErrInvalidTable), ShouldBeTrue)
	})
}

func TestLoaders(t *testing.T) {
	Convey("Given YAML rule documents", t, func() {
		dir := t.TempDir()

		Convey("When loading a valid additive file", func() {
			path := filepath.Join(dir, "rules.yaml")
			doc := `
categories:
  - name: Chess
    dimensions:
      - name: Level
        options:
          - {name: Club, value: 5}
          - {name: National, value: 25}
`
			So(os.WriteFile(path, []byte(doc), 0o600), ShouldBeNil)
			tbl, err := rules.LoadAdditiveFile(path)

			Convey("Then the table is usable", func() {
				So(err, ShouldBeNil)
				v, lerr := tbl.Lookup("Chess", "Level", "National")
				So(lerr, ShouldBeNil)
				So(v, ShouldEqual, 25.0)
				So(tbl.Dimensions("Chess")[0].OptionNames(), ShouldResemble, []string{"Club", "National"})
				So(tbl.Options("Chess", "Level"), ShouldResemble, []string{"Club", "National"})
				So(tbl.Options("Chess", "Mode"), ShouldBeNil)
			})
		})

		Convey("When the document has unknown keys", func() {
			_, err := rules.ParseAdditive([]byte("categories: []\nextra: 1\n"))

			Convey("Then loading fails", func() {
				So(errors.Is(err, rules.ErrLoadRules), ShouldBeTrue)
			})
		})

		Convey("When the document is empty", func() {
			_, err := rules.ParseAdditive(nil)

			Convey("Then the table is invalid", func() {
				So(errors.Is(err, rules.ErrInvalidTable), ShouldBeTrue)
			})
		})

		Convey("When loading a multiplier document without fallback", func() {
			m, err := rules.ParseMultiplier([]byte(`
categories:
  - name: Chess
    base: 12
    dimensions:
      - name: Level
        options:
          - {name: National, value: 2.5}
`))

			Convey("Then the default fallback applies", func() {
				So(err, ShouldBeNil)
				So(m.Base("Chess"), ShouldEqual, 12.0)
				So(m.Base("Go"), ShouldEqual, float64(rules.DefaultFallbackBase))
			})
		})

		Convey("When the file is missing", func() {
			_, err := rules.LoadMultiplierFile(filepath.Join(dir, "nope.yaml"))
			So(errors.Is(err, rules.ErrLoadRules), ShouldBeTrue)
		})
	})
}
