// Package roster builds a synthetic organisation of classes, faculty and
// students and links every student to the faculty member of their class.
package roster

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/okian/meritsim/internal/domain/draw"
	"github.com/okian/meritsim/internal/domain/model"
)

const rosterStream = -1

// Layout describes the shape of the organisation.
type Layout struct {
	Departments      []string `koanf:"departments"`
	Years            int      `koanf:"years"`
	Sections         []string `koanf:"sections"`
	ClassesPerYear   int      `koanf:"classes_per_year"`
	StudentsPerClass int      `koanf:"students_per_class"`
}

// DefaultLayout returns four departments, four years, ten classes per year
// and twenty-five students per class.
func DefaultLayout() Layout {
	return Layout{
		Departments:      []string{"CTECH", "CINTEL", "DSBS", "NWC"},
		Years:            4,
		Sections:         []string{"A1", "A2", "B1", "B2", "C1", "C2", "D1", "D2", "E1", "E2", "F1", "F2"},
		ClassesPerYear:   10,
		StudentsPerClass: 25,
	}
}

// Validate reports the first structural problem.
func (l Layout) Validate() error {
	switch {
	case len(l.Departments) == 0:
		return fmt.Errorf("%w: no departments", ErrInvalidRoster)
	case l.Years < 1:
		return fmt.Errorf("%w: years must be positive, got %d", ErrInvalidRoster, l.Years)
	case len(l.Sections) == 0:
		return fmt.Errorf("%w: no sections", ErrInvalidRoster)
	case l.ClassesPerYear < 1:
		return fmt.Errorf("%w: classes per year must be positive, got %d", ErrInvalidRoster, l.ClassesPerYear)
	case l.StudentsPerClass < 0:
		return fmt.Errorf("%w: students per class is negative", ErrInvalidRoster)
	}
	return nil
}

// Faculty is a reviewer assigned to one or more classes.
type Faculty struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	RegisterNo string `json:"registerNo"`
	Department string `json:"department"`
}

// Class is one section of one year of a department.
type Class struct {
	ID         string   `json:"id"`
	Name       string   `json:"className"`
	Department string   `json:"department"`
	Year       int      `json:"year"`
	Section    string   `json:"section"`
	FacultyID  string   `json:"facultyId"`
	StudentIDs []string `json:"students"`
}

// Roster is an immutable organisation. It implements the generator's
// reviewer linkage.
type Roster struct {
	faculty  []Faculty
	classes  []Class
	students []model.Actor
	reviewer map[string]string
}

// Build creates a roster. The same seed and layout always yield the same
// identifiers and names.
func Build(seed int64, layout Layout) (*Roster, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	r := draw.Stream(seed, rosterStream)
	ro := &Roster{reviewer: make(map[string]string)}

	facultyNo := 1
	for _, dept := range layout.Departments {
		for year := 1; year <= layout.Years; year++ {
			for i := 0; i < layout.ClassesPerYear; i++ {
				fac := Faculty{
					ID:         draw.UUID(r),
					Name:       "Prof. " + personName(r),
					RegisterNo: fmt.Sprintf("FAC-%s-%d-%03d", dept, year, facultyNo),
					Department: dept,
				}
				facultyNo++
				ro.faculty = append(ro.faculty, fac)

				section := layout.Sections[i%len(layout.Sections)]
				cls := Class{
					ID:         draw.UUID(r),
					Name:       fmt.Sprintf("%d-%s-%s", year, section, dept),
					Department: dept,
					Year:       year,
					Section:    section,
					FacultyID:  fac.ID,
				}
				for s := 0; s < layout.StudentsPerClass; s++ {
					st := model.Actor{
						ID:         draw.UUID(r),
						Name:       personName(r),
						GroupID:    cls.ID,
						Department: dept,
					}
					cls.StudentIDs = append(cls.StudentIDs, st.ID)
					ro.students = append(ro.students, st)
				}
				ro.reviewer[cls.ID] = fac.ID
				ro.classes = append(ro.classes, cls)
			}
		}
	}
	return ro, nil
}

// Students returns a fresh copy of the student actors in roster order.
func (ro *Roster) Students() []model.Actor {
	out := make([]model.Actor, len(ro.students))
	copy(out, ro.students)
	return out
}

// Classes returns the classes in roster order.
func (ro *Roster) Classes() []Class { return ro.classes }

// Faculty returns the faculty in roster order.
func (ro *Roster) Faculty() []Faculty { return ro.faculty }

// Reviewer returns the faculty member assigned to the actor's class.
func (ro *Roster) Reviewer(_ context.Context, actor *model.Actor) (string, error) {
	id, ok := ro.reviewer[actor.GroupID]
	if !ok {
		return "", fmt.Errorf("%w: actor %s class %q", ErrUnknownClass, actor.ID, actor.GroupID)
	}
	return id, nil
}

func personName(r *rand.Rand) string {
	return draw.Uniform(r, firstNames) + " " + draw.Uniform(r, lastNames)
}
