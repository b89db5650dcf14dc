// Package curriculum builds study-plan curriculum graphs in memory: cycles
// containing periods containing courses, with prerequisite and corequisite
// references between courses by code.
//
// The builder mirrors the plan-creation wizard: the graph is assembled
// incrementally, validated as a whole, and persisted in a single create call.
// Validation checks that references resolve and codes are unique; it does not
// detect requisite cycles or check schedulability, matching the backend
// contract.
package curriculum

import (
	"context"
	"errors"
	"fmt"

	"github.com/SINO-Proyect/sino-cli/internal/api"
)

// Builder assembles a study-plan curriculum graph.
type Builder struct {
	name   string
	career string
	cycles []*Cycle
}

// Cycle is an ordered group of periods (typically an academic year).
type Cycle struct {
	name    string
	periods []*Period
}

// Period is an ordered group of courses (typically a semester).
type Period struct {
	name    string
	courses []*Course
}

// Course is one course of the plan under construction.
type Course struct {
	code          string
	name          string
	credits       int
	prerequisites []string
	corequisites  []string
}

// NewBuilder starts an empty plan with the given name.
func NewBuilder(name string) *Builder {
	return &Builder{name: name}
}

// FromInput reconstructs a Builder from a decoded plan payload, so plans
// loaded from files run through the same validation as wizard-assembled ones.
func FromInput(input api.StudyPlanInput) *Builder {
	b := NewBuilder(input.Name).SetCareer(input.Career)
	for _, inCycle := range input.Cycles {
		cycle := b.AddCycle(inCycle.Name)
		for _, inPeriod := range inCycle.Periods {
			period := cycle.AddPeriod(inPeriod.Name)
			for _, inCourse := range inPeriod.Courses {
				course := period.AddCourse(inCourse.Code, inCourse.Name, inCourse.Credits)
				for _, ref := range inCourse.Prerequisites {
					course.Prerequisite(ref)
				}
				for _, ref := range inCourse.Corequisites {
					course.Corequisite(ref)
				}
			}
		}
	}
	return b
}

// SetCareer sets the career/degree the plan belongs to.
func (b *Builder) SetCareer(career string) *Builder {
	b.career = career
	return b
}

// AddCycle appends a cycle and returns it for population.
func (b *Builder) AddCycle(name string) *Cycle {
	cycle := &Cycle{name: name}
	b.cycles = append(b.cycles, cycle)
	return cycle
}

// RemoveCycle deletes the cycle at index i, keeping order. Out-of-range
// indices are ignored.
func (b *Builder) RemoveCycle(i int) {
	if i < 0 || i >= len(b.cycles) {
		return
	}
	b.cycles = append(b.cycles[:i], b.cycles[i+1:]...)
}

// AddPeriod appends a period to the cycle and returns it for population.
func (c *Cycle) AddPeriod(name string) *Period {
	period := &Period{name: name}
	c.periods = append(c.periods, period)
	return period
}

// RemovePeriod deletes the period at index i, keeping order. Out-of-range
// indices are ignored.
func (c *Cycle) RemovePeriod(i int) {
	if i < 0 || i >= len(c.periods) {
		return
	}
	c.periods = append(c.periods[:i], c.periods[i+1:]...)
}

// AddCourse appends a course to the period and returns it so requisites can
// be attached.
func (p *Period) AddCourse(code, name string, credits int) *Course {
	course := &Course{code: code, name: name, credits: credits}
	p.courses = append(p.courses, course)
	return course
}

// RemoveCourse deletes the course with the given code from the period.
// Requisite references other courses hold to it are left dangling and
// reported by Validate.
func (p *Period) RemoveCourse(code string) {
	for i, course := range p.courses {
		if course.code == code {
			p.courses = append(p.courses[:i], p.courses[i+1:]...)
			return
		}
	}
}

// Prerequisite records that the course requires another course, referenced
// by code, to have been taken before.
func (c *Course) Prerequisite(code string) *Course {
	c.prerequisites = append(c.prerequisites, code)
	return c
}

// Corequisite records that the course must be taken together with another
// course, referenced by code.
func (c *Course) Corequisite(code string) *Course {
	c.corequisites = append(c.corequisites, code)
	return c
}

// Validate checks the assembled graph: non-empty plan and course fields,
// unique course codes across the whole plan, and requisite references that
// resolve to courses of the plan (a course cannot reference itself).
func (b *Builder) Validate() error {
	var errs []error

	if b.name == "" {
		errs = append(errs, errors.New("plan name is empty"))
	}
	if len(b.cycles) == 0 {
		errs = append(errs, errors.New("plan has no cycles"))
	}

	codes := make(map[string]bool)
	for ci, cycle := range b.cycles {
		if cycle.name == "" {
			errs = append(errs, fmt.Errorf("cycle %d: name is empty", ci+1))
		}
		for pi, period := range cycle.periods {
			if period.name == "" {
				errs = append(errs, fmt.Errorf("cycle %d period %d: name is empty", ci+1, pi+1))
			}
			for _, course := range period.courses {
				if course.code == "" {
					errs = append(errs, fmt.Errorf("cycle %d period %d: course code is empty", ci+1, pi+1))
					continue
				}
				if course.name == "" {
					errs = append(errs, fmt.Errorf("course %s: name is empty", course.code))
				}
				if course.credits < 0 {
					errs = append(errs, fmt.Errorf("course %s: negative credits", course.code))
				}
				if codes[course.code] {
					errs = append(errs, fmt.Errorf("course %s: duplicate code", course.code))
				}
				codes[course.code] = true
			}
		}
	}

	for _, cycle := range b.cycles {
		for _, period := range cycle.periods {
			for _, course := range period.courses {
				for _, ref := range course.prerequisites {
					if err := checkReference(codes, course.code, ref, "prerequisite"); err != nil {
						errs = append(errs, err)
					}
				}
				for _, ref := range course.corequisites {
					if err := checkReference(codes, course.code, ref, "corequisite"); err != nil {
						errs = append(errs, err)
					}
				}
			}
		}
	}

	return errors.Join(errs...)
}

func checkReference(codes map[string]bool, from, to, kind string) error {
	if to == from {
		return fmt.Errorf("course %s: %s references itself", from, kind)
	}
	if !codes[to] {
		return fmt.Errorf("course %s: %s %s is not part of the plan", from, kind, to)
	}
	return nil
}

// Build validates the graph and produces the create payload.
func (b *Builder) Build() (api.StudyPlanInput, error) {
	if err := b.Validate(); err != nil {
		return api.StudyPlanInput{}, fmt.Errorf("invalid curriculum: %w", err)
	}

	input := api.StudyPlanInput{
		Name:   b.name,
		Career: b.career,
		Cycles: make([]api.PlanCycle, 0, len(b.cycles)),
	}
	for _, cycle := range b.cycles {
		outCycle := api.PlanCycle{
			Name:    cycle.name,
			Periods: make([]api.PlanPeriod, 0, len(cycle.periods)),
		}
		for _, period := range cycle.periods {
			outPeriod := api.PlanPeriod{
				Name:    period.name,
				Courses: make([]api.PlanCourse, 0, len(period.courses)),
			}
			for _, course := range period.courses {
				outPeriod.Courses = append(outPeriod.Courses, api.PlanCourse{
					Code:          course.code,
					Name:          course.name,
					Credits:       course.credits,
					Prerequisites: course.prerequisites,
					Corequisites:  course.corequisites,
				})
			}
			outCycle.Periods = append(outCycle.Periods, outPeriod)
		}
		input.Cycles = append(input.Cycles, outCycle)
	}

	return input, nil
}

// Submit builds the plan and persists it with a single create call. There is
// no partial persistence: either the whole graph is stored or nothing is.
func (b *Builder) Submit(ctx context.Context, client *api.Client) (api.StudyPlan, error) {
	input, err := b.Build()
	if err != nil {
		return api.StudyPlan{}, err
	}
	return client.CreateStudyPlan(ctx, input)
}
