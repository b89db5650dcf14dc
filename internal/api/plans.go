package api

import (
	"context"
	"net/http"
	"net/url"
)

// PlanCourse is one course inside a study-plan period. Prerequisites and
// corequisites reference other courses of the same plan by code.
type PlanCourse struct {
	Code          string   `json:"code"`
	Name          string   `json:"name"`
	Credits       int      `json:"credits"`
	Prerequisites []string `json:"prerequisites,omitempty"`
	Corequisites  []string `json:"corequisites,omitempty"`
}

// PlanPeriod is an ordered group of courses within a cycle (e.g. a semester).
type PlanPeriod struct {
	Name    string       `json:"name"`
	Courses []PlanCourse `json:"courses"`
}

// PlanCycle is an ordered group of periods (e.g. an academic year).
type PlanCycle struct {
	Name    string       `json:"name"`
	Periods []PlanPeriod `json:"periods"`
}

// StudyPlanInput is the payload for creating or replacing a study plan.
type StudyPlanInput struct {
	Name   string      `json:"name"`
	Career string      `json:"career,omitempty"`
	Cycles []PlanCycle `json:"cycles"`
}

// StudyPlan is a stored study plan.
type StudyPlan struct {
	ID     string      `json:"id"`
	Name   string      `json:"name"`
	Career string      `json:"career,omitempty"`
	Cycles []PlanCycle `json:"cycles,omitempty"`
}

type plansData struct {
	Plans []StudyPlan `json:"plans"`
}

type planData struct {
	Plan StudyPlan `json:"plan"`
}

func planRoute(id string) string {
	return "/study-plans/" + url.PathEscape(id)
}

// ListStudyPlans returns the caller's study plans without their cycles.
func (c *Client) ListStudyPlans(ctx context.Context) ([]StudyPlan, error) {
	var data plansData
	if err := c.do(ctx, http.MethodGet, "/study-plans", nil, &data); err != nil {
		return nil, err
	}
	return data.Plans, nil
}

// GetStudyPlan returns one study plan including its full curriculum graph.
func (c *Client) GetStudyPlan(ctx context.Context, id string) (StudyPlan, error) {
	var data planData
	err := c.do(ctx, http.MethodGet, planRoute(id), nil, &data)
	return data.Plan, err
}

// CreateStudyPlan stores a new study plan in a single call.
func (c *Client) CreateStudyPlan(ctx context.Context, input StudyPlanInput) (StudyPlan, error) {
	var data planData
	err := c.do(ctx, http.MethodPost, "/study-plans", input, &data)
	return data.Plan, err
}

// UpdateStudyPlan replaces an existing study plan.
func (c *Client) UpdateStudyPlan(ctx context.Context, id string, input StudyPlanInput) (StudyPlan, error) {
	var data planData
	err := c.do(ctx, http.MethodPut, planRoute(id), input, &data)
	return data.Plan, err
}

// DeleteStudyPlan removes a study plan.
func (c *Client) DeleteStudyPlan(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, planRoute(id), nil, nil)
}
