package api

import (
	"context"
	"net/http"
	"net/url"
)

// Course is an enrolled course of the current term, independent of the
// study-plan curriculum.
type Course struct {
	ID       string `json:"id"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	Credits  int    `json:"credits"`
	Schedule string `json:"schedule,omitempty"`
}

// CourseInput is the payload for creating or updating an enrolled course.
type CourseInput struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Credits  int    `json:"credits"`
	Schedule string `json:"schedule,omitempty"`
}

type coursesData struct {
	Courses []Course `json:"courses"`
}

type courseData struct {
	Course Course `json:"course"`
}

func courseRoute(id string) string {
	return "/courses/" + url.PathEscape(id)
}

// ListCourses returns the caller's enrolled courses.
func (c *Client) ListCourses(ctx context.Context) ([]Course, error) {
	var data coursesData
	if err := c.do(ctx, http.MethodGet, "/courses", nil, &data); err != nil {
		return nil, err
	}
	return data.Courses, nil
}

// CreateCourse enrolls a course.
func (c *Client) CreateCourse(ctx context.Context, input CourseInput) (Course, error) {
	var data courseData
	err := c.do(ctx, http.MethodPost, "/courses", input, &data)
	return data.Course, err
}

// UpdateCourse updates an enrolled course.
func (c *Client) UpdateCourse(ctx context.Context, id string, input CourseInput) (Course, error) {
	var data courseData
	err := c.do(ctx, http.MethodPut, courseRoute(id), input, &data)
	return data.Course, err
}

// DeleteCourse removes an enrolled course.
func (c *Client) DeleteCourse(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, courseRoute(id), nil, nil)
}
