package api

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// Event is a calendar entry (class, exam, deadline), optionally linked to an
// enrolled course by code.
type Event struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Notes      string    `json:"notes,omitempty"`
	CourseCode string    `json:"courseCode,omitempty"`
	StartsAt   time.Time `json:"startsAt"`
	EndsAt     time.Time `json:"endsAt"`
}

// EventInput is the payload for creating or updating a calendar event.
type EventInput struct {
	Title      string    `json:"title"`
	Notes      string    `json:"notes,omitempty"`
	CourseCode string    `json:"courseCode,omitempty"`
	StartsAt   time.Time `json:"startsAt"`
	EndsAt     time.Time `json:"endsAt"`
}

type eventsData struct {
	Events []Event `json:"events"`
}

type eventData struct {
	Event Event `json:"event"`
}

func eventRoute(id string) string {
	return "/events/" + url.PathEscape(id)
}

// ListEvents returns calendar events inside the [from, to) window.
func (c *Client) ListEvents(ctx context.Context, from, to time.Time) ([]Event, error) {
	query := url.Values{}
	query.Set("from", from.Format(time.RFC3339))
	query.Set("to", to.Format(time.RFC3339))

	var data eventsData
	if err := c.do(ctx, http.MethodGet, "/events?"+query.Encode(), nil, &data); err != nil {
		return nil, err
	}
	return data.Events, nil
}

// CreateEvent adds a calendar event.
func (c *Client) CreateEvent(ctx context.Context, input EventInput) (Event, error) {
	var data eventData
	err := c.do(ctx, http.MethodPost, "/events", input, &data)
	return data.Event, err
}

// UpdateEvent updates a calendar event.
func (c *Client) UpdateEvent(ctx context.Context, id string, input EventInput) (Event, error) {
	var data eventData
	err := c.do(ctx, http.MethodPut, eventRoute(id), input, &data)
	return data.Event, err
}

// DeleteEvent removes a calendar event.
func (c *Client) DeleteEvent(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, eventRoute(id), nil, nil)
}
