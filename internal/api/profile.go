package api

import (
	"context"
	"net/http"
)

// Profile is the account profile.
type Profile struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"emailVerified"`
	Career        string `json:"career,omitempty"`
	Semester      int    `json:"semester,omitempty"`
}

// ProfileInput is the payload for updating the account profile. Email changes
// go through their own verification flow and are not part of this call.
type ProfileInput struct {
	Name     string `json:"name"`
	Career   string `json:"career,omitempty"`
	Semester int    `json:"semester,omitempty"`
}

type profileData struct {
	Profile Profile `json:"profile"`
}

// Profile returns the account profile.
func (c *Client) Profile(ctx context.Context) (Profile, error) {
	var data profileData
	err := c.do(ctx, http.MethodGet, "/profile", nil, &data)
	return data.Profile, err
}

// UpdateProfile updates the account profile.
func (c *Client) UpdateProfile(ctx context.Context, input ProfileInput) (Profile, error) {
	var data profileData
	err := c.do(ctx, http.MethodPut, "/profile", input, &data)
	return data.Profile, err
}
