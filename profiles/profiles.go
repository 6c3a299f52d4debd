// Package profiles is a small HTTP service for sharing calibration
// profiles between machines, plus the client the host tools use to talk
// to it.
package profiles

import (
	"context"
	"errors"
	"net/http"

	"github.com/calvinmclean/babyapi"

	"github.com/calvinmclean/stickkeys/joystick"
)

// Profile is one named calibration, stored and served by the API.
type Profile struct {
	babyapi.DefaultResource

	Name        string
	Calibration joystick.Calibration
}

func (p *Profile) Bind(r *http.Request) error {
	if err := p.DefaultResource.Bind(r); err != nil {
		return err
	}

	switch r.Method {
	case http.MethodPost, http.MethodPut:
		if p.Name == "" {
			return errors.New("missing required Name field")
		}
		if err := p.Calibration.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// NewAPI creates the profile server API.
func NewAPI() *babyapi.API[*Profile] {
	return babyapi.NewAPI("Profiles", "/profiles", func() *Profile { return &Profile{} })
}

// Client wraps the generated API client with calibration-level helpers.
type Client struct {
	client *babyapi.Client[*Profile]
}

func NewClient(addr string) *Client {
	return &Client{client: babyapi.NewClient[*Profile](addr, "/profiles")}
}

// Push uploads a named calibration and returns its server-assigned ID.
func (c *Client) Push(ctx context.Context, name string, cal joystick.Calibration) (string, error) {
	resp, err := c.client.Post(ctx, &Profile{Name: name, Calibration: cal})
	if err != nil {
		return "", err
	}
	return resp.Data.GetID(), nil
}

// Fetch downloads one profile by ID.
func (c *Client) Fetch(ctx context.Context, id string) (*Profile, error) {
	resp, err := c.client.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// All lists every profile on the server.
func (c *Client) All(ctx context.Context) ([]*Profile, error) {
	resp, err := c.client.Search(ctx, "")
	if err != nil {
		return nil, err
	}
	return resp.Data.Items, nil
}
