package api

import (
	"context"
	"net/http"

	"github.com/MargonDiego/padel-frontend/models"
)

// ProfileUpdateInput is the partial profile update as the wire expects it:
// snake_case field names, every field optional.
type ProfileUpdateInput struct {
	Name            *string `json:"name,omitempty"`
	Email           *string `json:"email,omitempty"`
	Phone           *string `json:"phone,omitempty"`
	Level           *string `json:"level,omitempty"`
	PlayingHand     *string `json:"playing_hand,omitempty"`
	PlayingPosition *string `json:"playing_position,omitempty"`
	FavoriteRacket  *string `json:"favorite_racket,omitempty"`
	ExperienceYears *int    `json:"experience_years,omitempty"`
	HeightCm        *int    `json:"height_cm,omitempty"`
	WeightKg        *int    `json:"weight_kg,omitempty"`
	City            *string `json:"city,omitempty"`
	Country         *string `json:"country,omitempty"`
}

// profileResponse is the snake_case shape the profile endpoint echoes back.
type profileResponse struct {
	Name            string  `json:"name"`
	Email           string  `json:"email,omitempty"`
	Phone           *string `json:"phone,omitempty"`
	Level           *string `json:"level,omitempty"`
	PlayingHand     *string `json:"playing_hand,omitempty"`
	PlayingPosition *string `json:"playing_position,omitempty"`
	FavoriteRacket  *string `json:"favorite_racket,omitempty"`
	ExperienceYears *int    `json:"experience_years,omitempty"`
	HeightCm        *int    `json:"height_cm,omitempty"`
	WeightKg        *int    `json:"weight_kg,omitempty"`
	City            *string `json:"city,omitempty"`
	Country         *string `json:"country,omitempty"`
}

// UpdateProfile sends a partial profile update and merges the echoed fields
// into current. Fields absent from the response keep their local value, so a
// sparse echo never drops profile data. The merged user is persisted to the
// session and returned.
func (c *Client) UpdateProfile(ctx context.Context, current models.User, input ProfileUpdateInput) (models.User, error) {
	var resp profileResponse
	if err := c.do(ctx, http.MethodPut, "/profile", input, &resp); err != nil {
		return models.User{}, err
	}

	merged := mergeProfile(current, resp)
	if c.sessions != nil {
		if err := c.sessions.SetUser(merged); err != nil {
			return models.User{}, err
		}
	}
	return merged, nil
}

// mergeProfile maps the wire's snake_case fields onto the camelCase local
// user, keeping the local value wherever the response is silent.
func mergeProfile(u models.User, p profileResponse) models.User {
	if p.Name != "" {
		u.Name = p.Name
	}
	if p.Email != "" {
		u.Email = p.Email
	}
	if p.Phone != nil {
		u.Phone = p.Phone
	}
	if p.Level != nil {
		u.PlayerLevel = p.Level
	}
	if p.PlayingHand != nil {
		u.DominantHand = p.PlayingHand
	}
	if p.PlayingPosition != nil {
		u.PlayingPosition = p.PlayingPosition
	}
	if p.FavoriteRacket != nil {
		u.FavoriteRacket = p.FavoriteRacket
	}
	if p.ExperienceYears != nil {
		u.ExperienceYears = p.ExperienceYears
	}
	if p.HeightCm != nil {
		u.HeightCm = p.HeightCm
	}
	if p.WeightKg != nil {
		u.WeightKg = p.WeightKg
	}
	if p.City != nil {
		u.City = p.City
	}
	if p.Country != nil {
		u.Country = p.Country
	}
	return u
}
