package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/MargonDiego/padel-frontend/models"
)

type TournamentCreateInput struct {
	Name        string                  `json:"name"`
	Description *string                 `json:"description,omitempty"`
	StartDate   string                  `json:"startDate"`
	EndDate     string                  `json:"endDate"`
	Format      models.TournamentFormat `json:"format"`
	MaxTeams    *int                    `json:"maxTeams,omitempty"`
	Location    *string                 `json:"location,omitempty"`
}

type TournamentUpdateInput struct {
	Name        *string                  `json:"name,omitempty"`
	Description *string                  `json:"description,omitempty"`
	StartDate   *string                  `json:"startDate,omitempty"`
	EndDate     *string                  `json:"endDate,omitempty"`
	Format      *models.TournamentFormat `json:"format,omitempty"`
	MaxTeams    *int                     `json:"maxTeams,omitempty"`
	Location    *string                  `json:"location,omitempty"`
	Status      *models.TournamentStatus `json:"status,omitempty"`
}

// TournamentDetail is the detail payload: the tournament plus its generated
// matches, when any exist.
type TournamentDetail struct {
	Tournament models.Tournament `json:"tournament"`
	Matches    []models.Match    `json:"matches"`
}

func (c *Client) ListTournaments(ctx context.Context, pageNum, limit int, status models.TournamentStatus) ([]models.Tournament, Meta, error) {
	q := url.Values{}
	q.Set("page", fmt.Sprint(pageNum))
	q.Set("limit", fmt.Sprint(limit))
	if status != "" {
		q.Set("status", string(status))
	}
	var tournaments []models.Tournament
	meta, err := c.doPaginated(ctx, "/tournaments?"+q.Encode(), &tournaments)
	if err != nil {
		return nil, Meta{}, err
	}
	return tournaments, meta, nil
}

func (c *Client) GetTournament(ctx context.Context, id int) (TournamentDetail, error) {
	var detail TournamentDetail
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/tournaments/%d", id), nil, &detail); err != nil {
		return TournamentDetail{}, err
	}
	return detail, nil
}

func (c *Client) CreateTournament(ctx context.Context, input TournamentCreateInput) (models.Tournament, error) {
	var t models.Tournament
	if err := c.do(ctx, http.MethodPost, "/tournaments", input, &t); err != nil {
		return models.Tournament{}, err
	}
	return t, nil
}

func (c *Client) UpdateTournament(ctx context.Context, id int, input TournamentUpdateInput) (models.Tournament, error) {
	var t models.Tournament
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/tournaments/%d", id), input, &t); err != nil {
		return models.Tournament{}, err
	}
	return t, nil
}

func (c *Client) DeleteTournament(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/tournaments/%d", id), nil, nil)
}

// OpenRegistration moves a draft tournament to open.
func (c *Client) OpenRegistration(ctx context.Context, id int) (models.Tournament, error) {
	var t models.Tournament
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/tournaments/%d/open", id), nil, &t); err != nil {
		return models.Tournament{}, err
	}
	return t, nil
}

// GenerateBrackets starts the tournament. The response carries the generated
// match set, which must replace the caller's local match collection.
func (c *Client) GenerateBrackets(ctx context.Context, id int) (TournamentDetail, error) {
	var detail TournamentDetail
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/tournaments/%d/brackets", id), nil, &detail); err != nil {
		return TournamentDetail{}, err
	}
	return detail, nil
}

func (c *Client) RegisterTeam(ctx context.Context, tournamentID, teamID int) error {
	body := struct {
		TeamID int `json:"teamId"`
	}{TeamID: teamID}
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/tournaments/%d/register", tournamentID), body, nil)
}

func (c *Client) UnregisterTeam(ctx context.Context, tournamentID, teamID int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/tournaments/%d/teams/%d", tournamentID, teamID), nil, nil)
}

func (c *Client) RegisteredTeams(ctx context.Context, tournamentID int) ([]models.Team, error) {
	var teams []models.Team
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/tournaments/%d/teams", tournamentID), nil, &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

// AssignSeed sets a registered team's bracket seed. Seed uniqueness is the
// backend's concern; nothing is validated here.
func (c *Client) AssignSeed(ctx context.Context, tournamentID, teamID, seed int) error {
	body := struct {
		TeamID int `json:"teamId"`
		Seed   int `json:"seed"`
	}{TeamID: teamID, Seed: seed}
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/tournaments/%d/seed", tournamentID), body, nil)
}
