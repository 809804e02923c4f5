package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/MargonDiego/padel-frontend/models"
)

type TeamCreateInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Player2ID   int     `json:"player2Id"`
}

type TeamUpdateInput struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// TeamDetail is the team plus its recent match history.
type TeamDetail struct {
	Team          models.Team    `json:"team"`
	RecentMatches []models.Match `json:"recentMatches"`
}

func (c *Client) ListTeams(ctx context.Context, pageNum, limit int) ([]models.Team, Meta, error) {
	var teams []models.Team
	meta, err := c.doPaginated(ctx, fmt.Sprintf("/teams?page=%d&limit=%d", pageNum, limit), &teams)
	if err != nil {
		return nil, Meta{}, err
	}
	return teams, meta, nil
}

// MyTeams lists the teams the authenticated user plays in.
func (c *Client) MyTeams(ctx context.Context, pageNum, limit int) ([]models.Team, Meta, error) {
	var teams []models.Team
	meta, err := c.doPaginated(ctx, fmt.Sprintf("/my-teams?page=%d&limit=%d", pageNum, limit), &teams)
	if err != nil {
		return nil, Meta{}, err
	}
	return teams, meta, nil
}

func (c *Client) GetTeam(ctx context.Context, id int) (TeamDetail, error) {
	var detail TeamDetail
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/teams/%d", id), nil, &detail); err != nil {
		return TeamDetail{}, err
	}
	return detail, nil
}

func (c *Client) CreateTeam(ctx context.Context, input TeamCreateInput) (models.Team, error) {
	var t models.Team
	if err := c.do(ctx, http.MethodPost, "/teams", input, &t); err != nil {
		return models.Team{}, err
	}
	return t, nil
}

func (c *Client) UpdateTeam(ctx context.Context, id int, input TeamUpdateInput) (models.Team, error) {
	var t models.Team
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/teams/%d", id), input, &t); err != nil {
		return models.Team{}, err
	}
	return t, nil
}

func (c *Client) DeleteTeam(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/teams/%d", id), nil, nil)
}
