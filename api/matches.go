package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/MargonDiego/padel-frontend/models"
)

// MatchResultInput is the finalizing write: it records the outcome, stamps
// completion and lets the backend run its ranking side effects. Status is
// always completed and a winner is mandatory.
type MatchResultInput struct {
	Status     models.MatchStatus `json:"status"`
	Team1Score int                `json:"team1Score"`
	Team2Score int                `json:"team2Score"`
	SetResults []models.SetResult `json:"setResults"`
	WinnerID   int                `json:"winnerId"`
}

// MatchUpdateInput is the partial write: only populated fields change and
// nothing is finalized.
type MatchUpdateInput struct {
	Status     *models.MatchStatus `json:"status,omitempty"`
	Team1Score *int                `json:"team1Score,omitempty"`
	Team2Score *int                `json:"team2Score,omitempty"`
	SetResults []models.SetResult  `json:"setResults,omitempty"`
	WinnerID   *int                `json:"winnerId,omitempty"`
}

func (c *Client) ListMatches(ctx context.Context, pageNum, limit, tournamentID int, status models.MatchStatus) ([]models.Match, Meta, error) {
	q := url.Values{}
	q.Set("page", fmt.Sprint(pageNum))
	q.Set("limit", fmt.Sprint(limit))
	if tournamentID > 0 {
		q.Set("tournament_id", fmt.Sprint(tournamentID))
	}
	if status != "" {
		q.Set("status", string(status))
	}
	var matches []models.Match
	meta, err := c.doPaginated(ctx, "/matches?"+q.Encode(), &matches)
	if err != nil {
		return nil, Meta{}, err
	}
	return matches, meta, nil
}

func (c *Client) GetMatch(ctx context.Context, id int) (models.Match, error) {
	var m models.Match
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/matches/%d", id), nil, &m); err != nil {
		return models.Match{}, err
	}
	return m, nil
}

func (c *Client) RegisterResult(ctx context.Context, id int, input MatchResultInput) (models.Match, error) {
	var m models.Match
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/matches/%d/result", id), input, &m); err != nil {
		return models.Match{}, err
	}
	return m, nil
}

func (c *Client) UpdateMatch(ctx context.Context, id int, input MatchUpdateInput) (models.Match, error) {
	var m models.Match
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/matches/%d/update", id), input, &m); err != nil {
		return models.Match{}, err
	}
	return m, nil
}
