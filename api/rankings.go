package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/MargonDiego/padel-frontend/models"
	"golang.org/x/sync/errgroup"
)

func (c *Client) PlayerRankings(ctx context.Context, pageNum, limit int) ([]models.PlayerStat, error) {
	var stats []models.PlayerStat
	path := fmt.Sprintf("/rankings/players?page=%d&limit=%d", pageNum, limit)
	if err := c.do(ctx, http.MethodGet, path, nil, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

func (c *Client) TeamRankings(ctx context.Context, pageNum, limit int) ([]models.TeamStat, error) {
	var stats []models.TeamStat
	path := fmt.Sprintf("/rankings/teams?page=%d&limit=%d", pageNum, limit)
	if err := c.do(ctx, http.MethodGet, path, nil, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

func (c *Client) PlayerStats(ctx context.Context, playerID int) (models.PlayerStat, error) {
	var stat models.PlayerStat
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/stats/players/%d", playerID), nil, &stat); err != nil {
		return models.PlayerStat{}, err
	}
	return stat, nil
}

func (c *Client) TeamStats(ctx context.Context, teamID int) (models.TeamStat, error) {
	var stat models.TeamStat
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/stats/teams/%d", teamID), nil, &stat); err != nil {
		return models.TeamStat{}, err
	}
	return stat, nil
}

// Rankings holds both leaderboards for screens that show them side by side.
type Rankings struct {
	Players []models.PlayerStat
	Teams   []models.TeamStat
}

// FetchRankings loads the player and team leaderboards concurrently.
func (c *Client) FetchRankings(ctx context.Context, pageNum, limit int) (Rankings, error) {
	var r Rankings
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		players, err := c.PlayerRankings(gctx, pageNum, limit)
		r.Players = players
		return err
	})
	g.Go(func() error {
		teams, err := c.TeamRankings(gctx, pageNum, limit)
		r.Teams = teams
		return err
	})
	if err := g.Wait(); err != nil {
		return Rankings{}, err
	}
	return r, nil
}
