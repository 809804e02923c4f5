package console

import (
	"context"
	"fmt"

	"github.com/MargonDiego/padel-frontend/models"
)

func (a *App) cmdRankings(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.Out, "usage: padeladmin rankings <players|teams> [flags]")
		return errUsage
	}
	if err := a.requireSession(); err != nil {
		return err
	}

	sub, rest := args[0], args[1:]
	fs := a.newFlagSet("rankings " + sub)
	page := fs.Int("page", 1, "page number")
	limit := fs.Int("limit", 10, "page size")
	if err := fs.Parse(rest); err != nil {
		return err
	}

	switch sub {
	case "players":
		stats, err := a.Client.PlayerRankings(ctx, *page, *limit)
		if err != nil {
			return err
		}
		return a.printPlayerStats(stats)
	case "teams":
		stats, err := a.Client.TeamRankings(ctx, *page, *limit)
		if err != nil {
			return err
		}
		return a.printTeamStats(stats)
	}
	return fmt.Errorf("unknown rankings subcommand %q", sub)
}

func (a *App) cmdStats(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.Out, "usage: padeladmin stats <player|team> <id>")
		return errUsage
	}
	if err := a.requireSession(); err != nil {
		return err
	}

	sub, rest := args[0], args[1:]
	id, err := intArg(rest, sub+" id")
	if err != nil {
		return err
	}

	switch sub {
	case "player":
		stat, err := a.Client.PlayerStats(ctx, id)
		if err != nil {
			return err
		}
		return a.printPlayerStats([]models.PlayerStat{stat})
	case "team":
		stat, err := a.Client.TeamStats(ctx, id)
		if err != nil {
			return err
		}
		return a.printTeamStats([]models.TeamStat{stat})
	}
	return fmt.Errorf("unknown stats subcommand %q", sub)
}

// cmdOverview shows both leaderboards in one shot; the client fetches them
// concurrently.
func (a *App) cmdOverview(ctx context.Context, args []string) error {
	fs := a.newFlagSet("overview")
	limit := fs.Int("limit", 10, "rows per leaderboard")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.requireSession(); err != nil {
		return err
	}

	rankings, err := a.Client.FetchRankings(ctx, 1, *limit)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.Out, "Player rankings")
	if err := a.printPlayerStats(rankings.Players); err != nil {
		return err
	}
	fmt.Fprintln(a.Out, "\nTeam rankings")
	return a.printTeamStats(rankings.Teams)
}

func (a *App) printPlayerStats(stats []models.PlayerStat) error {
	w := a.tab()
	fmt.Fprintln(w, "PLAYER\tPLAYED\tWON\tLOST\tWIN%\tPOINTS")
	for _, s := range stats {
		name := fmt.Sprintf("player %d", s.PlayerID)
		if s.Player != nil {
			name = s.Player.Name
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%s\t%d\n",
			name, s.MatchesPlayed, s.MatchesWon, s.MatchesLost, s.WinRatio, s.RankingPoints)
	}
	return w.Flush()
}

func (a *App) printTeamStats(stats []models.TeamStat) error {
	w := a.tab()
	fmt.Fprintln(w, "TEAM\tPLAYED\tWON\tLOST\tWIN%\tPOINTS")
	for _, s := range stats {
		name := fmt.Sprintf("team %d", s.TeamID)
		if s.Team != nil {
			name = s.Team.Name
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%s\t%d\n",
			name, s.MatchesPlayed, s.MatchesWon, s.MatchesLost, s.WinRatio, s.RankingPoints)
	}
	return w.Flush()
}
