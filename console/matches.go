package console

import (
	"context"
	"fmt"
	"strings"

	"github.com/MargonDiego/padel-frontend/matchflow"
	"github.com/MargonDiego/padel-frontend/models"
	"github.com/MargonDiego/padel-frontend/scoring"
)

func (a *App) cmdMatches(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.Out, "usage: padeladmin matches <list|show|result> [flags]")
		return errUsage
	}
	if err := a.requireSession(); err != nil {
		return err
	}

	sub, rest := args[0], args[1:]
	switch sub {
	case "list":
		return a.matchesList(ctx, rest)
	case "show":
		return a.matchesShow(ctx, rest)
	case "result":
		return a.matchesResult(ctx, rest)
	}
	return fmt.Errorf("unknown matches subcommand %q", sub)
}

func (a *App) matchesList(ctx context.Context, args []string) error {
	fs := a.newFlagSet("matches list")
	page := fs.Int("page", 1, "page number")
	limit := fs.Int("limit", 10, "page size")
	tournament := fs.Int("tournament", 0, "filter by tournament id")
	status := fs.String("status", "", "filter by status")
	if err := fs.Parse(args); err != nil {
		return err
	}
	filter := models.MatchStatus(*status)
	if filter != "" && !filter.Valid() {
		return fmt.Errorf("unknown match status %q", filter)
	}

	matches, meta, err := a.Client.ListMatches(ctx, *page, *limit, *tournament, filter)
	if err != nil {
		return err
	}
	if err := a.printMatches(matches); err != nil {
		return err
	}
	fmt.Fprintf(a.Out, "page %d of %d (%d total)\n", meta.CurrentPage, meta.LastPage, meta.Total)
	return nil
}

func (a *App) matchesShow(ctx context.Context, args []string) error {
	id, err := intArg(args, "match id")
	if err != nil {
		return err
	}
	m, err := a.Client.GetMatch(ctx, id)
	if err != nil {
		return err
	}

	w := a.tab()
	fmt.Fprintf(w, "id\t%d\n", m.ID)
	fmt.Fprintf(w, "tournament\t%d\n", m.TournamentID)
	fmt.Fprintf(w, "round\t%d, match %d\n", m.Round, m.MatchNumber)
	fmt.Fprintf(w, "teams\t%s vs %s\n", matchTeamName(m.Team1, m.Team1ID), matchTeamName(m.Team2, m.Team2ID))
	fmt.Fprintf(w, "status\t%s\n", m.Status)
	if m.Team1Score != nil && m.Team2Score != nil {
		fmt.Fprintf(w, "sets\t%d-%d\n", *m.Team1Score, *m.Team2Score)
	}
	if len(m.SetResults) > 0 {
		fmt.Fprintf(w, "set scores\t%s\n", formatSets(m.SetResults))
	}
	if m.WinnerID != nil {
		fmt.Fprintf(w, "winner\t%s\n", matchTeamName(m.Winner, *m.WinnerID))
	}
	if m.CompletedAt != nil {
		fmt.Fprintf(w, "completed\t%s\n", *m.CompletedAt)
	}
	return w.Flush()
}

// matchesResult plans a submission from the entered set scores before any
// network call: validation failures surface here and nothing is sent.
func (a *App) matchesResult(ctx context.Context, args []string) error {
	fs := a.newFlagSet("matches result")
	status := fs.String("status", string(models.MatchCompleted), "target status: completed, in_progress, scheduled, cancelled")
	extend := fs.Bool("append", false, "keep the match's recorded set scores and add the -set values after them")
	var sets setEntries
	fs.Var(&sets, "set", "one set score as team1-team2, e.g. 6-3; repeat per set, leave a side blank for an unfinished set (6-)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := intArg(fs.Args(), "match id")
	if err != nil {
		return err
	}

	target := models.MatchStatus(*status)
	m, err := a.Client.GetMatch(ctx, id)
	if err != nil {
		return err
	}
	if *extend {
		sets = append(scoring.EntriesFromResults(m.SetResults), sets...)
	}

	sub, err := matchflow.Plan(m, target, sets)
	if err != nil {
		return err
	}
	if err := matchflow.Submit(ctx, a.Client, &m, sub); err != nil {
		return fmt.Errorf("submit result: %w", err)
	}

	switch sub.Kind {
	case matchflow.Finalize:
		fmt.Fprintf(a.Out, "match %d finalized, winner team %d (%d-%d)\n",
			m.ID, deref(m.WinnerID), deref(m.Team1Score), deref(m.Team2Score))
	default:
		fmt.Fprintf(a.Out, "match %d updated to %s\n", m.ID, m.Status)
	}
	return nil
}

func (a *App) printMatches(matches []models.Match) error {
	w := a.tab()
	fmt.Fprintln(w, "ID\tROUND\tTEAMS\tSTATUS\tSETS\tWINNER")
	for _, m := range matches {
		sets := "-"
		if m.Team1Score != nil && m.Team2Score != nil {
			sets = fmt.Sprintf("%d-%d", *m.Team1Score, *m.Team2Score)
		}
		winner := "-"
		if m.WinnerID != nil {
			winner = matchTeamName(m.Winner, *m.WinnerID)
		}
		fmt.Fprintf(w, "%d\tR%d M%d\t%s vs %s\t%s\t%s\t%s\n",
			m.ID, m.Round, m.MatchNumber,
			matchTeamName(m.Team1, m.Team1ID), matchTeamName(m.Team2, m.Team2ID),
			m.Status, sets, winner)
	}
	return w.Flush()
}

func matchTeamName(t *models.Team, id int) string {
	if t != nil && t.Name != "" {
		return t.Name
	}
	return fmt.Sprintf("team %d", id)
}

func formatSets(results models.SetResults) string {
	parts := make([]string, len(results))
	for i, r := range results {
		parts[i] = fmt.Sprintf("%d-%d", r.Team1, r.Team2)
	}
	return strings.Join(parts, ", ")
}

// setEntries collects repeated -set flags as raw score entries. A blank side
// ("6-") stays blank, matching a set still being played.
type setEntries []scoring.SetEntry

func (s *setEntries) String() string {
	parts := make([]string, len(*s))
	for i, e := range *s {
		parts[i] = e.Team1 + "-" + e.Team2
	}
	return strings.Join(parts, ",")
}

func (s *setEntries) Set(value string) error {
	team1, team2, ok := strings.Cut(value, "-")
	if !ok {
		return fmt.Errorf("set score %q must look like 6-3", value)
	}
	*s = append(*s, scoring.SetEntry{
		Team1: strings.TrimSpace(team1),
		Team2: strings.TrimSpace(team2),
	})
	return nil
}
