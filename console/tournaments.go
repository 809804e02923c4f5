package console

import (
	"context"
	"fmt"
	"strconv"

	"github.com/MargonDiego/padel-frontend/api"
	"github.com/MargonDiego/padel-frontend/lifecycle"
	"github.com/MargonDiego/padel-frontend/models"
)

func (a *App) cmdTournaments(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.Out, "usage: padeladmin tournaments <list|show|create|update|delete|open|start|complete|register-team|unregister-team|teams|seed> [flags]")
		return errUsage
	}
	if err := a.requireSession(); err != nil {
		return err
	}

	sub, rest := args[0], args[1:]
	switch sub {
	case "list":
		return a.tournamentsList(ctx, rest)
	case "show":
		return a.tournamentsShow(ctx, rest)
	case "create":
		return a.tournamentsCreate(ctx, rest)
	case "update":
		return a.tournamentsUpdate(ctx, rest)
	case "delete":
		return a.tournamentsDelete(ctx, rest)
	case "open":
		return a.tournamentsTransition(ctx, rest, lifecycle.ActionOpenRegistration)
	case "start":
		return a.tournamentsTransition(ctx, rest, lifecycle.ActionStart)
	case "complete":
		return a.tournamentsTransition(ctx, rest, lifecycle.ActionComplete)
	case "register-team":
		return a.tournamentsRegisterTeam(ctx, rest)
	case "unregister-team":
		return a.tournamentsUnregisterTeam(ctx, rest)
	case "teams":
		return a.tournamentsTeams(ctx, rest)
	case "seed":
		return a.tournamentsSeed(ctx, rest)
	}
	return fmt.Errorf("unknown tournaments subcommand %q", sub)
}

func (a *App) tournamentsList(ctx context.Context, args []string) error {
	fs := a.newFlagSet("tournaments list")
	page := fs.Int("page", 1, "page number")
	limit := fs.Int("limit", 10, "page size")
	status := fs.String("status", "", "filter by status: draft, open, in_progress, completed")
	if err := fs.Parse(args); err != nil {
		return err
	}
	filter := models.TournamentStatus(*status)
	if filter != "" && !filter.Valid() {
		return fmt.Errorf("unknown tournament status %q", filter)
	}

	tournaments, meta, err := a.Client.ListTournaments(ctx, *page, *limit, filter)
	if err != nil {
		return err
	}
	w := a.tab()
	fmt.Fprintln(w, "ID\tNAME\tSTATUS\tFORMAT\tSTART\tACTIONS")
	user := a.Session.User()
	for _, t := range tournaments {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			t.ID, t.Name, t.Status, t.Format, t.StartDate,
			joinActions(lifecycle.AvailableActions(t, user)))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(a.Out, "page %d of %d (%d total)\n", meta.CurrentPage, meta.LastPage, meta.Total)
	return nil
}

func (a *App) tournamentsShow(ctx context.Context, args []string) error {
	id, err := intArg(args, "tournament id")
	if err != nil {
		return err
	}
	detail, err := a.Client.GetTournament(ctx, id)
	if err != nil {
		return err
	}
	t := detail.Tournament

	w := a.tab()
	fmt.Fprintf(w, "id\t%d\n", t.ID)
	fmt.Fprintf(w, "name\t%s\n", t.Name)
	fmt.Fprintf(w, "status\t%s\n", t.Status)
	fmt.Fprintf(w, "format\t%s\n", t.Format)
	fmt.Fprintf(w, "dates\t%s to %s\n", t.StartDate, t.EndDate)
	if t.Location != nil {
		fmt.Fprintf(w, "location\t%s\n", *t.Location)
	}
	if t.MaxTeams != nil {
		fmt.Fprintf(w, "max teams\t%d\n", *t.MaxTeams)
	}
	if actions := lifecycle.AvailableActions(t, a.Session.User()); len(actions) > 0 {
		fmt.Fprintf(w, "actions\t%s\n", joinActions(actions))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(detail.Matches) > 0 {
		fmt.Fprintln(a.Out)
		return a.printMatches(detail.Matches)
	}
	return nil
}

func (a *App) tournamentsCreate(ctx context.Context, args []string) error {
	fs := a.newFlagSet("tournaments create")
	name := fs.String("name", "", "tournament name (required)")
	start := fs.String("start", "", "start date YYYY-MM-DD (required)")
	end := fs.String("end", "", "end date YYYY-MM-DD (required)")
	format := fs.String("format", string(models.FormatElimination), "format: elimination or round_robin")
	description := fs.String("description", "", "description")
	location := fs.String("location", "", "venue")
	maxTeams := fs.Int("max-teams", 0, "maximum number of teams")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *name == "" || *start == "" || *end == "" {
		fs.Usage()
		return errUsage
	}

	t, err := a.Client.CreateTournament(ctx, api.TournamentCreateInput{
		Name:        *name,
		StartDate:   *start,
		EndDate:     *end,
		Format:      models.TournamentFormat(*format),
		Description: optStr(*description),
		Location:    optStr(*location),
		MaxTeams:    optInt(*maxTeams),
	})
	if err != nil {
		return fmt.Errorf("create tournament: %w", err)
	}
	fmt.Fprintf(a.Out, "tournament %d created in status %s\n", t.ID, t.Status)
	return nil
}

func (a *App) tournamentsUpdate(ctx context.Context, args []string) error {
	fs := a.newFlagSet("tournaments update")
	name := fs.String("name", "", "tournament name")
	start := fs.String("start", "", "start date YYYY-MM-DD")
	end := fs.String("end", "", "end date YYYY-MM-DD")
	description := fs.String("description", "", "description")
	location := fs.String("location", "", "venue")
	maxTeams := fs.Int("max-teams", 0, "maximum number of teams")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := intArg(fs.Args(), "tournament id")
	if err != nil {
		return err
	}

	t, err := a.Client.UpdateTournament(ctx, id, api.TournamentUpdateInput{
		Name:        optStr(*name),
		StartDate:   optStr(*start),
		EndDate:     optStr(*end),
		Description: optStr(*description),
		Location:    optStr(*location),
		MaxTeams:    optInt(*maxTeams),
	})
	if err != nil {
		return fmt.Errorf("update tournament: %w", err)
	}
	fmt.Fprintf(a.Out, "tournament %d updated\n", t.ID)
	return nil
}

func (a *App) tournamentsDelete(ctx context.Context, args []string) error {
	id, err := intArg(args, "tournament id")
	if err != nil {
		return err
	}
	if err := a.Client.DeleteTournament(ctx, id); err != nil {
		return fmt.Errorf("delete tournament: %w", err)
	}
	fmt.Fprintf(a.Out, "tournament %d deleted\n", id)
	return nil
}

// tournamentsTransition runs one forward lifecycle step. The tournament is
// fetched first so the action is validated against its current status rather
// than a stale guess.
func (a *App) tournamentsTransition(ctx context.Context, args []string, action lifecycle.Action) error {
	id, err := intArg(args, "tournament id")
	if err != nil {
		return err
	}
	detail, err := a.Client.GetTournament(ctx, id)
	if err != nil {
		return err
	}

	outcome, err := lifecycle.Apply(ctx, a.Client, a.Session.User(), detail.Tournament, action)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.Out, "tournament %d is now %s\n", outcome.Tournament.ID, outcome.Tournament.Status)
	if outcome.MatchesReplaced {
		fmt.Fprintf(a.Out, "bracket generated, %d matches:\n", len(outcome.Matches))
		return a.printMatches(outcome.Matches)
	}
	return nil
}

func (a *App) tournamentsRegisterTeam(ctx context.Context, args []string) error {
	tournamentID, teamID, err := twoIntArgs(args, "tournament id", "team id")
	if err != nil {
		return err
	}
	if err := a.Client.RegisterTeam(ctx, tournamentID, teamID); err != nil {
		return fmt.Errorf("register team: %w", err)
	}
	fmt.Fprintf(a.Out, "team %d registered in tournament %d\n", teamID, tournamentID)
	return nil
}

func (a *App) tournamentsUnregisterTeam(ctx context.Context, args []string) error {
	tournamentID, teamID, err := twoIntArgs(args, "tournament id", "team id")
	if err != nil {
		return err
	}
	if err := a.Client.UnregisterTeam(ctx, tournamentID, teamID); err != nil {
		return fmt.Errorf("unregister team: %w", err)
	}
	fmt.Fprintf(a.Out, "team %d withdrawn from tournament %d\n", teamID, tournamentID)
	return nil
}

func (a *App) tournamentsTeams(ctx context.Context, args []string) error {
	id, err := intArg(args, "tournament id")
	if err != nil {
		return err
	}
	teams, err := a.Client.RegisteredTeams(ctx, id)
	if err != nil {
		return err
	}
	w := a.tab()
	fmt.Fprintln(w, "ID\tSEED\tNAME\tPLAYERS")
	for _, t := range teams {
		seed := "-"
		if t.Seed != nil {
			seed = strconv.Itoa(*t.Seed)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", t.ID, seed, t.Name, teamPlayers(t))
	}
	return w.Flush()
}

func (a *App) tournamentsSeed(ctx context.Context, args []string) error {
	fs := a.newFlagSet("tournaments seed")
	seed := fs.Int("seed", 0, "seed position, 1 is the top seed (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	tournamentID, teamID, err := twoIntArgs(fs.Args(), "tournament id", "team id")
	if err != nil {
		return err
	}
	if *seed < 1 {
		return fmt.Errorf("seed must be 1 or greater")
	}
	if err := a.Client.AssignSeed(ctx, tournamentID, teamID, *seed); err != nil {
		return fmt.Errorf("assign seed: %w", err)
	}
	fmt.Fprintf(a.Out, "team %d seeded #%d in tournament %d\n", teamID, *seed, tournamentID)
	return nil
}

func teamPlayers(t models.Team) string {
	p1, p2 := fmt.Sprint(t.Player1ID), fmt.Sprint(t.Player2ID)
	if t.Player1 != nil {
		p1 = t.Player1.Name
	}
	if t.Player2 != nil {
		p2 = t.Player2.Name
	}
	return p1 + " / " + p2
}

func intArg(args []string, what string) (int, error) {
	if len(args) < 1 {
		return 0, fmt.Errorf("missing %s argument", what)
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", what, args[0])
	}
	return id, nil
}

func twoIntArgs(args []string, first, second string) (int, int, error) {
	if len(args) < 2 {
		return 0, 0, fmt.Errorf("expected %s and %s arguments", first, second)
	}
	a, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid %s %q", first, args[0])
	}
	b, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid %s %q", second, args[1])
	}
	return a, b, nil
}
