package console

import (
	"context"
	"fmt"

	"github.com/MargonDiego/padel-frontend/api"
)

func (a *App) cmdTeams(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.Out, "usage: padeladmin teams <list|mine|show|create|update|delete> [flags]")
		return errUsage
	}
	if err := a.requireSession(); err != nil {
		return err
	}

	sub, rest := args[0], args[1:]
	switch sub {
	case "list":
		return a.teamsList(ctx, rest, false)
	case "mine":
		return a.teamsList(ctx, rest, true)
	case "show":
		return a.teamsShow(ctx, rest)
	case "create":
		return a.teamsCreate(ctx, rest)
	case "update":
		return a.teamsUpdate(ctx, rest)
	case "delete":
		return a.teamsDelete(ctx, rest)
	}
	return fmt.Errorf("unknown teams subcommand %q", sub)
}

func (a *App) teamsList(ctx context.Context, args []string, mine bool) error {
	name := "teams list"
	if mine {
		name = "teams mine"
	}
	fs := a.newFlagSet(name)
	page := fs.Int("page", 1, "page number")
	limit := fs.Int("limit", 10, "page size")
	if err := fs.Parse(args); err != nil {
		return err
	}

	list := a.Client.ListTeams
	if mine {
		list = a.Client.MyTeams
	}
	teams, meta, err := list(ctx, *page, *limit)
	if err != nil {
		return err
	}
	w := a.tab()
	fmt.Fprintln(w, "ID\tNAME\tPLAYERS")
	for _, t := range teams {
		fmt.Fprintf(w, "%d\t%s\t%s\n", t.ID, t.Name, teamPlayers(t))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(a.Out, "page %d of %d (%d total)\n", meta.CurrentPage, meta.LastPage, meta.Total)
	return nil
}

func (a *App) teamsShow(ctx context.Context, args []string) error {
	id, err := intArg(args, "team id")
	if err != nil {
		return err
	}
	detail, err := a.Client.GetTeam(ctx, id)
	if err != nil {
		return err
	}
	t := detail.Team

	w := a.tab()
	fmt.Fprintf(w, "id\t%d\n", t.ID)
	fmt.Fprintf(w, "name\t%s\n", t.Name)
	if t.Description != nil {
		fmt.Fprintf(w, "description\t%s\n", *t.Description)
	}
	fmt.Fprintf(w, "players\t%s\n", teamPlayers(t))
	if err := w.Flush(); err != nil {
		return err
	}

	if len(detail.RecentMatches) > 0 {
		fmt.Fprintln(a.Out)
		return a.printMatches(detail.RecentMatches)
	}
	return nil
}

func (a *App) teamsCreate(ctx context.Context, args []string) error {
	fs := a.newFlagSet("teams create")
	name := fs.String("name", "", "team name (required)")
	partner := fs.Int("partner", 0, "partner player id (required)")
	description := fs.String("description", "", "description")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *name == "" || *partner == 0 {
		fs.Usage()
		return errUsage
	}

	t, err := a.Client.CreateTeam(ctx, api.TeamCreateInput{
		Name:        *name,
		Description: optStr(*description),
		Player2ID:   *partner,
	})
	if err != nil {
		return fmt.Errorf("create team: %w", err)
	}
	fmt.Fprintf(a.Out, "team %d created: %s\n", t.ID, t.Name)
	return nil
}

func (a *App) teamsUpdate(ctx context.Context, args []string) error {
	fs := a.newFlagSet("teams update")
	name := fs.String("name", "", "team name")
	description := fs.String("description", "", "description")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := intArg(fs.Args(), "team id")
	if err != nil {
		return err
	}

	t, err := a.Client.UpdateTeam(ctx, id, api.TeamUpdateInput{
		Name:        optStr(*name),
		Description: optStr(*description),
	})
	if err != nil {
		return fmt.Errorf("update team: %w", err)
	}
	fmt.Fprintf(a.Out, "team %d updated\n", t.ID)
	return nil
}

func (a *App) teamsDelete(ctx context.Context, args []string) error {
	id, err := intArg(args, "team id")
	if err != nil {
		return err
	}
	if err := a.Client.DeleteTeam(ctx, id); err != nil {
		return fmt.Errorf("delete team: %w", err)
	}
	fmt.Fprintf(a.Out, "team %d deleted\n", id)
	return nil
}
