// Package console implements the padeladmin command surface: a thin
// subcommand dispatcher over the platform client, the session store and the
// tournament/match controllers.
package console

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"

	"github.com/MargonDiego/padel-frontend/api"
	"github.com/MargonDiego/padel-frontend/config"
	"github.com/MargonDiego/padel-frontend/session"
)

// App bundles everything a command needs. Out is separated from the logger so
// command output stays machine-greppable while diagnostics go to stderr.
type App struct {
	Client  *api.Client
	Session *session.Store
	Config  *config.Config
	Logger  *slog.Logger
	Out     io.Writer
}

var errUsage = errors.New("usage")

// Run dispatches args (without the program name) to the matching command.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.usage()
		return errUsage
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "login":
		return a.cmdLogin(ctx, rest)
	case "logout":
		return a.cmdLogout(ctx)
	case "whoami":
		return a.cmdWhoami(ctx, rest)
	case "register":
		return a.cmdRegister(ctx, rest)
	case "profile":
		return a.cmdProfile(ctx, rest)
	case "password":
		return a.cmdPassword(ctx, rest)
	case "theme":
		return a.cmdTheme(rest)
	case "tournaments":
		return a.cmdTournaments(ctx, rest)
	case "matches":
		return a.cmdMatches(ctx, rest)
	case "teams":
		return a.cmdTeams(ctx, rest)
	case "rankings":
		return a.cmdRankings(ctx, rest)
	case "stats":
		return a.cmdStats(ctx, rest)
	case "overview":
		return a.cmdOverview(ctx, rest)
	case "watch":
		return a.cmdWatch(ctx, rest)
	case "help", "-h", "--help":
		a.usage()
		return nil
	}
	fmt.Fprintf(a.Out, "unknown command %q\n\n", cmd)
	a.usage()
	return errUsage
}

func (a *App) usage() {
	fmt.Fprint(a.Out, `padeladmin <command> [arguments]

Commands:
  login        authenticate and store the session
  logout       end the session
  whoami       show the signed-in account
  register     create a new account
  profile      update the signed-in player's profile
  password     change the account password
  theme        get or set the light/dark preference
  tournaments  list, inspect and manage tournaments
  matches      list matches and submit results
  teams        list and manage teams
  rankings     player and team leaderboards
  stats        per-player and per-team statistics
  overview     combined rankings snapshot
  watch        follow a tournament's live updates

Run "padeladmin <command> -h" for command flags.
`)
}

// requireSession guards commands that need a bearer token. An expired token
// is treated the same as no token: the user has to log in again.
func (a *App) requireSession() error {
	if !a.Session.Authenticated() {
		return errors.New("not signed in, run \"padeladmin login\" first")
	}
	if !a.Session.TokenValid() {
		_ = a.Session.Clear()
		return errors.New("session expired, run \"padeladmin login\" again")
	}
	return nil
}

func (a *App) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.Out)
	return fs
}

func (a *App) tab() *tabwriter.Writer {
	return tabwriter.NewWriter(a.Out, 0, 4, 2, ' ', 0)
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func optStr(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func optInt(v int) *int {
	if v == 0 {
		return nil
	}
	return &v
}

func joinActions[T ~string](actions []T) string {
	parts := make([]string, len(actions))
	for i, a := range actions {
		parts[i] = string(a)
	}
	return strings.Join(parts, ", ")
}
