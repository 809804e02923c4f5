package console

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/MargonDiego/padel-frontend/live"
	"github.com/MargonDiego/padel-frontend/models"
)

// cmdWatch tails a tournament's room until interrupted. Match updates merge
// into the local snapshot; a bracket update replaces it entirely.
func (a *App) cmdWatch(ctx context.Context, args []string) error {
	if err := a.requireSession(); err != nil {
		return err
	}
	id, err := intArg(args, "tournament id")
	if err != nil {
		return err
	}

	detail, err := a.Client.GetTournament(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.Out, "watching %s (%s), ctrl-c to stop\n", detail.Tournament.Name, detail.Tournament.Status)
	if len(detail.Matches) > 0 {
		if err := a.printMatches(detail.Matches); err != nil {
			return err
		}
	}

	sub, err := live.Dial(ctx, a.Config.APIBaseURL, id, a.Session, a.Logger)
	if err != nil {
		return err
	}

	// Handlers run on the subscriber's read goroutine; the mutex keeps the
	// snapshot and the output consistent.
	var mu sync.Mutex
	matches := detail.Matches
	sub.OnMatchUpdated = func(m models.Match) {
		mu.Lock()
		defer mu.Unlock()
		merged := false
		for i := range matches {
			if matches[i].ID == m.ID {
				matches[i].Merge(m)
				merged = true
				break
			}
		}
		if !merged {
			matches = append(matches, m)
		}
		fmt.Fprintf(a.Out, "match %d updated: status %s\n", m.ID, m.Status)
	}
	sub.OnBracketUpdated = func(updated []models.Match) {
		mu.Lock()
		defer mu.Unlock()
		matches = updated
		fmt.Fprintf(a.Out, "bracket regenerated, %d matches\n", len(updated))
		_ = a.printMatches(matches)
	}

	if err := sub.Listen(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
