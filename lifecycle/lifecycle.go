// Package lifecycle governs the forward-only tournament status sequence
// draft -> open -> in_progress -> completed and which user gets to trigger
// each transition.
package lifecycle

import (
	"context"
	"errors"
	"fmt"

	"github.com/MargonDiego/padel-frontend/api"
	"github.com/MargonDiego/padel-frontend/models"
)

var (
	ErrActionNotAvailable = errors.New("action is not available for the tournament status")
	ErrNotPermitted       = errors.New("user may not manage this tournament")
)

// Action is an organizer-triggered lifecycle transition. Each one maps to a
// distinct API call, not a generic status write.
type Action string

const (
	ActionOpenRegistration Action = "open_registration" // draft -> open
	ActionStart            Action = "start"             // open -> in_progress, generates brackets
	ActionComplete         Action = "complete"          // in_progress -> completed
)

// CanManage reports whether the user gets management affordances for the
// tournament: global admin, organizer role, or the tournament's creator.
// This gates what is offered, not what is allowed; real enforcement belongs
// to the API.
func CanManage(user *models.User, t models.Tournament) bool {
	if user == nil {
		return false
	}
	return user.IsAdmin() || user.IsOrganizer() || t.OrganizerID == user.ID
}

// NextAction returns the single transition legal from the given status.
// Completed is terminal, so nothing is offered there.
func NextAction(status models.TournamentStatus) (Action, bool) {
	switch status {
	case models.TournamentDraft:
		return ActionOpenRegistration, true
	case models.TournamentOpen:
		return ActionStart, true
	case models.TournamentInProgress:
		return ActionComplete, true
	}
	return "", false
}

// AvailableActions returns the lifecycle actions to offer the user for the
// tournament's current status. Out-of-order transitions are never offered.
func AvailableActions(t models.Tournament, user *models.User) []Action {
	if !CanManage(user, t) {
		return nil
	}
	action, ok := NextAction(t.Status)
	if !ok {
		return nil
	}
	return []Action{action}
}

// TournamentAPI is the slice of the platform client the controller drives.
type TournamentAPI interface {
	OpenRegistration(ctx context.Context, id int) (models.Tournament, error)
	GenerateBrackets(ctx context.Context, id int) (api.TournamentDetail, error)
	UpdateTournament(ctx context.Context, id int, input api.TournamentUpdateInput) (models.Tournament, error)
}

// Outcome is the state the caller must adopt after a transition.
type Outcome struct {
	Tournament models.Tournament
	// Matches carries the generated bracket when MatchesReplaced is true; the
	// caller must replace its local match collection with it, not merge.
	Matches         []models.Match
	MatchesReplaced bool
}

// Apply validates and executes one lifecycle transition. Starting a
// tournament is the only transition that returns matches; completing is a
// plain status-field update because the backend exposes no dedicated call.
func Apply(ctx context.Context, client TournamentAPI, user *models.User, t models.Tournament, action Action) (Outcome, error) {
	if !CanManage(user, t) {
		return Outcome{}, ErrNotPermitted
	}
	allowed, ok := NextAction(t.Status)
	if !ok || allowed != action {
		return Outcome{}, fmt.Errorf("%w: %s from status %s", ErrActionNotAvailable, action, t.Status)
	}

	switch action {
	case ActionOpenRegistration:
		updated, err := client.OpenRegistration(ctx, t.ID)
		if err != nil {
			return Outcome{}, err
		}
		return Outcome{Tournament: updated}, nil

	case ActionStart:
		detail, err := client.GenerateBrackets(ctx, t.ID)
		if err != nil {
			return Outcome{}, err
		}
		return Outcome{
			Tournament:      detail.Tournament,
			Matches:         detail.Matches,
			MatchesReplaced: true,
		}, nil

	default: // ActionComplete
		status := models.TournamentCompleted
		updated, err := client.UpdateTournament(ctx, t.ID, api.TournamentUpdateInput{Status: &status})
		if err != nil {
			return Outcome{}, err
		}
		return Outcome{Tournament: updated}, nil
	}
}
