// Package matchflow decides what a match result entry is allowed to do and
// which of the two API writes it requires. Planning is pure; the single
// network call happens in Submit.
package matchflow

import (
	"errors"
	"fmt"

	"github.com/MargonDiego/padel-frontend/api"
	"github.com/MargonDiego/padel-frontend/models"
	"github.com/MargonDiego/padel-frontend/scoring"
)

// Validation errors surfaced to the user verbatim. None of them abort the
// surrounding flow; callers show the message and keep the form state.
var (
	ErrInvalidStatus       = errors.New("invalid match status")
	ErrNoCompletedSets     = errors.New("at least one set with scores for both teams is required")
	ErrClearWinnerRequired = errors.New("a completed match requires a clear winner: one team must win more sets")
	ErrWinnerUnresolved    = errors.New("could not determine a winner, verify the team identifiers")
	ErrScoresNotAllowed    = errors.New("set scores cannot be submitted for a scheduled or cancelled match")
)

// Kind selects between the two submission paths. Exactly one of the two
// network operations runs per submission, never both.
type Kind int

const (
	// PartialUpdate routes to PUT /matches/:id/update with only the populated
	// fields: no finalization is implied.
	PartialUpdate Kind = iota
	// Finalize routes to POST /matches/:id/result, the write that stamps
	// completion and triggers ranking side effects server-side.
	Finalize
)

// Submission is the planned write for one result entry.
type Submission struct {
	Kind    Kind
	MatchID int

	// Result is set when Kind is Finalize.
	Result api.MatchResultInput
	// Update is set when Kind is PartialUpdate.
	Update api.MatchUpdateInput
}

// Plan validates a result entry against the target status and decides which
// API write it requires. It performs no I/O, so the status rules are testable
// without mocking HTTP.
//
// Rules per target status:
//   - completed: at least one filled set, the aggregate counts must differ and
//     the winner must resolve to a team id.
//   - in_progress: any partial data is accepted, no winner is computed.
//   - scheduled/cancelled: set scores are rejected outright, there is no
//     submit control to disable here so the rule has to be hard.
func Plan(match models.Match, target models.MatchStatus, entries []scoring.SetEntry) (Submission, error) {
	if !target.Valid() {
		return Submission{}, fmt.Errorf("%w: %q", ErrInvalidStatus, target)
	}

	filled, err := scoring.FilledSets(entries)
	if err != nil {
		return Submission{}, err
	}
	team1Sets, team2Sets := scoring.CountSets(entries)

	switch target {
	case models.MatchCompleted:
		if len(filled) == 0 {
			return Submission{}, ErrNoCompletedSets
		}
		if team1Sets == team2Sets {
			return Submission{}, ErrClearWinnerRequired
		}
		winnerID := scoring.Winner(team1Sets, team2Sets, match.Team1ID, match.Team2ID)
		if winnerID == nil {
			return Submission{}, ErrWinnerUnresolved
		}
		return Submission{
			Kind:    Finalize,
			MatchID: match.ID,
			Result: api.MatchResultInput{
				Status:     models.MatchCompleted,
				Team1Score: team1Sets,
				Team2Score: team2Sets,
				SetResults: filled,
				WinnerID:   *winnerID,
			},
		}, nil

	case models.MatchScheduled, models.MatchPending, models.MatchCancelled:
		if len(filled) > 0 {
			return Submission{}, ErrScoresNotAllowed
		}
		status := target
		return Submission{
			Kind:    PartialUpdate,
			MatchID: match.ID,
			Update:  api.MatchUpdateInput{Status: &status},
		}, nil

	default: // in_progress
		status := target
		return Submission{
			Kind:    PartialUpdate,
			MatchID: match.ID,
			Update: api.MatchUpdateInput{
				Status:     &status,
				Team1Score: &team1Sets,
				Team2Score: &team2Sets,
				SetResults: filled,
			},
		}, nil
	}
}
