package matchflow

import (
	"context"

	"github.com/MargonDiego/padel-frontend/api"
	"github.com/MargonDiego/padel-frontend/models"
)

// MatchAPI is the slice of the platform client the dispatcher needs.
type MatchAPI interface {
	RegisterResult(ctx context.Context, id int, input api.MatchResultInput) (models.Match, error)
	UpdateMatch(ctx context.Context, id int, input api.MatchUpdateInput) (models.Match, error)
}

// Submit dispatches a planned submission: exactly one of the two network
// operations is invoked. On success the response is merged into local so the
// fields the API did not echo back survive; on failure local is untouched,
// leaving the caller at its last-known-good state.
func Submit(ctx context.Context, client MatchAPI, local *models.Match, sub Submission) error {
	var (
		updated models.Match
		err     error
	)
	switch sub.Kind {
	case Finalize:
		updated, err = client.RegisterResult(ctx, sub.MatchID, sub.Result)
	default:
		updated, err = client.UpdateMatch(ctx, sub.MatchID, sub.Update)
	}
	if err != nil {
		return err
	}
	if local != nil {
		local.Merge(updated)
	}
	return nil
}
