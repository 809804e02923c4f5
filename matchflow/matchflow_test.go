package matchflow

import (
	"context"
	"errors"
	"testing"

	"github.com/MargonDiego/padel-frontend/api"
	"github.com/MargonDiego/padel-frontend/models"
	"github.com/MargonDiego/padel-frontend/scoring"
)

// recordingAPI counts calls so tests can assert that a rejected plan never
// reaches the network and an accepted one hits exactly one endpoint.
type recordingAPI struct {
	results int
	updates int
	reply   models.Match
	err     error
}

func (r *recordingAPI) RegisterResult(ctx context.Context, id int, input api.MatchResultInput) (models.Match, error) {
	r.results++
	return r.reply, r.err
}

func (r *recordingAPI) UpdateMatch(ctx context.Context, id int, input api.MatchUpdateInput) (models.Match, error) {
	r.updates++
	return r.reply, r.err
}

func testMatch() models.Match {
	return models.Match{ID: 5, TournamentID: 1, Team1ID: 10, Team2ID: 11, Status: models.MatchInProgress}
}

func TestPlanCompletedWithClearWinner(t *testing.T) {
	entries := []scoring.SetEntry{{Team1: "6", Team2: "3"}, {Team1: "4", Team2: "6"}, {Team1: "6", Team2: "2"}}
	sub, err := Plan(testMatch(), models.MatchCompleted, entries)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if sub.Kind != Finalize {
		t.Fatalf("kind = %v, want Finalize", sub.Kind)
	}
	if sub.Result.Team1Score != 2 || sub.Result.Team2Score != 1 {
		t.Errorf("scores = %d-%d, want 2-1", sub.Result.Team1Score, sub.Result.Team2Score)
	}
	if sub.Result.WinnerID != 10 {
		t.Errorf("winner = %d, want 10", sub.Result.WinnerID)
	}
	if len(sub.Result.SetResults) != 3 {
		t.Errorf("set results = %v, want 3 sets", sub.Result.SetResults)
	}
	if sub.Result.Status != models.MatchCompleted {
		t.Errorf("status = %s, want completed", sub.Result.Status)
	}
}

func TestPlanCompletedRejectsTie(t *testing.T) {
	entries := []scoring.SetEntry{{Team1: "6", Team2: "3"}, {Team1: "4", Team2: "6"}}
	_, err := Plan(testMatch(), models.MatchCompleted, entries)
	if !errors.Is(err, ErrClearWinnerRequired) {
		t.Fatalf("err = %v, want ErrClearWinnerRequired", err)
	}
}

func TestPlanCompletedRejectsNoSets(t *testing.T) {
	_, err := Plan(testMatch(), models.MatchCompleted, []scoring.SetEntry{{Team1: "6", Team2: ""}})
	if !errors.Is(err, ErrNoCompletedSets) {
		t.Fatalf("err = %v, want ErrNoCompletedSets", err)
	}
}

func TestPlanCompletedRejectsUnresolvableWinner(t *testing.T) {
	m := testMatch()
	m.Team1ID = 0
	_, err := Plan(m, models.MatchCompleted, []scoring.SetEntry{{Team1: "6", Team2: "3"}})
	if !errors.Is(err, ErrWinnerUnresolved) {
		t.Fatalf("err = %v, want ErrWinnerUnresolved", err)
	}
}

func TestPlanInProgressAcceptsPartialData(t *testing.T) {
	// A single half-played set is fine for an in-progress update; the
	// aggregate stays 0-0 because the set is not decided.
	sub, err := Plan(testMatch(), models.MatchInProgress, []scoring.SetEntry{{Team1: "6", Team2: ""}})
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if sub.Kind != PartialUpdate {
		t.Fatalf("kind = %v, want PartialUpdate", sub.Kind)
	}
	if *sub.Update.Team1Score != 0 || *sub.Update.Team2Score != 0 {
		t.Errorf("scores = %d-%d, want 0-0", *sub.Update.Team1Score, *sub.Update.Team2Score)
	}
	if *sub.Update.Status != models.MatchInProgress {
		t.Errorf("status = %s, want in_progress", *sub.Update.Status)
	}
}

func TestPlanScheduledRejectsScores(t *testing.T) {
	for _, target := range []models.MatchStatus{models.MatchScheduled, models.MatchPending, models.MatchCancelled} {
		_, err := Plan(testMatch(), target, []scoring.SetEntry{{Team1: "6", Team2: "3"}})
		if !errors.Is(err, ErrScoresNotAllowed) {
			t.Errorf("Plan(%s) err = %v, want ErrScoresNotAllowed", target, err)
		}
	}
}

func TestPlanScheduledStatusOnly(t *testing.T) {
	sub, err := Plan(testMatch(), models.MatchCancelled, nil)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if sub.Kind != PartialUpdate {
		t.Fatalf("kind = %v, want PartialUpdate", sub.Kind)
	}
	if *sub.Update.Status != models.MatchCancelled {
		t.Errorf("status = %s, want cancelled", *sub.Update.Status)
	}
	if sub.Update.Team1Score != nil || sub.Update.SetResults != nil {
		t.Errorf("status-only update carries scores: %+v", sub.Update)
	}
}

func TestPlanRejectsUnknownStatus(t *testing.T) {
	_, err := Plan(testMatch(), "finished", nil)
	if !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("err = %v, want ErrInvalidStatus", err)
	}
}

func TestSubmitFinalizeCallsResultOnce(t *testing.T) {
	entries := []scoring.SetEntry{{Team1: "6", Team2: "3"}, {Team1: "6", Team2: "4"}}
	sub, err := Plan(testMatch(), models.MatchCompleted, entries)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}

	winner := 10
	client := &recordingAPI{reply: models.Match{Status: models.MatchCompleted, WinnerID: &winner}}
	local := testMatch()
	if err := Submit(context.Background(), client, &local, sub); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if client.results != 1 || client.updates != 0 {
		t.Fatalf("calls = %d results, %d updates; want exactly one result call", client.results, client.updates)
	}
	if local.Status != models.MatchCompleted || local.WinnerID == nil {
		t.Fatalf("merge did not apply: %+v", local)
	}
}

func TestSubmitUpdateCallsUpdateOnce(t *testing.T) {
	sub, err := Plan(testMatch(), models.MatchInProgress, nil)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	client := &recordingAPI{reply: models.Match{Status: models.MatchInProgress}}
	local := testMatch()
	if err := Submit(context.Background(), client, &local, sub); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if client.updates != 1 || client.results != 0 {
		t.Fatalf("calls = %d updates, %d results; want exactly one update call", client.updates, client.results)
	}
}

func TestSubmitFailureLeavesLocalUntouched(t *testing.T) {
	sub, err := Plan(testMatch(), models.MatchCompleted, []scoring.SetEntry{{Team1: "6", Team2: "3"}})
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	client := &recordingAPI{err: errors.New("boom")}
	local := testMatch()
	before := local
	if err := Submit(context.Background(), client, &local, sub); err == nil {
		t.Fatal("Submit succeeded, want error")
	}
	if local.Status != before.Status || local.WinnerID != nil {
		t.Fatalf("local state changed on failure: %+v", local)
	}
}
