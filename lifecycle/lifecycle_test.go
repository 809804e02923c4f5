package lifecycle

import (
	"context"
	"errors"
	"testing"

	"github.com/MargonDiego/padel-frontend/api"
	"github.com/MargonDiego/padel-frontend/models"
)

type recordingTournamentAPI struct {
	opened    int
	generated int
	updated   int

	openReply     models.Tournament
	generateReply api.TournamentDetail
	updateReply   models.Tournament
	updateInput   api.TournamentUpdateInput
	err           error
}

func (r *recordingTournamentAPI) OpenRegistration(ctx context.Context, id int) (models.Tournament, error) {
	r.opened++
	return r.openReply, r.err
}

func (r *recordingTournamentAPI) GenerateBrackets(ctx context.Context, id int) (api.TournamentDetail, error) {
	r.generated++
	return r.generateReply, r.err
}

func (r *recordingTournamentAPI) UpdateTournament(ctx context.Context, id int, input api.TournamentUpdateInput) (models.Tournament, error) {
	r.updated++
	r.updateInput = input
	return r.updateReply, r.err
}

func admin() *models.User     { return &models.User{ID: 1, UserRoleID: models.RoleAdmin} }
func organizer() *models.User { return &models.User{ID: 2, UserRoleID: models.RoleOrganizer} }
func player() *models.User    { return &models.User{ID: 3, UserRoleID: models.RolePlayer} }

func tournament(status models.TournamentStatus) models.Tournament {
	return models.Tournament{ID: 7, OrganizerID: 2, Status: status}
}

func TestCanManage(t *testing.T) {
	tests := []struct {
		name string
		user *models.User
		want bool
	}{
		{"nil user", nil, false},
		{"admin", admin(), true},
		{"organizer role", organizer(), true},
		{"creator without organizer role", &models.User{ID: 2, UserRoleID: models.RolePlayer}, true},
		{"unrelated player", player(), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanManage(tt.user, tournament(models.TournamentDraft)); got != tt.want {
				t.Fatalf("CanManage = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAvailableActionsPerStatus(t *testing.T) {
	tests := []struct {
		status models.TournamentStatus
		want   []Action
	}{
		{models.TournamentDraft, []Action{ActionOpenRegistration}},
		{models.TournamentOpen, []Action{ActionStart}},
		{models.TournamentInProgress, []Action{ActionComplete}},
		{models.TournamentCompleted, nil},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			got := AvailableActions(tournament(tt.status), admin())
			if len(got) != len(tt.want) {
				t.Fatalf("actions = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("actions = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestAvailableActionsHiddenFromPlayers(t *testing.T) {
	for _, status := range []models.TournamentStatus{models.TournamentDraft, models.TournamentOpen, models.TournamentInProgress} {
		if got := AvailableActions(tournament(status), player()); got != nil {
			t.Errorf("player sees actions %v for %s", got, status)
		}
	}
}

func TestApplyRejectsOutOfOrderTransition(t *testing.T) {
	client := &recordingTournamentAPI{}
	// Completing from draft skips two stages.
	_, err := Apply(context.Background(), client, admin(), tournament(models.TournamentDraft), ActionComplete)
	if !errors.Is(err, ErrActionNotAvailable) {
		t.Fatalf("err = %v, want ErrActionNotAvailable", err)
	}
	if client.opened+client.generated+client.updated != 0 {
		t.Fatal("rejected transition reached the network")
	}
}

func TestApplyRejectsUnpermittedUser(t *testing.T) {
	client := &recordingTournamentAPI{}
	_, err := Apply(context.Background(), client, player(), tournament(models.TournamentDraft), ActionOpenRegistration)
	if !errors.Is(err, ErrNotPermitted) {
		t.Fatalf("err = %v, want ErrNotPermitted", err)
	}
}

func TestApplyOpenRegistration(t *testing.T) {
	client := &recordingTournamentAPI{openReply: tournament(models.TournamentOpen)}
	outcome, err := Apply(context.Background(), client, organizer(), tournament(models.TournamentDraft), ActionOpenRegistration)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if client.opened != 1 {
		t.Fatalf("opened %d times, want 1", client.opened)
	}
	if outcome.Tournament.Status != models.TournamentOpen {
		t.Errorf("status = %s, want open", outcome.Tournament.Status)
	}
	if outcome.MatchesReplaced {
		t.Error("open registration must not replace matches")
	}
}

func TestApplyStartReplacesMatches(t *testing.T) {
	client := &recordingTournamentAPI{generateReply: api.TournamentDetail{
		Tournament: tournament(models.TournamentInProgress),
		Matches:    []models.Match{{ID: 1}, {ID: 2}},
	}}
	outcome, err := Apply(context.Background(), client, organizer(), tournament(models.TournamentOpen), ActionStart)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if client.generated != 1 {
		t.Fatalf("generated %d times, want 1", client.generated)
	}
	if !outcome.MatchesReplaced || len(outcome.Matches) != 2 {
		t.Fatalf("outcome = %+v, want bracket replacement with 2 matches", outcome)
	}
}

func TestApplyCompleteUsesStatusUpdate(t *testing.T) {
	client := &recordingTournamentAPI{updateReply: tournament(models.TournamentCompleted)}
	outcome, err := Apply(context.Background(), client, organizer(), tournament(models.TournamentInProgress), ActionComplete)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if client.updated != 1 {
		t.Fatalf("updated %d times, want 1", client.updated)
	}
	if client.updateInput.Status == nil || *client.updateInput.Status != models.TournamentCompleted {
		t.Fatalf("update input = %+v, want status completed", client.updateInput)
	}
	if outcome.Tournament.Status != models.TournamentCompleted {
		t.Errorf("status = %s, want completed", outcome.Tournament.Status)
	}
}
