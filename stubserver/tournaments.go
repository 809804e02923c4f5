package stubserver

import (
	"errors"
	"net/http"

	"github.com/MargonDiego/padel-frontend/lifecycle"
	"github.com/MargonDiego/padel-frontend/models"
)

func (s *Server) handleListTournaments(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r)
	status := models.TournamentStatus(r.URL.Query().Get("status"))
	tournaments := s.store.listTournaments(status)
	respond(w, http.StatusOK, paginate(tournaments, page, limit))
}

func (s *Server) handleGetTournament(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		fail(w, http.StatusBadRequest, err.Error())
		return
	}
	t, err := s.store.tournament(id)
	if err != nil {
		fail(w, http.StatusNotFound, "tournament not found")
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{
		"tournament": t,
		"matches":    s.store.tournamentMatches(id),
	})
}

func (s *Server) handleCreateTournament(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name        string  `json:"name"`
		Description *string `json:"description"`
		StartDate   string  `json:"startDate"`
		EndDate     string  `json:"endDate"`
		Format      string  `json:"format"`
		MaxTeams    *int    `json:"maxTeams"`
		Location    *string `json:"location"`
	}
	if err := readJSON(w, r, &input); err != nil {
		fail(w, http.StatusBadRequest, err.Error())
		return
	}
	if input.Name == "" || input.StartDate == "" || input.EndDate == "" {
		fail(w, http.StatusBadRequest, "name, startDate and endDate are required")
		return
	}
	format := models.TournamentFormat(input.Format)
	if format != models.FormatElimination && format != models.FormatRoundRobin {
		fail(w, http.StatusBadRequest, "format must be elimination or round_robin")
		return
	}

	user := currentUser(r)
	if !user.IsAdmin() && !user.IsOrganizer() {
		fail(w, http.StatusForbidden, "only organizers may create tournaments")
		return
	}

	t := s.store.saveTournament(models.Tournament{
		Name:        input.Name,
		Description: input.Description,
		OrganizerID: user.ID,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Status:      models.TournamentDraft,
		Format:      format,
		MaxTeams:    input.MaxTeams,
		Location:    input.Location,
	})
	respondMessage(w, http.StatusCreated, t, "tournament created")
}

func (s *Server) handleUpdateTournament(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		fail(w, http.StatusBadRequest, err.Error())
		return
	}
	t, err := s.store.tournament(id)
	if err != nil {
		fail(w, http.StatusNotFound, "tournament not found")
		return
	}
	if !lifecycle.CanManage(currentUser(r), t) {
		fail(w, http.StatusForbidden, "not allowed to manage this tournament")
		return
	}

	var input struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		StartDate   *string `json:"startDate"`
		EndDate     *string `json:"endDate"`
		Format      *string `json:"format"`
		MaxTeams    *int    `json:"maxTeams"`
		Location    *string `json:"location"`
		Status      *string `json:"status"`
	}
	if err := readJSON(w, r, &input); err != nil {
		fail(w, http.StatusBadRequest, err.Error())
		return
	}

	if input.Name != nil {
		t.Name = *input.Name
	}
	if input.Description != nil {
		t.Description = input.Description
	}
	if input.StartDate != nil {
		t.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		t.EndDate = *input.EndDate
	}
	if input.Format != nil {
		t.Format = models.TournamentFormat(*input.Format)
	}
	if input.MaxTeams != nil {
		t.MaxTeams = input.MaxTeams
	}
	if input.Location != nil {
		t.Location = input.Location
	}
	if input.Status != nil {
		next := models.TournamentStatus(*input.Status)
		if !next.Valid() {
			fail(w, http.StatusBadRequest, "invalid tournament status")
			return
		}
		// Status moves one stage at a time; the only generic status write
		// the client performs is completing an in_progress tournament.
		if !forwardTransition(t.Status, next) {
			fail(w, http.StatusBadRequest, "invalid tournament status transition")
			return
		}
		t.Status = next
	}

	respondMessage(w, http.StatusOK, s.store.saveTournament(t), "tournament updated")
}

// forwardTransition reports whether to is the stage immediately after from.
// Skipping a stage or rewriting the current one is rejected like moving
// backward is.
func forwardTransition(from, to models.TournamentStatus) bool {
	order := map[models.TournamentStatus]int{
		models.TournamentDraft:      0,
		models.TournamentOpen:       1,
		models.TournamentInProgress: 2,
		models.TournamentCompleted:  3,
	}
	return order[to] == order[from]+1
}

func (s *Server) handleDeleteTournament(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		fail(w, http.StatusBadRequest, err.Error())
		return
	}
	t, err := s.store.tournament(id)
	if err != nil {
		fail(w, http.StatusNotFound, "tournament not found")
		return
	}
	if !lifecycle.CanManage(currentUser(r), t) {
		fail(w, http.StatusForbidden, "not allowed to manage this tournament")
		return
	}
	if err := s.store.deleteTournament(id); err != nil {
		fail(w, http.StatusNotFound, "tournament not found")
		return
	}
	respondMessage(w, http.StatusOK, nil, "tournament deleted")
}

func (s *Server) handleOpenRegistration(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		fail(w, http.StatusBadRequest, err.Error())
		return
	}
	t, err := s.store.tournament(id)
	if err != nil {
		fail(w, http.StatusNotFound, "tournament not found")
		return
	}
	if !lifecycle.CanManage(currentUser(r), t) {
		fail(w, http.StatusForbidden, "not allowed to manage this tournament")
		return
	}
	if t.Status != models.TournamentDraft {
		fail(w, http.StatusBadRequest, "registration can only be opened from draft")
		return
	}
	t.Status = models.TournamentOpen
	respondMessage(w, http.StatusOK, s.store.saveTournament(t), "registration opened")
}

// handleGenerateBrackets starts the tournament. The pairing is a naive
// first-round single elimination over seed order, a development fixture only.
func (s *Server) handleGenerateBrackets(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		fail(w, http.StatusBadRequest, err.Error())
		return
	}
	t, err := s.store.tournament(id)
	if err != nil {
		fail(w, http.StatusNotFound, "tournament not found")
		return
	}
	if !lifecycle.CanManage(currentUser(r), t) {
		fail(w, http.StatusForbidden, "not allowed to manage this tournament")
		return
	}
	if t.Status != models.TournamentOpen {
		fail(w, http.StatusBadRequest, "brackets can only be generated for an open tournament")
		return
	}

	teams, err := s.store.registeredTeams(id)
	if err != nil {
		fail(w, http.StatusNotFound, "tournament not found")
		return
	}
	if len(teams) < 2 {
		fail(w, http.StatusBadRequest, "at least two registered teams are required")
		return
	}

	matchNumber := 1
	for i := 0; i+1 < len(teams); i += 2 {
		s.store.saveMatch(models.Match{
			TournamentID: id,
			Round:        1,
			MatchNumber:  matchNumber,
			Team1ID:      teams[i].ID,
			Team2ID:      teams[i+1].ID,
			Status:       models.MatchScheduled,
		})
		matchNumber++
	}

	t.Status = models.TournamentInProgress
	t = s.store.saveTournament(t)

	matches := s.store.tournamentMatches(id)
	s.hub.BroadcastToRoom(roomID(id), roomMessage{Type: messageBracketUpdated, Payload: matches})
	respondMessage(w, http.StatusOK, map[string]interface{}{
		"tournament": t,
		"matches":    matches,
	}, "tournament started")
}

func (s *Server) handleRegisterTeam(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		fail(w, http.StatusBadRequest, err.Error())
		return
	}
	var input struct {
		TeamID int `json:"teamId"`
	}
	if err := readJSON(w, r, &input); err != nil {
		fail(w, http.StatusBadRequest, err.Error())
		return
	}
	t, err := s.store.tournament(id)
	if err != nil {
		fail(w, http.StatusNotFound, "tournament not found")
		return
	}
	if t.Status != models.TournamentOpen {
		fail(w, http.StatusBadRequest, "tournament registration is not open")
		return
	}
	if err := s.store.registerTeam(id, input.TeamID); err != nil {
		switch {
		case errors.Is(err, errAlreadyRegistered):
			fail(w, http.StatusConflict, err.Error())
		case errors.Is(err, errTournamentFull):
			fail(w, http.StatusConflict, err.Error())
		case errors.Is(err, errNotFound):
			fail(w, http.StatusNotFound, err.Error())
		default:
			fail(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	respondMessage(w, http.StatusOK, nil, "team registered")
}

func (s *Server) handleUnregisterTeam(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		fail(w, http.StatusBadRequest, err.Error())
		return
	}
	teamID, err := idParam(r, "teamID")
	if err != nil {
		fail(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.store.unregisterTeam(id, teamID); err != nil {
		fail(w, http.StatusNotFound, "registration not found")
		return
	}
	respondMessage(w, http.StatusOK, nil, "registration removed")
}

func (s *Server) handleRegisteredTeams(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		fail(w, http.StatusBadRequest, err.Error())
		return
	}
	teams, err := s.store.registeredTeams(id)
	if err != nil {
		fail(w, http.StatusNotFound, "tournament not found")
		return
	}
	respond(w, http.StatusOK, teams)
}

func (s *Server) handleAssignSeed(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		fail(w, http.StatusBadRequest, err.Error())
		return
	}
	var input struct {
		TeamID int `json:"teamId"`
		Seed   int `json:"seed"`
	}
	if err := readJSON(w, r, &input); err != nil {
		fail(w, http.StatusBadRequest, err.Error())
		return
	}
	if input.Seed <= 0 {
		fail(w, http.StatusBadRequest, "seed must be positive")
		return
	}
	if err := s.store.assignSeed(id, input.TeamID, input.Seed); err != nil {
		fail(w, http.StatusNotFound, "team is not registered for this tournament")
		return
	}
	respondMessage(w, http.StatusOK, nil, "seed assigned")
}
