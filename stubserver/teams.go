package stubserver

import (
	"errors"
	"net/http"

	"github.com/MargonDiego/padel-frontend/models"
)

func (s *Server) handleListTeams(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r)
	respond(w, http.StatusOK, paginate(s.store.listTeams(), page, limit))
}

func (s *Server) handleMyTeams(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r)
	user := currentUser(r)
	var mine []models.Team
	for _, t := range s.store.listTeams() {
		if t.HasPlayer(user.ID) {
			mine = append(mine, t)
		}
	}
	respond(w, http.StatusOK, paginate(mine, page, limit))
}

func (s *Server) handleGetTeam(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		fail(w, http.StatusBadRequest, err.Error())
		return
	}
	t, err := s.store.team(id)
	if err != nil {
		fail(w, http.StatusNotFound, "team not found")
		return
	}

	recent := make([]models.Match, 0)
	for _, m := range s.store.listMatches(0, "") {
		if m.Team1ID == id || m.Team2ID == id {
			recent = append(recent, m)
		}
	}
	respond(w, http.StatusOK, map[string]interface{}{
		"team":          t,
		"recentMatches": recent,
	})
}

func (s *Server) handleCreateTeam(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name        string  `json:"name"`
		Description *string `json:"description"`
		Player2ID   int     `json:"player2Id"`
	}
	if err := readJSON(w, r, &input); err != nil {
		fail(w, http.StatusBadRequest, err.Error())
		return
	}
	if input.Name == "" {
		fail(w, http.StatusBadRequest, "team name is required")
		return
	}
	user := currentUser(r)
	if input.Player2ID == 0 || input.Player2ID == user.ID {
		fail(w, http.StatusBadRequest, "a second distinct player is required")
		return
	}
	if _, err := s.store.user(input.Player2ID); err != nil {
		fail(w, http.StatusNotFound, "second player not found")
		return
	}

	created, err := s.store.createTeam(models.Team{
		Name:        input.Name,
		Description: input.Description,
		Player1ID:   user.ID,
		Player2ID:   input.Player2ID,
	})
	if err != nil {
		if errors.Is(err, errTeamNameConflict) {
			fail(w, http.StatusConflict, err.Error())
			return
		}
		fail(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondMessage(w, http.StatusCreated, created, "team created")
}

func (s *Server) handleUpdateTeam(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		fail(w, http.StatusBadRequest, err.Error())
		return
	}
	var input struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}
	if err := readJSON(w, r, &input); err != nil {
		fail(w, http.StatusBadRequest, err.Error())
		return
	}
	updated, err := s.store.updateTeam(id, input.Name, input.Description)
	if err != nil {
		fail(w, http.StatusNotFound, "team not found")
		return
	}
	respondMessage(w, http.StatusOK, updated, "team updated")
}

func (s *Server) handleDeleteTeam(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		fail(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.store.deleteTeam(id); err != nil {
		fail(w, http.StatusNotFound, "team not found")
		return
	}
	respondMessage(w, http.StatusOK, nil, "team deleted")
}
