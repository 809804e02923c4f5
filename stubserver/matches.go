package stubserver

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/MargonDiego/padel-frontend/models"
)

func roomID(tournamentID int) string {
	return fmt.Sprintf("tournament_%d", tournamentID)
}

func (s *Server) handleListMatches(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r)
	tournamentID := 0
	if raw := r.URL.Query().Get("tournament_id"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			tournamentID = v
		}
	}
	status := models.MatchStatus(r.URL.Query().Get("status"))
	matches := s.store.listMatches(tournamentID, status)
	respond(w, http.StatusOK, paginate(matches, page, limit))
}

func (s *Server) handleGetMatch(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		fail(w, http.StatusBadRequest, err.Error())
		return
	}
	m, err := s.store.match(id)
	if err != nil {
		fail(w, http.StatusNotFound, "match not found")
		return
	}
	respond(w, http.StatusOK, m)
}

// handleRegisterResult is the finalizing write: outcome plus completion in
// one call, with the stats side effects the real backend would run.
func (s *Server) handleRegisterResult(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		fail(w, http.StatusBadRequest, err.Error())
		return
	}
	m, err := s.store.match(id)
	if err != nil {
		fail(w, http.StatusNotFound, "match not found")
		return
	}

	var input struct {
		Status     string             `json:"status"`
		Team1Score int                `json:"team1Score"`
		Team2Score int                `json:"team2Score"`
		SetResults []models.SetResult `json:"setResults"`
		WinnerID   int                `json:"winnerId"`
	}
	if err := readJSON(w, r, &input); err != nil {
		fail(w, http.StatusBadRequest, err.Error())
		return
	}
	if models.MatchStatus(input.Status) != models.MatchCompleted {
		fail(w, http.StatusBadRequest, "result registration requires status completed")
		return
	}
	if input.WinnerID != m.Team1ID && input.WinnerID != m.Team2ID {
		fail(w, http.StatusBadRequest, "winner must be one of the match teams")
		return
	}
	if input.Team1Score == input.Team2Score {
		fail(w, http.StatusBadRequest, "a completed match requires a clear winner")
		return
	}

	now := time.Now().Format(time.RFC3339)
	m.Status = models.MatchCompleted
	m.Team1Score = &input.Team1Score
	m.Team2Score = &input.Team2Score
	m.WinnerID = &input.WinnerID
	m.SetResults = input.SetResults
	m.CompletedAt = &now

	saved := s.store.saveMatch(m)
	s.store.recordResult(saved)
	s.hub.BroadcastToRoom(roomID(m.TournamentID), roomMessage{Type: messageMatchUpdated, Payload: saved})
	respondMessage(w, http.StatusOK, saved, "result registered")
}

// handleUpdateMatch is the partial write: only the populated fields change
// and nothing is finalized.
func (s *Server) handleUpdateMatch(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		fail(w, http.StatusBadRequest, err.Error())
		return
	}
	m, err := s.store.match(id)
	if err != nil {
		fail(w, http.StatusNotFound, "match not found")
		return
	}

	var input struct {
		Status     *string            `json:"status"`
		Team1Score *int               `json:"team1Score"`
		Team2Score *int               `json:"team2Score"`
		SetResults []models.SetResult `json:"setResults"`
		WinnerID   *int               `json:"winnerId"`
	}
	if err := readJSON(w, r, &input); err != nil {
		fail(w, http.StatusBadRequest, err.Error())
		return
	}

	if input.Status != nil {
		status := models.MatchStatus(*input.Status)
		if !status.Valid() {
			fail(w, http.StatusBadRequest, "invalid match status")
			return
		}
		m.Status = status
	}
	if input.Team1Score != nil {
		m.Team1Score = input.Team1Score
	}
	if input.Team2Score != nil {
		m.Team2Score = input.Team2Score
	}
	if input.SetResults != nil {
		m.SetResults = input.SetResults
	}
	if input.WinnerID != nil {
		m.WinnerID = input.WinnerID
	}

	saved := s.store.saveMatch(m)
	s.hub.BroadcastToRoom(roomID(m.TournamentID), roomMessage{Type: messageMatchUpdated, Payload: saved})
	respondMessage(w, http.StatusOK, saved, "match updated")
}
