package stubserver

import "net/http"

func (s *Server) handlePlayerRankings(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, s.store.playerRankings())
}

func (s *Server) handleTeamRankings(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, s.store.teamRankings())
}

func (s *Server) handlePlayerStats(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		fail(w, http.StatusBadRequest, err.Error())
		return
	}
	stat, err := s.store.playerStat(id)
	if err != nil {
		fail(w, http.StatusNotFound, "player stats not found")
		return
	}
	respond(w, http.StatusOK, stat)
}

func (s *Server) handleTeamStats(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		fail(w, http.StatusBadRequest, err.Error())
		return
	}
	stat, err := s.store.teamStat(id)
	if err != nil {
		fail(w, http.StatusNotFound, "team stats not found")
		return
	}
	respond(w, http.StatusOK, stat)
}
