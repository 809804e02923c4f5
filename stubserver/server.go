// Package stubserver is a local, in-memory stand-in for the padel platform
// API. It exists so the admin console and the integration tests can run
// without the production backend; none of it is production logic.
package stubserver

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/websocket"
)

type Server struct {
	store     *Store
	hub       *Hub
	jwtSecret []byte
	logger    *slog.Logger
}

func New(store *Store, hub *Hub, jwtSecret string, logger *slog.Logger) *Server {
	return &Server{
		store:     store,
		hub:       hub,
		jwtSecret: []byte(jwtSecret),
		logger:    logger,
	}
}

// Router builds the full API surface under /api plus the websocket rooms
// under /ws.
func (s *Server) Router() *chi.Mux {
	router := chi.NewRouter()
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Route("/api", func(r chi.Router) {
		r.Post("/auth", s.handleLogin)
		r.Post("/register", s.handleRegister)

		r.Group(func(r chi.Router) {
			r.Use(s.authenticate)

			r.Get("/auth/user", s.handleCurrentUser)
			r.Get("/auth/refresh-token", s.handleRefreshToken)
			r.Post("/auth/logout", s.handleLogout)
			r.Put("/auth/change-password", s.handleChangePassword)
			r.Put("/profile", s.handleUpdateProfile)

			r.Route("/tournaments", func(r chi.Router) {
				r.Get("/", s.handleListTournaments)
				r.Post("/", s.handleCreateTournament)
				r.Get("/{id}", s.handleGetTournament)
				r.Put("/{id}", s.handleUpdateTournament)
				r.Delete("/{id}", s.handleDeleteTournament)
				r.Post("/{id}/open", s.handleOpenRegistration)
				r.Post("/{id}/brackets", s.handleGenerateBrackets)
				r.Post("/{id}/register", s.handleRegisterTeam)
				r.Get("/{id}/teams", s.handleRegisteredTeams)
				r.Delete("/{id}/teams/{teamID}", s.handleUnregisterTeam)
				r.Post("/{id}/seed", s.handleAssignSeed)
			})

			r.Route("/matches", func(r chi.Router) {
				r.Get("/", s.handleListMatches)
				r.Get("/{id}", s.handleGetMatch)
				r.Post("/{id}/result", s.handleRegisterResult)
				r.Put("/{id}/update", s.handleUpdateMatch)
			})

			r.Route("/teams", func(r chi.Router) {
				r.Get("/", s.handleListTeams)
				r.Post("/", s.handleCreateTeam)
				r.Get("/{id}", s.handleGetTeam)
				r.Put("/{id}", s.handleUpdateTeam)
				r.Delete("/{id}", s.handleDeleteTeam)
			})
			r.Get("/my-teams", s.handleMyTeams)

			r.Get("/rankings/players", s.handlePlayerRankings)
			r.Get("/rankings/teams", s.handleTeamRankings)
			r.Get("/stats/players/{id}", s.handlePlayerStats)
			r.Get("/stats/teams/{id}", s.handleTeamStats)
		})
	})

	router.Get("/ws/tournaments/{tournamentID}", s.serveWs)
	return router
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Local development stub, any origin may connect.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// serveWs joins a client to the tournament's broadcast room.
func (s *Server) serveWs(w http.ResponseWriter, r *http.Request) {
	tournamentID := chi.URLParam(r, "tournamentID")
	if tournamentID == "" {
		http.Error(w, "missing tournamentID", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", slog.Any("error", err))
		return
	}

	client := &wsClient{
		hub:  s.hub,
		conn: conn,
		send: make(chan []byte, 256),
		room: "tournament_" + tournamentID,
	}
	s.hub.register <- client

	go client.writePump()
	go client.readPump()
}
