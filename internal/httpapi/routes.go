package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/TayDaGreatDIY/M2DG-Basketball-Platform-sub000/internal/ws"
)

func SetupRoutes(s *Server) http.Handler {
	r := chi.NewRouter()
	r.Use(s.logRequests)

	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Get("/", s.handleRoot)
		r.Get("/healthz", Healthz)
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)
		r.Get("/courts", s.handleListCourts)
		r.Get("/courts/{courtID}", s.handleGetCourt)
		r.Get("/tournaments", s.handleListTournaments)
		r.Get("/challenges", s.handleListChallenges)
		r.Get("/teams", s.handleListTeams)
		r.Get("/coaches", s.handleListCoaches)
		r.Get("/stats/leaderboard", s.handleLeaderboard)
		r.Get("/ws/games", ws.Handler(s.hub))

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/users/me", s.handleGetMe)
			r.Put("/users/me", s.handleUpdateMe)
			r.Post("/courts", s.handleCreateCourt)
			r.Post("/bookings", s.handleCreateBooking)
			r.Get("/bookings/me", s.handleMyBookings)
			r.Post("/bookings/{bookingID}/cancel", s.handleCancelBooking)
			r.Post("/tournaments", s.handleCreateTournament)
			r.Post("/tournaments/{tournamentID}/register", s.handleRegisterTournament)
			r.Post("/challenges", s.handleCreateChallenge)
			r.Post("/challenges/{challengeID}/accept", s.handleAcceptChallenge)
			r.Post("/challenges/{challengeID}/cancel", s.handleCancelChallenge)
			r.Post("/teams", s.handleCreateTeam)
			r.Post("/teams/{teamID}/join", s.handleJoinTeam)
			r.Post("/teams/join-by-code", s.handleJoinTeamByCode)
			r.Post("/coaches", s.handleCreateCoach)
			r.Post("/games", s.handleCreateGame)
			r.Put("/games/{gameID}/score", s.handleUpdateScore)
			r.Post("/games/{gameID}/end", s.handleEndGame)
			r.Get("/games/me", s.handleMyGames)
			r.Get("/stats/me", s.handleMyStats)
			r.Get("/recommendations", s.handleRecommendations)
			r.Post("/video-analysis", s.handleVideoAnalysis)
		})
	})

	return r
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "M2DG Basketball Platform API",
		"version": "1.0.0",
	})
}
