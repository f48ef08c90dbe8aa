package httpapi

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/TayDaGreatDIY/M2DG-Basketball-Platform-sub000/internal/derive"
	"github.com/TayDaGreatDIY/M2DG-Basketball-Platform-sub000/internal/leaderboard"
)

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	users, err := s.store.Users(r.Context())
	if err != nil {
		s.log.Error("list users", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	games, err := s.store.CompletedGames(r.Context())
	if err != nil {
		s.log.Error("list completed games", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, leaderboard.Compute(users, games))
}

// rankMilestone is the points target for the dashboard progress bar.
const rankMilestone = 100

type myStatsResponse struct {
	Wins            int     `json:"wins"`
	Losses          int     `json:"losses"`
	WinRate         float64 `json:"win_rate"`
	Points          int     `json:"points"`
	Rank            int     `json:"rank"`
	ProgressPercent int     `json:"progress_percent"`
}

func (s *Server) handleMyStats(w http.ResponseWriter, r *http.Request) {
	users, err := s.store.Users(r.Context())
	if err != nil {
		s.log.Error("list users", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	games, err := s.store.CompletedGames(r.Context())
	if err != nil {
		s.log.Error("list completed games", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	var out myStatsResponse
	out.ProgressPercent = derive.ProgressPercent(0, rankMilestone)
	for _, row := range leaderboard.Compute(users, games) {
		if row.UserID == currentUser(r).ID {
			out = myStatsResponse{
				Wins:            row.Wins,
				Losses:          row.Losses,
				WinRate:         row.WinRate,
				Points:          row.Points,
				Rank:            row.Rank,
				ProgressPercent: derive.ProgressPercent(float64(row.Points), rankMilestone),
			}
			break
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	recs, err := s.rec.Recommend(r.Context(), currentUser(r).ID)
	if err != nil {
		s.log.Error("recommendations", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

type videoAnalysisRequest struct {
	VideoURL string `json:"video_url"`
}

func (s *Server) handleVideoAnalysis(w http.ResponseWriter, r *http.Request) {
	var req videoAnalysisRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	if req.VideoURL == "" {
		writeError(w, http.StatusBadRequest, "video_url is required")
		return
	}
	analysis, err := s.video.Analyze(r.Context(), req.VideoURL)
	if err != nil {
		s.log.Error("video analysis", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}
