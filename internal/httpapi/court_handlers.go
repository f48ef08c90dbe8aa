package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/TayDaGreatDIY/M2DG-Basketball-Platform-sub000/internal/models"
)

type createCourtRequest struct {
	Name        string   `json:"name"`
	Location    string   `json:"location"`
	Description string   `json:"description,omitempty"`
	CourtType   string   `json:"court_type"`
	SurfaceType string   `json:"surface_type"`
	Amenities   []string `json:"amenities"`
	HourlyRate  float64  `json:"hourly_rate"`
	Capacity    int      `json:"capacity"`
	Images      []string `json:"images"`
}

func (s *Server) handleListCourts(w http.ResponseWriter, r *http.Request) {
	courts, err := s.store.Courts(r.Context())
	if err != nil {
		s.log.Error("list courts", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, courts)
}

func (s *Server) handleGetCourt(w http.ResponseWriter, r *http.Request) {
	c, err := s.store.CourtByID(r.Context(), chi.URLParam(r, "courtID"))
	if err != nil {
		if !storeError(w, err) {
			s.log.Error("get court", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleCreateCourt(w http.ResponseWriter, r *http.Request) {
	var req createCourtRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	if req.Name == "" || req.Location == "" {
		writeError(w, http.StatusBadRequest, "name and location are required")
		return
	}
	if req.HourlyRate < 0 {
		writeError(w, http.StatusBadRequest, "hourly_rate must not be negative")
		return
	}

	c := &models.Court{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Location:    req.Location,
		Description: req.Description,
		CourtType:   req.CourtType,
		SurfaceType: req.SurfaceType,
		Amenities:   req.Amenities,
		HourlyRate:  req.HourlyRate,
		Capacity:    req.Capacity,
		IsAvailable: true,
		Images:      req.Images,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.store.CreateCourt(r.Context(), c); err != nil {
		s.log.Error("create court", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, c)
}
