package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/TayDaGreatDIY/M2DG-Basketball-Platform-sub000/internal/derive"
	"github.com/TayDaGreatDIY/M2DG-Basketball-Platform-sub000/internal/models"
	"github.com/TayDaGreatDIY/M2DG-Basketball-Platform-sub000/internal/status"
)

type createBookingRequest struct {
	CourtID         string `json:"court_id"`
	Date            string `json:"date"`       // YYYY-MM-DD
	StartTime       string `json:"start_time"` // HH:MM
	DurationHours   int    `json:"duration_hours"`
	SpecialRequests string `json:"special_requests,omitempty"`
}

func (s *Server) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	var req createBookingRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	if req.CourtID == "" || req.Date == "" || req.StartTime == "" {
		writeError(w, http.StatusBadRequest, "court_id, date and start_time are required")
		return
	}

	start, err := time.Parse("2006-01-02T15:04", req.Date+"T"+req.StartTime)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date or start_time")
		return
	}
	start = start.UTC()
	today := time.Now().UTC().Truncate(24 * time.Hour)
	if start.Before(today) {
		writeError(w, http.StatusBadRequest, "date must not be in the past")
		return
	}

	court, err := s.store.CourtByID(r.Context(), req.CourtID)
	if err != nil {
		if !storeError(w, err) {
			s.log.Error("get court", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	// Cost is derived server-side, never trusted from the client.
	totalCost, err := derive.BookingCost(court.HourlyRate, req.DurationHours)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rfid, err := GenerateCode(8)
	if err != nil {
		s.log.Error("generate rfid code", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	b := &models.Booking{
		ID:              uuid.NewString(),
		UserID:          currentUser(r).ID,
		CourtID:         court.ID,
		Date:            start,
		StartTime:       start,
		EndTime:         start.Add(time.Duration(req.DurationHours) * time.Hour),
		DurationHours:   req.DurationHours,
		TotalCost:       totalCost,
		Status:          status.Initial(status.KindBooking),
		RFIDCode:        rfid,
		SpecialRequests: req.SpecialRequests,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.store.CreateBooking(r.Context(), b); err != nil {
		s.log.Error("create booking", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

func (s *Server) handleMyBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := s.store.BookingsByUser(r.Context(), currentUser(r).ID)
	if err != nil {
		s.log.Error("list bookings", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if want := r.URL.Query().Get("status"); want != "" {
		bookings = status.ByStatus(bookings, func(b models.Booking) status.Status { return b.Status }, status.Status(want))
	}
	writeJSON(w, http.StatusOK, bookings)
}

func (s *Server) handleCancelBooking(w http.ResponseWriter, r *http.Request) {
	b, err := s.store.BookingByID(r.Context(), chi.URLParam(r, "bookingID"))
	if err != nil {
		if !storeError(w, err) {
			s.log.Error("get booking", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}
	if b.UserID != currentUser(r).ID {
		writeError(w, http.StatusForbidden, "not your booking")
		return
	}
	// Cancellation is only open while the slot is upcoming and unresolved.
	if !b.StartTime.After(time.Now().UTC()) {
		writeError(w, http.StatusBadRequest, "booking already started")
		return
	}
	next, err := status.Step(status.KindBooking, b.Status, status.Cancelled)
	if err != nil {
		if errors.Is(err, status.ErrIllegalTransition) {
			writeError(w, http.StatusBadRequest, "booking cannot be cancelled")
			return
		}
		s.log.Error("step booking status", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	updated, err := s.store.UpdateBookingStatus(r.Context(), b.ID, next)
	if err != nil {
		if !storeError(w, err) {
			s.log.Error("cancel booking", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}
	writeJSON(w, http.StatusOK, updated)
}
