package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/TayDaGreatDIY/M2DG-Basketball-Platform-sub000/internal/models"
	"github.com/TayDaGreatDIY/M2DG-Basketball-Platform-sub000/internal/status"
	"github.com/TayDaGreatDIY/M2DG-Basketball-Platform-sub000/internal/store"
)

// --- tournaments ---

type createTournamentRequest struct {
	Name            string   `json:"name"`
	Description     string   `json:"description,omitempty"`
	StartDate       string   `json:"start_date"` // RFC 3339
	EndDate         string   `json:"end_date"`   // RFC 3339
	EntryFee        float64  `json:"entry_fee"`
	MaxParticipants int      `json:"max_participants"`
	PrizePool       float64  `json:"prize_pool"`
	Rules           []string `json:"rules"`
}

func (s *Server) handleListTournaments(w http.ResponseWriter, r *http.Request) {
	out, err := s.store.Tournaments(r.Context())
	if err != nil {
		s.log.Error("list tournaments", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if want := r.URL.Query().Get("status"); want != "" {
		out = status.ByStatus(out, func(t models.Tournament) status.Status { return t.Status }, status.Status(want))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateTournament(w http.ResponseWriter, r *http.Request) {
	var req createTournamentRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	start, err := time.Parse(time.RFC3339, req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid start_date")
		return
	}
	end, err := time.Parse(time.RFC3339, req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid end_date")
		return
	}
	if req.MaxParticipants <= 0 {
		writeError(w, http.StatusBadRequest, "max_participants must be positive")
		return
	}

	t := &models.Tournament{
		ID:              uuid.NewString(),
		Name:            req.Name,
		Description:     req.Description,
		StartDate:       start.UTC(),
		EndDate:         end.UTC(),
		EntryFee:        req.EntryFee,
		MaxParticipants: req.MaxParticipants,
		PrizePool:       req.PrizePool,
		Rules:           req.Rules,
		Status:          status.Initial(status.KindTournament),
		Participants:    models.StringList{},
		CreatedBy:       currentUser(r).ID,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.store.CreateTournament(r.Context(), t); err != nil {
		s.log.Error("create tournament", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) handleRegisterTournament(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "tournamentID")
	if err := s.store.RegisterParticipant(r.Context(), id, currentUser(r).ID); err != nil {
		if !storeError(w, err) {
			s.log.Error("register participant", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "successfully registered for tournament"})
}

// --- challenges ---

type createChallengeRequest struct {
	Title          string  `json:"title"`
	Description    string  `json:"description,omitempty"`
	ChallengedUser string  `json:"challenged_user,omitempty"`
	CourtID        string  `json:"court_id,omitempty"`
	ScheduledDate  string  `json:"scheduled_date,omitempty"` // RFC 3339
	WagerAmount    float64 `json:"wager_amount"`
}

func (s *Server) handleListChallenges(w http.ResponseWriter, r *http.Request) {
	out, err := s.store.Challenges(r.Context())
	if err != nil {
		s.log.Error("list challenges", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if want := r.URL.Query().Get("status"); want != "" {
		out = status.ByStatus(out, func(c models.Challenge) status.Status { return c.Status }, status.Status(want))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateChallenge(w http.ResponseWriter, r *http.Request) {
	var req createChallengeRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	if req.WagerAmount < 0 {
		writeError(w, http.StatusBadRequest, "wager_amount must not be negative")
		return
	}

	var scheduled *time.Time
	if req.ScheduledDate != "" {
		t, err := time.Parse(time.RFC3339, req.ScheduledDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid scheduled_date")
			return
		}
		u := t.UTC()
		scheduled = &u
	}

	c := &models.Challenge{
		ID:             uuid.NewString(),
		Title:          req.Title,
		Description:    req.Description,
		CreatedBy:      currentUser(r).ID,
		ChallengedUser: req.ChallengedUser,
		CourtID:        req.CourtID,
		ScheduledDate:  scheduled,
		WagerAmount:    req.WagerAmount,
		Status:         status.Initial(status.KindChallenge),
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.store.CreateChallenge(r.Context(), c); err != nil {
		s.log.Error("create challenge", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) handleAcceptChallenge(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "challengeID")
	c, err := s.store.AcceptChallenge(r.Context(), id, currentUser(r).ID)
	if err != nil {
		if !storeError(w, err) {
			s.log.Error("accept challenge", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleCancelChallenge(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "challengeID")
	c, err := s.store.CancelChallenge(r.Context(), id, currentUser(r).ID)
	if err != nil {
		if errors.Is(err, store.ErrNotOwner) {
			writeError(w, http.StatusForbidden, "not your challenge")
			return
		}
		if !storeError(w, err) {
			s.log.Error("cancel challenge", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// --- teams ---

type createTeamRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MaxMembers  int    `json:"max_members"`
	TeamLogo    string `json:"team_logo,omitempty"`
}

type joinByCodeRequest struct {
	ReferralCode string `json:"referral_code"`
}

func (s *Server) handleListTeams(w http.ResponseWriter, r *http.Request) {
	out, err := s.store.Teams(r.Context())
	if err != nil {
		s.log.Error("list teams", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateTeam(w http.ResponseWriter, r *http.Request) {
	var req createTeamRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.MaxMembers == 0 {
		req.MaxMembers = 15
	}
	if req.MaxMembers < 5 || req.MaxMembers > 20 {
		writeError(w, http.StatusBadRequest, "max_members must be between 5 and 20")
		return
	}

	code, err := GenerateCode(6)
	if err != nil {
		s.log.Error("generate referral code", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	captain := currentUser(r).ID
	t := &models.Team{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Description:  req.Description,
		CaptainID:    captain,
		Members:      models.StringList{captain},
		MaxMembers:   req.MaxMembers,
		TeamLogo:     req.TeamLogo,
		Achievements: models.StringList{},
		ReferralCode: code,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.store.CreateTeam(r.Context(), t); err != nil {
		s.log.Error("create team", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) handleJoinTeam(w http.ResponseWriter, r *http.Request) {
	t, err := s.store.JoinTeam(r.Context(), chi.URLParam(r, "teamID"), currentUser(r).ID)
	if err != nil {
		if !storeError(w, err) {
			s.log.Error("join team", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "successfully joined team", "team_name": t.Name})
}

func (s *Server) handleJoinTeamByCode(w http.ResponseWriter, r *http.Request) {
	// The code arrives either as a query param or a JSON body.
	code := r.URL.Query().Get("referral_code")
	if code == "" {
		var req joinByCodeRequest
		if err := decode(r, &req); err == nil {
			code = req.ReferralCode
		}
	}
	if code == "" {
		writeError(w, http.StatusBadRequest, "referral_code is required")
		return
	}

	t, err := s.store.JoinTeamByCode(r.Context(), code, currentUser(r).ID)
	if err != nil {
		if !storeError(w, err) {
			s.log.Error("join team by code", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "successfully joined team", "team_name": t.Name})
}

// --- coaches ---

type createCoachRequest struct {
	Specialties     []string            `json:"specialties"`
	ExperienceYears int                 `json:"experience_years"`
	Certifications  []string            `json:"certifications"`
	HourlyRate      float64             `json:"hourly_rate"`
	Bio             string              `json:"bio,omitempty"`
	Availability    map[string][]string `json:"availability"`
}

func (s *Server) handleListCoaches(w http.ResponseWriter, r *http.Request) {
	out, err := s.store.Coaches(r.Context())
	if err != nil {
		s.log.Error("list coaches", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateCoach(w http.ResponseWriter, r *http.Request) {
	var req createCoachRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	if req.HourlyRate < 0 {
		writeError(w, http.StatusBadRequest, "hourly_rate must not be negative")
		return
	}

	user := currentUser(r)
	c := &models.Coach{
		ID:              uuid.NewString(),
		UserID:          user.ID,
		Specialties:     req.Specialties,
		ExperienceYears: req.ExperienceYears,
		Certifications:  req.Certifications,
		HourlyRate:      req.HourlyRate,
		Bio:             req.Bio,
		Availability:    req.Availability,
		IsAvailable:     true,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.store.CreateCoach(r.Context(), c); err != nil {
		if !storeError(w, err) {
			s.log.Error("create coach", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	isCoach := true
	if _, err := s.store.UpdateUser(r.Context(), user.ID, store.UserPatch{IsCoach: &isCoach}); err != nil {
		s.log.Error("flag user as coach", zap.Error(err))
	}
	writeJSON(w, http.StatusCreated, c)
}
