package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/TayDaGreatDIY/M2DG-Basketball-Platform-sub000/internal/auth"
	"github.com/TayDaGreatDIY/M2DG-Basketball-Platform-sub000/internal/models"
	"github.com/TayDaGreatDIY/M2DG-Basketball-Platform-sub000/internal/store"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	UserID      string `json:"user_id"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" || req.FullName == "" {
		writeError(w, http.StatusBadRequest, "username, email, password and full_name are required")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.log.Error("hash password", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	now := time.Now().UTC()
	u := &models.User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		FullName:     req.FullName,
		Phone:        req.Phone,
		Achievements: models.StringList{},
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.CreateUser(r.Context(), u); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			writeError(w, http.StatusBadRequest, "email already registered")
			return
		}
		s.log.Error("create user", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	s.issueToken(w, u.ID, http.StatusCreated)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}

	u, err := s.store.UserByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		s.log.Error("lookup user", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if !auth.CheckPassword(req.Password, u.PasswordHash) {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	s.issueToken(w, u.ID, http.StatusOK)
}

func (s *Server) issueToken(w http.ResponseWriter, userID string, code int) {
	token, err := auth.CreateAccessToken(s.jwtSecret, userID, s.jwtTTL)
	if err != nil {
		s.log.Error("sign token", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, code, tokenResponse{AccessToken: token, TokenType: "bearer", UserID: userID})
}

func (s *Server) handleGetMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, currentUser(r))
}

type updateMeRequest struct {
	FullName        *string `json:"full_name,omitempty"`
	Phone           *string `json:"phone,omitempty"`
	ProfilePicture  *string `json:"profile_picture,omitempty"`
	Position        *string `json:"position,omitempty"`
	Height          *string `json:"height,omitempty"`
	Weight          *string `json:"weight,omitempty"`
	ExperienceLevel *string `json:"experience_level,omitempty"`
	Bio             *string `json:"bio,omitempty"`
}

func (s *Server) handleUpdateMe(w http.ResponseWriter, r *http.Request) {
	var req updateMeRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}

	patch := store.UserPatch{
		FullName:        req.FullName,
		Phone:           req.Phone,
		ProfilePicture:  req.ProfilePicture,
		Position:        req.Position,
		Height:          req.Height,
		Weight:          req.Weight,
		ExperienceLevel: req.ExperienceLevel,
		Bio:             req.Bio,
	}
	u, err := s.store.UpdateUser(r.Context(), currentUser(r).ID, patch)
	if err != nil {
		if !storeError(w, err) {
			s.log.Error("update user", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}
	writeJSON(w, http.StatusOK, u)
}
