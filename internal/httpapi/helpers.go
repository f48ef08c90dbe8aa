package httpapi

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"math/big"
	"net/http"

	"github.com/TayDaGreatDIY/M2DG-Basketball-Platform-sub000/internal/status"
	"github.com/TayDaGreatDIY/M2DG-Basketball-Platform-sub000/internal/store"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func decode(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

// storeError maps domain errors onto HTTP codes; anything unknown is a 500
// and gets logged by the caller.
func storeError(w http.ResponseWriter, err error) bool {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrVersionConflict):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, store.ErrDuplicate),
		errors.Is(err, store.ErrTeamFull),
		errors.Is(err, store.ErrAlreadyMember),
		errors.Is(err, store.ErrTournamentFull),
		errors.Is(err, store.ErrAlreadyRegistered),
		errors.Is(err, store.ErrChallengeNotOpen),
		errors.Is(err, store.ErrOwnChallenge),
		errors.Is(err, store.ErrCoachExists),
		errors.Is(err, status.ErrIllegalTransition):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		return false
	}
	return true
}

// GenerateCode produces an uppercase alphanumeric code for referral codes
// and court-entry RFID tags.
func GenerateCode(length int) (string, error) {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	code := make([]byte, length)
	for i := 0; i < length; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		code[i] = charset[num.Int64()]
	}
	return string(code), nil
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
