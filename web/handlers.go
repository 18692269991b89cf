package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"tourney/service"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps the service error taxonomy to HTTP statuses
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		respondError(w, http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrAlreadyRegistered):
		respondError(w, http.StatusConflict, "already registered")
	case errors.Is(err, service.ErrCapacityExhausted):
		respondError(w, http.StatusConflict, "tournament is full")
	case errors.Is(err, service.ErrAlreadyResolved):
		respondError(w, http.StatusConflict, "deposit request already resolved")
	case errors.Is(err, service.ErrAlreadyDistributed):
		respondError(w, http.StatusConflict, "prizes already distributed")
	case errors.Is(err, service.ErrInsufficientFunds):
		respondError(w, http.StatusUnprocessableEntity, "insufficient funds")
	case errors.Is(err, service.ErrInvalidAmount):
		respondError(w, http.StatusBadRequest, "invalid amount")
	case errors.Is(err, service.ErrConcurrencyConflict):
		respondError(w, http.StatusServiceUnavailable, "conflicting updates, retry later")
	default:
		log.WithError(err).Error("Unhandled service error")
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request, param string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid "+param)
		return 0, false
	}
	return id, true
}
