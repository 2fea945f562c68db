package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"aidconnect/internal/core/domain"
)

// envelope is the standard API response wrapper used across handlers.
type envelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Code: status, Message: message, Data: data})
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, message, nil)
}

// respondDomainError maps the sentinel error taxonomy onto HTTP statuses.
func respondDomainError(w http.ResponseWriter, log zerolog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrApplicationNotFound),
		errors.Is(err, domain.ErrSchemeNotFound),
		errors.Is(err, domain.ErrVerificationNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrInvalidCode),
		errors.Is(err, domain.ErrCodeExpired):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrPayloadTooLarge):
		respondError(w, http.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, domain.ErrUnsupportedMedia):
		respondError(w, http.StatusUnsupportedMediaType, err.Error())
	case errors.Is(err, domain.ErrDelivery):
		respondError(w, http.StatusInternalServerError, "Failed to send email")
	default:
		log.Error().Err(err).Msg("Unhandled error in request")
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}
