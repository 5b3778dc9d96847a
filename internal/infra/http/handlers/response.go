package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/xavierca1/coachflow/internal/infra/database"
	"github.com/xavierca1/coachflow/internal/usecase"
)

const maxBodyBytes = 1 << 20

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeErrorResponse(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: code, Message: message})
}

// writeError maps use case errors to HTTP. It is the only place that does.
func writeError(w http.ResponseWriter, log zerolog.Logger, err error) {
	var (
		verr *usecase.ValidationError
		derr *usecase.DomainError
		ferr *usecase.FetchError
	)
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: "VALIDATION_ERROR", Message: verr.Message, Field: verr.Field})
	case errors.As(err, &derr):
		status := http.StatusConflict
		if derr.Code == usecase.CodeNotFound {
			status = http.StatusNotFound
		}
		writeErrorResponse(w, status, derr.Code, derr.Message)
	case errors.Is(err, database.ErrAccessDenied):
		writeErrorResponse(w, http.StatusForbidden, "ACCESS_DENIED", "You do not have access to this data")
	case errors.As(err, &ferr):
		writeErrorResponse(w, http.StatusBadGateway, "FETCH_ERROR", "Could not reach the data service. Please try again.")
	default:
		log.Error().Err(err).Msg("unhandled error")
		writeErrorResponse(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}

// decodeJSON reads a JSON body into dst, writing a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON")
		return false
	}
	return true
}
