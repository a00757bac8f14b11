package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/jacksmith/trips/internal/auth"
	"github.com/jacksmith/trips/internal/ops"
)

// Envelope is the JSON shape of every response.
type Envelope struct {
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Fields  any    `json:"fields,omitempty"`
	Success bool   `json:"success"`
}

// writeJSON writes data in an envelope with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any, logger *slog.Logger) {
	writeEnvelope(w, status, Envelope{Success: status < 400, Data: data}, logger)
}

// writeError writes an error envelope.
func writeError(w http.ResponseWriter, status int, message string, logger *slog.Logger) {
	writeEnvelope(w, status, Envelope{Error: message}, logger)
}

func writeEnvelope(w http.ResponseWriter, status int, env Envelope, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil && logger != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ops.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ops.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ops.ErrValidation), errors.Is(err, auth.ErrInvalidEmail):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ops.ErrNotReady):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// handleError writes the response for err. Validation failures carry the
// offending fields; unexpected errors are logged and hidden.
func handleError(w http.ResponseWriter, err error, logger *slog.Logger) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error("unhandled error", "error", err)
		writeError(w, status, "internal server error", logger)
		return
	}

	env := Envelope{Error: err.Error()}
	var verr *ops.ValidationError
	if errors.As(err, &verr) {
		env.Fields = verr.Fields
	}
	writeEnvelope(w, status, env, logger)
}
