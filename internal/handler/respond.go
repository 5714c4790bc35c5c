package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/zyraa/storefront/internal/domain"
)

// errorResponse is the JSON error envelope returned by all endpoints.
type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if body != nil {
		// The header is already written; an encode failure here can only
		// be logged by the caller via the error middleware.
		_ = json.NewEncoder(w).Encode(body)
	}
}

// Error maps a domain error to an HTTP status and writes the error envelope.
// Internal error details are logged, never sent to the client.
func Error(w http.ResponseWriter, logger *slog.Logger, err error) {
	code := domain.ErrorCode(err)

	if code == domain.EINTERNAL && logger != nil {
		logger.Error("request failed", "error", err)
	}

	JSON(w, StatusFromCode(code), errorResponse{
		Error: errorBody{
			Code:    code,
			Message: domain.ErrorMessage(err),
		},
	})
}

// ValidationError writes a 400 with per-field messages from input validation.
func ValidationError(w http.ResponseWriter, fields map[string]string) {
	JSON(w, http.StatusBadRequest, errorResponse{
		Error: errorBody{
			Code:    domain.EINVALID,
			Message: "Validation failed",
			Fields:  fields,
		},
	})
}

// StatusFromCode translates a domain error code into an HTTP status.
func StatusFromCode(code string) int {
	switch code {
	case domain.EINVALID:
		return http.StatusBadRequest
	case domain.ENOTFOUND:
		return http.StatusNotFound
	case domain.ECONFLICT:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
