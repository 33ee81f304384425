package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/gamewarden/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeAlreadySanctioned  = "ALREADY_SANCTIONED"
	CodeInvalidDuration    = "INVALID_DURATION"
	CodePunishmentNotFound = "PUNISHMENT_NOT_FOUND"
	CodePlayerOffline      = "PLAYER_OFFLINE"
	CodeStoreUnavailable   = "STORE_UNAVAILABLE"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrAlreadySanctioned):
		return &httpError{http.StatusConflict, APIError{CodeAlreadySanctioned, "Subject already has an active punishment of this kind"}}
	case errors.Is(err, model.ErrInvalidDuration):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidDuration, "Duration must be positive"}}
	case errors.Is(err, model.ErrPunishmentNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePunishmentNotFound, "Punishment not found"}}
	case errors.Is(err, model.ErrPlayerOffline):
		return &httpError{http.StatusPreconditionFailed, APIError{CodePlayerOffline, "Player is not connected"}}
	case errors.Is(err, model.ErrStoreUnavailable):
		return &httpError{http.StatusServiceUnavailable, APIError{CodeStoreUnavailable, "Store unavailable"}}
	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
