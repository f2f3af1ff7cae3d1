package helpers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"electionhub/internal/domain"
)

// Error codes for API error responses. Use these with WriteJSONError.
const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeUnauthorized     = "unauthorized"
	ErrCodeForbidden        = "forbidden"
	ErrCodeNotFound         = "not_found"
	ErrCodeConflict         = "conflict"
	ErrCodeDuplicateVote    = "duplicate_vote"
	ErrCodeInvalidOption    = "invalid_option"
	ErrCodeVotingInProgress = "voting_in_progress"
	ErrCodeVotingClosed     = "voting_closed"
	ErrCodeStoreUnavailable = "store_unavailable"
	ErrCodeRateLimited      = "rate_limited"
	ErrCodeInternalError    = "internal_error"
)

const (
	msgStoreUnavailable = "service temporarily unavailable, please retry"
	msgInternalError    = "internal server error"
)

// APIError is the error object in the standardized API response envelope.
// swagger:model APIError
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// APIResponse is the standardized envelope for all API responses.
// On success: Data is set, Error is nil. On error: Data is nil, Error is set.
// swagger:model APIResponse
type APIResponse struct {
	Data  any       `json:"data"`
	Error *APIError `json:"error"`
}

// WriteJSONSuccess sets Content-Type to application/json, writes statusCode, and
// encodes an APIResponse with the given data and error set to nil.
func WriteJSONSuccess(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(APIResponse{Data: data, Error: nil})
}

// WriteJSONError sets Content-Type to application/json, writes statusCode, and
// encodes an APIResponse with data nil and the given error code and message.
func WriteJSONError(w http.ResponseWriter, statusCode int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(APIResponse{
		Data:  nil,
		Error: &APIError{Code: code, Message: message},
	})
}

type errorMapping struct {
	target error
	status int
	code   string
}

// Order matters: the first matching sentinel wins.
var errorMappings = []errorMapping{
	{domain.ErrValidationFailed, http.StatusBadRequest, ErrCodeBadRequest},
	{domain.ErrInvalidOption, http.StatusBadRequest, ErrCodeInvalidOption},
	{domain.ErrUnauthorized, http.StatusUnauthorized, ErrCodeUnauthorized},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, ErrCodeUnauthorized},
	{domain.ErrForbidden, http.StatusForbidden, ErrCodeForbidden},
	{domain.ErrNotFound, http.StatusNotFound, ErrCodeNotFound},
	{domain.ErrDuplicateVote, http.StatusConflict, ErrCodeDuplicateVote},
	{domain.ErrVotingInProgress, http.StatusConflict, ErrCodeVotingInProgress},
	{domain.ErrVotingClosed, http.StatusConflict, ErrCodeVotingClosed},
	{domain.ErrDuplicateEmail, http.StatusConflict, ErrCodeConflict},
}

// StatusForError returns the HTTP status and error code for err.
func StatusForError(err error) (int, string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.status, m.code
		}
	}
	if errors.Is(err, domain.ErrStoreUnavailable) {
		return http.StatusServiceUnavailable, ErrCodeStoreUnavailable
	}
	return http.StatusInternalServerError, ErrCodeInternalError
}

// WriteServiceError maps a service error onto the envelope. Store and
// unexpected failures are logged and answered with a fixed message so no
// internal detail leaks to the client.
func WriteServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	status, code := StatusForError(err)
	message := err.Error()
	switch code {
	case ErrCodeStoreUnavailable:
		message = msgStoreUnavailable
	case ErrCodeInternalError:
		message = msgInternalError
	case ErrCodeNotFound:
		message = "not found"
	case ErrCodeUnauthorized:
		if errors.Is(err, domain.ErrInvalidCredentials) {
			message = domain.ErrInvalidCredentials.Error()
		} else {
			message = "unauthorized"
		}
	}
	if status >= http.StatusInternalServerError && logger != nil {
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	}
	WriteJSONError(w, status, code, message)
}
