package errors

import "net/http"

// AppError is a custom error type that includes an HTTP status code
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// NewAppError creates a new AppError
func NewAppError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Common errors
var (
	ErrInvalidRequest = NewAppError(http.StatusBadRequest, "Invalid request parameters")
	ErrNotFound       = NewAppError(http.StatusNotFound, "Resource not found")
	ErrInternalServer = NewAppError(http.StatusInternalServerError, "Internal server error")
	ErrRateLimit      = NewAppError(http.StatusTooManyRequests, "Rate limit exceeded")
)

// Evaluator errors. These never reach the client: evaluate and hint
// recover from them with the offline scorer and hint pool.
var (
	ErrMissingCredential = NewAppError(http.StatusUnauthorized, "No evaluator credential configured")
	ErrRemoteCall        = NewAppError(http.StatusBadGateway, "Remote evaluator call failed")
	ErrMalformedResponse = NewAppError(http.StatusBadGateway, "Remote evaluator returned a malformed response")
)

// Duel errors
var (
	ErrDuelNotFound       = NewAppError(http.StatusNotFound, "No active duel found with this code")
	ErrInvalidParticipant = NewAppError(http.StatusForbidden, "You are not a participant in this duel")
	ErrInvalidState       = NewAppError(http.StatusConflict, "Duel is not accepting this action")
	ErrNoProofs           = NewAppError(http.StatusServiceUnavailable, "No proofs available")
	ErrHintLimit          = NewAppError(http.StatusTooManyRequests, "Hint limit reached")
)
