package shared

import (
	"errors"
	"net/http"
)

// AppError is a classified failure carrying the HTTP status and the exact
// response body the outermost error handler should emit. Anything that is
// not an AppError surfaces as a generic internal_error.
type AppError struct {
	StatusCode int
	Code       string
	Message    string
	Payload    interface{}
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Code + ": " + e.Err.Error()
	}
	return e.Code + ": " + e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(status int, code, message string, payload interface{}, err error) *AppError {
	return &AppError{
		StatusCode: status,
		Code:       code,
		Message:    message,
		Payload:    payload,
		Err:        err,
	}
}

func NewValidationError(message string, payload interface{}) *AppError {
	return NewAppError(http.StatusBadRequest, "validation_error", message, payload, nil)
}

func NewRateLimitError(message string, payload interface{}) *AppError {
	return NewAppError(http.StatusTooManyRequests, "rate_limit_exceeded", message, payload, nil)
}

func NewAIServiceError(err error, payload interface{}) *AppError {
	return NewAppError(http.StatusServiceUnavailable, "ai_service_error", "AI analysis service temporarily unavailable", payload, err)
}

func NewMethodNotAllowedError(message string, payload interface{}) *AppError {
	return NewAppError(http.StatusMethodNotAllowed, "method_not_allowed", message, payload, nil)
}

func GetAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
