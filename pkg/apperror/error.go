package apperror

import "net/http"

type AppError struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
	Err     error             `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func New(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Validation signals malformed or missing input (HTTP 400)
func Validation(message string) *AppError {
	return New(http.StatusBadRequest, message, nil)
}

// ValidationFields signals malformed input with per-field detail (HTTP 400)
func ValidationFields(message string, fields map[string]string) *AppError {
	e := New(http.StatusBadRequest, message, nil)
	e.Fields = fields
	return e
}

// State signals an operation that is illegal for the record's current
// lifecycle state (HTTP 409)
func State(message string) *AppError {
	return New(http.StatusConflict, message, nil)
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, message, nil)
}

func Unauthorized(message string) *AppError {
	return New(http.StatusUnauthorized, message, nil)
}

// Forbidden signals a missing role or a locked stage (HTTP 403)
func Forbidden(message string) *AppError {
	return New(http.StatusForbidden, message, nil)
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, message, nil)
}

func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, "Internal Server Error", err)
}
