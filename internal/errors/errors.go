package errors

import (
    "net/http"
)

type ErrorType string

const (
    ErrorTypeNotFound   ErrorType = "NOT_FOUND"
    ErrorTypeValidation ErrorType = "VALIDATION"
    ErrorTypeConflict   ErrorType = "CONFLICT"
    ErrorTypeInternal   ErrorType = "INTERNAL"
)

type Error struct {
    Type    ErrorType `json:"type"`
    Message string    `json:"message"`
    Code    int       `json:"code"`
    Details any       `json:"details,omitempty"`
}

func (e *Error) Error() string {
    return e.Message
}

func NotFound(message string) *Error {
    return &Error{
        Type:    ErrorTypeNotFound,
        Message: message,
        Code:    http.StatusNotFound,
    }
}

func ValidationError(message string, details any) *Error {
    return &Error{
        Type:    ErrorTypeValidation,
        Message: message,
        Code:    http.StatusBadRequest,
        Details: details,
    }
}

// Conflict covers reviewer-visible reconciliation failures: ambiguous
// selections and stale change ids.
func Conflict(message string, details any) *Error {
    return &Error{
        Type:    ErrorTypeConflict,
        Message: message,
        Code:    http.StatusConflict,
        Details: details,
    }
}

func Internal(message string) *Error {
    return &Error{
        Type:    ErrorTypeInternal,
        Message: message,
        Code:    http.StatusInternalServerError,
    }
}
