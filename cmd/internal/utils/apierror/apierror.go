// Package apierror defines the JSON error shapes returned by the API.
// Services return an ErrorResponse; routes serialize it as-is with its
// status code.
package apierror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

type ErrorResponse interface {
	error
	Code() int
}

type simpleError struct {
	status  int
	Message string `json:"message"`
}

func (e *simpleError) Code() int     { return e.status }
func (e *simpleError) Error() string { return e.Message }

func NewSimple(status int, message string) ErrorResponse {
	return &simpleError{status: status, Message: message}
}

var (
	InternalServerError   = NewSimple(http.StatusInternalServerError, "Internal server error")
	MalformedBodyError    = NewSimple(http.StatusBadRequest, "Malformed request body")
	NotFoundError         = NewSimple(http.StatusNotFound, "Resource not found")
	MissingUserError      = NewSimple(http.StatusBadRequest, "Missing or invalid X-User-ID header")
	InvalidTimeRangeError = NewSimple(http.StatusBadRequest, "End time must be after start time")
	InvalidWorkDayError   = NewSimple(http.StatusBadRequest, "Work day start must be before work day end")
)

func NewMissingParamError(name string) ErrorResponse {
	return NewSimple(http.StatusBadRequest, fmt.Sprintf("Missing required parameter: %s", name))
}

func NewInvalidParamTypeError(name, expected string) ErrorResponse {
	return NewSimple(http.StatusBadRequest, fmt.Sprintf("Parameter %s must be of type %s", name, expected))
}

type validationError struct {
	status  int
	Message string   `json:"message"`
	Fields  []string `json:"fields,omitempty"`
}

func (e *validationError) Code() int     { return e.status }
func (e *validationError) Error() string { return e.Message }

// FromValidationError converts a validator.v10 error into a field-level
// 400 response.
func FromValidationError(err error) ErrorResponse {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return MalformedBodyError
	}

	fields := make([]string, len(verrs))
	for i, fe := range verrs {
		fields[i] = fmt.Sprintf("%s: failed on '%s'", fe.Field(), fe.Tag())
	}
	return &validationError{
		status:  http.StatusBadRequest,
		Message: "Validation failed",
		Fields:  fields,
	}
}
