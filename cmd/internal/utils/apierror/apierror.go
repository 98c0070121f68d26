package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse is what services hand back instead of raw errors. The value
// marshals to the HTTP response body and Code() picks the status.
type ErrorResponse interface {
	error
	Code() int
}

type simpleError struct {
	Status  int    `json:"-"`
	Message string `json:"error"`
}

func (e *simpleError) Error() string { return e.Message }
func (e *simpleError) Code() int     { return e.Status }

func NewSimple(code int, message string) ErrorResponse {
	return &simpleError{Status: code, Message: message}
}

func NewMissingParamError(name string) ErrorResponse {
	return NewSimple(http.StatusBadRequest, fmt.Sprintf("Missing required parameter: %s", name))
}

func NewMissingHeaderError(name string) ErrorResponse {
	return NewSimple(http.StatusBadRequest, fmt.Sprintf("Missing required header: %s", name))
}

var (
	InternalServerError = NewSimple(http.StatusInternalServerError, "Something went wrong on our side")
	MalformedBodyError  = NewSimple(http.StatusBadRequest, "Could not understand request body")

	AppointmentNotFoundError = NewSimple(http.StatusNotFound, "Appointment not found")
	UserNotFoundError        = NewSimple(http.StatusNotFound, "User not found")
	GuestNotFoundError       = NewSimple(http.StatusNotFound, "Guest not found for this appointment")

	DuplicateGuestError = NewSimple(http.StatusConflict, "User is already a guest of this appointment")
	SelfHostError       = NewSimple(http.StatusConflict, "A host cannot join their own appointment as a guest")
	UpdateRacedError    = NewSimple(http.StatusConflict, "Guest was removed by a concurrent request")

	NotHostError = NewSimple(http.StatusForbidden, "Only the appointment host can change a guest's status")

	InvalidStatusError = NewSimple(http.StatusBadRequest, "guest_status must be one of: coming, came, noshow")

	DependencyUnavailableError = NewSimple(http.StatusServiceUnavailable, "A downstream service is unavailable")
)

// FromValidationError flattens validator failures into a single 400 response.
func FromValidationError(err error) ErrorResponse {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return MalformedBodyError
	}

	msgs := make([]string, len(verrs))
	for i, fe := range verrs {
		msgs[i] = fmt.Sprintf("%s failed on '%s'", fe.Field(), fe.Tag())
	}
	return NewSimple(http.StatusBadRequest, "Validation failed: "+strings.Join(msgs, "; "))
}
