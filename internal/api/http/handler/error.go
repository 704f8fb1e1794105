package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/dtroode/cardkeeper-server/internal/model"
)

// ErrorResponse is the body of every failed API response.
type ErrorResponse struct {
	status  int
	Success bool   `json:"success"`
	Message string `json:"message" example:"card not found"`
}

func (e *ErrorResponse) Error() string {
	return e.Message
}

// GetStatus implements huma.StatusError.
func (e *ErrorResponse) GetStatus() int {
	return e.status
}

// NewError builds ErrorResponse values. It is installed as huma.NewError.
// Request validation failures are reported as 400 like any other invalid input.
func NewError(status int, msg string, errs ...error) huma.StatusError {
	if status == http.StatusUnprocessableEntity {
		status = http.StatusBadRequest
	}

	details := make([]string, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			details = append(details, err.Error())
		}
	}
	if len(details) > 0 {
		msg = msg + ": " + strings.Join(details, "; ")
	}
	if msg == "" {
		msg = http.StatusText(status)
	}

	return &ErrorResponse{status: status, Success: false, Message: msg}
}

func handleError(err error) error {
	switch {
	case errors.Is(err, model.ErrInvalidInput):
		return huma.Error400BadRequest(err.Error())
	case errors.Is(err, model.ErrUnauthorized):
		return huma.Error403Forbidden("unauthorized")
	case errors.Is(err, model.ErrNotFound):
		return huma.Error404NotFound("card not found")
	default:
		return huma.Error500InternalServerError("internal server error")
	}
}
