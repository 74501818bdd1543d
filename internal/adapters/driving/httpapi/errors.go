package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/chainforensix-cli/internal/core/domain"
)

type errorBody struct {
	Error  string `json:"error"`
	Status string `json:"status,omitempty"`
}

// statusForError maps domain errors to HTTP statuses.
// A backend credential rejection is the server's problem, not the caller's,
// so it surfaces as 502 rather than 401.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidReference),
		errors.Is(err, domain.ErrInvalidEvidenceID),
		errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrNilRecord):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrNotAnchored):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyExists),
		errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrMalformedRecord):
		return http.StatusBadGateway
	case errors.Is(err, domain.ErrUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrNotImplemented):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// statusForInspection maps an inspection outcome to an HTTP status.
func statusForInspection(status domain.InspectionStatus) int {
	switch status {
	case domain.StatusTampered:
		return http.StatusConflict
	case domain.StatusNotFound:
		return http.StatusNotFound
	case domain.StatusUnauthorized, domain.StatusMalformed:
		return http.StatusBadGateway
	case domain.StatusUnavailable:
		return http.StatusServiceUnavailable
	case domain.StatusInvalidInput:
		return http.StatusBadRequest
	default:
		return http.StatusOK
	}
}

func abortWithError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(statusForError(err), errorBody{Error: err.Error()})
}
