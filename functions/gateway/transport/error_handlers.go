package transport

import (
	"context"
	"errors"
	"net/http"

	"github.com/racquetek/booking-api/functions/gateway/types"
)

// StatusForError returns the HTTP status and the message shown to clients.
// Unclassified errors become a bare 500 so internals never leak.
func StatusForError(err error) (int, string) {
	switch {
	case err == nil:
		return http.StatusOK, ""
	case errors.Is(err, types.ErrAuthentication):
		return http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, types.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, types.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, types.ErrInvalidTransition):
		return http.StatusConflict, err.Error()
	case errors.Is(err, types.ErrConstraintViolation):
		return http.StatusConflict, "Conflicts with existing data"
	case errors.Is(err, types.ErrTransient), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, "Service temporarily unavailable, please retry"
	}
	return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
}
