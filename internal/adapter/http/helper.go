package http

import (
	"context"
	"errors"
	"net/http"

	"paylite-backend/internal/adapter/middleware"
	"paylite-backend/internal/domain/apperr"
	"paylite-backend/internal/domain/session"

	"github.com/labstack/echo/v4"
)

// bindValid binds and validates req. A non-nil response means the caller
// should write it with the returned status and stop.
func bindValid(c echo.Context, req any) (int, *ErrorResponse) {
	if err := c.Bind(req); err != nil {
		return http.StatusBadRequest, &ErrorResponse{Error: "invalid body"}
	}
	if err := c.Validate(req); err != nil {
		return http.StatusUnprocessableEntity, &ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		}
	}
	return 0, nil
}

// Map domain errors → HTTP codes
func statusOf(err error) int {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrAlreadySettled), errors.Is(err, apperr.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, apperr.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperr.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperr.ErrStorage),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err. Storage and unknown errors never leak their text.
func writeError(c echo.Context, err error) error {
	code := statusOf(err)
	msg := err.Error()
	switch code {
	case http.StatusServiceUnavailable:
		msg = "service temporarily unavailable"
	case http.StatusInternalServerError:
		c.Logger().Error(err)
		msg = "internal error"
	}
	return c.JSON(code, ErrorResponse{Error: msg})
}

func pathID(c echo.Context, name string) (string, *ErrorResponse) {
	v := c.Param(name)
	if v == "" {
		return "", &ErrorResponse{Error: "missing " + name + " path param"}
	}
	if !reHex32.MatchString(v) {
		return "", &ErrorResponse{Error: "invalid " + name}
	}
	return v, nil
}

// canSee reports whether st may read a record owned by ownerID.
func canSee(st *session.AuthState, ownerID string) bool {
	return st.IsAdmin() || st.UserID == ownerID
}

var errForbidden = ErrorResponse{Error: "forbidden"}

func currentSession(c echo.Context) *session.AuthState { return middleware.CurrentSession(c) }
