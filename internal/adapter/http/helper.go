package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"sacco-backend/internal/domain/guarantor"
	"sacco-backend/internal/domain/loan"
)

// statusOf maps the domain error taxonomy onto HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, loan.ErrNotFound), errors.Is(err, guarantor.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, loan.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, loan.ErrStaleTransition):
		return http.StatusConflict
	case errors.Is(err, loan.ErrGuarantorsPending):
		return http.StatusConflict
	case errors.Is(err, loan.ErrPolicyViolation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, loan.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusBadRequest
	}
}

func errJSON(c echo.Context, err error) error {
	return c.JSON(statusOf(err), ErrorResponse{Error: err.Error()})
}

// actor identity comes from trusted gateway headers; authentication itself
// lives upstream. The role is always passed explicitly into the usecases.
func actorID(c echo.Context) string {
	return strings.TrimSpace(c.Request().Header.Get("Ax-Actor-Id"))
}

func actorRole(c echo.Context) loan.Role {
	return loan.Role(strings.TrimSpace(c.Request().Header.Get("Ax-Actor-Role")))
}

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
