package routes

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vitrine-cms/vitrine/internal/app/ports"
)

// writeError maps service and store failures onto the API's {message}
// body. Internal failures get a generic message so nothing leaks.
func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, ports.ErrValidation):
		return c.JSON(http.StatusBadRequest, map[string]string{"message": err.Error()})
	case errors.Is(err, ports.ErrInvalidCredential):
		return c.JSON(http.StatusUnauthorized, map[string]string{"message": "invalid credentials"})
	case errors.Is(err, ports.ErrForbidden):
		return c.JSON(http.StatusForbidden, map[string]string{"message": "forbidden"})
	case errors.Is(err, ports.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"message": "not found"})
	default:
		slog.Error("Request failed", "error", err, "path", c.Path())
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "internal error"})
	}
}
