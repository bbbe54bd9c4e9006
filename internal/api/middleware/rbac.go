package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/reachskyline/crm-api/internal/core/domain"
)

// RequireAdmin lets through only employees flagged is_admin. It must run
// after CurrentUser.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			emp, _ := c.Get("employee").(*domain.Employee)
			if emp == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
			}
			if !emp.IsAdmin {
				return c.JSON(http.StatusForbidden, map[string]string{"error": domain.ErrForbidden.Error()})
			}
			return next(c)
		}
	}
}
