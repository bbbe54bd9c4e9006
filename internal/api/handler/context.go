package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/reachskyline/crm-api/internal/core/domain"
)

// currentEmployee returns the employee injected by the CurrentUser
// middleware. Its absence means the route was mounted without auth.
func currentEmployee(c echo.Context) (*domain.Employee, error) {
	emp, _ := c.Get("employee").(*domain.Employee)
	if emp == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return emp, nil
}

// bindAndValidate decodes the body into req and runs its validate tags.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// errorResponse is the error envelope rendered by the API error handler.
type errorResponse struct {
	Error string `json:"error"`
}

// messageResponse is returned by operations with nothing else to report.
type messageResponse struct {
	Message string `json:"message"`
}
