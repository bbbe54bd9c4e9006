package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/reachskyline/crm-api/internal/core/ports"
)

// EmployeeHandler handles HTTP requests for staff accounts. Create, Update
// and Delete are mounted behind RequireAdmin.
type EmployeeHandler struct {
	service ports.EmployeeService
}

func NewEmployeeHandler(service ports.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{service: service}
}

// List handles GET /api/employees.
//
// @Summary      List employees
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Param        team  query     string  false  "Only this team's employees"
// @Success      200   {array}   employeeResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/employees [get]
func (h *EmployeeHandler) List(c echo.Context) error {
	emps, err := h.service.List(c.Request().Context(), c.QueryParam("team"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEmployeeListResponse(emps))
}

// Get handles GET /api/employees/:id, where id is the empID rather than
// the internal key used by Update and Delete.
//
// @Summary      Get an employee by empID
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Employee ID (e.g. E001)"
// @Success      200  {object}  employeeResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/employees/{id} [get]
func (h *EmployeeHandler) Get(c echo.Context) error {
	emp, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEmployeeResponse(emp))
}

// Create handles POST /api/employees.
//
// @Summary      Create an employee
// @Tags         employees
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createEmployeeRequest  true  "Employee details"
// @Success      201   {object}  employeeResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/employees [post]
func (h *EmployeeHandler) Create(c echo.Context) error {
	var req createEmployeeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	emp, err := h.service.Create(c.Request().Context(), toCreateEmployeeInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toEmployeeResponse(emp))
}

// Update handles PUT /api/employees/:id.
//
// @Summary      Update an employee
// @Tags         employees
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Internal employee key"
// @Param        body  body      updateEmployeeRequest  true  "Fields to change"
// @Success      200   {object}  employeeResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/employees/{id} [put]
func (h *EmployeeHandler) Update(c echo.Context) error {
	var req updateEmployeeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	emp, err := h.service.Update(c.Request().Context(), c.Param("id"), toEmployeePatch(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEmployeeResponse(emp))
}

// Delete handles DELETE /api/employees/:id.
//
// @Summary      Delete an employee
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Internal employee key"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/employees/{id} [delete]
func (h *EmployeeHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Employee deleted"})
}
