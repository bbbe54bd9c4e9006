package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/reachskyline/crm-api/internal/api/metrics"
	"github.com/reachskyline/crm-api/internal/core/domain"
	"github.com/reachskyline/crm-api/internal/core/ports"
)

// TaskHandler handles HTTP requests for tasks and the efficiency report.
type TaskHandler struct {
	ledger  ports.Ledger
	service ports.TaskService
}

func NewTaskHandler(ledger ports.Ledger, service ports.TaskService) *TaskHandler {
	return &TaskHandler{ledger: ledger, service: service}
}

// List handles GET /api/tasks.
//
// @Summary      List tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        team        query     string  false  "Only this team's tasks"
// @Param        assignedTo  query     string  false  "Only tasks assigned to this empID"
// @Success      200         {array}   taskResponse
// @Failure      401         {object}  errorResponse
// @Router       /api/tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	tasks, err := h.service.List(c.Request().Context(), domain.TaskFilter{
		Team:       c.QueryParam("team"),
		AssignedTo: c.QueryParam("assignedTo"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTaskListResponse(tasks))
}

// Create handles POST /api/tasks.
//
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTaskRequest  true  "Task details"
// @Success      201   {object}  taskResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	var req createTaskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	task, err := h.service.Create(c.Request().Context(), toCreateTaskInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toTaskResponse(task))
}

// Update handles PUT /api/tasks/:id.
//
// @Summary      Update a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Task key"
// @Param        body  body      updateTaskRequest  true  "Fields to change"
// @Success      200   {object}  taskResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/tasks/{id} [put]
func (h *TaskHandler) Update(c echo.Context) error {
	var req updateTaskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	task, err := h.service.Update(c.Request().Context(), c.Param("id"), toTaskPatch(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTaskResponse(task))
}

// Delete handles DELETE /api/tasks/:id. The task's amount is subtracted
// from its client's total before the task is removed.
//
// @Summary      Delete a task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task key"
// @Success      200  {object}  deleteTaskResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /api/tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	emp, err := currentEmployee(c)
	if err != nil {
		return err
	}

	res, err := h.ledger.DeleteTask(c.Request().Context(), c.Param("id"), emp.EmpID)
	if err != nil {
		return err
	}

	metrics.TasksDeletedTotal.WithLabelValues(string(res.Outcome)).Inc()
	if res.Outcome == ports.ReconcileApplied {
		metrics.ReconciledAmountTotal.Add(float64(res.Amount))
	}
	return c.JSON(http.StatusOK, toDeleteTaskResponse(res))
}

// TeamEfficiency handles GET /api/efficiency/teams.
//
// @Summary      Team efficiency
// @Description  Completed share of each team's work, by logged minutes when any, else by task count.
// @Tags         efficiency
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   teamEfficiencyResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/efficiency/teams [get]
func (h *TaskHandler) TeamEfficiency(c echo.Context) error {
	totals, err := h.service.TeamEfficiency(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEfficiencyResponse(totals))
}
