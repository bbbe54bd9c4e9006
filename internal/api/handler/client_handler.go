package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/reachskyline/crm-api/internal/api/metrics"
	"github.com/reachskyline/crm-api/internal/core/ports"
)

// ClientHandler handles HTTP requests for client records.
type ClientHandler struct {
	ledger  ports.Ledger
	service ports.ClientService
}

func NewClientHandler(ledger ports.Ledger, service ports.ClientService) *ClientHandler {
	return &ClientHandler{ledger: ledger, service: service}
}

// List handles GET /api/clients.
//
// @Summary      List clients
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        archived  query     bool  false  "List archived clients instead of active ones"
// @Success      200       {array}   clientResponse
// @Failure      400       {object}  errorResponse
// @Failure      401       {object}  errorResponse
// @Router       /api/clients [get]
func (h *ClientHandler) List(c echo.Context) error {
	archived := false
	if v := c.QueryParam("archived"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "archived must be a boolean")
		}
		archived = b
	}

	clients, err := h.service.List(c.Request().Context(), archived)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toClientListResponse(clients))
}

// Submit handles POST /api/clients. A submission matching an active client
// by name and phone is merged into it (200); otherwise a client is created
// (201).
//
// @Summary      Create or merge a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createClientRequest  true  "Client with service slots as top-level keys"
// @Success      200   {object}  clientResponse  "merged into an existing client"
// @Success      201   {object}  clientResponse  "created"
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/clients [post]
func (h *ClientHandler) Submit(c echo.Context) error {
	emp, err := currentEmployee(c)
	if err != nil {
		return err
	}

	var req createClientRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.ledger.SubmitClient(c.Request().Context(), toClientSubmission(req, emp.EmpID))
	if err != nil {
		return err
	}

	if res.Merged {
		metrics.ClientsSubmittedTotal.WithLabelValues("merged").Inc()
		return c.JSON(http.StatusOK, toClientResponse(res.Client))
	}
	metrics.ClientsSubmittedTotal.WithLabelValues("created").Inc()
	return c.JSON(http.StatusCreated, toClientResponse(res.Client))
}

// Update handles PUT /api/clients/:id.
//
// @Summary      Update a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Internal client key"
// @Param        body  body      updateClientRequest  true  "Fields to change; a slot with count 0 is removed"
// @Success      200   {object}  clientResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/clients/{id} [put]
func (h *ClientHandler) Update(c echo.Context) error {
	var req updateClientRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	client, err := h.service.Update(c.Request().Context(), c.Param("id"), toClientPatch(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toClientResponse(client))
}

// Delete handles DELETE /api/clients/:id.
//
// @Summary      Delete a client
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Internal client key"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/clients/{id} [delete]
func (h *ClientHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Client deleted"})
}
