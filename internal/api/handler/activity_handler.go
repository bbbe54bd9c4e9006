package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/reachskyline/crm-api/internal/core/domain"
	"github.com/reachskyline/crm-api/internal/core/ports"
)

type activityResponse struct {
	ClientID   string    `json:"clientID"`
	Kind       string    `json:"kind"`
	Amount     int       `json:"amount"`
	TotalAfter int       `json:"totalAfter"`
	Actor      string    `json:"actor,omitempty"`
	At         time.Time `json:"at"`
}

// ActivityHandler serves the client billing trail.
type ActivityHandler struct {
	service ports.ActivityService
}

func NewActivityHandler(service ports.ActivityService) *ActivityHandler {
	return &ActivityHandler{service: service}
}

// List handles GET /api/activity.
//
// @Summary      Client billing trail
// @Tags         activity
// @Produce      json
// @Security     BearerAuth
// @Param        clientID  query     string  true   "Client ID (e.g. C007)"
// @Param        limit     query     int     false  "Maximum entries, 1-200 (default 50)"
// @Success      200       {array}   activityResponse
// @Failure      400       {object}  errorResponse
// @Failure      401       {object}  errorResponse
// @Router       /api/activity [get]
func (h *ActivityHandler) List(c echo.Context) error {
	clientID := c.QueryParam("clientID")
	if clientID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "clientID is required")
	}

	limit := 0
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be an integer")
		}
		limit = n
	}

	entries, err := h.service.ListByClientID(c.Request().Context(), clientID, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toActivityListResponse(entries))
}

func toActivityListResponse(entries []domain.Activity) []activityResponse {
	out := make([]activityResponse, len(entries))
	for i, a := range entries {
		out[i] = activityResponse{
			ClientID:   a.ClientID,
			Kind:       string(a.Kind),
			Amount:     a.Amount,
			TotalAfter: a.TotalAfter,
			Actor:      a.Actor,
			At:         a.At.UTC(),
		}
	}
	return out
}
