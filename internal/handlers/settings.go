package handlers

import (
	"net/http"

	"wsn_dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

type intervalRequest struct {
	Seconds *float64 `json:"seconds" binding:"required"`
}

// SetIntervalRequest is the Swagger model of the interval payload.
type SetIntervalRequest struct {
	// Delay between poll iterations in seconds
	Seconds float64 `json:"seconds" example:"1.5"`
}

// @Summary      Dashboard settings
// @Tags         settings
// @Produce      json
// @Success      200  {object}  models.DashboardSettings
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/settings [get]
// @Security     BearerAuth
func (h *Handler) getSettings(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Current())
}

// @Summary      Set polling interval
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        body  body      SetIntervalRequest  true  "Interval payload"
// @Success      200   {object}  models.DashboardSettings
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/settings/interval [put]
// @Security     BearerAuth
func (h *Handler) setInterval(c *gin.Context) {
	var req intervalRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	st, err := h.services.SetInterval(c.Request.Context(), *req.Seconds)
	if err != nil {
		h.respondError(c, err, "failed to save settings", "settings_interval_failed", "seconds", *req.Seconds)
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary      Manual scale
// @Description  Turns the manual toggle on and stores the four bound fields as typed. Blank or non-numeric fields stay automatic.
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        body  body      service.ScaleBounds  true  "Bound fields"
// @Success      200   {object}  models.DashboardSettings
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/settings/scale/manual [put]
// @Security     BearerAuth
func (h *Handler) setManualScale(c *gin.Context) {
	var req service.ScaleBounds
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	st, err := h.services.SetManual(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err, "failed to save settings", "settings_manual_failed")
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary      Automatic scale
// @Description  Turns the manual toggle off and empties the bound fields.
// @Tags         settings
// @Produce      json
// @Success      200  {object}  models.DashboardSettings
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/settings/scale/auto [put]
// @Security     BearerAuth
func (h *Handler) setAutoScale(c *gin.Context) {
	st, err := h.services.SetAuto(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "failed to save settings", "settings_auto_failed")
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary      Clear scale fields
// @Description  Empties the four bound fields in automatic mode; leaves manual fields untouched.
// @Tags         settings
// @Produce      json
// @Success      200  {object}  models.DashboardSettings
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/settings/scale/clear [post]
// @Security     BearerAuth
func (h *Handler) clearScale(c *gin.Context) {
	st, err := h.services.Clear(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "failed to save settings", "settings_clear_failed")
		return
	}
	c.JSON(http.StatusOK, st)
}
