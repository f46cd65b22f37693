package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// parseMobile reads ?mobile=. The dashboard sends Y for small screens.
func parseMobile(c *gin.Context) bool {
	switch strings.ToLower(strings.TrimSpace(c.Query("mobile"))) {
	case "y", "yes", "1", "true":
		return true
	}
	return false
}

// @Summary      List monitoring modes
// @Tags         monitor
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "modes, sessions"
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/monitor [get]
// @Security     BearerAuth
func (h *Handler) listModes(c *gin.Context) {
	modes := h.services.Modes()
	sessions := make([]interface{}, 0, len(modes))
	for _, m := range modes {
		st, err := h.services.Status(m)
		if err != nil {
			continue
		}
		sessions = append(sessions, st)
	}
	c.JSON(http.StatusOK, gin.H{"modes": modes, "sessions": sessions})
}

// @Summary      Session status of one mode
// @Tags         monitor
// @Produce      json
// @Param        mode  path      string  true  "Monitoring mode"  example(mon)
// @Success      200   {object}  service.SessionStatus
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/monitor/{mode} [get]
// @Security     BearerAuth
func (h *Handler) getSession(c *gin.Context) {
	mode := c.Param("mode")
	st, err := h.services.Status(mode)
	if err != nil {
		h.respondError(c, err, "failed to load session", "monitor_status_failed", "mode", mode)
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary      Start monitoring
// @Description  Issues iteration 0 immediately; the loop continues while the backend reports timer on.
// @Tags         monitor
// @Produce      json
// @Param        mode    path      string  true   "Monitoring mode"  example(mon)
// @Param        mobile  query     string  false  "Y for the mobile menu set"
// @Success      200     {object}  map[string]interface{}  "status, session"
// @Failure      401     {object}  map[string]string
// @Failure      404     {object}  map[string]string
// @Failure      409     {object}  map[string]string
// @Failure      502     {object}  map[string]interface{}  "error, session"
// @Router       /api/v1/monitor/{mode}/start [post]
// @Security     BearerAuth
func (h *Handler) startMonitor(c *gin.Context) {
	mode := c.Param("mode")
	st, err := h.services.Begin(c.Request.Context(), mode, parseMobile(c))
	if err != nil {
		code := statusFor(err)
		if code != http.StatusBadGateway {
			h.respondError(c, err, "failed to start monitoring", "monitor_start_failed", "mode", mode)
			return
		}
		// The session keeps running after a failed first fetch.
		h.log.Infow("monitor_start_fetch_failed", "mode", mode, "err", err)
		c.JSON(code, gin.H{"error": err.Error(), "session": st})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "started", "session": st})
}

// @Summary      Stop monitoring
// @Description  Safe while idle: the stop endpoint is still called and the controls are restored.
// @Tags         monitor
// @Produce      json
// @Param        mode    path      string  true   "Monitoring mode"  example(mon)
// @Param        mobile  query     string  false  "Y for the mobile menu set"
// @Success      200     {object}  map[string]interface{}  "status, session"
// @Failure      401     {object}  map[string]string
// @Failure      404     {object}  map[string]string
// @Failure      502     {object}  map[string]string
// @Router       /api/v1/monitor/{mode}/stop [post]
// @Security     BearerAuth
func (h *Handler) stopMonitor(c *gin.Context) {
	mode := c.Param("mode")
	if err := h.services.Stop(c.Request.Context(), mode, parseMobile(c)); err != nil {
		h.respondError(c, err, "failed to stop monitoring", "monitor_stop_failed", "mode", mode)
		return
	}
	resp := gin.H{"status": "stopped"}
	if st, err := h.services.Status(mode); err == nil {
		resp["session"] = st
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary      Display snapshot
// @Description  Rows, status cells, control states and the latest alert.
// @Tags         monitor
// @Produce      json
// @Success      200  {object}  display.Snapshot
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/display [get]
// @Security     BearerAuth
func (h *Handler) getDisplay(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Snapshot())
}
