package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// @Summary      Stored readings
// @Tags         readings
// @Produce      json
// @Param        mode   query     string  false  "Monitoring mode"  example(mon)
// @Param        limit  query     int     false  "Maximum number of readings, newest kept"
// @Success      200    {object}  map[string]interface{}  "count, readings"
// @Failure      400    {object}  map[string]string
// @Failure      401    {object}  map[string]string
// @Failure      500    {object}  map[string]string
// @Router       /api/v1/readings [get]
// @Security     BearerAuth
func (h *Handler) getReadings(c *gin.Context) {
	mode := c.DefaultQuery("mode", defaultGraphMode)
	limit := 0
	if qs := c.Query("limit"); qs != "" {
		v, err := strconv.Atoi(qs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'limit'; use an integer"})
			return
		}
		limit = v
	}

	readings, err := h.services.Recent(c.Request.Context(), mode, limit)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load readings", "readings_list_failed", err, "mode", mode)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":    len(readings),
		"readings": readings,
	})
}
