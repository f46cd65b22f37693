package handlers

import (
	"net/http"
	"strconv"

	"wsn_dashboard/internal/chart"
	"wsn_dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

// Response headers carrying the drawn domain and the written-back bounds.
const (
	headerXMin   = "X-Scale-X-Min"
	headerXMax   = "X-Scale-X-Max"
	headerYMin   = "X-Scale-Y-Min"
	headerYMax   = "X-Scale-Y-Max"
	headerPoints = "X-Graph-Points"
	headerLabel  = "X-Graph-Label"

	defaultGraphMode = "mon"
)

func parseGraphRequest(c *gin.Context) (service.GraphRequest, error) {
	format, err := chart.ParseFormat(c.Query("format"))
	if err != nil {
		return service.GraphRequest{}, err
	}
	color := c.Query("color")
	if _, err := chart.ParseColor(color); err != nil {
		return service.GraphRequest{}, err
	}
	req := service.GraphRequest{
		Source: c.DefaultQuery("source", service.SourceReadings),
		Mode:   c.DefaultQuery("mode", defaultGraphMode),
		Option: c.Query("option"),
		Color:  color,
		Format: format,
	}
	if req.Source == service.SourceReadings {
		row, err := strconv.Atoi(c.DefaultQuery("row", "1"))
		if err != nil {
			return service.GraphRequest{}, service.ErrInvalidRow
		}
		req.Row = row
	}
	return req, nil
}

// @Summary      Render a graph
// @Description  Clears the bound fields in automatic mode, draws the series and writes its natural range back into the fields.
// @Tags         graph
// @Produce      image/svg+xml
// @Produce      image/png
// @Param        source  query  string  false  "Data source"  Enums(readings,time,freq)
// @Param        mode    query  string  false  "Monitoring mode of stored readings"  example(mon)
// @Param        row     query  int     false  "Table row 1..11 of stored readings"
// @Param        option  query  string  false  "Axis of the time series"  Enums(X only,Y only,Z only,sum)
// @Param        color   query  string  false  "Stroke color name or #rrggbb"
// @Param        format  query  string  false  "Output format"  Enums(svg,png)
// @Success      200  {file}    binary
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/v1/graph [get]
// @Security     BearerAuth
func (h *Handler) getGraph(c *gin.Context) {
	req, err := parseGraphRequest(c)
	if err != nil {
		h.logAndJSONError(c, http.StatusBadRequest, err.Error(), "graph_bad_request", err)
		return
	}

	res, err := h.services.Render(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err, "failed to render graph", "graph_render_failed", "source", req.Source)
		return
	}

	c.Header(headerXMin, res.Settings.XMin)
	c.Header(headerXMax, res.Settings.XMax)
	c.Header(headerYMin, res.Settings.YMin)
	c.Header(headerYMax, res.Settings.YMax)
	c.Header(headerPoints, strconv.Itoa(res.Points))
	if res.Label != "" {
		c.Header(headerLabel, res.Label)
	}
	c.Data(http.StatusOK, res.Rendered.Format.ContentType(), res.Rendered.Body)
}
