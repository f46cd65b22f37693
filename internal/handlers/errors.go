package handlers

import (
	"errors"
	"net/http"

	"wsn_dashboard/internal/acquisition"
	"wsn_dashboard/internal/chart"
	"wsn_dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

// statusFor maps a service error onto an HTTP status code.
func statusFor(err error) int {
	var fetchErr *acquisition.FetchError
	switch {
	case errors.Is(err, service.ErrUnknownMode):
		return http.StatusNotFound
	case errors.Is(err, service.ErrSessionActive):
		return http.StatusConflict
	case errors.As(err, &fetchErr):
		return http.StatusBadGateway
	case errors.Is(err, chart.ErrEmptySeries):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrInvalidInterval),
		errors.Is(err, service.ErrUnknownSource),
		errors.Is(err, service.ErrInvalidRow),
		errors.Is(err, service.ErrInvalidOption),
		service.IsFilterError(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		if httpCode >= http.StatusInternalServerError {
			h.log.Errorw(logKey, fields...)
		} else {
			h.log.Infow(logKey, fields...)
		}
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// respondError answers with the mapped status. Server-side failures hide
// the cause behind fallback; everything else reports err itself.
func (h *Handler) respondError(c *gin.Context, err error, fallback, logKey string, kv ...interface{}) {
	code := statusFor(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		msg = fallback
	}
	h.logAndJSONError(c, code, msg, logKey, err, kv...)
}
