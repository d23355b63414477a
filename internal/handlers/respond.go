package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"roast_advisor/internal/display"
	"roast_advisor/internal/repository"
	"roast_advisor/internal/service"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK      = "ok"
	statusDeleted = "deleted"
	statusReset   = "reset"

	errLoadSession     = "failed to load session"
	errInvalidBodyPref = "invalid body: "
	errInvalidUnit     = "invalid unit; use F or C"
	errNotFound        = "not found"

	layoutDateTime = "2006-01-02 15:04:05"
	layoutDate     = "2006-01-02"
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// serviceError maps validation errors to 400, missing rows to 404 and the rest to 500.
func (h *Handler) serviceError(c *gin.Context, userMsg, logKey string, err error, kv ...interface{}) {
	switch {
	case errors.Is(err, service.ErrValidation):
		if h.log != nil {
			h.log.Infow(logKey, append([]interface{}{"err", err}, kv...)...)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": errNotFound})
	default:
		h.logAndJSONError(c, http.StatusInternalServerError, userMsg, logKey, err, kv...)
	}
}

// requestUnit resolves the unit of a request: explicit value first, then the
// session's display unit. It writes a 400 and returns false on a bad unit.
func (h *Handler) requestUnit(c *gin.Context, explicit string) (display.Unit, bool) {
	if strings.TrimSpace(explicit) != "" {
		u, err := display.ParseUnit(explicit)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidUnit})
			return "", false
		}
		return u, true
	}
	sess, err := h.services.Sessions.Get(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errLoadSession, "session_load_failed", err)
		return "", false
	}
	u, err := display.ParseUnit(sess.DisplayUnit)
	if err != nil {
		return display.Fahrenheit, true
	}
	return u, true
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// isDateOnly reports whether the query string represents a date without time component.
func isDateOnly(s string) bool {
	return !strings.ContainsAny(s, "T ")
}

// parseQueryTime accepts RFC3339, "YYYY-MM-DD HH:MM:SS" (UTC) or "YYYY-MM-DD".
func parseQueryTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	for _, layout := range []string{layoutDateTime, layoutDate} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf(
		"invalid time format %q, expected one of: "+
			"RFC3339 (e.g. 2025-08-27T15:04:05Z), "+
			"'YYYY-MM-DD HH:MM:SS', "+
			"'YYYY-MM-DD'",
		s,
	)
}

// parseOptionalTime parses a body timestamp; empty means "now" and yields the zero time.
func parseOptionalTime(s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, nil
	}
	return parseQueryTime(s)
}
