package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"roast_advisor/internal/display"
	"roast_advisor/internal/models"
	"roast_advisor/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errFromInvalid = "invalid 'from' time; use RFC3339 or YYYY-MM-DD"
	errToInvalid   = "invalid 'to' time; use RFC3339 or YYYY-MM-DD"
)

// OvenRequest sets the oven. For /oven/on a missing temp restores the last set-point.
type OvenRequest struct {
	Temp      *float64 `json:"temp,omitempty" example:"275"`
	Timestamp string   `json:"timestamp,omitempty" example:"2025-03-01T14:30:00Z"`
	Unit      string   `json:"unit,omitempty" example:"F"`
}

// OvenOffRequest records the oven being switched off.
type OvenOffRequest struct {
	Timestamp string `json:"timestamp,omitempty" example:"2025-03-01T16:00:00Z"`
}

// bindOptionalJSON decodes the body into dst; a missing or empty body leaves dst untouched.
func bindOptionalJSON(c *gin.Context, dst any) error {
	if c.Request.ContentLength == 0 {
		return nil
	}
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (h *Handler) bindOven(c *gin.Context, tempRequired bool) (service.OvenParams, display.Unit, bool) {
	var req OvenRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return service.OvenParams{}, "", false
	}
	if tempRequired && req.Temp == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + "temp is required"})
		return service.OvenParams{}, "", false
	}
	at, err := parseOptionalTime(req.Timestamp)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return service.OvenParams{}, "", false
	}
	u, ok := h.requestUnit(c, req.Unit)
	if !ok {
		return service.OvenParams{}, "", false
	}
	p := service.OvenParams{At: at}
	if req.Temp != nil {
		p.Temp = display.FromDisplay(*req.Temp, u)
	}
	return p, u, true
}

func (h *Handler) respondOvenEvent(c *gin.Context, ev models.OvenEvent, u display.Unit) {
	c.JSON(http.StatusCreated, display.NewOvenEvent(ev, u))
}

// @Summary      Set oven temperature
// @Description  Re-sending the current temperature refreshes the oven data
// @Tags         oven
// @Accept       json
// @Produce      json
// @Param        body  body      OvenRequest  true  "Oven payload"
// @Success      201   {object}  display.OvenEventView
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/oven/set [post]
// @Security     BearerAuth
func (h *Handler) setOvenTemp(c *gin.Context) {
	p, u, ok := h.bindOven(c, true)
	if !ok {
		return
	}
	ev, err := h.services.Oven.SetTemp(c.Request.Context(), p)
	if err != nil {
		h.serviceError(c, "failed to set oven temperature", "oven_set_failed", err, "temp", p.Temp)
		return
	}
	h.respondOvenEvent(c, ev, u)
}

// @Summary      Turn oven off
// @Tags         oven
// @Accept       json
// @Produce      json
// @Param        body  body      OvenOffRequest  false  "Off payload"
// @Success      201   {object}  display.OvenEventView
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/oven/off [post]
// @Security     BearerAuth
func (h *Handler) turnOvenOff(c *gin.Context) {
	var req OvenOffRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	at, err := parseOptionalTime(req.Timestamp)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, ok := h.requestUnit(c, "")
	if !ok {
		return
	}
	ev, err := h.services.Oven.TurnOff(c.Request.Context(), at)
	if err != nil {
		h.serviceError(c, "failed to turn oven off", "oven_off_failed", err)
		return
	}
	h.respondOvenEvent(c, ev, u)
}

// @Summary      Turn oven on
// @Tags         oven
// @Accept       json
// @Produce      json
// @Param        body  body      OvenRequest  false  "On payload; temp optional"
// @Success      201   {object}  display.OvenEventView
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/oven/on [post]
// @Security     BearerAuth
func (h *Handler) turnOvenOn(c *gin.Context) {
	p, u, ok := h.bindOven(c, false)
	if !ok {
		return
	}
	ev, err := h.services.Oven.TurnOn(c.Request.Context(), p)
	if err != nil {
		h.serviceError(c, "failed to turn oven on", "oven_on_failed", err)
		return
	}
	h.respondOvenEvent(c, ev, u)
}

// @Summary      List oven events
// @Description  Filter by date (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD'). A date-only 'to' is end-of-day inclusive.
// @Tags         oven
// @Produce      json
// @Param        from  query     string  false  "Start of range"  example(2025-03-01)
// @Param        to    query     string  false  "End of range"    example(2025-03-02)
// @Param        unit  query     string  false  "Display unit"    Enums(F,C)
// @Success      200   {object}  map[string]interface{}  "count, unit, events"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/oven/events [get]
// @Security     BearerAuth
func (h *Handler) listOvenEvents(c *gin.Context) {
	var (
		from time.Time
		to   time.Time
		err  error
	)
	if qs := c.Query("from"); qs != "" {
		from, err = parseQueryTime(qs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errFromInvalid})
			return
		}
	}
	if qs := c.Query("to"); qs != "" {
		to, err = parseQueryTime(qs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errToInvalid})
			return
		}
		if isDateOnly(qs) {
			to = to.Add(24*time.Hour - time.Nanosecond).UTC()
		}
	}
	u, ok := h.requestUnit(c, c.Query("unit"))
	if !ok {
		return
	}

	events, err := h.services.Oven.History(c.Request.Context(), service.OvenFilter{From: from, To: to})
	if err != nil {
		h.serviceError(c, "failed to load oven events", "oven_events_failed", err, "from", from, "to", to)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":  len(events),
		"unit":   u,
		"events": display.NewOvenEvents(events, u),
	})
}
