package handlers

import (
	"net/http"

	"roast_advisor/internal/display"
	"roast_advisor/internal/service"

	"github.com/gin-gonic/gin"
)

// ReadingRequest is one meat temperature. Timestamp defaults to now.
type ReadingRequest struct {
	Temp      *float64 `json:"temp" binding:"required" example:"152.5"`
	Timestamp string   `json:"timestamp,omitempty" example:"2025-03-01T14:30:00Z"`
	Unit      string   `json:"unit,omitempty" example:"F"`
}

// bindReading parses the body into canonical °F params plus the unit to answer in.
func (h *Handler) bindReading(c *gin.Context) (service.ReadingParams, display.Unit, bool) {
	var req ReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return service.ReadingParams{}, "", false
	}
	at, err := parseOptionalTime(req.Timestamp)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return service.ReadingParams{}, "", false
	}
	u, ok := h.requestUnit(c, req.Unit)
	if !ok {
		return service.ReadingParams{}, "", false
	}
	return service.ReadingParams{Temp: display.FromDisplay(*req.Temp, u), At: at}, u, true
}

// @Summary      List readings
// @Tags         readings
// @Produce      json
// @Param        unit  query     string  false  "Display unit"  Enums(F,C)
// @Success      200   {object}  map[string]interface{}  "count, unit, readings"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/readings [get]
// @Security     BearerAuth
func (h *Handler) listReadings(c *gin.Context) {
	u, ok := h.requestUnit(c, c.Query("unit"))
	if !ok {
		return
	}
	readings, err := h.services.Readings.List(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load readings", "readings_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":    len(readings),
		"unit":     u,
		"readings": display.NewReadings(readings, u),
	})
}

// @Summary      Add reading
// @Tags         readings
// @Accept       json
// @Produce      json
// @Param        body  body      ReadingRequest  true  "Reading payload"
// @Success      201   {object}  display.ReadingView
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/readings [post]
// @Security     BearerAuth
func (h *Handler) addReading(c *gin.Context) {
	p, u, ok := h.bindReading(c)
	if !ok {
		return
	}
	rd, err := h.services.Readings.Add(c.Request.Context(), p)
	if err != nil {
		h.serviceError(c, "failed to add reading", "reading_add_failed", err, "temp", p.Temp)
		return
	}
	c.JSON(http.StatusCreated, display.NewReading(rd, u))
}

// @Summary      Edit reading
// @Tags         readings
// @Accept       json
// @Produce      json
// @Param        id    path      string          true  "Reading ID"
// @Param        body  body      ReadingRequest  true  "Reading payload"
// @Success      200   {object}  display.ReadingView
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/readings/{id} [put]
// @Security     BearerAuth
func (h *Handler) editReading(c *gin.Context) {
	id := c.Param("id")
	p, u, ok := h.bindReading(c)
	if !ok {
		return
	}
	rd, err := h.services.Readings.Edit(c.Request.Context(), id, p)
	if err != nil {
		h.serviceError(c, "failed to edit reading", "reading_edit_failed", err, "id", id)
		return
	}
	c.JSON(http.StatusOK, display.NewReading(rd, u))
}

// @Summary      Delete reading
// @Tags         readings
// @Produce      json
// @Param        id   path      string  true  "Reading ID"
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/readings/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteReading(c *gin.Context) {
	id := c.Param("id")
	if err := h.services.Readings.Delete(c.Request.Context(), id); err != nil {
		h.serviceError(c, "failed to delete reading", "reading_delete_failed", err, "id", id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusDeleted, "id": id})
}
