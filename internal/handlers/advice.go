package handlers

import (
	"net/http"

	"roast_advisor/internal/display"
	"roast_advisor/internal/service"

	"github.com/gin-gonic/gin"
)

const errAdvise = "failed to compute advice"

func adviceView(rep service.AdviceReport, u display.Unit) display.Advice {
	return display.NewAdvice(rep.Result, rep.Session.TargetTemp, rep.Session.ServeTime, rep.GeneratedAt, u)
}

// @Summary      Get advice
// @Description  Heating rate, confidence, predicted finish, schedule variance and the oven recommendation
// @Tags         advice
// @Produce      json
// @Param        unit  query     string  false  "Display unit; defaults to the session unit"  Enums(F,C)
// @Success      200   {object}  display.Advice
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/advice [get]
// @Security     BearerAuth
func (h *Handler) getAdvice(c *gin.Context) {
	explicit := c.Query("unit")
	if explicit != "" {
		if _, err := display.ParseUnit(explicit); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidUnit})
			return
		}
	}
	rep, err := h.services.Advisor.Advise(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errAdvise, "advice_failed", err)
		return
	}
	c.JSON(http.StatusOK, adviceView(rep, unitFor(explicit, rep.Session.DisplayUnit)))
}

// @Summary      Oven responsiveness
// @Description  How the heating rate responded to past oven set-points; null until two usable segments exist
// @Tags         advice
// @Produce      json
// @Param        unit  query     string  false  "Display unit"  Enums(F,C)
// @Success      200   {object}  map[string]interface{}  "unit, responsiveness"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/advice/responsiveness [get]
// @Security     BearerAuth
func (h *Handler) getResponsiveness(c *gin.Context) {
	explicit := c.Query("unit")
	if explicit != "" {
		if _, err := display.ParseUnit(explicit); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidUnit})
			return
		}
	}
	res, sess, err := h.services.Advisor.Responsiveness(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errAdvise, "responsiveness_failed", err)
		return
	}
	u := unitFor(explicit, sess.DisplayUnit)
	c.JSON(http.StatusOK, gin.H{
		"unit":           u,
		"responsiveness": display.NewResponsiveness(res, u),
	})
}

// unitFor prefers a valid explicit unit, then the session unit, then °F.
func unitFor(explicit, sessionUnit string) display.Unit {
	if explicit != "" {
		if u, err := display.ParseUnit(explicit); err == nil {
			return u
		}
	}
	if u, err := display.ParseUnit(sessionUnit); err == nil {
		return u
	}
	return display.Fahrenheit
}
