package handlers

import (
	"net/http"

	"roast_advisor/internal/display"
	"roast_advisor/internal/service"

	"github.com/gin-gonic/gin"
)

// SessionRequest is the PUT /session payload. Omitted fields are unchanged;
// temperatures are in Unit, or in the session's display unit when Unit is empty.
type SessionRequest struct {
	Name       *string  `json:"name,omitempty" example:"Saturday brisket"`
	TargetTemp *float64 `json:"target_temp,omitempty" example:"203"`
	// RFC3339 or 'YYYY-MM-DD HH:MM:SS'; empty string clears the serve time
	ServeTime   *string          `json:"serve_time,omitempty" example:"2025-03-01T18:00:00Z"`
	DisplayUnit *string          `json:"display_unit,omitempty" example:"F"`
	Unit        string           `json:"unit,omitempty" example:"F"`
	Settings    *SettingsRequest `json:"settings,omitempty"`
}

// SettingsRequest overrides advisor thresholds; step sizes and oven limits are in the request unit.
type SettingsRequest struct {
	SmoothingWindow              *int     `json:"smoothing_window,omitempty" example:"3"`
	MinReadingsForRecommendation *int     `json:"min_readings_for_recommendation,omitempty" example:"3"`
	MinTimeSpanMinutes           *float64 `json:"min_time_span_minutes,omitempty" example:"30"`
	OnTrackThresholdMinutes      *float64 `json:"on_track_threshold_minutes,omitempty" example:"10"`
	StepSize                     *float64 `json:"step_size,omitempty" example:"10"`
	MaxStepSize                  *float64 `json:"max_step_size,omitempty" example:"25"`
	OvenTempMin                  *float64 `json:"oven_temp_min,omitempty" example:"170"`
	OvenTempMax                  *float64 `json:"oven_temp_max,omitempty" example:"325"`
	OvenTempStaleMinutes         *float64 `json:"oven_temp_stale_minutes,omitempty" example:"120"`
}

// @Summary      Get session
// @Tags         session
// @Produce      json
// @Success      200  {object}  display.SessionView
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/session [get]
// @Security     BearerAuth
func (h *Handler) getSession(c *gin.Context) {
	sess, err := h.services.Sessions.Get(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errLoadSession, "session_load_failed", err)
		return
	}
	c.JSON(http.StatusOK, display.NewSession(sess))
}

// @Summary      Configure session
// @Description  Target temperature, serve time, display unit and advisor thresholds
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      SessionRequest  true  "Session payload"
// @Success      200   {object}  display.SessionView
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/session [put]
// @Security     BearerAuth
func (h *Handler) updateSession(c *gin.Context) {
	var req SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}

	// A unit switch in the same request applies to its temperatures.
	explicit := req.Unit
	if explicit == "" && req.DisplayUnit != nil {
		explicit = *req.DisplayUnit
	}
	u, ok := h.requestUnit(c, explicit)
	if !ok {
		return
	}

	p := service.SessionParams{
		Name:        req.Name,
		DisplayUnit: req.DisplayUnit,
	}
	if req.TargetTemp != nil {
		v := display.FromDisplay(*req.TargetTemp, u)
		p.TargetTemp = &v
	}
	if req.ServeTime != nil {
		if *req.ServeTime == "" {
			p.ClearServe = true
		} else {
			t, err := parseQueryTime(*req.ServeTime)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			p.ServeTime = &t
		}
	}
	if req.Settings != nil {
		p.Settings = settingsPatch(*req.Settings, u)
	}

	sess, err := h.services.Sessions.Configure(c.Request.Context(), p)
	if err != nil {
		h.serviceError(c, "failed to update session", "session_update_failed", err)
		return
	}
	c.JSON(http.StatusOK, display.NewSession(sess))
}

// @Summary      Reset session
// @Description  Clears readings and oven events; target, serve time and settings are kept
// @Tags         session
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "status, session"
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/session/reset [post]
// @Security     BearerAuth
func (h *Handler) resetSession(c *gin.Context) {
	sess, err := h.services.Sessions.Reset(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to reset session", "session_reset_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusReset, "session": display.NewSession(sess)})
}

func settingsPatch(r SettingsRequest, u display.Unit) *service.SettingsPatch {
	temp := func(v *float64) *float64 {
		if v == nil {
			return nil
		}
		out := display.FromDisplay(*v, u)
		return &out
	}
	delta := func(v *float64) *float64 {
		if v == nil {
			return nil
		}
		out := display.DeltaFromDisplay(*v, u)
		return &out
	}
	return &service.SettingsPatch{
		SmoothingWindow:              r.SmoothingWindow,
		MinReadingsForRecommendation: r.MinReadingsForRecommendation,
		MinTimeSpanMinutes:           r.MinTimeSpanMinutes,
		OnTrackThresholdMinutes:      r.OnTrackThresholdMinutes,
		StepSize:                     delta(r.StepSize),
		MaxStepSize:                  delta(r.MaxStepSize),
		OvenTempMin:                  temp(r.OvenTempMin),
		OvenTempMax:                  temp(r.OvenTempMax),
		OvenTempStaleMinutes:         r.OvenTempStaleMinutes,
	}
}
