package display

import (
	"time"

	"roast_advisor/internal/engine"
)

// Advice is the advisor result as shown to a client, in one display unit.
type Advice struct {
	Unit            Unit                  `json:"unit"`
	GeneratedAt     time.Time             `json:"generated_at"`
	CurrentTemp     *float64              `json:"current_temp"`
	TargetTemp      float64               `json:"target_temp"`
	Rate            *float64              `json:"rate"` // per hour
	AverageRate     *float64              `json:"average_rate"`
	R2              float64               `json:"r2"`
	SampleCount     int                   `json:"sample_count"`
	ElapsedMinutes  float64               `json:"elapsed_minutes"`
	Confidence      engine.Confidence     `json:"confidence"`
	MinutesToTarget *int                  `json:"minutes_to_target"`
	TargetTime      *time.Time            `json:"target_time"`
	ServeTime       *time.Time            `json:"serve_time"`
	VarianceMinutes *int                  `json:"variance_minutes"`
	ScheduleStatus  engine.ScheduleStatus `json:"schedule_status"`
	Recommendation  RecommendationView    `json:"recommendation"`
}

// RecommendationView is a rendered engine.Recommendation.
type RecommendationView struct {
	Action                   engine.Action      `json:"action"`
	SuggestedTemp            *float64           `json:"suggested_temp"`
	ChangeAmount             *float64           `json:"change_amount"`
	MessageKey               engine.MessageKey  `json:"message_key,omitempty"`
	Message                  string             `json:"message,omitempty"`
	Reasoning                string             `json:"reasoning,omitempty"`
	Severity                 engine.Severity    `json:"severity"`
	CanRecommend             bool               `json:"can_recommend"`
	BlockerType              engine.BlockerType `json:"blocker_type,omitempty"`
	BlockerReason            string             `json:"blocker_reason,omitempty"`
	Progress                 *engine.Progress   `json:"progress,omitempty"`
	ShouldRestartNow         bool               `json:"should_restart_now"`
	EstimatedCurrentMeatTemp *float64           `json:"estimated_current_meat_temp,omitempty"`
}

// SegmentView is one responsiveness segment in display units.
type SegmentView struct {
	OvenTemp     float64 `json:"oven_temp"`
	HeatingRate  float64 `json:"heating_rate"`
	Duration     float64 `json:"duration_minutes"`
	ReadingCount int     `json:"reading_count"`
}

// ResponsivenessView is a rendered engine.Responsiveness.
type ResponsivenessView struct {
	Segments       []SegmentView `json:"segments"`
	Correlation    float64       `json:"correlation"`
	Responsiveness float64       `json:"responsiveness"`
	Feedback       string        `json:"feedback"`
}

// NewAdvice converts an advisor pass into display unit u.
func NewAdvice(res engine.Result, targetTempF float64, serve *time.Time, now time.Time, u Unit) Advice {
	calc := res.Calculation
	rec := res.Recommendation
	return Advice{
		Unit:            u,
		GeneratedAt:     now.UTC(),
		CurrentTemp:     tempPtr(calc.CurrentTemp, u),
		TargetTemp:      ToDisplay(targetTempF, u),
		Rate:            deltaPtr(calc.Rate.Rate, u),
		AverageRate:     deltaPtr(calc.AverageRate, u),
		R2:              calc.Rate.R2,
		SampleCount:     calc.Rate.SampleCount,
		ElapsedMinutes:  calc.ElapsedMinutes,
		Confidence:      calc.Confidence,
		MinutesToTarget: calc.Prediction.Minutes,
		TargetTime:      calc.Prediction.TargetTime,
		ServeTime:       serve,
		VarianceMinutes: calc.Schedule.VarianceMinutes,
		ScheduleStatus:  calc.Schedule.Status,
		Recommendation: RecommendationView{
			Action:                   rec.Action,
			SuggestedTemp:            tempPtr(rec.SuggestedTemp, u),
			ChangeAmount:             deltaPtr(rec.ChangeAmount, u),
			MessageKey:               rec.MessageKey,
			Message:                  Render(rec.MessageKey, rec.MessageParams, u),
			Reasoning:                rec.Reasoning,
			Severity:                 rec.Severity,
			CanRecommend:             rec.CanRecommend,
			BlockerType:              rec.BlockerType,
			BlockerReason:            rec.BlockerReason,
			Progress:                 rec.Progress,
			ShouldRestartNow:         rec.ShouldRestartNow,
			EstimatedCurrentMeatTemp: tempPtr(rec.EstimatedCurrentMeatTemp, u),
		},
	}
}

// NewResponsiveness converts a responsiveness analysis; nil stays nil.
func NewResponsiveness(res *engine.Responsiveness, u Unit) *ResponsivenessView {
	if res == nil {
		return nil
	}
	segs := make([]SegmentView, len(res.Segments))
	for i, s := range res.Segments {
		segs[i] = SegmentView{
			OvenTemp:     ToDisplay(s.OvenTemp, u),
			HeatingRate:  DeltaToDisplay(s.HeatingRate, u),
			Duration:     s.Duration,
			ReadingCount: s.ReadingCount,
		}
	}
	return &ResponsivenessView{
		Segments:       segs,
		Correlation:    res.Correlation,
		Responsiveness: res.Responsiveness,
		Feedback:       RenderFeedback(res, u),
	}
}

func tempPtr(v *float64, u Unit) *float64 {
	if v == nil {
		return nil
	}
	out := ToDisplay(*v, u)
	return &out
}

func deltaPtr(v *float64, u Unit) *float64 {
	if v == nil {
		return nil
	}
	out := DeltaToDisplay(*v, u)
	return &out
}
