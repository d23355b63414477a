package engine

import (
	"fmt"
	"math"
	"time"

	"roast_advisor/internal/models"
)

const (
	urgentLateMinutes   = 30
	moderateLateMinutes = 15
	urgentStepFactor    = 2.5
	moderateStepFactor  = 1.5
)

// Recommendation is the advisor's answer for the current snapshot.
type Recommendation struct {
	Action                   Action        `json:"action"`
	SuggestedTemp            *float64      `json:"suggested_temp"`
	ChangeAmount             *float64      `json:"change_amount"` // signed, negative when lowering
	MessageKey               MessageKey    `json:"message_key,omitempty"`
	MessageParams            MessageParams `json:"message_params"`
	Reasoning                string        `json:"reasoning,omitempty"`
	Severity                 Severity      `json:"severity"`
	CanRecommend             bool          `json:"can_recommend"`
	BlockerReason            string        `json:"blocker_reason,omitempty"`
	BlockerType              BlockerType   `json:"blocker_type,omitempty"`
	Progress                 *Progress     `json:"progress,omitempty"`
	ShouldRestartNow         bool          `json:"should_restart_now"`
	EstimatedCurrentMeatTemp *float64      `json:"estimated_current_meat_temp,omitempty"`
}

// OvenState is the oven as described by the latest event.
type OvenState struct {
	Known       bool
	CurrentTemp float64 // current set-point, 0 when off
	IsOff       bool
	LastOnTemp  *float64   // most recent on set-point
	OffSince    *time.Time // set when IsOff
}

// CurrentOvenState derives the oven state from the ordered event list.
func CurrentOvenState(events []models.OvenEvent) OvenState {
	if len(events) == 0 {
		return OvenState{}
	}
	last := events[len(events)-1]
	st := OvenState{Known: true, IsOff: last.IsOff}
	if !last.IsOff {
		st.CurrentTemp = last.SetTemp
		st.LastOnTemp = floatPtr(last.SetTemp)
		return st
	}
	at := last.Timestamp
	st.OffSince = &at
	for i := len(events) - 1; i >= 0; i-- {
		if !events[i].IsOff {
			st.LastOnTemp = floatPtr(events[i].SetTemp)
			return st
		}
	}
	if last.PreviousTemp != nil {
		st.LastOnTemp = floatPtr(*last.PreviousTemp)
	}
	return st
}

// ActionInput is what the action calculator needs once the gate has passed.
type ActionInput struct {
	Schedule ScheduleVariance
	Oven     OvenState
	Settings models.Settings
	Now      time.Time
}

// CalculateAction proposes a bounded oven adjustment for an eligible snapshot.
func CalculateAction(in ActionInput) Recommendation {
	if in.Oven.IsOff {
		return ovenOffAction(in)
	}
	current := in.Oven.CurrentTemp
	switch in.Schedule.Status {
	case StatusOnTrack:
		return Recommendation{
			Action:        ActionHold,
			SuggestedTemp: floatPtr(current),
			ChangeAmount:  floatPtr(0),
			MessageKey:    MsgHoldOnTrack,
			MessageParams: MessageParams{OvenTemp: floatPtr(current), VarianceMinutes: in.Schedule.VarianceMinutes},
			Reasoning:     onTrackReasoning(in.Schedule),
			Severity:      SeverityNormal,
		}
	case StatusLate:
		return raiseAction(in)
	case StatusEarly:
		return lowerAction(in)
	default:
		return Recommendation{
			Action:     ActionNone,
			MessageKey: MsgUnknownSchedule,
			Reasoning:  "Cannot compare the predicted finish with the serve time yet",
			Severity:   SeverityUnknown,
		}
	}
}

type stepTier struct {
	step     float64
	severity Severity
	tier     int // 0 small, 1 moderate, 2 urgent
}

// tieredStep scales the base step with how far off schedule the roast is.
func tieredStep(minutesOff int, s models.Settings) stepTier {
	off := int(math.Abs(float64(minutesOff)))
	switch {
	case off > urgentLateMinutes:
		return stepTier{math.Min(s.StepSize*urgentStepFactor, s.MaxStepSize), SeverityUrgent, 2}
	case off >= moderateLateMinutes:
		return stepTier{math.Min(s.StepSize*moderateStepFactor, s.MaxStepSize), SeverityModerate, 1}
	default:
		return stepTier{math.Min(s.StepSize, s.MaxStepSize), SeverityNormal, 0}
	}
}

func raiseAction(in ActionInput) Recommendation {
	current := in.Oven.CurrentTemp
	minutes := varianceOf(in.Schedule)
	t := tieredStep(minutes, in.Settings)
	proposed := math.Min(current+t.step, in.Settings.OvenTempMax)
	change := roundTo(proposed-current, 1)

	if change <= 0 {
		return Recommendation{
			Action:        ActionHold,
			SuggestedTemp: floatPtr(current),
			ChangeAmount:  floatPtr(0),
			MessageKey:    MsgAtCeiling,
			MessageParams: MessageParams{OvenTemp: floatPtr(current), VarianceMinutes: intPtr(minutes)},
			Reasoning: fmt.Sprintf("Running approximately %d minutes late, but the oven is already at its maximum; "+
				"consider moving the serve time", minutes),
			Severity: SeverityWarning,
		}
	}

	proposed = roundTo(proposed, 1)
	return Recommendation{
		Action:        ActionRaise,
		SuggestedTemp: floatPtr(proposed),
		ChangeAmount:  floatPtr(change),
		MessageKey:    [...]MessageKey{MsgRaiseSmall, MsgRaiseModerate, MsgRaiseUrgent}[t.tier],
		MessageParams: MessageParams{
			SuggestedTemp:   floatPtr(proposed),
			OvenTemp:        floatPtr(current),
			ChangeAmount:    floatPtr(change),
			VarianceMinutes: intPtr(minutes),
		},
		Reasoning: fmt.Sprintf("Running approximately %d minutes late at the current heating rate", minutes),
		Severity:  t.severity,
	}
}

func lowerAction(in ActionInput) Recommendation {
	current := in.Oven.CurrentTemp
	minutes := varianceOf(in.Schedule)
	early := -minutes
	t := tieredStep(minutes, in.Settings)
	proposed := math.Max(current-t.step, in.Settings.OvenTempMin)
	change := roundTo(proposed-current, 1)

	if change >= 0 {
		return Recommendation{
			Action:        ActionHold,
			SuggestedTemp: floatPtr(current),
			ChangeAmount:  floatPtr(0),
			MessageKey:    MsgAtFloor,
			MessageParams: MessageParams{OvenTemp: floatPtr(current), VarianceMinutes: intPtr(minutes)},
			Reasoning: fmt.Sprintf("Running approximately %d minutes early, but the oven is already at its minimum; "+
				"the roast can rest once done", early),
			Severity: SeverityInfo,
		}
	}

	proposed = roundTo(proposed, 1)
	return Recommendation{
		Action:        ActionLower,
		SuggestedTemp: floatPtr(proposed),
		ChangeAmount:  floatPtr(change),
		MessageKey:    [...]MessageKey{MsgLowerSmall, MsgLowerModerate, MsgLowerUrgent}[t.tier],
		MessageParams: MessageParams{
			SuggestedTemp:   floatPtr(proposed),
			OvenTemp:        floatPtr(current),
			ChangeAmount:    floatPtr(change),
			VarianceMinutes: intPtr(minutes),
		},
		Reasoning: fmt.Sprintf("Running approximately %d minutes early at the current heating rate", early),
		Severity:  t.severity,
	}
}

// ovenOffAction decides whether to restart an oven that was switched off.
func ovenOffAction(in ActionInput) Recommendation {
	s := in.Settings
	var sinceOff *int
	if in.Oven.OffSince != nil {
		sinceOff = intPtr(int(math.Round(MinutesBetween(*in.Oven.OffSince, in.Now))))
	}

	if in.Schedule.Status == StatusEarly {
		minutes := varianceOf(in.Schedule)
		return Recommendation{
			Action:        ActionHold,
			MessageKey:    MsgOvenOffCoast,
			MessageParams: MessageParams{VarianceMinutes: intPtr(minutes), MinutesSinceOff: sinceOff},
			Reasoning:     fmt.Sprintf("Running approximately %d minutes early; the roast can coast with the oven off", -minutes),
			Severity:      SeverityInfo,
		}
	}

	base := s.OvenTempMin
	if in.Oven.LastOnTemp != nil {
		base = *in.Oven.LastOnTemp
	}
	restart := base
	severity := SeverityNormal
	reasoning := "The oven is off and the roast will not reach the target without heat"
	if in.Schedule.Status == StatusLate {
		minutes := varianceOf(in.Schedule)
		t := tieredStep(minutes, s)
		restart += t.step
		severity = t.severity
		reasoning = fmt.Sprintf("The oven is off and the roast is running approximately %d minutes late", minutes)
	}
	restart = roundTo(math.Min(math.Max(restart, s.OvenTempMin), s.OvenTempMax), 1)
	change := roundTo(restart-base, 1)

	return Recommendation{
		Action:        ActionRaise,
		SuggestedTemp: floatPtr(restart),
		ChangeAmount:  floatPtr(change),
		MessageKey:    MsgOvenOffRestart,
		MessageParams: MessageParams{
			SuggestedTemp:   floatPtr(restart),
			OvenTemp:        floatPtr(base),
			ChangeAmount:    floatPtr(change),
			VarianceMinutes: in.Schedule.VarianceMinutes,
			MinutesSinceOff: sinceOff,
		},
		Reasoning:        reasoning,
		Severity:         severity,
		ShouldRestartNow: true,
	}
}

func varianceOf(v ScheduleVariance) int {
	if v.VarianceMinutes == nil {
		return 0
	}
	return *v.VarianceMinutes
}

func onTrackReasoning(v ScheduleVariance) string {
	m := varianceOf(v)
	switch {
	case m > 0:
		return fmt.Sprintf("On track: predicted finish is %d minutes after the serve time, within tolerance", m)
	case m < 0:
		return fmt.Sprintf("On track: predicted finish is %d minutes before the serve time, within tolerance", -m)
	default:
		return "On track: predicted finish matches the serve time"
	}
}

// RecommendationInput is the full input of the two-stage recommender.
type RecommendationInput struct {
	Readings   []models.Reading
	OvenEvents []models.OvenEvent
	Settings   models.Settings
	Confidence Confidence
	Schedule   ScheduleVariance
	Rate       *float64
	ServeTime  *time.Time
	Now        time.Time
}

// GenerateRecommendation runs the eligibility gate and, only if it passes,
// the action calculator.
func GenerateRecommendation(in RecommendationInput) Recommendation {
	el := CheckEligibility(EligibilityInput{
		Readings:   in.Readings,
		OvenEvents: in.OvenEvents,
		Settings:   in.Settings,
		Confidence: in.Confidence,
		ServeTime:  in.ServeTime,
		Now:        in.Now,
	})
	if !el.CanRecommend {
		return Recommendation{
			Action:        ActionNone,
			Severity:      SeverityInfo,
			BlockerType:   el.BlockerType,
			BlockerReason: el.BlockerReason,
			Progress:      el.Progress,
		}
	}

	oven := CurrentOvenState(in.OvenEvents)
	rec := CalculateAction(ActionInput{
		Schedule: in.Schedule,
		Oven:     oven,
		Settings: in.Settings,
		Now:      in.Now,
	})
	rec.CanRecommend = true

	if oven.IsOff && in.Rate != nil && len(in.Readings) > 0 {
		last := in.Readings[len(in.Readings)-1]
		est := roundTo(last.Temp+*in.Rate*HoursBetween(last.Timestamp, in.Now), 1)
		rec.EstimatedCurrentMeatTemp = floatPtr(est)
		rec.MessageParams.EstimatedMeatTemp = floatPtr(est)
	}
	return rec
}
