package display

import (
	"fmt"
	"strconv"
	"strings"

	"roast_advisor/internal/engine"
)

var templates = map[engine.MessageKey]string{
	engine.MsgHoldOnTrack:     "On track. Keep the oven at {ovenTemp}.",
	engine.MsgRaiseSmall:      "Running a little late. Raise the oven to {suggestedTemp} (+{changeAmount}).",
	engine.MsgRaiseModerate:   "Running late. Raise the oven to {suggestedTemp} (+{changeAmount}).",
	engine.MsgRaiseUrgent:     "Running well behind ({minutes} min). Raise the oven to {suggestedTemp} now.",
	engine.MsgAtCeiling:       "Running {minutes} min late but the oven is already at {ovenTemp}, its maximum. Consider a later serve time.",
	engine.MsgLowerSmall:      "Running a little early. Lower the oven to {suggestedTemp} ({changeAmount}).",
	engine.MsgLowerModerate:   "Running early. Lower the oven to {suggestedTemp} ({changeAmount}).",
	engine.MsgLowerUrgent:     "Running well ahead ({minutes} min). Lower the oven to {suggestedTemp}.",
	engine.MsgAtFloor:         "Running early but the oven is already at {ovenTemp}, its minimum. The roast can rest once done.",
	engine.MsgOvenOffRestart:  "The oven has been off for {minutesSinceOff} min (meat about {estimatedMeatTemp}). Turn it back on at {suggestedTemp}.",
	engine.MsgOvenOffCoast:    "Running early. Leave the oven off for now (meat about {estimatedMeatTemp}).",
	engine.MsgUnknownSchedule: "Keep logging readings to compare against the serve time.",
}

var feedbackTemplates = map[engine.FeedbackKey]string{
	engine.FeedbackLimitedEffect:  "Oven changes have had limited effect on the heating rate so far.",
	engine.FeedbackHigherIsFaster: "Higher oven temp increases rate, roughly {ratePerStep}/hr per {ovenStep} oven increase.",
	engine.FeedbackModerate:       "Moderate correlation between oven temperature and heating rate.",
}

// Render resolves the template for key with params in unit u. Unknown keys
// render as an empty string; missing values render as "?".
func Render(key engine.MessageKey, p engine.MessageParams, u Unit) string {
	tmpl, ok := templates[key]
	if !ok {
		return ""
	}
	r := strings.NewReplacer(
		"{suggestedTemp}", temp(p.SuggestedTemp, u),
		"{ovenTemp}", temp(p.OvenTemp, u),
		"{changeAmount}", delta(p.ChangeAmount, u),
		"{estimatedMeatTemp}", temp(p.EstimatedMeatTemp, u),
		"{minutes}", minutes(p.VarianceMinutes),
		"{minutesSinceOff}", minutes(p.MinutesSinceOff),
	)
	return r.Replace(tmpl)
}

// RenderFeedback resolves a responsiveness verdict in unit u.
func RenderFeedback(res *engine.Responsiveness, u Unit) string {
	if res == nil {
		return ""
	}
	tmpl, ok := feedbackTemplates[res.Feedback]
	if !ok {
		return ""
	}
	perStep := res.RatePerStep
	return strings.NewReplacer(
		"{ratePerStep}", delta(&perStep, u),
		"{ovenStep}", delta(floatPtr(25), u),
	).Replace(tmpl)
}

func temp(v *float64, u Unit) string {
	if v == nil {
		return "?"
	}
	return formatNumber(ToDisplay(*v, u)) + u.Symbol()
}

func delta(v *float64, u Unit) string {
	if v == nil {
		return "?"
	}
	return formatNumber(DeltaToDisplay(*v, u)) + u.Symbol()
}

func minutes(v *int) string {
	if v == nil {
		return "?"
	}
	m := *v
	if m < 0 {
		m = -m
	}
	return strconv.Itoa(m)
}

func formatNumber(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func floatPtr(v float64) *float64 { return &v }
