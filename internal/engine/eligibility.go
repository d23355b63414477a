package engine

import (
	"fmt"
	"math"
	"time"

	"roast_advisor/internal/models"
)

// BlockerType names the first eligibility check that failed.
type BlockerType string

const (
	BlockerInsufficientReadings   BlockerType = "insufficient_readings"
	BlockerInsufficientTime       BlockerType = "insufficient_time"
	BlockerNoOvenData             BlockerType = "no_oven_data"
	BlockerStaleOvenData          BlockerType = "stale_oven_data"
	BlockerInsufficientConfidence BlockerType = "insufficient_confidence"
	BlockerNoServeTime            BlockerType = "no_serve_time"
	BlockerBadRate                BlockerType = "bad_rate"
	BlockerUnstableRate           BlockerType = "unstable_rate"
)

// Progress tells the cook how far they are from clearing a blocker.
type Progress struct {
	Current  float64 `json:"current"`
	Required float64 `json:"required"`
	Message  string  `json:"message"`
}

// Eligibility is the outcome of the gate that runs before any numeric advice.
type Eligibility struct {
	CanRecommend  bool        `json:"can_recommend"`
	BlockerType   BlockerType `json:"blocker_type,omitempty"`
	BlockerReason string      `json:"blocker_reason,omitempty"`
	Progress      *Progress   `json:"progress,omitempty"`
}

// EligibilityInput is everything the gate looks at.
type EligibilityInput struct {
	Readings   []models.Reading
	OvenEvents []models.OvenEvent
	Settings   models.Settings
	Confidence Confidence
	ServeTime  *time.Time
	Now        time.Time
}

// CheckEligibility evaluates the preconditions in priority order and
// reports the first one that fails.
func CheckEligibility(in EligibilityInput) Eligibility {
	s := in.Settings

	if have, need := len(in.Readings), s.MinReadingsForRecommendation; have < need {
		missing := need - have
		return blocked(BlockerInsufficientReadings,
			fmt.Sprintf("Need at least %d readings before recommending (have %d)", need, have),
			&Progress{
				Current:  float64(have),
				Required: float64(need),
				Message:  fmt.Sprintf("need %d more %s", missing, plural(missing, "reading", "readings")),
			})
	}

	if span := ElapsedMinutes(in.Readings); span < s.MinTimeSpanMinutes {
		missing := int(math.Ceil(s.MinTimeSpanMinutes - span))
		return blocked(BlockerInsufficientTime,
			fmt.Sprintf("Readings need to cover at least %.0f minutes (currently %.0f)", s.MinTimeSpanMinutes, span),
			&Progress{
				Current:  math.Round(span),
				Required: s.MinTimeSpanMinutes,
				Message:  fmt.Sprintf("%d more %s of readings needed", missing, plural(missing, "minute", "minutes")),
			})
	}

	if len(in.OvenEvents) == 0 {
		return blocked(BlockerNoOvenData, "Log the oven set temperature to get recommendations", nil)
	}

	last := in.OvenEvents[len(in.OvenEvents)-1]
	if age := MinutesBetween(last.Timestamp, in.Now); age > s.OvenTempStaleMinutes {
		return blocked(BlockerStaleOvenData,
			fmt.Sprintf("Oven temperature was last logged %.0f minutes ago; confirm the current setting", age),
			&Progress{
				Current:  math.Round(age),
				Required: s.OvenTempStaleMinutes,
				Message:  fmt.Sprintf("oven data is %.0f minutes old (limit %.0f)", age, s.OvenTempStaleMinutes),
			})
	}

	if in.Confidence.Level == LevelInsufficient {
		return blocked(BlockerInsufficientConfidence, in.Confidence.Reason, nil)
	}

	if in.ServeTime == nil {
		return blocked(BlockerNoServeTime, "Set a desired serve time to get recommendations", nil)
	}

	// A falling or flat rate is expected while the oven is off.
	if !last.IsOff && in.Confidence.Level == LevelLow {
		switch in.Confidence.Code {
		case ReasonRateTooLow:
			return blocked(BlockerBadRate,
				"The roast is barely heating or cooling; check the probe and oven before adjusting", nil)
		case ReasonRateUnstable:
			return blocked(BlockerUnstableRate,
				"Readings are fluctuating too much to trust the trend; keep logging", nil)
		}
	}

	return Eligibility{CanRecommend: true}
}

func blocked(t BlockerType, reason string, p *Progress) Eligibility {
	return Eligibility{BlockerType: t, BlockerReason: reason, Progress: p}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
