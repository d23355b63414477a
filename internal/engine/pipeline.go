package engine

import (
	"sort"
	"time"

	"roast_advisor/internal/models"
)

// Snapshot is the complete input of one advisor pass.
type Snapshot struct {
	Readings   []models.Reading
	OvenEvents []models.OvenEvent
	Settings   models.Settings
	TargetTemp float64
	ServeTime  *time.Time
	Now        time.Time
}

// Calculation groups the derived rate, confidence and schedule values.
type Calculation struct {
	CurrentTemp    *float64         `json:"current_temp"`
	ElapsedMinutes float64          `json:"elapsed_minutes"`
	Rate           RateResult       `json:"rate"`
	AverageRate    *float64         `json:"average_rate"`
	Confidence     Confidence       `json:"confidence"`
	Prediction     Prediction       `json:"prediction"`
	Schedule       ScheduleVariance `json:"schedule"`
}

// Result is everything a pass produces.
type Result struct {
	Calculation    Calculation     `json:"calculation"`
	Recommendation Recommendation  `json:"recommendation"`
	Responsiveness *Responsiveness `json:"responsiveness"`
}

// Run executes rate -> confidence -> prediction -> variance -> recommendation,
// plus the independent responsiveness analysis.
func Run(s Snapshot) Result {
	rate := EstimateCurrentRate(s.Readings, s.Settings.SmoothingWindow)
	elapsed := ElapsedMinutes(s.Readings)
	conf := AssessConfidence(ConfidenceInput{
		ReadingCount:    len(s.Readings),
		TimeSpanMinutes: elapsed,
		R2:              rate.R2,
		Rate:            rate.Rate,
	})

	calc := Calculation{
		ElapsedMinutes: roundTo(elapsed, 1),
		Rate:           rate,
		AverageRate:    EstimateAverageRate(s.Readings),
		Confidence:     conf,
		Schedule:       ScheduleVariance{Status: StatusUnknown},
	}
	if n := len(s.Readings); n > 0 {
		current := s.Readings[n-1].Temp
		calc.CurrentTemp = floatPtr(current)
		calc.Prediction = PredictTimeToTarget(current, s.TargetTemp, rate.Rate, s.Now)
		calc.Schedule = ClassifySchedule(calc.Prediction.TargetTime, s.ServeTime, s.Settings.OnTrackThresholdMinutes)
	}

	rec := GenerateRecommendation(RecommendationInput{
		Readings:   s.Readings,
		OvenEvents: s.OvenEvents,
		Settings:   s.Settings,
		Confidence: conf,
		Schedule:   calc.Schedule,
		Rate:       rate.Rate,
		ServeTime:  s.ServeTime,
		Now:        s.Now,
	})

	return Result{
		Calculation:    calc,
		Recommendation: rec,
		Responsiveness: AnalyzeResponsiveness(s.Readings, s.OvenEvents),
	}
}

// RecomputeDeltas returns a copy of readings ordered by time with
// DeltaFromStart and DeltaFromPrevious rebuilt over the whole list.
func RecomputeDeltas(readings []models.Reading) []models.Reading {
	out := make([]models.Reading, len(readings))
	copy(out, readings)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	for i := range out {
		if i == 0 {
			out[i].DeltaFromStart = nil
			out[i].DeltaFromPrevious = nil
			continue
		}
		out[i].DeltaFromStart = floatPtr(roundTo(out[i].Temp-out[0].Temp, 1))
		out[i].DeltaFromPrevious = floatPtr(roundTo(out[i].Temp-out[i-1].Temp, 1))
	}
	return out
}
