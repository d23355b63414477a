package engine

import (
	"math"
	"time"

	"roast_advisor/internal/models"
)

const (
	minResponsivenessEvents   = 2
	minResponsivenessReadings = 5
	thermalLagMinutes         = 15
	minSegmentHours           = 0.1
	minValidSegments          = 2
	weakCorrelation           = 0.3
	strongResponsiveness      = 0.1
	ovenStepReference         = 25
	zeroRange                 = 1e-9
)

// FeedbackKey is the qualitative responsiveness verdict.
type FeedbackKey string

const (
	FeedbackLimitedEffect  FeedbackKey = "LIMITED_EFFECT"
	FeedbackHigherIsFaster FeedbackKey = "HIGHER_OVEN_FASTER"
	FeedbackModerate       FeedbackKey = "MODERATE_CORRELATION"
)

// Segment is one oven set-point interval and the rate observed during it.
type Segment struct {
	OvenTemp     float64 `json:"oven_temp"`
	HeatingRate  float64 `json:"heating_rate"` // °/hour
	Duration     float64 `json:"duration"`     // minutes
	ReadingCount int     `json:"reading_count"`
}

// Responsiveness summarizes how the heating rate followed oven changes.
type Responsiveness struct {
	Segments       []Segment   `json:"segments"`
	Correlation    float64     `json:"correlation"`
	Responsiveness float64     `json:"responsiveness"` // °/hour of rate per ° of oven
	Feedback       FeedbackKey `json:"feedback"`
	RatePerStep    float64     `json:"rate_per_step"` // rate change per 25° oven increase
}

// AnalyzeResponsiveness correlates segment oven temperatures with segment
// heating rates. It returns nil when the history is too short to say anything.
func AnalyzeResponsiveness(readings []models.Reading, events []models.OvenEvent) *Responsiveness {
	if len(events) < minResponsivenessEvents || len(readings) < minResponsivenessReadings {
		return nil
	}

	lastReading := readings[len(readings)-1].Timestamp
	var segments []Segment
	for i, ev := range events {
		if ev.IsOff {
			continue
		}
		end := lastReading
		isLast := i == len(events)-1
		if !isLast {
			end = events[i+1].Timestamp
		}
		if seg, ok := buildSegment(readings, ev, end, isLast); ok {
			segments = append(segments, seg)
		}
	}
	if len(segments) < minValidSegments {
		return nil
	}

	ovens := make([]float64, len(segments))
	rates := make([]float64, len(segments))
	for i, s := range segments {
		ovens[i] = s.OvenTemp
		rates[i] = s.HeatingRate
	}

	corr := pearson(ovens, rates)
	resp := 0.0
	if ovenRange := spread(ovens); ovenRange > zeroRange {
		resp = spread(rates) / ovenRange
	}

	out := &Responsiveness{
		Segments:       segments,
		Correlation:    roundTo(corr, 3),
		Responsiveness: roundTo(resp, 3),
	}
	switch {
	case corr < weakCorrelation:
		out.Feedback = FeedbackLimitedEffect
	case resp > strongResponsiveness:
		out.Feedback = FeedbackHigherIsFaster
		out.RatePerStep = roundTo(resp*ovenStepReference, 1)
	default:
		out.Feedback = FeedbackModerate
	}
	return out
}

func buildSegment(readings []models.Reading, ev models.OvenEvent, end time.Time, inclusive bool) (Segment, bool) {
	settled := ev.Timestamp.Add(thermalLagMinutes * time.Minute)
	var in []models.Reading
	for _, r := range readings {
		if r.Timestamp.Before(settled) {
			continue
		}
		if r.Timestamp.After(end) || (!inclusive && r.Timestamp.Equal(end)) {
			continue
		}
		in = append(in, r)
	}
	if len(in) < 2 {
		return Segment{}, false
	}
	first, last := in[0], in[len(in)-1]
	hours := HoursBetween(first.Timestamp, last.Timestamp)
	if hours <= minSegmentHours {
		return Segment{}, false
	}
	return Segment{
		OvenTemp:     ev.SetTemp,
		HeatingRate:  roundTo((last.Temp-first.Temp)/hours, 2),
		Duration:     math.Round(MinutesBetween(ev.Timestamp, end)),
		ReadingCount: len(in),
	}, true
}

func pearson(xs, ys []float64) float64 {
	n := float64(len(xs))
	var mx, my float64
	for i := range xs {
		mx += xs[i]
		my += ys[i]
	}
	mx /= n
	my /= n
	var sxy, sxx, syy float64
	for i := range xs {
		dx, dy := xs[i]-mx, ys[i]-my
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}
	d := math.Sqrt(sxx * syy)
	if d < zeroRange {
		return 0
	}
	return sxy / d
}

func spread(vs []float64) float64 {
	lo, hi := vs[0], vs[0]
	for _, v := range vs[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return hi - lo
}
