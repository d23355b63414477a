package display

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roast_advisor/internal/engine"
	"roast_advisor/internal/models"
)

func f(v float64) *float64 { return &v }
func i(v int) *int         { return &v }

func TestParseUnit(t *testing.T) {
	for in, want := range map[string]Unit{"": Fahrenheit, "f": Fahrenheit, "°C": Celsius, " celsius ": Celsius} {
		got, err := ParseUnit(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseUnit("K")
	assert.ErrorIs(t, err, ErrUnknownUnit)
}

func TestConversions(t *testing.T) {
	assert.Equal(t, 100.0, ToDisplay(212, Celsius))
	assert.Equal(t, 212.0, ToDisplay(212, Fahrenheit))
	assert.Equal(t, 212.0, FromDisplay(100, Celsius))
	assert.Equal(t, 10.0, DeltaToDisplay(18, Celsius))
}

func TestRender(t *testing.T) {
	p := engine.MessageParams{SuggestedTemp: f(266), OvenTemp: f(248), ChangeAmount: f(18), VarianceMinutes: i(20)}

	assert.Equal(t, "Running late. Raise the oven to 266°F (+18°F).", Render(engine.MsgRaiseModerate, p, Fahrenheit))
	assert.Equal(t, "Running late. Raise the oven to 130°C (+10°C).", Render(engine.MsgRaiseModerate, p, Celsius))
	assert.Equal(t, "On track. Keep the oven at 120°C.", Render(engine.MsgHoldOnTrack, p, Celsius))
	assert.Empty(t, Render("NOPE", p, Fahrenheit))
	assert.Contains(t, Render(engine.MsgOvenOffRestart, engine.MessageParams{SuggestedTemp: f(250)}, Fahrenheit), "off for ? min")
}

func TestRenderFeedback(t *testing.T) {
	res := &engine.Responsiveness{Feedback: engine.FeedbackHigherIsFaster, RatePerStep: 9}
	assert.Equal(t, "Higher oven temp increases rate, roughly 9°F/hr per 25°F oven increase.", RenderFeedback(res, Fahrenheit))
	assert.Equal(t, "Higher oven temp increases rate, roughly 5°C/hr per 13.9°C oven increase.", RenderFeedback(res, Celsius))
	assert.Empty(t, RenderFeedback(nil, Fahrenheit))
}

func TestNewAdvice(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	res := engine.Result{
		Calculation: engine.Calculation{
			CurrentTemp: f(140),
			Rate:        engine.RateResult{Rate: f(9), R2: 0.98, SampleCount: 3},
			Schedule:    engine.ScheduleVariance{Status: engine.StatusLate, VarianceMinutes: i(20)},
		},
		Recommendation: engine.Recommendation{
			Action:        engine.ActionRaise,
			SuggestedTemp: f(266),
			ChangeAmount:  f(18),
			MessageKey:    engine.MsgRaiseModerate,
			MessageParams: engine.MessageParams{SuggestedTemp: f(266), ChangeAmount: f(18)},
			Severity:      engine.SeverityModerate,
			CanRecommend:  true,
		},
	}

	adv := NewAdvice(res, 203, nil, now, Celsius)
	assert.Equal(t, 60.0, *adv.CurrentTemp)
	assert.Equal(t, 95.0, adv.TargetTemp)
	assert.Equal(t, 5.0, *adv.Rate)
	assert.Nil(t, adv.AverageRate)
	assert.Equal(t, engine.StatusLate, adv.ScheduleStatus)
	assert.Equal(t, 130.0, *adv.Recommendation.SuggestedTemp)
	assert.Equal(t, 10.0, *adv.Recommendation.ChangeAmount)
	assert.Equal(t, "Running late. Raise the oven to 130°C (+10°C).", adv.Recommendation.Message)
}

func TestNewResponsiveness(t *testing.T) {
	assert.Nil(t, NewResponsiveness(nil, Celsius))

	v := NewResponsiveness(&engine.Responsiveness{
		Segments: []engine.Segment{{OvenTemp: 212, HeatingRate: 18, Duration: 60, ReadingCount: 3}},
		Feedback: engine.FeedbackLimitedEffect,
	}, Celsius)
	require.NotNil(t, v)
	assert.Equal(t, 100.0, v.Segments[0].OvenTemp)
	assert.Equal(t, 10.0, v.Segments[0].HeatingRate)
	assert.NotEmpty(t, v.Feedback)
}

func TestNewReadingsAndOvenEvents(t *testing.T) {
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	rv := NewReadings([]models.Reading{
		{ID: "a", Temp: 212, Timestamp: at},
		{ID: "b", Temp: 221, Timestamp: at.Add(time.Hour), DeltaFromStart: f(9), DeltaFromPrevious: f(9)},
	}, Celsius)
	require.Len(t, rv, 2)
	assert.Equal(t, 100.0, rv[0].Temp)
	assert.Nil(t, rv[0].DeltaFromStart)
	assert.Equal(t, 5.0, *rv[1].DeltaFromPrevious)

	ev := NewOvenEvents([]models.OvenEvent{
		{ID: "e1", SetTemp: 257, Timestamp: at},
		{ID: "e2", IsOff: true, PreviousTemp: f(257), Timestamp: at.Add(time.Hour)},
	}, Celsius)
	require.Len(t, ev, 2)
	assert.Equal(t, 125.0, *ev[0].SetTemp)
	assert.Nil(t, ev[1].SetTemp, "off events carry no set temp")
	assert.Equal(t, 125.0, *ev[1].PreviousTemp)
}

func TestNewSession(t *testing.T) {
	s := models.Session{TargetTemp: 203, DisplayUnit: "C", Settings: models.DefaultSettings()}
	v := NewSession(s)

	assert.Equal(t, Celsius, v.DisplayUnit)
	assert.Equal(t, 95.0, v.TargetTemp)
	assert.Equal(t, 5.6, v.Settings.StepSize)
	assert.Equal(t, 76.7, v.Settings.OvenTempMin)
	assert.Equal(t, 120.0, v.Settings.OvenTempStaleMinutes)

	assert.Equal(t, Fahrenheit, NewSession(models.Session{DisplayUnit: "bogus"}).DisplayUnit)
	assert.Equal(t, 18.0, DeltaFromDisplay(10, Celsius))
}
