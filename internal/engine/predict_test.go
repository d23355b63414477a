package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredictTimeToTarget(t *testing.T) {
	now := at(0)
	five, zero := 5.0, 0.0

	p := PredictTimeToTarget(100, 125, &five, now)
	require.NotNil(t, p.Minutes)
	assert.Equal(t, 300, *p.Minutes)
	assert.Equal(t, at(300), *p.TargetTime)

	p = PredictTimeToTarget(130, 125, &five, now)
	require.NotNil(t, p.Minutes)
	assert.Equal(t, 0, *p.Minutes)
	assert.Equal(t, now, *p.TargetTime)

	p = PredictTimeToTarget(100, 125, &zero, now)
	assert.Nil(t, p.Minutes)
	assert.Nil(t, p.TargetTime)

	p = PredictTimeToTarget(100, 125, nil, now)
	assert.Nil(t, p.Minutes)
	assert.Nil(t, p.TargetTime)
}

func TestPredictTimeToTarget_ReachedWithoutRate(t *testing.T) {
	p := PredictTimeToTarget(125, 125, nil, at(0))
	require.NotNil(t, p.Minutes)
	assert.Equal(t, 0, *p.Minutes)
}
