package agecalc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEstimateLifeCalendar(t *testing.T) {
	cal := EstimateLifeCalendar(40, 80)
	require.Equal(t, 2085, cal.WeeksLived)
	require.Equal(t, 2086, cal.WeeksRemaining)
	require.Equal(t, 50.0, cal.PercentageLived)
	require.Equal(t, 80, cal.LifeExpectancy)
}

func TestEstimateLifeCalendarDefaultsExpectancy(t *testing.T) {
	cal := EstimateLifeCalendar(20, 0)
	require.Equal(t, DefaultLifeExpectancy, cal.LifeExpectancy)
	require.Equal(t, 1042, cal.WeeksLived)
	require.Equal(t, 25.0, cal.PercentageLived)
}

func TestEstimateLifeCalendarDegenerateInputs(t *testing.T) {
	for _, years := range []float64{-1, 95} {
		cal := EstimateLifeCalendar(years, 80)
		require.Zero(t, cal.WeeksLived)
		require.Zero(t, cal.WeeksRemaining)
		require.Zero(t, cal.PercentageLived)
		require.Equal(t, 80, cal.LifeExpectancy)
	}
}

func TestEstimateLifeCalendarNewborn(t *testing.T) {
	for _, years := range []float64{0, math.NaN()} {
		cal := EstimateLifeCalendar(years, 80)
		require.Zero(t, cal.WeeksLived)
		require.Equal(t, 4171, cal.WeeksRemaining)
		require.Zero(t, cal.PercentageLived)
	}
}
