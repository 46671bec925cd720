package tracker_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mallkiller3-ctrl/daily-health/internal/model"
	"github.com/mallkiller3-ctrl/daily-health/internal/tracker"
)

func TestBMIBandBoundaries(t *testing.T) {
	cases := []struct {
		weight float64
		want   tracker.BMICategory
	}{
		{73.9, tracker.BMIUnderweight},
		{74, tracker.BMINormal},
		{91.9, tracker.BMINormal},
		{92, tracker.BMIOverweight},
		{99.9, tracker.BMIOverweight},
		{100, tracker.BMIObese},
	}
	for _, tc := range cases {
		bmi := tracker.BMI(tc.weight, 200)
		assert.Equal(t, tc.want, tracker.ClassifyBMI(bmi), "weight %.1f bmi %.4f", tc.weight, bmi)
	}
	assert.Equal(t, 18.5, tracker.BMI(74, 200))
	assert.Equal(t, 0.0, tracker.BMI(80, 0))
	assert.Equal(t, "정상", tracker.BMINormal.Label())
}

func TestDosingInterval(t *testing.T) {
	now := time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)
	dose := func(date string) model.LogEntry {
		e := tracker.DefaultEntry(date, 80)
		e.MounjaroDose = true
		return e
	}

	status := tracker.DosingInterval([]model.LogEntry{dose("2026-10-10")}, now)
	assert.Equal(t, tracker.DoseOngoing, status.State)
	assert.Equal(t, 7, status.DaysSince)

	status = tracker.DosingInterval([]model.LogEntry{dose("2026-10-09")}, now)
	assert.Equal(t, tracker.DoseRedose, status.State)
	assert.Equal(t, 8, status.DaysSince)

	status = tracker.DosingInterval([]model.LogEntry{tracker.DefaultEntry("2026-10-16", 80)}, now)
	assert.Equal(t, tracker.DoseNoRecord, status.State)
	assert.Equal(t, "기록 없음", status.Label())

	status = tracker.DosingInterval([]model.LogEntry{dose("2026-10-01"), dose("2026-10-14"), tracker.DefaultEntry("2026-10-16", 80)}, now)
	assert.Equal(t, "2026-10-14", status.LastDoseDate)
	assert.Equal(t, 3, status.DaysSince)
}

func TestProgressToTarget(t *testing.T) {
	p := model.DefaultProfile()
	got := tracker.ProgressToTarget(p)
	assert.Equal(t, 10.0, got.RemainingKg)
	assert.InDelta(t, 12.5, got.Percent, 1e-9)

	p.CurrentWeight = 65
	got = tracker.ProgressToTarget(p)
	assert.Equal(t, 0.0, got.RemainingKg)
	assert.Equal(t, 0.0, got.Percent)

	p.CurrentWeight = 0
	assert.Equal(t, 0.0, tracker.ProgressToTarget(p).Percent)
}

func TestChartSeriesWindow(t *testing.T) {
	history := []model.LogEntry{
		tracker.DefaultEntry("2026-10-01", 80.00),
		tracker.DefaultEntry("2026-10-02", 79.50),
		tracker.DefaultEntry("2026-10-03", 79.20),
	}
	got := tracker.ChartSeries(history, 2)
	require.Equal(t, []tracker.ChartPoint{{Date: "10/02", Weight: 79.50}, {Date: "10/03", Weight: 79.20}}, got)
	assert.True(t, tracker.ChartEligible(got))

	assert.Len(t, tracker.ChartSeries(history, 30), 3)
	assert.False(t, tracker.ChartEligible(tracker.ChartSeries(history[:1], 30)))
	assert.Empty(t, tracker.ChartSeries(history, 0))
}

func TestRoundWeight(t *testing.T) {
	// 70.005 has no exact binary form; its stored value sits just below the tie.
	assert.Equal(t, 70.00, tracker.RoundWeight(70.005))
	assert.Equal(t, 70.01, tracker.RoundWeight(70.006))
	assert.Equal(t, 79.5, tracker.RoundWeight(79.499))
}

func TestParseChartRange(t *testing.T) {
	days, err := tracker.ParseChartRange("2m", nil)
	require.NoError(t, err)
	assert.Equal(t, 60, days)

	days, err = tracker.ParseChartRange("14", nil)
	require.NoError(t, err)
	assert.Equal(t, 14, days)

	_, err = tracker.ParseChartRange("-3", nil)
	assert.Error(t, err)
}

func TestAge(t *testing.T) {
	assert.Equal(t, 36, tracker.Age("1990-01-01", time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 0, tracker.Age("bad", time.Now()))
}
