package tracker_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mallkiller3-ctrl/daily-health/internal/model"
	"github.com/mallkiller3-ctrl/daily-health/internal/tracker"
)

func randomHistory(f *gofakeit.Faker, n int) []model.LogEntry {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]model.LogEntry, 0, n)
	for i := 0; i < n; i++ {
		e := tracker.DefaultEntry(start.AddDate(0, 0, i).Format(model.DateLayout), f.Float64Range(50, 120))
		e.SleepHours = f.IntRange(0, 12)
		e.MounjaroDose = f.Bool()
		out = append(out, e)
	}
	return out
}

func TestResolveActiveReturnsExistingEntry(t *testing.T) {
	history := []model.LogEntry{
		tracker.DefaultEntry("2026-10-16", 80),
		tracker.DefaultEntry("2026-10-17", 79.5),
	}
	history[1].SleepHours = 5

	got := tracker.ResolveActive("2026-10-17", history, model.DefaultProfile())
	assert.Equal(t, history[1], got)
}

func TestResolveActiveSynthesizesDefault(t *testing.T) {
	f := gofakeit.New(7)
	for n := 0; n < 20; n++ {
		history := randomHistory(f, n)
		profile := model.DefaultProfile()
		profile.CurrentWeight = f.Float64Range(40, 150)

		got := tracker.ResolveActive("2030-01-01", history, profile)
		require.Equal(t, "2030-01-01", got.Date)
		if n == 0 {
			require.Equal(t, profile.CurrentWeight, got.Weight)
		} else {
			require.Equal(t, history[n-1].Weight, got.Weight)
		}
		require.Equal(t, 7, got.SleepHours)
		require.Empty(t, got.Meals)
		require.Empty(t, got.Exercises)
		require.False(t, got.Skincare.Morning || got.Skincare.Evening)
		require.False(t, got.MounjaroDose)
		require.Empty(t, got.MounjaroNotes)
	}
}

func TestResolveActiveUsesChronologicallyLastWeight(t *testing.T) {
	history := []model.LogEntry{
		tracker.DefaultEntry("2026-10-15", 81),
		tracker.DefaultEntry("2026-10-10", 85),
	}
	got := tracker.ResolveActive("2026-10-17", history, model.DefaultProfile())
	assert.Equal(t, 81.0, got.Weight)
}

func TestUpsertKeepsSingleEntryPerDateAndIsIdempotent(t *testing.T) {
	f := gofakeit.New(11)
	for n := 0; n < 15; n++ {
		history := randomHistory(f, n)
		date := fmt.Sprintf("2026-01-%02d", f.IntRange(1, 20))
		entry := tracker.DefaultEntry(date, f.Float64Range(50, 120))

		once := tracker.Upsert(history, entry)
		count := 0
		for _, e := range once {
			if e.Date == date {
				count++
				require.Equal(t, entry, e)
			}
		}
		require.Equal(t, 1, count)
		require.Equal(t, once, tracker.Upsert(once, entry))

		others := make([]model.LogEntry, 0)
		for _, e := range history {
			if e.Date != date {
				others = append(others, e)
			}
		}
		kept := make([]model.LogEntry, 0)
		for _, e := range once {
			if e.Date != date {
				kept = append(kept, e)
			}
		}
		require.Equal(t, others, kept)
	}
}

func TestUpsertReplacesInPlaceAndDoesNotMutateInput(t *testing.T) {
	history := []model.LogEntry{
		tracker.DefaultEntry("2026-10-15", 81),
		tracker.DefaultEntry("2026-10-16", 80),
		tracker.DefaultEntry("2026-10-17", 79),
	}
	replacement := tracker.DefaultEntry("2026-10-16", 78.4)

	got := tracker.Upsert(history, replacement)
	require.Len(t, got, 3)
	assert.Equal(t, 78.4, got[1].Weight)
	assert.Equal(t, 80.0, history[1].Weight)

	appended := tracker.Upsert(history, tracker.DefaultEntry("2026-10-18", 78))
	require.Len(t, appended, 4)
	assert.Equal(t, "2026-10-18", appended[3].Date)
	assert.Len(t, history, 3)
}

func TestApplyWeightOnlyForToday(t *testing.T) {
	p := model.DefaultProfile()
	assert.Equal(t, 77.7, tracker.ApplyWeight(p, tracker.DefaultEntry("2026-10-17", 77.7), "2026-10-17").CurrentWeight)
	assert.Equal(t, 80.0, tracker.ApplyWeight(p, tracker.DefaultEntry("2026-10-16", 77.7), "2026-10-17").CurrentWeight)
}

func TestNormalizeDedupesAndSorts(t *testing.T) {
	history := []model.LogEntry{
		tracker.DefaultEntry("2026-10-17", 79),
		tracker.DefaultEntry("2026-10-15", 81),
		tracker.DefaultEntry("2026-10-17", 78.5),
	}
	require.Equal(t, 1, tracker.DuplicateDates(history))
	require.False(t, tracker.IsChronological(history))

	got := tracker.Normalize(history)
	require.Len(t, got, 2)
	assert.Equal(t, "2026-10-15", got[0].Date)
	assert.Equal(t, 78.5, got[1].Weight)
	assert.True(t, tracker.IsChronological(got))
}

func TestBreakfastScenario(t *testing.T) {
	profile := model.DefaultProfile()
	today := "2026-10-17"

	active := tracker.ResolveActive(today, nil, profile)
	require.Equal(t, 80.00, active.Weight)
	require.Equal(t, 7, active.SleepHours)

	meal := model.FoodEntry{ID: tracker.NewID(), Type: model.MealBreakfast, Name: "사과 1개", Calories: 95}
	history := tracker.Upsert(nil, tracker.AddMeal(active, meal))

	require.Len(t, history, 1)
	require.Equal(t, []model.FoodEntry{meal}, history[0].Meals)
	assert.Equal(t, 95, tracker.DailyCalories(history[0]))
}
