package tracker

import "github.com/mallkiller3-ctrl/daily-health/internal/model"

const DefaultSleepHours = 7

// ResolveActive returns the entry recorded for today, or a fresh default
// seeded with the most recent known weight.
func ResolveActive(today string, history []model.LogEntry, profile model.Profile) model.LogEntry {
	if e, ok := Find(history, today); ok {
		return e
	}
	weight := profile.CurrentWeight
	if len(history) > 0 {
		sorted := Chronological(history)
		weight = sorted[len(sorted)-1].Weight
	}
	return DefaultEntry(today, weight)
}

func DefaultEntry(date string, weight float64) model.LogEntry {
	return model.LogEntry{
		Date:       date,
		Weight:     weight,
		SleepHours: DefaultSleepHours,
		Meals:      []model.FoodEntry{},
		Exercises:  []model.ExerciseEntry{},
		Skincare:   model.Skincare{},
	}
}
