// Package tracker holds the pure log-history logic: resolving the active
// entry, upserting entries by date, field edits and derived metrics.
// Nothing here performs I/O; every function returns new values.
package tracker

import (
	"sort"

	"github.com/google/uuid"
	"github.com/mallkiller3-ctrl/daily-health/internal/model"
)

// NewID returns a random 128-bit token for meals, exercises and photos.
func NewID() string {
	return uuid.NewString()
}

func IndexOf(history []model.LogEntry, date string) int {
	for i := range history {
		if history[i].Date == date {
			return i
		}
	}
	return -1
}

func Find(history []model.LogEntry, date string) (model.LogEntry, bool) {
	if i := IndexOf(history, date); i >= 0 {
		return history[i], true
	}
	return model.LogEntry{}, false
}

// Chronological returns a copy of history sorted by date. Entries sharing a
// date keep their relative order.
func Chronological(history []model.LogEntry) []model.LogEntry {
	out := make([]model.LogEntry, len(history))
	copy(out, history)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date < out[j].Date
	})
	return out
}

func IsChronological(history []model.LogEntry) bool {
	for i := 1; i < len(history); i++ {
		if history[i].Date < history[i-1].Date {
			return false
		}
	}
	return true
}

// DuplicateDates counts entries beyond the first for every repeated date.
func DuplicateDates(history []model.LogEntry) int {
	seen := make(map[string]int, len(history))
	dups := 0
	for _, e := range history {
		seen[e.Date]++
		if seen[e.Date] > 1 {
			dups++
		}
	}
	return dups
}

// Normalize keeps the last occurrence of every date and sorts the result.
func Normalize(history []model.LogEntry) []model.LogEntry {
	out := make([]model.LogEntry, 0, len(history))
	for _, e := range history {
		out = Upsert(out, e)
	}
	return Chronological(out)
}

// Last returns the chronologically last n entries.
func Last(history []model.LogEntry, n int) []model.LogEntry {
	if n <= 0 {
		return []model.LogEntry{}
	}
	sorted := Chronological(history)
	if n < len(sorted) {
		sorted = sorted[len(sorted)-n:]
	}
	return sorted
}

func cloneEntry(e model.LogEntry) model.LogEntry {
	out := e
	out.Meals = append(make([]model.FoodEntry, 0, len(e.Meals)), e.Meals...)
	out.Exercises = make([]model.ExerciseEntry, 0, len(e.Exercises))
	for _, ex := range e.Exercises {
		out.Exercises = append(out.Exercises, cloneExercise(ex))
	}
	return out
}

func cloneExercise(ex model.ExerciseEntry) model.ExerciseEntry {
	out := ex
	if ex.Reps != nil {
		v := *ex.Reps
		out.Reps = &v
	}
	if ex.Sets != nil {
		v := *ex.Sets
		out.Sets = &v
	}
	return out
}
