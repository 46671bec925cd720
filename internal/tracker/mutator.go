package tracker

import "github.com/mallkiller3-ctrl/daily-health/internal/model"

// Upsert replaces the entry sharing entry.Date in place, or appends entry
// when the date is new. The input slice is never modified.
func Upsert(history []model.LogEntry, entry model.LogEntry) []model.LogEntry {
	out := make([]model.LogEntry, len(history), len(history)+1)
	copy(out, history)
	if i := IndexOf(out, entry.Date); i >= 0 {
		out[i] = entry
		return out
	}
	return append(out, entry)
}

// ApplyWeight mirrors entry.Weight into the profile when entry is today's.
func ApplyWeight(profile model.Profile, entry model.LogEntry, today string) model.Profile {
	if entry.Date == today {
		profile.CurrentWeight = entry.Weight
	}
	return profile
}
