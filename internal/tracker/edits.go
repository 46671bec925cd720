package tracker

import (
	"strings"

	"github.com/mallkiller3-ctrl/daily-health/internal/model"
)

// Field edits. Each takes the current entry and returns a modified copy
// with exactly one field or collection changed.

func SetWeight(e model.LogEntry, weight float64) model.LogEntry {
	out := cloneEntry(e)
	out.Weight = weight
	return out
}

func SetSleep(e model.LogEntry, hours int) model.LogEntry {
	out := cloneEntry(e)
	out.SleepHours = hours
	return out
}

func AddMeal(e model.LogEntry, meal model.FoodEntry) model.LogEntry {
	out := cloneEntry(e)
	out.Meals = append(out.Meals, meal)
	return out
}

// DeleteMeal drops the meal with id. The bool reports whether it existed.
func DeleteMeal(e model.LogEntry, id string) (model.LogEntry, bool) {
	out := cloneEntry(e)
	meals := make([]model.FoodEntry, 0, len(out.Meals))
	found := false
	for _, m := range out.Meals {
		if m.ID == id {
			found = true
			continue
		}
		meals = append(meals, m)
	}
	out.Meals = meals
	return out, found
}

func MealsOfType(e model.LogEntry, t model.MealType) []model.FoodEntry {
	out := make([]model.FoodEntry, 0)
	for _, m := range e.Meals {
		if m.Type == t {
			out = append(out, m)
		}
	}
	return out
}

func AddExercise(e model.LogEntry, ex model.ExerciseEntry) model.LogEntry {
	out := cloneEntry(e)
	out.Exercises = append(out.Exercises, cloneExercise(ex))
	return out
}

// ExercisePatch lists the exercise fields to change; nil fields are kept.
type ExercisePatch struct {
	Name            *string
	DurationMinutes *int
	Reps            *int
	Sets            *int
}

func UpdateExercise(e model.LogEntry, id string, patch ExercisePatch) (model.LogEntry, bool) {
	out := cloneEntry(e)
	found := false
	for i := range out.Exercises {
		if out.Exercises[i].ID != id {
			continue
		}
		found = true
		ex := &out.Exercises[i]
		if patch.Name != nil && strings.TrimSpace(*patch.Name) != "" {
			ex.Name = strings.TrimSpace(*patch.Name)
		}
		if patch.DurationMinutes != nil {
			ex.DurationMinutes = *patch.DurationMinutes
		}
		if patch.Reps != nil {
			v := *patch.Reps
			ex.Reps = &v
		}
		if patch.Sets != nil {
			v := *patch.Sets
			ex.Sets = &v
		}
	}
	return out, found
}

func DeleteExercise(e model.LogEntry, id string) (model.LogEntry, bool) {
	out := cloneEntry(e)
	exercises := make([]model.ExerciseEntry, 0, len(out.Exercises))
	found := false
	for _, ex := range out.Exercises {
		if ex.ID == id {
			found = true
			continue
		}
		exercises = append(exercises, ex)
	}
	out.Exercises = exercises
	return out, found
}

func ToggleSkincare(e model.LogEntry, period model.SkincarePeriod) model.LogEntry {
	out := cloneEntry(e)
	switch period {
	case model.SkincareMorning:
		out.Skincare.Morning = !out.Skincare.Morning
	case model.SkincareEvening:
		out.Skincare.Evening = !out.Skincare.Evening
	}
	return out
}

func SetDose(e model.LogEntry, taken bool) model.LogEntry {
	out := cloneEntry(e)
	out.MounjaroDose = taken
	return out
}

func SetDoseNotes(e model.LogEntry, notes string) model.LogEntry {
	out := cloneEntry(e)
	out.MounjaroNotes = notes
	return out
}
