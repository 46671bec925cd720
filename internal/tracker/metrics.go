package tracker

import (
	"math"
	"time"

	"github.com/mallkiller3-ctrl/daily-health/internal/model"
)

type BMICategory string

const (
	BMIUnderweight BMICategory = "underweight"
	BMINormal      BMICategory = "normal"
	BMIOverweight  BMICategory = "overweight"
	BMIObese       BMICategory = "obese"
)

// BMI returns weight / height_m^2, or 0 when height is not positive.
func BMI(weightKg, heightCm float64) float64 {
	if heightCm <= 0 {
		return 0
	}
	m := heightCm / 100
	return weightKg / (m * m)
}

// ClassifyBMI uses the Asia-Pacific bands; lower bounds are inclusive.
func ClassifyBMI(bmi float64) BMICategory {
	switch {
	case bmi < 18.5:
		return BMIUnderweight
	case bmi < 23:
		return BMINormal
	case bmi < 25:
		return BMIOverweight
	default:
		return BMIObese
	}
}

func (c BMICategory) Label() string {
	switch c {
	case BMIUnderweight:
		return "저체중"
	case BMINormal:
		return "정상"
	case BMIOverweight:
		return "과체중"
	default:
		return "비만"
	}
}

func DailyCalories(e model.LogEntry) int {
	total := 0
	for _, m := range e.Meals {
		total += m.Calories
	}
	return total
}

type DoseState string

const (
	DoseOngoing  DoseState = "ongoing"
	DoseRedose   DoseState = "redose"
	DoseNoRecord DoseState = "none"
)

// DoseEffectDays is the last day after a dose still counted as ongoing.
const DoseEffectDays = 7

type DoseStatus struct {
	State        DoseState `json:"state"`
	LastDoseDate string    `json:"last_dose_date,omitempty"`
	DaysSince    int       `json:"days_since"`
}

func (s DoseStatus) Label() string {
	switch s.State {
	case DoseOngoing:
		return "약효 지속 중"
	case DoseRedose:
		return "재투여 권장"
	default:
		return "기록 없음"
	}
}

// DosingInterval finds the latest dose and measures whole days since it,
// with the date taken as midnight in now's location.
func DosingInterval(history []model.LogEntry, now time.Time) DoseStatus {
	sorted := Chronological(history)
	for i := len(sorted) - 1; i >= 0; i-- {
		e := sorted[i]
		if !e.MounjaroDose {
			continue
		}
		d, err := time.ParseInLocation(model.DateLayout, e.Date, now.Location())
		if err != nil {
			continue
		}
		days := int(math.Floor(now.Sub(d).Hours() / 24))
		state := DoseRedose
		if days <= DoseEffectDays {
			state = DoseOngoing
		}
		return DoseStatus{State: state, LastDoseDate: e.Date, DaysSince: days}
	}
	return DoseStatus{State: DoseNoRecord}
}

type Progress struct {
	RemainingKg float64 `json:"remaining_kg"`
	// Percent is in [0,100].
	Percent float64 `json:"percent"`
}

func ProgressToTarget(p model.Profile) Progress {
	out := Progress{RemainingKg: math.Max(0, p.CurrentWeight-p.TargetWeight)}
	if p.CurrentWeight == 0 {
		return out
	}
	pct := (p.CurrentWeight - p.TargetWeight) / p.CurrentWeight * 100
	out.Percent = math.Min(100, math.Max(0, pct))
	return out
}

// Age counts calendar years between the birth year and now.
func Age(birthDate string, now time.Time) int {
	t, err := time.Parse(model.DateLayout, birthDate)
	if err != nil {
		return 0
	}
	return now.Year() - t.Year()
}
