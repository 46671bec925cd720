package model

// DateLayout is the ISO calendar date used as the History key.
const DateLayout = "2006-01-02"

type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

var MealTypes = []MealType{MealBreakfast, MealLunch, MealDinner, MealSnack}

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

type Phase string

const (
	PhaseDiet        Phase = "diet"
	PhaseMaintenance Phase = "maintenance"
)

type ExerciseSource string

const (
	SourcePreset ExerciseSource = "preset"
	SourceCustom ExerciseSource = "custom"
)

type SkincarePeriod string

const (
	SkincareMorning SkincarePeriod = "morning"
	SkincareEvening SkincarePeriod = "evening"
)

type Profile struct {
	Name              string  `json:"name" yaml:"name" validate:"max=100"`
	BirthDate         string  `json:"birthDate" yaml:"birthDate" validate:"omitempty,datetime=2006-01-02"`
	Gender            Gender  `json:"gender" yaml:"gender" validate:"oneof=male female other"`
	Height            float64 `json:"height" yaml:"height" validate:"gt=0"`
	CurrentWeight     float64 `json:"currentWeight" yaml:"currentWeight" validate:"gt=0"`
	TargetWeight      float64 `json:"targetWeight" yaml:"targetWeight" validate:"gt=0"`
	Phase             Phase   `json:"phase" yaml:"phase" validate:"oneof=diet maintenance"`
	MounjaroActive    bool    `json:"mounjaroActive" yaml:"mounjaroActive"`
	MounjaroStartDate string  `json:"mounjaroStartDate,omitempty" yaml:"mounjaroStartDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type FoodEntry struct {
	ID       string   `json:"id" yaml:"id" validate:"required"`
	Type     MealType `json:"type" yaml:"type" validate:"oneof=breakfast lunch dinner snack"`
	Name     string   `json:"name" yaml:"name" validate:"required"`
	Calories int      `json:"calories" yaml:"calories" validate:"gte=0"`
}

type ExerciseEntry struct {
	ID              string         `json:"id" yaml:"id" validate:"required"`
	Name            string         `json:"name" yaml:"name" validate:"required"`
	DurationMinutes int            `json:"durationMinutes" yaml:"durationMinutes" validate:"gte=0"`
	Reps            *int           `json:"reps,omitempty" yaml:"reps,omitempty" validate:"omitempty,gte=0"`
	Sets            *int           `json:"sets,omitempty" yaml:"sets,omitempty" validate:"omitempty,gte=0"`
	Source          ExerciseSource `json:"source,omitempty" yaml:"source,omitempty" validate:"omitempty,oneof=preset custom"`
}

type Skincare struct {
	Morning bool `json:"morning" yaml:"morning"`
	Evening bool `json:"evening" yaml:"evening"`
}

type LogEntry struct {
	Date          string          `json:"date" yaml:"date" validate:"required,datetime=2006-01-02"`
	Weight        float64         `json:"weight" yaml:"weight" validate:"gt=0"`
	SleepHours    int             `json:"sleepHours" yaml:"sleepHours" validate:"gte=0,lte=24"`
	Meals         []FoodEntry     `json:"meals" yaml:"meals" validate:"dive"`
	Exercises     []ExerciseEntry `json:"exercises" yaml:"exercises" validate:"dive"`
	Skincare      Skincare        `json:"skincare" yaml:"skincare"`
	MounjaroDose  bool            `json:"mounjaroDose" yaml:"mounjaroDose"`
	MounjaroNotes string          `json:"mounjaroNotes" yaml:"mounjaroNotes"`
}

type BodyCheckPhoto struct {
	ID       string `json:"id" yaml:"id"`
	Date     string `json:"date" yaml:"date"`
	ImageURL string `json:"imageUrl" yaml:"imageUrl"`
}

// Snapshot is everything the application persists.
type Snapshot struct {
	Profile Profile          `json:"profile" yaml:"profile"`
	Logs    []LogEntry       `json:"logs" yaml:"logs"`
	Photos  []BodyCheckPhoto `json:"bodyChecks" yaml:"bodyChecks"`
}

type ChatRole string

const (
	RoleUser  ChatRole = "user"
	RoleModel ChatRole = "model"
)

type ChatMessage struct {
	Role ChatRole `json:"role"`
	Text string   `json:"text"`
}

// NutritionEstimate is a best-effort answer from the nutrition analyzer.
// Zero values mean the service did not provide the field.
type NutritionEstimate struct {
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
}

type CoachPrompt struct {
	SystemInstruction string
	Turns             []ChatMessage
	Message           string
}

func DefaultProfile() Profile {
	return Profile{
		Name:          "사용자",
		BirthDate:     "1990-01-01",
		Gender:        GenderMale,
		Height:        175,
		CurrentWeight: 80.00,
		TargetWeight:  70.00,
		Phase:         PhaseDiet,
	}
}

func ParseMealType(s string) (MealType, bool) {
	for _, t := range MealTypes {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

func (t MealType) Label() string {
	switch t {
	case MealBreakfast:
		return "아침"
	case MealLunch:
		return "점심"
	case MealDinner:
		return "저녁"
	case MealSnack:
		return "간식"
	default:
		return string(t)
	}
}

func (p Phase) Label() string {
	if p == PhaseDiet {
		return "감량기"
	}
	return "유지기"
}
