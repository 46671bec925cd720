// Package catalog exposes the built-in exercise presets and skincare routine.
package catalog

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed presets.yaml
var presetsYAML []byte

type PresetExercise struct {
	Name     string `yaml:"name"`
	Category string `yaml:"category"`
}

type ExerciseDefaults struct {
	DurationMinutes int `yaml:"duration_minutes"`
	Reps            int `yaml:"reps"`
	Sets            int `yaml:"sets"`
}

type SkincareRoutine struct {
	Morning []string `yaml:"morning"`
	Evening []string `yaml:"evening"`
}

type Catalog struct {
	ExerciseDefaults ExerciseDefaults `yaml:"exercise_defaults"`
	Exercises        []PresetExercise `yaml:"exercises"`
	Skincare         SkincareRoutine  `yaml:"skincare"`
}

func Load() (Catalog, error) {
	return Parse(presetsYAML)
}

func Parse(raw []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return Catalog{}, fmt.Errorf("decode preset catalog: %w", err)
	}
	return c, nil
}

// FindExercise matches a preset by name, ignoring surrounding whitespace.
func (c Catalog) FindExercise(name string) (PresetExercise, bool) {
	name = strings.TrimSpace(name)
	for _, p := range c.Exercises {
		if p.Name == name {
			return p, true
		}
	}
	return PresetExercise{}, false
}
