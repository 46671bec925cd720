package service

import (
	"context"
	"encoding/json"
	"math"
	"strings"
	"time"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"

	"github.com/mallkiller3-ctrl/daily-health/internal/model"
	"github.com/mallkiller3-ctrl/daily-health/internal/tracker"
)

type NutritionAnalyzer interface {
	AnalyzeNutrition(ctx context.Context, description string) (model.NutritionEstimate, error)
}

// Nutrition turns free-text descriptions into meal items. One analysis runs
// at a time.
type Nutrition struct {
	analyzer NutritionAnalyzer
	guard    Guard
}

func NewNutrition(analyzer NutritionAnalyzer) *Nutrition {
	return &Nutrition{analyzer: analyzer}
}

// Estimate asks the analyzer about description. Missing fields fall back to
// the description itself and 0 kcal. Any analyzer failure is reported as
// ErrNutritionUnavailable.
func (n *Nutrition) Estimate(ctx context.Context, mealType model.MealType, description string) (model.FoodEntry, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return model.FoodEntry{}, ErrEmptyDescription
	}
	var item model.FoodEntry
	err := n.guard.Run(func() error {
		est, err := n.analyzer.AnalyzeNutrition(ctx, description)
		if err != nil {
			log.WithError(err).WithField("description", description).Warn("nutrition analysis failed")
			return ErrNutritionUnavailable
		}
		item = FoodFromEstimate(mealType, description, est)
		return nil
	})
	if err != nil {
		return model.FoodEntry{}, err
	}
	return item, nil
}

// AddFood estimates description and appends the result to the meals of
// date. Nothing is committed when the estimate fails.
func (n *Nutrition) AddFood(ctx context.Context, t *Tracker, date string, mealType model.MealType, description string) (model.FoodEntry, error) {
	item, err := n.Estimate(ctx, mealType, description)
	if err != nil {
		return model.FoodEntry{}, err
	}
	if _, err := t.Edit(date, func(e model.LogEntry) (model.LogEntry, error) {
		return tracker.AddMeal(e, item), nil
	}); err != nil {
		return model.FoodEntry{}, err
	}
	return item, nil
}

// AddFoodManual records a meal item without consulting the analyzer.
func AddFoodManual(t *Tracker, date string, mealType model.MealType, name string, calories int) (model.FoodEntry, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.FoodEntry{}, ErrEmptyDescription
	}
	item := model.FoodEntry{ID: tracker.NewID(), Type: mealType, Name: name, Calories: calories}
	if _, err := t.Edit(date, func(e model.LogEntry) (model.LogEntry, error) {
		return tracker.AddMeal(e, item), nil
	}); err != nil {
		return model.FoodEntry{}, err
	}
	return item, nil
}

func FoodFromEstimate(mealType model.MealType, description string, est model.NutritionEstimate) model.FoodEntry {
	name := strings.TrimSpace(est.Name)
	if name == "" {
		name = description
	}
	calories := 0
	if est.Calories > 0 && !math.IsInf(est.Calories, 0) {
		calories = int(math.Round(est.Calories))
	}
	return model.FoodEntry{ID: tracker.NewID(), Type: mealType, Name: name, Calories: calories}
}

// CachedAnalyzer remembers successful estimates by normalized description.
type CachedAnalyzer struct {
	next  NutritionAnalyzer
	cache *freecache.Cache
	ttl   time.Duration
}

func NewCachedAnalyzer(next NutritionAnalyzer, sizeBytes int, ttl time.Duration) *CachedAnalyzer {
	return &CachedAnalyzer{next: next, cache: freecache.NewCache(sizeBytes), ttl: ttl}
}

func (c *CachedAnalyzer) AnalyzeNutrition(ctx context.Context, description string) (model.NutritionEstimate, error) {
	key := []byte(strings.ToLower(strings.Join(strings.Fields(description), " ")))
	if raw, err := c.cache.Get(key); err == nil {
		var est model.NutritionEstimate
		if err := json.Unmarshal(raw, &est); err == nil {
			log.WithField("description", description).Debug("nutrition cache hit")
			return est, nil
		}
	}
	est, err := c.next.AnalyzeNutrition(ctx, description)
	if err != nil {
		return model.NutritionEstimate{}, err
	}
	if raw, err := json.Marshal(est); err == nil {
		if err := c.cache.Set(key, raw, int(c.ttl.Seconds())); err != nil {
			log.WithError(err).Debug("nutrition cache set failed")
		}
	}
	return est, nil
}
