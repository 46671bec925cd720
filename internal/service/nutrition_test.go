package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mallkiller3-ctrl/daily-health/internal/model"
	"github.com/mallkiller3-ctrl/daily-health/internal/service"
)

type fakeAnalyzer struct {
	mu    sync.Mutex
	est   model.NutritionEstimate
	err   error
	calls int
}

func (f *fakeAnalyzer) AnalyzeNutrition(_ context.Context, _ string) (model.NutritionEstimate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.est, f.err
}

func TestAddFoodUsesEstimate(t *testing.T) {
	t.Parallel()
	tr := newTestTracker(t, newTestDB(t))
	n := service.NewNutrition(&fakeAnalyzer{est: model.NutritionEstimate{Name: "사과", Calories: 95}})

	item, err := n.AddFood(context.Background(), tr, tr.Today(), model.MealBreakfast, "사과 1개")
	require.NoError(t, err)
	assert.Equal(t, "사과", item.Name)
	assert.Equal(t, 95, item.Calories)
	assert.Equal(t, model.MealBreakfast, item.Type)
	assert.NotEmpty(t, item.ID)

	active := tr.Active()
	require.Len(t, active.Meals, 1)
	assert.Equal(t, item, active.Meals[0])
}

func TestAddFoodFallsBackOnPartialEstimate(t *testing.T) {
	t.Parallel()
	tr := newTestTracker(t, newTestDB(t))
	n := service.NewNutrition(&fakeAnalyzer{})

	item, err := n.AddFood(context.Background(), tr, tr.Today(), model.MealSnack, "  정체불명 간식 ")
	require.NoError(t, err)
	assert.Equal(t, "정체불명 간식", item.Name)
	assert.Equal(t, 0, item.Calories)
}

func TestAddFoodFailureLeavesStateUnchanged(t *testing.T) {
	t.Parallel()
	tr := newTestTracker(t, newTestDB(t))
	n := service.NewNutrition(&fakeAnalyzer{err: errors.New("503")})

	_, err := n.AddFood(context.Background(), tr, tr.Today(), model.MealLunch, "김밥")
	require.ErrorIs(t, err, service.ErrNutritionUnavailable)
	assert.Equal(t, "분석에 실패했습니다.", err.Error())
	assert.Empty(t, tr.History())
}

func TestAddFoodRejectsEmptyDescription(t *testing.T) {
	t.Parallel()
	analyzer := &fakeAnalyzer{}
	n := service.NewNutrition(analyzer)

	_, err := n.Estimate(context.Background(), model.MealLunch, "   ")
	assert.ErrorIs(t, err, service.ErrEmptyDescription)
	assert.Zero(t, analyzer.calls)
}

func TestFoodFromEstimateRoundsCalories(t *testing.T) {
	t.Parallel()
	item := service.FoodFromEstimate(model.MealDinner, "밥", model.NutritionEstimate{Calories: 312.6})
	assert.Equal(t, 313, item.Calories)
	assert.Equal(t, "밥", item.Name)

	item = service.FoodFromEstimate(model.MealDinner, "밥", model.NutritionEstimate{Calories: -40})
	assert.Equal(t, 0, item.Calories)
}

func TestAddFoodManual(t *testing.T) {
	t.Parallel()
	tr := newTestTracker(t, newTestDB(t))

	_, err := service.AddFoodManual(tr, "2026-10-16", model.MealDinner, "닭가슴살 샐러드", 420)
	require.NoError(t, err)
	require.Len(t, tr.History(), 1)
	assert.Equal(t, "2026-10-16", tr.History()[0].Date)
	assert.Equal(t, 420, tr.History()[0].Meals[0].Calories)

	_, err = service.AddFoodManual(tr, "2026-10-16", model.MealDinner, "음수", -1)
	assert.ErrorIs(t, err, service.ErrInvalidEntry)
	assert.Len(t, tr.History()[0].Meals, 1)
}

type blockingAnalyzer struct {
	started chan struct{}
	release chan struct{}
}

func (b *blockingAnalyzer) AnalyzeNutrition(ctx context.Context, _ string) (model.NutritionEstimate, error) {
	close(b.started)
	select {
	case <-b.release:
	case <-ctx.Done():
		return model.NutritionEstimate{}, ctx.Err()
	}
	return model.NutritionEstimate{Name: "x", Calories: 1}, nil
}

func TestEstimateRejectsConcurrentCall(t *testing.T) {
	t.Parallel()
	analyzer := &blockingAnalyzer{started: make(chan struct{}), release: make(chan struct{})}
	n := service.NewNutrition(analyzer)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		_, err := n.Estimate(ctx, model.MealSnack, "first")
		done <- err
	}()
	<-analyzer.started

	_, err := n.Estimate(ctx, model.MealSnack, "second")
	assert.ErrorIs(t, err, service.ErrBusy)

	close(analyzer.release)
	require.NoError(t, <-done)
}

func TestCachedAnalyzerReusesEstimates(t *testing.T) {
	t.Parallel()
	next := &fakeAnalyzer{est: model.NutritionEstimate{Name: "사과", Calories: 95}}
	cached := service.NewCachedAnalyzer(next, 512*1024, time.Hour)

	for _, desc := range []string{"사과 1개", "  사과   1개", "사과 1개"} {
		est, err := cached.AnalyzeNutrition(context.Background(), desc)
		require.NoError(t, err)
		assert.Equal(t, 95.0, est.Calories)
	}
	assert.Equal(t, 1, next.calls)
}

func TestCachedAnalyzerDoesNotCacheFailures(t *testing.T) {
	t.Parallel()
	next := &fakeAnalyzer{err: errors.New("down")}
	cached := service.NewCachedAnalyzer(next, 512*1024, time.Hour)

	_, err := cached.AnalyzeNutrition(context.Background(), "김밥")
	require.Error(t, err)
	_, err = cached.AnalyzeNutrition(context.Background(), "김밥")
	require.Error(t, err)
	assert.Equal(t, 2, next.calls)
}
