package service_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mallkiller3-ctrl/daily-health/internal/model"
	"github.com/mallkiller3-ctrl/daily-health/internal/service"
	"github.com/mallkiller3-ctrl/daily-health/internal/tracker"
)

func TestNewTrackerStartsFromDefaults(t *testing.T) {
	t.Parallel()
	tr := newTestTracker(t, newTestDB(t))

	assert.Equal(t, model.DefaultProfile(), tr.Profile())
	assert.Empty(t, tr.History())
	assert.Empty(t, tr.Photos())

	active := tr.Active()
	assert.Equal(t, "2026-10-17", active.Date)
	assert.Equal(t, 80.0, active.Weight)
	assert.Equal(t, 7, active.SleepHours)
	assert.Empty(t, tr.History(), "resolving today must not create an entry")
}

func TestCommitTodayMirrorsWeightAndPersists(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	tr := newTestTracker(t, sqldb)

	_, err := tr.Edit(tr.Today(), func(e model.LogEntry) (model.LogEntry, error) {
		return tracker.SetWeight(e, 78.4), nil
	})
	require.NoError(t, err)
	assert.Equal(t, 78.4, tr.Profile().CurrentWeight)

	reloaded := newTestTracker(t, sqldb)
	assert.Equal(t, 78.4, reloaded.Profile().CurrentWeight)
	require.Len(t, reloaded.History(), 1)
	assert.Equal(t, 78.4, reloaded.History()[0].Weight)
}

func TestCommitPastDateLeavesProfileWeight(t *testing.T) {
	t.Parallel()
	tr := newTestTracker(t, newTestDB(t))

	_, err := tr.Edit("2026-10-10", func(e model.LogEntry) (model.LogEntry, error) {
		return tracker.SetWeight(e, 81.2), nil
	})
	require.NoError(t, err)
	assert.Equal(t, 80.0, tr.Profile().CurrentWeight)
	assert.Equal(t, 81.2, tr.Active().Weight, "today's default inherits the last known weight")
}

func TestCommitRejectsInvalidEntry(t *testing.T) {
	t.Parallel()
	tr := newTestTracker(t, newTestDB(t))

	_, err := tr.Edit(tr.Today(), func(e model.LogEntry) (model.LogEntry, error) {
		return tracker.SetSleep(tracker.SetWeight(e, 0), 30), nil
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrInvalidEntry))
	assert.Contains(t, err.Error(), "Weight")
	assert.Contains(t, err.Error(), "SleepHours")
	assert.Empty(t, tr.History())
	assert.Equal(t, 80.0, tr.Profile().CurrentWeight)
}

func TestEditAbortsWhenChangeFails(t *testing.T) {
	t.Parallel()
	tr := newTestTracker(t, newTestDB(t))
	boom := errors.New("boom")

	_, err := tr.Edit(tr.Today(), func(e model.LogEntry) (model.LogEntry, error) {
		return e, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, tr.History())
}

func TestUpsertKeepsOneEntryPerDate(t *testing.T) {
	t.Parallel()
	tr := newTestTracker(t, newTestDB(t))

	for _, w := range []float64{79.9, 79.7, 79.5} {
		_, err := tr.Edit(tr.Today(), func(e model.LogEntry) (model.LogEntry, error) {
			return tracker.SetWeight(e, w), nil
		})
		require.NoError(t, err)
	}
	require.Len(t, tr.History(), 1)
	assert.Equal(t, 79.5, tr.History()[0].Weight)
}

func TestUpdateProfileValidates(t *testing.T) {
	t.Parallel()
	tr := newTestTracker(t, newTestDB(t))

	_, err := tr.UpdateProfile(func(p model.Profile) model.Profile {
		p.Height = 0
		return p
	})
	assert.ErrorIs(t, err, service.ErrInvalidProfile)
	assert.Equal(t, 175.0, tr.Profile().Height)

	p, err := tr.UpdateProfile(func(p model.Profile) model.Profile {
		p.Name = "민지"
		p.TargetWeight = 65
		return p
	})
	require.NoError(t, err)
	assert.Equal(t, "민지", p.Name)
	assert.Equal(t, 65.0, tr.Profile().TargetWeight)
}

func TestPhotosAreNewestFirst(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	tr := newTestTracker(t, sqldb)

	first, err := tr.AddPhoto("2026-10-16", "data:image/png;base64,AAAA")
	require.NoError(t, err)
	second, err := tr.AddPhoto("2026-10-17", "data:image/png;base64,BBBB")
	require.NoError(t, err)

	photos := newTestTracker(t, sqldb).Photos()
	require.Len(t, photos, 2)
	assert.Equal(t, second.ID, photos[0].ID)
	assert.Equal(t, first.ID, photos[1].ID)

	require.NoError(t, tr.DeletePhoto(second.ID))
	assert.ErrorIs(t, tr.DeletePhoto(second.ID), service.ErrPhotoNotFound)
	_, err = tr.FindPhoto(first.ID)
	assert.NoError(t, err)
	assert.Len(t, tr.Photos(), 1)
}

func TestResetRequiresConfirmation(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	tr := newTestTracker(t, sqldb)

	_, err := tr.Edit(tr.Today(), func(e model.LogEntry) (model.LogEntry, error) {
		return tracker.SetWeight(e, 77), nil
	})
	require.NoError(t, err)
	_, err = tr.AddPhoto(tr.Today(), "data:image/png;base64,AAAA")
	require.NoError(t, err)

	assert.ErrorIs(t, tr.Reset(false), service.ErrResetNotConfirmed)
	assert.Len(t, tr.History(), 1)

	require.NoError(t, tr.Reset(true))
	assert.Equal(t, model.DefaultProfile(), tr.Profile())
	assert.Empty(t, tr.History())
	assert.Empty(t, tr.Photos())

	reloaded := newTestTracker(t, sqldb)
	assert.Equal(t, model.DefaultProfile(), reloaded.Profile())
	assert.Empty(t, reloaded.History())
}

func TestDashboardSummarizesToday(t *testing.T) {
	t.Parallel()
	tr := newTestTracker(t, newTestDB(t))

	_, err := tr.Edit("2026-10-10", func(e model.LogEntry) (model.LogEntry, error) {
		return tracker.SetDose(tracker.SetWeight(e, 81), true), nil
	})
	require.NoError(t, err)
	_, err = service.AddFoodManual(tr, tr.Today(), model.MealBreakfast, "사과 1개", 95)
	require.NoError(t, err)

	d := tr.Dashboard(30)
	assert.Equal(t, "2026-10-17", d.Date)
	assert.Equal(t, 95, d.Calories)
	assert.Nil(t, d.Dose, "dose card is hidden while Mounjaro tracking is off")
	assert.True(t, d.ChartEligible)
	assert.Len(t, d.Chart, 2)
	assert.InDelta(t, 26.449, d.BMI, 0.001)
	assert.Equal(t, tracker.BMIObese, d.BMICategory)

	_, err = tr.UpdateProfile(func(p model.Profile) model.Profile {
		p.MounjaroActive = true
		return p
	})
	require.NoError(t, err)
	d = tr.Dashboard(30)
	require.NotNil(t, d.Dose)
	assert.Equal(t, tracker.DoseOngoing, d.Dose.State)
	assert.Equal(t, 7, d.Dose.DaysSince)
}
