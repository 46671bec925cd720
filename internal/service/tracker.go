package service

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/mallkiller3-ctrl/daily-health/internal/model"
	"github.com/mallkiller3-ctrl/daily-health/internal/tracker"
)

// Repository is the persistence the Tracker commits through. The three
// collections are saved independently.
type Repository interface {
	Load() (model.Snapshot, error)
	SaveProfile(p model.Profile) error
	SaveLogs(logs []model.LogEntry) error
	SavePhotos(photos []model.BodyCheckPhoto) error
	Clear() error
}

// Tracker owns the profile, history and photos and is the only writer of
// all three. Every change is persisted before it becomes visible.
type Tracker struct {
	repo    Repository
	now     func() time.Time
	profile model.Profile
	history []model.LogEntry
	photos  []model.BodyCheckPhoto
}

type Option func(*Tracker)

func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		t.now = now
	}
}

func NewTracker(repo Repository, opts ...Option) (*Tracker, error) {
	t := &Tracker{repo: repo, now: time.Now}
	for _, opt := range opts {
		opt(t)
	}
	snap, err := repo.Load()
	if err != nil {
		return nil, fmt.Errorf("load tracker state: %w", err)
	}
	t.profile = snap.Profile
	t.history = snap.Logs
	t.photos = snap.Photos
	return t, nil
}

func (t *Tracker) Now() time.Time {
	return t.now()
}

// Today is the local calendar date of the tracker clock.
func (t *Tracker) Today() string {
	return t.now().Format(model.DateLayout)
}

func (t *Tracker) Profile() model.Profile {
	return t.profile
}

func (t *Tracker) History() []model.LogEntry {
	return append([]model.LogEntry(nil), t.history...)
}

func (t *Tracker) Photos() []model.BodyCheckPhoto {
	return append([]model.BodyCheckPhoto(nil), t.photos...)
}

func (t *Tracker) Snapshot() model.Snapshot {
	return model.Snapshot{Profile: t.profile, Logs: t.History(), Photos: t.Photos()}
}

// Active is today's entry, or the default for today when none exists yet.
func (t *Tracker) Active() model.LogEntry {
	return t.EntryFor(t.Today())
}

// EntryFor resolves the entry for any date the same way Active does.
func (t *Tracker) EntryFor(date string) model.LogEntry {
	return tracker.ResolveActive(date, t.history, t.profile)
}

// Commit validates entry, upserts it and mirrors today's weight into the
// profile.
func (t *Tracker) Commit(entry model.LogEntry) error {
	if err := ValidateEntry(entry); err != nil {
		return err
	}
	history := tracker.Upsert(t.history, entry)
	profile := tracker.ApplyWeight(t.profile, entry, t.Today())

	if err := t.repo.SaveLogs(history); err != nil {
		return fmt.Errorf("save logs: %w", err)
	}
	t.history = history
	if profile != t.profile {
		if err := t.repo.SaveProfile(profile); err != nil {
			return fmt.Errorf("save profile: %w", err)
		}
		t.profile = profile
	}
	log.WithField("date", entry.Date).Debug("log entry committed")
	return nil
}

// Edit resolves the entry for date, applies fn to a copy and commits the
// result. fn returning an error aborts without changes.
func (t *Tracker) Edit(date string, fn func(model.LogEntry) (model.LogEntry, error)) (model.LogEntry, error) {
	next, err := fn(t.EntryFor(date))
	if err != nil {
		return model.LogEntry{}, err
	}
	if err := t.Commit(next); err != nil {
		return model.LogEntry{}, err
	}
	return next, nil
}

func (t *Tracker) UpdateProfile(fn func(model.Profile) model.Profile) (model.Profile, error) {
	next := fn(t.profile)
	if err := ValidateProfile(next); err != nil {
		return model.Profile{}, err
	}
	if err := t.repo.SaveProfile(next); err != nil {
		return model.Profile{}, fmt.Errorf("save profile: %w", err)
	}
	t.profile = next
	return next, nil
}

// ReplaceHistory swaps in a whole history after validating every entry.
func (t *Tracker) ReplaceHistory(history []model.LogEntry) error {
	for _, e := range history {
		if err := ValidateEntry(e); err != nil {
			return fmt.Errorf("entry %s: %w", e.Date, err)
		}
	}
	history = append([]model.LogEntry{}, history...)
	if err := t.repo.SaveLogs(history); err != nil {
		return fmt.Errorf("save logs: %w", err)
	}
	t.history = history
	return nil
}

// ReplaceAll validates and persists a whole snapshot.
func (t *Tracker) ReplaceAll(snap model.Snapshot) error {
	if err := ValidateProfile(snap.Profile); err != nil {
		return err
	}
	for _, e := range snap.Logs {
		if err := ValidateEntry(e); err != nil {
			return fmt.Errorf("entry %s: %w", e.Date, err)
		}
	}
	logs := append([]model.LogEntry{}, snap.Logs...)
	photos := append([]model.BodyCheckPhoto{}, snap.Photos...)
	if err := t.repo.SaveProfile(snap.Profile); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	if err := t.repo.SaveLogs(logs); err != nil {
		return fmt.Errorf("save logs: %w", err)
	}
	if err := t.repo.SavePhotos(photos); err != nil {
		return fmt.Errorf("save photos: %w", err)
	}
	t.profile = snap.Profile
	t.history = logs
	t.photos = photos
	return nil
}

// AddPhoto stores a new body check photo at the front of the list.
func (t *Tracker) AddPhoto(date, imageURL string) (model.BodyCheckPhoto, error) {
	photo := model.BodyCheckPhoto{ID: tracker.NewID(), Date: date, ImageURL: imageURL}
	photos := append([]model.BodyCheckPhoto{photo}, t.photos...)
	if err := t.repo.SavePhotos(photos); err != nil {
		return model.BodyCheckPhoto{}, fmt.Errorf("save photos: %w", err)
	}
	t.photos = photos
	return photo, nil
}

func (t *Tracker) FindPhoto(id string) (model.BodyCheckPhoto, error) {
	for _, p := range t.photos {
		if p.ID == id {
			return p, nil
		}
	}
	return model.BodyCheckPhoto{}, ErrPhotoNotFound
}

func (t *Tracker) DeletePhoto(id string) error {
	photos := make([]model.BodyCheckPhoto, 0, len(t.photos))
	for _, p := range t.photos {
		if p.ID != id {
			photos = append(photos, p)
		}
	}
	if len(photos) == len(t.photos) {
		return ErrPhotoNotFound
	}
	if err := t.repo.SavePhotos(photos); err != nil {
		return fmt.Errorf("save photos: %w", err)
	}
	t.photos = photos
	return nil
}

// Reset clears everything persisted and restores the defaults.
func (t *Tracker) Reset(confirmed bool) error {
	if !confirmed {
		return ErrResetNotConfirmed
	}
	if err := t.repo.Clear(); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	t.profile = model.DefaultProfile()
	t.history = []model.LogEntry{}
	t.photos = []model.BodyCheckPhoto{}
	log.Info("tracker state reset")
	return nil
}

type Dashboard struct {
	Date          string               `json:"date"`
	Profile       model.Profile        `json:"profile"`
	Entry         model.LogEntry       `json:"entry"`
	Calories      int                  `json:"calories"`
	BMI           float64              `json:"bmi"`
	BMICategory   tracker.BMICategory  `json:"bmi_category"`
	Progress      tracker.Progress     `json:"progress"`
	Dose          *tracker.DoseStatus  `json:"dose,omitempty"`
	ChartDays     int                  `json:"chart_days"`
	Chart         []tracker.ChartPoint `json:"chart"`
	ChartEligible bool                 `json:"chart_eligible"`
}

// Dashboard summarizes today. The dose status is only computed while the
// profile has Mounjaro tracking on.
func (t *Tracker) Dashboard(chartDays int) Dashboard {
	entry := t.Active()
	bmi := tracker.BMI(t.profile.CurrentWeight, t.profile.Height)
	chart := tracker.ChartSeries(t.history, chartDays)
	d := Dashboard{
		Date:          entry.Date,
		Profile:       t.profile,
		Entry:         entry,
		Calories:      tracker.DailyCalories(entry),
		BMI:           bmi,
		BMICategory:   tracker.ClassifyBMI(bmi),
		Progress:      tracker.ProgressToTarget(t.profile),
		ChartDays:     chartDays,
		Chart:         chart,
		ChartEligible: tracker.ChartEligible(chart),
	}
	if t.profile.MounjaroActive {
		status := tracker.DosingInterval(t.history, t.now())
		d.Dose = &status
	}
	return d
}
