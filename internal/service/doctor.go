package service

import (
	"fmt"
	"time"

	"go.uber.org/multierr"

	"github.com/mallkiller3-ctrl/daily-health/internal/model"
	"github.com/mallkiller3-ctrl/daily-health/internal/tracker"
)

type DoctorReport struct {
	Entries        int  `json:"entries"`
	DuplicateDates int  `json:"duplicate_dates"`
	Unsorted       bool `json:"unsorted"`
	InvalidEntries int  `json:"invalid_entries"`
	InvalidPhotos  int  `json:"invalid_photos"`
	Fixed          bool `json:"fixed,omitempty"`
	// Problems lists every invalid entry and photo found.
	Problems error `json:"-"`
}

func (r DoctorReport) Healthy() bool {
	return r.DuplicateDates == 0 && !r.Unsorted && r.InvalidEntries == 0 && r.InvalidPhotos == 0
}

// RunDoctor checks the history and photos. With fix set, duplicate dates
// collapse to their last occurrence and the history is sorted by date.
// Invalid entries are reported but never rewritten.
func RunDoctor(t *Tracker, fix bool) (DoctorReport, error) {
	history := t.History()
	report := DoctorReport{
		Entries:        len(history),
		DuplicateDates: tracker.DuplicateDates(history),
		Unsorted:       !tracker.IsChronological(history),
	}
	for _, e := range history {
		if err := ValidateEntry(e); err != nil {
			report.InvalidEntries++
			report.Problems = multierr.Append(report.Problems, fmt.Errorf("log %s: %w", e.Date, err))
		}
	}
	for _, p := range t.Photos() {
		if err := checkPhoto(p); err != nil {
			report.InvalidPhotos++
			report.Problems = multierr.Append(report.Problems, err)
		}
	}

	if fix && (report.DuplicateDates > 0 || report.Unsorted) {
		normalized := tracker.Normalize(history)
		if err := t.repo.SaveLogs(normalized); err != nil {
			return report, fmt.Errorf("doctor fix save logs: %w", err)
		}
		t.history = normalized
		report.Fixed = true
	}
	return report, nil
}

func checkPhoto(p model.BodyCheckPhoto) error {
	var err error
	if p.ID == "" {
		err = multierr.Append(err, fmt.Errorf("photo without id"))
	}
	if _, perr := time.Parse(model.DateLayout, p.Date); perr != nil {
		err = multierr.Append(err, fmt.Errorf("photo %s: invalid date %q", p.ID, p.Date))
	}
	if len(p.ImageURL) < len("data:") || p.ImageURL[:5] != "data:" {
		err = multierr.Append(err, fmt.Errorf("photo %s: image is not a data URI", p.ID))
	}
	return err
}
