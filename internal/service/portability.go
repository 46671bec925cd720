package service

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mallkiller3-ctrl/daily-health/internal/model"
	"github.com/mallkiller3-ctrl/daily-health/internal/tracker"
)

const ExportVersion = 1

type ExportData struct {
	Version    int                    `json:"version" yaml:"version"`
	ExportedAt string                 `json:"exported_at" yaml:"exported_at"`
	Profile    model.Profile          `json:"profile" yaml:"profile"`
	Logs       []model.LogEntry       `json:"logs" yaml:"logs"`
	BodyChecks []model.BodyCheckPhoto `json:"bodyChecks" yaml:"bodyChecks"`
}

type ImportMode string

const (
	ImportModeFail    ImportMode = "fail"
	ImportModeSkip    ImportMode = "skip"
	ImportModeMerge   ImportMode = "merge"
	ImportModeReplace ImportMode = "replace"
)

type ImportOptions struct {
	Mode   ImportMode
	DryRun bool
}

type ImportReport struct {
	Inserted  int      `json:"inserted"`
	Updated   int      `json:"updated"`
	Skipped   int      `json:"skipped"`
	Conflicts int      `json:"conflicts"`
	Warnings  []string `json:"warnings,omitempty"`
}

func ExportSnapshot(t *Tracker) ExportData {
	snap := t.Snapshot()
	return ExportData{
		Version:    ExportVersion,
		ExportedAt: t.Now().Format(time.RFC3339),
		Profile:    snap.Profile,
		Logs:       snap.Logs,
		BodyChecks: snap.Photos,
	}
}

func EncodeExport(w io.Writer, data ExportData, format string) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(data); err != nil {
			return fmt.Errorf("encode json export: %w", err)
		}
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(data); err != nil {
			return fmt.Errorf("encode yaml export: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("flush yaml export: %w", err)
		}
	default:
		return fmt.Errorf("unsupported export format %q (use json or yaml)", format)
	}
	return nil
}

func DecodeExport(r io.Reader, format string) (ExportData, error) {
	var data ExportData
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json":
		if err := json.NewDecoder(r).Decode(&data); err != nil {
			return ExportData{}, fmt.Errorf("decode json import: %w", err)
		}
	case "yaml", "yml":
		if err := yaml.NewDecoder(r).Decode(&data); err != nil {
			return ExportData{}, fmt.Errorf("decode yaml import: %w", err)
		}
	default:
		return ExportData{}, fmt.Errorf("unsupported import format %q (use json or yaml)", format)
	}
	return data, nil
}

// ImportSnapshot applies data to t. Replace swaps in everything including
// the profile; the other modes only touch history and photos. Nothing is
// written when the import fails or DryRun is set.
func ImportSnapshot(t *Tracker, data ExportData, opts ImportOptions) (ImportReport, error) {
	report := ImportReport{}
	mode := normalizeImportMode(opts.Mode)

	if data.Version > ExportVersion {
		report.Warnings = append(report.Warnings, fmt.Sprintf("export version %d is newer than supported version %d", data.Version, ExportVersion))
	}
	for _, e := range data.Logs {
		if err := ValidateEntry(e); err != nil {
			return report, fmt.Errorf("import entry %s: %w", e.Date, err)
		}
	}

	next := t.Snapshot()
	if mode == ImportModeReplace {
		if err := ValidateProfile(data.Profile); err != nil {
			return report, fmt.Errorf("import profile: %w", err)
		}
		next = model.Snapshot{
			Profile: data.Profile,
			Logs:    []model.LogEntry{},
			Photos:  []model.BodyCheckPhoto{},
		}
	}

	for _, e := range data.Logs {
		e = fillCollections(e)
		exists := tracker.IndexOf(next.Logs, e.Date) >= 0
		switch {
		case !exists:
			report.Inserted++
		case mode == ImportModeFail:
			report.Conflicts++
			return report, fmt.Errorf("import conflict: log for %s already exists", e.Date)
		case mode == ImportModeSkip:
			report.Skipped++
			continue
		default:
			report.Updated++
		}
		next.Logs = tracker.Upsert(next.Logs, e)
		next.Profile = tracker.ApplyWeight(next.Profile, e, t.Today())
	}

	known := map[string]bool{}
	for _, p := range next.Photos {
		known[p.ID] = true
	}
	imported := make([]model.BodyCheckPhoto, 0, len(data.BodyChecks))
	for _, p := range data.BodyChecks {
		if p.ID == "" || known[p.ID] {
			report.Skipped++
			continue
		}
		known[p.ID] = true
		imported = append(imported, p)
		report.Inserted++
	}
	next.Photos = append(imported, next.Photos...)

	if opts.DryRun {
		return report, nil
	}
	if err := t.ReplaceAll(next); err != nil {
		return report, err
	}
	return report, nil
}

func normalizeImportMode(mode ImportMode) ImportMode {
	switch mode {
	case ImportModeFail, ImportModeSkip, ImportModeMerge, ImportModeReplace:
		return mode
	default:
		return ImportModeMerge
	}
}

func fillCollections(e model.LogEntry) model.LogEntry {
	if e.Meals == nil {
		e.Meals = []model.FoodEntry{}
	}
	if e.Exercises == nil {
		e.Exercises = []model.ExerciseEntry{}
	}
	return e
}
