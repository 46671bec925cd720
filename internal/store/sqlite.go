// Package store persists the profile, log history and body-check photos as
// three independent JSON blobs in a SQLite key/value table.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/mallkiller3-ctrl/daily-health/internal/model"
)

const (
	KeyProfile    = "zenhealth_profile"
	KeyLogs       = "zenhealth_logs"
	KeyBodyChecks = "zenhealth_bodychecks"
)

var Keys = []string{KeyProfile, KeyLogs, KeyBodyChecks}

type SQLiteStore struct {
	db *sql.DB
}

func New(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Load reads all three keys. Absent or malformed values fall back to the
// defaults; only database failures are returned as errors.
func (s *SQLiteStore) Load() (model.Snapshot, error) {
	snap := model.Snapshot{
		Profile: model.DefaultProfile(),
		Logs:    []model.LogEntry{},
		Photos:  []model.BodyCheckPhoto{},
	}

	var profile model.Profile
	ok, err := s.decode(KeyProfile, &profile)
	if err != nil {
		return snap, err
	}
	if ok {
		snap.Profile = profile
	}

	var logs []model.LogEntry
	ok, err = s.decode(KeyLogs, &logs)
	if err != nil {
		return snap, err
	}
	if ok && logs != nil {
		snap.Logs = normalizeEntries(logs)
	}

	var photos []model.BodyCheckPhoto
	ok, err = s.decode(KeyBodyChecks, &photos)
	if err != nil {
		return snap, err
	}
	if ok && photos != nil {
		snap.Photos = photos
	}
	return snap, nil
}

func (s *SQLiteStore) SaveProfile(p model.Profile) error {
	return s.encode(KeyProfile, p)
}

func (s *SQLiteStore) SaveLogs(logs []model.LogEntry) error {
	if logs == nil {
		logs = []model.LogEntry{}
	}
	return s.encode(KeyLogs, logs)
}

func (s *SQLiteStore) SavePhotos(photos []model.BodyCheckPhoto) error {
	if photos == nil {
		photos = []model.BodyCheckPhoto{}
	}
	return s.encode(KeyBodyChecks, photos)
}

// Clear removes all three keys in one transaction.
func (s *SQLiteStore) Clear() error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin clear tx: %w", err)
	}
	for _, key := range Keys {
		if _, err := tx.Exec(`DELETE FROM kv_store WHERE key = ?`, key); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("clear %s: %w", key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit clear: %w", err)
	}
	return nil
}

// Get returns the raw stored text for key.
func (s *SQLiteStore) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv_store WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLiteStore) Put(key, value string) error {
	_, err := s.db.Exec(`
INSERT INTO kv_store(key, value, updated_at)
VALUES(?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at
`, key, value)
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) decode(key string, dst any) (bool, error) {
	raw, ok, err := s.Get(key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		log.WithField("key", key).Warnf("ignoring malformed stored value: %s", err)
		return false, nil
	}
	return true, nil
}

func (s *SQLiteStore) encode(key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return s.Put(key, string(b))
}

func normalizeEntries(logs []model.LogEntry) []model.LogEntry {
	for i := range logs {
		if logs[i].Meals == nil {
			logs[i].Meals = []model.FoodEntry{}
		}
		if logs[i].Exercises == nil {
			logs[i].Exercises = []model.ExerciseEntry{}
		}
	}
	return logs
}
