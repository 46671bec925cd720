package service_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mallkiller3-ctrl/daily-health/internal/db"
	"github.com/mallkiller3-ctrl/daily-health/internal/model"
	"github.com/mallkiller3-ctrl/daily-health/internal/service"
	"github.com/mallkiller3-ctrl/daily-health/internal/store"
	"github.com/mallkiller3-ctrl/daily-health/internal/tracker"
)

func TestBackupCreateListRestore(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	tr := newTestTracker(t, sqldb)
	_, err := tr.Edit(tr.Today(), func(e model.LogEntry) (model.LogEntry, error) {
		return tracker.SetWeight(e, 76.5), nil
	})
	require.NoError(t, err)

	dir := t.TempDir()
	out := filepath.Join(dir, service.BackupFileName(fixedNow))
	info, err := service.CreateBackup(sqldb, out)
	require.NoError(t, err)
	assert.Equal(t, "dailyhealth-20261017-093000.db", filepath.Base(info.Path))
	assert.Len(t, info.Checksum, 64)

	_, err = service.CreateBackup(sqldb, out)
	assert.Error(t, err, "existing backups are never overwritten")

	list, err := service.ListBackups(dir)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, info.Checksum, list[0].Checksum)

	target := filepath.Join(t.TempDir(), "restored.db")
	require.NoError(t, service.RestoreBackup(out, target, false))
	assert.Error(t, service.RestoreBackup(out, target, false))

	restored, err := db.Open(target)
	require.NoError(t, err)
	defer restored.Close()
	snap, err := store.New(restored).Load()
	require.NoError(t, err)
	assert.Equal(t, 76.5, snap.Profile.CurrentWeight)
}

func TestRestoreBackupChecksumMismatch(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	out := filepath.Join(t.TempDir(), "b.db")
	_, err := service.CreateBackup(sqldb, out)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(out+".sha256", []byte("deadbeef\n"), 0o644))

	err = service.RestoreBackup(out, filepath.Join(t.TempDir(), "x.db"), true)
	assert.ErrorContains(t, err, "checksum mismatch")
}
