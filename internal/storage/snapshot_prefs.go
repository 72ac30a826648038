package storage

import (
	"strconv"

	"lazytimer/internal/core/model"

	"fyne.io/fyne/v2"
)

const (
	keyStartTime  = "startTimeInMillis"
	keyMillisLeft = "millisLeft"
	keyRunning    = "timerRunning"
	keyEndTime    = "endTime"
)

// SnapshotStore persists the timer snapshot across process restarts.
type SnapshotStore interface {
	Load() model.Snapshot
	Save(snapshot model.Snapshot)
}

// PreferencesStore keeps the snapshot in the app's key-value preferences.
type PreferencesStore struct {
	prefs fyne.Preferences
}

// NewPreferencesStore wraps the given preferences.
func NewPreferencesStore(prefs fyne.Preferences) *PreferencesStore {
	return &PreferencesStore{prefs: prefs}
}

// Load reads the snapshot, filling absent keys with defaults.
func (store *PreferencesStore) Load() model.Snapshot {
	defaults := model.DefaultSnapshot()
	target := store.int64WithFallback(keyStartTime, defaults.TargetMillis)
	return model.Snapshot{
		TargetMillis:    target,
		RemainingMillis: store.int64WithFallback(keyMillisLeft, target),
		Running:         store.prefs.BoolWithFallback(keyRunning, false),
		EndTime:         store.int64WithFallback(keyEndTime, 0),
	}
}

// Save writes every snapshot field. Millisecond values are stored as
// decimal strings because fyne's int preferences are 32 bits on arm and
// 386, too small for an epoch deadline.
func (store *PreferencesStore) Save(snapshot model.Snapshot) {
	store.setInt64(keyStartTime, snapshot.TargetMillis)
	store.setInt64(keyMillisLeft, snapshot.RemainingMillis)
	store.prefs.SetBool(keyRunning, snapshot.Running)
	store.setInt64(keyEndTime, snapshot.EndTime)
}

func (store *PreferencesStore) setInt64(key string, value int64) {
	store.prefs.SetString(key, strconv.FormatInt(value, 10))
}

// int64WithFallback reads a decimal string value. Snapshots written as
// plain ints by older builds are still accepted.
func (store *PreferencesStore) int64WithFallback(key string, fallback int64) int64 {
	if raw := store.prefs.String(key); raw != "" {
		if value, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return value
		}
	}
	if legacy := store.prefs.IntWithFallback(key, 0); legacy != 0 {
		return int64(legacy)
	}
	return fallback
}
