package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/jinzhu/copier"
)

// DefaultPath is where settings are kept when no other path is configured.
const DefaultPath = "config/settings.json"

// Store reads and writes the settings record at a fixed path. Reads fail open.
type Store struct {
	path string
}

// NewStore returns a store for path (DefaultPath when empty).
func NewStore(path string) *Store {
	if path == "" {
		path = DefaultPath
	}
	return &Store{path: path}
}

// Path returns the file the store reads and writes.
func (s *Store) Path() string {
	return s.path
}

// Load returns the last-saved settings. A missing file or a record that does not parse yields
// Default(); individual missing or malformed keys yield their own defaults. The error, when not nil,
// only describes why defaults were used and may be logged; the returned settings are always usable.
func (s *Store) Load() (Settings, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("settings: read %s: %w", s.path, err)
	}
	var saved Record
	if err := json.Unmarshal(data, &saved); err != nil {
		return Default(), fmt.Errorf("settings: parse %s: %w", s.path, err)
	}
	merged := Default().Record()
	if err := copier.CopyWithOption(&merged, &saved, copier.Option{IgnoreEmpty: true}); err != nil {
		return Default(), fmt.Errorf("settings: merge: %w", err)
	}
	return merged.Resolve(), nil
}

// Save writes settings synchronously, creating the directory if needed.
func (s *Store) Save(v Settings) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("settings: %w", err)
	}
	data, err := json.MarshalIndent(v.Record(), "", "\t")
	if err != nil {
		return fmt.Errorf("settings: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("settings: %w", err)
	}
	return nil
}

// Save button labels and how long the confirmation stays up.
const (
	SaveLabel        = "Save Settings"
	SavedLabel       = "Settings Saved!"
	FeedbackDuration = 2 * time.Second
)

// Feedback is the transient confirmation shown after a save, reverted after FeedbackDuration.
type Feedback struct {
	mu    sync.Mutex
	until time.Time
}

// Arm starts the confirmation at now.
func (f *Feedback) Arm(now time.Time) {
	f.mu.Lock()
	f.until = now.Add(FeedbackDuration)
	f.mu.Unlock()
}

// Label returns the save button text at now.
func (f *Feedback) Label(now time.Time) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if now.Before(f.until) {
		return SavedLabel
	}
	return SaveLabel
}
