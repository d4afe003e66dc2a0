package engineconfig

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// ConfigPath is the path to the studio preferences file, relative to the process working directory.
const ConfigPath = "config/studio.json"

// Prefs holds process-level preferences: where to serve from, where assets and user settings live,
// and which overlays start visible. User-adjustable scene settings are separate (see internal/settings).
type Prefs struct {
	Addr          string `json:"addr"`
	Root          string `json:"root"`
	MaxConns      int    `json:"max_conns"`
	SettingsPath  string `json:"settings_path"`
	PresetPath    string `json:"preset_path"`
	CacheDir      string `json:"cache_dir"`
	SnapshotDir   string `json:"snapshot_dir"`
	SnapshotWidth int    `json:"snapshot_width"` // 0 keeps the window size
	ShowFPS       bool   `json:"show_fps"`
	Debug         bool   `json:"debug"`
	Headless      bool   `json:"headless,omitempty"`
}

// Default returns default preferences (serve the working directory on :3000, FPS hidden).
func Default() Prefs {
	return Prefs{
		Addr:          ":3000",
		Root:          ".",
		MaxConns:      64,
		SettingsPath:  "config/settings.json",
		PresetPath:    "config/scene.yaml",
		CacheDir:      "cache/models",
		SnapshotDir:   "snapshots",
		SnapshotWidth: 1280,
	}
}

// Load reads preferences from path. If the file is missing or invalid, returns Default()
// and does not create a file. Fields absent from the file keep their defaults.
func Load(path string) (Prefs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), nil
	}
	p := Default()
	if err := json.Unmarshal(data, &p); err != nil {
		return Default(), nil
	}
	return p, nil
}

// Save writes preferences to path, creating the directory if needed.
func Save(path string, p Prefs) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
