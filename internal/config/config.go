package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gallery-room/internal/camera"
)

// ConfigPath is the viewer preferences file, relative to the process working directory.
const ConfigPath = "config/gallery.json"

// Prefs holds viewer preferences. Persisted across runs.
type Prefs struct {
	WindowWidth   int    `json:"window_width"`
	WindowHeight  int    `json:"window_height"`
	ShowFPS       bool   `json:"show_fps"`
	ShowLoadStats bool   `json:"show_load_stats"`
	Source        string `json:"source,omitempty"`
	Watch         bool   `json:"watch"`
	PhotoLimit    int    `json:"photo_limit"`

	MaxTextureSize     int `json:"max_texture_size"`
	MaxConcurrentLoads int `json:"max_concurrent_loads"`

	LookSensitivity float32 `json:"look_sensitivity"`
	MoveSpeed       float32 `json:"move_speed"`
	EyeHeight       float32 `json:"eye_height"`
}

// Default returns default preferences: 20 photos, 2048px textures, 4 parallel loads.
func Default() Prefs {
	cam := camera.DefaultConfig()
	return Prefs{
		WindowWidth:        1280,
		WindowHeight:       720,
		ShowFPS:            false,
		ShowLoadStats:      false,
		Source:             "photos",
		Watch:              true,
		PhotoLimit:         20,
		MaxTextureSize:     2048,
		MaxConcurrentLoads: 4,
		LookSensitivity:    cam.Sensitivity,
		MoveSpeed:          cam.Speed,
		EyeHeight:          cam.EyeHeight,
	}
}

// Load reads preferences from path (ConfigPath when empty). A missing or invalid file yields
// Default() and no error; fields absent from the file keep their defaults.
func Load(path string) (Prefs, error) {
	if path == "" {
		path = ConfigPath
	}
	p := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return p, nil
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return Default(), nil
	}
	return p.sanitized(), nil
}

// Save writes preferences to path (ConfigPath when empty), creating its directory if needed.
func Save(path string, p Prefs) error {
	if path == "" {
		path = ConfigPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	data, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overrides preferences from GALLERY_SOURCE and GALLERY_LIMIT when set.
// Call env loading (LoadDotEnv) first if a .env file should count.
func (p Prefs) ApplyEnv() Prefs {
	if v := os.Getenv("GALLERY_SOURCE"); v != "" {
		p.Source = v
	}
	if v := os.Getenv("GALLERY_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			p.PhotoLimit = n
		}
	}
	return p
}

// Camera returns the camera configuration for these preferences.
func (p Prefs) Camera() camera.Config {
	c := camera.DefaultConfig()
	c.Sensitivity = p.LookSensitivity
	c.Speed = p.MoveSpeed
	c.EyeHeight = p.EyeHeight
	return c
}

// sanitized replaces nonsensical values with defaults.
func (p Prefs) sanitized() Prefs {
	d := Default()
	if p.WindowWidth <= 0 || p.WindowHeight <= 0 {
		p.WindowWidth, p.WindowHeight = d.WindowWidth, d.WindowHeight
	}
	if p.MaxConcurrentLoads <= 0 {
		p.MaxConcurrentLoads = d.MaxConcurrentLoads
	}
	if p.LookSensitivity <= 0 {
		p.LookSensitivity = d.LookSensitivity
	}
	if p.MoveSpeed <= 0 {
		p.MoveSpeed = d.MoveSpeed
	}
	if p.EyeHeight <= 0 {
		p.EyeHeight = d.EyeHeight
	}
	return p
}
