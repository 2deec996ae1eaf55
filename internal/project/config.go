// Package project persists workshop state between runs: application
// configuration, TOML job files, sheet-size profiles, the offcut
// inventory, and full-state backups.
package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/panelforge/panelcut/internal/model"
)

// AppConfig holds user-level defaults applied when a job file does not
// override them.
type AppConfig struct {
	SheetWidth           float64         `json:"sheet_width"`
	SheetHeight          float64         `json:"sheet_height"`
	KerfWidth            float64         `json:"kerf_width"`
	WastePercent         float64         `json:"waste_percent"`
	EdgeBandWastePercent float64         `json:"edge_band_waste_percent"`
	PricePerSheet        float64         `json:"price_per_sheet"`
	GrainPreferences     map[string]bool `json:"grain_preferences"`
	RecentJobs           []string        `json:"recent_jobs"`
}

// DefaultAppConfig returns the configuration used on first run.
func DefaultAppConfig() AppConfig {
	cfg := model.DefaultCutConfig()
	return AppConfig{
		SheetWidth:           cfg.SheetWidth,
		SheetHeight:          cfg.SheetHeight,
		KerfWidth:            cfg.Kerf,
		WastePercent:         10,
		EdgeBandWastePercent: 10,
		GrainPreferences:     map[string]bool{},
		RecentJobs:           []string{},
	}
}

// CutConfig converts the stored defaults into an engine configuration.
func (c AppConfig) CutConfig() model.CutConfig {
	return model.CutConfig{
		SheetWidth:  c.SheetWidth,
		SheetHeight: c.SheetHeight,
		Kerf:        c.KerfWidth,
	}
}

// DefaultConfigDir returns the default directory for application configuration.
// On all platforms this is ~/.panelcut/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".panelcut")
}

// DefaultConfigPath returns the default path for the application config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// SaveAppConfig persists an AppConfig to the given path as JSON.
// It creates any missing parent directories automatically.
func SaveAppConfig(path string, config AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadAppConfig reads an AppConfig from the given path.
// If the file does not exist, it returns DefaultAppConfig with no error.
func LoadAppConfig(path string) (AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultAppConfig(), nil
		}
		return AppConfig{}, err
	}
	var config AppConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return AppConfig{}, err
	}
	// Maps and slices are never nil after loading
	if config.GrainPreferences == nil {
		config.GrainPreferences = map[string]bool{}
	}
	if config.RecentJobs == nil {
		config.RecentJobs = []string{}
	}
	return config, nil
}

// RememberJob prepends a job file path to the recent list, deduplicating
// and capping at ten entries.
func (c *AppConfig) RememberJob(path string) {
	recent := []string{path}
	for _, p := range c.RecentJobs {
		if p != path && len(recent) < 10 {
			recent = append(recent, p)
		}
	}
	c.RecentJobs = recent
}
