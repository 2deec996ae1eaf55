package project

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/panelforge/panelcut/internal/model"
)

// SheetProfile is a named stock sheet preset: dimensions plus the kerf of
// the saw used to cut that material.
type SheetProfile struct {
	Name      string  `json:"name"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Kerf      float64 `json:"kerf"`
	IsBuiltIn bool    `json:"is_built_in,omitempty"`
}

// CutConfig converts a profile into an engine configuration.
func (p SheetProfile) CutConfig() model.CutConfig {
	return model.CutConfig{SheetWidth: p.Width, SheetHeight: p.Height, Kerf: p.Kerf}
}

// BuiltInProfiles are the common plywood sheet sizes sold in India, in mm.
func BuiltInProfiles() []SheetProfile {
	return []SheetProfile{
		{Name: "8x4 ft", Width: 1210, Height: 2420, Kerf: 3.2, IsBuiltIn: true},
		{Name: "7x4 ft", Width: 1210, Height: 2120, Kerf: 3.2, IsBuiltIn: true},
		{Name: "6x4 ft", Width: 1210, Height: 1820, Kerf: 3.2, IsBuiltIn: true},
		{Name: "8x3 ft", Width: 910, Height: 2420, Kerf: 3.2, IsBuiltIn: true},
	}
}

// FindProfile looks a profile up by name, custom profiles first so they
// can shadow a built-in name.
func FindProfile(name string, custom []SheetProfile) (SheetProfile, bool) {
	for _, p := range custom {
		if p.Name == name {
			return p, true
		}
	}
	for _, p := range BuiltInProfiles() {
		if p.Name == name {
			return p, true
		}
	}
	return SheetProfile{}, false
}

// DefaultProfilesPath returns the default file path for custom profiles.
func DefaultProfilesPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".panelcut", "profiles.json"), nil
}

// SaveCustomProfiles saves custom sheet profiles to a JSON file.
func SaveCustomProfiles(path string, profiles []SheetProfile) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(profiles, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadCustomProfiles loads custom sheet profiles from a JSON file.
// Returns an empty slice if the file does not exist.
func LoadCustomProfiles(path string) ([]SheetProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []SheetProfile{}, nil
		}
		return nil, err
	}

	var profiles []SheetProfile
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, err
	}

	// Loaded profiles are user profiles regardless of what the file claims
	for i := range profiles {
		profiles[i].IsBuiltIn = false
	}
	return profiles, nil
}
