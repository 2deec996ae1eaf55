package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/panelforge/panelcut/internal/model"
)

// StoredOffcut is an offcut tagged with the material it was cut from, so
// a later job against the same material can be checked against it.
type StoredOffcut struct {
	model.Offcut
	Brand    string `json:"brand"`
	Laminate string `json:"laminate"`
}

// OffcutInventory is the persistent remnant store.
type OffcutInventory struct {
	Offcuts []StoredOffcut `json:"offcuts"`
}

// DefaultOffcutPath returns the default file path for the offcut store.
// This is located at ~/.panelcut/offcuts.json.
func DefaultOffcutPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".panelcut", "offcuts.json"), nil
}

// SaveOffcuts writes the offcut inventory to the specified JSON file.
// It creates parent directories if they do not exist.
func SaveOffcuts(path string, inv OffcutInventory) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(inv, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadOffcuts reads the offcut inventory from the specified JSON file.
// If the file does not exist, it returns an empty inventory.
func LoadOffcuts(path string) (OffcutInventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return OffcutInventory{Offcuts: []StoredOffcut{}}, nil
		}
		return OffcutInventory{}, err
	}
	var inv OffcutInventory
	if err := json.Unmarshal(data, &inv); err != nil {
		return OffcutInventory{}, err
	}
	if inv.Offcuts == nil {
		inv.Offcuts = []StoredOffcut{}
	}
	return inv, nil
}

// RecordGroupOffcuts detects the usable remnants in a packed group and
// appends them to the inventory. Duplicate offcut IDs are skipped.
func (inv *OffcutInventory) RecordGroupOffcuts(g model.GroupResult, kerf float64) int {
	seen := make(map[string]bool, len(inv.Offcuts))
	for _, o := range inv.Offcuts {
		seen[o.ID] = true
	}

	added := 0
	for _, oc := range model.DetectGroupOffcuts(g, kerf) {
		if seen[oc.ID] {
			continue
		}
		inv.Offcuts = append(inv.Offcuts, StoredOffcut{
			Offcut:   oc,
			Brand:    g.Brand,
			Laminate: g.Laminate,
		})
		seen[oc.ID] = true
		added++
	}
	return added
}

// FindUsable returns stored offcuts of the given material that could hold
// a part of the given dimensions in either orientation.
func (inv OffcutInventory) FindUsable(brand, laminate string, w, h float64) []StoredOffcut {
	var usable []StoredOffcut
	for _, o := range inv.Offcuts {
		if o.Brand != brand || o.Laminate != laminate {
			continue
		}
		if (o.Width >= w && o.Height >= h) || (o.Width >= h && o.Height >= w) {
			usable = append(usable, o)
		}
	}
	return usable
}
