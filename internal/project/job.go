package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/panelforge/panelcut/internal/model"
)

// Job is a TOML-described cutting job: sheet settings, grain-locked
// laminates, cabinets to expand, and ad-hoc panels.
type Job struct {
	Sheet    SheetSettings   `toml:"sheet"`
	Grain    map[string]bool `toml:"grain"`
	Cabinets []model.Cabinet `toml:"cabinet"`
	Panels   []PanelSpec     `toml:"panel"`
}

// SheetSettings overrides the configured stock sheet for one job. Zero
// values inherit the application defaults.
type SheetSettings struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
	Kerf   float64 `toml:"kerf"`
}

// PanelSpec is a single ad-hoc panel row in a job file.
type PanelSpec struct {
	Label    string  `toml:"label"`
	Role     string  `toml:"role"`
	Width    float64 `toml:"width"`
	Height   float64 `toml:"height"`
	Quantity int     `toml:"quantity"`
	Brand    string  `toml:"brand"`
	Laminate string  `toml:"laminate"`
	Gaddi    bool    `toml:"gaddi"`
}

// LoadJob parses a TOML job file.
func LoadJob(path string) (Job, error) {
	var job Job
	meta, err := toml.DecodeFile(path, &job)
	if err != nil {
		return Job{}, fmt.Errorf("parse job file %s: %w", filepath.Base(path), err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Job{}, fmt.Errorf("job file %s has unknown keys: %v", filepath.Base(path), undecoded)
	}
	if job.Grain == nil {
		job.Grain = map[string]bool{}
	}
	return job, nil
}

// SaveJob writes a job back out as TOML.
func SaveJob(path string, job Job) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(job)
}

// CutConfig resolves the effective sheet configuration: job overrides
// first, application defaults for anything left at zero.
func (j Job) CutConfig(defaults model.CutConfig) model.CutConfig {
	cfg := defaults
	if j.Sheet.Width > 0 {
		cfg.SheetWidth = j.Sheet.Width
	}
	if j.Sheet.Height > 0 {
		cfg.SheetHeight = j.Sheet.Height
	}
	if j.Sheet.Kerf > 0 {
		cfg.Kerf = j.Sheet.Kerf
	}
	return cfg
}

// Parts expands the job into the flat part list handed to the engine:
// cabinet carcasses first, then ad-hoc panels with quantities expanded.
// Grain preferences from the job file lock rotation on matching laminates.
func (j Job) Parts() ([]model.Part, error) {
	parts, err := model.GenerateAllPanels(j.Cabinets)
	if err != nil {
		return nil, err
	}

	for i, spec := range j.Panels {
		if spec.Width <= 0 || spec.Height <= 0 {
			return nil, &model.InvalidDimensionError{
				Field: fmt.Sprintf("panel %d (%s)", i+1, spec.Label),
				Value: spec.Width,
			}
		}
		qty := spec.Quantity
		if qty == 0 {
			qty = 1
		}
		if qty < 0 {
			return nil, fmt.Errorf("panel %d (%s) has negative quantity %d", i+1, spec.Label, qty)
		}

		role, ok := model.ParseRole(spec.Role)
		if !ok {
			return nil, fmt.Errorf("panel %d (%s) has unknown role %q", i+1, spec.Label, spec.Role)
		}
		label := spec.Label
		if label == "" {
			label = fmt.Sprintf("Panel %d", i+1)
		}

		for n := 0; n < qty; n++ {
			p := model.NewPart(label, role, spec.Width, spec.Height)
			p.Brand = spec.Brand
			p.Laminate = spec.Laminate
			p.Gaddi = spec.Gaddi
			parts = append(parts, p)
		}
	}

	return model.PrepareParts(parts, j.Grain), nil
}
