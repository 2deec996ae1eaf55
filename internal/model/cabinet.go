package model

import (
	"fmt"
	"strings"
)

// Default carcass construction constants in mm.
const (
	DefaultPanelThickness = 18.0 // plywood body panels
	DefaultBackThickness  = 6.0  // back panel
	DefaultShutterGap     = 3.0  // clearance around each shutter
	DefaultBackInset      = 12.0 // shelf depth reduction for the back panel groove
)

// Cabinet holds the dimensional and material configuration of a single
// cabinet. All dimensions are outer carcass dimensions in mm.
type Cabinet struct {
	Name   string  `json:"name" toml:"name"`
	Height float64 `json:"height" toml:"height"`
	Width  float64 `json:"width" toml:"width"`
	Depth  float64 `json:"depth" toml:"depth"`

	Brand string `json:"brand" toml:"brand"` // plywood brand for all panels

	// Combined laminate codes per surface family ("OUTER+INNER").
	BodyLaminate    string `json:"body_laminate" toml:"body_laminate"`
	BackLaminate    string `json:"back_laminate" toml:"back_laminate"`
	ShutterLaminate string `json:"shutter_laminate" toml:"shutter_laminate"`

	ShelfCount      int `json:"shelf_count" toml:"shelf_count"`
	ShutterCount    int `json:"shutter_count" toml:"shutter_count"`
	CenterPostCount int `json:"center_post_count" toml:"center_post_count"`

	Gaddi bool `json:"gaddi" toml:"gaddi"` // groove marking on carcass panels

	// Zero values fall back to the package defaults.
	PanelThickness float64 `json:"panel_thickness,omitempty" toml:"panel_thickness,omitempty"`
	BackThickness  float64 `json:"back_thickness,omitempty" toml:"back_thickness,omitempty"`
}

// panelThickness returns the configured body panel thickness or the default.
func (c Cabinet) panelThickness() float64 {
	if c.PanelThickness > 0 {
		return c.PanelThickness
	}
	return DefaultPanelThickness
}

// Validate checks the cabinet configuration before panel generation.
func (c Cabinet) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("cabinet has no name")
	}
	dims := []struct {
		name  string
		value float64
	}{
		{"height", c.Height},
		{"width", c.Width},
		{"depth", c.Depth},
	}
	for _, d := range dims {
		if d.value < 1 {
			return &InvalidDimensionError{
				Field: fmt.Sprintf("cabinet %s %s", c.Name, d.name),
				Value: d.value,
			}
		}
	}
	if c.ShelfCount < 0 || c.ShutterCount < 0 || c.CenterPostCount < 0 {
		return fmt.Errorf("cabinet %s has a negative panel count", c.Name)
	}
	return nil
}

// GeneratePanels expands a cabinet configuration into a flat, order-stable
// list of parts, one entry per physical piece. Identical cabinet input
// always yields an identical part list: IDs are derived from the cabinet
// name, role and index, never generated randomly.
func GeneratePanels(c Cabinet) ([]Part, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	t := c.panelThickness()
	slug := cabinetSlug(c.Name)

	mk := func(role PanelRole, index int, w, h float64, laminate string, gaddi bool) Part {
		return Part{
			ID:       fmt.Sprintf("%s-%s-%d", slug, strings.ToLower(string(role)), index),
			Role:     role,
			Label:    fmt.Sprintf("%s %s %d", c.Name, roleLabel(role), index),
			Width:    w,
			Height:   h,
			Brand:    c.Brand,
			Laminate: laminate,
			Gaddi:    gaddi,
			Rotate:   true,
		}
	}

	var parts []Part

	// Top and bottom span the full width between the side panels' faces.
	parts = append(parts,
		mk(RoleTop, 1, c.Width, c.Depth, c.BodyLaminate, c.Gaddi),
		mk(RoleBottom, 1, c.Width, c.Depth, c.BodyLaminate, c.Gaddi),
	)

	// Sides run the full carcass height.
	parts = append(parts,
		mk(RoleLeft, 1, c.Depth, c.Height, c.BodyLaminate, c.Gaddi),
		mk(RoleRight, 1, c.Depth, c.Height, c.BodyLaminate, c.Gaddi),
	)

	parts = append(parts, mk(RoleBack, 1, c.Width, c.Height, c.BackLaminate, false))

	// Center posts divide the interior vertically.
	for i := 1; i <= c.CenterPostCount; i++ {
		parts = append(parts,
			mk(RoleCenterPost, i, c.Depth, c.Height-2*t, c.BodyLaminate, c.Gaddi))
	}

	// Shelves sit between the sides, inset from the back groove.
	shelfW := c.Width - 2*t
	shelfH := c.Depth - DefaultBackInset
	for i := 1; i <= c.ShelfCount; i++ {
		parts = append(parts, mk(RoleShelf, i, shelfW, shelfH, c.BodyLaminate, false))
	}

	// Shutters split the opening evenly with a clearance gap each.
	if c.ShutterCount > 0 {
		shutterW := c.Width/float64(c.ShutterCount) - DefaultShutterGap
		shutterH := c.Height - DefaultShutterGap
		for i := 1; i <= c.ShutterCount; i++ {
			parts = append(parts,
				mk(RoleShutter, i, shutterW, shutterH, c.ShutterLaminate, false))
		}
	}

	for _, p := range parts {
		if err := ValidatePart(p); err != nil {
			return nil, fmt.Errorf("cabinet %s: %w", c.Name, err)
		}
	}
	return parts, nil
}

// GenerateAllPanels expands multiple cabinets into one combined part list,
// preserving cabinet order.
func GenerateAllPanels(cabinets []Cabinet) ([]Part, error) {
	var parts []Part
	for _, c := range cabinets {
		generated, err := GeneratePanels(c)
		if err != nil {
			return nil, err
		}
		parts = append(parts, generated...)
	}
	return parts, nil
}

// cabinetSlug normalizes a cabinet name for use in derived part IDs.
func cabinetSlug(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.Join(strings.Fields(slug), "-")
	return slug
}

func roleLabel(role PanelRole) string {
	switch role {
	case RoleCenterPost:
		return "Center Post"
	default:
		title := strings.ToLower(string(role))
		return strings.ToUpper(title[:1]) + title[1:]
	}
}
