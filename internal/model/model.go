// Package model defines the core data types and pure domain calculations
// for the PanelCut sheet cutting optimizer: panels, placements, sheets,
// cutting configuration and the manufacturing bookkeeping built on top of
// them (display dimensions, gaddi marking, edge banding, estimates).
package model

import (
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
)

// PanelRole identifies the semantic role a panel plays in a cabinet carcass.
type PanelRole string

const (
	RoleTop        PanelRole = "TOP"
	RoleBottom     PanelRole = "BOTTOM"
	RoleLeft       PanelRole = "LEFT"
	RoleRight      PanelRole = "RIGHT"
	RoleBack       PanelRole = "BACK"
	RoleCenterPost PanelRole = "CENTER_POST"
	RoleShelf      PanelRole = "SHELF"
	RoleShutter    PanelRole = "SHUTTER"
)

// Roles lists all panel roles in generation order.
var Roles = []PanelRole{
	RoleTop, RoleBottom, RoleLeft, RoleRight,
	RoleBack, RoleCenterPost, RoleShelf, RoleShutter,
}

// Valid reports whether the role is one of the known panel roles.
func (r PanelRole) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// ParseRole normalizes a textual role into a PanelRole. Matching is
// case-insensitive and tolerates spaces in place of underscores, plus the
// common aliases "SIDE_LEFT" and "SIDE_RIGHT". An empty string maps to
// SHELF, the role with no groove or display special-casing. ok is false
// for any value that does not match a known role.
func ParseRole(s string) (role PanelRole, ok bool) {
	normalized := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), " ", "_"))
	switch normalized {
	case "":
		return RoleShelf, true
	case "SIDE_LEFT":
		return RoleLeft, true
	case "SIDE_RIGHT":
		return RoleRight, true
	}
	for _, known := range Roles {
		if normalized == string(known) {
			return known, true
		}
	}
	return RoleShelf, false
}

// Part represents a single rectangular panel to be cut. Width and Height
// are the nominal (pre-rotation) dimensions in millimeters and never change
// after generation; only a Placement may carry swapped dimensions.
//
// Quantity is expanded into individual Part instances at generation or
// import time, so every Part here is exactly one physical piece.
type Part struct {
	ID       string    `json:"id"`
	Role     PanelRole `json:"role"`
	Label    string    `json:"label"`
	Width    float64   `json:"width"`    // nominal mm
	Height   float64   `json:"height"`   // nominal mm
	Brand    string    `json:"brand"`    // plywood brand
	Laminate string    `json:"laminate"` // combined laminate code, e.g. "SF101+OST102"
	Gaddi    bool      `json:"gaddi"`    // groove/edge marking enabled
	Rotate   bool      `json:"rotate"`   // rotation permitted during packing
}

// NewPart creates an ad-hoc part with a generated ID. Parts produced by the
// panel generator use deterministic derived IDs instead so that identical
// cabinet input always yields an identical part list.
func NewPart(label string, role PanelRole, w, h float64) Part {
	return Part{
		ID:     uuid.New().String()[:8],
		Role:   role,
		Label:  label,
		Width:  w,
		Height: h,
		Rotate: true,
	}
}

// Area returns the nominal area in square mm.
func (p Part) Area() float64 {
	return p.Width * p.Height
}

// BaseLaminate returns the laminate code before any "+" inner-laminate
// suffix. Grain preferences are keyed by this base code.
func (p Part) BaseLaminate() string {
	return BaseLaminateCode(p.Laminate)
}

// BaseLaminateCode strips the "+" inner-laminate suffix from a combined
// laminate code and trims surrounding whitespace.
func BaseLaminateCode(code string) string {
	base, _, _ := strings.Cut(code, "+")
	return strings.TrimSpace(base)
}

// Placement represents a single part placed on a sheet. Width and Height
// are the as-placed dimensions: equal to the part's nominal dimensions, or
// swapped when Rotated is true.
type Placement struct {
	Part    Part    `json:"part"`
	X       float64 `json:"x"` // mm from sheet left edge
	Y       float64 `json:"y"` // mm from sheet top edge
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Rotated bool    `json:"rotated"`
}

// KerfRight returns the right boundary including trailing kerf clearance.
func (pl Placement) KerfRight(kerf float64) float64 {
	return pl.X + pl.Width + kerf
}

// KerfBottom returns the bottom boundary including trailing kerf clearance.
func (pl Placement) KerfBottom(kerf float64) float64 {
	return pl.Y + pl.Height + kerf
}

// Overlaps reports whether two placements overlap once each is inflated by
// the kerf allowance on its trailing edges.
func (pl Placement) Overlaps(other Placement, kerf float64) bool {
	return pl.X < other.KerfRight(kerf) && pl.KerfRight(kerf) > other.X &&
		pl.Y < other.KerfBottom(kerf) && pl.KerfBottom(kerf) > other.Y
}

// Sheet represents one raw material sheet with its placed parts.
type Sheet struct {
	ID         string      `json:"id"`
	Width      float64     `json:"width"`
	Height     float64     `json:"height"`
	Placements []Placement `json:"placements"`
}

// UsedArea returns the total area covered by placed parts.
func (s Sheet) UsedArea() float64 {
	var total float64
	for _, pl := range s.Placements {
		total += pl.Width * pl.Height
	}
	return total
}

// TotalArea returns the sheet area.
func (s Sheet) TotalArea() float64 {
	return s.Width * s.Height
}

// Efficiency returns the usage percentage for this sheet.
func (s Sheet) Efficiency() float64 {
	ta := s.TotalArea()
	if ta == 0 {
		return 0
	}
	return (s.UsedArea() / ta) * 100.0
}

// GroupResult holds the packed sheets for one (brand, laminate) bucket.
// Materials are never mixed on a physical sheet, so every group is packed
// independently of the others.
type GroupResult struct {
	Brand    string  `json:"brand"`
	Laminate string  `json:"laminate"`
	Sheets   []Sheet `json:"sheets"`
}

// SheetCount returns the number of non-empty sheets in the group.
func (g GroupResult) SheetCount() int {
	count := 0
	for _, s := range g.Sheets {
		if len(s.Placements) > 0 {
			count++
		}
	}
	return count
}

// Efficiency returns the overall material usage percentage for the group.
func (g GroupResult) Efficiency() float64 {
	var used, total float64
	for _, s := range g.Sheets {
		used += s.UsedArea()
		total += s.TotalArea()
	}
	if total == 0 {
		return 0
	}
	return (used / total) * 100.0
}

// CalculateEfficiency returns the percentage of total sheet area consumed
// by the given parts. Zero sheets, zero total sheet area or an empty part
// list all yield 0.
func CalculateEfficiency(sheets []Sheet, parts []Part) float64 {
	var sheetArea float64
	for _, s := range sheets {
		sheetArea += s.TotalArea()
	}
	if sheetArea == 0 {
		return 0
	}
	var partArea float64
	for _, p := range parts {
		partArea += p.Area()
	}
	return 100.0 * partArea / sheetArea
}

// CutConfig holds the sheet dimensions and kerf for one optimization run.
type CutConfig struct {
	SheetWidth  float64 `json:"sheet_width"`  // mm
	SheetHeight float64 `json:"sheet_height"` // mm
	Kerf        float64 `json:"kerf"`         // saw blade width, mm
}

// DefaultCutConfig returns the standard 8x4 plywood sheet configuration.
func DefaultCutConfig() CutConfig {
	return CutConfig{
		SheetWidth:  1210,
		SheetHeight: 2420,
		Kerf:        3.2,
	}
}

// Validate rejects non-positive or non-finite sheet dimensions and kerf.
func (c CutConfig) Validate() error {
	check := func(name string, v float64, allowZero bool) error {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &InvalidDimensionError{Field: name, Value: v}
		}
		if v < 0 || (!allowZero && v == 0) {
			return &InvalidDimensionError{Field: name, Value: v}
		}
		return nil
	}
	if err := check("sheet_width", c.SheetWidth, false); err != nil {
		return err
	}
	if err := check("sheet_height", c.SheetHeight, false); err != nil {
		return err
	}
	return check("kerf", c.Kerf, true)
}

// InvalidDimensionError reports a non-positive or non-finite dimension in
// the cutting configuration or a part.
type InvalidDimensionError struct {
	Field string
	Value float64
}

func (e *InvalidDimensionError) Error() string {
	return fmt.Sprintf("invalid dimension %s = %v", e.Field, e.Value)
}

// ValidatePart rejects parts whose nominal dimensions are below 1mm or not
// finite. Parts are validated once at the generator/importer boundary.
func ValidatePart(p Part) error {
	for _, d := range []struct {
		name  string
		value float64
	}{
		{"width", p.Width},
		{"height", p.Height},
	} {
		if math.IsNaN(d.value) || math.IsInf(d.value, 0) || d.value < 1 {
			return &InvalidDimensionError{
				Field: fmt.Sprintf("part %s %s", p.ID, d.name),
				Value: d.value,
			}
		}
	}
	return nil
}
