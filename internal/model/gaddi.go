package model

import (
	"fmt"
	"math"
)

// Gaddi marking constants.
const (
	// GaddiTolerance is the near-equality window (mm) used to detect
	// whether a placement kept its nominal orientation. Rotation is
	// detected by comparing as-placed against nominal dimensions rather
	// than trusting the rotated flag, so the rule stays correct for any
	// code path that places a part without recording rotation.
	GaddiTolerance = 0.5

	// MinGaddiDimension is the minimum as-placed width and height (mm)
	// for a panel to receive a marking line.
	MinGaddiDimension = 10.0
)

// MarkDimension names the semantic dimension a gaddi line tracks.
type MarkDimension string

const (
	MarkWidth  MarkDimension = "width"
	MarkHeight MarkDimension = "height"
)

// SheetAxis names a physical axis on the raw sheet.
type SheetAxis string

const (
	AxisX SheetAxis = "x"
	AxisY SheetAxis = "y"
)

// GaddiDirection describes where the groove marking line runs for one
// placed panel: which semantic dimension is marked and which physical
// sheet axis that dimension landed on after placement.
type GaddiDirection struct {
	MarkDimension MarkDimension `json:"mark_dimension"`
	SheetAxis     SheetAxis     `json:"sheet_axis"`
	Length        float64       `json:"length"` // marked dimension, nominal mm
}

// CalculateGaddiLineDirection maps a placed panel's marked dimension onto a
// physical sheet axis. The marked dimension is fixed by role: nominal width
// for TOP/BOTTOM, nominal height for everything else. The axis is derived
// by checking whether the as-placed dimensions still match nominal within
// GaddiTolerance; a mismatch means the part was rotated and the marking
// line runs along the other axis.
func CalculateGaddiLineDirection(pl Placement) GaddiDirection {
	switch pl.Part.Role {
	case RoleTop, RoleBottom:
		dir := GaddiDirection{MarkDimension: MarkWidth, Length: pl.Part.Width}
		if nearlyEqual(pl.Width, pl.Part.Width) {
			dir.SheetAxis = AxisX
		} else {
			dir.SheetAxis = AxisY
		}
		return dir

	case RoleLeft, RoleRight:
		dir := GaddiDirection{MarkDimension: MarkHeight, Length: pl.Part.Height}
		if nearlyEqual(pl.Height, pl.Part.Height) {
			dir.SheetAxis = AxisY
		} else {
			dir.SheetAxis = AxisX
		}
		return dir

	default:
		dir := GaddiDirection{MarkDimension: MarkHeight, Length: pl.Part.Height}
		if nearlyEqual(pl.Height, pl.Part.Height) {
			dir.SheetAxis = AxisY
		} else {
			dir.SheetAxis = AxisX
		}
		return dir
	}
}

// ShouldShowGaddiMarking reports whether the placed panel receives a
// marking line at all: the part must have marking enabled and both placed
// dimensions must meet the minimum threshold.
func ShouldShowGaddiMarking(pl Placement) bool {
	return pl.Part.Gaddi &&
		pl.Width >= MinGaddiDimension &&
		pl.Height >= MinGaddiDimension
}

// GaddiValidation is the outcome of an independent check of the marking
// direction for one placement.
type GaddiValidation struct {
	IsValid  bool          `json:"is_valid"`
	Expected MarkDimension `json:"expected"`
	Actual   MarkDimension `json:"actual"`
	Reason   string        `json:"reason"`
}

// ValidateGaddiRule re-derives the expected marked dimension from the panel
// role alone and compares it against what CalculateGaddiLineDirection
// actually produced. The expectation is computed independently here, on
// purpose, so a regression in the axis-mapping cannot silently agree with
// itself.
func ValidateGaddiRule(pl Placement) GaddiValidation {
	// Independent role table: TOP and BOTTOM mark their width, every
	// other role marks its height.
	expected := MarkHeight
	if pl.Part.Role == RoleTop || pl.Part.Role == RoleBottom {
		expected = MarkWidth
	}

	actual := CalculateGaddiLineDirection(pl)

	v := GaddiValidation{
		Expected: expected,
		Actual:   actual.MarkDimension,
	}
	if actual.MarkDimension == expected {
		v.IsValid = true
		v.Reason = fmt.Sprintf("%s panel marks its nominal %s on sheet axis %s",
			pl.Part.Role, expected, actual.SheetAxis)
	} else {
		v.Reason = fmt.Sprintf("%s panel should mark its nominal %s but axis mapping produced %s",
			pl.Part.Role, expected, actual.MarkDimension)
	}
	return v
}

func nearlyEqual(a, b float64) bool {
	return math.Abs(a-b) <= GaddiTolerance
}
