package model

import (
	"math"
	"sort"

	"github.com/google/uuid"
)

// Offcut represents a usable rectangular remnant left over after cutting.
type Offcut struct {
	ID         string  `json:"id"`
	SheetID    string  `json:"sheet_id"`    // which sheet it came from
	SheetIndex int     `json:"sheet_index"` // index of the source sheet in its group
	X          float64 `json:"x"`           // mm from sheet left edge
	Y          float64 `json:"y"`           // mm from sheet top edge
	Width      float64 `json:"width"`       // usable width, mm
	Height     float64 `json:"height"`      // usable height, mm
}

// Area returns the area of the offcut in square mm.
func (o Offcut) Area() float64 {
	return o.Width * o.Height
}

// MinOffcutDimension is the minimum width or height (mm) for a remnant to
// be considered usable. Smaller remnants are treated as waste.
const MinOffcutDimension = 50.0

// MinOffcutArea is the minimum area (sq mm) for a usable remnant.
const MinOffcutArea = 10000.0

// DetectOffcuts analyzes a packed sheet and identifies the rectangular
// remnant strips that are large enough to be reused: the strip to the
// right of all placements and the strip below them.
func DetectOffcuts(s Sheet, sheetIndex int, kerf float64) []Offcut {
	if len(s.Placements) == 0 {
		return []Offcut{{
			ID:         uuid.New().String()[:8],
			SheetID:    s.ID,
			SheetIndex: sheetIndex,
			Width:      s.Width,
			Height:     s.Height,
		}}
	}

	var maxRight, maxBottom float64
	for _, pl := range s.Placements {
		if r := pl.KerfRight(kerf); r > maxRight {
			maxRight = r
		}
		if b := pl.KerfBottom(kerf); b > maxBottom {
			maxBottom = b
		}
	}

	var offcuts []Offcut

	rightStripW := s.Width - maxRight
	if rightStripW >= MinOffcutDimension && s.Height >= MinOffcutDimension &&
		rightStripW*s.Height >= MinOffcutArea {
		offcuts = append(offcuts, Offcut{
			ID:         uuid.New().String()[:8],
			SheetID:    s.ID,
			SheetIndex: sheetIndex,
			X:          maxRight,
			Y:          0,
			Width:      rightStripW,
			Height:     s.Height,
		})
	}

	// Bottom strip only extends to the right edge of the placements so it
	// never overlaps the right strip.
	bottomStripH := s.Height - maxBottom
	usableBottomW := math.Min(maxRight, s.Width)
	if bottomStripH >= MinOffcutDimension && usableBottomW >= MinOffcutDimension &&
		bottomStripH*usableBottomW >= MinOffcutArea {
		offcuts = append(offcuts, Offcut{
			ID:         uuid.New().String()[:8],
			SheetID:    s.ID,
			SheetIndex: sheetIndex,
			X:          0,
			Y:          maxBottom,
			Width:      usableBottomW,
			Height:     bottomStripH,
		})
	}

	sort.Slice(offcuts, func(i, j int) bool {
		return offcuts[i].Area() > offcuts[j].Area()
	})
	return offcuts
}

// DetectGroupOffcuts collects usable offcuts across all sheets of a group.
func DetectGroupOffcuts(g GroupResult, kerf float64) []Offcut {
	var all []Offcut
	for i, s := range g.Sheets {
		if len(s.Placements) == 0 {
			continue
		}
		all = append(all, DetectOffcuts(s, i, kerf)...)
	}
	return all
}
