package engine

import (
	"fmt"

	"github.com/panelforge/panelcut/internal/model"
)

// fitEpsilon absorbs floating point noise in fit comparisons.
const fitEpsilon = 0.001

// UnpackableError reports a part that cannot fit a raw sheet in any
// permitted orientation. The part is never silently dropped; the caller
// surfaces it as a configuration error.
type UnpackableError struct {
	Part     model.Part
	Brand    string
	Laminate string
}

func (e *UnpackableError) Error() string {
	where := ""
	if e.Brand != "" || e.Laminate != "" {
		where = fmt.Sprintf(" in group %s/%s", e.Brand, e.Laminate)
	}
	return fmt.Sprintf("part %s (%s, %.0fx%.0fmm)%s does not fit any sheet orientation",
		e.Part.ID, e.Part.Role, e.Part.Width, e.Part.Height, where)
}

// packParts places parts onto sheets in the order given, using shelf
// packing: parts fill the current shelf left to right; when a part no
// longer fits the remaining width, a new shelf opens below the tallest
// part placed so far; when no shelf has vertical room, a new sheet opens.
//
// Kerf is added as trailing clearance on the right and bottom of every
// placed part. A part that does not fit its nominal orientation is retried
// with swapped dimensions when rotation is permitted.
//
// Callers are expected to pre-sort parts via a SortStrategy; identical
// input always produces an identical layout.
func packParts(parts []model.Part, cfg model.CutConfig) ([]model.Sheet, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	for _, p := range parts {
		if err := model.ValidatePart(p); err != nil {
			return nil, err
		}
		if !fitsSheet(p, cfg) {
			return nil, &UnpackableError{Part: p, Brand: p.Brand, Laminate: p.Laminate}
		}
	}

	sp := &shelfPacker{cfg: cfg}
	for _, p := range parts {
		sp.place(p)
	}
	return sp.sheets, nil
}

// fitsSheet reports whether the part fits an empty sheet in at least one
// permitted orientation. Trailing kerf may fall off the sheet edge, so the
// raw dimensions are compared.
func fitsSheet(p model.Part, cfg model.CutConfig) bool {
	if p.Width <= cfg.SheetWidth+fitEpsilon && p.Height <= cfg.SheetHeight+fitEpsilon {
		return true
	}
	return p.Rotate &&
		p.Height <= cfg.SheetWidth+fitEpsilon && p.Width <= cfg.SheetHeight+fitEpsilon
}

// shelfPacker tracks the cursor position on the sheet being filled.
type shelfPacker struct {
	cfg    model.CutConfig
	sheets []model.Sheet

	x, y   float64 // cursor: next placement origin on the current sheet
	shelfH float64 // height of the current shelf including trailing kerf
}

// place puts one part onto the sheets, opening shelves and sheets as
// needed. Parts are pre-checked by packParts, so a fresh sheet always
// accepts the part and the loop terminates.
func (sp *shelfPacker) place(p model.Part) {
	for {
		if len(sp.sheets) == 0 {
			sp.openSheet()
		}
		if w, h, rotated, ok := sp.fitCurrentShelf(p); ok {
			sp.put(p, w, h, rotated)
			return
		}
		if sp.x > 0 {
			// Reject the shelf, open the next one below the tallest
			// part placed so far.
			sp.y += sp.shelfH
			sp.x = 0
			sp.shelfH = 0
			continue
		}
		// Start of an empty shelf and still no fit: no vertical room
		// remains on this sheet.
		sp.openSheet()
	}
}

// fitCurrentShelf returns the orientation in which the part fits at the
// cursor, trying nominal first and the rotated orientation when permitted.
func (sp *shelfPacker) fitCurrentShelf(p model.Part) (w, h float64, rotated, ok bool) {
	if sp.fits(p.Width, p.Height) {
		return p.Width, p.Height, false, true
	}
	if p.Rotate && sp.fits(p.Height, p.Width) {
		return p.Height, p.Width, true, true
	}
	return 0, 0, false, false
}

func (sp *shelfPacker) fits(w, h float64) bool {
	return sp.x+w <= sp.cfg.SheetWidth+fitEpsilon &&
		sp.y+h <= sp.cfg.SheetHeight+fitEpsilon
}

// put records the placement and advances the cursor by the part width plus
// kerf. The shelf grows to the tallest part plus its trailing kerf.
func (sp *shelfPacker) put(p model.Part, w, h float64, rotated bool) {
	cur := &sp.sheets[len(sp.sheets)-1]
	cur.Placements = append(cur.Placements, model.Placement{
		Part:    p,
		X:       sp.x,
		Y:       sp.y,
		Width:   w,
		Height:  h,
		Rotated: rotated,
	})
	sp.x += w + sp.cfg.Kerf
	if rowH := h + sp.cfg.Kerf; rowH > sp.shelfH {
		sp.shelfH = rowH
	}
}

func (sp *shelfPacker) openSheet() {
	sp.sheets = append(sp.sheets, model.Sheet{
		ID:     fmt.Sprintf("sheet-%d", len(sp.sheets)+1),
		Width:  sp.cfg.SheetWidth,
		Height: sp.cfg.SheetHeight,
	})
	sp.x, sp.y, sp.shelfH = 0, 0, 0
}
