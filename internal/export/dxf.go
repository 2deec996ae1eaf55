package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/panelforge/panelcut/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/drawing"
)

// DXF layer names for the generated drawings.
const (
	layerSheet = "SHEET"
	layerParts = "PARTS"
	layerGaddi = "GADDI"
)

// ExportDXF writes one DXF drawing per sheet into dir, named after the
// sheet ID. Each drawing holds the sheet outline, every panel rectangle,
// and a center line on panels that carry a gaddi groove.
func ExportDXF(dir string, groups []model.GroupResult, cfg model.CutConfig) ([]string, error) {
	if len(groups) == 0 {
		return nil, fmt.Errorf("no groups to export")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	var paths []string
	for _, g := range groups {
		for _, sheet := range g.Sheets {
			if len(sheet.Placements) == 0 {
				continue
			}
			path := filepath.Join(dir, sheetFileName(sheet.ID)+".dxf")
			if err := writeSheetDXF(path, sheet, cfg); err != nil {
				return paths, fmt.Errorf("write %s: %w", path, err)
			}
			paths = append(paths, path)
		}
	}
	return paths, nil
}

// sheetFileName sanitizes a sheet ID for use as a file name.
func sheetFileName(id string) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, id)
	if safe == "" {
		safe = "sheet"
	}
	return safe
}

func writeSheetDXF(path string, sheet model.Sheet, cfg model.CutConfig) error {
	d := dxf.NewDrawing()

	if _, err := d.AddLayer(layerSheet, dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("add sheet layer: %w", err)
	}
	drawRect(d, 0, 0, sheet.Width, sheet.Height)

	if _, err := d.AddLayer(layerParts, dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("add parts layer: %w", err)
	}
	for _, pl := range sheet.Placements {
		drawRect(d, pl.X, pl.Y, pl.Width, pl.Height)
	}

	if _, err := d.AddLayer(layerGaddi, dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("add gaddi layer: %w", err)
	}
	for _, pl := range sheet.Placements {
		if !model.ShouldShowGaddiMarking(pl) {
			continue
		}
		dir := model.CalculateGaddiLineDirection(pl)
		if dir.SheetAxis == model.AxisX {
			y := pl.Y + pl.Height/2
			d.Line(pl.X, y, 0, pl.X+pl.Width, y, 0)
		} else {
			x := pl.X + pl.Width/2
			d.Line(x, pl.Y, 0, x, pl.Y+pl.Height, 0)
		}
	}

	return d.SaveAs(path)
}

// drawRect draws an axis-aligned rectangle as four LINE entities on the
// drawing's current layer.
func drawRect(d *drawing.Drawing, x, y, w, h float64) {
	d.Line(x, y, 0, x+w, y, 0)
	d.Line(x+w, y, 0, x+w, y+h, 0)
	d.Line(x+w, y+h, 0, x, y+h, 0)
	d.Line(x, y+h, 0, x, y, 0)
}
