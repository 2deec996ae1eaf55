package export

import (
	"fmt"

	"github.com/panelforge/panelcut/internal/model"
	"github.com/xuri/excelize/v2"
)

// ExportExcel writes a cut-list workbook with one worksheet per material
// group plus a summary sheet.
func ExportExcel(path string, groups []model.GroupResult, cfg model.CutConfig) error {
	if len(groups) == 0 {
		return fmt.Errorf("no groups to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"D9E1F2"}},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	if err := writeSummarySheet(f, "Summary", headerStyle, groups, cfg); err != nil {
		return err
	}

	for _, g := range groups {
		name := sheetName(g)
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create worksheet %q: %w", name, err)
		}
		if err := writeGroupSheet(f, name, headerStyle, g); err != nil {
			return err
		}
	}

	f.SetActiveSheet(0)
	return f.SaveAs(path)
}

// sheetName builds a worksheet name from the group material, trimmed to
// Excel's 31-character limit.
func sheetName(g model.GroupResult) string {
	name := g.Brand + " " + g.Laminate
	if len(name) > 31 {
		name = name[:31]
	}
	return name
}

func writeSummarySheet(f *excelize.File, name string, headerStyle int, groups []model.GroupResult, cfg model.CutConfig) error {
	// The default first sheet is renamed rather than created.
	if err := f.SetSheetName("Sheet1", name); err != nil {
		return fmt.Errorf("rename summary sheet: %w", err)
	}

	f.SetCellValue(name, "A1", "Sheet size")
	f.SetCellValue(name, "B1", fmt.Sprintf("%.0f x %.0f mm", cfg.SheetWidth, cfg.SheetHeight))
	f.SetCellValue(name, "A2", "Kerf")
	f.SetCellValue(name, "B2", fmt.Sprintf("%.1f mm", cfg.Kerf))

	headers := []string{"Brand", "Laminate", "Sheets", "Panels", "Efficiency"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 4)
		f.SetCellValue(name, cell, h)
		f.SetCellStyle(name, cell, cell, headerStyle)
	}

	totalSheets := 0
	totalPanels := 0
	for i, g := range groups {
		row := i + 5
		panels := 0
		for _, s := range g.Sheets {
			panels += len(s.Placements)
		}
		totalSheets += g.SheetCount()
		totalPanels += panels

		f.SetCellValue(name, fmt.Sprintf("A%d", row), g.Brand)
		f.SetCellValue(name, fmt.Sprintf("B%d", row), g.Laminate)
		f.SetCellValue(name, fmt.Sprintf("C%d", row), g.SheetCount())
		f.SetCellValue(name, fmt.Sprintf("D%d", row), panels)
		f.SetCellValue(name, fmt.Sprintf("E%d", row), fmt.Sprintf("%.1f%%", g.Efficiency()))
	}

	totalRow := len(groups) + 5
	f.SetCellValue(name, fmt.Sprintf("A%d", totalRow), "Total")
	f.SetCellValue(name, fmt.Sprintf("C%d", totalRow), totalSheets)
	f.SetCellValue(name, fmt.Sprintf("D%d", totalRow), totalPanels)
	totalCell := fmt.Sprintf("A%d", totalRow)
	f.SetCellStyle(name, totalCell, totalCell, headerStyle)

	f.SetColWidth(name, "A", "B", 18)
	f.SetColWidth(name, "C", "E", 12)
	return nil
}

func writeGroupSheet(f *excelize.File, name string, headerStyle int, g model.GroupResult) error {
	headers := []string{"Sheet", "Panel", "Role", "Width (mm)", "Height (mm)", "X (mm)", "Y (mm)", "Rotated", "Gaddi"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("resolve header cell: %w", err)
		}
		f.SetCellValue(name, cell, h)
		f.SetCellStyle(name, cell, cell, headerStyle)
	}

	row := 2
	for sheetIdx, sheet := range g.Sheets {
		for _, pl := range sheet.Placements {
			gaddi := ""
			if model.ShouldShowGaddiMarking(pl) {
				dir := model.CalculateGaddiLineDirection(pl)
				gaddi = fmt.Sprintf("%s axis", dir.SheetAxis)
			}

			f.SetCellValue(name, fmt.Sprintf("A%d", row), sheetIdx+1)
			f.SetCellValue(name, fmt.Sprintf("B%d", row), pl.Part.Label)
			f.SetCellValue(name, fmt.Sprintf("C%d", row), string(pl.Part.Role))
			f.SetCellValue(name, fmt.Sprintf("D%d", row), pl.Width)
			f.SetCellValue(name, fmt.Sprintf("E%d", row), pl.Height)
			f.SetCellValue(name, fmt.Sprintf("F%d", row), pl.X)
			f.SetCellValue(name, fmt.Sprintf("G%d", row), pl.Y)
			if pl.Rotated {
				f.SetCellValue(name, fmt.Sprintf("H%d", row), "yes")
			}
			f.SetCellValue(name, fmt.Sprintf("I%d", row), gaddi)
			row++
		}
	}

	f.SetColWidth(name, "A", "A", 7)
	f.SetColWidth(name, "B", "B", 28)
	f.SetColWidth(name, "C", "I", 12)
	return nil
}
