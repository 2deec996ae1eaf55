// Package export renders cut optimization results into shop-floor
// documents: per-sheet cutting diagrams (PDF), QR part labels, cut-list
// workbooks (XLSX) and machine-importable sheet layouts (DXF).
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	"github.com/panelforge/panelcut/internal/model"
)

// partColor represents an RGB fill color for a placed panel.
type partColor struct {
	R, G, B int
}

var partColors = []partColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF generates a PDF with one cutting diagram page per sheet,
// grouped by material, followed by a summary page. Placed panels are
// annotated with their display dimensions and, where enabled, the gaddi
// marking line along the mapped sheet axis.
func ExportPDF(path string, groups []model.GroupResult, cfg model.CutConfig) error {
	if len(groups) == 0 {
		return fmt.Errorf("no optimization results to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for _, g := range groups {
		for i, sheet := range g.Sheets {
			pdf.AddPage()
			renderSheetPage(pdf, g, sheet, i+1)
		}
	}

	pdf.AddPage()
	renderSummaryPage(pdf, groups, cfg)

	return pdf.OutputFileAndClose(path)
}

// renderSheetPage draws a single packed sheet on the current page.
func renderSheetPage(pdf *fpdf.Fpdf, g model.GroupResult, sheet model.Sheet, sheetNum int) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("%s / %s - Sheet %d (%.0f x %.0f mm)",
		g.Brand, g.Laminate, sheetNum, sheet.Width, sheet.Height)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Panels: %d | Used area: %.0f mm2 | Efficiency: %.1f%%",
		len(sheet.Placements), sheet.UsedArea(), sheet.Efficiency())
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight

	scale := math.Min(drawWidth/sheet.Width, drawHeight/sheet.Height)
	canvasW := sheet.Width * scale
	canvasH := sheet.Height * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Sheet background.
	pdf.SetFillColor(210, 180, 140)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	for i, pl := range sheet.Placements {
		col := partColors[i%len(partColors)]
		pw := pl.Width * scale
		ph := pl.Height * scale
		px := offsetX + pl.X*scale
		py := offsetY + pl.Y*scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(px, py, pw, ph, "FD")

		drawGaddiLine(pdf, pl, px, py, pw, ph)

		if pw > 15 && ph > 8 {
			pdf.SetFont("Helvetica", "", labelFontSize(pw, ph))
			pdf.SetTextColor(0, 0, 0)

			display := model.ComputeDisplayDims(pl)
			label := pl.Part.Label
			dims := fmt.Sprintf("%.0fx%.0f", display.Width, display.Height)

			labelW := pdf.GetStringWidth(label)
			dimsW := pdf.GetStringWidth(dims)

			if labelW < pw-2 {
				pdf.SetXY(px+(pw-labelW)/2, py+ph/2-4)
				pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
			}
			if ph > 14 && dimsW < pw-2 {
				pdf.SetXY(px+(pw-dimsW)/2, py+ph/2)
				pdf.CellFormat(dimsW, 4, dims, "", 0, "C", false, 0, "")
			}
		}
	}
}

// drawGaddiLine renders the groove marking line through the middle of a
// placed panel, along whichever physical axis the marked dimension landed
// on after placement.
func drawGaddiLine(pdf *fpdf.Fpdf, pl model.Placement, px, py, pw, ph float64) {
	if !model.ShouldShowGaddiMarking(pl) {
		return
	}
	dir := model.CalculateGaddiLineDirection(pl)

	pdf.SetDrawColor(120, 20, 20)
	pdf.SetLineWidth(0.6)
	if dir.SheetAxis == model.AxisX {
		pdf.Line(px, py+ph/2, px+pw, py+ph/2)
	} else {
		pdf.Line(px+pw/2, py, px+pw/2, py+ph)
	}
}

// labelFontSize scales the font down for small rectangles.
func labelFontSize(w, h float64) float64 {
	size := 8.0
	if w < 30 || h < 15 {
		size = 6.0
	}
	if w < 20 || h < 10 {
		size = 5.0
	}
	return size
}

// renderSummaryPage draws overall statistics for all groups.
func renderSummaryPage(pdf *fpdf.Fpdf, groups []model.GroupResult, cfg model.CutConfig) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Optimization Summary", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+12)
	pdf.CellFormat(0, 6, fmt.Sprintf("Sheet size: %.0f x %.0f mm | Kerf: %.1f mm",
		cfg.SheetWidth, cfg.SheetHeight, cfg.Kerf), "", 1, "L", false, 0, "")

	y := marginTop + 24.0
	headers := []string{"Brand", "Laminate", "Sheets", "Panels", "Efficiency"}
	widths := []float64{55.0, 65.0, 25.0, 25.0, 35.0}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetXY(marginLeft, y)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", false, 0, "")
	}
	y += 7

	pdf.SetFont("Helvetica", "", 10)
	for _, g := range groups {
		panels := 0
		for _, s := range g.Sheets {
			panels += len(s.Placements)
		}
		row := []string{
			g.Brand,
			g.Laminate,
			fmt.Sprintf("%d", g.SheetCount()),
			fmt.Sprintf("%d", panels),
			fmt.Sprintf("%.1f%%", g.Efficiency()),
		}
		pdf.SetXY(marginLeft, y)
		for i, cell := range row {
			pdf.CellFormat(widths[i], 7, cell, "1", 0, "L", false, 0, "")
		}
		y += 7
	}
}
