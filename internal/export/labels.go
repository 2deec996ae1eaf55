package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/panelforge/panelcut/internal/model"
	qrcode "github.com/skip2/go-qrcode"
)

// LabelInfo holds the data encoded into each panel label's QR code. The
// gaddi axis is included so the shop floor can scan which side carries the
// groove after any rotation.
type LabelInfo struct {
	PartLabel  string  `json:"label"`
	Role       string  `json:"role"`
	Width      float64 `json:"width_mm"`
	Height     float64 `json:"height_mm"`
	Brand      string  `json:"brand"`
	Laminate   string  `json:"laminate"`
	SheetID    string  `json:"sheet_id"`
	SheetIndex int     `json:"sheet"`
	Rotated    bool    `json:"rotated"`
	GaddiAxis  string  `json:"gaddi_axis,omitempty"`
	X          float64 `json:"x_mm"`
	Y          float64 `json:"y_mm"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10
// rows per page on US Letter).
const (
	labelPageWidth  = 215.9
	labelPageHeight = 279.4
	labelMarginTop  = 12.7
	labelMarginLeft = 4.8
	labelWidth      = 66.7
	labelHeight     = 25.4
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0
	labelPadding    = 2.0
)

// ExportLabels generates a PDF of QR-coded labels for every placed panel
// across all groups.
func ExportLabels(path string, groups []model.GroupResult) error {
	labels := CollectLabelInfos(groups)
	if len(labels) == 0 {
		return fmt.Errorf("no placed panels to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, i, x, y, label); err != nil {
			return fmt.Errorf("render label for %q: %w", label.PartLabel, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single label at the given position. seq keeps the
// registered QR image name unique per label.
func renderLabel(pdf *fpdf.Fpdf, seq int, x, y float64, info LabelInfo) error {
	// Light border as a cutting guide.
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("marshal label info: %w", err)
	}
	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%d", seq)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)

	partLabel := info.PartLabel
	if pdf.GetStringWidth(partLabel) > textW {
		for len(partLabel) > 0 && pdf.GetStringWidth(partLabel+"...") > textW {
			partLabel = partLabel[:len(partLabel)-1]
		}
		partLabel += "..."
	}
	pdf.CellFormat(textW, 4.5, partLabel, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	dims := fmt.Sprintf("%.0f x %.0f mm  %s", info.Width, info.Height, info.Laminate)
	pdf.CellFormat(textW, 3.5, dims, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	sheetInfo := fmt.Sprintf("Sheet %s @ (%.0f, %.0f)", info.SheetID, info.X, info.Y)
	pdf.CellFormat(textW, 3, sheetInfo, "", 1, "L", false, 0, "")

	if info.Rotated || info.GaddiAxis != "" {
		pdf.SetXY(textX, y+labelPadding+12.5)
		pdf.SetFont("Helvetica", "I", 6)
		pdf.SetTextColor(150, 100, 0)
		note := ""
		if info.Rotated {
			note = "Rotated 90\xb0"
		}
		if info.GaddiAxis != "" {
			if note != "" {
				note += "  "
			}
			note += "Gaddi: " + info.GaddiAxis
		}
		pdf.CellFormat(textW, 3, note, "", 0, "L", false, 0, "")
	}

	pdf.SetTextColor(0, 0, 0)
	return nil
}

// CollectLabelInfos extracts label information from optimization results
// for use in testing or alternative export formats.
func CollectLabelInfos(groups []model.GroupResult) []LabelInfo {
	var labels []LabelInfo
	for _, g := range groups {
		for sheetIdx, sheet := range g.Sheets {
			for _, pl := range sheet.Placements {
				info := LabelInfo{
					PartLabel:  pl.Part.Label,
					Role:       string(pl.Part.Role),
					Width:      pl.Width,
					Height:     pl.Height,
					Brand:      g.Brand,
					Laminate:   g.Laminate,
					SheetID:    sheet.ID,
					SheetIndex: sheetIdx + 1,
					Rotated:    pl.Rotated,
					X:          pl.X,
					Y:          pl.Y,
				}
				if model.ShouldShowGaddiMarking(pl) {
					info.GaddiAxis = string(model.CalculateGaddiLineDirection(pl).SheetAxis)
				}
				labels = append(labels, info)
			}
		}
	}
	return labels
}
