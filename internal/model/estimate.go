package model

import "math"

// PurchaseEstimate holds the results of a sheet purchasing calculation.
type PurchaseEstimate struct {
	TotalPartArea     float64 `json:"total_part_area"`     // total part area incl. kerf allowance (sq mm)
	SheetArea         float64 `json:"sheet_area"`          // area of one sheet (sq mm)
	SheetsNeededExact float64 `json:"sheets_needed_exact"` // exact fractional number of sheets
	SheetsNeededMin   int     `json:"sheets_needed_min"`   // minimum sheets (ceiling of exact)
	SheetsWithWaste   int     `json:"sheets_with_waste"`   // recommended sheets incl. waste factor
	WastePercent      float64 `json:"waste_percent"`       // waste factor applied (e.g. 15 for 15%)
	EstimatedCost     float64 `json:"estimated_cost"`      // total cost if pricing available
	PricePerSheet     float64 `json:"price_per_sheet"`     // price used for estimation
	KerfWidth         float64 `json:"kerf_width"`          // kerf used in calculation
}

// CalculatePurchaseEstimate computes how many raw sheets to buy for a part
// list. Each part is inflated by one kerf width on each axis since every
// piece costs a cut, and an additional waste percentage covers offcuts and
// grain-lock packing loss.
func CalculatePurchaseEstimate(parts []Part, cfg CutConfig, wastePercent, pricePerSheet float64) PurchaseEstimate {
	var totalPartArea float64
	for _, p := range parts {
		totalPartArea += (p.Width + cfg.Kerf) * (p.Height + cfg.Kerf)
	}

	sheetArea := cfg.SheetWidth * cfg.SheetHeight
	if sheetArea <= 0 {
		return PurchaseEstimate{
			TotalPartArea: totalPartArea,
			WastePercent:  wastePercent,
			KerfWidth:     cfg.Kerf,
		}
	}

	exactSheets := totalPartArea / sheetArea
	minSheets := int(math.Ceil(exactSheets))

	wasteFactor := 1.0 + (wastePercent / 100.0)
	sheetsWithWaste := int(math.Ceil(exactSheets * wasteFactor))
	if sheetsWithWaste < minSheets {
		sheetsWithWaste = minSheets
	}

	return PurchaseEstimate{
		TotalPartArea:     totalPartArea,
		SheetArea:         sheetArea,
		SheetsNeededExact: exactSheets,
		SheetsNeededMin:   minSheets,
		SheetsWithWaste:   sheetsWithWaste,
		WastePercent:      wastePercent,
		EstimatedCost:     float64(sheetsWithWaste) * pricePerSheet,
		PricePerSheet:     pricePerSheet,
		KerfWidth:         cfg.Kerf,
	}
}
