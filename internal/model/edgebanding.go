package model

import "math"

// bandedEdges returns how many edges of a panel receive edge banding and
// the linear banding length per piece, following the shop convention:
// shutters are banded on all four edges, shelves and gaddi-marked carcass
// panels only on the exposed front edge, everything else not at all.
func bandedEdges(p Part) (edges int, length float64) {
	switch p.Role {
	case RoleShutter:
		return 4, 2 * (p.Width + p.Height)
	case RoleShelf:
		return 1, p.Width
	case RoleTop, RoleBottom:
		if p.Gaddi {
			return 1, p.Width
		}
	case RoleLeft, RoleRight, RoleCenterPost:
		if p.Gaddi {
			return 1, p.Height
		}
	}
	return 0, 0
}

// EdgeBandingSummary holds the calculated edge banding requirements for a
// part list.
type EdgeBandingSummary struct {
	TotalLinearMM    float64 `json:"total_linear_mm"`     // total banding length, no waste
	TotalLinearM     float64 `json:"total_linear_m"`      // same, in meters
	WastePercent     float64 `json:"waste_percent"`       // waste percentage applied
	TotalWithWasteMM float64 `json:"total_with_waste_mm"` // total with waste, mm
	TotalWithWasteM  float64 `json:"total_with_waste_m"`  // total with waste, meters
	PartCount        int     `json:"part_count"`          // pieces needing banding
	EdgeCount        int     `json:"edge_count"`          // individual edges banded
}

// CalculateEdgeBanding computes total edge banding for a list of parts.
// wastePercent is the additional percentage to add for waste (e.g. 10 for 10%).
func CalculateEdgeBanding(parts []Part, wastePercent float64) EdgeBandingSummary {
	var totalMM float64
	var partCount, edgeCount int

	for _, p := range parts {
		edges, length := bandedEdges(p)
		if edges == 0 {
			continue
		}
		totalMM += length
		partCount++
		edgeCount += edges
	}

	wasteFactor := 1.0 + (wastePercent / 100.0)
	totalWithWaste := math.Ceil(totalMM * wasteFactor)

	return EdgeBandingSummary{
		TotalLinearMM:    totalMM,
		TotalLinearM:     totalMM / 1000.0,
		WastePercent:     wastePercent,
		TotalWithWasteMM: totalWithWaste,
		TotalWithWasteM:  totalWithWaste / 1000.0,
		PartCount:        partCount,
		EdgeCount:        edgeCount,
	}
}

// PerPartEdgeBanding is a per-part breakdown of edge banding needs.
type PerPartEdgeBanding struct {
	Label  string    `json:"label"`
	Role   PanelRole `json:"role"`
	Width  float64   `json:"width"`
	Height float64   `json:"height"`
	Edges  int       `json:"edges"`
	Length float64   `json:"length"` // mm per piece
}

// CalculatePerPartEdgeBanding returns a breakdown of banding per part.
func CalculatePerPartEdgeBanding(parts []Part) []PerPartEdgeBanding {
	var results []PerPartEdgeBanding
	for _, p := range parts {
		edges, length := bandedEdges(p)
		if edges == 0 {
			continue
		}
		results = append(results, PerPartEdgeBanding{
			Label:  p.Label,
			Role:   p.Role,
			Width:  p.Width,
			Height: p.Height,
			Edges:  edges,
			Length: length,
		})
	}
	return results
}
