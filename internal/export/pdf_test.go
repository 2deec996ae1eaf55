package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/panelforge/panelcut/internal/model"
)

// buildTestGroups creates a realistic two-material optimization result.
func buildTestGroups() []model.GroupResult {
	return []model.GroupResult{
		{
			Brand:    "Century",
			Laminate: "SF101+OST102",
			Sheets: []model.Sheet{
				{
					ID:     "century-sf101-ost102-1",
					Width:  1210,
					Height: 2420,
					Placements: []model.Placement{
						{
							Part: model.Part{
								ID: "p1", Role: model.RoleTop, Label: "Base Top",
								Width: 900, Height: 560,
								Brand: "Century", Laminate: "SF101+OST102",
								Gaddi: true,
							},
							X: 0, Y: 0, Width: 900, Height: 560,
						},
						{
							Part: model.Part{
								ID: "p2", Role: model.RoleLeft, Label: "Base Side L",
								Width: 560, Height: 864,
								Brand: "Century", Laminate: "SF101+OST102",
								Gaddi: true,
							},
							X: 0, Y: 563.2, Width: 560, Height: 864,
						},
						{
							Part: model.Part{
								ID: "p3", Role: model.RoleShelf, Label: "Shelf",
								Width: 864, Height: 548,
								Brand: "Century", Laminate: "SF101+OST102",
							},
							X: 0, Y: 1430.4, Width: 548, Height: 864, Rotated: true,
						},
					},
				},
			},
		},
		{
			Brand:    "Greenply",
			Laminate: "WH200",
			Sheets: []model.Sheet{
				{
					ID:     "greenply-wh200-1",
					Width:  1210,
					Height: 2420,
					Placements: []model.Placement{
						{
							Part: model.Part{
								ID: "p4", Role: model.RoleBack, Label: "Back Panel",
								Width: 900, Height: 864,
								Brand: "Greenply", Laminate: "WH200",
							},
							X: 0, Y: 0, Width: 900, Height: 864,
						},
					},
				},
			},
		},
	}
}

func TestExportPDF_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cutplan.pdf")

	err := ExportPDF(path, buildTestGroups(), model.DefaultCutConfig())
	if err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("PDF file is empty")
	}
	// 2 diagram pages + summary should be a reasonable size
	if info.Size() < 500 {
		t.Errorf("PDF file seems too small: %d bytes", info.Size())
	}
}

func TestExportPDF_EmptyGroups(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.pdf")

	err := ExportPDF(path, nil, model.DefaultCutConfig())
	if err == nil {
		t.Fatal("expected error for empty groups, got nil")
	}
}

func TestExportPDF_ManyPanels(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "many.pdf")

	// More panels than fill colors to exercise color cycling.
	var placements []model.Placement
	for i := 0; i < 20; i++ {
		placements = append(placements, model.Placement{
			Part: model.Part{
				ID:    string(rune('a' + i)),
				Role:  model.RoleShelf,
				Label: "Shelf",
				Width: 200, Height: 150,
				Brand: "Century", Laminate: "SF101",
			},
			X:     float64((i % 5) * 210),
			Y:     float64((i / 5) * 160),
			Width: 200, Height: 150,
		})
	}

	groups := []model.GroupResult{{
		Brand:    "Century",
		Laminate: "SF101",
		Sheets: []model.Sheet{{
			ID: "century-sf101-1", Width: 1210, Height: 2420, Placements: placements,
		}},
	}}

	if err := ExportPDF(path, groups, model.DefaultCutConfig()); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("PDF file is empty")
	}
}

func TestLabelFontSize(t *testing.T) {
	tests := []struct {
		w, h float64
		want float64
	}{
		{50, 50, 8},
		{25, 12, 6},
		{15, 8, 5},
	}
	for _, tt := range tests {
		got := labelFontSize(tt.w, tt.h)
		if got != tt.want {
			t.Errorf("labelFontSize(%v, %v) = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
}
