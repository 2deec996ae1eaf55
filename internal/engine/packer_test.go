package engine

import (
	"testing"

	"github.com/panelforge/panelcut/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() model.CutConfig {
	return model.CutConfig{SheetWidth: 1000, SheetHeight: 1000, Kerf: 0}
}

func part(id string, w, h float64, rotate bool) model.Part {
	return model.Part{ID: id, Role: model.RoleShelf, Label: id, Width: w, Height: h, Rotate: rotate}
}

// assertLayoutValid checks the two packing invariants: every placement
// lies within sheet bounds and no two placements overlap once inflated by
// kerf on their trailing edges.
func assertLayoutValid(t *testing.T, sheets []model.Sheet, kerf float64) {
	t.Helper()
	for _, s := range sheets {
		for i, a := range s.Placements {
			assert.GreaterOrEqual(t, a.X, 0.0)
			assert.GreaterOrEqual(t, a.Y, 0.0)
			assert.LessOrEqual(t, a.X+a.Width, s.Width+fitEpsilon, "placement %s exceeds sheet width", a.Part.ID)
			assert.LessOrEqual(t, a.Y+a.Height, s.Height+fitEpsilon, "placement %s exceeds sheet height", a.Part.ID)
			for _, b := range s.Placements[i+1:] {
				assert.False(t, a.Overlaps(b, kerf),
					"placements %s and %s overlap", a.Part.ID, b.Part.ID)
			}
		}
	}
}

func TestPackParts_SinglePartFillsSheet(t *testing.T) {
	sheets, err := packParts([]model.Part{part("a", 1000, 1000, true)}, testConfig())
	require.NoError(t, err)
	require.Len(t, sheets, 1)
	require.Len(t, sheets[0].Placements, 1)

	pl := sheets[0].Placements[0]
	assert.Zero(t, pl.X)
	assert.Zero(t, pl.Y)
	assert.False(t, pl.Rotated)
	assert.InDelta(t, 100.0, sheets[0].Efficiency(), 1e-9)
}

func TestPackParts_ExactTiling(t *testing.T) {
	parts := []model.Part{
		part("a", 500, 500, true),
		part("b", 500, 500, true),
		part("c", 500, 500, true),
		part("d", 500, 500, true),
	}
	sheets, err := packParts(parts, testConfig())
	require.NoError(t, err)
	require.Len(t, sheets, 1, "four 500x500 parts tile one 1000x1000 sheet")
	assert.Len(t, sheets[0].Placements, 4)
	assert.InDelta(t, 100.0, sheets[0].Efficiency(), 1e-9)
	assertLayoutValid(t, sheets, 0)
}

func TestPackParts_OpensNewShelfAndSheet(t *testing.T) {
	// Three full-width parts of height 400 with a 150 kerf: shelves open
	// at y=0 and y=550, and the third part no longer has vertical room.
	parts := []model.Part{
		part("a", 1000, 400, false),
		part("b", 1000, 400, false),
		part("c", 1000, 400, false),
	}
	cfg := testConfig()
	cfg.Kerf = 150

	sheets, err := packParts(parts, cfg)
	require.NoError(t, err)
	require.Len(t, sheets, 2)
	require.Len(t, sheets[0].Placements, 2)
	require.Len(t, sheets[1].Placements, 1)
	assert.Equal(t, 550.0, sheets[0].Placements[1].Y)
	assert.Zero(t, sheets[1].Placements[0].Y)
	assertLayoutValid(t, sheets, cfg.Kerf)
}

func TestPackParts_KerfClearance(t *testing.T) {
	// 499 + 3 kerf + 499 = 1001 > 1000: the second part must not share
	// the shelf.
	parts := []model.Part{
		part("a", 499, 400, false),
		part("b", 499, 400, false),
	}
	cfg := testConfig()
	cfg.Kerf = 3

	sheets, err := packParts(parts, cfg)
	require.NoError(t, err)
	require.Len(t, sheets, 1)
	require.Len(t, sheets[0].Placements, 2)

	first, second := sheets[0].Placements[0], sheets[0].Placements[1]
	assert.Zero(t, first.X)
	assert.Zero(t, second.X, "second part starts a new shelf")
	assert.InDelta(t, 403, second.Y, 1e-9, "new shelf opens below tallest part plus kerf")
	assertLayoutValid(t, sheets, cfg.Kerf)
}

func TestPackParts_RotationRetry(t *testing.T) {
	cfg := model.CutConfig{SheetWidth: 500, SheetHeight: 1000, Kerf: 0}
	sheets, err := packParts([]model.Part{part("a", 800, 400, true)}, cfg)
	require.NoError(t, err)
	require.Len(t, sheets, 1)

	pl := sheets[0].Placements[0]
	assert.True(t, pl.Rotated)
	assert.Equal(t, 400.0, pl.Width, "as-placed width is the nominal height")
	assert.Equal(t, 800.0, pl.Height)
	assert.Equal(t, 800.0, pl.Part.Width, "nominal dimensions stay untouched")
}

func TestPackParts_GrainLockNeverRotates(t *testing.T) {
	// Rotating would save a sheet, but the part is grain-locked.
	cfg := model.CutConfig{SheetWidth: 500, SheetHeight: 1000, Kerf: 0}
	_, err := packParts([]model.Part{part("a", 800, 400, false)}, cfg)

	var unpackable *UnpackableError
	require.ErrorAs(t, err, &unpackable)
	assert.Equal(t, "a", unpackable.Part.ID)
}

func TestPackParts_GrainLockKeepsOrientation(t *testing.T) {
	// Tall narrow sheet, two wide flat parts. Rotated they would share a
	// column; grain-locked they stack as separate shelves.
	cfg := model.CutConfig{SheetWidth: 1000, SheetHeight: 1000, Kerf: 0}
	parts := []model.Part{
		part("a", 900, 100, false),
		part("b", 900, 100, false),
	}
	sheets, err := packParts(parts, cfg)
	require.NoError(t, err)
	for _, s := range sheets {
		for _, pl := range s.Placements {
			assert.False(t, pl.Rotated)
			assert.Equal(t, pl.Part.Width, pl.Width)
			assert.Equal(t, pl.Part.Height, pl.Height)
		}
	}
}

func TestPackParts_UnpackablePartReported(t *testing.T) {
	cfg := testConfig()
	parts := []model.Part{part("ok", 500, 500, true), part("huge", 3000, 3000, true)}

	_, err := packParts(parts, cfg)
	var unpackable *UnpackableError
	require.ErrorAs(t, err, &unpackable)
	assert.Equal(t, "huge", unpackable.Part.ID)
	assert.Contains(t, unpackable.Error(), "huge")
}

func TestPackParts_InvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.SheetHeight = 0
	_, err := packParts([]model.Part{part("a", 100, 100, true)}, cfg)

	var invErr *model.InvalidDimensionError
	require.ErrorAs(t, err, &invErr)
}

func TestPackParts_Deterministic(t *testing.T) {
	parts := []model.Part{
		part("a", 400, 300, true),
		part("b", 700, 200, true),
		part("c", 350, 350, false),
		part("d", 920, 180, true),
		part("e", 120, 640, true),
	}
	cfg := testConfig()
	cfg.Kerf = 3.2

	first, err := packParts(parts, cfg)
	require.NoError(t, err)
	second, err := packParts(parts, cfg)
	require.NoError(t, err)

	assert.Equal(t, first, second, "identical input must produce identical layout")
	assertLayoutValid(t, first, cfg.Kerf)
}
