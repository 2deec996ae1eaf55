package model

import "strconv"

// DisplayDims is a width/height pair oriented for human display.
type DisplayDims struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ComputeDisplayDims derives the display dimensions for a placed panel from
// its nominal dimensions. TOP/BOTTOM and LEFT/RIGHT panels follow the
// cabinet drawing convention that intentionally swaps semantic width and
// height; every other role displays its nominal dimensions directly.
func ComputeDisplayDims(pl Placement) DisplayDims {
	switch pl.Part.Role {
	case RoleTop, RoleBottom, RoleLeft, RoleRight:
		return DisplayDims{Width: pl.Part.Height, Height: pl.Part.Width}
	default:
		return DisplayDims{Width: pl.Part.Width, Height: pl.Part.Height}
	}
}

// GetDisplayDims resolves display dimensions from a loosely-typed panel
// payload as received from external collaborators (preview/summary layers).
// Resolution falls through a fixed precedence when fields are sparse:
//
//	displayW/displayH -> w/h (as-placed) -> nomW/nomH -> width/height
//
// A truthy "_swapped" flag swaps the resolved pair. Non-numeric or missing
// values degrade to 0, 0; untyped or nil input yields {0, 0}.
func GetDisplayDims(panel map[string]any) DisplayDims {
	if panel == nil {
		return DisplayDims{}
	}

	resolve := func(keys ...string) float64 {
		for _, k := range keys {
			if v, ok := panel[k]; ok {
				if f, ok := toFloat(v); ok {
					return f
				}
			}
		}
		return 0
	}

	w := resolve("displayW", "w", "nomW", "width")
	h := resolve("displayH", "h", "nomH", "height")

	if swapped, _ := panel["_swapped"].(bool); swapped {
		w, h = h, w
	}
	return DisplayDims{Width: w, Height: h}
}

// toFloat coerces the numeric shapes that survive JSON and template
// round-trips. Anything else is rejected rather than guessed at.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}
