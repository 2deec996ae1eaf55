package engine

import (
	"sort"

	"github.com/panelforge/panelcut/internal/model"
)

// SortStrategy selects the pre-sort heuristic applied to parts before
// packing. All strategies sort in decreasing order of their key and break
// ties by part ID so the packing input, and therefore the layout, is fully
// deterministic.
type SortStrategy int

const (
	SortArea SortStrategy = iota
	SortHeight
	SortWidth
	SortPerimeter
	SortLongerEdge
)

// Strategies lists every available pre-sort heuristic. The multi-pass
// selector runs the packer once per entry.
var Strategies = []SortStrategy{
	SortArea, SortHeight, SortWidth, SortPerimeter, SortLongerEdge,
}

func (s SortStrategy) String() string {
	switch s {
	case SortArea:
		return "area"
	case SortHeight:
		return "height"
	case SortWidth:
		return "width"
	case SortPerimeter:
		return "perimeter"
	case SortLongerEdge:
		return "longer-edge"
	default:
		return "unknown"
	}
}

// key returns the decreasing sort key for a part under this strategy.
func (s SortStrategy) key(p model.Part) float64 {
	switch s {
	case SortHeight:
		return p.Height
	case SortWidth:
		return p.Width
	case SortPerimeter:
		return 2 * (p.Width + p.Height)
	case SortLongerEdge:
		if p.Width > p.Height {
			return p.Width
		}
		return p.Height
	default:
		return p.Width * p.Height
	}
}

// Sort orders parts in place: decreasing key, part ID as the tie-break.
func (s SortStrategy) Sort(parts []model.Part) {
	sort.SliceStable(parts, func(i, j int) bool {
		ki, kj := s.key(parts[i]), s.key(parts[j])
		if ki != kj {
			return ki > kj
		}
		return parts[i].ID < parts[j].ID
	})
}
