package model

// ApplyDeletions returns a filtered view of packed groups with the given
// sheets and parts hidden. The packer itself never sees deletions; hiding
// is a pure post-processing step over stable sheet and part IDs, so the
// underlying layout is unchanged and the overlay can be dropped to restore
// the full result.
func ApplyDeletions(groups []GroupResult, deletedSheetIDs, deletedPartIDs map[string]bool) []GroupResult {
	out := make([]GroupResult, 0, len(groups))
	for _, g := range groups {
		fg := GroupResult{Brand: g.Brand, Laminate: g.Laminate}
		for _, s := range g.Sheets {
			if deletedSheetIDs[s.ID] {
				continue
			}
			fs := Sheet{ID: s.ID, Width: s.Width, Height: s.Height}
			for _, pl := range s.Placements {
				if deletedPartIDs[pl.Part.ID] {
					continue
				}
				fs.Placements = append(fs.Placements, pl)
			}
			fg.Sheets = append(fg.Sheets, fs)
		}
		out = append(out, fg)
	}
	return out
}
