package model

// PrepareParts resolves rotation permission for every part before packing.
// A part whose base laminate code has wood grain enabled in the preference
// map must keep its nominal orientation (Rotate = false); any other part,
// including one with no preference entry, may rotate freely.
//
// The input slice is not modified; a prepared copy is returned.
func PrepareParts(parts []Part, grainPrefs map[string]bool) []Part {
	prepared := make([]Part, len(parts))
	for i, p := range parts {
		p.Rotate = !grainPrefs[p.BaseLaminate()]
		prepared[i] = p
	}
	return prepared
}
