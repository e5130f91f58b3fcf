package traits

import (
	"sort"

	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/service/breeding/genedict"
)

// maxTilingsPerCell bounds how many suffix tilings each table cell keeps.
// Cells keep their shortest tilings, which is all the fewest-token choice
// at the head needs.
const maxTilingsPerCell = 16

// segmentCompact tiles a separator-free fragment with compact dictionary
// keys and returns the canonical names of the tiling with the fewest
// tokens. It returns nil when no tiling covers every character.
//
// tilings[i] holds the tilings of compact[i:]; the table is filled from
// the end so every suffix is solved once. Each step looks at prefixes no
// longer than the longest compact key, longest first.
func (s *Segmenter) segmentCompact(fragment string) []string {
	compact := []rune(genedict.CompactKey(fragment))
	n := len(compact)
	if n == 0 {
		return nil
	}
	maxLen := s.dict.MaxCompactLen()

	tilings := make([][][]string, n+1)
	tilings[n] = [][]string{{}}
	for i := n - 1; i >= 0; i-- {
		var cell [][]string
		for l := min(maxLen, n-i); l >= 1; l-- {
			rest := tilings[i+l]
			if len(rest) == 0 {
				continue
			}
			name, ok := s.dict.LookupCompact(string(compact[i : i+l]))
			if !ok {
				continue
			}
			for _, suffix := range rest {
				tiling := make([]string, 0, len(suffix)+1)
				tiling = append(tiling, name)
				tiling = append(tiling, suffix...)
				cell = append(cell, tiling)
			}
		}
		if len(cell) > maxTilingsPerCell {
			sort.SliceStable(cell, func(a, b int) bool {
				return len(cell[a]) < len(cell[b])
			})
			cell = cell[:maxTilingsPerCell]
		}
		tilings[i] = cell
	}

	var best []string
	for _, t := range tilings[0] {
		if best == nil || len(t) < len(best) {
			best = t
		}
	}
	return best
}
