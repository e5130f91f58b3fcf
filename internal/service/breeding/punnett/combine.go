package punnett

import (
	"sort"

	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/domain"
)

// Joint is the combined distribution over every gene of a pairing.
type Joint struct {
	// Rows are the reported combos, highest probability first.
	Rows []domain.CombinedOutcome
	// Truncated is set when a per-step cap dropped combos, so the full
	// distribution no longer sums to 1.
	Truncated bool
	// Kept is the number of combos alive after the last gene.
	Kept int
}

type combo struct {
	key       string
	breakdown []domain.GeneOutcome
	p         float64
}

// Distribution folds the genes in order into a joint distribution. After
// each gene, combos with the same ordered (gene, label) list are merged and
// only the comboCap most probable survive. The result is sorted by
// probability descending; it sums to 1 unless truncated.
func Distribution(results []domain.GeneResult, comboCap int) ([]domain.CombinedOutcome, bool) {
	if len(results) == 0 {
		return nil, false
	}
	if comboCap <= 0 {
		comboCap = DefaultOptions().ComboCap
	}

	combos := []combo{{p: 1}}
	truncated := false
	for _, r := range results {
		next := make([]combo, 0, len(combos)*len(r.Outcomes))
		index := make(map[string]int, cap(next))
		for _, c := range combos {
			for _, o := range r.Outcomes {
				p := c.p * o.Probability
				key := c.key + "\x1f" + r.Gene + "\x1e" + o.Label
				if i, ok := index[key]; ok {
					next[i].p += p
					continue
				}
				breakdown := make([]domain.GeneOutcome, len(c.breakdown), len(c.breakdown)+1)
				copy(breakdown, c.breakdown)
				breakdown = append(breakdown, domain.GeneOutcome{Gene: r.Gene, Label: o.Label})
				index[key] = len(next)
				next = append(next, combo{key: key, breakdown: breakdown, p: p})
			}
		}
		sort.SliceStable(next, func(i, j int) bool { return next[i].p > next[j].p })
		if len(next) > comboCap {
			next = next[:comboCap]
			truncated = true
		}
		combos = next
	}

	out := make([]domain.CombinedOutcome, len(combos))
	for i, c := range combos {
		out[i] = domain.CombinedOutcome{
			Breakdown:   c.breakdown,
			Label:       domain.CombinedLabel(c.breakdown),
			Probability: c.p,
		}
	}
	return out, truncated
}

// Combine folds per-gene results and selects the rows to report. Every
// combo at or above the significance threshold is reported, up to
// MaxCombined; when none reaches it the MaxCombined most probable are.
func Combine(results []domain.GeneResult, opts Options) Joint {
	opts = opts.withDefaults()
	all, truncated := Distribution(results, opts.ComboCap)

	significant := 0
	for significant < len(all) && all[significant].Probability >= opts.SignificantProbability {
		significant++
	}
	n := significant
	if n == 0 {
		n = len(all)
	}
	n = min(n, opts.MaxCombined)

	return Joint{Rows: all[:n], Truncated: truncated, Kept: len(all)}
}
