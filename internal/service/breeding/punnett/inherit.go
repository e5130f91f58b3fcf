package punnett

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/domain"
	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/service/breeding/genedict"
)

// state is one weighted genotype, described by its mutant allele count.
type state struct {
	copies      int
	probability float64
}

// Result is the per-gene part of a pairing's odds.
type Result struct {
	PerGene []domain.GeneResult
	// Skipped holds genes present on a parent that resolved to no
	// quantitative model.
	Skipped []string
}

// Calculator computes per-gene offspring distributions.
type Calculator struct {
	dict *genedict.Registry
	opts Options
}

// NewCalculator creates a calculator.
func NewCalculator(dict *genedict.Registry, opts Options) *Calculator {
	return &Calculator{dict: dict, opts: opts.withDefaults()}
}

// Compute returns the offspring distribution of every gene either parent
// carries. Genes are ordered by category weight then name; genes without a
// model (Other) are reported in Skipped and left out of PerGene.
func (c *Calculator) Compute(male, female Profile) Result {
	keys := make(map[string]struct{}, len(male)+len(female))
	for k := range male {
		keys[k] = struct{}{}
	}
	for k := range female {
		keys[k] = struct{}{}
	}

	var res Result
	for key := range keys {
		m, f := male[key], female[key]
		name := c.geneName(m, f)
		category := c.category(name, m, f)
		if !category.Modeled() {
			res.Skipped = append(res.Skipped, name)
			continue
		}
		res.PerGene = append(res.PerGene, c.computeGene(name, category, m, f))
	}

	sort.Slice(res.PerGene, func(i, j int) bool {
		a, b := res.PerGene[i], res.PerGene[j]
		if wa, wb := a.Category.Weight(), b.Category.Weight(); wa != wb {
			return wa < wb
		}
		return strings.ToLower(a.Gene) < strings.ToLower(b.Gene)
	})
	sort.Strings(res.Skipped)
	return res
}

// ComputeGene returns the distribution for a single gene entry pair. Either
// entry may be nil for a parent without the gene.
func (c *Calculator) ComputeGene(male, female *domain.GeneProfileEntry) (domain.GeneResult, bool) {
	if male == nil && female == nil {
		return domain.GeneResult{}, false
	}
	name := c.geneName(male, female)
	category := c.category(name, male, female)
	if !category.Modeled() {
		return domain.GeneResult{}, false
	}
	return c.computeGene(name, category, male, female), true
}

func (c *Calculator) computeGene(name string, category domain.Category, m, f *domain.GeneProfileEntry) domain.GeneResult {
	genotype := dominantStates
	describe := describeDominant
	if category == domain.CategoryRecessive {
		genotype = recessiveStates
		describe = describeRecessive
	}

	counts := cross(genotype(m), genotype(f))
	labels := outcomeLabels(name, category)

	byLabel := make(map[string]int, 3)
	var outcomes []domain.Outcome
	var heaviness []int
	for copies := 2; copies >= 0; copies-- {
		p := counts[copies]
		if p <= 0 {
			continue
		}
		label := labels[copies]
		if i, ok := byLabel[label]; ok {
			outcomes[i].Probability += p
			continue
		}
		byLabel[label] = len(outcomes)
		outcomes = append(outcomes, domain.Outcome{Label: label, Probability: p})
		heaviness = append(heaviness, copies)
	}
	outcomes = c.pruneNoise(outcomes, heaviness)

	return domain.GeneResult{
		Gene:        name,
		Category:    category,
		Outcomes:    outcomes,
		MaleState:   describe(m),
		FemaleState: describe(f),
	}
}

// cross sums offspring mass by mutant allele count over every pair of
// parent genotype states and every pair of gametes.
func cross(male, female []state) [3]float64 {
	var out [3]float64
	for _, ms := range male {
		for _, fs := range female {
			weight := ms.probability * fs.probability
			if weight == 0 {
				continue
			}
			mg := gametes(ms.copies)
			fg := gametes(fs.copies)
			for ma, mp := range mg {
				for fa, fp := range fg {
					out[ma+fa] += weight * mp * fp
				}
			}
		}
	}
	return out
}

// gametes maps a parent's mutant copy count to the probability of passing
// 0 or 1 mutant alleles.
func gametes(copies int) [2]float64 {
	switch copies {
	case 2:
		return [2]float64{0, 1}
	case 1:
		return [2]float64{0.5, 0.5}
	}
	return [2]float64{1, 0}
}

// recessiveStates: visual is rr, a certain het is Nr, a possible het is Nr
// with its best probability and NN otherwise.
func recessiveStates(e *domain.GeneProfileEntry) []state {
	switch {
	case e == nil:
		return []state{{copies: 0, probability: 1}}
	case e.VisualCount > 0 || e.SuperVisual:
		return []state{{copies: 2, probability: 1}}
	case e.HetCount > 0:
		return []state{{copies: 1, probability: 1}}
	}
	return possibleHet(e)
}

// dominantStates: a super is two copies, a visual or certain het one copy.
func dominantStates(e *domain.GeneProfileEntry) []state {
	switch {
	case e == nil:
		return []state{{copies: 0, probability: 1}}
	case e.SuperVisual:
		return []state{{copies: 2, probability: 1}}
	case e.VisualCount > 0 || e.HetCount > 0:
		return []state{{copies: 1, probability: 1}}
	}
	return possibleHet(e)
}

func possibleHet(e *domain.GeneProfileEntry) []state {
	p := e.BestPossibleHet()
	if p <= 0 {
		return []state{{copies: 0, probability: 1}}
	}
	p = min(p, 1)
	return []state{{copies: 1, probability: p}, {copies: 0, probability: 1 - p}}
}

// outcomeLabels indexes labels by mutant allele count. Plain Dominant genes
// report two copies under the gene name; only Incomplete Dominant genes
// have a super form.
func outcomeLabels(gene string, category domain.Category) [3]string {
	switch category {
	case domain.CategoryRecessive:
		return [3]string{domain.NormalLabel, domain.HetLabel(gene), domain.VisualLabel(gene)}
	case domain.CategoryIncompleteDominant:
		return [3]string{domain.NormalLabel, gene, domain.SuperLabel(gene)}
	}
	return [3]string{domain.NormalLabel, gene, gene}
}

// pruneNoise drops outcomes below the noise floor, renormalizes the rest
// to sum to 1 and orders them by probability, mutant-heavier first on ties.
func (c *Calculator) pruneNoise(outcomes []domain.Outcome, heaviness []int) []domain.Outcome {
	type row struct {
		outcome domain.Outcome
		copies  int
	}
	rows := make([]row, 0, len(outcomes))
	total := 0.0
	for i, o := range outcomes {
		if o.Probability < c.opts.NoiseFloor {
			continue
		}
		rows = append(rows, row{outcome: o, copies: heaviness[i]})
		total += o.Probability
	}
	if total <= 0 {
		return nil
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].outcome.Probability != rows[j].outcome.Probability {
			return rows[i].outcome.Probability > rows[j].outcome.Probability
		}
		return rows[i].copies > rows[j].copies
	})

	out := make([]domain.Outcome, len(rows))
	for i, r := range rows {
		out[i] = domain.Outcome{Label: r.outcome.Label, Probability: r.outcome.Probability / total}
	}
	return out
}

// geneName prefers the dictionary spelling of whichever parent has the gene.
func (c *Calculator) geneName(m, f *domain.GeneProfileEntry) string {
	for _, e := range []*domain.GeneProfileEntry{m, f} {
		if e == nil {
			continue
		}
		if name, ok := c.dict.LookupCanonical(e.Gene); ok {
			return name
		}
	}
	if m != nil {
		return m.Gene
	}
	return f.Gene
}

// category is the first known of the male group, the female group and the
// dictionary category, then whatever the parents' tokens imply.
func (c *Calculator) category(name string, m, f *domain.GeneProfileEntry) domain.Category {
	if m != nil && m.Group != "" {
		return m.Group
	}
	if f != nil && f.Group != "" {
		return f.Group
	}
	if cat, ok := c.dict.Category(name); ok {
		return cat
	}
	if g := inferGroup(m); g != "" {
		return g
	}
	return inferGroup(f)
}

func describeRecessive(e *domain.GeneProfileEntry) string {
	switch {
	case e == nil:
		return "Normal"
	case e.VisualCount > 0 || e.SuperVisual:
		return "Visual"
	case e.HetCount > 0:
		return "Het"
	}
	return describePossible(e)
}

func describeDominant(e *domain.GeneProfileEntry) string {
	switch {
	case e == nil:
		return "Normal"
	case e.SuperVisual:
		return "Super"
	case e.VisualCount > 0:
		return "Visual"
	case e.HetCount > 0:
		return "Het"
	}
	return describePossible(e)
}

func describePossible(e *domain.GeneProfileEntry) string {
	p := e.BestPossibleHet()
	if p <= 0 {
		return "Normal"
	}
	pct := math.Round(min(p, 1)*1000) / 10
	return strconv.FormatFloat(pct, 'f', -1, 64) + "% possible het"
}
