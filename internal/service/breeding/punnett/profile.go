package punnett

import (
	"math"

	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/domain"
	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/service/breeding/genedict"
)

// Profile is one animal's per-gene state keyed by genedict.NormalizeKey.
// Genes the animal carries no information about are absent.
type Profile map[string]*domain.GeneProfileEntry

// Builder folds classified tokens into profiles.
type Builder struct {
	dict *genedict.Registry
	opts Options
}

// NewBuilder creates a profile builder.
func NewBuilder(dict *genedict.Registry, opts Options) *Builder {
	return &Builder{dict: dict, opts: opts.withDefaults()}
}

// Build folds one animal's visual and het tokens into a profile.
//
// Visual tokens count toward VisualCount and set SuperVisual when marked
// super. Het tokens at or above the certain-het threshold count toward
// HetCount; lower positive probabilities are kept as possible hets. Het
// tokens with probability 0 carry no information and are ignored.
func (b *Builder) Build(visual, het []domain.GeneToken) Profile {
	p := make(Profile)
	for _, tok := range visual {
		e := p.entry(tok.Gene)
		if e == nil {
			continue
		}
		e.VisualCount++
		if tok.IsSuper {
			e.SuperVisual = true
		}
	}
	for _, tok := range het {
		prob := tok.Probability
		if math.IsNaN(prob) || prob <= 0 {
			continue
		}
		e := p.entry(tok.Gene)
		if e == nil {
			continue
		}
		if prob >= b.opts.CertainHetThreshold {
			e.HetCount++
			continue
		}
		e.PossibleHetProbabilities = append(e.PossibleHetProbabilities, min(prob, 1))
	}
	for _, e := range p {
		e.Group = b.group(e)
	}
	return p
}

func (p Profile) entry(gene string) *domain.GeneProfileEntry {
	key := genedict.NormalizeKey(gene)
	if key == "" {
		return nil
	}
	e, ok := p[key]
	if !ok {
		e = &domain.GeneProfileEntry{Gene: gene}
		p[key] = e
	}
	return e
}

// group resolves the inheritance category from the dictionary, falling
// back to what the tokens imply: any het signal means Recessive, visual
// presence means Incomplete Dominant.
func (b *Builder) group(e *domain.GeneProfileEntry) domain.Category {
	if c, ok := b.dict.Category(e.Gene); ok {
		return c
	}
	return inferGroup(e)
}

func inferGroup(e *domain.GeneProfileEntry) domain.Category {
	switch {
	case e == nil:
		return ""
	case e.HasHetSignal():
		return domain.CategoryRecessive
	case e.SuperVisual || e.VisualCount > 0:
		return domain.CategoryIncompleteDominant
	}
	return ""
}
