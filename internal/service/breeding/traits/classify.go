package traits

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/domain"
	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/service/breeding/genedict"
)

// Classification is a token list split by kind, in input order.
type Classification struct {
	Visual []domain.GeneToken `json:"visual"`
	Het    []domain.GeneToken `json:"het"`
}

// Tokens returns visual tokens followed by het tokens.
func (c Classification) Tokens() []domain.GeneToken {
	out := make([]domain.GeneToken, 0, len(c.Visual)+len(c.Het))
	out = append(out, c.Visual...)
	return append(out, c.Het...)
}

// Classifier decides whether raw tokens are visual or het descriptors.
type Classifier struct {
	dict *genedict.Registry
}

// NewClassifier creates a classifier backed by dict.
func NewClassifier(dict *genedict.Registry) *Classifier {
	return &Classifier{dict: dict}
}

// Classify classifies every token. Tokens without a gene are dropped.
func (c *Classifier) Classify(tokens []string) Classification {
	var out Classification
	for _, raw := range tokens {
		tok, ok := c.ClassifyToken(raw)
		if !ok {
			continue
		}
		if tok.IsHet() {
			out.Het = append(out.Het, tok)
		} else {
			out.Visual = append(out.Visual, tok)
		}
	}
	return out
}

// ClassifyToken classifies one raw token.
//
// A token is a het descriptor when it contains the word "het", starts with
// a qualifier (possible, poss, probable, maybe, ph) or starts with an NN%
// marker. The probability comes from the percentage when present, then the
// qualifier, and is 1 otherwise. Everything else is visual; a leading
// "super" (separate or joined) sets IsSuper.
func (c *Classifier) ClassifyToken(raw string) (domain.GeneToken, bool) {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return domain.GeneToken{}, false
	}

	var (
		i       int
		percent float64
		hasPct  bool
		qual    qualifier
		hasQual bool
		het     bool
	)
	if p, ok := parsePercent(fields[i]); ok {
		percent, hasPct = p, true
		i++
	}
	if i < len(fields) {
		if q, ok := lookupQualifier(fields[i]); ok {
			qual, hasQual = q, true
			i++
		}
	}

	rest := make([]string, 0, len(fields)-i)
	for _, f := range fields[i:] {
		if isHetWord(f) {
			het = true
			continue
		}
		rest = append(rest, f)
	}
	phrase := strings.Join(rest, " ")
	original := strings.Join(fields, " ")

	if het || hasQual || hasPct {
		if phrase == "" {
			return domain.GeneToken{}, false
		}
		tok := domain.GeneToken{
			Original:    original,
			Gene:        c.canonical(phrase),
			Kind:        domain.TokenKindHet,
			Probability: 1,
		}
		if hasQual {
			tok.Qualifier = qual.display
			tok.Probability = qual.probability
		}
		if hasPct {
			tok.Percent = percent
			tok.Probability = percent / 100
		}
		tok.Display = hetDisplay(tok, hasPct)
		return tok, true
	}

	gene, super := c.splitSuper(phrase)
	tok := domain.GeneToken{
		Original:    original,
		Gene:        c.canonical(gene),
		Kind:        domain.TokenKindVisual,
		Probability: 1,
		IsSuper:     super,
	}
	tok.Display = tok.Gene
	if super {
		tok.Display = domain.SuperLabel(tok.Gene)
	}
	return tok, true
}

// splitSuper strips a "super" prefix written as its own word or joined to
// a known gene ("SuperPastel"). Names the dictionary knows as a whole are
// left alone.
func (c *Classifier) splitSuper(phrase string) (string, bool) {
	if _, ok := c.dict.LookupCanonical(phrase); ok {
		return phrase, false
	}
	fields := strings.Fields(phrase)
	if len(fields) > 1 && isSuperWord(fields[0]) {
		return strings.Join(fields[1:], " "), true
	}
	const prefix = "super"
	if len(phrase) > len(prefix) && strings.EqualFold(phrase[:len(prefix)], prefix) {
		rest := strings.TrimLeft(phrase[len(prefix):], "-_ ")
		if _, ok := c.dict.LookupCanonical(rest); ok {
			return rest, true
		}
	}
	return phrase, false
}

// canonical resolves a gene phrase through the dictionary and title-cases
// genes it does not know.
func (c *Classifier) canonical(phrase string) string {
	if name, ok := c.dict.LookupCanonical(phrase); ok {
		return name
	}
	return cases.Title(language.English, cases.NoLower).String(strings.Join(strings.Fields(phrase), " "))
}

// hetDisplay renders [NN%] [Possible|Probable|Maybe] Het <Gene>.
func hetDisplay(tok domain.GeneToken, withPercent bool) string {
	parts := make([]string, 0, 4)
	if withPercent {
		parts = append(parts, formatPercent(tok.Percent))
	}
	if tok.Qualifier != "" {
		parts = append(parts, tok.Qualifier)
	}
	parts = append(parts, "Het", tok.Gene)
	return strings.Join(parts, " ")
}
