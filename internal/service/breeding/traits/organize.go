package traits

import (
	"sort"
	"strings"

	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/domain"
)

// Dedupe drops repeated tokens, comparing case- and whitespace-insensitively.
// The first occurrence wins and keeps its position.
func Dedupe(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		key := domain.NormalizeText(tok)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, strings.TrimSpace(tok))
	}
	return out
}

// Organize prepares one animal's tokens for display: duplicates are dropped
// and the rest ordered Dominant, Incomplete Dominant, Recessive, Other,
// keeping input order within a category. Het descriptors sort as Recessive.
func (c *Classifier) Organize(tokens []string) []string {
	out := Dedupe(tokens)
	weights := make([]int, len(out))
	for i, raw := range out {
		weights[i] = c.weight(raw)
	}

	idx := make([]int, len(out))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return weights[idx[a]] < weights[idx[b]]
	})

	sorted := make([]string, len(out))
	for i, k := range idx {
		sorted[i] = out[k]
	}
	return sorted
}

func (c *Classifier) weight(raw string) int {
	tok, ok := c.ClassifyToken(raw)
	if !ok {
		return domain.CategoryOther.Weight()
	}
	return c.dict.CategoryOf(tok.Gene, tok.IsHet()).Weight()
}

// FormatTokens renders tokens as a comma-separated trait string that
// Segment and Classify read back to the same tokens.
func FormatTokens(tokens []domain.GeneToken) string {
	parts := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Display != "" {
			parts = append(parts, tok.Display)
		}
	}
	return strings.Join(parts, ", ")
}
