package traits

import (
	"regexp"
	"sort"
	"strings"

	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/service/breeding/genedict"
)

var (
	segmentPattern = regexp.MustCompile(`[^,;|/+\n]+`)
	wordPattern    = regexp.MustCompile(`\d{1,3}(?:\.\d+)?%|[^\s.,:;!?"]+`)
)

type word struct {
	text       string
	start, end int
}

// span is a claimed run of input and the tokens it produced.
type span struct {
	start, end int
	tokens     []string
}

// Segmenter splits free text into raw gene-name tokens.
type Segmenter struct {
	dict *genedict.Registry
}

// NewSegmenter creates a segmenter backed by dict.
func NewSegmenter(dict *genedict.Registry) *Segmenter {
	return &Segmenter{dict: dict}
}

// Segment returns the raw tokens of text in input order.
//
// The text is split on , ; | / + and newlines. Within each segment three
// passes claim words in order:
//  1. het phrases: [NN%] [qualifier] het <gene>, or [NN%] qualifier <gene>
//  2. bare percentages: NN% <gene>
//  3. the remaining words, matched greedily against the dictionary
//
// A marker claims exactly one gene phrase after it. An unknown phrase after
// a marker runs until the next marker or the next word that starts a known
// gene. A word nothing in the dictionary matches is tried as compact text
// (e.g. "PastelClown") and is kept as a literal when no full tiling exists.
// No word is consumed twice.
func (s *Segmenter) Segment(text string) []string {
	var spans []span
	for _, loc := range segmentPattern.FindAllStringIndex(text, -1) {
		spans = append(spans, s.segmentOne(text[loc[0]:loc[1]], loc[0])...)
	}
	sort.SliceStable(spans, func(i, j int) bool {
		return spans[i].start < spans[j].start
	})

	out := make([]string, 0, len(spans))
	for _, sp := range spans {
		out = append(out, sp.tokens...)
	}
	return out
}

func (s *Segmenter) segmentOne(seg string, offset int) []span {
	locs := wordPattern.FindAllStringIndex(seg, -1)
	if len(locs) == 0 {
		return nil
	}
	words := make([]word, len(locs))
	for i, loc := range locs {
		words[i] = word{text: seg[loc[0]:loc[1]], start: offset + loc[0], end: offset + loc[1]}
	}
	claimed := make([]bool, len(words))
	claim := func(from, n int) {
		for k := from; k < from+n; k++ {
			claimed[k] = true
		}
	}

	var spans []span

	for i := 0; i < len(words); {
		n := hetMarkerLen(words, i)
		if n == 0 {
			i++
			continue
		}
		sp, used, ok := s.markedPhrase(words, claimed, i, n)
		if !ok {
			i += n
			continue
		}
		spans = append(spans, sp)
		claim(i, used)
		i += used
	}

	for i := 0; i < len(words); i++ {
		if claimed[i] || !isPercent(words[i].text) {
			continue
		}
		sp, used, ok := s.markedPhrase(words, claimed, i, 1)
		if !ok {
			continue
		}
		spans = append(spans, sp)
		claim(i, used)
		i += used - 1
	}

	for i := 0; i < len(words); {
		if claimed[i] {
			i++
			continue
		}
		end := i
		for end < len(words) && !claimed[end] {
			end++
		}
		spans = append(spans, s.matchWords(words[i:end])...)
		i = end
	}
	return spans
}

// hetMarkerLen returns the number of marker words starting at i, or 0.
func hetMarkerLen(words []word, i int) int {
	j := i
	if j < len(words) && isPercent(words[j].text) {
		j++
	}
	if j < len(words) && isQualifier(words[j].text) {
		j++
	}
	if j < len(words) && isHetWord(words[j].text) {
		return j + 1 - i
	}
	if j > i && isQualifier(words[j-1].text) {
		return j - i
	}
	return 0
}

// markedPhrase attaches the gene phrase following an n-word marker at i.
// It reports false when no unclaimed gene word follows the marker.
func (s *Segmenter) markedPhrase(words []word, claimed []bool, i, n int) (span, int, bool) {
	g := i + n
	if g >= len(words) || claimed[g] || isMarkerWord(words[g].text) {
		return span{}, 0, false
	}
	end := g
	for end < len(words) && !claimed[end] {
		end++
	}

	used, genes := s.matchPhrase(words[g:end])
	marker := joinWords(words[i:g])
	tokens := make([]string, len(genes))
	for k, gene := range genes {
		tokens[k] = marker + " " + gene
	}
	return span{start: words[i].start, end: words[g+used-1].end, tokens: tokens}, n + used, true
}

// matchPhrase resolves one gene phrase at the head of ws.
func (s *Segmenter) matchPhrase(ws []word) (int, []string) {
	if n, ok := s.longestMatch(ws); ok {
		return n, []string{joinWords(ws[:n])}
	}
	if genes := s.segmentCompact(ws[0].text); len(genes) > 0 {
		return 1, genes
	}
	n := 1
	for n < len(ws) && !s.startsGene(ws[n:]) {
		n++
	}
	return n, []string{joinWords(ws[:n])}
}

// startsGene reports whether ws opens a marker or something the dictionary
// resolves.
func (s *Segmenter) startsGene(ws []word) bool {
	w := ws[0].text
	if isMarkerWord(w) {
		return true
	}
	if isSuperWord(w) && len(ws) > 1 {
		if _, ok := s.longestMatch(ws[1:]); ok {
			return true
		}
	}
	if _, ok := s.longestMatch(ws); ok {
		return true
	}
	return len(s.segmentCompact(w)) > 0
}

// matchWords runs the dictionary-greedy matcher over an unclaimed run.
func (s *Segmenter) matchWords(ws []word) []span {
	var spans []span
	emit := func(from, n int, tokens ...string) {
		spans = append(spans, span{start: ws[from].start, end: ws[from+n-1].end, tokens: tokens})
	}

	for i := 0; i < len(ws); {
		if isSuperWord(ws[i].text) && i+1 < len(ws) {
			if n, ok := s.longestMatch(ws[i+1:]); ok {
				emit(i, n+1, joinWords(ws[i:i+n+1]))
				i += n + 1
				continue
			}
		}
		if n, ok := s.longestMatch(ws[i:]); ok {
			emit(i, n, joinWords(ws[i:i+n]))
			i += n
			continue
		}
		if genes := s.segmentCompact(ws[i].text); len(genes) > 0 {
			emit(i, 1, genes...)
		} else {
			emit(i, 1, ws[i].text)
		}
		i++
	}
	return spans
}

// longestMatch returns the length of the longest dictionary name at the
// head of ws, bounded by the longest registered name.
func (s *Segmenter) longestMatch(ws []word) (int, bool) {
	for n := min(s.dict.MaxWords(), len(ws)); n >= 1; n-- {
		if _, ok := s.dict.LookupCanonical(joinWords(ws[:n])); ok {
			return n, true
		}
	}
	return 0, false
}

func joinWords(ws []word) string {
	parts := make([]string, len(ws))
	for i, w := range ws {
		parts[i] = w.text
	}
	return strings.Join(parts, " ")
}
