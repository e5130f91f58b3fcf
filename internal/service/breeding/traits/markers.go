// Package traits turns free-text trait descriptions into classified gene
// tokens.
package traits

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var percentPattern = regexp.MustCompile(`^(\d{1,3}(?:\.\d+)?)%$`)

// qualifier is an uncertainty word that marks a possible het.
type qualifier struct {
	display     string
	probability float64
}

var qualifiers = map[string]qualifier{
	"possible": {display: "Possible", probability: 0.5},
	"poss":     {display: "Possible", probability: 0.5},
	"ph":       {display: "Possible", probability: 0.5},
	"probable": {display: "Probable", probability: 0.66},
	"maybe":    {display: "Maybe", probability: 0.33},
}

func isHetWord(w string) bool { return strings.EqualFold(w, "het") }

func isSuperWord(w string) bool { return strings.EqualFold(w, "super") }

func lookupQualifier(w string) (qualifier, bool) {
	q, ok := qualifiers[strings.ToLower(w)]
	return q, ok
}

func isQualifier(w string) bool {
	_, ok := lookupQualifier(w)
	return ok
}

// parsePercent reads an "NN%" marker. Non-finite values count as absent and
// finite values are clamped to [0, 100].
func parsePercent(w string) (float64, bool) {
	m := percentPattern.FindStringSubmatch(w)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return min(max(v, 0), 100), true
}

func isPercent(w string) bool {
	_, ok := parsePercent(w)
	return ok
}

func isMarkerWord(w string) bool {
	return isHetWord(w) || isQualifier(w) || isPercent(w)
}

func formatPercent(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64) + "%"
}
