package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Outcome labels shared by the calculator and combiner.
const (
	NormalLabel         = "Normal"
	AllNormalLabel      = "Normal (all genes)"
	combinedLabelJoiner = " + "
)

// HetLabel, VisualLabel and SuperLabel build per-gene outcome labels.
func HetLabel(gene string) string    { return "Het " + gene }
func VisualLabel(gene string) string { return "Visual " + gene }
func SuperLabel(gene string) string  { return "Super " + gene }

// GeneToken is one classified trait descriptor.
type GeneToken struct {
	Original    string    `json:"original"`
	Gene        string    `json:"gene"`
	Kind        TokenKind `json:"kind"`
	Probability float64   `json:"probability"`
	IsSuper     bool      `json:"isSuper"`
	// Qualifier is the display word for uncertain hets ("Possible",
	// "Probable", "Maybe"); empty otherwise.
	Qualifier string `json:"qualifier,omitempty"`
	// Percent is the explicit percentage marker, 0 when absent.
	Percent float64 `json:"percent,omitempty"`
	Display string  `json:"display"`
}

// IsHet reports whether the token describes a carrier.
func (t GeneToken) IsHet() bool { return t.Kind == TokenKindHet }

// GeneProfileEntry is one animal's folded state for a single gene.
type GeneProfileEntry struct {
	Gene                     string    `json:"gene"`
	Group                    Category  `json:"group,omitempty"`
	VisualCount              int       `json:"visualCount"`
	SuperVisual              bool      `json:"superVisual"`
	HetCount                 int       `json:"hetCount"`
	PossibleHetProbabilities []float64 `json:"possibleHetProbabilities,omitempty"`
}

// BestPossibleHet returns the highest possible-het probability, or 0.
func (e *GeneProfileEntry) BestPossibleHet() float64 {
	best := 0.0
	for _, p := range e.PossibleHetProbabilities {
		if p > best {
			best = p
		}
	}
	return best
}

// HasHetSignal reports whether any het marker contributed to the entry.
func (e *GeneProfileEntry) HasHetSignal() bool {
	return e.HetCount > 0 || len(e.PossibleHetProbabilities) > 0
}

// Outcome is one row of a per-gene offspring distribution.
type Outcome struct {
	Label       string  `json:"label"`
	Probability float64 `json:"probability"`
}

// GeneOutcome is one gene's contribution to a combined outcome.
type GeneOutcome struct {
	Gene  string `json:"gene"`
	Label string `json:"label"`
}

// CombinedOutcome is a row of the joint offspring distribution.
type CombinedOutcome struct {
	Breakdown   []GeneOutcome `json:"breakdown"`
	Label       string        `json:"label"`
	Probability float64       `json:"probability"`
}

// CombinedLabel joins the non-Normal labels of a breakdown.
func CombinedLabel(breakdown []GeneOutcome) string {
	parts := make([]string, 0, len(breakdown))
	for _, b := range breakdown {
		if b.Label == NormalLabel {
			continue
		}
		parts = append(parts, b.Label)
	}
	if len(parts) == 0 {
		return AllNormalLabel
	}
	return strings.Join(parts, combinedLabelJoiner)
}

// GeneResult is the offspring distribution for one gene of a pairing.
type GeneResult struct {
	Gene        string    `json:"gene"`
	Category    Category  `json:"category"`
	Outcomes    []Outcome `json:"outcomes"`
	MaleState   string    `json:"maleState"`
	FemaleState string    `json:"femaleState"`
}

// PairingOdds is the full result for one male x female pairing.
type PairingOdds struct {
	MaleID   uuid.UUID         `json:"maleId,omitzero"`
	FemaleID uuid.UUID         `json:"femaleId,omitzero"`
	PerGene  []GeneResult      `json:"perGene"`
	Combined []CombinedOutcome `json:"combined"`
	// Skipped lists genes present on a parent but omitted for lack of a
	// quantitative model.
	Skipped []string `json:"skipped,omitempty"`
	// Truncated is set when the combo cap dropped joint outcomes, so the
	// combined probabilities no longer sum to 1.
	Truncated bool `json:"truncated"`
}

// Animal is the trait-bearing part of an animal record.
type Animal struct {
	ID     uuid.UUID `json:"id,omitzero"`
	Name   string    `json:"name,omitempty"`
	Sex    Sex       `json:"sex,omitempty"`
	Morphs []string  `json:"morphs,omitempty"`
	Hets   []string  `json:"hets,omitempty"`
	// Traits is free text entered while editing; segmented and merged
	// with Morphs and Hets.
	Traits string `json:"traits,omitempty"`
}

// Pairing is a candidate breeding pair.
type Pairing struct {
	Male   Animal `json:"male"`
	Female Animal `json:"female"`
}

// CustomGene is a user-registered dictionary extension.
type CustomGene struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Category  Category  `json:"category" db:"category"`
	Aliases   []string  `json:"aliases" db:"aliases"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
