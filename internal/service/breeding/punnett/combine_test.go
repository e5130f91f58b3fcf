package punnett

import (
	"fmt"
	"math"
	"testing"

	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/domain"
)

func fiftyFifty(gene string) domain.GeneResult {
	return domain.GeneResult{
		Gene:     gene,
		Category: domain.CategoryIncompleteDominant,
		Outcomes: []domain.Outcome{
			{Label: gene, Probability: 0.5},
			{Label: domain.NormalLabel, Probability: 0.5},
		},
	}
}

func sum(rows []domain.CombinedOutcome) float64 {
	total := 0.0
	for _, r := range rows {
		total += r.Probability
	}
	return total
}

func TestCombine_TwoIndependentGenes(t *testing.T) {
	joint := Combine([]domain.GeneResult{fiftyFifty("Pastel"), fiftyFifty("Enchi")}, DefaultOptions())

	if len(joint.Rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(joint.Rows))
	}
	want := map[string]bool{
		"Pastel + Enchi":     false,
		"Pastel":             false,
		"Enchi":              false,
		"Normal (all genes)": false,
	}
	for _, r := range joint.Rows {
		if math.Abs(r.Probability-0.25) > epsilon {
			t.Errorf("%s: probability %f, want 0.25", r.Label, r.Probability)
		}
		if _, ok := want[r.Label]; !ok {
			t.Errorf("unexpected label %q", r.Label)
		}
		want[r.Label] = true
		if len(r.Breakdown) != 2 {
			t.Errorf("%s: breakdown %v, want 2 genes", r.Label, r.Breakdown)
		}
	}
	for label, seen := range want {
		if !seen {
			t.Errorf("missing label %q", label)
		}
	}
	if joint.Truncated {
		t.Error("two genes should not truncate")
	}
}

func TestDistribution_SumsToOne(t *testing.T) {
	results := []domain.GeneResult{
		{Gene: "Clown", Outcomes: []domain.Outcome{{Label: "Het Clown", Probability: 0.5}, {Label: "Visual Clown", Probability: 0.25}, {Label: "Normal", Probability: 0.25}}},
		{Gene: "Pastel", Outcomes: []domain.Outcome{{Label: "Pastel", Probability: 0.5}, {Label: "Super Pastel", Probability: 0.25}, {Label: "Normal", Probability: 0.25}}},
		{Gene: "Spider", Outcomes: []domain.Outcome{{Label: "Spider", Probability: 0.75}, {Label: "Normal", Probability: 0.25}}},
		{Gene: "Pied", Outcomes: []domain.Outcome{{Label: "Het Pied", Probability: 0.625}, {Label: "Normal", Probability: 0.375}}},
	}

	all, truncated := Distribution(results, 1024)
	if truncated {
		t.Fatal("3*3*2*2 combos fit under the cap")
	}
	if len(all) != 36 {
		t.Errorf("expected 36 combos, got %d", len(all))
	}
	if got := sum(all); math.Abs(got-1) > epsilon {
		t.Errorf("distribution sums to %f, want 1", got)
	}
	for i := 1; i < len(all); i++ {
		if all[i].Probability > all[i-1].Probability {
			t.Fatalf("rows not sorted at %d", i)
		}
	}
}

func TestDistribution_CapPerStep(t *testing.T) {
	three := func(gene string) domain.GeneResult {
		return domain.GeneResult{Gene: gene, Outcomes: []domain.Outcome{
			{Label: "Het " + gene, Probability: 0.5},
			{Label: "Visual " + gene, Probability: 0.3},
			{Label: "Normal", Probability: 0.2},
		}}
	}

	all, truncated := Distribution([]domain.GeneResult{three("A"), three("B"), three("C")}, 5)
	if !truncated {
		t.Error("expected truncation")
	}
	if len(all) != 5 {
		t.Fatalf("expected 5 combos, got %d", len(all))
	}
	if got := sum(all); got > 1+epsilon {
		t.Errorf("truncated distribution sums to %f, want <= 1", got)
	}
	// The most likely combo survives every step.
	if all[0].Label != "Het A + Het B + Het C" || math.Abs(all[0].Probability-0.125) > epsilon {
		t.Errorf("top combo = %s (%f)", all[0].Label, all[0].Probability)
	}
}

func TestDistribution_MergesIdenticalBreakdowns(t *testing.T) {
	results := []domain.GeneResult{{
		Gene: "Spider",
		Outcomes: []domain.Outcome{
			{Label: "Spider", Probability: 0.3},
			{Label: "Spider", Probability: 0.2},
			{Label: "Normal", Probability: 0.5},
		},
	}}

	all, _ := Distribution(results, 1024)
	if len(all) != 2 {
		t.Fatalf("expected merged rows, got %+v", all)
	}
	if all[0].Label != "Spider" || math.Abs(all[0].Probability-0.5) > epsilon {
		t.Errorf("merged row = %+v", all[0])
	}
}

func TestCombine_Selection(t *testing.T) {
	tests := []struct {
		name     string
		results  []domain.GeneResult
		wantRows int
	}{
		{
			name:     "no genes",
			results:  nil,
			wantRows: 0,
		},
		{
			name:     "all significant",
			results:  []domain.GeneResult{fiftyFifty("Pastel")},
			wantRows: 2,
		},
		{
			name: "insignificant rows dropped",
			results: []domain.GeneResult{
				{Gene: "Pastel", Outcomes: []domain.Outcome{{Label: "Pastel", Probability: 0.995}, {Label: "Normal", Probability: 0.005}}},
				fiftyFifty("Enchi"),
			},
			wantRows: 2,
		},
		{
			name:     "significant rows capped",
			results:  []domain.GeneResult{fiftyFifty("A"), fiftyFifty("B"), fiftyFifty("C"), fiftyFifty("D")},
			wantRows: 12,
		},
		{
			name: "none significant falls back to top rows",
			results: func() []domain.GeneResult {
				var rs []domain.GeneResult
				for i := range 10 {
					rs = append(rs, fiftyFifty(fmt.Sprintf("G%d", i)))
				}
				return rs
			}(),
			wantRows: 12,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			joint := Combine(tt.results, DefaultOptions())
			if len(joint.Rows) != tt.wantRows {
				t.Fatalf("rows = %d, want %d", len(joint.Rows), tt.wantRows)
			}
			if got := sum(joint.Rows); got > 1+epsilon {
				t.Errorf("rows sum to %f, want <= 1", got)
			}
			for _, r := range joint.Rows {
				if r.Probability < 0 || r.Probability > 1 {
					t.Errorf("%s: probability %f out of range", r.Label, r.Probability)
				}
			}
		})
	}
}

func TestCombine_TruncatesWideJoints(t *testing.T) {
	var results []domain.GeneResult
	for i := range 11 {
		results = append(results, fiftyFifty(fmt.Sprintf("G%d", i)))
	}

	joint := Combine(results, DefaultOptions())
	if !joint.Truncated {
		t.Error("2^11 combos should hit the 1024 cap")
	}
	if joint.Kept != 1024 {
		t.Errorf("kept = %d, want 1024", joint.Kept)
	}
}
