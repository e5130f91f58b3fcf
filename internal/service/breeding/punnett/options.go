// Package punnett folds animal trait tokens into gene profiles and computes
// offspring distributions for a pairing.
package punnett

// Options tune the calculator and combiner. Zero fields fall back to
// DefaultOptions.
type Options struct {
	// CertainHetThreshold is the probability at or above which a het token
	// counts as a certain carrier.
	CertainHetThreshold float64
	// NoiseFloor drops per-gene outcomes below it.
	NoiseFloor float64
	// ComboCap bounds the joint combos kept after each gene is folded in.
	ComboCap int
	// MaxCombined bounds the rows Combine returns.
	MaxCombined int
	// SignificantProbability is the probability at or above which a joint
	// row is always reported.
	SignificantProbability float64
}

// DefaultOptions returns the stock tuning.
func DefaultOptions() Options {
	return Options{
		CertainHetThreshold:    0.999,
		NoiseFloor:             1e-4,
		ComboCap:               1024,
		MaxCombined:            12,
		SignificantProbability: 0.01,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.CertainHetThreshold <= 0 {
		o.CertainHetThreshold = d.CertainHetThreshold
	}
	if o.NoiseFloor <= 0 {
		o.NoiseFloor = d.NoiseFloor
	}
	if o.ComboCap <= 0 {
		o.ComboCap = d.ComboCap
	}
	if o.MaxCombined <= 0 {
		o.MaxCombined = d.MaxCombined
	}
	if o.SignificantProbability <= 0 {
		o.SignificantProbability = d.SignificantProbability
	}
	return o
}
