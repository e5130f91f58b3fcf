package config

import (
	"fmt"
	"strings"

	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/domain"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	if c.Database.Enabled() && c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database.min_conns (%d) must not exceed max_conns (%d)", c.Database.MinConns, c.Database.MaxConns)
	}

	if err := c.Genetics.validate(); err != nil {
		return fmt.Errorf("genetics: %w", err)
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("metrics.path must start with / (got %q)", c.Metrics.Path)
	}

	return nil
}

const maxNoiseFloor = 0.01

func (g *GeneticsConfig) validate() error {
	if g.ComboCap <= 0 {
		return fmt.Errorf("combo_cap must be > 0 (got %d)", g.ComboCap)
	}
	if g.MaxCombined <= 0 {
		return fmt.Errorf("max_combined must be > 0 (got %d)", g.MaxCombined)
	}
	if g.MaxCombined > g.ComboCap {
		return fmt.Errorf("max_combined (%d) must not exceed combo_cap (%d)", g.MaxCombined, g.ComboCap)
	}
	for _, p := range []struct {
		name  string
		value float64
	}{
		{"significant_probability", g.SignificantProbability},
		{"noise_floor", g.NoiseFloor},
		{"certain_het_threshold", g.CertainHetThreshold},
	} {
		if p.value <= 0 || p.value >= 1 {
			return fmt.Errorf("%s must be in (0, 1) (got %v)", p.name, p.value)
		}
	}
	// A floor near 1 would drop every outcome of a split gene and renormalize
	// the rest into certainty.
	if g.NoiseFloor >= maxNoiseFloor {
		return fmt.Errorf("noise_floor must be < %v (got %v)", maxNoiseFloor, g.NoiseFloor)
	}
	if g.BatchWorkers <= 0 {
		return fmt.Errorf("batch_workers must be > 0 (got %d)", g.BatchWorkers)
	}
	if g.MaxBatchPairs <= 0 {
		return fmt.Errorf("max_batch_pairs must be > 0 (got %d)", g.MaxBatchPairs)
	}
	if g.MaxTextLength <= 0 {
		return fmt.Errorf("max_text_length must be > 0 (got %d)", g.MaxTextLength)
	}

	genes, err := ParseGeneSpecs(g.ExtraGenesRaw)
	if err != nil {
		return fmt.Errorf("extra_genes: %w", err)
	}
	g.ExtraGenes = genes

	return nil
}

// ParseGeneSpecs parses a semicolon-separated list of gene declarations
// of the form "Name=category" or "Name=category|Alias|Alias", e.g.
// "Red Axanthic=recessive|RA;Bongo=incomplete dominant". An empty string
// returns a nil slice.
func ParseGeneSpecs(raw string) ([]GeneSpec, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ";")
	specs := make([]GeneSpec, 0, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		name, rest, ok := strings.Cut(p, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid gene %q: want Name=category", p)
		}
		fields := strings.Split(rest, "|")
		category, ok := domain.ParseCategory(strings.TrimSpace(fields[0]))
		if !ok {
			return nil, fmt.Errorf("invalid gene %q: unknown category %q", p, strings.TrimSpace(fields[0]))
		}
		spec := GeneSpec{Name: name, Category: category}
		for _, alias := range fields[1:] {
			if alias = strings.TrimSpace(alias); alias != "" {
				spec.Aliases = append(spec.Aliases, alias)
			}
		}
		specs = append(specs, spec)
	}

	return specs, nil
}
