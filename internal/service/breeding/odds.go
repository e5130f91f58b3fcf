package breeding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/domain"
	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/service/breeding/punnett"
)

// BuildProfile folds an animal's trait lists into a gene profile.
//
// Every Morphs and Hets entry is segmented. Het-list entries without a het
// marker are certain hets of that gene, and Morphs entries carrying het
// markers count as hets. Traits free text is segmented and merged in.
func (s *Service) BuildProfile(animal domain.Animal) punnett.Profile {
	return s.engine.Load().profile(animal)
}

// Profile validates animal and returns its gene profile entries ordered by
// gene name.
func (s *Service) Profile(ctx context.Context, animal domain.Animal) (entries []domain.GeneProfileEntry, err error) {
	start := time.Now()
	defer func() { s.observe(ctx, "profile", start, err) }()

	if errs := s.validateAnimal("animal", animal); len(errs) > 0 {
		return nil, domain.NewValidationErrors(errs)
	}

	profile := s.engine.Load().profile(animal)
	entries = make([]domain.GeneProfileEntry, 0, len(profile))
	for _, e := range profile {
		entries = append(entries, *e)
	}
	slices.SortFunc(entries, func(a, b domain.GeneProfileEntry) int {
		return strings.Compare(a.Gene, b.Gene)
	})
	return entries, nil
}

func (e *engine) profile(animal domain.Animal) punnett.Profile {
	var visual, het []domain.GeneToken

	add := func(tokens []domain.GeneToken, forceHet bool) {
		for _, tok := range tokens {
			switch {
			case tok.IsHet():
				het = append(het, tok)
			case forceHet:
				het = append(het, domain.GeneToken{
					Original:    tok.Original,
					Gene:        tok.Gene,
					Kind:        domain.TokenKindHet,
					Probability: 1,
					Display:     domain.HetLabel(tok.Gene),
				})
			default:
				visual = append(visual, tok)
			}
		}
	}
	classify := func(text string) []domain.GeneToken {
		return e.classifier.Classify(e.segmenter.Segment(text)).Tokens()
	}

	for _, m := range animal.Morphs {
		add(classify(m), false)
	}
	for _, h := range animal.Hets {
		add(classify(h), true)
	}
	if animal.Traits != "" {
		add(classify(animal.Traits), false)
	}

	return e.builder.Build(visual, het)
}

// ComputeOdds returns per-gene and combined offspring odds for a pairing.
func (s *Service) ComputeOdds(ctx context.Context, male, female domain.Animal) (odds *domain.PairingOdds, err error) {
	start := time.Now()
	defer func() { s.observe(ctx, "compute_odds", start, err) }()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.validatePair("", male, female); err != nil {
		return nil, err
	}

	return s.computeOdds(ctx, male, female), nil
}

func (s *Service) computeOdds(ctx context.Context, male, female domain.Animal) *domain.PairingOdds {
	eng := s.engine.Load()
	res := eng.calc.Compute(eng.profile(male), eng.profile(female))
	joint := punnett.Combine(res.PerGene, s.opts)

	if len(res.Skipped) > 0 {
		s.metrics.GenesSkipped(len(res.Skipped))
	}
	if joint.Truncated {
		s.metrics.CombosTruncated()
		s.log.WarnContext(ctx, "joint distribution truncated",
			slog.Int("genes", len(res.PerGene)),
			slog.Int("combo_cap", s.opts.ComboCap),
		)
	}
	s.log.DebugContext(ctx, "odds computed",
		slog.Int("genes", len(res.PerGene)),
		slog.Int("skipped", len(res.Skipped)),
		slog.Int("combos", joint.Kept),
		slog.Int("rows", len(joint.Rows)),
	)

	return &domain.PairingOdds{
		MaleID:    male.ID,
		FemaleID:  female.ID,
		PerGene:   nonNil(res.PerGene),
		Combined:  nonNil(joint.Rows),
		Skipped:   res.Skipped,
		Truncated: joint.Truncated,
	}
}

// BatchOdds computes many pairings concurrently, preserving input order.
// It stops at the first failure or when ctx is cancelled.
func (s *Service) BatchOdds(ctx context.Context, pairs []domain.Pairing) (results []domain.PairingOdds, err error) {
	start := time.Now()
	defer func() { s.observe(ctx, "batch_odds", start, err) }()

	if len(pairs) == 0 {
		return nil, domain.NewValidationError("pairs", "required")
	}
	if len(pairs) > s.cfg.MaxBatchPairs {
		return nil, domain.NewValidationError("pairs", fmt.Sprintf("too many (max %d)", s.cfg.MaxBatchPairs))
	}
	var errs []domain.FieldError
	for i, p := range pairs {
		if err := s.validatePair(fmt.Sprintf("pairs[%d].", i), p.Male, p.Female); err != nil {
			var ve *domain.ValidationError
			if errors.As(err, &ve) {
				errs = append(errs, ve.Errors...)
			}
		}
	}
	if len(errs) > 0 {
		return nil, domain.NewValidationErrors(errs)
	}

	results = make([]domain.PairingOdds, len(pairs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.BatchWorkers)
	for i, p := range pairs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = *s.computeOdds(gctx, p.Male, p.Female)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch odds: %w", err)
	}

	s.log.DebugContext(ctx, "batch odds computed",
		slog.Int("pairs", len(pairs)),
		slog.Duration("elapsed", time.Since(start)),
	)
	return results, nil
}

func (s *Service) validatePair(prefix string, male, female domain.Animal) error {
	var errs []domain.FieldError
	errs = append(errs, s.validateAnimal(prefix+"male", male)...)
	errs = append(errs, s.validateAnimal(prefix+"female", female)...)
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func (s *Service) validateAnimal(field string, a domain.Animal) []domain.FieldError {
	var errs []domain.FieldError
	if a.Sex != "" && !a.Sex.IsValid() {
		errs = append(errs, domain.FieldError{Field: field + ".sex", Message: "invalid value"})
	}
	size := len(a.Traits)
	for _, m := range a.Morphs {
		size += len(m)
	}
	for _, h := range a.Hets {
		size += len(h)
	}
	if size > s.cfg.MaxTextLength {
		errs = append(errs, domain.FieldError{
			Field:   field + ".traits",
			Message: fmt.Sprintf("too long (max %d)", s.cfg.MaxTextLength),
		})
	}
	return errs
}
