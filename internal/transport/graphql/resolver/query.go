package resolver

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/domain"
	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/service/breeding"
	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/service/breeding/genedict"
	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/transport/graphql/dataloader"
)

const maxOrganizeTokens = 512

func (r *Resolver) segment(ctx context.Context, _ any, args map[string]any) (any, error) {
	res, err := r.parseTraitsArg(ctx, args)
	if err != nil {
		return nil, err
	}
	return res.Tokens, nil
}

func (r *Resolver) parseTraits(ctx context.Context, _ any, args map[string]any) (any, error) {
	return r.parseTraitsArg(ctx, args)
}

func (r *Resolver) parseTraitsArg(ctx context.Context, args map[string]any) (*breeding.TraitsResult, error) {
	var text string
	if err := decodeArg(args, "text", &text); err != nil {
		return nil, err
	}
	return r.breeding.ParseTraits(ctx, text)
}

func (r *Resolver) organize(_ context.Context, _ any, args map[string]any) (any, error) {
	var tokens []string
	if err := decodeArg(args, "tokens", &tokens); err != nil {
		return nil, err
	}
	if len(tokens) > maxOrganizeTokens {
		return nil, domain.NewValidationError("tokens", fmt.Sprintf("too many (max %d)", maxOrganizeTokens))
	}
	return r.breeding.Organize(tokens), nil
}

func (r *Resolver) profile(ctx context.Context, _ any, args map[string]any) (any, error) {
	var animal domain.Animal
	if err := decodeArg(args, "animal", &animal); err != nil {
		return nil, err
	}
	return r.breeding.Profile(ctx, animal)
}

func (r *Resolver) odds(ctx context.Context, _ any, args map[string]any) (any, error) {
	var male, female domain.Animal
	if err := decodeArg(args, "male", &male); err != nil {
		return nil, err
	}
	if err := decodeArg(args, "female", &female); err != nil {
		return nil, err
	}
	return r.breeding.ComputeOdds(ctx, male, female)
}

func (r *Resolver) batchOdds(ctx context.Context, _ any, args map[string]any) (any, error) {
	var pairs []domain.Pairing
	if err := decodeArg(args, "pairs", &pairs); err != nil {
		return nil, err
	}

	results, err := r.breeding.BatchOdds(ctx, pairs)
	if err != nil {
		return nil, err
	}
	r.log.DebugContext(ctx, "batch odds resolved", slog.Int("pairs", len(pairs)))
	return results, nil
}

func (r *Resolver) genes(_ context.Context, _ any, _ map[string]any) (any, error) {
	return r.breeding.Genes(), nil
}

func (r *Resolver) customGenes(ctx context.Context, _ any, _ map[string]any) (any, error) {
	if r.catalog == nil {
		return []domain.CustomGene{}, nil
	}
	return r.catalog.List(ctx)
}

// geneCustom resolves Gene.custom through the per-request loader, so one
// genes query costs a single catalog lookup.
func (r *Resolver) geneCustom(ctx context.Context, obj any, _ map[string]any) (any, error) {
	entry, ok := obj.(genedict.Entry)
	if !ok {
		return nil, fmt.Errorf("gene custom: unexpected parent %T", obj)
	}
	if r.catalog == nil {
		return nil, nil
	}
	return dataloader.FromContext(ctx).CustomGeneByName.Load(ctx, entry.Name)()
}
