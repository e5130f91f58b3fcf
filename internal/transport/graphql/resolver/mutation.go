package resolver

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/domain"
	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/service/genecatalog"
)

var errCatalogDisabled = fmt.Errorf("custom gene catalog is disabled: %w", domain.ErrNotFound)

type createGeneInput struct {
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Aliases  []string `json:"aliases"`
}

func (r *Resolver) createGene(ctx context.Context, _ any, args map[string]any) (any, error) {
	if r.catalog == nil {
		return nil, errCatalogDisabled
	}

	var input createGeneInput
	if err := decodeArg(args, "input", &input); err != nil {
		return nil, err
	}
	return r.catalog.Create(ctx, genecatalog.CreateGeneInput{
		Name:     input.Name,
		Category: input.Category,
		Aliases:  input.Aliases,
	})
}

func (r *Resolver) deleteGene(ctx context.Context, _ any, args map[string]any) (any, error) {
	if r.catalog == nil {
		return nil, errCatalogDisabled
	}

	var id uuid.UUID
	if err := decodeArg(args, "id", &id); err != nil {
		return nil, err
	}
	if err := r.catalog.Delete(ctx, id); err != nil {
		return nil, err
	}
	return true, nil
}
