package resolver

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/domain"
	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/service/breeding"
	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/service/breeding/genedict"
	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/service/genecatalog"
	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/transport/graphql"
)

// breedingService defines what resolver needs from the Breeding service.
type breedingService interface {
	ParseTraits(ctx context.Context, text string) (*breeding.TraitsResult, error)
	Organize(tokens []string) []string
	Profile(ctx context.Context, animal domain.Animal) ([]domain.GeneProfileEntry, error)
	ComputeOdds(ctx context.Context, male, female domain.Animal) (*domain.PairingOdds, error)
	BatchOdds(ctx context.Context, pairs []domain.Pairing) ([]domain.PairingOdds, error)
	Genes() []genedict.Entry
}

// geneCatalog defines what resolver needs from the GeneCatalog service.
type geneCatalog interface {
	List(ctx context.Context) ([]domain.CustomGene, error)
	Create(ctx context.Context, input genecatalog.CreateGeneInput) (*domain.CustomGene, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Resolver holds the services the GraphQL fields resolve against. Without
// a catalog the gene mutations answer NOT_FOUND and Gene.custom is null.
type Resolver struct {
	breeding breedingService
	catalog  geneCatalog
	log      *slog.Logger
}

// NewResolver creates a Resolver. catalog may be nil.
func NewResolver(log *slog.Logger, breeding breedingService, catalog geneCatalog) *Resolver {
	return &Resolver{
		breeding: breeding,
		catalog:  catalog,
		log:      log.With("component", "graphql"),
	}
}

// Resolvers returns the field resolvers for the schema. Object fields not
// listed here are read from the Go value's JSON encoding.
func (r *Resolver) Resolvers() graphql.Resolvers {
	return graphql.Resolvers{
		"Query": {
			"segment":     r.segment,
			"parseTraits": r.parseTraits,
			"organize":    r.organize,
			"profile":     r.profile,
			"odds":        r.odds,
			"batchOdds":   r.batchOdds,
			"genes":       r.genes,
			"customGenes": r.customGenes,
		},
		"Mutation": {
			"createGene": r.createGene,
			"deleteGene": r.deleteGene,
		},
		"Gene": {
			"custom": r.geneCustom,
		},
	}
}
