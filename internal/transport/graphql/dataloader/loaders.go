package dataloader

import (
	"context"
	"strings"

	"github.com/graph-gophers/dataloader/v7"

	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/domain"
)

// ---------------------------------------------------------------------------
// Custom gene by name (1:1 nullable, case-insensitive)
// ---------------------------------------------------------------------------

func newCustomGeneBatchFn(repo customGeneRepo) dataloader.BatchFunc[string, *domain.CustomGene] {
	return func(ctx context.Context, keys []string) []*dataloader.Result[*domain.CustomGene] {
		if repo == nil {
			return mapResults(keys, nil, nilValue[*domain.CustomGene])
		}

		genes, err := repo.GetByNames(ctx, keys)
		if err != nil {
			return errorResults[*domain.CustomGene](len(keys), err)
		}

		byName := make(map[string]*domain.CustomGene, len(genes))
		for i := range genes {
			byName[strings.ToLower(genes[i].Name)] = &genes[i]
		}

		lowered := make([]string, len(keys))
		for i, k := range keys {
			lowered[i] = strings.ToLower(k)
		}
		return mapResults(lowered, byName, nilValue[*domain.CustomGene])
	}
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// errorResults returns a slice of error results for all keys.
func errorResults[V any](n int, err error) []*dataloader.Result[V] {
	results := make([]*dataloader.Result[V], n)
	for i := range results {
		results[i] = &dataloader.Result[V]{Error: err}
	}
	return results
}

// mapResults maps grouped results back to key order, using defaultFn for missing keys.
func mapResults[K comparable, V any](keys []K, grouped map[K]V, defaultFn func() V) []*dataloader.Result[V] {
	results := make([]*dataloader.Result[V], len(keys))
	for i, key := range keys {
		if v, ok := grouped[key]; ok {
			results[i] = &dataloader.Result[V]{Data: v}
		} else {
			results[i] = &dataloader.Result[V]{Data: defaultFn()}
		}
	}
	return results
}

// nilValue returns the zero value of V.
func nilValue[V any]() V {
	var zero V
	return zero
}
