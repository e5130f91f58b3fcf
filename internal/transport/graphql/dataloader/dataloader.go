// Package dataloader provides per-request loaders that batch GraphQL field
// lookups into single repository calls. Loaders call repositories directly,
// bypassing the service layer.
package dataloader

import (
	"context"
	"time"

	"github.com/graph-gophers/dataloader/v7"

	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/domain"
)

const (
	maxBatch = 100
	wait     = 2 * time.Millisecond
)

// ---------------------------------------------------------------------------
// Repository interfaces (consumer-defined)
// ---------------------------------------------------------------------------

type customGeneRepo interface {
	GetByNames(ctx context.Context, names []string) ([]domain.CustomGene, error)
}

// Repos holds the repositories required by the loaders.
type Repos struct {
	CustomGene customGeneRepo
}

// Loaders contains the per-request loader instances. Created per request
// via NewLoaders.
type Loaders struct {
	CustomGeneByName *dataloader.Loader[string, *domain.CustomGene]
}

// NewLoaders creates a new set of loaders backed by the given repositories.
// Must be called per request (loaders cache results within one request).
func NewLoaders(repos *Repos) *Loaders {
	return &Loaders{
		CustomGeneByName: newLoader(newCustomGeneBatchFn(repos.CustomGene)),
	}
}

// newLoader creates a dataloader.Loader with standard batch parameters.
func newLoader[K comparable, V any](batchFn dataloader.BatchFunc[K, V]) *dataloader.Loader[K, V] {
	return dataloader.NewBatchedLoader(
		batchFn,
		dataloader.WithWait[K, V](wait),
		dataloader.WithBatchCapacity[K, V](maxBatch),
	)
}

// ---------------------------------------------------------------------------
// Context helpers
// ---------------------------------------------------------------------------

type contextKey string

const loadersKey contextKey = "dataloaders"

// WithLoaders stores Loaders in the context.
func WithLoaders(ctx context.Context, l *Loaders) context.Context {
	return context.WithValue(ctx, loadersKey, l)
}

// FromContext retrieves Loaders from the context.
// Panics if loaders are not present (indicates middleware misconfiguration).
func FromContext(ctx context.Context) *Loaders {
	l, ok := ctx.Value(loadersKey).(*Loaders)
	if !ok || l == nil {
		panic("dataloader: loaders not found in context, is the middleware configured?")
	}
	return l
}
