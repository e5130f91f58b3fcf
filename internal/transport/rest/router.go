package rest

import (
	"net/http"
)

// Handlers groups the endpoint handlers mounted by NewRouter.
type Handlers struct {
	Health   *HealthHandler
	Breeding *BreedingHandler
	Genes    *GeneHandler

	// GraphQL serves POST /query and GraphQLSchema serves GET /query/schema,
	// each when non-nil.
	GraphQL       http.Handler
	GraphQLSchema http.Handler

	// Metrics is mounted at MetricsPath when non-nil.
	Metrics     http.Handler
	MetricsPath string
}

// NewRouter registers every route on a fresh ServeMux.
func NewRouter(h Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)

	mux.HandleFunc("POST /api/v1/traits/parse", h.Breeding.ParseTraits)
	mux.HandleFunc("POST /api/v1/traits/organize", h.Breeding.Organize)
	mux.HandleFunc("POST /api/v1/odds", h.Breeding.Odds)
	mux.HandleFunc("POST /api/v1/odds/batch", h.Breeding.BatchOdds)

	mux.HandleFunc("GET /api/v1/genes", h.Genes.List)
	mux.HandleFunc("POST /api/v1/genes", h.Genes.Create)
	mux.HandleFunc("DELETE /api/v1/genes/{id}", h.Genes.Delete)

	if h.GraphQL != nil {
		mux.Handle("POST /query", h.GraphQL)
	}
	if h.GraphQLSchema != nil {
		mux.Handle("GET /query/schema", h.GraphQLSchema)
	}

	if h.Metrics != nil {
		path := h.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		mux.Handle("GET "+path, h.Metrics)
	}

	return mux
}
