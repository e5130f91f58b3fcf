package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/config"
	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/domain"
	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/service/breeding"
	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/service/genecatalog"
)

// ===========================================================================
// Manual mocks (moq-style with func fields)
// ===========================================================================

type mockCatalog struct {
	ListFunc   func(ctx context.Context) ([]domain.CustomGene, error)
	CreateFunc func(ctx context.Context, input genecatalog.CreateGeneInput) (*domain.CustomGene, error)
	DeleteFunc func(ctx context.Context, id uuid.UUID) error
}

func (m *mockCatalog) List(ctx context.Context) ([]domain.CustomGene, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []domain.CustomGene{}, nil
}

func (m *mockCatalog) Create(ctx context.Context, input genecatalog.CreateGeneInput) (*domain.CustomGene, error) {
	return m.CreateFunc(ctx, input)
}

func (m *mockCatalog) Delete(ctx context.Context, id uuid.UUID) error {
	return m.DeleteFunc(ctx, id)
}

// ===========================================================================
// Helpers
// ===========================================================================

func newTestRouter(t *testing.T, catalog geneCatalog) http.Handler {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)

	svc := breeding.NewService(logger, nil, config.GeneticsConfig{
		ComboCap:               1024,
		MaxCombined:            12,
		SignificantProbability: 0.01,
		NoiseFloor:             1e-4,
		CertainHetThreshold:    0.999,
		BatchWorkers:           2,
		MaxBatchPairs:          4,
		MaxTextLength:          256,
	})

	var genes *GeneHandler
	if catalog == nil {
		genes = NewGeneHandler(svc, nil, logger)
	} else {
		genes = NewGeneHandler(svc, catalog, logger)
	}

	return NewRouter(Handlers{
		Health:   NewHealthHandler(nil, svc, "test"),
		Breeding: NewBreedingHandler(svc, logger),
		Genes:    genes,
		Metrics: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, "breeding_combos_truncated_total 0\n")
		}),
		MetricsPath: "/metrics",
		GraphQL: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{"data":{}}`)
		}),
		GraphQLSchema: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, "type Query")
		}),
	})
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

// ===========================================================================
// Breeding routes
// ===========================================================================

func TestRouter_ParseTraits(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t, nil)

	rec := do(t, h, http.MethodPost, "/api/v1/traits/parse", `{"text":"Pastel Enchi 66% het Clown"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	resp := decode[breeding.TraitsResult](t, rec)
	assert.Equal(t, []string{"Pastel", "Enchi", "66% het Clown"}, resp.Tokens)
	require.Len(t, resp.Visual, 2)
	require.Len(t, resp.Het, 1)
	assert.Equal(t, "Clown", resp.Het[0].Gene)
	assert.InDelta(t, 0.66, resp.Het[0].Probability, 1e-6)
}

func TestRouter_ParseTraits_TooLong(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t, nil)

	body, err := json.Marshal(parseTraitsRequest{Text: strings.Repeat("Pastel ", 100)})
	require.NoError(t, err)

	rec := do(t, h, http.MethodPost, "/api/v1/traits/parse", string(body))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	resp := decode[errorResponse](t, rec)
	require.Len(t, resp.Fields, 1)
	assert.Equal(t, "text", resp.Fields[0].Field)
}

func TestRouter_Organize(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t, nil)

	rec := do(t, h, http.MethodPost, "/api/v1/traits/organize", `{"tokens":["het Clown","Spider","pastel","Pastel"]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[organizeResponse](t, rec)
	assert.Equal(t, []string{"Spider", "pastel", "het Clown"}, resp.Tokens)
}

func TestRouter_Odds(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t, nil)

	rec := do(t, h, http.MethodPost, "/api/v1/odds", `{"male":{"morphs":["Pastel"]},"female":{}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[domain.PairingOdds](t, rec)
	require.Len(t, resp.PerGene, 1)
	assert.Equal(t, "Pastel", resp.PerGene[0].Gene)
	require.Len(t, resp.Combined, 2)
	for _, row := range resp.Combined {
		assert.InDelta(t, 0.5, row.Probability, 1e-6)
	}
}

func TestRouter_BatchOdds(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t, nil)

	body := `{"pairs":[
		{"male":{"morphs":["Clown"]},"female":{"hets":["Clown"]}},
		{"male":{"morphs":["Spider"]},"female":{}}
	]}`
	rec := do(t, h, http.MethodPost, "/api/v1/odds/batch", body)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[batchOddsResponse](t, rec)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "Clown", resp.Results[0].PerGene[0].Gene)
	assert.Equal(t, "Spider", resp.Results[1].PerGene[0].Gene)
}

func TestRouter_BatchOdds_Validation(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t, nil)

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"empty", `{"pairs":[]}`, "pairs"},
		{"too many", `{"pairs":[{},{},{},{},{}]}`, "pairs"},
		{"bad sex", `{"pairs":[{"male":{"sex":"X"},"female":{}}]}`, "pairs[0].male.sex"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/api/v1/odds/batch", tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)

			resp := decode[errorResponse](t, rec)
			require.NotEmpty(t, resp.Fields)
			assert.Equal(t, tt.field, resp.Fields[0].Field)
		})
	}
}

func TestRouter_BadBodies(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t, nil)

	rec := do(t, h, http.MethodPost, "/api/v1/odds", `{"male":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	huge := `{"text":"` + strings.Repeat("a", maxBodyBytes) + `"}`
	rec = do(t, h, http.MethodPost, "/api/v1/traits/parse", huge)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/v1/odds", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

// ===========================================================================
// Gene routes
// ===========================================================================

func TestRouter_Genes_ReadOnly(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t, nil)

	rec := do(t, h, http.MethodGet, "/api/v1/genes", "")
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[genesResponse](t, rec)
	assert.NotEmpty(t, resp.Genes)
	assert.NotNil(t, resp.Custom)
	assert.Empty(t, resp.Custom)

	rec = do(t, h, http.MethodPost, "/api/v1/genes", `{"name":"Bongo","category":"dominant"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodDelete, "/api/v1/genes/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_Genes_Create(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	catalog := &mockCatalog{
		CreateFunc: func(_ context.Context, input genecatalog.CreateGeneInput) (*domain.CustomGene, error) {
			switch input.Name {
			case "Pied":
				return nil, domain.ErrAlreadyExists
			case "":
				return nil, domain.NewValidationError("name", "required")
			}
			return &domain.CustomGene{
				ID:        id,
				Name:      input.Name,
				Category:  domain.CategoryDominant,
				Aliases:   input.Aliases,
				CreatedAt: time.Now(),
			}, nil
		},
	}
	h := newTestRouter(t, catalog)

	rec := do(t, h, http.MethodPost, "/api/v1/genes", `{"name":"Bongo","category":"dominant","aliases":["BG"]}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[domain.CustomGene](t, rec)
	assert.Equal(t, id, created.ID)
	assert.Equal(t, []string{"BG"}, created.Aliases)

	rec = do(t, h, http.MethodPost, "/api/v1/genes", `{"name":"Pied","category":"recessive"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/v1/genes", `{"name":"","category":"recessive"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_Genes_Delete(t *testing.T) {
	t.Parallel()

	known := uuid.New()
	catalog := &mockCatalog{
		DeleteFunc: func(_ context.Context, id uuid.UUID) error {
			if id == known {
				return nil
			}
			return domain.ErrNotFound
		},
	}
	h := newTestRouter(t, catalog)

	rec := do(t, h, http.MethodDelete, "/api/v1/genes/"+known.String(), "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, h, http.MethodDelete, "/api/v1/genes/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodDelete, "/api/v1/genes/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_Genes_ListError(t *testing.T) {
	t.Parallel()

	catalog := &mockCatalog{
		ListFunc: func(context.Context) ([]domain.CustomGene, error) {
			return nil, errors.New("connection refused")
		},
	}
	h := newTestRouter(t, catalog)

	rec := do(t, h, http.MethodGet, "/api/v1/genes", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decode[errorResponse](t, rec)
	assert.Equal(t, "internal server error", resp.Error)
}

// ===========================================================================
// Infrastructure routes
// ===========================================================================

func TestRouter_HealthAndMetrics(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t, nil)

	for _, path := range []string{"/live", "/ready", "/health"} {
		rec := do(t, h, http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}

	rec := do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, bytes.Contains(rec.Body.Bytes(), []byte("breeding_combos_truncated_total")))
}

func TestRouter_GraphQL(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t, nil)

	rec := do(t, h, http.MethodPost, "/query", `{"query":"{ genes { name } }"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{}}`, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/query/schema", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "type Query", rec.Body.String())

	rec = do(t, h, http.MethodGet, "/query", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRouter_GraphQLNotMounted(t *testing.T) {
	t.Parallel()
	h := NewRouter(Handlers{})

	rec := do(t, h, http.MethodPost, "/query", `{"query":"{ genes { name } }"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
