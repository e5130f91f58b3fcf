package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/domain"
	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/service/breeding/genedict"
	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/service/genecatalog"
)

type geneDictionary interface {
	Genes() []genedict.Entry
}

type geneCatalog interface {
	List(ctx context.Context) ([]domain.CustomGene, error)
	Create(ctx context.Context, input genecatalog.CreateGeneInput) (*domain.CustomGene, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// GeneHandler serves the gene dictionary endpoints. Without a catalog the
// dictionary is read-only and the mutation routes answer 404.
type GeneHandler struct {
	dict    geneDictionary
	catalog geneCatalog
	log     *slog.Logger
}

// NewGeneHandler creates a GeneHandler. catalog may be nil.
func NewGeneHandler(dict geneDictionary, catalog geneCatalog, logger *slog.Logger) *GeneHandler {
	return &GeneHandler{dict: dict, catalog: catalog, log: logger.With("handler", "genes")}
}

type createGeneRequest struct {
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Aliases  []string `json:"aliases"`
}

type genesResponse struct {
	Genes  []genedict.Entry    `json:"genes"`
	Custom []domain.CustomGene `json:"custom"`
}

// List handles GET /api/v1/genes: the active dictionary plus the stored
// custom genes with their IDs.
func (h *GeneHandler) List(w http.ResponseWriter, r *http.Request) {
	resp := genesResponse{
		Genes:  h.dict.Genes(),
		Custom: []domain.CustomGene{},
	}

	if h.catalog != nil {
		custom, err := h.catalog.List(r.Context())
		if err != nil {
			handleError(w, r, h.log, err)
			return
		}
		resp.Custom = custom
	}

	writeJSON(w, http.StatusOK, resp)
}

// Create handles POST /api/v1/genes.
func (h *GeneHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h.catalog == nil {
		writeError(w, http.StatusNotFound, "custom genes are not enabled")
		return
	}

	var req createGeneRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	gene, err := h.catalog.Create(r.Context(), genecatalog.CreateGeneInput{
		Name:     req.Name,
		Category: req.Category,
		Aliases:  req.Aliases,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, gene)
}

// Delete handles DELETE /api/v1/genes/{id}.
func (h *GeneHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h.catalog == nil {
		writeError(w, http.StatusNotFound, "custom genes are not enabled")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handleError(w, r, h.log, domain.NewValidationError("id", "must be a UUID"))
		return
	}

	if err := h.catalog.Delete(r.Context(), id); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
