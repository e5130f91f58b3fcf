package rest

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/domain"
	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/service/breeding"
)

// breedingService defines the minimal interface needed by BreedingHandler.
type breedingService interface {
	ParseTraits(ctx context.Context, text string) (*breeding.TraitsResult, error)
	Organize(tokens []string) []string
	ComputeOdds(ctx context.Context, male, female domain.Animal) (*domain.PairingOdds, error)
	BatchOdds(ctx context.Context, pairs []domain.Pairing) ([]domain.PairingOdds, error)
}

const maxOrganizeTokens = 512

// BreedingHandler serves trait parsing and pairing odds endpoints.
type BreedingHandler struct {
	svc breedingService
	log *slog.Logger
}

// NewBreedingHandler creates a BreedingHandler.
func NewBreedingHandler(svc breedingService, logger *slog.Logger) *BreedingHandler {
	return &BreedingHandler{svc: svc, log: logger.With("handler", "breeding")}
}

type parseTraitsRequest struct {
	Text string `json:"text"`
}

type organizeRequest struct {
	Tokens []string `json:"tokens"`
}

type organizeResponse struct {
	Tokens []string `json:"tokens"`
}

type oddsRequest struct {
	Male   domain.Animal `json:"male"`
	Female domain.Animal `json:"female"`
}

type batchOddsRequest struct {
	Pairs []domain.Pairing `json:"pairs"`
}

type batchOddsResponse struct {
	Results []domain.PairingOdds `json:"results"`
}

// ParseTraits handles POST /api/v1/traits/parse.
func (h *BreedingHandler) ParseTraits(w http.ResponseWriter, r *http.Request) {
	var req parseTraitsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.svc.ParseTraits(r.Context(), req.Text)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Organize handles POST /api/v1/traits/organize.
func (h *BreedingHandler) Organize(w http.ResponseWriter, r *http.Request) {
	var req organizeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if len(req.Tokens) > maxOrganizeTokens {
		handleError(w, r, h.log, domain.NewValidationError("tokens", fmt.Sprintf("too many (max %d)", maxOrganizeTokens)))
		return
	}

	writeJSON(w, http.StatusOK, organizeResponse{Tokens: h.svc.Organize(req.Tokens)})
}

// Odds handles POST /api/v1/odds.
func (h *BreedingHandler) Odds(w http.ResponseWriter, r *http.Request) {
	var req oddsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	odds, err := h.svc.ComputeOdds(r.Context(), req.Male, req.Female)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, odds)
}

// BatchOdds handles POST /api/v1/odds/batch.
func (h *BreedingHandler) BatchOdds(w http.ResponseWriter, r *http.Request) {
	var req batchOddsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	results, err := h.svc.BatchOdds(r.Context(), req.Pairs)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, batchOddsResponse{Results: results})
}
