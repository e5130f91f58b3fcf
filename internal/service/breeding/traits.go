package breeding

import (
	"context"
	"fmt"
	"time"

	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/domain"
	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/service/breeding/traits"
)

// TraitsResult is the live-editing view of a trait string.
type TraitsResult struct {
	Tokens []string           `json:"tokens"`
	Visual []domain.GeneToken `json:"visual"`
	Het    []domain.GeneToken `json:"het"`
}

// Segment splits free text into raw gene tokens.
func (s *Service) Segment(text string) []string {
	return s.engine.Load().segmenter.Segment(text)
}

// Classify splits raw tokens into visual and het descriptors.
func (s *Service) Classify(tokens []string) traits.Classification {
	return s.engine.Load().classifier.Classify(tokens)
}

// Organize dedupes tokens and orders them for display.
func (s *Service) Organize(tokens []string) []string {
	return s.engine.Load().classifier.Organize(tokens)
}

// ParseTraits segments and classifies text in one call.
func (s *Service) ParseTraits(ctx context.Context, text string) (res *TraitsResult, err error) {
	start := time.Now()
	defer func() { s.observe(ctx, "parse_traits", start, err) }()

	if len(text) > s.cfg.MaxTextLength {
		return nil, domain.NewValidationError("text", fmt.Sprintf("too long (max %d)", s.cfg.MaxTextLength))
	}

	eng := s.engine.Load()
	tokens := eng.segmenter.Segment(text)
	c := eng.classifier.Classify(tokens)
	return &TraitsResult{
		Tokens: tokens,
		Visual: nonNil(c.Visual),
		Het:    nonNil(c.Het),
	}, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
