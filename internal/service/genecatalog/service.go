package genecatalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/domain"
	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/service/breeding/genedict"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type geneRepo interface {
	List(ctx context.Context) ([]domain.CustomGene, error)
	Create(ctx context.Context, gene domain.CustomGene) (*domain.CustomGene, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type registryPublisher interface {
	SetRegistry(dict *genedict.Registry)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service manages user-registered genes and publishes the registry built
// from the built-in table, configured extras and stored genes.
type Service struct {
	log       *slog.Logger
	genes     geneRepo
	tx        txManager
	publisher registryPublisher
	base      []genedict.Entry
	baseDict  *genedict.Registry

	// mu serializes mutations so publishes happen in commit order.
	mu sync.Mutex
}

// NewService creates a gene catalog service. extras are registered after
// the built-in genes and before stored genes.
func NewService(logger *slog.Logger, genes geneRepo, tx txManager, publisher registryPublisher, extras []genedict.Entry) *Service {
	base := append(genedict.Builtin(), extras...)
	return &Service{
		log:       logger.With("service", "genecatalog"),
		genes:     genes,
		tx:        tx,
		publisher: publisher,
		base:      base,
		baseDict:  genedict.New(base...),
	}
}

// CreateGeneInput holds the parameters for registering a gene.
type CreateGeneInput struct {
	Name     string
	Category string
	Aliases  []string
}

const (
	maxNameLength = 100
	maxAliases    = 20
)

// Validate checks all fields and collects all errors.
func (i *CreateGeneInput) Validate() error {
	var errs []domain.FieldError

	name := strings.TrimSpace(i.Name)
	if genedict.NormalizeKey(name) == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	} else if len(name) > maxNameLength {
		errs = append(errs, domain.FieldError{Field: "name", Message: fmt.Sprintf("too long (max %d)", maxNameLength)})
	}

	if _, ok := domain.ParseCategory(i.Category); !ok {
		errs = append(errs, domain.FieldError{Field: "category", Message: "unknown category"})
	}

	if len(i.Aliases) > maxAliases {
		errs = append(errs, domain.FieldError{Field: "aliases", Message: fmt.Sprintf("too many (max %d)", maxAliases)})
	}
	for ai, alias := range i.Aliases {
		if len(alias) > maxNameLength {
			errs = append(errs, domain.FieldError{
				Field:   fmt.Sprintf("aliases[%d]", ai),
				Message: fmt.Sprintf("too long (max %d)", maxNameLength),
			})
		}
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// List returns the stored genes.
func (s *Service) List(ctx context.Context) ([]domain.CustomGene, error) {
	genes, err := s.genes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list genes: %w", err)
	}
	return genes, nil
}

// Create stores a gene and publishes the rebuilt registry. The insert and
// the rebuild share a transaction, so a failed rebuild leaves nothing
// stored. A name that already resolves to a built-in or configured gene is
// rejected with ErrAlreadyExists.
func (s *Service) Create(ctx context.Context, input CreateGeneInput) (*domain.CustomGene, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	name := strings.Join(strings.Fields(input.Name), " ")
	if _, ok := s.baseDict.LookupCanonical(name); ok {
		return nil, domain.ErrAlreadyExists
	}
	category, _ := domain.ParseCategory(input.Category)

	gene := domain.CustomGene{
		ID:        uuid.New(),
		Name:      name,
		Category:  category,
		Aliases:   cleanAliases(name, input.Aliases),
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		created *domain.CustomGene
		dict    *genedict.Registry
	)
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		if created, err = s.genes.Create(ctx, gene); err != nil {
			if errors.Is(err, domain.ErrAlreadyExists) {
				return err
			}
			return fmt.Errorf("create gene: %w", err)
		}
		dict, err = s.BuildRegistry(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.publisher.SetRegistry(dict)

	s.log.InfoContext(ctx, "gene registered",
		slog.String("gene_id", created.ID.String()),
		slog.String("name", created.Name),
		slog.String("category", created.Category.String()),
		slog.Int("genes", dict.Len()),
	)
	return created, nil
}

// Delete removes a stored gene and publishes the rebuilt registry.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return domain.NewValidationError("id", "required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var dict *genedict.Registry
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.genes.Delete(ctx, id); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return err
			}
			return fmt.Errorf("delete gene: %w", err)
		}
		var err error
		dict, err = s.BuildRegistry(ctx)
		return err
	})
	if err != nil {
		return err
	}
	s.publisher.SetRegistry(dict)

	s.log.InfoContext(ctx, "gene deleted", slog.String("gene_id", id.String()), slog.Int("genes", dict.Len()))
	return nil
}

// BuildRegistry builds a registry from the built-in table, the configured
// extras and the stored genes, in that order of precedence.
func (s *Service) BuildRegistry(ctx context.Context) (*genedict.Registry, error) {
	stored, err := s.genes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("build registry: %w", err)
	}

	entries := make([]genedict.Entry, 0, len(s.base)+len(stored))
	entries = append(entries, s.base...)
	for _, g := range stored {
		entries = append(entries, genedict.Entry{Name: g.Name, Category: g.Category, Aliases: g.Aliases})
	}
	return genedict.New(entries...), nil
}

// Refresh rebuilds the registry and publishes it.
func (s *Service) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dict, err := s.BuildRegistry(ctx)
	if err != nil {
		return err
	}
	s.publisher.SetRegistry(dict)
	return nil
}

// cleanAliases trims aliases and drops blanks, duplicates and the name
// itself, comparing by gene key.
func cleanAliases(name string, aliases []string) []string {
	seen := map[string]struct{}{genedict.NormalizeKey(name): {}}
	out := make([]string, 0, len(aliases))
	for _, a := range aliases {
		a = strings.Join(strings.Fields(a), " ")
		key := genedict.NormalizeKey(a)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, a)
	}
	return out
}
