// Package gene implements the custom gene repository using PostgreSQL.
// Queries are built with squirrel and scanned with scany.
package gene

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/albertbit-cyber/Breeding-planner-sub000/internal/adapter/postgres"
	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/domain"
)

const table = "custom_genes"

var (
	columns = []string{"id", "name", "category", "aliases", "created_at"}
	psql    = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
)

// Repo provides custom gene persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new gene repository. db is usually a *pgxpool.Pool; a
// transaction stored in the context by TxManager takes precedence.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// List returns all stored genes in registration order.
// Returns an empty slice (not nil) when nothing is stored.
func (r *Repo) List(ctx context.Context) ([]domain.CustomGene, error) {
	query, args, err := psql.Select(columns...).
		From(table).
		OrderBy("created_at ASC", "name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list genes query: %w", err)
	}

	genes := []domain.CustomGene{}
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &genes, query, args...); err != nil {
		return nil, fmt.Errorf("list genes: %w", err)
	}
	return genes, nil
}

// GetByNames returns the stored genes whose names match any of names,
// ignoring case. Names with no stored gene are absent from the result.
func (r *Repo) GetByNames(ctx context.Context, names []string) ([]domain.CustomGene, error) {
	if len(names) == 0 {
		return []domain.CustomGene{}, nil
	}
	lowered := make([]string, len(names))
	for i, n := range names {
		lowered[i] = strings.ToLower(n)
	}

	query, args, err := psql.Select(columns...).
		From(table).
		Where(squirrel.Eq{"lower(name)": lowered}).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get genes by names query: %w", err)
	}

	genes := []domain.CustomGene{}
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &genes, query, args...); err != nil {
		return nil, fmt.Errorf("get genes by names: %w", err)
	}
	return genes, nil
}

// Create inserts a gene and returns the stored row.
// Returns domain.ErrAlreadyExists when the name is taken (case-insensitive).
func (r *Repo) Create(ctx context.Context, gene domain.CustomGene) (*domain.CustomGene, error) {
	aliases := gene.Aliases
	if aliases == nil {
		aliases = []string{}
	}

	query, args, err := psql.Insert(table).
		Columns(columns...).
		Values(gene.ID, gene.Name, gene.Category.String(), aliases, gene.CreatedAt).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build create gene query: %w", err)
	}

	var created domain.CustomGene
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &created, query, args...); err != nil {
		return nil, postgres.MapError(err, "gene", gene.ID)
	}
	return &created, nil
}

// Delete removes a gene by ID.
// Returns domain.ErrNotFound if no row was deleted.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := psql.Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete gene query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "gene", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("gene %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
