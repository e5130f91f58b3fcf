package seeder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/domain"
	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/service/genecatalog"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type geneCatalog interface {
	Create(ctx context.Context, input genecatalog.CreateGeneInput) (*domain.CustomGene, error)
}

// ---------------------------------------------------------------------------
// Pipeline
// ---------------------------------------------------------------------------

// FileResult holds the outcome of importing a single gene file.
type FileResult struct {
	Inserted int
	Skipped  int
	Errors   int
	Duration time.Duration
	Err      error
}

// Pipeline imports gene files into the custom gene catalog.
type Pipeline struct {
	log     *slog.Logger
	catalog geneCatalog
	cfg     Config
	results map[string]FileResult
}

// NewPipeline creates a new Pipeline.
func NewPipeline(log *slog.Logger, catalog geneCatalog, cfg Config) *Pipeline {
	return &Pipeline{
		log:     log,
		catalog: catalog,
		cfg:     cfg,
		results: make(map[string]FileResult),
	}
}

// Results returns per-file results after Run completes.
func (p *Pipeline) Results() map[string]FileResult {
	return p.results
}

// HasErrors returns true if any file recorded errors.
func (p *Pipeline) HasErrors() bool {
	for _, r := range p.results {
		if r.Err != nil || r.Errors > 0 {
			return true
		}
	}
	return false
}

// Run imports every configured file in order. A file that cannot be read
// is recorded and the remaining files still run. A gene whose name is
// already registered counts as skipped. Only context cancellation aborts
// the run.
func (p *Pipeline) Run(ctx context.Context) error {
	if len(p.cfg.GeneFiles) == 0 {
		return fmt.Errorf("no gene files configured")
	}

	// Names seen across all files, so a later file cannot redeclare a gene.
	seen := make(map[string]string)

	for _, path := range p.cfg.GeneFiles {
		if err := ctx.Err(); err != nil {
			return err
		}

		start := time.Now()
		p.log.Info("importing gene file", slog.String("file", path))

		result := p.importFile(ctx, path, seen)
		result.Duration = time.Since(start)
		p.results[path] = result

		if result.Err != nil {
			if errors.Is(result.Err, context.Canceled) || errors.Is(result.Err, context.DeadlineExceeded) {
				return result.Err
			}
			p.log.Warn("gene file failed",
				slog.String("file", path),
				slog.String("error", result.Err.Error()),
				slog.Duration("duration", result.Duration),
			)
			continue
		}
		p.log.Info("gene file imported",
			slog.String("file", path),
			slog.Int("inserted", result.Inserted),
			slog.Int("skipped", result.Skipped),
			slog.Int("errors", result.Errors),
			slog.Bool("dry_run", p.cfg.DryRun),
			slog.Duration("duration", result.Duration),
		)
	}

	p.log.Info("pipeline completed", slog.Int("files", len(p.cfg.GeneFiles)))
	return nil
}

func (p *Pipeline) importFile(ctx context.Context, path string, seen map[string]string) FileResult {
	seeds, err := LoadGeneFile(path)
	if err != nil {
		return FileResult{Err: err}
	}

	var result FileResult
	for i, seed := range seeds {
		input := genecatalog.CreateGeneInput{Name: seed.Name, Category: seed.Category, Aliases: seed.Aliases}
		if err := input.Validate(); err != nil {
			result.Errors++
			p.log.Warn("invalid gene",
				slog.String("file", path),
				slog.Int("index", i),
				slog.String("name", seed.Name),
				slog.String("error", err.Error()),
			)
			continue
		}

		key := domain.NormalizeText(seed.Name)
		if first, dup := seen[key]; dup {
			result.Skipped++
			p.log.Debug("duplicate gene in input",
				slog.String("name", seed.Name),
				slog.String("first_file", first),
			)
			continue
		}
		seen[key] = path

		if p.cfg.DryRun {
			result.Inserted++
			continue
		}

		_, err := p.catalog.Create(ctx, input)
		switch {
		case err == nil:
			result.Inserted++
		case errors.Is(err, domain.ErrAlreadyExists):
			result.Skipped++
		case errors.Is(err, domain.ErrValidation):
			result.Errors++
			p.log.Warn("gene rejected", slog.String("name", seed.Name), slog.String("error", err.Error()))
		default:
			if ctx.Err() != nil {
				result.Err = ctx.Err()
				return result
			}
			result.Errors++
			p.log.Warn("gene import failed", slog.String("name", seed.Name), slog.String("error", err.Error()))
		}
	}
	return result
}
