package seeder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/domain"
	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/service/genecatalog"
)

// mockCatalog records calls to verify pipeline behavior.
type mockCatalog struct {
	mu      sync.Mutex
	created []string
	errs    map[string]error
}

func (m *mockCatalog) Create(_ context.Context, input genecatalog.CreateGeneInput) (*domain.CustomGene, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.errs[input.Name]; ok {
		return nil, err
	}
	m.created = append(m.created, input.Name)
	category, _ := domain.ParseCategory(input.Category)
	return &domain.CustomGene{ID: uuid.New(), Name: input.Name, Category: category, Aliases: input.Aliases}, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const basicYAML = `genes:
  - name: Red Axanthic
    category: recessive
    aliases: [RA, TSK Axanthic]
  - name: Lemon Blast
    category: incomplete-dominant
`

// ===========================================================================
// Run
// ===========================================================================

func TestPipeline_ImportsGenes(t *testing.T) {
	t.Parallel()
	catalog := &mockCatalog{}
	path := writeFile(t, "genes.yaml", basicYAML)

	p := NewPipeline(testLogger(), catalog, Config{GeneFiles: []string{path}})
	require.NoError(t, p.Run(context.Background()))

	assert.Equal(t, []string{"Red Axanthic", "Lemon Blast"}, catalog.created)
	assert.Equal(t, 2, p.Results()[path].Inserted)
	assert.False(t, p.HasErrors())
}

func TestPipeline_JSONFile(t *testing.T) {
	t.Parallel()
	catalog := &mockCatalog{}
	path := writeFile(t, "genes.json", `{"genes":[{"name":"Lemon Blast","category":"dominant"}]}`)

	p := NewPipeline(testLogger(), catalog, Config{GeneFiles: []string{path}})
	require.NoError(t, p.Run(context.Background()))

	assert.Equal(t, []string{"Lemon Blast"}, catalog.created)
}

func TestPipeline_DryRunNoWrites(t *testing.T) {
	t.Parallel()
	catalog := &mockCatalog{}
	path := writeFile(t, "genes.yaml", basicYAML)

	p := NewPipeline(testLogger(), catalog, Config{GeneFiles: []string{path}, DryRun: true})
	require.NoError(t, p.Run(context.Background()))

	assert.Empty(t, catalog.created)
	assert.Equal(t, 2, p.Results()[path].Inserted)
}

func TestPipeline_ExistingGenesSkipped(t *testing.T) {
	t.Parallel()
	catalog := &mockCatalog{errs: map[string]error{
		"Red Axanthic": fmt.Errorf("gene: %w", domain.ErrAlreadyExists),
	}}
	path := writeFile(t, "genes.yaml", basicYAML)

	p := NewPipeline(testLogger(), catalog, Config{GeneFiles: []string{path}})
	require.NoError(t, p.Run(context.Background()))

	res := p.Results()[path]
	assert.Equal(t, 1, res.Inserted)
	assert.Equal(t, 1, res.Skipped)
	assert.False(t, p.HasErrors())
}

func TestPipeline_InvalidGenesCounted(t *testing.T) {
	t.Parallel()
	catalog := &mockCatalog{}
	path := writeFile(t, "genes.yaml", `genes:
  - name: ""
    category: recessive
  - name: Mystery
    category: sex-linked
  - name: Lemon Blast
    category: dominant
`)

	p := NewPipeline(testLogger(), catalog, Config{GeneFiles: []string{path}})
	require.NoError(t, p.Run(context.Background()))

	res := p.Results()[path]
	assert.Equal(t, 2, res.Errors)
	assert.Equal(t, 1, res.Inserted)
	assert.True(t, p.HasErrors())
}

func TestPipeline_DuplicatesAcrossFiles(t *testing.T) {
	t.Parallel()
	catalog := &mockCatalog{}
	first := writeFile(t, "a.yaml", basicYAML)
	second := writeFile(t, "b.yaml", `genes:
  - name: "  red   AXANTHIC "
    category: recessive
`)

	p := NewPipeline(testLogger(), catalog, Config{GeneFiles: []string{first, second}})
	require.NoError(t, p.Run(context.Background()))

	assert.Len(t, catalog.created, 2)
	assert.Equal(t, 1, p.Results()[second].Skipped)
}

func TestPipeline_ErrorIsolation(t *testing.T) {
	t.Parallel()
	catalog := &mockCatalog{}
	missing := filepath.Join(t.TempDir(), "missing.yaml")
	good := writeFile(t, "genes.yaml", basicYAML)

	p := NewPipeline(testLogger(), catalog, Config{GeneFiles: []string{missing, good}})
	require.NoError(t, p.Run(context.Background()))

	assert.Error(t, p.Results()[missing].Err)
	assert.Equal(t, 2, p.Results()[good].Inserted)
	assert.True(t, p.HasErrors())
}

func TestPipeline_RepoErrorCounted(t *testing.T) {
	t.Parallel()
	catalog := &mockCatalog{errs: map[string]error{"Lemon Blast": errors.New("connection refused")}}
	path := writeFile(t, "genes.yaml", basicYAML)

	p := NewPipeline(testLogger(), catalog, Config{GeneFiles: []string{path}})
	require.NoError(t, p.Run(context.Background()))

	assert.Equal(t, 1, p.Results()[path].Errors)
	assert.True(t, p.HasErrors())
}

func TestPipeline_CancelledContext(t *testing.T) {
	t.Parallel()
	path := writeFile(t, "genes.yaml", basicYAML)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewPipeline(testLogger(), &mockCatalog{}, Config{GeneFiles: []string{path}})
	assert.ErrorIs(t, p.Run(ctx), context.Canceled)
}

func TestPipeline_NoFiles(t *testing.T) {
	t.Parallel()
	p := NewPipeline(testLogger(), &mockCatalog{}, Config{})
	assert.Error(t, p.Run(context.Background()))
}

// ===========================================================================
// LoadConfig
// ===========================================================================

func TestLoadConfig_FromFile(t *testing.T) {
	t.Parallel()
	path := writeFile(t, "seeder.yaml", `gene_files: [a.yaml, b.yaml]
dry_run: true
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.yaml", "b.yaml"}, cfg.GeneFiles)
	assert.True(t, cfg.DryRun)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	t.Parallel()
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
