package gene_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	postgres "github.com/albertbit-cyber/Breeding-planner-sub000/internal/adapter/postgres"
	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/adapter/postgres/gene"
	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/adapter/postgres/testhelper"
	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/domain"
)

// newRepo sets up a test DB and returns a ready Repo.
func newRepo(t *testing.T) *gene.Repo {
	t.Helper()
	if testing.Short() {
		t.Skip("integration test: requires docker")
	}
	return gene.New(testhelper.SetupTestDB(t))
}

// uniqueName avoids collisions between parallel tests sharing one database.
func uniqueName(prefix string) string {
	return prefix + " " + strings.ReplaceAll(uuid.NewString()[:8], "-", "")
}

func newGene(name string) domain.CustomGene {
	return domain.CustomGene{
		ID:        uuid.New(),
		Name:      name,
		Category:  domain.CategoryIncompleteDominant,
		Aliases:   []string{name + " alias"},
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
}

func TestRepo_Integration_CreateListDelete(t *testing.T) {
	t.Parallel()
	repo := newRepo(t)
	ctx := context.Background()

	g := newGene(uniqueName("Bongo"))
	created, err := repo.Create(ctx, g)
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}
	if created.ID != g.ID || created.Name != g.Name || created.Category != g.Category {
		t.Errorf("Create: got %+v, want %+v", created, g)
	}
	if len(created.Aliases) != 1 || created.Aliases[0] != g.Aliases[0] {
		t.Errorf("Aliases mismatch: got %v, want %v", created.Aliases, g.Aliases)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: unexpected error: %v", err)
	}
	found := false
	for _, item := range list {
		if item.ID == g.ID {
			found = true
		}
	}
	if !found {
		t.Errorf("List: gene %s not returned", g.ID)
	}

	if err := repo.Delete(ctx, g.ID); err != nil {
		t.Fatalf("Delete: unexpected error: %v", err)
	}
	if err := repo.Delete(ctx, g.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("second Delete: got %v, want ErrNotFound", err)
	}
}

func TestRepo_Integration_DuplicateNameIgnoresCase(t *testing.T) {
	t.Parallel()
	repo := newRepo(t)
	ctx := context.Background()

	name := uniqueName("Sable")
	if _, err := repo.Create(ctx, newGene(name)); err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	_, err := repo.Create(ctx, newGene(strings.ToUpper(name)))
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Errorf("duplicate Create: got %v, want ErrAlreadyExists", err)
	}
}

func TestRepo_Integration_GetByNamesIgnoresCase(t *testing.T) {
	t.Parallel()
	repo := newRepo(t)
	ctx := context.Background()

	g := newGene(uniqueName("Bongo"))
	if _, err := repo.Create(ctx, g); err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	got, err := repo.GetByNames(ctx, []string{strings.ToUpper(g.Name), uniqueName("Missing")})
	if err != nil {
		t.Fatalf("GetByNames: unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != g.ID {
		t.Errorf("GetByNames = %+v, want only %s", got, g.ID)
	}
}

func TestRepo_Integration_RollbackInTx(t *testing.T) {
	t.Parallel()
	if testing.Short() {
		t.Skip("integration test: requires docker")
	}
	pool := testhelper.SetupTestDB(t)
	repo := gene.New(pool)
	tm := postgres.NewTxManager(pool)
	ctx := context.Background()

	g := newGene(uniqueName("Jaguar"))
	sentinel := errors.New("abort")
	err := tm.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := repo.Create(ctx, g); err != nil {
			return err
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("RunInTx: got %v, want sentinel", err)
	}

	if err := repo.Delete(ctx, g.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("gene should not exist after rollback, Delete returned %v", err)
	}
}
