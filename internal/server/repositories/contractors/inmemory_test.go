package contractors

import (
	"context"
	"errors"
	"testing"

	"github.com/mpavlovs/punchclock/internal/common"
	"github.com/mpavlovs/punchclock/internal/server/models"
)

func TestInMemory_CreateAndGet(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, &models.Contractor{Name: "Alice", Email: "alice@example.com", Active: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected assigned ID")
	}

	got, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "Alice" || got.Email != "alice@example.com" {
		t.Fatalf("unexpected contractor: %+v", got)
	}
}

func TestInMemory_DuplicateEmail(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	if _, err := repo.Create(ctx, &models.Contractor{Name: "Alice", Email: "a@x.io"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := repo.Create(ctx, &models.Contractor{Name: "Alice Again", Email: "a@x.io"})
	if !errors.Is(err, common.ErrInvalidInput) {
		t.Fatalf("want ErrInvalidInput, got %v", err)
	}
}

func TestInMemory_GetByID_NotFound(t *testing.T) {
	repo := NewInMemoryRepository()
	_, err := repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestInMemory_ListOrderedByCreation(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	first, _ := repo.Create(ctx, &models.Contractor{Name: "A", Email: "a@x.io"})
	second, _ := repo.Create(ctx, &models.Contractor{Name: "B", Email: "b@x.io"})

	got, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2 contractors, got %d", len(got))
	}
	ids := map[string]bool{got[0].ID: true, got[1].ID: true}
	if !ids[first.ID] || !ids[second.ID] {
		t.Fatalf("missing contractors in list: %+v", got)
	}
}

func TestInMemory_SetActive(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	c, _ := repo.Create(ctx, &models.Contractor{Name: "A", Email: "a@x.io", Active: true})

	if err := repo.SetActive(ctx, c.ID, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := repo.GetByID(ctx, c.ID)
	if got.Active {
		t.Fatal("expected deactivated contractor")
	}

	if err := repo.SetActive(ctx, "missing", true); !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestInMemory_ReturnsCopies(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	c, _ := repo.Create(ctx, &models.Contractor{Name: "A", Email: "a@x.io", Active: true})

	got, _ := repo.GetByID(ctx, c.ID)
	got.Name = "mutated"

	again, _ := repo.GetByID(ctx, c.ID)
	if again.Name != "A" {
		t.Fatalf("store leaked internal state: %+v", again)
	}
}
