package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"portfolio_insight/pkg/models"
)

func TestMemoryExtractionRepo_SaveLoad(t *testing.T) {
	repo := NewMemoryExtractionRepo()
	ctx := context.Background()

	result := &models.ExtractionResult{
		ID:          uuid.New(),
		Data:        models.NewEmptyFinancialData(),
		ExtractedAt: time.Now(),
	}
	if err := repo.Save(ctx, result); err != nil {
		t.Fatal(err)
	}

	loaded, err := repo.Load(ctx, result.ID)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.ID != result.ID {
		t.Errorf("ID = %s, want %s", loaded.ID, result.ID)
	}

	if _, err := repo.Load(ctx, uuid.New()); err == nil {
		t.Error("expected not-found error")
	}
}

func TestMemoryExtractionRepo_ListNewestFirst(t *testing.T) {
	repo := NewMemoryExtractionRepo()
	ctx := context.Background()

	older := &models.ExtractionResult{ID: uuid.New(), Data: models.NewEmptyFinancialData(), ExtractedAt: time.Now().Add(-time.Hour)}
	newer := &models.ExtractionResult{ID: uuid.New(), Data: models.NewEmptyFinancialData(), ExtractedAt: time.Now()}
	_ = repo.Save(ctx, older)
	_ = repo.Save(ctx, newer)

	results, err := repo.List(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 || results[0].ID != newer.ID {
		t.Errorf("unexpected order: %v", results)
	}

	limited, _ := repo.List(ctx, 1)
	if len(limited) != 1 {
		t.Errorf("limit ignored: %d", len(limited))
	}
}
