package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"portfolio_insight/pkg/models"
)

// ExtractionRepository stores one row per pipeline run.
type ExtractionRepository interface {
	Save(ctx context.Context, result *models.ExtractionResult) error
	Load(ctx context.Context, id uuid.UUID) (*models.ExtractionResult, error)
	List(ctx context.Context, limit int) ([]*models.ExtractionResult, error)
}

// PGExtractionRepo persists results as JSONB rows.
//
// Schema assumption (managed outside this service):
//
//	CREATE TABLE IF NOT EXISTS extractions (
//	  id UUID PRIMARY KEY,
//	  result_json JSONB NOT NULL,
//	  extracted_at TIMESTAMPTZ NOT NULL
//	);
type PGExtractionRepo struct{}

// NewPGExtractionRepo creates the postgres-backed repository.
func NewPGExtractionRepo() *PGExtractionRepo {
	return &PGExtractionRepo{}
}

func (r *PGExtractionRepo) Save(ctx context.Context, result *models.ExtractionResult) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	jsonData, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal extraction result: %w", err)
	}

	query := `
		INSERT INTO extractions (id, result_json, extracted_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (id)
		DO UPDATE SET
			result_json = EXCLUDED.result_json,
			extracted_at = EXCLUDED.extracted_at;
	`
	if _, err := pool.Exec(ctx, query, result.ID, jsonData, result.ExtractedAt); err != nil {
		return fmt.Errorf("failed to save extraction: %w", err)
	}
	return nil
}

func (r *PGExtractionRepo) Load(ctx context.Context, id uuid.UUID) (*models.ExtractionResult, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	var jsonData []byte
	row := pool.QueryRow(ctx, `SELECT result_json FROM extractions WHERE id = $1`, id)
	if err := row.Scan(&jsonData); err != nil {
		return nil, fmt.Errorf("failed to load extraction %s: %w", id, err)
	}

	var result models.ExtractionResult
	if err := json.Unmarshal(jsonData, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal extraction %s: %w", id, err)
	}
	return &result, nil
}

func (r *PGExtractionRepo) List(ctx context.Context, limit int) ([]*models.ExtractionResult, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}
	if limit <= 0 {
		limit = 50
	}

	rows, err := pool.Query(ctx, `SELECT result_json FROM extractions ORDER BY extracted_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list extractions: %w", err)
	}
	defer rows.Close()

	var results []*models.ExtractionResult
	for rows.Next() {
		var jsonData []byte
		if err := rows.Scan(&jsonData); err != nil {
			return nil, err
		}
		var result models.ExtractionResult
		if err := json.Unmarshal(jsonData, &result); err != nil {
			return nil, err
		}
		results = append(results, &result)
	}
	return results, rows.Err()
}

// MemoryExtractionRepo is the DB-less repository.
type MemoryExtractionRepo struct {
	mu      sync.RWMutex
	results map[uuid.UUID]*models.ExtractionResult
}

// NewMemoryExtractionRepo creates an empty in-memory repository.
func NewMemoryExtractionRepo() *MemoryExtractionRepo {
	return &MemoryExtractionRepo{results: make(map[uuid.UUID]*models.ExtractionResult)}
}

func (r *MemoryExtractionRepo) Save(_ context.Context, result *models.ExtractionResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results[result.ID] = result
	return nil
}

func (r *MemoryExtractionRepo) Load(_ context.Context, id uuid.UUID) (*models.ExtractionResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result, ok := r.results[id]
	if !ok {
		return nil, fmt.Errorf("extraction %s not found", id)
	}
	return result, nil
}

func (r *MemoryExtractionRepo) List(_ context.Context, limit int) ([]*models.ExtractionResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if limit <= 0 {
		limit = 50
	}

	results := make([]*models.ExtractionResult, 0, len(r.results))
	for _, result := range r.results {
		results = append(results, result)
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].ExtractedAt.After(results[j].ExtractedAt)
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}
