package history

import (
	"context"
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ErrRecordNotFound marks a lookup for a publish record that was never written.
var ErrRecordNotFound = errors.New("history: publish record not found")

// BunHistoryRepository stores publish records through the generic bun
// repository, optionally wrapped with a read-through cache.
type BunHistoryRepository struct {
	repo repository.Repository[*PublishRecord]
}

// NewBunHistoryRepository constructs an uncached repository.
func NewBunHistoryRepository(db *bun.DB) *BunHistoryRepository {
	return NewBunHistoryRepositoryWithCache(db, nil, nil)
}

// NewBunHistoryRepositoryWithCache constructs a repository with optional
// caching. Passing nil for either cache collaborator disables caching.
func NewBunHistoryRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunHistoryRepository {
	base := NewPublishRecordRepository(db)
	return &BunHistoryRepository{repo: wrapWithCache(base, cacheService, keySerializer)}
}

// Upsert writes a publish record, replacing any prior row with the same ID.
func (r *BunHistoryRepository) Upsert(ctx context.Context, record *PublishRecord) (*PublishRecord, error) {
	_, err := r.repo.GetByID(ctx, record.ID.String())
	if err != nil {
		if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
			created, createErr := r.repo.Create(ctx, record)
			if createErr != nil {
				return nil, fmt.Errorf("history repository error: %w", createErr)
			}
			return created, nil
		}
		return nil, mapRepositoryError(err, record.ID.String())
	}

	updated, err := r.repo.Update(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("history repository error: %w", err)
	}
	return updated, nil
}

// GetByID fetches a publish record by its deterministic ID.
func (r *BunHistoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*PublishRecord, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, id.String())
	}
	return record, nil
}

// GetBySlug fetches a publish record by its readable handle.
func (r *BunHistoryRepository) GetBySlug(ctx context.Context, slug string) (*PublishRecord, error) {
	record, err := r.repo.GetByIdentifier(ctx, slug)
	if err != nil {
		return nil, mapRepositoryError(err, slug)
	}
	return record, nil
}

// List returns every recorded publish run.
func (r *BunHistoryRepository) List(ctx context.Context) ([]*PublishRecord, error) {
	records, _, err := r.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("history repository error: %w", err)
	}
	return records, nil
}

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return fmt.Errorf("%w: %s", ErrRecordNotFound, key)
	}
	return fmt.Errorf("history repository error: %w", err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
