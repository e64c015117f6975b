// Package category persists the category catalog as a single Redis hash
// mapping category ID to display name. The catalog is small (tens of
// entries), so bulk resolution is one HGETALL.
package category

import (
	"context"
	"fmt"

	"github.com/edura-cloud/docsearch/internal/domain"
)

// store is the consumer interface for categories (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HDel(ctx context.Context, key string, fields ...string) error
}

// Repo implements category lookup and maintenance.
type Repo struct {
	store store
}

// New creates a category repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

const catalogKey = domain.KeyPrefix + "categories"

// Upsert stores or renames a category.
func (r *Repo) Upsert(ctx context.Context, id, name string) error {
	if id == "" || name == "" {
		return fmt.Errorf("category id and name are required: %w", domain.ErrInvalidRequest)
	}
	if err := r.store.HSet(ctx, catalogKey, map[string]string{id: name}); err != nil {
		return fmt.Errorf("hset %s: %w", catalogKey, err)
	}
	return nil
}

// Delete removes a category from the catalog.
func (r *Repo) Delete(ctx context.Context, id string) error {
	if err := r.store.HDel(ctx, catalogKey, id); err != nil {
		return fmt.Errorf("hdel %s: %w", catalogKey, err)
	}
	return nil
}

// ResolveAll returns the full id-to-name catalog.
func (r *Repo) ResolveAll(ctx context.Context) (map[string]string, error) {
	m, err := r.store.HGetAll(ctx, catalogKey)
	if err != nil {
		return nil, fmt.Errorf("hgetall %s: %w", catalogKey, err)
	}
	return m, nil
}

// Resolve returns the display name of one category.
func (r *Repo) Resolve(ctx context.Context, id string) (string, error) {
	m, err := r.ResolveAll(ctx)
	if err != nil {
		return "", err
	}
	name, ok := m[id]
	if !ok {
		return "", domain.ErrCategoryNotFound
	}
	return name, nil
}
