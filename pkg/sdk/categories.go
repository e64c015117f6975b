package docsearch

import (
	"context"
	"fmt"
	"time"
)

// CategoryService manages the category catalog that backs the highest
// ranking tier.
type CategoryService struct {
	svc categoryUseCase
	obs *observer
}

// Set creates or renames a category.
func (s *CategoryService) Set(ctx context.Context, id, name string) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("category_set", start, err) }()

	if err = s.svc.Upsert(ctx, id, name); err != nil {
		return fmt.Errorf("set category: %w", err)
	}
	return nil
}

// Delete removes a category from the catalog. Documents referencing it keep
// their category ID but lose the category ranking tier.
func (s *CategoryService) Delete(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("category_delete", start, err) }()

	if err = s.svc.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// All returns the full catalog as an ID to display name map.
func (s *CategoryService) All(ctx context.Context) (catalog map[string]string, err error) {
	start := time.Now()
	defer func() { s.obs.observe("category_all", start, err) }()

	catalog, err = s.svc.ResolveAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return catalog, nil
}
