package docsearch

import (
	"context"
	"fmt"
	"time"

	domdoc "github.com/edura-cloud/docsearch/internal/domain/document"
)

// DocumentService manages documents in the index.
type DocumentService struct {
	svc documentUseCase
	obs *observer
}

// Upsert creates or updates a document. Returns true if created.
func (s *DocumentService) Upsert(ctx context.Context, doc Document) (created bool, err error) {
	start := time.Now()
	defer func() { s.obs.observe("document_upsert", start, err) }()

	d, err := toInternalDocument(doc)
	if err != nil {
		return false, err
	}
	created, err = s.svc.Upsert(ctx, d)
	if err != nil {
		return false, fmt.Errorf("upsert: %w", err)
	}
	return created, nil
}

// BatchUpsert stores documents in bulk without vectorization.
func (s *DocumentService) BatchUpsert(ctx context.Context, docs []Document) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("document_batch_upsert", start, err) }()

	items := make([]domdoc.Document, len(docs))
	for i, d := range docs {
		items[i], err = toInternalDocument(d)
		if err != nil {
			return fmt.Errorf("document %d: %w", i, err)
		}
	}
	if err = s.svc.UpsertMulti(ctx, items); err != nil {
		return fmt.Errorf("batch upsert: %w", err)
	}
	return nil
}

// Get retrieves a document by ID with its category name resolved.
func (s *DocumentService) Get(ctx context.Context, id string) (doc Document, err error) {
	start := time.Now()
	defer func() { s.obs.observe("document_get", start, err) }()

	d, err := s.svc.Get(ctx, id)
	if err != nil {
		return Document{}, fmt.Errorf("get document: %w", err)
	}
	return fromInternalDocument(d), nil
}

// Delete removes a document by ID.
func (s *DocumentService) Delete(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("document_delete", start, err) }()

	if err = s.svc.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

// TrackView bumps a document's view counter and returns the new value.
func (s *DocumentService) TrackView(ctx context.Context, id string) (count int64, err error) {
	start := time.Now()
	defer func() { s.obs.observe("document_track_view", start, err) }()

	count, err = s.svc.TrackView(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("track view: %w", err)
	}
	return count, nil
}

// TrackDownload bumps a document's download counter and returns the new value.
func (s *DocumentService) TrackDownload(ctx context.Context, id string) (count int64, err error) {
	start := time.Now()
	defer func() { s.obs.observe("document_track_download", start, err) }()

	count, err = s.svc.TrackDownload(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("track download: %w", err)
	}
	return count, nil
}
