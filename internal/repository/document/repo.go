// Package document persists documents as Redis hashes, one hash per document.
package document

import (
	"context"
	"fmt"
	"strings"

	"github.com/edura-cloud/docsearch/internal/db"
	"github.com/edura-cloud/docsearch/internal/domain"
	domdoc "github.com/edura-cloud/docsearch/internal/domain/document"
	"github.com/edura-cloud/docsearch/internal/domain/search/request"
)

// store is the consumer interface for documents (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	HIncrBy(ctx context.Context, key, field string, incr int64) (int64, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo implements the document repositories the usecases depend on.
type Repo struct {
	store store
}

// New creates a document repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Upsert creates or updates a document. Returns true if created.
func (r *Repo) Upsert(ctx context.Context, doc *domdoc.Document) (bool, error) {
	key := docKey(doc.ID())

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return false, fmt.Errorf("check exists %s: %w", key, err)
	}

	if err := r.store.HSet(ctx, key, buildHashFields(doc)); err != nil {
		return false, fmt.Errorf("hset %s: %w", key, err)
	}

	return !exists, nil
}

// UpsertMulti stores a batch of documents in one pipelined round-trip.
func (r *Repo) UpsertMulti(ctx context.Context, docs []domdoc.Document) error {
	if len(docs) == 0 {
		return nil
	}
	items := make([]db.HashSetItem, len(docs))
	for i := range docs {
		items[i] = db.HashSetItem{
			Key:    docKey(docs[i].ID()),
			Fields: buildHashFields(&docs[i]),
		}
	}
	if err := r.store.HSetMulti(ctx, items); err != nil {
		return fmt.Errorf("hset multi: %w", err)
	}
	return nil
}

// Get returns a document by ID.
func (r *Repo) Get(ctx context.Context, id string) (domdoc.Document, error) {
	key := docKey(id)
	m, err := r.store.HGetAll(ctx, key)
	if err != nil {
		return domdoc.Document{}, fmt.Errorf("hgetall %s: %w", key, err)
	}
	if len(m) == 0 {
		return domdoc.Document{}, domain.ErrDocumentNotFound
	}
	return parseHashFields(id, m), nil
}

// List returns all documents passing the structural filters. The relevance
// pipeline does the scoring; this only narrows the candidate set.
func (r *Repo) List(ctx context.Context, filters request.Filters) ([]domdoc.Document, error) {
	keys, err := r.store.Scan(ctx, docKey("*"))
	if err != nil {
		return nil, fmt.Errorf("scan documents: %w", err)
	}
	if len(keys) == 0 {
		return nil, nil
	}

	maps, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("hgetall multi: %w", err)
	}

	match := newFilterMatcher(filters)
	docs := make([]domdoc.Document, 0, len(maps))
	for i, m := range maps {
		if len(m) == 0 {
			// Key expired or deleted between SCAN and HGETALL.
			continue
		}
		doc := parseHashFields(docID(keys[i]), m)
		if match(&doc) {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

// Delete removes a document.
func (r *Repo) Delete(ctx context.Context, id string) error {
	key := docKey(id)

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}
	if !exists {
		return domain.ErrDocumentNotFound
	}

	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	return nil
}

// IncrementCounter atomically bumps an engagement counter (views, downloads)
// and returns the new value.
func (r *Repo) IncrementCounter(ctx context.Context, id, counter string) (int64, error) {
	if counter != fieldViews && counter != fieldDownloads {
		return 0, fmt.Errorf("unknown counter %q: %w", counter, domain.ErrInvalidRequest)
	}
	key := docKey(id)

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("check exists %s: %w", key, err)
	}
	if !exists {
		return 0, domain.ErrDocumentNotFound
	}

	n, err := r.store.HIncrBy(ctx, key, counter, 1)
	if err != nil {
		return 0, fmt.Errorf("hincrby %s %s: %w", key, counter, err)
	}
	return n, nil
}

const docKeyPrefix = domain.KeyPrefix + "doc:"

func docKey(id string) string {
	return docKeyPrefix + id
}

func docID(key string) string {
	return strings.TrimPrefix(key, docKeyPrefix)
}
