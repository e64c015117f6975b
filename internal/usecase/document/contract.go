package document

import (
	"context"

	"github.com/edura-cloud/docsearch/internal/domain"
	domdoc "github.com/edura-cloud/docsearch/internal/domain/document"
)

// Repository persists documents and their engagement counters.
type Repository interface {
	Upsert(ctx context.Context, doc *domdoc.Document) (bool, error)
	UpsertMulti(ctx context.Context, docs []domdoc.Document) error
	Get(ctx context.Context, id string) (domdoc.Document, error)
	Delete(ctx context.Context, id string) error
	IncrementCounter(ctx context.Context, id, counter string) (int64, error)
}

// CategoryResolver looks up the display name attached to a category ID.
type CategoryResolver interface {
	Resolve(ctx context.Context, id string) (string, error)
}

// Embedder vectorizes document text.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
