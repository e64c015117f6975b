package search

import (
	"context"

	"github.com/edura-cloud/docsearch/internal/domain"
	domdoc "github.com/edura-cloud/docsearch/internal/domain/document"
	"github.com/edura-cloud/docsearch/internal/domain/search/request"
	"github.com/edura-cloud/docsearch/internal/domain/search/result"
	"github.com/edura-cloud/docsearch/internal/domain/search/score"
)

// Repository reads the candidate document set.
type Repository interface {
	List(ctx context.Context, filters request.Filters) ([]domdoc.Document, error)
}

// CategoryResolver maps category IDs to display names.
type CategoryResolver interface {
	ResolveAll(ctx context.Context) (map[string]string, error)
}

// ResultCache stores ranked pages between identical requests.
type ResultCache interface {
	Get(ctx context.Context, req *request.Request) (result.Page, bool)
	Set(ctx context.Context, req *request.Request, page result.Page)
}

// StatsProvider exposes the current BM25 corpus statistics.
type StatsProvider interface {
	Current() (*score.Stats, error)
}

// Embedder vectorizes query text.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
