package chi

import (
	"context"

	domdoc "github.com/edura-cloud/docsearch/internal/domain/document"
	"github.com/edura-cloud/docsearch/internal/domain/search/request"
	"github.com/edura-cloud/docsearch/internal/domain/search/result"
	healthuc "github.com/edura-cloud/docsearch/internal/usecase/health"
)

// Searcher executes ranked searches.
type Searcher interface {
	Search(ctx context.Context, req *request.Request) (result.Page, error)
}

// DocumentService manages the write side of the index.
type DocumentService interface {
	Upsert(ctx context.Context, doc domdoc.Document) (bool, error)
	UpsertMulti(ctx context.Context, docs []domdoc.Document) error
	Get(ctx context.Context, id string) (domdoc.Document, error)
	Delete(ctx context.Context, id string) error
	TrackView(ctx context.Context, id string) (int64, error)
	TrackDownload(ctx context.Context, id string) (int64, error)
}

// CategoryStore manages the category catalog.
type CategoryStore interface {
	Upsert(ctx context.Context, id, name string) error
	Delete(ctx context.Context, id string) error
	ResolveAll(ctx context.Context) (map[string]string, error)
}

// CorpusRefresher rebuilds the BM25 corpus statistics on demand.
type CorpusRefresher interface {
	Refresh(ctx context.Context) error
}

// HealthChecker aggregates component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}
