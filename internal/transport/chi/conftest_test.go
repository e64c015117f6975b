package chi

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	domdoc "github.com/edura-cloud/docsearch/internal/domain/document"
	"github.com/edura-cloud/docsearch/internal/domain/search/request"
	"github.com/edura-cloud/docsearch/internal/domain/search/result"
	healthuc "github.com/edura-cloud/docsearch/internal/usecase/health"
)

type mockSearcher struct {
	searchFunc func(ctx context.Context, req *request.Request) (result.Page, error)
}

func (m *mockSearcher) Search(ctx context.Context, req *request.Request) (result.Page, error) {
	return m.searchFunc(ctx, req)
}

type mockDocuments struct {
	upsertFunc        func(ctx context.Context, doc domdoc.Document) (bool, error)
	upsertMultiFunc   func(ctx context.Context, docs []domdoc.Document) error
	getFunc           func(ctx context.Context, id string) (domdoc.Document, error)
	deleteFunc        func(ctx context.Context, id string) error
	trackViewFunc     func(ctx context.Context, id string) (int64, error)
	trackDownloadFunc func(ctx context.Context, id string) (int64, error)
}

func (m *mockDocuments) Upsert(ctx context.Context, doc domdoc.Document) (bool, error) {
	return m.upsertFunc(ctx, doc)
}

func (m *mockDocuments) UpsertMulti(ctx context.Context, docs []domdoc.Document) error {
	return m.upsertMultiFunc(ctx, docs)
}

func (m *mockDocuments) Get(ctx context.Context, id string) (domdoc.Document, error) {
	return m.getFunc(ctx, id)
}

func (m *mockDocuments) Delete(ctx context.Context, id string) error {
	return m.deleteFunc(ctx, id)
}

func (m *mockDocuments) TrackView(ctx context.Context, id string) (int64, error) {
	return m.trackViewFunc(ctx, id)
}

func (m *mockDocuments) TrackDownload(ctx context.Context, id string) (int64, error) {
	return m.trackDownloadFunc(ctx, id)
}

type mockCategories struct {
	upsertFunc     func(ctx context.Context, id, name string) error
	deleteFunc     func(ctx context.Context, id string) error
	resolveAllFunc func(ctx context.Context) (map[string]string, error)
}

func (m *mockCategories) Upsert(ctx context.Context, id, name string) error {
	return m.upsertFunc(ctx, id, name)
}

func (m *mockCategories) Delete(ctx context.Context, id string) error {
	return m.deleteFunc(ctx, id)
}

func (m *mockCategories) ResolveAll(ctx context.Context) (map[string]string, error) {
	return m.resolveAllFunc(ctx)
}

type mockCorpus struct {
	refreshFunc func(ctx context.Context) error
}

func (m *mockCorpus) Refresh(ctx context.Context) error {
	return m.refreshFunc(ctx)
}

type mockHealth struct {
	report healthuc.Report
}

func (m *mockHealth) Check(_ context.Context) healthuc.Report {
	return m.report
}

type serverMocks struct {
	search     *mockSearcher
	documents  *mockDocuments
	categories *mockCategories
	corpus     *mockCorpus
	health     *mockHealth
}

func newTestRouter(t *testing.T, mocks serverMocks) http.Handler {
	t.Helper()

	var corpus CorpusRefresher
	if mocks.corpus != nil {
		corpus = mocks.corpus
	}
	if mocks.health == nil {
		mocks.health = &mockHealth{report: healthuc.Report{Status: healthuc.Healthy}}
	}

	srv := NewServer(mocks.search, mocks.documents, mocks.categories, corpus, mocks.health, zap.NewNop())
	r := chi.NewRouter()
	srv.Routes(r)
	return r
}

func responseDoc(t *testing.T) domdoc.Document {
	t.Helper()
	return domdoc.Reconstruct(
		"doc-1", "Giải tích 1", []string{"toán"},
		"cat-math", "school-1", "Giáo trình", "pdf",
		120, 45, 8.5, time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC), nil,
	)
}
