package docsearch

import (
	"context"

	domdoc "github.com/edura-cloud/docsearch/internal/domain/document"
	"github.com/edura-cloud/docsearch/internal/domain/search/request"
	"github.com/edura-cloud/docsearch/internal/domain/search/result"
	healthuc "github.com/edura-cloud/docsearch/internal/usecase/health"
)

type mockSearch struct {
	searchFunc func(ctx context.Context, req *request.Request) (result.Page, error)
}

func (m *mockSearch) Search(ctx context.Context, req *request.Request) (result.Page, error) {
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

type mockHealth struct {
	report healthuc.Report
}

func (m *mockHealth) Check(_ context.Context) healthuc.Report {
	return m.report
}

func newTestClient() *Client {
	obs, _ := newObserver(nil, nil)
	return &Client{obs: obs}
}
