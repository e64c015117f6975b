package searchcache

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/edura-cloud/docsearch/internal/db"
	domdoc "github.com/edura-cloud/docsearch/internal/domain/document"
	"github.com/edura-cloud/docsearch/internal/domain/search/request"
	"github.com/edura-cloud/docsearch/internal/domain/search/result"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	getFn func(ctx context.Context, key string) ([]byte, error)
	setFn func(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

func (m *mockStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value, ttl)
	}
	return nil
}

func testRequest(t *testing.T, query string, page int) request.Request {
	t.Helper()
	req, err := request.New(query, page, 12, request.Filters{})
	if err != nil {
		t.Fatalf("request.New: %v", err)
	}
	return req
}

func testPage(t *testing.T) result.Page {
	t.Helper()
	doc := domdoc.Reconstruct(
		"doc-1", "Giải tích 1", []string{"toán"},
		"cat-math", "school-bk", "Tóm tắt", "pdf",
		10, 5, 8.0,
		time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC), nil,
	)
	doc.SetCategoryName("Toán học")
	return result.Page{
		Items:    []result.ScoredDocument{result.NewScoredDocument(doc, 305.5, true)},
		Total:    1,
		Page:     1,
		PageSize: 12,
	}
}

func TestCache_RoundTrip(t *testing.T) {
	stored := map[string][]byte{}
	ms := &mockStore{
		getFn: func(_ context.Context, key string) ([]byte, error) {
			if data, ok := stored[key]; ok {
				return data, nil
			}
			return nil, db.ErrKeyNotFound
		},
		setFn: func(_ context.Context, key string, value []byte, ttl time.Duration) error {
			if ttl != 5*time.Minute {
				t.Errorf("unexpected TTL: %v", ttl)
			}
			stored[key] = value
			return nil
		},
	}
	c := New(ms, 5*time.Minute, zap.NewNop())
	req := testRequest(t, "giải tích", 1)

	if _, ok := c.Get(context.Background(), &req); ok {
		t.Fatal("expected cache miss before Set")
	}

	c.Set(context.Background(), &req, testPage(t))

	page, ok := c.Get(context.Background(), &req)
	if !ok {
		t.Fatal("expected cache hit after Set")
	}
	if page.Total != 1 || len(page.Items) != 1 {
		t.Fatalf("unexpected page: total=%d items=%d", page.Total, len(page.Items))
	}
	item := page.Items[0]
	if item.Document().ID() != "doc-1" || item.Score() != 305.5 || !item.IsCategoryMatch() {
		t.Errorf("round-trip mismatch: %s %v %v", item.Document().ID(), item.Score(), item.IsCategoryMatch())
	}
	if item.Document().CategoryName() != "Toán học" {
		t.Errorf("category name lost: %q", item.Document().CategoryName())
	}
}

func TestCache_KeyVariesByParams(t *testing.T) {
	c := New(&mockStore{}, time.Minute, zap.NewNop())

	a := testRequest(t, "giải tích", 1)
	b := testRequest(t, "giải tích", 2)
	d := testRequest(t, "đại số", 1)

	if c.key(&a) == c.key(&b) {
		t.Error("page must change the cache key")
	}
	if c.key(&a) == c.key(&d) {
		t.Error("query must change the cache key")
	}
	if c.key(&a) != c.key(&a) {
		t.Error("identical requests must share a key")
	}
}

func TestCache_Disabled(t *testing.T) {
	called := false
	ms := &mockStore{
		getFn: func(_ context.Context, _ string) ([]byte, error) {
			called = true
			return nil, db.ErrKeyNotFound
		},
	}
	c := New(ms, 0, zap.NewNop())
	req := testRequest(t, "toán", 1)

	if _, ok := c.Get(context.Background(), &req); ok {
		t.Fatal("disabled cache must always miss")
	}
	c.Set(context.Background(), &req, testPage(t))
	if called {
		t.Fatal("disabled cache must not touch the store")
	}
}

func TestCache_CorruptEntryIsMiss(t *testing.T) {
	ms := &mockStore{
		getFn: func(_ context.Context, _ string) ([]byte, error) {
			return []byte("{not json"), nil
		},
	}
	c := New(ms, time.Minute, zap.NewNop())
	req := testRequest(t, "toán", 1)

	if _, ok := c.Get(context.Background(), &req); ok {
		t.Fatal("corrupt entry must be treated as a miss")
	}
}
