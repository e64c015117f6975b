package docsearch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/edura-cloud/docsearch/internal/domain"
	"github.com/edura-cloud/docsearch/internal/domain/search/request"
	"github.com/edura-cloud/docsearch/internal/domain/search/result"
	healthuc "github.com/edura-cloud/docsearch/internal/usecase/health"
)

func TestNew_RequiresAddress(t *testing.T) {
	_, err := New(context.Background())
	if err == nil {
		t.Fatal("expected error without database address")
	}
}

func TestOptions_Apply(t *testing.T) {
	cfg := &clientConfig{}
	for _, o := range []Option{
		WithRedis("localhost:6379", "secret"),
		WithResultCache(5 * time.Minute),
		WithMaxCandidates(200),
	} {
		o.apply(cfg)
	}

	if len(cfg.addrs) != 1 || cfg.addrs[0] != "localhost:6379" {
		t.Errorf("addrs: got %v", cfg.addrs)
	}
	if cfg.password != "secret" {
		t.Errorf("password: got %q", cfg.password)
	}
	if cfg.resultCacheTTL != 5*time.Minute {
		t.Errorf("cache ttl: got %v", cfg.resultCacheTTL)
	}
	if cfg.maxCandidates != 200 {
		t.Errorf("max candidates: got %d", cfg.maxCandidates)
	}
}

func TestClient_Search(t *testing.T) {
	c := newTestClient()
	c.searchSvc = &mockSearch{searchFunc: func(_ context.Context, req *request.Request) (result.Page, error) {
		if req.Query() != "giải tích" {
			t.Errorf("query: got %q", req.Query())
		}
		if req.Filters().CategoryID != "cat-math" {
			t.Errorf("category: got %q", req.Filters().CategoryID)
		}
		return result.Page{Total: 0, Page: 1, PageSize: 12}, nil
	}}

	page, err := c.Search(context.Background(), SearchParams{
		Query:      "giải tích",
		CategoryID: "cat-math",
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if page.Page != 1 || page.PageSize != 12 {
		t.Errorf("unexpected page: %+v", page)
	}
}

func TestClient_Search_InvalidWindow(t *testing.T) {
	c := newTestClient()
	c.searchSvc = &mockSearch{searchFunc: func(_ context.Context, _ *request.Request) (result.Page, error) {
		t.Fatal("search must not run with invalid params")
		return result.Page{}, nil
	}}

	_, err := c.Search(context.Background(), SearchParams{UploadedWithin: "lastweek"})
	if err == nil {
		t.Fatal("expected validation error")
	}
}

func TestClient_Health(t *testing.T) {
	c := newTestClient()
	c.healthSvc = &mockHealth{report: healthuc.Report{
		Status: healthuc.Degraded,
		Checks: map[string]healthuc.CheckResult{"storage": healthuc.CheckOK},
	}}

	h := c.Health(context.Background())
	if h.Status != "degraded" {
		t.Errorf("status: got %q", h.Status)
	}
	if h.Checks["storage"] != "ok" {
		t.Errorf("checks: got %v", h.Checks)
	}
}

func TestErrors_AreDomainSentinels(t *testing.T) {
	if !errors.Is(ErrDocumentNotFound, domain.ErrDocumentNotFound) {
		t.Error("ErrDocumentNotFound must match the domain sentinel")
	}
	if !errors.Is(ErrCategoryNotFound, domain.ErrCategoryNotFound) {
		t.Error("ErrCategoryNotFound must match the domain sentinel")
	}
}

func TestObserver_MetricsRegisterTwice(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := newObserver(nil, reg); err != nil {
		t.Fatalf("first observer: %v", err)
	}
	// Second registration on the same registry must reuse the collectors.
	if _, err := newObserver(nil, reg); err != nil {
		t.Fatalf("second observer: %v", err)
	}
}
