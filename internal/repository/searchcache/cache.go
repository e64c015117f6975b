// Package searchcache caches serialized result pages keyed by a hash of the
// full request parameters.
package searchcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/edura-cloud/docsearch/internal/db"
	"github.com/edura-cloud/docsearch/internal/domain"
	"github.com/edura-cloud/docsearch/internal/domain/search/request"
	"github.com/edura-cloud/docsearch/internal/domain/search/result"
)

var cacheKeyPrefix = domain.KeyPrefix + "search_cache:"

// store is the consumer interface for the result cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Cache stores ranked result pages with a TTL. Misses and storage failures
// are soft: the caller recomputes the page.
type Cache struct {
	store  store
	ttl    time.Duration
	logger *zap.Logger
}

// New creates a result cache. A non-positive TTL disables it.
func New(s store, ttl time.Duration, logger *zap.Logger) *Cache {
	return &Cache{store: s, ttl: ttl, logger: logger}
}

// Enabled reports whether caching is active.
func (c *Cache) Enabled() bool { return c.ttl > 0 }

// Get returns a cached page for the request, or ok=false on any miss.
func (c *Cache) Get(ctx context.Context, req *request.Request) (result.Page, bool) {
	if !c.Enabled() {
		return result.Page{}, false
	}

	data, err := c.store.Get(ctx, c.key(req))
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to read search cache", zap.Error(err))
		}
		return result.Page{}, false
	}

	var dto pageDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		c.logger.Warn("Failed to decode cached search page", zap.Error(err))
		return result.Page{}, false
	}
	return dto.toPage(), true
}

// Set stores a page for the request.
func (c *Cache) Set(ctx context.Context, req *request.Request, page result.Page) {
	if !c.Enabled() {
		return
	}

	data, err := json.Marshal(newPageDTO(page))
	if err != nil {
		c.logger.Warn("Failed to encode search page for cache", zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, c.key(req), data, c.ttl); err != nil {
		c.logger.Warn("Failed to write search cache", zap.Error(err))
	}
}

// key hashes the canonical request parameters so distinct requests never
// collide and identical requests always share an entry.
func (c *Cache) key(req *request.Request) string {
	f := req.Filters()
	canonical := fmt.Sprintf(
		"q=%s|p=%d|s=%d|cat=%s|school=%s|ft=%s|win=%s",
		req.Query(), req.Page(), req.PageSize(),
		f.CategoryID, f.SchoolID, f.FileType, f.UploadedWithin,
	)
	h := sha256.Sum256([]byte(canonical))
	return cacheKeyPrefix + hex.EncodeToString(h[:])
}
