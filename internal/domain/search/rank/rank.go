// Package rank orders scored documents and slices them into pages.
package rank

import (
	"sort"

	"github.com/edura-cloud/docsearch/internal/domain/search/result"
)

// Pagination bounds. Requests outside them are clamped, not rejected.
const (
	DefaultPageSize = 12
	MaxPageSize     = 100
)

// Sort orders results in place: category-tier matches first, then score
// descending, then newest first, then ID descending so equal documents
// always land in the same order.
func Sort(items []result.ScoredDocument) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := &items[i], &items[j]
		if a.IsCategoryMatch() != b.IsCategoryMatch() {
			return a.IsCategoryMatch()
		}
		if a.Score() != b.Score() {
			return a.Score() > b.Score()
		}
		at, bt := a.Document().CreatedAt(), b.Document().CreatedAt()
		if !at.Equal(bt) {
			return at.After(bt)
		}
		return a.Document().ID() > b.Document().ID()
	})
}

// SortByRecency orders results newest first, with the ID tiebreak. Used for
// empty-query browsing where no relevance exists.
func SortByRecency(items []result.ScoredDocument) {
	sort.SliceStable(items, func(i, j int) bool {
		at, bt := items[i].Document().CreatedAt(), items[j].Document().CreatedAt()
		if !at.Equal(bt) {
			return at.After(bt)
		}
		return items[i].Document().ID() > items[j].Document().ID()
	})
}

// ClampPageSize normalizes a requested page size into the allowed range.
func ClampPageSize(size int) int {
	switch {
	case size <= 0:
		return DefaultPageSize
	case size > MaxPageSize:
		return MaxPageSize
	default:
		return size
	}
}

// Paginate slices a ranked result set into the requested page. Pages are
// 1-based; a page past the end yields an empty item list with the total
// preserved so clients can still render pagination controls.
func Paginate(items []result.ScoredDocument, page, pageSize int) result.Page {
	if page < 1 {
		page = 1
	}
	pageSize = ClampPageSize(pageSize)

	total := len(items)
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	return result.Page{
		Items:    items[start:end],
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
}
