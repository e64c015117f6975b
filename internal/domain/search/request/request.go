// Package request defines the validated search request and its structural
// filters.
package request

import (
	"fmt"
	"time"

	"github.com/edura-cloud/docsearch/internal/domain/search/rank"
)

// UploadedWithin restricts results to a recent upload window.
type UploadedWithin string

// Supported upload windows. Empty means no time restriction.
const (
	WindowNone       UploadedWithin = ""
	WindowToday      UploadedWithin = "today"
	WindowYesterday  UploadedWithin = "yesterday"
	WindowLast7Days  UploadedWithin = "last7days"
	WindowLast30Days UploadedWithin = "last30days"
)

func (w UploadedWithin) valid() bool {
	switch w {
	case WindowNone, WindowToday, WindowYesterday, WindowLast7Days, WindowLast30Days:
		return true
	}
	return false
}

// Bounds returns the [from, to) time range of the window relative to now.
// The zero window returns zero times, meaning unrestricted.
func (w UploadedWithin) Bounds(now time.Time) (from, to time.Time) {
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch w {
	case WindowToday:
		return startOfDay, startOfDay.AddDate(0, 0, 1)
	case WindowYesterday:
		return startOfDay.AddDate(0, 0, -1), startOfDay
	case WindowLast7Days:
		return startOfDay.AddDate(0, 0, -7), startOfDay.AddDate(0, 0, 1)
	case WindowLast30Days:
		return startOfDay.AddDate(0, 0, -30), startOfDay.AddDate(0, 0, 1)
	}
	return time.Time{}, time.Time{}
}

// Filters narrow the candidate set before any scoring happens.
type Filters struct {
	CategoryID     string
	SchoolID       string
	FileType       string
	UploadedWithin UploadedWithin
}

// Request is a validated search request.
type Request struct {
	query    string
	page     int
	pageSize int
	filters  Filters
}

// New validates and creates a search request. Page defaults to 1, page size
// is clamped into the allowed range, and an unknown upload window is an
// error rather than silently ignored.
func New(query string, page, pageSize int, filters Filters) (Request, error) {
	if page < 0 {
		return Request{}, fmt.Errorf("page must not be negative, got %d", page)
	}
	if page == 0 {
		page = 1
	}
	if !filters.UploadedWithin.valid() {
		return Request{}, fmt.Errorf("unknown upload window %q", filters.UploadedWithin)
	}
	return Request{
		query:    query,
		page:     page,
		pageSize: rank.ClampPageSize(pageSize),
		filters:  filters,
	}, nil
}

// Query returns the raw query string.
func (r *Request) Query() string { return r.query }

// Page returns the 1-based page number.
func (r *Request) Page() int { return r.page }

// PageSize returns the clamped page size.
func (r *Request) PageSize() int { return r.pageSize }

// Filters returns the structural filters.
func (r *Request) Filters() Filters { return r.filters }
