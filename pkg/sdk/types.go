package docsearch

import (
	"fmt"
	"time"

	domdoc "github.com/edura-cloud/docsearch/internal/domain/document"
	"github.com/edura-cloud/docsearch/internal/domain/search/request"
	"github.com/edura-cloud/docsearch/internal/domain/search/result"
)

// Document is a searchable document record.
type Document struct {
	ID         string
	Title      string
	Keywords   []string
	CategoryID string
	Category   string // display name, read-only
	SchoolID   string
	Summary    string
	FileType   string
	Views      int
	Downloads  int
	GradeScore float64
	CreatedAt  time.Time
}

// SearchParams selects and paginates a ranked search.
// A zero Page or PageSize picks the defaults (page 1, 12 items).
type SearchParams struct {
	Query          string
	Page           int
	PageSize       int
	CategoryID     string
	SchoolID       string
	FileType       string
	UploadedWithin string // "", "today", "yesterday", "last7days", "last30days"
}

// SearchResult is one ranked document.
type SearchResult struct {
	Document        Document
	Score           float64
	IsCategoryMatch bool
}

// SearchPage is one page of ranked results.
type SearchPage struct {
	Items      []SearchResult
	Total      int
	Page       int
	PageSize   int
	TotalPages int
}

func toInternalDocument(d Document) (domdoc.Document, error) {
	createdAt := d.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	doc, err := domdoc.New(
		d.ID, d.Title, d.Keywords,
		d.CategoryID, d.SchoolID, d.Summary, d.FileType,
		d.Views, d.Downloads, d.GradeScore,
		createdAt,
	)
	if err != nil {
		return domdoc.Document{}, fmt.Errorf("validate document: %w", err)
	}
	return doc, nil
}

func fromInternalDocument(d domdoc.Document) Document {
	return Document{
		ID:         d.ID(),
		Title:      d.Title(),
		Keywords:   d.Keywords(),
		CategoryID: d.CategoryID(),
		Category:   d.CategoryName(),
		SchoolID:   d.SchoolID(),
		Summary:    d.Summary(),
		FileType:   d.FileType(),
		Views:      d.Views(),
		Downloads:  d.Downloads(),
		GradeScore: d.GradeScore(),
		CreatedAt:  d.CreatedAt(),
	}
}

func toInternalRequest(p SearchParams) (request.Request, error) {
	req, err := request.New(p.Query, p.Page, p.PageSize, request.Filters{
		CategoryID:     p.CategoryID,
		SchoolID:       p.SchoolID,
		FileType:       p.FileType,
		UploadedWithin: request.UploadedWithin(p.UploadedWithin),
	})
	if err != nil {
		return request.Request{}, fmt.Errorf("validate search params: %w", err)
	}
	return req, nil
}

func fromInternalPage(page result.Page) SearchPage {
	items := make([]SearchResult, len(page.Items))
	for i := range page.Items {
		items[i] = SearchResult{
			Document:        fromInternalDocument(*page.Items[i].Document()),
			Score:           page.Items[i].Score(),
			IsCategoryMatch: page.Items[i].IsCategoryMatch(),
		}
	}
	return SearchPage{
		Items:      items,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages(),
	}
}
