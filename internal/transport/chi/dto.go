package chi

import (
	"fmt"
	"time"

	domdoc "github.com/edura-cloud/docsearch/internal/domain/document"
	"github.com/edura-cloud/docsearch/internal/domain/search/result"
)

// errorCode identifies a machine-readable error class in API responses.
type errorCode string

const (
	codeBadRequest             errorCode = "bad_request"
	codeValidationFailed       errorCode = "validation_failed"
	codeDocumentNotFound       errorCode = "document_not_found"
	codeCategoryNotFound       errorCode = "category_not_found"
	codeEmbeddingProvider      errorCode = "embedding_provider_error"
	codeCorpusStatsUnavailable errorCode = "corpus_stats_unavailable"
	codeInternalError          errorCode = "internal_error"
)

type errorResponse struct {
	Code    errorCode `json:"code"`
	Message string    `json:"message"`
}

// documentPayload is the upsert request body. The document ID comes from the
// URL path. CreatedAt defaults to the request time when omitted.
type documentPayload struct {
	Title      string    `json:"title"`
	Keywords   []string  `json:"keywords,omitempty"`
	CategoryID string    `json:"category_id,omitempty"`
	SchoolID   string    `json:"school_id,omitempty"`
	Summary    string    `json:"summary,omitempty"`
	FileType   string    `json:"file_type,omitempty"`
	Views      int       `json:"views,omitempty"`
	Downloads  int       `json:"downloads,omitempty"`
	GradeScore float64   `json:"grade_score,omitempty"`
	CreatedAt  time.Time `json:"created_at,omitempty"`
}

// batchItem is one document in a bulk upsert, carrying its own ID.
type batchItem struct {
	ID string `json:"id"`
	documentPayload
}

type documentResponse struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Keywords   []string  `json:"keywords,omitempty"`
	CategoryID string    `json:"category_id,omitempty"`
	Category   string    `json:"category,omitempty"`
	SchoolID   string    `json:"school_id,omitempty"`
	Summary    string    `json:"summary,omitempty"`
	FileType   string    `json:"file_type,omitempty"`
	Views      int       `json:"views"`
	Downloads  int       `json:"downloads"`
	GradeScore float64   `json:"grade_score"`
	CreatedAt  time.Time `json:"created_at"`
	HasVector  bool      `json:"has_vector"`
}

type searchResultItem struct {
	documentResponse
	Score           float64 `json:"score"`
	IsCategoryMatch bool    `json:"is_category_match"`
}

type searchResponse struct {
	Items      []searchResultItem `json:"items"`
	Total      int                `json:"total"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	TotalPages int                `json:"total_pages"`
}

type counterResponse struct {
	Count int64 `json:"count"`
}

type categoryPayload struct {
	Name string `json:"name"`
}

type categoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type batchResponse struct {
	Indexed int `json:"indexed"`
}

func documentFromPayload(id string, p documentPayload) (domdoc.Document, error) {
	createdAt := p.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	doc, err := domdoc.New(
		id, p.Title, p.Keywords,
		p.CategoryID, p.SchoolID, p.Summary, p.FileType,
		p.Views, p.Downloads, p.GradeScore,
		createdAt,
	)
	if err != nil {
		return domdoc.Document{}, fmt.Errorf("build document: %w", err)
	}
	return doc, nil
}

func documentToResponse(doc *domdoc.Document) documentResponse {
	return documentResponse{
		ID:         doc.ID(),
		Title:      doc.Title(),
		Keywords:   doc.Keywords(),
		CategoryID: doc.CategoryID(),
		Category:   doc.CategoryName(),
		SchoolID:   doc.SchoolID(),
		Summary:    doc.Summary(),
		FileType:   doc.FileType(),
		Views:      doc.Views(),
		Downloads:  doc.Downloads(),
		GradeScore: doc.GradeScore(),
		CreatedAt:  doc.CreatedAt(),
		HasVector:  len(doc.Vector()) > 0,
	}
}

func pageToResponse(page result.Page) searchResponse {
	items := make([]searchResultItem, len(page.Items))
	for i := range page.Items {
		items[i] = searchResultItem{
			documentResponse: documentToResponse(page.Items[i].Document()),
			Score:            page.Items[i].Score(),
			IsCategoryMatch:  page.Items[i].IsCategoryMatch(),
		}
	}
	return searchResponse{
		Items:      items,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages(),
	}
}
