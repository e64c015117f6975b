package searchcache

import (
	"time"

	domdoc "github.com/edura-cloud/docsearch/internal/domain/document"
	"github.com/edura-cloud/docsearch/internal/domain/search/result"
)

// pageDTO is the cache wire form of a result page. Vectors are dropped:
// cached pages feed responses, never re-scoring.
type pageDTO struct {
	Items    []scoredDocDTO `json:"items"`
	Total    int            `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

type scoredDocDTO struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Keywords        []string  `json:"keywords,omitempty"`
	CategoryID      string    `json:"category_id"`
	CategoryName    string    `json:"category_name,omitempty"`
	SchoolID        string    `json:"school_id,omitempty"`
	Summary         string    `json:"summary,omitempty"`
	FileType        string    `json:"file_type,omitempty"`
	Views           int       `json:"views"`
	Downloads       int       `json:"downloads"`
	GradeScore      float64   `json:"grade_score"`
	CreatedAt       time.Time `json:"created_at"`
	Score           float64   `json:"score"`
	IsCategoryMatch bool      `json:"is_category_match"`
}

func newPageDTO(page result.Page) pageDTO {
	items := make([]scoredDocDTO, len(page.Items))
	for i := range page.Items {
		doc := page.Items[i].Document()
		items[i] = scoredDocDTO{
			ID:              doc.ID(),
			Title:           doc.Title(),
			Keywords:        doc.Keywords(),
			CategoryID:      doc.CategoryID(),
			CategoryName:    doc.CategoryName(),
			SchoolID:        doc.SchoolID(),
			Summary:         doc.Summary(),
			FileType:        doc.FileType(),
			Views:           doc.Views(),
			Downloads:       doc.Downloads(),
			GradeScore:      doc.GradeScore(),
			CreatedAt:       doc.CreatedAt(),
			Score:           page.Items[i].Score(),
			IsCategoryMatch: page.Items[i].IsCategoryMatch(),
		}
	}
	return pageDTO{Items: items, Total: page.Total, Page: page.Page, PageSize: page.PageSize}
}

func (p pageDTO) toPage() result.Page {
	items := make([]result.ScoredDocument, len(p.Items))
	for i, d := range p.Items {
		doc := domdoc.Reconstruct(
			d.ID, d.Title, d.Keywords,
			d.CategoryID, d.SchoolID, d.Summary, d.FileType,
			d.Views, d.Downloads, d.GradeScore,
			d.CreatedAt, nil,
		)
		doc.SetCategoryName(d.CategoryName)
		items[i] = result.NewScoredDocument(doc, d.Score, d.IsCategoryMatch)
	}
	return result.Page{Items: items, Total: p.Total, Page: p.Page, PageSize: p.PageSize}
}
