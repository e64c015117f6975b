// Package result holds the value types a search produces: a scored document
// and a page of scored documents.
package result

import "github.com/edura-cloud/docsearch/internal/domain/document"

// ScoredDocument pairs a document with the relevance it earned for one
// query. The category flag is captured at scoring time so the ranker does
// not re-derive it from the score.
type ScoredDocument struct {
	doc             document.Document
	score           float64
	isCategoryMatch bool
}

// NewScoredDocument creates a scored document.
func NewScoredDocument(doc document.Document, score float64, isCategoryMatch bool) ScoredDocument {
	return ScoredDocument{doc: doc, score: score, isCategoryMatch: isCategoryMatch}
}

// Document returns the underlying document.
func (s *ScoredDocument) Document() *document.Document { return &s.doc }

// Score returns the combined relevance plus popularity score.
func (s *ScoredDocument) Score() float64 { return s.score }

// IsCategoryMatch reports whether the score came from the category tier.
func (s *ScoredDocument) IsCategoryMatch() bool { return s.isCategoryMatch }

// Page is one page of ranked results with pagination metadata.
type Page struct {
	Items    []ScoredDocument
	Total    int
	Page     int
	PageSize int
}

// TotalPages returns the page count for the full result set.
func (p *Page) TotalPages() int {
	if p.PageSize <= 0 || p.Total <= 0 {
		return 0
	}
	return (p.Total + p.PageSize - 1) / p.PageSize
}
