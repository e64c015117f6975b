// Record types for the document dump files.
// The same struct carries both json tags (NDJSON lines) and parquet tags
// (column names in parquet exports).
package main

import (
	"time"

	"github.com/google/uuid"

	docsearch "github.com/edura-cloud/docsearch/pkg/sdk"
)

// documentRecord is a raw row from an NDJSON or parquet dump.
type documentRecord struct {
	ID         string   `json:"id" parquet:"id,optional"`
	Title      string   `json:"title" parquet:"title"`
	Keywords   []string `json:"keywords" parquet:"keywords,list"`
	CategoryID string   `json:"category_id" parquet:"category_id,optional"`
	SchoolID   string   `json:"school_id" parquet:"school_id,optional"`
	Summary    string   `json:"summary" parquet:"summary,optional"`
	FileType   string   `json:"file_type" parquet:"file_type,optional"`
	Views      int64    `json:"views" parquet:"views,optional"`
	Downloads  int64    `json:"downloads" parquet:"downloads,optional"`
	GradeScore float64  `json:"grade_score" parquet:"grade_score,optional"`
	CreatedAt  string   `json:"created_at" parquet:"created_at,optional"`
}

// categoryRecord is a raw row from a categories dump.
type categoryRecord struct {
	ID   string `json:"id" parquet:"id"`
	Name string `json:"name" parquet:"name"`
}

// toDocument converts a raw record into an SDK document.
// Records without a title are rejected. Records without an ID get a
// generated one, so re-running the loader on such a dump duplicates them.
func toDocument(rec *documentRecord) (docsearch.Document, bool) {
	if rec.Title == "" {
		return docsearch.Document{}, false
	}

	id := rec.ID
	if id == "" {
		id = uuid.NewString()
	}

	var createdAt time.Time
	if rec.CreatedAt != "" {
		if t, err := time.Parse(time.RFC3339, rec.CreatedAt); err == nil {
			createdAt = t.UTC()
		}
	}

	return docsearch.Document{
		ID:         id,
		Title:      rec.Title,
		Keywords:   rec.Keywords,
		CategoryID: rec.CategoryID,
		SchoolID:   rec.SchoolID,
		Summary:    rec.Summary,
		FileType:   rec.FileType,
		Views:      int(rec.Views),
		Downloads:  int(rec.Downloads),
		GradeScore: rec.GradeScore,
		CreatedAt:  createdAt,
	}, true
}
