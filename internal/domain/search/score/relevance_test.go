package score

import (
	"testing"
	"time"

	"github.com/edura-cloud/docsearch/internal/domain/document"
	"github.com/edura-cloud/docsearch/internal/domain/search/text"
)

func makeDoc(t *testing.T, id, title string, keywords []string, category, summary string) document.Document {
	t.Helper()
	doc := document.Reconstruct(
		id, title, keywords,
		"cat-1", "school-1", summary, "pdf",
		0, 0, 0,
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), nil,
	)
	doc.SetCategoryName(category)
	return doc
}

func TestRelevance_TierPriority(t *testing.T) {
	memo := text.NewMemo(0)
	q := NewQuery("toán", memo)

	tests := []struct {
		name string
		doc  document.Document
		want float64
	}{
		{
			"category prefix wins",
			makeDoc(t, "d1", "Bài tập", nil, "Toán học", ""),
			CategoryPrefixScore,
		},
		{
			"category word match",
			makeDoc(t, "d2", "Bài tập", nil, "Kế toán", ""),
			CategoryWordScore,
		},
		{
			"title prefix",
			makeDoc(t, "d3", "Toán cao cấp", nil, "Giáo trình", ""),
			TitlePrefixScore,
		},
		{
			"title word match",
			makeDoc(t, "d4", "Đề thi Toán", nil, "Đề thi", ""),
			TitleWordScore,
		},
		{
			"keyword prefix",
			makeDoc(t, "d5", "Đề cương", []string{"toán rời rạc"}, "Đề thi", ""),
			KeywordPrefixScore,
		},
		{
			"keyword word match",
			makeDoc(t, "d6", "Đề cương", []string{"ôn thi toán"}, "Đề thi", ""),
			KeywordWordScore,
		},
		{
			"summary-only match scores zero",
			makeDoc(t, "d7", "Đề cương", nil, "Đề thi", "tổng hợp toán cao cấp"),
			0,
		},
		{
			"no match anywhere",
			makeDoc(t, "d8", "Lịch sử Đảng", []string{"lịch sử"}, "Chính trị", ""),
			0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Relevance(q, &tt.doc, memo); got != tt.want {
				t.Errorf("Relevance() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRelevance_CategoryShortCircuits(t *testing.T) {
	memo := text.NewMemo(0)
	q := NewQuery("toán", memo)

	// Matches on every field; only the category tier contributes.
	doc := makeDoc(t, "d1", "Toán học đại cương", []string{"toán"}, "Toán học", "toán")
	if got := Relevance(q, &doc, memo); got != CategoryPrefixScore {
		t.Errorf("Relevance() = %v, want %v (tiers must not accumulate)", got, CategoryPrefixScore)
	}
}

func TestRelevance_QueryGuards(t *testing.T) {
	memo := text.NewMemo(0)
	doc := makeDoc(t, "d1", "La bàn và AI", []string{"ai"}, "Kỹ thuật", "")

	tests := []struct {
		name  string
		query string
		want  float64
	}{
		{"empty query", "", 0},
		{"whitespace only", "   ", 0},
		{"single character", "t", 0},
		{"punctuation only", "!?", 0},
		{"two-char stop word rejected", "là", 0},
		{"two-char non-stop-word matches", "ai", TitleWordScore},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := NewQuery(tt.query, memo)
			if got := Relevance(q, &doc, memo); got != tt.want {
				t.Errorf("Relevance(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestRelevance_DiacriticInsensitive(t *testing.T) {
	memo := text.NewMemo(0)
	doc := makeDoc(t, "d1", "Kỹ Thuật Phần Mềm", nil, "Công nghệ thông tin", "")

	for _, query := range []string{"kỹ thuật", "ky thuat", "KY THUAT", "kythuat"} {
		q := NewQuery(query, memo)
		if got := Relevance(q, &doc, memo); got != TitlePrefixScore {
			t.Errorf("Relevance(%q) = %v, want %v", query, got, TitlePrefixScore)
		}
	}
}

func TestRelevance_RankingScenario(t *testing.T) {
	memo := text.NewMemo(0)
	q := NewQuery("toán", memo)

	categoryHit := makeDoc(t, "a", "Bài giảng", nil, "Toán học", "")
	titleHit := makeDoc(t, "b", "Toán rời rạc", nil, "Giáo trình", "")
	keywordHit := makeDoc(t, "c", "Đề cương cuối kỳ", []string{"toán cao cấp"}, "Đề thi", "")

	sa := Relevance(q, &categoryHit, memo)
	sb := Relevance(q, &titleHit, memo)
	sc := Relevance(q, &keywordHit, memo)

	if !(sa > sb && sb > sc && sc > 0) {
		t.Errorf("expected category > title > keyword > 0, got %v, %v, %v", sa, sb, sc)
	}
	if !IsCategoryMatch(sa) {
		t.Errorf("category-tier score %v should report IsCategoryMatch", sa)
	}
	if IsCategoryMatch(sb) || IsCategoryMatch(sc) {
		t.Errorf("non-category scores %v, %v must not report IsCategoryMatch", sb, sc)
	}
}

func TestQuery_Accessors(t *testing.T) {
	memo := text.NewMemo(0)
	q := NewQuery("  Đại Học Bách Khoa  ", memo)

	if q.Raw() != "Đại Học Bách Khoa" {
		t.Errorf("Raw() = %q", q.Raw())
	}
	if q.Compact() != "daihocbachkhoa" {
		t.Errorf("Compact() = %q", q.Compact())
	}
	if got := q.Tokens(); len(got) != 4 || got[0] != "dai" || got[3] != "khoa" {
		t.Errorf("Tokens() = %v", got)
	}
	if q.IsEmpty() {
		t.Error("IsEmpty() = true for non-empty query")
	}

	empty := NewQuery(" .,! ", memo)
	if !empty.IsEmpty() {
		t.Error("IsEmpty() = false for punctuation-only query")
	}
}
