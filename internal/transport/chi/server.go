// Package chi exposes the search engine over HTTP using the chi router.
package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/edura-cloud/docsearch/internal/domain"
	domdoc "github.com/edura-cloud/docsearch/internal/domain/document"
	"github.com/edura-cloud/docsearch/internal/domain/search/request"
	healthuc "github.com/edura-cloud/docsearch/internal/usecase/health"
)

const maxBatchSize = 500

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server holds the HTTP handlers for the search API.
type Server struct {
	search        Searcher
	documents     DocumentService
	categories    CategoryStore
	corpus        CorpusRefresher
	health        HealthChecker
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server. corpus may be nil when BM25 is
// disabled; the refresh endpoint then returns 404.
func NewServer(
	search Searcher,
	documents DocumentService,
	categories CategoryStore,
	corpus CorpusRefresher,
	health HealthChecker,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search:     search,
		documents:  documents,
		categories: categories,
		corpus:     corpus,
		health:     health,
		logger:     logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrDocumentNotFound, http.StatusNotFound, codeDocumentNotFound),
		sentinelHandler(domain.ErrCategoryNotFound, http.StatusNotFound, codeCategoryNotFound),
		sentinelHandler(domain.ErrInvalidRequest, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway, codeEmbeddingProvider),
		sentinelHandler(domain.ErrCorpusStatsUnavailable, http.StatusServiceUnavailable, codeCorpusStatsUnavailable),
	}
	return s
}

// Routes registers all API routes on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/api", func(r chi.Router) {
		r.Get("/search/documents", s.SearchDocuments)

		r.Route("/documents", func(r chi.Router) {
			r.Post("/batch", s.BatchUpsert)
			r.Route("/{id}", func(r chi.Router) {
				r.Put("/", s.UpsertDocument)
				r.Get("/", s.GetDocument)
				r.Delete("/", s.DeleteDocument)
				r.Post("/view", s.TrackView)
				r.Post("/download", s.TrackDownload)
			})
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", s.ListCategories)
			r.Put("/{id}", s.UpsertCategory)
			r.Delete("/{id}", s.DeleteCategory)
		})

		if s.corpus != nil {
			r.Post("/admin/corpus/refresh", s.RefreshCorpus)
		}
	})
}

// SearchDocuments handles GET /api/search/documents.
func (s *Server) SearchDocuments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, err := queryInt(q.Get("page"))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "page must be an integer")
		return
	}
	pageSize, err := queryInt(q.Get("page_size"))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "page_size must be an integer")
		return
	}

	req, err := request.New(q.Get("q"), page, pageSize, request.Filters{
		CategoryID:     q.Get("category_id"),
		SchoolID:       q.Get("school_id"),
		FileType:       q.Get("file_type"),
		UploadedWithin: request.UploadedWithin(q.Get("uploaded_within")),
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	result, err := s.search.Search(r.Context(), &req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, pageToResponse(result))
}

// UpsertDocument handles PUT /api/documents/{id}.
func (s *Server) UpsertDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var payload documentPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	doc, err := documentFromPayload(id, payload)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	created, err := s.documents.Upsert(r.Context(), doc)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
		w.Header().Set("Location", "/api/documents/"+id)
	}
	writeJSON(w, status, documentToResponse(&doc))
}

// GetDocument handles GET /api/documents/{id}.
func (s *Server) GetDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := s.documents.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, documentToResponse(&doc))
}

// DeleteDocument handles DELETE /api/documents/{id}.
func (s *Server) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	if err := s.documents.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// BatchUpsert handles POST /api/documents/batch.
func (s *Server) BatchUpsert(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Documents []batchItem `json:"documents"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if len(payload.Documents) == 0 || len(payload.Documents) > maxBatchSize {
		writeError(w, http.StatusBadRequest, codeValidationFailed,
			fmt.Sprintf("documents count must be between 1 and %d", maxBatchSize))
		return
	}

	docs := make([]domdoc.Document, 0, len(payload.Documents))
	for _, item := range payload.Documents {
		doc, err := documentFromPayload(item.ID, item.documentPayload)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
			return
		}
		docs = append(docs, doc)
	}

	if err := s.documents.UpsertMulti(r.Context(), docs); err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, batchResponse{Indexed: len(docs)})
}

// TrackView handles POST /api/documents/{id}/view.
func (s *Server) TrackView(w http.ResponseWriter, r *http.Request) {
	count, err := s.documents.TrackView(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, counterResponse{Count: count})
}

// TrackDownload handles POST /api/documents/{id}/download.
func (s *Server) TrackDownload(w http.ResponseWriter, r *http.Request) {
	count, err := s.documents.TrackDownload(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, counterResponse{Count: count})
}

// ListCategories handles GET /api/categories.
func (s *Server) ListCategories(w http.ResponseWriter, r *http.Request) {
	catalog, err := s.categories.ResolveAll(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]categoryResponse, 0, len(catalog))
	for id, name := range catalog {
		items = append(items, categoryResponse{ID: id, Name: name})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })

	writeJSON(w, http.StatusOK, map[string][]categoryResponse{"items": items})
}

// UpsertCategory handles PUT /api/categories/{id}.
func (s *Server) UpsertCategory(w http.ResponseWriter, r *http.Request) {
	var payload categoryPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	id := chi.URLParam(r, "id")
	if err := s.categories.Upsert(r.Context(), id, payload.Name); err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, categoryResponse{ID: id, Name: payload.Name})
}

// DeleteCategory handles DELETE /api/categories/{id}.
func (s *Server) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := s.categories.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RefreshCorpus handles POST /api/admin/corpus/refresh.
func (s *Server) RefreshCorpus(w http.ResponseWriter, r *http.Request) {
	if err := s.corpus.Refresh(r.Context()); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func queryInt(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code errorCode, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrDocumentNotFound,
		domain.ErrCategoryNotFound,
		domain.ErrInvalidRequest,
		domain.ErrEmbeddingProviderError,
		domain.ErrCorpusStatsUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code errorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
