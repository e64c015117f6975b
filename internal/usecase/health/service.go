package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates an optional component is down; search still works.
	Degraded Status = "degraded"
	// Unhealthy indicates storage is unreachable.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks. Storage is the only critical
// dependency; the embedding provider and the BM25 corpus snapshot only
// degrade ranking quality when missing.
type Service struct {
	store     StorePinger
	embedding EmbeddingChecker
	stats     StatsProvider
}

// New creates a Service. embedding and stats can be nil.
func New(store StorePinger, embedding EmbeddingChecker, stats StatsProvider) *Service {
	return &Service{store: store, embedding: embedding, stats: stats}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)
	status := Healthy

	if err := s.store.Ping(ctx); err != nil {
		checks["storage"] = CheckError
		status = Unhealthy
	} else {
		checks["storage"] = CheckOK
	}

	if s.embedding != nil {
		if err := s.embedding.HealthCheck(ctx); err != nil {
			checks["embedding"] = CheckError
			if status == Healthy {
				status = Degraded
			}
		} else {
			checks["embedding"] = CheckOK
		}
	}

	if s.stats != nil {
		if _, err := s.stats.Current(); err != nil {
			checks["corpus_stats"] = CheckError
			if status == Healthy {
				status = Degraded
			}
		} else {
			checks["corpus_stats"] = CheckOK
		}
	}

	return Report{Status: status, Checks: checks}
}
