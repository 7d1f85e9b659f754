package http

import (
	"fmt"
	"net/http"
	"time"
)

// handleMetrics provides application and security metrics in plain text format
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	securityMetrics := s.detector.GetMetrics()
	rateLimitMetrics := s.rateLimiter.GetMetrics()
	traceMetrics := s.tracer.GetMetrics()
	chartCache := s.CacheStats()
	uptime := time.Since(s.generatedAt)

	w.WriteHeader(http.StatusOK)

	// Prometheus-like exposition
	fmt.Fprintf(w, "# HELP http_requests_total Total number of HTTP requests\n")
	fmt.Fprintf(w, "# TYPE http_requests_total counter\n")
	fmt.Fprintf(w, "http_requests_total %d\n\n", traceMetrics.TotalRequests)

	fmt.Fprintf(w, "# HELP http_request_duration_avg_microseconds Average request duration\n")
	fmt.Fprintf(w, "# TYPE http_request_duration_avg_microseconds gauge\n")
	fmt.Fprintf(w, "http_request_duration_avg_microseconds %d\n\n", traceMetrics.AverageResponseTime)

	fmt.Fprintf(w, "# HELP dataset_rows Events in the loaded dataset\n")
	fmt.Fprintf(w, "# TYPE dataset_rows gauge\n")
	fmt.Fprintf(w, "dataset_rows %d\n\n", s.table.Len())

	fmt.Fprintf(w, "# HELP chart_cache_entries Rendered charts currently cached\n")
	fmt.Fprintf(w, "# TYPE chart_cache_entries gauge\n")
	fmt.Fprintf(w, "chart_cache_entries %d\n\n", chartCache.Size)

	fmt.Fprintf(w, "# HELP chart_cache_hits_total Chart cache hits\n")
	fmt.Fprintf(w, "# TYPE chart_cache_hits_total counter\n")
	fmt.Fprintf(w, "chart_cache_hits_total %d\n\n", chartCache.Hits)

	fmt.Fprintf(w, "# HELP chart_cache_misses_total Chart cache misses\n")
	fmt.Fprintf(w, "# TYPE chart_cache_misses_total counter\n")
	fmt.Fprintf(w, "chart_cache_misses_total %d\n\n", chartCache.Misses)

	fmt.Fprintf(w, "# HELP rate_limit_hits_total Total rate limit hits\n")
	fmt.Fprintf(w, "# TYPE rate_limit_hits_total counter\n")
	fmt.Fprintf(w, "rate_limit_hits_total %d\n\n", rateLimitMetrics.TotalHits)

	fmt.Fprintf(w, "# HELP active_rate_limit_clients Currently tracked rate limit clients\n")
	fmt.Fprintf(w, "# TYPE active_rate_limit_clients gauge\n")
	fmt.Fprintf(w, "active_rate_limit_clients %d\n\n", rateLimitMetrics.ClientCount)

	fmt.Fprintf(w, "# HELP suspicious_requests_total Total suspicious requests detected\n")
	fmt.Fprintf(w, "# TYPE suspicious_requests_total counter\n")
	fmt.Fprintf(w, "suspicious_requests_total %d\n\n", securityMetrics.SuspiciousRequests)

	fmt.Fprintf(w, "# HELP uptime_seconds Application uptime in seconds\n")
	fmt.Fprintf(w, "# TYPE uptime_seconds gauge\n")
	fmt.Fprintf(w, "uptime_seconds %.0f\n", uptime.Seconds())
}
