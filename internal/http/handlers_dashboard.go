package http

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"
	"time"

	"retrospectiva/internal/chart"
	applog "retrospectiva/internal/log"
	"retrospectiva/internal/report"
)

// dashboardData is the view model of dashboard.html.
type dashboardData struct {
	Report      report.Report
	Total       int
	GeneratedAt time.Time
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	logger := applog.FromContext(r.Context())

	if s.templates == nil {
		logger.ErrorContext(r.Context(), "Templates not loaded", applog.FieldPath, r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	data := dashboardData{
		Report:      s.report,
		Total:       s.agg.Total(),
		GeneratedAt: s.generatedAt,
	}

	// Render into a buffer so a template error never leaves a half page.
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, "dashboard.html", data); err != nil {
		logger.LogError(r.Context(), "Dashboard template execution failed", err, applog.OpRender,
			applog.NewFields().WithRequestID(requestID(r)))
		http.Error(w, "failed to render dashboard", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	logger := applog.FromContext(r.Context())
	id := r.PathValue("id")

	spec, ok := s.report.Chart(id)
	if !ok {
		http.NotFound(w, r)
		return
	}

	c, cached, err := s.chart(spec)
	if err != nil {
		fields := applog.NewFields().WithChart(spec.ID, string(spec.Kind))
		if errors.Is(err, chart.ErrNoData) {
			logger.WarnContext(r.Context(), "Chart has no data", fields.WithError(err).ToSlice()...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
		logger.LogError(r.Context(), "Chart render failed", err, applog.OpRender, fields)
		http.Error(w, "failed to render chart", http.StatusInternalServerError)
		return
	}

	logger.DebugContext(r.Context(), "Chart served",
		applog.FieldChartID, spec.ID,
		applog.FieldCacheHit, cached,
		applog.FieldBytes, len(c.SVG))

	w.Header().Set("ETag", c.ETag)
	w.Header().Set("Cache-Control", "public, max-age=300")
	if match := r.Header.Get("If-None-Match"); match != "" && etagMatches(match, c.ETag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", chart.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(c.SVG)))
	_, _ = w.Write(c.SVG)
}
