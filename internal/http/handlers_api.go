package http

import (
	"bytes"
	"errors"
	"net/http"

	"retrospectiva/internal/core"
	applog "retrospectiva/internal/log"
	"retrospectiva/internal/stats"
)

type monthsResponse struct {
	Total  int                `json:"total"`
	Months []stats.MonthCount `json:"months"`
}

type countsResponse struct {
	Field  core.Field            `json:"field"`
	Where  *stats.Filter         `json:"where,omitempty"`
	Total  int                   `json:"total"`
	Counts []stats.CategoryCount `json:"counts"`
}

func (s *Server) handleMonths(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, monthsResponse{
		Total:  s.agg.Total(),
		Months: s.agg.CountByMonth(),
	})
}

// handleCounts serves /api/counts?field=F[&where=G&value=V].
func (s *Server) handleCounts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	field, err := core.ParseField(sanitizeInput(q.Get("field")))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	whereRaw := sanitizeInput(q.Get("where"))
	value := sanitizeInput(q.Get("value"))
	if hasWhere, hasValue := whereRaw != "", q.Has("value"); hasWhere != hasValue {
		writeError(w, r, http.StatusBadRequest, errors.New("where and value must be given together"))
		return
	}

	resp := countsResponse{Field: field}
	if whereRaw != "" {
		var whereField core.Field
		whereField, err = core.ParseField(whereRaw)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, err)
			return
		}
		resp.Where = &stats.Filter{Field: whereField, Value: value}
		resp.Counts, err = s.agg.CountByCategoryWhere(field, *resp.Where)
	} else {
		resp.Counts, err = s.agg.CountByCategory(field)
	}
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, core.ErrUnknownField) {
			status = http.StatusBadRequest
		}
		writeError(w, r, status, err)
		return
	}

	resp.Total = stats.Sum(resp.Counts)
	writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) handleTableCSV(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := s.table.WriteCSV(&buf); err != nil {
		applog.FromContext(r.Context()).LogError(r.Context(), "CSV export failed", err, applog.OpExport, nil)
		http.Error(w, "failed to export table", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+csvFilename+`"`)
	_, _ = buf.WriteTo(w)
}

const csvFilename = "retrospectiva-2025.csv"
