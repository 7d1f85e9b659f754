package http

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"retrospectiva/internal/core"
	applog "retrospectiva/internal/log"
	"retrospectiva/internal/middleware/trace"
	"retrospectiva/internal/report"
)

// fieldLabel turns a column name such as "hair_color" into "Hair Color".
// Casers keep state, so each call gets its own.
func fieldLabel(f core.Field) string {
	return cases.Title(language.English).String(strings.ReplaceAll(string(f), "_", " "))
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"fieldLabel": fieldLabel,
		"ago": func(t time.Time) string {
			return humanize.Time(t)
		},
		"comma": func(n int) string {
			return humanize.Comma(int64(n))
		},
		"borderClass": func(s report.Status) string {
			return "border-" + string(s)
		},
		"isDonut": func(c report.ChartSpec) bool {
			return c.Kind == report.KindDonut
		},
	}
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		applog.FromContext(r.Context()).LogError(r.Context(), "JSON encoding failed", err, applog.OpRender, nil)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	applog.FromContext(r.Context()).WarnContext(r.Context(), "API request rejected",
		applog.FieldStatusCode, status,
		applog.FieldError, err.Error())
	writeJSON(w, r, status, errorResponse{Error: err.Error(), RequestID: requestID(r)})
}

func requestID(r *http.Request) string {
	return trace.GetRequestID(r.Context())
}

// etag returns a strong validator for an SVG body.
func etag(body []byte) string {
	sum := sha256.Sum256(body)
	return `"` + hex.EncodeToString(sum[:8]) + `"`
}

// etagMatches implements the If-None-Match list comparison.
func etagMatches(header, tag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		candidate = strings.TrimPrefix(candidate, "W/")
		if candidate == "*" || candidate == tag {
			return true
		}
	}
	return false
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
