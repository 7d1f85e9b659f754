package http

import (
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"retrospectiva/internal/cache"
	"retrospectiva/internal/chart"
	"retrospectiva/internal/dataset"
	applog "retrospectiva/internal/log"
	"retrospectiva/internal/middleware/ratelimit"
	"retrospectiva/internal/middleware/security"
	"retrospectiva/internal/middleware/trace"
	"retrospectiva/internal/report"
	"retrospectiva/internal/stats"
	appweb "retrospectiva/web"
)

// Options tunes the server. Zero values fall back to defaults.
type Options struct {
	Logger          *applog.Logger
	ChartCacheSize  int
	ChartCacheTTL   time.Duration
	RateLimitRPM    int
	CleanupInterval time.Duration
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = applog.New(applog.DefaultConfig())
	}
	if o.ChartCacheSize <= 0 {
		o.ChartCacheSize = 32
	}
	if o.ChartCacheTTL <= 0 {
		o.ChartCacheTTL = time.Hour
	}
	if o.RateLimitRPM <= 0 {
		o.RateLimitRPM = ratelimit.DefaultConfig().RequestsPerMinute
	}
	if o.CleanupInterval <= 0 {
		o.CleanupInterval = 10 * time.Minute
	}
	return o
}

// renderedChart is a cached SVG with its validator.
type renderedChart struct {
	SVG  []byte
	ETag string
}

type Server struct {
	http.Server
	logger    *applog.Logger
	templates *template.Template

	table    *dataset.Table
	agg      *stats.Aggregator
	report   report.Report
	renderer *chart.Renderer

	charts       *cache.LRUCache[renderedChart]
	cacheManager *cache.Manager
	rateLimiter  *ratelimit.Limiter
	tracer       *trace.Middleware
	detector     *security.Detector

	generatedAt  time.Time
	ready        atomic.Bool
	shutdownOnce sync.Once
}

// NewServer configures routes, middleware and templates, returning a
// ready-to-run http.Server. /readyz answers 503 until Prewarm has filled the
// chart cache.
func NewServer(addr string, table *dataset.Table, agg *stats.Aggregator, rep report.Report, renderer *chart.Renderer, opts Options) *Server {
	opts = opts.withDefaults()
	logger := opts.Logger.WithComponent(applog.ComponentHTTP)

	mux := http.NewServeMux()
	s := &Server{
		Server: http.Server{
			Addr:              addr,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		logger:       logger,
		table:        table,
		agg:          agg,
		report:       rep,
		renderer:     renderer,
		charts:       cache.NewLRUCache[renderedChart](opts.ChartCacheSize, opts.ChartCacheTTL),
		cacheManager: cache.NewManager(opts.Logger),
		rateLimiter: ratelimit.NewLimiter(ratelimit.Config{
			RequestsPerMinute: opts.RateLimitRPM,
			Logger:            opts.Logger,
		}),
		detector:    security.NewDetector(opts.Logger),
		generatedAt: time.Now(),
	}
	s.tracer = trace.NewMiddleware(opts.Logger, s.detector.ExtractClientIP)

	s.cacheManager.Register(s.charts)
	s.cacheManager.StartCleanup(opts.CleanupInterval)

	// Parse embedded templates at startup.
	t, err := template.New("").Funcs(templateFuncs()).ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		logger.Warn("Failed parsing templates", applog.FieldError, err)
	} else {
		s.templates = t
	}

	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("GET /static/", security.StaticAssetMiddleware(3600)(static))
	} else {
		logger.Warn("Failed to mount embedded static FS", applog.FieldError, err)
	}

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /charts/{id}", s.handleChart)
	mux.HandleFunc("GET /api/months", s.handleMonths)
	mux.HandleFunc("GET /api/counts", s.handleCounts)
	mux.HandleFunc("GET /api/table.csv", s.handleTableCSV)
	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.HandleFunc("GET /metrics", s.handleMetrics)

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	limited := s.rateLimiter.Middleware(s.detector.ExtractClientIP, nil)(mux)
	s.Handler = s.tracer.Middleware(s.detector.Middleware(headers.Middleware(limited)))

	return s
}

// Prewarm renders every chart of the report concurrently and marks the
// server ready once all of them are cached.
func (s *Server) Prewarm(ctx context.Context) error {
	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for _, spec := range s.report.Charts() {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			_, _, err := s.chart(spec)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("prewarm charts: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("prewarm charts: %w", err)
	}

	s.ready.Store(true)
	s.logger.Info("Charts prewarmed",
		"charts", len(s.report.Charts()),
		applog.FieldDuration, time.Since(start).Milliseconds())
	return nil
}

// chart returns the rendered chart for spec, rendering at most once per key
// across concurrent callers.
func (s *Server) chart(spec report.ChartSpec) (renderedChart, bool, error) {
	return s.charts.GetOrLoad(spec.ID, func() (renderedChart, error) {
		svg, err := s.renderer.RenderBytes(spec)
		if err != nil {
			return renderedChart{}, err
		}
		s.logger.Debug("Chart rendered",
			applog.NewFields().WithChart(spec.ID, string(spec.Kind)).ToSlice()...)
		return renderedChart{SVG: svg, ETag: etag(svg)}, nil
	})
}

// CacheStats exposes the chart cache counters.
func (s *Server) CacheStats() cache.Stats {
	return s.charts.Stats()
}

// Shutdown gracefully shuts down the server and cleanup routines
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.ready.Store(false)
		s.cacheManager.Stop()
		s.rateLimiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if !s.ready.Load() {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("warming up"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
