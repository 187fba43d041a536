// =============================================================================
// Master Data Converter - REST API
// =============================================================================
//
// This module serves the catalog over HTTP. All endpoints are read-only.
//
// ROUTES:
//   GET /api/permission-administrators               all pa records
//   GET /api/permission-administrators/{companyId}   one pa record or 404
//   GET /api/market-data-administrators              all mda records
//   GET /api/market-data-administrators/{companyId}  one mda record or 404
//   GET /api/metered-data-administrators[/...]       alias of the mda routes
//   GET /healthz                                     liveness + record counts
//   GET /metrics                                     Prometheus metrics
//
// Errors are returned as RFC 7807 problem documents.
//
// =============================================================================

package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/ginjaninja78/masterdata-converter/internal/catalog"
	"github.com/ginjaninja78/masterdata-converter/internal/logging"
	"github.com/ginjaninja78/masterdata-converter/internal/types"
)

// ShutdownTimeout bounds graceful shutdown after the context is cancelled.
const ShutdownTimeout = 10 * time.Second

// Server is the REST API over a catalog.
type Server struct {
	catalog *catalog.Catalog
	logger  *slog.Logger

	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec

	router chi.Router
}

// New creates a server for the catalog. Metrics are kept in a registry owned
// by the server, so several servers can coexist in one process.
func New(c *catalog.Catalog, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.Discard()
	}

	s := &Server{
		catalog:  c,
		logger:   logger,
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "masterdata",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route pattern and status code.",
		}, []string{"route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "masterdata",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}

	s.registry.MustRegister(s.requests, s.duration)
	s.router = s.routes()

	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// =============================================================================
// ROUTING
// =============================================================================

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.instrument)
	r.Use(middleware.Recoverer)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.Render(w, r, newProblem(http.StatusNotFound, "no route for "+r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		render.Render(w, r, newProblem(http.StatusMethodNotAllowed, r.Method+" is not allowed"))
	})

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))

		r.Get("/permission-administrators", s.listPermissionAdministrators)
		r.Get("/permission-administrators/{companyId}", s.getPermissionAdministrator)
		for _, path := range []string{"/market-data-administrators", "/metered-data-administrators"} {
			r.Get(path, s.listMarketDataAdministrators)
			r.Get(path+"/{companyId}", s.getMarketDataAdministrator)
		}
	})

	return r
}

// instrument records request metrics and logs each request.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)

		s.requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
		s.duration.WithLabelValues(route).Observe(elapsed.Seconds())

		s.logger.Debug("http request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("route", route),
			slog.Int("status", status),
			slog.Int("bytes", ww.BytesWritten()),
			slog.Duration("duration", elapsed),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

// =============================================================================
// HANDLERS
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]any{
		"status":                   "ok",
		"permissionAdministrators": len(s.catalog.PermissionAdministrators()),
		"marketDataAdministrators": len(s.catalog.MarketDataAdministrators()),
	})
}

func (s *Server) listPermissionAdministrators(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, s.catalog.PermissionAdministrators())
}

func (s *Server) getPermissionAdministrator(w http.ResponseWriter, r *http.Request) {
	pa, err := s.catalog.PermissionAdministrator(chi.URLParam(r, "companyId"))
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	render.JSON(w, r, pa)
}

func (s *Server) listMarketDataAdministrators(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, s.catalog.MarketDataAdministrators())
}

func (s *Server) getMarketDataAdministrator(w http.ResponseWriter, r *http.Request) {
	mda, err := s.catalog.MarketDataAdministrator(chi.URLParam(r, "companyId"))
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	render.JSON(w, r, mda)
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, types.ErrNotFound) {
		render.Render(w, r, newProblem(http.StatusNotFound, err.Error()))
		return
	}

	s.logger.Error("request failed", slog.String("path", r.URL.Path), slog.String("error", err.Error()))
	render.Render(w, r, newProblem(http.StatusInternalServerError, "internal error"))
}

// =============================================================================
// SERVING
// =============================================================================

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on an existing listener until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("server listening", slog.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()

		s.logger.Info("shutting down server")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down server: %w", err)
		}
		return nil
	})

	return g.Wait()
}
