// Package httpadapter exposes the audit services over REST. Routes mirror
// the dashboard frontend's expectations: JSON in and out, errors as
// {"detail": ...} bodies.
package httpadapter

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"siteaudit/internal/apperrors"
	"siteaudit/internal/domain"
	"siteaudit/internal/metrics"
	"siteaudit/internal/orchestration"
	"siteaudit/internal/ports"
)

// Version is reported by the API root endpoint.
const Version = "1.0.0"

// Server wires the module clients, the orchestrator and the report
// generator into an HTTP surface.
type Server struct {
	clients     map[domain.ModuleKind]ports.ModuleClient
	orch        *orchestration.Orchestrator
	reports     ports.ReportGenerator
	apis        map[string]bool
	corsOrigins []string
	log         zerolog.Logger
	now         func() time.Time
}

func New(clients []ports.ModuleClient, orch *orchestration.Orchestrator, reports ports.ReportGenerator, apis map[string]bool, corsOrigins []string, log zerolog.Logger) *Server {
	byKind := make(map[domain.ModuleKind]ports.ModuleClient, len(clients))
	for _, c := range clients {
		byKind[c.Module()] = c
	}
	return &Server{
		clients:     byKind,
		orch:        orch,
		reports:     reports,
		apis:        apis,
		corsOrigins: corsOrigins,
		log:         log.With().Str("component", "http").Logger(),
		now:         time.Now,
	}
}

// Routes builds the router with CORS, recovery, logging and metrics
// middleware applied to every endpoint.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.corsOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)

	r.Get("/api", s.apiRoot)
	r.Get("/api/health", s.health)

	r.Route("/api/seo", func(r chi.Router) {
		r.Post("/analyze", s.analyzeSEO)
		r.Get("/scores", s.seoScores)
	})
	r.Route("/api/search", func(r chi.Router) {
		r.Post("/analyze", s.analyzeSearch)
	})
	r.Route("/api/geo", func(r chi.Router) {
		r.Post("/analyze", s.analyzeGEO)
		r.Get("/check", s.geoCheck)
	})
	r.Route("/api/traffic", func(r chi.Router) {
		r.Post("/estimate", s.estimateTraffic)
		r.Get("/estimate", s.estimateTrafficQuick)
		r.Get("/compare", s.compareTraffic)
	})
	r.Route("/api/report", func(r chi.Router) {
		r.Post("/generate", s.generateReport)
		r.Get("/template", s.reportTemplate)
	})
	r.Post("/api/audit", s.runAudit)

	r.Method(http.MethodGet, "/metrics", metrics.Handler())
	return r
}

// instrument records request logs and Prometheus series per chi route
// pattern so path parameters do not explode label cardinality.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		elapsed := time.Since(started)
		metrics.HTTPRequests.WithLabelValues(route, r.Method, strconv.Itoa(ww.Status())).Inc()
		metrics.HTTPDuration.WithLabelValues(route).Observe(elapsed.Seconds())
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", elapsed).
			Msg("request")
	})
}

// --- response helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := apperrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.log.Error().Err(err).Msg("request failed")
	}
	writeJSON(w, status, map[string]string{"detail": err.Error()})
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperrors.NewValidationError("body", "invalid request body: %v", err)
	}
	return nil
}
