package httpadapter

import (
	"fmt"
	"net/http"
	"strings"

	"siteaudit/internal/apperrors"
	"siteaudit/internal/domain"
	"siteaudit/internal/orchestration"
	"siteaudit/internal/report"
)

func (s *Server) apiRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message":         "SEO Audit Tool API",
		"version":         Version,
		"apis_configured": s.apis,
		"endpoints": map[string]string{
			"seo_health":        "/api/seo/analyze",
			"search_visibility": "/api/search/analyze",
			"geo":               "/api/geo/analyze",
			"traffic":           "/api/traffic/estimate",
			"report":            "/api/report/generate",
			"audit":             "/api/audit",
		},
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "healthy",
		"apis":   s.apis,
	})
}

// runModule dispatches one module client with a normalized target and
// returns its payload, mirroring what a full audit would collect for it.
func (s *Server) runModule(r *http.Request, kind domain.ModuleKind, req domain.AuditRequest) (domain.ModuleResult, error) {
	client, ok := s.clients[kind]
	if !ok {
		return domain.ModuleResult{}, apperrors.NewValidationError("module", "module %q is not available", kind)
	}
	if strings.TrimSpace(req.Target) == "" {
		return domain.ModuleResult{}, apperrors.NewValidationError("url", "url must not be empty")
	}
	req.Target = domain.NormalizeTarget(req.Target)
	return client.Analyze(r.Context(), req)
}

// --- SEO health ---

type seoRequest struct {
	URL      string `json:"url"`
	Strategy string `json:"strategy"`
}

func (s *Server) analyzeSEO(w http.ResponseWriter, r *http.Request) {
	var req seoRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	s.serveSEO(w, r, req)
}

func (s *Server) seoScores(w http.ResponseWriter, r *http.Request) {
	s.serveSEO(w, r, seoRequest{
		URL:      r.URL.Query().Get("url"),
		Strategy: r.URL.Query().Get("strategy"),
	})
}

func (s *Server) serveSEO(w http.ResponseWriter, r *http.Request, req seoRequest) {
	result, err := s.runModule(r, domain.ModuleSEOHealth, domain.AuditRequest{Target: req.URL, Strategy: req.Strategy})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result.SEO)
}

// --- search visibility ---

func (s *Server) analyzeSearch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL string `json:"url"`
	}
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	result, err := s.runModule(r, domain.ModuleSearchVisibility, domain.AuditRequest{Target: req.URL})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result.Search)
}

// --- GEO ---

type geoRequest struct {
	Domain   string   `json:"domain"`
	Keywords []string `json:"keywords"`
}

func (s *Server) analyzeGEO(w http.ResponseWriter, r *http.Request) {
	var req geoRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	s.serveGEO(w, r, req)
}

func (s *Server) geoCheck(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	s.serveGEO(w, r, geoRequest{
		Domain:   q.Get("domain"),
		Keywords: splitCSV(q.Get("keywords")),
	})
}

func (s *Server) serveGEO(w http.ResponseWriter, r *http.Request, req geoRequest) {
	result, err := s.runModule(r, domain.ModuleGEO, domain.AuditRequest{Target: req.Domain, Keywords: req.Keywords})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result.GEO)
}

// --- traffic estimation ---

func (s *Server) estimateTraffic(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL string `json:"url"`
	}
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	s.serveTraffic(w, r, req.URL)
}

func (s *Server) estimateTrafficQuick(w http.ResponseWriter, r *http.Request) {
	s.serveTraffic(w, r, r.URL.Query().Get("url"))
}

func (s *Server) serveTraffic(w http.ResponseWriter, r *http.Request, url string) {
	result, err := s.runModule(r, domain.ModuleTraffic, domain.AuditRequest{Target: url})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result.Traffic)
}

func (s *Server) compareTraffic(w http.ResponseWriter, r *http.Request) {
	urls := splitCSV(r.URL.Query().Get("urls"))
	if len(urls) == 0 {
		s.writeError(w, apperrors.NewValidationError("urls", "urls must not be empty"))
		return
	}

	comparison := make([]any, 0, len(urls))
	for _, url := range urls {
		result, err := s.runModule(r, domain.ModuleTraffic, domain.AuditRequest{Target: url})
		if err != nil {
			comparison = append(comparison, map[string]string{"url": url, "error": err.Error()})
			continue
		}
		comparison = append(comparison, result.Traffic)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"comparison":     comparison,
		"total_compared": len(comparison),
	})
}

// --- reporting ---

func (s *Server) generateReport(w http.ResponseWriter, r *http.Request) {
	var req domain.ReportRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if strings.TrimSpace(req.URL) == "" {
		s.writeError(w, apperrors.NewValidationError("url", "url must not be empty"))
		return
	}
	if len(req.IncludeSections) == 0 {
		req.IncludeSections = []string{"seo", "search", "geo", "traffic"}
	}

	pdf, err := s.reports.Generate(r.Context(), req)
	if err != nil {
		s.writeError(w, err)
		return
	}

	filename := fmt.Sprintf("SEO_Audit_Report_%s.pdf", s.now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

func (s *Server) reportTemplate(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"template": report.DefaultTemplate()})
}

// --- aggregate audit ---

// runAudit executes all requested modules with the isolate policy: every
// module resolves independently and partial results are returned alongside
// per-module errors.
func (s *Server) runAudit(w http.ResponseWriter, r *http.Request) {
	var req domain.AuditRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	progress := func(completed, total int, fraction float64) {
		s.log.Debug().Int("completed", completed).Int("total", total).Float64("fraction", fraction).Msg("audit progress")
	}
	state, err := s.orch.Run(r.Context(), req, orchestration.PolicyIsolate, progress)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func splitCSV(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
