// Package seohealth wraps the Google PageSpeed Insights API and shapes the
// Lighthouse result into the dashboard's SEO health payload.
package seohealth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"sort"

	"github.com/rs/zerolog"

	"siteaudit/internal/apperrors"
	"siteaudit/internal/domain"
	"siteaudit/internal/ports"
)

const apiURL = "https://www.googleapis.com/pagespeedonline/v5/runPagespeed"

const serviceName = "pagespeed"

// Service is the seo-health module client.
type Service struct {
	apiKey  string
	baseURL string
	client  *http.Client
	log     zerolog.Logger

	// snapshotEnabled controls the best-effort on-page fetch; tests and the
	// demo wiring turn it off.
	snapshotEnabled bool
}

var _ ports.ModuleClient = (*Service)(nil)

func New(apiKey string, client *http.Client, log zerolog.Logger) *Service {
	if client == nil {
		client = http.DefaultClient
	}
	return &Service{
		apiKey:          apiKey,
		baseURL:         apiURL,
		client:          client,
		log:             log.With().Str("module", string(domain.ModuleSEOHealth)).Logger(),
		snapshotEnabled: true,
	}
}

func (s *Service) Module() domain.ModuleKind { return domain.ModuleSEOHealth }

func (s *Service) Analyze(ctx context.Context, req domain.AuditRequest) (domain.ModuleResult, error) {
	target := domain.NormalizeTarget(req.Target)
	strategy := req.Strategy
	if strategy == "" {
		strategy = "mobile"
	}

	q := url.Values{}
	q.Set("url", target)
	q.Set("strategy", strategy)
	for _, c := range []string{"PERFORMANCE", "ACCESSIBILITY", "BEST_PRACTICES", "SEO"} {
		q.Add("category", c)
	}
	q.Set("key", s.apiKey)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return domain.ModuleResult{}, err
	}

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return domain.ModuleResult{}, apperrors.FromTransport(serviceName, "pagespeed analyze", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return domain.ModuleResult{}, apperrors.UpstreamError{
			Service: serviceName,
			Status:  resp.StatusCode,
			Message: upstreamDetail(body),
		}
	}

	var raw pagespeedResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return domain.ModuleResult{}, apperrors.UpstreamError{Service: serviceName, Status: resp.StatusCode, Message: fmt.Sprintf("malformed response: %v", err)}
	}

	data := s.shape(target, strategy, raw)
	if s.snapshotEnabled {
		if snap := s.fetchSnapshot(ctx, target); snap != nil {
			data.PageSnapshot = snap
		}
	}
	data.Recommendations = recommend(data)

	s.log.Debug().Str("url", target).Str("strategy", strategy).Msg("seo health analyzed")
	return domain.ModuleResult{Module: domain.ModuleSEOHealth, SEO: data}, nil
}

// shape converts the Lighthouse result into the module payload.
func (s *Service) shape(target, strategy string, raw pagespeedResponse) *domain.SEOHealthData {
	lr := raw.LighthouseResult
	data := &domain.SEOHealthData{
		URL:                target,
		Strategy:           strategy,
		PerformanceScore:   scoreOf(lr.Categories["performance"]),
		SEOScore:           scoreOf(lr.Categories["seo"]),
		AccessibilityScore: scoreOf(lr.Categories["accessibility"]),
		BestPracticesScore: scoreOf(lr.Categories["best-practices"]),
		CoreWebVitals:      extractVitals(lr.Audits),
		Opportunities:      extractOpportunities(lr.Audits),
		Diagnostics:        extractDiagnostics(lr.Audits),
		Metadata: map[string]any{
			"lighthouse_version": lr.LighthouseVersion,
			"fetch_time":         lr.FetchTime,
			"user_agent":         lr.UserAgent,
		},
	}
	return data
}

type pagespeedResponse struct {
	LighthouseResult lighthouseResult `json:"lighthouseResult"`
}

type lighthouseResult struct {
	Categories        map[string]category `json:"categories"`
	Audits            map[string]audit    `json:"audits"`
	LighthouseVersion string              `json:"lighthouseVersion"`
	FetchTime         string              `json:"fetchTime"`
	UserAgent         string              `json:"userAgent"`
}

type category struct {
	Score *float64 `json:"score"`
}

type audit struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Score        *float64 `json:"score"`
	NumericValue *float64 `json:"numericValue"`
	DisplayValue string   `json:"displayValue"`
}

func scoreOf(c category) *int {
	if c.Score == nil {
		return nil
	}
	v := int(math.Round(*c.Score * 100))
	return &v
}

// opportunityAudits is the fixed set of Lighthouse audit ids reported as
// optimization opportunities.
var opportunityAudits = []string{
	"render-blocking-resources",
	"unused-css-rules",
	"unused-javascript",
	"modern-image-formats",
	"efficiently-encode-images",
	"offscreen-images",
	"minify-css",
	"minify-javascript",
	"remove-unused-css",
	"remove-unused-javascript",
	"uses-optimized-images",
	"uses-text-compression",
	"uses-responsive-images",
	"prioritize-lcp-image",
	"font-display",
}

var diagnosticAudits = []string{
	"mainthread-work-breakdown",
	"bootup-time",
	"uses-long-cache-ttl",
	"total-byte-weight",
	"dom-size",
	"network-requests",
	"network-rtt",
	"network-server-latency",
	"main-thread-tasks",
	"diagnostics",
	"metrics",
}

func extractOpportunities(audits map[string]audit) []domain.Opportunity {
	out := []domain.Opportunity{}
	for _, id := range opportunityAudits {
		a, ok := audits[id]
		if !ok || a.Score == nil || *a.Score >= 1 {
			continue
		}
		priority := "medium"
		if *a.Score < 0.5 {
			priority = "high"
		}
		title := a.Title
		if title == "" {
			title = id
		}
		score := *a.Score
		out = append(out, domain.Opportunity{
			Title:       title,
			Description: a.Description,
			Score:       &score,
			Savings:     a.DisplayValue,
			Priority:    priority,
		})
	}
	// Lower score means more to gain.
	sort.SliceStable(out, func(i, j int) bool { return *out[i].Score < *out[j].Score })
	return out
}

func extractDiagnostics(audits map[string]audit) []domain.Diagnostic {
	out := []domain.Diagnostic{}
	for _, id := range diagnosticAudits {
		a, ok := audits[id]
		if !ok {
			continue
		}
		out = append(out, domain.Diagnostic{
			ID:          id,
			Title:       a.Title,
			Description: a.Description,
			Value:       a.DisplayValue,
			Score:       a.Score,
		})
	}
	return out
}

func upstreamDetail(body []byte) string {
	var wrapped struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil && wrapped.Error.Message != "" {
		return wrapped.Error.Message
	}
	return string(body)
}
