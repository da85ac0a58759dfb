// Package demo provides canned-data implementations of the module client
// interface. They are wired in place of a real client when its upstream
// credential is absent, keeping the dashboard fully navigable offline.
// The data is deterministic per target so repeated audits agree.
package demo

import (
	"context"
	"hash/fnv"
	"math"
	"math/rand"

	"siteaudit/internal/domain"
	"siteaudit/internal/ports"
)

// SEOHealth serves canned PageSpeed-shaped results.
type SEOHealth struct{}

var _ ports.ModuleClient = SEOHealth{}

func (SEOHealth) Module() domain.ModuleKind { return domain.ModuleSEOHealth }

func (SEOHealth) Analyze(ctx context.Context, req domain.AuditRequest) (domain.ModuleResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.ModuleResult{}, err
	}

	target := domain.NormalizeTarget(req.Target)
	strategy := req.Strategy
	if strategy == "" {
		strategy = "mobile"
	}
	rng := rand.New(rand.NewSource(seed(target)))

	perf := 60 + rng.Intn(36)
	seo := 70 + rng.Intn(26)
	access := 65 + rng.Intn(26)
	best := 75 + rng.Intn(24)

	lcp := round2(1.5 + rng.Float64()*2.0)
	fid := float64(10 + rng.Intn(141))
	cls := round3(0.01 + rng.Float64()*0.24)
	fcp := round2(1.0 + rng.Float64()*1.5)
	ttfb := round2(0.4 + rng.Float64()*0.8)

	oppScore1, oppScore2 := 0.42, 0.65
	data := &domain.SEOHealthData{
		URL:                target,
		Strategy:           strategy,
		PerformanceScore:   &perf,
		SEOScore:           &seo,
		AccessibilityScore: &access,
		BestPracticesScore: &best,
		CoreWebVitals: domain.CoreWebVitals{
			LCP: &lcp, LCPCategory: bucket(lcp, 2.5, 4.0),
			FID: &fid, FIDCategory: bucket(fid, 100, 300),
			CLS: &cls, CLSCategory: bucket(cls, 0.1, 0.25),
			FCP: &fcp, FCPCategory: bucket(fcp, 1.8, 3.0),
			TTFB: &ttfb, TTFBCategory: bucket(ttfb, 0.8, 1.8),
		},
		Opportunities: []domain.Opportunity{
			{
				Title:       "Eliminate render-blocking resources",
				Description: "Resources are blocking the first paint of your page.",
				Score:       &oppScore1,
				Savings:     "1.2s",
				Priority:    "high",
			},
			{
				Title:       "Properly size images",
				Description: "Serve images that are appropriately-sized.",
				Score:       &oppScore2,
				Savings:     "0.8s",
				Priority:    "medium",
			},
		},
		Diagnostics: []domain.Diagnostic{},
		Metadata: map[string]any{
			"lighthouse_version": "11.0.0",
			"fetch_time":         "2024-01-15T10:30:00Z",
			"demo_mode":          true,
		},
		Recommendations: []string{
			"⚠️ Performance needs improvement. Consider lazy loading images.",
			"📋 SEO Score could be improved. Check meta tags and headings.",
			"♿ Accessibility score needs attention. Add alt text to images.",
		},
		DemoMode: true,
	}
	return domain.ModuleResult{Module: domain.ModuleSEOHealth, SEO: data}, nil
}

func bucket(v, good, needsImprovement float64) string {
	switch {
	case v <= good:
		return "good"
	case v <= needsImprovement:
		return "needs_improvement"
	default:
		return "poor"
	}
}

func seed(s string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return int64(h.Sum64())
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
