package seohealth

import (
	"fmt"

	"siteaudit/internal/domain"
)

// recommend derives the human-readable recommendation list from the shaped
// payload. Thresholds are fixed; the mapping is deterministic.
func recommend(data *domain.SEOHealthData) []string {
	recs := []string{}

	if data.PerformanceScore != nil {
		switch {
		case *data.PerformanceScore < 50:
			recs = append(recs, "🚨 Critical: Performance score is very low. Prioritize optimizing images, reducing JavaScript, and implementing code splitting.")
		case *data.PerformanceScore < 90:
			recs = append(recs, "⚠️ Performance needs improvement. Consider lazy loading images and deferring non-critical JavaScript.")
		}
	}
	if data.SEOScore != nil && *data.SEOScore < 90 {
		recs = append(recs, "📋 SEO Score could be improved. Check meta tags, headings structure, and ensure proper canonical URLs.")
	}
	if data.AccessibilityScore != nil && *data.AccessibilityScore < 90 {
		recs = append(recs, "♿ Accessibility score needs attention. Add alt text to images and ensure proper color contrast.")
	}

	cwv := data.CoreWebVitals
	if cwv.LCPCategory == "poor" {
		recs = append(recs, "🐌 LCP is poor. Optimize your largest content element (usually hero image) and improve server response time.")
	}
	if cwv.CLSCategory == "poor" {
		recs = append(recs, "📐 CLS is poor. Reserve space for images and ads to prevent layout shifts.")
	}
	if cwv.FIDCategory == "poor" {
		recs = append(recs, "👆 FID is poor. Reduce JavaScript execution time and break up long tasks.")
	}

	for i, opp := range data.Opportunities {
		if i >= 3 {
			break
		}
		if opp.Priority == "high" {
			recs = append(recs, fmt.Sprintf("🔧 High Priority: %s - %s", opp.Title, truncate(opp.Description, 100)))
		}
	}

	if snap := data.PageSnapshot; snap != nil {
		if snap.Title == "" {
			recs = append(recs, "📝 The page has no <title> element. Add a descriptive title tag.")
		}
		if !snap.HasMetaDesc {
			recs = append(recs, "📝 No meta description found. Add one to improve snippet quality in search results.")
		}
		if snap.H1Count != 1 {
			recs = append(recs, fmt.Sprintf("📝 Page has %d <h1> headings; use exactly one per page.", snap.H1Count))
		}
		if snap.ImagesMissingAlt > 0 {
			recs = append(recs, fmt.Sprintf("♿ %d images are missing alt text.", snap.ImagesMissingAlt))
		}
	}

	if len(recs) == 0 {
		recs = append(recs, "✅ Great job! Your website is well-optimized. Continue monitoring for any changes.")
	}
	return recs
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
