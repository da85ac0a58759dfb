package searchvis

import "siteaudit/internal/domain"

// Reference datasets served when no webmaster credentials are configured.
// The figures mirror the dashboard's demo fixtures.

func referenceGoogleData(target string) map[string]any {
	return map[string]any{
		"site_url": target,
		"status":   "verified",
		"index_status": map[string]any{
			"total_pages":       150,
			"indexed_pages":     127,
			"not_indexed_pages": 23,
			"pending_pages":     5,
			"errors":            3,
			"warnings":          8,
		},
		"search_performance": map[string]any{
			"clicks":      1250,
			"impressions": 25000,
			"ctr":         0.05,
			"position":    12.5,
		},
	}
}

func referenceBingData(target string) map[string]any {
	return map[string]any{
		"site_url": target,
		"status":   "verified",
		"index_status": map[string]any{
			"total_pages":       145,
			"indexed_pages":     118,
			"not_indexed_pages": 27,
		},
		"search_performance": map[string]any{
			"clicks":      890,
			"impressions": 18500,
			"ctr":         0.048,
			"position":    14.2,
		},
	}
}

func referencePerformance() []domain.SearchPerformance {
	return []domain.SearchPerformance{
		{Query: "example keyword 1", Clicks: 450, Impressions: 5000, CTR: 0.09, Position: 8.5},
		{Query: "example keyword 2", Clicks: 320, Impressions: 4200, CTR: 0.076, Position: 10.2},
		{Query: "example keyword 3", Clicks: 180, Impressions: 3100, CTR: 0.058, Position: 12.8},
		{Query: "example keyword 4", Clicks: 150, Impressions: 2800, CTR: 0.054, Position: 15.3},
		{Query: "example keyword 5", Clicks: 150, Impressions: 9900, CTR: 0.015, Position: 18.7},
	}
}

func referenceSitemaps() []domain.SitemapStatus {
	return []domain.SitemapStatus{
		{
			Path:           "/sitemap.xml",
			LastSubmitted:  "2024-01-15T10:30:00Z",
			LastDownloaded: "2024-01-15T12:45:00Z",
			Warnings:       2,
			Errors:         1,
		},
		{
			Path:           "/sitemap-posts.xml",
			LastSubmitted:  "2024-01-15T10:30:00Z",
			LastDownloaded: "2024-01-15T12:45:00Z",
		},
	}
}
