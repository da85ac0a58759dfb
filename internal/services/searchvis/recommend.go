package searchvis

import (
	"fmt"

	"siteaudit/internal/domain"
)

// recommend maps visibility metrics to advice using fixed thresholds.
func recommend(data *domain.SearchVisibilityData) []string {
	recs := []string{}

	if st := data.IndexStatus; st != nil {
		total := st.TotalPages
		if total < 1 {
			total = 1
		}
		indexedRatio := float64(st.IndexedPages) / float64(total)
		if indexedRatio < 0.8 {
			recs = append(recs, fmt.Sprintf(
				"📉 Only %.1f%% of your pages are indexed. Submit a sitemap to Google Search Console and check for crawl errors.",
				indexedRatio*100))
		}
		if st.Errors != nil && *st.Errors > 0 {
			recs = append(recs, fmt.Sprintf(
				"🚨 Found %d indexing errors. Fix these in Google Search Console to improve visibility.", *st.Errors))
		}
		if st.Warnings != nil && *st.Warnings > 0 {
			recs = append(recs, fmt.Sprintf(
				"⚠️ Found %d indexing warnings. Review and address these to ensure proper indexing.", *st.Warnings))
		}
	}

	if len(data.SearchPerformance) > 0 {
		var clicks, impressions int
		var positions float64
		for _, p := range data.SearchPerformance {
			clicks += p.Clicks
			impressions += p.Impressions
			positions += p.Position
		}
		if impressions < 1 {
			impressions = 1
		}
		avgCTR := float64(clicks) / float64(impressions) * 100
		avgPosition := positions / float64(len(data.SearchPerformance))

		if avgCTR < 2 {
			recs = append(recs, fmt.Sprintf(
				"📊 Your average CTR is %.2f%%. Improve meta titles and descriptions to increase click-through rates.", avgCTR))
		}
		if avgPosition > 10 {
			recs = append(recs, fmt.Sprintf(
				"🎯 Average position is %.1f. Focus on SEO improvements to reach the first page (position 1-10).", avgPosition))
		}
	}

	if len(data.Sitemaps) == 0 {
		recs = append(recs, "🗺️ No sitemaps detected. Create and submit XML sitemaps to Google and Bing for better indexing.")
	}
	if data.GoogleData == nil && data.BingData == nil {
		recs = append(recs, "🔗 Connect your Google Search Console and Bing Webmaster Tools accounts for detailed insights.")
	}

	if len(recs) == 0 {
		recs = append(recs, "✅ Your search visibility looks good! Continue monitoring and optimizing.")
	}
	return recs
}
