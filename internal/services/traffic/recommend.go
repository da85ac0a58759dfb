package traffic

import (
	"fmt"

	"siteaudit/internal/domain"
)

// recommend maps the estimate to advice using fixed volume and ratio
// thresholds.
func recommend(data *domain.TrafficData) []string {
	recs := []string{}
	visits := data.Metrics.MonthlyVisits

	switch {
	case visits < 50000:
		recs = append(recs,
			"📈 Low traffic detected. Focus on content marketing and SEO to increase organic visibility.",
			"🎯 Consider starting a blog with valuable content related to your industry.")
	case visits < 200000:
		recs = append(recs, "📊 Moderate traffic level. Optimize conversion rates and expand your keyword targeting.")
	default:
		recs = append(recs, "🌟 Strong traffic volume! Focus on retention and maximizing conversion rates.")
	}

	if pct := sourcePct(data.TrafficSources, "Organic Search"); pct < 40 {
		recs = append(recs, fmt.Sprintf(
			"🔍 Organic search is only %.1f%% of traffic. Invest in SEO to improve organic visibility.", pct))
	}
	if pct := sourcePct(data.TrafficSources, "Direct"); pct < 20 {
		recs = append(recs, fmt.Sprintf(
			"👋 Direct traffic is %.1f%%. Build brand awareness to increase direct visits.", pct))
	}
	if pct := sourcePct(data.TrafficSources, "Social Media"); pct < 5 {
		recs = append(recs, "📱 Low social media traffic. Develop a social media strategy to drive more visits.")
	}

	if data.Metrics.BounceRate != nil && *data.Metrics.BounceRate > 0.6 {
		recs = append(recs, fmt.Sprintf(
			"⚠️ High bounce rate (%.0f%%). Improve page load speed and content relevance.", *data.Metrics.BounceRate*100))
	}
	if data.Metrics.PagesPerVisit != nil && *data.Metrics.PagesPerVisit < 2 {
		recs = append(recs, "📝 Low pages per visit. Improve internal linking and add related content suggestions.")
	}

	recs = append(recs,
		"🎯 Focus on high-volume, low-competition keywords for quick wins.",
		"📧 Implement email marketing to increase returning visitors.",
		"🔗 Build quality backlinks to improve domain authority and organic traffic.",
		"📱 Ensure mobile optimization as mobile traffic continues to grow.",
	)
	return recs
}

func sourcePct(sources []domain.TrafficSource, name string) float64 {
	for _, s := range sources {
		if s.Source == name {
			return s.Percentage
		}
	}
	return 0
}
