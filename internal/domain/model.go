package domain

import "strings"

// Core domain models shared across services, orchestration and the HTTP
// adapter. JSON tags follow the wire shapes the dashboard frontend consumes.

// ModuleKind identifies one of the four audit categories.
type ModuleKind string

const (
	ModuleSEOHealth        ModuleKind = "seo-health"
	ModuleSearchVisibility ModuleKind = "search-visibility"
	ModuleGEO              ModuleKind = "geo"
	ModuleTraffic          ModuleKind = "traffic"
)

// ModuleOrder is the fixed dispatch order for a full audit run.
var ModuleOrder = []ModuleKind{ModuleSEOHealth, ModuleSearchVisibility, ModuleGEO, ModuleTraffic}

// DefaultKeywords is used for geo checks when the caller supplies none.
var DefaultKeywords = []string{"SEO tools", "website optimization"}

// AuditRequest describes one audit run over a target URL or domain.
type AuditRequest struct {
	Target   string       `json:"url"`
	Keywords []string     `json:"keywords,omitempty"`
	Modules  []ModuleKind `json:"modules"`
	Strategy string       `json:"strategy,omitempty"` // mobile or desktop, seo-health only
}

// NormalizeTarget ensures the target carries a URL scheme, prepending
// https:// when missing.
func NormalizeTarget(target string) string {
	t := strings.TrimSpace(target)
	if t == "" {
		return t
	}
	if !strings.Contains(t, "://") {
		return "https://" + t
	}
	return t
}

// BareDomain strips scheme, leading www., path and trailing slashes from a
// target, returning the lowercased host. Used for brand-mention queries.
func BareDomain(target string) string {
	d := strings.ToLower(strings.TrimSpace(target))
	for _, prefix := range []string{"https://", "http://"} {
		d = strings.TrimPrefix(d, prefix)
	}
	d = strings.TrimPrefix(d, "www.")
	if i := strings.IndexAny(d, "/?#"); i >= 0 {
		d = d[:i]
	}
	return strings.TrimRight(d, "/")
}

// ModuleResult is a tagged union over the four module payloads. Exactly one
// payload pointer is non-nil once the module completed; a result is never
// partially populated.
type ModuleResult struct {
	Module  ModuleKind            `json:"module"`
	SEO     *SEOHealthData        `json:"seo_data,omitempty"`
	Search  *SearchVisibilityData `json:"search_data,omitempty"`
	GEO     *GEOData              `json:"geo_data,omitempty"`
	Traffic *TrafficData          `json:"traffic_data,omitempty"`
}

// Recommendations returns the populated payload's recommendation strings.
func (r ModuleResult) Recommendations() []string {
	switch {
	case r.SEO != nil:
		return r.SEO.Recommendations
	case r.Search != nil:
		return r.Search.Recommendations
	case r.GEO != nil:
		return r.GEO.Recommendations
	case r.Traffic != nil:
		return r.Traffic.Recommendations
	}
	return nil
}

// AuditState is the mutable aggregate for one audit run. It is owned by the
// orchestrator for the run's lifetime and discarded afterwards; nothing is
// persisted.
type AuditState struct {
	Request   AuditRequest                `json:"request"`
	Completed int                         `json:"completed"`
	Total     int                         `json:"total"`
	Results   map[ModuleKind]ModuleResult `json:"results"`
	Errors    map[ModuleKind]string       `json:"errors,omitempty"`
}

// Progress reports completed/total as a fraction in [0, 1].
func (s *AuditState) Progress() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Completed) / float64(s.Total)
}

// --- SEO health (PageSpeed Insights) ---

type CoreWebVitals struct {
	LCP          *float64 `json:"lcp,omitempty"`
	LCPCategory  string   `json:"lcp_category,omitempty"`
	FID          *float64 `json:"fid,omitempty"`
	FIDCategory  string   `json:"fid_category,omitempty"`
	CLS          *float64 `json:"cls,omitempty"`
	CLSCategory  string   `json:"cls_category,omitempty"`
	FCP          *float64 `json:"fcp,omitempty"`
	FCPCategory  string   `json:"fcp_category,omitempty"`
	TTFB         *float64 `json:"ttfb,omitempty"`
	TTFBCategory string   `json:"ttfb_category,omitempty"`
}

type Opportunity struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Score       *float64 `json:"score,omitempty"`
	Savings     string   `json:"savings,omitempty"`
	Priority    string   `json:"priority"`
}

type Diagnostic struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Value       string   `json:"value"`
	Score       *float64 `json:"score,omitempty"`
}

// PageSnapshot is a best-effort on-page sample of the audited document.
type PageSnapshot struct {
	Title             string `json:"title"`
	HasMetaDesc       bool   `json:"has_meta_description"`
	H1Count           int    `json:"h1_count"`
	ImagesMissingAlt  int    `json:"images_missing_alt"`
	InternalLinkCount int    `json:"internal_link_count"`
	ExternalLinkCount int    `json:"external_link_count"`
}

type SEOHealthData struct {
	URL                string         `json:"url"`
	Strategy           string         `json:"strategy"`
	PerformanceScore   *int           `json:"performance_score,omitempty"`
	SEOScore           *int           `json:"seo_score,omitempty"`
	AccessibilityScore *int           `json:"accessibility_score,omitempty"`
	BestPracticesScore *int           `json:"best_practices_score,omitempty"`
	CoreWebVitals      CoreWebVitals  `json:"core_web_vitals"`
	Opportunities      []Opportunity  `json:"opportunities"`
	Diagnostics        []Diagnostic   `json:"diagnostics"`
	PageSnapshot       *PageSnapshot  `json:"page_snapshot,omitempty"`
	Metadata           map[string]any `json:"metadata"`
	Recommendations    []string       `json:"recommendations"`
	DemoMode           bool           `json:"demo_mode,omitempty"`
}

// --- Search visibility (Search Console / Bing Webmaster) ---

type IndexStatus struct {
	TotalPages      int  `json:"total_pages"`
	IndexedPages    int  `json:"indexed_pages"`
	NotIndexedPages int  `json:"not_indexed_pages"`
	PendingPages    *int `json:"pending_pages,omitempty"`
	Errors          *int `json:"errors,omitempty"`
	Warnings        *int `json:"warnings,omitempty"`
}

type SearchPerformance struct {
	Query       string  `json:"query"`
	Clicks      int     `json:"clicks"`
	Impressions int     `json:"impressions"`
	CTR         float64 `json:"ctr"`
	Position    float64 `json:"position"`
}

type SitemapStatus struct {
	Path            string `json:"path"`
	LastSubmitted   string `json:"last_submitted,omitempty"`
	LastDownloaded  string `json:"last_downloaded,omitempty"`
	Warnings        int    `json:"warnings"`
	Errors          int    `json:"errors"`
	IsPending       bool   `json:"is_pending"`
	IsSitemapsIndex bool   `json:"is_sitemaps_index"`
}

type SearchVisibilityData struct {
	URL               string              `json:"url"`
	GoogleData        map[string]any      `json:"google_data,omitempty"`
	BingData          map[string]any      `json:"bing_data,omitempty"`
	IndexStatus       *IndexStatus        `json:"index_status,omitempty"`
	SearchPerformance []SearchPerformance `json:"search_performance"`
	Sitemaps          []SitemapStatus     `json:"sitemaps"`
	Recommendations   []string            `json:"recommendations"`
	DemoMode          bool                `json:"demo_mode,omitempty"`
}

// --- GEO (brand mentions inside generative AI responses) ---

type BrandMention struct {
	Platform             string   `json:"platform"`
	Query                string   `json:"query"`
	Mentioned            bool     `json:"mentioned"`
	Context              string   `json:"context,omitempty"`
	Sentiment            string   `json:"sentiment,omitempty"`
	Rank                 *int     `json:"rank,omitempty"`
	CompetitorsMentioned []string `json:"competitors_mentioned,omitempty"`
}

type GEOSummary struct {
	TotalChecks        int            `json:"total_checks"`
	MentionsFound      int            `json:"mentions_found"`
	MentionRate        float64        `json:"mention_rate"`
	SentimentBreakdown map[string]int `json:"sentiment_breakdown"`
	AverageRank        *float64       `json:"average_rank,omitempty"`
}

type GEOData struct {
	Domain          string                       `json:"domain"`
	Keywords        []string                     `json:"keywords"`
	Mentions        []BrandMention               `json:"mentions"`
	Summary         GEOSummary                   `json:"summary"`
	Recommendations []string                     `json:"recommendations"`
	RawResponses    map[string]map[string]string `json:"raw_responses,omitempty"`
	DemoMode        bool                         `json:"demo_mode,omitempty"`
}

// --- Traffic estimation ---

type TrafficMetrics struct {
	MonthlyVisits    int      `json:"monthly_visits"`
	MonthlyVisitsMin int      `json:"monthly_visits_min"`
	MonthlyVisitsMax int      `json:"monthly_visits_max"`
	AvgVisitDuration string   `json:"avg_visit_duration,omitempty"`
	PagesPerVisit    *float64 `json:"pages_per_visit,omitempty"`
	BounceRate       *float64 `json:"bounce_rate,omitempty"`
}

type TrafficSource struct {
	Source          string  `json:"source"`
	Percentage      float64 `json:"percentage"`
	EstimatedVisits int     `json:"estimated_visits"`
}

type CountrySource struct {
	Country         string  `json:"country"`
	CountryCode     string  `json:"country_code"`
	Percentage      float64 `json:"percentage"`
	EstimatedVisits int     `json:"estimated_visits"`
}

type TopKeyword struct {
	Keyword  string   `json:"keyword"`
	Position *int     `json:"position,omitempty"`
	Volume   *int     `json:"volume,omitempty"`
	CPC      *float64 `json:"cpc,omitempty"`
}

type TrafficData struct {
	URL             string          `json:"url"`
	Disclaimer      string          `json:"disclaimer"`
	Metrics         TrafficMetrics  `json:"metrics"`
	TrafficSources  []TrafficSource `json:"traffic_sources"`
	TopCountries    []CountrySource `json:"top_countries"`
	TopKeywords     []TopKeyword    `json:"top_keywords"`
	GrowthTrend     string          `json:"growth_trend,omitempty"`
	ConfidenceLevel string          `json:"confidence_level"`
	Recommendations []string        `json:"recommendations"`
}

// --- Reporting ---

// ReportRequest carries collected module payloads into report generation.
// Only populated sections listed in IncludeSections are rendered.
type ReportRequest struct {
	URL             string                `json:"url"`
	SEOData         *SEOHealthData        `json:"seo_data,omitempty"`
	SearchData      *SearchVisibilityData `json:"search_data,omitempty"`
	GEOData         *GEOData              `json:"geo_data,omitempty"`
	TrafficData     *TrafficData          `json:"traffic_data,omitempty"`
	IncludeSections []string              `json:"include_sections"`
	CompanyName     string                `json:"company_name,omitempty"`
}

// HasSection reports whether a section id was requested.
func (r ReportRequest) HasSection(id string) bool {
	for _, s := range r.IncludeSections {
		if s == id {
			return true
		}
	}
	return false
}
