package report

// SectionDescriptor describes one renderable report section for clients
// building a section picker.
type SectionDescriptor struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Template holds the full report structure.
type Template struct {
	Sections []SectionDescriptor `json:"sections"`
}

// DefaultTemplate lists the sections a full report contains, in render order.
func DefaultTemplate() Template {
	return Template{Sections: []SectionDescriptor{
		{ID: "executive_summary", Title: "Executive Summary", Description: "Overview of all audit findings"},
		{ID: "seo_health", Title: "SEO Health Analysis", Description: "Technical and on-page SEO factors"},
		{ID: "search_visibility", Title: "Search Visibility", Description: "Google and Bing indexing status"},
		{ID: "geo", Title: "Generative Engine Optimization", Description: "AI chatbot visibility analysis"},
		{ID: "traffic", Title: "Traffic Estimation", Description: "Estimated website traffic overview"},
	}}
}
