// Package report renders collected audit payloads into a PDF document.
package report

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/rs/zerolog"

	"siteaudit/internal/domain"
)

const maxSectionRecommendations = 5

// PDFGenerator builds audit reports with the letter page layout the
// dashboard's download button expects.
type PDFGenerator struct {
	log zerolog.Logger
	now func() time.Time
}

func NewPDFGenerator(log zerolog.Logger) *PDFGenerator {
	return &PDFGenerator{
		log: log.With().Str("component", "report").Logger(),
		now: time.Now,
	}
}

// Generate renders the requested sections into a single PDF and returns its
// bytes. Sections whose payload is absent are skipped even when requested.
func (g *PDFGenerator) Generate(ctx context.Context, req domain.ReportRequest) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc := fpdf.New("P", "mm", "Letter", "")
	doc.SetMargins(25, 25, 25)
	doc.SetAutoPageBreak(true, 20)

	g.titlePage(doc, req)
	g.executiveSummary(doc, req)

	section := 0
	if req.HasSection("seo") && req.SEOData != nil {
		section++
		g.seoSection(doc, section, req.SEOData)
	}
	if req.HasSection("search") && req.SearchData != nil {
		section++
		g.searchSection(doc, section, req.SearchData)
	}
	if req.HasSection("geo") && req.GEOData != nil {
		section++
		g.geoSection(doc, section, req.GEOData)
	}
	if req.HasSection("traffic") && req.TrafficData != nil {
		section++
		g.trafficSection(doc, section, req.TrafficData)
	}

	g.footer(doc)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	g.log.Debug().Str("url", req.URL).Int("bytes", buf.Len()).Int("sections", section).Msg("report rendered")
	return buf.Bytes(), nil
}

func (g *PDFGenerator) titlePage(doc *fpdf.Fpdf, req domain.ReportRequest) {
	doc.AddPage()
	doc.Ln(50)
	doc.SetFont("Helvetica", "B", 24)
	doc.SetTextColor(0x1a, 0x36, 0x5d)
	doc.CellFormat(0, 12, "SEO Audit Report", "", 1, "C", false, 0, "")
	doc.Ln(8)

	doc.SetFont("Helvetica", "", 14)
	doc.SetTextColor(0x4a, 0x55, 0x68)
	doc.CellFormat(0, 8, clean("Website: "+req.URL), "", 1, "C", false, 0, "")
	doc.Ln(4)
	doc.CellFormat(0, 8, g.now().Format("Generated: January 2, 2006 at 15:04"), "", 1, "C", false, 0, "")

	if req.CompanyName != "" {
		doc.Ln(10)
		doc.CellFormat(0, 8, clean("Prepared for: "+req.CompanyName), "", 1, "C", false, 0, "")
	}
}

func (g *PDFGenerator) executiveSummary(doc *fpdf.Fpdf, req domain.ReportRequest) {
	doc.AddPage()
	heading(doc, "Executive Summary")

	body(doc, fmt.Sprintf("This audit report provides a detailed analysis of %s. "+
		"It covers four areas: SEO Health, Search Visibility, Generative Engine Optimization (GEO) "+
		"and Traffic Estimation. Each section includes actionable recommendations to improve your online presence.", req.URL))
	doc.Ln(6)

	if req.SEOData == nil {
		return
	}
	subheading(doc, "Key Metrics Overview")

	rows := [][]string{}
	addScore := func(name string, score *int) {
		if score == nil {
			return
		}
		rows = append(rows, []string{name, fmt.Sprintf("%d/100", *score), scoreStatus(*score)})
	}
	addScore("Performance", req.SEOData.PerformanceScore)
	addScore("SEO", req.SEOData.SEOScore)
	addScore("Accessibility", req.SEOData.AccessibilityScore)
	if req.TrafficData != nil {
		rows = append(rows, []string{"Est. Monthly Visits", formatInt(req.TrafficData.Metrics.MonthlyVisits), "Estimated"})
	}
	table(doc, []string{"Metric", "Score", "Status"}, []float64{65, 40, 60}, rows)
}

func (g *PDFGenerator) seoSection(doc *fpdf.Fpdf, n int, seo *domain.SEOHealthData) {
	doc.AddPage()
	heading(doc, fmt.Sprintf("%d. SEO Health Analysis", n))

	subheading(doc, "Performance Scores")
	rows := [][]string{}
	addScore := func(name string, score *int) {
		if score == nil {
			return
		}
		rows = append(rows, []string{name, fmt.Sprintf("%d/100", *score), scoreRating(*score)})
	}
	addScore("Performance", seo.PerformanceScore)
	addScore("SEO", seo.SEOScore)
	addScore("Accessibility", seo.AccessibilityScore)
	addScore("Best Practices", seo.BestPracticesScore)
	table(doc, []string{"Category", "Score", "Rating"}, []float64{55, 40, 70}, rows)
	doc.Ln(6)

	subheading(doc, "Core Web Vitals")
	cwv := seo.CoreWebVitals
	vitals := [][]string{}
	addVital := func(name string, value *float64, target, category string) {
		if value == nil {
			return
		}
		vitals = append(vitals, []string{name, fmt.Sprintf("%v", *value), target, vitalStatus(category)})
	}
	addVital("LCP (Largest Contentful Paint)", cwv.LCP, "< 2.5s", cwv.LCPCategory)
	addVital("FID (First Input Delay)", cwv.FID, "< 100ms", cwv.FIDCategory)
	addVital("CLS (Cumulative Layout Shift)", cwv.CLS, "< 0.1", cwv.CLSCategory)
	addVital("FCP (First Contentful Paint)", cwv.FCP, "< 1.8s", cwv.FCPCategory)
	addVital("TTFB (Time to First Byte)", cwv.TTFB, "< 0.8s", cwv.TTFBCategory)
	table(doc, []string{"Metric", "Value", "Target", "Status"}, []float64{70, 30, 30, 35}, vitals)
	doc.Ln(6)

	recommendations(doc, "SEO Recommendations", seo.Recommendations)
}

func (g *PDFGenerator) searchSection(doc *fpdf.Fpdf, n int, search *domain.SearchVisibilityData) {
	doc.AddPage()
	heading(doc, fmt.Sprintf("%d. Search Visibility Analysis", n))

	if idx := search.IndexStatus; idx != nil {
		subheading(doc, "Index Status")
		rows := [][]string{
			{"Total Pages", formatInt(idx.TotalPages)},
			{"Indexed Pages", formatInt(idx.IndexedPages)},
			{"Not Indexed", formatInt(idx.NotIndexedPages)},
		}
		if idx.PendingPages != nil {
			rows = append(rows, []string{"Pending", formatInt(*idx.PendingPages)})
		}
		if idx.Errors != nil {
			rows = append(rows, []string{"Errors", formatInt(*idx.Errors)})
		}
		if idx.Warnings != nil {
			rows = append(rows, []string{"Warnings", formatInt(*idx.Warnings)})
		}
		table(doc, []string{"Metric", "Value"}, []float64{80, 80}, rows)
		doc.Ln(6)
	}

	if len(search.SearchPerformance) > 0 {
		subheading(doc, "Top Search Queries")
		rows := [][]string{}
		for i, perf := range search.SearchPerformance {
			if i == 5 {
				break
			}
			rows = append(rows, []string{
				perf.Query,
				formatInt(perf.Clicks),
				formatInt(perf.Impressions),
				fmt.Sprintf("%.2f%%", perf.CTR*100),
				fmt.Sprintf("%.1f", perf.Position),
			})
		}
		table(doc, []string{"Query", "Clicks", "Impressions", "CTR", "Position"}, []float64{60, 22, 32, 24, 24}, rows)
		doc.Ln(6)
	}

	recommendations(doc, "Search Visibility Recommendations", search.Recommendations)
}

func (g *PDFGenerator) geoSection(doc *fpdf.Fpdf, n int, geo *domain.GEOData) {
	doc.AddPage()
	heading(doc, fmt.Sprintf("%d. Generative Engine Optimization (GEO)", n))

	subheading(doc, "AI Visibility Summary")
	sum := geo.Summary
	avgRank := "N/A"
	if sum.AverageRank != nil {
		avgRank = fmt.Sprintf("%.1f", *sum.AverageRank)
	}
	body(doc, fmt.Sprintf("Total Checks: %d", sum.TotalChecks))
	body(doc, fmt.Sprintf("Mentions Found: %d", sum.MentionsFound))
	body(doc, fmt.Sprintf("Mention Rate: %.1f%%", sum.MentionRate*100))
	body(doc, "Average Rank: "+avgRank)
	doc.Ln(4)

	if len(sum.SentimentBreakdown) > 0 {
		subheading(doc, "Sentiment Analysis")
		for _, kind := range []string{"positive", "neutral", "negative"} {
			if count := sum.SentimentBreakdown[kind]; count > 0 {
				body(doc, fmt.Sprintf("%s: %d", capitalize(kind), count))
			}
		}
		doc.Ln(4)
	}

	recommendations(doc, "GEO Recommendations", geo.Recommendations)
}

func (g *PDFGenerator) trafficSection(doc *fpdf.Fpdf, n int, traffic *domain.TrafficData) {
	doc.AddPage()
	heading(doc, fmt.Sprintf("%d. Traffic Estimation", n))

	subheading(doc, "Traffic Metrics")
	m := traffic.Metrics
	body(doc, fmt.Sprintf("Estimated Monthly Visits: %s (Range: %s - %s)",
		formatInt(m.MonthlyVisits), formatInt(m.MonthlyVisitsMin), formatInt(m.MonthlyVisitsMax)))
	if m.AvgVisitDuration != "" {
		body(doc, "Average Visit Duration: "+m.AvgVisitDuration)
	}
	if m.PagesPerVisit != nil {
		body(doc, fmt.Sprintf("Pages per Visit: %.2f", *m.PagesPerVisit))
	}
	if m.BounceRate != nil {
		body(doc, fmt.Sprintf("Bounce Rate: %.1f%%", *m.BounceRate*100))
	}
	body(doc, "Confidence Level: "+capitalize(traffic.ConfidenceLevel))
	if traffic.GrowthTrend != "" {
		body(doc, "Growth Trend: "+capitalize(traffic.GrowthTrend))
	}
	doc.Ln(4)

	if len(traffic.TrafficSources) > 0 {
		subheading(doc, "Traffic Sources")
		rows := [][]string{}
		for _, src := range traffic.TrafficSources {
			rows = append(rows, []string{src.Source, fmt.Sprintf("%.1f%%", src.Percentage), formatInt(src.EstimatedVisits)})
		}
		table(doc, []string{"Source", "Percentage", "Est. Visits"}, []float64{65, 40, 55}, rows)
		doc.Ln(6)
	}

	if len(traffic.TopKeywords) > 0 {
		subheading(doc, "Top Keywords")
		rows := [][]string{}
		for i, kw := range traffic.TopKeywords {
			if i == 5 {
				break
			}
			pos, vol, cpc := "N/A", "N/A", "N/A"
			if kw.Position != nil {
				pos = formatInt(*kw.Position)
			}
			if kw.Volume != nil {
				vol = formatInt(*kw.Volume)
			}
			if kw.CPC != nil {
				cpc = fmt.Sprintf("$%.2f", *kw.CPC)
			}
			rows = append(rows, []string{kw.Keyword, pos, vol, cpc})
		}
		table(doc, []string{"Keyword", "Position", "Volume", "CPC"}, []float64{75, 28, 28, 28}, rows)
		doc.Ln(6)
	}

	recommendations(doc, "Traffic Recommendations", traffic.Recommendations)
}

func (g *PDFGenerator) footer(doc *fpdf.Fpdf) {
	doc.Ln(10)
	doc.SetFont("Helvetica", "I", 8)
	doc.SetTextColor(0x80, 0x80, 0x80)
	doc.MultiCell(0, 4, "This report was generated automatically by the SEO Audit Tool. "+
		"Traffic estimates and AI visibility data are approximations and should be used for guidance only. "+
		"For exact figures, please consult your analytics platforms.", "", "C", false)
}

// --- drawing helpers ---

func heading(doc *fpdf.Fpdf, text string) {
	doc.SetFont("Helvetica", "B", 16)
	doc.SetTextColor(0x2d, 0x37, 0x48)
	doc.CellFormat(0, 10, clean(text), "", 1, "L", false, 0, "")
	doc.Ln(3)
}

func subheading(doc *fpdf.Fpdf, text string) {
	doc.SetFont("Helvetica", "B", 13)
	doc.SetTextColor(0x4a, 0x55, 0x68)
	doc.CellFormat(0, 8, clean(text), "", 1, "L", false, 0, "")
	doc.Ln(1)
}

func body(doc *fpdf.Fpdf, text string) {
	doc.SetFont("Helvetica", "", 10)
	doc.SetTextColor(0x2d, 0x37, 0x48)
	doc.MultiCell(0, 5, clean(text), "", "L", false)
}

func recommendations(doc *fpdf.Fpdf, title string, recs []string) {
	if len(recs) == 0 {
		return
	}
	subheading(doc, title)
	for i, rec := range recs {
		if i == maxSectionRecommendations {
			break
		}
		body(doc, "- "+rec)
	}
}

func table(doc *fpdf.Fpdf, headers []string, widths []float64, rows [][]string) {
	doc.SetFont("Helvetica", "B", 10)
	doc.SetFillColor(0x2d, 0x37, 0x48)
	doc.SetTextColor(0xff, 0xff, 0xff)
	for i, h := range headers {
		doc.CellFormat(widths[i], 8, clean(h), "1", 0, "C", true, 0, "")
	}
	doc.Ln(-1)

	doc.SetFont("Helvetica", "", 9)
	doc.SetTextColor(0x2d, 0x37, 0x48)
	for r, row := range rows {
		if r%2 == 0 {
			doc.SetFillColor(0xf7, 0xfa, 0xfc)
		} else {
			doc.SetFillColor(0xff, 0xff, 0xff)
		}
		for i, cell := range row {
			doc.CellFormat(widths[i], 7, clean(cell), "1", 0, "C", true, 0, "")
		}
		doc.Ln(-1)
	}
}

func scoreStatus(score int) string {
	switch {
	case score >= 90:
		return "Good"
	case score >= 50:
		return "Needs Improvement"
	default:
		return "Poor"
	}
}

func scoreRating(score int) string {
	switch {
	case score >= 90:
		return "Excellent"
	case score >= 70:
		return "Good"
	case score >= 50:
		return "Needs Work"
	default:
		return "Poor"
	}
}

func vitalStatus(category string) string {
	switch category {
	case "good":
		return "OK"
	case "needs_improvement":
		return "Warn"
	default:
		return "Poor"
	}
}

func capitalize(s string) string {
	if s == "" {
		return "N/A"
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func formatInt(n int) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	return string(out)
}

// clean drops runes outside Latin-1 since the built-in PDF fonts cannot
// render them; recommendation strings may carry emoji markers.
func clean(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r <= 0xFF {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
