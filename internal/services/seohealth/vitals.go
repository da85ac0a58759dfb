package seohealth

import (
	"math"

	"siteaudit/internal/domain"
)

// Core Web Vitals category thresholds. A metric at or below the first bound
// is "good", at or below the second "needs_improvement", otherwise "poor".
var vitalThresholds = map[string][2]float64{
	"lcp":  {2.5, 4.0},
	"fid":  {100, 300},
	"cls":  {0.1, 0.25},
	"fcp":  {1.8, 3.0},
	"ttfb": {0.8, 1.8},
}

func categorize(value float64, metric string) string {
	t, ok := vitalThresholds[metric]
	if !ok {
		return "unknown"
	}
	switch {
	case value <= t[0]:
		return "good"
	case value <= t[1]:
		return "needs_improvement"
	default:
		return "poor"
	}
}

// extractVitals pulls Core Web Vitals out of the Lighthouse audits. FID is
// estimated from total blocking time; durations come in milliseconds and are
// reported in seconds.
func extractVitals(audits map[string]audit) domain.CoreWebVitals {
	var cwv domain.CoreWebVitals

	if v, ok := numeric(audits, "largest-contentful-paint"); ok {
		lcp := round3(v / 1000)
		cwv.LCP = &lcp
		cwv.LCPCategory = categorize(lcp, "lcp")
	}
	if v, ok := numeric(audits, "total-blocking-time"); ok {
		fid := round3(v / 1000 * 0.1)
		cwv.FID = &fid
		cwv.FIDCategory = categorize(fid, "fid")
	}
	if v, ok := numeric(audits, "cumulative-layout-shift"); ok {
		cls := round3(v)
		cwv.CLS = &cls
		cwv.CLSCategory = categorize(cls, "cls")
	}
	if v, ok := numeric(audits, "first-contentful-paint"); ok {
		fcp := round3(v / 1000)
		cwv.FCP = &fcp
		cwv.FCPCategory = categorize(fcp, "fcp")
	}
	if v, ok := numeric(audits, "server-response-time"); ok {
		ttfb := round3(v / 1000)
		cwv.TTFB = &ttfb
		cwv.TTFBCategory = categorize(ttfb, "ttfb")
	}
	return cwv
}

func numeric(audits map[string]audit, id string) (float64, bool) {
	a, ok := audits[id]
	if !ok || a.NumericValue == nil {
		return 0, false
	}
	return *a.NumericValue, true
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
