package geo

import (
	"regexp"
	"strings"
)

// Heuristic extraction of mention signals from free-text AI answers.

var positiveWords = []string{"best", "excellent", "great", "amazing", "top", "leading", "recommended", "popular", "trusted"}
var negativeWords = []string{"worst", "bad", "poor", "terrible", "avoid", "issues", "problems", "scam", "unreliable"}

// extractSentiment classifies the tone around the brand mention by counting
// sentiment words inside a ±100 character window.
func extractSentiment(text, brand string) string {
	textLower := strings.ToLower(text)
	brandLower := strings.ToLower(brand)

	pos := strings.Index(textLower, brandLower)
	if pos < 0 {
		return "neutral"
	}
	start := pos - 100
	if start < 0 {
		start = 0
	}
	end := pos + len(brand) + 100
	if end > len(textLower) {
		end = len(textLower)
	}
	window := textLower[start:end]

	var posCount, negCount int
	for _, w := range positiveWords {
		if strings.Contains(window, w) {
			posCount++
		}
	}
	for _, w := range negativeWords {
		if strings.Contains(window, w) {
			negCount++
		}
	}
	switch {
	case posCount > negCount:
		return "positive"
	case negCount > posCount:
		return "negative"
	default:
		return "neutral"
	}
}

var rankLineRe = regexp.MustCompile(`^\s*(\d+)\s*[.\-)]\s*`)

// extractRank returns the brand's position inside list-style answers: the
// leading list number when present, otherwise the line index.
func extractRank(text, brand string) *int {
	brandLower := strings.ToLower(brand)
	for i, line := range strings.Split(text, "\n") {
		if !strings.Contains(strings.ToLower(line), brandLower) {
			continue
		}
		if m := rankLineRe.FindStringSubmatch(line); m != nil {
			if n := atoiSafe(m[1]); n > 0 {
				return &n
			}
		}
		n := i + 1
		return &n
	}
	return nil
}

var competitorPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:competitors?|alternatives?|similar|like|vs|versus)\s+(?:include|are|:)\s+([^.]+)`),
	regexp.MustCompile(`(?:other|top)\s+(?:popular\s+)?(?:options?|tools?|platforms?)\s+(?:include|:)\s+([^.]+)`),
}

var competitorSplitRe = regexp.MustCompile(`,|\band\b|\bor\b`)

// extractCompetitors pulls competitor names out of "competitors include ..."
// style sentences. Returns at most five unique entries.
func extractCompetitors(text, brand string) []string {
	textLower := strings.ToLower(text)
	brandLower := strings.ToLower(brand)

	seen := map[string]bool{}
	var out []string
	for _, re := range competitorPatterns {
		for _, m := range re.FindAllStringSubmatch(textLower, -1) {
			for _, item := range competitorSplitRe.Split(m[1], -1) {
				item = strings.TrimSpace(item)
				if item == "" || len(item) <= 2 || strings.Contains(item, brandLower) {
					continue
				}
				if !seen[item] {
					seen[item] = true
					out = append(out, item)
				}
			}
		}
	}
	if len(out) > 5 {
		out = out[:5]
	}
	return out
}

func atoiSafe(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
	}
	return n
}
