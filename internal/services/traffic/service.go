// Package traffic estimates website traffic from domain characteristics.
// There is no free upstream for traffic data, so the figures come from a
// deterministic estimator seeded by the domain: the same domain always
// yields the same estimate.
package traffic

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"math/rand"
	"strings"

	"github.com/rs/zerolog"

	"siteaudit/internal/domain"
	"siteaudit/internal/ports"
)

const disclaimer = "These figures are estimates based on available data and algorithms. " +
	"They should not be considered as exact figures. Use official analytics tools for accurate measurements."

// Service is the traffic module client.
type Service struct {
	log zerolog.Logger
}

var _ ports.ModuleClient = (*Service)(nil)

func New(log zerolog.Logger) *Service {
	return &Service{log: log.With().Str("module", string(domain.ModuleTraffic)).Logger()}
}

func (s *Service) Module() domain.ModuleKind { return domain.ModuleTraffic }

func (s *Service) Analyze(ctx context.Context, req domain.AuditRequest) (domain.ModuleResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.ModuleResult{}, err
	}

	target := domain.NormalizeTarget(req.Target)
	host := domain.BareDomain(target)

	rng := rand.New(rand.NewSource(seed(host)))

	metrics := estimateMetrics(rng, host)
	data := &domain.TrafficData{
		URL:             target,
		Disclaimer:      disclaimer,
		Metrics:         metrics,
		TrafficSources:  estimateSources(rng, metrics.MonthlyVisits),
		TopCountries:    estimateCountries(metrics.MonthlyVisits),
		TopKeywords:     estimateKeywords(rng, host),
		GrowthTrend:     pickWeighted(rng, growthTrends),
		ConfidenceLevel: pickWeighted(rng, confidenceLevels),
	}
	data.Recommendations = recommend(data)

	s.log.Debug().Str("domain", host).Int("monthly_visits", metrics.MonthlyVisits).Msg("traffic estimated")
	return domain.ModuleResult{Module: domain.ModuleTraffic, Traffic: data}, nil
}

func seed(host string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(host))
	return int64(h.Sum64())
}

func estimateMetrics(rng *rand.Rand, host string) domain.TrafficMetrics {
	base := float64(10000 + rng.Intn(490001))
	if strings.Contains(host, ".gov") || strings.Contains(host, ".edu") {
		base *= 2
	}
	if len(host) < 10 {
		base *= 1.5
	}

	visits := int(base)
	pages := round2(1.5 + rng.Float64()*4.0)
	bounce := round2(0.35 + rng.Float64()*0.40)
	return domain.TrafficMetrics{
		MonthlyVisits:    visits,
		MonthlyVisitsMin: int(base * 0.7),
		MonthlyVisitsMax: int(base * 1.3),
		AvgVisitDuration: fmt.Sprintf("%dm %ds", 2+rng.Intn(7), rng.Intn(60)),
		PagesPerVisit:    &pages,
		BounceRate:       &bounce,
	}
}

func estimateSources(rng *rand.Rand, totalVisits int) []domain.TrafficSource {
	raw := []struct {
		name     string
		fraction float64
	}{
		{"Organic Search", 0.35 + rng.Float64()*0.25},
		{"Direct", 0.15 + rng.Float64()*0.20},
		{"Referral", 0.05 + rng.Float64()*0.15},
		{"Social Media", 0.03 + rng.Float64()*0.12},
		{"Paid Search", rng.Float64() * 0.15},
		{"Email", 0.01 + rng.Float64()*0.07},
	}

	var total float64
	for _, s := range raw {
		total += s.fraction
	}

	out := make([]domain.TrafficSource, 0, len(raw))
	for _, s := range raw {
		pct := s.fraction / total
		out = append(out, domain.TrafficSource{
			Source:          s.name,
			Percentage:      round1(pct * 100),
			EstimatedVisits: int(float64(totalVisits) * pct),
		})
	}
	return out
}

var countryShares = []struct {
	name, code string
	fraction   float64
}{
	{"United States", "US", 0.35},
	{"United Kingdom", "GB", 0.12},
	{"Canada", "CA", 0.08},
	{"Germany", "DE", 0.07},
	{"France", "FR", 0.06},
	{"India", "IN", 0.05},
	{"Australia", "AU", 0.05},
	{"Brazil", "BR", 0.04},
	{"Japan", "JP", 0.04},
	{"Other", "OT", 0.14},
}

func estimateCountries(totalVisits int) []domain.CountrySource {
	out := make([]domain.CountrySource, 0, len(countryShares))
	for _, c := range countryShares {
		out = append(out, domain.CountrySource{
			Country:         c.name,
			CountryCode:     c.code,
			Percentage:      round1(c.fraction * 100),
			EstimatedVisits: int(float64(totalVisits) * c.fraction),
		})
	}
	return out
}

func estimateKeywords(rng *rand.Rand, host string) []domain.TopKeyword {
	label := host
	if i := strings.IndexByte(label, '.'); i > 0 {
		label = label[:i]
	}

	shapes := []struct {
		keyword      string
		posLo, posHi int
		volLo, volHi int
	}{
		{label, 1, 3, 5000, 50000},
		{label + " login", 1, 5, 2000, 20000},
		{label + " reviews", 2, 8, 1000, 15000},
		{label + " pricing", 2, 10, 800, 12000},
		{"best " + label + " alternative", 3, 15, 500, 8000},
		{label + " vs competitor", 4, 20, 300, 6000},
		{label + " tutorial", 3, 12, 400, 7000},
		{label + " api", 5, 25, 200, 5000},
	}

	out := make([]domain.TopKeyword, 0, len(shapes))
	for _, sh := range shapes {
		pos := sh.posLo + rng.Intn(sh.posHi-sh.posLo+1)
		vol := sh.volLo + rng.Intn(sh.volHi-sh.volLo+1)
		cpc := round2(0.5 + rng.Float64()*14.5)
		out = append(out, domain.TopKeyword{Keyword: sh.keyword, Position: &pos, Volume: &vol, CPC: &cpc})
	}
	return out
}

type weightedChoice struct {
	value  string
	weight float64
}

var growthTrends = []weightedChoice{
	{"increasing", 0.4},
	{"stable", 0.3},
	{"slight_decrease", 0.15},
	{"fluctuating", 0.15},
}

var confidenceLevels = []weightedChoice{
	{"high", 0.3},
	{"medium", 0.5},
	{"low", 0.2},
}

func pickWeighted(rng *rand.Rand, choices []weightedChoice) string {
	var total float64
	for _, c := range choices {
		total += c.weight
	}
	r := rng.Float64() * total
	for _, c := range choices {
		if r < c.weight {
			return c.value
		}
		r -= c.weight
	}
	return choices[len(choices)-1].value
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
