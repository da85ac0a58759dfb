package traffic

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"siteaudit/internal/domain"
)

func TestAnalyzeDeterministicPerDomain(t *testing.T) {
	svc := New(zerolog.Nop())

	first, err := svc.Analyze(context.Background(), domain.AuditRequest{Target: "example.com"})
	require.NoError(t, err)
	second, err := svc.Analyze(context.Background(), domain.AuditRequest{Target: "https://www.example.com/"})
	require.NoError(t, err)

	// Same bare domain, same estimate regardless of URL spelling.
	assert.Equal(t, first.Traffic.Metrics, second.Traffic.Metrics)
	assert.Equal(t, first.Traffic.TopKeywords, second.Traffic.TopKeywords)
	assert.Equal(t, first.Traffic.GrowthTrend, second.Traffic.GrowthTrend)
}

func TestAnalyzeDifferentDomainsDiffer(t *testing.T) {
	svc := New(zerolog.Nop())

	a, err := svc.Analyze(context.Background(), domain.AuditRequest{Target: "alpha-site.com"})
	require.NoError(t, err)
	b, err := svc.Analyze(context.Background(), domain.AuditRequest{Target: "omega-venture.org"})
	require.NoError(t, err)

	assert.NotEqual(t, a.Traffic.Metrics.MonthlyVisits, b.Traffic.Metrics.MonthlyVisits)
}

func TestAnalyzeMetricsBounds(t *testing.T) {
	svc := New(zerolog.Nop())

	result, err := svc.Analyze(context.Background(), domain.AuditRequest{Target: "some-company.com"})
	require.NoError(t, err)
	m := result.Traffic.Metrics

	assert.Greater(t, m.MonthlyVisits, 0)
	assert.LessOrEqual(t, m.MonthlyVisitsMin, m.MonthlyVisits)
	assert.GreaterOrEqual(t, m.MonthlyVisitsMax, m.MonthlyVisits)
	require.NotNil(t, m.PagesPerVisit)
	assert.GreaterOrEqual(t, *m.PagesPerVisit, 1.5)
	assert.LessOrEqual(t, *m.PagesPerVisit, 5.5)
	require.NotNil(t, m.BounceRate)
	assert.GreaterOrEqual(t, *m.BounceRate, 0.35)
	assert.LessOrEqual(t, *m.BounceRate, 0.75)
	assert.NotEmpty(t, m.AvgVisitDuration)
}

func TestAnalyzeSourcesSumToTotal(t *testing.T) {
	svc := New(zerolog.Nop())

	result, err := svc.Analyze(context.Background(), domain.AuditRequest{Target: "example.com"})
	require.NoError(t, err)

	sources := result.Traffic.TrafficSources
	require.Len(t, sources, 6)

	var pct float64
	for _, src := range sources {
		assert.Greater(t, src.Percentage, 0.0, src.Source)
		pct += src.Percentage
	}
	assert.InDelta(t, 100.0, pct, 0.5)
}

func TestAnalyzeCountriesFixedShares(t *testing.T) {
	svc := New(zerolog.Nop())

	result, err := svc.Analyze(context.Background(), domain.AuditRequest{Target: "example.com"})
	require.NoError(t, err)

	countries := result.Traffic.TopCountries
	require.Len(t, countries, 10)
	assert.Equal(t, "United States", countries[0].Country)
	assert.InDelta(t, 35.0, countries[0].Percentage, 1e-9)
	assert.Equal(t, "OT", countries[9].CountryCode)
}

func TestAnalyzeKeywordsUseDomainLabel(t *testing.T) {
	svc := New(zerolog.Nop())

	result, err := svc.Analyze(context.Background(), domain.AuditRequest{Target: "acme.io"})
	require.NoError(t, err)

	keywords := result.Traffic.TopKeywords
	require.Len(t, keywords, 8)
	assert.Equal(t, "acme", keywords[0].Keyword)
	assert.Equal(t, "acme login", keywords[1].Keyword)
	for _, kw := range keywords {
		require.NotNil(t, kw.Position)
		assert.GreaterOrEqual(t, *kw.Position, 1)
		require.NotNil(t, kw.Volume)
		assert.Greater(t, *kw.Volume, 0)
	}
}

func TestAnalyzeCarriesDisclaimerAndRecommendations(t *testing.T) {
	svc := New(zerolog.Nop())

	result, err := svc.Analyze(context.Background(), domain.AuditRequest{Target: "example.com"})
	require.NoError(t, err)

	assert.Contains(t, result.Traffic.Disclaimer, "estimates")
	assert.NotEmpty(t, result.Traffic.Recommendations)
	assert.Contains(t, []string{"high", "medium", "low"}, result.Traffic.ConfidenceLevel)
}

func TestAnalyzeCancelledContext(t *testing.T) {
	svc := New(zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := svc.Analyze(ctx, domain.AuditRequest{Target: "example.com"})

	assert.ErrorIs(t, err, context.Canceled)
}
