package demo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"siteaudit/internal/domain"
)

func TestSEOHealthDeterministic(t *testing.T) {
	client := SEOHealth{}

	first, err := client.Analyze(context.Background(), domain.AuditRequest{Target: "example.com"})
	require.NoError(t, err)
	second, err := client.Analyze(context.Background(), domain.AuditRequest{Target: "example.com"})
	require.NoError(t, err)

	assert.Equal(t, first.SEO.PerformanceScore, second.SEO.PerformanceScore)
	assert.Equal(t, first.SEO.CoreWebVitals, second.SEO.CoreWebVitals)
}

func TestSEOHealthScoresInRange(t *testing.T) {
	client := SEOHealth{}

	result, err := client.Analyze(context.Background(), domain.AuditRequest{Target: "some-other-site.org"})
	require.NoError(t, err)
	data := result.SEO

	require.NotNil(t, data.PerformanceScore)
	assert.GreaterOrEqual(t, *data.PerformanceScore, 60)
	assert.LessOrEqual(t, *data.PerformanceScore, 95)
	require.NotNil(t, data.SEOScore)
	assert.GreaterOrEqual(t, *data.SEOScore, 70)
	assert.LessOrEqual(t, *data.SEOScore, 95)

	assert.True(t, data.DemoMode)
	assert.Equal(t, true, data.Metadata["demo_mode"])
	assert.NotEmpty(t, data.Recommendations)
	assert.Equal(t, "mobile", data.Strategy)
}

func TestSEOHealthCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := SEOHealth{}.Analyze(ctx, domain.AuditRequest{Target: "example.com"})
	assert.ErrorIs(t, err, context.Canceled)
}
