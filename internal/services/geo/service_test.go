package geo

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"siteaudit/internal/apperrors"
	"siteaudit/internal/domain"
	"siteaudit/internal/ports"
)

type failingChat struct{}

func (failingChat) Platform() string { return "gemini" }

func (failingChat) Ask(ctx context.Context, prompt string) (string, error) {
	return "", errors.New("connection reset")
}

func scriptedClients() []ports.ChatClient {
	return []ports.ChatClient{NewScriptedChat("gemini"), NewScriptedChat("chatgpt")}
}

func TestAnalyzeDerivesBareDomain(t *testing.T) {
	svc := New(scriptedClients(), false, true, zerolog.Nop())

	result, err := svc.Analyze(context.Background(), domain.AuditRequest{
		Target:   "https://sub.example.com/page",
		Keywords: []string{"SEO tools"},
	})
	require.NoError(t, err)
	require.NotNil(t, result.GEO)

	assert.Equal(t, "sub.example.com", result.GEO.Domain)
	for _, m := range result.GEO.Mentions {
		assert.NotContains(t, m.Query, "/page")
	}
}

func TestAnalyzeEmptyDomainRejected(t *testing.T) {
	svc := New(scriptedClients(), false, true, zerolog.Nop())

	_, err := svc.Analyze(context.Background(), domain.AuditRequest{Target: "   "})

	var ve apperrors.ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestAnalyzeSummaryConsistent(t *testing.T) {
	svc := New(scriptedClients(), false, true, zerolog.Nop())

	result, err := svc.Analyze(context.Background(), domain.AuditRequest{
		Target:   "example.com",
		Keywords: []string{"SEO tools", "website optimization"},
	})
	require.NoError(t, err)
	data := result.GEO

	// 2 brand queries + 2 per keyword, across 2 platforms.
	assert.Equal(t, 12, data.Summary.TotalChecks)
	assert.Len(t, data.Mentions, data.Summary.TotalChecks)

	var mentioned int
	for _, m := range data.Mentions {
		if m.Mentioned {
			mentioned++
			assert.NotEmpty(t, m.Context)
			assert.NotEmpty(t, m.Sentiment)
		} else {
			assert.Empty(t, m.Sentiment)
			assert.Nil(t, m.Rank)
		}
	}
	assert.Equal(t, mentioned, data.Summary.MentionsFound)
	assert.InDelta(t, float64(mentioned)/float64(data.Summary.TotalChecks), data.Summary.MentionRate, 0.005)
	assert.True(t, data.DemoMode)
	assert.NotEmpty(t, data.Recommendations)
}

func TestAnalyzeDefaultsKeywords(t *testing.T) {
	svc := New(scriptedClients(), false, true, zerolog.Nop())

	result, err := svc.Analyze(context.Background(), domain.AuditRequest{Target: "example.com"})
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultKeywords, result.GEO.Keywords)
}

func TestAnalyzeKeywordCapAtThree(t *testing.T) {
	svc := New(scriptedClients(), false, true, zerolog.Nop())

	result, err := svc.Analyze(context.Background(), domain.AuditRequest{
		Target:   "example.com",
		Keywords: []string{"a tools", "b tools", "c tools", "d tools", "e tools"},
	})
	require.NoError(t, err)

	// 2 brand + 3 capped keywords x 2 queries, across 2 platforms.
	assert.Equal(t, 16, result.GEO.Summary.TotalChecks)
}

func TestAnalyzeChatFailurePropagates(t *testing.T) {
	svc := New([]ports.ChatClient{failingChat{}}, false, false, zerolog.Nop())

	_, err := svc.Analyze(context.Background(), domain.AuditRequest{Target: "example.com"})

	var ne apperrors.NetworkError
	require.ErrorAs(t, err, &ne)
}

func TestAnalyzeIncludesRawResponsesWhenEnabled(t *testing.T) {
	svc := New(scriptedClients(), true, true, zerolog.Nop())

	result, err := svc.Analyze(context.Background(), domain.AuditRequest{Target: "example.com"})
	require.NoError(t, err)

	require.Contains(t, result.GEO.RawResponses, "gemini")
	require.Contains(t, result.GEO.RawResponses, "chatgpt")
	assert.NotEmpty(t, result.GEO.RawResponses["gemini"])

	plain := New(scriptedClients(), false, true, zerolog.Nop())
	result, err = plain.Analyze(context.Background(), domain.AuditRequest{Target: "example.com"})
	require.NoError(t, err)
	assert.Nil(t, result.GEO.RawResponses)
}

func TestBuildQueries(t *testing.T) {
	queries := buildQueries("example.com", []string{"SEO tools"})

	require.Len(t, queries, 4)
	assert.Equal(t, "What is example.com?", queries[0])
	assert.Equal(t, "Who are the main competitors of example.com?", queries[1])
	assert.Contains(t, queries[2], "SEO tools")
}
