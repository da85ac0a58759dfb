package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractSentiment(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"positive window", "example.com is the best and most trusted platform available.", "positive"},
		{"negative window", "Avoid example.com, users report terrible issues and problems.", "negative"},
		{"balanced", "example.com exists.", "neutral"},
		{"brand absent", "Some other text entirely.", "neutral"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractSentiment(tt.text, "example.com"))
		})
	}
}

func TestExtractRankFromNumberedList(t *testing.T) {
	text := "Here are the top tools:\n1. CompetitorA\n2. example.com - great choice\n3. CompetitorB"
	rank := extractRank(text, "example.com")
	require.NotNil(t, rank)
	assert.Equal(t, 2, *rank)
}

func TestExtractRankFallsBackToLineIndex(t *testing.T) {
	text := "CompetitorA is popular.\nexample.com is another option."
	rank := extractRank(text, "example.com")
	require.NotNil(t, rank)
	assert.Equal(t, 2, *rank)
}

func TestExtractRankAbsentBrand(t *testing.T) {
	assert.Nil(t, extractRank("nothing relevant here", "example.com"))
}

func TestExtractCompetitors(t *testing.T) {
	text := "The main competitors include HubSpot, SEMrush and Ahrefs. " +
		"Other options include Moz or Screaming Frog."
	got := extractCompetitors(text, "example.com")

	assert.Contains(t, got, "hubspot")
	assert.Contains(t, got, "semrush")
	assert.Contains(t, got, "ahrefs")
	assert.LessOrEqual(t, len(got), 5)
}

func TestExtractCompetitorsSkipsBrandAndShortTokens(t *testing.T) {
	text := "Competitors include realbrand tools, ab, and RealRival."
	got := extractCompetitors(text, "realbrand")

	assert.NotContains(t, got, "realbrand tools")
	assert.NotContains(t, got, "ab")
	assert.Contains(t, got, "realrival")
}

func TestScriptedResponseMentionsDomain(t *testing.T) {
	resp := scriptedResponse("What is acme.io?")
	assert.Contains(t, resp, "acme.io")

	ranked := scriptedResponse("What are the best tools for SEO tools?")
	rank := extractRank(ranked, "seo")
	require.NotNil(t, rank)
}

func TestScriptedResponseDeterministic(t *testing.T) {
	prompt := "Compare top website optimization platforms"
	assert.Equal(t, scriptedResponse(prompt), scriptedResponse(prompt))
}
