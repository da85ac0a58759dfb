// Package geo checks how visible a brand is inside generative AI chat
// responses: for a set of queries it asks each configured platform, detects
// brand mentions and derives sentiment, list rank and named competitors.
package geo

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog"

	"siteaudit/internal/apperrors"
	"siteaudit/internal/domain"
	"siteaudit/internal/ports"
)

const serviceName = "geo"

const maxQueryKeywords = 3

const contextWindow = 500

// Service is the geo module client. It fans a query set over the configured
// chat platforms and aggregates mentions into a summary.
type Service struct {
	clients    []ports.ChatClient
	includeRaw bool
	demoMode   bool
	log        zerolog.Logger
}

var _ ports.ModuleClient = (*Service)(nil)

func New(clients []ports.ChatClient, includeRaw, demoMode bool, log zerolog.Logger) *Service {
	return &Service{
		clients:    clients,
		includeRaw: includeRaw,
		demoMode:   demoMode,
		log:        log.With().Str("module", string(domain.ModuleGEO)).Logger(),
	}
}

func (s *Service) Module() domain.ModuleKind { return domain.ModuleGEO }

func (s *Service) Analyze(ctx context.Context, req domain.AuditRequest) (domain.ModuleResult, error) {
	brand := domain.BareDomain(req.Target)
	if brand == "" {
		return domain.ModuleResult{}, apperrors.NewValidationError("domain", "domain must not be empty")
	}

	keywords := req.Keywords
	if len(keywords) == 0 {
		keywords = domain.DefaultKeywords
	}

	queries := buildQueries(brand, keywords)

	var mentions []domain.BrandMention
	raw := map[string]map[string]string{}
	for _, client := range s.clients {
		raw[client.Platform()] = map[string]string{}
	}

	for _, query := range queries {
		for _, client := range s.clients {
			text, err := client.Ask(ctx, query)
			if err != nil {
				return domain.ModuleResult{}, apperrors.FromTransport(serviceName, client.Platform()+" query", err)
			}
			raw[client.Platform()][query] = text
			mentions = append(mentions, buildMention(client.Platform(), query, brand, text))
		}
	}

	data := &domain.GEOData{
		Domain:   brand,
		Keywords: keywords,
		Mentions: mentions,
		Summary:  summarize(mentions),
		DemoMode: s.demoMode,
	}
	if s.includeRaw {
		data.RawResponses = raw
	}
	data.Recommendations = recommend(data)

	s.log.Debug().Str("domain", brand).Int("queries", len(queries)).Int("mentions", data.Summary.MentionsFound).Msg("geo analyzed")
	return domain.ModuleResult{Module: domain.ModuleGEO, GEO: data}, nil
}

// buildQueries assembles the fixed question set: two brand questions plus
// best-of and comparison questions for up to three keywords.
func buildQueries(brand string, keywords []string) []string {
	queries := []string{
		fmt.Sprintf("What is %s?", brand),
		fmt.Sprintf("Who are the main competitors of %s?", brand),
	}
	for i, kw := range keywords {
		if i >= maxQueryKeywords {
			break
		}
		queries = append(queries,
			fmt.Sprintf("What are the best tools for %s?", kw),
			fmt.Sprintf("Compare top %s platforms", kw),
		)
	}
	return queries
}

func buildMention(platform, query, brand, text string) domain.BrandMention {
	mentioned := strings.Contains(strings.ToLower(text), strings.ToLower(brand))
	m := domain.BrandMention{
		Platform:             platform,
		Query:                query,
		Mentioned:            mentioned,
		CompetitorsMentioned: extractCompetitors(text, brand),
	}
	if mentioned {
		m.Context = truncate(text, contextWindow)
		m.Sentiment = extractSentiment(text, brand)
		m.Rank = extractRank(text, brand)
	}
	return m
}

func summarize(mentions []domain.BrandMention) domain.GEOSummary {
	summary := domain.GEOSummary{
		TotalChecks:        len(mentions),
		SentimentBreakdown: map[string]int{"positive": 0, "negative": 0, "neutral": 0},
	}

	var ranks []int
	for _, m := range mentions {
		if m.Mentioned {
			summary.MentionsFound++
		}
		if m.Sentiment != "" {
			summary.SentimentBreakdown[m.Sentiment]++
		}
		if m.Rank != nil {
			ranks = append(ranks, *m.Rank)
		}
	}
	if summary.TotalChecks > 0 {
		summary.MentionRate = math.Round(float64(summary.MentionsFound)/float64(summary.TotalChecks)*100) / 100
	}
	if len(ranks) > 0 {
		var sum int
		for _, r := range ranks {
			sum += r
		}
		avg := math.Round(float64(sum)/float64(len(ranks))*10) / 10
		summary.AverageRank = &avg
	}
	return summary
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
