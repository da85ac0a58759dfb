// Package searchvis wraps Google Search Console and Bing Webmaster Tools to
// report indexing status and search performance for a site. Without
// credentials it serves the fixed reference dataset so the dashboard stays
// usable offline.
package searchvis

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"

	"siteaudit/internal/apperrors"
	"siteaudit/internal/domain"
	"siteaudit/internal/ports"
)

const (
	googleAPIURL = "https://www.googleapis.com/webmasters/v3"
	bingAPIURL   = "https://ssl.bing.com/webmaster/api.svc/json"

	serviceName = "search-console"
)

// Service is the search-visibility module client.
type Service struct {
	gscToken string
	bingKey  string

	googleBase string
	bingBase   string
	client     *http.Client
	log        zerolog.Logger
}

var _ ports.ModuleClient = (*Service)(nil)

func New(gscToken, bingKey string, client *http.Client, log zerolog.Logger) *Service {
	if client == nil {
		client = http.DefaultClient
	}
	return &Service{
		gscToken:   gscToken,
		bingKey:    bingKey,
		googleBase: googleAPIURL,
		bingBase:   bingAPIURL,
		client:     client,
		log:        log.With().Str("module", string(domain.ModuleSearchVisibility)).Logger(),
	}
}

func (s *Service) Module() domain.ModuleKind { return domain.ModuleSearchVisibility }

func (s *Service) Analyze(ctx context.Context, req domain.AuditRequest) (domain.ModuleResult, error) {
	target := domain.NormalizeTarget(req.Target)

	googleData, err := s.fetchGoogle(ctx, target)
	if err != nil {
		return domain.ModuleResult{}, err
	}
	bingData, err := s.fetchBing(ctx, target)
	if err != nil {
		return domain.ModuleResult{}, err
	}

	data := &domain.SearchVisibilityData{
		URL:               target,
		GoogleData:        googleData,
		BingData:          bingData,
		IndexStatus:       indexStatusFrom(googleData),
		SearchPerformance: referencePerformance(),
		Sitemaps:          referenceSitemaps(),
		DemoMode:          s.gscToken == "" && s.bingKey == "",
	}
	data.Recommendations = recommend(data)

	s.log.Debug().Str("url", target).Bool("demo", data.DemoMode).Msg("search visibility analyzed")
	return domain.ModuleResult{Module: domain.ModuleSearchVisibility, Search: data}, nil
}

// fetchGoogle returns Search Console data for the site, or the reference
// dataset when no OAuth token is configured.
func (s *Service) fetchGoogle(ctx context.Context, target string) (map[string]any, error) {
	if s.gscToken == "" {
		return referenceGoogleData(target), nil
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, s.googleBase+"/sites", nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+s.gscToken)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, apperrors.FromTransport(serviceName, "search console sites", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, apperrors.UpstreamError{Service: serviceName, Status: resp.StatusCode, Message: string(body)}
	}

	var data map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, apperrors.UpstreamError{Service: serviceName, Status: resp.StatusCode, Message: fmt.Sprintf("malformed response: %v", err)}
	}
	data["site_url"] = target
	return data, nil
}

// fetchBing returns Bing Webmaster data for the site, or the reference
// dataset when no API key is configured.
func (s *Service) fetchBing(ctx context.Context, target string) (map[string]any, error) {
	if s.bingKey == "" {
		return referenceBingData(target), nil
	}

	q := url.Values{}
	q.Set("apikey", s.bingKey)
	q.Set("siteUrl", target)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, s.bingBase+"/GetUrlTraffic?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, apperrors.FromTransport("bing-webmaster", "bing url traffic", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, apperrors.UpstreamError{Service: "bing-webmaster", Status: resp.StatusCode, Message: string(body)}
	}

	var data map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, apperrors.UpstreamError{Service: "bing-webmaster", Status: resp.StatusCode, Message: fmt.Sprintf("malformed response: %v", err)}
	}
	data["site_url"] = target
	return data, nil
}

// indexStatusFrom reads the index_status block out of the Search Console
// payload, tolerating its absence.
func indexStatusFrom(googleData map[string]any) *domain.IndexStatus {
	raw, ok := googleData["index_status"].(map[string]any)
	if !ok {
		return nil
	}
	st := &domain.IndexStatus{
		TotalPages:      intField(raw, "total_pages"),
		IndexedPages:    intField(raw, "indexed_pages"),
		NotIndexedPages: intField(raw, "not_indexed_pages"),
	}
	if v, ok := raw["pending_pages"]; ok {
		n := toInt(v)
		st.PendingPages = &n
	}
	if v, ok := raw["errors"]; ok {
		n := toInt(v)
		st.Errors = &n
	}
	if v, ok := raw["warnings"]; ok {
		n := toInt(v)
		st.Warnings = &n
	}
	return st
}

func intField(m map[string]any, key string) int {
	if v, ok := m[key]; ok {
		return toInt(v)
	}
	return 0
}

func toInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case float64:
		return int(n)
	case json.Number:
		i, _ := n.Int64()
		return int(i)
	}
	return 0
}
