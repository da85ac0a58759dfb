package seohealth

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"siteaudit/internal/domain"
)

const snapshotTimeout = 10 * time.Second

// fetchSnapshot samples the live document for a handful of on-page factors.
// It is strictly best-effort: any failure returns nil and never fails the
// module.
func (s *Service) fetchSnapshot(ctx context.Context, target string) *domain.PageSnapshot {
	ctx, cancel := context.WithTimeout(ctx, snapshotTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", "siteaudit/1.0 (+seo-health)")

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.Debug().Err(err).Str("url", target).Msg("page snapshot skipped")
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil
	}

	snap := &domain.PageSnapshot{
		Title:   strings.TrimSpace(doc.Find("title").First().Text()),
		H1Count: doc.Find("h1").Length(),
	}
	doc.Find(`meta[name="description"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if content, _ := sel.Attr("content"); strings.TrimSpace(content) != "" {
			snap.HasMetaDesc = true
			return false
		}
		return true
	})
	doc.Find("img").Each(func(_ int, sel *goquery.Selection) {
		if alt, ok := sel.Attr("alt"); !ok || strings.TrimSpace(alt) == "" {
			snap.ImagesMissingAlt++
		}
	})

	host := hostOf(target)
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "javascript:") {
			return
		}
		if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
			if hostOf(href) == host {
				snap.InternalLinkCount++
			} else {
				snap.ExternalLinkCount++
			}
			return
		}
		snap.InternalLinkCount++
	})

	return snap
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}
