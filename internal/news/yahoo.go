package news

import (
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"news-trader/internal/api"
	"news-trader/internal/logger"
	"news-trader/internal/types"
)

const yahooLatestNewsURL = "https://finance.yahoo.com/topic/latest-news/"

// YahooFinance scrapes the Yahoo Finance latest-news page and returns the
// single most recent article. The listing page markup changes frequently, so
// candidate links are matched against an ordered chain of selectors and the
// highest-priority hit wins.
type YahooFinance struct {
	timeout time.Duration
	client  *api.Client
}

// listSelectors, in priority order. Each entry pairs a CSS selector with a
// strategy for pulling the headline out of the matched anchor.
var listSelectors = []struct {
	selector string
	title    func(e *colly.HTMLElement) string
}{
	{`a.titles-link[href*="/news/"]`, func(e *colly.HTMLElement) string {
		return strings.TrimSpace(e.ChildText("h2"))
	}},
	{`li.stream-item h3 a[href*="/news/"]`, func(e *colly.HTMLElement) string {
		return strings.TrimSpace(e.Text)
	}},
	{`div[data-test-locator="mega"] h3 a[href*="/news/"]`, func(e *colly.HTMLElement) string {
		return strings.TrimSpace(e.Text)
	}},
	{`a[href*="/news/"][aria-label]`, func(e *colly.HTMLElement) string {
		if label := strings.TrimSpace(e.Attr("aria-label")); label != "" {
			return label
		}
		return strings.TrimSpace(e.Text)
	}},
	{`a[href*="/news/"]`, func(e *colly.HTMLElement) string {
		title := strings.TrimSpace(e.Text)
		if len(title) < 10 {
			return ""
		}
		return title
	}},
}

// NewYahooFinance creates the source with the given per-request timeout.
func NewYahooFinance(timeout time.Duration) *YahooFinance {
	return &YahooFinance{
		timeout: timeout,
		client:  api.NewClient(api.WithTimeout(timeout)),
	}
}

// Name implements interfaces.Source.
func (y *YahooFinance) Name() string { return "Yahoo Finance" }

// Latest returns the most recent article on the latest-news page, or nil when
// nothing usable was found.
func (y *YahooFinance) Latest(ctx context.Context) (*types.Article, error) {
	type candidate struct {
		title string
		link  string
	}
	// One slot per selector priority; only the first hit per slot is kept.
	found := make([]*candidate, len(listSelectors))

	c := colly.NewCollector(
		colly.AllowedDomains("finance.yahoo.com"),
		colly.MaxDepth(1),
	)
	c.SetRequestTimeout(y.timeout)
	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("User-Agent", api.BrowserHeaders()["User-Agent"])
	})

	for i, entry := range listSelectors {
		i, entry := i, entry
		c.OnHTML(entry.selector, func(e *colly.HTMLElement) {
			if found[i] != nil {
				return
			}
			link := e.Attr("href")
			if link == "" || !strings.Contains(link, "/news/") {
				return
			}
			title := entry.title(e)
			if title == "" {
				return
			}
			found[i] = &candidate{title: title, link: e.Request.AbsoluteURL(link)}
		})
	}

	if err := c.Visit(yahooLatestNewsURL); err != nil {
		return nil, err
	}
	c.Wait()

	var best *candidate
	for _, cand := range found {
		if cand != nil {
			best = cand
			break
		}
	}
	if best == nil {
		logger.Debug(ctx, "No article links matched on latest-news page")
		return nil, nil
	}

	content, published, err := y.fetchArticle(ctx, best.link)
	if err != nil {
		return nil, err
	}
	if content == "" {
		// A headline with no readable body is useless to the predictor.
		logger.Debug(ctx, "Skipping article without readable body", "url", best.link)
		return nil, nil
	}

	return &types.Article{
		Title:       best.title,
		URL:         best.link,
		PublishedAt: published,
		Content:     content,
		Source:      y.Name(),
	}, nil
}

// fetchArticle downloads an article page and extracts its body text and
// publication time.
func (y *YahooFinance) fetchArticle(ctx context.Context, articleURL string) (content, published string, err error) {
	resp, err := y.client.GET(ctx, articleURL, api.BrowserHeaders())
	if err != nil {
		return "", "", err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body))
	if err != nil {
		return "", "", err
	}

	if dt, ok := doc.Find("time").First().Attr("datetime"); ok {
		published = dt
	}

	for _, container := range []string{"div.caas-body", "article", "#Col1-0-ContentCanvas"} {
		paragraphs := []string{}
		doc.Find(container + " p").Each(func(_ int, s *goquery.Selection) {
			if text := strings.TrimSpace(s.Text()); text != "" {
				paragraphs = append(paragraphs, text)
			}
		})
		if len(paragraphs) > 0 {
			return strings.Join(paragraphs, "\n"), published, nil
		}
	}

	return "", published, nil
}
