// Package external provides clients for third-party sources that are not
// tennis data providers (news).
package external

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/engantonycastro-rd/painel-monitoramento-tenis/internal/provider"
)

// ---------------------------------------------------------------------------
// Constants
// ---------------------------------------------------------------------------

const (
	DefaultRSSURL  = "https://news.google.com/rss/search"
	newsRSSTimeout = 10 * time.Second
	newsSportTerm  = "tennis"
	newsWindow     = "7d"
	maxDescLen     = 300
)

var htmlTagRe = regexp.MustCompile(`<[^>]+>`)

// ---------------------------------------------------------------------------
// Article
// ---------------------------------------------------------------------------

// Article is a news article parsed from the RSS feed.
type Article struct {
	Title       string
	Description string
	URL         string
	Source      string
	PublishedAt string
}

// ---------------------------------------------------------------------------
// NewsService (Google News RSS search)
// ---------------------------------------------------------------------------

// NewsService searches Google News RSS for player articles. It can stand in
// for a provider's own news endpoint via WithNews.
type NewsService struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewNewsService creates a news service. Empty baseURL uses Google News.
func NewNewsService(baseURL string, timeout time.Duration, logger *slog.Logger) *NewsService {
	if baseURL == "" {
		baseURL = DefaultRSSURL
	}
	if timeout <= 0 {
		timeout = newsRSSTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &NewsService{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// PlayerNews returns articles mentioning playerRef, newest first, as an
// array of {title, description, published_at, source, url} objects.
func (s *NewsService) PlayerNews(ctx context.Context, playerRef string) (provider.Value, error) {
	articles, err := s.fetchRSS(ctx, playerRef+" "+newsSportTerm)
	if err != nil {
		return provider.Null, err
	}

	matched := make([]Article, 0, len(articles))
	for _, a := range articles {
		if nameInText(playerRef, a.Title+" "+a.Description) {
			matched = append(matched, a)
		}
	}
	matched = deduplicateArticles(matched)
	sortArticlesByDate(matched)

	s.logger.Debug("RSS news fetched", "player", playerRef, "items", len(articles), "matched", len(matched))

	items := make([]provider.Value, 0, len(matched))
	for _, a := range matched {
		items = append(items, provider.ObjectValue(map[string]provider.Value{
			"title":        provider.StringValue(a.Title),
			"description":  provider.StringValue(a.Description),
			"published_at": provider.StringValue(a.PublishedAt),
			"source":       provider.StringValue(a.Source),
			"url":          provider.StringValue(a.URL),
		}))
	}
	return provider.ArrayValue(items...), nil
}

// ---------------------------------------------------------------------------
// RSS implementation
// ---------------------------------------------------------------------------

// rssResponse is the minimal XML structure for Google News RSS.
type rssResponse struct {
	XMLName xml.Name  `xml:"rss"`
	Items   []rssItem `xml:"channel>item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	PubDate     string `xml:"pubDate"`
	Description string `xml:"description"`
}

func (s *NewsService) fetchRSS(ctx context.Context, query string) ([]Article, error) {
	u := fmt.Sprintf("%s?q=%s+when:%s&hl=pt-BR&gl=BR&ceid=BR:pt-419",
		s.baseURL, url.QueryEscape(query), newsWindow)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &provider.TransportError{URL: u, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; PainelTenisBot/1.0)")
	req.Header.Set("Accept", "application/rss+xml, application/xml, text/xml")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, &provider.TransportError{URL: u, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &provider.TransportError{URL: u, StatusCode: resp.StatusCode, Err: provider.ErrUpstreamStatus}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &provider.TransportError{URL: u, StatusCode: resp.StatusCode, Err: fmt.Errorf("read response body: %w", err)}
	}

	var rss rssResponse
	if err := xml.Unmarshal(body, &rss); err != nil {
		return nil, &provider.TransportError{URL: u, StatusCode: resp.StatusCode, Err: fmt.Errorf("%w: %v", provider.ErrMalformedBody, err)}
	}

	articles := make([]Article, 0, len(rss.Items))
	for _, item := range rss.Items {
		title := item.Title
		source := "Google News"

		// Extract source from "Title - Source" format.
		if idx := strings.LastIndex(title, " - "); idx != -1 {
			source = strings.TrimSpace(title[idx+3:])
			title = strings.TrimSpace(title[:idx])
		}

		desc := strings.TrimSpace(htmlTagRe.ReplaceAllString(item.Description, ""))
		desc = truncateText(desc, maxDescLen)

		articles = append(articles, Article{
			Title:       title,
			Description: desc,
			URL:         item.Link,
			Source:      source,
			PublishedAt: item.PubDate,
		})
	}
	return articles, nil
}

// ---------------------------------------------------------------------------
// Provider decoration
// ---------------------------------------------------------------------------

type newsOverride struct {
	provider.UpstreamProvider
	news *NewsService
}

// WithNews serves PlayerNews from the RSS service and everything else from
// the wrapped provider.
func WithNews(upstream provider.UpstreamProvider, news *NewsService) provider.UpstreamProvider {
	return newsOverride{UpstreamProvider: upstream, news: news}
}

func (n newsOverride) PlayerNews(ctx context.Context, playerRef string) (provider.Value, error) {
	return n.news.PlayerNews(ctx, playerRef)
}

// ---------------------------------------------------------------------------
// Helpers: name matching and ordering
// ---------------------------------------------------------------------------

// nameInText checks that a player name appears in text: the full name, or
// both first and last name as whole words.
func nameInText(name, text string) bool {
	if name == "" || text == "" {
		return false
	}
	nameLower := strings.ToLower(strings.TrimSpace(name))
	textLower := strings.ToLower(text)

	if strings.Contains(textLower, nameLower) {
		return true
	}

	parts := strings.Fields(nameLower)
	if len(parts) < 2 {
		return false
	}
	first, last := parts[0], parts[len(parts)-1]
	return len(first) > 1 && len(last) > 1 &&
		wordBoundaryMatch(first, textLower) && wordBoundaryMatch(last, textLower)
}

// wordBoundaryMatch checks for a whole-word match using \b.
func wordBoundaryMatch(word, text string) bool {
	re, err := regexp.Compile(`\b` + regexp.QuoteMeta(word) + `\b`)
	if err != nil {
		return strings.Contains(text, word)
	}
	return re.MatchString(text)
}

// truncateText cuts s to at most maxBytes bytes without splitting a
// multi-byte character, appending "..." when anything was dropped.
func truncateText(s string, maxBytes int) string {
	if len(s) <= maxBytes {
		return s
	}
	cut := maxBytes
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

// deduplicateArticles removes duplicate articles by URL.
func deduplicateArticles(articles []Article) []Article {
	seen := make(map[string]bool)
	out := make([]Article, 0, len(articles))
	for _, a := range articles {
		if a.URL != "" && !seen[a.URL] {
			seen[a.URL] = true
			out = append(out, a)
		}
	}
	return out
}

// sortArticlesByDate sorts articles by published date, newest first.
func sortArticlesByDate(articles []Article) {
	parseFmts := []string{
		time.RFC1123Z,
		time.RFC1123,
		time.RFC3339,
	}

	parseDate := func(s string) time.Time {
		s = strings.TrimSpace(s)
		for _, f := range parseFmts {
			if t, err := time.Parse(f, s); err == nil {
				return t
			}
		}
		return time.Time{}
	}

	sort.SliceStable(articles, func(i, j int) bool {
		return parseDate(articles[i].PublishedAt).After(parseDate(articles[j].PublishedAt))
	})
}
