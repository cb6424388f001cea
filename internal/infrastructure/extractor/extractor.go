package extractor

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode"

	"github.com/PuerkitoBio/goquery"

	"BiasLab/internal/domain"
	"BiasLab/internal/ports"
)

const (
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	snippetWordLimit = 200
	matchesPerField  = 3
)

// Extractor pulls article metadata out of remote pages. It never
// returns an error: every failure path degrades into placeholders so
// the pipeline can keep going.
type Extractor struct {
	client    *http.Client
	userAgent string
	logger    *slog.Logger
}

var _ ports.ContentFetcher = (*Extractor)(nil)

// New wires an HTTP client; a nil client gets a 15-second timeout one.
func New(client *http.Client, userAgent string, logger *slog.Logger) *Extractor {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Extractor{client: client, userAgent: userAgent, logger: logger}
}

// Extract fetches the page once and pulls (title, source, snippet) from
// whatever body came back. Non-200 statuses still get best-effort
// extraction; only a missing body produces the degraded placeholder.
func (e *Extractor) Extract(ctx context.Context, rawURL string) domain.ExtractedContent {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		e.warn("build request failed", "url", rawURL, "error", err)
		return e.degraded(rawURL)
	}
	req.Header.Set("User-Agent", e.userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		e.warn("content extraction failed", "url", rawURL, "error", err)
		return e.degraded(rawURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		e.warn("non-200 response", "url", rawURL, "status", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		e.warn("parse document failed", "url", rawURL, "error", err)
		return e.degraded(rawURL)
	}

	title := extractTitle(doc)
	source := resolveSource(rawURL)
	snippet := extractSnippet(doc)
	if snippet == "" {
		snippet = fmt.Sprintf("Article from %s: %s", source, title)
	}

	return domain.ExtractedContent{Title: title, Source: source, Snippet: snippet}
}

func (e *Extractor) degraded(rawURL string) domain.ExtractedContent {
	return domain.ExtractedContent{
		Title:   "Content Extraction Failed",
		Source:  derivedName(hostOf(rawURL)),
		Snippet: "Unable to extract content from " + rawURL,
	}
}

// extractTitle tries <title>, then og:title, then twitter:title.
func extractTitle(doc *goquery.Document) string {
	if t := strings.TrimSpace(doc.Find("title").First().Text()); t != "" {
		return t
	}
	if t, ok := doc.Find(`meta[property="og:title"]`).First().Attr("content"); ok && strings.TrimSpace(t) != "" {
		return strings.TrimSpace(t)
	}
	if t, ok := doc.Find(`meta[name="twitter:title"]`).First().Attr("content"); ok && strings.TrimSpace(t) != "" {
		return strings.TrimSpace(t)
	}
	return "Unknown Title"
}

// extractSnippet joins up to three matches each from meta description,
// og:description, and paragraph text, capped at 200 words.
func extractSnippet(doc *goquery.Document) string {
	var parts []string

	collectAttr := func(selector string) {
		count := 0
		doc.Find(selector).EachWithBreak(func(i int, sel *goquery.Selection) bool {
			if content, ok := sel.Attr("content"); ok && strings.TrimSpace(content) != "" {
				parts = append(parts, strings.TrimSpace(content))
				count++
			}
			return count < matchesPerField
		})
	}

	collectAttr(`meta[name="description"]`)
	collectAttr(`meta[property="og:description"]`)

	count := 0
	doc.Find("p").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		if text := strings.TrimSpace(sel.Text()); text != "" {
			parts = append(parts, text)
			count++
		}
		return count < matchesPerField
	})

	words := strings.Fields(strings.Join(parts, " "))
	if len(words) > snippetWordLimit {
		words = words[:snippetWordLimit]
	}
	return strings.Join(words, " ")
}

// resolveSource maps the exact lowercase host against the known-outlet
// table; unknown hosts get a derived display name.
func resolveSource(rawURL string) string {
	host := hostOf(rawURL)
	if name, ok := domain.SourceNames[host]; ok {
		return name
	}
	return derivedName(host)
}

func hostOf(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(parsed.Hostname())
}

// derivedName strips www. and .com and title-cases the remainder.
func derivedName(host string) string {
	host = strings.TrimPrefix(host, "www.")
	host = strings.ReplaceAll(host, ".com", "")
	return titleCase(host)
}

// titleCase capitalizes the letter following every non-letter, like
// Python's str.title, so "example.org" becomes "Example.Org".
func titleCase(s string) string {
	var b strings.Builder
	prevLetter := false
	for _, r := range s {
		switch {
		case !unicode.IsLetter(r):
			b.WriteRune(r)
			prevLetter = false
		case prevLetter:
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(unicode.ToUpper(r))
			prevLetter = true
		}
	}
	return b.String()
}

func (e *Extractor) warn(msg string, args ...any) {
	if e.logger != nil {
		e.logger.Warn(msg, args...)
	}
}
