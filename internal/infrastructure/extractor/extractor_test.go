package extractor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const samplePage = `<html>
<head>
  <title>Instagram Map raises questions</title>
  <meta property="og:title" content="OG title variant">
  <meta name="description" content="A close look at the new feature.">
  <meta property="og:description" content="What the rollout means for users.">
</head>
<body>
  <p>The company shipped the feature last week.</p>
  <p>Reactions have been mixed.</p>
</body>
</html>`

func TestExtractPrefersTitleTag(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(samplePage))
	}))
	defer server.Close()

	e := New(server.Client(), "", nil)
	content := e.Extract(context.Background(), server.URL+"/article")

	if content.Title != "Instagram Map raises questions" {
		t.Fatalf("unexpected title: %q", content.Title)
	}
	if !strings.Contains(content.Snippet, "A close look at the new feature.") {
		t.Fatalf("snippet missing meta description: %q", content.Snippet)
	}
	if !strings.Contains(content.Snippet, "The company shipped the feature last week.") {
		t.Fatalf("snippet missing paragraph text: %q", content.Snippet)
	}
}

func TestExtractFallsBackToOGTitle(t *testing.T) {
	t.Parallel()

	page := `<html><head><meta property="og:title" content="Only OG Title"></head><body><p>text</p></body></html>`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(page))
	}))
	defer server.Close()

	e := New(server.Client(), "", nil)
	content := e.Extract(context.Background(), server.URL)

	if content.Title != "Only OG Title" {
		t.Fatalf("unexpected title: %q", content.Title)
	}
}

func TestExtractUnknownTitle(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><p>bare page</p></body></html>`))
	}))
	defer server.Close()

	e := New(server.Client(), "", nil)
	content := e.Extract(context.Background(), server.URL)

	if content.Title != "Unknown Title" {
		t.Fatalf("unexpected title: %q", content.Title)
	}
}

func TestExtractNon200StillParsesBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`<html><head><title>Paywalled piece</title></head><body></body></html>`))
	}))
	defer server.Close()

	e := New(server.Client(), "", nil)
	content := e.Extract(context.Background(), server.URL)

	if content.Title != "Paywalled piece" {
		t.Fatalf("expected best-effort extraction from non-200 body, got %q", content.Title)
	}
}

func TestExtractUnreachableURLDegrades(t *testing.T) {
	t.Parallel()

	e := New(&http.Client{}, "", nil)
	content := e.Extract(context.Background(), "http://127.0.0.1:1/nothing")

	if content.Title != "Content Extraction Failed" {
		t.Fatalf("unexpected title: %q", content.Title)
	}
	if !strings.HasPrefix(content.Snippet, "Unable to extract content from ") {
		t.Fatalf("unexpected snippet: %q", content.Snippet)
	}
}

func TestExtractEmptySnippetSubstitutesPlaceholder(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><head><title>Bare Title</title></head><body></body></html>`))
	}))
	defer server.Close()

	e := New(server.Client(), "", nil)
	content := e.Extract(context.Background(), server.URL)

	want := "Article from " + content.Source + ": Bare Title"
	if content.Snippet != want {
		t.Fatalf("expected placeholder snippet %q, got %q", want, content.Snippet)
	}
}

func TestExtractSnippetCapsAt200Words(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("word ", 300)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><p>` + long + `</p></body></html>`))
	}))
	defer server.Close()

	e := New(server.Client(), "", nil)
	content := e.Extract(context.Background(), server.URL)

	if got := len(strings.Fields(content.Snippet)); got != 200 {
		t.Fatalf("expected 200-word snippet, got %d words", got)
	}
}

func TestResolveSource(t *testing.T) {
	t.Parallel()

	cases := []struct {
		url  string
		want string
	}{
		{"https://nytimes.com/2025/article", "New York Times"},
		{"https://techcrunch.com/post", "TechCrunch"},
		{"https://www.nytimes.com/2025/article", "Nytimes"},
		{"https://example.org/story", "Example.Org"},
		{"https://www.somesite.com/a", "Somesite"},
	}

	for _, tc := range cases {
		if got := resolveSource(tc.url); got != tc.want {
			t.Fatalf("resolveSource(%q) = %q, want %q", tc.url, got, tc.want)
		}
	}
}
