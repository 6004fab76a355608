package views

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/a-h/templ"

	"github.com/thefrontweb/frontweb/content"
)

var testCfg = SiteConfig{
	Name:               "thefrontweb",
	URL:                "https://example.com",
	Description:        "Articles on frontend and JavaScript",
	TwitterHandle:      "@thefrontweb",
	ListingTitle:       "All Posts",
	ListingDescription: "Posts related to frontend web development!",
}

func render(t *testing.T, cmp templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := cmp.Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	return buf.String()
}

func TestDates(t *testing.T) {
	tests := []struct {
		input   string
		card    string
		article string
		iso     string
	}{
		{"2021-05-01", "May 01, 2021", "May 01, 2021", "2021-05-01T00:00:00Z"},
		{"2021-06-01", "Jun 01, 2021", "June 01, 2021", "2021-06-01T00:00:00Z"},
		{"2021-12-24T10:30:00Z", "Dec 24, 2021", "December 24, 2021", "2021-12-24T10:30:00Z"},
		{"2021-12-24T10:30:00+02:00", "Dec 24, 2021", "December 24, 2021", "2021-12-24T08:30:00Z"},
		{"2021-03-09 08:00:00", "Mar 09, 2021", "March 09, 2021", "2021-03-09T08:00:00Z"},
	}
	for _, tt := range tests {
		if got, err := CardDate(tt.input); err != nil || got != tt.card {
			t.Errorf("CardDate(%q) = %q, %v, want %q", tt.input, got, err, tt.card)
		}
		if got, err := ArticleDate(tt.input); err != nil || got != tt.article {
			t.Errorf("ArticleDate(%q) = %q, %v, want %q", tt.input, got, err, tt.article)
		}
		if got, err := ISODate(tt.input); err != nil || got != tt.iso {
			t.Errorf("ISODate(%q) = %q, %v, want %q", tt.input, got, err, tt.iso)
		}
	}
}

func TestInvalidDate(t *testing.T) {
	for _, s := range []string{"", "yesterday", "01/05/2021"} {
		if _, err := CardDate(s); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("CardDate(%q) err = %v, want ErrInvalidDate", s, err)
		}
	}
}

func TestIndexCards(t *testing.T) {
	listing := content.Listing{
		{Slug: "hello", Metadata: content.Metadata{"title": "Hello", "publishedAt": "2021-05-01", "summary": "World"}},
	}
	cmp, err := Index(testCfg, listing)
	if err != nil {
		t.Fatalf("Index failed: %v", err)
	}
	got := render(t, cmp)
	for _, want := range []string{
		`<h4 class="card-title">Hello</h4>`,
		`<p class="card-date">May 01, 2021</p>`,
		`<p class="card-summary">World</p>`,
		`href="/hello/"`,
		`<title>All Posts</title>`,
		`content="Posts related to frontend web development!"`,
		`<meta property="og:type" content="website">`,
		`<meta name="twitter:site" content="@thefrontweb">`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("index page missing %q", want)
		}
	}
	if strings.Contains(got, "article:published_time") {
		t.Error("index page should not carry article:published_time")
	}
}

func TestIndexKeepsListingOrder(t *testing.T) {
	listing := content.Listing{
		{Slug: "june", Metadata: content.Metadata{"title": "June", "publishedAt": "2021-06-01"}},
		{Slug: "may", Metadata: content.Metadata{"title": "May", "publishedAt": "2021-05-01"}},
	}
	cmp, err := Index(testCfg, listing)
	if err != nil {
		t.Fatalf("Index failed: %v", err)
	}
	got := render(t, cmp)
	if strings.Index(got, "/june/") > strings.Index(got, "/may/") {
		t.Errorf("cards out of order:\n%s", got)
	}
}

func TestIndexInvalidDate(t *testing.T) {
	listing := content.Listing{
		{Slug: "bad", Metadata: content.Metadata{"title": "Bad", "publishedAt": "soon"}},
	}
	if _, err := Index(testCfg, listing); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("Index err = %v, want ErrInvalidDate", err)
	}
}

func TestArticle(t *testing.T) {
	item := content.Item{
		Slug:     "hello",
		Metadata: content.Metadata{"title": "Hello & Bye", "publishedAt": "2021-05-01", "summary": "A <em>short</em> summary"},
	}
	body := templ.Raw("<p>Body <strong>text</strong></p>")
	cmp, err := Article(testCfg, item, body)
	if err != nil {
		t.Fatalf("Article failed: %v", err)
	}
	got := render(t, cmp)
	for _, want := range []string{
		`<h1 class="article-title">Hello &amp; Bye</h1>`,
		`<p class="article-date">May 01, 2021</p>`,
		`<p>Body <strong>text</strong></p>`,
		`<title>thefrontweb - Hello &amp; Bye</title>`,
		`<meta name="description" content="A short summary">`,
		`<meta property="og:type" content="article">`,
		`<meta property="article:published_time" content="2021-05-01T00:00:00Z">`,
		`<link rel="canonical" href="https://example.com/hello/">`,
		`"@type":"BlogPosting"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("article page missing %q\n%s", want, got)
		}
	}
}

func TestArticleMetaFallbacks(t *testing.T) {
	item := content.Item{Slug: "bare", Metadata: content.Metadata{"publishedAt": "2021-05-01"}}
	meta, err := ArticleMeta(testCfg, item)
	if err != nil {
		t.Fatalf("ArticleMeta failed: %v", err)
	}
	if meta.Title != testCfg.Name {
		t.Errorf("Title = %q, want site name", meta.Title)
	}
	if meta.Description != testCfg.Description {
		t.Errorf("Description = %q, want site description", meta.Description)
	}
	if meta.URL != "https://example.com/bare/" {
		t.Errorf("URL = %q", meta.URL)
	}
}

func TestArticleMissingDate(t *testing.T) {
	item := content.Item{Slug: "nodate", Metadata: content.Metadata{"title": "No date"}}
	if _, err := Article(testCfg, item, templ.Raw("")); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("Article err = %v, want ErrInvalidDate", err)
	}
}

func TestNotFound(t *testing.T) {
	got := render(t, NotFound(testCfg))
	if !strings.Contains(got, "404") || !strings.Contains(got, "<title>Not Found - thefrontweb</title>") {
		t.Errorf("unexpected not found page:\n%s", got)
	}
}

func TestPlainText(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"plain", "plain"},
		{"<b>bold</b> & more", "bold & more"},
		{"  <script>x</script>text ", "text"},
	}
	for _, tt := range tests {
		if got := PlainText(tt.input); got != tt.expected {
			t.Errorf("PlainText(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildURL(t *testing.T) {
	tests := []struct {
		base     string
		segments []string
		expected string
	}{
		{"https://example.com", nil, "https://example.com"},
		{"https://example.com", []string{"hello"}, "https://example.com/hello/"},
		{"https://example.com/blog/", []string{"a", "b"}, "https://example.com/blog/a/b/"},
	}
	for _, tt := range tests {
		if got := BuildURL(tt.base, tt.segments...); got != tt.expected {
			t.Errorf("BuildURL(%q, %v) = %q, want %q", tt.base, tt.segments, got, tt.expected)
		}
	}
}
