package content

import (
	"errors"
	"testing"
	"testing/fstest"
	"time"
)

func post(title, date, summary string) *fstest.MapFile {
	return &fstest.MapFile{Data: []byte("---\ntitle: " + title + "\npublishedAt: '" + date + "'\nsummary: " + summary + "\n---\n\n# " + title + "\n\nBody text.\n")}
}

func TestParseFrontMatter(t *testing.T) {
	src := []byte("---\ntitle: Hello\npublishedAt: 2021-05-01\nsummary: World\ntags: [go]\n---\nSome *body*.\n")
	meta, body, err := ParseFrontMatter(src)
	if err != nil {
		t.Fatalf("ParseFrontMatter failed: %v", err)
	}
	if meta.Title() != "Hello" {
		t.Errorf("Title = %q, want %q", meta.Title(), "Hello")
	}
	if meta.PublishedAt() != "2021-05-01" {
		t.Errorf("PublishedAt = %q, want %q", meta.PublishedAt(), "2021-05-01")
	}
	if meta.Summary() != "World" {
		t.Errorf("Summary = %q, want %q", meta.Summary(), "World")
	}
	if _, ok := meta["tags"]; !ok {
		t.Error("optional keys should pass through")
	}
	if string(body) != "Some *body*.\n" {
		t.Errorf("body = %q", body)
	}
}

func TestParseFrontMatterMissingBlock(t *testing.T) {
	meta, body, err := ParseFrontMatter([]byte("just text\n"))
	if err != nil {
		t.Fatalf("ParseFrontMatter failed: %v", err)
	}
	if len(meta) != 0 {
		t.Errorf("meta = %v, want empty", meta)
	}
	if string(body) != "just text\n" {
		t.Errorf("body = %q", body)
	}
}

func TestParseFrontMatterMalformed(t *testing.T) {
	_, _, err := ParseFrontMatter([]byte("---\ntitle: [unclosed\n---\nbody\n"))
	if err == nil {
		t.Fatal("expected error for malformed front matter")
	}
}

func TestMetadataString(t *testing.T) {
	meta := Metadata{
		"s":    "text",
		"n":    3,
		"f":    1.5,
		"b":    true,
		"nil":  nil,
		"date": time.Date(2021, 5, 1, 0, 0, 0, 0, time.UTC),
	}
	tests := []struct {
		key  string
		want string
	}{
		{"s", "text"},
		{"n", "3"},
		{"f", "1.5"},
		{"b", "true"},
		{"nil", ""},
		{"missing", ""},
		{"date", "2021-05-01"},
	}
	for _, tt := range tests {
		if got := meta.String(tt.key); got != tt.want {
			t.Errorf("String(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestNormalizeScalarTimestamp(t *testing.T) {
	midnight := time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)
	if got := normalizeScalar(midnight); got != "2021-06-01" {
		t.Errorf("normalizeScalar(midnight) = %v, want 2021-06-01", got)
	}
	withTime := time.Date(2021, 6, 1, 10, 30, 0, 0, time.UTC)
	if got := normalizeScalar(withTime); got != "2021-06-01T10:30:00Z" {
		t.Errorf("normalizeScalar(withTime) = %v, want RFC3339", got)
	}
	if got := normalizeScalar(42); got != 42 {
		t.Errorf("normalizeScalar(42) = %v", got)
	}
}

func TestListMatchesFileCount(t *testing.T) {
	fsys := fstest.MapFS{
		"blog/a.mdx":         post("A", "2021-01-01", "a"),
		"blog/b.mdx":         post("B", "2021-03-01", "b"),
		"blog/c.md":          post("C", "2021-02-01", "c"),
		"blog/drafts/d.mdx":  post("D", "2021-04-01", "d"),
		"projects/other.mdx": post("Other", "2020-01-01", "o"),
	}
	s := NewStore(fsys)
	listing, err := s.List("blog")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(listing) != 3 {
		t.Fatalf("len(listing) = %d, want 3", len(listing))
	}
	want := []string{"a", "b", "c"}
	for i, e := range listing {
		if e.Slug != want[i] {
			t.Errorf("listing[%d].Slug = %q, want %q", i, e.Slug, want[i])
		}
	}
}

func TestListFailsOnCorruptFile(t *testing.T) {
	fsys := fstest.MapFS{
		"blog/good.mdx": post("Good", "2021-01-01", "ok"),
		"blog/bad.mdx":  &fstest.MapFile{Data: []byte("---\ntitle: [oops\n---\n")},
	}
	if _, err := NewStore(fsys).List("blog"); err == nil {
		t.Fatal("expected one corrupt file to fail the listing")
	}
}

func TestListUnknownCategory(t *testing.T) {
	if _, err := NewStore(fstest.MapFS{}).List("blog"); err == nil {
		t.Fatal("expected error for missing category directory")
	}
	if _, err := NewStore(fstest.MapFS{}).List("../etc"); err == nil {
		t.Fatal("expected error for invalid category")
	}
}

func TestSortByPublished(t *testing.T) {
	listing := Listing{
		{Slug: "may", Metadata: Metadata{KeyPublishedAt: "2021-05-01"}},
		{Slug: "june", Metadata: Metadata{KeyPublishedAt: "2021-06-01"}},
		{Slug: "tie-1", Metadata: Metadata{KeyPublishedAt: "2020-01-01"}},
		{Slug: "tie-2", Metadata: Metadata{KeyPublishedAt: "2020-01-01"}},
		{Slug: "jan", Metadata: Metadata{KeyPublishedAt: "2021-01-15"}},
	}
	listing.SortByPublished()
	want := []string{"june", "may", "jan", "tie-1", "tie-2"}
	for i, e := range listing {
		if e.Slug != want[i] {
			t.Errorf("listing[%d] = %q, want %q", i, e.Slug, want[i])
		}
	}
	for i := 1; i < len(listing); i++ {
		if listing[i-1].Metadata.PublishedAt() < listing[i].Metadata.PublishedAt() {
			t.Errorf("listing not non-increasing at %d", i)
		}
	}
}

func TestStaticPaths(t *testing.T) {
	fsys := fstest.MapFS{
		"blog/first-post.mdx":  post("First", "2021-01-01", "x"),
		"blog/second-post.mdx": post("Second", "2021-02-01", "y"),
	}
	paths, err := NewStore(fsys).StaticPaths("blog")
	if err != nil {
		t.Fatalf("StaticPaths failed: %v", err)
	}
	if len(paths) != 2 || paths[0] != "first-post" || paths[1] != "second-post" {
		t.Errorf("StaticPaths = %v", paths)
	}
	for _, p := range paths {
		if p == "missing" {
			t.Error("slug without a file must not be a static path")
		}
	}
}

func TestGet(t *testing.T) {
	fsys := fstest.MapFS{
		"blog/hello.mdx": post("Hello", "2021-05-01", "World"),
	}
	s := NewStore(fsys)
	item, err := s.Get("blog", "hello")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if item.Slug != "hello" || item.Metadata.Title() != "Hello" {
		t.Errorf("item = %+v", item)
	}
	if len(item.Body) == 0 {
		t.Error("body should not be empty")
	}
}

func TestGetNotFound(t *testing.T) {
	fsys := fstest.MapFS{
		"blog/hello.mdx": post("Hello", "2021-05-01", "World"),
	}
	s := NewStore(fsys)
	for _, slug := range []string{"missing", "hello.mdx", "../blog/hello", "", ".."} {
		if _, err := s.Get("blog", slug); !errors.Is(err, ErrNotFound) {
			t.Errorf("Get(%q) err = %v, want ErrNotFound", slug, err)
		}
	}
}
