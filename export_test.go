package frontweb

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestExport(t *testing.T) {
	static := t.TempDir()
	writePNG(t, filepath.Join(static, "wide.png"), 1600, 80)
	writePNG(t, filepath.Join(static, "small.png"), 16, 16)
	if err := os.MkdirAll(filepath.Join(static, "fonts"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(static, "fonts", "notes.txt"), []byte("keep"), 0o644); err != nil {
		t.Fatal(err)
	}

	a := New(SiteConfig{URL: "https://example.com", StaticDir: static}, WithContent(testFS()))
	out := filepath.Join(t.TempDir(), "out")
	if err := os.MkdirAll(filepath.Join(out, "stale"), 0o755); err != nil {
		t.Fatal(err)
	}

	res, err := a.Export(context.Background(), out)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if res.Pages != 4 {
		t.Errorf("pages = %d, want 4", res.Pages)
	}
	if res.Assets != 6 {
		t.Errorf("assets = %d, want 6", res.Assets)
	}
	if res.Resized != 1 {
		t.Errorf("resized = %d, want 1", res.Resized)
	}

	for _, rel := range []string{
		"index.html", "404.html", "sitemap.xml", "feed.xml", "robots.txt",
		"hello/index.html", "newer/index.html",
		"public/theme.js", "public/site.css", "public/syntax.css", "public/fonts/notes.txt",
	} {
		if _, err := os.Stat(filepath.Join(out, filepath.FromSlash(rel))); err != nil {
			t.Errorf("missing %s", rel)
		}
	}

	entries, err := os.ReadDir(out)
	if err != nil {
		t.Fatal(err)
	}
	var pages []string
	for _, e := range entries {
		if e.IsDir() && e.Name() != "public" {
			pages = append(pages, e.Name())
		}
	}
	sort.Strings(pages)
	if strings.Join(pages, ",") != "hello,newer" {
		t.Errorf("article dirs = %v, want exactly the static paths", pages)
	}

	article, err := os.ReadFile(filepath.Join(out, "hello", "index.html"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(article), `<h1 class="article-title">Hello</h1>`) {
		t.Errorf("exported article missing title")
	}

	f, err := os.Open(filepath.Join(out, "public", "wide.png"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != maxImageWidth || cfg.Height != 60 {
		t.Errorf("wide.png = %dx%d, want %dx60", cfg.Width, cfg.Height, maxImageWidth)
	}

	small, err := os.ReadFile(filepath.Join(out, "public", "small.png"))
	if err != nil {
		t.Fatal(err)
	}
	orig, _ := os.ReadFile(filepath.Join(static, "small.png"))
	if !bytes.Equal(small, orig) {
		t.Errorf("small.png should be copied verbatim")
	}
}

func TestExportRefusesSourceDirs(t *testing.T) {
	root := t.TempDir()
	site := filepath.Join(root, "site")
	contentDir := filepath.Join(site, "data")
	article := filepath.Join(contentDir, "blog", "hello.md")
	if err := os.MkdirAll(filepath.Dir(article), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(article, []byte("---\ntitle: Hello\n---\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	static := filepath.Join(root, "assets", "public")
	if err := os.MkdirAll(static, 0o755); err != nil {
		t.Fatal(err)
	}

	a := New(SiteConfig{ContentDir: contentDir, StaticDir: static})
	for _, dir := range []string{
		contentDir,
		site,
		root,
		filepath.Dir(root),
		static,
		filepath.Dir(static),
		".",
		"..",
		string(filepath.Separator),
	} {
		if _, err := a.Export(context.Background(), dir); err == nil {
			t.Errorf("Export(%q) should fail", dir)
		}
	}
	if _, err := os.Stat(article); err != nil {
		t.Errorf("content removed: %v", err)
	}
	if _, err := os.Stat(static); err != nil {
		t.Errorf("static dir removed: %v", err)
	}
}

func TestContains(t *testing.T) {
	tests := []struct {
		dir, path string
		want      bool
	}{
		{"/a", "/a", true},
		{"/a", "/a/b/c", true},
		{"/", "/a", true},
		{"/a/b", "/a", false},
		{"/a/b", "/a/bc", false},
		{"/a/..b", "/a/..b/c", true},
		{"/x", "/a", false},
	}
	for _, tt := range tests {
		if got := contains(tt.dir, tt.path); got != tt.want {
			t.Errorf("contains(%q, %q) = %v, want %v", tt.dir, tt.path, got, tt.want)
		}
	}
}

func TestExportCanceled(t *testing.T) {
	a := New(SiteConfig{StaticDir: t.TempDir()}, WithContent(testFS()))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := a.Export(ctx, filepath.Join(t.TempDir(), "out")); err == nil {
		t.Fatal("expected error for canceled context")
	}
}

func TestOptimizeImageKeepsNarrow(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 100, 50))); err != nil {
		t.Fatal(err)
	}
	data, resized, err := optimizeImage(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if resized || data != nil {
		t.Errorf("narrow image should be left alone")
	}
}

func TestOptimizeImageInvalid(t *testing.T) {
	if _, _, err := optimizeImage(strings.NewReader("not an image")); err == nil {
		t.Fatal("expected decode error")
	}
}
