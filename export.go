package frontweb

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/a-h/templ"
	"golang.org/x/sync/errgroup"
)

// ExportResult summarises a static export.
type ExportResult struct {
	Pages   int // HTML pages written, including index.html and 404.html
	Assets  int // files written under public/
	Resized int // images scaled down on the way
}

// Export renders the whole site into outDir: the listing, one page per static
// path, the not-found page, sitemap, feed, robots.txt and public assets.
// outDir is emptied first so removed articles do not linger.
func (a *App) Export(ctx context.Context, outDir string) (ExportResult, error) {
	var res ExportResult
	if err := a.checkOutDir(outDir); err != nil {
		return res, err
	}
	if err := os.RemoveAll(outDir); err != nil {
		return res, fmt.Errorf("frontweb: clean %s: %w", outDir, err)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return res, fmt.Errorf("frontweb: create %s: %w", outDir, err)
	}

	index, err := a.indexPage()
	if err != nil {
		return res, err
	}
	if err := writeComponent(ctx, filepath.Join(outDir, "index.html"), index); err != nil {
		return res, err
	}
	res.Pages++

	slugs, err := a.Content.StaticPaths(a.Config.Category)
	if err != nil {
		return res, err
	}
	seen := make(map[string]bool, len(slugs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, slug := range slugs {
		if seen[slug] {
			continue
		}
		seen[slug] = true
		slug := slug
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			page, err := a.articlePage(slug)
			if err != nil {
				return err
			}
			return writeComponent(gctx, filepath.Join(outDir, slug, "index.html"), page)
		})
	}
	if err := g.Wait(); err != nil {
		return res, err
	}
	res.Pages += len(seen)

	if err := writeComponent(ctx, filepath.Join(outDir, "404.html"), a.notFoundPage()); err != nil {
		return res, err
	}
	res.Pages++

	listing, err := a.listing()
	if err != nil {
		return res, err
	}
	var sitemap, feed bytes.Buffer
	if err := writeSitemap(&sitemap, a.Config.URL, listing); err != nil {
		return res, err
	}
	if err := writeRSS(&feed, a.Config, listing); err != nil {
		return res, err
	}
	files := map[string][]byte{
		"sitemap.xml": sitemap.Bytes(),
		"feed.xml":    feed.Bytes(),
		"robots.txt":  []byte(a.robotsTxt()),
	}
	for name, data := range files {
		if err := writeFile(filepath.Join(outDir, name), data); err != nil {
			return res, err
		}
	}

	if err := a.exportAssets(ctx, filepath.Join(outDir, "public"), &res); err != nil {
		return res, err
	}
	a.Echo.Logger.Infof("exported %d pages and %d assets to %s", res.Pages, res.Assets, outDir)
	return res, nil
}

// checkOutDir refuses targets whose removal would destroy the site sources:
// the working, content or static dir, or any directory containing one of them.
func (a *App) checkOutDir(outDir string) error {
	abs, err := filepath.Abs(outDir)
	if err != nil {
		return fmt.Errorf("frontweb: resolve %s: %w", outDir, err)
	}
	guarded := []string{a.Config.ContentDir, a.Config.StaticDir}
	if cwd, err := os.Getwd(); err == nil {
		guarded = append(guarded, cwd)
	}
	for _, dir := range guarded {
		d, err := filepath.Abs(dir)
		if err != nil {
			return fmt.Errorf("frontweb: resolve %s: %w", dir, err)
		}
		if contains(abs, d) {
			return fmt.Errorf("frontweb: refusing to export into %s: it contains %s", outDir, dir)
		}
	}
	return nil
}

// contains reports whether dir is path or one of its ancestors.
func contains(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

func (a *App) exportAssets(ctx context.Context, dst string, res *ExportResult) error {
	embedded, err := fs.Sub(EmbeddedAssets, "embedded")
	if err != nil {
		return err
	}
	for _, name := range []string{"theme.js", "site.css"} {
		data, err := fs.ReadFile(embedded, name)
		if err != nil {
			return err
		}
		if err := writeFile(filepath.Join(dst, name), data); err != nil {
			return err
		}
		res.Assets++
	}
	css, err := a.syntaxCSS()
	if err != nil {
		return err
	}
	if err := writeFile(filepath.Join(dst, "syntax.css"), []byte(css)); err != nil {
		return err
	}
	res.Assets++

	src := a.Config.StaticDir
	if _, err := os.Stat(src); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		resized, err := copyAsset(path, filepath.Join(dst, rel))
		if err != nil {
			return err
		}
		res.Assets++
		if resized {
			res.Resized++
		}
		return nil
	})
}

// copyAsset copies src to dst, scaling down oversized raster images.
func copyAsset(src, dst string) (bool, error) {
	data, err := os.ReadFile(src)
	if err != nil {
		return false, fmt.Errorf("frontweb: read %s: %w", src, err)
	}
	resized := false
	if isRaster(src) {
		out, ok, err := optimizeImage(bytes.NewReader(data))
		if err != nil {
			return false, fmt.Errorf("frontweb: %s: %w", src, err)
		}
		if ok {
			data, resized = out, true
		}
	}
	return resized, writeFile(dst, data)
}

func writeComponent(ctx context.Context, path string, cmp templ.Component) error {
	var buf bytes.Buffer
	if err := cmp.Render(ctx, &buf); err != nil {
		return fmt.Errorf("frontweb: render %s: %w", path, err)
	}
	return writeFile(path, buf.Bytes())
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("frontweb: create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("frontweb: write %s: %w", path, err)
	}
	return nil
}
