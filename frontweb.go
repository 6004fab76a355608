// Package frontweb is a personal blog front-end built on Echo and templ.
// Articles live as Markdown/MDX files with front matter on disk; every request
// reads them afresh, transforms the body and renders a listing page or an
// article page with SEO metadata. The same renderers drive a static export.
package frontweb

import (
	"context"
	"io/fs"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"

	"github.com/thefrontweb/frontweb/content"
	"github.com/thefrontweb/frontweb/markdown"
)

// App wires together the content store, the markdown pipeline, the views and
// the Echo server.
type App struct {
	Config   SiteConfig
	Echo     *echo.Echo
	Content  *content.Store
	Markdown *markdown.Pipeline

	customRoutes []func(*App)
}

// New creates an App with the given configuration. Routes and middleware are
// registered immediately so the Echo instance can be served or tested.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
	}
	a.Echo.HideBanner = true

	for _, opt := range opts {
		opt(a)
	}
	if a.Content == nil {
		a.Content = content.NewDirStore(a.Config.ContentDir)
	}
	a.Markdown = markdown.New(markdown.WithStyle(a.Config.HighlightStyle))

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
	return a
}

// Start serves HTTP on Config.Addr until the server is shut down.
func (a *App) Start() error {
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (a *App) Shutdown(ctx context.Context) error {
	return a.Echo.Shutdown(ctx)
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Embedded framework assets are served under /public/ and fall through
	// to the user's static dir.
	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.FileServer(http.FS(embeddedFS))
	e.GET("/public/theme.js", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))
	e.GET("/public/site.css", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))
	e.GET("/public/syntax.css", a.handleSyntaxCSS)
	e.Static("/public", a.Config.StaticDir)

	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/", a.handleIndex)
	e.GET("/:slug/", a.handleArticle)
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
