package frontweb

import (
	"fmt"
	"strings"

	"github.com/a-h/templ"

	"github.com/thefrontweb/frontweb/content"
	"github.com/thefrontweb/frontweb/markdown"
	"github.com/thefrontweb/frontweb/views"
)

// listing reads every article of the configured category, newest first.
func (a *App) listing() (content.Listing, error) {
	listing, err := a.Content.List(a.Config.Category)
	if err != nil {
		return nil, err
	}
	listing.SortByPublished()
	return listing, nil
}

func (a *App) indexPage() (templ.Component, error) {
	listing, err := a.listing()
	if err != nil {
		return nil, err
	}
	return views.Index(a.Config.views(), listing)
}

// articlePage returns content.ErrNotFound when slug is not a static path.
func (a *App) articlePage(slug string) (templ.Component, error) {
	item, err := a.Content.Get(a.Config.Category, slug)
	if err != nil {
		return nil, err
	}
	doc, err := a.Markdown.Transform(item.Body)
	if err != nil {
		return nil, fmt.Errorf("frontweb: transform %s: %w", slug, err)
	}
	return views.Article(a.Config.views(), item, markdown.Markdown(doc))
}

func (a *App) notFoundPage() templ.Component {
	return views.NotFound(a.Config.views())
}

func (a *App) syntaxCSS() (string, error) {
	return markdown.StyleCSS(a.Markdown.Style())
}

func (a *App) robotsTxt() string {
	return fmt.Sprintf("User-agent: *\nAllow: /\n\nSitemap: %s/sitemap.xml\n", strings.TrimRight(a.Config.URL, "/"))
}
