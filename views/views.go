// Package views renders the site pages. Page layouts are html/template files
// embedded in the binary and exposed as templ components, so handlers and the
// static exporter render them the same way.
package views

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/a-h/templ"

	"github.com/thefrontweb/frontweb/content"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = parsePages("index.html", "article.html", "message.html")

// parsePages gives every page its own copy of the base layout, since each page
// file defines its own "content" block.
func parsePages(names ...string) map[string]*template.Template {
	base := template.Must(template.ParseFS(templateFS, "templates/base.html"))
	out := make(map[string]*template.Template, len(names))
	for _, name := range names {
		t := template.Must(template.Must(base.Clone()).ParseFS(templateFS, "templates/"+name))
		out[name] = t.Lookup(name)
	}
	return out
}

// Index renders the listing page, one card per entry in listing order.
func Index(cfg SiteConfig, listing content.Listing) (templ.Component, error) {
	cards := make([]Card, 0, len(listing))
	for _, e := range listing {
		date, err := CardDate(e.Metadata.PublishedAt())
		if err != nil {
			return nil, fmt.Errorf("views: %s: %w", e.Slug, err)
		}
		cards = append(cards, Card{
			Title:   e.Metadata.Title(),
			Date:    date,
			Summary: e.Metadata.Summary(),
			Href:    ArticlePath(e.Slug),
		})
	}
	meta := PageMeta{
		Title:       orDefault(cfg.ListingTitle, cfg.Name),
		Description: orDefault(cfg.ListingDescription, cfg.Description),
		URL:         BuildURL(cfg.URL),
		OGType:      "website",
	}
	data := IndexPage{
		Page:    Page{Site: cfg, Meta: meta, JSONLD: template.JS(WebsiteJsonLD(cfg))},
		Heading: meta.Title,
		Cards:   cards,
	}
	return templ.FromGoHTML(pages["index.html"], data), nil
}

// ArticleMeta derives the head metadata of an article, falling back to site
// defaults for missing fields.
func ArticleMeta(cfg SiteConfig, item content.Item) (PageMeta, error) {
	published, err := ISODate(item.Metadata.PublishedAt())
	if err != nil {
		return PageMeta{}, fmt.Errorf("views: %s: %w", item.Slug, err)
	}
	meta := PageMeta{
		Title:         cfg.Name,
		Description:   orDefault(PlainText(item.Metadata.Summary()), cfg.Description),
		URL:           BuildURL(cfg.URL, item.Slug),
		OGType:        "article",
		PublishedTime: published,
	}
	if title := item.Metadata.Title(); title != "" {
		meta.Title = cfg.Name + " - " + title
	}
	return meta, nil
}

// Article renders one article page around body, the transformed content.
func Article(cfg SiteConfig, item content.Item, body templ.Component) (templ.Component, error) {
	meta, err := ArticleMeta(cfg, item)
	if err != nil {
		return nil, err
	}
	date, err := ArticleDate(item.Metadata.PublishedAt())
	if err != nil {
		return nil, fmt.Errorf("views: %s: %w", item.Slug, err)
	}
	title := item.Metadata.Title()
	jsonLD := template.JS(BlogPostingJsonLD(cfg, meta, title))
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		bodyHTML, err := templ.ToGoHTML(ctx, body)
		if err != nil {
			return err
		}
		data := ArticlePage{
			Page:  Page{Site: cfg, Meta: meta, JSONLD: jsonLD},
			Title: title,
			Date:  date,
			Body:  bodyHTML,
		}
		return templ.FromGoHTML(pages["article.html"], data).Render(ctx, w)
	}), nil
}

func message(cfg SiteConfig, title, heading, msg string) templ.Component {
	meta := PageMeta{
		Title:       title + " - " + cfg.Name,
		Description: cfg.Description,
		URL:         BuildURL(cfg.URL),
		OGType:      "website",
	}
	data := MessagePage{
		Page:    Page{Site: cfg, Meta: meta, JSONLD: template.JS(WebsiteJsonLD(cfg))},
		Heading: heading,
		Message: msg,
	}
	return templ.FromGoHTML(pages["message.html"], data)
}

// NotFound renders the 404 page.
func NotFound(cfg SiteConfig) templ.Component {
	return message(cfg, "Not Found", "404", "This page could not be found.")
}

// ServerError renders the 500 page.
func ServerError(cfg SiteConfig) templ.Component {
	return message(cfg, "Error", "Something went wrong", "Please try again later.")
}
