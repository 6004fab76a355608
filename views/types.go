package views

import "html/template"

// SiteConfig holds the site-wide values every page reads. Nothing in the
// templates is hardcoded beyond markup.
type SiteConfig struct {
	Name               string // og:site_name, <title> prefix and nav brand
	URL                string // canonical base URL
	Description        string // fallback meta description
	Author             string // JSON-LD author
	TwitterHandle      string // twitter:site, omitted when empty
	ListingTitle       string // <title> and heading of the index page
	ListingDescription string // meta description of the index page
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title         string
	Description   string
	URL           string // canonical + og:url
	OGType        string // "website" or "article"
	PublishedTime string // article:published_time, RFC3339
}

// Card is one entry of the index listing.
type Card struct {
	Title   string
	Date    string
	Summary string
	Href    string
}

// Page is the data shared by every template.
type Page struct {
	Site   SiteConfig
	Meta   PageMeta
	JSONLD template.JS
}

// IndexPage is the data of the listing template.
type IndexPage struct {
	Page
	Heading string
	Cards   []Card
}

// ArticlePage is the data of the article template.
type ArticlePage struct {
	Page
	Title string
	Date  string
	Body  template.HTML
}

// MessagePage is the data of the not-found and error templates.
type MessagePage struct {
	Page
	Heading string
	Message string
}
