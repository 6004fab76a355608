package frontweb

import (
	"encoding/xml"
	"io"

	"github.com/thefrontweb/frontweb/content"
	"github.com/thefrontweb/frontweb/views"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// writeSitemap lists the home page followed by every article in listing
// order. lastmod is left out for entries whose date does not parse.
func writeSitemap(w io.Writer, base string, listing content.Listing) error {
	urls := []sitemapURL{
		{Loc: views.BuildURL(base)},
	}
	for _, e := range listing {
		u := sitemapURL{Loc: views.BuildURL(base, e.Slug)}
		if t, err := views.ParseDate(e.Metadata.PublishedAt()); err == nil {
			u.LastMod = t.Format("2006-01-02")
		}
		urls = append(urls, u)
	}
	return writeXML(w, sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	})
}
