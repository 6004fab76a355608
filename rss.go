package frontweb

import (
	"encoding/xml"
	"io"
	"time"

	"github.com/thefrontweb/frontweb/content"
	"github.com/thefrontweb/frontweb/views"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate,omitempty"`
	GUID        string `xml:"guid"`
}

func writeRSS(w io.Writer, cfg SiteConfig, listing content.Listing) error {
	base := views.BuildURL(cfg.URL)
	items := make([]rssItem, 0, len(listing))
	for _, e := range listing {
		pubDate := ""
		if t, err := views.ParseDate(e.Metadata.PublishedAt()); err == nil {
			pubDate = t.Format(time.RFC1123Z)
		}
		link := views.BuildURL(cfg.URL, e.Slug)
		items = append(items, rssItem{
			Title:       e.Metadata.Title(),
			Link:        link,
			Description: views.PlainText(e.Metadata.Summary()),
			PubDate:     pubDate,
			GUID:        link,
		})
	}
	return writeXML(w, rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       cfg.Name,
			Link:        base,
			Description: cfg.Description,
			Items:       items,
		},
	})
}
