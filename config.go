package frontweb

import (
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/thefrontweb/frontweb/content"
	"github.com/thefrontweb/frontweb/views"
)

// SiteConfig holds all configuration for a frontweb site.
type SiteConfig struct {
	Name          string `yaml:"name"`           // Site name (default "thefrontweb")
	URL           string `yaml:"url"`            // Canonical URL (default "http://localhost:3000")
	Description   string `yaml:"description"`    // Site description for RSS and meta tags
	Author        string `yaml:"author"`         // Author name for JSON-LD
	TwitterHandle string `yaml:"twitter_handle"` // twitter:site, e.g. "@thefrontweb"

	Addr       string `yaml:"addr"`        // Listen address (default ":3000")
	ContentDir string `yaml:"content_dir"` // Root of the content tree (default "data")
	Category   string `yaml:"category"`    // Subdirectory holding the articles (default "blog")
	StaticDir  string `yaml:"static_dir"`  // User-owned static assets (default "public")
	OutputDir  string `yaml:"output_dir"`  // Static export target (default "out")

	ListingTitle       string `yaml:"listing_title"`       // default "All Posts"
	ListingDescription string `yaml:"listing_description"` // default "Posts related to frontend web development!"
	HighlightStyle     string `yaml:"highlight_style"`     // chroma style name (default "dracula")
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "thefrontweb"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Description == "" {
		c.Description = "Articles about frontend web development and JavaScript."
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.ContentDir == "" {
		c.ContentDir = "data"
	}
	if c.Category == "" {
		c.Category = "blog"
	}
	if c.StaticDir == "" {
		c.StaticDir = "public"
	}
	if c.OutputDir == "" {
		c.OutputDir = "out"
	}
	if c.ListingTitle == "" {
		c.ListingTitle = "All Posts"
	}
	if c.ListingDescription == "" {
		c.ListingDescription = "Posts related to frontend web development!"
	}
	if c.HighlightStyle == "" {
		c.HighlightStyle = "dracula"
	}
}

// views returns the subset of the configuration the templates read.
func (c SiteConfig) views() views.SiteConfig {
	return views.SiteConfig{
		Name:               c.Name,
		URL:                c.URL,
		Description:        c.Description,
		Author:             c.Author,
		TwitterHandle:      c.TwitterHandle,
		ListingTitle:       c.ListingTitle,
		ListingDescription: c.ListingDescription,
	}
}

// LoadConfig reads the optional YAML file at path and then applies FRONTWEB_*
// environment overrides. An empty path skips the file. Defaults are filled in
// later by New.
func LoadConfig(path string) (SiteConfig, error) {
	var cfg SiteConfig
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("frontweb: read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("frontweb: parse config %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *SiteConfig) applyEnv() {
	for key, field := range map[string]*string{
		"FRONTWEB_NAME":                &c.Name,
		"FRONTWEB_URL":                 &c.URL,
		"FRONTWEB_DESCRIPTION":         &c.Description,
		"FRONTWEB_AUTHOR":              &c.Author,
		"FRONTWEB_TWITTER_HANDLE":      &c.TwitterHandle,
		"FRONTWEB_ADDR":                &c.Addr,
		"FRONTWEB_CONTENT_DIR":         &c.ContentDir,
		"FRONTWEB_CATEGORY":            &c.Category,
		"FRONTWEB_STATIC_DIR":          &c.StaticDir,
		"FRONTWEB_OUTPUT_DIR":          &c.OutputDir,
		"FRONTWEB_LISTING_TITLE":       &c.ListingTitle,
		"FRONTWEB_LISTING_DESCRIPTION": &c.ListingDescription,
		"FRONTWEB_HIGHLIGHT_STYLE":     &c.HighlightStyle,
	} {
		*field = EnvOr(key, *field)
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback runs after the built-in routes are registered.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithContent reads articles from fsys instead of Config.ContentDir.
func WithContent(fsys fs.FS) Option {
	return func(a *App) {
		a.Content = content.NewStore(fsys)
	}
}

// WithDefaults returns a copy of c with every empty field filled in.
func (c SiteConfig) WithDefaults() SiteConfig {
	c.setDefaults()
	return c
}
