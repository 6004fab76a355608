package frontweb

import "embed"

// EmbeddedAssets contains static assets shipped with the site:
// theme.js (light/dark toggle) and site.css
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
