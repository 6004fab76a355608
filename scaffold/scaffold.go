// Package scaffold provides the embedded templates used by `frontweb new`
// and `frontweb init`.
package scaffold

import "embed"

// Templates contains all scaffold template files.
// Files use Go text/template syntax and have a .tmpl suffix.
//
//go:embed all:templates
var Templates embed.FS

const (
	// Post is the template of a new article.
	Post = "templates/post.mdx.tmpl"
	// Site is the root of the starter site tree.
	Site = "templates/site"
)
