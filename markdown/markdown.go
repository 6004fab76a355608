package markdown

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Markdown returns a templ.Component that writes the transformed document.
func Markdown(doc Document) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, doc.HTML)
		return err
	})
}
