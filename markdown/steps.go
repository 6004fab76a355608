package markdown

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// collect returns every node below doc for which keep reports true. Steps
// mutate the tree only after collecting, never while walking it.
func collect(doc ast.Node, keep func(ast.Node) bool) []ast.Node {
	var out []ast.Node
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering && keep(n) {
			out = append(out, n)
		}
		return ast.WalkContinue, nil
	})
	return out
}

func isHeading(n ast.Node) bool {
	_, ok := n.(*ast.Heading)
	return ok
}

func headingID(h ast.Node) string {
	v, ok := h.AttributeString("id")
	if !ok {
		return ""
	}
	switch id := v.(type) {
	case []byte:
		return string(id)
	case string:
		return id
	}
	return ""
}

type headingIDs struct{}

// HeadingIDs gives every heading a GitHub-style id derived from its text.
// Repeated ids get a numeric suffix; ids already present are kept.
func HeadingIDs() Step { return headingIDs{} }

func (headingIDs) Name() string { return "heading-ids" }

func (headingIDs) Transform(doc *ast.Document, reader text.Reader, _ parser.Context) error {
	source := reader.Source()
	seen := map[string]int{}
	for _, n := range collect(doc, isHeading) {
		if id := headingID(n); id != "" {
			seen[id]++
			continue
		}
		base := Slug(nodeText(n, source))
		if base == "" {
			continue
		}
		id := base
		if count := seen[base]; count > 0 {
			id = base + "-" + strconv.Itoa(count)
			seen[id]++
		}
		seen[base]++
		n.SetAttributeString("id", []byte(id))
	}
	return nil
}

// Slug lowercases s, drops punctuation and turns spaces into hyphens.
func Slug(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r), unicode.IsNumber(r), unicode.Is(unicode.Mn, r), r == '_', r == '-':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('-')
		}
	}
	return b.String()
}

type headingLinks struct{}

// HeadingLinks prepends a self link to every heading that has an id.
func HeadingLinks() Step { return headingLinks{} }

func (headingLinks) Name() string { return "heading-links" }

func (headingLinks) Transform(doc *ast.Document, _ text.Reader, _ parser.Context) error {
	for _, n := range collect(doc, isHeading) {
		id := headingID(n)
		if id == "" {
			continue
		}
		link := ast.NewLink()
		link.Destination = []byte("#" + id)
		link.SetAttributeString("class", []byte("anchor"))
		link.SetAttributeString("tabindex", []byte("-1"))
		icon := ast.NewString([]byte(`<span class="icon icon-link"></span>`))
		icon.SetCode(true)
		link.AppendChild(link, icon)
		if first := n.FirstChild(); first != nil {
			n.InsertBefore(n, first, link)
		} else {
			n.AppendChild(n, link)
		}
	}
	return nil
}

type codeTitles struct{}

// CodeTitles reads fence infos of the form "lang:title", keeps "lang" as the
// block language and inserts a CodeTitle node holding "title" before it.
func CodeTitles() Step { return codeTitles{} }

func (codeTitles) Name() string { return "code-titles" }

func (codeTitles) Transform(doc *ast.Document, reader text.Reader, _ parser.Context) error {
	source := reader.Source()
	blocks := collect(doc, func(n ast.Node) bool {
		_, ok := n.(*ast.FencedCodeBlock)
		return ok
	})
	for _, n := range blocks {
		fence := n.(*ast.FencedCodeBlock)
		if fence.Info == nil {
			continue
		}
		seg := fence.Info.Segment
		info := seg.Value(source)
		word := info
		if sp := bytes.IndexByte(info, ' '); sp >= 0 {
			word = info[:sp]
		}
		colon := bytes.IndexByte(word, ':')
		if colon < 0 || colon == len(word)-1 {
			continue
		}
		title := append([]byte(nil), word[colon+1:]...)
		fence.Info.Segment = text.NewSegment(seg.Start, seg.Start+colon)
		parent := fence.Parent()
		parent.InsertBefore(parent, fence, NewCodeTitle(title))
	}
	return nil
}

type highlight struct{}

// Highlight replaces code blocks with chroma-tokenised markup. Tokens carry
// CSS classes; colours come from the stylesheet returned by StyleCSS.
func Highlight() Step { return highlight{} }

func (highlight) Name() string { return "highlight" }

func (highlight) Transform(doc *ast.Document, reader text.Reader, _ parser.Context) error {
	source := reader.Source()
	blocks := collect(doc, func(n ast.Node) bool {
		switch n.(type) {
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			return true
		}
		return false
	})
	for _, n := range blocks {
		var lang string
		if fence, ok := n.(*ast.FencedCodeBlock); ok {
			lang = string(fence.Language(source))
		}
		var code bytes.Buffer
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			code.Write(seg.Value(source))
		}
		out, err := highlightCode(lang, code.String())
		if err != nil {
			return err
		}
		parent := n.Parent()
		parent.ReplaceChild(parent, n, NewHighlighted(lang, out))
	}
	return nil
}

var tokenFormatter = chromahtml.New(
	chromahtml.WithClasses(true),
	chromahtml.PreventSurroundingPre(true),
)

func highlightCode(lang, code string) ([]byte, error) {
	lexer := lexers.Fallback
	if lang != "" {
		if l := lexers.Get(lang); l != nil {
			lexer = l
		}
	}
	lexer = chroma.Coalesce(lexer)
	it, err := lexer.Tokenise(nil, code)
	if err != nil {
		return nil, fmt.Errorf("tokenise %q: %w", lang, err)
	}
	var buf bytes.Buffer
	if err := tokenFormatter.Format(&buf, styles.Fallback, it); err != nil {
		return nil, fmt.Errorf("format %q: %w", lang, err)
	}
	return buf.Bytes(), nil
}

// StyleCSS returns the stylesheet for highlighted code in the named chroma
// style. Unknown names fall back to chroma's default style.
func StyleCSS(name string) (string, error) {
	var buf bytes.Buffer
	if err := tokenFormatter.WriteCSS(&buf, styles.Get(name)); err != nil {
		return "", fmt.Errorf("markdown: style css: %w", err)
	}
	return buf.String(), nil
}
