package markdown

import (
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// KindCodeTitle is the NodeKind of CodeTitle.
var KindCodeTitle = ast.NewNodeKind("CodeTitle")

// CodeTitle is a caption rendered above a code block.
type CodeTitle struct {
	ast.BaseBlock
	Title []byte
}

// NewCodeTitle returns a CodeTitle holding title.
func NewCodeTitle(title []byte) *CodeTitle {
	return &CodeTitle{Title: title}
}

func (n *CodeTitle) Kind() ast.NodeKind { return KindCodeTitle }

func (n *CodeTitle) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Title": string(n.Title)}, nil)
}

// KindHighlighted is the NodeKind of Highlighted.
var KindHighlighted = ast.NewNodeKind("Highlighted")

// Highlighted is a code block whose tokens were already turned into markup.
type Highlighted struct {
	ast.BaseBlock
	Language string
	Markup   []byte
}

// NewHighlighted returns a Highlighted block for lang.
func NewHighlighted(lang string, markup []byte) *Highlighted {
	return &Highlighted{Language: lang, Markup: markup}
}

func (n *Highlighted) Kind() ast.NodeKind { return KindHighlighted }

func (n *Highlighted) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Language": n.Language}, nil)
}

type nodeRenderer struct{}

func (r *nodeRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindCodeTitle, r.renderCodeTitle)
	reg.Register(KindHighlighted, r.renderHighlighted)
}

func (r *nodeRenderer) renderCodeTitle(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*CodeTitle)
	_, _ = w.WriteString(`<div class="code-title">`)
	_, _ = w.Write(util.EscapeHTML(n.Title))
	_, _ = w.WriteString("</div>\n")
	return ast.WalkSkipChildren, nil
}

func (r *nodeRenderer) renderHighlighted(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*Highlighted)
	if n.Language == "" {
		_, _ = w.WriteString(`<pre class="chroma code-block"><code>`)
	} else {
		class := "language-" + string(util.EscapeHTML([]byte(n.Language)))
		_, _ = w.WriteString(`<pre class="chroma code-block ` + class + `"><code class="` + class + `">`)
	}
	_, _ = w.Write(n.Markup)
	_, _ = w.WriteString("</code></pre>\n")
	return ast.WalkSkipChildren, nil
}
