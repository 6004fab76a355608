// Package markdown turns Markdown/MDX article bodies into HTML through an
// explicit, ordered list of AST transform steps run on a goldmark tree.
package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Step is one tree transform of the pipeline. Steps mutate doc in place.
type Step interface {
	Name() string
	Transform(doc *ast.Document, reader text.Reader, pc parser.Context) error
}

// Heading is one entry of a document outline.
type Heading struct {
	Level int    `json:"level"`
	ID    string `json:"id"`
	Text  string `json:"text"`
}

// Document is the transformed form of an article body. It is plain data so it
// can be serialised and handed to any renderer.
type Document struct {
	HTML     string    `json:"html"`
	Headings []Heading `json:"headings"`
}

// Pipeline converts bodies with a fixed step sequence. It keeps no per-call
// state and is safe for concurrent use.
type Pipeline struct {
	steps      []Step
	components Components
	style      string
	md         goldmark.Markdown
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithStyle sets the chroma style used for the generated stylesheet.
func WithStyle(name string) Option {
	return func(p *Pipeline) {
		if name != "" {
			p.style = name
		}
	}
}

// WithComponents replaces the MDX component registry.
func WithComponents(c Components) Option {
	return func(p *Pipeline) {
		p.components = c
	}
}

// DefaultSteps is the transform sequence applied to every body, in order.
func DefaultSteps() []Step {
	return []Step{
		HeadingIDs(),
		HeadingLinks(),
		CodeTitles(),
		Highlight(),
	}
}

// New builds a Pipeline running DefaultSteps.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps:      DefaultSteps(),
		components: DefaultComponents(),
		style:      "dracula",
	}
	for _, opt := range opts {
		opt(p)
	}
	p.md = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithASTTransformers(util.Prioritized(&stepRunner{steps: p.steps}, 100)),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithUnsafe(),
			renderer.WithNodeRenderers(util.Prioritized(&nodeRenderer{}, 500)),
		),
	)
	return p
}

// Steps returns the step names in execution order.
func (p *Pipeline) Steps() []string {
	names := make([]string, len(p.steps))
	for i, s := range p.steps {
		names[i] = s.Name()
	}
	return names
}

// Style returns the configured chroma style name.
func (p *Pipeline) Style() string {
	return p.style
}

var stepErrKey = parser.NewContextKey()

// Transform parses body, runs every step, renders HTML and expands MDX
// components. Any failure fails the whole document.
func (p *Pipeline) Transform(body []byte) (Document, error) {
	pc := parser.NewContext()
	doc := p.md.Parser().Parse(text.NewReader(body), parser.WithContext(pc))
	if err, ok := pc.Get(stepErrKey).(error); ok && err != nil {
		return Document{}, fmt.Errorf("markdown: %w", err)
	}
	headings := collectHeadings(doc, body)

	var buf bytes.Buffer
	if err := p.md.Renderer().Render(&buf, body, doc); err != nil {
		return Document{}, fmt.Errorf("markdown: render: %w", err)
	}
	out, err := p.components.Expand(buf.Bytes())
	if err != nil {
		return Document{}, fmt.Errorf("markdown: components: %w", err)
	}
	return Document{HTML: string(out), Headings: headings}, nil
}

// stepRunner adapts the ordered steps to a single goldmark AST transformer so
// that their order never depends on transformer priorities.
type stepRunner struct {
	steps []Step
}

func (r *stepRunner) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	for _, s := range r.steps {
		if err := s.Transform(doc, reader, pc); err != nil {
			pc.Set(stepErrKey, fmt.Errorf("%s: %w", s.Name(), err))
			return
		}
	}
}

func collectHeadings(doc ast.Node, source []byte) []Heading {
	var out []Heading
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		id, _ := h.AttributeString("id")
		idBytes, _ := id.([]byte)
		out = append(out, Heading{
			Level: h.Level,
			ID:    string(idBytes),
			Text:  nodeText(h, source),
		})
		return ast.WalkSkipChildren, nil
	})
	return out
}

// nodeText concatenates the literal text below n.
func nodeText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(source))
			if t.SoftLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			if !t.IsCode() {
				buf.Write(t.Value)
			}
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}
