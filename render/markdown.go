package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/russross/blackfriday/v2"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/sioncodes/blog/paths"
)

// Renderer converts Markdown to sanitized HTML.
type Renderer interface {
	Render(markdown string) (template.HTML, error)
}

// NewRenderer returns the Renderer for the named engine, "blackfriday" or
// "goldmark". An empty name selects blackfriday. Root-relative link and
// image destinations in the Markdown are passed through r; r may be nil.
func NewRenderer(engine string, r *paths.Resolver) (Renderer, error) {
	policy := bluemonday.UGCPolicy()
	switch engine {
	case "", "blackfriday":
		return &blackfridayRenderer{resolver: r, policy: policy}, nil
	case "goldmark":
		opts := []parser.Option{parser.WithAutoHeadingID()}
		if r != nil {
			opts = append(opts, parser.WithASTTransformers(util.Prioritized(linkTransformer{r}, 999)))
		}
		return &goldmarkRenderer{
			md: goldmark.New(
				goldmark.WithExtensions(extension.GFM, extension.Footnote),
				goldmark.WithParserOptions(opts...),
				goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
			),
			policy: policy,
		}, nil
	}
	return nil, fmt.Errorf("NewRenderer: unknown markdown engine %q", engine)
}

// resolveLink applies the base path to root-relative destinations. Absolute,
// protocol-relative, fragment and relative links are left alone.
func resolveLink(dest []byte, r *paths.Resolver) []byte {
	s := string(dest)
	if !strings.HasPrefix(s, "/") || strings.HasPrefix(s, "//") {
		return dest
	}
	return []byte(r.Asset(s))
}

type blackfridayRenderer struct {
	resolver *paths.Resolver
	policy   *bluemonday.Policy
}

func (r *blackfridayRenderer) Render(markdown string) (template.HTML, error) {
	md := blackfriday.New(blackfriday.WithExtensions(blackfriday.CommonExtensions | blackfriday.Footnotes))
	doc := md.Parse([]byte(markdown))
	if r.resolver != nil {
		doc.Walk(func(n *blackfriday.Node, entering bool) blackfriday.WalkStatus {
			if entering && (n.Type == blackfriday.Link || n.Type == blackfriday.Image) {
				n.LinkData.Destination = resolveLink(n.LinkData.Destination, r.resolver)
			}
			return blackfriday.GoToNext
		})
	}
	renderer := blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{Flags: blackfriday.CommonHTMLFlags})
	var buf bytes.Buffer
	renderer.RenderHeader(&buf, doc)
	doc.Walk(func(n *blackfriday.Node, entering bool) blackfriday.WalkStatus {
		return renderer.RenderNode(&buf, n, entering)
	})
	renderer.RenderFooter(&buf, doc)
	return template.HTML(r.policy.SanitizeBytes(buf.Bytes())), nil
}

// goldmarkRenderer lets raw HTML through goldmark and relies on the policy
// to clean it.
type goldmarkRenderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func (r *goldmarkRenderer) Render(markdown string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("Render: %w", err)
	}
	return template.HTML(r.policy.SanitizeBytes(buf.Bytes())), nil
}

// linkTransformer rewrites link and image destinations in the goldmark AST.
type linkTransformer struct {
	r *paths.Resolver
}

func (t linkTransformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := n.(type) {
		case *ast.Link:
			v.Destination = resolveLink(v.Destination, t.r)
		case *ast.Image:
			v.Destination = resolveLink(v.Destination, t.r)
		}
		return ast.WalkContinue, nil
	})
}
