package markup

import (
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

type GoMarkdownRenderer struct {
	htmlFlags  html.Flags
	extensions parser.Extensions
}

func NewGoMarkdown() *GoMarkdownRenderer {
	return &GoMarkdownRenderer{
		htmlFlags:  html.CommonFlags | html.HrefTargetBlank,
		extensions: parser.CommonExtensions | parser.AutoHeadingIDs,
	}
}

// Render builds a fresh parser and renderer per call: neither is safe to
// share between concurrent requests.
func (r *GoMarkdownRenderer) Render(src []byte) ([]byte, error) {
	p := parser.NewWithExtensions(r.extensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: r.htmlFlags})
	return markdown.ToHTML(src, p, renderer), nil
}
