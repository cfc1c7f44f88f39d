package markup

import (
	"bytes"

	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

type GoldmarkRenderer struct {
	md goldmark.Markdown
}

func NewGoldmark() *GoldmarkRenderer {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.TaskList),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)
	return &GoldmarkRenderer{md}
}

func (r *GoldmarkRenderer) Render(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(src, &buf); err != nil {
		return nil, errors.Wrap(err, "goldmark convert")
	}
	return buf.Bytes(), nil
}
