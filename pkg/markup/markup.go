// Package markup turns entry bodies written in Markdown into HTML.
package markup

import (
	"strings"

	"github.com/pkg/errors"
)

const (
	GoMarkdown = "gomarkdown"
	Goldmark   = "goldmark"
)

type Renderer interface {
	Render(src []byte) ([]byte, error)
}

// New returns the renderer registered under name. An empty name selects
// the gomarkdown renderer.
func New(name string) (Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", GoMarkdown:
		return NewGoMarkdown(), nil
	case Goldmark:
		return NewGoldmark(), nil
	}
	return nil, errors.Errorf("unsupported markup renderer %q", name)
}
