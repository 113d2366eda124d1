package site

import (
	"bytes"
	"fmt"
	"html/template"
	"os"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)
}

// RenderIntro converts the markdown file at path to HTML for the top of the page.
// An empty path yields no intro.
func RenderIntro(path string) (template.HTML, error) {
	if path == "" {
		return "", nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading intro %s: %w", path, err)
	}

	var buf bytes.Buffer
	if err := newMarkdown().Convert(content, &buf); err != nil {
		return "", fmt.Errorf("converting intro %s: %w", path, err)
	}
	return template.HTML(buf.String()), nil
}
