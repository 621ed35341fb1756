// Package markdown renders the managed README block for the landing page.
package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var renderer = goldmark.New(goldmark.WithExtensions(extension.GFM))

// RenderHTML converts a Markdown fragment to HTML. Raw HTML in the source
// (such as marker comments) is omitted by goldmark's safe default.
func RenderHTML(src []byte) (string, error) {
	var buf bytes.Buffer
	if err := renderer.Convert(src, &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}
