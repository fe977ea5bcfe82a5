package article

import (
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
)

const excerptLength = 180

var stripPolicy = bluemonday.StrictPolicy()

// Excerpt renders the markdown body to HTML, strips every tag and
// collapses newlines, then cuts the plain text to 180 runes.
func Excerpt(mdBody string) string {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	rendered := markdown.ToHTML([]byte(mdBody), p, renderer)

	plain := stripPolicy.Sanitize(string(rendered))
	plain = strings.ReplaceAll(plain, "\n", " ")
	plain = strings.TrimSpace(plain)

	runes := []rune(plain)
	if len(runes) > excerptLength {
		runes = runes[:excerptLength]
	}
	return string(runes)
}
