// Package conv renders model replies (markdown) for the different transports.
package conv

import (
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/inbucket/html2text"
	"github.com/microcosm-cc/bluemonday"
)

var (
	extensions = parser.CommonExtensions | parser.NoEmptyLineBeforeBlock
	htmlFlags  = html.CommonFlags | html.HrefTargetBlank
	tgPolicy   = bluemonday.NewPolicy()
	webPolicy  = bluemonday.UGCPolicy()
)

func init() {
	// Allowed tags https://core.telegram.org/bots/api#html-style
	tgPolicy.AllowElements("b", "strong", "i", "em", "u", "ins", "s", "strike", "del", "code", "pre", "blockquote")
	tgPolicy.AllowAttrs("href").OnElements("a")
	tgPolicy.AllowAttrs("class").OnElements("code")

	webPolicy.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code")
}

// render parses md with tables and fenced code enabled. A fresh parser is needed per call.
func render(md []byte) []byte {
	p := parser.NewWithExtensions(extensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: htmlFlags})
	return markdown.Render(p.Parse(md), renderer)
}

// MarkdownToHTML renders a reply for browsers: headings, lists, tables and code blocks
// survive; scripts, styles and event handlers do not.
func MarkdownToHTML(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	return string(webPolicy.SanitizeBytes(render([]byte(md))))
}

// MarkdownToTelegramHTML keeps only the subset of tags Telegram's HTML parse mode accepts.
func MarkdownToTelegramHTML(md []byte) string {
	return string(tgPolicy.SanitizeBytes(render(md)))
}

// MarkdownToPlain flattens a reply to plain text for surfaces without markup.
func MarkdownToPlain(md string) (string, error) {
	if strings.TrimSpace(md) == "" {
		return "", nil
	}
	return html2text.FromString(MarkdownToHTML(md), html2text.Options{
		OmitLinks:    false,
		PrettyTables: true,
	})
}
