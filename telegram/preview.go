package telegram

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
)

// previewMarkdown renders markdown-ish post content for Telegram.
var previewMarkdown = goldmark.New()

// RenderPreview converts generated post content into Telegram-safe
// HTML. Telegram accepts only a small inline tag set, so block tags
// emitted by the markdown renderer are flattened back to newlines.
func RenderPreview(content string) string {
	var buf bytes.Buffer
	if err := previewMarkdown.Convert([]byte(content), &buf); err != nil {
		return escapeHTML(content)
	}
	return flattenBlocks(buf.String())
}

var blockFlattener = strings.NewReplacer(
	"<p>", "",
	"</p>", "\n",
	"<h1>", "<b>", "</h1>", "</b>\n",
	"<h2>", "<b>", "</h2>", "</b>\n",
	"<h3>", "<b>", "</h3>", "</b>\n",
	"<ul>", "", "</ul>", "",
	"<ol>", "", "</ol>", "",
	"<li>", "• ", "</li>", "\n",
	"<em>", "<i>", "</em>", "</i>",
	"<strong>", "<b>", "</strong>", "</b>",
	"<br>", "\n", "<br/>", "\n", "<br />", "\n",
)

func flattenBlocks(html string) string {
	return strings.TrimSpace(blockFlattener.Replace(html))
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

func escapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}
