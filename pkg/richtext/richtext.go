// Package richtext cleans CMS rich-text fields for publishing and previews.
package richtext

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
)

var (
	ugcPolicy    = newUGCPolicy()
	strictPolicy = bluemonday.StrictPolicy()

	// Raw HTML passes through goldmark untouched and is cleaned by ugcPolicy.
	markdown = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(goldmarkhtml.WithUnsafe()),
	)
)

func newUGCPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.RequireNoFollowOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return p
}

// Sanitize strips scripts, handlers and other unsafe markup, keeping the
// formatting tags user generated content normally needs.
func Sanitize(html string) string {
	return strings.TrimSpace(ugcPolicy.Sanitize(html))
}

// Render converts a rich-text field to sanitized HTML. The field may be
// Markdown, HTML or a mix of both.
func Render(src string) string {
	if strings.TrimSpace(src) == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return Sanitize(src)
	}
	return Sanitize(buf.String())
}

// PlainText returns the visible text of html with whitespace collapsed.
func PlainText(html string) string {
	trimmed := strings.TrimSpace(html)
	if trimmed == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(trimmed))
	if err != nil {
		return normalizeWhitespace(strictPolicy.Sanitize(trimmed))
	}
	doc.Find("script, style, noscript").Remove()

	return normalizeWhitespace(doc.Text())
}

// Excerpt returns at most maxRunes runes of the plain text of html, cut on a
// word boundary where possible and suffixed with "..." when shortened.
func Excerpt(html string, maxRunes int) string {
	text := PlainText(html)
	if maxRunes <= 0 || utf8.RuneCountInString(text) <= maxRunes {
		return text
	}

	runes := []rune(text)
	cut := string(runes[:maxRunes])
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimSpace(cut) + "..."
}

func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
