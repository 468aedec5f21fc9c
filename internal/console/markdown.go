package console

import (
	"bytes"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	md       = goldmark.New(goldmark.WithExtensions(extension.GFM))
	sanitize = bluemonday.UGCPolicy()
)

// renderMarkdown turns a product description into sanitized HTML.
func renderMarkdown(src *string) template.HTML {
	if src == nil || *src == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := md.Convert([]byte(*src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(*src))
	}
	return template.HTML(sanitize.SanitizeBytes(buf.Bytes()))
}
