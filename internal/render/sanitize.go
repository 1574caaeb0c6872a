package render

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy = bluemonday.StrictPolicy()
	markupPolicy = newMarkupPolicy()
)

// newMarkupPolicy keeps the inline markup column hooks produce, such as
// the required-header span, and drops everything else unsafe.
func newMarkupPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class", "title").OnElements("span")
	p.AllowStyles("overflow", "white-space", "text-overflow").OnElements("span")
	return p
}

// PlainText reduces cell markup to the text a terminal can show.
func PlainText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}
	return html.UnescapeString(strictPolicy.Sanitize(s))
}

// SafeMarkup strips unsafe markup and keeps inline formatting.
func SafeMarkup(s string) string {
	return markupPolicy.Sanitize(s)
}
