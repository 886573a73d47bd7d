// Package sanitize neutralizes user-supplied text before it is interpolated
// into outgoing HTML email bodies.
package sanitize

import "strings"

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
	"/", "&#x2F;",
)

// EscapeHTML replaces & < > " ' / with entities in a single pass. It is not
// idempotent: escaping twice turns "&lt;" into "&amp;lt;", which still renders
// as inert text.
func EscapeHTML(text string) string {
	return htmlEscaper.Replace(text)
}

// TextToHTML escapes text and turns line breaks into <br> markers.
func TextToHTML(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(EscapeHTML(text), "\n", "<br>")
}
