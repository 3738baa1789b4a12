package render

import "strings"

var (
	textEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
	)

	// Attribute values also encode whitespace that would otherwise be
	// normalised by the parser.
	attrEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
		"\n", "&#10;",
		"\r", "&#13;",
		"\t", "&#9;",
	)
)

// escapeHTML escapes text content.
func escapeHTML(s string) string {
	return textEscaper.Replace(s)
}

// escapeAttr escapes an attribute value.
func escapeAttr(s string) string {
	return attrEscaper.Replace(s)
}
