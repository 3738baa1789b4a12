package render

// inlineElements are elements that are typically rendered inline
// and don't need newlines in pretty-printed output.
var inlineElements = map[string]bool{
	"button": true,
	"label":  true,
	"option": true,
	"span":   true,
}

// isInlineElement returns true if the tag is an inline element.
func isInlineElement(tag string) bool {
	return inlineElements[tag]
}

// booleanAttrs are attributes that don't need a value.
// When true, they're rendered as just the attribute name.
var booleanAttrs = map[string]bool{
	"autofocus": true,
	"checked":   true,
	"disabled":  true,
	"hidden":    true,
	"readonly":  true,
	"selected":  true,
}

// isBooleanAttr returns true if the attribute is a boolean attribute.
func isBooleanAttr(name string) bool {
	return booleanAttrs[name]
}
