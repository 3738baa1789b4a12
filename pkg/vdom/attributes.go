package vdom

import "strings"

// attr creates an Attr with the given key and value.
func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class sets the class attribute, joining multiple classes with spaces.
func Class(classes ...string) Attr { return attr("class", strings.Join(classes, " ")) }

// Data creates a data-* attribute.
// Example: Data("role", "remove") → data-role="remove"
func Data(key, value string) Attr { return attr("data-"+key, value) }

// Key sets the sibling identity of the node. It is not rendered as an
// attribute; renderers emit it as data-key.
func Key(key string) Attr { return attr("key", key) }

// Charset sets the charset attribute of a meta element.
func Charset(cs string) Attr { return attr("charset", cs) }

// Form attributes

// Name sets the name attribute.
func Name(name string) Attr { return attr("name", name) }

// Value sets the value attribute.
func Value(value string) Attr { return attr("value", value) }

// Type sets the type attribute.
func Type(t string) Attr { return attr("type", t) }

// Placeholder sets the placeholder attribute.
func Placeholder(text string) Attr { return attr("placeholder", text) }

// Disabled sets the disabled attribute.
func Disabled() Attr { return attr("disabled", true) }

// Selected sets the selected attribute.
func Selected() Attr { return attr("selected", true) }

// Autofocus sets the autofocus attribute.
func Autofocus() Attr { return attr("autofocus", true) }

// TitleAttr sets the title attribute (tooltip).
func TitleAttr(title string) Attr { return attr("title", title) }
