package vdom

import (
	"sort"
	"strings"
)

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement  VKind = iota // <div>, <button>, etc.
	KindText                  // Plain text node
	KindFragment              // Grouping without wrapper
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	default:
		return "Unknown"
	}
}

// VNode is the virtual DOM node.
type VNode struct {
	Kind     VKind    // Node type
	Tag      string   // Element tag name (e.g., "div")
	Props    Props    // Attributes and event handlers
	Children []*VNode // Child nodes
	Key      string   // Identity of the node among its siblings
	Text     string   // For KindText
	HID      string   // Hydration ID (assigned during render)
}

// Props holds attributes and event handlers.
type Props map[string]any

// IsInteractive returns true if this node has event handlers and needs a HID.
func (v *VNode) IsInteractive() bool {
	if v == nil || v.Kind != KindElement {
		return false
	}
	for key := range v.Props {
		if isEventKey(key) {
			return true
		}
	}
	return false
}

// Handler returns the handler registered for event ("click", "onclick").
func (v *VNode) Handler(event string) any {
	if v == nil || v.Props == nil {
		return nil
	}
	if !strings.HasPrefix(event, "on") {
		event = "on" + event
	}
	return v.Props[event]
}

// Events returns the names of the events the node handles, sorted, without
// the "on" prefix.
func (v *VNode) Events() []string {
	if v == nil {
		return nil
	}
	var out []string
	for key := range v.Props {
		if isEventKey(key) {
			out = append(out, strings.TrimPrefix(key, "on"))
		}
	}
	sort.Strings(out)
	return out
}

// Attr returns the string form of an attribute, or "" when absent.
func (v *VNode) Attr(key string) string {
	if v == nil || v.Props == nil {
		return ""
	}
	switch val := v.Props[key].(type) {
	case string:
		return val
	case bool:
		if val {
			return key
		}
	}
	return ""
}

// TextContent concatenates the text of the node and its descendants.
func (v *VNode) TextContent() string {
	var b strings.Builder
	var walk func(*VNode)
	walk = func(n *VNode) {
		if n == nil {
			return
		}
		if n.Kind == KindText {
			b.WriteString(n.Text)
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(v)
	return b.String()
}

func isEventKey(key string) bool {
	return strings.HasPrefix(key, "on") && len(key) > 2
}

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// EventHandler represents an event handler.
type EventHandler struct {
	Event   string // "onclick", "oninput", etc.
	Handler any    // Function to call
}
