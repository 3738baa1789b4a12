package vdom

// voidElements are elements that cannot have children.
var voidElements = map[string]bool{
	"br":    true,
	"hr":    true,
	"input": true,
	"link":  true,
	"meta":  true,
}

// IsVoidElement returns true if the tag is a void element.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}

// createElement creates a new VNode with the given tag and arguments.
// Arguments can be: nil, Attr, []Attr, *VNode, []*VNode, string, EventHandler.
func createElement(tag string, args []any) *VNode {
	node := &VNode{
		Kind:     KindElement,
		Tag:      tag,
		Props:    make(Props),
		Children: make([]*VNode, 0),
	}

	setAttr := func(a Attr) {
		if a.Key == "" {
			return
		}
		if a.Key == "key" {
			if s, ok := a.Value.(string); ok {
				node.Key = s
			}
			return
		}
		node.Props[a.Key] = a.Value
	}

	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			// Ignore nil (allows conditional attributes)
			continue

		case Attr:
			setAttr(v)

		case []Attr:
			for _, a := range v {
				setAttr(a)
			}

		case *VNode:
			if v != nil {
				node.Children = append(node.Children, v)
			}

		case []*VNode:
			for _, child := range v {
				if child != nil {
					node.Children = append(node.Children, child)
				}
			}

		case string:
			// Shorthand for text node
			node.Children = append(node.Children, Text(v))

		case EventHandler:
			if v.Handler != nil {
				node.Props[v.Event] = v.Handler
			}
		}
	}

	return node
}

// Content elements

func Div(args ...any) *VNode  { return createElement("div", args) }
func Span(args ...any) *VNode { return createElement("span", args) }

// Form elements

func Input(args ...any) *VNode  { return createElement("input", args) }
func Select(args ...any) *VNode { return createElement("select", args) }
func Option(args ...any) *VNode { return createElement("option", args) }
func Button(args ...any) *VNode { return createElement("button", args) }
