package render

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/vango-dev/jsonedit/pkg/vdom"
)

// RendererConfig configures the HTML renderer.
type RendererConfig struct {
	// Pretty enables pretty-printed HTML output with indentation.
	// Should only be used in development as it increases output size.
	Pretty bool

	// Indent is the string used for each indentation level in pretty mode.
	// Defaults to two spaces if not specified.
	Indent string
}

// Renderer handles rendering of VNode trees to HTML.
type Renderer struct {
	config RendererConfig
}

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config RendererConfig) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Renderer{config: config}
}

// RenderToString renders a VNode tree to an HTML string.
func (r *Renderer) RenderToString(node *vdom.VNode) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams a VNode tree to the given writer.
func (r *Renderer) RenderToWriter(w io.Writer, node *vdom.VNode) error {
	return r.renderNode(w, node, 0)
}

// renderNode dispatches rendering based on node kind.
func (r *Renderer) renderNode(w io.Writer, node *vdom.VNode, depth int) error {
	if node == nil {
		return nil
	}

	switch node.Kind {
	case vdom.KindElement:
		return r.renderElement(w, node, depth)
	case vdom.KindText:
		_, err := io.WriteString(w, escapeHTML(node.Text))
		return err
	case vdom.KindFragment:
		for _, child := range node.Children {
			if err := r.renderNode(w, child, depth); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown node kind: %d", node.Kind)
	}
}

// renderElement renders an HTML element with its attributes and children.
func (r *Renderer) renderElement(w io.Writer, node *vdom.VNode, depth int) error {
	tag := node.Tag

	if r.config.Pretty && depth > 0 {
		r.writeIndent(w, depth)
	}

	if _, err := io.WriteString(w, "<"+tag); err != nil {
		return err
	}
	if err := r.renderAttributes(w, node); err != nil {
		return err
	}
	if _, err := io.WriteString(w, ">"); err != nil {
		return err
	}

	if vdom.IsVoidElement(tag) {
		if r.config.Pretty {
			io.WriteString(w, "\n")
		}
		return nil
	}

	hasBlockChildren := len(node.Children) > 0 && !isInlineElement(tag)
	if r.config.Pretty && hasBlockChildren {
		io.WriteString(w, "\n")
	}

	for _, child := range node.Children {
		if err := r.renderNode(w, child, depth+1); err != nil {
			return err
		}
	}

	if r.config.Pretty && hasBlockChildren {
		r.writeIndent(w, depth)
	}

	if _, err := fmt.Fprintf(w, "</%s>", tag); err != nil {
		return err
	}
	if r.config.Pretty {
		io.WriteString(w, "\n")
	}
	return nil
}

// renderAttributes renders all attributes for an element.
func (r *Renderer) renderAttributes(w io.Writer, node *vdom.VNode) error {
	// Sort keys for deterministic output
	keys := make([]string, 0, len(node.Props))
	for key := range node.Props {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := node.Props[key]

		// Skip internal props
		if strings.HasPrefix(key, "_") {
			continue
		}

		// Event handlers are routed by HID, not rendered
		if strings.HasPrefix(key, "on") && isEventHandler(value) {
			continue
		}

		if isBooleanAttr(key) {
			if b, ok := value.(bool); ok {
				if b {
					if _, err := fmt.Fprintf(w, " %s", key); err != nil {
						return err
					}
				}
				continue
			}
		}

		// The value attribute is rendered even when empty so inputs reflect
		// a cleared buffer.
		strValue := attrToString(value)
		if strValue != "" || key == "value" {
			if _, err := fmt.Fprintf(w, ` %s="%s"`, key, escapeAttr(strValue)); err != nil {
				return err
			}
		}
	}

	if node.Key != "" {
		if _, err := fmt.Fprintf(w, ` data-key="%s"`, escapeAttr(node.Key)); err != nil {
			return err
		}
	}

	if node.HID != "" {
		if _, err := fmt.Fprintf(w, ` data-hid="%s"`, escapeAttr(node.HID)); err != nil {
			return err
		}
		// Event markers for client-side binding
		for _, ev := range node.Events() {
			if _, err := fmt.Fprintf(w, ` data-on-%s="true"`, ev); err != nil {
				return err
			}
		}
	}

	return nil
}

// isEventHandler returns true if the value looks like an event handler.
func isEventHandler(value any) bool {
	if value == nil {
		return false
	}
	switch value.(type) {
	case func():
		return true
	case func(string):
		return true
	default:
		return strings.HasPrefix(fmt.Sprintf("%T", value), "func")
	}
}

// attrToString converts an attribute value to a string.
func attrToString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// writeIndent writes indentation for pretty printing.
func (r *Renderer) writeIndent(w io.Writer, depth int) {
	for range depth {
		io.WriteString(w, r.config.Indent)
	}
}
