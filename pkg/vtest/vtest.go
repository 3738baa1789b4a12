package vtest

import (
	"strings"
	"testing"

	"github.com/vango-dev/jsonedit/pkg/render"
	"github.com/vango-dev/jsonedit/pkg/vdom"
)

// RenderToString renders a VNode and returns the HTML string.
// This is useful for asserting on rendered output.
func RenderToString(node *vdom.VNode) string {
	r := render.NewRenderer(render.RendererConfig{})
	html, err := r.RenderToString(node)
	if err != nil {
		return ""
	}
	return html
}

// ExpectContains asserts that rendered output contains expected substring.
func ExpectContains(t testing.TB, node *vdom.VNode, expected string) {
	t.Helper()
	html := RenderToString(node)
	if !strings.Contains(html, expected) {
		t.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// ExpectNotContains asserts that rendered output does not contain substring.
func ExpectNotContains(t testing.TB, node *vdom.VNode, unexpected string) {
	t.Helper()
	html := RenderToString(node)
	if strings.Contains(html, unexpected) {
		t.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}

// ExpectElement asserts that rendered output contains a specific tag.
func ExpectElement(t testing.TB, node *vdom.VNode, tag string) {
	t.Helper()
	html := RenderToString(node)
	if !strings.Contains(html, "<"+tag) {
		t.Errorf("expected rendered output to contain <%s> element, got:\n%s", tag, truncate(html, 500))
	}
}

// ExpectAttribute asserts that rendered output contains an attribute value.
//
// Example:
//
//	vtest.ExpectAttribute(t, h.Tree(), "data-role", "type-select")
func ExpectAttribute(t testing.TB, node *vdom.VNode, attr, value string) {
	t.Helper()
	html := RenderToString(node)
	needle := attr + `="` + value + `"`
	if !strings.Contains(html, needle) {
		t.Errorf("expected attribute %s=%q not found, got:\n%s", attr, value, truncate(html, 500))
	}
}

// ByClass matches element nodes whose class list contains class.
func ByClass(class string) func(*vdom.VNode) bool {
	return func(n *vdom.VNode) bool {
		for _, c := range strings.Fields(n.Attr("class")) {
			if c == class {
				return true
			}
		}
		return false
	}
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
