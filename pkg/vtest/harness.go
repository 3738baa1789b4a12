package vtest

import (
	"testing"

	"github.com/vango-dev/jsonedit/pkg/server"
	"github.com/vango-dev/jsonedit/pkg/value"
	"github.com/vango-dev/jsonedit/pkg/vango"
	"github.com/vango-dev/jsonedit/pkg/vdom"
)

// Harness drives a mounted component through its event handlers.
type Harness struct {
	t       testing.TB
	session *server.Session
	commits []value.Value
}

// Mount mounts root on a new session closed at the end of the test.
func Mount(t testing.TB, root server.Component, opts ...server.SessionOption) *Harness {
	t.Helper()
	h := &Harness{t: t}
	h.mount(root, opts)
	return h
}

// MountRoot mounts the component built by fn for initial and records every
// value passed to its onChanged callback.
func MountRoot(t testing.TB, fn server.RootFunc, initial value.Value, opts ...server.SessionOption) *Harness {
	t.Helper()
	h := &Harness{t: t}
	h.mount(fn(initial, func(v value.Value) {
		h.commits = append(h.commits, v)
	}), opts)
	return h
}

func (h *Harness) mount(root server.Component, opts []server.SessionOption) {
	h.t.Helper()
	s, err := server.NewSession(root, opts...)
	if err != nil {
		h.t.Fatalf("mount: %v", err)
	}
	h.session = s
	h.t.Cleanup(s.Close)
}

// Session returns the underlying session.
func (h *Harness) Session() *server.Session {
	return h.session
}

// Tree returns the current tree.
func (h *Harness) Tree() *vdom.VNode {
	return h.session.Tree()
}

// HTML renders the current tree.
func (h *Harness) HTML() string {
	html, err := h.session.HTML()
	if err != nil {
		h.t.Fatalf("render: %v", err)
	}
	return html
}

// Renders returns the number of renders so far.
func (h *Harness) Renders() uint64 {
	return h.session.Renders()
}

// Commits returns every value reported to the root callback, in order.
func (h *Harness) Commits() []value.Value {
	return append([]value.Value(nil), h.commits...)
}

// Last returns the last committed value. It fails the test if nothing was
// committed.
func (h *Harness) Last() value.Value {
	h.t.Helper()
	if len(h.commits) == 0 {
		h.t.Fatal("expected at least one commit")
	}
	return h.commits[len(h.commits)-1]
}

// ResetCommits forgets the recorded commits.
func (h *Harness) ResetCommits() {
	h.commits = nil
}

// Find returns the nodes with the given data-role, in document order,
// searching under the given node or the whole tree.
func (h *Harness) Find(role string, under ...*vdom.VNode) []*vdom.VNode {
	root := h.Tree()
	if len(under) > 0 {
		root = under[0]
	}
	return vdom.FindAll(root, vdom.ByData("role", role))
}

// One returns the only node with the given data-role.
func (h *Harness) One(role string, under ...*vdom.VNode) *vdom.VNode {
	h.t.Helper()
	nodes := h.Find(role, under...)
	if len(nodes) != 1 {
		h.t.Fatalf("expected one %q node, got %d", role, len(nodes))
	}
	return nodes[0]
}

// Nth returns the i-th node with the given data-role.
func (h *Harness) Nth(role string, i int, under ...*vdom.VNode) *vdom.VNode {
	h.t.Helper()
	nodes := h.Find(role, under...)
	if i < 0 || i >= len(nodes) {
		h.t.Fatalf("expected %q node %d, found %d", role, i, len(nodes))
	}
	return nodes[i]
}

// Items returns the element rows of the container editors, outermost
// container first.
func (h *Harness) Items(under ...*vdom.VNode) []*vdom.VNode {
	root := h.Tree()
	if len(under) > 0 {
		root = under[0]
	}
	return vdom.FindAll(root, ByClass("jsonedit-item"))
}

// Texts returns the text content of the nodes with the given data-role.
func (h *Harness) Texts(role string, under ...*vdom.VNode) []string {
	nodes := h.Find(role, under...)
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.TextContent()
	}
	return out
}

// Dispatch sends an event to node and fails the test on error.
func (h *Harness) Dispatch(node *vdom.VNode, eventType string, payload any) {
	h.t.Helper()
	if err := h.TryDispatch(node, eventType, payload); err != nil {
		h.t.Fatalf("dispatch %s to %s: %v", eventType, node.HID, err)
	}
}

// TryDispatch sends an event to node and returns the dispatch error.
func (h *Harness) TryDispatch(node *vdom.VNode, eventType string, payload any) error {
	h.t.Helper()
	if node == nil {
		h.t.Fatal("dispatch to nil node")
	}
	return h.session.Dispatch(server.NewEvent(node.HID, eventType, payload))
}

// Click clicks node.
func (h *Harness) Click(node *vdom.VNode) {
	h.t.Helper()
	h.Dispatch(node, "click", nil)
}

// Input sets the text of an input.
func (h *Harness) Input(node *vdom.VNode, text string) {
	h.t.Helper()
	h.Dispatch(node, "input", text)
}

// Blur moves focus away from node.
func (h *Harness) Blur(node *vdom.VNode) {
	h.t.Helper()
	h.Dispatch(node, "blur", nil)
}

// KeyDown presses key on node.
func (h *Harness) KeyDown(node *vdom.VNode, key string) {
	h.t.Helper()
	h.Dispatch(node, "keydown", vango.KeyboardEvent{Key: key, Code: key})
}

// Enter presses Enter on node.
func (h *Harness) Enter(node *vdom.VNode) {
	h.t.Helper()
	h.KeyDown(node, vango.KeyEnter)
}

// Select picks the option with the given value in a select.
func (h *Harness) Select(node *vdom.VNode, option string) {
	h.t.Helper()
	h.Dispatch(node, "change", option)
}
