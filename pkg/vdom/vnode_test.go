package vdom

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestVKindString(t *testing.T) {
	tests := map[VKind]string{
		KindElement:  "Element",
		KindText:     "Text",
		KindFragment: "Fragment",
		VKind(99):    "Unknown",
	}
	for k, want := range tests {
		if got := k.String(); got != want {
			t.Errorf("VKind(%d).String() = %v, want %v", k, got, want)
		}
	}
}

func TestElementTags(t *testing.T) {
	tests := []struct {
		node *VNode
		tag  string
	}{
		{Div(), "div"},
		{Span(), "span"},
		{Input(), "input"},
		{Select(), "select"},
		{Option(), "option"},
		{Button(), "button"},
	}
	for _, tt := range tests {
		if tt.node.Tag != tt.tag || tt.node.Kind != KindElement {
			t.Errorf("expected element %q, got %v %q", tt.tag, tt.node.Kind, tt.node.Tag)
		}
	}
}

func TestCreateElement(t *testing.T) {
	click := func() {}
	node := Div(
		Class("row", "open"),
		nil,
		[]Attr{Data("role", "view"), Key("16")},
		"text",
		Span(),
		[]*VNode{nil, Span()},
		OnClick(click),
	)

	if node.Tag != "div" || node.Kind != KindElement {
		t.Fatalf("unexpected node %v %v", node.Kind, node.Tag)
	}
	if node.Attr("class") != "row open" {
		t.Errorf("class = %q", node.Attr("class"))
	}
	if node.Attr("data-role") != "view" {
		t.Errorf("data-role = %q", node.Attr("data-role"))
	}
	if node.Key != "16" {
		t.Errorf("Key = %q, want 16", node.Key)
	}
	if _, ok := node.Props["key"]; ok {
		t.Error("key should not be stored as a prop")
	}
	if len(node.Children) != 3 {
		t.Errorf("children = %d, want 3", len(node.Children))
	}
	if node.Handler("click") == nil || node.Handler("onclick") == nil {
		t.Error("click handler missing")
	}
	if !node.IsInteractive() {
		t.Error("node with handler should be interactive")
	}
}

func TestVNodeEventsAndText(t *testing.T) {
	node := Input(OnBlur(func() {}), OnKeyDown(func() {}), Autofocus(), Value("x"))

	if diff := cmp.Diff([]string{"blur", "keydown"}, node.Events()); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
	if node.Attr("autofocus") != "autofocus" {
		t.Errorf("autofocus = %q", node.Attr("autofocus"))
	}

	tree := Div(Span(Text("0")), Text(":"), Fragment("a", nil, Text("b")))
	if got := tree.TextContent(); got != "0:ab" {
		t.Errorf("TextContent = %q, want 0:ab", got)
	}
}

func TestConditionals(t *testing.T) {
	n := Span()
	if If(false, n) != nil || If(true, n) != n {
		t.Error("If")
	}
	if IfElse(false, n, nil) != nil {
		t.Error("IfElse")
	}
	called := false
	When(false, func() *VNode { called = true; return n })
	if called {
		t.Error("When evaluated a false branch")
	}

	nodes := Range([]string{"a", "", "b"}, func(_ int, s string) *VNode {
		return If(s != "", Text(s))
	})
	if len(nodes) != 2 {
		t.Errorf("Range returned %d nodes, want 2", len(nodes))
	}
}
