package jsonedit_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/jsonedit/pkg/jsonedit"
	"github.com/vango-dev/jsonedit/pkg/value"
	"github.com/vango-dev/jsonedit/pkg/vango"
	"github.com/vango-dev/jsonedit/pkg/vdom"
	"github.com/vango-dev/jsonedit/pkg/vtest"
)

func mount(t *testing.T, initial value.Value) *vtest.Harness {
	t.Helper()
	return vtest.MountRoot(t, jsonedit.Component, initial)
}

func expectValue(t *testing.T, want, got value.Value) {
	t.Helper()
	if !value.Equal(want, got) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func expectCommits(t *testing.T, h *vtest.Harness, n int) {
	t.Helper()
	if got := len(h.Commits()); got != n {
		t.Fatalf("expected %d commits, got %d: %v", n, got, h.Commits())
	}
}

func expectTexts(t *testing.T, h *vtest.Harness, role string, want []string) {
	t.Helper()
	if diff := cmp.Diff(want, h.Texts(role)); diff != "" {
		t.Errorf("%s texts mismatch (-want +got):\n%s", role, diff)
	}
}

func itemByKey(t *testing.T, h *vtest.Harness, key string) *vdom.VNode {
	t.Helper()
	for _, item := range h.Items() {
		if item.Key == key {
			return item
		}
	}
	t.Fatalf("no item with key %s", key)
	return nil
}

func nums(fs ...float64) value.Value {
	items := make([]value.Value, len(fs))
	for i, f := range fs {
		items[i] = value.Number(f)
	}
	return value.Array(items...)
}

func TestEditorRendersTypeSelector(t *testing.T) {
	h := mount(t, value.Number(5))

	sel := h.One("type-select")
	var names, selected []string
	for _, opt := range sel.Children {
		names = append(names, opt.Attr("value"))
		if opt.Attr("selected") != "" {
			selected = append(selected, opt.Attr("value"))
		}
	}
	if diff := cmp.Diff([]string{"Null", "String", "Number", "Array", "Object"}, names); diff != "" {
		t.Errorf("option mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Number"}, selected); diff != "" {
		t.Errorf("selected mismatch (-want +got):\n%s", diff)
	}
	expectTexts(t, h, "view", []string{"5"})
	expectCommits(t, h, 0)
}

func TestTypeSwitchStartsFresh(t *testing.T) {
	h := mount(t, value.Number(5))

	// Leave the number editor open; the new editor must not inherit it.
	h.Click(h.One("view"))
	if len(h.Find("edit")) != 1 {
		t.Fatal("expected number editor to be open")
	}

	h.Select(h.One("type-select"), "String")
	expectCommits(t, h, 1)
	expectValue(t, value.String(""), h.Last())
	if len(h.Find("edit")) != 0 {
		t.Error("expected string editor to start in view mode")
	}
	expectTexts(t, h, "view", []string{`""`})

	h.Select(h.One("type-select"), "Number")
	expectCommits(t, h, 2)
	expectValue(t, value.Number(0), h.Last())
	expectTexts(t, h, "view", []string{"0"})
}

func TestTypeSwitchToEveryKind(t *testing.T) {
	h := mount(t, value.Null())
	vtest.ExpectContains(t, h.Tree(), ">Null<")

	for _, tc := range []struct {
		name string
		want value.Value
	}{
		{"Array", value.Array()},
		{"Object", value.Object()},
		{"String", value.String("")},
		{"Null", value.Null()},
	} {
		h.Select(h.One("type-select"), tc.name)
		expectValue(t, tc.want, h.Last())
	}
	expectCommits(t, h, 4)
}

func TestTypeSwitchSameKindIsIgnored(t *testing.T) {
	h := mount(t, value.Number(5))
	renders := h.Renders()

	h.Select(h.One("type-select"), "Number")
	h.Select(h.One("type-select"), "Boolean")

	expectCommits(t, h, 0)
	if h.Renders() != renders {
		t.Errorf("expected no re-render, got %d", h.Renders()-renders)
	}
}

func TestStringCommitOnEnter(t *testing.T) {
	h := mount(t, value.String("a"))
	expectTexts(t, h, "view", []string{`"a"`})

	h.Click(h.One("view"))
	if got := h.One("edit").Attr("value"); got != "a" {
		t.Errorf("expected buffer a, got %q", got)
	}
	h.Input(h.One("edit"), "b")
	expectCommits(t, h, 0)
	h.Enter(h.One("edit"))

	expectCommits(t, h, 1)
	expectValue(t, value.String("b"), h.Last())
	expectTexts(t, h, "view", []string{`"b"`})

	// Committing the same text again reports nothing.
	h.Click(h.One("view"))
	h.Enter(h.One("edit"))
	expectCommits(t, h, 1)
	if len(h.Find("edit")) != 0 {
		t.Error("expected editor closed after Enter")
	}
}

func TestStringCommitOnBlur(t *testing.T) {
	h := mount(t, value.String(""))

	h.Click(h.One("view"))
	h.Input(h.One("edit"), "hello")
	h.Blur(h.One("edit"))

	expectCommits(t, h, 1)
	expectValue(t, value.String("hello"), h.Last())
}

func TestOtherKeysDoNotCommit(t *testing.T) {
	h := mount(t, value.String(""))

	h.Click(h.One("view"))
	h.Input(h.One("edit"), "x")
	h.KeyDown(h.One("edit"), vango.KeyEscape)
	h.KeyDown(h.One("edit"), "a")

	expectCommits(t, h, 0)
	if len(h.Find("edit")) != 1 {
		t.Error("expected editor to stay open")
	}
}

func TestNumberParseFailureIsSilent(t *testing.T) {
	h := mount(t, value.Number(5))

	h.Click(h.One("view"))
	h.Input(h.One("edit"), "abc")
	h.Enter(h.One("edit"))

	expectCommits(t, h, 0)
	expectTexts(t, h, "view", []string{"5"})
}

func TestNumberCommit(t *testing.T) {
	h := mount(t, value.Number(5))

	h.Click(h.One("view"))
	h.Input(h.One("edit"), " 2.5 ")
	h.Enter(h.One("edit"))
	expectCommits(t, h, 1)
	expectValue(t, value.Number(2.5), h.Last())
	expectTexts(t, h, "view", []string{"2.5"})

	// Within tolerance counts as unchanged.
	h.Click(h.One("view"))
	h.Input(h.One("edit"), "2.5000000001")
	h.Enter(h.One("edit"))
	expectCommits(t, h, 1)
}

func TestArrayMoveAtEdgesIsNoop(t *testing.T) {
	h := mount(t, nums(1, 2, 3))
	renders := h.Renders()

	h.Click(h.Nth("move-up", 0))
	h.Click(h.Nth("move-down", 2))

	expectCommits(t, h, 0)
	if h.Renders() != renders {
		t.Errorf("expected no re-render, got %d", h.Renders()-renders)
	}
	expectTexts(t, h, "view", []string{"1", "2", "3"})
}

func TestArrayMoveKeepsElementState(t *testing.T) {
	h := mount(t, nums(1, 2, 3))

	// Open the editor of the second element, then move it up.
	h.Click(h.Nth("view", 1))
	h.Click(h.Nth("move-up", 1))

	expectCommits(t, h, 1)
	expectValue(t, nums(2, 1, 3), h.Last())
	expectTexts(t, h, "label", []string{"0:", "1:", "2:"})

	items := h.Items()
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if items[0].Key != "1" || items[1].Key != "0" || items[2].Key != "2" {
		t.Errorf("expected keys 1,0,2, got %s,%s,%s", items[0].Key, items[1].Key, items[2].Key)
	}
	if len(h.Find("edit", items[0])) != 1 {
		t.Error("expected the open editor to move with its element")
	}

	// The moved editor still commits into its own element.
	h.Input(h.One("edit"), "7")
	h.Enter(h.One("edit"))
	expectValue(t, nums(7, 1, 3), h.Last())
}

func TestArrayMoveDown(t *testing.T) {
	h := mount(t, nums(1, 2, 3))
	h.Click(h.Nth("move-down", 0))
	expectValue(t, nums(2, 1, 3), h.Last())

	h.Click(h.Nth("move-up", 1))
	expectValue(t, nums(1, 2, 3), h.Last())
	expectCommits(t, h, 2)
}

func TestArrayRemoveAndAdd(t *testing.T) {
	h := mount(t, value.Array(value.Number(1), value.String("a"), value.Null()))

	h.Click(h.Nth("remove", 1))
	expectValue(t, value.Array(value.Number(1), value.Null()), h.Last())
	expectTexts(t, h, "label", []string{"0:", "1:", "Null"})

	h.Click(h.One("add"))
	expectValue(t, value.Array(value.Number(1), value.Null(), value.Null()), h.Last())

	// New elements get fresh ids.
	items := h.Items()
	if items[2].Key != "3" {
		t.Errorf("expected new element key 3, got %s", items[2].Key)
	}
	expectCommits(t, h, 2)
}

func TestArrayElementTypeSwitch(t *testing.T) {
	h := mount(t, nums(1))

	h.Select(h.Nth("type-select", 1), "Array")
	expectValue(t, value.Array(value.Array()), h.Last())

	// The nested array's add button comes before the outer one.
	adds := h.Find("add")
	if len(adds) != 2 {
		t.Fatalf("expected 2 add buttons, got %d", len(adds))
	}
	h.Click(adds[0])
	expectValue(t, value.Array(value.Array(value.Null())), h.Last())
	expectCommits(t, h, 2)
}

func TestObjectScenario(t *testing.T) {
	h := mount(t, value.Object())

	h.Input(h.One("add-field"), "x")
	h.Enter(h.One("add-field"))
	expectValue(t, value.Object(value.Member{Name: "x", Value: value.Null()}), h.Last())
	if got := h.One("add-field").Attr("value"); got != "" {
		t.Errorf("expected add-field cleared, got %q", got)
	}

	h.Select(h.Nth("type-select", 1), "Number")
	expectValue(t, value.Object(value.Member{Name: "x", Value: value.Number(0)}), h.Last())

	// Views are the field name then its value.
	expectTexts(t, h, "view", []string{`"x"`, "0"})
	h.Click(h.Nth("view", 1))
	h.Input(h.One("edit"), "3")
	h.Enter(h.One("edit"))
	expectValue(t, value.Object(value.Member{Name: "x", Value: value.Number(3)}), h.Last())

	h.Click(h.Nth("view", 0))
	h.Input(h.One("edit"), "y")
	h.Enter(h.One("edit"))
	expectValue(t, value.Object(value.Member{Name: "y", Value: value.Number(3)}), h.Last())

	expectCommits(t, h, 4)
}

func TestObjectAddFieldAllowsDuplicatesAndEmpty(t *testing.T) {
	h := mount(t, value.Object())

	h.Input(h.One("add-field"), "a")
	h.Enter(h.One("add-field"))
	h.Input(h.One("add-field"), "a")
	h.Enter(h.One("add-field"))
	// The buffer was cleared, so Enter alone adds an unnamed field.
	h.Enter(h.One("add-field"))
	h.KeyDown(h.One("add-field"), "a")

	expectCommits(t, h, 3)
	expectValue(t, value.Object(
		value.Member{Name: "a", Value: value.Null()},
		value.Member{Name: "a", Value: value.Null()},
		value.Member{Name: "", Value: value.Null()},
	), h.Last())
}

func TestObjectMoveAndRemove(t *testing.T) {
	a := value.Member{Name: "a", Value: value.Number(1)}
	b := value.Member{Name: "b", Value: value.Number(2)}
	c := value.Member{Name: "c", Value: value.Number(3)}
	h := mount(t, value.Object(a, b, c))

	h.Click(h.Nth("move-up", 0))
	expectCommits(t, h, 0)

	h.Click(h.Nth("move-up", 1))
	expectValue(t, value.Object(b, a, c), h.Last())

	h.Click(h.Nth("move-down", 1))
	expectValue(t, value.Object(b, c, a), h.Last())

	h.Click(h.Nth("remove", 0))
	expectValue(t, value.Object(c, a), h.Last())
	expectCommits(t, h, 3)
}

func TestNestedEditReportsRoot(t *testing.T) {
	initial := value.Object(value.Member{Name: "list", Value: nums(1, 2)})
	h := mount(t, initial)

	// Views: field name, then the two numbers.
	expectTexts(t, h, "view", []string{`"list"`, "1", "2"})
	h.Click(h.Nth("view", 2))
	h.Input(h.One("edit"), "5")
	h.Enter(h.One("edit"))

	expectCommits(t, h, 1)
	expectValue(t, value.Object(value.Member{Name: "list", Value: nums(1, 5)}), h.Last())
}

func TestReconstructIsIdempotent(t *testing.T) {
	initial := value.Array(value.String("a"), value.Object(value.Member{Name: "k", Value: value.Null()}), value.Number(3))
	h := mount(t, initial)

	// The object element has move buttons of its own, so address the
	// string element through its row.
	h.Click(h.One("move-down", itemByKey(t, h, "0")))
	h.Click(h.One("move-up", itemByKey(t, h, "0")))

	expectCommits(t, h, 2)
	expectValue(t, initial, h.Last())
	data, err := value.Marshal(h.Last())
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `["a",{"k":null},3]` {
		t.Errorf("unexpected json %s", data)
	}
}

func TestInitialIsReadOnce(t *testing.T) {
	rt := vango.NewRuntime()
	var tree *vdom.VNode

	rt.Pass(func(s *vango.Scope) {
		tree = jsonedit.Editor(s, value.Number(1), func(value.Value) {})
	})
	slots := rt.SlotCount()

	rt.Pass(func(s *vango.Scope) {
		tree = jsonedit.Editor(s, value.Number(2), func(value.Value) {})
	})

	views := vdom.FindAll(tree, vdom.ByData("role", "view"))
	if len(views) != 1 || views[0].TextContent() != "1" {
		t.Errorf("expected view 1, got %v", views)
	}
	if rt.SlotCount() != slots {
		t.Errorf("expected stable slot count %d, got %d", slots, rt.SlotCount())
	}
}

func TestValueWithOptions(t *testing.T) {
	rt := vango.NewRuntime()
	var tree *vdom.VNode

	rt.Pass(func(s *vango.Scope) {
		tree = jsonedit.Value(s, value.String("x"), func(value.Value) {}, jsonedit.Options{
			Prefix: vdom.Span(vdom.Data("role", "prefix")),
			Suffix: vdom.Span(vdom.Data("role", "suffix")),
		})
	})

	if len(vdom.FindAll(tree, vdom.ByData("role", "type-select"))) != 0 {
		t.Error("expected no type selector")
	}
	row := tree
	if len(row.Children) != 3 {
		t.Fatalf("expected prefix, view and suffix, got %d children", len(row.Children))
	}
	if row.Children[0].Attr("data-role") != "prefix" || row.Children[2].Attr("data-role") != "suffix" {
		t.Error("expected prefix first and suffix last")
	}
}
