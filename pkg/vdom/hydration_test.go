package vdom

import (
	"sync"
	"testing"
)

func TestHIDGenerator(t *testing.T) {
	t.Run("sequential generation", func(t *testing.T) {
		gen := NewHIDGenerator()
		for _, want := range []string{"h1", "h2", "h3"} {
			if got := gen.Next(); got != want {
				t.Errorf("Next() = %v, want %v", got, want)
			}
		}
	})

	t.Run("reset", func(t *testing.T) {
		gen := NewHIDGenerator()
		gen.Next()
		gen.Next()
		gen.Reset()

		if gen.Current() != 0 {
			t.Errorf("After reset, Current() = %v, want 0", gen.Current())
		}
		if h := gen.Next(); h != "h1" {
			t.Errorf("After reset, Next() = %v, want h1", h)
		}
	})
}

func TestAssignHIDs(t *testing.T) {
	t.Run("interactive elements get HIDs", func(t *testing.T) {
		tree := Div(
			Span(Text("Title")),
			Button(OnClick(func() {}), Text("Click")),
			Input(OnInput(func(string) {})),
		)

		AssignHIDs(tree, NewHIDGenerator())

		if tree.HID != "" {
			t.Errorf("Div HID = %v, want empty", tree.HID)
		}
		if tree.Children[0].HID != "" {
			t.Errorf("Span HID = %v, want empty", tree.Children[0].HID)
		}
		if tree.Children[1].HID != "h1" {
			t.Errorf("Button HID = %v, want h1", tree.Children[1].HID)
		}
		if tree.Children[2].HID != "h2" {
			t.Errorf("Input HID = %v, want h2", tree.Children[2].HID)
		}
	})

	t.Run("nil node", func(t *testing.T) {
		AssignHIDs(nil, NewHIDGenerator())
	})

	t.Run("document order", func(t *testing.T) {
		inner := Button(OnClick(func() {}))
		tree := Div(OnClick(func() {}), Div(inner), Button(OnClick(func() {})))

		AssignHIDs(tree, NewHIDGenerator())

		if tree.HID != "h1" || inner.HID != "h2" || tree.Children[1].HID != "h3" {
			t.Errorf("HIDs = %v %v %v, want h1 h2 h3", tree.HID, inner.HID, tree.Children[1].HID)
		}
	})
}

func TestCollectAndFindByHID(t *testing.T) {
	target := Button(OnClick(func() {}), Text("x"))
	tree := Div(Span(), Div(target))
	AssignHIDs(tree, NewHIDGenerator())

	hids := CollectHIDs(tree)
	if len(hids) != 1 || hids["h1"] != target {
		t.Errorf("CollectHIDs = %v, want only h1", hids)
	}
	if FindByHID(tree, "h1") != target {
		t.Error("FindByHID did not find the button")
	}
	if FindByHID(tree, "h9") != nil {
		t.Error("FindByHID found a missing HID")
	}
	if FindByHID(nil, "h1") != nil {
		t.Error("FindByHID on nil tree should be nil")
	}
}

func TestCountInteractiveAndClear(t *testing.T) {
	tree := Div(
		Button(OnClick(func() {})),
		Input(OnInput(func(string) {}), OnBlur(func() {})),
		Span(Text("static")),
	)

	if n := CountInteractive(tree); n != 2 {
		t.Errorf("CountInteractive = %d, want 2", n)
	}

	AssignHIDs(tree, NewHIDGenerator())
	ClearHIDs(tree)
	if len(CollectHIDs(tree)) != 0 {
		t.Error("ClearHIDs left HIDs behind")
	}
}

func TestFindAllByData(t *testing.T) {
	tree := Div(
		Button(Data("role", "remove"), Text("x")),
		Div(Button(Data("role", "remove"), Text("x"))),
		Button(Data("role", "add"), Text("+")),
	)

	if got := len(FindAll(tree, ByData("role", "remove"))); got != 2 {
		t.Errorf("found %d remove buttons, want 2", got)
	}

	var visited int
	Walk(tree, func(n *VNode) bool {
		visited++
		return n == tree // only descend from the root
	})
	if visited != 4 {
		t.Errorf("visited %d nodes, want 4", visited)
	}
}

func TestHIDGeneratorConcurrency(t *testing.T) {
	gen := NewHIDGenerator()
	var wg sync.WaitGroup
	var mu sync.Mutex
	seen := make(map[string]bool)

	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 20 {
				h := gen.Next()
				mu.Lock()
				if seen[h] {
					t.Errorf("duplicate HID %s", h)
				}
				seen[h] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if gen.Current() != 1000 {
		t.Errorf("Current() = %d, want 1000", gen.Current())
	}
}
