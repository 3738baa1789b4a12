// Package vtest provides testing helpers for editor components.
//
// A Harness mounts a component on a real server.Session and drives it the
// way the page script would: by dispatching events to the hydration IDs of
// the rendered nodes. Nodes are looked up by their data-role attribute.
//
// # Quick Start
//
//	func TestRename(t *testing.T) {
//	    h := vtest.MountRoot(t, jsonedit.Component, value.String("a"))
//	    h.Click(h.One("view"))
//	    h.Input(h.One("edit"), "b")
//	    h.Enter(h.One("edit"))
//	    if got := h.Last(); !value.Equal(got, value.String("b")) {
//	        t.Errorf("expected \"b\", got %v", got)
//	    }
//	}
//
// Every dispatch may re-render, so look nodes up again after each action
// rather than holding on to them.
//
// # Render Assertions
//
// Assert on rendered HTML output:
//
//	vtest.ExpectContains(t, h.Tree(), "Null")
//	vtest.ExpectNotContains(t, h.Tree(), "data-role=\"edit\"")
package vtest
