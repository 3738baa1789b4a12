// Package jsonedit renders a live, recursive editor for a value.Value.
//
// Editor is the entry point. It shows a type selector next to an editor for
// the value's current kind and reports every committed edit through the
// caller's callback, exactly once per commit, with the new full value of
// that subtree:
//
//	rt.Pass(func(s *vango.Scope) {
//	    root = jsonedit.Editor(s, doc, func(v value.Value) { save(v) })
//	})
//
// Strings and numbers are edited in place: a click opens a text field and
// the text is committed on blur or Enter. Arrays and objects keep their
// elements in a vango.IdentityList, so the editor state of an element
// (an open text field, a nested selection) follows it when it is moved.
//
// Every control carries a data-role attribute (type-select, view, edit,
// remove, move-up, move-down, add, add-field, label) for hosts and tests.
package jsonedit
