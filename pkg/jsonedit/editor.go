package jsonedit

import (
	"github.com/vango-dev/jsonedit/pkg/server"
	"github.com/vango-dev/jsonedit/pkg/value"
	"github.com/vango-dev/jsonedit/pkg/vango"
	"github.com/vango-dev/jsonedit/pkg/vdom"
)

// Options adds nodes around an editor's first row.
type Options struct {
	// Prefix is rendered before the editor content.
	Prefix *vdom.VNode

	// Suffix is rendered after the editor content.
	Suffix *vdom.VNode
}

// Editor renders an editor for initial with a type selector. Every committed
// edit calls onChanged once with the new value.
//
// initial seeds the editor on its first pass only; after that the editor
// owns its state and later values of initial are ignored.
func Editor(s *vango.Scope, initial value.Value, onChanged func(value.Value)) *vdom.VNode {
	return EditorWith(s, initial, onChanged, Options{})
}

// EditorWith is Editor with a suffix placed on the editor's first row.
// The prefix slot is taken by the type selector.
func EditorWith(s *vango.Scope, initial value.Value, onChanged func(value.Value), opts Options) *vdom.VNode {
	selected := vango.RememberFunc(s, func() int { return kindIndex(initial.Kind()) })
	current := vango.RememberRef(s, initial)

	commit := func(v value.Value) {
		current.Set(v)
		onChanged(v)
	}

	pick := func(name string) {
		next := nameIndex(name)
		if next < 0 || next == selected.Peek() {
			return
		}
		vango.TxNamed("type-switch", func() {
			selected.Set(next)
			commit(entries[next].create())
		})
	}

	idx := selected.Get()

	// The kind index is part of the child's path, so a switch starts the
	// new editor with fresh state.
	child := s.Child(uint64(idx) + 1)

	return vdom.Div(vdom.Class("jsonedit-value"),
		Value(child, current.Peek(), commit, Options{
			Prefix: typeSelect(idx, pick),
			Suffix: opts.Suffix,
		}),
	)
}

// Value renders the editor for v's kind without a type selector.
func Value(s *vango.Scope, v value.Value, onChanged func(value.Value), opts Options) *vdom.VNode {
	return handlerFor(v.Kind())(s, v, onChanged, opts)
}

// Component returns a root component editing initial. It matches
// server.RootFunc.
func Component(initial value.Value, onChanged func(value.Value)) server.Component {
	return func(s *vango.Scope) *vdom.VNode {
		return vdom.Div(vdom.Class("jsonedit"), Editor(s, initial, onChanged))
	}
}

// row lays out one editor line.
func row(opts Options, content ...*vdom.VNode) *vdom.VNode {
	return vdom.Div(vdom.Class("jsonedit-row"), opts.Prefix, content, opts.Suffix)
}
