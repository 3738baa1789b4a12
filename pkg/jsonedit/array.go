package jsonedit

import (
	"strconv"

	"github.com/vango-dev/jsonedit/pkg/value"
	"github.com/vango-dev/jsonedit/pkg/vango"
	"github.com/vango-dev/jsonedit/pkg/vdom"
)

// childKeyOffset separates element keys from the structural children of a
// container node; keys below it are reserved.
const childKeyOffset = 16

// elementKey is the child key of the element with list id id.
func elementKey(id uint64) uint64 {
	return id + childKeyOffset
}

// container wires the mutation handlers shared by arrays and objects.
// Handlers resolve an element's index from its id when they run, so a
// handler rendered before a reorder still acts on its own element.
type container[T any] struct {
	items  *vango.IdentityList[T]
	notify func()
}

// mutate applies fn and reports the rebuilt value once.
func (c container[T]) mutate(name string, fn func()) {
	vango.TxNamed(name, func() {
		fn()
		c.notify()
	})
}

func (c container[T]) add(v T) {
	c.mutate("add", func() { c.items.Add(v) })
}

func (c container[T]) remove(id uint64) {
	i := c.items.IndexOf(id)
	if i < 0 {
		return
	}
	c.mutate("remove", func() { c.items.RemoveAt(i) })
}

func (c container[T]) moveUp(id uint64) {
	i := c.items.IndexOf(id)
	if i <= 0 {
		return
	}
	c.mutate("move-up", func() { c.items.Swap(i, i-1) })
}

func (c container[T]) moveDown(id uint64) {
	i := c.items.IndexOf(id)
	if i < 0 || i+1 >= c.items.Len() {
		return
	}
	c.mutate("move-down", func() { c.items.Swap(i, i+1) })
}

// update replaces the element's value in place.
func (c container[T]) update(id uint64, fn func(T) T) {
	i := c.items.IndexOf(id)
	if i < 0 {
		return
	}
	c.mutate("set", func() { c.items.Set(i, fn(c.items.At(i))) })
}

func (c container[T]) controls(id uint64) *vdom.VNode {
	return itemControls(
		func() { c.remove(id) },
		func() { c.moveUp(id) },
		func() { c.moveDown(id) },
	)
}

func arrayEditor(s *vango.Scope, initial value.Value, onChanged func(value.Value), opts Options) *vdom.VNode {
	items := vango.RememberList(s, initial.Items, vango.ListEquals(value.Equal))
	c := container[value.Value]{
		items:  items,
		notify: func() { onChanged(value.Array(items.Values()...)) },
	}

	elems := items.Entries()
	rows := make([]*vdom.VNode, 0, len(elems))
	for i, e := range elems {
		id := e.ID
		set := func(v value.Value) {
			c.update(id, func(value.Value) value.Value { return v })
		}
		rows = append(rows, vdom.Div(vdom.Class("jsonedit-item"), vdom.Key(strconv.FormatUint(id, 10)),
			vdom.Span(vdom.Data("role", "label"), vdom.Textf("%d:", i)),
			EditorWith(s.Child(elementKey(id)), e.Value, set, Options{Suffix: c.controls(id)}),
		))
	}

	return vdom.Div(vdom.Class("jsonedit-array"),
		row(opts, bracket("[")),
		vdom.Div(vdom.Class("jsonedit-children"), rows),
		vdom.Div(vdom.Class("jsonedit-row"),
			bracket("]"),
			button("add", "+", func() { c.add(value.Null()) }),
		),
	)
}
