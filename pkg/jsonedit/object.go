package jsonedit

import (
	"strconv"

	"github.com/vango-dev/jsonedit/pkg/value"
	"github.com/vango-dev/jsonedit/pkg/vango"
	"github.com/vango-dev/jsonedit/pkg/vdom"
)

// Child keys inside an object element.
const (
	nameKey  = 1
	valueKey = 2
)

func objectEditor(s *vango.Scope, initial value.Value, onChanged func(value.Value), opts Options) *vdom.VNode {
	items := vango.RememberList(s, initial.Members, vango.ListEquals(value.Member.Equal))
	field := vango.RememberRef(s, "")
	c := container[value.Member]{
		items:  items,
		notify: func() { onChanged(value.Object(items.Values()...)) },
	}

	elems := items.Entries()
	rows := make([]*vdom.VNode, 0, len(elems))
	for _, e := range elems {
		id := e.ID
		item := s.Child(elementKey(id))

		rename := func(v value.Value) {
			c.update(id, func(m value.Member) value.Member { return value.Member{Name: v.Str(), Value: m.Value} })
		}
		set := func(v value.Value) {
			c.update(id, func(m value.Member) value.Member { return value.Member{Name: m.Name, Value: v} })
		}

		rows = append(rows, vdom.Div(vdom.Class("jsonedit-item"), vdom.Key(strconv.FormatUint(id, 10)),
			vdom.Div(vdom.Class("jsonedit-name"),
				stringEditor(item.Child(nameKey), value.String(e.Value.Name), rename, Options{}),
			),
			EditorWith(item.Child(valueKey), e.Value.Value, set, Options{Suffix: c.controls(id)}),
		))
	}

	addField := func(e vango.KeyboardEvent) {
		if !e.IsEnter() {
			return
		}
		vango.Batch(func() {
			c.add(value.Member{Name: field.Peek(), Value: value.Null()})
			field.Set("")
			field.NotifyChanged()
		})
	}

	return vdom.Div(vdom.Class("jsonedit-object"),
		row(opts, bracket("{")),
		vdom.Div(vdom.Class("jsonedit-children"), rows),
		vdom.Div(vdom.Class("jsonedit-row"),
			bracket("}"),
			vdom.Input(
				vdom.Data("role", "add-field"),
				vdom.Type("text"),
				vdom.Placeholder("field"),
				vdom.Value(field.Current()),
				vdom.OnInput(func(text string) { field.Set(text) }),
				vdom.OnKeyDown(addField),
			),
		),
	)
}
