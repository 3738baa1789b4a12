package jsonedit

import (
	"strconv"

	"github.com/vango-dev/jsonedit/pkg/value"
	"github.com/vango-dev/jsonedit/pkg/vango"
	"github.com/vango-dev/jsonedit/pkg/vdom"
)

// primitive describes how an in-place editor reads and writes one kind.
type primitive struct {
	class string

	// text is the editable form of a value.
	text func(value.Value) string

	// display is the form shown while viewing.
	display func(value.Value) string

	// parse converts edited text back; false discards the edit.
	parse func(string) (value.Value, bool)

	equal func(a, b value.Value) bool
}

var stringKind = primitive{
	class:   "jsonedit-string",
	text:    value.Value.Str,
	display: func(v value.Value) string { return strconv.Quote(v.Str()) },
	parse:   func(s string) (value.Value, bool) { return value.String(s), true },
	equal:   func(a, b value.Value) bool { return a.Str() == b.Str() },
}

var numberKind = primitive{
	class:   "jsonedit-number",
	text:    func(v value.Value) string { return value.FormatNumber(v.Float()) },
	display: func(v value.Value) string { return value.FormatNumber(v.Float()) },
	parse: func(s string) (value.Value, bool) {
		f, err := value.ParseNumber(s)
		if err != nil {
			return value.Value{}, false
		}
		return value.Number(f), true
	},
	equal: func(a, b value.Value) bool { return value.ApproxEqual(a.Float(), b.Float()) },
}

func stringEditor(s *vango.Scope, v value.Value, onChanged func(value.Value), opts Options) *vdom.VNode {
	return stringKind.render(s, v, onChanged, opts)
}

func numberEditor(s *vango.Scope, v value.Value, onChanged func(value.Value), opts Options) *vdom.VNode {
	return numberKind.render(s, v, onChanged, opts)
}

func nullEditor(_ *vango.Scope, _ value.Value, _ func(value.Value), opts Options) *vdom.VNode {
	return row(opts, vdom.Span(vdom.Class("jsonedit-null"), vdom.Data("role", "label"), vdom.Text("Null")))
}

// render shows the committed value and, once clicked, a text field whose
// buffer is committed on blur or Enter.
func (p primitive) render(s *vango.Scope, initial value.Value, onChanged func(value.Value), opts Options) *vdom.VNode {
	editing := vango.Remember(s, false)
	current := vango.Remember(s, initial)
	buffer := vango.RememberRef(s, p.text(initial))

	start := func() {
		vango.Batch(func() {
			buffer.Set(p.text(current.Peek()))
			editing.Set(true)
		})
	}

	finish := func() {
		// Blur after an Enter commit arrives when editing is already over.
		if !editing.Peek() {
			return
		}
		vango.Batch(func() {
			editing.Set(false)
			next, ok := p.parse(buffer.Peek())
			if !ok || p.equal(current.Peek(), next) {
				return
			}
			current.Set(next)
			onChanged(next)
		})
	}

	if editing.Get() {
		return row(opts, vdom.Input(
			vdom.Class(p.class),
			vdom.Data("role", "edit"),
			vdom.Type("text"),
			vdom.Value(buffer.Peek()),
			vdom.Autofocus(),
			vdom.OnInput(func(text string) { buffer.Set(text) }),
			vdom.OnBlur(finish),
			vdom.OnKeyDown(func(e vango.KeyboardEvent) {
				if e.IsEnter() {
					finish()
				}
			}),
		))
	}

	return row(opts, vdom.Span(
		vdom.Class(p.class),
		vdom.Data("role", "view"),
		vdom.Text(p.display(current.Get())),
		vdom.OnClick(start),
	))
}
