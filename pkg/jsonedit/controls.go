package jsonedit

import (
	"github.com/vango-dev/jsonedit/pkg/vdom"
)

// typeSelect renders the kind dropdown with selected marked.
func typeSelect(selected int, onPick func(string)) *vdom.VNode {
	options := make([]*vdom.VNode, len(entries))
	for i, e := range entries {
		options[i] = vdom.Option(
			vdom.Value(e.name),
			selectedAttr(i == selected),
			vdom.Text(e.name),
		)
	}
	return vdom.Select(vdom.Class("jsonedit-type"), vdom.Data("role", "type-select"),
		options, vdom.OnChange(onPick))
}

func selectedAttr(on bool) any {
	if on {
		return vdom.Selected()
	}
	return nil
}

func button(role, label string, onClick func()) *vdom.VNode {
	return vdom.Button(vdom.Data("role", role), vdom.Text(label), vdom.OnClick(onClick))
}

// itemControls renders the remove and move buttons of a container element.
func itemControls(remove, moveUp, moveDown func()) *vdom.VNode {
	return vdom.Span(vdom.Class("jsonedit-controls"),
		button("remove", "x", remove),
		button("move-up", "^", moveUp),
		button("move-down", "v", moveDown),
	)
}

// bracket renders a container delimiter.
func bracket(text string) *vdom.VNode {
	return vdom.Span(vdom.Class("jsonedit-bracket"), vdom.Text(text))
}
