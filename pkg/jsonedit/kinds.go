package jsonedit

import (
	"github.com/vango-dev/jsonedit/internal/errors"
	"github.com/vango-dev/jsonedit/pkg/value"
	"github.com/vango-dev/jsonedit/pkg/vango"
	"github.com/vango-dev/jsonedit/pkg/vdom"
)

// entry describes one selectable kind.
type entry struct {
	kind   value.Kind
	name   string
	create func() value.Value
}

// entries lists the kinds in selector order.
var entries = []entry{
	{value.KindNull, "Null", value.Null},
	{value.KindString, "String", func() value.Value { return value.String("") }},
	{value.KindNumber, "Number", func() value.Value { return value.Number(0) }},
	{value.KindArray, "Array", func() value.Value { return value.Array() }},
	{value.KindObject, "Object", func() value.Value { return value.Object() }},
}

// kindIndex returns the selector position of k.
func kindIndex(k value.Kind) int {
	for i, e := range entries {
		if e.kind == k {
			return i
		}
	}
	panic(errors.New("E003").WithDetailf("kind %v", k))
}

// nameIndex returns the selector position of the kind called name, or -1.
func nameIndex(name string) int {
	for i, e := range entries {
		if e.name == name {
			return i
		}
	}
	return -1
}

// handler renders the editor of one kind.
type handler func(s *vango.Scope, v value.Value, onChanged func(value.Value), opts Options) *vdom.VNode

// handlerFor selects the editor for k.
func handlerFor(k value.Kind) handler {
	switch k {
	case value.KindNull:
		return nullEditor
	case value.KindString:
		return stringEditor
	case value.KindNumber:
		return numberEditor
	case value.KindArray:
		return arrayEditor
	case value.KindObject:
		return objectEditor
	default:
		panic(errors.New("E003").WithDetailf("kind %v", k))
	}
}
