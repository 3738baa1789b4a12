// Package value provides the JSON-like value tree edited by jsonedit.
//
// A Value is one of five kinds: Null, String, Number, Array or Object.
// Objects keep their members in insertion order and may contain the same
// name more than once. Values are immutable: every constructor copies its
// input and every accessor returns a copy, so an editor can hand the same
// Value to several owners without defensive copying.
//
//	v := value.Object(
//	    value.Member{Name: "name", Value: value.String("vango")},
//	    value.Member{Name: "tags", Value: value.Array(value.Number(1), value.Null())},
//	)
//	data, _ := value.Marshal(v) // {"name":"vango","tags":[1,null]}
//
// # Codecs
//
// Parse and Marshal read and write JSON; ParseYAML and MarshalYAML do the
// same for YAML documents. Booleans have no place in the value model and are
// rejected with ErrUnsupported.
package value
