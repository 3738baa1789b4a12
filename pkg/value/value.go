package value

// Kind is the runtime case of a Value.
type Kind uint8

// Kinds are declared in the order the type selector lists them.
const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindArray
	KindObject
)

// Kinds lists every kind in selector order.
var Kinds = []Kind{KindNull, KindString, KindNumber, KindArray, KindObject}

// String returns the display name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindString:
		return "String"
	case KindNumber:
		return "Number"
	case KindArray:
		return "Array"
	case KindObject:
		return "Object"
	default:
		return "Unknown"
	}
}

// IsContainer reports whether values of this kind hold children.
func (k Kind) IsContainer() bool {
	return k == KindArray || k == KindObject
}

// KindNames returns the display names of Kinds, in order.
func KindNames() []string {
	names := make([]string, len(Kinds))
	for i, k := range Kinds {
		names[i] = k.String()
	}
	return names
}

// Member is a single named entry of an Object.
type Member struct {
	Name  string
	Value Value
}

// Value is an immutable JSON-like value. The zero Value is Null.
type Value struct {
	kind    Kind
	num     float64
	str     string
	items   []Value
	members []Member
}

// Null returns the null value.
func Null() Value {
	return Value{}
}

// Number returns a number value.
func Number(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

// String returns a string value.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Array returns an array holding a copy of items.
func Array(items ...Value) Value {
	cp := make([]Value, len(items))
	copy(cp, items)
	return Value{kind: KindArray, items: cp}
}

// Object returns an object holding a copy of members, in order.
func Object(members ...Member) Value {
	cp := make([]Member, len(members))
	copy(cp, members)
	return Value{kind: KindObject, members: cp}
}

// DefaultFor returns the fresh value a kind starts with when the user
// switches an element to it.
func DefaultFor(k Kind) Value {
	switch k {
	case KindString:
		return String("")
	case KindNumber:
		return Number(0)
	case KindArray:
		return Array()
	case KindObject:
		return Object()
	default:
		return Null()
	}
}

// Kind returns the runtime case of v.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether v is null.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// Float returns the number held by v, or 0 for other kinds.
func (v Value) Float() float64 {
	return v.num
}

// Str returns the string held by v, or "" for other kinds.
func (v Value) Str() string {
	return v.str
}

// Len returns the number of children of an array or object.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.items)
	case KindObject:
		return len(v.members)
	default:
		return 0
	}
}

// Items returns a copy of the elements of an array.
func (v Value) Items() []Value {
	if v.kind != KindArray {
		return nil
	}
	cp := make([]Value, len(v.items))
	copy(cp, v.items)
	return cp
}

// Members returns a copy of the members of an object.
func (v Value) Members() []Member {
	if v.kind != KindObject {
		return nil
	}
	cp := make([]Member, len(v.members))
	copy(cp, v.members)
	return cp
}

// Get returns the first member named name.
func (v Value) Get(name string) (Value, bool) {
	for _, m := range v.members {
		if m.Name == name {
			return m.Value, true
		}
	}
	return Value{}, false
}

// Equal reports whether v and other are deeply equal. Object members are
// compared in order and numbers are compared exactly.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindNumber:
		return v.num == other.num
	case KindString:
		return v.str == other.str
	case KindArray:
		if len(v.items) != len(other.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(other.items[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.members) != len(other.members) {
			return false
		}
		for i := range v.members {
			if !v.members[i].Equal(other.members[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Equal reports whether two members have the same name and equal values.
func (m Member) Equal(other Member) bool {
	return m.Name == other.Name && m.Value.Equal(other.Value)
}

// Equal is a function form of Value.Equal, convenient as an equality hook.
func Equal(a, b Value) bool {
	return a.Equal(b)
}

// String returns the compact JSON form of v.
func (v Value) String() string {
	data, err := Marshal(v)
	if err != nil {
		return "<invalid>"
	}
	return string(data)
}
