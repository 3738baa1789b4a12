package value

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	json "github.com/goccy/go-json"

	verrors "github.com/vango-dev/jsonedit/internal/errors"
)

// ErrUnsupported is wrapped by decode errors for inputs outside the value
// model, such as booleans.
var ErrUnsupported = errors.New("value: unsupported kind")

// Parse decodes a single JSON document.
func Parse(data []byte) (Value, error) {
	return Decode(bytes.NewReader(data))
}

// Decode reads a single JSON document from r. Object member order and
// duplicate names are preserved. Trailing data after the document is an
// error.
func Decode(r io.Reader) (Value, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return Value{}, malformed(err)
	}
	v, err := decodeToken(dec, tok)
	if err != nil {
		return Value{}, err
	}
	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			return Value{}, malformed(errors.New("unexpected data after document"))
		}
		return Value{}, malformed(err)
	}
	return v, nil
}

func decodeToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case string:
		return String(t), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return Value{}, malformed(err)
		}
		return Number(f), nil
	case float64:
		return Number(t), nil
	case bool:
		return Value{}, unsupported("boolean")
	case json.Delim:
		switch t {
		case '[':
			return decodeArray(dec)
		case '{':
			return decodeObject(dec)
		}
		return Value{}, malformed(fmt.Errorf("unexpected delimiter %q", rune(t)))
	default:
		return Value{}, unsupported(fmt.Sprintf("%T", tok))
	}
}

func decodeArray(dec *json.Decoder) (Value, error) {
	items := make([]Value, 0)
	for {
		tok, err := dec.Token()
		if err != nil {
			return Value{}, malformed(err)
		}
		if d, ok := tok.(json.Delim); ok && d == ']' {
			return Value{kind: KindArray, items: items}, nil
		}
		item, err := decodeToken(dec, tok)
		if err != nil {
			return Value{}, err
		}
		items = append(items, item)
	}
}

func decodeObject(dec *json.Decoder) (Value, error) {
	members := make([]Member, 0)
	for {
		tok, err := dec.Token()
		if err != nil {
			return Value{}, malformed(err)
		}
		if d, ok := tok.(json.Delim); ok && d == '}' {
			return Value{kind: KindObject, members: members}, nil
		}
		name, ok := tok.(string)
		if !ok {
			return Value{}, malformed(fmt.Errorf("expected member name, got %v", tok))
		}
		tok, err = dec.Token()
		if err != nil {
			return Value{}, malformed(err)
		}
		v, err := decodeToken(dec, tok)
		if err != nil {
			return Value{}, err
		}
		members = append(members, Member{Name: name, Value: v})
	}
}

// Marshal returns the compact JSON encoding of v.
func Marshal(v Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := encode(&buf, v, "", ""); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalIndent is like Marshal but applies indent to each nesting level.
func MarshalIndent(v Value, indent string) ([]byte, error) {
	var buf bytes.Buffer
	if err := encode(&buf, v, "\n", indent); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encode(buf *bytes.Buffer, v Value, prefix, indent string) error {
	switch v.kind {
	case KindNull:
		buf.WriteString("null")
	case KindNumber:
		buf.WriteString(FormatNumber(v.num))
	case KindString:
		return encodeString(buf, v.str)
	case KindArray:
		if len(v.items) == 0 {
			buf.WriteString("[]")
			return nil
		}
		inner := prefix + indent
		buf.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(inner)
			if err := encode(buf, item, inner, indent); err != nil {
				return err
			}
		}
		buf.WriteString(prefix)
		buf.WriteByte(']')
	case KindObject:
		if len(v.members) == 0 {
			buf.WriteString("{}")
			return nil
		}
		inner := prefix + indent
		buf.WriteByte('{')
		for i, m := range v.members {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(inner)
			if err := encodeString(buf, m.Name); err != nil {
				return err
			}
			buf.WriteByte(':')
			if indent != "" {
				buf.WriteByte(' ')
			}
			if err := encode(buf, m.Value, inner, indent); err != nil {
				return err
			}
		}
		buf.WriteString(prefix)
		buf.WriteByte('}')
	default:
		return unsupported(v.kind.String())
	}
	return nil
}

func encodeString(buf *bytes.Buffer, s string) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	buf.Write(data)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	return Marshal(v)
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func unsupported(what string) error {
	return verrors.New("E003").WithDetail(what).Wrap(ErrUnsupported)
}

func malformed(err error) error {
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return verrors.New("E020").WithDetail(strings.TrimPrefix(err.Error(), "json: ")).Wrap(err)
}
