package value

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseYAML decodes a single YAML document. Mapping order is preserved and
// aliases are resolved.
func ParseYAML(data []byte) (Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Value{}, malformed(err)
	}
	if doc.Kind == 0 {
		return Null(), nil
	}
	return fromNode(&doc)
}

// MarshalYAML returns the YAML encoding of v.
func MarshalYAML(v Value) ([]byte, error) {
	return yaml.Marshal(toNode(v))
}

func fromNode(n *yaml.Node) (Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Null(), nil
		}
		return fromNode(n.Content[0])
	case yaml.AliasNode:
		return fromNode(n.Alias)
	case yaml.SequenceNode:
		items := make([]Value, 0, len(n.Content))
		for _, c := range n.Content {
			item, err := fromNode(c)
			if err != nil {
				return Value{}, err
			}
			items = append(items, item)
		}
		return Value{kind: KindArray, items: items}, nil
	case yaml.MappingNode:
		members := make([]Member, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i]
			if key.Kind != yaml.ScalarNode {
				return Value{}, malformed(fmt.Errorf("line %d: mapping key must be a scalar", key.Line))
			}
			v, err := fromNode(n.Content[i+1])
			if err != nil {
				return Value{}, err
			}
			members = append(members, Member{Name: key.Value, Value: v})
		}
		return Value{kind: KindObject, members: members}, nil
	case yaml.ScalarNode:
		return fromScalar(n)
	default:
		return Value{}, malformed(fmt.Errorf("line %d: unexpected node kind %d", n.Line, n.Kind))
	}
}

func fromScalar(n *yaml.Node) (Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return Null(), nil
	case "!!int", "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return Value{}, malformed(err)
		}
		return Number(f), nil
	case "!!bool":
		return Value{}, unsupported(fmt.Sprintf("boolean at line %d", n.Line))
	case "!!str":
		return String(n.Value), nil
	default:
		return Value{}, unsupported(fmt.Sprintf("%s at line %d", n.ShortTag(), n.Line))
	}
}

func toNode(v Value) *yaml.Node {
	switch v.kind {
	case KindNumber:
		text := FormatNumber(v.num)
		tag := "!!float"
		if !strings.ContainsAny(text, ".eE") {
			tag = "!!int"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: text}
	case KindString:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.str}
	case KindArray:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v.items {
			n.Content = append(n.Content, toNode(item))
		}
		return n
	case KindObject:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, m := range v.members {
			n.Content = append(n.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: m.Name},
				toNode(m.Value),
			)
		}
		return n
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}

// MarshalYAML implements yaml.Marshaler.
func (v Value) MarshalYAML() (any, error) {
	return toNode(v), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (v *Value) UnmarshalYAML(n *yaml.Node) error {
	parsed, err := fromNode(n)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
