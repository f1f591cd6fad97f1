package value

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	// TypeKey marks a mapping as an Object and names its type.
	TypeKey = "_type"
	// IDKey carries the Object identity.
	IDKey = "_id"
)

// ErrEmptyDocument is returned by Decode when the input holds no document.
var ErrEmptyDocument = errors.New("empty document")

// Decode reads one YAML or JSON document and converts it into a Value.
func Decode(r io.Reader) (Value, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyDocument
		}
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	return FromNode(&doc)
}

// FromNode converts a yaml.v3 node tree into a Value.
func FromNode(n *yaml.Node) (Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, ErrEmptyDocument
		}
		return FromNode(n.Content[0])
	case yaml.AliasNode:
		return FromNode(n.Alias)
	case yaml.ScalarNode:
		return scalarFromNode(n)
	case yaml.SequenceNode:
		return listFromNode(n)
	case yaml.MappingNode:
		return mappingFromNode(n)
	default:
		return nil, fmt.Errorf("line %d: unsupported node kind %d", n.Line, n.Kind)
	}
}

func scalarFromNode(n *yaml.Node) (Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!int":
		i, err := strconv.ParseInt(n.Value, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid integer %q: %w", n.Line, n.Value, err)
		}
		return Int(i), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, fmt.Errorf("line %d: invalid float %q: %w", n.Line, n.Value, err)
		}
		return Double(f), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, fmt.Errorf("line %d: invalid bool %q: %w", n.Line, n.Value, err)
		}
		if b {
			return Int(1), nil
		}
		return Int(0), nil
	default:
		return String(n.Value), nil
	}
}

func listFromNode(n *yaml.Node) (Value, error) {
	items := make([]Value, 0, len(n.Content))
	elem := ScalarKind
	for i, c := range n.Content {
		v, err := FromNode(c)
		if err != nil {
			return nil, err
		}
		if v == nil {
			return nil, fmt.Errorf("line %d: list element %d is null", c.Line, i)
		}
		if i == 0 {
			elem = v.Kind()
		}
		items = append(items, v)
	}
	return NewList(elem, items...), nil
}

func mappingFromNode(n *yaml.Node) (Value, error) {
	var typ, id string
	for i := 0; i+1 < len(n.Content); i += 2 {
		switch n.Content[i].Value {
		case TypeKey:
			typ = n.Content[i+1].Value
		case IDKey:
			id = n.Content[i+1].Value
		}
	}

	if typ != "" {
		obj := NewObject(typ, id)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i].Value
			if key == TypeKey || key == IDKey {
				continue
			}
			v, err := FromNode(n.Content[i+1])
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", typ, key, err)
			}
			obj.Set(key, v)
		}
		return obj, nil
	}

	d := NewDict()
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i].Value
		v, err := FromNode(n.Content[i+1])
		if err != nil {
			return nil, fmt.Errorf("[%s]: %w", key, err)
		}
		if v == nil {
			return nil, fmt.Errorf("line %d: dict item %q is null", n.Content[i+1].Line, key)
		}
		d.Set(key, v)
	}
	return d, nil
}

// Encode writes v as a YAML document that Decode reads back.
func Encode(w io.Writer, v Value) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(ToNode(v)); err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	return enc.Close()
}

// ToNode converts a Value into a yaml.v3 node tree.
func ToNode(v Value) *yaml.Node {
	switch t := v.(type) {
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	case *Scalar:
		switch t.typ {
		case IntType:
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(t.i, 10)}
		case DoubleType:
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: formatFloat(t.f)}
		default:
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: t.s}
		}
	case *List:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range t.items {
			n.Content = append(n.Content, ToNode(item))
		}
		return n
	case *Dict:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, key := range t.keys {
			n.Content = append(n.Content, keyNode(key), ToNode(t.items[key]))
		}
		return n
	case *Object:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		n.Content = append(n.Content, keyNode(TypeKey), keyNode(t.typ))
		if t.id != "" {
			n.Content = append(n.Content, keyNode(IDKey), keyNode(t.id))
		}
		for _, name := range t.names {
			n.Content = append(n.Content, keyNode(name), ToNode(t.attrs[name]))
		}
		return n
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}

func keyNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	case math.IsNaN(f):
		return ".nan"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	for _, r := range s {
		if r == '.' || r == 'e' || r == 'E' {
			return s
		}
	}
	return s + ".0"
}

// ToInterface converts v into plain Go data suitable for JSON encoding.
// Objects become maps carrying TypeKey and IDKey.
func ToInterface(v Value) any {
	switch t := v.(type) {
	case nil:
		return nil
	case *Scalar:
		return t.Interface()
	case *List:
		out := make([]any, 0, len(t.items))
		for _, item := range t.items {
			out = append(out, ToInterface(item))
		}
		return out
	case *Dict:
		out := make(map[string]any, len(t.keys))
		for _, key := range t.keys {
			out[key] = ToInterface(t.items[key])
		}
		return out
	case *Object:
		out := make(map[string]any, len(t.names)+2)
		out[TypeKey] = t.typ
		if t.id != "" {
			out[IDKey] = t.id
		}
		for _, name := range t.names {
			out[name] = ToInterface(t.attrs[name])
		}
		return out
	default:
		return nil
	}
}
