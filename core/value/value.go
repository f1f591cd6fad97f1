package value

import (
	"fmt"
	"strconv"
)

// Kind tags the four value shapes.
type Kind int

const (
	// ScalarKind is an integer, double or string.
	ScalarKind Kind = iota
	// ListKind is an ordered sequence.
	ListKind
	// DictKind is a string keyed map.
	DictKind
	// ObjectKind is a typed entity with identity and attributes.
	ObjectKind
)

func (k Kind) String() string {
	switch k {
	case ScalarKind:
		return "scalar"
	case ListKind:
		return "list"
	case DictKind:
		return "dict"
	case ObjectKind:
		return "object"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is implemented by *Scalar, *List, *Dict and *Object only.
type Value interface {
	Kind() Kind
	isValue()
}

// ScalarType tags the payload of a Scalar.
type ScalarType int

const (
	IntType ScalarType = iota
	DoubleType
	StringType
)

// Scalar holds exactly one of an integer, a double or a string.
type Scalar struct {
	typ ScalarType
	i   int64
	f   float64
	s   string
}

// Int returns an integer scalar.
func Int(i int64) *Scalar { return &Scalar{typ: IntType, i: i} }

// Double returns a floating point scalar.
func Double(f float64) *Scalar { return &Scalar{typ: DoubleType, f: f} }

// String returns a string scalar.
func String(s string) *Scalar { return &Scalar{typ: StringType, s: s} }

func (*Scalar) Kind() Kind { return ScalarKind }
func (*Scalar) isValue()   {}

// Type reports which payload the scalar carries.
func (s *Scalar) Type() ScalarType { return s.typ }

// Int returns the integer payload. It is zero for other scalar types.
func (s *Scalar) Int() int64 { return s.i }

// Double returns the floating point payload. It is zero for other scalar types.
func (s *Scalar) Double() float64 { return s.f }

// Str returns the string payload. It is empty for other scalar types.
func (s *Scalar) Str() string { return s.s }

// Interface returns the payload as a plain Go value.
func (s *Scalar) Interface() any {
	switch s.typ {
	case IntType:
		return s.i
	case DoubleType:
		return s.f
	default:
		return s.s
	}
}

func (s *Scalar) String() string {
	switch s.typ {
	case IntType:
		return strconv.FormatInt(s.i, 10)
	case DoubleType:
		return strconv.FormatFloat(s.f, 'g', -1, 64)
	default:
		return strconv.Quote(s.s)
	}
}

// List is an ordered sequence of values of one element kind.
type List struct {
	elem  Kind
	items []Value
}

// NewList returns a list with the given element kind. Element kinds are not
// checked here; comparing a list with mixed kinds is reported by the engine.
func NewList(elem Kind, items ...Value) *List {
	return &List{elem: elem, items: items}
}

func (*List) Kind() Kind { return ListKind }
func (*List) isValue()   {}

// Elem returns the declared element kind.
func (l *List) Elem() Kind { return l.elem }

// Len returns the number of elements.
func (l *List) Len() int { return len(l.items) }

// At returns the element at index i.
func (l *List) At(i int) Value { return l.items[i] }

// Items returns a copy of the element slice.
func (l *List) Items() []Value {
	out := make([]Value, len(l.items))
	copy(out, l.items)
	return out
}

// Append adds elements to the end of the list.
func (l *List) Append(items ...Value) *List {
	l.items = append(l.items, items...)
	return l
}

func (l *List) String() string {
	return fmt.Sprintf("list<%s>[%d]", l.elem, len(l.items))
}

// Dict maps string keys to values.
type Dict struct {
	keys  []string
	items map[string]Value
}

// NewDict returns an empty dict.
func NewDict() *Dict {
	return &Dict{items: map[string]Value{}}
}

func (*Dict) Kind() Kind { return DictKind }
func (*Dict) isValue()   {}

// Set stores v under key, keeping the first insertion position of key.
func (d *Dict) Set(key string, v Value) *Dict {
	if _, ok := d.items[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.items[key] = v
	return d
}

// Get returns the value stored under key.
func (d *Dict) Get(key string) (Value, bool) {
	v, ok := d.items[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (d *Dict) Keys() []string {
	out := make([]string, len(d.keys))
	copy(out, d.keys)
	return out
}

// Len returns the number of entries.
func (d *Dict) Len() int { return len(d.keys) }

func (d *Dict) String() string {
	return fmt.Sprintf("dict[%d]", len(d.keys))
}

// Object is a typed entity with a stable identity and ordered attributes.
type Object struct {
	typ   string
	id    string
	names []string
	attrs map[string]Value
}

// NewObject returns an object of type typ identified by id.
func NewObject(typ, id string) *Object {
	return &Object{typ: typ, id: id, attrs: map[string]Value{}}
}

func (*Object) Kind() Kind { return ObjectKind }
func (*Object) isValue()   {}

// Type returns the type name.
func (o *Object) Type() string { return o.typ }

// ID returns the stable identity.
func (o *Object) ID() string { return o.id }

// Set assigns an attribute. The first Set of a name declares its position.
// A nil v declares an absent optional value.
func (o *Object) Set(name string, v Value) *Object {
	if _, ok := o.attrs[name]; !ok {
		o.names = append(o.names, name)
	}
	o.attrs[name] = v
	return o
}

// Get returns an attribute value and whether the attribute is declared.
func (o *Object) Get(name string) (Value, bool) {
	v, ok := o.attrs[name]
	return v, ok
}

// GetString returns a string attribute, or "" when absent or not a string.
func (o *Object) GetString(name string) string {
	if s, ok := o.attrs[name].(*Scalar); ok && s.typ == StringType {
		return s.s
	}
	return ""
}

// Attrs returns the attribute names in declared order.
func (o *Object) Attrs() []string {
	out := make([]string, len(o.names))
	copy(out, o.names)
	return out
}

func (o *Object) String() string {
	if o.id == "" {
		return o.typ
	}
	return o.typ + "#" + o.id
}

// Label returns a short human readable name for v, used in paths and dumps.
func Label(v Value) string {
	switch t := v.(type) {
	case nil:
		return "<absent>"
	case *Scalar:
		return t.String()
	case *Object:
		if name := t.GetString("name"); name != "" {
			return name
		}
		if t.id != "" {
			return t.id
		}
		return t.typ
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
