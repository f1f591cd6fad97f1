package change

import (
	"fmt"

	"schemadiff/core/value"
)

// Type is the tag of a change node.
type Type int

const (
	NoChangeType Type = iota
	SimpleValue
	ValueAdded
	ValueRemoved
	ValueReplaced
	ObjectModified
	ObjectAttrModified
	ListModified
	ListItemAdded
	ListItemRemoved
	ListItemModified
	ListItemOrderChanged
	DictModified
	DictItemAdded
	DictItemRemoved
	DictItemModified
)

var typeNames = [...]string{
	NoChangeType:         "NoChange",
	SimpleValue:          "SimpleValue",
	ValueAdded:           "ValueAdded",
	ValueRemoved:         "ValueRemoved",
	ValueReplaced:        "ValueReplaced",
	ObjectModified:       "ObjectModified",
	ObjectAttrModified:   "ObjectAttrModified",
	ListModified:         "ListModified",
	ListItemAdded:        "ListItemAdded",
	ListItemRemoved:      "ListItemRemoved",
	ListItemModified:     "ListItemModified",
	ListItemOrderChanged: "ListItemOrderChanged",
	DictModified:         "DictModified",
	DictItemAdded:        "DictItemAdded",
	DictItemRemoved:      "DictItemRemoved",
	DictItemModified:     "DictItemModified",
}

func (t Type) String() string {
	if t >= 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// IsComposite reports whether nodes of this type are MultiChange values.
func (t Type) IsComposite() bool {
	switch t {
	case ObjectModified, ListModified, DictModified, ValueReplaced:
		return true
	}
	return false
}

// Change is a node of the difference tree.
type Change interface {
	// Type returns the node tag.
	Type() Type
	// Parent returns the enclosing node, or nil for the root.
	Parent() Change
	// Subchanges returns the directly owned child changes in order.
	Subchanges() []Change

	setParent(Change)
}

type node struct {
	parent Change
}

func (n *node) Parent() Change      { return n.parent }
func (n *node) setParent(p Change) { n.parent = p }

type leaf struct{ node }

func (leaf) Subchanges() []Change { return nil }

type noChange struct{}

func (noChange) Type() Type           { return NoChangeType }
func (noChange) Parent() Change       { return nil }
func (noChange) Subchanges() []Change { return nil }
func (noChange) setParent(Change)     {}

// NoChange is the sentinel for "compared, no difference".
var NoChange Change = noChange{}

// IsEmpty reports whether c denotes no difference, either as nil or as NoChange.
func IsEmpty(c Change) bool {
	return c == nil || c.Type() == NoChangeType
}

// SimpleValueChange records a scalar that changed value.
type SimpleValueChange struct {
	leaf
	old, new value.Value
}

func NewSimpleValue(old, new value.Value) *SimpleValueChange {
	return &SimpleValueChange{old: old, new: new}
}

func (*SimpleValueChange) Type() Type         { return SimpleValue }
func (c *SimpleValueChange) Old() value.Value { return c.old }
func (c *SimpleValueChange) New() value.Value { return c.new }

// ValueAddedChange records an optional value that became present.
type ValueAddedChange struct {
	leaf
	v value.Value
}

func NewValueAdded(v value.Value) *ValueAddedChange { return &ValueAddedChange{v: v} }

func (*ValueAddedChange) Type() Type           { return ValueAdded }
func (c *ValueAddedChange) Value() value.Value { return c.v }

// ValueRemovedChange records an optional value that became absent.
type ValueRemovedChange struct {
	leaf
	v value.Value
}

func NewValueRemoved(v value.Value) *ValueRemovedChange { return &ValueRemovedChange{v: v} }

func (*ValueRemovedChange) Type() Type           { return ValueRemoved }
func (c *ValueRemovedChange) Value() value.Value { return c.v }

// ObjectAttrModifiedChange wraps the change of one object attribute.
type ObjectAttrModifiedChange struct {
	node
	attr string
	sub  Change
}

func NewObjectAttrModified(attr string, sub Change) *ObjectAttrModifiedChange {
	c := &ObjectAttrModifiedChange{attr: attr, sub: sub}
	sub.setParent(c)
	return c
}

func (*ObjectAttrModifiedChange) Type() Type             { return ObjectAttrModified }
func (c *ObjectAttrModifiedChange) Attr() string         { return c.attr }
func (c *ObjectAttrModifiedChange) Subchange() Change    { return c.sub }
func (c *ObjectAttrModifiedChange) Subchanges() []Change { return []Change{c.sub} }

// ListItemAddedChange records an element inserted after Prev, or at the head
// when Prev is nil.
type ListItemAddedChange struct {
	leaf
	v, prev value.Value
}

func NewListItemAdded(v, prev value.Value) *ListItemAddedChange {
	return &ListItemAddedChange{v: v, prev: prev}
}

func (*ListItemAddedChange) Type() Type           { return ListItemAdded }
func (c *ListItemAddedChange) Value() value.Value { return c.v }
func (c *ListItemAddedChange) Prev() value.Value  { return c.prev }

// ListItemRemovedChange records an element that disappeared.
type ListItemRemovedChange struct {
	leaf
	v value.Value
}

func NewListItemRemoved(v value.Value) *ListItemRemovedChange {
	return &ListItemRemovedChange{v: v}
}

func (*ListItemRemovedChange) Type() Type           { return ListItemRemoved }
func (c *ListItemRemovedChange) Value() value.Value { return c.v }

// ListItemModifiedChange records an element that kept its identity and place
// but changed content.
type ListItemModifiedChange struct {
	node
	old, new value.Value
	sub      Change
}

func NewListItemModified(old, new value.Value, sub Change) *ListItemModifiedChange {
	c := &ListItemModifiedChange{old: old, new: new, sub: sub}
	sub.setParent(c)
	return c
}

func (*ListItemModifiedChange) Type() Type             { return ListItemModified }
func (c *ListItemModifiedChange) Old() value.Value     { return c.old }
func (c *ListItemModifiedChange) New() value.Value     { return c.new }
func (c *ListItemModifiedChange) Subchange() Change    { return c.sub }
func (c *ListItemModifiedChange) Subchanges() []Change { return []Change{c.sub} }

// ListItemOrderChangedChange records an element that moved to sit after Prev
// (or at the head). Subchange is non-nil when the moved element also changed.
type ListItemOrderChangedChange struct {
	node
	old, new, prev value.Value
	sub            Change
}

func NewListItemOrderChanged(old, new, prev value.Value, sub Change) *ListItemOrderChangedChange {
	c := &ListItemOrderChangedChange{old: old, new: new, prev: prev, sub: sub}
	if sub != nil {
		sub.setParent(c)
	}
	return c
}

func (*ListItemOrderChangedChange) Type() Type          { return ListItemOrderChanged }
func (c *ListItemOrderChangedChange) Old() value.Value  { return c.old }
func (c *ListItemOrderChangedChange) New() value.Value  { return c.new }
func (c *ListItemOrderChangedChange) Prev() value.Value { return c.prev }
func (c *ListItemOrderChangedChange) Subchange() Change { return c.sub }
func (c *ListItemOrderChangedChange) Subchanges() []Change {
	if c.sub == nil {
		return nil
	}
	return []Change{c.sub}
}

// DictItemAddedChange records a key present only in the target.
type DictItemAddedChange struct {
	leaf
	key string
	v   value.Value
}

func NewDictItemAdded(key string, v value.Value) *DictItemAddedChange {
	return &DictItemAddedChange{key: key, v: v}
}

func (*DictItemAddedChange) Type() Type           { return DictItemAdded }
func (c *DictItemAddedChange) Key() string        { return c.key }
func (c *DictItemAddedChange) Value() value.Value { return c.v }

// DictItemRemovedChange records a key present only in the source.
type DictItemRemovedChange struct {
	leaf
	key string
	v   value.Value
}

func NewDictItemRemoved(key string, v value.Value) *DictItemRemovedChange {
	return &DictItemRemovedChange{key: key, v: v}
}

func (*DictItemRemovedChange) Type() Type           { return DictItemRemoved }
func (c *DictItemRemovedChange) Key() string        { return c.key }
func (c *DictItemRemovedChange) Value() value.Value { return c.v }

// DictItemModifiedChange wraps the change of the value under one key.
type DictItemModifiedChange struct {
	node
	key string
	sub Change
}

func NewDictItemModified(key string, sub Change) *DictItemModifiedChange {
	c := &DictItemModifiedChange{key: key, sub: sub}
	sub.setParent(c)
	return c
}

func (*DictItemModifiedChange) Type() Type             { return DictItemModified }
func (c *DictItemModifiedChange) Key() string          { return c.key }
func (c *DictItemModifiedChange) Subchange() Change    { return c.sub }
func (c *DictItemModifiedChange) Subchanges() []Change { return []Change{c.sub} }

// MultiChange owns an ordered list of sibling changes.
type MultiChange struct {
	node
	typ     Type
	changes []Change
}

// NewMulti wraps changes into a composite of type typ. It returns nil when
// changes is empty so that empty composites never reach the tree. It panics
// when typ is not a composite tag.
func NewMulti(typ Type, changes []Change) Change {
	if !typ.IsComposite() {
		panic(fmt.Sprintf("change: %s is not a composite type", typ))
	}
	if len(changes) == 0 {
		return nil
	}
	c := &MultiChange{typ: typ, changes: changes}
	for _, sub := range changes {
		sub.setParent(c)
	}
	return c
}

// NewReplaced builds the change for a value that was replaced by one of an
// incompatible shape.
func NewReplaced(old, new value.Value) Change {
	return NewMulti(ValueReplaced, []Change{NewValueRemoved(old), NewValueAdded(new)})
}

func (c *MultiChange) Type() Type { return c.typ }

func (c *MultiChange) Subchanges() []Change {
	out := make([]Change, len(c.changes))
	copy(out, c.changes)
	return out
}

// Len returns the number of direct children.
func (c *MultiChange) Len() int { return len(c.changes) }
