package change

import "schemadiff/core/value"

// Node is the JSON form of a change tree.
type Node struct {
	Type    string  `json:"type"`
	Path    string  `json:"path,omitempty"`
	Attr    string  `json:"attr,omitempty"`
	Key     string  `json:"key,omitempty"`
	Old     any     `json:"old,omitempty"`
	New     any     `json:"new,omitempty"`
	Value   any     `json:"value,omitempty"`
	Prev    string  `json:"prev,omitempty"`
	Changes []*Node `json:"changes,omitempty"`
}

// Encode converts the tree rooted at c into Nodes. It returns nil for an
// empty change.
func Encode(c Change) *Node {
	if IsEmpty(c) {
		return nil
	}
	n := &Node{Type: c.Type().String(), Path: Path(c)}
	switch t := c.(type) {
	case *SimpleValueChange:
		n.Old, n.New = value.ToInterface(t.old), value.ToInterface(t.new)
	case *ValueAddedChange:
		n.Value = value.ToInterface(t.v)
	case *ValueRemovedChange:
		n.Value = value.ToInterface(t.v)
	case *ObjectAttrModifiedChange:
		n.Attr = t.attr
	case *ListItemAddedChange:
		n.Value = value.ToInterface(t.v)
		n.Prev = prevLabel(t.prev)
	case *ListItemRemovedChange:
		n.Value = value.ToInterface(t.v)
	case *ListItemModifiedChange:
		n.Value = value.Label(t.old)
	case *ListItemOrderChangedChange:
		n.Value = value.Label(t.old)
		n.Prev = prevLabel(t.prev)
	case *DictItemAddedChange:
		n.Key = t.key
		n.Value = value.ToInterface(t.v)
	case *DictItemRemovedChange:
		n.Key = t.key
		n.Value = value.ToInterface(t.v)
	case *DictItemModifiedChange:
		n.Key = t.key
	}
	for _, sub := range c.Subchanges() {
		n.Changes = append(n.Changes, Encode(sub))
	}
	return n
}
