// Package preview flattens change trees into the list of edits a reviewer
// reads before synchronizing two schemas.
package preview

import (
	"schemadiff/core/change"
	"schemadiff/core/value"
)

// Actions of a preview item.
const (
	ActionAdd     = "add"
	ActionRemove  = "remove"
	ActionModify  = "modify"
	ActionMove    = "move"
	ActionReplace = "replace"
)

// Item is one edit.
type Item struct {
	Path   string `json:"path"`
	Action string `json:"action"`
	Type   string `json:"type"`
	Old    any    `json:"old,omitempty"`
	New    any    `json:"new,omitempty"`
	After  string `json:"after,omitempty"`
}

// Summary counts items per action.
type Summary struct {
	Added    int `json:"added"`
	Removed  int `json:"removed"`
	Modified int `json:"modified"`
	Moved    int `json:"moved"`
	Replaced int `json:"replaced"`
}

// Total returns the number of edits.
func (s Summary) Total() int {
	return s.Added + s.Removed + s.Modified + s.Moved + s.Replaced
}

// Report is the response body of comparison endpoints.
type Report struct {
	Changed bool         `json:"changed"`
	Summary Summary      `json:"summary"`
	Changes []Item       `json:"changes"`
	Tree    *change.Node `json:"tree,omitempty"`
}

// Build assembles a report for c. The tree is included when withTree is set.
func Build(c change.Change, withTree bool) Report {
	items := Flatten(c)
	r := Report{
		Changed: !change.IsEmpty(c),
		Summary: Summarize(items),
		Changes: items,
	}
	if r.Changes == nil {
		r.Changes = []Item{}
	}
	if withTree {
		r.Tree = change.Encode(c)
	}
	return r
}

// Flatten lists the edits of c in tree order.
func Flatten(c change.Change) []Item {
	var items []Item
	change.Walk(c, func(n change.Change, _ int) bool {
		item := Item{Path: change.Path(n), Type: n.Type().String()}

		switch n.Type() {
		case change.SimpleValue:
			sv := n.(*change.SimpleValueChange)
			item.Action = ActionModify
			item.Old, item.New = value.ToInterface(sv.Old()), value.ToInterface(sv.New())
		case change.ValueAdded:
			item.Action = ActionAdd
			item.New = value.ToInterface(n.(*change.ValueAddedChange).Value())
		case change.ValueRemoved:
			item.Action = ActionRemove
			item.Old = value.ToInterface(n.(*change.ValueRemovedChange).Value())
		case change.ValueReplaced:
			subs := n.Subchanges()
			item.Action = ActionReplace
			item.Old = value.ToInterface(subs[0].(*change.ValueRemovedChange).Value())
			item.New = value.ToInterface(subs[1].(*change.ValueAddedChange).Value())
			items = append(items, item)
			return false
		case change.ListItemAdded:
			a := n.(*change.ListItemAddedChange)
			item.Action = ActionAdd
			item.New = value.ToInterface(a.Value())
			item.After = anchor(a.Prev())
		case change.ListItemRemoved:
			item.Action = ActionRemove
			item.Old = value.ToInterface(n.(*change.ListItemRemovedChange).Value())
		case change.ListItemOrderChanged:
			m := n.(*change.ListItemOrderChangedChange)
			item.Action = ActionMove
			item.After = anchor(m.Prev())
		case change.DictItemAdded:
			item.Action = ActionAdd
			item.New = value.ToInterface(n.(*change.DictItemAddedChange).Value())
		case change.DictItemRemoved:
			item.Action = ActionRemove
			item.Old = value.ToInterface(n.(*change.DictItemRemovedChange).Value())
		case change.NoChangeType, change.ObjectModified, change.ObjectAttrModified, change.ListModified,
			change.ListItemModified, change.DictModified, change.DictItemModified:
			return true
		default:
			panic("preview: unexpected change type " + n.Type().String())
		}
		items = append(items, item)
		return true
	})
	return items
}

func anchor(prev value.Value) string {
	if prev == nil {
		return "<head>"
	}
	return value.Label(prev)
}

// Summarize counts items per action.
func Summarize(items []Item) Summary {
	var s Summary
	for _, it := range items {
		switch it.Action {
		case ActionAdd:
			s.Added++
		case ActionRemove:
			s.Removed++
		case ActionModify:
			s.Modified++
		case ActionMove:
			s.Moved++
		case ActionReplace:
			s.Replaced++
		}
	}
	return s
}
