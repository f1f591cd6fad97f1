package reconcile

import (
	"errors"
	"fmt"

	"schemadiff/core/change"
	"schemadiff/core/value"
)

var (
	// ErrUnknownItem is returned when an operation references an element
	// instance that is not in the list being edited.
	ErrUnknownItem = errors.New("unknown list item")
	// ErrUnexpectedChange is returned for change types that are not list
	// operations.
	ErrUnexpectedChange = errors.New("unexpected change type")
)

// Apply replays ops onto a copy of source and returns the result. Elements
// are located by instance, so source must hold distinct instances. Removals
// are applied first, then the remaining operations in order. Elements that
// were modified or moved are replaced by their target instance.
func Apply(source []value.Value, ops []change.Change) ([]value.Value, error) {
	list := make([]value.Value, len(source))
	copy(list, source)

	for _, op := range ops {
		rm, ok := op.(*change.ListItemRemovedChange)
		if !ok {
			continue
		}
		i := indexOf(list, rm.Value())
		if i < 0 {
			return nil, fmt.Errorf("%w: remove %s", ErrUnknownItem, value.Label(rm.Value()))
		}
		list = append(list[:i], list[i+1:]...)
	}

	replace := map[value.Value]value.Value{}
	for _, op := range ops {
		var err error
		switch c := op.(type) {
		case *change.ListItemRemovedChange:
		case *change.ListItemAddedChange:
			list, err = insertAfter(list, c.Prev(), c.Value())
		case *change.ListItemOrderChangedChange:
			i := indexOf(list, c.Old())
			if i < 0 {
				return nil, fmt.Errorf("%w: move %s", ErrUnknownItem, value.Label(c.Old()))
			}
			list = append(list[:i], list[i+1:]...)
			list, err = insertAfter(list, c.Prev(), c.Old())
			replace[c.Old()] = c.New()
		case *change.ListItemModifiedChange:
			if indexOf(list, c.Old()) < 0 {
				return nil, fmt.Errorf("%w: modify %s", ErrUnknownItem, value.Label(c.Old()))
			}
			replace[c.Old()] = c.New()
		default:
			return nil, fmt.Errorf("%w: %s", ErrUnexpectedChange, op.Type())
		}
		if err != nil {
			return nil, err
		}
	}

	for i, v := range list {
		if nv, ok := replace[v]; ok {
			list[i] = nv
		}
	}
	return list, nil
}

func insertAfter(list []value.Value, prev, v value.Value) ([]value.Value, error) {
	at := 0
	if prev != nil {
		i := indexOf(list, prev)
		if i < 0 {
			return nil, fmt.Errorf("%w: anchor %s", ErrUnknownItem, value.Label(prev))
		}
		at = i + 1
	}
	list = append(list, nil)
	copy(list[at+1:], list[at:])
	list[at] = v
	return list, nil
}

func indexOf(list []value.Value, v value.Value) int {
	for i, item := range list {
		if item == v {
			return i
		}
	}
	return -1
}
