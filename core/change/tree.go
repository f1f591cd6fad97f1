package change

import (
	"fmt"
	"io"
	"strings"

	"schemadiff/core/value"
)

// Walk visits c and its descendants depth first, parents before children.
// When fn returns false the children of that node are skipped.
func Walk(c Change, fn func(c Change, depth int) bool) {
	walk(c, 0, fn)
}

func walk(c Change, depth int, fn func(Change, int) bool) {
	if IsEmpty(c) {
		return
	}
	if !fn(c, depth) {
		return
	}
	for _, sub := range c.Subchanges() {
		walk(sub, depth+1, fn)
	}
}

// Count returns the number of nodes per tag in the tree rooted at c.
func Count(c Change) map[Type]int {
	counts := map[Type]int{}
	Walk(c, func(n Change, _ int) bool {
		counts[n.Type()]++
		return true
	})
	return counts
}

// Leaves returns the nodes without children in walk order.
func Leaves(c Change) []Change {
	var out []Change
	Walk(c, func(n Change, _ int) bool {
		if len(n.Subchanges()) == 0 {
			out = append(out, n)
		}
		return true
	})
	return out
}

// Path returns the attribute path from the root of the tree down to c, for
// example "tables[orders].columns[total].comment".
func Path(c Change) string {
	var segs []string
	for n := c; n != nil; n = n.Parent() {
		if s := segment(n); s != "" {
			segs = append(segs, s)
		}
	}

	var b strings.Builder
	for i := len(segs) - 1; i >= 0; i-- {
		s := segs[i]
		if b.Len() > 0 && !strings.HasPrefix(s, "[") {
			b.WriteByte('.')
		}
		b.WriteString(s)
	}
	return b.String()
}

func segment(c Change) string {
	switch t := c.(type) {
	case *ObjectAttrModifiedChange:
		return t.attr
	case *DictItemAddedChange:
		return "[" + t.key + "]"
	case *DictItemRemovedChange:
		return "[" + t.key + "]"
	case *DictItemModifiedChange:
		return "[" + t.key + "]"
	case *ListItemAddedChange:
		return "[" + value.Label(t.v) + "]"
	case *ListItemRemovedChange:
		return "[" + value.Label(t.v) + "]"
	case *ListItemModifiedChange:
		return "[" + value.Label(t.old) + "]"
	case *ListItemOrderChangedChange:
		return "[" + value.Label(t.old) + "]"
	}
	return ""
}

// Dump writes an indented, human readable rendering of the tree.
func Dump(w io.Writer, c Change) error {
	if IsEmpty(c) {
		_, err := fmt.Fprintln(w, "no changes")
		return err
	}
	var err error
	Walk(c, func(n Change, depth int) bool {
		if err != nil {
			return false
		}
		_, err = fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", depth), Describe(n))
		return true
	})
	return err
}

// Describe renders a single node on one line.
func Describe(c Change) string {
	switch t := c.(type) {
	case *SimpleValueChange:
		return fmt.Sprintf("%s %s -> %s", t.Type(), value.Label(t.old), value.Label(t.new))
	case *ValueAddedChange:
		return fmt.Sprintf("%s %s", t.Type(), value.Label(t.v))
	case *ValueRemovedChange:
		return fmt.Sprintf("%s %s", t.Type(), value.Label(t.v))
	case *ObjectAttrModifiedChange:
		return fmt.Sprintf("%s %s", t.Type(), t.attr)
	case *ListItemAddedChange:
		return fmt.Sprintf("%s %s after %s", t.Type(), value.Label(t.v), prevLabel(t.prev))
	case *ListItemRemovedChange:
		return fmt.Sprintf("%s %s", t.Type(), value.Label(t.v))
	case *ListItemModifiedChange:
		return fmt.Sprintf("%s %s", t.Type(), value.Label(t.old))
	case *ListItemOrderChangedChange:
		return fmt.Sprintf("%s %s after %s", t.Type(), value.Label(t.old), prevLabel(t.prev))
	case *DictItemAddedChange:
		return fmt.Sprintf("%s [%s] %s", t.Type(), t.key, value.Label(t.v))
	case *DictItemRemovedChange:
		return fmt.Sprintf("%s [%s]", t.Type(), t.key)
	case *DictItemModifiedChange:
		return fmt.Sprintf("%s [%s]", t.Type(), t.key)
	case *MultiChange:
		return fmt.Sprintf("%s (%d)", t.Type(), len(t.changes))
	default:
		return c.Type().String()
	}
}

func prevLabel(prev value.Value) string {
	if prev == nil {
		return "<head>"
	}
	return value.Label(prev)
}
