// Package reconcile aligns two ordered lists and describes how to turn one
// into the other.
//
// Elements are matched by identity rather than position: objects by their
// stable ID (through the policy's ObjectMatcher), scalars by the policy's
// Equal, nested lists and dicts by deep equality. The alignment is a longest
// common subsequence over that matching predicate.
//
// # Operations
//
// The result is a list of change nodes:
//   - ListItemRemoved: a source element with no counterpart in the target.
//   - ListItemAdded: a target element with no counterpart in the source,
//     anchored after the element that precedes it in the target.
//   - ListItemOrderChanged: an element present on both sides that is not part
//     of the common subsequence, so it has to move.
//   - ListItemModified: an element that kept its place but changed content.
//
// All removals come first in source order, followed by the remaining
// operations in target order. Positions are always relative ("after this
// element", or the head when Prev is nil), never indices.
//
// # Tie-breaking
//
// When several longest alignments exist, the walk prefers keeping the
// current pair aligned and otherwise skips the source element first. The
// number of moves is the same for every longest alignment; the tie-break
// only decides which elements are reported as moved.
//
// # Duplicates
//
// Two objects with the same identity on one side are a data problem, not a
// failure. The first occurrence is matched and later ones are treated as
// distinct unmatched elements. A warning is logged for each duplicate.
//
// # Usage Example
//
//	r := &reconcile.Reconciler{Policy: omf.Default{}, Diff: engine.Diff}
//	ops, err := r.Reconcile(source.Items(), target.Items())
//	if err != nil {
//	    return err
//	}
//	result, err := reconcile.Apply(source.Items(), ops)
package reconcile
