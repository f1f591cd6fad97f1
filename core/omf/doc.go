// Package omf holds the object-matching policies that decide how the diff engine
// compares values.
//
// A Policy compares scalars (Less, Equal). A FieldPolicy additionally supplies
// per-field Rules looked up by "<type>.<attribute>" and then by "<attribute>",
// falling back to the scalar comparison when no rule is registered. An
// ObjectMatcher decides whether two objects are the same entity.
//
// Two implementations are provided:
//   - Default: case-sensitive, exact comparison; objects match by ID.
//   - Normalized: built from an Options bag. It supports case-insensitive
//     names, comment truncation, collation and charset resolution against the
//     owning table and schema, and skipped fields.
//
// Policies hold configuration only, so one instance may be shared by
// concurrent diff runs.
//
//	p, err := omf.NewNormalized(omf.Options{
//	    omf.OptCaseSensitive:         false,
//	    omf.OptMaxTableCommentLength: 60,
//	})
package omf
