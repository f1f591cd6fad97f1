// Package value provides the dynamically typed data model compared by the diff engine.
//
// A Value is exactly one of four kinds:
//   - Scalar: an integer, a double or a string. Immutable.
//   - List: an ordered sequence whose elements share one kind.
//   - Dict: a string keyed map. Key order is kept for bookkeeping but is not
//     significant when comparing.
//   - Object: a typed entity with a stable identity and an ordered set of
//     named attributes.
//
// All kinds are pointer types. Pointer identity is the instance identity used
// when an edit script refers to "this element" of a list.
//
// # Documents
//
// Decode reads YAML or JSON documents into values. Mappings that carry a
// `_type` key become Objects (with `_id` as identity), other mappings become
// Dicts. Mapping order is preserved so Object attributes keep their declared
// order.
//
//	v, err := value.Decode(f)
//	if err != nil {
//	    return err
//	}
package value
