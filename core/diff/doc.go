// Package diff compares two value graphs and returns a change tree.
//
// The engine dispatches on the value kind:
//   - Scalar: the policy's Equal decides; a difference is a SimpleValue
//     change.
//   - List: elements are aligned by the reconcile package and the operations
//     are wrapped into a ListModified composite.
//   - Dict: keys are compared; the changes are emitted in key order.
//   - Object: attributes are compared in declared order, each difference
//     wrapped into ObjectAttrModified under an ObjectModified composite.
//
// Values of different kinds, objects of different types, and nested objects
// that denote other entities are reported as ValueReplaced. Empty composites
// are never emitted: a nil result means "no difference".
//
// Before comparing an object attribute the engine asks the policy for a
// field rule. A rule that judges the values equal ends the comparison of
// that attribute; otherwise the values are compared as usual.
//
// # Errors
//
// Two top level objects of different identity, objects of one type that
// declare different attributes, and lists mixing element kinds are caller
// errors. They are returned wrapped around ErrIdentityMismatch or
// ErrMalformed together with the attribute path.
//
// # Concurrency
//
// An Engine only holds configuration. Each Diff call keeps its own state, so
// one Engine may serve concurrent callers as long as the compared values are
// not mutated during the call.
package diff
