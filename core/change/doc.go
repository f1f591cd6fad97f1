// Package change defines the tree of differences produced by the diff engine.
//
// Every node carries a Type tag. Consumers (SQL generators, sync previews,
// tests) must dispatch on Type rather than on the concrete node struct. The
// set of tags is closed; an unknown tag is a programming error.
//
// Composite nodes (ObjectModified, ListModified, DictModified, ValueReplaced)
// are MultiChange values owning an ordered list of sibling changes. Each child
// keeps a non-owning link to its parent so a consumer can navigate upwards,
// for example to build the attribute path of a change with Path.
//
// Nodes are immutable once built. A nil Change means "no difference"; the
// NoChange sentinel means "compared, and nothing differs".
package change
