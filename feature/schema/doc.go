// Package schema implements the live schema drift feature.
//
// It captures MySQL schemas from information_schema into object graphs,
// stores them as named snapshots in the object storage bucket, and diffs
// the live schema against a snapshot or two snapshots against each other.
// Diff responses carry the sync preview: one entry per edit with its path
// and action.
//
// # HTTP Endpoints
//
//   - GET /schema/snapshots : List stored snapshots.
//   - GET /schema/snapshots/diff?from=&to= : Diff two snapshots.
//   - POST /schema/{name}/snapshots/{snapshot} : Capture a live schema.
//   - GET /schema/{name}/diff?snapshot= : Diff a snapshot against the live schema.
//
// Comparison options are passed as query parameters named after the
// option keys, e.g. ?CaseSensitive=false&maxTableCommentLength=60.
package schema
