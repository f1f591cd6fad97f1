// Package middleware groups the Fiber middleware of the server.
//
// # Components
//
//   - auth: Checks the X-API-Key header (or api_key query parameter) and
//     lets configured path prefixes such as /swagger and /metrics through.
//   - rayid: Tags every request with an X-Ray-ID, reusing the caller's id
//     when it is sane and minting a uuid otherwise.
//
// rayid must be registered first so request logs and auth failures carry
// the id.
package middleware
