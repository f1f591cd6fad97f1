// Package compare implements the document comparison feature.
//
// Clients post two value documents (JSON, or YAML serialized as JSON
// strings of the same shape) together with comparison options and receive
// the flattened list of edits that turns the source into the target.
//
// # Components
//
//   - Service: Builds the comparison policy and runs the diff engine.
//   - Handler: Exposes the HTTP endpoint.
//   - Loader: Registers the feature with the application.
//
// # HTTP Endpoints
//
//   - POST /compare : Compare the posted source and target documents.
package compare
