// Package nodes exposes the node inventory over HTTP.
//
// It serves stored node documents and runs on-demand validation of
// declared manifests against the key-value store, using the
// `core/reconcile` engine.
//
// # Components
//
//   - Service: Cached store lookups (TTL + request collapsing) and
//     manifest validation batches.
//   - Handler: Exposes the HTTP endpoints.
//   - Loader: Registers the feature with the application.
//
// # HTTP Endpoints
//
//   - GET /nodes/:hostname : Get the stored document for a node
//     (supports ?format=yaml for the canonical document).
//   - POST /nodes/validate : Validate a posted YAML manifest
//     (supports ?strict=true and ?workers=N).
package nodes
