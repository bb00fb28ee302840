// Package history records batch runs as a queryable audit trail.
//
// The Recorder implements the engine's Reporter interface and persists
// every completed update or validation batch, with its per-record
// outcomes, through GORM. The feature is optional: without a database
// connection it stays disabled and the rest of the application runs
// unaffected.
//
// # Components
//
//   - Recorder: Reporter sink persisting batch summaries.
//   - Service: Read access to recorded runs and aggregate stats.
//   - Handler: Exposes the HTTP endpoints.
//   - Loader: Migrates the audit tables and registers the feature.
//
// # HTTP Endpoints
//
//   - GET /history/runs : List recent runs (supports ?limit=N).
//   - GET /history/runs/:id : Get one run with per-record outcomes.
//   - GET /history/stats : Aggregate counts over the audit trail.
package history
