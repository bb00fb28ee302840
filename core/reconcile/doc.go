// Package reconcile drives declared node inventory against the cluster
// key-value store and classifies the drift it finds.
//
// The engine runs two batch operations over a slice of declared records:
//
//  1. WriteAll: serialize every record and store it under its hostname
//     key. Failures are tallied, never fatal; the batch always runs to
//     the end.
//
//  2. ValidateAll: fetch every record's stored document and compare the
//     declared mapping against it. Each record is classified:
//
//     PASS         every declared field is present and equal
//     CONDITIONAL  some declared fields are missing, none mismatch
//     FAIL         at least one declared field differs, or the record
//     is absent from the store
//
// Comparison is one-directional: fields that exist only in the stored
// document never affect classification. Strict mode surfaces them as
// informational evidence without changing the status.
//
// # Reporting
//
// The engine emits structured events through an injected Reporter
// instead of logging on its own. ZapReporter logs them, a
// CollectingReporter accumulates them for JSON reports and tests, and
// MultiReporter fans out to several sinks at once (the audit trail
// recorder hooks in this way). Per-record events always fire in input
// order, even when a worker pool processes the batch.
//
// # Concurrency
//
// Options.Workers bounds concurrent store requests within a batch.
// Results land in per-index slots, so a pooled run produces the same
// summary counts and the same report order as a sequential one.
//
// # Usage Example
//
//	store, _ := etcd.NewClient(cfg.Etcd)
//	engine := reconcile.NewEngine(store, reconcile.NewZapReporter(log), reconcile.Options{
//	    Workers: 4,
//	})
//
//	summary := engine.ValidateAll(ctx, records)
//	if summary.Failed > 0 {
//	    // drift found; summary.Results holds the evidence per record
//	}
package reconcile
