// Package etcd provides the key-value store client for node records.
//
// It speaks the etcd v3 HTTP+JSON gateway protocol: writes go to
// POST /v3/kv/put and reads to POST /v3/kv/range, with keys and values
// base64-encoded in the JSON bodies. Records live under the
// "/gpu/nodes/<hostname>" namespace. The wire format is a compatibility
// surface shared with other tooling and must not drift.
//
// # Error Model
//
// Put and Get never return Go errors. Every failure folds into the result's
// Outcome: transport failures, protocol violations, missing values and
// undecodable values. The collapsed views (PutResult.OK, GetResult.NotFound)
// reproduce the behavior batch operations are specified against, while the
// Outcome keeps the precise cause available for reporting.
//
// Writes are unconditional last-writer-wins overwrites of the whole key:
// no transactions, no compare-and-swap, no TTLs.
package etcd
