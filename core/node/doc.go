// Package node defines the declared node record and the drift comparison
// algorithm at the heart of node-manager.
//
// A Record is built from one entry of a node manifest. It carries a typed
// view of the well-known fields (hostname, ip, gpu_type, driver versions,
// boot flags, tags) and, crucially, the complete original mapping in
// document order. The mapping is the canonical representation: fields the
// typed view does not model still serialize, compare, and round-trip
// bit-for-bit.
//
// # Comparison
//
// CompareAgainst walks every declared field in document order and checks it
// against an arbitrary stored document:
//
//   - declared field missing from the store   -> ExtraKeys
//   - declared field present but unequal      -> Mismatches
//   - declared field present and equal        -> not reported
//
// Values are compared structurally (deep comparison, including nested
// mappings and sequences). Fields that exist only in the stored document are
// ignored by the default comparison; CompareStrict additionally surfaces
// them as UnexpectedKeys without changing the classification.
//
// The resulting Status is derived from the evidence after the full pass:
// FAIL whenever any mismatch exists, CONDITIONAL when fields are missing
// from the store but none mismatch, PASS when both lists are empty.
//
// # Serialization
//
// Serialize encodes the canonical mapping as YAML in the insertion order of
// the source document, so output is reproducible and lossless for any
// mapping, modeled or not.
package node
