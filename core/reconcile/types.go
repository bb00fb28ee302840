package reconcile

import (
	"node-manager/core/etcd"
	"node-manager/core/node"
)

// Operation identifies a batch operation in reports.
type Operation string

const (
	// OperationUpdate is the write-all batch.
	OperationUpdate Operation = "update"
	// OperationValidate is the read-and-compare batch.
	OperationValidate Operation = "validate"
)

// OutcomeEncodeFailed marks a record that could not be serialized before
// the store was ever contacted. It extends the store's outcome vocabulary
// for engine-side failures.
const OutcomeEncodeFailed = etcd.Outcome("encode_error")

// WriteResult is the write outcome for a single record.
type WriteResult struct {
	// Hostname is the record identifier.
	Hostname string `json:"hostname"`

	// OK indicates whether the record was stored. Every failure cause
	// collapses to false.
	OK bool `json:"ok"`

	// Outcome preserves the precise cause for reporting.
	Outcome etcd.Outcome `json:"outcome"`
}

// WriteSummary aggregates an update batch.
type WriteSummary struct {
	// Total is the number of records in the batch.
	Total int `json:"total"`

	// Succeeded counts stored records.
	Succeeded int `json:"succeeded"`

	// Failed counts records that could not be stored.
	Failed int `json:"failed"`

	// Results holds per-record outcomes in input order.
	Results []WriteResult `json:"results"`
}

// ValidateResult is the validation outcome for a single record.
type ValidateResult struct {
	// Hostname is the record identifier.
	Hostname string `json:"hostname"`

	// Status is the tri-state classification. Records absent from the
	// store are classified FAIL.
	Status node.Status `json:"status"`

	// Found distinguishes "present but mismatched" from "absent".
	Found bool `json:"found"`

	// Outcome preserves the store-level cause, OutcomeOK when found.
	Outcome etcd.Outcome `json:"outcome"`

	// Comparison carries the evidence lists. Nil when the record was
	// absent from the store.
	Comparison *node.ComparisonResult `json:"comparison,omitempty"`
}

// ValidateSummary aggregates a validation batch.
type ValidateSummary struct {
	// Total is the number of records in the batch.
	Total int `json:"total"`

	// Passed counts records whose stored document matches exactly.
	Passed int `json:"passed"`

	// Conditional counts records with fields missing from the store but
	// no mismatches.
	Conditional int `json:"conditional"`

	// Failed counts mismatched and absent records.
	Failed int `json:"failed"`

	// Results holds per-record outcomes in input order.
	Results []ValidateResult `json:"results"`
}

// Options controls engine behavior.
type Options struct {
	// Workers bounds concurrent store requests within a batch. Zero or
	// one processes strictly sequentially, the reference behavior.
	// Aggregate counts are identical either way; reporting stays in
	// input order.
	Workers int

	// Strict additionally reports fields present only in the store.
	// Classification is unaffected.
	Strict bool
}
