package node

import (
	"fmt"
	"reflect"

	"github.com/goccy/go-yaml"

	"node-manager/core/utils"
)

// Status classifies the outcome of comparing a declared record against its
// stored document.
type Status string

const (
	// StatusPass means every declared field is present in the store with
	// an equal value.
	StatusPass Status = "PASS"
	// StatusConditional means some declared fields are missing from the
	// store, but none of the present ones mismatch.
	StatusConditional Status = "CONDITIONAL"
	// StatusFail means at least one declared field has a different value
	// in the store. It takes precedence over missing fields.
	StatusFail Status = "FAIL"
)

// Mismatch records one declared field whose stored value differs.
type Mismatch struct {
	// Key is the field name.
	Key string `json:"key"`
	// Declared is the value from the node manifest.
	Declared any `json:"declared"`
	// Stored is the value found in the key-value store.
	Stored any `json:"stored"`
}

// String renders the mismatch for reports, e.g. "ip: declared='10.0.0.1' stored='10.0.0.2'".
func (m Mismatch) String() string {
	return fmt.Sprintf("%s: declared='%s' stored='%s'", m.Key, utils.ToString(m.Declared), utils.ToString(m.Stored))
}

// ComparisonResult is the classified outcome of a record comparison.
// Status is fully determined by ExtraKeys and Mismatches; UnexpectedKeys is
// informational and never influences the classification.
type ComparisonResult struct {
	// Status is the tri-state classification.
	Status Status `json:"status"`

	// ExtraKeys lists declared fields absent from the stored document,
	// in declared order.
	ExtraKeys []string `json:"extra_keys"`

	// Mismatches lists declared fields whose stored values differ, in
	// declared order.
	Mismatches []Mismatch `json:"value_mismatches"`

	// UnexpectedKeys lists fields present only in the stored document.
	// It is populated by CompareStrict and left empty otherwise.
	UnexpectedKeys []string `json:"unexpected_keys,omitempty"`
}

// MismatchStrings renders all mismatches for logging.
func (c ComparisonResult) MismatchStrings() []string {
	out := make([]string, 0, len(c.Mismatches))
	for _, m := range c.Mismatches {
		out = append(out, m.String())
	}
	return out
}

// CompareAgainst checks every declared field of the record against the
// stored document. The comparison is one-directional: fields present only
// in the stored document are ignored. Values compare by deep structural
// equality, so nested mappings and sequences are supported.
func (r *Record) CompareAgainst(stored yaml.MapSlice) ComparisonResult {
	return r.compare(stored, false)
}

// CompareStrict behaves like CompareAgainst but additionally reports fields
// present only in the stored document through UnexpectedKeys. The Status is
// unaffected: a record whose declared fields all match still passes even
// when the store carries extra fields.
func (r *Record) CompareStrict(stored yaml.MapSlice) ComparisonResult {
	return r.compare(stored, true)
}

func (r *Record) compare(stored yaml.MapSlice, strict bool) ComparisonResult {
	result := ComparisonResult{
		ExtraKeys:  []string{},
		Mismatches: []Mismatch{},
	}

	// Full pass over every declared field before the status is decided.
	for _, item := range r.raw {
		storedValue, found := lookupKey(stored, item.Key)
		if !found {
			result.ExtraKeys = append(result.ExtraKeys, utils.ToString(item.Key))
			continue
		}
		if !reflect.DeepEqual(item.Value, storedValue) {
			result.Mismatches = append(result.Mismatches, Mismatch{
				Key:      utils.ToString(item.Key),
				Declared: item.Value,
				Stored:   storedValue,
			})
		}
	}

	if strict {
		result.UnexpectedKeys = []string{}
		for _, item := range stored {
			if _, declared := lookupKey(r.raw, item.Key); !declared {
				result.UnexpectedKeys = append(result.UnexpectedKeys, utils.ToString(item.Key))
			}
		}
	}

	switch {
	case len(result.Mismatches) > 0:
		result.Status = StatusFail
	case len(result.ExtraKeys) > 0:
		result.Status = StatusConditional
	default:
		result.Status = StatusPass
	}

	return result
}

// lookupKey finds a key within a mapping. Keys compare structurally so
// non-string keys behave identically on both sides of the comparison.
func lookupKey(mapping yaml.MapSlice, key any) (any, bool) {
	for _, item := range mapping {
		if reflect.DeepEqual(item.Key, key) {
			return item.Value, true
		}
	}
	return nil, false
}
