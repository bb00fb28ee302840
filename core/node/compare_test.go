package node_test

import (
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"node-manager/core/node"
)

func TestCompareAgainst_Pass(t *testing.T) {
	declared := node.FromMapping(sampleMapping())
	stored := sampleMapping()

	result := declared.CompareAgainst(stored)

	assert.Equal(t, node.StatusPass, result.Status)
	assert.Empty(t, result.ExtraKeys)
	assert.Empty(t, result.Mismatches)
}

func TestCompareAgainst_Conditional(t *testing.T) {
	declared := node.FromMapping(yaml.MapSlice{
		{Key: "hostname", Value: "test-node-1"},
		{Key: "ip", Value: "10.0.0.10"},
		{Key: "gpu_type", Value: "Nvidia H200"},
		{Key: "kernel", Value: "6.8.0-60-generic"},
	})
	stored := yaml.MapSlice{
		{Key: "hostname", Value: "test-node-1"},
		{Key: "kernel", Value: "6.8.0-60-generic"},
	}

	result := declared.CompareAgainst(stored)

	assert.Equal(t, node.StatusConditional, result.Status)
	// Missing keys in declared field order.
	assert.Equal(t, []string{"ip", "gpu_type"}, result.ExtraKeys)
	assert.Empty(t, result.Mismatches)
}

// Mismatches dominate missing keys: a record with both is FAIL, and both
// evidence lists are still fully populated.
func TestCompareAgainst_FailDominates(t *testing.T) {
	declared := node.FromMapping(yaml.MapSlice{
		{Key: "hostname", Value: "a"},
		{Key: "ip", Value: "10.0.0.1"},
		{Key: "gpu_type", Value: "X"},
	})
	stored := yaml.MapSlice{
		{Key: "hostname", Value: "a"},
		{Key: "ip", Value: "10.0.0.2"},
	}

	result := declared.CompareAgainst(stored)

	assert.Equal(t, node.StatusFail, result.Status)
	require.Len(t, result.Mismatches, 1)
	assert.Equal(t, "ip", result.Mismatches[0].Key)
	assert.Equal(t, "10.0.0.1", result.Mismatches[0].Declared)
	assert.Equal(t, "10.0.0.2", result.Mismatches[0].Stored)
	assert.Equal(t, []string{"gpu_type"}, result.ExtraKeys)
}

func TestCompareAgainst_DeepValues(t *testing.T) {
	t.Run("EqualNestedMapping", func(t *testing.T) {
		declared := node.FromMapping(yaml.MapSlice{
			{Key: "hostname", Value: "test-node-1"},
			{Key: "nics", Value: yaml.MapSlice{{Key: "eth0", Value: "25G"}}},
		})
		stored := yaml.MapSlice{
			{Key: "hostname", Value: "test-node-1"},
			{Key: "nics", Value: yaml.MapSlice{{Key: "eth0", Value: "25G"}}},
		}

		assert.Equal(t, node.StatusPass, declared.CompareAgainst(stored).Status)
	})

	t.Run("TagOrderMatters", func(t *testing.T) {
		declared := node.FromMapping(yaml.MapSlice{
			{Key: "tags", Value: []any{"available", "H200"}},
		})
		stored := yaml.MapSlice{
			{Key: "tags", Value: []any{"H200", "available"}},
		}

		result := declared.CompareAgainst(stored)
		assert.Equal(t, node.StatusFail, result.Status)
		require.Len(t, result.Mismatches, 1)
		assert.Equal(t, "tags", result.Mismatches[0].Key)
	})
}

// The comparison is one-directional: stored-only fields do not influence
// the default result at all.
func TestCompareAgainst_StoredOnlyIgnored(t *testing.T) {
	declared := node.FromMapping(yaml.MapSlice{
		{Key: "hostname", Value: "test-node-1"},
	})
	stored := yaml.MapSlice{
		{Key: "hostname", Value: "test-node-1"},
		{Key: "last_seen", Value: "2025-11-02"},
		{Key: "provisioner", Value: "tinkerbell"},
	}

	result := declared.CompareAgainst(stored)

	assert.Equal(t, node.StatusPass, result.Status)
	assert.Empty(t, result.ExtraKeys)
	assert.Empty(t, result.Mismatches)
	assert.Empty(t, result.UnexpectedKeys)
}

func TestCompareStrict_UnexpectedKeys(t *testing.T) {
	declared := node.FromMapping(yaml.MapSlice{
		{Key: "hostname", Value: "test-node-1"},
	})
	stored := yaml.MapSlice{
		{Key: "hostname", Value: "test-node-1"},
		{Key: "last_seen", Value: "2025-11-02"},
		{Key: "provisioner", Value: "tinkerbell"},
	}

	result := declared.CompareStrict(stored)

	// Unexpected keys are reported but never change the classification.
	assert.Equal(t, node.StatusPass, result.Status)
	assert.Equal(t, []string{"last_seen", "provisioner"}, result.UnexpectedKeys)
}

func TestCompare_StatusLaws(t *testing.T) {
	tests := []struct {
		name     string
		declared yaml.MapSlice
		stored   yaml.MapSlice
		want     node.Status
	}{
		{
			name:     "BothListsEmpty",
			declared: yaml.MapSlice{{Key: "hostname", Value: "a"}},
			stored:   yaml.MapSlice{{Key: "hostname", Value: "a"}},
			want:     node.StatusPass,
		},
		{
			name:     "OnlyMissing",
			declared: yaml.MapSlice{{Key: "hostname", Value: "a"}, {Key: "ip", Value: "10.0.0.1"}},
			stored:   yaml.MapSlice{{Key: "hostname", Value: "a"}},
			want:     node.StatusConditional,
		},
		{
			name:     "OnlyMismatch",
			declared: yaml.MapSlice{{Key: "hostname", Value: "a"}, {Key: "ip", Value: "10.0.0.1"}},
			stored:   yaml.MapSlice{{Key: "hostname", Value: "a"}, {Key: "ip", Value: "10.0.0.9"}},
			want:     node.StatusFail,
		},
		{
			name:     "MismatchAndMissing",
			declared: yaml.MapSlice{{Key: "ip", Value: "10.0.0.1"}, {Key: "os", Value: "ubuntu-22.04"}},
			stored:   yaml.MapSlice{{Key: "ip", Value: "10.0.0.9"}},
			want:     node.StatusFail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := node.FromMapping(tt.declared).CompareAgainst(tt.stored)
			assert.Equal(t, tt.want, result.Status)
		})
	}
}

func TestMismatch_String(t *testing.T) {
	m := node.Mismatch{Key: "ip", Declared: "10.0.0.1", Stored: "10.0.0.2"}
	assert.Equal(t, "ip: declared='10.0.0.1' stored='10.0.0.2'", m.String())
}
