package node_test

import (
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"node-manager/core/node"
)

// sampleMapping returns a full node document in manifest order.
func sampleMapping() yaml.MapSlice {
	return yaml.MapSlice{
		{Key: "hostname", Value: "test-node-1"},
		{Key: "ip", Value: "10.0.0.10"},
		{Key: "gpu_type", Value: "Nvidia H200"},
		{Key: "bios_version", Value: "2.4.4"},
		{Key: "nvidia_driver", Value: "575.148.08"},
		{Key: "cuda_version", Value: "12.8"},
		{Key: "os", Value: "ubuntu-22.04"},
		{Key: "kernel", Value: "6.8.0-60-generic"},
		{Key: "secure_boot", Value: false},
		{Key: "monitoring_enabled", Value: true},
		{Key: "tags", Value: []any{"available", "H200"}},
	}
}

func TestFromMapping_TypedFields(t *testing.T) {
	r := node.FromMapping(sampleMapping())

	assert.Equal(t, "test-node-1", r.Hostname)
	assert.Equal(t, "10.0.0.10", r.IP)
	assert.Equal(t, "Nvidia H200", r.GPUType)
	assert.Equal(t, "2.4.4", r.BIOSVersion)
	assert.Equal(t, "575.148.08", r.NvidiaDriver)
	assert.Equal(t, "12.8", r.CUDAVersion)
	assert.Equal(t, "ubuntu-22.04", r.OS)
	assert.Equal(t, "6.8.0-60-generic", r.Kernel)
	assert.False(t, r.SecureBoot)
	assert.True(t, r.MonitoringEnabled)
	assert.Equal(t, []string{"available", "H200"}, r.Tags)
}

func TestFromMapping_Defaults(t *testing.T) {
	r := node.FromMapping(yaml.MapSlice{})

	assert.Equal(t, "", r.Hostname)
	assert.Equal(t, "", r.IP)
	assert.Equal(t, "", r.GPUType)
	assert.False(t, r.SecureBoot)
	assert.False(t, r.MonitoringEnabled)
	assert.Equal(t, []string{}, r.Tags)
}

func TestFromMapping_UnknownFieldsSurvive(t *testing.T) {
	doc := yaml.MapSlice{
		{Key: "hostname", Value: "test-node-1"},
		{Key: "rack_position", Value: "R12-U07"},
		{Key: "nics", Value: yaml.MapSlice{
			{Key: "eth0", Value: "25G"},
			{Key: "eth1", Value: "100G"},
		}},
	}

	r := node.FromMapping(doc)

	// The typed view knows nothing about the extra fields, but the
	// canonical mapping is the construction-time document, untouched.
	assert.Equal(t, "test-node-1", r.Hostname)
	assert.Equal(t, doc, r.CanonicalMapping())
}

func TestFromMapping_NullValueKeepsDefault(t *testing.T) {
	doc := yaml.MapSlice{
		{Key: "hostname", Value: nil},
		{Key: "tags", Value: nil},
	}

	r := node.FromMapping(doc)

	assert.Equal(t, "", r.Hostname)
	assert.Equal(t, []string{}, r.Tags)
	// The null still round-trips through the canonical mapping.
	assert.Equal(t, doc, r.CanonicalMapping())
}

func TestSerialize_RoundTrip(t *testing.T) {
	doc := yaml.MapSlice{
		{Key: "hostname", Value: "test-node-1"},
		{Key: "gpu_type", Value: "Nvidia H200"},
		{Key: "secure_boot", Value: false},
		{Key: "tags", Value: []any{"available", "H200"}},
		{Key: "nics", Value: yaml.MapSlice{
			{Key: "eth0", Value: "25G"},
		}},
	}

	r := node.FromMapping(doc)

	data, err := r.Serialize()
	require.NoError(t, err)

	parsed, err := node.DecodeMapping(data)
	require.NoError(t, err)

	assert.Equal(t, doc, parsed)
}

func TestSerialize_InsertionOrder(t *testing.T) {
	// Keys deliberately not alphabetical; output must keep document order.
	doc := yaml.MapSlice{
		{Key: "zone", Value: "eu-west"},
		{Key: "hostname", Value: "test-node-1"},
		{Key: "arch", Value: "x86_64"},
	}

	data, err := node.FromMapping(doc).Serialize()
	require.NoError(t, err)

	out := string(data)
	zone := strings.Index(out, "zone:")
	hostname := strings.Index(out, "hostname:")
	arch := strings.Index(out, "arch:")
	require.NotEqual(t, -1, zone)
	require.NotEqual(t, -1, hostname)
	require.NotEqual(t, -1, arch)
	assert.Less(t, zone, hostname)
	assert.Less(t, hostname, arch)
}

func TestDecodeMapping_Errors(t *testing.T) {
	t.Run("InvalidYAML", func(t *testing.T) {
		_, err := node.DecodeMapping([]byte("hostname: [unclosed"))
		assert.Error(t, err)
	})

	t.Run("NotAMapping", func(t *testing.T) {
		_, err := node.DecodeMapping([]byte("- a\n- b\n"))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not a mapping")
	})
}
