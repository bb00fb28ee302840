package node

import (
	"fmt"

	"github.com/goccy/go-yaml"

	"node-manager/core/utils"
)

// Well-known field names of a node document. The typed view of a Record
// covers exactly these; every other field lives only in the canonical
// mapping.
const (
	FieldHostname          = "hostname"
	FieldIP                = "ip"
	FieldGPUType           = "gpu_type"
	FieldBIOSVersion       = "bios_version"
	FieldNvidiaDriver      = "nvidia_driver"
	FieldCUDAVersion       = "cuda_version"
	FieldOS                = "os"
	FieldKernel            = "kernel"
	FieldSecureBoot        = "secure_boot"
	FieldMonitoringEnabled = "monitoring_enabled"
	FieldTags              = "tags"
)

// Record is a single declared node. It is immutable after construction:
// comparison and serialization never modify it, and a failed operation never
// patches it.
type Record struct {
	// Hostname identifies the node and keys the store entry.
	Hostname string
	// IP is the declared management address.
	IP string
	// GPUType is the accelerator model (e.g. "Nvidia H200").
	GPUType string
	// BIOSVersion is the declared firmware version.
	BIOSVersion string
	// NvidiaDriver is the declared driver version.
	NvidiaDriver string
	// CUDAVersion is the declared CUDA toolkit version.
	CUDAVersion string
	// OS is the declared operating system.
	OS string
	// Kernel is the declared kernel release.
	Kernel string
	// SecureBoot reports whether secure boot is declared enabled.
	SecureBoot bool
	// MonitoringEnabled reports whether monitoring is declared enabled.
	MonitoringEnabled bool
	// Tags is the declared ordered tag list.
	Tags []string

	// raw is the exact mapping the Record was constructed from, in
	// document order. It is the canonical representation; the typed
	// fields above are a convenience view only.
	raw yaml.MapSlice
}

// FromMapping constructs a Record from a parsed node document. It never
// fails: missing string fields default to "", booleans default to false and
// the tag list defaults to empty. The full document is retained as the
// canonical mapping, including fields the typed view does not model.
func FromMapping(doc yaml.MapSlice) *Record {
	r := &Record{
		Tags: []string{},
		raw:  doc,
	}

	for _, item := range doc {
		if item.Value == nil {
			// Explicit nulls keep the typed default; the canonical
			// mapping still carries them.
			continue
		}

		switch utils.ToString(item.Key) {
		case FieldHostname:
			r.Hostname = utils.ToString(item.Value)
		case FieldIP:
			r.IP = utils.ToString(item.Value)
		case FieldGPUType:
			r.GPUType = utils.ToString(item.Value)
		case FieldBIOSVersion:
			r.BIOSVersion = utils.ToString(item.Value)
		case FieldNvidiaDriver:
			r.NvidiaDriver = utils.ToString(item.Value)
		case FieldCUDAVersion:
			r.CUDAVersion = utils.ToString(item.Value)
		case FieldOS:
			r.OS = utils.ToString(item.Value)
		case FieldKernel:
			r.Kernel = utils.ToString(item.Value)
		case FieldSecureBoot:
			r.SecureBoot = utils.ToBool(item.Value)
		case FieldMonitoringEnabled:
			r.MonitoringEnabled = utils.ToBool(item.Value)
		case FieldTags:
			r.Tags = utils.ToStringSlice(item.Value)
		}
	}

	return r
}

// CanonicalMapping returns the exact mapping used at construction time, not
// a reconstruction from the typed fields. Callers must not modify it.
func (r *Record) CanonicalMapping() yaml.MapSlice {
	return r.raw
}

// Serialize encodes the canonical mapping as YAML. Key order is the
// insertion order of the source document, making the output reproducible
// and the encoding lossless for fields unknown to the typed view.
func (r *Record) Serialize() ([]byte, error) {
	data, err := yaml.Marshal(r.raw)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize record %q: %w", r.Hostname, err)
	}
	return data, nil
}

// DecodeMapping parses YAML bytes into an ordered mapping. It is the single
// decode path for node documents, so declared and stored values share one
// representation and compare structurally.
func DecodeMapping(data []byte) (yaml.MapSlice, error) {
	var doc any
	if err := yaml.UnmarshalWithOptions(data, &doc, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}

	mapping, ok := doc.(yaml.MapSlice)
	if !ok {
		return nil, fmt.Errorf("document is not a mapping (got %T)", doc)
	}

	return mapping, nil
}
