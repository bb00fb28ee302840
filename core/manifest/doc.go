// Package manifest loads declared node records from their sources.
//
// Two sources are supported:
//
//   - A local YAML file with a top-level "nodes" sequence (the classic
//     manifest shape).
//   - An object storage bucket where each ".yaml"/".yml" object under a
//     prefix holds either a single node mapping or a full manifest.
//
// Both produce an ordered batch of records: file order for manifests,
// lexical object-key order for buckets. Loading is all-or-nothing; any
// failure aborts the batch before a single store call happens.
package manifest
