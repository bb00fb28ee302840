package manifest

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/minio/minio-go/v7"

	"node-manager/core/node"
	"node-manager/core/storage"
	"node-manager/core/utils"
)

// nodesKey is the top-level list of node entries in a manifest document.
const nodesKey = "nodes"

// LoadFile reads a node manifest from disk and returns the declared records
// in document order. Any failure (missing file, malformed YAML, malformed
// entries) is an input error: the caller must not run any store operation.
func LoadFile(path string) ([]*node.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	records, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}

	return records, nil
}

// Parse decodes a manifest document: a mapping with a top-level "nodes"
// sequence of node mappings. A manifest without a nodes list yields an
// empty batch; a nodes entry of the wrong shape is an error.
func Parse(data []byte) ([]*node.Record, error) {
	var doc any
	if err := yaml.UnmarshalWithOptions(data, &doc, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	root, ok := doc.(yaml.MapSlice)
	if !ok {
		return nil, fmt.Errorf("manifest root is not a mapping (got %T)", doc)
	}

	var nodes any
	for _, item := range root {
		if utils.ToString(item.Key) == nodesKey {
			nodes = item.Value
			break
		}
	}
	if nodes == nil {
		return []*node.Record{}, nil
	}

	entries, ok := nodes.([]any)
	if !ok {
		return nil, fmt.Errorf("nodes must be a sequence (got %T)", nodes)
	}

	records := make([]*node.Record, 0, len(entries))
	for i, entry := range entries {
		mapping, ok := entry.(yaml.MapSlice)
		if !ok {
			return nil, fmt.Errorf("node entry %d is not a mapping (got %T)", i, entry)
		}
		records = append(records, node.FromMapping(mapping))
	}

	return records, nil
}

// LoadBucket reads node manifests from an object storage bucket. Every
// ".yaml"/".yml" object under the prefix is fetched; objects may hold a
// single node mapping or a full manifest with a nodes list. Object keys are
// sorted lexically so the batch order is stable across runs.
func LoadBucket(ctx context.Context, client storage.Client, bucket, prefix string) ([]*node.Record, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", bucket, err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", bucket)
	}

	objects := client.ListObjects(ctx, bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})

	var keys []string
	for obj := range objects {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list manifests under %s: %w", prefix, obj.Err)
		}
		if strings.HasSuffix(obj.Key, "/") {
			continue
		}
		if !strings.HasSuffix(obj.Key, ".yaml") && !strings.HasSuffix(obj.Key, ".yml") {
			continue
		}
		keys = append(keys, obj.Key)
	}
	sort.Strings(keys)

	records := make([]*node.Record, 0, len(keys))
	for _, key := range keys {
		data, err := fetchObject(ctx, client, bucket, key)
		if err != nil {
			return nil, err
		}

		batch, err := parseObject(data)
		if err != nil {
			return nil, fmt.Errorf("manifest %s: %w", key, err)
		}
		records = append(records, batch...)
	}

	return records, nil
}

func fetchObject(ctx context.Context, client storage.Client, bucket, key string) ([]byte, error) {
	obj, err := client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch manifest %s: %w", key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", key, err)
	}

	return data, nil
}

// parseObject accepts both manifest shapes used in buckets: a document with
// a nodes list, or a bare single-node mapping.
func parseObject(data []byte) ([]*node.Record, error) {
	var doc any
	if err := yaml.UnmarshalWithOptions(data, &doc, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	root, ok := doc.(yaml.MapSlice)
	if !ok {
		return nil, fmt.Errorf("manifest root is not a mapping (got %T)", doc)
	}

	for _, item := range root {
		if utils.ToString(item.Key) == nodesKey {
			return Parse(data)
		}
	}

	return []*node.Record{node.FromMapping(root)}, nil
}
