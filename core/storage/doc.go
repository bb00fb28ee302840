// Package storage provides the object storage source for node manifests.
//
// Inventory pipelines commonly publish per-node YAML manifests to an S3 or
// MinIO bucket. This package wraps the MinIO Go client with the small
// read-only interface the manifest loader needs: bucket verification,
// object listing under a prefix, and object retrieval.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it
// easy to mock storage interactions for unit testing (see
// core/storage/mocks).
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	exists, err := client.BucketExists(ctx, "inventory")
package storage
