// Package storage persists schema snapshots in object storage.
//
// It wraps the MinIO Go client behind the Client interface, which works with
// both AWS S3 and self-hosted MinIO and is mocked in core/storage/mocks for
// unit tests.
//
// # Snapshots
//
// A snapshot is a value graph written as YAML under snapshots/<name>.yaml:
//
//	client, err := storage.NewClient(cfg.Storage)
//	err = storage.SaveSnapshot(ctx, client, cfg.Storage.Bucket, "release-42", schema)
//	v, err := storage.LoadSnapshot(ctx, client, cfg.Storage.Bucket, "release-42")
//	names, err := storage.ListSnapshots(ctx, client, cfg.Storage.Bucket)
package storage
