// Package storage wraps the MinIO Go client for publishing remote assets.
//
// Remotes can be served straight from an S3-compatible bucket. The manifest
// package uses this client to upload a built remote's stylesheet manifest
// (assets/assets.json) and the stylesheets it lists, and to read a published
// manifest back.
//
// # Client Interface
//
// The Client interface abstracts the underlying provider so publishing can be
// unit tested with the mock in core/storage/mocks.
//
//   - BucketExists / MakeBucket: ensure the target bucket exists.
//   - PutObject: upload content with size and content type.
//   - GetObject: read content back as a stream.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	exists, err := client.BucketExists(ctx, "remotes")
package storage
