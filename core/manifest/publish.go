package manifest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"remote-loader/core/storage"

	"github.com/minio/minio-go/v7"
)

// Publish writes the manifest for distDir and uploads it, together with the
// stylesheets it lists, under prefix in bucket. The bucket is created when
// missing.
func Publish(ctx context.Context, client storage.Client, bucket, prefix, distDir string) (Manifest, error) {
	m, err := Write(distDir)
	if err != nil {
		return Manifest{}, err
	}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return Manifest{}, fmt.Errorf("failed to check bucket %s: %w", bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return Manifest{}, fmt.Errorf("failed to create bucket %s: %w", bucket, err)
		}
	}

	files := append([]string{Path}, m.CSS...)
	for _, rel := range files {
		if err := upload(ctx, client, bucket, ObjectName(prefix, rel), filepath.Join(distDir, filepath.FromSlash(rel))); err != nil {
			return Manifest{}, err
		}
	}
	return m, nil
}

// Fetch reads a published manifest back from bucket.
func Fetch(ctx context.Context, client storage.Client, bucket, prefix string) (Manifest, error) {
	obj, err := client.GetObject(ctx, bucket, ObjectName(prefix, Path), minio.GetObjectOptions{})
	if err != nil {
		return Manifest{}, fmt.Errorf("failed to get manifest: %w", err)
	}
	defer obj.Close()

	var m Manifest
	if err := json.NewDecoder(obj).Decode(&m); err != nil {
		return Manifest{}, fmt.Errorf("failed to decode manifest: %w", err)
	}
	return m, nil
}

// Verify reads the published manifest back and checks it lists the same
// stylesheets as want.
func Verify(ctx context.Context, client storage.Client, bucket, prefix string, want Manifest) error {
	got, err := Fetch(ctx, client, bucket, prefix)
	if err != nil {
		return err
	}
	if !slices.Equal(got.CSS, want.CSS) {
		return fmt.Errorf("%w: stored %v, expected %v", ErrMismatch, got.CSS, want.CSS)
	}
	return nil
}

// ObjectName joins prefix and a build-relative path into an object key.
func ObjectName(prefix, rel string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return rel
	}
	return path.Join(prefix, rel)
}

func upload(ctx context.Context, client storage.Client, bucket, objName, file string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", file, err)
	}

	var reader io.Reader = bytes.NewReader(data)
	_, err = client.PutObject(ctx, bucket, objName, reader, int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType(objName),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", objName, err)
	}
	return nil
}

func contentType(name string) string {
	switch strings.ToLower(path.Ext(name)) {
	case ".json":
		return "application/json"
	case ".css":
		return "text/css; charset=utf-8"
	case ".js", ".mjs":
		return "application/javascript"
	default:
		return "application/octet-stream"
	}
}
