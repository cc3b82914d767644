package storage_test

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"remote-loader/core/manifest"
	"remote-loader/core/storage"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeS3 is a minimal path-style S3 endpoint holding buckets and objects in memory.
type fakeS3 struct {
	mu      sync.Mutex
	buckets map[string]bool
	objects map[string][]byte
	types   map[string]string
}

func newFakeS3() *fakeS3 {
	return &fakeS3{buckets: map[string]bool{}, objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	bucket, key, _ := strings.Cut(strings.TrimPrefix(r.URL.Path, "/"), "/")
	switch {
	case key == "" && r.Method == http.MethodHead:
		if !f.buckets[bucket] {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	case key == "" && r.Method == http.MethodPut:
		f.buckets[bucket] = true
		w.WriteHeader(http.StatusOK)
	case r.Method == http.MethodPut:
		body, err := readPayload(r)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		f.objects[r.URL.Path] = body
		f.types[r.URL.Path] = r.Header.Get("Content-Type")
		w.Header().Set("ETag", `"d41d8cd98f00b204e9800998ecf8427e"`)
		w.WriteHeader(http.StatusOK)
	case r.Method == http.MethodGet || r.Method == http.MethodHead:
		body, ok := f.objects[r.URL.Path]
		if !ok {
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `<Error><Code>NoSuchKey</Code><Message>missing</Message></Error>`)
			return
		}
		w.Header().Set("Content-Type", f.types[r.URL.Path])
		w.Header().Set("Content-Length", strconv.Itoa(len(body)))
		w.Header().Set("ETag", `"d41d8cd98f00b204e9800998ecf8427e"`)
		w.Header().Set("Last-Modified", time.Now().UTC().Format(http.TimeFormat))
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodGet {
			_, _ = w.Write(body)
		}
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// readPayload returns the object bytes, decoding aws-chunked uploads.
func readPayload(r *http.Request) ([]byte, error) {
	if !strings.HasPrefix(r.Header.Get("X-Amz-Content-Sha256"), "STREAMING-") {
		return io.ReadAll(r.Body)
	}

	var out bytes.Buffer
	br := bufio.NewReader(r.Body)
	for {
		line, err := br.ReadString('\n')
		if err != nil {
			return nil, err
		}
		sizeHex, _, _ := strings.Cut(strings.TrimSpace(line), ";")
		size, err := strconv.ParseInt(sizeHex, 16, 64)
		if err != nil {
			return nil, err
		}
		if size == 0 {
			return out.Bytes(), nil
		}
		if _, err := io.CopyN(&out, br, size); err != nil {
			return nil, err
		}
		if _, err := br.Discard(2); err != nil {
			return nil, err
		}
	}
}

func newTestClient(t *testing.T, endpoint string) storage.Client {
	t.Helper()
	client, err := storage.NewClient(storage.Config{
		Endpoint:       endpoint,
		AccessKey:      "testkey",
		SecretKey:      "testsecret",
		Region:         "us-east-1",
		TimeoutSeconds: 5,
	})
	require.NoError(t, err)
	return client
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		wantErr  bool
	}{
		{"HostPort", "localhost:9000", false},
		{"HTTPScheme", "http://localhost:9000/", false},
		{"HTTPSScheme", "https://s3.amazonaws.com", false},
		{"Empty", "  ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := storage.NewClient(storage.Config{Endpoint: tt.endpoint, Region: "us-east-1"})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.NotNil(t, client)
		})
	}
}

func TestClient_Operations(t *testing.T) {
	srv := httptest.NewServer(newFakeS3())
	defer srv.Close()

	ctx := context.Background()
	client := newTestClient(t, srv.URL)

	exists, err := client.BucketExists(ctx, "remotes")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, client.MakeBucket(ctx, "remotes", minio.MakeBucketOptions{}))
	exists, err = client.BucketExists(ctx, "remotes")
	require.NoError(t, err)
	assert.True(t, exists)

	payload := []byte("a{color:red}")
	_, err = client.PutObject(ctx, "remotes", "scheduling/a.css", bytes.NewReader(payload), int64(len(payload)),
		minio.PutObjectOptions{ContentType: "text/css"})
	require.NoError(t, err)

	obj, err := client.GetObject(ctx, "remotes", "scheduling/a.css", minio.GetObjectOptions{})
	require.NoError(t, err)
	defer obj.Close()
	got, err := io.ReadAll(obj)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestClient_PublishManifest(t *testing.T) {
	fake := newFakeS3()
	srv := httptest.NewServer(fake)
	defer srv.Close()

	dist := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dist, "assets"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dist, "assets", "style.css"), []byte("body{}"), 0o644))

	ctx := context.Background()
	client := newTestClient(t, srv.URL)

	m, err := manifest.Publish(ctx, client, "remotes", "scheduling", dist)
	require.NoError(t, err)
	assert.Equal(t, []string{"assets/style.css"}, m.CSS)

	fake.mu.Lock()
	assert.Equal(t, []byte("body{}"), fake.objects["/remotes/scheduling/assets/style.css"])
	assert.Equal(t, "application/json", fake.types["/remotes/scheduling/assets/assets.json"])
	fake.mu.Unlock()

	back, err := manifest.Fetch(ctx, client, "remotes", "scheduling")
	require.NoError(t, err)
	assert.Equal(t, m, back)
}
