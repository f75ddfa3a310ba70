package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/BenjaminKakai/clientmanagementbackend/internal/config"
)

const (
	gcsWriteTimeout  = 2 * time.Minute
	gcsDeleteTimeout = 30 * time.Second
)

// GCSStore keeps blobs in a Google Cloud Storage bucket
type GCSStore struct {
	client *gcs.Client
	bucket string
}

// NewGCSStore creates a storage client, using the credentials file when set
// and application default credentials otherwise.
func NewGCSStore(ctx context.Context, cfg config.GCSConfig) (*GCSStore, error) {
	opts := []option.ClientOption{option.WithScopes(gcs.ScopeReadWrite)}
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return &GCSStore{client: client, bucket: cfg.Bucket}, nil
}

func (s *GCSStore) object(key string) *gcs.ObjectHandle {
	return s.client.Bucket(s.bucket).Object(key)
}

// Put streams r into a new object
func (s *GCSStore) Put(ctx context.Context, key string, r io.Reader, _ int64, contentType string) error {
	ctx, cancel := context.WithTimeout(ctx, gcsWriteTimeout)
	defer cancel()

	w := s.object(key).NewWriter(ctx)
	w.ContentType = contentType
	if err := copyOrAbort(w, r, cancel); err != nil {
		return fmt.Errorf("failed to write object %q: %w", key, err)
	}
	return nil
}

// copyOrAbort streams r into w and closes it. When the copy fails, abort runs
// before Close so the writer discards the upload rather than committing a
// partial object.
func copyOrAbort(w io.WriteCloser, r io.Reader, abort context.CancelFunc) error {
	if _, err := io.Copy(w, r); err != nil {
		abort()
		_ = w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalize: %w", err)
	}
	return nil
}

// Open returns a reader over the object
func (s *GCSStore) Open(ctx context.Context, key string) (io.ReadCloser, int64, error) {
	rd, err := s.object(key).NewReader(ctx)
	if err != nil {
		if errors.Is(err, gcs.ErrObjectNotExist) {
			return nil, 0, ErrBlobNotFound
		}
		return nil, 0, fmt.Errorf("failed to read object %q: %w", key, err)
	}
	return rd, rd.Attrs.Size, nil
}

// Exists reports whether the object is present
func (s *GCSStore) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.object(key).Attrs(ctx)
	if err != nil {
		if errors.Is(err, gcs.ErrObjectNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat object %q: %w", key, err)
	}
	return true, nil
}

// Delete removes the object
func (s *GCSStore) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, gcsDeleteTimeout)
	defer cancel()

	if err := s.object(key).Delete(ctx); err != nil {
		if errors.Is(err, gcs.ErrObjectNotExist) {
			return ErrBlobNotFound
		}
		return fmt.Errorf("failed to delete object %q: %w", key, err)
	}
	return nil
}

// Ping checks that the bucket is reachable
func (s *GCSStore) Ping(ctx context.Context) error {
	if _, err := s.client.Bucket(s.bucket).Attrs(ctx); err != nil {
		return fmt.Errorf("bucket %s unavailable: %w", s.bucket, err)
	}
	return nil
}

// Close releases the underlying client
func (s *GCSStore) Close() error {
	return s.client.Close()
}
