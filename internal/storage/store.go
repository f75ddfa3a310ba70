package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BenjaminKakai/clientmanagementbackend/internal/config"
	"github.com/BenjaminKakai/clientmanagementbackend/internal/pkg/metrics"
)

// ErrBlobNotFound is returned when no blob exists under a key
var ErrBlobNotFound = errors.New("blob not found")

// DefaultContentType is served when a filename extension is not recognised
const DefaultContentType = "application/octet-stream"

const maxNameLen = 100

// BlobStore persists document contents under opaque keys
type BlobStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Open(ctx context.Context, key string) (io.ReadCloser, int64, error)
	Exists(ctx context.Context, key string) (bool, error)
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}

// New builds the blob store selected by cfg.Backend
func New(ctx context.Context, cfg config.StorageConfig) (BlobStore, error) {
	var (
		store BlobStore
		err   error
	)

	switch cfg.Backend {
	case config.StorageBackendFS, "":
		store, err = NewFileStore(cfg.Dir)
	case config.StorageBackendMinIO:
		var s *MinIOStore
		if s, err = NewMinIOStore(ctx, cfg.MinIO); err == nil {
			store = newGuardedStore(s, cfg.Backend)
		}
	case config.StorageBackendGCS:
		var s *GCSStore
		if s, err = NewGCSStore(ctx, cfg.GCS); err == nil {
			store = newGuardedStore(s, cfg.Backend)
		}
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, err
	}

	backend := cfg.Backend
	if backend == "" {
		backend = config.StorageBackendFS
	}
	return &meteredStore{next: store, backend: backend}, nil
}

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// NewBlobKey returns a collision-resistant key for a client's upload. The
// timestamp keeps keys roughly ordered; the random UUID keeps concurrent
// uploads of the same filename apart.
func NewBlobKey(clientID uuid.UUID, originalName string) string {
	return fmt.Sprintf("%s/%d-%s-%s", clientID, time.Now().UnixNano(), uuid.NewString(), SanitizeName(originalName))
}

// SanitizeName reduces an uploaded filename to a safe single path segment
func SanitizeName(name string) string {
	name = strings.ReplaceAll(name, `\`, "/")
	name = path.Base(name)
	name = unsafeNameChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")
	if len(name) > maxNameLen {
		name = name[len(name)-maxNameLen:]
	}
	if name == "" {
		return "file"
	}
	return name
}

// ContentTypeFor resolves a content type from the filename extension
func ContentTypeFor(filename string) string {
	ext := strings.ToLower(path.Ext(strings.ReplaceAll(filename, `\`, "/")))
	if ext == "" {
		return DefaultContentType
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return DefaultContentType
}

// meteredStore records an operation counter around every call
type meteredStore struct {
	next    BlobStore
	backend string
}

func (m *meteredStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	err := m.next.Put(ctx, key, r, size, contentType)
	metrics.RecordBlobOp(m.backend, "put", err)
	return err
}

func (m *meteredStore) Open(ctx context.Context, key string) (io.ReadCloser, int64, error) {
	rc, size, err := m.next.Open(ctx, key)
	metrics.RecordBlobOp(m.backend, "open", err)
	return rc, size, err
}

func (m *meteredStore) Exists(ctx context.Context, key string) (bool, error) {
	ok, err := m.next.Exists(ctx, key)
	metrics.RecordBlobOp(m.backend, "exists", err)
	return ok, err
}

func (m *meteredStore) Delete(ctx context.Context, key string) error {
	err := m.next.Delete(ctx, key)
	metrics.RecordBlobOp(m.backend, "delete", err)
	return err
}

func (m *meteredStore) Ping(ctx context.Context) error {
	return m.next.Ping(ctx)
}

// Close releases the backend's client when it holds one
func (m *meteredStore) Close() error {
	if c, ok := m.next.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
