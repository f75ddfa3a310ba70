package storage

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BenjaminKakai/clientmanagementbackend/internal/config"
)

func TestNewBlobKey(t *testing.T) {
	clientID := uuid.New()
	key := NewBlobKey(clientID, "../../etc/passwd")

	assert.True(t, strings.HasPrefix(key, clientID.String()+"/"))
	assert.True(t, strings.HasSuffix(key, "-passwd"))
	assert.NotContains(t, key, "..")
}

func TestNewBlobKeyUniqueUnderConcurrency(t *testing.T) {
	clientID := uuid.New()
	const n = 200

	var (
		mu   sync.Mutex
		wg   sync.WaitGroup
		seen = make(map[string]struct{}, n)
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			key := NewBlobKey(clientID, "contract.pdf")
			mu.Lock()
			seen[key] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, seen, n)
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"contract.pdf", "contract.pdf"},
		{`C:\Users\ann\id card.png`, "id_card.png"},
		{"../secret", "secret"},
		{"", "file"},
		{"...", "file"},
		{"ünïcode.txt", "n_code.txt"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeName(tt.in), tt.in)
	}

	long := strings.Repeat("a", 300) + ".pdf"
	got := SanitizeName(long)
	assert.Len(t, got, maxNameLen)
	assert.True(t, strings.HasSuffix(got, ".pdf"))
}

func TestContentTypeFor(t *testing.T) {
	assert.Equal(t, "application/pdf", ContentTypeFor("Contract.PDF"))
	assert.Equal(t, "image/png", ContentTypeFor("scan.png"))
	assert.Equal(t, DefaultContentType, ContentTypeFor("README"))
	assert.Equal(t, DefaultContentType, ContentTypeFor("blob.unknownext"))
}

func TestNewSelectsBackend(t *testing.T) {
	store, err := New(context.Background(), config.StorageConfig{Backend: config.StorageBackendFS, Dir: t.TempDir()})
	require.NoError(t, err)
	require.NoError(t, store.Ping(context.Background()))

	_, err = New(context.Background(), config.StorageConfig{Backend: "ftp"})
	assert.Error(t, err)
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	key := NewBlobKey(uuid.New(), "notes.txt")
	content := []byte("hello documents")

	t.Run("put and open", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, key, bytes.NewReader(content), int64(len(content)), "text/plain"))

		ok, err := store.Exists(ctx, key)
		require.NoError(t, err)
		assert.True(t, ok)

		rc, size, err := store.Open(ctx, key)
		require.NoError(t, err)
		defer rc.Close()

		got, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, int64(len(content)), size)
		assert.Equal(t, content, got)
	})

	t.Run("short write is rejected", func(t *testing.T) {
		short := NewBlobKey(uuid.New(), "short.txt")
		err := store.Put(ctx, short, bytes.NewReader(content), int64(len(content)+1), "")
		require.Error(t, err)

		ok, err := store.Exists(ctx, short)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, key))

		ok, err := store.Exists(ctx, key)
		require.NoError(t, err)
		assert.False(t, ok)

		_, _, err = store.Open(ctx, key)
		assert.ErrorIs(t, err, ErrBlobNotFound)
		assert.ErrorIs(t, store.Delete(ctx, key), ErrBlobNotFound)
	})

	t.Run("keys escaping the root are rejected", func(t *testing.T) {
		assert.Error(t, store.Put(ctx, "../outside", strings.NewReader("x"), 1, ""))
		assert.Error(t, store.Put(ctx, "/abs", strings.NewReader("x"), 1, ""))
		_, err := store.Exists(ctx, "a/../../b")
		assert.Error(t, err)
	})

	t.Run("canceled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		assert.ErrorIs(t, store.Put(cctx, NewBlobKey(uuid.New(), "x"), strings.NewReader("x"), 1, ""), context.Canceled)
	})
}

func TestFileStoreConcurrentPutAndDeleteSameClient(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	clientID := uuid.New()
	const workers, rounds = 8, 200

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		failures []error
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < rounds; i++ {
				key := NewBlobKey(clientID, "lease.pdf")
				if err := store.Put(ctx, key, strings.NewReader("x"), 1, ""); err != nil {
					mu.Lock()
					failures = append(failures, err)
					mu.Unlock()
					continue
				}
				if err := store.Delete(ctx, key); err != nil {
					mu.Lock()
					failures = append(failures, err)
					mu.Unlock()
				}
			}
		}()
	}
	wg.Wait()

	assert.Empty(t, failures)
}
