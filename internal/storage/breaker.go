package storage

import (
	"context"
	"errors"
	"io"

	"go.uber.org/zap"

	"github.com/BenjaminKakai/clientmanagementbackend/internal/pkg/circuitbreaker"
	"github.com/BenjaminKakai/clientmanagementbackend/internal/pkg/logger"
	"github.com/BenjaminKakai/clientmanagementbackend/internal/pkg/metrics"
)

// guardedStore fails remote blob calls fast while the backend is unreachable.
// Missing blobs and caller cancellations do not count as backend failures.
// Ping always reaches the backend so readiness reflects its real state.
type guardedStore struct {
	next    BlobStore
	breaker *circuitbreaker.CircuitBreaker
}

func newGuardedStore(next BlobStore, backend string) *guardedStore {
	cfg := circuitbreaker.DefaultConfig("blobs:" + backend)
	cfg.IsFailure = func(err error) bool {
		return !errors.Is(err, ErrBlobNotFound) && !errors.Is(err, context.Canceled)
	}
	cfg.OnStateChange = func(name string, from, to circuitbreaker.State) {
		metrics.SetCircuitState(name, int(to))
		logger.Warn("document store circuit changed state",
			zap.String("name", name),
			zap.String("from", from.String()),
			zap.String("to", to.String()),
		)
	}
	return &guardedStore{next: next, breaker: circuitbreaker.New(cfg)}
}

func (g *guardedStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	return g.breaker.Execute(ctx, func() error {
		return g.next.Put(ctx, key, r, size, contentType)
	})
}

func (g *guardedStore) Open(ctx context.Context, key string) (io.ReadCloser, int64, error) {
	var size int64
	rc, err := circuitbreaker.ExecuteWithResult(g.breaker, ctx, func() (io.ReadCloser, error) {
		rc, n, err := g.next.Open(ctx, key)
		size = n
		return rc, err
	})
	return rc, size, err
}

func (g *guardedStore) Exists(ctx context.Context, key string) (bool, error) {
	return circuitbreaker.ExecuteWithResult(g.breaker, ctx, func() (bool, error) {
		return g.next.Exists(ctx, key)
	})
}

func (g *guardedStore) Delete(ctx context.Context, key string) error {
	return g.breaker.Execute(ctx, func() error {
		return g.next.Delete(ctx, key)
	})
}

func (g *guardedStore) Ping(ctx context.Context) error {
	return g.next.Ping(ctx)
}

// Close releases the backend's client when it holds one
func (g *guardedStore) Close() error {
	if c, ok := g.next.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
