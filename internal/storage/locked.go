package storage

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/afero"
)

// LockFileName is created next to the entries of a locked file store.
const LockFileName = ".lock"

const lockRetryDelay = 25 * time.Millisecond

// LockedStore serialises access to a Store shared between processes, such as
// the server and the CLI pointing at the same cache directory.
type LockedStore struct {
	inner Store
	mu    sync.Mutex
	lock  *flock.Flock
}

// NewLockedStore wraps inner with an advisory lock on lockPath.
func NewLockedStore(inner Store, lockPath string) *LockedStore {
	return &LockedStore{inner: inner, lock: flock.New(lockPath)}
}

// OpenFileStore opens an OS-backed file store under dir guarded by dir/.lock.
func OpenFileStore(dir string) (*LockedStore, error) {
	inner, err := NewAferoStore(afero.NewOsFs(), dir)
	if err != nil {
		return nil, err
	}
	return NewLockedStore(inner, filepath.Join(dir, LockFileName)), nil
}

func (s *LockedStore) with(ctx context.Context, fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ok, err := s.lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("locking %s: %w", s.lock.Path(), err)
	}
	if !ok {
		return fmt.Errorf("locking %s: %w", s.lock.Path(), ctx.Err())
	}
	defer func() {
		if err := s.lock.Unlock(); err != nil {
			slog.Warn("Failed to release store lock", "path", s.lock.Path(), "error", err)
		}
	}()
	return fn()
}

func (s *LockedStore) Get(ctx context.Context, key string) (value []byte, err error) {
	err = s.with(ctx, func() error {
		value, err = s.inner.Get(ctx, key)
		return err
	})
	return value, err
}

func (s *LockedStore) Set(ctx context.Context, key string, value []byte) error {
	return s.with(ctx, func() error { return s.inner.Set(ctx, key, value) })
}

func (s *LockedStore) Delete(ctx context.Context, key string) error {
	return s.with(ctx, func() error { return s.inner.Delete(ctx, key) })
}

func (s *LockedStore) Keys(ctx context.Context) (keys []string, err error) {
	err = s.with(ctx, func() error {
		keys, err = s.inner.Keys(ctx)
		return err
	})
	return keys, err
}

// Close closes the inner store and the lock file handle.
func (s *LockedStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.inner.Close(); err != nil {
		return err
	}
	return s.lock.Close()
}
