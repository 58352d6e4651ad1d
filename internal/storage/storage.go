package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

const fileSuffix = ".json"

// AferoStore keeps one file per key under dir on an afero filesystem.
// Production uses the OS filesystem; tests use afero.NewMemMapFs.
type AferoStore struct {
	fs  afero.Fs
	dir string
}

// NewAferoStore creates a new AferoStore rooted at dir.
func NewAferoStore(fsys afero.Fs, dir string) (*AferoStore, error) {
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}
	return &AferoStore{fs: fsys, dir: dir}, nil
}

func (s *AferoStore) path(key string) string {
	return filepath.Join(s.dir, url.PathEscape(key)+fileSuffix)
}

// Get reads the value stored under key.
func (s *AferoStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := afero.ReadFile(s.fs, s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", key, err)
	}
	return data, nil
}

// Set writes value under key through a temporary file and a rename, so readers
// never observe a half-written entry.
func (s *AferoStore) Set(ctx context.Context, key string, value []byte) error {
	target := s.path(key)
	tmp := target + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, value, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	if err := s.fs.Rename(tmp, target); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("replacing %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *AferoStore) Delete(ctx context.Context, key string) error {
	err := s.fs.Remove(s.path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("deleting %s: %w", key, err)
	}
	return nil
}

// Keys lists stored keys in lexical order.
func (s *AferoStore) Keys(ctx context.Context) ([]string, error) {
	infos, err := afero.ReadDir(s.fs, s.dir)
	if err != nil {
		return nil, fmt.Errorf("listing store: %w", err)
	}
	keys := make([]string, 0, len(infos))
	for _, info := range infos {
		name := info.Name()
		if info.IsDir() || !strings.HasSuffix(name, fileSuffix) {
			continue
		}
		key, err := url.PathUnescape(strings.TrimSuffix(name, fileSuffix))
		if err != nil {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

// Close is a no-op; files are closed after every operation.
func (s *AferoStore) Close() error {
	return nil
}
