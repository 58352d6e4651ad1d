// Package testutils holds helpers shared by package tests: process
// configuration pointed at temporary directories, an in-memory cache and a fake
// GitHub API.
package testutils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nfrund/folio/internal/cache"
	"github.com/nfrund/folio/internal/config"
	"github.com/nfrund/folio/internal/storage"
	"github.com/spf13/afero"
)

// DefaultSite is the site configuration ConfigForTests writes.
const DefaultSite = "GIST_ID=abc123\nGITHUB_USERNAME=mcsouza\n"

// ConfigForTests returns a config whose site file, cache and API live in
// temporary locations. Values in env override the FOLIO_* defaults; they are
// applied with t.Setenv so they vanish with the test.
func ConfigForTests(t *testing.T, env map[string]string) *config.Config {
	t.Helper()

	dir := t.TempDir()
	site := filepath.Join(dir, "site.env")
	if err := os.WriteFile(site, []byte(DefaultSite), 0o644); err != nil {
		t.Fatalf("failed to write site configuration: %v", err)
	}

	defaults := map[string]string{
		"FOLIO_ADDR":           "127.0.0.1:0",
		"FOLIO_SITE_CONFIG":    site,
		"FOLIO_CACHE_BACKEND":  config.CacheBackendFile,
		"FOLIO_CACHE_DIR":      filepath.Join(dir, "cache"),
		"FOLIO_SESSION_SECRET": "test-secret",
		"FOLIO_BASE_URL":       "http://127.0.0.1:8080",
	}
	for key, value := range defaults {
		t.Setenv(key, value)
	}
	for key, value := range env {
		t.Setenv(key, value)
	}

	return config.New()
}

// NewCache returns a cache over an in-memory file store. A nil now means
// time.Now.
func NewCache(t *testing.T, ttl time.Duration, now cache.Clock) *cache.Cache {
	t.Helper()
	store, err := storage.NewAferoStore(afero.NewMemMapFs(), "cache")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	if now == nil {
		now = time.Now
	}
	return cache.New(store, ttl, now)
}
