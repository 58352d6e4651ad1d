package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nfrund/folio/internal/cache"
	"github.com/nfrund/folio/internal/config"
	"github.com/nfrund/folio/internal/loader"
	"github.com/nfrund/folio/internal/server"
	"github.com/nfrund/folio/internal/testutils"
	"github.com/samber/do/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGitHub(t *testing.T) *testutils.GitHub {
	return testutils.NewGitHub(t, testutils.Profile(), testutils.Repositories(1))
}

func testConfig(t *testing.T, api string) *config.Config {
	return testutils.ConfigForTests(t, map[string]string{"FOLIO_GITHUB_API": api})
}

func TestNew_ServesPage(t *testing.T) {
	gh := newGitHub(t)
	injector := New(testConfig(t, gh.URL))
	defer func() {
		report := injector.Shutdown()
		assert.True(t, report.Succeed, report.Error())
	}()

	srv, err := do.Invoke[*server.Server](injector)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	srv.E.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?print=1", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Maria Clara Souza")
	assert.Contains(t, rec.Body.String(), "repo-1")

	state := do.MustInvoke[*loader.Loader](injector).State()
	assert.True(t, state.ProfileLoaded)
	assert.True(t, state.RepositoriesLoaded)

	// A second visit is served from the cache.
	rec = httptest.NewRecorder()
	srv.E.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int32(1), gh.GistCalls.Load())
}

func TestReload_SourceChangePurgesCache(t *testing.T) {
	gh := newGitHub(t)
	cfg := testConfig(t, gh.URL)
	injector := New(cfg)
	defer injector.Shutdown()

	ctx := context.Background()
	c := do.MustInvoke[*cache.Cache](injector)
	c.Write(ctx, cache.KeyProfile, map[string]string{"nome": "old"})

	// Same source: cache kept.
	Reload(ctx, injector)
	entries, err := c.Entries(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	require.NoError(t, os.WriteFile(cfg.SiteSource, []byte("GIST_ID=def456\nGITHUB_USERNAME=mcsouza\n"), 0o644))
	Reload(ctx, injector)

	entries, err = c.Entries(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Equal(t, loader.Source{GistID: "def456", Username: "mcsouza"}, do.MustInvoke[*loader.Loader](injector).Source())
	assert.Equal(t, "def456", do.MustInvoke[*config.Current](injector).Get().GistID)
}

func TestNew_MissingSiteConfigStillServes(t *testing.T) {
	gh := newGitHub(t)
	cfg := testConfig(t, gh.URL)
	cfg.SiteSource = filepath.Join(t.TempDir(), "missing.env")
	injector := New(cfg)
	defer injector.Shutdown()

	srv := do.MustInvoke[*server.Server](injector)
	rec := httptest.NewRecorder()
	srv.E.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?print=1", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Não foi possível carregar as configurações.")
}

func TestOriginHost(t *testing.T) {
	assert.Equal(t, "example.com", originHost("https://example.com/"))
	assert.Equal(t, "localhost:8080", originHost("http://localhost:8080"))
}

func TestRenderStatic(t *testing.T) {
	gh := newGitHub(t)
	injector := New(testConfig(t, gh.URL))
	defer injector.Shutdown()

	var buf strings.Builder
	require.NoError(t, RenderStatic(context.Background(), injector, &buf, StaticOptions{Width: 640, Language: "en"}))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<!doctype html>"))
	assert.Contains(t, out, "Résumé - Maria Clara Souza")
	assert.Contains(t, out, "repo-1")
	assert.NotContains(t, out, "/static/app.js")
}
