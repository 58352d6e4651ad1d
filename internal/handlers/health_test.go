package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/nfrund/folio/internal/config"
	"github.com/nfrund/folio/internal/handlers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedCount int

func (n fixedCount) Count() int { return int(n) }

func TestHealth(t *testing.T) {
	env := newTestEnv(t, &fakeFetcher{profile: sampleProfile(), repos: sampleRepos(1)})
	env.e.GET("/", env.pageHandler().Home)
	env.e.GET("/health", handlers.NewHealthHandler(env.loader, env.site, fixedCount(2)).Get)

	env.do(http.MethodGet, "/?print=1", "", nil)
	rec := env.do(http.MethodGet, "/health", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp handlers.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.True(t, resp.Loader.ProfileLoaded)
	assert.True(t, resp.Loader.RepositoriesLoaded)
	assert.Equal(t, 2, resp.LivePages)
	assert.Empty(t, resp.SiteError)
}

func TestHealth_ReportsSiteError(t *testing.T) {
	env := newTestEnv(t, &fakeFetcher{profile: sampleProfile()})
	env.site.Set(config.NewSite(config.Defaults()), errBoom)
	env.e.GET("/health", handlers.NewHealthHandler(env.loader, env.site, fixedCount(0)).Get)

	rec := env.do(http.MethodGet, "/health", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"site_error":"boom"`)
}
