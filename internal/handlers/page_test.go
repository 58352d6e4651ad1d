package handlers_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/nfrund/folio/internal/cache"
	"github.com/nfrund/folio/internal/config"
	"github.com/nfrund/folio/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestHome_RendersCachedData(t *testing.T) {
	f := &fakeFetcher{profile: sampleProfile(), repos: sampleRepos(5)}
	env := newTestEnv(t, f)
	ctx := context.Background()
	env.cache.Write(ctx, cache.KeyProfile, sampleProfile())
	env.cache.Write(ctx, cache.KeyRepositories, sampleRepos(5))
	env.e.GET("/", env.pageHandler().Home)

	rec := env.do(http.MethodGet, "/", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, f.calls.Load(), "fresh cache must not hit the network")
	body := rec.Body.String()
	assert.Contains(t, body, "<title id=\"page-title\">Currículo - Maria Clara Souza</title>")
	assert.Contains(t, body, "repo-1")
	assert.Contains(t, body, "repo-5")
	assert.NotContains(t, body, `hx-get="/fragments/projects"`)
	assert.Contains(t, body, `ws-connect="/ws"`)
	assert.Equal(t, "Sec-CH-Prefers-Color-Scheme", rec.Header().Get("Accept-CH"))
	assert.Contains(t, rec.Header().Values("Vary"), "Accept-Language")
}

func TestHome_PendingProjectsRenderPlaceholder(t *testing.T) {
	f := &fakeFetcher{profile: sampleProfile(), repos: sampleRepos(5), reposGate: make(chan struct{})}
	defer close(f.reposGate)
	env := newTestEnv(t, f)
	env.e.GET("/", env.pageHandler().Home)

	rec := env.do(http.MethodGet, "/", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Maria Clara Souza")
	assert.Contains(t, body, `hx-get="/fragments/projects"`)
	assert.NotContains(t, body, "repo-1")
}

func TestHome_PrintWaitsForEverything(t *testing.T) {
	f := &fakeFetcher{profile: sampleProfile(), repos: sampleRepos(5)}
	env := newTestEnv(t, f)
	env.e.GET("/", env.pageHandler().Home)

	rec := env.do(http.MethodGet, "/?print=1&lang=en", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Résumé - Maria Clara Souza")
	assert.Contains(t, body, "repo-5")
	assert.NotContains(t, body, "ws-connect")
	assert.NotContains(t, body, "save-pdf-button")

	var cached []domain.Repository
	assert.True(t, env.cache.Read(context.Background(), cache.KeyRepositories, &cached))
	assert.Len(t, cached, 5)
}

func TestHome_ProfileFailureKeepsPageUsable(t *testing.T) {
	f := &fakeFetcher{profileErr: errBoom, repos: sampleRepos(2)}
	env := newTestEnv(t, f)
	env.e.GET("/", env.pageHandler().Home)

	rec := env.do(http.MethodGet, "/?print=1", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Não foi possível carregar as informações do currículo.")
	assert.Contains(t, body, "repo-2")
}

func TestHome_ConfigErrorIsShown(t *testing.T) {
	f := &fakeFetcher{profile: sampleProfile(), repos: sampleRepos(1)}
	env := newTestEnv(t, f)
	env.site.Set(config.NewSite(config.Defaults()), errBoom)
	env.e.GET("/", env.pageHandler().Home)

	rec := env.do(http.MethodGet, "/?print=1", "", map[string]string{"Accept-Language": "en-US,en;q=0.9"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Could not load the site configuration.")
}

func TestHome_InvalidQuery(t *testing.T) {
	env := newTestEnv(t, &fakeFetcher{profile: sampleProfile()})
	env.e.GET("/", env.pageHandler().Home)

	rec := env.do(http.MethodGet, "/?print=maybe", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProjectsFragment(t *testing.T) {
	f := &fakeFetcher{profile: sampleProfile(), repos: sampleRepos(10)}
	env := newTestEnv(t, f)
	env.e.GET("/fragments/projects", env.pageHandler().ProjectsFragment)

	t.Run("fills the ticker for the reported width", func(t *testing.T) {
		rec := env.do(http.MethodGet, "/fragments/projects?w=640", "", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		// 3 featured cards plus 7 pooled repositories shown twice.
		assert.Equal(t, 17, strings.Count(body, `class="project-card"`))
		assert.Contains(t, body, `id="projetos"`)
		assert.NotContains(t, body, "hx-get")
	})

	t.Run("rejects out of range widths", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, env.do(http.MethodGet, "/fragments/projects?w=20000", "", nil).Code)
		assert.Equal(t, http.StatusBadRequest, env.do(http.MethodGet, "/fragments/projects?w=wide", "", nil).Code)
	})
}

func TestProjectsFragment_ShowsFailure(t *testing.T) {
	f := &fakeFetcher{profile: sampleProfile(), reposErr: errBoom}
	env := newTestEnv(t, f)
	env.e.GET("/fragments/projects", env.pageHandler().ProjectsFragment)

	rec := env.do(http.MethodGet, "/fragments/projects", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Não foi possível carregar os projetos do GitHub.")
}

func TestProjectsFragment_ReusesFailureOfPageFetch(t *testing.T) {
	f := &fakeFetcher{profile: sampleProfile(), reposErr: errBoom, reposGate: make(chan struct{})}
	env := newTestEnv(t, f)
	h := env.pageHandler()
	env.e.GET("/", h.Home)
	env.e.GET("/fragments/projects", h.ProjectsFragment)

	page := env.do(http.MethodGet, "/", "", nil)
	assert.Contains(t, page.Body.String(), `hx-get="/fragments/projects"`)
	close(f.reposGate)

	rec := env.do(http.MethodGet, "/fragments/projects", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Não foi possível carregar os projetos do GitHub.")
	assert.EqualValues(t, 2, f.calls.Load(), "one profile and one repositories request in total")
}

func TestProfileFragment(t *testing.T) {
	f := &fakeFetcher{profile: sampleProfile(), repos: sampleRepos(1)}
	env := newTestEnv(t, f)
	env.e.GET("/fragments/profile", env.pageHandler().ProfileFragment)

	rec := env.do(http.MethodGet, "/fragments/profile", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `id="nome-header" hx-swap-oob="innerHTML"`)
	assert.Contains(t, body, "Maria Clara Souza")
	assert.Contains(t, body, "Currículo - Maria Clara Souza")
	assert.NotContains(t, body, "beforeend:#objetivos")
}

func TestProfileFragment_AppendsError(t *testing.T) {
	env := newTestEnv(t, &fakeFetcher{profileErr: errBoom, repos: sampleRepos(1)})
	env.e.GET("/fragments/profile", env.pageHandler().ProfileFragment)

	rec := env.do(http.MethodGet, "/fragments/profile", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `hx-swap-oob="beforeend:#objetivos"`)
}
