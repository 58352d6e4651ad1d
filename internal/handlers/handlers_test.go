package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/nfrund/folio/internal/cache"
	"github.com/nfrund/folio/internal/config"
	"github.com/nfrund/folio/internal/domain"
	"github.com/nfrund/folio/internal/handlers"
	"github.com/nfrund/folio/internal/loader"
	"github.com/nfrund/folio/internal/rendering"
	"github.com/nfrund/folio/internal/testutils"
)

const testSessionSecret = "a-very-secret-key-for-testing-!"

// fakeFetcher serves canned GitHub data. reposGate, when set, holds
// FetchRepositories until closed.
type fakeFetcher struct {
	profile    *domain.Profile
	profileErr error
	repos      []domain.Repository
	reposErr   error
	reposGate  chan struct{}

	calls atomic.Int32
}

func (f *fakeFetcher) FetchProfile(ctx context.Context, gistID string) (*domain.Profile, error) {
	f.calls.Add(1)
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	p := *f.profile
	return &p, nil
}

func (f *fakeFetcher) FetchRepositories(ctx context.Context, username string) ([]domain.Repository, error) {
	f.calls.Add(1)
	if f.reposGate != nil {
		<-f.reposGate
	}
	if f.reposErr != nil {
		return nil, f.reposErr
	}
	return f.repos, nil
}

func sampleProfile() *domain.Profile { return testutils.Profile() }

func sampleRepos(n int) []domain.Repository { return testutils.Repositories(n) }

type testEnv struct {
	e      *echo.Echo
	cache  *cache.Cache
	loader *loader.Loader
	site   *config.Current
}

func newTestEnv(t *testing.T, f *fakeFetcher) *testEnv {
	t.Helper()

	c := testutils.NewCache(t, time.Hour, nil)

	e := echo.New()
	e.Validator = handlers.NewValidator()
	e.Renderer = rendering.NewUniversalRenderer()
	e.Use(session.Middleware(sessions.NewCookieStore([]byte(testSessionSecret))))

	return &testEnv{
		e:      e,
		cache:  c,
		loader: loader.New(c, f, nil, loader.Source{GistID: "abc123", Username: "mcsouza"}),
		site:   config.NewCurrent(config.NewSite(config.Defaults()), nil),
	}
}

func (env *testEnv) pageHandler() *handlers.PageHandler {
	return handlers.NewPageHandler(env.loader, env.site, rendering.NewUniversalRenderer(), "/ws")
}

func (env *testEnv) do(method, target string, body string, headers map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

var errBoom = errors.New("boom")
