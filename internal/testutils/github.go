package testutils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/nfrund/folio/internal/domain"
)

// GitHub is a fake GitHub API serving one gist and one repository list.
type GitHub struct {
	*httptest.Server

	mu      sync.Mutex
	profile *domain.Profile
	repos   []domain.Repository
	status  int

	GistCalls atomic.Int32
	RepoCalls atomic.Int32
}

// NewGitHub starts a fake API closed at the end of the test.
func NewGitHub(t *testing.T, profile *domain.Profile, repos []domain.Repository) *GitHub {
	t.Helper()
	g := &GitHub{profile: profile, repos: repos}
	g.Server = httptest.NewServer(http.HandlerFunc(g.serve))
	t.Cleanup(g.Close)
	return g
}

// Fail makes every following request answer with status. Zero restores
// normal answers.
func (g *GitHub) Fail(status int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.status = status
}

func (g *GitHub) serve(w http.ResponseWriter, r *http.Request) {
	g.mu.Lock()
	profile, repos, status := g.profile, g.repos, g.status
	g.mu.Unlock()

	switch {
	case strings.HasPrefix(r.URL.Path, "/gists/"):
		g.GistCalls.Add(1)
	case strings.HasPrefix(r.URL.Path, "/users/"):
		g.RepoCalls.Add(1)
	default:
		http.NotFound(w, r)
		return
	}
	if status != 0 {
		http.Error(w, http.StatusText(status), status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if strings.HasPrefix(r.URL.Path, "/gists/") {
		content, _ := json.Marshal(profile)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"files": map[string]any{"curriculo.json": map[string]string{"content": string(content)}},
		})
		return
	}
	if repos == nil {
		repos = []domain.Repository{}
	}
	_ = json.NewEncoder(w).Encode(repos)
}
