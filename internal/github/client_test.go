package github

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nfrund/folio/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const profileJSON = `{"nome":"Maria Clara Souza","contato":{"email":"maria@example.com","github":"https://github.com/mcsouza","telefone":"11 9999-0000"},"objetivos":"Backend","formacao":[],"experiencias":[]}`

func gistBody(t *testing.T, files map[string]string) []byte {
	t.Helper()
	wrapped := map[string]map[string]string{}
	for name, content := range files {
		wrapped[name] = map[string]string{"content": content}
	}
	body, err := json.Marshal(map[string]any{"files": wrapped})
	require.NoError(t, err)
	return body
}

func TestClient_FetchProfile(t *testing.T) {
	var gotAccept, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAccept = r.Header.Get("Accept")
		gotPath = r.URL.Path
		_, _ = w.Write(gistBody(t, map[string]string{ProfileFile: profileJSON}))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.Client())
	profile, err := client.FetchProfile(context.Background(), "abc123")

	require.NoError(t, err)
	assert.Equal(t, AcceptHeader, gotAccept)
	assert.Equal(t, "/gists/abc123", gotPath)
	assert.Equal(t, "Maria Clara Souza", profile.Name)
	assert.Equal(t, "mcsouza", profile.Contact.GitHubHandle())
}

func TestClient_FetchProfile_MissingFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(gistBody(t, map[string]string{"other.json": "{}"}))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, srv.Client()).FetchProfile(context.Background(), "abc")
	assert.ErrorIs(t, err, domain.ErrResourceNotFound)
}

func TestClient_FetchProfile_BadContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(gistBody(t, map[string]string{ProfileFile: "not json"}))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, srv.Client()).FetchProfile(context.Background(), "abc")
	require.Error(t, err)
	var syntaxErr *json.SyntaxError
	assert.ErrorAs(t, err, &syntaxErr)
}

func TestClient_FetchProfile_FreeFormContacts(t *testing.T) {
	content := `{"nome":"Ana Lima","contato":{"email":"ana at example.com","github":"github.com/analima","telefone":"ramal 42"}}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(gistBody(t, map[string]string{ProfileFile: content}))
	}))
	defer srv.Close()

	profile, err := NewClient(srv.URL, srv.Client()).FetchProfile(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "github.com/analima", profile.Contact.GitHub)
	assert.Equal(t, "analima", profile.Contact.GitHubHandle())
	assert.Equal(t, "ana at example.com", profile.Contact.Email)
}

func TestClient_FetchProfile_InvalidProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(gistBody(t, map[string]string{ProfileFile: `{"nome":""}`}))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, srv.Client()).FetchProfile(context.Background(), "abc")
	assert.ErrorIs(t, err, domain.ErrInvalidProfile)
}

func TestClient_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.Client())

	_, err := client.FetchProfile(context.Background(), "abc")
	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusForbidden))
	assert.Contains(t, err.Error(), "403")

	_, err = client.FetchRepositories(context.Background(), "octocat")
	assert.True(t, IsStatus(err, http.StatusForbidden))
}

func TestClient_FetchRepositories(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/octocat/repos", r.URL.Path)
		assert.Equal(t, AcceptHeader, r.Header.Get("Accept"))
		gotQuery = map[string]string{
			"sort":      r.URL.Query().Get("sort"),
			"direction": r.URL.Query().Get("direction"),
			"per_page":  r.URL.Query().Get("per_page"),
		}
		_, _ = w.Write([]byte(`[
			{"name":"newest","description":null,"language":"Go","homepage":"https://x.dev","created_at":"2024-04-01T10:00:00Z","html_url":"https://github.com/octocat/newest"},
			{"name":"older","description":"desc","language":null,"homepage":"","created_at":"2023-01-01T10:00:00Z","html_url":"https://github.com/octocat/older"}
		]`))
	}))
	defer srv.Close()

	repos, err := NewClient(srv.URL+"/", srv.Client()).FetchRepositories(context.Background(), "octocat")
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"sort": "created", "direction": "desc", "per_page": "100"}, gotQuery)
	require.Len(t, repos, 2)
	assert.Equal(t, "newest", repos[0].Name, "server order is kept")
	assert.Nil(t, repos[0].Description)
	assert.Equal(t, "https://x.dev", repos[0].HomepageURL())
	assert.Equal(t, "Desconhecido", repos[1].LanguageOr("Desconhecido"))
	assert.Equal(t, 2023, repos[1].CreatedAt.Year())
}
