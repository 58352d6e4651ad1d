// Package github fetches the profile gist and the repository listing from the
// public GitHub REST API.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/nfrund/folio/internal/domain"
)

const (
	// DefaultBaseURL is the public GitHub REST endpoint.
	DefaultBaseURL = "https://api.github.com"

	// AcceptHeader pins the v3 media type on every request.
	AcceptHeader = "application/vnd.github.v3+json"

	// ProfileFile is the gist file holding the résumé document.
	ProfileFile = "curriculo.json"
)

// StatusError reports a non-success HTTP status from the API.
type StatusError struct {
	Code   int
	Status string
	URL    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("github: HTTP %d %s", e.Code, e.Status)
}

// Client talks to the GitHub API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a Client for baseURL. An empty baseURL means DefaultBaseURL
// and a nil httpClient means http.DefaultClient.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

type gist struct {
	Files map[string]*gistFile `json:"files"`
}

type gistFile struct {
	Content string `json:"content"`
}

// FetchProfile loads the résumé stored as curriculo.json in the given gist.
func (c *Client) FetchProfile(ctx context.Context, gistID string) (*domain.Profile, error) {
	var g gist
	if err := c.get(ctx, "/gists/"+url.PathEscape(gistID), nil, &g); err != nil {
		return nil, err
	}

	file, ok := g.Files[ProfileFile]
	if !ok || file == nil {
		return nil, fmt.Errorf("gist %s: %s: %w", gistID, ProfileFile, domain.ErrResourceNotFound)
	}

	var profile domain.Profile
	if err := json.Unmarshal([]byte(file.Content), &profile); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", ProfileFile, err)
	}
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	return &profile, nil
}

// FetchRepositories lists up to 100 public repositories of username, newest first.
func (c *Client) FetchRepositories(ctx context.Context, username string) ([]domain.Repository, error) {
	query := url.Values{
		"sort":      {"created"},
		"direction": {"desc"},
		"per_page":  {"100"},
	}
	var repos []domain.Repository
	if err := c.get(ctx, "/users/"+url.PathEscape(username)+"/repos", query, &repos); err != nil {
		return nil, err
	}
	if repos == nil {
		repos = []domain.Repository{}
	}
	return repos, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, dst any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("github: building request: %w", err)
	}
	req.Header.Set("Accept", AcceptHeader)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("github: GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{
			Code:   resp.StatusCode,
			Status: http.StatusText(resp.StatusCode),
			URL:    endpoint,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("github: decoding %s: %w", path, err)
	}
	return nil
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == code
}
