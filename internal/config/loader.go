package config

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/spf13/afero"
)

// SiteLoader fetches the site configuration resource from a file or an http(s) URL.
type SiteLoader struct {
	fs     afero.Fs
	client *http.Client
}

// NewSiteLoader creates a SiteLoader. A nil client means http.DefaultClient.
func NewSiteLoader(fs afero.Fs, client *http.Client) *SiteLoader {
	if client == nil {
		client = http.DefaultClient
	}
	return &SiteLoader{fs: fs, client: client}
}

// Load reads and parses source. Sources ending in ".toml" are decoded as TOML,
// anything else as KEY=VALUE lines. Any failure is logged and returned
// alongside an empty, non-nil mapping so callers can keep going with defaults
// and surface the error to the visitor.
func (l *SiteLoader) Load(ctx context.Context, source string) (map[string]string, error) {
	text, err := l.read(ctx, source)
	if err != nil {
		slog.Error("Failed to load site configuration", "source", source, "error", err)
		return map[string]string{}, err
	}
	values, err := parseFor(source, text)
	if err != nil {
		slog.Error("Failed to parse site configuration", "source", source, "error", err)
		return map[string]string{}, err
	}
	slog.Debug("Loaded site configuration", "source", source, "keys", len(values))
	return values, nil
}

// LoadSite is Load followed by Merge with Defaults and NewSite.
func (l *SiteLoader) LoadSite(ctx context.Context, source string) (Site, error) {
	loaded, err := l.Load(ctx, source)
	return NewSite(Merge(Defaults(), loaded)), err
}

func (l *SiteLoader) read(ctx context.Context, source string) (string, error) {
	if IsRemote(source) {
		return l.fetch(ctx, source)
	}
	data, err := afero.ReadFile(l.fs, source)
	if err != nil {
		return "", fmt.Errorf("reading site configuration: %w", err)
	}
	return string(data), nil
}

func (l *SiteLoader) fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("building site configuration request: %w", err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching site configuration: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("fetching site configuration: unexpected status %s", resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading site configuration body: %w", err)
	}
	return string(body), nil
}

// parseFor picks the TOML parser for ".toml" sources and Parse for everything else.
func parseFor(source, text string) (map[string]string, error) {
	if strings.HasSuffix(strings.ToLower(source), ".toml") {
		return ParseTOML(text)
	}
	return Parse(text), nil
}

// IsRemote reports whether source is fetched over HTTP rather than read from disk.
func IsRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}
