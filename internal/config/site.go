package config

import (
	"log/slog"
	"maps"
	"strconv"
	"strings"
	"time"
)

// Keys recognised in the site configuration resource.
const (
	KeyGistID               = "GIST_ID"
	KeyGitHubUsername       = "GITHUB_USERNAME"
	KeyProfileImageURL      = "PROFILE_IMAGE_URL"
	KeyFeaturedProjectCount = "FEATURED_PROJECT_COUNT"
	KeyAnimationDelay       = "ANIMATION_DELAY"
	KeyCacheTTL             = "CACHE_TTL"
	KeyPDFFilename          = "PDF_FILENAME"
	KeyCardWidth            = "CARD_WIDTH"
)

// DefaultProfileImageURL is shown until the site configuration names another image.
const DefaultProfileImageURL = "https://avatars.githubusercontent.com/u/165790519?v=4"

// Defaults are the built-in values merged under every loaded configuration.
func Defaults() map[string]string {
	return map[string]string{
		KeyProfileImageURL:      DefaultProfileImageURL,
		KeyFeaturedProjectCount: "3",
		KeyAnimationDelay:       "100ms",
		KeyCacheTTL:             "1h",
		KeyPDFFilename:          "curriculo.pdf",
		KeyCardWidth:            "320",
	}
}

// Parse reads KEY=VALUE lines. Blank lines and lines starting with '#' are
// skipped, the split happens on the first '=', and an entry is kept only when
// both the trimmed key and the trimmed value are non-empty. There is no
// quoting, escaping or multi-line support.
func Parse(text string) map[string]string {
	values := make(map[string]string)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key != "" && value != "" {
			values[key] = value
		}
	}
	return values
}

// Merge lays loaded over defaults: a key present in loaded wins.
func Merge(defaults, loaded map[string]string) map[string]string {
	merged := make(map[string]string, len(defaults)+len(loaded))
	maps.Copy(merged, defaults)
	maps.Copy(merged, loaded)
	return merged
}

// Site is the typed, read-only view over the effective site configuration.
type Site struct {
	GistID               string
	GitHubUsername       string
	ProfileImageURL      string
	FeaturedProjectCount int
	AnimationDelay       time.Duration
	CacheTTL             time.Duration
	PDFFilename          string
	CardWidth            int

	values map[string]string
}

// NewSite builds a Site from merged values. Typed values that fail to parse are
// logged and replaced by their defaults.
func NewSite(values map[string]string) Site {
	defaults := Defaults()
	s := Site{
		GistID:          values[KeyGistID],
		GitHubUsername:  values[KeyGitHubUsername],
		ProfileImageURL: values[KeyProfileImageURL],
		PDFFilename:     values[KeyPDFFilename],
		values:          maps.Clone(values),
	}
	if s.ProfileImageURL == "" {
		s.ProfileImageURL = DefaultProfileImageURL
	}
	if s.PDFFilename == "" {
		s.PDFFilename = defaults[KeyPDFFilename]
	}

	s.FeaturedProjectCount = positiveInt(values, defaults, KeyFeaturedProjectCount)
	s.CardWidth = positiveInt(values, defaults, KeyCardWidth)
	s.AnimationDelay = duration(values, defaults, KeyAnimationDelay)
	s.CacheTTL = duration(values, defaults, KeyCacheTTL)
	return s
}

// Get returns the raw value for key.
func (s Site) Get(key string) string {
	return s.values[key]
}

// Values returns a copy of every effective key/value pair.
func (s Site) Values() map[string]string {
	return maps.Clone(s.values)
}

func positiveInt(values, defaults map[string]string, key string) int {
	if raw, ok := values[key]; ok {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			return n
		}
		slog.Warn("Ignoring invalid site setting", "key", key, "value", raw)
	}
	n, _ := strconv.Atoi(defaults[key])
	return n
}

// duration accepts Go durations ("100ms", "1h") or bare milliseconds ("100").
func duration(values, defaults map[string]string, key string) time.Duration {
	if raw, ok := values[key]; ok {
		if d, err := parseDuration(raw); err == nil {
			return d
		}
		slog.Warn("Ignoring invalid site setting", "key", key, "value", raw)
	}
	d, _ := parseDuration(defaults[key])
	return d
}

func parseDuration(raw string) (time.Duration, error) {
	if ms, err := strconv.Atoi(raw); err == nil && ms >= 0 {
		return time.Duration(ms) * time.Millisecond, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, strconv.ErrRange
	}
	return d, nil
}
