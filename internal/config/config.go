package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds the process-level configuration of the service. Site content
// settings (gist, username, presentation constants) live in Site instead.
type Config struct {
	Addr          string
	SiteSource    string
	CacheBackend  string
	CacheDir      string
	GitHubAPI     string
	SessionSecret string
	ChromeBin     string
	BaseURL       string
}

// Cache backends understood by the storage layer.
const (
	CacheBackendSQLite = "sqlite"
	CacheBackendFile   = "file"
)

// New loads configuration from environment variables, after giving a local
// .env file the chance to populate them.
func New() *Config {
	if err := godotenv.Load(); err != nil {
		// slog may not be configured yet at this point.
		log.Println("No .env file found, relying on environment variables")
	}

	cfg := &Config{
		Addr:          getenv("FOLIO_ADDR", ":8080"),
		SiteSource:    getenv("FOLIO_SITE_CONFIG", "site.env"),
		CacheBackend:  getenv("FOLIO_CACHE_BACKEND", CacheBackendSQLite),
		CacheDir:      getenv("FOLIO_CACHE_DIR", ".folio"),
		GitHubAPI:     getenv("FOLIO_GITHUB_API", "https://api.github.com"),
		SessionSecret: getenv("FOLIO_SESSION_SECRET", "folio-dev-secret"),
		ChromeBin:     os.Getenv("FOLIO_CHROME_BIN"),
		BaseURL:       getenv("FOLIO_BASE_URL", "http://localhost:8080"),
	}

	if cfg.CacheBackend != CacheBackendSQLite && cfg.CacheBackend != CacheBackendFile {
		log.Printf("Unknown FOLIO_CACHE_BACKEND %q, using %q", cfg.CacheBackend, CacheBackendSQLite)
		cfg.CacheBackend = CacheBackendSQLite
	}

	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
