// Package app wires the service together with samber/do. Every component is a
// lazily built singleton; components with resources implement one of do's
// Shutdown interfaces and are released by the root scope in reverse order.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/nfrund/folio/internal/cache"
	"github.com/nfrund/folio/internal/config"
	"github.com/nfrund/folio/internal/export"
	"github.com/nfrund/folio/internal/github"
	"github.com/nfrund/folio/internal/handlers"
	"github.com/nfrund/folio/internal/hub"
	"github.com/nfrund/folio/internal/live"
	"github.com/nfrund/folio/internal/loader"
	"github.com/nfrund/folio/internal/pubsub"
	"github.com/nfrund/folio/internal/render"
	"github.com/nfrund/folio/internal/rendering"
	"github.com/nfrund/folio/internal/server"
	"github.com/nfrund/folio/internal/storage"
	"github.com/nfrund/folio/internal/websocket"
	"github.com/samber/do/v2"
	"github.com/spf13/afero"
	"go.opentelemetry.io/otel/trace"
)

const httpTimeout = 15 * time.Second

// New creates the root scope for cfg.
func New(cfg *config.Config) *do.RootScope {
	return do.New(Package(cfg))
}

// Package registers every service of the application.
func Package(cfg *config.Config) func(do.Injector) {
	return do.Package(
		do.Eager(cfg),
		do.Lazy(provideBackground),
		do.Lazy(provideSiteLoader),
		do.Lazy(provideSite),
		do.Lazy(provideStore),
		do.Lazy(provideCache),
		do.Lazy(provideFetcher),
		do.Lazy(provideTracing),
		do.Lazy(provideBus),
		do.Lazy(provideLoader),
		do.Lazy(provideHub),
		do.Lazy(provideRenderer),
		do.Lazy(provideBroadcaster),
		do.Lazy(provideExporter),
		do.Lazy(provideServer),
	)
}

// Background owns the context of long-running workers: the hub loop, bus
// subscriptions and the config watcher.
type Background struct {
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Go runs fn in a goroutine tracked until Shutdown.
func (b *Background) Go(fn func(ctx context.Context)) {
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		fn(b.ctx)
	}()
}

// Shutdown cancels the workers and waits for them.
func (b *Background) Shutdown() {
	b.cancel()
	b.wg.Wait()
}

func provideBackground(do.Injector) (*Background, error) {
	ctx, cancel := context.WithCancel(context.Background())
	return &Background{ctx: ctx, cancel: cancel}, nil
}

func provideSiteLoader(do.Injector) (*config.SiteLoader, error) {
	return config.NewSiteLoader(afero.NewOsFs(), &http.Client{Timeout: httpTimeout}), nil
}

// provideSite loads the site configuration once. A failed load still yields
// the defaults; the error is kept for the page to show.
func provideSite(i do.Injector) (*config.Current, error) {
	cfg := do.MustInvoke[*config.Config](i)
	sl := do.MustInvoke[*config.SiteLoader](i)
	bg := do.MustInvoke[*Background](i)

	site, err := sl.LoadSite(bg.ctx, cfg.SiteSource)
	return config.NewCurrent(site, err), nil
}

// Store is the cache backend selected by FOLIO_CACHE_BACKEND.
type Store struct {
	storage.Store
}

// Shutdown closes the backend.
func (s Store) Shutdown() error {
	return s.Close()
}

func provideStore(i do.Injector) (Store, error) {
	cfg := do.MustInvoke[*config.Config](i)
	switch cfg.CacheBackend {
	case config.CacheBackendFile:
		s, err := storage.OpenFileStore(cfg.CacheDir)
		if err != nil {
			return Store{}, fmt.Errorf("open file cache: %w", err)
		}
		return Store{s}, nil
	default:
		s, err := storage.OpenSQLite(cfg.CacheDir)
		if err != nil {
			return Store{}, fmt.Errorf("open sqlite cache: %w", err)
		}
		return Store{s}, nil
	}
}

func provideCache(i do.Injector) (*cache.Cache, error) {
	store := do.MustInvoke[Store](i)
	site := do.MustInvoke[*config.Current](i)
	return cache.New(store.Store, site.Get().CacheTTL, time.Now), nil
}

func provideFetcher(i do.Injector) (*github.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)
	return github.NewClient(cfg.GitHubAPI, &http.Client{Timeout: httpTimeout}), nil
}

// Tracing is the tracer for bus messages; a no-op unless enabled.
type Tracing struct {
	Tracer   trace.Tracer
	shutdown func()
}

// Shutdown flushes pending spans.
func (t *Tracing) Shutdown() {
	t.shutdown()
}

func provideTracing(i do.Injector) (*Tracing, error) {
	bg := do.MustInvoke[*Background](i)
	tracer, shutdown, err := pubsub.SetupOTel(bg.ctx, pubsub.LoadTracingConfigFromEnv())
	if err != nil {
		return nil, fmt.Errorf("setup tracing: %w", err)
	}
	return &Tracing{Tracer: tracer, shutdown: shutdown}, nil
}

// Bus is the in-process event bus.
type Bus struct {
	*pubsub.WatermillBridge
}

// Shutdown closes the bus.
func (b Bus) Shutdown() error {
	return b.Close()
}

func provideBus(i do.Injector) (Bus, error) {
	tracing := do.MustInvoke[*Tracing](i)
	return Bus{pubsub.NewWatermillBridgeWithTracer(tracing.Tracer)}, nil
}

func sourceOf(site config.Site) loader.Source {
	return loader.Source{GistID: site.GistID, Username: site.GitHubUsername}
}

func provideLoader(i do.Injector) (*loader.Loader, error) {
	site := do.MustInvoke[*config.Current](i)
	return loader.New(
		do.MustInvoke[*cache.Cache](i),
		do.MustInvoke[*github.Client](i),
		do.MustInvoke[Bus](i),
		sourceOf(site.Get()),
	), nil
}

func provideHub(i do.Injector) (*hub.Hub, error) {
	h := hub.NewHub()
	do.MustInvoke[*Background](i).Go(h.Run)
	return h, nil
}

func provideRenderer(do.Injector) (*rendering.UniversalRenderer, error) {
	return rendering.NewUniversalRenderer(), nil
}

func provideBroadcaster(i do.Injector) (*live.Broadcaster, error) {
	current := do.MustInvoke[*config.Current](i)
	b := live.New(do.MustInvoke[*hub.Hub](i), do.MustInvoke[*rendering.UniversalRenderer](i), func() render.Options {
		site := current.Get()
		return render.Options{
			FeaturedCount:  site.FeaturedProjectCount,
			AnimationDelay: site.AnimationDelay,
			CardWidth:      site.CardWidth,
		}
	})
	bg := do.MustInvoke[*Background](i)
	if err := b.Start(bg.ctx, do.MustInvoke[Bus](i)); err != nil {
		return nil, err
	}
	return b, nil
}

func provideExporter(i do.Injector) (*export.Chrome, error) {
	return export.NewChrome(do.MustInvoke[*config.Config](i).ChromeBin), nil
}

func provideServer(i do.Injector) (*server.Server, error) {
	cfg := do.MustInvoke[*config.Config](i)
	site := do.MustInvoke[*config.Current](i)
	l := do.MustInvoke[*loader.Loader](i)
	h := do.MustInvoke[*hub.Hub](i)
	r := do.MustInvoke[*rendering.UniversalRenderer](i)

	// Pages only get live updates when something publishes them.
	do.MustInvoke[*live.Broadcaster](i)

	return server.New(server.Options{
		Addr:          cfg.Addr,
		SessionSecret: cfg.SessionSecret,
	}, server.Handlers{
		Page:   handlers.NewPageHandler(l, site, r, "/ws"),
		Theme:  handlers.NewThemeHandler(),
		Export: handlers.NewExportHandler(do.MustInvoke[*export.Chrome](i), site, cfg.BaseURL),
		Health: handlers.NewHealthHandler(l, site, h),
		Live:   websocket.NewHandler(h, originHost(cfg.BaseURL)),
	}), nil
}

// originHost is the host part of baseURL, for the websocket origin check.
func originHost(baseURL string) string {
	host := strings.TrimPrefix(strings.TrimPrefix(baseURL, "https://"), "http://")
	host, _, _ = strings.Cut(host, "/")
	return host
}

// Reload re-reads the site configuration. When the gist or user changed, the
// cache is purged and the loader pointed at the new source.
func Reload(ctx context.Context, i do.Injector) {
	cfg := do.MustInvoke[*config.Config](i)
	current := do.MustInvoke[*config.Current](i)
	l := do.MustInvoke[*loader.Loader](i)

	site, err := do.MustInvoke[*config.SiteLoader](i).LoadSite(ctx, cfg.SiteSource)
	current.Set(site, err)

	if src := sourceOf(site); src != l.Source() {
		if n, err := do.MustInvoke[*cache.Cache](i).Purge(ctx); err != nil {
			slog.Warn("Failed to purge cache after source change", "error", err)
		} else {
			slog.Info("Purged cache after source change", "entries", n)
		}
		l.Configure(src)
	}
	slog.Info("Site configuration reloaded", "source", cfg.SiteSource, "error", err)
}

// Run serves HTTP until ctx is done. File-based site configurations are
// watched and reloaded on change.
func Run(ctx context.Context, i do.Injector) error {
	srv, err := do.Invoke[*server.Server](i)
	if err != nil {
		return fmt.Errorf("build server: %w", err)
	}

	cfg := do.MustInvoke[*config.Config](i)
	if !config.IsRemote(cfg.SiteSource) {
		do.MustInvoke[*Background](i).Go(func(bgCtx context.Context) {
			if err := config.Watch(bgCtx, cfg.SiteSource, func() { Reload(bgCtx, i) }); err != nil {
				slog.Warn("Site configuration will not be reloaded", "error", err)
			}
		})
	}

	return srv.Start(ctx)
}
