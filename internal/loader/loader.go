// Package loader orchestrates the page's two data sets: it serves fresh cache
// entries directly and fetches the rest concurrently, writing results through
// to the cache and announcing them on the bus.
package loader

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/nfrund/folio/internal/cache"
	"github.com/nfrund/folio/internal/domain"
	"github.com/nfrund/folio/internal/pubsub"
	"github.com/nfrund/folio/internal/render"
	"golang.org/x/sync/singleflight"
)

// ErrNotConfigured is returned when the site configuration lacks the gist ID or
// the GitHub username needed for a fetch.
var ErrNotConfigured = errors.New("site source not configured")

// Fetcher retrieves the remote data sets.
type Fetcher interface {
	FetchProfile(ctx context.Context, gistID string) (*domain.Profile, error)
	FetchRepositories(ctx context.Context, username string) ([]domain.Repository, error)
}

// Sink receives loaded data. *render.Renderer is the production sink.
type Sink interface {
	Profile(p *domain.Profile)
	Repositories(repos []domain.Repository)
	Error(region, message string)
	Messages() render.Messages
}

// Source names the remote resources to load.
type Source struct {
	GistID   string
	Username string
}

// State reports which data sets have been obtained at least once.
type State struct {
	ProfileLoaded      bool `json:"profile_loaded"`
	RepositoriesLoaded bool `json:"repositories_loaded"`
}

// Loader is safe for concurrent use. Concurrent loads that miss the cache share
// a single network request per data set.
type Loader struct {
	cache     *cache.Cache
	fetcher   Fetcher
	publisher pubsub.Publisher

	mu       sync.RWMutex
	source   Source
	failures map[string]error

	group              singleflight.Group
	profileLoaded      atomic.Bool
	repositoriesLoaded atomic.Bool
}

// New creates a Loader. publisher may be nil.
func New(c *cache.Cache, fetcher Fetcher, publisher pubsub.Publisher, source Source) *Loader {
	return &Loader{
		cache:     c,
		fetcher:   fetcher,
		publisher: publisher,
		source:    source,
		failures:  make(map[string]error),
	}
}

// Configure replaces the remote source, e.g. after the site configuration
// changed. Failures recorded for the old source are forgotten.
func (l *Loader) Configure(source Source) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.source = source
	clear(l.failures)
}

func (l *Loader) failure(key string) error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.failures[key]
}

func (l *Loader) settle(key string, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err != nil {
		l.failures[key] = err
		return
	}
	delete(l.failures, key)
}

// Source returns the remote source in use.
func (l *Loader) Source() Source {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.source
}

// State returns a snapshot of the loaded flags.
func (l *Loader) State() State {
	return State{
		ProfileLoaded:      l.profileLoaded.Load(),
		RepositoriesLoaded: l.repositoriesLoaded.Load(),
	}
}

// Run tracks the fetches started by one Load call.
type Run struct {
	wg   sync.WaitGroup
	mu   sync.Mutex
	errs []error
}

// Wait blocks until every fetch of the run finished and returns their joined
// errors.
func (r *Run) Wait() error {
	r.wg.Wait()
	r.mu.Lock()
	defer r.mu.Unlock()
	return errors.Join(r.errs...)
}

func (r *Run) fail(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, err)
}

// Load hands fresh cached data to sink without touching the network and
// fetches whatever missed, both data sets concurrently. It returns once the
// profile is settled; the repository fetch may still be running and can be
// awaited with Run.Wait. The returned error is the profile failure, which has
// already been shown in sink.
func (l *Loader) Load(ctx context.Context, sink Sink) (*Run, error) {
	return l.load(ctx, sink, false)
}

// Resume is Load for follow-up requests of a page that was already served,
// such as its lazy fragments. A fetch still in flight is joined, and a data set
// whose last fetch failed reports that failure instead of being requested
// again.
func (l *Loader) Resume(ctx context.Context, sink Sink) (*Run, error) {
	return l.load(ctx, sink, true)
}

func (l *Loader) load(ctx context.Context, sink Sink, resume bool) (*Run, error) {
	run := &Run{}

	var profile domain.Profile
	profileHit := l.cache.Read(ctx, cache.KeyProfile, &profile)
	var repos []domain.Repository
	reposHit := l.cache.Read(ctx, cache.KeyRepositories, &repos)

	if profileHit {
		l.profileLoaded.Store(true)
		sink.Profile(&profile)
	}
	if reposHit {
		l.repositoriesLoaded.Store(true)
		sink.Repositories(repos)
	}

	var profileErr error
	profileDone := make(chan struct{})
	if profileHit {
		close(profileDone)
	} else {
		run.wg.Add(1)
		go func() {
			defer run.wg.Done()
			defer close(profileDone)
			if err := l.loadProfile(ctx, sink, resume); err != nil {
				profileErr = err
				run.fail(err)
			}
		}()
	}

	if !reposHit {
		run.wg.Add(1)
		go func() {
			defer run.wg.Done()
			if err := l.loadRepositories(ctx, sink, resume); err != nil {
				run.fail(err)
			}
		}()
	}

	<-profileDone
	return run, profileErr
}

func (l *Loader) loadProfile(ctx context.Context, sink Sink, resume bool) error {
	gistID := l.Source().GistID
	v, err := l.do(ctx, cache.KeyProfile, resume, func(ctx context.Context) (any, error) {
		if gistID == "" {
			return nil, fmt.Errorf("%w: missing gist id", ErrNotConfigured)
		}
		p, err := l.fetcher.FetchProfile(ctx, gistID)
		if err != nil {
			return nil, err
		}
		l.cache.Write(ctx, cache.KeyProfile, p)
		l.profileLoaded.Store(true)
		l.publish(ctx, func(pub pubsub.Publisher) error {
			return pubsub.Publish(ctx, pub, ProfileLoaded, ProfileEvent{Profile: *p}, networkMeta())
		})
		return p, nil
	})
	if abandoned(ctx, err) {
		slog.Debug("Caller left before the profile arrived", "gist_id", gistID)
		return fmt.Errorf("load profile: %w", err)
	}
	if err != nil {
		slog.Error("Failed to load profile", "gist_id", gistID, "error", err)
		sink.Error(render.RegionObjectives, sink.Messages().ProfileError)
		return fmt.Errorf("load profile: %w", err)
	}

	sink.Profile(v.(*domain.Profile))
	return nil
}

func (l *Loader) loadRepositories(ctx context.Context, sink Sink, resume bool) error {
	username := l.Source().Username
	v, err := l.do(ctx, cache.KeyRepositories, resume, func(ctx context.Context) (any, error) {
		if username == "" {
			return nil, fmt.Errorf("%w: missing github username", ErrNotConfigured)
		}
		repos, err := l.fetcher.FetchRepositories(ctx, username)
		if err != nil {
			return nil, err
		}
		l.cache.Write(ctx, cache.KeyRepositories, repos)
		l.repositoriesLoaded.Store(true)
		l.publish(ctx, func(pub pubsub.Publisher) error {
			return pubsub.Publish(ctx, pub, RepositoriesLoaded, RepositoriesEvent{Repositories: repos}, networkMeta())
		})
		return repos, nil
	})
	if abandoned(ctx, err) {
		slog.Debug("Caller left before the repositories arrived", "username", username)
		return fmt.Errorf("load repositories: %w", err)
	}
	if err != nil {
		slog.Error("Failed to load repositories", "username", username, "error", err)
		sink.Error(render.RegionProjects, sink.Messages().ProjectsError)
		return fmt.Errorf("load repositories: %w", err)
	}

	sink.Repositories(v.([]domain.Repository))
	return nil
}

// do runs fetch at most once per key across concurrent callers and records
// its outcome. The shared fetch ignores caller cancellation; a canceled caller
// only stops waiting. With resume, a recorded failure is returned instead of
// fetching again.
func (l *Loader) do(ctx context.Context, key string, resume bool, fetch func(context.Context) (any, error)) (any, error) {
	detached := context.WithoutCancel(ctx)
	ch := l.group.DoChan(key, func() (any, error) {
		if resume {
			if err := l.failure(key); err != nil {
				return nil, err
			}
		}
		v, err := fetch(detached)
		l.settle(key, err)
		return v, err
	})
	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (l *Loader) publish(ctx context.Context, send func(pubsub.Publisher) error) {
	if l.publisher == nil {
		return
	}
	if err := send(l.publisher); err != nil {
		slog.WarnContext(ctx, "Failed to publish load event", "error", err)
	}
}

// abandoned reports whether err only says the caller stopped waiting.
func abandoned(ctx context.Context, err error) bool {
	return err != nil && ctx.Err() != nil && errors.Is(err, ctx.Err())
}

func networkMeta() map[string]string {
	return map[string]string{MetaSource: SourceNetwork}
}
