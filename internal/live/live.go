// Package live pushes freshly loaded data to every open page. It listens for
// load events on the bus, renders the affected regions and broadcasts them as
// htmx out-of-band swaps through the hub.
package live

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nfrund/folio/internal/domain"
	"github.com/nfrund/folio/internal/hub"
	"github.com/nfrund/folio/internal/loader"
	"github.com/nfrund/folio/internal/pubsub"
	"github.com/nfrund/folio/internal/render"
	"github.com/nfrund/folio/internal/rendering"
	"github.com/nfrund/folio/internal/view"
	g "maragu.dev/gomponents"
)

// Broadcaster renders updates and hands them to the hub.
type Broadcaster struct {
	hub      *hub.Hub
	renderer rendering.Renderer
	options  func() render.Options
}

// New creates a Broadcaster. options is called for every update so the
// renderer follows site configuration reloads.
func New(h *hub.Hub, r rendering.Renderer, options func() render.Options) *Broadcaster {
	return &Broadcaster{hub: h, renderer: r, options: options}
}

// Start subscribes to the load events. Subscriptions end with ctx.
func (b *Broadcaster) Start(ctx context.Context, sub pubsub.Subscriber) error {
	if err := pubsub.Subscribe(ctx, sub, loader.ProfileLoaded,
		func(ctx context.Context, e loader.ProfileEvent, _ pubsub.Message) error {
			return b.Profile(ctx, &e.Profile)
		}); err != nil {
		return fmt.Errorf("subscribe %s: %w", loader.ProfileLoaded.Name(), err)
	}
	if err := pubsub.Subscribe(ctx, sub, loader.RepositoriesLoaded,
		func(ctx context.Context, e loader.RepositoriesEvent, _ pubsub.Message) error {
			return b.Repositories(ctx, e.Repositories)
		}); err != nil {
		return fmt.Errorf("subscribe %s: %w", loader.RepositoriesLoaded.Name(), err)
	}
	return nil
}

// Profile broadcasts the profile regions and the document title.
func (b *Broadcaster) Profile(ctx context.Context, p *domain.Profile) error {
	page := render.NewPage("", view.ProfileRegions...)
	render.New(page, render.Immediate{}, b.options()).Profile(p)
	return b.send(ctx, "profile", g.Group{
		view.OOB(page, view.ProfileRegions...),
		view.TitleOOB(page.Title()),
	})
}

// Repositories broadcasts the featured grid and the ticker.
func (b *Broadcaster) Repositories(ctx context.Context, repos []domain.Repository) error {
	page := render.NewPage("", view.ProjectRegions...)
	render.New(page, render.Immediate{}, b.options()).Repositories(repos)
	return b.send(ctx, "repositories", view.OOB(page, view.ProjectRegions...))
}

func (b *Broadcaster) send(ctx context.Context, kind string, node g.Node) error {
	if b.hub.Count() == 0 {
		return nil
	}
	body, err := b.renderer.RenderComponent(ctx, node)
	if err != nil {
		return fmt.Errorf("render %s update: %w", kind, err)
	}
	if err := b.hub.Publish(ctx, body); err != nil {
		return fmt.Errorf("broadcast %s update: %w", kind, err)
	}
	slog.Debug("Broadcast live update", "kind", kind, "pages", b.hub.Count(), "bytes", len(body))
	return nil
}
