package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/nfrund/folio/internal/config"
	"github.com/nfrund/folio/internal/loader"
	"github.com/nfrund/folio/internal/render"
	"github.com/nfrund/folio/internal/rendering"
	"github.com/nfrund/folio/internal/view"
	"github.com/samber/do/v2"
)

// StaticOptions tune RenderStatic.
type StaticOptions struct {
	// Width is the viewport width the ticker is sized for; 0 means the default.
	Width int
	// Language is an Accept-Language value; empty means Portuguese.
	Language string
}

// RenderStatic writes the complete résumé as a standalone HTML document,
// waiting for every fetch. Load failures are rendered inline, as on the site.
func RenderStatic(ctx context.Context, i do.Injector, w io.Writer, opts StaticOptions) error {
	current := do.MustInvoke[*config.Current](i)
	l := do.MustInvoke[*loader.Loader](i)
	renderer := do.MustInvoke[*rendering.UniversalRenderer](i)

	site := current.Get()
	m := render.MessagesFor(opts.Language)
	page := render.NewPage(strings.TrimSuffix(m.TitlePrefix, " - "))
	r := render.New(page, render.Immediate{}, render.Options{
		FeaturedCount:  site.FeaturedProjectCount,
		AnimationDelay: site.AnimationDelay,
		CardWidth:      site.CardWidth,
		ViewportWidth:  opts.Width,
		Messages:       m,
	})
	if err := current.Err(); err != nil {
		r.Error(render.RegionObjectives, m.ConfigError)
	}

	run, err := l.Load(ctx, r)
	if err != nil {
		slog.Warn("Profile unavailable", "error", err)
	}
	if err := run.Wait(); err != nil {
		slog.Warn("Rendering incomplete page", "error", err)
	}

	body, err := renderer.RenderComponent(ctx, view.Home(view.HomeProps{
		Page:     page,
		Messages: m,
		Site:     site,
		Print:    true,
	}))
	if err != nil {
		return err
	}
	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("write page: %w", err)
	}
	return nil
}
