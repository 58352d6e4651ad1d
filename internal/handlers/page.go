package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/folio/internal/config"
	"github.com/nfrund/folio/internal/domain"
	"github.com/nfrund/folio/internal/loader"
	"github.com/nfrund/folio/internal/middleware"
	"github.com/nfrund/folio/internal/render"
	"github.com/nfrund/folio/internal/rendering"
	"github.com/nfrund/folio/internal/view"
	g "maragu.dev/gomponents"
)

const (
	// acceptCH asks browsers for the color scheme hint on subsequent requests.
	acceptCH             = view.HeaderPrefersColorScheme
	headerAcceptLanguage = "Accept-Language"
)

// PageHandler serves the résumé page and its htmx fragments.
type PageHandler struct {
	loader   *loader.Loader
	site     *config.Current
	renderer rendering.Renderer
	liveURL  string
	now      func() time.Time
}

// NewPageHandler creates a new PageHandler. liveURL is the websocket endpoint
// pages connect to; empty disables live updates.
func NewPageHandler(l *loader.Loader, site *config.Current, r rendering.Renderer, liveURL string) *PageHandler {
	return &PageHandler{loader: l, site: site, renderer: r, liveURL: liveURL, now: time.Now}
}

// pageSink forwards to the page renderer and records when the projects
// section has received its final content.
type pageSink struct {
	*render.Renderer
	projects atomic.Bool
}

func (s *pageSink) Repositories(repos []domain.Repository) {
	s.Renderer.Repositories(repos)
	s.projects.Store(true)
}

func (s *pageSink) Error(name, message string) {
	s.Renderer.Error(name, message)
	if name == render.RegionProjects {
		s.projects.Store(true)
	}
}

func (h *PageHandler) options(site config.Site, m render.Messages, viewport int) render.Options {
	return render.Options{
		FeaturedCount:  site.FeaturedProjectCount,
		AnimationDelay: site.AnimationDelay,
		CardWidth:      site.CardWidth,
		ViewportWidth:  viewport,
		Messages:       m,
		Now:            h.now,
	}
}

// newSink builds a page and a renderer over it, with the config load error
// already shown when there is one.
func (h *PageHandler) newSink(site config.Site, m render.Messages, viewport int, names ...string) (*render.Page, *pageSink) {
	page := render.NewPage(strings.TrimSuffix(m.TitlePrefix, " - "), names...)
	sink := &pageSink{Renderer: render.New(page, render.Immediate{}, h.options(site, m, viewport))}
	if err := h.site.Err(); err != nil {
		sink.Error(render.RegionObjectives, m.ConfigError)
	}
	return page, sink
}

func messages(c echo.Context, lang string) render.Messages {
	if lang != "" {
		return render.MessagesFor(lang)
	}
	return render.MessagesFor(c.Request().Header.Get(headerAcceptLanguage))
}

// Home renders the full résumé. Cached data is rendered in place; a projects
// section still loading is sent as a placeholder that fetches itself. With
// print=1 the handler waits for every fetch so the page is complete.
func (h *PageHandler) Home(c echo.Context) error {
	ctx := c.Request().Context()
	logger := middleware.FromContext(ctx)

	var q PageQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query.")
	}
	if err := c.Validate(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	site := h.site.Get()
	m := messages(c, q.Lang)
	page, sink := h.newSink(site, m, 0)

	run, err := h.loader.Load(ctx, sink)
	if err != nil {
		logger.Warn("Profile unavailable", "error", err)
	}
	if q.Print {
		if err := run.Wait(); err != nil {
			logger.Warn("Rendering incomplete page for print", "error", err)
		}
	}

	c.Response().Header().Set("Accept-CH", acceptCH)
	c.Response().Header().Add(echo.HeaderVary, acceptCH)
	c.Response().Header().Add(echo.HeaderVary, headerAcceptLanguage)

	liveURL := h.liveURL
	if q.Print {
		liveURL = ""
	}
	return h.renderer.RenderPage(c, http.StatusOK, view.Home(view.HomeProps{
		Page:            page,
		Messages:        m,
		Site:            site,
		Theme:           view.Theme(c),
		LiveURL:         liveURL,
		Print:           q.Print,
		ProjectsPending: !sink.projects.Load(),
		Year:            h.now().Year(),
	}))
}

// ProjectsFragment renders the projects section for the viewport width the
// client reports. It joins the fetch the page started; when that fetch already
// failed the section shows the failure without asking GitHub again.
func (h *PageHandler) ProjectsFragment(c echo.Context) error {
	ctx := c.Request().Context()

	var q ProjectsQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query.")
	}
	if err := c.Validate(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	m := messages(c, "")
	page, sink := h.newSink(h.site.Get(), m, q.Width,
		render.RegionFeatured, render.RegionTicker, render.RegionProjects)

	run, err := h.loader.Resume(ctx, sink)
	if err != nil {
		slog.Debug("Profile unavailable while loading projects", "error", err)
	}
	if err := run.Wait(); err != nil {
		middleware.FromContext(ctx).Warn("Projects unavailable", "error", err)
	}

	return h.renderer.RenderPage(c, http.StatusOK, view.ProjectsSection(page, m, false))
}

// ProfileFragment returns the profile regions and the title as out-of-band
// swaps, plus any error for the objectives section.
func (h *PageHandler) ProfileFragment(c echo.Context) error {
	ctx := c.Request().Context()

	m := messages(c, "")
	names := append([]string{render.RegionObjectives}, view.ProfileRegions...)
	page, sink := h.newSink(h.site.Get(), m, 0, names...)

	if _, err := h.loader.Resume(ctx, sink); err != nil {
		middleware.FromContext(ctx).Warn("Profile unavailable", "error", err)
	}

	return h.renderer.RenderPage(c, http.StatusOK, g.Group{
		view.OOB(page, view.ProfileRegions...),
		view.TitleOOB(page.Title()),
		view.AppendOOB(page, render.RegionObjectives),
	})
}
