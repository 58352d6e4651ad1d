package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/folio/internal/config"
	"github.com/nfrund/folio/internal/loader"
)

// Counter reports how many pages are connected for live updates.
type Counter interface {
	Count() int
}

// HealthHandler reports service status.
type HealthHandler struct {
	loader *loader.Loader
	site   *config.Current
	live   Counter
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(l *loader.Loader, site *config.Current, live Counter) *HealthHandler {
	return &HealthHandler{loader: l, site: site, live: live}
}

// Get returns a HealthResponse. The service is always up; load failures are
// reported, not fatal.
func (h *HealthHandler) Get(c echo.Context) error {
	resp := HealthResponse{
		Status:    "ok",
		Loader:    h.loader.State(),
		LivePages: h.live.Count(),
	}
	if err := h.site.Err(); err != nil {
		resp.SiteError = err.Error()
	}
	return c.JSON(http.StatusOK, resp)
}
