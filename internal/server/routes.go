package server

import (
	"github.com/nfrund/folio/internal/middleware"
)

// RegisterRoutes sets up all the application routes.
func (s *Server) RegisterRoutes() {
	h := s.handlers
	exportLimiter := middleware.RateLimiter(s.opts.ExportRate, s.opts.ExportBurst)

	s.E.GET("/", h.Page.Home)
	s.E.GET("/fragments/profile", h.Page.ProfileFragment)
	s.E.GET("/fragments/projects", h.Page.ProjectsFragment)
	s.E.POST("/theme", h.Theme.Set)
	s.E.GET("/export.pdf", h.Export.PDF, exportLimiter)
	s.E.GET("/ws", h.Live.Serve)
	s.E.GET("/health", h.Health.Get)
}
