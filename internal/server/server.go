package server

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/nfrund/folio/internal/handlers"
	"github.com/nfrund/folio/internal/middleware"
	"github.com/nfrund/folio/internal/rendering"
	"github.com/nfrund/folio/internal/websocket"
	"github.com/nfrund/folio/web"
)

// Handlers are the endpoints the server routes to.
type Handlers struct {
	Page   *handlers.PageHandler
	Theme  *handlers.ThemeHandler
	Export *handlers.ExportHandler
	Health *handlers.HealthHandler
	Live   *websocket.Handler
}

// Options configure the HTTP server.
type Options struct {
	Addr          string
	SessionSecret string
	// ExportRate and ExportBurst limit PDF exports per client IP.
	ExportRate  float64
	ExportBurst int
}

// Server holds the dependencies for the HTTP server.
type Server struct {
	E        *echo.Echo
	opts     Options
	handlers Handlers
}

// New creates a new Server with middleware and routes in place.
func New(opts Options, h Handlers) *Server {
	if opts.ExportRate <= 0 {
		opts.ExportRate = 0.2
	}
	if opts.ExportBurst <= 0 {
		opts.ExportBurst = 2
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handlers.NewValidator()
	e.Renderer = rendering.NewUniversalRenderer()
	setupErrorHandling(e)

	e.Use(echomw.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger)

	// Configure and use session middleware
	store := sessions.NewCookieStore([]byte(opts.SessionSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 365,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	e.Use(session.Middleware(store))

	e.StaticFS("/static", web.Static())

	s := &Server{E: e, opts: opts, handlers: h}
	s.RegisterRoutes()
	return s
}

// setupErrorHandling logs unexpected errors with a stack trace before
// handing them to echo's default handler.
func setupErrorHandling(e *echo.Echo) {
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		var he *echo.HTTPError
		if !errors.As(err, &he) {
			middleware.FromContext(c.Request().Context()).Error("Internal Server Error (Unhandled)",
				"error", err.Error(),
				"path", c.Request().URL.Path,
				"stack_trace", string(debug.Stack()),
			)
		} else if he.Code >= http.StatusInternalServerError {
			slog.Error("Server error", "code", he.Code, "error", he.Message, "path", c.Request().URL.Path)
		}
		e.DefaultHTTPErrorHandler(err, c)
	}
}
