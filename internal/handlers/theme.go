package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/folio/internal/middleware"
	"github.com/nfrund/folio/internal/view"
)

// ThemeHandler stores the visitor's explicit theme choice.
type ThemeHandler struct{}

// NewThemeHandler creates a new ThemeHandler.
func NewThemeHandler() *ThemeHandler {
	return &ThemeHandler{}
}

// Set saves the posted theme in the session and asks htmx to reload the page
// so the new body class applies.
func (h *ThemeHandler) Set(c echo.Context) error {
	var req ThemeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format.")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := view.SetTheme(c, req.Theme); err != nil {
		middleware.FromContext(c.Request().Context()).Error("Failed to store theme", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Could not save the theme.")
	}

	c.Response().Header().Set("HX-Refresh", "true")
	return c.NoContent(http.StatusNoContent)
}
