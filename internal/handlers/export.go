package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/folio/internal/config"
	"github.com/nfrund/folio/internal/export"
	"github.com/nfrund/folio/internal/middleware"
)

// DefaultExportTimeout bounds a single PDF export.
const DefaultExportTimeout = time.Minute

// ExportHandler prints the résumé page to PDF.
type ExportHandler struct {
	exporter export.Exporter
	site     *config.Current
	baseURL  string
	timeout  time.Duration
}

// NewExportHandler creates a new ExportHandler. baseURL is where the headless
// browser can reach this server.
func NewExportHandler(exporter export.Exporter, site *config.Current, baseURL string) *ExportHandler {
	return &ExportHandler{
		exporter: exporter,
		site:     site,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		timeout:  DefaultExportTimeout,
	}
}

// printURL is the page the browser prints, in the visitor's language.
func (h *ExportHandler) printURL(acceptLanguage string) string {
	q := url.Values{}
	q.Set("print", "1")
	if acceptLanguage != "" {
		q.Set("lang", acceptLanguage)
	}
	return h.baseURL + "/?" + q.Encode()
}

// PDF streams the printed page as an attachment named after PDF_FILENAME.
func (h *ExportHandler) PDF(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()
	logger := middleware.FromContext(ctx)

	target := h.printURL(c.Request().Header.Get(headerAcceptLanguage))
	start := time.Now()
	pdf, err := h.exporter.PDF(ctx, target)
	if err != nil {
		logger.Error("PDF export failed", "url", target, "error", err)
		return echo.NewHTTPError(http.StatusBadGateway, "PDF export failed.")
	}
	logger.Info("Exported PDF", "bytes", len(pdf), "duration", time.Since(start))

	filename := h.site.Get().PDFFilename
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}
