package handlers_test

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/nfrund/folio/internal/config"
	"github.com/nfrund/folio/internal/handlers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExporter struct {
	url string
	pdf []byte
	err error
}

func (f *fakeExporter) PDF(ctx context.Context, url string) ([]byte, error) {
	f.url = url
	return f.pdf, f.err
}

func TestExportPDF(t *testing.T) {
	env := newTestEnv(t, &fakeFetcher{profile: sampleProfile()})
	env.site.Set(config.NewSite(config.Merge(config.Defaults(), map[string]string{
		config.KeyPDFFilename: "maria-souza.pdf",
	})), nil)
	exporter := &fakeExporter{pdf: []byte("%PDF-1.4 test")}
	env.e.GET("/export.pdf", handlers.NewExportHandler(exporter, env.site, "http://localhost:8080/").PDF)

	rec := env.do(http.MethodGet, "/export.pdf", "", map[string]string{"Accept-Language": "en"})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="maria-souza.pdf"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "%PDF-1.4 test", rec.Body.String())

	printed, err := url.Parse(exporter.url)
	require.NoError(t, err)
	assert.Equal(t, "localhost:8080", printed.Host)
	assert.Equal(t, "/", printed.Path)
	assert.Equal(t, "1", printed.Query().Get("print"))
	assert.Equal(t, "en", printed.Query().Get("lang"))
}

func TestExportPDF_Failure(t *testing.T) {
	env := newTestEnv(t, &fakeFetcher{profile: sampleProfile()})
	env.e.GET("/export.pdf", handlers.NewExportHandler(&fakeExporter{err: errBoom}, env.site, "http://localhost:8080").PDF)

	rec := env.do(http.MethodGet, "/export.pdf", "", nil)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Empty(t, rec.Header().Get("Content-Disposition"))
}
