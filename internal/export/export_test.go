package export

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-rod/rod/lib/launcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintOptions(t *testing.T) {
	opts := PrintOptions()

	assert.True(t, opts.PrintBackground)
	assert.False(t, opts.Landscape)
	require.NotNil(t, opts.PaperWidth)
	assert.InDelta(t, 8.27, *opts.PaperWidth, 0.001)
	assert.InDelta(t, 11.69, *opts.PaperHeight, 0.001)
	for _, m := range []*float64{opts.MarginTop, opts.MarginBottom, opts.MarginLeft, opts.MarginRight} {
		require.NotNil(t, m)
		assert.InDelta(t, 0.5, *m, 0.001)
	}

	// Each call hands out independent values.
	*opts.MarginTop = 2
	assert.InDelta(t, 0.5, *PrintOptions().MarginTop, 0.001)
}

func TestChrome_PDF(t *testing.T) {
	bin, ok := launcher.LookPath()
	if testing.Short() || !ok {
		t.Skip("headless Chrome not available")
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<!doctype html><html><body><h1>Currículo</h1></body></html>`))
	}))
	defer srv.Close()

	chrome := NewChrome(bin)
	defer func() { assert.NoError(t, chrome.Shutdown()) }()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	pdf, err := chrome.PDF(ctx, srv.URL)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))
}
