// Package export prints the rendered résumé to PDF with headless Chrome.
package export

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// A4 portrait in inches, with half-inch margins all around.
const (
	a4Width  = 8.27
	a4Height = 11.69
	margin   = 0.5
)

// Exporter turns a page URL into a PDF document.
type Exporter interface {
	PDF(ctx context.Context, url string) ([]byte, error)
}

// PrintOptions are the Chrome print settings used for every export.
func PrintOptions() *proto.PagePrintToPDF {
	width, height, m := a4Width, a4Height, margin
	return &proto.PagePrintToPDF{
		PrintBackground: true,
		PaperWidth:      &width,
		PaperHeight:     &height,
		MarginTop:       &m,
		MarginBottom:    &m,
		MarginLeft:      &m,
		MarginRight:     &m,
	}
}

// Chrome is an Exporter backed by a lazily launched headless browser that is
// reused across exports.
type Chrome struct {
	bin string

	mu       sync.Mutex
	launcher *launcher.Launcher
	browser  *rod.Browser
}

// NewChrome creates a Chrome exporter. An empty bin lets rod find or download
// a browser.
func NewChrome(bin string) *Chrome {
	return &Chrome{bin: bin}
}

func (c *Chrome) connect() (*rod.Browser, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.browser != nil {
		return c.browser, nil
	}

	l := launcher.New().Headless(true)
	if c.bin != "" {
		l = l.Bin(c.bin)
	}
	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch chrome: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connect to chrome: %w", err)
	}
	slog.Info("Headless Chrome started", "control_url", controlURL)

	c.launcher, c.browser = l, browser
	return browser, nil
}

// PDF loads url in a fresh tab and prints it.
func (c *Chrome) PDF(ctx context.Context, url string) ([]byte, error) {
	browser, err := c.connect()
	if err != nil {
		return nil, err
	}

	page, err := browser.Context(ctx).Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", url, err)
	}
	defer func() {
		if err := page.Close(); err != nil {
			slog.Debug("Failed to close export tab", "error", err)
		}
	}()

	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("load %s: %w", url, err)
	}

	stream, err := page.PDF(PrintOptions())
	if err != nil {
		return nil, fmt.Errorf("print %s: %w", url, err)
	}
	pdf, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("read pdf stream: %w", err)
	}
	return pdf, nil
}

// Shutdown closes the browser if one was started.
func (c *Chrome) Shutdown() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.browser == nil {
		return nil
	}
	err := c.browser.Close()
	c.launcher.Cleanup()
	c.browser, c.launcher = nil, nil
	return err
}
