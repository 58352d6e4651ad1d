// Package rendering writes templ and gomponents components to HTTP responses
// and byte buffers.
package rendering

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// Renderer renders any supported component (templ or gomponents).
type Renderer interface {
	// RenderComponent renders a component to bytes, for HTMX fragments and websocket pushes.
	RenderComponent(ctx context.Context, component any) ([]byte, error)

	// RenderPage writes a full HTTP response.
	RenderPage(c echo.Context, status int, component any) error
}

// UniversalRenderer is the concrete Renderer. It also satisfies echo.Renderer.
type UniversalRenderer struct{}

// NewUniversalRenderer creates a new UniversalRenderer instance.
func NewUniversalRenderer() *UniversalRenderer {
	return &UniversalRenderer{}
}

// gomponentNode is the structural shape of gomponents.Node.
type gomponentNode interface {
	Render(w io.Writer) error
}

func (tr *UniversalRenderer) render(ctx context.Context, component any, w io.Writer) error {
	switch c := component.(type) {
	case templ.Component:
		return c.Render(ctx, w)
	case gomponentNode:
		return c.Render(w)
	default:
		return fmt.Errorf("unsupported component type %T: need templ.Component or Render(io.Writer) error", component)
	}
}

// RenderComponent implements Renderer.
func (tr *UniversalRenderer) RenderComponent(ctx context.Context, component any) ([]byte, error) {
	var buf bytes.Buffer
	if err := tr.render(ctx, component, &buf); err != nil {
		return nil, fmt.Errorf("failed to render component to bytes: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderPage implements Renderer. The component is rendered into a buffer
// first so a failure can still produce a clean error response.
func (tr *UniversalRenderer) RenderPage(c echo.Context, status int, component any) error {
	body, err := tr.RenderComponent(c.Request().Context(), component)
	if err != nil {
		return err
	}
	return c.HTMLBlob(status, body)
}

// Render implements echo.Renderer for c.Render(status, name, component). The
// name is ignored; the component travels in data.
func (tr *UniversalRenderer) Render(w io.Writer, _ string, data any, c echo.Context) error {
	return tr.render(c.Request().Context(), data, w)
}
