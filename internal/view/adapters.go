package view

import (
	"context"
	"io"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
)

// templNode wraps a templ.Component so it can sit inside a gomponents tree.
// gomponents does not pass a context down, so the component renders with the
// context captured at construction time.
type templNode struct {
	ctx       context.Context
	component templ.Component
}

func (n templNode) Render(w io.Writer) error {
	return n.component.Render(n.ctx, w)
}

// FromTempl adapts a templ component into a gomponents node.
func FromTempl(ctx context.Context, component templ.Component) g.Node {
	return templNode{ctx: ctx, component: component}
}

// nodeComponent wraps a gomponents node so templ layouts can embed it.
type nodeComponent struct {
	node g.Node
}

func (c nodeComponent) Render(_ context.Context, w io.Writer) error {
	return c.node.Render(w)
}

// ToTempl adapts a gomponents node into a templ component.
func ToTempl(node g.Node) templ.Component {
	return nodeComponent{node: node}
}
