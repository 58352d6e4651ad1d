// Package view assembles the résumé page and its htmx fragments from the
// regions a render.Page holds.
package view

import (
	"strings"

	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	h "maragu.dev/gomponents/html"
)

const (
	htmxScript   = "https://unpkg.com/htmx.org@2.0.4"
	htmxWSScript = "https://unpkg.com/htmx-ext-ws@2.0.2/ws.js"
)

// DocumentProps are the page-wide settings of the HTML document.
type DocumentProps struct {
	Title    string
	Language string
	Theme    string
	// LiveURL, when set, connects the page to the live update stream.
	LiveURL string
	// Print drops scripts and live updates; the export renders this variant.
	Print bool
}

// Document wraps body in the HTML skeleton shared by every page.
func Document(p DocumentProps, body ...g.Node) g.Node {
	return h.Doctype(
		h.HTML(h.Lang(p.Language),
			h.Head(
				h.Meta(h.Charset("utf-8")),
				h.Meta(h.Name("viewport"), h.Content("width=device-width, initial-scale=1")),
				h.TitleEl(h.ID(titleID), g.Text(p.Title)),
				h.Link(h.Rel("stylesheet"), h.Href("/static/style.css")),
				g.If(!p.Print, g.Group{
					h.Script(h.Src(htmxScript), h.Defer()),
					h.Script(h.Src(htmxWSScript), h.Defer()),
					h.Script(h.Src("/static/app.js"), h.Defer()),
				}),
			),
			h.Body(
				g.If(bodyClass(p) != "", h.Class(bodyClass(p))),
				g.If(p.LiveURL != "" && !p.Print, g.Group{hx.Ext("ws"), g.Attr("ws-connect", p.LiveURL)}),
				g.Group(body),
			),
		),
	)
}

func bodyClass(p DocumentProps) string {
	class := themeClass(p.Theme)
	if p.Print {
		class = strings.TrimSpace(class + " print")
	}
	return class
}
